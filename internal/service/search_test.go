package service

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/bookshare/internal/model"
	"github.com/user/bookshare/internal/repository"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestRepos(t *testing.T) *repository.Repositories {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, repository.AutoMigrate(db))

	return repository.NewRepositories(db)
}

func seedBook(t *testing.T, repos *repository.Repositories, title string, approved bool) *model.Book {
	t.Helper()

	book := &model.Book{Title: title, Author: "a", Status: model.BookStatusOngoing}
	require.NoError(t, repos.Book.Create(book))
	if approved {
		require.NoError(t, repos.Book.SetApproved(book.ID, true))
	}
	return book
}

func TestSearchCachesResults(t *testing.T) {
	repos := newTestRepos(t)
	svc := NewSearchService(repos.Book)

	seedBook(t, repos, "第一本", true)

	first, err := svc.Search(repository.BookFilter{ApprovedOnly: true})
	require.NoError(t, err)
	require.Len(t, first, 1)

	// 未失效前命中缓存，看不到新书
	seedBook(t, repos, "第二本", true)
	cached, err := svc.Search(repository.BookFilter{ApprovedOnly: true})
	require.NoError(t, err)
	assert.Len(t, cached, 1)

	// 失效后返回全量
	svc.Invalidate()
	fresh, err := svc.Search(repository.BookFilter{ApprovedOnly: true})
	require.NoError(t, err)
	assert.Len(t, fresh, 2)
}

func TestSearchDistinctFiltersDistinctKeys(t *testing.T) {
	repos := newTestRepos(t)
	svc := NewSearchService(repos.Book)

	seedBook(t, repos, "已审核", true)
	seedBook(t, repos, "待审核", false)

	approved, err := svc.Search(repository.BookFilter{ApprovedOnly: true})
	require.NoError(t, err)
	assert.Len(t, approved, 1)

	all, err := svc.Search(repository.BookFilter{ApprovedOnly: false})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
