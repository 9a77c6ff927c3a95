package repository

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/user/bookshare/internal/model"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB 每个测试一个独立的内存库
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email string) *model.User {
	t.Helper()

	user := &model.User{
		Username:     strings.Split(email, "@")[0],
		Email:        email,
		PasswordHash: "x",
		CreatedAt:    time.Now(),
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestBook(t *testing.T, db *gorm.DB, uploaderID int, title string) *model.Book {
	t.Helper()

	book := &model.Book{
		Title:      title,
		Author:     "author",
		Status:     model.BookStatusOngoing,
		UploaderID: &uploaderID,
		CreatedAt:  time.Now(),
	}
	require.NoError(t, db.Create(book).Error)
	return book
}
