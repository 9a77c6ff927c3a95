package service

import (
	"fmt"
	"log"
	"time"

	"github.com/user/bookshare/internal/model"
	"github.com/user/bookshare/internal/repository"
	"github.com/user/bookshare/internal/utils"
	"golang.org/x/sync/singleflight"
)

// SearchService 书籍检索服务
// 列表查询带 LRU 缓存，并用 singleflight 合并并发的相同查询
type SearchService struct {
	books *repository.BookRepository
	cache *utils.SearchCache[[]*model.Book]
	sf    singleflight.Group
}

// NewSearchService 创建检索服务
func NewSearchService(books *repository.BookRepository) *SearchService {
	return &SearchService{
		books: books,
		cache: utils.NewSearchCache[[]*model.Book](1000, time.Minute),
	}
}

// Search 按条件检索书籍
func (s *SearchService) Search(f repository.BookFilter) ([]*model.Book, error) {
	key := cacheKey(f)

	if cached, ok := s.cache.Get(key); ok {
		return cached, nil
	}

	// 避免并发请求同一个查询条件
	val, err, _ := s.sf.Do(key, func() (interface{}, error) {
		// singleflight 等待期间可能已被其他 goroutine 填充
		if cached, ok := s.cache.Get(key); ok {
			return cached, nil
		}

		books, err := s.books.List(f)
		if err != nil {
			return nil, err
		}

		s.cache.Set(key, books)
		return books, nil
	})
	if err != nil {
		log.Printf("[SearchService] 查询失败: %v", err)
		return nil, err
	}

	return val.([]*model.Book), nil
}

// Invalidate 书籍写入后清空列表缓存
func (s *SearchService) Invalidate() {
	s.cache.Clear()
}

func cacheKey(f repository.BookFilter) string {
	return fmt.Sprintf("books:%s|%s|%s|%s|%t", f.Keyword, f.Genre, f.Tag, f.Status, f.ApprovedOnly)
}
