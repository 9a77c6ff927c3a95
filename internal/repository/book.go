package repository

import (
	"errors"
	"time"

	"github.com/user/bookshare/internal/model"
	"gorm.io/gorm"
)

type BookRepository struct {
	db *gorm.DB
}

func NewBookRepository(db *gorm.DB) *BookRepository {
	return &BookRepository{db: db}
}

// BookFilter 书籍列表过滤条件
type BookFilter struct {
	Keyword      string
	Genre        string
	Tag          string
	Status       string
	ApprovedOnly bool
}

// Create 创建书籍，默认处于待审核状态
func (r *BookRepository) Create(book *model.Book) error {
	book.Approved = false
	book.ChapterAmount = 0
	book.RatingSum = 0
	book.RatingCount = 0
	book.RatingAverage = 0
	book.CreatedAt = time.Now()
	return r.db.Create(book).Error
}

// FindByID 根据 ID 查找书籍（含章节）
func (r *BookRepository) FindByID(id int) (*model.Book, error) {
	var book model.Book
	err := r.db.Preload("Chapters", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).First(&book, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &book, nil
}

// List 按条件查询书籍列表，不加载章节正文
func (r *BookRepository) List(f BookFilter) ([]*model.Book, error) {
	q := r.db.Model(&model.Book{})

	if f.ApprovedOnly {
		q = q.Where("approved = ?", true)
	}
	if f.Keyword != "" {
		kw := "%" + f.Keyword + "%"
		q = q.Where("title LIKE ? OR author LIKE ?", kw, kw)
	}
	// genres/tags 以 JSON 文本存储，LIKE 匹配带引号的元素
	if f.Genre != "" {
		q = q.Where("genres LIKE ?", "%\""+f.Genre+"\"%")
	}
	if f.Tag != "" {
		q = q.Where("tags LIKE ?", "%\""+f.Tag+"\"%")
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}

	var books []*model.Book
	err := q.Order("updated_at DESC").Find(&books).Error
	return books, err
}

// Update 更新书籍元数据
func (r *BookRepository) Update(bookID int, updates map[string]interface{}) error {
	return r.db.Model(&model.Book{}).Where("id = ?", bookID).Updates(updates).Error
}

// SetApproved 切换审核状态
func (r *BookRepository) SetApproved(bookID int, approved bool) error {
	return r.db.Model(&model.Book{}).Where("id = ?", bookID).Update("approved", approved).Error
}

// AppendChapter 追加章节
// 在事务内计算下一个序号并更新章节计数，保证序号从 1 开始连续
func (r *BookRepository) AppendChapter(bookID int, title, content string) (*model.Chapter, error) {
	chapter := &model.Chapter{
		BookID:    bookID,
		Title:     title,
		Content:   content,
		CreatedAt: time.Now(),
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var maxPos int
		if err := tx.Model(&model.Chapter{}).
			Where("book_id = ?", bookID).
			Select("COALESCE(MAX(position), 0)").
			Scan(&maxPos).Error; err != nil {
			return err
		}

		chapter.Position = maxPos + 1
		if err := tx.Create(chapter).Error; err != nil {
			return err
		}

		return tx.Model(&model.Book{}).Where("id = ?", bookID).
			Update("chapter_amount", gorm.Expr("chapter_amount + 1")).Error
	})
	if err != nil {
		return nil, err
	}

	return chapter, nil
}

// FindChapter 按序号查找章节
func (r *BookRepository) FindChapter(bookID, position int) (*model.Chapter, error) {
	var chapter model.Chapter
	err := r.db.Where("book_id = ? AND position = ?", bookID, position).First(&chapter).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &chapter, nil
}

// Delete 删除书籍及其章节、评分、列表与收藏夹条目
func (r *BookRepository) Delete(bookID int) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("book_id = ?", bookID).Delete(&model.Chapter{}).Error; err != nil {
			return err
		}
		if err := tx.Where("book_id = ?", bookID).Delete(&model.Rating{}).Error; err != nil {
			return err
		}
		if err := tx.Where("book_id = ?", bookID).Delete(&model.ReadingListEntry{}).Error; err != nil {
			return err
		}
		if err := tx.Where("book_id = ?", bookID).Delete(&model.CollectionEntry{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Book{}, bookID).Error
	})
}

// Count 获取书籍总数
func (r *BookRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.Book{}).Count(&count).Error
	return count, err
}

// CountPending 获取待审核书籍数量
func (r *BookRepository) CountPending() (int64, error) {
	var count int64
	err := r.db.Model(&model.Book{}).Where("approved = ?", false).Count(&count).Error
	return count, err
}
