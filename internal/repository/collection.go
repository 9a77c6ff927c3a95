package repository

import (
	"errors"
	"strings"
	"time"

	"github.com/user/bookshare/internal/model"
	"gorm.io/gorm"
)

// 冲突类错误，由处理层映射为 409
var (
	ErrDuplicateName  = errors.New("同名收藏夹已存在")
	ErrDuplicateEntry = errors.New("书籍已在收藏夹中")
)

type CollectionRepository struct {
	db *gorm.DB
}

func NewCollectionRepository(db *gorm.DB) *CollectionRepository {
	return &CollectionRepository{db: db}
}

// Create 创建收藏夹，名称按用户不区分大小写唯一
func (r *CollectionRepository) Create(userID int, name string) (*model.Collection, error) {
	var count int64
	err := r.db.Model(&model.Collection{}).
		Where("user_id = ? AND LOWER(name) = ?", userID, strings.ToLower(name)).
		Count(&count).Error
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrDuplicateName
	}

	collection := &model.Collection{
		UserID:    userID,
		Name:      name,
		CreatedAt: time.Now(),
	}
	if err := r.db.Create(collection).Error; err != nil {
		return nil, err
	}

	collection.Books = []int{}
	return collection, nil
}

// FindByID 根据 ID 查找收藏夹
func (r *CollectionRepository) FindByID(id int) (*model.Collection, error) {
	var collection model.Collection
	err := r.db.First(&collection, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &collection, nil
}

// ListByUser 获取用户的收藏夹列表，填充各自的书籍 ID
func (r *CollectionRepository) ListByUser(userID int) ([]*model.Collection, error) {
	var collections []*model.Collection
	if err := r.db.Where("user_id = ?", userID).Order("id ASC").Find(&collections).Error; err != nil {
		return nil, err
	}
	if len(collections) == 0 {
		return collections, nil
	}

	ids := make([]int, 0, len(collections))
	for _, c := range collections {
		c.Books = []int{}
		ids = append(ids, c.ID)
	}

	var entries []*model.CollectionEntry
	if err := r.db.Where("collection_id IN ?", ids).Find(&entries).Error; err != nil {
		return nil, err
	}

	byID := make(map[int]*model.Collection, len(collections))
	for _, c := range collections {
		byID[c.ID] = c
	}
	for _, e := range entries {
		if c, ok := byID[e.CollectionID]; ok {
			c.Books = append(c.Books, e.BookID)
		}
	}

	return collections, nil
}

// AddBook 往收藏夹添加书籍，重复添加返回冲突
func (r *CollectionRepository) AddBook(collectionID, bookID int) (*model.CollectionEntry, error) {
	var count int64
	err := r.db.Model(&model.CollectionEntry{}).
		Where("collection_id = ? AND book_id = ?", collectionID, bookID).
		Count(&count).Error
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrDuplicateEntry
	}

	entry := &model.CollectionEntry{
		CollectionID: collectionID,
		BookID:       bookID,
		CreatedAt:    time.Now(),
	}
	if err := r.db.Create(entry).Error; err != nil {
		return nil, err
	}

	return entry, nil
}

// RemoveBook 从收藏夹移除书籍，不存在时为空操作
func (r *CollectionRepository) RemoveBook(collectionID, bookID int) error {
	return r.db.Where("collection_id = ? AND book_id = ?", collectionID, bookID).Delete(&model.CollectionEntry{}).Error
}

// Delete 删除收藏夹并级联删除全部条目
// 两步在同一事务内完成，不留孤儿条目
func (r *CollectionRepository) Delete(collectionID int) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("collection_id = ?", collectionID).Delete(&model.CollectionEntry{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Collection{}, collectionID).Error
	})
}

// CountEntries 统计收藏夹条目数量
func (r *CollectionRepository) CountEntries(collectionID int) (int64, error) {
	var count int64
	err := r.db.Model(&model.CollectionEntry{}).Where("collection_id = ?", collectionID).Count(&count).Error
	return count, err
}
