package repository

import (
	"time"

	"github.com/user/bookshare/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReadingListRepository struct {
	db *gorm.DB
}

func NewReadingListRepository(db *gorm.DB) *ReadingListRepository {
	return &ReadingListRepository{db: db}
}

// SetList 把书放入内置列表
// 一本书在每个用户下只占一个槽位，已存在时覆盖列表名
func (r *ReadingListRepository) SetList(userID, bookID int, list model.ListName) (*model.ReadingListEntry, error) {
	now := time.Now()
	entry := &model.ReadingListEntry{
		UserID:    userID,
		BookID:    bookID,
		List:      list,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "book_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"list": list, "updated_at": now}),
	}).Create(entry).Error
	if err != nil {
		return nil, err
	}

	// OnConflict 更新时不回填主键，重新读取
	var saved model.ReadingListEntry
	if err := r.db.Where("user_id = ? AND book_id = ?", userID, bookID).First(&saved).Error; err != nil {
		return nil, err
	}

	return &saved, nil
}

// ClearList 把书从列表移除，不存在时为空操作
func (r *ReadingListRepository) ClearList(userID, bookID int) error {
	return r.db.Where("user_id = ? AND book_id = ?", userID, bookID).Delete(&model.ReadingListEntry{}).Error
}

// ListByUser 获取用户的全部列表条目
func (r *ReadingListRepository) ListByUser(userID int) ([]*model.ReadingListEntry, error) {
	var entries []*model.ReadingListEntry
	err := r.db.Where("user_id = ?", userID).Order("updated_at DESC").Find(&entries).Error
	return entries, err
}
