package repository

import (
	"time"

	"github.com/user/bookshare/internal/model"
	"gorm.io/gorm"
)

type LogRepository struct {
	db *gorm.DB
}

func NewLogRepository(db *gorm.DB) *LogRepository {
	return &LogRepository{db: db}
}

// Append 追加一条审计日志
func (r *LogRepository) Append(entry *model.LogEntry) error {
	entry.ID = 0
	entry.CreatedAt = time.Now()
	return r.db.Create(entry).Error
}

// List 按时间倒序获取日志
func (r *LogRepository) List(limit, offset int) ([]*model.LogEntry, error) {
	var entries []*model.LogEntry
	q := r.db.Order("created_at DESC, id DESC")
	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}
	err := q.Find(&entries).Error
	return entries, err
}

// Count 获取日志总数
func (r *LogRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.LogEntry{}).Count(&count).Error
	return count, err
}

// Clear 清空全部日志
func (r *LogRepository) Clear() error {
	return r.db.Where("1 = 1").Delete(&model.LogEntry{}).Error
}

// PurgeBefore 删除指定时间之前的日志，返回删除数量
func (r *LogRepository) PurgeBefore(t time.Time) (int64, error) {
	res := r.db.Where("created_at < ?", t).Delete(&model.LogEntry{})
	return res.RowsAffected, res.Error
}
