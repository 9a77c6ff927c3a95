package repository

import (
	"errors"
	"time"

	"github.com/user/bookshare/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RatingRepository struct {
	db *gorm.DB
}

func NewRatingRepository(db *gorm.DB) *RatingRepository {
	return &RatingRepository{db: db}
}

// Rate 写入评分并重算书籍聚合
// 每个 (user, book) 只保留一条评分，重复评分覆盖旧值；
// 聚合字段（sum/count/average）在同一事务内由评分行重算，
// 避免旧版"读平均值再写回"方式在并发下丢失更新
func (r *RatingRepository) Rate(userID, bookID, value int) error {
	now := time.Now()
	rating := &model.Rating{
		UserID:    userID,
		BookID:    bookID,
		Value:     value,
		CreatedAt: now,
		UpdatedAt: now,
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "book_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{"value": value, "updated_at": now}),
		}).Create(rating).Error; err != nil {
			return err
		}

		return tx.Exec(`
			UPDATE books SET
				rating_sum = (SELECT COALESCE(SUM(value), 0) FROM ratings WHERE book_id = ?),
				rating_count = (SELECT COUNT(*) FROM ratings WHERE book_id = ?),
				rating_average = (SELECT COALESCE(AVG(value), 0) FROM ratings WHERE book_id = ?)
			WHERE id = ?`, bookID, bookID, bookID, bookID).Error
	})
}

// FindByUserAndBook 查找用户对某本书的评分
func (r *RatingRepository) FindByUserAndBook(userID, bookID int) (*model.Rating, error) {
	var rating model.Rating
	err := r.db.Where("user_id = ? AND book_id = ?", userID, bookID).First(&rating).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &rating, nil
}

// CountByBook 统计某本书的评分数量
func (r *RatingRepository) CountByBook(bookID int) (int64, error) {
	var count int64
	err := r.db.Model(&model.Rating{}).Where("book_id = ?", bookID).Count(&count).Error
	return count, err
}
