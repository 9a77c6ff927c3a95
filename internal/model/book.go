package model

import (
	"time"
)

// 书籍连载状态
const (
	BookStatusOngoing  = "ongoing"
	BookStatusFinished = "finished"
	BookStatusDropped  = "dropped"
)

// Book 书籍模型
type Book struct {
	ID            int       `json:"id" db:"id"`
	Title         string    `json:"title" db:"title" gorm:"index"`
	Author        string    `json:"author" db:"author"`
	Description   string    `json:"description" db:"description"`
	Status        string    `json:"status" db:"status"`
	ChapterAmount int       `json:"chapter_amount" db:"chapter_amount"`
	Genres        []string  `json:"genres" db:"genres" gorm:"serializer:json"`
	Tags          []string  `json:"tags" db:"tags" gorm:"serializer:json"`
	UploaderID    *int      `json:"uploader_id" db:"uploader_id" gorm:"index"`
	RatingSum     int       `json:"-" db:"rating_sum"`
	RatingCount   int       `json:"rating_count" db:"rating_count"`
	RatingAverage float64   `json:"rating_average" db:"rating_average" gorm:"index"`
	Approved      bool      `json:"approved" db:"approved" gorm:"index"`
	CoverURL      string    `json:"cover_url,omitempty" db:"cover_url"`
	Chapters      []Chapter `json:"chapters,omitempty" gorm:"foreignKey:BookID"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

// ValidStatus 校验连载状态取值
func ValidStatus(s string) bool {
	switch s {
	case BookStatusOngoing, BookStatusFinished, BookStatusDropped:
		return true
	}
	return false
}

// Chapter 章节模型，创建后不可修改
type Chapter struct {
	ID        int       `json:"id" db:"id"`
	BookID    int       `json:"book_id" db:"book_id" gorm:"uniqueIndex:idx_book_position,priority:1"`
	Title     string    `json:"title" db:"title"`
	Content   string    `json:"content" db:"content"`
	Position  int       `json:"index" db:"position" gorm:"uniqueIndex:idx_book_position,priority:2"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
