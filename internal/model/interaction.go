package model

import (
	"time"
)

// ListName 内置阅读列表，取代旧版散落的字符串标签
type ListName string

const (
	ListLater     ListName = "later"
	ListReading   ListName = "reading"
	ListCompleted ListName = "completed"
	ListDropped   ListName = "dropped"
)

// Valid 校验是否为内置列表
func (l ListName) Valid() bool {
	switch l {
	case ListLater, ListReading, ListCompleted, ListDropped:
		return true
	}
	return false
}

// Rating 用户评分，每个 (user, book) 只有一条记录
type Rating struct {
	ID        int       `json:"id" db:"id"`
	UserID    int       `json:"user_id" db:"user_id" gorm:"uniqueIndex:idx_user_book_rating,priority:1"`
	BookID    int       `json:"book_id" db:"book_id" gorm:"uniqueIndex:idx_user_book_rating,priority:2"`
	Value     int       `json:"value" db:"value"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// ReadingListEntry 阅读列表条目，一本书在每个用户下只占一个槽位
type ReadingListEntry struct {
	ID        int       `json:"id" db:"id"`
	UserID    int       `json:"user_id" db:"user_id" gorm:"uniqueIndex:idx_user_book_list,priority:1"`
	BookID    int       `json:"book_id" db:"book_id" gorm:"uniqueIndex:idx_user_book_list,priority:2"`
	List      ListName  `json:"list" db:"list"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Collection 用户自定义收藏夹，名称按用户小写唯一
type Collection struct {
	ID        int       `json:"id" db:"id"`
	UserID    int       `json:"user_id" db:"user_id" gorm:"index"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	Books     []int     `json:"books" gorm:"-"` // 关联查询时填充
}

// CollectionEntry 收藏夹与书籍的多对多关联
type CollectionEntry struct {
	ID           int       `json:"id" db:"id"`
	CollectionID int       `json:"collection_id" db:"collection_id" gorm:"uniqueIndex:idx_collection_book,priority:1"`
	BookID       int       `json:"book_id" db:"book_id" gorm:"uniqueIndex:idx_collection_book,priority:2"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
