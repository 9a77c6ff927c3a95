package repository

import (
	"fmt"

	"github.com/user/bookshare/internal/model"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// InitDB 初始化数据库连接
func InitDB(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("无法连接数据库: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	// 测试连接
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库 ping 失败: %w", err)
	}

	// 设置连接池
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	return db, nil
}

// AutoMigrate 自动建表
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Book{},
		&model.Chapter{},
		&model.Rating{},
		&model.ReadingListEntry{},
		&model.Collection{},
		&model.CollectionEntry{},
		&model.LogEntry{},
	)
}

// Repositories 仓库集合
type Repositories struct {
	DB          *gorm.DB
	User        *UserRepository
	Book        *BookRepository
	Rating      *RatingRepository
	ReadingList *ReadingListRepository
	Collection  *CollectionRepository
	Log         *LogRepository
}

// NewRepositories 创建仓库集合
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		DB:          db,
		User:        NewUserRepository(db),
		Book:        NewBookRepository(db),
		Rating:      NewRatingRepository(db),
		ReadingList: NewReadingListRepository(db),
		Collection:  NewCollectionRepository(db),
		Log:         NewLogRepository(db),
	}
}
