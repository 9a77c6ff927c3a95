package model

import (
	"time"
)

// 审计日志目标类型
const (
	LogTypeBook    = "book"
	LogTypeChapter = "chapter"
	LogTypeUser    = "user"
)

// LogEntry 审计日志，只增不改
type LogEntry struct {
	ID        int       `json:"id" db:"id"`
	Type      string    `json:"type" db:"type"`
	Action    string    `json:"action" db:"action"`
	UserID    int       `json:"user_id" db:"user_id"`
	TargetID  *int      `json:"target_id,omitempty" db:"target_id"`
	Extra     string    `json:"extra,omitempty" db:"extra"`
	CreatedAt time.Time `json:"created_at" db:"created_at" gorm:"index"`
}

// ValidLogType 校验日志目标类型
func ValidLogType(t string) bool {
	switch t {
	case LogTypeBook, LogTypeChapter, LogTypeUser:
		return true
	}
	return false
}
