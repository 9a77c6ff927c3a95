package service

import (
	"log"

	"github.com/user/bookshare/internal/model"
	"github.com/user/bookshare/internal/repository"
)

// AuditService 审计日志写入
// 以依赖注入的方式传给各处理器，替代旧版挂在全局对象上的派发句柄
type AuditService struct {
	logs *repository.LogRepository
}

// NewAuditService 创建审计服务
func NewAuditService(logs *repository.LogRepository) *AuditService {
	return &AuditService{logs: logs}
}

// Record 写入一条审计日志，失败只记录不阻断业务
func (s *AuditService) Record(logType, action string, userID int, targetID *int, extra string) {
	entry := &model.LogEntry{
		Type:     logType,
		Action:   action,
		UserID:   userID,
		TargetID: targetID,
		Extra:    extra,
	}
	if err := s.logs.Append(entry); err != nil {
		log.Printf("[Audit] 写入审计日志失败: %v", err)
	}
}

// RecordBook 书籍类操作
func (s *AuditService) RecordBook(action string, userID, bookID int, extra string) {
	s.Record(model.LogTypeBook, action, userID, &bookID, extra)
}

// RecordChapter 章节类操作
func (s *AuditService) RecordChapter(action string, userID, bookID int, extra string) {
	s.Record(model.LogTypeChapter, action, userID, &bookID, extra)
}

// RecordUser 用户类操作
func (s *AuditService) RecordUser(action string, actorID, targetUserID int, extra string) {
	s.Record(model.LogTypeUser, action, actorID, &targetUserID, extra)
}
