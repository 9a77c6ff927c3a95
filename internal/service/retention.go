package service

import (
	"log"
	"time"

	"github.com/user/bookshare/internal/repository"
)

// RetentionService 审计日志保留期清理服务
type RetentionService struct {
	repos         *repository.Repositories
	retentionDays int
}

// NewRetentionService 创建清理服务
func NewRetentionService(repos *repository.Repositories, retentionDays int) *RetentionService {
	return &RetentionService{repos: repos, retentionDays: retentionDays}
}

// Start 启动定时清理任务
func (s *RetentionService) Start() {
	if s.retentionDays <= 0 {
		log.Println("[RetentionService] 未配置保留期，跳过日志清理")
		return
	}

	ticker := time.NewTicker(24 * time.Hour)

	// 启动时先运行一次
	go s.runCleanup()

	go func() {
		for range ticker.C {
			s.runCleanup()
		}
	}()
}

func (s *RetentionService) runCleanup() {
	cutoff := time.Now().AddDate(0, 0, -s.retentionDays)

	affected, err := s.repos.Log.PurgeBefore(cutoff)
	if err != nil {
		log.Printf("[RetentionService] 清理审计日志失败: %v", err)
	} else if affected > 0 {
		log.Printf("[RetentionService] 已清理 %d 条超过 %d 天的审计日志", affected, s.retentionDays)
	}
}
