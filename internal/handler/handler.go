package handler

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/user/bookshare/internal/config"
	"github.com/user/bookshare/internal/middleware"
	"github.com/user/bookshare/internal/model"
	"github.com/user/bookshare/internal/repository"
	"github.com/user/bookshare/internal/service"
)

// Handler HTTP 处理器
type Handler struct {
	Repos  *repository.Repositories
	Config *config.Config
	Search *service.SearchService
	Audit  *service.AuditService
}

// NewHandler 创建处理器
func NewHandler(repos *repository.Repositories, cfg *config.Config) *Handler {
	// 创建检索服务
	searchService := service.NewSearchService(repos.Book)

	// 审计日志以注入方式传入各处理函数
	auditService := service.NewAuditService(repos.Log)

	return &Handler{
		Repos:  repos,
		Config: cfg,
		Search: searchService,
		Audit:  auditService,
	}
}

// RegisterValidations 注册自定义校验规则
func RegisterValidations() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		// 内置阅读列表名
		v.RegisterValidation("listname", func(fl validator.FieldLevel) bool {
			return model.ListName(fl.Field().String()).Valid()
		})
		// 连载状态
		v.RegisterValidation("bookstatus", func(fl validator.FieldLevel) bool {
			return model.ValidStatus(fl.Field().String())
		})
	}
}

// generateToken 为用户签发 JWT
func (h *Handler) generateToken(user *model.User) (string, error) {
	return middleware.GenerateToken(user.ID, user.Email, user.Role(), h.Config.AppSecret, h.Config.JWTExpiry)
}
