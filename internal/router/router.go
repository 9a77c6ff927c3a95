package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/user/bookshare/internal/handler"
	"github.com/user/bookshare/internal/middleware"
)

// RegisterRoutes 注册所有路由
func RegisterRoutes(r *gin.Engine, h *handler.Handler) {
	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	secret := h.Config.AppSecret
	requireActive := middleware.RequireActiveUser(h.Repos.User)

	api := r.Group("/api")

	// ==================== 用户与认证 ====================
	users := api.Group("/users")
	{
		users.POST("/register", h.Register)
		users.POST("/login", h.Login)
		users.GET("/me", middleware.RequireAuth(secret), requireActive, h.Me)
		users.GET("", middleware.RequireAuth(secret), middleware.RequireAdmin(), h.ListUsers)
		users.PUT("/:id", middleware.RequireAuth(secret), requireActive, h.UpdateUser)
		users.DELETE("/:id", middleware.RequireAuth(secret), requireActive, h.DeleteUser)
	}

	// ==================== 书籍 ====================
	books := api.Group("/books")
	books.Use(middleware.OptionalAuth(secret))
	{
		books.GET("", h.ListBooks)
		books.GET("/:id", h.GetBook)
		books.GET("/:id/chapters/:index", h.GetChapter)

		authed := books.Group("")
		authed.Use(middleware.RequireAuth(secret), requireActive)
		{
			authed.POST("", h.CreateBook)
			authed.PUT("/:id", h.UpdateBook)
			authed.DELETE("/:id", h.DeleteBook)
			authed.POST("/:id/rating", h.RateBook)
			authed.POST("/:id/chapters", h.AddChapter)
		}

		// 审核操作
		moderation := books.Group("")
		moderation.Use(middleware.RequireAuth(secret), middleware.RequireAdmin())
		{
			moderation.POST("/:id/approve", h.ApproveBook)
			moderation.POST("/:id/reject", h.RejectBook)
		}
	}

	// ==================== 阅读列表 ====================
	lists := api.Group("/reading-lists")
	lists.Use(middleware.RequireAuth(secret), requireActive)
	{
		lists.GET("/:userId", h.GetReadingLists)
		lists.POST("", h.SetReadingList)
		lists.DELETE("/:bookId", h.ClearReadingList)
	}

	// ==================== 收藏夹 ====================
	collections := api.Group("/collections")
	collections.Use(middleware.RequireAuth(secret), requireActive)
	{
		collections.GET("/:userId", h.GetCollections)
		collections.POST("", h.CreateCollection)
		collections.DELETE("/:id", h.DeleteCollection)
		collections.POST("/:id/books", h.AddCollectionBook)
		collections.DELETE("/:id/books/:bookId", h.RemoveCollectionBook)
	}

	// ==================== 审计日志 ====================
	logs := api.Group("/logs")
	logs.Use(middleware.RequireAuth(secret), requireActive)
	{
		logs.POST("", h.CreateLog)
		logs.GET("", middleware.RequireAdmin(), h.AdminLogs)
		logs.DELETE("", middleware.RequireAdmin(), h.ClearLogs)
	}

	// ==================== 管理后台 ====================
	admin := api.Group("/admin")
	admin.Use(middleware.RequireAuth(secret), middleware.RequireAdmin())
	{
		admin.GET("/stats", h.AdminStats)
	}
}
