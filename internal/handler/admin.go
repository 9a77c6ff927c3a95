package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/user/bookshare/internal/middleware"
	"github.com/user/bookshare/internal/model"
	"github.com/user/bookshare/internal/utils"
	"golang.org/x/sync/errgroup"
)

type createLogRequest struct {
	Type     string `json:"type" binding:"required"`
	Action   string `json:"action" binding:"required,max=64"`
	TargetID *int   `json:"target_id"`
	Extra    string `json:"extra" binding:"omitempty,max=500"`
}

// AdminLogs 审计日志列表，时间倒序，管理员操作
func (h *Handler) AdminLogs(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	entries, err := h.Repos.Log.List(limit, offset)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}

	utils.Success(c, entries)
}

// CreateLog 写入一条日志，登录用户可用
func (h *Handler) CreateLog(c *gin.Context) {
	var req createLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "参数不合法: "+err.Error())
		return
	}
	if !model.ValidLogType(req.Type) {
		utils.BadRequest(c, "日志类型不合法")
		return
	}

	entry := &model.LogEntry{
		Type:     req.Type,
		Action:   req.Action,
		UserID:   middleware.GetUserID(c),
		TargetID: req.TargetID,
		Extra:    req.Extra,
	}
	if err := h.Repos.Log.Append(entry); err != nil {
		utils.InternalServerError(c, "写入失败")
		return
	}

	utils.Created(c, entry)
}

// ClearLogs 清空全部日志，管理员操作
func (h *Handler) ClearLogs(c *gin.Context) {
	if err := h.Repos.Log.Clear(); err != nil {
		utils.InternalServerError(c, "清空失败")
		return
	}
	utils.SuccessWithMessage(c, "all logs cleared", nil)
}

// AdminStats 后台概览统计
// 各项计数并发获取，短时缓存避免反复扫表
func (h *Handler) AdminStats(c *gin.Context) {
	const cacheKey = "admin:stats"
	if cached, ok := utils.CacheGet(cacheKey); ok {
		utils.Success(c, cached)
		return
	}

	var userCount, bookCount, pendingCount, logCount int64

	g := new(errgroup.Group)
	g.Go(func() error {
		var err error
		userCount, err = h.Repos.User.Count()
		return err
	})
	g.Go(func() error {
		var err error
		bookCount, err = h.Repos.Book.Count()
		return err
	})
	g.Go(func() error {
		var err error
		pendingCount, err = h.Repos.Book.CountPending()
		return err
	})
	g.Go(func() error {
		var err error
		logCount, err = h.Repos.Log.Count()
		return err
	})

	if err := g.Wait(); err != nil {
		utils.InternalServerError(c, "")
		return
	}

	stats := gin.H{
		"users":         userCount,
		"books":         bookCount,
		"pending_books": pendingCount,
		"logs":          logCount,
	}
	utils.CacheSet(cacheKey, stats, 30*time.Second)

	utils.Success(c, stats)
}
