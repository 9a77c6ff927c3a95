package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/user/bookshare/internal/middleware"
	"github.com/user/bookshare/internal/model"
	"github.com/user/bookshare/internal/utils"
)

type setListRequest struct {
	BookID int    `json:"book_id" binding:"required"`
	List   string `json:"list" binding:"required,listname"`
}

// GetReadingLists 获取用户的阅读列表，仅本人或管理员
func (h *Handler) GetReadingLists(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("userId"))
	if err != nil {
		utils.BadRequest(c, "用户 ID 不合法")
		return
	}
	if userID != middleware.GetUserID(c) && !middleware.IsAdmin(c) {
		utils.Forbidden(c, "")
		return
	}

	entries, err := h.Repos.ReadingList.ListByUser(userID)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}

	utils.Success(c, entries)
}

// SetReadingList 把书放入内置列表，重复调用覆盖列表名
func (h *Handler) SetReadingList(c *gin.Context) {
	var req setListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "参数不合法: "+err.Error())
		return
	}

	book, err := h.Repos.Book.FindByID(req.BookID)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if book == nil {
		utils.NotFound(c, "书籍不存在")
		return
	}

	entry, err := h.Repos.ReadingList.SetList(middleware.GetUserID(c), req.BookID, model.ListName(req.List))
	if err != nil {
		utils.InternalServerError(c, "操作失败")
		return
	}

	utils.Success(c, entry)
}

// ClearReadingList 把书从列表移除，幂等
func (h *Handler) ClearReadingList(c *gin.Context) {
	bookID, err := strconv.Atoi(c.Param("bookId"))
	if err != nil {
		utils.BadRequest(c, "书籍 ID 不合法")
		return
	}

	if err := h.Repos.ReadingList.ClearList(middleware.GetUserID(c), bookID); err != nil {
		utils.InternalServerError(c, "操作失败")
		return
	}

	utils.SuccessWithMessage(c, "removed", nil)
}
