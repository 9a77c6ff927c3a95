package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/user/bookshare/internal/middleware"
	"github.com/user/bookshare/internal/model"
	"github.com/user/bookshare/internal/repository"
	"github.com/user/bookshare/internal/utils"
)

type createCollectionRequest struct {
	Name string `json:"name" binding:"required,min=1,max=64"`
}

type addCollectionBookRequest struct {
	BookID int `json:"book_id" binding:"required"`
}

// GetCollections 获取用户的收藏夹，仅本人或管理员
func (h *Handler) GetCollections(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("userId"))
	if err != nil {
		utils.BadRequest(c, "用户 ID 不合法")
		return
	}
	if userID != middleware.GetUserID(c) && !middleware.IsAdmin(c) {
		utils.Forbidden(c, "")
		return
	}

	collections, err := h.Repos.Collection.ListByUser(userID)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}

	utils.Success(c, collections)
}

// CreateCollection 创建收藏夹，名称按用户不区分大小写唯一
func (h *Handler) CreateCollection(c *gin.Context) {
	var req createCollectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "参数不合法: "+err.Error())
		return
	}

	collection, err := h.Repos.Collection.Create(middleware.GetUserID(c), req.Name)
	if errors.Is(err, repository.ErrDuplicateName) {
		utils.Conflict(c, "同名收藏夹已存在")
		return
	}
	if err != nil {
		utils.InternalServerError(c, "创建失败")
		return
	}

	utils.Created(c, collection)
}

// DeleteCollection 删除收藏夹并级联删除条目，仅拥有者或管理员
func (h *Handler) DeleteCollection(c *gin.Context) {
	collection, ok := h.loadCollection(c)
	if !ok {
		return
	}

	if err := h.Repos.Collection.Delete(collection.ID); err != nil {
		utils.InternalServerError(c, "删除失败")
		return
	}

	utils.SuccessWithMessage(c, "collection deleted", gin.H{"id": collection.ID})
}

// AddCollectionBook 往收藏夹添加书籍
func (h *Handler) AddCollectionBook(c *gin.Context) {
	collection, ok := h.loadCollection(c)
	if !ok {
		return
	}

	var req addCollectionBookRequest
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

	entry, err := h.Repos.Collection.AddBook(collection.ID, req.BookID)
	if errors.Is(err, repository.ErrDuplicateEntry) {
		utils.Conflict(c, "书籍已在收藏夹中")
		return
	}
	if err != nil {
		utils.InternalServerError(c, "操作失败")
		return
	}

	utils.Created(c, entry)
}

// RemoveCollectionBook 从收藏夹移除书籍，幂等
func (h *Handler) RemoveCollectionBook(c *gin.Context) {
	collection, ok := h.loadCollection(c)
	if !ok {
		return
	}

	bookID, err := strconv.Atoi(c.Param("bookId"))
	if err != nil {
		utils.BadRequest(c, "书籍 ID 不合法")
		return
	}

	if err := h.Repos.Collection.RemoveBook(collection.ID, bookID); err != nil {
		utils.InternalServerError(c, "操作失败")
		return
	}

	utils.SuccessWithMessage(c, "removed", nil)
}

// loadCollection 加载收藏夹并检查归属，失败时已写好响应
func (h *Handler) loadCollection(c *gin.Context) (*model.Collection, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "收藏夹 ID 不合法")
		return nil, false
	}

	collection, err := h.Repos.Collection.FindByID(id)
	if err != nil {
		utils.InternalServerError(c, "")
		return nil, false
	}
	if collection == nil {
		utils.NotFound(c, "收藏夹不存在")
		return nil, false
	}

	if collection.UserID != middleware.GetUserID(c) && !middleware.IsAdmin(c) {
		utils.Forbidden(c, "")
		return nil, false
	}

	return collection, true
}
