package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/user/bookshare/internal/middleware"
	"github.com/user/bookshare/internal/model"
	"github.com/user/bookshare/internal/repository"
	"github.com/user/bookshare/internal/utils"
)

type createBookRequest struct {
	Title       string   `json:"title" binding:"required,max=200"`
	Author      string   `json:"author" binding:"required,max=100"`
	Description string   `json:"description"`
	Status      string   `json:"status" binding:"omitempty,bookstatus"`
	Genres      []string `json:"genres"`
	Tags        []string `json:"tags"`
	CoverURL    string   `json:"cover_url"`
}

type updateBookRequest struct {
	Title       *string   `json:"title" binding:"omitempty,max=200"`
	Author      *string   `json:"author" binding:"omitempty,max=100"`
	Description *string   `json:"description"`
	Status      *string   `json:"status" binding:"omitempty,bookstatus"`
	Genres      *[]string `json:"genres"`
	Tags        *[]string `json:"tags"`
	CoverURL    *string   `json:"cover_url"`
}

type rateRequest struct {
	Rating int `json:"rating" binding:"required,min=1,max=5"`
}

type addChapterRequest struct {
	Title   string `json:"title" binding:"required,max=200"`
	Content string `json:"content" binding:"required"`
}

// ListBooks 书籍列表
// 未登录或普通用户只能看到已审核书籍，管理员可带 include_pending=1 查看全部
func (h *Handler) ListBooks(c *gin.Context) {
	approvedOnly := true
	if middleware.IsAdmin(c) && c.Query("include_pending") == "1" {
		approvedOnly = false
	}

	books, err := h.Search.Search(repository.BookFilter{
		Keyword:      c.Query("q"),
		Genre:        c.Query("genre"),
		Tag:          c.Query("tag"),
		Status:       c.Query("status"),
		ApprovedOnly: approvedOnly,
	})
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}

	utils.Success(c, books)
}

// GetBook 书籍详情（含章节）
func (h *Handler) GetBook(c *gin.Context) {
	book, ok := h.loadBook(c)
	if !ok {
		return
	}

	// 未审核书籍只对上传者和管理员可见
	if !book.Approved && !h.canManage(c, book) {
		utils.NotFound(c, "书籍不存在")
		return
	}

	utils.Success(c, book)
}

// CreateBook 创建书籍，初始为待审核状态
func (h *Handler) CreateBook(c *gin.Context) {
	var req createBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "参数不合法: "+err.Error())
		return
	}

	userID := middleware.GetUserID(c)
	status := req.Status
	if status == "" {
		status = model.BookStatusOngoing
	}

	book := &model.Book{
		Title:       req.Title,
		Author:      req.Author,
		Description: req.Description,
		Status:      status,
		Genres:      req.Genres,
		Tags:        req.Tags,
		UploaderID:  &userID,
		CoverURL:    req.CoverURL,
	}
	if err := h.Repos.Book.Create(book); err != nil {
		utils.InternalServerError(c, "创建失败")
		return
	}

	h.Search.Invalidate()
	h.Audit.RecordBook("create", userID, book.ID, book.Title)

	utils.Created(c, book)
}

// UpdateBook 更新书籍元数据，仅上传者或管理员
func (h *Handler) UpdateBook(c *gin.Context) {
	book, ok := h.loadBook(c)
	if !ok {
		return
	}
	if !h.canManage(c, book) {
		utils.Forbidden(c, "")
		return
	}

	var req updateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "参数不合法: "+err.Error())
		return
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Author != nil {
		updates["author"] = *req.Author
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if req.Genres != nil {
		updates["genres"] = *req.Genres
	}
	if req.Tags != nil {
		updates["tags"] = *req.Tags
	}
	if req.CoverURL != nil {
		updates["cover_url"] = *req.CoverURL
	}

	if len(updates) > 0 {
		if err := h.Repos.Book.Update(book.ID, updates); err != nil {
			utils.InternalServerError(c, "更新失败")
			return
		}
		h.Search.Invalidate()
		h.Audit.RecordBook("update", middleware.GetUserID(c), book.ID, "")
	}

	updated, err := h.Repos.Book.FindByID(book.ID)
	if err != nil || updated == nil {
		utils.InternalServerError(c, "")
		return
	}

	utils.Success(c, updated)
}

// DeleteBook 删除书籍，仅上传者或管理员
func (h *Handler) DeleteBook(c *gin.Context) {
	book, ok := h.loadBook(c)
	if !ok {
		return
	}
	if !h.canManage(c, book) {
		utils.Forbidden(c, "")
		return
	}

	if err := h.Repos.Book.Delete(book.ID); err != nil {
		utils.InternalServerError(c, "删除失败")
		return
	}

	h.Search.Invalidate()
	h.Audit.RecordBook("delete", middleware.GetUserID(c), book.ID, book.Title)

	utils.Success(c, gin.H{"id": book.ID})
}

// RateBook 评分，1-5 分，重复评分覆盖旧值
func (h *Handler) RateBook(c *gin.Context) {
	var req rateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "评分必须在 1 到 5 之间")
		return
	}

	book, ok := h.loadBook(c)
	if !ok {
		return
	}

	userID := middleware.GetUserID(c)
	if err := h.Repos.Rating.Rate(userID, book.ID, req.Rating); err != nil {
		utils.InternalServerError(c, "评分失败")
		return
	}

	h.Search.Invalidate()

	updated, err := h.Repos.Book.FindByID(book.ID)
	if err != nil || updated == nil {
		utils.InternalServerError(c, "")
		return
	}

	utils.Success(c, updated)
}

// AddChapter 追加章节，仅上传者本人
func (h *Handler) AddChapter(c *gin.Context) {
	book, ok := h.loadBook(c)
	if !ok {
		return
	}

	userID := middleware.GetUserID(c)
	if book.UploaderID == nil || *book.UploaderID != userID {
		utils.Forbidden(c, "只有上传者可以追加章节")
		return
	}

	var req addChapterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "参数不合法: "+err.Error())
		return
	}

	chapter, err := h.Repos.Book.AppendChapter(book.ID, req.Title, req.Content)
	if err != nil {
		utils.InternalServerError(c, "追加章节失败")
		return
	}

	h.Audit.RecordChapter("create", userID, book.ID, chapter.Title)

	utils.Created(c, chapter)
}

// GetChapter 按序号读取章节
func (h *Handler) GetChapter(c *gin.Context) {
	book, ok := h.loadBook(c)
	if !ok {
		return
	}
	if !book.Approved && !h.canManage(c, book) {
		utils.NotFound(c, "书籍不存在")
		return
	}

	position, err := strconv.Atoi(c.Param("index"))
	if err != nil || position < 1 {
		utils.BadRequest(c, "章节序号不合法")
		return
	}

	chapter, err := h.Repos.Book.FindChapter(book.ID, position)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if chapter == nil {
		utils.NotFound(c, "章节不存在")
		return
	}

	utils.Success(c, chapter)
}

// ApproveBook 审核通过，管理员操作
func (h *Handler) ApproveBook(c *gin.Context) {
	h.setApproval(c, true, "approve")
}

// RejectBook 驳回到待审核，管理员操作
func (h *Handler) RejectBook(c *gin.Context) {
	h.setApproval(c, false, "reject")
}

func (h *Handler) setApproval(c *gin.Context, approved bool, action string) {
	book, ok := h.loadBook(c)
	if !ok {
		return
	}

	if err := h.Repos.Book.SetApproved(book.ID, approved); err != nil {
		utils.InternalServerError(c, "操作失败")
		return
	}

	h.Search.Invalidate()
	h.Audit.RecordBook(action, middleware.GetUserID(c), book.ID, book.Title)

	book.Approved = approved
	utils.Success(c, book)
}

// loadBook 解析路径参数并加载书籍，失败时已写好响应
func (h *Handler) loadBook(c *gin.Context) (*model.Book, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "书籍 ID 不合法")
		return nil, false
	}

	book, err := h.Repos.Book.FindByID(id)
	if err != nil {
		utils.InternalServerError(c, "")
		return nil, false
	}
	if book == nil {
		utils.NotFound(c, "书籍不存在")
		return nil, false
	}

	return book, true
}

// canManage 上传者本人或管理员
func (h *Handler) canManage(c *gin.Context, book *model.Book) bool {
	if middleware.IsAdmin(c) {
		return true
	}
	userID := middleware.GetUserID(c)
	return userID > 0 && book.UploaderID != nil && *book.UploaderID == userID
}
