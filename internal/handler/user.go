package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/user/bookshare/internal/middleware"
	"github.com/user/bookshare/internal/utils"
)

type updateUserRequest struct {
	Username  *string `json:"username" binding:"omitempty,min=2,max=32"`
	AvatarURL *string `json:"avatar_url"`
	Password  *string `json:"password" binding:"omitempty,min=6"`
	// 以下字段仅管理员可改
	IsAdmin *bool `json:"is_admin"`
	Banned  *bool `json:"banned"`
}

// ListUsers 用户列表，管理员操作
func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.Repos.User.ListAll()
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	utils.Success(c, users)
}

// UpdateUser 更新用户，本人可改资料，管理员可切换封禁/管理员标记
func (h *Handler) UpdateUser(c *gin.Context) {
	targetID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "用户 ID 不合法")
		return
	}

	actorID := middleware.GetUserID(c)
	isAdmin := middleware.IsAdmin(c)
	if targetID != actorID && !isAdmin {
		utils.Forbidden(c, "")
		return
	}

	target, err := h.Repos.User.FindByID(targetID)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if target == nil {
		utils.NotFound(c, "用户不存在")
		return
	}

	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "参数不合法: "+err.Error())
		return
	}

	if (req.IsAdmin != nil || req.Banned != nil) && !isAdmin {
		utils.Forbidden(c, "需要管理员权限")
		return
	}

	username := ""
	if req.Username != nil {
		username = *req.Username
	}
	avatarURL := ""
	if req.AvatarURL != nil {
		avatarURL = *req.AvatarURL
	}
	if err := h.Repos.User.UpdateProfile(targetID, username, avatarURL); err != nil {
		utils.InternalServerError(c, "更新失败")
		return
	}

	if req.Password != nil {
		if err := h.Repos.User.UpdatePassword(targetID, *req.Password); err != nil {
			utils.InternalServerError(c, "更新失败")
			return
		}
	}

	if req.Banned != nil {
		if err := h.Repos.User.SetBanned(targetID, *req.Banned); err != nil {
			utils.InternalServerError(c, "更新失败")
			return
		}
		action := "unban"
		if *req.Banned {
			action = "ban"
		}
		h.Audit.RecordUser(action, actorID, targetID, "")
	}

	if req.IsAdmin != nil {
		if err := h.Repos.User.SetAdmin(targetID, *req.IsAdmin); err != nil {
			utils.InternalServerError(c, "更新失败")
			return
		}
		action := "revoke_admin"
		if *req.IsAdmin {
			action = "grant_admin"
		}
		h.Audit.RecordUser(action, actorID, targetID, "")
	}

	updated, err := h.Repos.User.FindByID(targetID)
	if err != nil || updated == nil {
		utils.InternalServerError(c, "")
		return
	}

	utils.Success(c, updated)
}

// DeleteUser 删除用户，本人或管理员
func (h *Handler) DeleteUser(c *gin.Context) {
	targetID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "用户 ID 不合法")
		return
	}

	actorID := middleware.GetUserID(c)
	if targetID != actorID && !middleware.IsAdmin(c) {
		utils.Forbidden(c, "")
		return
	}

	target, err := h.Repos.User.FindByID(targetID)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if target == nil {
		utils.NotFound(c, "用户不存在")
		return
	}

	if err := h.Repos.User.Delete(targetID); err != nil {
		utils.InternalServerError(c, "删除失败")
		return
	}

	h.Audit.RecordUser("delete", actorID, targetID, target.Username)

	utils.Success(c, gin.H{"id": targetID})
}
