package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/user/bookshare/internal/middleware"
	"github.com/user/bookshare/internal/utils"
)

type registerRequest struct {
	Username string `json:"username" binding:"required,min=2,max=32"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register 用户注册
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "参数不合法: "+err.Error())
		return
	}

	// 邮箱与用户名均不可重复
	if existing, err := h.Repos.User.FindByEmail(req.Email); err != nil {
		utils.InternalServerError(c, "")
		return
	} else if existing != nil {
		utils.BadRequest(c, "Email already registered")
		return
	}
	if existing, err := h.Repos.User.FindByUsername(req.Username); err != nil {
		utils.InternalServerError(c, "")
		return
	} else if existing != nil {
		utils.BadRequest(c, "用户名已被占用")
		return
	}

	user, err := h.Repos.User.Create(req.Email, req.Username, req.Password)
	if err != nil {
		utils.InternalServerError(c, "注册失败")
		return
	}

	token, err := h.generateToken(user)
	if err != nil {
		utils.InternalServerError(c, "注册失败")
		return
	}

	utils.Created(c, gin.H{"user": user, "token": token})
}

// Login 用户登录
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "参数不合法: "+err.Error())
		return
	}

	// 查找用户
	user, err := h.Repos.User.FindByEmail(req.Email)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if user == nil || !h.Repos.User.CheckPassword(user, req.Password) {
		utils.Unauthorized(c, "邮箱或密码错误")
		return
	}
	if user.Banned {
		utils.Forbidden(c, "账号已被封禁")
		return
	}

	token, err := h.generateToken(user)
	if err != nil {
		utils.InternalServerError(c, "登录失败，请重试")
		return
	}

	// 同时下发 Cookie，便于浏览器场景
	c.SetCookie("token", token, int(h.Config.JWTExpiry.Seconds()), "/", "", false, true)

	utils.Success(c, gin.H{"user": user, "token": token})
}

// Me 当前登录用户
func (h *Handler) Me(c *gin.Context) {
	user := middleware.GetUser(c)
	if user == nil {
		utils.Unauthorized(c, "")
		return
	}
	utils.Success(c, user)
}
