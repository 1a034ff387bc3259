package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/yatube/internal/model"
	"github.com/d60-Lab/yatube/internal/service"
	"github.com/d60-Lab/yatube/pkg/response"
)

type loginRequest struct {
	Username string `form:"username" json:"username"`
	Password string `form:"password" json:"password"`
	Next     string `form:"next" json:"next"`
}

type signupRequest struct {
	Username  string `form:"username" json:"username"`
	Password  string `form:"password" json:"password"`
	Email     string `form:"email" json:"email"`
	FirstName string `form:"first_name" json:"first_name"`
	LastName  string `form:"last_name" json:"last_name"`
}

// LoginForm 登录页，回显 next
// @Summary 登录表单
// @Tags 账号
// @Produce json
// @Param next query string false "登录后跳转地址"
// @Success 200 {object} response.Response
// @Router /auth/login/ [get]
func (h *Handler) LoginForm(c *gin.Context) {
	response.Success(c, gin.H{"next": safeNext(c.Query("next"))})
}

// Login 校验用户名密码，写入会话 cookie 后跳转 next
// @Summary 登录
// @Tags 账号
// @Accept json,x-www-form-urlencoded
// @Param username formData string true "用户名"
// @Param password formData string true "密码"
// @Param next formData string false "登录后跳转地址"
// @Success 302 {string} string "next 或 /"
// @Failure 400 {object} response.Response
// @Router /auth/login/ [post]
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if req.Next == "" {
		req.Next = c.Query("next")
	}
	u, err := h.userService.Authenticate(c.Request.Context(), req.Username, req.Password)
	if errors.Is(err, service.ErrInvalidCredentials) {
		response.Invalid(c, map[string]string{"__all__": err.Error()}, gin.H{"username": req.Username, "next": req.Next})
		return
	}
	if err != nil {
		h.fail(c, err, nil)
		return
	}
	if err := h.startSession(c, u); err != nil {
		h.fail(c, err, nil)
		return
	}
	c.Redirect(http.StatusFound, safeNext(req.Next))
}

// Signup 注册并直接登录
// @Summary 注册
// @Tags 账号
// @Accept json,x-www-form-urlencoded
// @Param username formData string true "用户名"
// @Param password formData string true "密码"
// @Param email formData string false "邮箱"
// @Success 302 {string} string "/"
// @Failure 400 {object} response.Response
// @Router /auth/signup/ [post]
func (h *Handler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	form := service.SignupForm{
		Username:  req.Username,
		Password:  req.Password,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}
	u, err := h.userService.Signup(c.Request.Context(), form)
	if err != nil {
		h.fail(c, err, form)
		return
	}
	if err := h.startSession(c, u); err != nil {
		h.fail(c, err, nil)
		return
	}
	c.Redirect(http.StatusFound, "/")
}

// Logout 清除会话 cookie
// @Summary 退出登录
// @Tags 账号
// @Success 302 {string} string "/"
// @Router /auth/logout/ [post]
func (h *Handler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.opts.CookieName, "", -1, "/", "", h.opts.SecureCookie, true)
	c.Redirect(http.StatusFound, "/")
}

func (h *Handler) startSession(c *gin.Context, u *model.User) error {
	token, err := h.tokens.Issue(u.ID, u.Username)
	if err != nil {
		return err
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.opts.CookieName, token, int(h.tokens.TTL().Seconds()), "/", "", h.opts.SecureCookie, true)
	return nil
}

// safeNext 只允许站内相对路径，避免开放跳转
func safeNext(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/"
	}
	return next
}
