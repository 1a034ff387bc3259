package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/d60-Lab/yatube/internal/auth"
	"github.com/d60-Lab/yatube/internal/model"
	"github.com/d60-Lab/yatube/internal/service"
	"github.com/d60-Lab/yatube/pkg/logger"
)

const currentUserKey = "currentUser"

// Authenticate 从 cookie 或 Authorization: Bearer 中解析令牌；失败时按匿名用户继续
func Authenticate(tokens *auth.TokenManager, users service.UserService, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := bearer(c.GetHeader("Authorization"))
		if raw == "" {
			raw, _ = c.Cookie(cookieName)
		}
		if raw == "" {
			c.Next()
			return
		}

		claims, err := tokens.Parse(raw)
		if err != nil {
			logger.Debug("session token rejected", zap.Error(err))
			c.Next()
			return
		}
		id, err := claims.UserID()
		if err != nil {
			c.Next()
			return
		}
		u, err := users.Get(c.Request.Context(), id)
		if err != nil {
			logger.Debug("session user not found", zap.Uint("user_id", id), zap.Error(err))
			c.Next()
			return
		}
		SetCurrentUser(c, u)
		c.Next()
	}
}

// RequireLogin 未登录时重定向到登录页，并携带 next=原始路径
func RequireLogin(loginURL string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentUser(c) == nil {
			c.Redirect(http.StatusFound, LoginRedirect(loginURL, c.Request.URL.RequestURI()))
			c.Abort()
			return
		}
		c.Next()
	}
}

// LoginRedirect 构造 loginURL?next=<path>，路径中的 / 保持原样
func LoginRedirect(loginURL, next string) string {
	escaped := strings.ReplaceAll(url.QueryEscape(next), "%2F", "/")
	return loginURL + "?next=" + escaped
}

func SetCurrentUser(c *gin.Context, u *model.User) { c.Set(currentUserKey, u) }

// CurrentUser 返回当前登录用户，匿名时为 nil
func CurrentUser(c *gin.Context) *model.User {
	v, ok := c.Get(currentUserKey)
	if !ok {
		return nil
	}
	u, _ := v.(*model.User)
	return u
}

func bearer(h string) string {
	const prefix = "Bearer "
	if len(h) > len(prefix) && strings.EqualFold(h[:len(prefix)], prefix) {
		return strings.TrimSpace(h[len(prefix):])
	}
	return ""
}
