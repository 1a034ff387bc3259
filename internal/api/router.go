// Package api 组装 gin 路由与中间件。
package api

import (
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/d60-Lab/yatube/config"
	_ "github.com/d60-Lab/yatube/docs"
	"github.com/d60-Lab/yatube/internal/api/handler"
	"github.com/d60-Lab/yatube/internal/api/middleware"
	"github.com/d60-Lab/yatube/internal/auth"
	"github.com/d60-Lab/yatube/internal/cache"
	"github.com/d60-Lab/yatube/internal/service"
	"github.com/d60-Lab/yatube/pkg/response"
)

// Deps 构建路由所需的依赖
type Deps struct {
	Config  *config.Config
	Handler *handler.Handler
	Tokens  *auth.TokenManager
	Users   service.UserService
	// Pages 首页整页缓存
	Pages cache.Store
}

func NewRouter(d Deps) *gin.Engine {
	cfg := d.Config
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}

	r := gin.New()
	r.Use(middleware.Recovery())
	if cfg.Tracing.Endpoint != "" {
		r.Use(otelgin.Middleware(cfg.Tracing.ServiceName))
	}
	r.Use(gzip.Gzip(gzip.DefaultCompression))
	r.Use(middleware.Authenticate(d.Tokens, d.Users, cfg.Auth.CookieName))
	r.Use(middleware.RequestLogger())

	h := d.Handler
	login := middleware.RequireLogin(cfg.Auth.LoginURL)

	r.GET("/", middleware.PageCache(d.Pages, cfg.Cache.IndexTTL), h.Index)
	r.GET("/group/:slug/", h.GroupPosts)
	r.GET("/profile/:username/", h.Profile)
	r.POST("/profile/:username/follow/", login, h.ProfileFollow)
	r.POST("/profile/:username/unfollow/", login, h.ProfileUnfollow)
	r.GET("/follow/", login, h.FollowIndex)

	r.GET("/create/", login, h.CreateForm)
	r.POST("/create/", login, h.CreatePost)
	r.GET("/posts/:id/", h.PostDetail)
	r.GET("/posts/:id/edit/", login, h.EditForm)
	r.POST("/posts/:id/edit/", login, h.EditPost)
	r.POST("/posts/:id/add_comment/", login, h.AddComment)

	authGroup := r.Group("/auth")
	{
		authGroup.GET("/login/", h.LoginForm)
		authGroup.POST("/login/", h.Login)
		authGroup.POST("/signup/", h.Signup)
		authGroup.POST("/logout/", h.Logout)
	}

	about := r.Group("/about")
	{
		about.GET("/author/", h.AboutAuthor)
		about.GET("/tech/", h.AboutTech)
	}

	r.GET("/healthz", h.Health)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	if cfg.Media.URLPrefix != "" {
		r.Static(cfg.Media.URLPrefix, cfg.Media.Root)
	}

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c, "")
	})
	return r
}
