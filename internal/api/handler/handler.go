package handler

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"go.uber.org/zap"

	"github.com/d60-Lab/yatube/internal/api/middleware"
	"github.com/d60-Lab/yatube/internal/auth"
	"github.com/d60-Lab/yatube/internal/model"
	"github.com/d60-Lab/yatube/internal/service"
	"github.com/d60-Lab/yatube/internal/storage"
	"github.com/d60-Lab/yatube/pkg/logger"
	"github.com/d60-Lab/yatube/pkg/paginator"
	"github.com/d60-Lab/yatube/pkg/response"
)

// Services 处理器依赖的业务服务
type Services struct {
	Feed         service.FeedService
	Posts        service.PostService
	Comments     service.CommentService
	Relationship service.RelationshipService
	Users        service.UserService
}

// Options 会话 cookie 与登录地址
type Options struct {
	CookieName   string
	LoginURL     string
	SecureCookie bool
}

type Handler struct {
	feedService    service.FeedService
	postService    service.PostService
	commentService service.CommentService
	relService     service.RelationshipService
	userService    service.UserService
	tokens         *auth.TokenManager
	images         storage.ImageStore
	opts           Options
}

func NewHandler(svc Services, tokens *auth.TokenManager, images storage.ImageStore, opts Options) *Handler {
	return &Handler{
		feedService:    svc.Feed,
		postService:    svc.Posts,
		commentService: svc.Comments,
		relService:     svc.Relationship,
		userService:    svc.Users,
		tokens:         tokens,
		images:         images,
		opts:           opts,
	}
}

// postView 帖子 + 图片访问地址
type postView struct {
	*model.Post
	ImageURL string `json:"image_url,omitempty"`
}

func (h *Handler) view(p *model.Post) postView {
	return postView{Post: p, ImageURL: h.images.URL(p.Image)}
}

func (h *Handler) pageView(p service.PostPage) paginator.Page[postView] {
	return paginator.Map(p, h.view)
}

func pageNumber(c *gin.Context) int {
	return paginator.ParseNumber(c.Query("page"))
}

func idParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.NotFound(c, "")
		return 0, false
	}
	return uint(id), true
}

// fail 把业务错误映射为 HTTP 响应；form 为校验失败时回显的表单
func (h *Handler) fail(c *gin.Context, err error, form interface{}) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		response.Invalid(c, verr.Fields, form)
	case errors.Is(err, service.ErrNotFound):
		response.NotFound(c, "")
	case errors.Is(err, service.ErrUnauthenticated):
		c.Redirect(http.StatusFound, middleware.LoginRedirect(h.opts.LoginURL, c.Request.URL.RequestURI()))
	case errors.Is(err, service.ErrForbidden):
		response.Forbidden(c, err.Error())
	case errors.Is(err, service.ErrFollowSelf):
		response.BadRequest(c, err.Error())
	default:
		logger.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Error(err))
		response.InternalError(c, err)
	}
}

// bindPostForm 支持 JSON、urlencoded 与 multipart（字段 image 为上传图片）
// 返回的 closer 用于关闭上传文件
func bindPostForm(c *gin.Context) (service.PostForm, func(), error) {
	var form service.PostForm
	noop := func() {}
	if c.ContentType() == binding.MIMEJSON {
		if err := c.ShouldBindJSON(&form); err != nil {
			return form, noop, fmt.Errorf("bind json: %w", err)
		}
		return form, noop, nil
	}

	form.Text = c.PostForm("text")
	if raw := strings.TrimSpace(c.PostForm("group")); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return form, noop, &service.ValidationError{Fields: map[string]string{"group": "Select a valid choice"}}
		}
		gid := uint(id)
		form.GroupID = &gid
	}
	form.ClearImage = checked(c.PostForm("image-clear"))

	fh, err := c.FormFile("image")
	switch {
	case err == nil:
		return attach(form, fh)
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
		return form, noop, nil
	default:
		return form, noop, fmt.Errorf("read upload: %w", err)
	}
}

func attach(form service.PostForm, fh *multipart.FileHeader) (service.PostForm, func(), error) {
	f, err := fh.Open()
	if err != nil {
		return form, func() {}, fmt.Errorf("open upload: %w", err)
	}
	form.Image = &service.Upload{Filename: fh.Filename, Content: f}
	return form, func() { _ = f.Close() }, nil
}

func checked(v string) bool {
	switch strings.ToLower(v) {
	case "on", "true", "1", "yes":
		return true
	}
	return false
}
