package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/yatube/internal/api/middleware"
	"github.com/d60-Lab/yatube/internal/service"
	"github.com/d60-Lab/yatube/pkg/response"
)

// PostDetail 帖子详情与评论
// @Summary 帖子详情
// @Tags 帖子
// @Produce json
// @Param id path int true "帖子ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /posts/{id}/ [get]
func (h *Handler) PostDetail(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	detail, err := h.postService.Detail(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, nil)
		return
	}
	response.Success(c, gin.H{
		"post":               h.view(detail.Post),
		"comments":           detail.Comments,
		"author_posts_count": detail.AuthorPosts,
	})
}

// CreateForm 新建帖子表单（可选分组）
// @Summary 新建帖子表单
// @Tags 帖子
// @Produce json
// @Success 200 {object} response.Response
// @Router /create/ [get]
func (h *Handler) CreateForm(c *gin.Context) {
	groups, err := h.postService.ListGroups(c.Request.Context())
	if err != nil {
		h.fail(c, err, nil)
		return
	}
	response.Success(c, gin.H{"form": service.PostForm{}, "groups": groups, "is_edit": false})
}

// CreatePost 新建帖子，成功后跳转到作者主页
// @Summary 新建帖子
// @Tags 帖子
// @Accept json,mpfd,x-www-form-urlencoded
// @Produce json
// @Param text formData string true "正文"
// @Param group formData int false "分组ID"
// @Param image formData file false "图片"
// @Success 302 {string} string "/profile/{username}/"
// @Failure 400 {object} response.Response
// @Router /create/ [post]
func (h *Handler) CreatePost(c *gin.Context) {
	user := middleware.CurrentUser(c)
	form, done, err := bindPostForm(c)
	defer done()
	if err != nil {
		h.badForm(c, err, form)
		return
	}
	if _, err := h.postService.Create(c.Request.Context(), user, form); err != nil {
		h.fail(c, err, form)
		return
	}
	c.Redirect(http.StatusFound, fmt.Sprintf("/profile/%s/", user.Username))
}

// EditForm 编辑表单，非作者跳转回详情页
// @Summary 编辑帖子表单
// @Tags 帖子
// @Produce json
// @Param id path int true "帖子ID"
// @Success 200 {object} response.Response
// @Failure 302 {string} string "非作者跳转详情页"
// @Failure 404 {object} response.Response
// @Router /posts/{id}/edit/ [get]
func (h *Handler) EditForm(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	post, err := h.postService.GetForEdit(c.Request.Context(), id, middleware.CurrentUser(c))
	if errors.Is(err, service.ErrForbidden) {
		c.Redirect(http.StatusFound, detailURL(id))
		return
	}
	if err != nil {
		h.fail(c, err, nil)
		return
	}
	groups, err := h.postService.ListGroups(c.Request.Context())
	if err != nil {
		h.fail(c, err, nil)
		return
	}
	form := service.PostForm{Text: post.Text, GroupID: post.GroupID}
	response.Success(c, gin.H{"form": form, "post": h.view(post), "groups": groups, "is_edit": true})
}

// EditPost 作者编辑帖子，pub_date 不变
// @Summary 编辑帖子
// @Tags 帖子
// @Accept json,mpfd,x-www-form-urlencoded
// @Produce json
// @Param id path int true "帖子ID"
// @Param text formData string true "正文"
// @Param group formData int false "分组ID"
// @Param image formData file false "图片"
// @Param image-clear formData bool false "移除图片"
// @Success 302 {string} string "/posts/{id}/"
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /posts/{id}/edit/ [post]
func (h *Handler) EditPost(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	form, done, err := bindPostForm(c)
	defer done()
	if err != nil {
		h.badForm(c, err, form)
		return
	}
	_, err = h.postService.Edit(c.Request.Context(), id, middleware.CurrentUser(c), form)
	if errors.Is(err, service.ErrForbidden) {
		c.Redirect(http.StatusFound, detailURL(id))
		return
	}
	if err != nil {
		h.fail(c, err, form)
		return
	}
	c.Redirect(http.StatusFound, detailURL(id))
}

type commentRequest struct {
	Text string `form:"text" json:"text"`
}

// AddComment 评论帖子
// @Summary 添加评论
// @Tags 评论
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param id path int true "帖子ID"
// @Param text formData string true "评论内容"
// @Success 302 {string} string "/posts/{id}/"
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /posts/{id}/add_comment/ [post]
func (h *Handler) AddComment(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req commentRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	form := service.CommentForm{Text: req.Text}
	if _, err := h.commentService.Add(c.Request.Context(), id, middleware.CurrentUser(c), form); err != nil {
		h.fail(c, err, form)
		return
	}
	c.Redirect(http.StatusFound, detailURL(id))
}

// badForm 绑定阶段的错误：校验类错误回显表单，其余按 400 处理
func (h *Handler) badForm(c *gin.Context, err error, form service.PostForm) {
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		response.Invalid(c, verr.Fields, form)
		return
	}
	response.BadRequest(c, err.Error())
}

func detailURL(id uint) string {
	return fmt.Sprintf("/posts/%d/", id)
}
