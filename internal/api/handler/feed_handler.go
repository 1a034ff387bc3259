package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/yatube/internal/api/middleware"
	"github.com/d60-Lab/yatube/pkg/response"
)

// Index 首页：全部帖子
// @Summary 首页帖子列表（整页缓存）
// @Tags 帖子
// @Produce json
// @Param page query int false "页码" default(1)
// @Success 200 {object} response.Response
// @Router / [get]
func (h *Handler) Index(c *gin.Context) {
	page, err := h.feedService.ListAll(c.Request.Context(), pageNumber(c))
	if err != nil {
		h.fail(c, err, nil)
		return
	}
	response.Success(c, gin.H{"page_obj": h.pageView(page)})
}

// GroupPosts 分组帖子列表
// @Summary 分组帖子列表
// @Tags 帖子
// @Produce json
// @Param slug path string true "分组 slug"
// @Param page query int false "页码" default(1)
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /group/{slug}/ [get]
func (h *Handler) GroupPosts(c *gin.Context) {
	feed, err := h.feedService.ListGroup(c.Request.Context(), c.Param("slug"), pageNumber(c))
	if err != nil {
		h.fail(c, err, nil)
		return
	}
	response.Success(c, gin.H{"group": feed.Group, "page_obj": h.pageView(feed.Page)})
}

// Profile 作者主页
// @Summary 作者主页：帖子、计数与是否已关注
// @Tags 帖子
// @Produce json
// @Param username path string true "用户名"
// @Param page query int false "页码" default(1)
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /profile/{username}/ [get]
func (h *Handler) Profile(c *gin.Context) {
	viewer := middleware.CurrentUser(c)
	feed, err := h.feedService.ListAuthor(c.Request.Context(), c.Param("username"), viewer, pageNumber(c))
	if err != nil {
		h.fail(c, err, nil)
		return
	}
	response.Success(c, gin.H{
		"author":          feed.Author,
		"full_name":       feed.Author.FullName(),
		"posts_count":     feed.PostCount,
		"followers_count": feed.FollowerCount,
		"following_count": feed.FollowingCount,
		"following":       feed.Following,
		"page_obj":        h.pageView(feed.Page),
	})
}

// FollowIndex 关注作者的帖子
// @Summary 关注流
// @Tags 关系链
// @Produce json
// @Param page query int false "页码" default(1)
// @Success 200 {object} response.Response
// @Failure 302 {string} string "未登录时跳转登录页"
// @Router /follow/ [get]
func (h *Handler) FollowIndex(c *gin.Context) {
	page, err := h.feedService.ListFollowed(c.Request.Context(), middleware.CurrentUser(c), pageNumber(c))
	if err != nil {
		h.fail(c, err, nil)
		return
	}
	response.Success(c, gin.H{"page_obj": h.pageView(page)})
}
