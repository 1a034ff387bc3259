package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/yatube/internal/api/middleware"
)

const followFeedURL = "/follow/"

// ProfileFollow 关注作者（重复关注幂等）
// @Summary 关注作者
// @Tags 关系链
// @Param username path string true "作者用户名"
// @Success 302 {string} string "/follow/"
// @Failure 404 {object} response.Response
// @Router /profile/{username}/follow/ [post]
func (h *Handler) ProfileFollow(c *gin.Context) {
	if err := h.relService.Follow(c.Request.Context(), middleware.CurrentUser(c), c.Param("username")); err != nil {
		h.fail(c, err, nil)
		return
	}
	c.Redirect(http.StatusFound, followFeedURL)
}

// ProfileUnfollow 取消关注，没有关注关系时同样成功
// @Summary 取消关注
// @Tags 关系链
// @Param username path string true "作者用户名"
// @Success 302 {string} string "/follow/"
// @Failure 404 {object} response.Response
// @Router /profile/{username}/unfollow/ [post]
func (h *Handler) ProfileUnfollow(c *gin.Context) {
	if err := h.relService.Unfollow(c.Request.Context(), middleware.CurrentUser(c), c.Param("username")); err != nil {
		h.fail(c, err, nil)
		return
	}
	c.Redirect(http.StatusFound, followFeedURL)
}
