package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/yatube/pkg/response"
)

// AboutAuthor 静态页面：关于作者
// @Summary 关于作者
// @Tags 其他
// @Produce json
// @Success 200 {object} response.Response
// @Router /about/author/ [get]
func (h *Handler) AboutAuthor(c *gin.Context) {
	response.Success(c, gin.H{
		"title": "About the author",
		"text":  "Yatube is a small blogging platform for sharing posts, joining groups and following authors.",
	})
}

// AboutTech 静态页面：技术栈
// @Summary 技术栈
// @Tags 其他
// @Produce json
// @Success 200 {object} response.Response
// @Router /about/tech/ [get]
func (h *Handler) AboutTech(c *gin.Context) {
	response.Success(c, gin.H{
		"title": "Technologies",
		"stack": []string{"Go", "gin", "gorm", "PostgreSQL / SQLite", "Redis", "zap", "viper", "OpenTelemetry", "Sentry"},
	})
}

// Health 存活检查
// @Summary 健康检查
// @Tags 其他
// @Success 200 {object} response.Response
// @Router /healthz [get]
func (h *Handler) Health(c *gin.Context) {
	response.Success(c, gin.H{"status": "ok"})
}
