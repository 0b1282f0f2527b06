package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/xiebiao/bookstore-lite/internal/domain/user"
	"github.com/xiebiao/bookstore-lite/internal/interface/http/dto"
	"github.com/xiebiao/bookstore-lite/pkg/response"
)

// APIVersion 对外版本号
const APIVersion = "1.0.0"

// SystemHandler 首页与健康检查
type SystemHandler struct {
	now func() time.Time
}

// NewSystemHandler 创建系统处理器
func NewSystemHandler() *SystemHandler {
	return &SystemHandler{now: time.Now}
}

// Root API入口
// @Summary      API入口
// @Tags         系统
// @Produce      json
// @Success      200 {object} dto.RootResponse
// @Router       / [get]
func (h *SystemHandler) Root(c *gin.Context) {
	response.OK(c, dto.RootResponse{
		Message: "Welcome to the Bookstore API",
		Version: APIVersion,
		Endpoints: dto.RootEndpoints{
			Books:         "/api/books",
			Documentation: "/api-docs",
		},
	})
}

// Health 健康检查
// @Summary      健康检查
// @Tags         系统
// @Produce      json
// @Success      200 {object} dto.HealthResponse
// @Router       /health [get]
func (h *SystemHandler) Health(c *gin.Context) {
	response.OK(c, dto.HealthResponse{
		Status:    "OK",
		Timestamp: h.now().UTC().Format(user.TimestampLayout),
	})
}
