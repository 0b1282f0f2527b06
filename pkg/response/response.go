package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apperrors "github.com/xiebiao/bookstore-lite/pkg/errors"
)

// ErrorBody 错误响应结构
// 设计说明：
// 1. 对外只暴露{error: message}，与前端和自动化测试约定的格式一致
// 2. HTTP状态码由AppError的错误码区间决定（见apperrors.HTTPStatus）
type ErrorBody struct {
	Error string `json:"error" example:"Book not found"`
}

// MessageBody 只有提示信息的响应（如删除成功）
type MessageBody struct {
	Message string `json:"message" example:"Book deleted successfully"`
}

// ResultBody 带success标记的操作结果
type ResultBody struct {
	Success bool   `json:"success" example:"true"`
	Message string `json:"message" example:"Logged out successfully"`
}

// loggerKey gin.Context中请求级logger的key（由日志中间件写入）
const loggerKey = "logger"

// SetLogger 将请求级logger写入Context
func SetLogger(c *gin.Context, logger *zap.Logger) {
	c.Set(loggerKey, logger)
}

// Logger 获取请求级logger，未设置时返回空logger
func Logger(c *gin.Context) *zap.Logger {
	if v, ok := c.Get(loggerKey); ok {
		if l, ok := v.(*zap.Logger); ok {
			return l
		}
	}
	return zap.NewNop()
}

// OK 200响应，data原样序列化（数组、对象均可）
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Created 201响应
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// Message 200响应，body为{message}
func Message(c *gin.Context, message string) {
	c.JSON(http.StatusOK, MessageBody{Message: message})
}

// Error 错误响应（自动处理AppError）
// 用法：
//
//	book, err := h.getBookUseCase.Execute(ctx, id)
//	if err != nil {
//	    response.Error(c, err)
//	    return
//	}
func Error(c *gin.Context, err error) {
	// 提取AppError
	appErr := apperrors.GetAppError(err)
	status := appErr.HTTPStatus()

	// 记录详细错误到日志（包含内部错误）
	logger := Logger(c)
	if status >= http.StatusInternalServerError {
		logger.Error("request failed",
			zap.Int("code", appErr.Code),
			zap.String("message", appErr.Message),
			zap.Error(appErr.Err),
		)
	} else if appErr.Err != nil {
		logger.Warn("request rejected", zap.Int("code", appErr.Code), zap.Error(appErr.Err))
	}

	// 返回用户友好的错误信息
	c.JSON(status, ErrorBody{Error: appErr.Message})
}

// AbortWithError 中间件中使用：返回错误并终止后续Handler
func AbortWithError(c *gin.Context, err error) {
	Error(c, err)
	c.Abort()
}
