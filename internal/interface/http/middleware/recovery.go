package middleware

import (
	"io"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apperrors "github.com/xiebiao/bookstore-lite/pkg/errors"
	"github.com/xiebiao/bookstore-lite/pkg/response"
)

// Recovery Panic恢复
// 基于gin.CustomRecovery，堆栈写入zap而不是gin的默认输出；
// 任何Handler panic都返回500 {error:"Something went wrong!"}，进程不退出
func Recovery() gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(io.Discard, func(c *gin.Context, recovered any) {
		response.Logger(c).Error("panic recovered",
			zap.Any("panic", recovered),
			zap.String("path", c.Request.URL.Path),
			zap.Stack("stack"),
		)
		response.AbortWithError(c, apperrors.ErrInternal)
	})
}
