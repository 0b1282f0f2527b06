package handler

import (
	"errors"
	"io"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	apperrors "github.com/xiebiao/bookstore-lite/pkg/errors"
)

// bindJSON 绑定请求体
// 1. 空请求体按空对象处理，缺字段的提示交给领域层
// 2. JSON格式错误 → 400 "Invalid request body"
// 3. binding标签校验失败 → 400 "Invalid <field>"
func bindJSON(c *gin.Context, obj interface{}) error {
	err := c.ShouldBindJSON(obj)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return apperrors.New(apperrors.ErrCodeInvalidParams, "Invalid "+fieldName(verrs[0]))
	}
	return apperrors.ErrBindError.WithCause(err)
}

// bindQuery 绑定查询参数
func bindQuery(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBindQuery(obj); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return apperrors.New(apperrors.ErrCodeInvalidParams, "Invalid "+fieldName(verrs[0]))
		}
		return apperrors.New(apperrors.ErrCodeInvalidParams, "Invalid query parameters").WithCause(err)
	}
	return nil
}

// fieldName 结构体字段名转为小驼峰（与JSON字段一致）
func fieldName(fe validator.FieldError) string {
	name := fe.Field()
	if name == "" {
		return "field"
	}
	return strings.ToLower(name[:1]) + name[1:]
}
