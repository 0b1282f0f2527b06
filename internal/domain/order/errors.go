package order

import (
	apperrors "github.com/xiebiao/bookstore-lite/pkg/errors"
)

// 订单领域错误定义
var (
	// ErrInvalidStatus 订单状态不合法
	ErrInvalidStatus = apperrors.New(apperrors.ErrCodeInvalidParams, "Invalid order status")
)
