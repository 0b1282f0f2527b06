package book

import (
	apperrors "github.com/xiebiao/bookstore-lite/pkg/errors"
)

// 图书领域错误定义
var (
	// ErrBookNotFound 图书不存在
	ErrBookNotFound = apperrors.New(apperrors.ErrCodeBookNotFound, "Book not found")

	// ErrMissingFields 创建图书缺少必填字段
	ErrMissingFields = apperrors.New(apperrors.ErrCodeInvalidParams, "Missing required fields: title, author, isbn, price")

	// ErrISBNDuplicate ISBN已存在
	ErrISBNDuplicate = apperrors.New(apperrors.ErrCodeISBNDuplicate, "A book with this ISBN already exists")

	// ErrInvalidPrice 价格不是数字
	ErrInvalidPrice = apperrors.New(apperrors.ErrCodeInvalidParams, "Invalid price")

	// ErrNegativePrice 价格为负数
	ErrNegativePrice = apperrors.New(apperrors.ErrCodeInvalidParams, "Price must not be negative")

	// ErrInvalidStock 库存不是整数
	ErrInvalidStock = apperrors.New(apperrors.ErrCodeInvalidParams, "Invalid stock")

	// ErrNegativeStock 库存为负数
	ErrNegativeStock = apperrors.New(apperrors.ErrCodeInvalidParams, "Stock must not be negative")

	// ErrInvalidPublicationYear 出版年份不是整数
	ErrInvalidPublicationYear = apperrors.New(apperrors.ErrCodeInvalidParams, "Invalid publicationYear")
)

// 存储失败时对外的提示信息（按操作区分）
const (
	msgListFailed   = "Failed to retrieve books"
	msgGetFailed    = "Failed to retrieve book"
	msgCreateFailed = "Failed to create book"
	msgUpdateFailed = "Failed to update book"
	msgDeleteFailed = "Failed to delete book"
)

// persistenceError 存储层错误 → 500
func persistenceError(message string, err error) error {
	return &apperrors.AppError{Code: apperrors.ErrCodePersistence, Message: message, Err: err}
}
