package user

import (
	apperrors "github.com/xiebiao/bookstore-lite/pkg/errors"
)

// 用户领域错误定义
var (
	// 注册校验
	ErrFieldsRequired   = apperrors.New(apperrors.ErrCodeInvalidParams, "All fields are required")
	ErrUsernameTooShort = apperrors.New(apperrors.ErrCodeInvalidParams, "Username must be at least 3 characters")
	ErrPasswordTooShort = apperrors.New(apperrors.ErrCodeInvalidParams, "Password must be at least 6 characters")
	ErrUsernameTaken    = apperrors.New(apperrors.ErrCodeUsernameDuplicate, "Username already exists")
	ErrEmailTaken       = apperrors.New(apperrors.ErrCodeEmailDuplicate, "Email already exists")

	// 登录
	ErrCredentialsRequired = apperrors.New(apperrors.ErrCodeInvalidParams, "Username and password are required")
	ErrInvalidCredentials  = apperrors.New(apperrors.ErrCodeInvalidPassword, "Invalid username or password")

	// 查询
	ErrUserNotFound          = apperrors.New(apperrors.ErrCodeUserNotFound, "User not found")
	ErrNoPaymentMethods      = apperrors.New(apperrors.ErrCodePaymentMethodNotFound, "No payment methods found")
	ErrPaymentMethodNotFound = apperrors.New(apperrors.ErrCodePaymentMethodNotFound, "Payment method not found")
)

// 存储失败时对外的提示信息
const (
	msgLoadFailed          = "Failed to load users"
	msgRegisterFailed      = "Error creating account. Please try again."
	msgAddStaffFailed      = "Error adding staff member. Please try again."
	msgSaveProfileFailed   = "Failed to save profile"
	msgSaveOrderFailed     = "Failed to save order"
	msgSavePaymentFailed   = "Failed to save payment method"
	msgDeletePaymentFailed = "Failed to delete payment method"
)

// persistenceError 存储层错误 → 500
func persistenceError(message string, err error) error {
	return &apperrors.AppError{Code: apperrors.ErrCodePersistence, Message: message, Err: err}
}
