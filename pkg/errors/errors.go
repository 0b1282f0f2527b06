package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError 自定义应用错误
// 设计说明：
// 1. Code用于区分错误类别，HTTP状态码由Code所在区间推导（见HTTPStatus）
// 2. Message直接作为响应体中的error字段返回给客户端
// 3. Err是内部错误，仅记录到日志，不返回给客户端（防止泄露敏感信息）
type AppError struct {
	Code    int    `json:"code"`    // 业务错误码
	Message string `json:"message"` // 返回给客户端的错误提示
	Err     error  `json:"-"`       // 内部错误（不序列化）
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap 支持errors.Is和errors.As
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is 按错误码比较
// 预定义错误经常被WithCause复制一份，Code和Message相同就认为是同一个错误
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code && e.Message == t.Message
}

// HTTPStatus 根据错误码区间返回HTTP状态码
func (e *AppError) HTTPStatus() int {
	return HTTPStatus(e.Code)
}

// New 创建新的AppError
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap 包装系统错误（如文件读写错误、Redis错误）
// 用途：将底层错误转换为业务错误，隐藏实现细节
func Wrap(err error, message string) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: message,
		Err:     err,
	}
}

// Wrapf 格式化包装错误
func Wrapf(err error, format string, args ...interface{}) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: fmt.Sprintf(format, args...),
		Err:     err,
	}
}

// WithCause 复制错误并附加内部原因（Code和Message保持不变）
func (e *AppError) WithCause(err error) *AppError {
	return &AppError{Code: e.Code, Message: e.Message, Err: err}
}

// =========================================
// 错误码定义
// =========================================
// 规范：错误码前三位即HTTP状态码
// - 400xx: 参数校验失败
// - 409xx: 唯一性冲突（对外仍返回400，与既有API保持一致）
// - 401xx/403xx: 认证/授权
// - 404xx: 资源不存在
// - 429xx: 请求过于频繁
// - 5xxxx: 服务端错误（存储读写失败、外部服务调用失败）

const (
	// 系统级错误码（50000-50099）
	ErrCodeInternal    = 50000 // 内部错误
	ErrCodePersistence = 50001 // 存储读写错误
	ErrCodeRedisError  = 50002 // Redis错误
	ErrCodeUnavailable = 50003 // 依赖服务不可用（熔断）

	// 认证授权错误
	ErrCodeUnauthorized    = 40100 // 未登录
	ErrCodeInvalidToken    = 40101 // Token无效
	ErrCodeTokenExpired    = 40102 // Token过期
	ErrCodeInvalidPassword = 40103 // 用户名或密码错误
	ErrCodeForbidden       = 40300 // 无权限

	// 资源错误（40400-40499）
	ErrCodeNotFound              = 40400 // 资源不存在（通用）
	ErrCodeUserNotFound          = 40401 // 用户不存在
	ErrCodeBookNotFound          = 40402 // 图书不存在
	ErrCodePaymentMethodNotFound = 40403 // 支付方式不存在
	ErrCodeRouteNotFound         = 40404 // 路由不存在

	// 参数错误（40000-40099）
	ErrCodeInvalidParams = 40000 // 参数错误
	ErrCodeBindError     = 40001 // 请求体格式错误

	// 冲突错误（40900-40999）
	ErrCodeDuplicateEntry    = 40900 // 重复记录（通用）
	ErrCodeISBNDuplicate     = 40901 // ISBN已存在
	ErrCodeUsernameDuplicate = 40902 // 用户名已存在
	ErrCodeEmailDuplicate    = 40903 // 邮箱已存在

	// 限流（42900-42999）
	ErrCodeTooManyRequests = 42900
)

// =========================================
// 预定义错误（避免每次都New）
// =========================================

var (
	// 系统错误
	ErrInternal    = New(ErrCodeInternal, "Something went wrong!")
	ErrRedisError  = New(ErrCodeRedisError, "Cache service error")
	ErrUnavailable = New(ErrCodeUnavailable, "Storage temporarily unavailable")

	// 认证授权
	ErrUnauthorized = New(ErrCodeUnauthorized, "Authentication required")
	ErrInvalidToken = New(ErrCodeInvalidToken, "Invalid token")
	ErrTokenExpired = New(ErrCodeTokenExpired, "Token expired")
	ErrTokenRevoked = New(ErrCodeInvalidToken, "Token has been revoked")
	ErrForbidden    = New(ErrCodeForbidden, "Insufficient permissions")

	// 通用
	ErrRouteNotFound   = New(ErrCodeRouteNotFound, "Endpoint not found")
	ErrBindError       = New(ErrCodeBindError, "Invalid request body")
	ErrTooManyRequests = New(ErrCodeTooManyRequests, "Too many requests, please try again later")
)

// =========================================
// 辅助函数
// =========================================

// HTTPStatus 错误码 → HTTP状态码
func HTTPStatus(code int) int {
	switch code / 100 {
	case 400, 409:
		return http.StatusBadRequest
	case 401:
		return http.StatusUnauthorized
	case 403:
		return http.StatusForbidden
	case 404:
		return http.StatusNotFound
	case 429:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// IsAppError 判断是否为AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// HasCode 判断错误链中是否存在指定错误码
func HasCode(err error, code int) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// GetAppError 提取AppError（如果不是AppError则包装成Internal错误）
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(err, ErrInternal.Message)
}
