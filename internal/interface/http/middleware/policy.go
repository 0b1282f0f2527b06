package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/xiebiao/bookstore-lite/internal/domain/user"
	apperrors "github.com/xiebiao/bookstore-lite/pkg/errors"
	"github.com/xiebiao/bookstore-lite/pkg/response"
)

// Capability 受控操作
type Capability string

const (
	CapManageCatalog Capability = "catalog:manage" // 新增/修改/删除图书
	CapViewStocktake Capability = "stocktake:view" // 库存盘点
	CapListUsers     Capability = "users:list"     // 用户列表
	CapAddStaff      Capability = "staff:add"      // 添加店员
	CapAccessAccount Capability = "account:access" // /api/users/:id/*（本人或店员）
)

// Policy 能力检查
// 设计说明：
// 1. 路由只声明需要的能力，具体怎么判定由Policy实现决定
// 2. ownerID是被访问账户的ID，只有CapAccessAccount用到
// 3. principal为nil表示匿名请求
type Policy interface {
	Authorize(principal *Principal, capability Capability, ownerID string) error
}

// OpenPolicy 全部放行
// 角色限制只存在于前端界面时使用（auth.enforce_roles=false）
type OpenPolicy struct{}

// Authorize 总是允许
func (OpenPolicy) Authorize(*Principal, Capability, string) error { return nil }

// RolePolicy 按角色校验
//
//	目录管理、盘点、用户列表：admin或staff
//	添加店员：               仅admin
//	账户访问：               本人，或admin/staff
type RolePolicy struct{}

// Authorize 按角色判定
func (RolePolicy) Authorize(principal *Principal, capability Capability, ownerID string) error {
	if principal == nil {
		return apperrors.ErrUnauthorized
	}

	switch capability {
	case CapManageCatalog, CapViewStocktake, CapListUsers:
		if principal.Role.IsStaff() {
			return nil
		}
	case CapAddStaff:
		if principal.Role == user.RoleAdmin {
			return nil
		}
	case CapAccessAccount:
		if principal.UserID == ownerID || principal.Role.IsStaff() {
			return nil
		}
	}
	return apperrors.ErrForbidden
}

// NewPolicy 根据配置选择Policy
func NewPolicy(enforceRoles bool) Policy {
	if enforceRoles {
		return RolePolicy{}
	}
	return OpenPolicy{}
}

// Require 要求当前调用方具备某项能力
// 使用方式：
//
//	books.POST("", middleware.Require(policy, middleware.CapManageCatalog), h.CreateBook)
func Require(policy Policy, capability Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal := GetPrincipal(c)
		err := policy.Authorize(principal, capability, c.Param("id"))
		if err == nil {
			c.Next()
			return
		}

		// 带了Token但解析失败时，返回具体原因（过期、已吊销等）
		if principal == nil {
			if cause := authError(c); cause != nil {
				err = cause
			}
		}
		response.AbortWithError(c, err)
	}
}
