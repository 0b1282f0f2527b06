package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/xiebiao/bookstore-lite/internal/domain/user"
	apperrors "github.com/xiebiao/bookstore-lite/pkg/errors"
	"github.com/xiebiao/bookstore-lite/pkg/jwt"
	"github.com/xiebiao/bookstore-lite/pkg/response"
)

// Context中的key
const (
	principalKey = "principal"
	authErrorKey = "auth_error"
)

// Principal 当前请求的调用方（从Token解析）
type Principal struct {
	UserID   string
	Username string
	Role     user.Role
}

// AuthMiddleware JWT认证中间件
// 设计说明：
// 1. 从Header提取Token
// 2. 检查Token黑名单
// 3. 验证Token有效性
// 4. 将调用方信息注入Context
//
// 认证本身不拒绝请求，是否放行由Policy决定（见policy.go）
type AuthMiddleware struct {
	jwtManager *jwt.Manager
	blacklist  jwt.Blacklist
}

// NewAuthMiddleware 创建认证中间件
func NewAuthMiddleware(jwtManager *jwt.Manager, blacklist jwt.Blacklist) *AuthMiddleware {
	return &AuthMiddleware{
		jwtManager: jwtManager,
		blacklist:  blacklist,
	}
}

// Authenticate 解析Token（可选登录）
// 没有Token时作为匿名请求继续；Token无效时记录错误，交给后续Policy判断
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. 从Header提取Token
		// 格式：Authorization: Bearer <token>
		tokenString := BearerToken(c)
		if tokenString == "" {
			c.Next()
			return
		}

		// 2. 检查Token是否在黑名单中（用户已登出）
		revoked, err := m.blacklist.IsRevoked(c.Request.Context(), tokenString)
		if err != nil {
			response.Logger(c).Warn("检查Token黑名单失败")
			c.Set(authErrorKey, err)
			c.Next()
			return
		}
		if revoked {
			c.Set(authErrorKey, apperrors.ErrTokenRevoked)
			c.Next()
			return
		}

		// 3. 验证Token并解析Claims
		claims, err := m.jwtManager.ParseToken(tokenString)
		if err != nil {
			c.Set(authErrorKey, err)
			c.Next()
			return
		}

		// 4. 将调用方信息注入到Context（后续Handler可以使用）
		// 学习要点：使用Context传递请求级别的数据
		c.Set(principalKey, &Principal{
			UserID:   claims.UserID,
			Username: claims.Username,
			Role:     user.Role(claims.Role),
		})
		c.Next()
	}
}

// BearerToken 从Authorization头提取Token，格式不对时返回空串
func BearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// =========================================
// Context辅助函数
// =========================================

// GetPrincipal 从Context获取当前调用方，匿名请求返回nil
func GetPrincipal(c *gin.Context) *Principal {
	if v, exists := c.Get(principalKey); exists {
		if p, ok := v.(*Principal); ok {
			return p
		}
	}
	return nil
}

// authError Token解析失败的原因（没有则为nil）
func authError(c *gin.Context) error {
	if v, exists := c.Get(authErrorKey); exists {
		if err, ok := v.(error); ok {
			return err
		}
	}
	return nil
}
