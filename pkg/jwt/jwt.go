package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	apperrors "github.com/xiebiao/bookstore-lite/pkg/errors"
)

// issuer 签发者
const issuer = "bookstore"

// Manager JWT管理器
// 设计说明：
// 1. 只签发Access Token(HS256)，有效期由配置决定
// 2. JWT本身无状态，登出通过Blacklist让Token提前失效
type Manager struct {
	secret            string
	accessTokenExpire time.Duration
	now               func() time.Time
}

// NewManager 创建JWT管理器
func NewManager(secret string, accessTokenExpire time.Duration) *Manager {
	return &Manager{
		secret:            secret,
		accessTokenExpire: accessTokenExpire,
		now:               time.Now,
	}
}

// Claims 自定义JWT Claims
// 学习要点：
// 1. 嵌入jwt.RegisteredClaims获取标准字段（exp、iat、nbf等）
// 2. 自定义字段只放鉴权需要的信息（用户ID、用户名、角色）
type Claims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// GenerateToken 生成Access Token
// 返回Token字符串和过期时间
func (m *Manager) GenerateToken(userID, username, role string) (string, time.Time, error) {
	now := m.now()
	expiresAt := now.Add(m.accessTokenExpire)

	claims := Claims{
		UserID:   userID,
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    issuer,
			Subject:   userID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(m.secret))
	if err != nil {
		return "", time.Time{}, apperrors.Wrap(err, "生成Access Token失败")
	}
	return signed, expiresAt, nil
}

// ParseToken 解析并验证Token
// 学习要点：
// 1. 验证签名算法，防止alg=none之类的伪造
// 2. 过期单独返回ErrTokenExpired，便于前端提示重新登录
func (m *Manager) ParseToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("非法的签名算法: %v", token.Header["alg"])
		}
		return []byte(m.secret), nil
	}, jwt.WithIssuer(issuer), jwt.WithTimeFunc(m.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperrors.ErrTokenExpired
		}
		return nil, apperrors.ErrInvalidToken.WithCause(err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, apperrors.ErrInvalidToken
	}
	return claims, nil
}

// TTL Token剩余有效期（加入黑名单时使用）
func (m *Manager) TTL(claims *Claims) time.Duration {
	if claims.ExpiresAt == nil {
		return m.accessTokenExpire
	}
	ttl := claims.ExpiresAt.Sub(m.now())
	if ttl < 0 {
		return 0
	}
	return ttl
}
