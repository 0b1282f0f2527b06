package user

import (
	"context"
	"time"

	"github.com/xiebiao/bookstore-lite/internal/domain/user"
	apperrors "github.com/xiebiao/bookstore-lite/pkg/errors"
	"github.com/xiebiao/bookstore-lite/pkg/jwt"
	"github.com/xiebiao/bookstore-lite/pkg/metrics"
)

// LoginUseCase 用户登录用例
// 设计说明：
// 1. 验证用户名密码（领域服务）
// 2. 签发JWT Access Token
// 3. 记录login_attempts_total{result}
type LoginUseCase struct {
	userService user.Service
	jwtManager  *jwt.Manager
}

// NewLoginUseCase 创建登录用例
func NewLoginUseCase(userService user.Service, jwtManager *jwt.Manager) *LoginUseCase {
	return &LoginUseCase{
		userService: userService,
		jwtManager:  jwtManager,
	}
}

// LoginRequest 登录请求
type LoginRequest struct {
	Username string
	Password string
}

// LoginResult 登录结果
type LoginResult struct {
	User      *user.User
	Token     string
	ExpiresAt time.Time
}

// Execute 执行登录
func (uc *LoginUseCase) Execute(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	// 1. 验证用户名密码
	u, err := uc.userService.Login(ctx, req.Username, req.Password)
	if err != nil {
		// 存储故障不算一次失败的登录尝试
		if !apperrors.HasCode(err, apperrors.ErrCodePersistence) {
			metrics.LoginAttempt(metrics.ResultFailure)
		}
		return nil, err
	}

	// 2. 生成Token
	token, expiresAt, err := uc.jwtManager.GenerateToken(u.ID, u.Username, string(u.Role))
	if err != nil {
		return nil, err
	}

	metrics.LoginAttempt(metrics.ResultSuccess)
	return &LoginResult{User: u, Token: token, ExpiresAt: expiresAt}, nil
}

// LogoutUseCase 用户登出用例
// JWT本身无状态，登出就是把Token放进黑名单直到它自然过期
type LogoutUseCase struct {
	jwtManager *jwt.Manager
	blacklist  jwt.Blacklist
}

// NewLogoutUseCase 创建登出用例
func NewLogoutUseCase(jwtManager *jwt.Manager, blacklist jwt.Blacklist) *LogoutUseCase {
	return &LogoutUseCase{jwtManager: jwtManager, blacklist: blacklist}
}

// Execute 执行登出
// 没有Token、Token无效或已过期时无需吊销，直接成功
func (uc *LogoutUseCase) Execute(ctx context.Context, accessToken string) error {
	if accessToken == "" {
		return nil
	}

	claims, err := uc.jwtManager.ParseToken(accessToken)
	if err != nil {
		return nil
	}

	return uc.blacklist.Revoke(ctx, accessToken, uc.jwtManager.TTL(claims))
}

// CurrentUserUseCase 当前登录用户
type CurrentUserUseCase struct {
	userService user.Service
	jwtManager  *jwt.Manager
	blacklist   jwt.Blacklist
}

// NewCurrentUserUseCase 创建当前用户用例
func NewCurrentUserUseCase(userService user.Service, jwtManager *jwt.Manager, blacklist jwt.Blacklist) *CurrentUserUseCase {
	return &CurrentUserUseCase{
		userService: userService,
		jwtManager:  jwtManager,
		blacklist:   blacklist,
	}
}

// Execute 根据Token查询用户
// 返回（nil, nil）表示请求没有携带Token
func (uc *CurrentUserUseCase) Execute(ctx context.Context, accessToken string) (*user.User, error) {
	if accessToken == "" {
		return nil, nil
	}

	claims, err := uc.jwtManager.ParseToken(accessToken)
	if err != nil {
		return nil, err
	}

	revoked, err := uc.blacklist.IsRevoked(ctx, accessToken)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, apperrors.ErrTokenRevoked
	}

	return uc.userService.GetUser(ctx, claims.UserID)
}
