package main

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/xiebiao/bookstore-lite/internal/domain/book"
	"github.com/xiebiao/bookstore-lite/internal/domain/user"
	"github.com/xiebiao/bookstore-lite/internal/infrastructure/config"
	"github.com/xiebiao/bookstore-lite/internal/infrastructure/persistence"
	"github.com/xiebiao/bookstore-lite/internal/infrastructure/persistence/driver"
	"github.com/xiebiao/bookstore-lite/internal/interface/http/middleware"
	"github.com/xiebiao/bookstore-lite/pkg/jwt"
)

// App 组装完成的应用
type App struct {
	Engine  *gin.Engine
	Backend *driver.Backend
}

// ========================================
// Custom Providers（自定义Provider）
// ========================================
// 有些依赖的构造参数需要从Config中提取，Wire无法自动推断，需要手写Provider

// provideBackend 打开存储后端，cleanup在退出时关闭连接
func provideBackend(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*driver.Backend, func(), error) {
	backend, err := driver.Open(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if err := backend.Close(); err != nil {
			logger.Warn("关闭存储失败", zap.Error(err))
		}
	}
	return backend, cleanup, nil
}

// provideBlacklist Token黑名单随存储后端走
func provideBlacklist(backend *driver.Backend) jwt.Blacklist {
	return backend.Blacklist
}

// provideBookRepository 图书仓储（集合名来自配置）
func provideBookRepository(backend *driver.Backend, cfg *config.Config, logger *zap.Logger) book.Repository {
	return persistence.NewBookRepository(backend.Store, cfg.Storage.BooksCollection, logger)
}

// provideUserRepository 用户仓储
func provideUserRepository(backend *driver.Backend, cfg *config.Config, logger *zap.Logger) user.Repository {
	return persistence.NewUserRepository(backend.Store, cfg.Storage.UsersCollection, logger)
}

// provideUserService 用户领域服务，密码方案由auth.password_scheme决定
func provideUserService(repo user.Repository, cfg *config.Config) user.Service {
	var opts []user.Option
	if cfg.Auth.PasswordScheme == config.PasswordSchemeBcrypt {
		opts = append(opts, user.WithPasswordScheme(user.NewBcryptScheme(0)))
	}
	return user.NewService(repo, opts...)
}

// provideJWTManager 从配置创建JWT管理器
func provideJWTManager(cfg *config.Config) *jwt.Manager {
	return jwt.NewManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpire)
}

// providePolicy auth.enforce_roles决定是否在服务端校验角色
func providePolicy(cfg *config.Config) middleware.Policy {
	return middleware.NewPolicy(cfg.Auth.EnforceRoles)
}
