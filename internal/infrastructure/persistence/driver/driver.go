// Package driver 按配置组装集合存储后端
package driver

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/xiebiao/bookstore-lite/internal/infrastructure/config"
	"github.com/xiebiao/bookstore-lite/internal/infrastructure/persistence"
	"github.com/xiebiao/bookstore-lite/internal/infrastructure/persistence/gormdb"
	"github.com/xiebiao/bookstore-lite/internal/infrastructure/persistence/jsonfile"
	redisstore "github.com/xiebiao/bookstore-lite/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/bookstore-lite/pkg/jwt"
)

// Backend 存储后端
// Blacklist随后端走：redis驱动时用Redis共享黑名单，其他驱动用进程内黑名单
type Backend struct {
	Store     persistence.CollectionStore
	Blacklist jwt.Blacklist
}

// Close 关闭存储连接
func (b *Backend) Close() error {
	return b.Store.Close()
}

// Open 根据storage.driver创建存储
//
// 装饰顺序（由外到内）：
//
//	tracing → breaker（仅远程后端） → 具体后端
//
// 熔断打开时的快速失败同样会被记录成一个出错的Span
func Open(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Backend, error) {
	backend, err := open(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	backend.Store = persistence.WithTracing(backend.Store)

	logger.Info("存储后端已就绪",
		zap.String("driver", cfg.Storage.Driver),
		zap.String("books", cfg.Storage.BooksCollection),
		zap.String("users", cfg.Storage.UsersCollection),
	)
	return backend, nil
}

func open(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Backend, error) {
	switch cfg.Storage.Driver {
	case config.DriverJSON, "":
		store, err := jsonfile.NewStore(cfg.Storage.DataDir)
		if err != nil {
			return nil, err
		}
		return &Backend{Store: store, Blacklist: jwt.NewMemoryBlacklist()}, nil

	case config.DriverRedis:
		client, err := redisstore.NewClient(ctx, cfg.Redis, logger)
		if err != nil {
			return nil, err
		}
		store := redisstore.NewCollectionStore(client, cfg.Redis.KeyPrefix)
		return &Backend{
			Store:     withBreaker(store, "store-redis", cfg, logger),
			Blacklist: redisstore.NewTokenBlacklist(client, cfg.Redis.KeyPrefix),
		}, nil

	case config.DriverMySQL, config.DriverPostgres, config.DriverSQLite:
		dialector, err := gormdb.Dialector(cfg.Storage.Driver, cfg.Database)
		if err != nil {
			return nil, err
		}
		db, err := gormdb.NewDB(dialector, cfg.Database, cfg.Server.Mode == "debug", logger)
		if err != nil {
			return nil, err
		}
		store := gormdb.NewCollectionStore(db)
		return &Backend{
			Store:     withBreaker(store, "store-"+cfg.Storage.Driver, cfg, logger),
			Blacklist: jwt.NewMemoryBlacklist(),
		}, nil

	default:
		return nil, fmt.Errorf("不支持的存储驱动: %q", cfg.Storage.Driver)
	}
}

func withBreaker(store persistence.CollectionStore, name string, cfg *config.Config, logger *zap.Logger) persistence.CollectionStore {
	b := cfg.Storage.Breaker
	return persistence.WithBreaker(store, name, persistence.BreakerSettings{
		MaxRequests:         b.MaxRequests,
		Interval:            b.Interval,
		Timeout:             b.Timeout,
		ConsecutiveFailures: b.ConsecutiveFailures,
	}, logger)
}
