// seed 写入示例图书和默认账户
//
// 用法：
//
//	go run ./cmd/seed            # 集合为空时写入
//	go run ./cmd/seed -force     # 覆盖已有数据
//	go run ./cmd/seed -config config/config.yaml
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"go.uber.org/zap"

	"github.com/xiebiao/bookstore-lite/internal/domain/user"
	"github.com/xiebiao/bookstore-lite/internal/infrastructure/config"
	"github.com/xiebiao/bookstore-lite/internal/infrastructure/persistence"
	"github.com/xiebiao/bookstore-lite/internal/infrastructure/persistence/driver"
	"github.com/xiebiao/bookstore-lite/pkg/logger"
)

func main() {
	configPath := flag.String("config", "", "配置文件路径(默认按BOOKSTORE_ENV查找config/config.yaml)")
	force := flag.Bool("force", false, "覆盖已有集合")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	zapLogger, err := logger.New(logger.Options{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Output:  cfg.Log.Output,
		Service: "bookstore-seed",
	})
	if err != nil {
		log.Fatalf("初始化日志失败: %v", err)
	}
	defer zapLogger.Sync() //nolint:errcheck

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	backend, err := driver.Open(ctx, cfg, zapLogger)
	if err != nil {
		zapLogger.Fatal("打开存储失败", zap.Error(err))
	}
	defer backend.Close()

	var scheme user.PasswordScheme = user.PlaintextScheme{}
	if cfg.Auth.PasswordScheme == config.PasswordSchemeBcrypt {
		scheme = user.NewBcryptScheme(0)
	}

	s := &seeder{
		books:     persistence.NewBookRepository(backend.Store, cfg.Storage.BooksCollection, zapLogger),
		users:     persistence.NewUserRepository(backend.Store, cfg.Storage.UsersCollection, zapLogger),
		passwords: scheme,
		now:       time.Now,
		logger:    zapLogger,
	}
	if err := s.run(ctx, *force); err != nil {
		zapLogger.Fatal("写入示例数据失败", zap.Error(err))
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	return config.Load()
}
