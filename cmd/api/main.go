package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/xiebiao/bookstore-lite/internal/infrastructure/config"
	"github.com/xiebiao/bookstore-lite/pkg/logger"
	"github.com/xiebiao/bookstore-lite/pkg/metrics"
	"github.com/xiebiao/bookstore-lite/pkg/mq"
	"github.com/xiebiao/bookstore-lite/pkg/tracing"
)

// @title                      Bookstore API
// @version                    1.0.0
// @description                书店演示API:图书目录、用户账户、订单与支付方式
// @host                       localhost:3001
// @BasePath                   /
// @securityDefinitions.apikey BearerAuth
// @in                         header
// @name                       Authorization

// main 主程序入口
// 启动顺序：配置 → 日志 → 追踪 → 事件发布 → 依赖注入（Wire） → HTTP服务 → 优雅关闭
func main() {
	// 1. 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	// 2. 初始化日志
	zapLogger, err := logger.New(logger.Options{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Output:  cfg.Log.Output,
		Service: "bookstore-api",
		Caller:  cfg.Log.EnableCaller,
	})
	if err != nil {
		log.Fatalf("初始化日志失败: %v", err)
	}
	defer zapLogger.Sync() //nolint:errcheck

	if err := run(cfg, zapLogger); err != nil {
		zapLogger.Fatal("服务异常退出", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("配置加载成功",
		zap.Int("port", cfg.Server.Port),
		zap.String("mode", cfg.Server.Mode),
		zap.String("storage", cfg.Storage.Driver),
		zap.Bool("enforce_roles", cfg.Auth.EnforceRoles),
	)

	// 3. 链路追踪（可选）
	if cfg.Tracing.Enabled {
		shutdown, err := tracing.InitTracer(cfg.Tracing.ServiceName, cfg.Tracing.Endpoint)
		if err != nil {
			return err
		}
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				logger.Warn("关闭追踪失败", zap.Error(err))
			}
		}()
		logger.Info("链路追踪已启用", zap.String("endpoint", cfg.Tracing.Endpoint))
	}

	if cfg.Metrics.Enabled {
		metrics.InitMetrics()
	}

	// 4. 领域事件发布（可选，RabbitMQ不可用时不影响启动）
	var publisher mq.Publisher = mq.NopPublisher{}
	if cfg.Events.Enabled {
		p, err := mq.NewPublisher(cfg.Events.URL, cfg.Events.Exchange, mq.ExchangeTopic, logger)
		if err != nil {
			logger.Warn("连接RabbitMQ失败,领域事件不会发布", zap.Error(err))
		} else {
			publisher = p
		}
	}
	defer publisher.Close() //nolint:errcheck

	// 5. 依赖注入（Wire生成）
	switch cfg.Server.Mode {
	case gin.ReleaseMode, gin.TestMode:
		gin.SetMode(cfg.Server.Mode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	app, cleanup, err := InitializeApp(ctx, cfg, logger, publisher)
	if err != nil {
		return err
	}
	defer cleanup()

	// 6. 启动HTTP服务
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      app.Engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("服务启动成功",
			zap.String("addr", srv.Addr),
			zap.String("docs", fmt.Sprintf("http://localhost:%d/api-docs", cfg.Server.Port)),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// 7. 等待退出信号，优雅关闭
	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("正在关闭服务...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("关闭HTTP服务失败: %w", err)
	}
	logger.Info("服务已停止")
	return nil
}
