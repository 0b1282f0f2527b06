// eventlog 订阅领域事件并写入日志
// 用于观察book.created、user.registered、order.placed事件（需要events.enabled=true的API实例）
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/xiebiao/bookstore-lite/internal/infrastructure/config"
	"github.com/xiebiao/bookstore-lite/pkg/logger"
	"github.com/xiebiao/bookstore-lite/pkg/mq"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	zapLogger, err := logger.New(logger.Options{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Output:  cfg.Log.Output,
		Service: "bookstore-eventlog",
	})
	if err != nil {
		log.Fatalf("初始化日志失败: %v", err)
	}
	defer zapLogger.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// #匹配全部事件
	consumer, err := mq.NewConsumer(cfg.Events.URL, cfg.Events.Exchange, mq.ExchangeTopic, cfg.Events.Queue, []string{"#"}, zapLogger)
	if err != nil {
		zapLogger.Fatal("创建消费者失败", zap.Error(err))
	}
	defer consumer.Close()

	if err := consumer.Consume(ctx, logEvent(zapLogger)); err != nil {
		zapLogger.Error("消费中断", zap.Error(err))
	}
}

// logEvent 把事件按类型输出一条结构化日志
func logEvent(logger *zap.Logger) mq.Handler {
	return func(ctx context.Context, event mq.Event) error {
		fields := []zap.Field{
			zap.String("event_id", event.ID),
			zap.Time("occurred_at", event.OccurredAt),
			zap.ByteString("payload", event.Payload),
		}
		switch event.Type {
		case mq.EventBookCreated, mq.EventUserRegistered, mq.EventOrderPlaced:
			logger.Info(event.Type, fields...)
		default:
			logger.Warn("未知事件类型", append(fields, zap.String("type", event.Type))...)
		}
		return nil
	}
}
