// Package event 用例层的领域事件通知
package event

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/xiebiao/bookstore-lite/pkg/mq"
)

// Notifier 发布领域事件
// 事件只是通知：发布失败记录警告日志，不影响用例结果
type Notifier struct {
	publisher mq.Publisher
	logger    *zap.Logger
	now       func() time.Time
}

// NewNotifier 创建事件通知器，publisher为nil时使用NopPublisher
func NewNotifier(publisher mq.Publisher, logger *zap.Logger) *Notifier {
	if publisher == nil {
		publisher = mq.NopPublisher{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Notifier{publisher: publisher, logger: logger, now: time.Now}
}

// Notify 发布事件
func (n *Notifier) Notify(ctx context.Context, eventType string, payload interface{}) {
	event, err := mq.NewEvent(uuid.NewString(), eventType, payload, n.now())
	if err != nil {
		n.logger.Warn("构造事件失败", zap.String("type", eventType), zap.Error(err))
		return
	}

	if err := n.publisher.Publish(ctx, event); err != nil {
		n.logger.Warn("发布事件失败",
			zap.String("type", eventType),
			zap.String("event_id", event.ID),
			zap.Error(err),
		)
	}
}

// BookCreated book.created事件负载
type BookCreated struct {
	BookID int     `json:"bookId"`
	Title  string  `json:"title"`
	ISBN   string  `json:"isbn"`
	Price  float64 `json:"price"`
	Stock  int     `json:"stock"`
}

// UserRegistered user.registered事件负载
type UserRegistered struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// OrderPlaced order.placed事件负载
type OrderPlaced struct {
	OrderID   string  `json:"orderId"`
	UserID    string  `json:"userId"`
	Total     float64 `json:"total"`
	ItemCount int     `json:"itemCount"`
}
