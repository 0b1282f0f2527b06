package order

import (
	"context"

	"github.com/xiebiao/bookstore-lite/internal/application/event"
	"github.com/xiebiao/bookstore-lite/internal/domain/order"
	"github.com/xiebiao/bookstore-lite/internal/domain/user"
	"github.com/xiebiao/bookstore-lite/pkg/metrics"
	"github.com/xiebiao/bookstore-lite/pkg/mq"
)

// PlaceOrderUseCase 下单用例
// 设计说明：
// 1. 订单嵌在用户的订单历史里，不是独立集合，所以由用户领域服务负责写入
// 2. 订单是结账时的快照：不校验图书是否存在，也不扣减库存
// 3. 成功后记录orders_placed_total并发布order.placed事件
type PlaceOrderUseCase struct {
	userService user.Service
	notifier    *event.Notifier
}

// NewPlaceOrderUseCase 创建下单用例
func NewPlaceOrderUseCase(userService user.Service, notifier *event.Notifier) *PlaceOrderUseCase {
	return &PlaceOrderUseCase{
		userService: userService,
		notifier:    notifier,
	}
}

// Execute 执行下单
// 学习要点：
// orderId缺省时自动生成（ORD<秒级时间戳><6位随机数>），status缺省为pending
func (uc *PlaceOrderUseCase) Execute(ctx context.Context, userID string, o *order.Order) (*order.Order, error) {
	placed, err := uc.userService.AddOrder(ctx, userID, o)
	if err != nil {
		return nil, err
	}

	metrics.OrderPlaced()
	uc.notifier.Notify(ctx, mq.EventOrderPlaced, event.OrderPlaced{
		OrderID:   placed.OrderID,
		UserID:    userID,
		Total:     placed.Total,
		ItemCount: len(placed.Items),
	})

	return placed, nil
}

// ListOrdersUseCase 订单历史用例
type ListOrdersUseCase struct {
	userService user.Service
}

// NewListOrdersUseCase 创建订单历史用例
func NewListOrdersUseCase(userService user.Service) *ListOrdersUseCase {
	return &ListOrdersUseCase{userService: userService}
}

// Execute 按下单顺序返回订单历史
func (uc *ListOrdersUseCase) Execute(ctx context.Context, userID string) (*user.OrderHistory, error) {
	return uc.userService.ListOrders(ctx, userID)
}
