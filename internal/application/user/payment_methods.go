package user

import (
	"context"

	"github.com/xiebiao/bookstore-lite/internal/domain/user"
)

// PaymentMethodsUseCase 支付方式管理（列表、新增、删除）
// 三个操作都只是转发给领域服务，合并在一个用例里
type PaymentMethodsUseCase struct {
	userService user.Service
}

// NewPaymentMethodsUseCase 创建支付方式用例
func NewPaymentMethodsUseCase(userService user.Service) *PaymentMethodsUseCase {
	return &PaymentMethodsUseCase{userService: userService}
}

// List 支付方式列表
func (uc *PaymentMethodsUseCase) List(ctx context.Context, userID string) ([]user.PaymentMethod, error) {
	return uc.userService.ListPaymentMethods(ctx, userID)
}

// Add 新增支付方式（isDefault=true时取消其他默认）
func (uc *PaymentMethodsUseCase) Add(ctx context.Context, userID string, in user.PaymentMethodInput) (*user.PaymentMethod, error) {
	return uc.userService.AddPaymentMethod(ctx, userID, in)
}

// Delete 删除支付方式
func (uc *PaymentMethodsUseCase) Delete(ctx context.Context, userID, pmID string) error {
	return uc.userService.DeletePaymentMethod(ctx, userID, pmID)
}
