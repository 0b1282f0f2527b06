package user

import (
	"context"

	"github.com/xiebiao/bookstore-lite/internal/application/event"
	"github.com/xiebiao/bookstore-lite/internal/domain/user"
	"github.com/xiebiao/bookstore-lite/pkg/metrics"
	"github.com/xiebiao/bookstore-lite/pkg/mq"
)

// RegisterUseCase 用户注册用例
// 设计说明：
// 1. 顾客自助注册和管理员添加店员走同一条校验/创建路径，只是角色不同
// 2. 注册成功后记录users_registered_total{role}并发布user.registered事件
type RegisterUseCase struct {
	userService user.Service
	notifier    *event.Notifier
}

// NewRegisterUseCase 创建注册用例
func NewRegisterUseCase(userService user.Service, notifier *event.Notifier) *RegisterUseCase {
	return &RegisterUseCase{
		userService: userService,
		notifier:    notifier,
	}
}

// RegisterRequest 注册请求
// Role为空或customer时是顾客注册，staff时是添加店员
type RegisterRequest struct {
	Username  string
	Password  string
	Email     string
	FirstName string
	LastName  string
	Role      user.Role
}

// Execute 执行注册
func (uc *RegisterUseCase) Execute(ctx context.Context, req RegisterRequest) (*user.User, error) {
	reg := user.Registration{
		Username:  req.Username,
		Password:  req.Password,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}

	// 1. 按角色调用领域服务
	var (
		u   *user.User
		err error
	)
	if req.Role == user.RoleStaff {
		u, err = uc.userService.AddStaff(ctx, reg)
	} else {
		u, err = uc.userService.Register(ctx, reg)
	}
	if err != nil {
		return nil, err
	}

	// 2. 指标 + 事件
	metrics.UserRegistered(string(u.Role))
	uc.notifier.Notify(ctx, mq.EventUserRegistered, event.UserRegistered{
		UserID:   u.ID,
		Username: u.Username,
		Role:     string(u.Role),
	})

	return u, nil
}
