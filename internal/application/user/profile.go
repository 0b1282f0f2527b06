package user

import (
	"context"

	"github.com/xiebiao/bookstore-lite/internal/domain/user"
)

// ListUsersUseCase 用户列表（管理员/店员）
type ListUsersUseCase struct {
	userService user.Service
}

// NewListUsersUseCase 创建用户列表用例
func NewListUsersUseCase(userService user.Service) *ListUsersUseCase {
	return &ListUsersUseCase{userService: userService}
}

// Execute 返回全部用户
func (uc *ListUsersUseCase) Execute(ctx context.Context) ([]*user.User, error) {
	return uc.userService.ListUsers(ctx)
}

// GetProfileUseCase 查询用户资料
type GetProfileUseCase struct {
	userService user.Service
}

// NewGetProfileUseCase 创建查询资料用例
func NewGetProfileUseCase(userService user.Service) *GetProfileUseCase {
	return &GetProfileUseCase{userService: userService}
}

// Execute 查询资料
func (uc *GetProfileUseCase) Execute(ctx context.Context, userID string) (*user.User, error) {
	return uc.userService.GetUser(ctx, userID)
}

// UpdateProfileUseCase 更新用户资料
type UpdateProfileUseCase struct {
	userService user.Service
}

// NewUpdateProfileUseCase 创建更新资料用例
func NewUpdateProfileUseCase(userService user.Service) *UpdateProfileUseCase {
	return &UpdateProfileUseCase{userService: userService}
}

// Execute 更新资料
// 合并规则见user.ProfilePatch
func (uc *UpdateProfileUseCase) Execute(ctx context.Context, userID string, patch user.ProfilePatch) (*user.User, error) {
	return uc.userService.UpdateProfile(ctx, userID, patch)
}
