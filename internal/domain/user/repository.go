package user

import (
	"context"
)

// Repository 用户仓储接口
// DDD设计说明：
// 1. 接口定义在domain层（依赖倒置原则），实现在infrastructure/persistence
// 2. 用户集合整体读写，用户名、邮箱的唯一性由领域服务在写入前检查
// 3. 便于单元测试（用内存实现替换）
type Repository interface {
	// Load 读取全部用户，集合不存在时返回空列表
	Load(ctx context.Context) ([]*User, error)

	// Save 整体写回用户集合
	Save(ctx context.Context, users []*User) error
}
