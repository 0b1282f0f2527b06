package book

import (
	"context"
)

// Repository 图书仓储接口（依赖倒置原则）
// 设计说明：
// 1. 由domain层定义接口，infrastructure层实现
// 2. 图书集合整体读写：Load返回全部图书，Save整体覆盖
// 3. 不提供锁，两个并发写入者可能互相覆盖（最后写入者生效）
type Repository interface {
	// Load 读取全部图书，集合不存在时返回空列表
	Load(ctx context.Context) ([]*Book, error)

	// Save 整体写回图书集合
	Save(ctx context.Context, books []*Book) error
}
