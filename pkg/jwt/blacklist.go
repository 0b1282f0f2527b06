package jwt

import (
	"context"
	"sync"
	"time"
)

// Blacklist Token黑名单
// 使用场景：用户登出后，未过期的Token不能再使用
// 实现：Redis（多实例共享）或进程内存（单实例、开发环境）
type Blacklist interface {
	// Revoke 将Token加入黑名单，ttl到期后自动移除
	Revoke(ctx context.Context, token string, ttl time.Duration) error

	// IsRevoked 检查Token是否已被吊销
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// MemoryBlacklist 进程内黑名单
type MemoryBlacklist struct {
	mu      sync.Mutex
	entries map[string]time.Time // token → 过期时间
	now     func() time.Time
}

// NewMemoryBlacklist 创建进程内黑名单
func NewMemoryBlacklist() *MemoryBlacklist {
	return &MemoryBlacklist{
		entries: make(map[string]time.Time),
		now:     time.Now,
	}
}

// Revoke 加入黑名单，顺带清理已过期的条目
func (b *MemoryBlacklist) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.now()
	for t, exp := range b.entries {
		if !exp.After(now) {
			delete(b.entries, t)
		}
	}
	if ttl > 0 {
		b.entries[token] = now.Add(ttl)
	}
	return nil
}

// IsRevoked 检查是否在黑名单中
func (b *MemoryBlacklist) IsRevoked(ctx context.Context, token string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	exp, ok := b.entries[token]
	return ok && exp.After(b.now()), nil
}
