package redis

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/xiebiao/bookstore-lite/internal/infrastructure/persistence"
)

// CollectionStore Redis集合存储
// 每个集合一个String类型的key,GET/SET整体读写
type CollectionStore struct {
	client *redis.Client
	prefix string
}

// NewCollectionStore 创建Redis集合存储
func NewCollectionStore(client *redis.Client, prefix string) *CollectionStore {
	return &CollectionStore{client: client, prefix: prefix}
}

var _ persistence.CollectionStore = (*CollectionStore)(nil)

// Read 读取集合
// 学习要点：redis.Nil表示key不存在，不是错误
func (s *CollectionStore) Read(ctx context.Context, name string) ([]byte, error) {
	data, err := s.client.Get(ctx, s.collectionKey(name)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, persistence.ErrCollectionNotFound
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Write 覆盖集合（不过期）
func (s *CollectionStore) Write(ctx context.Context, name string, data []byte) error {
	return s.client.Set(ctx, s.collectionKey(name), data, 0).Err()
}

// Close 关闭客户端
func (s *CollectionStore) Close() error {
	return s.client.Close()
}

func (s *CollectionStore) collectionKey(name string) string {
	return key(s.prefix, "collection", name)
}
