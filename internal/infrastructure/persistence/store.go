// Package persistence 集合存储层
//
// 整体结构：
//
//	book.Repository / user.Repository  （领域层接口）
//	        ↑ 实现
//	BookRepository / UserRepository    （文档编解码：Go结构 ↔ JSON文档）
//	        ↓ 依赖
//	CollectionStore                    （按集合名整体读写字节）
//	        ↑ 实现
//	jsonfile / redis / gormdb          （具体后端，由driver包按配置选择）
//
// 每次读写都是整个集合，没有局部更新，也没有锁：并发写入时最后写入者生效
package persistence

import (
	"context"
	"errors"
)

// ErrCollectionNotFound 集合不存在（从未写入过）
// 仓储把它当作空集合处理，不是错误
var ErrCollectionNotFound = errors.New("collection not found")

// CollectionStore 集合存储接口
type CollectionStore interface {
	// Read 读取集合的完整JSON文档，集合不存在时返回ErrCollectionNotFound
	Read(ctx context.Context, name string) ([]byte, error)

	// Write 整体覆盖集合文档
	Write(ctx context.Context, name string, data []byte) error

	// Close 释放连接等资源
	Close() error
}
