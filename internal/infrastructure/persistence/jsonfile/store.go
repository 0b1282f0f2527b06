// Package jsonfile 本地JSON文件集合存储（默认后端）
// 每个集合一个文件：<dataDir>/<name>.json
package jsonfile

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/xiebiao/bookstore-lite/internal/infrastructure/persistence"
)

// Store 文件存储
type Store struct {
	dir string
}

// NewStore 创建文件存储，数据目录不存在时自动创建
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("创建数据目录失败: %w", err)
	}
	return &Store{dir: dir}, nil
}

var _ persistence.CollectionStore = (*Store)(nil)

// Path 集合对应的文件路径
func (s *Store) Path(name string) string {
	return filepath.Join(s.dir, name+".json")
}

// Read 读取整个文件
func (s *Store) Read(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.Path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, persistence.ErrCollectionNotFound
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Write 整体覆盖文件
//
// 步骤：
// 1. 在同一目录写临时文件（保证rename不跨文件系统）
// 2. Sync落盘
// 3. rename替换原文件，读者要么看到旧文档要么看到新文档，不会读到写了一半的内容
func (s *Store) Write(ctx context.Context, name string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir, "."+name+"-*.tmp")
	if err != nil {
		return fmt.Errorf("创建临时文件失败: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // rename成功后是空操作

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("写入临时文件失败: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("同步临时文件失败: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("关闭临时文件失败: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("设置文件权限失败: %w", err)
	}

	if err := os.Rename(tmpName, s.Path(name)); err != nil {
		return fmt.Errorf("替换集合文件失败: %w", err)
	}
	return nil
}

// Close 文件存储无需释放资源
func (s *Store) Close() error { return nil }
