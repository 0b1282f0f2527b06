package gormdb

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/bookstore-lite/internal/infrastructure/persistence"
)

// CollectionStore 数据库集合存储
type CollectionStore struct {
	db *gorm.DB
}

// NewCollectionStore 创建数据库集合存储
func NewCollectionStore(db *gorm.DB) *CollectionStore {
	return &CollectionStore{db: db}
}

var _ persistence.CollectionStore = (*CollectionStore)(nil)

// Read 按集合名读取文档
func (s *CollectionStore) Read(ctx context.Context, name string) ([]byte, error) {
	var m CollectionModel
	err := s.db.WithContext(ctx).Where("name = ?", name).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, persistence.ErrCollectionNotFound
	}
	if err != nil {
		return nil, err
	}
	return []byte(m.Data), nil
}

// Write 整体覆盖集合（upsert）
//
// 学习要点：
// clause.OnConflict由方言翻译成各自的语法
//   - MySQL:      INSERT ... ON DUPLICATE KEY UPDATE
//   - PostgreSQL: INSERT ... ON CONFLICT (name) DO UPDATE SET
//   - SQLite:     INSERT ... ON CONFLICT (name) DO UPDATE SET
func (s *CollectionStore) Write(ctx context.Context, name string, data []byte) error {
	m := CollectionModel{Name: name, Data: string(data)}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
		}).
		Create(&m).Error
}

// Close 关闭底层连接池
func (s *CollectionStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
