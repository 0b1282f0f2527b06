// Package gormdb 关系数据库后端（MySQL / PostgreSQL / SQLite）
//
// 表结构只有一张collections表，每个集合一行：
//
//	name（主键） | data（整个JSON文档） | updated_at
//
// 与jsonfile后端语义完全一致，只是换了落盘位置
package gormdb

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xiebiao/bookstore-lite/internal/infrastructure/config"
)

// Dialector 按存储驱动选择GORM方言
func Dialector(driver string, cfg config.DatabaseConfig) (gorm.Dialector, error) {
	switch driver {
	case config.DriverMySQL:
		return mysql.Open(cfg.DSN()), nil
	case config.DriverPostgres:
		return postgres.Open(cfg.PostgresDSN()), nil
	case config.DriverSQLite:
		return sqlite.Open(cfg.SQLitePath), nil
	default:
		return nil, fmt.Errorf("不支持的数据库驱动: %q", driver)
	}
}

// NewDB 创建数据库连接
// 设计说明：
// 1. 使用GORM v2作为ORM框架
// 2. 配置连接池参数（MaxOpenConns、MaxIdleConns、ConnMaxLifetime）
// 3. debug模式打印SQL，其他模式静默
// 4. 自动迁移collections表
func NewDB(dialector gorm.Dialector, cfg config.DatabaseConfig, debug bool, log *zap.Logger) (*gorm.DB, error) {
	// 1. 配置GORM日志
	logLevel := logger.Silent
	if debug {
		logLevel = logger.Info
	}

	// 2. 连接数据库
	// 单条upsert不需要GORM默认包裹的事务
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:                 logger.Default.LogMode(logLevel),
		SkipDefaultTransaction: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	// 3. 配置连接池
	// 学习要点：合理的连接池配置对性能至关重要
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	// 4. 测试连接
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}
	log.Info("数据库连接成功", zap.String("dialect", dialector.Name()))

	// 5. 自动迁移
	// 注意：AutoMigrate只会创建表、添加字段，不会删除或修改现有字段
	if err := db.AutoMigrate(&CollectionModel{}); err != nil {
		return nil, fmt.Errorf("数据库迁移失败: %w", err)
	}

	return db, nil
}

// CollectionModel GORM集合模型
// 说明：Data的size超过16MB，MySQL映射为longtext，PostgreSQL/SQLite为text
type CollectionModel struct {
	Name      string    `gorm:"primaryKey;size:64;comment:集合名称"`
	Data      string    `gorm:"size:4294967295;not null;comment:集合JSON文档"`
	UpdatedAt time.Time `gorm:"comment:最后写入时间"`
}

// TableName 指定表名
func (CollectionModel) TableName() string {
	return "collections"
}
