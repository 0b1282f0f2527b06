package gormdb

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/xiebiao/bookstore-lite/internal/infrastructure/config"
	"github.com/xiebiao/bookstore-lite/internal/infrastructure/persistence"
)

func setupSQLite(t *testing.T) *CollectionStore {
	t.Helper()
	db, err := NewDB(sqlite.Open(":memory:"), config.DatabaseConfig{MaxOpenConns: 1}, false, zap.NewNop())
	require.NoError(t, err)
	store := NewCollectionStore(db)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestCollectionStore_SQLite(t *testing.T) {
	ctx := context.Background()
	store := setupSQLite(t)

	t.Run("集合不存在", func(t *testing.T) {
		_, err := store.Read(ctx, "books")
		assert.ErrorIs(t, err, persistence.ErrCollectionNotFound)
	})

	t.Run("插入后覆盖", func(t *testing.T) {
		require.NoError(t, store.Write(ctx, "books", []byte(`[{"id":1}]`)))
		require.NoError(t, store.Write(ctx, "books", []byte(`[{"id":1},{"id":2}]`)))

		data, err := store.Read(ctx, "books")
		require.NoError(t, err)
		assert.JSONEq(t, `[{"id":1},{"id":2}]`, string(data))

		var count int64
		require.NoError(t, store.db.Model(&CollectionModel{}).Count(&count).Error)
		assert.Equal(t, int64(1), count, "同一集合只有一行")
	})

	t.Run("集合之间互不影响", func(t *testing.T) {
		require.NoError(t, store.Write(ctx, "users", []byte(`{"users":[]}`)))
		data, err := store.Read(ctx, "users")
		require.NoError(t, err)
		assert.JSONEq(t, `{"users":[]}`, string(data))

		books, err := store.Read(ctx, "books")
		require.NoError(t, err)
		assert.Contains(t, string(books), `"id":2`)
	})

	t.Run("配合仓储使用", func(t *testing.T) {
		repo := persistence.NewBookRepository(store, "catalog", zap.NewNop())
		books, err := repo.Load(ctx)
		require.NoError(t, err)
		assert.Empty(t, books)
	})
}

// newMockStore 基于sqlmock的MySQL存储，用于校验生成的SQL
func newMockStore(t *testing.T) (*CollectionStore, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)

	t.Cleanup(func() { sqlDB.Close() })
	return NewCollectionStore(db), mock
}

func TestCollectionStore_MySQLUpsert(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec("INSERT INTO `collections` .* ON DUPLICATE KEY UPDATE `data`=VALUES\\(`data`\\),`updated_at`=VALUES\\(`updated_at`\\)").
		WithArgs("books", `[]`, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, store.Write(context.Background(), "books", []byte(`[]`)))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCollectionStore_MySQLRead(t *testing.T) {
	ctx := context.Background()

	t.Run("找到集合", func(t *testing.T) {
		store, mock := newMockStore(t)
		rows := sqlmock.NewRows([]string{"name", "data", "updated_at"}).
			AddRow("books", `[{"id":1}]`, time.Now())
		mock.ExpectQuery("SELECT \\* FROM `collections` WHERE name = \\?").WillReturnRows(rows)

		data, err := store.Read(ctx, "books")
		require.NoError(t, err)
		assert.Equal(t, `[{"id":1}]`, string(data))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("没有记录", func(t *testing.T) {
		store, mock := newMockStore(t)
		mock.ExpectQuery("SELECT \\* FROM `collections`").
			WillReturnRows(sqlmock.NewRows([]string{"name", "data", "updated_at"}))

		_, err := store.Read(ctx, "books")
		assert.ErrorIs(t, err, persistence.ErrCollectionNotFound)
	})

	t.Run("数据库错误", func(t *testing.T) {
		store, mock := newMockStore(t)
		mock.ExpectQuery("SELECT \\* FROM `collections`").WillReturnError(errors.New("connection reset"))

		_, err := store.Read(ctx, "books")
		assert.ErrorContains(t, err, "connection reset")
		assert.NotErrorIs(t, err, persistence.ErrCollectionNotFound)
	})
}

func TestDialector(t *testing.T) {
	cfg := config.DatabaseConfig{Host: "db", Port: 5432, User: "u", DBName: "bookstore", SQLitePath: "x.db"}

	for _, driver := range []string{config.DriverMySQL, config.DriverPostgres, config.DriverSQLite} {
		d, err := Dialector(driver, cfg)
		require.NoError(t, err)
		assert.Equal(t, driver, d.Name())
	}

	_, err := Dialector("oracle", cfg)
	assert.Error(t, err)
}
