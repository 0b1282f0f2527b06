package driver

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xiebiao/bookstore-lite/internal/infrastructure/config"
	"github.com/xiebiao/bookstore-lite/internal/infrastructure/persistence"
	"github.com/xiebiao/bookstore-lite/pkg/jwt"
)

func TestOpen(t *testing.T) {
	ctx := context.Background()

	t.Run("json驱动", func(t *testing.T) {
		cfg := &config.Config{}
		cfg.Storage.Driver = config.DriverJSON
		cfg.Storage.DataDir = t.TempDir()

		backend, err := Open(ctx, cfg, zap.NewNop())
		require.NoError(t, err)
		defer backend.Close()

		assert.IsType(t, &jwt.MemoryBlacklist{}, backend.Blacklist)

		require.NoError(t, backend.Store.Write(ctx, "books", []byte(`[]`)))
		assert.FileExists(t, filepath.Join(cfg.Storage.DataDir, "books.json"))
	})

	t.Run("sqlite驱动", func(t *testing.T) {
		cfg := &config.Config{}
		cfg.Storage.Driver = config.DriverSQLite
		cfg.Database.SQLitePath = filepath.Join(t.TempDir(), "bookstore.db")

		backend, err := Open(ctx, cfg, zap.NewNop())
		require.NoError(t, err)
		defer backend.Close()

		_, err = backend.Store.Read(ctx, "users")
		assert.ErrorIs(t, err, persistence.ErrCollectionNotFound)

		require.NoError(t, backend.Store.Write(ctx, "users", []byte(`{"users":[]}`)))
		data, err := backend.Store.Read(ctx, "users")
		require.NoError(t, err)
		assert.JSONEq(t, `{"users":[]}`, string(data))
	})

	t.Run("未知驱动", func(t *testing.T) {
		cfg := &config.Config{}
		cfg.Storage.Driver = "cassandra"
		_, err := Open(ctx, cfg, zap.NewNop())
		assert.Error(t, err)
	})
}
