package main

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xiebiao/bookstore-lite/internal/domain/book"
	"github.com/xiebiao/bookstore-lite/internal/domain/user"
	"github.com/xiebiao/bookstore-lite/internal/infrastructure/persistence"
	"github.com/xiebiao/bookstore-lite/internal/infrastructure/persistence/jsonfile"
)

func newSeeder(t *testing.T) *seeder {
	t.Helper()
	store, err := jsonfile.NewStore(t.TempDir())
	require.NoError(t, err)
	return &seeder{
		books:     persistence.NewBookRepository(store, "books", nil),
		users:     persistence.NewUserRepository(store, "users", nil),
		passwords: user.PlaintextScheme{},
		now:       func() time.Time { return time.Date(2024, 5, 20, 8, 0, 0, 0, time.UTC) },
		logger:    zap.NewNop(),
	}
}

func TestSeeder(t *testing.T) {
	ctx := context.Background()

	t.Run("空集合写入示例数据", func(t *testing.T) {
		s := newSeeder(t)
		require.NoError(t, s.run(ctx, false))

		books, err := s.books.Load(ctx)
		require.NoError(t, err)
		assert.Len(t, books, len(seedBooks()))

		isbns := map[string]bool{}
		for i, b := range books {
			assert.Equal(t, i+1, b.ID)
			assert.False(t, isbns[b.ISBN], "ISBN不能重复")
			isbns[b.ISBN] = true
		}

		users, err := s.users.Load(ctx)
		require.NoError(t, err)
		require.Len(t, users, 3)

		svc := user.NewService(s.users)
		for _, acc := range seedAccounts {
			u, err := svc.Login(ctx, acc.reg.Username, acc.reg.Password)
			require.NoError(t, err, acc.reg.Username)
			assert.Equal(t, acc.role, u.Role)
		}
	})

	t.Run("已有数据不覆盖", func(t *testing.T) {
		s := newSeeder(t)
		mine := []*book.Book{{ID: 7, Title: "Mine", Author: "Me", ISBN: "x", Price: 1, Category: book.DefaultCategory}}
		require.NoError(t, s.books.Save(ctx, mine))

		require.NoError(t, s.run(ctx, false))
		books, err := s.books.Load(ctx)
		require.NoError(t, err)
		require.Len(t, books, 1)
		assert.Equal(t, "Mine", books[0].Title)
	})

	t.Run("force覆盖", func(t *testing.T) {
		s := newSeeder(t)
		require.NoError(t, s.books.Save(ctx, []*book.Book{{ID: 7, Title: "Mine", ISBN: "x"}}))

		require.NoError(t, s.run(ctx, true))
		books, err := s.books.Load(ctx)
		require.NoError(t, err)
		assert.Len(t, books, len(seedBooks()))
	})

	t.Run("bcrypt方案", func(t *testing.T) {
		s := newSeeder(t)
		s.passwords = user.NewBcryptScheme(4)
		require.NoError(t, s.run(ctx, false))

		users, err := s.users.Load(ctx)
		require.NoError(t, err)
		assert.NotEqual(t, "admin123", users[0].Password)

		svc := user.NewService(s.users, user.WithPasswordScheme(user.NewBcryptScheme(4)))
		_, err = svc.Login(ctx, "admin", "admin123")
		assert.NoError(t, err)
	})

	t.Run("账户写入失败时恢复图书", func(t *testing.T) {
		s := newSeeder(t)
		mine := []*book.Book{{ID: 7, Title: "Mine", Author: "Me", ISBN: "x", Price: 1, Category: book.DefaultCategory}}
		require.NoError(t, s.books.Save(ctx, mine))
		s.users = failingUsers{s.users}

		err := s.run(ctx, true)
		require.Error(t, err)
		assert.ErrorContains(t, err, "写入用户失败")

		books, err := s.books.Load(ctx)
		require.NoError(t, err)
		require.Len(t, books, 1)
		assert.Equal(t, "Mine", books[0].Title)
	})
}

// failingUsers 读取正常、写入失败的用户仓储
type failingUsers struct {
	user.Repository
}

func (failingUsers) Save(ctx context.Context, users []*user.User) error {
	return errors.New("disk full")
}
