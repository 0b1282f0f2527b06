package main

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/xiebiao/bookstore-lite/internal/domain/book"
	"github.com/xiebiao/bookstore-lite/internal/domain/user"
	"github.com/xiebiao/bookstore-lite/pkg/saga"
)

// seedAccount 默认账户
type seedAccount struct {
	reg  user.Registration
	role user.Role
}

var seedAccounts = []seedAccount{
	{user.Registration{Username: "admin", Password: "admin123", Email: "admin@bookstore.local", FirstName: "Store", LastName: "Admin"}, user.RoleAdmin},
	{user.Registration{Username: "staff", Password: "staff123", Email: "staff@bookstore.local", FirstName: "Store", LastName: "Staff"}, user.RoleStaff},
	{user.Registration{Username: "customer", Password: "customer123", Email: "customer@bookstore.local", FirstName: "Demo", LastName: "Customer"}, user.RoleCustomer},
}

func year(y int) *int { return &y }

// seedBooks 示例图书（ID从1连续编号）
func seedBooks() []*book.Book {
	return []*book.Book{
		{ID: 1, Title: "Dune", Author: "Frank Herbert", ISBN: "9780441013593", Price: 9.99, Category: "Science Fiction",
			Description: "A desert planet, a noble family and the spice that controls the universe.", PublicationYear: year(1965), Publisher: "Ace", Stock: 12},
		{ID: 2, Title: "Pride and Prejudice", Author: "Jane Austen", ISBN: "9780141439518", Price: 7.5, Category: "Classics",
			Description: "Elizabeth Bennet and Mr. Darcy misjudge each other.", PublicationYear: year(1813), Publisher: "Penguin Classics", Stock: 30},
		{ID: 3, Title: "The Pragmatic Programmer", Author: "Andrew Hunt, David Thomas", ISBN: "9780135957059", Price: 44.99, Category: "Technology",
			Description: "Practical advice for working programmers.", PublicationYear: year(2019), Publisher: "Addison-Wesley", Stock: 4},
		{ID: 4, Title: "The Hobbit", Author: "J.R.R. Tolkien", ISBN: "9780547928227", Price: 12.99, Category: "Fantasy",
			Description: "Bilbo Baggins leaves the Shire.", PublicationYear: year(1937), Publisher: "Houghton Mifflin", Stock: 0},
		{ID: 5, Title: "Sapiens", Author: "Yuval Noah Harari", ISBN: "9780062316097", Price: 18.0, Category: "History",
			Description: "A brief history of humankind.", PublicationYear: year(2011), Publisher: "Harper", Stock: 9},
		{ID: 6, Title: "Neuromancer", Author: "William Gibson", ISBN: "9780441569595", Price: 10.99, Category: "Science Fiction",
			Description: "The novel that named cyberspace.", PublicationYear: year(1984), Publisher: "Ace", Stock: 15},
	}
}

// seeder 写入示例数据
type seeder struct {
	books     book.Repository
	users     user.Repository
	passwords user.PasswordScheme
	now       func() time.Time
	logger    *zap.Logger
}

// run 写入图书和账户
// 集合已有数据且force=false时跳过该集合
//
// 两个集合按Saga顺序写入：账户写入失败时恢复写入前的图书文档
func (s *seeder) run(ctx context.Context, force bool) error {
	existingBooks, err := s.books.Load(ctx)
	if err != nil {
		return fmt.Errorf("读取图书失败: %w", err)
	}
	existingUsers, err := s.users.Load(ctx)
	if err != nil {
		return fmt.Errorf("读取用户失败: %w", err)
	}

	tx := saga.NewSaga(time.Minute, s.logger)

	// 1. 图书
	if len(existingBooks) > 0 && !force {
		s.logger.Info("图书集合已有数据,跳过", zap.Int("count", len(existingBooks)))
	} else {
		books := seedBooks()
		tx.AddStep("写入图书",
			func(ctx context.Context) error {
				if err := s.books.Save(ctx, books); err != nil {
					return fmt.Errorf("写入图书失败: %w", err)
				}
				s.logger.Info("已写入示例图书", zap.Int("count", len(books)))
				return nil
			},
			func(ctx context.Context) error {
				s.logger.Warn("恢复写入前的图书", zap.Int("count", len(existingBooks)))
				return s.books.Save(ctx, existingBooks)
			},
		)
	}

	// 2. 账户
	if len(existingUsers) > 0 && !force {
		s.logger.Info("用户集合已有数据,跳过", zap.Int("count", len(existingUsers)))
	} else {
		users, err := s.accounts()
		if err != nil {
			return err
		}
		tx.AddStep("写入账户",
			func(ctx context.Context) error {
				if err := s.users.Save(ctx, users); err != nil {
					return fmt.Errorf("写入用户失败: %w", err)
				}
				for _, u := range users {
					s.logger.Info("已创建账户", zap.String("username", u.Username), zap.String("role", string(u.Role)))
				}
				return nil
			},
			nil,
		)
	}

	return tx.Execute(ctx)
}

// accounts 生成默认账户
func (s *seeder) accounts() ([]*user.User, error) {
	now := s.now()
	users := make([]*user.User, 0, len(seedAccounts))
	for i, acc := range seedAccounts {
		stored, err := s.passwords.Hash(acc.reg.Password)
		if err != nil {
			return nil, fmt.Errorf("处理密码失败: %w", err)
		}
		id := fmt.Sprintf("user_%d_seed%d", now.UnixMilli(), i+1)
		users = append(users, user.NewUser(id, acc.reg, stored, acc.role, now))
	}
	return users, nil
}
