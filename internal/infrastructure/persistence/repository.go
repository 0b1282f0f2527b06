package persistence

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"

	"go.uber.org/zap"

	"github.com/xiebiao/bookstore-lite/internal/domain/book"
	"github.com/xiebiao/bookstore-lite/internal/domain/user"
	apperrors "github.com/xiebiao/bookstore-lite/pkg/errors"
)

// 文档缩进：两个空格，便于人工查看和diff
const indent = "  "

// BookRepository 图书仓储实现
// 文档格式：顶层是图书数组
type BookRepository struct {
	store      CollectionStore
	collection string
	logger     *zap.Logger
}

// NewBookRepository 创建图书仓储
func NewBookRepository(store CollectionStore, collection string, logger *zap.Logger) *BookRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BookRepository{store: store, collection: collection, logger: logger}
}

var _ book.Repository = (*BookRepository)(nil)

// Load 读取全部图书
// 集合不存在 → 空列表；读取失败或JSON损坏 → 错误(不伪装成"没有数据")
func (r *BookRepository) Load(ctx context.Context) ([]*book.Book, error) {
	data, err := readCollection(ctx, r.store, r.collection, r.logger)
	if err != nil || data == nil {
		return []*book.Book{}, err
	}

	var records []bookRecord
	if err := json.Unmarshal(data, &records); err != nil {
		r.logger.Error("图书集合JSON解析失败", zap.String("collection", r.collection), zap.Error(err))
		return nil, apperrors.Wrapf(err, "解析集合%s失败", r.collection)
	}

	books := make([]*book.Book, 0, len(records))
	for _, rec := range records {
		books = append(books, rec.toEntity())
	}
	return books, nil
}

// Save 整体写回图书集合
func (r *BookRepository) Save(ctx context.Context, books []*book.Book) error {
	records := make([]bookRecord, 0, len(books))
	for _, b := range books {
		records = append(records, newBookRecord(b))
	}
	return writeCollection(ctx, r.store, r.collection, records, r.logger)
}

// UserRepository 用户仓储实现
// 文档格式：{"users": [...]}，包含密码字段
type UserRepository struct {
	store      CollectionStore
	collection string
	logger     *zap.Logger
}

// NewUserRepository 创建用户仓储
func NewUserRepository(store CollectionStore, collection string, logger *zap.Logger) *UserRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserRepository{store: store, collection: collection, logger: logger}
}

var _ user.Repository = (*UserRepository)(nil)

// Load 读取全部用户
func (r *UserRepository) Load(ctx context.Context) ([]*user.User, error) {
	data, err := readCollection(ctx, r.store, r.collection, r.logger)
	if err != nil || data == nil {
		return []*user.User{}, err
	}

	var doc usersDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		r.logger.Error("用户集合JSON解析失败", zap.String("collection", r.collection), zap.Error(err))
		return nil, apperrors.Wrapf(err, "解析集合%s失败", r.collection)
	}

	users := make([]*user.User, 0, len(doc.Users))
	for _, rec := range doc.Users {
		users = append(users, rec.toEntity())
	}
	return users, nil
}

// Save 整体写回用户集合
func (r *UserRepository) Save(ctx context.Context, users []*user.User) error {
	doc := usersDocument{Users: make([]userRecord, 0, len(users))}
	for _, u := range users {
		doc.Users = append(doc.Users, newUserRecord(u))
	}
	return writeCollection(ctx, r.store, r.collection, doc, r.logger)
}

// readCollection 读取集合原始文档
// 返回（nil, nil）表示集合不存在
func readCollection(ctx context.Context, store CollectionStore, name string, logger *zap.Logger) ([]byte, error) {
	data, err := store.Read(ctx, name)
	if errors.Is(err, ErrCollectionNotFound) {
		return nil, nil
	}
	if err != nil {
		logger.Error("读取集合失败", zap.String("collection", name), zap.Error(err))
		return nil, apperrors.Wrapf(err, "读取集合%s失败", name)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	return data, nil
}

func writeCollection(ctx context.Context, store CollectionStore, name string, doc interface{}, logger *zap.Logger) error {
	data, err := json.MarshalIndent(doc, "", indent)
	if err != nil {
		return apperrors.Wrapf(err, "序列化集合%s失败", name)
	}
	if err := store.Write(ctx, name, data); err != nil {
		logger.Error("写入集合失败", zap.String("collection", name), zap.Error(err))
		return apperrors.Wrapf(err, "写入集合%s失败", name)
	}
	return nil
}
