package book

import (
	"context"
)

// Service 图书领域服务接口
// 设计说明：
// 1. 领域服务封装目录的业务规则：必填校验、ISBN唯一、ID分配、数值转换
// 2. 不依赖具体的Repository实现（依赖倒置）
// 3. 每个操作都是"整体读取 → 内存修改 → 整体写回"
type Service interface {
	// ListBooks 按条件过滤图书，不分页
	ListBooks(ctx context.Context, filter Filter) ([]*Book, error)

	// GetBook 根据ID获取图书
	GetBook(ctx context.Context, id int) (*Book, error)

	// CreateBook 创建图书
	// 业务规则：
	// - title、author、isbn、price必填
	// - ISBN不能重复
	// - ID = 现有最大ID + 1
	CreateBook(ctx context.Context, attrs Attributes) (*Book, error)

	// UpdateBook 部分更新图书（ID不可修改）
	UpdateBook(ctx context.Context, id int, attrs Attributes) (*Book, error)

	// DeleteBook 删除图书
	DeleteBook(ctx context.Context, id int) error

	// Stocktake 库存盘点
	Stocktake(ctx context.Context, q StocktakeQuery) (*StocktakeReport, error)
}

// service 领域服务实现
type service struct {
	repo Repository
}

// NewService 创建图书领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// ListBooks 过滤图书列表
func (s *service) ListBooks(ctx context.Context, filter Filter) ([]*Book, error) {
	books, err := s.repo.Load(ctx)
	if err != nil {
		return nil, persistenceError(msgListFailed, err)
	}
	return filter.Apply(books), nil
}

// GetBook 根据ID获取图书
func (s *service) GetBook(ctx context.Context, id int) (*Book, error) {
	books, err := s.repo.Load(ctx)
	if err != nil {
		return nil, persistenceError(msgGetFailed, err)
	}

	i := indexOf(books, id)
	if i < 0 {
		return nil, ErrBookNotFound
	}
	return books[i], nil
}

// CreateBook 创建图书
func (s *service) CreateBook(ctx context.Context, attrs Attributes) (*Book, error) {
	// 1. 必填校验与类型转换
	newBook, err := newBookFromAttributes(attrs)
	if err != nil {
		return nil, err
	}

	// 2. 读取全部图书
	books, err := s.repo.Load(ctx)
	if err != nil {
		return nil, persistenceError(msgCreateFailed, err)
	}

	// 3. ISBN唯一性检查
	if findByISBN(books, newBook.ISBN, 0) != nil {
		return nil, ErrISBNDuplicate
	}

	// 4. 分配ID并追加
	newBook.ID = nextID(books)
	books = append(books, newBook)

	// 5. 整体写回
	if err := s.repo.Save(ctx, books); err != nil {
		return nil, persistenceError(msgCreateFailed, err)
	}

	return newBook, nil
}

// UpdateBook 部分更新图书
func (s *service) UpdateBook(ctx context.Context, id int, attrs Attributes) (*Book, error) {
	// 1. 读取并定位
	books, err := s.repo.Load(ctx)
	if err != nil {
		return nil, persistenceError(msgUpdateFailed, err)
	}
	i := indexOf(books, id)
	if i < 0 {
		return nil, ErrBookNotFound
	}

	// 2. 在副本上合并字段，校验失败时不影响原数据
	updated := books[i].Clone()
	if err := applyAttributes(updated, attrs); err != nil {
		return nil, err
	}

	// 3. 修改ISBN时检查是否与其他图书冲突
	if findByISBN(books, updated.ISBN, updated.ID) != nil {
		return nil, ErrISBNDuplicate
	}

	// 4. 写回
	books[i] = updated
	if err := s.repo.Save(ctx, books); err != nil {
		return nil, persistenceError(msgUpdateFailed, err)
	}

	return updated, nil
}

// DeleteBook 删除图书
func (s *service) DeleteBook(ctx context.Context, id int) error {
	books, err := s.repo.Load(ctx)
	if err != nil {
		return persistenceError(msgDeleteFailed, err)
	}

	i := indexOf(books, id)
	if i < 0 {
		return ErrBookNotFound
	}

	books = append(books[:i], books[i+1:]...)
	if err := s.repo.Save(ctx, books); err != nil {
		return persistenceError(msgDeleteFailed, err)
	}
	return nil
}

// Stocktake 库存盘点
func (s *service) Stocktake(ctx context.Context, q StocktakeQuery) (*StocktakeReport, error) {
	books, err := s.repo.Load(ctx)
	if err != nil {
		return nil, persistenceError(msgListFailed, err)
	}
	return BuildStocktake(books, q), nil
}

// findByISBN 查找ISBN相同的图书，exceptID用于排除自身
func findByISBN(books []*Book, isbn string, exceptID int) *Book {
	for _, b := range books {
		if b.ISBN == isbn && b.ID != exceptID {
			return b
		}
	}
	return nil
}
