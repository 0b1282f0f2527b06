package book

import (
	"context"

	"github.com/xiebiao/bookstore-lite/internal/domain/book"
)

// ListBooksUseCase 图书列表用例
// 设计说明：
// 1. 应用层负责用例编排，协调领域服务完成业务流程
// 2. 过滤规则（分类、作者、关键字）由领域层的book.Filter实现
// 3. 不分页，保持存储顺序
type ListBooksUseCase struct {
	bookService book.Service
}

// NewListBooksUseCase 创建图书列表用例
func NewListBooksUseCase(bookService book.Service) *ListBooksUseCase {
	return &ListBooksUseCase{bookService: bookService}
}

// ListBooksRequest 列表查询条件，空串表示不过滤
type ListBooksRequest struct {
	Category string
	Author   string
	Search   string
}

// Execute 执行列表查询
func (uc *ListBooksUseCase) Execute(ctx context.Context, req ListBooksRequest) ([]*book.Book, error) {
	return uc.bookService.ListBooks(ctx, book.Filter{
		Category: req.Category,
		Author:   req.Author,
		Search:   req.Search,
	})
}

// GetBookUseCase 图书详情用例
type GetBookUseCase struct {
	bookService book.Service
}

// NewGetBookUseCase 创建图书详情用例
func NewGetBookUseCase(bookService book.Service) *GetBookUseCase {
	return &GetBookUseCase{bookService: bookService}
}

// Execute 查询图书详情
func (uc *GetBookUseCase) Execute(ctx context.Context, id int) (*book.Book, error) {
	return uc.bookService.GetBook(ctx, id)
}
