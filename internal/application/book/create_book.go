package book

import (
	"context"

	"github.com/xiebiao/bookstore-lite/internal/application/event"
	"github.com/xiebiao/bookstore-lite/internal/domain/book"
	"github.com/xiebiao/bookstore-lite/pkg/metrics"
	"github.com/xiebiao/bookstore-lite/pkg/mq"
)

// CreateBookUseCase 新书上架用例
// 流程：
// 1. 领域服务完成校验、类型转换、ISBN查重、分配ID并写回集合
// 2. 记录books_created_total指标
// 3. 发布book.created事件（失败只记日志）
type CreateBookUseCase struct {
	bookService book.Service
	notifier    *event.Notifier
}

// NewCreateBookUseCase 创建上架用例
func NewCreateBookUseCase(bookService book.Service, notifier *event.Notifier) *CreateBookUseCase {
	return &CreateBookUseCase{bookService: bookService, notifier: notifier}
}

// Execute 执行上架
// 学习要点：
// 1. 应用层不直接操作Repository，通过领域服务间接操作
// 2. 指标和事件属于用例的副作用，放在应用层而不是领域层
func (uc *CreateBookUseCase) Execute(ctx context.Context, attrs book.Attributes) (*book.Book, error) {
	b, err := uc.bookService.CreateBook(ctx, attrs)
	if err != nil {
		return nil, err
	}

	metrics.BookCreated()
	uc.notifier.Notify(ctx, mq.EventBookCreated, event.BookCreated{
		BookID: b.ID,
		Title:  b.Title,
		ISBN:   b.ISBN,
		Price:  b.Price,
		Stock:  b.Stock,
	})

	return b, nil
}
