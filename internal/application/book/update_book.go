package book

import (
	"context"

	"github.com/xiebiao/bookstore-lite/internal/domain/book"
)

// UpdateBookUseCase 更新图书用例（部分字段合并，ID不可修改）
type UpdateBookUseCase struct {
	bookService book.Service
}

// NewUpdateBookUseCase 创建更新用例
func NewUpdateBookUseCase(bookService book.Service) *UpdateBookUseCase {
	return &UpdateBookUseCase{bookService: bookService}
}

// Execute 执行更新
func (uc *UpdateBookUseCase) Execute(ctx context.Context, id int, attrs book.Attributes) (*book.Book, error) {
	return uc.bookService.UpdateBook(ctx, id, attrs)
}

// DeleteBookUseCase 删除图书用例
type DeleteBookUseCase struct {
	bookService book.Service
}

// NewDeleteBookUseCase 创建删除用例
func NewDeleteBookUseCase(bookService book.Service) *DeleteBookUseCase {
	return &DeleteBookUseCase{bookService: bookService}
}

// Execute 执行删除
func (uc *DeleteBookUseCase) Execute(ctx context.Context, id int) error {
	return uc.bookService.DeleteBook(ctx, id)
}
