package book

import (
	"context"

	"github.com/xiebiao/bookstore-lite/internal/domain/book"
)

// StocktakeUseCase 库存盘点用例
type StocktakeUseCase struct {
	bookService book.Service
}

// NewStocktakeUseCase 创建盘点用例
func NewStocktakeUseCase(bookService book.Service) *StocktakeUseCase {
	return &StocktakeUseCase{bookService: bookService}
}

// StocktakeRequest 盘点参数
// Threshold<=0时使用默认阈值10
type StocktakeRequest struct {
	Threshold    int
	LowStockOnly bool
	Search       string
	SortBy       string
}

// Execute 生成盘点报告
func (uc *StocktakeUseCase) Execute(ctx context.Context, req StocktakeRequest) (*book.StocktakeReport, error) {
	return uc.bookService.Stocktake(ctx, book.StocktakeQuery{
		Threshold:    req.Threshold,
		LowStockOnly: req.LowStockOnly,
		Search:       req.Search,
		SortBy:       req.SortBy,
	})
}
