package dto

import (
	"github.com/xiebiao/bookstore-lite/internal/domain/book"
)

// BookResponse 图书
// 创建/更新请求体不使用固定结构：price、stock等字段可能是字符串，
// 由handler绑定为book.Attributes后交给领域层转换
type BookResponse struct {
	ID              int     `json:"id" example:"1"`
	Title           string  `json:"title" example:"Dune"`
	Author          string  `json:"author" example:"Frank Herbert"`
	ISBN            string  `json:"isbn" example:"9780441013593"`
	Price           float64 `json:"price" example:"9.99"`
	Category        string  `json:"category" example:"Science Fiction"`
	Description     string  `json:"description" example:"Desert planet epic"`
	PublicationYear *int    `json:"publicationYear" example:"1965"`
	Publisher       string  `json:"publisher" example:"Ace"`
	Stock           int     `json:"stock" example:"12"`
	CoverImage      string  `json:"coverImage" example:"https://example.com/dune.jpg"`
}

// NewBookResponse 领域实体 → 响应
func NewBookResponse(b *book.Book) BookResponse {
	return BookResponse{
		ID:              b.ID,
		Title:           b.Title,
		Author:          b.Author,
		ISBN:            b.ISBN,
		Price:           b.Price,
		Category:        b.Category,
		Description:     b.Description,
		PublicationYear: b.PublicationYear,
		Publisher:       b.Publisher,
		Stock:           b.Stock,
		CoverImage:      b.CoverImage,
	}
}

// NewBookList 图书列表，空列表序列化为[]而不是null
func NewBookList(books []*book.Book) []BookResponse {
	list := make([]BookResponse, 0, len(books))
	for _, b := range books {
		list = append(list, NewBookResponse(b))
	}
	return list
}

// ListBooksQuery 图书列表查询参数
type ListBooksQuery struct {
	Category string `form:"category" example:"Fiction"`
	Author   string `form:"author" example:"Herbert"`
	Search   string `form:"search" example:"dune"`
}

// StocktakeQuery 库存盘点查询参数
type StocktakeQuery struct {
	Threshold    int    `form:"threshold" binding:"omitempty,min=0" example:"10"`
	LowStockOnly bool   `form:"lowStockOnly" example:"false"`
	Search       string `form:"search" example:"dune"`
	Sort         string `form:"sort" binding:"omitempty,max=20" example:"stock-asc"` // title | stock-asc | stock-desc | category
}

// StocktakeResponse 库存盘点报告
type StocktakeResponse struct {
	Threshold int                 `json:"threshold" example:"10"`
	Summary   StocktakeSummary    `json:"summary"`
	Items     []StocktakeItemView `json:"items"`
}

// StocktakeSummary 汇总（始终基于全部图书）
type StocktakeSummary struct {
	TotalBooks     int     `json:"totalBooks" example:"42"`
	TotalUnits     int     `json:"totalUnits" example:"512"`
	InventoryValue float64 `json:"inventoryValue" example:"6123.5"`
	LowStockCount  int     `json:"lowStockCount" example:"3"`
}

// StocktakeItemView 盘点明细：图书字段 + 货值 + 库存状态
type StocktakeItemView struct {
	BookResponse
	Value  float64 `json:"value" example:"119.88"`
	Status string  `json:"stockStatus" example:"low-stock"` // out-of-stock | low-stock | in-stock
}

// NewStocktakeResponse 领域报告 → 响应
func NewStocktakeResponse(r *book.StocktakeReport) StocktakeResponse {
	resp := StocktakeResponse{
		Threshold: r.Threshold,
		Summary: StocktakeSummary{
			TotalBooks:     r.TotalBooks,
			TotalUnits:     r.TotalUnits,
			InventoryValue: r.InventoryValue,
			LowStockCount:  r.LowStockCount,
		},
		Items: make([]StocktakeItemView, 0, len(r.Items)),
	}
	for _, item := range r.Items {
		resp.Items = append(resp.Items, StocktakeItemView{
			BookResponse: NewBookResponse(item.Book),
			Value:        item.Value,
			Status:       string(item.Status),
		})
	}
	return resp
}
