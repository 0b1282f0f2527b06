package book

import (
	"sort"
	"strings"
)

// DefaultLowStockThreshold 默认低库存阈值
const DefaultLowStockThreshold = 10

// StockStatus 库存状态
type StockStatus string

const (
	StockOutOfStock StockStatus = "out-of-stock"
	StockLow        StockStatus = "low-stock"
	StockIn         StockStatus = "in-stock"
)

// 盘点排序方式
const (
	SortByTitle     = "title"
	SortByStockAsc  = "stock-asc"
	SortByStockDesc = "stock-desc"
	SortByCategory  = "category"
)

// StockStatusOf 根据阈值判断库存状态
// 库存为0 → 缺货；小于阈值 → 低库存；否则充足
func StockStatusOf(stock, threshold int) StockStatus {
	switch {
	case stock == 0:
		return StockOutOfStock
	case stock < threshold:
		return StockLow
	default:
		return StockIn
	}
}

// StocktakeQuery 盘点查询条件
type StocktakeQuery struct {
	Threshold    int    // 低库存阈值，<=0时使用默认值
	LowStockOnly bool   // 只列出低于阈值的图书
	Search       string // 匹配标题、作者、ISBN
	SortBy       string // title | stock-asc | stock-desc | category
}

// StocktakeItem 盘点明细
type StocktakeItem struct {
	Book   *Book
	Value  float64
	Status StockStatus
}

// StocktakeReport 盘点报告
// 汇总数据始终基于全部图书，Items受过滤条件影响
type StocktakeReport struct {
	Threshold      int
	TotalBooks     int
	TotalUnits     int
	InventoryValue float64
	LowStockCount  int
	Items          []StocktakeItem
}

// BuildStocktake 生成盘点报告
func BuildStocktake(books []*Book, q StocktakeQuery) *StocktakeReport {
	threshold := q.Threshold
	if threshold <= 0 {
		threshold = DefaultLowStockThreshold
	}

	report := &StocktakeReport{
		Threshold:  threshold,
		TotalBooks: len(books),
		Items:      make([]StocktakeItem, 0, len(books)),
	}

	for _, b := range books {
		report.TotalUnits += b.Stock
		report.InventoryValue += b.Value()
		if b.Stock < threshold {
			report.LowStockCount++
		}

		if q.LowStockOnly && b.Stock >= threshold {
			continue
		}
		if q.Search != "" && !containsFold(b.Title, q.Search) &&
			!containsFold(b.Author, q.Search) && !containsFold(b.ISBN, q.Search) {
			continue
		}
		report.Items = append(report.Items, StocktakeItem{
			Book:   b,
			Value:  b.Value(),
			Status: StockStatusOf(b.Stock, threshold),
		})
	}

	sortItems(report.Items, q.SortBy)
	return report
}

// sortItems 稳定排序，未知排序方式保持存储顺序
func sortItems(items []StocktakeItem, by string) {
	var less func(a, b *Book) bool
	switch by {
	case SortByTitle:
		less = func(a, b *Book) bool { return strings.ToLower(a.Title) < strings.ToLower(b.Title) }
	case SortByStockAsc:
		less = func(a, b *Book) bool { return a.Stock < b.Stock }
	case SortByStockDesc:
		less = func(a, b *Book) bool { return a.Stock > b.Stock }
	case SortByCategory:
		less = func(a, b *Book) bool { return strings.ToLower(a.Category) < strings.ToLower(b.Category) }
	default:
		return
	}
	sort.SliceStable(items, func(i, j int) bool { return less(items[i].Book, items[j].Book) })
}
