package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	appbook "github.com/xiebiao/bookstore-lite/internal/application/book"
	"github.com/xiebiao/bookstore-lite/internal/domain/book"
	"github.com/xiebiao/bookstore-lite/internal/interface/http/dto"
	"github.com/xiebiao/bookstore-lite/pkg/response"
)

// BookHandler 图书HTTP处理器
type BookHandler struct {
	listBooksUseCase  *appbook.ListBooksUseCase
	getBookUseCase    *appbook.GetBookUseCase
	createBookUseCase *appbook.CreateBookUseCase
	updateBookUseCase *appbook.UpdateBookUseCase
	deleteBookUseCase *appbook.DeleteBookUseCase
	stocktakeUseCase  *appbook.StocktakeUseCase
}

// NewBookHandler 创建图书处理器
func NewBookHandler(
	listBooksUseCase *appbook.ListBooksUseCase,
	getBookUseCase *appbook.GetBookUseCase,
	createBookUseCase *appbook.CreateBookUseCase,
	updateBookUseCase *appbook.UpdateBookUseCase,
	deleteBookUseCase *appbook.DeleteBookUseCase,
	stocktakeUseCase *appbook.StocktakeUseCase,
) *BookHandler {
	return &BookHandler{
		listBooksUseCase:  listBooksUseCase,
		getBookUseCase:    getBookUseCase,
		createBookUseCase: createBookUseCase,
		updateBookUseCase: updateBookUseCase,
		deleteBookUseCase: deleteBookUseCase,
		stocktakeUseCase:  stocktakeUseCase,
	}
}

// ListBooks 图书列表
// @Summary      图书列表
// @Description  按分类、作者过滤，search只匹配书名和描述（不区分大小写，不匹配作者）
// @Tags         图书
// @Produce      json
// @Param        category query string false "分类(精确匹配)"
// @Param        author   query string false "作者(包含匹配)"
// @Param        search   query string false "关键字"
// @Success      200 {array}  dto.BookResponse
// @Failure      500 {object} response.ErrorBody "读取失败"
// @Router       /api/books [get]
func (h *BookHandler) ListBooks(c *gin.Context) {
	var q dto.ListBooksQuery
	if err := bindQuery(c, &q); err != nil {
		response.Error(c, err)
		return
	}

	books, err := h.listBooksUseCase.Execute(c.Request.Context(), appbook.ListBooksRequest{
		Category: q.Category,
		Author:   q.Author,
		Search:   q.Search,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.NewBookList(books))
}

// GetBook 图书详情
// @Summary      图书详情
// @Tags         图书
// @Produce      json
// @Param        id path int true "图书ID"
// @Success      200 {object} dto.BookResponse
// @Failure      404 {object} response.ErrorBody "图书不存在"
// @Router       /api/books/{id} [get]
func (h *BookHandler) GetBook(c *gin.Context) {
	id, ok := bookID(c)
	if !ok {
		return
	}

	b, err := h.getBookUseCase.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.NewBookResponse(b))
}

// CreateBook 新增图书
// @Summary      新增图书
// @Description  title、author、isbn、price必填;price、stock、publicationYear可以是数字字符串
// @Tags         图书
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.BookResponse true "图书信息(id忽略)"
// @Success      201 {object} dto.BookResponse
// @Failure      400 {object} response.ErrorBody "缺少字段或ISBN重复"
// @Router       /api/books [post]
func (h *BookHandler) CreateBook(c *gin.Context) {
	// 1. 参数绑定（字段类型宽松，不使用固定结构）
	attrs := book.Attributes{}
	if err := bindJSON(c, &attrs); err != nil {
		response.Error(c, err)
		return
	}

	// 2. 调用应用层用例
	b, err := h.createBookUseCase.Execute(c.Request.Context(), attrs)
	if err != nil {
		response.Error(c, err)
		return
	}

	// 3. 构建HTTP响应
	response.Created(c, dto.NewBookResponse(b))
}

// UpdateBook 修改图书
// @Summary      修改图书
// @Description  部分更新,请求中的id字段会被忽略
// @Tags         图书
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path int              true "图书ID"
// @Param        request body dto.BookResponse true "要修改的字段"
// @Success      200 {object} dto.BookResponse
// @Failure      400 {object} response.ErrorBody "ISBN重复或字段非法"
// @Failure      404 {object} response.ErrorBody "图书不存在"
// @Router       /api/books/{id} [put]
func (h *BookHandler) UpdateBook(c *gin.Context) {
	id, ok := bookID(c)
	if !ok {
		return
	}

	attrs := book.Attributes{}
	if err := bindJSON(c, &attrs); err != nil {
		response.Error(c, err)
		return
	}

	b, err := h.updateBookUseCase.Execute(c.Request.Context(), id, attrs)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.NewBookResponse(b))
}

// DeleteBook 删除图书
// @Summary      删除图书
// @Tags         图书
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "图书ID"
// @Success      200 {object} response.MessageBody
// @Failure      404 {object} response.ErrorBody "图书不存在"
// @Router       /api/books/{id} [delete]
func (h *BookHandler) DeleteBook(c *gin.Context) {
	id, ok := bookID(c)
	if !ok {
		return
	}

	if err := h.deleteBookUseCase.Execute(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Message(c, "Book deleted successfully")
}

// Stocktake 库存盘点
// @Summary      库存盘点
// @Description  汇总始终基于全部图书;lowStockOnly和search只过滤明细
// @Tags         图书
// @Produce      json
// @Security     BearerAuth
// @Param        threshold    query int    false "低库存阈值(默认10)"
// @Param        lowStockOnly query bool   false "只看低库存和缺货"
// @Param        search       query string false "关键字"
// @Param        sort         query string false "title | stock-asc | stock-desc | category"
// @Success      200 {object} dto.StocktakeResponse
// @Router       /api/stocktake [get]
func (h *BookHandler) Stocktake(c *gin.Context) {
	var q dto.StocktakeQuery
	if err := bindQuery(c, &q); err != nil {
		response.Error(c, err)
		return
	}

	report, err := h.stocktakeUseCase.Execute(c.Request.Context(), appbook.StocktakeRequest{
		Threshold:    q.Threshold,
		LowStockOnly: q.LowStockOnly,
		Search:       q.Search,
		SortBy:       q.Sort,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.NewStocktakeResponse(report))
}

// bookID 解析路径中的图书ID
// 非数字ID不可能匹配任何图书，按"图书不存在"处理
func bookID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Error(c, book.ErrBookNotFound)
		return 0, false
	}
	return id, true
}
