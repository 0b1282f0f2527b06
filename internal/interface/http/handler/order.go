package handler

import (
	"github.com/gin-gonic/gin"

	apporder "github.com/xiebiao/bookstore-lite/internal/application/order"
	"github.com/xiebiao/bookstore-lite/internal/interface/http/dto"
	"github.com/xiebiao/bookstore-lite/pkg/response"
)

// OrderHandler 订单HTTP处理器
// 订单挂在用户下:/api/users/:id/orders
type OrderHandler struct {
	placeOrderUseCase *apporder.PlaceOrderUseCase
	listOrdersUseCase *apporder.ListOrdersUseCase
}

// NewOrderHandler 创建订单处理器
func NewOrderHandler(placeOrderUseCase *apporder.PlaceOrderUseCase, listOrdersUseCase *apporder.ListOrdersUseCase) *OrderHandler {
	return &OrderHandler{
		placeOrderUseCase: placeOrderUseCase,
		listOrdersUseCase: listOrdersUseCase,
	}
}

// ListOrders 订单历史
// @Summary      订单历史
// @Description  按下单顺序返回
// @Tags         订单
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "用户ID"
// @Success      200 {object} dto.OrderHistoryResponse
// @Failure      404 {object} response.ErrorBody "用户不存在"
// @Router       /api/users/{id}/orders [get]
func (h *OrderHandler) ListOrders(c *gin.Context) {
	history, err := h.listOrdersUseCase.Execute(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewOrderHistoryResponse(history))
}

// PlaceOrder 下单
// @Summary      下单
// @Description  订单追加到用户的订单历史;orderId、orderDate、status缺省时由服务端补全
// @Tags         订单
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path string           true "用户ID"
// @Param        request body dto.OrderRequest true "订单"
// @Success      200 {object} dto.OrderCreatedResponse
// @Failure      400 {object} response.ErrorBody "订单状态不合法"
// @Failure      404 {object} response.ErrorBody "用户不存在"
// @Router       /api/users/{id}/orders [post]
func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	// 1. 参数绑定与验证
	var req dto.OrderRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	// 2. 调用应用层用例
	o, err := h.placeOrderUseCase.Execute(c.Request.Context(), c.Param("id"), req.ToOrder())
	if err != nil {
		response.Error(c, err)
		return
	}

	// 3. 构建HTTP响应
	response.OK(c, dto.OrderCreatedResponse{
		Success: true,
		Message: "Order added successfully",
		Order:   dto.NewOrderResponse(*o),
	})
}
