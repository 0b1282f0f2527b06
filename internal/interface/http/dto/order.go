package dto

import (
	"github.com/xiebiao/bookstore-lite/internal/domain/order"
	"github.com/xiebiao/bookstore-lite/internal/domain/user"
)

// OrderRequest 下单请求
// orderId缺省时服务端生成，orderDate缺省时取当前时间，status缺省为pending
type OrderRequest struct {
	OrderID         string                 `json:"orderId" example:"ORD1716192000123456"`
	OrderDate       string                 `json:"orderDate" example:"2024-05-20T08:00:00Z"`
	Total           float64                `json:"total" binding:"min=0" example:"25"`
	Items           []OrderItemPayload     `json:"items" binding:"dive"`
	Status          string                 `json:"status" example:"pending"`
	ShippingAddress ShippingAddressPayload `json:"shippingAddress"`
}

// OrderItemPayload 订单明细（下单时的图书快照）
type OrderItemPayload struct {
	BookID   int     `json:"bookId" example:"1"`
	Title    string  `json:"title" example:"Dune"`
	Author   string  `json:"author" example:"Frank Herbert"`
	Price    float64 `json:"price" binding:"min=0" example:"12.5"`
	Quantity int     `json:"quantity" binding:"min=0" example:"2"`
}

// ShippingAddressPayload 收货信息
type ShippingAddressPayload struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	City      string `json:"city"`
	State     string `json:"state"`
	ZipCode   string `json:"zipCode"`
	Country   string `json:"country"`
}

// ToOrder 请求 → 领域订单
func (r OrderRequest) ToOrder() *order.Order {
	o := &order.Order{
		OrderID:         r.OrderID,
		OrderDate:       r.OrderDate,
		Total:           r.Total,
		Items:           make([]order.Item, 0, len(r.Items)),
		Status:          order.Status(r.Status),
		ShippingAddress: order.ShippingAddress(r.ShippingAddress),
	}
	for _, item := range r.Items {
		o.Items = append(o.Items, order.Item(item))
	}
	return o
}

// NewOrderRequest 领域订单 → 请求（客户端提交结账生成的订单）
func NewOrderRequest(o order.Order) OrderRequest {
	return OrderRequest(NewOrderResponse(o))
}

// OrderResponse 订单
type OrderResponse struct {
	OrderID         string                 `json:"orderId"`
	OrderDate       string                 `json:"orderDate"`
	Total           float64                `json:"total"`
	Items           []OrderItemPayload     `json:"items"`
	Status          string                 `json:"status"`
	ShippingAddress ShippingAddressPayload `json:"shippingAddress"`
}

// NewOrderResponse 领域订单 → 响应
func NewOrderResponse(o order.Order) OrderResponse {
	resp := OrderResponse{
		OrderID:         o.OrderID,
		OrderDate:       o.OrderDate,
		Total:           o.Total,
		Items:           make([]OrderItemPayload, 0, len(o.Items)),
		Status:          string(o.Status),
		ShippingAddress: ShippingAddressPayload(o.ShippingAddress),
	}
	for _, item := range o.Items {
		resp.Items = append(resp.Items, OrderItemPayload(item))
	}
	return resp
}

// NewOrderList 订单列表
func NewOrderList(orders []order.Order) []OrderResponse {
	list := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		list = append(list, NewOrderResponse(o))
	}
	return list
}

// OrderHistoryResponse 订单历史
type OrderHistoryResponse struct {
	UserID   string          `json:"userId"`
	UserName string          `json:"userName"`
	Orders   []OrderResponse `json:"orders"`
}

// NewOrderHistoryResponse 订单历史响应
func NewOrderHistoryResponse(h *user.OrderHistory) OrderHistoryResponse {
	return OrderHistoryResponse{
		UserID:   h.UserID,
		UserName: h.UserName,
		Orders:   NewOrderList(h.Orders),
	}
}

// OrderCreatedResponse 下单响应
type OrderCreatedResponse struct {
	Success bool          `json:"success" example:"true"`
	Message string        `json:"message" example:"Order added successfully"`
	Order   OrderResponse `json:"order"`
}
