package order

import "time"

// Status 订单状态
// 说明：
// 1. 使用字符串，与持久化文档和API中的取值一致
// 2. 状态流转方向：pending → processing → shipped → delivered
// 3. 系统内没有状态流转操作，订单创建后状态固定（由外部流程推进）
type Status string

const (
	StatusPending    Status = "pending"    // 待处理
	StatusProcessing Status = "processing" // 处理中
	StatusShipped    Status = "shipped"    // 已发货
	StatusDelivered  Status = "delivered"  // 已送达
)

// Valid 是否为合法状态
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered:
		return true
	default:
		return false
	}
}

// Order 订单实体
// DDD设计说明：
// 1. Order不是独立聚合，它嵌在用户的Profile中（用户聚合的一部分）
// 2. Items是下单时的图书快照，不引用Book实体（图书后续改价不影响历史订单）
// 3. 订单创建后不可修改、不可删除
type Order struct {
	OrderID         string
	OrderDate       string
	Total           float64
	Items           []Item
	Status          Status
	ShippingAddress ShippingAddress
}

// Item 订单明细（下单时的图书快照）
type Item struct {
	BookID   int
	Title    string
	Author   string
	Price    float64 // 下单时的单价
	Quantity int
}

// ShippingAddress 收货信息
type ShippingAddress struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Address   string
	City      string
	State     string
	ZipCode   string
	Country   string
}

// Prepare 补全下单时未提供的字段并校验状态
// 1. orderId缺省时生成
// 2. orderDate缺省时使用当前时间
// 3. status缺省为pending，其他值必须合法
func (o *Order) Prepare(now time.Time) error {
	if o.OrderID == "" {
		o.OrderID = GenerateOrderNo(now)
	}
	if o.OrderDate == "" {
		o.OrderDate = now.UTC().Format(time.RFC3339)
	}
	if o.Status == "" {
		o.Status = StatusPending
	}
	if !o.Status.Valid() {
		return ErrInvalidStatus
	}
	return nil
}

// CalculateTotal 按明细计算总金额
func (o *Order) CalculateTotal() float64 {
	var total float64
	for _, item := range o.Items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

// Clone 深拷贝（Items是切片）
func (o *Order) Clone() *Order {
	c := *o
	c.Items = append([]Item(nil), o.Items...)
	return &c
}
