// Package cart 购物车与结账
// 购物车只存在于调用方内存中，不持久化；结账生成的订单快照交给 AddOrder 保存
package cart

import (
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/xiebiao/bookstore-lite/internal/domain/book"
	"github.com/xiebiao/bookstore-lite/internal/domain/order"
	apperrors "github.com/xiebiao/bookstore-lite/pkg/errors"
)

// 结账校验错误
var (
	ErrEmptyCart         = apperrors.New(apperrors.ErrCodeInvalidParams, "Your cart is empty")
	ErrFirstNameRequired = apperrors.New(apperrors.ErrCodeInvalidParams, "First name is required")
	ErrLastNameRequired  = apperrors.New(apperrors.ErrCodeInvalidParams, "Last name is required")
	ErrEmailRequired     = apperrors.New(apperrors.ErrCodeInvalidParams, "Email is required")
	ErrInvalidEmail      = apperrors.New(apperrors.ErrCodeInvalidParams, "Please enter a valid email")
	ErrPhoneRequired     = apperrors.New(apperrors.ErrCodeInvalidParams, "Phone number is required")
	ErrAddressRequired   = apperrors.New(apperrors.ErrCodeInvalidParams, "Address is required")
	ErrCityRequired      = apperrors.New(apperrors.ErrCodeInvalidParams, "City is required")
	ErrStateRequired     = apperrors.New(apperrors.ErrCodeInvalidParams, "State is required")
	ErrZipCodeRequired   = apperrors.New(apperrors.ErrCodeInvalidParams, "ZIP code is required")
	ErrCountryRequired   = apperrors.New(apperrors.ErrCodeInvalidParams, "Country is required")
	ErrCardRequired      = apperrors.New(apperrors.ErrCodeInvalidParams, "Credit card number is required")
	ErrCardLength        = apperrors.New(apperrors.ErrCodeInvalidParams, "Credit card number must be 16 digits")
	ErrCardDigits        = apperrors.New(apperrors.ErrCodeInvalidParams, "Credit card number must contain only digits")
	ErrExpiryRequired    = apperrors.New(apperrors.ErrCodeInvalidParams, "Expiry date is required")
	ErrExpiryFormat      = apperrors.New(apperrors.ErrCodeInvalidParams, "Expiry date must be in MM/YY format")
	ErrCVVRequired       = apperrors.New(apperrors.ErrCodeInvalidParams, "CVV is required")
	ErrCVVLength         = apperrors.New(apperrors.ErrCodeInvalidParams, "CVV must be 3 digits")
)

var (
	emailPattern  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	expiryPattern = regexp.MustCompile(`^\d{2}/\d{2}$`)
	cvvPattern    = regexp.MustCompile(`^\d{3}$`)
)

// Payment 结账时填写的支付信息
// 只做格式校验，不保存：Receipt里只留卡号后四位
type Payment struct {
	CardNumber string
	ExpiryDate string // MM/YY
	CVV        string
}

// Line 购物车中的一行
type Line struct {
	Book     book.Book
	Quantity int
}

// Subtotal 单行金额
func (l Line) Subtotal() float64 {
	return l.Book.Price * float64(l.Quantity)
}

// Receipt 结账结果
// Order是要提交给 AddOrder 的订单快照，CardLastFour只保留卡号后四位
type Receipt struct {
	Order        order.Order
	CardLastFour string
}

// Cart 购物车
// 按加入顺序保存，同一本书只占一行；所有方法可并发调用
type Cart struct {
	mu    sync.Mutex
	lines []Line
}

// New 创建空购物车
func New() *Cart {
	return &Cart{}
}

// Add 加入图书
// 已在购物车中的图书累加数量，否则追加一行
func (c *Cart) Add(b *book.Book, quantity int) {
	if b == nil || quantity <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if i := c.indexOf(b.ID); i >= 0 {
		c.lines[i].Quantity += quantity
		return
	}
	c.lines = append(c.lines, Line{Book: *b.Clone(), Quantity: quantity})
}

// Remove 移除图书
func (c *Cart) Remove(bookID int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if i := c.indexOf(bookID); i >= 0 {
		c.lines = append(c.lines[:i], c.lines[i+1:]...)
	}
}

// UpdateQuantity 修改数量，数量<=0等同于移除
func (c *Cart) UpdateQuantity(bookID, quantity int) {
	if quantity <= 0 {
		c.Remove(bookID)
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if i := c.indexOf(bookID); i >= 0 {
		c.lines[i].Quantity = quantity
	}
}

// Clear 清空
func (c *Cart) Clear() {
	c.mu.Lock()
	c.lines = nil
	c.mu.Unlock()
}

// Items 当前内容的副本
func (c *Cart) Items() []Line {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Line{}, c.lines...)
}

// TotalPrice 总金额
func (c *Cart) TotalPrice() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	var total float64
	for _, l := range c.lines {
		total += l.Subtotal()
	}
	return total
}

// TotalItems 总件数
func (c *Cart) TotalItems() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	var n int
	for _, l := range c.lines {
		n += l.Quantity
	}
	return n
}

// Checkout 结账
//
// 步骤：
// 1. 校验购物车非空，再按表单顺序校验收货信息和支付信息，返回第一个错误
// 2. 生成订单快照：明细复制图书当前的标题/作者/价格，total=TotalPrice，orderDate=now
// 3. 清空购物车
//
// 卡号中的空格会被忽略（"4242 4242 4242 4242"合法）
func (c *Cart) Checkout(shipping order.ShippingAddress, payment Payment, now time.Time) (*Receipt, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.lines) == 0 {
		return nil, ErrEmptyCart
	}
	if err := validateShipping(shipping); err != nil {
		return nil, err
	}
	card, err := validatePayment(payment)
	if err != nil {
		return nil, err
	}

	o := order.Order{
		OrderID:         order.GenerateOrderNo(now),
		OrderDate:       now.UTC().Format(time.RFC3339),
		Status:          order.StatusPending,
		ShippingAddress: shipping,
		Items:           make([]order.Item, 0, len(c.lines)),
	}
	for _, l := range c.lines {
		o.Items = append(o.Items, order.Item{
			BookID:   l.Book.ID,
			Title:    l.Book.Title,
			Author:   l.Book.Author,
			Price:    l.Book.Price,
			Quantity: l.Quantity,
		})
		o.Total += l.Subtotal()
	}

	c.lines = nil
	return &Receipt{Order: o, CardLastFour: card[len(card)-4:]}, nil
}

func (c *Cart) indexOf(bookID int) int {
	for i, l := range c.lines {
		if l.Book.ID == bookID {
			return i
		}
	}
	return -1
}

func validateShipping(s order.ShippingAddress) error {
	fields := []struct {
		value   string
		err     *apperrors.AppError
		pattern *regexp.Regexp
		invalid *apperrors.AppError
	}{
		{value: s.FirstName, err: ErrFirstNameRequired},
		{value: s.LastName, err: ErrLastNameRequired},
		{value: s.Email, err: ErrEmailRequired, pattern: emailPattern, invalid: ErrInvalidEmail},
		{value: s.Phone, err: ErrPhoneRequired},
		{value: s.Address, err: ErrAddressRequired},
		{value: s.City, err: ErrCityRequired},
		{value: s.State, err: ErrStateRequired},
		{value: s.ZipCode, err: ErrZipCodeRequired},
		{value: s.Country, err: ErrCountryRequired},
	}
	for _, f := range fields {
		v := strings.TrimSpace(f.value)
		if v == "" {
			return f.err
		}
		if f.pattern != nil && !f.pattern.MatchString(v) {
			return f.invalid
		}
	}
	return nil
}

// validatePayment 校验支付信息，返回去掉空格后的卡号
func validatePayment(p Payment) (string, error) {
	card, err := normalizeCard(p.CardNumber)
	if err != nil {
		return "", err
	}

	expiry := strings.TrimSpace(p.ExpiryDate)
	switch {
	case expiry == "":
		return "", ErrExpiryRequired
	case !expiryPattern.MatchString(expiry):
		return "", ErrExpiryFormat
	}

	cvv := strings.TrimSpace(p.CVV)
	switch {
	case cvv == "":
		return "", ErrCVVRequired
	case !cvvPattern.MatchString(cvv):
		return "", ErrCVVLength
	}
	return card, nil
}

func normalizeCard(number string) (string, error) {
	card := strings.Join(strings.Fields(number), "")
	switch {
	case card == "":
		return "", ErrCardRequired
	case len(card) != 16:
		return "", ErrCardLength
	}
	for _, r := range card {
		if r < '0' || r > '9' {
			return "", ErrCardDigits
		}
	}
	return card, nil
}
