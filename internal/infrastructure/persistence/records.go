package persistence

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"

	"github.com/spf13/cast"

	"github.com/xiebiao/bookstore-lite/internal/domain/book"
	"github.com/xiebiao/bookstore-lite/internal/domain/order"
	"github.com/xiebiao/bookstore-lite/internal/domain/user"
)

// 持久化文档的字段名与API保持一致（camelCase）
// 领域实体不带tag，映射集中在本文件

// ==================== 图书 ====================

type bookRecord struct {
	ID              int     `json:"id"`
	Title           string  `json:"title"`
	Author          string  `json:"author"`
	ISBN            string  `json:"isbn"`
	Price           float64 `json:"price"`
	Category        string  `json:"category"`
	Description     string  `json:"description"`
	PublicationYear *int    `json:"publicationYear"`
	Publisher       string  `json:"publisher"`
	Stock           int     `json:"stock"`
	CoverImage      string  `json:"coverImage"`
}

// UnmarshalJSON 宽松解析price、stock、publicationYear
// 旧文档里这几个字段可能是字符串（"12.50"、"3"），也可能是空串
// 1. 缺失、null、空串 → 0（publicationYear为null）
// 2. 数字字符串按数值解析，stock和publicationYear的小数部分截断
// 3. 无法解析的值同第1条处理，单个字段不影响整个集合的读取
func (r *bookRecord) UnmarshalJSON(data []byte) error {
	type plain bookRecord
	var raw struct {
		plain
		Price           json.RawMessage `json:"price"`
		PublicationYear json.RawMessage `json:"publicationYear"`
		Stock           json.RawMessage `json:"stock"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*r = bookRecord(raw.plain)
	if v, ok := looseNumber(raw.Price); ok {
		r.Price = v
	}
	if v, ok := looseNumber(raw.Stock); ok {
		r.Stock = int(v)
	}
	if v, ok := looseNumber(raw.PublicationYear); ok {
		year := int(v)
		r.PublicationYear = &year
	}
	return nil
}

// looseNumber 把JSON值解析成数值，没有可用的值时ok=false
func looseNumber(raw json.RawMessage) (float64, bool) {
	var v interface{}
	if len(bytes.TrimSpace(raw)) == 0 || json.Unmarshal(raw, &v) != nil || v == nil {
		return 0, false
	}
	if s, isString := v.(string); isString {
		v = strings.TrimSpace(s)
		if v == "" {
			return 0, false
		}
	}
	f, err := cast.ToFloat64E(v)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func newBookRecord(b *book.Book) bookRecord {
	return bookRecord{
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

func (r bookRecord) toEntity() *book.Book {
	return &book.Book{
		ID:              r.ID,
		Title:           r.Title,
		Author:          r.Author,
		ISBN:            r.ISBN,
		Price:           r.Price,
		Category:        r.Category,
		Description:     r.Description,
		PublicationYear: r.PublicationYear,
		Publisher:       r.Publisher,
		Stock:           r.Stock,
		CoverImage:      r.CoverImage,
	}
}

// ==================== 用户 ====================

// usersDocument users集合的顶层结构
type usersDocument struct {
	Users []userRecord `json:"users"`
}

type userRecord struct {
	ID        string        `json:"id"`
	Username  string        `json:"username"`
	Password  string        `json:"password"`
	Email     string        `json:"email"`
	FullName  string        `json:"fullName"`
	FirstName string        `json:"firstName"`
	LastName  string        `json:"lastName"`
	Role      string        `json:"role"`
	Profile   profileRecord `json:"profile"`
	CreatedAt string        `json:"createdAt"`
}

type profileRecord struct {
	Avatar         *string               `json:"avatar"`
	Bio            string                `json:"bio"`
	Phone          string                `json:"phone"`
	FirstName      string                `json:"firstName"`
	LastName       string                `json:"lastName"`
	Email          string                `json:"email"`
	Address        addressRecord         `json:"address"`
	OrderHistory   []orderRecord          `json:"orderHistory"`
	PaymentMethods *[]paymentMethodRecord `json:"paymentMethods,omitempty"` // nil：旧文档没有这个数组，写回时保持缺失
}

type addressRecord struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
	Country string `json:"country"`
}

// UnmarshalJSON 兼容旧文档：address曾经是一个字符串，读入后作为street
func (a *addressRecord) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var street string
		if err := json.Unmarshal(data, &street); err != nil {
			return err
		}
		*a = addressRecord{Street: street}
		return nil
	}

	type plain addressRecord
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*a = addressRecord(p)
	return nil
}

type paymentMethodRecord struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	LastFour    string `json:"lastFour"`
	Brand       string `json:"brand"`
	ExpiryMonth string `json:"expiryMonth"`
	ExpiryYear  string `json:"expiryYear"`
	IsDefault   bool   `json:"isDefault"`
	CreatedAt   string `json:"createdAt"`
}

type orderRecord struct {
	OrderID         string                `json:"orderId"`
	OrderDate       string                `json:"orderDate"`
	Total           float64               `json:"total"`
	Items           []orderItemRecord     `json:"items"`
	Status          string                `json:"status"`
	ShippingAddress shippingAddressRecord `json:"shippingAddress"`
}

type orderItemRecord struct {
	BookID   int     `json:"bookId"`
	Title    string  `json:"title"`
	Author   string  `json:"author"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

type shippingAddressRecord struct {
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

func newUserRecord(u *user.User) userRecord {
	p := u.Profile
	rec := userRecord{
		ID:        u.ID,
		Username:  u.Username,
		Password:  u.Password,
		Email:     u.Email,
		FullName:  u.FullName,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
		Profile: profileRecord{
			Avatar:    p.Avatar,
			Bio:       p.Bio,
			Phone:     p.Phone,
			FirstName: p.FirstName,
			LastName:  p.LastName,
			Email:     p.Email,
			Address: addressRecord{
				Street:  p.Address.Street,
				City:    p.Address.City,
				State:   p.Address.State,
				ZipCode: p.Address.ZipCode,
				Country: p.Address.Country,
			},
			OrderHistory: make([]orderRecord, 0, len(p.OrderHistory)),
		},
	}
	for _, o := range p.OrderHistory {
		rec.Profile.OrderHistory = append(rec.Profile.OrderHistory, newOrderRecord(o))
	}
	if p.PaymentMethods != nil {
		methods := make([]paymentMethodRecord, 0, len(p.PaymentMethods))
		for _, pm := range p.PaymentMethods {
			methods = append(methods, paymentMethodRecord(pm))
		}
		rec.Profile.PaymentMethods = &methods
	}
	return rec
}

func (r userRecord) toEntity() *user.User {
	p := r.Profile
	u := &user.User{
		ID:        r.ID,
		Username:  r.Username,
		Password:  r.Password,
		Email:     r.Email,
		FullName:  r.FullName,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Role:      user.Role(r.Role),
		CreatedAt: r.CreatedAt,
		Profile: user.Profile{
			Avatar:    p.Avatar,
			Bio:       p.Bio,
			Phone:     p.Phone,
			FirstName: p.FirstName,
			LastName:  p.LastName,
			Email:     p.Email,
			Address: user.Address{
				Street:  p.Address.Street,
				City:    p.Address.City,
				State:   p.Address.State,
				ZipCode: p.Address.ZipCode,
				Country: p.Address.Country,
			},
		},
	}
	if p.OrderHistory != nil {
		u.Profile.OrderHistory = make([]order.Order, 0, len(p.OrderHistory))
		for _, o := range p.OrderHistory {
			u.Profile.OrderHistory = append(u.Profile.OrderHistory, o.toEntity())
		}
	}
	if p.PaymentMethods != nil {
		u.Profile.PaymentMethods = make([]user.PaymentMethod, 0, len(*p.PaymentMethods))
		for _, pm := range *p.PaymentMethods {
			u.Profile.PaymentMethods = append(u.Profile.PaymentMethods, user.PaymentMethod(pm))
		}
	}
	// 旧数据缺少的profile字段在这里补全
	u.EnsureProfile()
	return u
}

func newOrderRecord(o order.Order) orderRecord {
	rec := orderRecord{
		OrderID:         o.OrderID,
		OrderDate:       o.OrderDate,
		Total:           o.Total,
		Items:           make([]orderItemRecord, 0, len(o.Items)),
		Status:          string(o.Status),
		ShippingAddress: shippingAddressRecord(o.ShippingAddress),
	}
	for _, item := range o.Items {
		rec.Items = append(rec.Items, orderItemRecord(item))
	}
	return rec
}

func (r orderRecord) toEntity() order.Order {
	o := order.Order{
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
