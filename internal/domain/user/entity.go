package user

import (
	"strings"
	"time"

	"github.com/xiebiao/bookstore-lite/internal/domain/order"
)

// TimestampLayout 时间戳格式（ISO 8601，毫秒精度，UTC）
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Role 用户角色
type Role string

const (
	RoleCustomer Role = "customer" // 普通顾客
	RoleStaff    Role = "staff"    // 店员
	RoleAdmin    Role = "admin"    // 管理员
)

// Valid 是否为合法角色
func (r Role) Valid() bool {
	return r == RoleCustomer || r == RoleStaff || r == RoleAdmin
}

// IsStaff 店员或管理员
func (r Role) IsStaff() bool {
	return r == RoleStaff || r == RoleAdmin
}

// User 用户实体（聚合根）
// DDD设计说明：
// 1. User是用户聚合的根，Profile、订单历史、支付方式都归属于它，没有独立身份
// 2. Password的存储形式由PasswordScheme决定（默认明文，可选bcrypt）
// 3. 领域实体不带json tag，持久化文档和API响应的映射分别在infrastructure层和interface层完成
type User struct {
	ID        string
	Username  string
	Password  string
	Email     string
	FullName  string
	FirstName string
	LastName  string
	Role      Role
	Profile   Profile
	CreatedAt string
}

// Profile 用户资料
type Profile struct {
	Avatar         *string
	Bio            string
	Phone          string
	FirstName      string
	LastName       string
	Email          string
	Address        Address
	OrderHistory   []order.Order
	PaymentMethods []PaymentMethod // nil表示文档中没有paymentMethods数组（旧数据）
}

// Address 地址
type Address struct {
	Street  string
	City    string
	State   string
	ZipCode string
	Country string
}

// PaymentMethod 支付方式（只保存卡号后四位）
type PaymentMethod struct {
	ID          string
	Type        string
	LastFour    string
	Brand       string
	ExpiryMonth string
	ExpiryYear  string
	IsDefault   bool
	CreatedAt   string
}

// NewUser 创建新用户（工厂方法）
// 说明：Profile及其中的订单历史、支付方式在创建时就初始化好，
// 之后的操作不需要再判断是否为空
func NewUser(id string, reg Registration, storedPassword string, role Role, now time.Time) *User {
	return &User{
		ID:        id,
		Username:  reg.Username,
		Password:  storedPassword,
		Email:     reg.Email,
		FullName:  reg.FirstName + " " + reg.LastName,
		FirstName: reg.FirstName,
		LastName:  reg.LastName,
		Role:      role,
		Profile: Profile{
			FirstName:      reg.FirstName,
			LastName:       reg.LastName,
			Email:          reg.Email,
			OrderHistory:   []order.Order{},
			PaymentMethods: []PaymentMethod{},
		},
		CreatedAt: now.UTC().Format(TimestampLayout),
	}
}

// EnsureProfile 补全旧数据中缺失的嵌套结构
// 旧文档可能没有profile，此时按fullName拆分姓名
// PaymentMethods保持原样：删除支付方式时要区分“没有数组”和“数组为空”
func (u *User) EnsureProfile() {
	p := &u.Profile
	if p.FirstName == "" && p.LastName == "" {
		first, last, _ := strings.Cut(u.FullName, " ")
		p.FirstName, p.LastName = first, last
	}
	if p.Email == "" {
		p.Email = u.Email
	}
	if p.OrderHistory == nil {
		p.OrderHistory = []order.Order{}
	}
}
