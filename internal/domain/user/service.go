package user

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/xiebiao/bookstore-lite/internal/domain/order"
)

// 注册长度要求
const (
	minUsernameLength = 3
	minPasswordLength = 6
)

// Registration 注册信息
type Registration struct {
	Username  string
	Password  string
	Email     string
	FirstName string
	LastName  string
}

// ProfilePatch 资料更新请求
// 规则：FirstName/LastName/Email/Phone只有非空时才覆盖；
// Address不为nil时逐个字段合并（请求中出现的字段覆盖，包括空串）
type ProfilePatch struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Address   *AddressPatch
}

// AddressPatch 地址合并请求，nil表示请求中没有该字段
type AddressPatch struct {
	Street  *string
	City    *string
	State   *string
	ZipCode *string
	Country *string
}

// PaymentMethodInput 新增支付方式请求
type PaymentMethodInput struct {
	Type        string
	LastFour    string
	Brand       string
	ExpiryMonth string
	ExpiryYear  string
	IsDefault   bool
}

// OrderHistory 用户订单历史
type OrderHistory struct {
	UserID   string
	UserName string
	Orders   []order.Order
}

// Service 用户领域服务
// 设计说明：
// 1. Service包含注册、登录以及Profile下订单、支付方式的业务规则
// 2. Service依赖Repository接口，不依赖具体实现（依赖倒置）
// 3. Service不处理HTTP请求，只处理业务逻辑
type Service interface {
	// Register 顾客注册
	Register(ctx context.Context, reg Registration) (*User, error)

	// AddStaff 添加店员（与注册相同的校验，角色为staff）
	AddStaff(ctx context.Context, reg Registration) (*User, error)

	// Login 用户名+密码登录
	Login(ctx context.Context, username, password string) (*User, error)

	// GetUser 根据ID获取用户
	GetUser(ctx context.Context, id string) (*User, error)

	// ListUsers 全部用户
	ListUsers(ctx context.Context) ([]*User, error)

	// UpdateProfile 更新用户资料
	UpdateProfile(ctx context.Context, id string, patch ProfilePatch) (*User, error)

	// AddOrder 追加订单到订单历史
	AddOrder(ctx context.Context, userID string, o *order.Order) (*order.Order, error)

	// ListOrders 订单历史（按下单顺序）
	ListOrders(ctx context.Context, userID string) (*OrderHistory, error)

	// AddPaymentMethod 新增支付方式
	AddPaymentMethod(ctx context.Context, userID string, in PaymentMethodInput) (*PaymentMethod, error)

	// ListPaymentMethods 支付方式列表
	ListPaymentMethods(ctx context.Context, userID string) ([]PaymentMethod, error)

	// DeletePaymentMethod 删除支付方式
	DeletePaymentMethod(ctx context.Context, userID, pmID string) error
}

// IDGenerator 生成用户ID
type IDGenerator func(now time.Time) string

// DefaultIDGenerator 格式：user_<毫秒时间戳>_<9位36进制随机串>
func DefaultIDGenerator(now time.Time) string {
	const alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	var sb strings.Builder
	for i := 0; i < 9; i++ {
		sb.WriteByte(alphabet[rand.Intn(len(alphabet))])
	}
	return fmt.Sprintf("user_%d_%s", now.UnixMilli(), sb.String())
}

// Option 服务选项
type Option func(*service)

// WithClock 注入时钟（测试中固定时间）
func WithClock(now func() time.Time) Option {
	return func(s *service) { s.now = now }
}

// WithIDGenerator 注入用户ID生成器
func WithIDGenerator(gen IDGenerator) Option {
	return func(s *service) { s.newID = gen }
}

// WithPasswordScheme 指定密码存储方式
func WithPasswordScheme(scheme PasswordScheme) Option {
	return func(s *service) { s.passwords = scheme }
}

type service struct {
	repo      Repository
	passwords PasswordScheme
	now       func() time.Time
	newID     IDGenerator
}

// NewService 创建用户服务（默认明文密码、系统时钟）
func NewService(repo Repository, opts ...Option) Service {
	s := &service{
		repo:      repo,
		passwords: PlaintextScheme{},
		now:       time.Now,
		newID:     DefaultIDGenerator,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register 顾客注册
func (s *service) Register(ctx context.Context, reg Registration) (*User, error) {
	return s.create(ctx, reg, RoleCustomer, msgRegisterFailed)
}

// AddStaff 添加店员
func (s *service) AddStaff(ctx context.Context, reg Registration) (*User, error) {
	return s.create(ctx, reg, RoleStaff, msgAddStaffFailed)
}

// create 注册流程
// 业务规则（按顺序校验）：
// 1. 所有字段必填
// 2. 用户名至少3个字符，密码至少6个字符
// 3. 用户名唯一，邮箱唯一
func (s *service) create(ctx context.Context, reg Registration, role Role, saveFailed string) (*User, error) {
	// 1. 字段校验
	if err := reg.validate(); err != nil {
		return nil, err
	}

	// 2. 唯一性检查
	users, err := s.repo.Load(ctx)
	if err != nil {
		return nil, persistenceError(msgLoadFailed, err)
	}
	for _, u := range users {
		if u.Username == reg.Username {
			return nil, ErrUsernameTaken
		}
	}
	for _, u := range users {
		if u.Email == reg.Email {
			return nil, ErrEmailTaken
		}
	}

	// 3. 密码按方案存储
	stored, err := s.passwords.Hash(reg.Password)
	if err != nil {
		return nil, persistenceError(saveFailed, err)
	}

	// 4. 创建用户并写回
	now := s.now()
	newUser := NewUser(s.newID(now), reg, stored, role, now)
	users = append(users, newUser)
	if err := s.repo.Save(ctx, users); err != nil {
		return nil, persistenceError(saveFailed, err)
	}

	return newUser, nil
}

func (r Registration) validate() error {
	if r.Username == "" || r.Password == "" || r.Email == "" || r.FirstName == "" || r.LastName == "" {
		return ErrFieldsRequired
	}
	if utf8.RuneCountInString(r.Username) < minUsernameLength {
		return ErrUsernameTooShort
	}
	if utf8.RuneCountInString(r.Password) < minPasswordLength {
		return ErrPasswordTooShort
	}
	return nil
}

// Login 用户登录
// 用户名精确匹配，密码通过PasswordScheme比对
func (s *service) Login(ctx context.Context, username, password string) (*User, error) {
	if username == "" || password == "" {
		return nil, ErrCredentialsRequired
	}

	users, err := s.repo.Load(ctx)
	if err != nil {
		return nil, persistenceError(msgLoadFailed, err)
	}

	for _, u := range users {
		if u.Username == username && s.passwords.Verify(u.Password, password) {
			return u, nil
		}
	}
	return nil, ErrInvalidCredentials
}

// GetUser 根据ID获取用户
func (s *service) GetUser(ctx context.Context, id string) (*User, error) {
	_, u, err := s.find(ctx, id)
	return u, err
}

// ListUsers 全部用户
func (s *service) ListUsers(ctx context.Context) ([]*User, error) {
	users, err := s.repo.Load(ctx)
	if err != nil {
		return nil, persistenceError(msgLoadFailed, err)
	}
	return users, nil
}

// UpdateProfile 更新用户资料
func (s *service) UpdateProfile(ctx context.Context, id string, patch ProfilePatch) (*User, error) {
	users, u, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	// 1. 非空才覆盖
	p := &u.Profile
	p.FirstName = firstNonEmpty(patch.FirstName, p.FirstName)
	p.LastName = firstNonEmpty(patch.LastName, p.LastName)
	p.Email = firstNonEmpty(patch.Email, p.Email)
	p.Phone = firstNonEmpty(patch.Phone, p.Phone)

	// 2. 地址逐字段合并
	if patch.Address != nil {
		patch.Address.applyTo(&p.Address)
	}

	if err := s.repo.Save(ctx, users); err != nil {
		return nil, persistenceError(msgSaveProfileFailed, err)
	}
	return u, nil
}

func (a *AddressPatch) applyTo(addr *Address) {
	fields := []struct {
		src *string
		dst *string
	}{
		{a.Street, &addr.Street},
		{a.City, &addr.City},
		{a.State, &addr.State},
		{a.ZipCode, &addr.ZipCode},
		{a.Country, &addr.Country},
	}
	for _, f := range fields {
		if f.src != nil {
			*f.dst = *f.src
		}
	}
}

// AddOrder 追加订单
// 说明：不检查orderId是否重复，也不扣减图书库存
// 先查用户再校验订单：用户不存在时一律返回404
func (s *service) AddOrder(ctx context.Context, userID string, o *order.Order) (*order.Order, error) {
	users, u, err := s.find(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := o.Prepare(s.now()); err != nil {
		return nil, err
	}

	u.Profile.OrderHistory = append(u.Profile.OrderHistory, *o.Clone())
	if err := s.repo.Save(ctx, users); err != nil {
		return nil, persistenceError(msgSaveOrderFailed, err)
	}
	return o, nil
}

// ListOrders 订单历史
func (s *service) ListOrders(ctx context.Context, userID string) (*OrderHistory, error) {
	_, u, err := s.find(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &OrderHistory{
		UserID:   u.ID,
		UserName: u.FullName,
		Orders:   u.Profile.OrderHistory,
	}, nil
}

// AddPaymentMethod 新增支付方式
// 业务规则：
// 1. 新方式为默认时，先取消其他方式的默认标记（保证最多一个默认）
// 2. ID为pm_<毫秒时间戳>，同一用户同一毫秒内重复时追加序号
func (s *service) AddPaymentMethod(ctx context.Context, userID string, in PaymentMethodInput) (*PaymentMethod, error) {
	users, u, err := s.find(ctx, userID)
	if err != nil {
		return nil, err
	}

	methods := u.Profile.PaymentMethods
	if in.IsDefault {
		for i := range methods {
			methods[i].IsDefault = false
		}
	}

	now := s.now()
	pm := PaymentMethod{
		ID:          paymentMethodID(methods, now),
		Type:        in.Type,
		LastFour:    in.LastFour,
		Brand:       in.Brand,
		ExpiryMonth: in.ExpiryMonth,
		ExpiryYear:  in.ExpiryYear,
		IsDefault:   in.IsDefault,
		CreatedAt:   now.UTC().Format(TimestampLayout),
	}
	u.Profile.PaymentMethods = append(methods, pm)

	if err := s.repo.Save(ctx, users); err != nil {
		return nil, persistenceError(msgSavePaymentFailed, err)
	}
	return &pm, nil
}

func paymentMethodID(existing []PaymentMethod, now time.Time) string {
	base := "pm_" + strconv.FormatInt(now.UnixMilli(), 10)
	taken := make(map[string]bool, len(existing))
	for _, pm := range existing {
		taken[pm.ID] = true
	}
	id := base
	for n := 1; taken[id]; n++ {
		id = base + "_" + strconv.Itoa(n)
	}
	return id
}

// ListPaymentMethods 支付方式列表
func (s *service) ListPaymentMethods(ctx context.Context, userID string) ([]PaymentMethod, error) {
	_, u, err := s.find(ctx, userID)
	if err != nil {
		return nil, err
	}
	return u.Profile.PaymentMethods, nil
}

// DeletePaymentMethod 删除支付方式
// 1. 用户资料里没有paymentMethods数组（旧数据） → No payment methods found
// 2. 数组中找不到该ID（包括空数组） → Payment method not found
func (s *service) DeletePaymentMethod(ctx context.Context, userID, pmID string) error {
	users, u, err := s.find(ctx, userID)
	if err != nil {
		return err
	}

	methods := u.Profile.PaymentMethods
	if methods == nil {
		return ErrNoPaymentMethods
	}

	idx := -1
	for i, pm := range methods {
		if pm.ID == pmID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrPaymentMethodNotFound
	}

	u.Profile.PaymentMethods = append(methods[:idx], methods[idx+1:]...)
	if err := s.repo.Save(ctx, users); err != nil {
		return persistenceError(msgDeletePaymentFailed, err)
	}
	return nil
}

// find 读取全部用户并定位目标用户
// 返回完整列表以便修改后整体写回
func (s *service) find(ctx context.Context, id string) ([]*User, *User, error) {
	users, err := s.repo.Load(ctx)
	if err != nil {
		return nil, nil, persistenceError(msgLoadFailed, err)
	}
	for _, u := range users {
		if u.ID == id {
			u.EnsureProfile()
			return users, u, nil
		}
	}
	return nil, nil, ErrUserNotFound
}

func firstNonEmpty(incoming, current string) string {
	if incoming != "" {
		return incoming
	}
	return current
}
