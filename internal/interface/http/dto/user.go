package dto

import (
	"time"

	"github.com/xiebiao/bookstore-lite/internal/domain/user"
)

// =========================================
// 请求
// =========================================

// RegisterRequest 注册/添加店员请求
// 不使用binding:"required"，缺字段时由领域层返回"All fields are required"
type RegisterRequest struct {
	Username  string `json:"username" example:"bob"`
	Password  string `json:"password" example:"secret1"`
	Email     string `json:"email" example:"bob@example.com"`
	FirstName string `json:"firstName" example:"Bob"`
	LastName  string `json:"lastName" example:"Smith"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Username string `json:"username" example:"bob"`
	Password string `json:"password" example:"secret1"`
}

// UpdateProfileRequest 更新资料请求
// firstName/lastName/email/phone为空时保留原值；address中出现的字段逐个覆盖
type UpdateProfileRequest struct {
	FirstName string              `json:"firstName" example:"Bob"`
	LastName  string              `json:"lastName" example:"Smith"`
	Email     string              `json:"email" binding:"omitempty,email" example:"bob@example.com"`
	Phone     string              `json:"phone" example:"555-0100"`
	Address   *AddressPatchRequest `json:"address"`
}

// AddressPatchRequest 地址(指针区分"没传"和"传了空串")
type AddressPatchRequest struct {
	Street  *string `json:"street" example:"1 Main St"`
	City    *string `json:"city" example:"Springfield"`
	State   *string `json:"state" example:"IL"`
	ZipCode *string `json:"zipCode" example:"62701"`
	Country *string `json:"country" example:"USA"`
}

// ToPatch 请求 → 领域层ProfilePatch
func (r UpdateProfileRequest) ToPatch() user.ProfilePatch {
	patch := user.ProfilePatch{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
		Phone:     r.Phone,
	}
	if r.Address != nil {
		patch.Address = &user.AddressPatch{
			Street:  r.Address.Street,
			City:    r.Address.City,
			State:   r.Address.State,
			ZipCode: r.Address.ZipCode,
			Country: r.Address.Country,
		}
	}
	return patch
}

// PaymentMethodRequest 新增支付方式请求
type PaymentMethodRequest struct {
	Type        string `json:"type" example:"credit"`
	LastFour    string `json:"lastFour" binding:"omitempty,max=4" example:"4242"`
	Brand       string `json:"brand" example:"Visa"`
	ExpiryMonth string `json:"expiryMonth" example:"12"`
	ExpiryYear  string `json:"expiryYear" example:"2027"`
	IsDefault   bool   `json:"isDefault" example:"true"`
}

// ToInput 请求 → 领域层输入
func (r PaymentMethodRequest) ToInput() user.PaymentMethodInput {
	return user.PaymentMethodInput{
		Type:        r.Type,
		LastFour:    r.LastFour,
		Brand:       r.Brand,
		ExpiryMonth: r.ExpiryMonth,
		ExpiryYear:  r.ExpiryYear,
		IsDefault:   r.IsDefault,
	}
}

// =========================================
// 响应
// =========================================

// UserResponse 用户（不包含密码）
type UserResponse struct {
	ID        string          `json:"id" example:"user_1716192000000_k3j9x0a1b"`
	Username  string          `json:"username" example:"bob"`
	Email     string          `json:"email" example:"bob@example.com"`
	FullName  string          `json:"fullName" example:"Bob Smith"`
	FirstName string          `json:"firstName" example:"Bob"`
	LastName  string          `json:"lastName" example:"Smith"`
	Role      string          `json:"role" example:"customer"`
	Profile   ProfileResponse `json:"profile"`
	CreatedAt string          `json:"createdAt" example:"2024-05-20T08:00:00.000Z"`
}

// ProfileResponse 用户资料
type ProfileResponse struct {
	Avatar         *string                 `json:"avatar"`
	Bio            string                  `json:"bio"`
	Phone          string                  `json:"phone"`
	FirstName      string                  `json:"firstName"`
	LastName       string                  `json:"lastName"`
	Email          string                  `json:"email"`
	Address        AddressResponse         `json:"address"`
	OrderHistory   []OrderResponse         `json:"orderHistory"`
	PaymentMethods []PaymentMethodResponse `json:"paymentMethods"`
}

// AddressResponse 地址
type AddressResponse struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
	Country string `json:"country"`
}

// PaymentMethodResponse 支付方式
type PaymentMethodResponse struct {
	ID          string `json:"id" example:"pm_1716192000000"`
	Type        string `json:"type" example:"credit"`
	LastFour    string `json:"lastFour" example:"4242"`
	Brand       string `json:"brand" example:"Visa"`
	ExpiryMonth string `json:"expiryMonth" example:"12"`
	ExpiryYear  string `json:"expiryYear" example:"2027"`
	IsDefault   bool   `json:"isDefault" example:"true"`
	CreatedAt   string `json:"createdAt" example:"2024-05-20T08:00:00.000Z"`
}

// NewUserResponse 领域实体 → 响应
func NewUserResponse(u *user.User) UserResponse {
	p := u.Profile
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FullName:  u.FullName,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
		Profile: ProfileResponse{
			Avatar:    p.Avatar,
			Bio:       p.Bio,
			Phone:     p.Phone,
			FirstName: p.FirstName,
			LastName:  p.LastName,
			Email:     p.Email,
			Address: AddressResponse{
				Street:  p.Address.Street,
				City:    p.Address.City,
				State:   p.Address.State,
				ZipCode: p.Address.ZipCode,
				Country: p.Address.Country,
			},
			OrderHistory:   NewOrderList(p.OrderHistory),
			PaymentMethods: NewPaymentMethodList(p.PaymentMethods),
		},
	}
}

// NewUserList 用户列表
func NewUserList(users []*user.User) []UserResponse {
	list := make([]UserResponse, 0, len(users))
	for _, u := range users {
		list = append(list, NewUserResponse(u))
	}
	return list
}

// NewPaymentMethodResponse 支付方式响应
func NewPaymentMethodResponse(pm user.PaymentMethod) PaymentMethodResponse {
	return PaymentMethodResponse(pm)
}

// NewPaymentMethodList 支付方式列表
func NewPaymentMethodList(methods []user.PaymentMethod) []PaymentMethodResponse {
	list := make([]PaymentMethodResponse, 0, len(methods))
	for _, pm := range methods {
		list = append(list, NewPaymentMethodResponse(pm))
	}
	return list
}

// AuthResponse 注册/登录/添加店员响应
type AuthResponse struct {
	Success   bool         `json:"success" example:"true"`
	User      UserResponse `json:"user"`
	Message   string       `json:"message" example:"Welcome, Bob Smith!"`
	Token     string       `json:"token,omitempty"`
	ExpiresAt *time.Time   `json:"expiresAt,omitempty"`
}

// ProfileUpdatedResponse 更新资料响应
type ProfileUpdatedResponse struct {
	Success bool         `json:"success" example:"true"`
	Message string       `json:"message" example:"Profile updated successfully"`
	User    UserResponse `json:"user"`
}

// PaymentMethodsResponse 支付方式列表响应
type PaymentMethodsResponse struct {
	UserID         string                  `json:"userId"`
	PaymentMethods []PaymentMethodResponse `json:"paymentMethods"`
}

// PaymentMethodSavedResponse 新增支付方式响应
type PaymentMethodSavedResponse struct {
	Success       bool                  `json:"success" example:"true"`
	Message       string                `json:"message" example:"Payment method saved successfully"`
	PaymentMethod PaymentMethodResponse `json:"paymentMethod"`
}
