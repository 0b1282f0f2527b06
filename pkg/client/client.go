// Package client 书店API的Go客户端
// 响应结构复用 internal/interface/http/dto，与服务端保持同一份线上格式
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/xiebiao/bookstore-lite/internal/domain/book"
	"github.com/xiebiao/bookstore-lite/internal/interface/http/dto"
	"github.com/xiebiao/bookstore-lite/pkg/response"
)

// APIError 非2xx响应
// Message取自响应体的error字段，没有时为HTTP状态文本
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("bookstore api: %d %s", e.Status, e.Message)
}

// IsStatus 判断err是否为指定状态码的APIError
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}

// Config 客户端配置
type Config struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client // 为空时按Timeout创建
}

// Client 书店API客户端
// Login成功后保存Token，之后的请求自动携带Authorization头；Logout后清除
type Client struct {
	baseURL    string
	httpClient *http.Client

	mu    sync.RWMutex
	token string
}

// New 创建客户端
func New(cfg Config) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = 30 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: httpClient,
	}
}

// SetToken 手动设置Token（例如从本地缓存恢复登录态）
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// Token 当前Token
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// =========================================
// 图书
// =========================================

// BookFilter 列表过滤条件
type BookFilter struct {
	Category string
	Author   string
	Search   string
}

// ListBooks 图书列表
func (c *Client) ListBooks(ctx context.Context, filter BookFilter) ([]dto.BookResponse, error) {
	q := url.Values{}
	if filter.Category != "" {
		q.Set("category", filter.Category)
	}
	if filter.Author != "" {
		q.Set("author", filter.Author)
	}
	if filter.Search != "" {
		q.Set("search", filter.Search)
	}
	path := "/api/books"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var books []dto.BookResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &books); err != nil {
		return nil, err
	}
	return books, nil
}

// GetBook 图书详情
func (c *Client) GetBook(ctx context.Context, id int) (*dto.BookResponse, error) {
	var b dto.BookResponse
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/books/%d", id), nil, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

// CreateBook 新增图书
func (c *Client) CreateBook(ctx context.Context, attrs book.Attributes) (*dto.BookResponse, error) {
	var b dto.BookResponse
	if err := c.do(ctx, http.MethodPost, "/api/books", attrs, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

// UpdateBook 部分更新图书
func (c *Client) UpdateBook(ctx context.Context, id int, attrs book.Attributes) (*dto.BookResponse, error) {
	var b dto.BookResponse
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/books/%d", id), attrs, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

// DeleteBook 删除图书
func (c *Client) DeleteBook(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/books/%d", id), nil, nil)
}

// =========================================
// 认证
// =========================================

// Register 注册顾客账号
func (c *Client) Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthResponse, error) {
	var resp dto.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Login 登录，成功后保存Token
func (c *Client) Login(ctx context.Context, username, password string) (*dto.AuthResponse, error) {
	var resp dto.AuthResponse
	req := dto.LoginRequest{Username: username, Password: password}
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", req, &resp); err != nil {
		return nil, err
	}
	if resp.Token != "" {
		c.SetToken(resp.Token)
	}
	return &resp, nil
}

// Logout 退出登录
// 服务端吊销当前Token，客户端同时清除
func (c *Client) Logout(ctx context.Context) error {
	err := c.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil)
	c.SetToken("")
	return err
}

// =========================================
// 账户
// =========================================

// GetProfile 用户资料
func (c *Client) GetProfile(ctx context.Context, userID string) (*dto.UserResponse, error) {
	var u dto.UserResponse
	if err := c.do(ctx, http.MethodGet, accountPath(userID, "profile"), nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// UpdateProfile 更新用户资料
func (c *Client) UpdateProfile(ctx context.Context, userID string, req dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	var resp dto.ProfileUpdatedResponse
	if err := c.do(ctx, http.MethodPut, accountPath(userID, "profile"), req, &resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// GetOrderHistory 订单历史
func (c *Client) GetOrderHistory(ctx context.Context, userID string) (*dto.OrderHistoryResponse, error) {
	var resp dto.OrderHistoryResponse
	if err := c.do(ctx, http.MethodGet, accountPath(userID, "orders"), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// AddOrder 提交订单
func (c *Client) AddOrder(ctx context.Context, userID string, req dto.OrderRequest) (*dto.OrderResponse, error) {
	var resp dto.OrderCreatedResponse
	if err := c.do(ctx, http.MethodPost, accountPath(userID, "orders"), req, &resp); err != nil {
		return nil, err
	}
	return &resp.Order, nil
}

// GetPaymentMethods 支付方式列表
func (c *Client) GetPaymentMethods(ctx context.Context, userID string) ([]dto.PaymentMethodResponse, error) {
	var resp dto.PaymentMethodsResponse
	if err := c.do(ctx, http.MethodGet, accountPath(userID, "payment-methods"), nil, &resp); err != nil {
		return nil, err
	}
	return resp.PaymentMethods, nil
}

// SavePaymentMethod 新增支付方式
func (c *Client) SavePaymentMethod(ctx context.Context, userID string, req dto.PaymentMethodRequest) (*dto.PaymentMethodResponse, error) {
	var resp dto.PaymentMethodSavedResponse
	if err := c.do(ctx, http.MethodPost, accountPath(userID, "payment-methods"), req, &resp); err != nil {
		return nil, err
	}
	return &resp.PaymentMethod, nil
}

// DeletePaymentMethod 删除支付方式
func (c *Client) DeletePaymentMethod(ctx context.Context, userID, paymentMethodID string) error {
	path := accountPath(userID, "payment-methods") + "/" + url.PathEscape(paymentMethodID)
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

func accountPath(userID, resource string) string {
	return "/api/users/" + url.PathEscape(userID) + "/" + resource
}

// do 发送请求并解码响应
//
// 步骤：
// 1. body非空时编码为JSON
// 2. 有Token时带上Bearer头
// 3. 非2xx响应解析{error}转为APIError
// 4. out非空时解码响应体
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		var errBody response.ErrorBody
		if json.Unmarshal(respBody, &errBody) == nil && errBody.Error != "" {
			apiErr.Message = errBody.Error
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	return nil
}
