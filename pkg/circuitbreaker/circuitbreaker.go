// Package circuitbreaker 熔断器（基于sony/gobreaker）
//
// 熔断器核心思想：
// 1. 监控对远程依赖（Redis、数据库）的调用结果
// 2. 连续失败达到阈值时打开熔断器，后续请求快速失败
// 3. 超时后进入半开状态，放行少量请求探测依赖是否恢复
//
// 三种状态：
//
//	CLOSED ──连续失败──▶ OPEN ──Timeout──▶ HALF_OPEN ──成功──▶ CLOSED
//	                       ▲                   │
//	                       └───────失败─────────┘
//
// 这里只是对gobreaker的薄封装：统一配置结构、把gobreaker的两种拒绝错误
// 归一为ErrOpenState，并提供func() error形式的Execute
package circuitbreaker

import (
	"errors"
	"time"

	"github.com/sony/gobreaker"
)

// State 熔断器状态
type State int

const (
	StateClosed   State = iota // 关闭（正常）
	StateHalfOpen              // 半开（探测）
	StateOpen                  // 打开（熔断）
)

// String 状态转字符串（便于日志）
func (s State) String() string {
	switch s {
	case StateClosed:
		return "CLOSED"
	case StateHalfOpen:
		return "HALF_OPEN"
	case StateOpen:
		return "OPEN"
	default:
		return "UNKNOWN"
	}
}

func fromGobreaker(s gobreaker.State) State {
	switch s {
	case gobreaker.StateHalfOpen:
		return StateHalfOpen
	case gobreaker.StateOpen:
		return StateOpen
	default:
		return StateClosed
	}
}

// Counts 统计数据
type Counts = gobreaker.Counts

// Config 熔断器配置
type Config struct {
	// MaxRequests 半开状态下允许通过的最大请求数
	MaxRequests uint32

	// Interval 关闭状态下的统计窗口，到期清零计数；0表示不清零
	Interval time.Duration

	// Timeout 打开状态持续时间，之后转为半开
	Timeout time.Duration

	// ReadyToTrip 判断是否应该打开熔断器，为nil时使用连续失败5次
	ReadyToTrip func(counts Counts) bool

	// IsSuccessful 判断一次调用是否算成功，为nil时err==nil算成功
	// 用途：业务上的"不存在"之类的错误不应计入失败次数
	IsSuccessful func(err error) bool

	// OnStateChange 状态变化回调（记录日志、更新监控指标）
	OnStateChange func(name string, from State, to State)
}

// ErrOpenState 熔断器打开（或半开状态请求数已满）
var ErrOpenState = errors.New("circuit breaker is open")

// CircuitBreaker 熔断器
type CircuitBreaker struct {
	cb *gobreaker.CircuitBreaker
}

// NewCircuitBreaker 创建熔断器
//
// 示例：
//
//	cb := NewCircuitBreaker("store-redis", Config{
//	    MaxRequests: 1,
//	    Interval:    30 * time.Second,
//	    Timeout:     10 * time.Second,
//	    ReadyToTrip: func(counts Counts) bool {
//	        return counts.ConsecutiveFailures >= 5
//	    },
//	})
func NewCircuitBreaker(name string, config Config) *CircuitBreaker {
	settings := gobreaker.Settings{
		Name:         name,
		MaxRequests:  config.MaxRequests,
		Interval:     config.Interval,
		Timeout:      config.Timeout,
		ReadyToTrip:  config.ReadyToTrip,
		IsSuccessful: config.IsSuccessful,
	}
	if config.OnStateChange != nil {
		onChange := config.OnStateChange
		settings.OnStateChange = func(name string, from, to gobreaker.State) {
			onChange(name, fromGobreaker(from), fromGobreaker(to))
		}
	}
	return &CircuitBreaker{cb: gobreaker.NewCircuitBreaker(settings)}
}

// Execute 在熔断器保护下执行请求
// 熔断器打开时不调用req，直接返回ErrOpenState
func (c *CircuitBreaker) Execute(req func() error) error {
	_, err := c.cb.Execute(func() (interface{}, error) {
		return nil, req()
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return ErrOpenState
	}
	return err
}

// Name 熔断器名称
func (c *CircuitBreaker) Name() string {
	return c.cb.Name()
}

// State 当前状态
func (c *CircuitBreaker) State() State {
	return fromGobreaker(c.cb.State())
}

// Counts 当前统计数据
func (c *CircuitBreaker) Counts() Counts {
	return c.cb.Counts()
}
