// Package metrics 提供基于Prometheus的指标收集
//
// # 指标分类
//
// **1. HTTP指标**:请求总数、耗时分布、处理中的请求数（由middleware记录）
//
// **2. 业务指标**:新增图书、注册用户、下单、登录尝试（由application层记录）
//
// **3. 基础设施指标**:集合存储读写耗时、熔断器状态、事件发布数
//
// # 命名规范
//
//   - Counter以`_total`结尾
//   - Histogram以单位结尾(`_seconds`)
//   - 标签只使用有限取值（method、status、collection），不要用user_id这类高基数字段
//
// # 使用示例
//
//	metrics.InitMetrics()
//	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
//
//	// 业务代码
//	metrics.BookCreated()
//	metrics.LoginAttempt(metrics.ResultSuccess)
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// 登录结果标签
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

var (
	initOnce sync.Once

	// HTTP请求相关指标

	// HTTPRequestsTotal HTTP请求总数
	// 标签：method、path（路由模板，如/api/books/:id）、status
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration HTTP请求耗时
	HTTPRequestDuration *prometheus.HistogramVec

	// HTTPRequestsInProgress 正在处理的HTTP请求数
	HTTPRequestsInProgress prometheus.Gauge

	// 业务指标

	// BooksCreatedTotal 新增图书总数
	BooksCreatedTotal prometheus.Counter

	// UsersRegisteredTotal 注册用户总数，标签：role
	UsersRegisteredTotal *prometheus.CounterVec

	// OrdersPlacedTotal 下单总数
	OrdersPlacedTotal prometheus.Counter

	// LoginAttemptsTotal 登录尝试总数，标签：result(success/failure)
	LoginAttemptsTotal *prometheus.CounterVec

	// 存储指标

	// StoreOperationDuration 集合读写耗时
	// 标签：collection(books/users)、op(read/write)
	StoreOperationDuration *prometheus.HistogramVec

	// CircuitBreakerState 熔断器状态（0=CLOSED, 1=HALF_OPEN, 2=OPEN）
	CircuitBreakerState *prometheus.GaugeVec

	// 消息队列指标

	// MessagesPublishedTotal 事件发布总数，标签：exchange、routing_key
	MessagesPublishedTotal *prometheus.CounterVec

	// MessagesConsumedTotal 事件消费总数，标签：queue、result
	MessagesConsumedTotal *prometheus.CounterVec
)

// InitMetrics 初始化所有Prometheus指标
//
// 设计要点：
// 1. 使用promauto.New*自动注册到默认Registry
// 2. sync.Once保证只注册一次（重复注册会panic）
// 3. 下面的便捷函数都会先调用InitMetrics，调用方不必关心初始化顺序
func InitMetrics() {
	initOnce.Do(func() {
		HTTPRequestsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "HTTP请求总数",
			},
			[]string{"method", "path", "status"},
		)

		HTTPRequestDuration = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP请求耗时(秒)",
				Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 10},
			},
			[]string{"method", "path"},
		)

		HTTPRequestsInProgress = promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_progress",
				Help: "正在处理的HTTP请求数",
			},
		)

		BooksCreatedTotal = promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "books_created_total",
				Help: "新增图书总数",
			},
		)

		UsersRegisteredTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "users_registered_total",
				Help: "注册用户总数",
			},
			[]string{"role"},
		)

		OrdersPlacedTotal = promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "orders_placed_total",
				Help: "下单总数",
			},
		)

		LoginAttemptsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "login_attempts_total",
				Help: "登录尝试总数",
			},
			[]string{"result"},
		)

		// 整体读写一个JSON文档，通常在毫秒级；远程存储会慢一些
		StoreOperationDuration = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "store_operation_duration_seconds",
				Help:    "集合存储读写耗时(秒)",
				Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
			},
			[]string{"collection", "op"},
		)

		CircuitBreakerState = promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "circuit_breaker_state",
				Help: "熔断器状态(0=CLOSED, 1=HALF_OPEN, 2=OPEN)",
			},
			[]string{"name"},
		)

		MessagesPublishedTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "messages_published_total",
				Help: "事件发布总数",
			},
			[]string{"exchange", "routing_key"},
		)

		MessagesConsumedTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "messages_consumed_total",
				Help: "事件消费总数",
			},
			[]string{"queue", "result"},
		)
	})
}

// BookCreated 记录新增图书
func BookCreated() {
	InitMetrics()
	BooksCreatedTotal.Inc()
}

// UserRegistered 记录注册用户
func UserRegistered(role string) {
	InitMetrics()
	UsersRegisteredTotal.WithLabelValues(role).Inc()
}

// OrderPlaced 记录下单
func OrderPlaced() {
	InitMetrics()
	OrdersPlacedTotal.Inc()
}

// LoginAttempt 记录登录尝试
func LoginAttempt(result string) {
	InitMetrics()
	LoginAttemptsTotal.WithLabelValues(result).Inc()
}

// ObserveStoreOperation 记录一次集合读写耗时
func ObserveStoreOperation(collection, op string, seconds float64) {
	InitMetrics()
	StoreOperationDuration.WithLabelValues(collection, op).Observe(seconds)
}

// SetBreakerState 更新熔断器状态
func SetBreakerState(name string, state float64) {
	InitMetrics()
	CircuitBreakerState.WithLabelValues(name).Set(state)
}

// MessagePublished 记录事件发布
func MessagePublished(exchange, routingKey string) {
	InitMetrics()
	MessagesPublishedTotal.WithLabelValues(exchange, routingKey).Inc()
}

// MessageConsumed 记录事件消费
func MessageConsumed(queue, result string) {
	InitMetrics()
	MessagesConsumedTotal.WithLabelValues(queue, result).Inc()
}
