package persistence

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/xiebiao/bookstore-lite/pkg/circuitbreaker"
	apperrors "github.com/xiebiao/bookstore-lite/pkg/errors"
	"github.com/xiebiao/bookstore-lite/pkg/metrics"
	"github.com/xiebiao/bookstore-lite/pkg/tracing"
)

const tracerName = "bookstore/store"

// 操作名（指标标签、Span名）
const (
	opRead  = "read"
	opWrite = "write"
)

// ==================== 熔断 ====================

// BreakerSettings 存储熔断参数
type BreakerSettings struct {
	MaxRequests         uint32
	Interval            time.Duration
	Timeout             time.Duration
	ConsecutiveFailures uint32
}

// breakerStore 熔断装饰器
// 远程后端（Redis、数据库）连续失败后快速失败，不再占用请求线程等待超时
type breakerStore struct {
	inner CollectionStore
	cb    *circuitbreaker.CircuitBreaker
}

// WithBreaker 为远程存储加上熔断保护
//
// 学习要点：
// 1. ErrCollectionNotFound是正常业务结果，不计入失败次数（IsSuccessful）
// 2. 状态变化同步到Prometheus的circuit_breaker_state指标
// 3. 熔断打开时返回ErrUnavailable，经领域层包装后对外是500
func WithBreaker(inner CollectionStore, name string, s BreakerSettings, logger *zap.Logger) CollectionStore {
	failures := s.ConsecutiveFailures
	if failures == 0 {
		failures = 5
	}

	cb := circuitbreaker.NewCircuitBreaker(name, circuitbreaker.Config{
		MaxRequests: s.MaxRequests,
		Interval:    s.Interval,
		Timeout:     s.Timeout,
		ReadyToTrip: func(counts circuitbreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrCollectionNotFound)
		},
		OnStateChange: func(name string, from, to circuitbreaker.State) {
			logger.Warn("存储熔断器状态变化",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
			metrics.SetBreakerState(name, float64(to))
		},
	})
	metrics.SetBreakerState(name, float64(circuitbreaker.StateClosed))

	return &breakerStore{inner: inner, cb: cb}
}

func (s *breakerStore) Read(ctx context.Context, name string) ([]byte, error) {
	var data []byte
	err := s.cb.Execute(func() error {
		var err error
		data, err = s.inner.Read(ctx, name)
		return err
	})
	return data, s.mapErr(err)
}

func (s *breakerStore) Write(ctx context.Context, name string, data []byte) error {
	return s.mapErr(s.cb.Execute(func() error {
		return s.inner.Write(ctx, name, data)
	}))
}

func (s *breakerStore) Close() error {
	return s.inner.Close()
}

func (s *breakerStore) mapErr(err error) error {
	if errors.Is(err, circuitbreaker.ErrOpenState) {
		return apperrors.ErrUnavailable.WithCause(err)
	}
	return err
}

// ==================== 追踪 + 指标 ====================

// tracedStore 每次读写创建一个Span，并记录耗时直方图
type tracedStore struct {
	inner CollectionStore
}

// WithTracing 为存储加上追踪和耗时指标
// 未初始化TracerProvider时Span是no-op，可以无条件包装
func WithTracing(inner CollectionStore) CollectionStore {
	return &tracedStore{inner: inner}
}

func (s *tracedStore) Read(ctx context.Context, name string) ([]byte, error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "store.Read "+name)
	start := time.Now()

	data, err := s.inner.Read(ctx, name)

	metrics.ObserveStoreOperation(name, opRead, time.Since(start).Seconds())
	if errors.Is(err, ErrCollectionNotFound) {
		tracing.EndSpan(span, nil)
	} else {
		tracing.EndSpan(span, err)
	}
	return data, err
}

func (s *tracedStore) Write(ctx context.Context, name string, data []byte) error {
	ctx, span := tracing.StartSpan(ctx, tracerName, "store.Write "+name)
	start := time.Now()

	err := s.inner.Write(ctx, name, data)

	metrics.ObserveStoreOperation(name, opWrite, time.Since(start).Seconds())
	tracing.EndSpan(span, err)
	return err
}

func (s *tracedStore) Close() error {
	return s.inner.Close()
}
