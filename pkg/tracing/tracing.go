// Package tracing 提供基于OpenTelemetry的追踪
//
// # 核心概念
//
//  1. **Trace**:一个完整的请求链路（一次HTTP请求从进入到返回）
//  2. **Span**:链路中的一个操作单元（如一次集合读写）
//  3. **SpanContext**:TraceID + SpanID，子Span自动继承父Span的TraceID
//
// # 本服务中的Span
//
//	Trace: PUT /api/books/:id
//	├─ Span: HTTP PUT /api/books/:id        (middleware.Tracing)
//	│  ├─ Span: store.Read books            (persistence.tracedStore)
//	│  └─ Span: store.Write books
//
// 未调用InitTracer时，otel全局Provider是no-op实现，StartSpan的开销可以忽略，
// 所以业务代码可以无条件创建Span
package tracing

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"
)

// InitTracer 初始化全局TracerProvider
//
// 参数：
//
//	serviceName: 服务名（在Jaeger UI中标识服务）
//	endpoint:    OTLP gRPC地址，如localhost:4317
//
// 返回的shutdown必须在程序退出前调用，否则最后一批Span可能丢失
func InitTracer(serviceName, endpoint string) (func(context.Context) error, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// 1. OTLP gRPC Exporter（连接是惰性建立的，collector不在线不影响启动）
	exporter, err := otlptracegrpc.New(
		ctx,
		otlptracegrpc.WithEndpoint(endpoint),
		otlptracegrpc.WithInsecure(),
	)
	if err != nil {
		return nil, fmt.Errorf("创建OTLP exporter失败: %w", err)
	}

	// 2. Resource:附加到所有Span上的服务属性
	res, err := resource.New(ctx, resource.WithAttributes(semconv.ServiceName(serviceName)))
	if err != nil {
		return nil, fmt.Errorf("创建资源属性失败: %w", err)
	}

	// 3. TracerProvider:100%采样 + 批量发送
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)

	// 4. 设置全局Provider和传播器（W3C Trace Context + Baggage）
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(
		propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{},
			propagation.Baggage{},
		),
	)

	shutdown := func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return tp.Shutdown(ctx)
	}
	return shutdown, nil
}

// StartSpan 创建Span
// ctx中有父Span时新Span自动成为子Span
func StartSpan(ctx context.Context, tracerName, spanName string) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, spanName)
}

// EndSpan 根据err设置Span状态并结束Span
//
// 用法：
//
//	ctx, span := tracing.StartSpan(ctx, "bookstore/store", "store.Read")
//	data, err := inner.Read(ctx, name)
//	tracing.EndSpan(span, err)
func EndSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// ExtractTraceID 从Context中提取TraceID（用于日志关联）
// 没有有效Span时返回空字符串
func ExtractTraceID(ctx context.Context) string {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return ""
	}
	return sc.TraceID().String()
}

// ExtractSpanID 从Context中提取SpanID
func ExtractSpanID(ctx context.Context) string {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return ""
	}
	return sc.SpanID().String()
}
