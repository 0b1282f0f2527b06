package tracing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// useRecorder 安装内存Span记录器，测试结束后恢复原Provider
func useRecorder(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		otel.SetTracerProvider(prev)
		_ = tp.Shutdown(context.Background())
	})
	return recorder
}

func TestInitTracer(t *testing.T) {
	prev := otel.GetTracerProvider()
	defer otel.SetTracerProvider(prev)

	// collector不在线也能初始化（连接惰性建立）
	shutdown, err := InitTracer("test-service", "localhost:4317")
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))
}

func TestStartSpan(t *testing.T) {
	useRecorder(t)

	ctx, root := StartSpan(context.Background(), "test", "RootOperation")
	_, child := StartSpan(ctx, "test", "ChildOperation")

	assert.Equal(t, root.SpanContext().TraceID(), child.SpanContext().TraceID(), "子Span继承TraceID")
	assert.NotEqual(t, root.SpanContext().SpanID(), child.SpanContext().SpanID())

	child.End()
	root.End()
}

func TestEndSpan(t *testing.T) {
	recorder := useRecorder(t)

	_, ok := StartSpan(context.Background(), "test", "store.Read")
	EndSpan(ok, nil)

	_, failed := StartSpan(context.Background(), "test", "store.Write")
	EndSpan(failed, errors.New("disk full"))

	spans := recorder.Ended()
	require.Len(t, spans, 2)
	assert.Equal(t, codes.Unset, spans[0].Status().Code)
	assert.Equal(t, codes.Error, spans[1].Status().Code)
	assert.Equal(t, "disk full", spans[1].Status().Description)
	assert.Len(t, spans[1].Events(), 1, "RecordError记录一个exception事件")
}

func TestExtractIDs(t *testing.T) {
	useRecorder(t)

	t.Run("有效Context", func(t *testing.T) {
		ctx, span := StartSpan(context.Background(), "test", "Extract")
		defer span.End()

		assert.Len(t, ExtractTraceID(ctx), 32)
		assert.Len(t, ExtractSpanID(ctx), 16)
	})

	t.Run("没有Span", func(t *testing.T) {
		assert.Empty(t, ExtractTraceID(context.Background()))
		assert.Empty(t, ExtractSpanID(context.Background()))
	})
}
