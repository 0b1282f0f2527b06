package book

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xiebiao/bookstore-lite/internal/application/event"
	"github.com/xiebiao/bookstore-lite/internal/domain/book"
	apperrors "github.com/xiebiao/bookstore-lite/pkg/errors"
	"github.com/xiebiao/bookstore-lite/pkg/metrics"
	"github.com/xiebiao/bookstore-lite/pkg/mq"
)

type memoryRepo struct {
	books []*book.Book
}

func (r *memoryRepo) Load(ctx context.Context) ([]*book.Book, error) {
	out := make([]*book.Book, 0, len(r.books))
	for _, b := range r.books {
		out = append(out, b.Clone())
	}
	return out, nil
}

func (r *memoryRepo) Save(ctx context.Context, books []*book.Book) error {
	r.books = books
	return nil
}

type recordingPublisher struct {
	events []mq.Event
}

func (p *recordingPublisher) Publish(ctx context.Context, e mq.Event) error {
	p.events = append(p.events, e)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func TestCreateBookUseCase(t *testing.T) {
	ctx := context.Background()
	metrics.InitMetrics()

	svc := book.NewService(&memoryRepo{})
	pub := &recordingPublisher{}
	uc := NewCreateBookUseCase(svc, event.NewNotifier(pub, zap.NewNop()))

	t.Run("创建成功发布事件并计数", func(t *testing.T) {
		before := testutil.ToFloat64(metrics.BooksCreatedTotal)

		b, err := uc.Execute(ctx, book.Attributes{
			"title": "Dune", "author": "Frank Herbert", "isbn": "111", "price": 12.5, "stock": "4",
		})
		require.NoError(t, err)
		assert.Equal(t, 1, b.ID)
		assert.Equal(t, 4, b.Stock)

		assert.Equal(t, before+1, testutil.ToFloat64(metrics.BooksCreatedTotal))
		require.Len(t, pub.events, 1)
		assert.Equal(t, mq.EventBookCreated, pub.events[0].Type)

		var payload event.BookCreated
		require.NoError(t, json.Unmarshal(pub.events[0].Payload, &payload))
		assert.Equal(t, "111", payload.ISBN)
	})

	t.Run("校验失败不发布事件", func(t *testing.T) {
		pub.events = nil
		_, err := uc.Execute(ctx, book.Attributes{"title": "No ISBN"})
		assert.ErrorIs(t, err, book.ErrMissingFields)
		assert.Empty(t, pub.events)
	})
}

func TestBookUseCases(t *testing.T) {
	ctx := context.Background()
	repo := &memoryRepo{books: []*book.Book{
		{ID: 1, Title: "Dune", Author: "Frank Herbert", ISBN: "111", Price: 12.5, Category: "Science Fiction", Description: "Desert planet", Stock: 2},
		{ID: 2, Title: "Emma", Author: "Jane Austen", ISBN: "222", Price: 8, Category: "Classics", Stock: 40},
	}}
	svc := book.NewService(repo)

	t.Run("列表过滤", func(t *testing.T) {
		books, err := NewListBooksUseCase(svc).Execute(ctx, ListBooksRequest{Search: "DESERT"})
		require.NoError(t, err)
		require.Len(t, books, 1)
		assert.Equal(t, "Dune", books[0].Title)
	})

	t.Run("详情", func(t *testing.T) {
		b, err := NewGetBookUseCase(svc).Execute(ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, "Emma", b.Title)
	})

	t.Run("更新", func(t *testing.T) {
		b, err := NewUpdateBookUseCase(svc).Execute(ctx, 2, book.Attributes{"price": "9.99", "id": 99})
		require.NoError(t, err)
		assert.Equal(t, 2, b.ID)
		assert.InDelta(t, 9.99, b.Price, 1e-9)
	})

	t.Run("盘点", func(t *testing.T) {
		report, err := NewStocktakeUseCase(svc).Execute(ctx, StocktakeRequest{LowStockOnly: true})
		require.NoError(t, err)
		assert.Equal(t, 2, report.TotalBooks)
		assert.Equal(t, book.DefaultLowStockThreshold, report.Threshold)
		require.Len(t, report.Items, 1)
		assert.Equal(t, "Dune", report.Items[0].Book.Title)
	})

	t.Run("删除后查询不到", func(t *testing.T) {
		require.NoError(t, NewDeleteBookUseCase(svc).Execute(ctx, 1))
		_, err := NewGetBookUseCase(svc).Execute(ctx, 1)
		assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeBookNotFound))
	})
}
