package cart

import (
	"math"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/xiebiao/bookstore-lite/internal/domain/book"
	"github.com/xiebiao/bookstore-lite/internal/domain/order"
)

var (
	dune = &book.Book{ID: 1, Title: "Dune", Author: "Frank Herbert", ISBN: "111", Price: 12.5}
	emma = &book.Book{ID: 2, Title: "Emma", Author: "Jane Austen", ISBN: "222", Price: 8}
)

func validShipping() order.ShippingAddress {
	return order.ShippingAddress{
		FirstName: "Bob", LastName: "Smith", Email: "bob@example.com", Phone: "555-0100",
		Address: "1 Main St", City: "Springfield", State: "IL", ZipCode: "62701", Country: "US",
	}
}

func TestCart(t *testing.T) {
	t.Run("重复加入累加数量", func(t *testing.T) {
		c := New()
		c.Add(dune, 1)
		c.Add(emma, 2)
		c.Add(dune, 2)

		items := c.Items()
		require.Len(t, items, 2)
		assert.Equal(t, 1, items[0].Book.ID)
		assert.Equal(t, 3, items[0].Quantity)
		assert.Equal(t, 5, c.TotalItems())
		assert.InDelta(t, 3*12.5+2*8, c.TotalPrice(), 1e-9)
	})

	t.Run("数量为零时移除", func(t *testing.T) {
		c := New()
		c.Add(dune, 1)
		c.Add(emma, 1)

		c.UpdateQuantity(2, 4)
		assert.Equal(t, 4, c.Items()[1].Quantity)

		c.UpdateQuantity(1, 0)
		require.Len(t, c.Items(), 1)
		assert.Equal(t, 2, c.Items()[0].Book.ID)

		c.Remove(2)
		assert.Empty(t, c.Items())
		assert.Zero(t, c.TotalPrice())
	})

	t.Run("加入后改价不影响购物车", func(t *testing.T) {
		b := &book.Book{ID: 9, Title: "Ulysses", Price: 20}
		c := New()
		c.Add(b, 1)
		b.Price = 99
		assert.InDelta(t, 20.0, c.TotalPrice(), 1e-9)
	})

	t.Run("清空", func(t *testing.T) {
		c := New()
		c.Add(dune, 1)
		c.Clear()
		assert.Zero(t, c.TotalItems())
	})
}

func validPayment() Payment {
	return Payment{CardNumber: "4242424242424242", ExpiryDate: "12/27", CVV: "123"}
}

func TestCheckout(t *testing.T) {
	now := time.Date(2024, 5, 20, 8, 0, 0, 0, time.UTC)

	t.Run("生成订单快照", func(t *testing.T) {
		c := New()
		c.Add(dune, 2)
		c.Add(emma, 1)

		p := validPayment()
		p.CardNumber = "4242 4242 4242 1234"
		receipt, err := c.Checkout(validShipping(), p, now)
		require.NoError(t, err)

		assert.Equal(t, "1234", receipt.CardLastFour)
		o := receipt.Order
		assert.Regexp(t, regexp.MustCompile(`^ORD\d+$`), o.OrderID)
		assert.Equal(t, "2024-05-20T08:00:00Z", o.OrderDate)
		assert.Equal(t, order.StatusPending, o.Status)
		assert.InDelta(t, 33.0, o.Total, 1e-9)
		require.Len(t, o.Items, 2)
		assert.Equal(t, order.Item{BookID: 1, Title: "Dune", Author: "Frank Herbert", Price: 12.5, Quantity: 2}, o.Items[0])
		assert.Equal(t, "Springfield", o.ShippingAddress.City)

		assert.Empty(t, c.Items(), "结账后清空购物车")
	})

	t.Run("空购物车", func(t *testing.T) {
		_, err := New().Checkout(validShipping(), validPayment(), now)
		assert.ErrorIs(t, err, ErrEmptyCart)
	})

	t.Run("收货信息逐项校验", func(t *testing.T) {
		cases := []struct {
			name   string
			modify func(s *order.ShippingAddress)
			want   error
		}{
			{"名", func(s *order.ShippingAddress) { s.FirstName = "" }, ErrFirstNameRequired},
			{"姓", func(s *order.ShippingAddress) { s.LastName = " " }, ErrLastNameRequired},
			{"邮箱为空", func(s *order.ShippingAddress) { s.Email = "" }, ErrEmailRequired},
			{"邮箱缺少@", func(s *order.ShippingAddress) { s.Email = "bob.example.com" }, ErrInvalidEmail},
			{"邮箱缺少域名后缀", func(s *order.ShippingAddress) { s.Email = "bob@example" }, ErrInvalidEmail},
			{"邮箱含空格", func(s *order.ShippingAddress) { s.Email = "bo b@example.com" }, ErrInvalidEmail},
			{"电话", func(s *order.ShippingAddress) { s.Phone = "" }, ErrPhoneRequired},
			{"地址", func(s *order.ShippingAddress) { s.Address = "" }, ErrAddressRequired},
			{"城市", func(s *order.ShippingAddress) { s.City = "" }, ErrCityRequired},
			{"州", func(s *order.ShippingAddress) { s.State = "" }, ErrStateRequired},
			{"邮编", func(s *order.ShippingAddress) { s.ZipCode = "  " }, ErrZipCodeRequired},
			{"国家", func(s *order.ShippingAddress) { s.Country = "" }, ErrCountryRequired},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				s := validShipping()
				tc.modify(&s)
				c := New()
				c.Add(dune, 1)
				_, err := c.Checkout(s, validPayment(), now)
				assert.ErrorIs(t, err, tc.want)
				assert.Len(t, c.Items(), 1, "校验失败保留购物车")
			})
		}
	})

	t.Run("按表单顺序返回第一个错误", func(t *testing.T) {
		s := validShipping()
		s.Email = "not-an-email"
		s.Phone, s.State = "", ""
		c := New()
		c.Add(dune, 1)
		_, err := c.Checkout(s, Payment{}, now)
		assert.ErrorIs(t, err, ErrInvalidEmail)

		s.Email = "bob@example.com"
		_, err = c.Checkout(s, Payment{}, now)
		assert.ErrorIs(t, err, ErrPhoneRequired)

		s.Phone = "555-0100"
		_, err = c.Checkout(s, Payment{}, now)
		assert.ErrorIs(t, err, ErrStateRequired)

		s.State = "IL"
		_, err = c.Checkout(s, Payment{}, now)
		assert.ErrorIs(t, err, ErrCardRequired, "收货信息通过后才校验支付信息")
	})

	t.Run("卡号校验", func(t *testing.T) {
		cases := map[string]error{
			"":                  ErrCardRequired,
			"   ":               ErrCardRequired,
			"4242":              ErrCardLength,
			"4242-4242-4242-42": ErrCardLength,
			"42424242424242ab":  ErrCardDigits,
		}
		for number, want := range cases {
			p := validPayment()
			p.CardNumber = number
			c := New()
			c.Add(dune, 1)
			_, err := c.Checkout(validShipping(), p, now)
			assert.ErrorIs(t, err, want, number)
			assert.Len(t, c.Items(), 1, "校验失败保留购物车")
		}
	})

	t.Run("有效期校验", func(t *testing.T) {
		cases := map[string]error{
			"":        ErrExpiryRequired,
			"1227":    ErrExpiryFormat,
			"1/27":    ErrExpiryFormat,
			"12/2027": ErrExpiryFormat,
			"ab/cd":   ErrExpiryFormat,
		}
		for expiry, want := range cases {
			p := validPayment()
			p.ExpiryDate = expiry
			c := New()
			c.Add(dune, 1)
			_, err := c.Checkout(validShipping(), p, now)
			assert.ErrorIs(t, err, want, expiry)
		}
	})

	t.Run("CVV校验", func(t *testing.T) {
		cases := map[string]error{
			"":     ErrCVVRequired,
			"12":   ErrCVVLength,
			"1234": ErrCVVLength,
			"12a":  ErrCVVLength,
		}
		for cvv, want := range cases {
			p := validPayment()
			p.CVV = cvv
			c := New()
			c.Add(dune, 1)
			_, err := c.Checkout(validShipping(), p, now)
			assert.ErrorIs(t, err, want, cvv)
		}
	})
}

func TestCart_Concurrent(t *testing.T) {
	c := New()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Add(dune, 1)
			_ = c.TotalPrice()
			_ = c.Items()
		}()
	}
	wg.Wait()

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 50, items[0].Quantity)
	assert.InDelta(t, 625.0, c.TotalPrice(), 1e-9)
}

func TestCart_TotalsProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		c := New()
		quantities := map[int]int{}
		prices := map[int]float64{}

		steps := rapid.IntRange(1, 40).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			id := rapid.IntRange(1, 5).Draw(t, "id")
			if _, ok := prices[id]; !ok {
				prices[id] = float64(rapid.IntRange(0, 10000).Draw(t, "cents")) / 100
			}
			switch rapid.IntRange(0, 2).Draw(t, "op") {
			case 0:
				qty := rapid.IntRange(1, 5).Draw(t, "qty")
				c.Add(&book.Book{ID: id, Price: prices[id]}, qty)
				quantities[id] += qty
			case 1:
				qty := rapid.IntRange(-1, 5).Draw(t, "qty")
				c.UpdateQuantity(id, qty)
				if _, ok := quantities[id]; ok {
					if qty <= 0 {
						delete(quantities, id)
					} else {
						quantities[id] = qty
					}
				}
			case 2:
				c.Remove(id)
				delete(quantities, id)
			}
		}

		var wantItems int
		var wantPrice float64
		for id, qty := range quantities {
			wantItems += qty
			wantPrice += prices[id] * float64(qty)
		}
		if got := c.TotalItems(); got != wantItems {
			t.Fatalf("TotalItems = %d, want %d", got, wantItems)
		}
		if got := c.TotalPrice(); math.Abs(got-wantPrice) > 1e-6 {
			t.Fatalf("TotalPrice = %f, want %f", got, wantPrice)
		}
		if got := len(c.Items()); got != len(quantities) {
			t.Fatalf("lines = %d, want %d", got, len(quantities))
		}
	})
}
