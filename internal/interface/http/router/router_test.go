package router

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	appbook "github.com/xiebiao/bookstore-lite/internal/application/book"
	"github.com/xiebiao/bookstore-lite/internal/application/event"
	apporder "github.com/xiebiao/bookstore-lite/internal/application/order"
	appuser "github.com/xiebiao/bookstore-lite/internal/application/user"
	"github.com/xiebiao/bookstore-lite/internal/domain/book"
	"github.com/xiebiao/bookstore-lite/internal/domain/user"
	"github.com/xiebiao/bookstore-lite/internal/infrastructure/config"
	"github.com/xiebiao/bookstore-lite/internal/infrastructure/persistence"
	"github.com/xiebiao/bookstore-lite/internal/infrastructure/persistence/jsonfile"
	"github.com/xiebiao/bookstore-lite/internal/interface/http/handler"
	"github.com/xiebiao/bookstore-lite/internal/interface/http/middleware"
	"github.com/xiebiao/bookstore-lite/pkg/jwt"
	"github.com/xiebiao/bookstore-lite/pkg/mq"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// testServer 基于临时目录JSON文件的完整服务
type testServer struct {
	engine *gin.Engine
	store  *jsonfile.Store
}

func newTestServer(t *testing.T, mutate func(cfg *config.Config)) *testServer {
	t.Helper()

	cfg := &config.Config{
		CORS: config.CORSConfig{
			Enabled:      true,
			AllowOrigins: []string{"*"},
			AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders: []string{"Content-Type", "Authorization"},
			MaxAge:       600,
		},
		Metrics: config.MetricsConfig{Enabled: true, Path: "/metrics"},
	}
	if mutate != nil {
		mutate(cfg)
	}

	store, err := jsonfile.NewStore(t.TempDir())
	require.NoError(t, err)

	logger := zap.NewNop()
	bookService := book.NewService(persistence.NewBookRepository(store, "books", logger))
	userService := user.NewService(persistence.NewUserRepository(store, "users", logger))
	jwtManager := jwt.NewManager("test-secret", time.Hour)
	blacklist := jwt.NewMemoryBlacklist()
	notifier := event.NewNotifier(mq.NopPublisher{}, logger)

	handlers := Handlers{
		System: handler.NewSystemHandler(),
		Book: handler.NewBookHandler(
			appbook.NewListBooksUseCase(bookService),
			appbook.NewGetBookUseCase(bookService),
			appbook.NewCreateBookUseCase(bookService, notifier),
			appbook.NewUpdateBookUseCase(bookService),
			appbook.NewDeleteBookUseCase(bookService),
			appbook.NewStocktakeUseCase(bookService),
		),
		Auth: handler.NewAuthHandler(
			appuser.NewRegisterUseCase(userService, notifier),
			appuser.NewLoginUseCase(userService, jwtManager),
			appuser.NewLogoutUseCase(jwtManager, blacklist),
			appuser.NewCurrentUserUseCase(userService, jwtManager, blacklist),
		),
		User: handler.NewUserHandler(
			appuser.NewListUsersUseCase(userService),
			appuser.NewGetProfileUseCase(userService),
			appuser.NewUpdateProfileUseCase(userService),
			appuser.NewPaymentMethodsUseCase(userService),
		),
		Order: handler.NewOrderHandler(
			apporder.NewPlaceOrderUseCase(userService, notifier),
			apporder.NewListOrdersUseCase(userService),
		),
	}

	engine := New(cfg, logger, handlers,
		middleware.NewAuthMiddleware(jwtManager, blacklist),
		middleware.NewPolicy(cfg.Auth.EnforceRoles),
	)
	return &testServer{engine: engine, store: store}
}

func (s *testServer) do(method, path, body, token string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

// registerAndLogin 注册并登录，返回用户ID和Token
func (s *testServer) registerAndLogin(t *testing.T, username string) (string, string) {
	t.Helper()
	w := s.do(http.MethodPost, "/api/auth/register",
		`{"username":"`+username+`","password":"secret1","email":"`+username+`@example.com","firstName":"Bob","lastName":"Smith"}`, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = s.do(http.MethodPost, "/api/auth/login", `{"username":"`+username+`","password":"secret1"}`, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := w.Body.String()
	return gjson.Get(body, "user.id").String(), gjson.Get(body, "token").String()
}

func TestSystemRoutes(t *testing.T) {
	s := newTestServer(t, nil)

	t.Run("首页", func(t *testing.T) {
		w := s.do(http.MethodGet, "/", "", "")
		assert.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		assert.Equal(t, "Welcome to the Bookstore API", gjson.Get(body, "message").String())
		assert.Equal(t, "1.0.0", gjson.Get(body, "version").String())
		assert.Equal(t, "/api/books", gjson.Get(body, "endpoints.books").String())
		assert.Equal(t, "/api-docs", gjson.Get(body, "endpoints.documentation").String())
		assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
	})

	t.Run("健康检查", func(t *testing.T) {
		w := s.do(http.MethodGet, "/health", "", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "OK", gjson.Get(w.Body.String(), "status").String())
		_, err := time.Parse(user.TimestampLayout, gjson.Get(w.Body.String(), "timestamp").String())
		assert.NoError(t, err)
	})

	t.Run("未知路由", func(t *testing.T) {
		w := s.do(http.MethodGet, "/api/nothing", "", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Endpoint not found", gjson.Get(w.Body.String(), "error").String())
	})

	t.Run("文档跳转", func(t *testing.T) {
		w := s.do(http.MethodGet, "/api-docs", "", "")
		assert.Equal(t, http.StatusMovedPermanently, w.Code)
		assert.Equal(t, "/swagger/index.html", w.Header().Get("Location"))
	})

	t.Run("指标", func(t *testing.T) {
		w := s.do(http.MethodGet, "/metrics", "", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "http_requests_total")
	})

	t.Run("CORS预检", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/books", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		w := httptest.NewRecorder()
		s.engine.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "600", w.Header().Get("Access-Control-Max-Age"))
	})

	t.Run("panic返回500", func(t *testing.T) {
		s.engine.GET("/boom", func(c *gin.Context) { panic("boom") })
		w := s.do(http.MethodGet, "/boom", "", "")
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "Something went wrong!", gjson.Get(w.Body.String(), "error").String())
	})
}

func TestBookRoutes(t *testing.T) {
	s := newTestServer(t, nil)

	t.Run("空目录返回空数组", func(t *testing.T) {
		w := s.do(http.MethodGet, "/api/books", "", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[]`, w.Body.String())
	})

	t.Run("新增后按关键字查到", func(t *testing.T) {
		w := s.do(http.MethodPost, "/api/books",
			`{"title":"Dune","author":"Frank Herbert","isbn":"111","price":12.5,"stock":"3","publicationYear":"1965"}`, "")
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		body := w.Body.String()
		assert.Equal(t, int64(1), gjson.Get(body, "id").Int())
		assert.Equal(t, gjson.Number, gjson.Get(body, "stock").Type)
		assert.Equal(t, int64(1965), gjson.Get(body, "publicationYear").Int())
		assert.Equal(t, book.DefaultCategory, gjson.Get(body, "category").String())

		w = s.do(http.MethodGet, "/api/books?search=dune", "", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, int64(1), gjson.Get(w.Body.String(), "#").Int())
		assert.Equal(t, "Dune", gjson.Get(w.Body.String(), "0.title").String())
	})

	t.Run("缺少必填字段", func(t *testing.T) {
		w := s.do(http.MethodPost, "/api/books", `{"title":"No ISBN"}`, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Missing required fields: title, author, isbn, price", gjson.Get(w.Body.String(), "error").String())
	})

	t.Run("ISBN重复", func(t *testing.T) {
		w := s.do(http.MethodPost, "/api/books", `{"title":"Copy","author":"X","isbn":"111","price":1}`, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "A book with this ISBN already exists", gjson.Get(w.Body.String(), "error").String())
	})

	t.Run("请求体格式错误", func(t *testing.T) {
		w := s.do(http.MethodPost, "/api/books", `{"title":`, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Invalid request body", gjson.Get(w.Body.String(), "error").String())
	})

	t.Run("字符串价格转为数字且忽略id", func(t *testing.T) {
		w := s.do(http.MethodPut, "/api/books/1", `{"price":"9.99","id":42}`, "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		price := gjson.Get(w.Body.String(), "price")
		assert.Equal(t, gjson.Number, price.Type)
		assert.InDelta(t, 9.99, price.Float(), 1e-9)
		assert.Equal(t, int64(1), gjson.Get(w.Body.String(), "id").Int())
	})

	t.Run("盘点", func(t *testing.T) {
		w := s.do(http.MethodGet, "/api/stocktake?lowStockOnly=true", "", "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		body := w.Body.String()
		assert.Equal(t, int64(10), gjson.Get(body, "threshold").Int())
		assert.Equal(t, int64(1), gjson.Get(body, "summary.totalBooks").Int())
		assert.Equal(t, "low-stock", gjson.Get(body, "items.0.stockStatus").String())
	})

	t.Run("非数字ID按不存在处理", func(t *testing.T) {
		w := s.do(http.MethodGet, "/api/books/abc", "", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Book not found", gjson.Get(w.Body.String(), "error").String())
	})

	t.Run("删除后查询404", func(t *testing.T) {
		w := s.do(http.MethodDelete, "/api/books/1", "", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Book deleted successfully", gjson.Get(w.Body.String(), "message").String())

		w = s.do(http.MethodGet, "/api/books/1", "", "")
		assert.Equal(t, http.StatusNotFound, w.Code)

		w = s.do(http.MethodDelete, "/api/books/1", "", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestAuthRoutes(t *testing.T) {
	s := newTestServer(t, nil)

	t.Run("注册成功且不返回密码", func(t *testing.T) {
		w := s.do(http.MethodPost, "/api/auth/register",
			`{"username":"bob","password":"secret1","email":"bob@example.com","firstName":"Bob","lastName":"Smith"}`, "")
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		body := w.Body.String()
		assert.True(t, gjson.Get(body, "success").Bool())
		assert.Equal(t, "Registration successful! Welcome to Bookstore!", gjson.Get(body, "message").String())
		assert.Equal(t, "customer", gjson.Get(body, "user.role").String())
		assert.False(t, gjson.Get(body, "user.password").Exists())
		assert.True(t, gjson.Get(body, "user.profile.orderHistory").IsArray())
	})

	t.Run("用户名重复", func(t *testing.T) {
		w := s.do(http.MethodPost, "/api/auth/register",
			`{"username":"bob","password":"secret1","email":"other@example.com","firstName":"B","lastName":"S"}`, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Username already exists", gjson.Get(w.Body.String(), "error").String())
	})

	t.Run("邮箱重复", func(t *testing.T) {
		w := s.do(http.MethodPost, "/api/auth/register",
			`{"username":"bobby","password":"secret1","email":"bob@example.com","firstName":"B","lastName":"S"}`, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Email already exists", gjson.Get(w.Body.String(), "error").String())
	})

	t.Run("空请求体", func(t *testing.T) {
		w := s.do(http.MethodPost, "/api/auth/register", "", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "All fields are required", gjson.Get(w.Body.String(), "error").String())
	})

	var token string
	t.Run("登录成功", func(t *testing.T) {
		w := s.do(http.MethodPost, "/api/auth/login", `{"username":"bob","password":"secret1"}`, "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		body := w.Body.String()
		assert.Equal(t, "Welcome, Bob Smith!", gjson.Get(body, "message").String())
		assert.False(t, gjson.Get(body, "user.password").Exists())
		token = gjson.Get(body, "token").String()
		assert.NotEmpty(t, token)
		assert.True(t, gjson.Get(body, "expiresAt").Exists())
	})

	t.Run("密码错误", func(t *testing.T) {
		w := s.do(http.MethodPost, "/api/auth/login", `{"username":"bob","password":"wrong"}`, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Invalid username or password", gjson.Get(w.Body.String(), "error").String())
	})

	t.Run("当前用户", func(t *testing.T) {
		w := s.do(http.MethodGet, "/api/auth/me", "", token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, "bob", gjson.Get(w.Body.String(), "username").String())

		w = s.do(http.MethodGet, "/api/auth/me", "", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Use login endpoint to authenticate", gjson.Get(w.Body.String(), "message").String())

		w = s.do(http.MethodGet, "/api/auth/me", "", "not-a-token")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("添加店员", func(t *testing.T) {
		w := s.do(http.MethodPost, "/api/auth/add-staff",
			`{"username":"sally","password":"secret1","email":"sally@example.com","firstName":"Sally","lastName":"Jones"}`, "")
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		assert.Equal(t, `Staff member "Sally Jones" has been added successfully!`, gjson.Get(w.Body.String(), "message").String())
		assert.Equal(t, "staff", gjson.Get(w.Body.String(), "user.role").String())
	})

	t.Run("登出后Token失效", func(t *testing.T) {
		w := s.do(http.MethodPost, "/api/auth/logout", "", token)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Logged out successfully", gjson.Get(w.Body.String(), "message").String())

		w = s.do(http.MethodGet, "/api/auth/me", "", token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Token has been revoked", gjson.Get(w.Body.String(), "error").String())

		w = s.do(http.MethodPost, "/api/auth/logout", "", "")
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("用户列表", func(t *testing.T) {
		w := s.do(http.MethodGet, "/api/users", "", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, int64(2), gjson.Get(w.Body.String(), "#").Int())
		assert.False(t, gjson.Get(w.Body.String(), "0.password").Exists())
	})
}

func TestAccountRoutes(t *testing.T) {
	s := newTestServer(t, nil)
	userID, _ := s.registerAndLogin(t, "bob")

	t.Run("资料", func(t *testing.T) {
		w := s.do(http.MethodGet, "/api/users/"+userID+"/profile", "", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "bob@example.com", gjson.Get(w.Body.String(), "profile.email").String())

		w = s.do(http.MethodGet, "/api/users/nobody/profile", "", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "User not found", gjson.Get(w.Body.String(), "error").String())
	})

	t.Run("更新资料合并地址", func(t *testing.T) {
		w := s.do(http.MethodPut, "/api/users/"+userID+"/profile",
			`{"phone":"555-0100","address":{"city":"Springfield"}}`, "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		body := w.Body.String()
		assert.Equal(t, "Profile updated successfully", gjson.Get(body, "message").String())
		assert.Equal(t, "555-0100", gjson.Get(body, "user.profile.phone").String())
		assert.Equal(t, "Springfield", gjson.Get(body, "user.profile.address.city").String())
		assert.Equal(t, "Bob", gjson.Get(body, "user.profile.firstName").String())
	})

	t.Run("两次下单按顺序保存", func(t *testing.T) {
		for _, id := range []string{"ORD-A", "ORD-B"} {
			w := s.do(http.MethodPost, "/api/users/"+userID+"/orders",
				`{"orderId":"`+id+`","total":25,"items":[{"bookId":1,"title":"Dune","author":"Frank Herbert","price":12.5,"quantity":2}]}`, "")
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())
			assert.Equal(t, "Order added successfully", gjson.Get(w.Body.String(), "message").String())
			assert.Equal(t, "pending", gjson.Get(w.Body.String(), "order.status").String())
		}

		w := s.do(http.MethodGet, "/api/users/"+userID+"/orders", "", "")
		require.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		assert.Equal(t, userID, gjson.Get(body, "userId").String())
		assert.Equal(t, "Bob Smith", gjson.Get(body, "userName").String())
		assert.Equal(t, []string{"ORD-A", "ORD-B"}, []string{
			gjson.Get(body, "orders.0.orderId").String(),
			gjson.Get(body, "orders.1.orderId").String(),
		})
		assert.Equal(t, int64(2), gjson.Get(body, "orders.#").Int())
	})

	t.Run("订单状态非法", func(t *testing.T) {
		w := s.do(http.MethodPost, "/api/users/"+userID+"/orders", `{"total":1,"items":[],"status":"lost"}`, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)

		w = s.do(http.MethodPost, "/api/users/user_missing/orders", `{"total":1,"items":[],"status":"lost"}`, "")
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "User not found", gjson.Get(w.Body.String(), "error").String())
	})

	t.Run("支付方式只有一个默认", func(t *testing.T) {
		w := s.do(http.MethodGet, "/api/users/"+userID+"/payment-methods", "", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[]`, gjson.Get(w.Body.String(), "paymentMethods").Raw)

		w = s.do(http.MethodDelete, "/api/users/"+userID+"/payment-methods/pm_1", "", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Payment method not found", gjson.Get(w.Body.String(), "error").String())

		var firstID string
		for i, last := range []string{"4242", "1881"} {
			w := s.do(http.MethodPost, "/api/users/"+userID+"/payment-methods",
				`{"type":"credit","lastFour":"`+last+`","brand":"Visa","expiryMonth":"12","expiryYear":"2030","isDefault":true}`, "")
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())
			assert.Equal(t, "Payment method saved successfully", gjson.Get(w.Body.String(), "message").String())
			if i == 0 {
				firstID = gjson.Get(w.Body.String(), "paymentMethod.id").String()
			}
		}

		w = s.do(http.MethodGet, "/api/users/"+userID+"/payment-methods", "", "")
		require.Equal(t, http.StatusOK, w.Code)
		defaults := gjson.Get(w.Body.String(), "paymentMethods.#(isDefault==true)#")
		assert.Len(t, defaults.Array(), 1)
		assert.Equal(t, "1881", defaults.Array()[0].Get("lastFour").String())

		w = s.do(http.MethodDelete, "/api/users/"+userID+"/payment-methods/"+firstID, "", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Payment method deleted successfully", gjson.Get(w.Body.String(), "message").String())

		w = s.do(http.MethodDelete, "/api/users/"+userID+"/payment-methods/"+firstID, "", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Payment method not found", gjson.Get(w.Body.String(), "error").String())
	})
}

func TestCorruptUsersDocument(t *testing.T) {
	s := newTestServer(t, nil)
	require.NoError(t, os.WriteFile(s.store.Path("users"), []byte("{corrupt"), 0o644))

	w := s.do(http.MethodGet, "/api/users", "", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotEmpty(t, gjson.Get(w.Body.String(), "error").String())

	// 读取失败不能被当作"没有用户"继续注册（否则会覆盖原有数据）
	w = s.do(http.MethodPost, "/api/auth/register",
		`{"username":"bob","password":"secret1","email":"bob@example.com","firstName":"Bob","lastName":"Smith"}`, "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	data, err := os.ReadFile(filepath.Clean(s.store.Path("users")))
	require.NoError(t, err)
	assert.Equal(t, "{corrupt", string(data))
}

func TestRolePolicy(t *testing.T) {
	s := newTestServer(t, func(cfg *config.Config) {
		cfg.Auth.EnforceRoles = true
	})

	// 预置管理员
	require.NoError(t, os.WriteFile(s.store.Path("users"), []byte(`{"users":[{
		"id":"user_admin","username":"admin","password":"admin123","email":"admin@example.com",
		"fullName":"Site Admin","role":"admin"}]}`), 0o644))

	w := s.do(http.MethodPost, "/api/auth/login", `{"username":"admin","password":"admin123"}`, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	adminToken := gjson.Get(w.Body.String(), "token").String()

	customerID, customerToken := s.registerAndLogin(t, "bob")
	newBook := `{"title":"Dune","author":"Frank Herbert","isbn":"111","price":12.5}`

	t.Run("匿名请求401", func(t *testing.T) {
		w := s.do(http.MethodPost, "/api/books", newBook, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Authentication required", gjson.Get(w.Body.String(), "error").String())
	})

	t.Run("无效Token返回具体原因", func(t *testing.T) {
		w := s.do(http.MethodGet, "/api/stocktake", "", "garbage")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Invalid token", gjson.Get(w.Body.String(), "error").String())
	})

	t.Run("顾客不能管理目录", func(t *testing.T) {
		w := s.do(http.MethodPost, "/api/books", newBook, customerToken)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "Insufficient permissions", gjson.Get(w.Body.String(), "error").String())

		w = s.do(http.MethodGet, "/api/users", "", customerToken)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("管理员可以管理目录", func(t *testing.T) {
		w := s.do(http.MethodPost, "/api/books", newBook, adminToken)
		assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		w = s.do(http.MethodGet, "/api/stocktake", "", adminToken)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("查询图书不需要登录", func(t *testing.T) {
		w := s.do(http.MethodGet, "/api/books", "", "")
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("账户只能本人或店员访问", func(t *testing.T) {
		w := s.do(http.MethodGet, "/api/users/"+customerID+"/profile", "", customerToken)
		assert.Equal(t, http.StatusOK, w.Code)

		w = s.do(http.MethodGet, "/api/users/user_admin/profile", "", customerToken)
		assert.Equal(t, http.StatusForbidden, w.Code)

		w = s.do(http.MethodGet, "/api/users/"+customerID+"/orders", "", adminToken)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("只有管理员能添加店员", func(t *testing.T) {
		staff := `{"username":"sally","password":"secret1","email":"sally@example.com","firstName":"Sally","lastName":"Jones"}`
		w := s.do(http.MethodPost, "/api/auth/add-staff", staff, customerToken)
		assert.Equal(t, http.StatusForbidden, w.Code)

		w = s.do(http.MethodPost, "/api/auth/add-staff", staff, adminToken)
		assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	})
}

func TestLoginRateLimit(t *testing.T) {
	s := newTestServer(t, func(cfg *config.Config) {
		cfg.Auth.RateLimit = config.RateLimitConfig{Enabled: true, RPS: 0.001, Burst: 2}
	})

	for i := 0; i < 2; i++ {
		w := s.do(http.MethodPost, "/api/auth/login", `{"username":"ghost","password":"secret1"}`, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	}

	w := s.do(http.MethodPost, "/api/auth/login", `{"username":"ghost","password":"secret1"}`, "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	// 其他接口不受影响
	w = s.do(http.MethodGet, "/api/books", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
}
