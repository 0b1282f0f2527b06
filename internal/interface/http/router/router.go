// Package router 组装gin引擎：全局中间件、路由表、文档和指标端点
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/xiebiao/bookstore-lite/docs" // swagger文档注册
	"github.com/xiebiao/bookstore-lite/internal/infrastructure/config"
	"github.com/xiebiao/bookstore-lite/internal/interface/http/handler"
	"github.com/xiebiao/bookstore-lite/internal/interface/http/middleware"
	apperrors "github.com/xiebiao/bookstore-lite/pkg/errors"
	"github.com/xiebiao/bookstore-lite/pkg/response"
)

// Handlers 全部HTTP处理器
type Handlers struct {
	System *handler.SystemHandler
	Book   *handler.BookHandler
	Auth   *handler.AuthHandler
	User   *handler.UserHandler
	Order  *handler.OrderHandler
}

// New 创建并配置gin引擎
//
// 中间件执行顺序：Logger → Recovery → Tracing → Metrics → CORS → Authenticate → 路由 → Policy → Handler
// 1. Logger最外层，panic恢复后的500也会被记录
// 2. Authenticate只解析Token，是否放行由各路由上的Require(policy, ...)决定
func New(
	cfg *config.Config,
	logger *zap.Logger,
	h Handlers,
	auth *middleware.AuthMiddleware,
	policy middleware.Policy,
) *gin.Engine {
	r := gin.New()

	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recovery())
	if cfg.Tracing.Enabled {
		r.Use(middleware.Tracing())
	}
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics())
	}
	r.Use(middleware.CORS(cfg.CORS))
	r.Use(auth.Authenticate())

	// 未知路由
	r.NoRoute(func(c *gin.Context) {
		response.Error(c, apperrors.ErrRouteNotFound)
	})

	// 首页、健康检查
	r.GET("/", h.System.Root)
	r.GET("/health", h.System.Health)

	// Swagger文档
	// 访问 http://localhost:3001/api-docs 跳转到Swagger UI
	r.GET("/api-docs", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Prometheus指标
	if cfg.Metrics.Enabled {
		path := cfg.Metrics.Path
		if path == "" {
			path = "/metrics"
		}
		r.GET(path, gin.WrapH(promhttp.Handler()))
	}

	// 登录、注册限流
	limit := func(c *gin.Context) { c.Next() }
	if cfg.Auth.RateLimit.Enabled {
		limit = middleware.NewRateLimiter(cfg.Auth.RateLimit.RPS, cfg.Auth.RateLimit.Burst).Handler()
	}

	api := r.Group("/api")
	{
		// 图书模块（查询公开，增删改需要目录管理权限）
		books := api.Group("/books")
		{
			books.GET("", h.Book.ListBooks)
			books.GET("/:id", h.Book.GetBook)
			books.POST("", middleware.Require(policy, middleware.CapManageCatalog), h.Book.CreateBook)
			books.PUT("/:id", middleware.Require(policy, middleware.CapManageCatalog), h.Book.UpdateBook)
			books.DELETE("/:id", middleware.Require(policy, middleware.CapManageCatalog), h.Book.DeleteBook)
		}

		api.GET("/stocktake", middleware.Require(policy, middleware.CapViewStocktake), h.Book.Stocktake)

		// 认证模块
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", limit, h.Auth.Register)
			authGroup.POST("/login", limit, h.Auth.Login)
			authGroup.POST("/add-staff", middleware.Require(policy, middleware.CapAddStaff), h.Auth.AddStaff)
			authGroup.POST("/logout", h.Auth.Logout)
			authGroup.GET("/me", h.Auth.Me)
		}

		// 用户模块
		api.GET("/users", middleware.Require(policy, middleware.CapListUsers), h.User.ListUsers)

		account := api.Group("/users/:id")
		account.Use(middleware.Require(policy, middleware.CapAccessAccount))
		{
			account.GET("/profile", h.User.GetProfile)
			account.PUT("/profile", h.User.UpdateProfile)

			account.GET("/orders", h.Order.ListOrders)
			account.POST("/orders", h.Order.PlaceOrder)

			account.GET("/payment-methods", h.User.ListPaymentMethods)
			account.POST("/payment-methods", h.User.AddPaymentMethod)
			account.DELETE("/payment-methods/:pmId", h.User.DeletePaymentMethod)
		}
	}

	return r
}
