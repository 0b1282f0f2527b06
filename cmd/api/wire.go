//go:build wireinject
// +build wireinject

// Wire依赖注入配置文件
//
// Wire工作流程：
// Step 1: 编写wire.go（本文件），定义Providers和Injector
// Step 2: 运行 `wire gen ./cmd/api`
// Step 3: Wire生成wire_gen.go，包含完整的依赖创建代码
// Step 4: main.go调用wire_gen.go中的InitializeApp()

package main

import (
	"context"

	"github.com/google/wire"
	"go.uber.org/zap"

	appbook "github.com/xiebiao/bookstore-lite/internal/application/book"
	"github.com/xiebiao/bookstore-lite/internal/application/event"
	apporder "github.com/xiebiao/bookstore-lite/internal/application/order"
	appuser "github.com/xiebiao/bookstore-lite/internal/application/user"
	"github.com/xiebiao/bookstore-lite/internal/domain/book"
	"github.com/xiebiao/bookstore-lite/internal/infrastructure/config"
	"github.com/xiebiao/bookstore-lite/internal/interface/http/handler"
	"github.com/xiebiao/bookstore-lite/internal/interface/http/middleware"
	"github.com/xiebiao/bookstore-lite/internal/interface/http/router"
	"github.com/xiebiao/bookstore-lite/pkg/mq"
)

// infrastructureSet 基础设施层依赖：存储后端、仓储、Token
var infrastructureSet = wire.NewSet(
	provideBackend,
	provideBlacklist,
	provideBookRepository,
	provideUserRepository,
	provideJWTManager,
	event.NewNotifier,
)

// domainSet 领域层依赖
var domainSet = wire.NewSet(
	book.NewService,
	provideUserService,
)

// applicationSet 应用层依赖
var applicationSet = wire.NewSet(
	appbook.NewListBooksUseCase,
	appbook.NewGetBookUseCase,
	appbook.NewCreateBookUseCase,
	appbook.NewUpdateBookUseCase,
	appbook.NewDeleteBookUseCase,
	appbook.NewStocktakeUseCase,
	appuser.NewRegisterUseCase,
	appuser.NewLoginUseCase,
	appuser.NewLogoutUseCase,
	appuser.NewCurrentUserUseCase,
	appuser.NewListUsersUseCase,
	appuser.NewGetProfileUseCase,
	appuser.NewUpdateProfileUseCase,
	appuser.NewPaymentMethodsUseCase,
	apporder.NewPlaceOrderUseCase,
	apporder.NewListOrdersUseCase,
)

// interfaceSet 接口层依赖：中间件、处理器、路由
var interfaceSet = wire.NewSet(
	providePolicy,
	middleware.NewAuthMiddleware,
	handler.NewSystemHandler,
	handler.NewBookHandler,
	handler.NewAuthHandler,
	handler.NewUserHandler,
	handler.NewOrderHandler,
	wire.Struct(new(router.Handlers), "*"),
	router.New,
)

// InitializeApp 初始化整个应用
// cfg、logger、publisher由main创建后传入（它们在应用之外还有别的用途）
func InitializeApp(ctx context.Context, cfg *config.Config, logger *zap.Logger, publisher mq.Publisher) (*App, func(), error) {
	wire.Build(
		infrastructureSet,
		domainSet,
		applicationSet,
		interfaceSet,
		wire.Struct(new(App), "*"),
	)
	return nil, nil, nil
}
