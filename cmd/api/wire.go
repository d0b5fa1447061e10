//go:build wireinject
// +build wireinject

// Wire依赖注入配置,修改后运行 `wire gen ./cmd/api` 重新生成wire_gen.go
package main

import (
	"github.com/gin-gonic/gin"
	"github.com/google/wire"

	appbook "github.com/xiebiao/onlinebookstore/internal/application/book"
	appcart "github.com/xiebiao/onlinebookstore/internal/application/cart"
	appcategory "github.com/xiebiao/onlinebookstore/internal/application/category"
	apporder "github.com/xiebiao/onlinebookstore/internal/application/order"
	appuser "github.com/xiebiao/onlinebookstore/internal/application/user"
	"github.com/xiebiao/onlinebookstore/internal/infrastructure/config"
	"github.com/xiebiao/onlinebookstore/internal/infrastructure/persistence"
	"github.com/xiebiao/onlinebookstore/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/onlinebookstore/internal/interface/http/handler"
	"github.com/xiebiao/onlinebookstore/internal/interface/http/middleware"
	"github.com/xiebiao/onlinebookstore/internal/interface/http/router"
)

// infrastructureSet 数据库、Redis、消息队列
var infrastructureSet = wire.NewSet(
	provideRepositories,
	wire.FieldsOf(new(*persistence.Repositories), "Tx", "Books", "Categories", "Users", "Carts", "Orders"),
	provideRedisClient,
	redis.NewSessionStore,
	wire.Bind(new(appuser.SessionStore), new(*redis.SessionStore)),
	wire.Bind(new(middleware.TokenBlacklist), new(*redis.SessionStore)),
	provideBookCache,
	provideEventPublisher,
	provideJWTManager,
	providePasswordService,
)

// applicationSet 应用层用例
var applicationSet = wire.NewSet(
	provideRegisterUseCase,
	appuser.NewLoginUseCase,
	appuser.NewRefreshTokenUseCase,
	appuser.NewLogoutUseCase,

	appbook.NewCreateBookUseCase,
	appbook.NewGetBookUseCase,
	appbook.NewUpdateBookUseCase,
	appbook.NewDeleteBookUseCase,
	appbook.NewListBooksUseCase,
	appbook.NewSearchBooksUseCase,
	appbook.NewListBooksByCategoryUseCase,

	appcategory.NewCreateCategoryUseCase,
	appcategory.NewGetCategoryUseCase,
	appcategory.NewListCategoriesUseCase,
	appcategory.NewUpdateCategoryUseCase,
	appcategory.NewDeleteCategoryUseCase,

	appcart.NewGetCartUseCase,
	appcart.NewAddItemUseCase,
	appcart.NewUpdateItemUseCase,
	appcart.NewRemoveItemUseCase,

	apporder.NewPlaceOrderUseCase,
	apporder.NewListOrdersUseCase,
	apporder.NewUpdateOrderStatusUseCase,
	apporder.NewGetOrderItemsUseCase,
	apporder.NewGetOrderItemUseCase,
)

// interfaceSet HTTP处理器、中间件、路由
var interfaceSet = wire.NewSet(
	handler.NewAuthHandler,
	handler.NewBookHandler,
	handler.NewCategoryHandler,
	handler.NewCartHandler,
	handler.NewOrderHandler,
	wire.Struct(new(router.Handlers), "*"),
	middleware.NewAuthMiddleware,
	router.New,
)

// InitializeApp 组装整个应用,cleanup按创建的逆序释放资源
func InitializeApp(cfg *config.Config) (*gin.Engine, func(), error) {
	wire.Build(infrastructureSet, applicationSet, interfaceSet)
	return nil, nil, nil
}
