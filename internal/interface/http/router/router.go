// Package router 组装Gin引擎:全局中间件、基础设施接口和业务路由
package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/xiebiao/onlinebookstore/docs"
	"github.com/xiebiao/onlinebookstore/internal/domain/user"
	"github.com/xiebiao/onlinebookstore/internal/infrastructure/config"
	"github.com/xiebiao/onlinebookstore/internal/interface/http/handler"
	"github.com/xiebiao/onlinebookstore/internal/interface/http/middleware"
	"github.com/xiebiao/onlinebookstore/internal/interface/http/validation"
)

// Handlers 所有HTTP处理器
type Handlers struct {
	Auth     *handler.AuthHandler
	Book     *handler.BookHandler
	Category *handler.CategoryHandler
	Cart     *handler.CartHandler
	Order    *handler.OrderHandler
}

// New 创建Gin引擎
//
// 全局中间件顺序:Recovery → RequestLogger → Metrics → CORS
// /ping、/metrics、/swagger挂在根路径,业务接口挂在server.base_path下
func New(cfg *config.Config, h Handlers, auth *middleware.AuthMiddleware) (*gin.Engine, error) {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	if err := validation.Register(); err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(
		middleware.Recovery(),
		middleware.RequestLogger(),
		middleware.Metrics(),
		cors.New(corsConfig(cfg.CORS)),
	)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group(cfg.Server.BasePath)
	registerAuthRoutes(api, h.Auth, auth)
	registerBookRoutes(api, h.Book, auth)
	registerCategoryRoutes(api, h.Category, auth)
	registerCartRoutes(api, h.Cart, auth)
	registerOrderRoutes(api, h.Order, auth)

	return r, nil
}

func corsConfig(cfg config.CORSConfig) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.HeaderRequestID},
		ExposeHeaders: []string{"Content-Length", middleware.HeaderRequestID},
		MaxAge:        12 * time.Hour,
	}
	if len(cfg.AllowOrigins) == 0 {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = cfg.AllowOrigins
	}
	return c
}

func registerAuthRoutes(rg *gin.RouterGroup, h *handler.AuthHandler, auth *middleware.AuthMiddleware) {
	g := rg.Group("/auth")
	{
		g.POST("/registration", h.Register)
		g.POST("/login", h.Login)
		g.POST("/refresh", h.Refresh)
		g.POST("/logout", auth.RequireAuth(), h.Logout)
	}
}

func registerBookRoutes(rg *gin.RouterGroup, h *handler.BookHandler, auth *middleware.AuthMiddleware) {
	admin := []gin.HandlerFunc{auth.RequireAuth(), auth.RequireRole(string(user.RoleAdmin))}

	g := rg.Group("/books")
	{
		// 公开接口
		g.GET("", h.ListBooks)
		g.GET("/search", h.SearchBooks)
		g.GET("/:id", h.GetBook)

		g.POST("", append(admin, h.CreateBook)...)
		g.PUT("/:id", append(admin, h.UpdateBook)...)
		g.DELETE("/:id", append(admin, h.DeleteBook)...)
	}
}

func registerCategoryRoutes(rg *gin.RouterGroup, h *handler.CategoryHandler, auth *middleware.AuthMiddleware) {
	admin := []gin.HandlerFunc{auth.RequireAuth(), auth.RequireRole(string(user.RoleAdmin))}

	g := rg.Group("/categories")
	{
		g.GET("", h.ListCategories)
		g.GET("/:id", h.GetCategory)
		g.GET("/:id/books", h.ListBooks)

		g.POST("", append(admin, h.CreateCategory)...)
		g.PUT("/:id", append(admin, h.UpdateCategory)...)
		g.DELETE("/:id", append(admin, h.DeleteCategory)...)
	}
}

func registerCartRoutes(rg *gin.RouterGroup, h *handler.CartHandler, auth *middleware.AuthMiddleware) {
	g := rg.Group("/cart", auth.RequireAuth())
	{
		g.GET("", h.GetCart)
		g.POST("", h.AddItem)
		g.PUT("/items/:id", h.UpdateItem)
		g.DELETE("/items/:id", h.RemoveItem)
	}
}

func registerOrderRoutes(rg *gin.RouterGroup, h *handler.OrderHandler, auth *middleware.AuthMiddleware) {
	g := rg.Group("/orders", auth.RequireAuth())
	{
		g.GET("", h.ListOrders)
		g.POST("", h.PlaceOrder)
		g.PATCH("/:id", auth.RequireRole(string(user.RoleAdmin)), h.UpdateStatus)
		g.GET("/:id/items", h.ListItems)
		g.GET("/:id/items/:itemId", h.GetItem)
	}
}
