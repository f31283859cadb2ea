package router

import (
	"fmt"
	"strings"

	"github.com/storefront-api/internal/config"
	"github.com/storefront-api/internal/http/handlers/api"
	"github.com/storefront-api/internal/http/response"
	"github.com/storefront-api/internal/logger"
	"github.com/storefront-api/internal/provider"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "sf"
	}
	var redisClient *redis.Client
	if c.Cache != nil {
		redisClient = c.Cache.Client()
	}
	writeRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:write", redisPrefix),
		WindowSeconds: cfg.Security.WriteRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.WriteRateLimit.MaxRequests,
	}
	return buildRouter(cfg, c, NewRateLimiter(redisClient, writeRule))
}

// buildRouter 注册中间件与路由，所有写接口共享按 IP 计数的限流器
func buildRouter(cfg *config.Config, c *provider.Container, writeLimiter *RateLimiter) *gin.Engine {
	log := logger.Z()
	r := gin.New()

	h := api.New(c)
	writeLimit := RateLimitMiddleware(writeLimiter, KeyByIP)

	// 中间件
	r.Use(RequestIDMiddleware())
	r.Use(RecoveryMiddleware(log))
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	apiGroup := r.Group("/api")
	{
		// 商品
		products := apiGroup.Group("/products")
		{
			products.GET("", h.ListProducts)
			products.GET("/:id", h.GetProduct)
			products.POST("", writeLimit, h.CreateProduct)
			products.PATCH("/:id", writeLimit, h.UpdateProduct)
			products.DELETE("/:id", writeLimit, h.DeleteProduct)
		}

		// 分类
		categories := apiGroup.Group("/categories")
		{
			categories.GET("", h.ListCategories)
			categories.GET("/:id", h.GetCategory)
			categories.GET("/:id/products", h.GetCategoryProducts)
			categories.POST("", writeLimit, h.CreateCategory)
			categories.PATCH("/:id", writeLimit, h.UpdateCategory)
			categories.DELETE("/:id", writeLimit, h.DeleteCategory)
		}

		// 用户
		users := apiGroup.Group("/users")
		{
			users.GET("", h.ListUsers)
			users.GET("/:id", h.GetUser)
			users.POST("", writeLimit, h.CreateUser)
			users.PATCH("/:id", writeLimit, h.UpdateUser)
			users.DELETE("/:id", writeLimit, h.DeleteUser)
		}

		// 评价
		reviews := apiGroup.Group("/reviews")
		{
			reviews.GET("", h.ListReviews)
			reviews.GET("/:id", h.GetReview)
			reviews.POST("", writeLimit, h.CreateReview)
			reviews.PATCH("/:id", writeLimit, h.UpdateReview)
			reviews.DELETE("/:id", writeLimit, h.DeleteReview)
		}

		// 购物车
		cart := apiGroup.Group("/cart")
		{
			cart.GET("/:userId", h.GetCart)
			cart.POST("", writeLimit, h.AddCartItem)
			cart.PUT("", writeLimit, h.UpdateCartItem)
			cart.DELETE("/:userId/items/:productId", writeLimit, h.RemoveCartItem)
			cart.DELETE("/:userId", writeLimit, h.ClearCart)
		}
	}

	// 健康检查
	r.GET("/healthz", h.Health)

	r.NoRoute(func(ctx *gin.Context) {
		response.NotFound(ctx, "Route not found")
	})

	return r
}
