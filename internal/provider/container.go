package provider

import (
	"github.com/storefront-api/internal/cache"
	"github.com/storefront-api/internal/config"
	"github.com/storefront-api/internal/repository"
	"github.com/storefront-api/internal/service"

	"gorm.io/gorm"
)

// Container 依赖注入容器
type Container struct {
	Config *config.Config
	DB     *gorm.DB
	Cache  *cache.Store

	// Repositories
	ProductRepo  repository.ProductRepository
	CategoryRepo repository.CategoryRepository
	UserRepo     repository.UserRepository
	ReviewRepo   repository.ReviewRepository
	CartRepo     repository.CartRepository

	// Services
	ProductService  *service.ProductService
	CategoryService *service.CategoryService
	UserService     *service.UserService
	ReviewService   *service.ReviewService
	CartService     *service.CartService
}

// NewContainer 初始化容器，db 与 cartRepo 由调用方按配置创建，store 可为 nil
func NewContainer(cfg *config.Config, db *gorm.DB, cartRepo repository.CartRepository, store *cache.Store) *Container {
	c := &Container{
		Config: cfg,
		DB:     db,
		Cache:  store,
	}
	c.initRepositories(db, cartRepo)
	c.initServices()
	return c
}

func (c *Container) initRepositories(db *gorm.DB, cartRepo repository.CartRepository) {
	c.ProductRepo = repository.NewProductRepository(db)
	c.CategoryRepo = repository.NewCategoryRepository(db)
	c.UserRepo = repository.NewUserRepository(db)
	c.ReviewRepo = repository.NewReviewRepository(db)
	c.CartRepo = cartRepo
}

func (c *Container) initServices() {
	var policy config.PasswordPolicyConfig
	if c.Config != nil {
		policy = c.Config.Security.PasswordPolicy
	}
	c.ProductService = service.NewProductService(c.ProductRepo, c.CategoryRepo)
	c.CategoryService = service.NewCategoryService(c.CategoryRepo)
	c.UserService = service.NewUserService(c.UserRepo, c.ReviewRepo, policy)
	c.ReviewService = service.NewReviewService(c.ReviewRepo, c.UserRepo, c.ProductRepo)
	c.CartService = service.NewCartService(c.CartRepo, c.ProductRepo)
}
