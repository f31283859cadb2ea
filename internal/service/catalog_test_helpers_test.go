package service

import (
	"fmt"
	"strings"
	"testing"

	"github.com/storefront-api/internal/config"
	"github.com/storefront-api/internal/models"
	"github.com/storefront-api/internal/repository"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type catalogServices struct {
	db         *gorm.DB
	products   *ProductService
	categories *CategoryService
	users      *UserService
	reviews    *ReviewService
}

func newCatalogServices(t *testing.T) catalogServices {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:svc_%s?mode=memory&cache=shared", name)
	db, err := models.OpenDB("sqlite", dsn, models.DBPoolConfig{MaxOpenConns: 1, MaxIdleConns: 1}, false)
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	t.Cleanup(func() {
		_ = models.CloseDB(db)
	})

	productRepo := repository.NewProductRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	userRepo := repository.NewUserRepository(db)
	reviewRepo := repository.NewReviewRepository(db)

	users := NewUserService(userRepo, reviewRepo, config.PasswordPolicyConfig{MinLength: 8})
	users.bcryptCost = bcrypt.MinCost
	return catalogServices{
		db:         db,
		products:   NewProductService(productRepo, categoryRepo),
		categories: NewCategoryService(categoryRepo),
		users:      users,
		reviews:    NewReviewService(reviewRepo, userRepo, productRepo),
	}
}

func strPtr(v string) *string { return &v }

func uintPtr(v uint) *uint { return &v }

func boolPtr(v bool) *bool { return &v }

func idString(id uint) string { return fmt.Sprintf("%d", id) }
