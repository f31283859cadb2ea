package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/storefront-api/internal/constants"
	"github.com/storefront-api/internal/models"
	"github.com/storefront-api/internal/repository"

	"gorm.io/gorm"
)

// productSortColumns 可排序字段到数据库列的映射
var productSortColumns = map[string]string{
	constants.ProductSortName:       "name",
	constants.ProductSortPrice:      "price",
	constants.ProductSortCreatedAt:  "created_at",
	constants.ProductSortStockCount: "stock_count",
}

// ProductService 商品业务服务
type ProductService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

// NewProductService 创建商品服务
func NewProductService(productRepo repository.ProductRepository, categoryRepo repository.CategoryRepository) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
	}
}

// CreateProductInput 创建商品输入
type CreateProductInput struct {
	Name        string
	CategoryID  *uint
	Description *string
	Price       models.Money
	StockCount  *int
	Brand       *string
	ImageURL    *string
	IsAvailable *bool
}

// UpdateProductInput 更新商品输入，nil 字段保持不变
type UpdateProductInput struct {
	Name        *string
	CategoryID  *uint
	Description *string
	Price       *models.Money
	StockCount  *int
	Brand       *string
	ImageURL    *string
	IsAvailable *bool
}

// ListProductsInput 商品列表查询条件
type ListProductsInput struct {
	SortBy      string
	SortOrder   string
	IsAvailable *bool
	CategoryID  uint
	Page        int
	PageSize    int
}

// List 商品列表
func (s *ProductService) List(ctx context.Context, input ListProductsInput) ([]models.Product, error) {
	filter := repository.ProductListFilter{
		IsAvailable: input.IsAvailable,
		CategoryID:  input.CategoryID,
	}
	if sortBy := strings.TrimSpace(input.SortBy); sortBy != "" {
		column, ok := productSortColumns[sortBy]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrInvalidSortField, sortBy)
		}
		filter.OrderBy = column
		filter.OrderDesc = strings.EqualFold(strings.TrimSpace(input.SortOrder), constants.SortOrderDesc)
	}
	if input.Page < 0 || input.PageSize < 0 {
		return nil, ErrInvalidPagination
	}
	if input.PageSize > 0 {
		filter.Page = input.Page
		filter.PageSize = input.PageSize
	}

	products, err := s.productRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []models.Product{}
	}
	return products, nil
}

// GetByID 获取商品
func (s *ProductService) GetByID(ctx context.Context, rawID string) (*models.Product, error) {
	id, err := parseID(rawID)
	if err != nil {
		return nil, err
	}
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// Create 创建商品，未指定分类时归入兜底分类
func (s *ProductService) Create(ctx context.Context, input CreateProductInput) (*models.Product, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrProductNameRequired
	}
	if input.Price.IsNegative() {
		return nil, ErrInvalidPrice
	}
	stockCount := 0
	if input.StockCount != nil {
		stockCount = *input.StockCount
	}
	if stockCount < 0 {
		return nil, ErrInvalidStockCount
	}
	isAvailable := true
	if input.IsAvailable != nil {
		isAvailable = *input.IsAvailable
	}

	product := models.Product{
		Name:        name,
		Description: input.Description,
		Price:       models.NewMoneyFromDecimal(input.Price.Decimal),
		StockCount:  stockCount,
		Brand:       input.Brand,
		ImageURL:    input.ImageURL,
		IsAvailable: isAvailable,
	}

	err := s.productRepo.Transaction(ctx, func(tx *gorm.DB) error {
		categoryRepo := s.categoryRepo.WithTx(tx)
		if input.CategoryID != nil && *input.CategoryID != 0 {
			category, err := categoryRepo.GetByID(ctx, *input.CategoryID)
			if err != nil {
				return err
			}
			if category == nil {
				return ErrUnknownCategory
			}
			product.CategoryID = category.ID
		} else {
			sentinel, err := resolveSentinelCategory(ctx, categoryRepo)
			if err != nil {
				return err
			}
			product.CategoryID = sentinel.ID
		}
		return s.productRepo.WithTx(tx).Create(ctx, &product)
	})
	if err != nil {
		return nil, err
	}
	return s.reload(ctx, product.ID)
}

// Update 部分更新商品
func (s *ProductService) Update(ctx context.Context, rawID string, input UpdateProductInput) (*models.Product, error) {
	id, err := parseID(rawID)
	if err != nil {
		return nil, err
	}
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	updates := map[string]interface{}{}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrProductNameRequired
		}
		updates["name"] = name
	}
	if input.CategoryID != nil {
		category, err := s.categoryRepo.GetByID(ctx, *input.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, ErrUnknownCategory
		}
		updates["category_id"] = category.ID
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.Price != nil {
		if input.Price.IsNegative() {
			return nil, ErrInvalidPrice
		}
		updates["price"] = models.NewMoneyFromDecimal(input.Price.Decimal)
	}
	if input.StockCount != nil {
		if *input.StockCount < 0 {
			return nil, ErrInvalidStockCount
		}
		updates["stock_count"] = *input.StockCount
	}
	if input.Brand != nil {
		updates["brand"] = *input.Brand
	}
	if input.ImageURL != nil {
		updates["image_url"] = *input.ImageURL
	}
	if input.IsAvailable != nil {
		updates["is_available"] = *input.IsAvailable
	}
	if len(updates) == 0 {
		return product, nil
	}

	if err := s.productRepo.Updates(ctx, id, updates); err != nil {
		return nil, err
	}
	return s.reload(ctx, id)
}

// Delete 删除商品并返回被删除的记录
func (s *ProductService) Delete(ctx context.Context, rawID string) (*models.Product, error) {
	id, err := parseID(rawID)
	if err != nil {
		return nil, err
	}
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	if err := s.productRepo.Delete(ctx, id); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *ProductService) reload(ctx context.Context, id uint) (*models.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}
