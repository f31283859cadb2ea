package service

import (
	"context"
	"errors"
	"strings"

	"github.com/storefront-api/internal/constants"
	"github.com/storefront-api/internal/logger"
	"github.com/storefront-api/internal/models"
	"github.com/storefront-api/internal/repository"

	"gorm.io/gorm"
)

// CategoryService 分类业务服务
type CategoryService struct {
	repo repository.CategoryRepository
}

// NewCategoryService 创建分类服务
func NewCategoryService(repo repository.CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

// CreateCategoryInput 创建分类输入
type CreateCategoryInput struct {
	Name        string
	Description *string
}

// UpdateCategoryInput 更新分类输入，nil 字段保持不变
type UpdateCategoryInput struct {
	Name        *string
	Description *string
}

// List 获取分类列表
func (s *CategoryService) List(ctx context.Context) ([]models.Category, error) {
	return s.repo.List(ctx)
}

// GetByID 获取分类
func (s *CategoryService) GetByID(ctx context.Context, rawID string) (*models.Category, error) {
	id, err := parseID(rawID)
	if err != nil {
		return nil, err
	}
	category, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}
	return category, nil
}

// GetWithProducts 获取分类及其商品
func (s *CategoryService) GetWithProducts(ctx context.Context, rawID string) (*models.Category, error) {
	id, err := parseID(rawID)
	if err != nil {
		return nil, err
	}
	category, err := s.repo.GetWithProducts(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}
	if category.Products == nil {
		category.Products = []models.Product{}
	}
	return category, nil
}

// Create 创建分类
func (s *CategoryService) Create(ctx context.Context, input CreateCategoryInput) (*models.Category, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrCategoryNameRequired
	}
	existing, err := s.repo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrCategoryNameExists
	}

	category := models.Category{
		Name:        name,
		Description: input.Description,
	}
	if err := s.repo.Create(ctx, &category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrCategoryNameExists
		}
		return nil, err
	}
	return &category, nil
}

// Update 更新分类
func (s *CategoryService) Update(ctx context.Context, rawID string, input UpdateCategoryInput) (*models.Category, error) {
	id, err := parseID(rawID)
	if err != nil {
		return nil, err
	}
	category, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrCategoryNameRequired
		}
		if name != category.Name {
			existing, err := s.repo.GetByName(ctx, name)
			if err != nil {
				return nil, err
			}
			if existing != nil && existing.ID != category.ID {
				return nil, ErrCategoryNameExists
			}
		}
		category.Name = name
	}
	if input.Description != nil {
		category.Description = input.Description
	}

	if err := s.repo.Update(ctx, category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrCategoryNameExists
		}
		return nil, err
	}
	return category, nil
}

// Delete 删除分类，其下商品迁移到兜底分类
func (s *CategoryService) Delete(ctx context.Context, rawID string) (*models.Category, error) {
	id, err := parseID(rawID)
	if err != nil {
		return nil, err
	}

	var deleted *models.Category
	err = s.repo.Transaction(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		category, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if category == nil {
			return ErrCategoryNotFound
		}
		if category.Name == constants.SentinelCategoryName {
			return ErrSentinelCategoryProtected
		}

		sentinel, err := resolveSentinelCategory(ctx, repo)
		if err != nil {
			return err
		}
		moved, err := repo.ReassignProducts(ctx, category.ID, sentinel.ID)
		if err != nil {
			return err
		}
		if err := repo.Delete(ctx, category.ID); err != nil {
			return err
		}
		if moved > 0 {
			logger.Infow("category_products_reassigned",
				"category_id", category.ID,
				"sentinel_category_id", sentinel.ID,
				"product_count", moved,
			)
		}
		deleted = category
		return nil
	})
	if err != nil {
		return nil, err
	}
	return deleted, nil
}

// resolveSentinelCategory 获取兜底分类，不存在时创建
func resolveSentinelCategory(ctx context.Context, repo repository.CategoryRepository) (*models.Category, error) {
	sentinel, err := repo.GetByName(ctx, constants.SentinelCategoryName)
	if err != nil {
		return nil, err
	}
	if sentinel != nil {
		return sentinel, nil
	}

	description := constants.SentinelCategoryDescription
	sentinel, created, err := repo.EnsureByName(ctx, &models.Category{
		Name:        constants.SentinelCategoryName,
		Description: &description,
	})
	if err != nil {
		return nil, err
	}
	if !created {
		return sentinel, nil
	}
	logger.Infow("sentinel_category_created", "category_id", sentinel.ID)
	return sentinel, nil
}
