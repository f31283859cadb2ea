package service

import (
	"context"
	"errors"

	"github.com/storefront-api/internal/constants"
	"github.com/storefront-api/internal/models"
	"github.com/storefront-api/internal/repository"

	"gorm.io/gorm"
)

// ReviewService 评价业务服务
type ReviewService struct {
	reviewRepo  repository.ReviewRepository
	userRepo    repository.UserRepository
	productRepo repository.ProductRepository
}

// NewReviewService 创建评价服务
func NewReviewService(reviewRepo repository.ReviewRepository, userRepo repository.UserRepository, productRepo repository.ProductRepository) *ReviewService {
	return &ReviewService{
		reviewRepo:  reviewRepo,
		userRepo:    userRepo,
		productRepo: productRepo,
	}
}

// CreateReviewInput 创建评价输入
type CreateReviewInput struct {
	UserID    uint
	ProductID uint
	Rating    int
	Comment   *string
}

// UpdateReviewInput 更新评价输入，nil 字段保持不变
type UpdateReviewInput struct {
	Rating  *int
	Comment *string
}

// ValidRating 评分是否在允许范围内
func ValidRating(rating int) bool {
	return rating >= constants.ReviewRatingMin && rating <= constants.ReviewRatingMax
}

// List 评价列表
func (s *ReviewService) List(ctx context.Context) ([]models.Review, error) {
	return s.reviewRepo.List(ctx)
}

// GetByID 获取评价
func (s *ReviewService) GetByID(ctx context.Context, rawID string) (*models.Review, error) {
	id, err := parseID(rawID)
	if err != nil {
		return nil, err
	}
	review, err := s.reviewRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if review == nil {
		return nil, ErrReviewNotFound
	}
	return review, nil
}

// Create 创建评价
func (s *ReviewService) Create(ctx context.Context, input CreateReviewInput) (*models.Review, error) {
	if !ValidRating(input.Rating) {
		return nil, ErrInvalidRating
	}
	if input.UserID == 0 || input.ProductID == 0 {
		return nil, ErrReviewReferenceInvalid
	}
	user, err := s.userRepo.GetByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	product, err := s.productRepo.GetByID(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}
	if user == nil || product == nil {
		return nil, ErrReviewReferenceInvalid
	}

	review := models.Review{
		UserID:    input.UserID,
		ProductID: input.ProductID,
		Rating:    input.Rating,
		Comment:   input.Comment,
	}
	if err := s.reviewRepo.Create(ctx, &review); err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return nil, ErrReviewReferenceInvalid
		}
		return nil, err
	}
	return &review, nil
}

// Update 部分更新评价
func (s *ReviewService) Update(ctx context.Context, rawID string, input UpdateReviewInput) (*models.Review, error) {
	id, err := parseID(rawID)
	if err != nil {
		return nil, err
	}
	if input.Rating != nil && !ValidRating(*input.Rating) {
		return nil, ErrInvalidRating
	}
	review, err := s.reviewRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if review == nil {
		return nil, ErrReviewNotFound
	}

	updates := map[string]interface{}{}
	if input.Rating != nil {
		updates["rating"] = *input.Rating
	}
	if input.Comment != nil {
		updates["comment"] = *input.Comment
	}
	if len(updates) == 0 {
		return review, nil
	}
	if err := s.reviewRepo.Updates(ctx, id, updates); err != nil {
		return nil, err
	}

	updated, err := s.reviewRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrReviewNotFound
	}
	return updated, nil
}

// Delete 删除评价
func (s *ReviewService) Delete(ctx context.Context, rawID string) error {
	id, err := parseID(rawID)
	if err != nil {
		return err
	}
	review, err := s.reviewRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if review == nil {
		return ErrReviewNotFound
	}
	return s.reviewRepo.Delete(ctx, id)
}
