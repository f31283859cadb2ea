package service

import (
	"context"
	"errors"
	"strings"

	"github.com/storefront-api/internal/config"
	"github.com/storefront-api/internal/logger"
	"github.com/storefront-api/internal/models"
	"github.com/storefront-api/internal/repository"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserService 用户业务服务
type UserService struct {
	userRepo       repository.UserRepository
	reviewRepo     repository.ReviewRepository
	passwordPolicy config.PasswordPolicyConfig
	bcryptCost     int
}

// NewUserService 创建用户服务
func NewUserService(userRepo repository.UserRepository, reviewRepo repository.ReviewRepository, policy config.PasswordPolicyConfig) *UserService {
	return &UserService{
		userRepo:       userRepo,
		reviewRepo:     reviewRepo,
		passwordPolicy: policy,
		bcryptCost:     bcrypt.DefaultCost,
	}
}

// CreateUserInput 创建用户输入
type CreateUserInput struct {
	Username  string
	Email     string
	Password  string
	FirstName *string
	LastName  *string
}

// UpdateUserInput 更新用户输入，nil 字段保持不变
type UpdateUserInput struct {
	Username  *string
	Email     *string
	FirstName *string
	LastName  *string
	Password  *string
}

// List 用户列表
func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return s.userRepo.List(ctx)
}

// GetByID 获取用户及其评价
func (s *UserService) GetByID(ctx context.Context, rawID string) (*models.User, error) {
	id, err := parseID(rawID)
	if err != nil {
		return nil, err
	}
	user, err := s.userRepo.GetByIDWithReviews(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if user.Reviews == nil {
		user.Reviews = []models.Review{}
	}
	return user, nil
}

// Create 创建用户，密码以 bcrypt 哈希保存
func (s *UserService) Create(ctx context.Context, input CreateUserInput) (*models.User, error) {
	username := strings.TrimSpace(input.Username)
	email := strings.TrimSpace(input.Email)
	if username == "" || email == "" || input.Password == "" {
		return nil, ErrUserFieldsRequired
	}
	if err := validatePassword(s.passwordPolicy, input.Password); err != nil {
		return nil, err
	}
	hash, err := s.hashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
	}
	if err := s.userRepo.Create(ctx, &user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUserExists
		}
		return nil, err
	}
	return &user, nil
}

// Update 部分更新用户
func (s *UserService) Update(ctx context.Context, rawID string, input UpdateUserInput) (*models.User, error) {
	id, err := parseID(rawID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if input.Username != nil {
		username := strings.TrimSpace(*input.Username)
		if username == "" {
			return nil, ErrUserFieldsRequired
		}
		updates["username"] = username
	}
	if input.Email != nil {
		email := strings.TrimSpace(*input.Email)
		if email == "" {
			return nil, ErrUserFieldsRequired
		}
		updates["email"] = email
	}
	if input.FirstName != nil {
		updates["first_name"] = *input.FirstName
	}
	if input.LastName != nil {
		updates["last_name"] = *input.LastName
	}
	if input.Password != nil && *input.Password != "" {
		if err := validatePassword(s.passwordPolicy, *input.Password); err != nil {
			return nil, err
		}
		hash, err := s.hashPassword(*input.Password)
		if err != nil {
			return nil, err
		}
		updates["password_hash"] = hash
	}
	if len(updates) == 0 {
		return nil, ErrNoFieldsToUpdate
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if err := s.userRepo.Updates(ctx, id, updates); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUserExists
		}
		return nil, err
	}

	updated, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrUserNotFound
	}
	return updated, nil
}

// Delete 删除用户及其全部评价
func (s *UserService) Delete(ctx context.Context, rawID string) (*models.User, error) {
	id, err := parseID(rawID)
	if err != nil {
		return nil, err
	}

	var deleted *models.User
	err = s.userRepo.Transaction(ctx, func(tx *gorm.DB) error {
		userRepo := s.userRepo.WithTx(tx)
		user, err := userRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if user == nil {
			return ErrUserNotFound
		}
		removed, err := s.reviewRepo.WithTx(tx).DeleteByUser(ctx, id)
		if err != nil {
			return err
		}
		if err := userRepo.Delete(ctx, id); err != nil {
			return err
		}
		logger.Infow("user_deleted", "user_id", id, "review_count", removed)
		deleted = user
		return nil
	})
	if err != nil {
		return nil, err
	}
	return deleted, nil
}

// VerifyPassword 校验明文密码与哈希
func VerifyPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func (s *UserService) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
