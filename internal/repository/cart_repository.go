package repository

import (
	"context"

	"github.com/storefront-api/internal/models"
)

// CartRepository 购物车文档存储接口
type CartRepository interface {
	// GetByUser 读取用户购物车，不存在时返回 nil, nil
	GetByUser(ctx context.Context, userID string) (*models.Cart, error)
	// Save 按 userId 整体写入购物车
	Save(ctx context.Context, cart *models.Cart) error
}
