package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/storefront-api/internal/cache"
	"github.com/storefront-api/internal/constants"
	"github.com/storefront-api/internal/models"
)

// RedisCartRepository Redis 实现，每次写入刷新 key 的过期时间
type RedisCartRepository struct {
	store *cache.Store
	ttl   time.Duration
}

// NewRedisCartRepository 创建 Redis 购物车仓库
func NewRedisCartRepository(store *cache.Store, ttl time.Duration) *RedisCartRepository {
	if ttl <= 0 {
		ttl = constants.CartTTL
	}
	return &RedisCartRepository{store: store, ttl: ttl}
}

// GetByUser 读取用户购物车
func (r *RedisCartRepository) GetByUser(ctx context.Context, userID string) (*models.Cart, error) {
	if !r.store.Enabled() {
		return nil, fmt.Errorf("redis cart store is not configured")
	}
	var cart models.Cart
	found, err := r.store.GetJSON(ctx, cartKey(userID), &cart)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	if cart.Items == nil {
		cart.Items = []models.CartItem{}
	}
	return &cart, nil
}

// Save 写入购物车并续期
func (r *RedisCartRepository) Save(ctx context.Context, cart *models.Cart) error {
	if cart == nil {
		return nil
	}
	if !r.store.Enabled() {
		return fmt.Errorf("redis cart store is not configured")
	}
	if cart.Items == nil {
		cart.Items = []models.CartItem{}
	}
	return r.store.SetJSON(ctx, cartKey(cart.UserID), cart, r.ttl)
}

func cartKey(userID string) string {
	return "cart:" + userID
}
