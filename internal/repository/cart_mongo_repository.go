package repository

import (
	"context"
	"errors"

	"github.com/storefront-api/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoCartRepository MongoDB 实现，过期由集合的 TTL 索引负责
type MongoCartRepository struct {
	coll *mongo.Collection
}

// NewMongoCartRepository 创建 MongoDB 购物车仓库
func NewMongoCartRepository(coll *mongo.Collection) *MongoCartRepository {
	return &MongoCartRepository{coll: coll}
}

// GetByUser 读取用户购物车
func (r *MongoCartRepository) GetByUser(ctx context.Context, userID string) (*models.Cart, error) {
	var cart models.Cart
	err := r.coll.FindOne(ctx, bson.M{"userId": userID}).Decode(&cart)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	if cart.Items == nil {
		cart.Items = []models.CartItem{}
	}
	return &cart, nil
}

// Save 以 upsert 方式整体替换购物车文档
func (r *MongoCartRepository) Save(ctx context.Context, cart *models.Cart) error {
	if cart == nil {
		return nil
	}
	if cart.Items == nil {
		cart.Items = []models.CartItem{}
	}
	_, err := r.coll.ReplaceOne(ctx, bson.M{"userId": cart.UserID}, cart, options.Replace().SetUpsert(true))
	return err
}
