package docstore

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/storefront-api/internal/config"
	"github.com/storefront-api/internal/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	defaultDatabase       = "storefront"
	defaultCartCollection = "carts"
	defaultConnectTimeout = 10 * time.Second
)

// Mongo 文档库连接
type Mongo struct {
	client   *mongo.Client
	database *mongo.Database
	carts    string
}

// Connect 连接 MongoDB 并校验可用性
func Connect(ctx context.Context, cfg config.MongoConfig) (*Mongo, error) {
	uri := strings.TrimSpace(cfg.URI)
	if uri == "" {
		return nil, fmt.Errorf("mongo uri is empty")
	}
	timeout := defaultConnectTimeout
	if cfg.ConnectTimeoutSeconds > 0 {
		timeout = time.Duration(cfg.ConnectTimeoutSeconds) * time.Second
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	opts := options.Client().ApplyURI(uri).SetConnectTimeout(timeout)
	client, err := mongo.Connect(connectCtx, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect failed: %w", err)
	}
	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping failed: %w", err)
	}

	dbName := strings.TrimSpace(cfg.Database)
	if dbName == "" {
		dbName = defaultDatabase
	}
	carts := strings.TrimSpace(cfg.Collection)
	if carts == "" {
		carts = defaultCartCollection
	}
	logger.Infow("mongo_connected", "database", dbName, "cart_collection", carts)
	return &Mongo{
		client:   client,
		database: client.Database(dbName),
		carts:    carts,
	}, nil
}

// Carts 购物车集合
func (m *Mongo) Carts() *mongo.Collection {
	return m.database.Collection(m.carts)
}

// Close 断开连接
func (m *Mongo) Close(ctx context.Context) error {
	if m == nil || m.client == nil {
		return nil
	}
	return m.client.Disconnect(ctx)
}

// EnsureCartIndexes 创建 userId 唯一索引与 updatedAt TTL 索引
func EnsureCartIndexes(ctx context.Context, coll *mongo.Collection, ttl time.Duration) error {
	if coll == nil {
		return fmt.Errorf("cart collection is nil")
	}
	_, err := coll.Indexes().CreateMany(ctx, CartIndexModels(ttl))
	if err != nil {
		return fmt.Errorf("create cart indexes failed: %w", err)
	}
	return nil
}

// CartIndexModels 购物车集合索引定义
func CartIndexModels(ttl time.Duration) []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}},
			Options: options.Index().SetName("uniq_user_id").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "updatedAt", Value: 1}},
			Options: options.Index().SetName("ttl_updated_at").SetExpireAfterSeconds(int32(ttl / time.Second)),
		},
	}
}
