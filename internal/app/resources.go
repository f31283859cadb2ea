package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/storefront-api/internal/cache"
	"github.com/storefront-api/internal/config"
	"github.com/storefront-api/internal/constants"
	"github.com/storefront-api/internal/docstore"
	"github.com/storefront-api/internal/logger"
	"github.com/storefront-api/internal/models"
	"github.com/storefront-api/internal/repository"

	"gorm.io/gorm"
)

// Resources 外部存储连接
type Resources struct {
	DB       *gorm.DB
	Mongo    *docstore.Mongo
	Cache    *cache.Store
	CartRepo repository.CartRepository
}

// OpenResources 按配置连接关系库与购物车存储
func OpenResources(ctx context.Context, cfg *config.Config) (*Resources, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	db, err := models.OpenDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}, cfg.Server.Mode != "release")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	res := &Resources{DB: db}
	if err := models.AutoMigrate(db); err != nil {
		res.Close(ctx)
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	res.Cache = cache.NewStore(&cfg.Redis)
	if res.Cache.Enabled() {
		if err := res.Cache.Ping(ctx); err != nil {
			res.Close(ctx)
			return nil, fmt.Errorf("ping redis: %w", err)
		}
	}

	switch cfg.Cart.Driver {
	case constants.CartDriverRedis:
		if !res.Cache.Enabled() {
			res.Close(ctx)
			return nil, errors.New("cart driver redis requires redis.enabled")
		}
		res.CartRepo = repository.NewRedisCartRepository(res.Cache, cfg.Cart.TTL())
	case constants.CartDriverMongo, "":
		mongoStore, err := docstore.Connect(ctx, cfg.Mongo)
		if err != nil {
			res.Close(ctx)
			return nil, fmt.Errorf("connect mongo: %w", err)
		}
		res.Mongo = mongoStore
		if err := docstore.EnsureCartIndexes(ctx, mongoStore.Carts(), cfg.Cart.TTL()); err != nil {
			res.Close(ctx)
			return nil, fmt.Errorf("ensure cart indexes: %w", err)
		}
		res.CartRepo = repository.NewMongoCartRepository(mongoStore.Carts())
	default:
		res.Close(ctx)
		return nil, fmt.Errorf("unsupported cart driver: %s", cfg.Cart.Driver)
	}

	logger.Infow("resources_ready",
		"database_driver", cfg.Database.Driver,
		"cart_driver", cfg.Cart.Driver,
		"redis_enabled", res.Cache.Enabled(),
	)
	return res, nil
}

// Close 关闭全部连接，错误仅记录日志
func (r *Resources) Close(ctx context.Context) {
	if r == nil {
		return
	}
	if r.Mongo != nil {
		if err := r.Mongo.Close(ctx); err != nil {
			logger.Warnw("mongo_close_failed", "error", err)
		}
	}
	if err := r.Cache.Close(); err != nil {
		logger.Warnw("redis_close_failed", "error", err)
	}
	if r.DB != nil {
		if err := models.CloseDB(r.DB); err != nil {
			logger.Warnw("database_close_failed", "error", err)
		}
	}
}
