package app

import (
	"context"
	"errors"

	"github.com/storefront-api/internal/config"
	"github.com/storefront-api/internal/provider"
	"github.com/storefront-api/internal/router"
)

// BuildRunner 构建服务运行器
func BuildRunner(cfg *config.Config, res *Resources) (*Runner, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	if res == nil || res.DB == nil || res.CartRepo == nil {
		return nil, errors.New("resources not initialized")
	}

	container := provider.NewContainer(cfg, res.DB, res.CartRepo, res.Cache)
	engine := router.SetupRouter(cfg, container)
	httpService := NewHTTPService(cfg.Server.Addr(), engine)

	return NewRunner(httpService), nil
}

// Run 应用启动入口
func Run(opts Options) error {
	opts = normalizeOptions(opts)
	if opts.Config == nil {
		return errors.New("config is nil")
	}

	ctx := context.Background()
	res, err := OpenResources(ctx, opts.Config)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), opts.ShutdownTimeout)
		defer cancel()
		res.Close(closeCtx)
	}()

	runner, err := BuildRunner(opts.Config, res)
	if err != nil {
		return err
	}

	opts.Logger.Infow("app_start", "addr", opts.Config.Server.Addr())
	return RunWithOptions(runner, opts)
}
