package app

import (
	"os"
	"time"

	"github.com/storefront-api/internal/config"
	"github.com/storefront-api/internal/logger"

	"go.uber.org/zap"
)

// defaultShutdownTimeout 优雅关闭的最长等待时间
const defaultShutdownTimeout = 10 * time.Second

// Options 应用启动选项
type Options struct {
	Config          *config.Config
	Logger          *zap.SugaredLogger
	Signals         []os.Signal
	ShutdownTimeout time.Duration
}

// normalizeOptions 补齐默认参数
func normalizeOptions(opts Options) Options {
	if opts.Logger == nil {
		opts.Logger = logger.S()
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = defaultShutdownTimeout
	}
	return opts
}
