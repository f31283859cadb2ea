package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/storefront-api/internal/config"
	"github.com/storefront-api/internal/logger"
	"github.com/storefront-api/internal/models"
)

func main() {
	var configFile string
	flag.StringVar(&configFile, "config", "", "配置文件路径，默认查找 ./config.yml")
	flag.Parse()

	cfg, err := config.LoadFrom(configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "配置加载失败: %v\n", err)
		os.Exit(1)
	}
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	defer logger.Sync()
	stdLog := logger.StdLogger()

	db, err := models.OpenDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns: cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns: cfg.Database.Pool.MaxIdleConns,
	}, false)
	if err != nil {
		stdLog.Fatalf("数据库初始化失败: %v", err)
	}
	defer func() { _ = models.CloseDB(db) }()

	if err := models.AutoMigrate(db); err != nil {
		stdLog.Fatalf("数据库迁移失败: %v", err)
	}

	created, err := models.SeedCatalog(db, models.DefaultSeedProducts)
	if err != nil {
		stdLog.Fatalf("初始化商品数据失败: %v", err)
	}
	fmt.Printf("seed finished, %d product(s) created\n", created)
}
