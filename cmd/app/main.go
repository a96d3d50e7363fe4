package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/airbooking-gateway/config"
	"github.com/Domenick1991/airbooking-gateway/internal/bootstrap"
	"github.com/Domenick1991/airbooking-gateway/internal/logger"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// .env is optional
	_ = godotenv.Load()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	zl, err := logger.New(cfg.Logger.Env, cfg.Logger.Level)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	services, cleanup := bootstrap.NewServices(ctx, cfg, zl)
	defer cleanup()

	if err := bootstrap.Run(ctx, cfg, zl, services); err != nil {
		zl.Fatal("server error", zap.Error(err))
	}
}
