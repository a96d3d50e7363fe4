package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/airbooking-gateway/config"
	"github.com/Domenick1991/airbooking-gateway/internal/kafka"
	"github.com/Domenick1991/airbooking-gateway/internal/logger"
	"github.com/Domenick1991/airbooking-gateway/internal/notify"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
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

	if !cfg.Kafka.Enabled() {
		zl.Fatal("kafka.brokers is required for the notification worker")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.SagaEventsTopic, zl)
	defer consumer.Close()

	sender := notify.NewSender(zl)

	zl.Info("notification worker started",
		zap.String("topic", cfg.Kafka.SagaEventsTopic),
		zap.String("group_id", cfg.Kafka.GroupID),
	)
	if err := consumer.Consume(ctx, kafka.SagaEventHandler(zl, sender.Send)); err != nil {
		zl.Error("consumer stopped", zap.Error(err))
		return
	}
	zl.Info("notification worker stopped")
}
