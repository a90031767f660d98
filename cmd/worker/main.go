package main

import (
	"context"
	"os/signal"
	"syscall"

	"useful-api/internal/bootstrap"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func init() { _ = godotenv.Load() }

func main() {
	cfg := bootstrap.ProvideConfig()
	log := bootstrap.ProvideLogger(cfg)
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	w, cleanup, err := bootstrap.InitWorker(ctx, cfg, log)
	if err != nil {
		log.Fatal("init worker", zap.Error(err))
	}
	defer cleanup()
	w.Start(ctx)
}
