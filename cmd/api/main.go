package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"useful-api/internal/bootstrap"
	infraconfig "useful-api/internal/infrastructure/config"
	httpserver "useful-api/internal/infrastructure/http"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func init() { _ = godotenv.Load() }

func main() {
	cfg := bootstrap.ProvideConfig()
	logger := bootstrap.ProvideLogger(cfg)
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv, cleanup, err := bootstrap.InitAPI(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("init api", zap.Error(err))
	}
	defer cleanup()

	addr := ":" + cfg.Port
	server := &http.Server{
		Addr:    addr,
		Handler: httpserver.NewRouter(srv),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("server started",
			zap.String("addr", addr),
			zap.String("provider", cfg.Provider),
			zap.String("history", cfg.HistoryBackend),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), infraconfig.DefaultShutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("server exited", zap.Error(err))
	}
	logger.Info("server stopped")
}
