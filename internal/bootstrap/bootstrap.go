package bootstrap

import (
	"context"
	"fmt"

	"useful-api/internal/application"
	"useful-api/internal/config"
	httpserver "useful-api/internal/infrastructure/http"
	"useful-api/internal/infrastructure/worker"

	"go.uber.org/zap"
)

// InitAPI builds the HTTP server and everything behind it. The returned
// cleanup releases the history backend.
func InitAPI(ctx context.Context, cfg config.Config, log *zap.Logger) (*httpserver.Server, func(), error) {
	feed, _, err := ProvidePriceFeed(cfg)
	if err != nil {
		return nil, func() {}, err
	}
	hist, cleanup, err := ProvideHistory(ctx, log, cfg)
	if err != nil {
		return nil, func() {}, fmt.Errorf("init history: %w", err)
	}
	svc := ProvideService(ProvidePriceCache(feed, log), ProvideStock(cfg), hist)
	srv := httpserver.NewServer(svc)
	if hist.Ping != nil {
		srv.SetReadyCheck(hist.Ping)
	}
	return srv, cleanup, nil
}

// InitWorker builds the price recorder. It refuses to start without a
// persistent history backend since there would be nowhere to record to.
func InitWorker(ctx context.Context, cfg config.Config, log *zap.Logger) (application.Worker, func(), error) {
	if cfg.HistoryBackend == "" || cfg.HistoryBackend == "none" {
		return nil, func() {}, ErrHistoryNotEnabled
	}
	feed, source, err := ProvidePriceFeed(cfg)
	if err != nil {
		return nil, func() {}, err
	}
	hist, cleanup, err := ProvideHistory(ctx, log, cfg)
	if err != nil {
		return nil, func() {}, fmt.Errorf("init history: %w", err)
	}
	return &worker.Recorder{
		Feed:      feed,
		History:   hist.Repo,
		Source:    source,
		PollEvery: cfg.WorkerPoll,
		Timeout:   cfg.RequestTimeout,
		Log:       log,
	}, cleanup, nil
}
