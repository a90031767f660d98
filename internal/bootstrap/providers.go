package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"useful-api/internal/application"
	"useful-api/internal/config"
	"useful-api/internal/infrastructure/httpx"
	"useful-api/internal/infrastructure/logx"
	"useful-api/internal/infrastructure/pg"
	"useful-api/internal/infrastructure/provider"
	redisstore "useful-api/internal/infrastructure/redis"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var (
	ErrMissingDBURL      = errors.New("DATABASE_URL is required for HISTORY_BACKEND=pg")
	ErrUnknownProvider   = errors.New("unknown PROVIDER")
	ErrUnknownHistory    = errors.New("unknown HISTORY_BACKEND")
	ErrHistoryNotEnabled = errors.New("worker needs HISTORY_BACKEND=pg or redis")
)

// History bundles the configured history repo with its readiness probe.
// Ping is nil when there is nothing to probe.
type History struct {
	Repo application.HistoryRepo
	Ping func(ctx context.Context) error
}

// ProvideConfig reads the configuration; call it after .env has been loaded.
func ProvideConfig() config.Config { return config.Load() }

// ProvideLogger re-levels the package logger from cfg and returns it. If cfg
// cannot be applied the logger built at startup is kept.
func ProvideLogger(cfg config.Config) *zap.Logger {
	if err := logx.Configure(cfg); err != nil {
		logx.L().Warn("logger_config_ignored", zap.Error(err))
	}
	return logx.L()
}

// ProvidePriceFeed returns the upstream price feed and the source name that
// recorded snapshots are tagged with.
func ProvidePriceFeed(cfg config.Config) (application.PriceFeed, string, error) {
	switch cfg.Provider {
	case "coingecko":
		return &provider.CoinGecko{
			URL: cfg.CoinGeckoURL,
			Client: &httpx.Client{
				HTTP:      &http.Client{Timeout: cfg.RequestTimeout},
				UserAgent: config.UserAgent(),
				Retry:     httpx.NoRetry,
			},
		}, "coingecko", nil
	case "fake":
		return provider.NewFake(cfg.FakePrice), "fake", nil
	default:
		return nil, "", fmt.Errorf("%w: %q", ErrUnknownProvider, cfg.Provider)
	}
}

func ProvideStock(cfg config.Config) application.StockProvider {
	if cfg.Provider == "fake" {
		return &provider.FakeStock{}
	}
	h := http.Header{}
	h.Set("X-Client-ID", cfg.IkeaClientID)
	return &provider.Ikea{
		BaseURL: cfg.IkeaURL,
		Store:   cfg.IkeaStore,
		Client: &httpx.Client{
			HTTP:      &http.Client{Timeout: cfg.RequestTimeout},
			UserAgent: config.UserAgent(),
			Header:    h,
			Retry:     httpx.Exponential,
		},
	}
}

func ProvideDB(ctx context.Context, log *zap.Logger, cfg config.Config) (*pg.DB, func(), error) {
	if cfg.DatabaseURL == "" {
		return nil, func() {}, ErrMissingDBURL
	}
	db, err := pg.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, func() {}, err
	}
	if err := pg.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, func() {}, err
	}
	cleanup := func() {
		log.Info("closing pg")
		db.Close()
	}
	return db, cleanup, nil
}

func ProvideRedisClient(cfg config.Config) (*redis.Client, func(), error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	return client, func() { _ = client.Close() }, nil
}

// ProvideHistory selects the history backend from HISTORY_BACKEND.
func ProvideHistory(ctx context.Context, log *zap.Logger, cfg config.Config) (History, func(), error) {
	switch cfg.HistoryBackend {
	case "", "none":
		return History{Repo: application.NoopHistory{}}, func() {}, nil
	case "pg":
		db, cleanup, err := ProvideDB(ctx, log, cfg)
		if err != nil {
			return History{}, func() {}, err
		}
		return History{Repo: pg.NewHistoryRepo(db), Ping: db.Ping}, cleanup, nil
	case "redis":
		client, cleanup, err := ProvideRedisClient(cfg)
		if err != nil {
			return History{}, func() {}, err
		}
		store := redisstore.New(client, cfg.RedisHistoryKey, cfg.RedisHistoryMax)
		return History{Repo: store, Ping: store.Ping}, cleanup, nil
	default:
		return History{}, func() {}, fmt.Errorf("%w: %q", ErrUnknownHistory, cfg.HistoryBackend)
	}
}

func ProvidePriceCache(feed application.PriceFeed, log *zap.Logger) *application.PriceCache {
	return application.NewPriceCache(feed, application.WithCacheLogger(log))
}

func ProvideService(prices application.PriceSource, stock application.StockProvider, h History) *application.Service {
	return application.NewService(prices, stock, h.Repo)
}
