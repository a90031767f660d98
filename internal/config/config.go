package config

import (
	"math"
	"os"
	"strconv"
	"time"

	infraconfig "useful-api/internal/infrastructure/config"
)

const ServiceName = "useful-api"

// Version is overridden at build time with -ldflags "-X useful-api/internal/config.Version=...".
var Version = "1.0.0"

// UserAgent identifies the service to upstream APIs.
func UserAgent() string { return ServiceName + "/" + Version }

type Config struct {
	// Common
	Env      string
	LogLevel string
	// API
	Port string
	// Upstreams
	Provider       string
	CoinGeckoURL   string
	FakePrice      float64
	IkeaURL        string
	IkeaClientID   string
	IkeaStore      string
	RequestTimeout time.Duration
	// History
	HistoryBackend  string
	DatabaseURL     string
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	RedisHistoryKey string
	RedisHistoryMax int
	// Worker
	WorkerPoll time.Duration
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoiDef(s string, def int) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}

func floatDef(s string, def float64) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return def
	}
	return f
}

func msDef(key string, def time.Duration) time.Duration {
	ms := atoiDef(getEnv(key, ""), int(def/time.Millisecond))
	if ms <= 0 {
		return def
	}
	return time.Duration(ms) * time.Millisecond
}

// Load reads environment variables and applies defaults.
func Load() Config {
	return Config{
		Env:             getEnv("ENV", "local"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		Port:            getEnv("PORT", infraconfig.DefaultHTTPPort),
		Provider:        getEnv("PROVIDER", "coingecko"),
		CoinGeckoURL:    getEnv("COINGECKO_URL", infraconfig.DefaultCoinGeckoURL),
		FakePrice:       floatDef(getEnv("FAKE_PRICE", ""), 1500),
		IkeaURL:         getEnv("IKEA_URL", infraconfig.DefaultIkeaURL),
		IkeaClientID:    getEnv("IKEA_CLIENT_ID", infraconfig.DefaultIkeaClientID),
		IkeaStore:       getEnv("IKEA_STORE", infraconfig.DefaultIkeaStore),
		RequestTimeout:  msDef("REQUEST_TIMEOUT_MS", infraconfig.DefaultRequestTimeout),
		HistoryBackend:  getEnv("HISTORY_BACKEND", "none"),
		DatabaseURL:     getEnv("DATABASE_URL", ""),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		RedisDB:         atoiDef(getEnv("REDIS_DB", "0"), 0),
		RedisHistoryKey: getEnv("REDIS_HISTORY_KEY", infraconfig.DefaultRedisHistoryKey),
		RedisHistoryMax: atoiDef(getEnv("REDIS_HISTORY_MAX", ""), infraconfig.DefaultRedisHistoryMax),
		WorkerPoll:      msDef("WORKER_POLL_MS", infraconfig.DefaultWorkerPoll),
	}
}
