package logx

import (
	"context"
	"strings"
	"sync/atomic"

	"useful-api/internal/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type ctxKey int

const (
	requestIDKey ctxKey = iota
	traceIDKey
)

var logger atomic.Pointer[zap.Logger]

func init() {
	l, err := build(config.Load())
	if err != nil {
		panic(err)
	}
	logger.Store(l)
}

func build(appCfg config.Config) (*zap.Logger, error) {
	zapCfg := zap.NewProductionConfig()
	zapCfg.Sampling = nil
	zapCfg.DisableStacktrace = true
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	if appCfg.LogLevel != "" {
		_ = zapCfg.Level.UnmarshalText([]byte(strings.ToLower(appCfg.LogLevel)))
	}
	zapCfg.InitialFields = map[string]any{"service": config.ServiceName, "env": appCfg.Env}
	return zapCfg.Build(zap.AddCaller())
}

// Configure rebuilds the package logger from cfg. The logger built at init
// only sees the process environment; call this once .env has been loaded.
func Configure(cfg config.Config) error {
	l, err := build(cfg)
	if err != nil {
		return err
	}
	logger.Store(l)
	return nil
}

// L returns the package-level logger instance.
func L() *zap.Logger {
	return logger.Load()
}

func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

func ContextWithTraceID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, traceIDKey, id)
}

func RequestID(ctx context.Context) string {
	v, _ := ctx.Value(requestIDKey).(string)
	return v
}

func TraceID(ctx context.Context) string {
	v, _ := ctx.Value(traceIDKey).(string)
	return v
}

// WithFields enriches the logger with request and trace ids from context.
func WithFields(ctx context.Context) *zap.Logger {
	l := L()
	if rid := RequestID(ctx); rid != "" {
		l = l.With(zap.String("request_id", rid))
	}
	if tid := TraceID(ctx); tid != "" {
		l = l.With(zap.String("trace_id", tid))
	}
	return l
}
