package application

import (
	"context"
	"time"

	"useful-api/internal/domain"
)

// PriceFeed fetches the current satoshi-per-EUR price from upstream.
// Failures are returned as *domain.FetchError.
type PriceFeed interface {
	FetchPrice(ctx context.Context) (float64, error)
}

// PriceSource serves a price that is fresh enough to show to users.
type PriceSource interface {
	Get(ctx context.Context) (domain.SatoshiPrice, error)
}

type StockProvider interface {
	SharkStock(ctx context.Context) (domain.SharkStock, error)
}

type HistoryRepo interface {
	Append(ctx context.Context, s domain.PriceSnapshot) error
	Recent(ctx context.Context, limit int) ([]domain.PriceSnapshot, error)
}

type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }
