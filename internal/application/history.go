package application

import (
	"context"

	"useful-api/internal/domain"
)

// NoopHistory drops snapshots and reports an empty history; used when no
// history backend is configured.
type NoopHistory struct{}

func (NoopHistory) Append(context.Context, domain.PriceSnapshot) error { return nil }

func (NoopHistory) Recent(context.Context, int) ([]domain.PriceSnapshot, error) {
	return []domain.PriceSnapshot{}, nil
}
