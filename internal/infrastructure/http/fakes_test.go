package httpserver

import (
	"context"
	"time"

	"useful-api/internal/application"
	"useful-api/internal/domain"
)

type stubFeed struct {
	price float64
	err   error
}

func (f stubFeed) FetchPrice(context.Context) (float64, error) { return f.price, f.err }

type stubStock struct {
	out domain.SharkStock
	err error
}

func (f stubStock) SharkStock(context.Context) (domain.SharkStock, error) { return f.out, f.err }

type memHistory struct {
	snaps []domain.PriceSnapshot
}

func (m *memHistory) Append(_ context.Context, s domain.PriceSnapshot) error {
	m.snaps = append([]domain.PriceSnapshot{s}, m.snaps...)
	return nil
}

func (m *memHistory) Recent(_ context.Context, limit int) ([]domain.PriceSnapshot, error) {
	if limit > len(m.snaps) {
		limit = len(m.snaps)
	}
	return m.snaps[:limit], nil
}

func newTestServer(feed application.PriceFeed, stock application.StockProvider, history application.HistoryRepo) *Server {
	svc := application.NewService(application.NewPriceCache(feed), stock, history)
	return NewServer(svc)
}

func sampleHistory() *memHistory {
	t0 := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	h := &memHistory{}
	for i := 0; i < 3; i++ {
		_ = h.Append(context.Background(), domain.PriceSnapshot{
			ID:            int64(i + 1),
			Pair:          domain.PairBTCEUR,
			SatoshiPerEUR: 1000 + float64(i),
			QuotedAt:      t0.Add(time.Duration(i) * time.Minute),
			Source:        "fake",
		})
	}
	return h
}
