package application

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"useful-api/internal/domain"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

// countingFeed returns the queued results in order and repeats the last one.
type countingFeed struct {
	mu      sync.Mutex
	results []feedResult
	calls   atomic.Int32
	delay   time.Duration
}

type feedResult struct {
	value float64
	err   error
}

func (f *countingFeed) FetchPrice(context.Context) (float64, error) {
	n := int(f.calls.Add(1))
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.results) == 0 {
		return 0, domain.NewFetchError(domain.FetchCauseTransport, "no result configured", nil)
	}
	if n > len(f.results) {
		n = len(f.results)
	}
	r := f.results[n-1]
	return r.value, r.err
}

type fakePriceSource struct {
	price domain.SatoshiPrice
	err   error
}

func (f fakePriceSource) Get(context.Context) (domain.SatoshiPrice, error) {
	return f.price, f.err
}

type fakeStock struct {
	out domain.SharkStock
	err error
}

func (f fakeStock) SharkStock(context.Context) (domain.SharkStock, error) { return f.out, f.err }

type fakeHistory struct {
	snaps     []domain.PriceSnapshot
	lastLimit int
}

func (f *fakeHistory) Append(_ context.Context, s domain.PriceSnapshot) error {
	f.snaps = append(f.snaps, s)
	return nil
}

func (f *fakeHistory) Recent(_ context.Context, limit int) ([]domain.PriceSnapshot, error) {
	f.lastLimit = limit
	if limit > len(f.snaps) {
		limit = len(f.snaps)
	}
	return f.snaps[:limit], nil
}

func fetchErr(cause domain.FetchCause) error {
	return domain.NewFetchError(cause, "upstream down", nil)
}
