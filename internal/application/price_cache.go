package application

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"useful-api/internal/domain"

	"go.uber.org/zap"
)

// StalenessWindow is the maximum age of a cached price before it has to be
// fetched again.
const StalenessWindow = 10 * time.Second

var _ PriceSource = (*PriceCache)(nil)

// PriceCache is a single-slot read-through cache in front of a PriceFeed.
//
// Concurrent callers that find the slot stale queue on the write lock; the
// first one fetches and the others reuse its result. A failed fetch leaves
// the slot untouched and is returned to the caller, even if an older value
// is still stored.
type PriceCache struct {
	feed  PriceFeed
	clock Clock
	log   *zap.Logger

	mu     sync.RWMutex
	cached *domain.SatoshiPrice
}

type CacheOption func(*PriceCache)

func WithCacheClock(c Clock) CacheOption { return func(pc *PriceCache) { pc.clock = c } }

func WithCacheLogger(l *zap.Logger) CacheOption { return func(pc *PriceCache) { pc.log = l } }

func NewPriceCache(feed PriceFeed, opts ...CacheOption) *PriceCache {
	c := &PriceCache{feed: feed}
	for _, opt := range opts {
		opt(c)
	}
	if c.clock == nil {
		c.clock = realClock{}
	}
	if c.log == nil {
		c.log = zap.NewNop()
	}
	return c
}

func (c *PriceCache) Get(ctx context.Context) (domain.SatoshiPrice, error) {
	c.mu.RLock()
	p, ok := c.fresh(c.clock.Now())
	c.mu.RUnlock()
	if ok {
		return p, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// Another caller may have refreshed the slot while we waited.
	if p, ok := c.fresh(c.clock.Now()); ok {
		return p, nil
	}

	value, err := c.feed.FetchPrice(ctx)
	if err == nil && (math.IsNaN(value) || math.IsInf(value, 0) || value <= 0) {
		err = domain.NewFetchError(domain.FetchCauseDecode, "Invalid price from feed", fmt.Errorf("price %v", value))
	}
	if err != nil {
		if !errors.Is(err, domain.ErrFetch) {
			err = domain.NewFetchError(domain.FetchCauseTransport, "Error fetching price", err)
		}
		var fe *domain.FetchError
		if errors.As(err, &fe) {
			c.log.Warn("price_cache.refresh_failed",
				zap.String("cause", fe.Cause.String()),
				zap.String("detail", fe.Detail()),
				zap.Bool("had_value", c.cached != nil),
			)
		}
		return domain.SatoshiPrice{}, err
	}

	next := domain.SatoshiPrice{Value: value, FetchedAt: c.clock.Now()}
	c.cached = &next
	c.log.Info("price_cache.refreshed", zap.Float64("satoshi_per_eur", value))
	return next, nil
}

// fresh must be called with mu held.
func (c *PriceCache) fresh(now time.Time) (domain.SatoshiPrice, bool) {
	if c.cached == nil || now.Sub(c.cached.FetchedAt) >= StalenessWindow {
		return domain.SatoshiPrice{}, false
	}
	return *c.cached, true
}
