package worker

import (
	"context"
	"time"

	"useful-api/internal/application"
	"useful-api/internal/domain"
	infraconfig "useful-api/internal/infrastructure/config"

	"go.uber.org/zap"
)

var _ application.Worker = (*Recorder)(nil)

// Recorder polls the price feed and appends every successful reading to the
// price history. Failed polls are logged and skipped.
type Recorder struct {
	Feed    application.PriceFeed
	History application.HistoryRepo
	Source  string

	PollEvery time.Duration
	Timeout   time.Duration
	Log       *zap.Logger
	Now       func() time.Time
}

func (w *Recorder) Start(ctx context.Context) {
	log := w.Log
	if log == nil {
		log = zap.NewNop()
	}
	if w.PollEvery <= 0 {
		w.PollEvery = infraconfig.DefaultWorkerPoll
	}
	if w.Now == nil {
		w.Now = time.Now
	}

	t := time.NewTicker(w.PollEvery)
	defer t.Stop()

	log.Info("recorder_started", zap.Duration("poll_every", w.PollEvery))
	w.tick(ctx, log)
	for {
		select {
		case <-ctx.Done():
			log.Info("recorder_stopped")
			return
		case <-t.C:
			w.tick(ctx, log)
		}
	}
}

func (w *Recorder) tick(ctx context.Context, log *zap.Logger) {
	if w.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.Timeout)
		defer cancel()
	}
	price, err := w.Feed.FetchPrice(ctx)
	if err != nil {
		log.Warn("record_fetch_failed", zap.Error(err))
		return
	}
	snap := domain.PriceSnapshot{
		Pair:          domain.PairBTCEUR,
		SatoshiPerEUR: price,
		QuotedAt:      w.Now().UTC(),
		Source:        w.Source,
	}
	if err := w.History.Append(ctx, snap); err != nil {
		log.Warn("record_append_failed", zap.Error(err))
		return
	}
	log.Info("record_done", zap.Float64("satoshi_per_eur", price))
}
