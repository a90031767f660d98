package redisstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"useful-api/internal/application"
	"useful-api/internal/domain"

	"github.com/redis/go-redis/v9"
)

var _ application.HistoryRepo = (*HistoryStore)(nil)

// HistoryStore keeps the newest MaxLen snapshots in a Redis list, newest at
// the head. IDs come from a companion counter key.
type HistoryStore struct {
	Client *redis.Client
	Key    string
	MaxLen int
}

type snapshotJSON struct {
	ID            int64     `json:"id"`
	Pair          string    `json:"pair"`
	SatoshiPerEUR float64   `json:"satoshi_per_eur"`
	QuotedAt      time.Time `json:"quoted_at"`
	Source        string    `json:"source"`
}

func New(client *redis.Client, key string, maxLen int) *HistoryStore {
	return &HistoryStore{Client: client, Key: key, MaxLen: maxLen}
}

func (s *HistoryStore) Append(ctx context.Context, snap domain.PriceSnapshot) error {
	id, err := s.Client.Incr(ctx, s.Key+":seq").Result()
	if err != nil {
		return fmt.Errorf("redis: next history id: %w", err)
	}
	b, err := json.Marshal(snapshotJSON{
		ID:            id,
		Pair:          string(snap.Pair),
		SatoshiPerEUR: snap.SatoshiPerEUR,
		QuotedAt:      snap.QuotedAt.UTC(),
		Source:        snap.Source,
	})
	if err != nil {
		return fmt.Errorf("redis: marshal snapshot: %w", err)
	}
	_, err = s.Client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.LPush(ctx, s.Key, b)
		if s.MaxLen > 0 {
			p.LTrim(ctx, s.Key, 0, int64(s.MaxLen-1))
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis: append history: %w", err)
	}
	return nil
}

func (s *HistoryStore) Recent(ctx context.Context, limit int) ([]domain.PriceSnapshot, error) {
	if limit <= 0 {
		return []domain.PriceSnapshot{}, nil
	}
	vals, err := s.Client.LRange(ctx, s.Key, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("redis: read history: %w", err)
	}
	out := make([]domain.PriceSnapshot, 0, len(vals))
	for _, v := range vals {
		var sj snapshotJSON
		if err := json.Unmarshal([]byte(v), &sj); err != nil {
			return nil, fmt.Errorf("redis: decode snapshot: %w", err)
		}
		out = append(out, domain.PriceSnapshot{
			ID:            sj.ID,
			Pair:          domain.Pair(sj.Pair),
			SatoshiPerEUR: sj.SatoshiPerEUR,
			QuotedAt:      sj.QuotedAt,
			Source:        sj.Source,
		})
	}
	return out, nil
}

func (s *HistoryStore) Ping(ctx context.Context) error {
	return s.Client.Ping(ctx).Err()
}
