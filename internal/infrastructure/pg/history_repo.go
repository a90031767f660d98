package pg

import (
	"context"
	"fmt"

	"useful-api/internal/application"
	"useful-api/internal/domain"
	"useful-api/internal/infrastructure/logx"

	"go.uber.org/zap"
)

var _ application.HistoryRepo = (*HistoryRepo)(nil)

type HistoryRepo struct{ db *DB }

func NewHistoryRepo(db *DB) *HistoryRepo { return &HistoryRepo{db: db} }

func (r *HistoryRepo) Append(ctx context.Context, s domain.PriceSnapshot) error {
	const ins = `
        INSERT INTO price_history(pair, satoshi_per_eur, quoted_at, source)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (pair, quoted_at, source) DO NOTHING`
	log := logx.WithFields(ctx).With(
		zap.String("repo", "price_history"),
		zap.String("operation", "Append"),
		zap.String("pair", string(s.Pair)),
	)
	tag, err := r.db.Pool.Exec(ctx, ins, string(s.Pair), s.SatoshiPerEUR, s.QuotedAt, s.Source)
	if err != nil {
		log.Error("sql.exec_failed", zap.Error(err))
		return fmt.Errorf("pg: append history: %w", err)
	}
	log.Debug("sql.exec_success", zap.Int64("rows_affected", tag.RowsAffected()))
	return nil
}

func (r *HistoryRepo) Recent(ctx context.Context, limit int) ([]domain.PriceSnapshot, error) {
	const q = `
        SELECT id, pair, satoshi_per_eur::float8, quoted_at, source
        FROM price_history
        ORDER BY quoted_at DESC, id DESC
        LIMIT $1`
	rows, err := r.db.Pool.Query(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("pg: query history: %w", err)
	}
	defer rows.Close()
	out := make([]domain.PriceSnapshot, 0, limit)
	for rows.Next() {
		var s domain.PriceSnapshot
		var pair string
		if err := rows.Scan(&s.ID, &pair, &s.SatoshiPerEUR, &s.QuotedAt, &s.Source); err != nil {
			return nil, fmt.Errorf("pg: scan history: %w", err)
		}
		s.Pair = domain.Pair(pair)
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pg: iterate history: %w", err)
	}
	return out, nil
}
