package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/itsharex/ReFast-sub000/internal/core/domain"
	"github.com/itsharex/ReFast-sub000/internal/core/ports/driven"
)

// usageStore implements driven.UsageStore.
type usageStore struct {
	store *Store
}

var _ driven.UsageStore = (*usageStore)(nil)

// RecordOpen bumps the use count and last-used time for path.
func (s *usageStore) RecordOpen(ctx context.Context, path string) error {
	if path == "" {
		return domain.ErrInvalidInput
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO usage_stats (normalized_path, path, last_used, use_count)
		VALUES (?, ?, ?, 1)
		ON CONFLICT(normalized_path) DO UPDATE SET
			last_used = excluded.last_used,
			use_count = usage_stats.use_count + 1
	`, domain.NormalizePath(path), path, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("recording open: %w", err)
	}
	return nil
}

// GetAll returns the full usage table keyed by normalised path.
func (s *usageStore) GetAll(ctx context.Context) (domain.UsageTable, error) {
	rows, err := s.store.db.QueryContext(ctx,
		"SELECT normalized_path, path, last_used, use_count FROM usage_stats")
	if err != nil {
		return nil, fmt.Errorf("querying usage stats: %w", err)
	}
	defer rows.Close()

	table := domain.UsageTable{}
	for rows.Next() {
		var key string
		var rec domain.UsageRecord
		if err := rows.Scan(&key, &rec.Path, &rec.LastUsed, &rec.UseCount); err != nil {
			return nil, fmt.Errorf("scanning usage row: %w", err)
		}
		table[key] = rec
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating usage stats: %w", err)
	}
	return table, nil
}
