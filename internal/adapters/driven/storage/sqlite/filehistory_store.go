package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/itsharex/ReFast-sub000/internal/core/domain"
	"github.com/itsharex/ReFast-sub000/internal/core/ports/driven"
)

// fileHistoryStore implements driven.FileHistoryStore.
type fileHistoryStore struct {
	store *Store
}

var _ driven.FileHistoryStore = (*fileHistoryStore)(nil)

// GetAll returns every history entry, most recent first.
func (s *fileHistoryStore) GetAll(ctx context.Context) ([]domain.FileEntry, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT path, name, is_folder, last_used, use_count
		FROM file_history
		ORDER BY last_used DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("querying file history: %w", err)
	}
	defer rows.Close()

	var entries []domain.FileEntry
	for rows.Next() {
		var e domain.FileEntry
		var isFolder int
		if err := rows.Scan(&e.Path, &e.Name, &isFolder, &e.LastUsed, &e.UseCount); err != nil {
			return nil, fmt.Errorf("scanning file history row: %w", err)
		}
		e.IsFolder = isFolder != 0
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating file history: %w", err)
	}
	return entries, nil
}

// Add records that path was opened, creating or refreshing its entry.
func (s *fileHistoryStore) Add(ctx context.Context, path string) error {
	if path == "" {
		return domain.ErrInvalidInput
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO file_history (normalized_path, path, name, last_used, use_count)
		VALUES (?, ?, ?, ?, 1)
		ON CONFLICT(normalized_path) DO UPDATE SET
			last_used = excluded.last_used,
			use_count = file_history.use_count + 1
	`, domain.NormalizePath(path), path, domain.BaseName(path), time.Now().Unix())
	if err != nil {
		return fmt.Errorf("adding history entry: %w", err)
	}
	return nil
}

// Delete removes the entry for path. Missing entries are not an error.
func (s *fileHistoryStore) Delete(ctx context.Context, path string) error {
	_, err := s.store.db.ExecContext(ctx,
		"DELETE FROM file_history WHERE normalized_path = ?",
		domain.NormalizePath(path))
	if err != nil {
		return fmt.Errorf("deleting history entry: %w", err)
	}
	return nil
}
