package memory

import (
	"context"
	"sync"
	"time"

	"github.com/itsharex/ReFast-sub000/internal/core/domain"
	"github.com/itsharex/ReFast-sub000/internal/core/ports/driven"
)

// Ensure UsageStore implements the interface.
var _ driven.UsageStore = (*UsageStore)(nil)

// UsageStore is an in-memory implementation of driven.UsageStore.
type UsageStore struct {
	mu    sync.RWMutex
	table domain.UsageTable

	now func() time.Time
}

// NewUsageStore creates a new in-memory usage store.
func NewUsageStore() *UsageStore {
	return &UsageStore{
		table: domain.UsageTable{},
		now:   time.Now,
	}
}

// RecordOpen bumps the use count and last-used time for path.
func (s *UsageStore) RecordOpen(_ context.Context, path string) error {
	if path == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	key := domain.NormalizePath(path)
	rec := s.table[key]
	rec.Path = path
	rec.UseCount++
	rec.LastUsed = s.now().Unix()
	s.table[key] = rec
	return nil
}

// GetAll returns a copy of the usage table.
func (s *UsageStore) GetAll(_ context.Context) (domain.UsageTable, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(domain.UsageTable, len(s.table))
	for k, v := range s.table {
		out[k] = v
	}
	return out, nil
}
