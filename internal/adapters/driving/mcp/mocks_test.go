package mcp

import (
	"context"
	"sync"

	"github.com/itsharex/ReFast-sub000/internal/core/domain"
	"github.com/itsharex/ReFast-sub000/internal/core/ports/driving"
)

// mockSearchController replays canned snapshots on query change.
type mockSearchController struct {
	mu        sync.Mutex
	snapshots []driving.Snapshot
	queries   []string
	subs      []chan driving.Snapshot
	launches  []domain.SearchResult
}

var _ driving.SearchController = (*mockSearchController)(nil)

func (m *mockSearchController) OnQueryChange(raw string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queries = append(m.queries, raw)
	for _, ch := range m.subs {
		for _, snap := range m.snapshots {
			ch <- snap
		}
	}
}

func (m *mockSearchController) Cancel() {}

func (m *mockSearchController) Subscribe() (<-chan driving.Snapshot, func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ch := make(chan driving.Snapshot, 16)
	m.subs = append(m.subs, ch)
	return ch, func() {}
}

func (m *mockSearchController) RecordLaunch(_ context.Context, res domain.SearchResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.launches = append(m.launches, res)
	return nil
}

func (m *mockSearchController) Close() error { return nil }
