package services

import (
	"context"
	"strconv"
	"strings"
	"sync"

	"github.com/itsharex/ReFast-sub000/internal/core/domain"
	"github.com/itsharex/ReFast-sub000/internal/core/ports/driven"
)

// mockAppIndex is a scriptable driven.AppIndex.
type mockAppIndex struct {
	mu      sync.Mutex
	apps    []domain.AppEntry
	scanErr error
	scans   int
	changed chan struct{}
}

var _ driven.AppIndex = (*mockAppIndex)(nil)

func newMockAppIndex(apps ...domain.AppEntry) *mockAppIndex {
	return &mockAppIndex{apps: apps, changed: make(chan struct{}, 1)}
}

func (m *mockAppIndex) Scan(_ context.Context) ([]domain.AppEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scans++
	if m.scanErr != nil {
		return nil, m.scanErr
	}
	return m.apps, nil
}

func (m *mockAppIndex) Rescan(_ context.Context) error { return nil }

func (m *mockAppIndex) Invalidated() <-chan struct{} { return m.changed }

func (m *mockAppIndex) scanCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.scans
}

// mockHistoryStore is a scriptable driven.FileHistoryStore.
type mockHistoryStore struct {
	mu      sync.Mutex
	entries []domain.FileEntry
	getErr  error
	added   []string
}

var _ driven.FileHistoryStore = (*mockHistoryStore)(nil)

func (m *mockHistoryStore) GetAll(_ context.Context) ([]domain.FileEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.entries, nil
}

func (m *mockHistoryStore) Add(_ context.Context, path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.added = append(m.added, path)
	return nil
}

func (m *mockHistoryStore) Delete(_ context.Context, _ string) error { return nil }

// mockUsageStore is a scriptable driven.UsageStore.
type mockUsageStore struct {
	mu       sync.Mutex
	table    domain.UsageTable
	recorded []string
}

var _ driven.UsageStore = (*mockUsageStore)(nil)

func (m *mockUsageStore) RecordOpen(_ context.Context, path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recorded = append(m.recorded, path)
	return nil
}

func (m *mockUsageStore) GetAll(_ context.Context) (domain.UsageTable, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.table == nil {
		return domain.UsageTable{}, nil
	}
	return m.table, nil
}

// mockNoteStore is a fixed driven.NoteStore.
type mockNoteStore struct {
	notes []domain.Note
}

var _ driven.NoteStore = (*mockNoteStore)(nil)

func (m *mockNoteStore) GetAll(_ context.Context) ([]domain.Note, error) {
	return m.notes, nil
}

// mockPluginRegistry is a fixed driven.PluginRegistry with the
// registry-owned substring matching.
type mockPluginRegistry struct {
	plugins []domain.PluginDescriptor
}

var _ driven.PluginRegistry = (*mockPluginRegistry)(nil)

func (m *mockPluginRegistry) List(_ context.Context) ([]domain.PluginDescriptor, error) {
	return m.plugins, nil
}

func (m *mockPluginRegistry) Search(_ context.Context, query string) ([]domain.PluginDescriptor, error) {
	var out []domain.PluginDescriptor
	for _, p := range m.plugins {
		if containsFold(p.Name, query) || containsFold(p.Description, query) {
			out = append(out, p)
		}
	}
	return out, nil
}

// mockFolderIndex is a fixed driven.FolderIndex.
type mockFolderIndex struct {
	folders []domain.FolderEntry
}

var _ driven.FolderIndex = (*mockFolderIndex)(nil)

func (m *mockFolderIndex) List(_ context.Context) ([]domain.FolderEntry, error) {
	return m.folders, nil
}

// sessionCall records one protocol call against the mock index service.
type sessionCall struct {
	op        string // "status", "start", "range", "close"
	sessionID string
	query     string
}

// mockIndexService is a scriptable driven.IndexService that records the
// protocol call sequence.
type mockIndexService struct {
	mu    sync.Mutex
	calls []sessionCall

	available bool
	statusErr error

	nextID   int
	total    int
	items    []domain.IndexItem
	startErr error
	rangeErr error

	// startHook runs inside StartSession before returning, letting
	// tests interleave a superseding query mid-create.
	startHook func()
}

var _ driven.IndexService = (*mockIndexService)(nil)

func newMockIndexService(items ...domain.IndexItem) *mockIndexService {
	return &mockIndexService{available: true, items: items, total: len(items)}
}

func (m *mockIndexService) Status(_ context.Context) domain.IndexStatus {
	m.mu.Lock()
	m.calls = append(m.calls, sessionCall{op: "status"})
	available, err := m.available, m.statusErr
	m.mu.Unlock()
	return domain.IndexStatus{Available: available, Err: err}
}

func (m *mockIndexService) StartSession(
	_ context.Context, query string, _ driven.SessionOptions,
) (driven.SessionInfo, error) {
	m.mu.Lock()
	m.nextID++
	id := m.nextID
	m.calls = append(m.calls, sessionCall{op: "start", query: query})
	hook := m.startHook
	startErr := m.startErr
	total := m.total
	m.mu.Unlock()

	if hook != nil {
		hook()
	}
	if startErr != nil {
		return driven.SessionInfo{}, startErr
	}
	return driven.SessionInfo{SessionID: sessionID(id), TotalCount: total}, nil
}

func (m *mockIndexService) GetRange(
	_ context.Context, id string, offset, limit int,
) (driven.RangeResult, error) {
	m.mu.Lock()
	m.calls = append(m.calls, sessionCall{op: "range", sessionID: id})
	rangeErr := m.rangeErr
	items := m.items
	m.mu.Unlock()

	if rangeErr != nil {
		return driven.RangeResult{}, rangeErr
	}
	if offset >= len(items) {
		return driven.RangeResult{TotalCount: len(items)}, nil
	}
	end := min(offset+limit, len(items))
	return driven.RangeResult{Items: items[offset:end], TotalCount: len(items)}, nil
}

func (m *mockIndexService) CloseSession(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, sessionCall{op: "close", sessionID: id})
	return nil
}

func (m *mockIndexService) callSequence() []sessionCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]sessionCall, len(m.calls))
	copy(out, m.calls)
	return out
}

func sessionID(n int) string {
	return "sess-" + strconv.Itoa(n)
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
