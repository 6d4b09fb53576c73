package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/itsharex/ReFast-sub000/internal/core/domain"
	"github.com/itsharex/ReFast-sub000/internal/core/ports/driven"
	"github.com/itsharex/ReFast-sub000/internal/logger"
)

// closeTimeout bounds the fire-and-forget close of a superseded session.
// In the worst case the service garbage-collects the cursor on idle.
const closeTimeout = 5 * time.Second

// probeInterval rate-limits availability re-probes while the external
// service looks dead, so a stream of keystrokes does not hammer it.
const probeInterval = 5 * time.Second

// SessionManager drives the create/paginate/close protocol against the
// external volume index service. At most one session is live per manager:
// opening a session for a new query initiates (but never awaits) closing
// the previous one. Results arriving for a superseded query or session id
// are discarded unconditionally.
type SessionManager struct {
	svc   driven.IndexService
	probe *rate.Limiter

	mu           sync.Mutex
	currentQuery string
	pendingID    string
	creatingFor  string // query text with a create in flight, "" if none
	current      *domain.SearchSession
	available    bool
	probed       bool
}

// NewSessionManager creates a session manager over the service.
// svc may be nil; every search then reports the source unavailable.
func NewSessionManager(svc driven.IndexService) *SessionManager {
	return &SessionManager{
		svc:   svc,
		probe: rate.NewLimiter(rate.Every(probeInterval), 1),
	}
}

// Available reports the last known service availability.
func (m *SessionManager) Available() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.available && m.svc != nil
}

// Current returns a copy of the live session, if any.
func (m *SessionManager) Current() (domain.SearchSession, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return domain.SearchSession{}, false
	}
	return *m.current, true
}

// Search opens a session for q and fetches its first page. Runs
// synchronously; the controller calls it from the fan-out goroutine.
// onResults receives the page before Search returns nil. Deeper
// pagination is out of scope for the launcher: only offset 0 is fetched.
func (m *SessionManager) Search(
	ctx context.Context, q domain.Query, onResults func(items []domain.IndexItem, total int),
) error {
	if m.svc == nil {
		return domain.ErrSourceUnavailable
	}

	// Supersede whatever was live. Closing must never block opening.
	m.mu.Lock()
	m.currentQuery = q.Text
	if prev := m.pendingID; prev != "" {
		m.pendingID = ""
		m.current = nil
		go m.closeAsync(prev)
	}
	if !m.ensureAvailableLocked(ctx) {
		m.mu.Unlock()
		return domain.ErrSourceUnavailable
	}
	if m.creatingFor == q.Text {
		// A create for this exact query is already in flight; do not
		// double-create. A create in flight for an OLDER query does not
		// block this one: the newer query proceeds immediately and the
		// stale guards discard the older cursor on arrival.
		m.mu.Unlock()
		return domain.ErrStaleResult
	}
	m.creatingFor = q.Text
	m.mu.Unlock()

	info, err := m.startSession(ctx, q)
	if err != nil {
		return err
	}

	return m.fetchFirstPage(ctx, q, info, onResults)
}

// startSession creates the server-side cursor with the create timeout.
func (m *SessionManager) startSession(ctx context.Context, q domain.Query) (driven.SessionInfo, error) {
	opts := driven.SessionOptions{
		MaxResults: domain.MaxResultsFor(q.Length()),
		ChunkSize:  domain.SessionChunkSize,
	}
	logger.Debug("session: creating for %q (max=%d, chunk=%d)", q.Text, opts.MaxResults, opts.ChunkSize)

	createCtx, cancel := context.WithTimeout(ctx, domain.SessionCreateTimeout)
	info, err := m.svc.StartSession(createCtx, q.Text, opts)
	cancel()

	m.mu.Lock()
	if m.creatingFor == q.Text {
		m.creatingFor = ""
	}
	if err != nil {
		m.mu.Unlock()
		return driven.SessionInfo{}, m.failure("create", err)
	}

	if m.currentQuery != q.Text {
		// Superseded while we waited. Close what we just opened.
		m.mu.Unlock()
		go m.closeAsync(info.SessionID)
		logger.Debug("session: %s stale on arrival, discarded", info.SessionID)
		return driven.SessionInfo{}, domain.ErrStaleResult
	}

	m.pendingID = info.SessionID
	m.current = &domain.SearchSession{
		ID:                  info.SessionID,
		Query:               q.Text,
		Generation:          q.Generation,
		CreatedAt:           time.Now(),
		MaxResultsRequested: opts.MaxResults,
		ChunkSize:           opts.ChunkSize,
		TotalCount:          info.TotalCount,
	}
	m.mu.Unlock()

	logger.Debug("session: %s open, %d total hits", info.SessionID, info.TotalCount)
	return info, nil
}

// fetchFirstPage fetches offset 0 with the fetch timeout and applies the
// stale-result guard before delivering.
func (m *SessionManager) fetchFirstPage(
	ctx context.Context, q domain.Query, info driven.SessionInfo,
	onResults func(items []domain.IndexItem, total int),
) error {
	fetchCtx, cancel := context.WithTimeout(ctx, domain.SessionFetchTimeout)
	page, err := m.svc.GetRange(fetchCtx, info.SessionID, 0, domain.SessionChunkSize)
	cancel()

	m.mu.Lock()
	if err != nil {
		m.mu.Unlock()
		return m.failure("fetch", err)
	}

	if m.currentQuery != q.Text || m.pendingID != info.SessionID {
		m.mu.Unlock()
		logger.Debug("session: page for %s stale on arrival, discarded", info.SessionID)
		return domain.ErrStaleResult
	}

	m.current.TotalCount = page.TotalCount
	m.current.LastFetchedOffset = 0
	m.mu.Unlock()

	onResults(page.Items, page.TotalCount)
	return nil
}

// CloseCurrent closes the live session, if any. Used when the query is
// cleared or the controller shuts down.
func (m *SessionManager) CloseCurrent() {
	m.mu.Lock()
	id := m.pendingID
	m.pendingID = ""
	m.current = nil
	m.currentQuery = ""
	m.mu.Unlock()

	if id != "" {
		go m.closeAsync(id)
	}
}

// ensureAvailableLocked re-probes the service when it last looked dead.
// Probes are rate limited; between probes the source stays excluded.
// Callers must hold mu.
func (m *SessionManager) ensureAvailableLocked(ctx context.Context) bool {
	if m.available {
		return true
	}
	if m.probed && !m.probe.Allow() {
		return false
	}

	status := m.svc.Status(ctx)
	m.probed = true
	m.available = status.Available
	if !status.Available {
		logger.Info("session: index service unavailable: %v", status.Err)
	}
	return m.available
}

// failure converts a protocol error into the pipeline's failure model:
// timeouts mark the service unavailable (it likely died mid-operation)
// and schedule a status re-probe. Callers must not hold mu.
func (m *SessionManager) failure(op string, err error) error {
	m.mu.Lock()
	m.pendingID = ""
	m.current = nil
	timeout := errors.Is(err, context.DeadlineExceeded)
	if timeout || domain.IsUnavailable(err) {
		m.available = false
	}
	m.mu.Unlock()

	if timeout {
		logger.Warn("session: %s timed out, marking service unavailable", op)
		go m.reprobe()
		return fmt.Errorf("session %s: %w", op, domain.ErrSessionTimeout)
	}

	logger.Warn("session: %s failed: %v", op, err)
	return fmt.Errorf("session %s: %w", op, err)
}

// reprobe re-checks service status after a timeout.
func (m *SessionManager) reprobe() {
	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()

	status := m.svc.Status(ctx)

	m.mu.Lock()
	m.available = status.Available
	m.probed = true
	m.mu.Unlock()
}

// closeAsync issues a fire-and-forget close. Failures are swallowed: the
// service garbage-collects idle sessions on its own timeout.
func (m *SessionManager) closeAsync(id string) {
	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()

	if err := m.svc.CloseSession(ctx, id); err != nil {
		logger.Debug("session: close %s failed: %v", id, err)
	}
}
