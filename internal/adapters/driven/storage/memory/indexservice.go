package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/itsharex/ReFast-sub000/internal/core/domain"
	"github.com/itsharex/ReFast-sub000/internal/core/ports/driven"
)

// Ensure IndexService implements the interface.
var _ driven.IndexService = (*IndexService)(nil)

// indexSession is one open cursor: the hits frozen at create time.
type indexSession struct {
	hits []domain.IndexItem
}

// IndexService is an in-memory implementation of the session protocol.
// It searches a fixed corpus by substring and holds each session's hit
// set server-side the way the real service does, which makes it a
// faithful stand-in for protocol tests and for running without the
// external service.
type IndexService struct {
	mu       sync.Mutex
	corpus   []domain.IndexItem
	sessions map[string]*indexSession
}

// NewIndexService creates an index service over the given corpus.
func NewIndexService(corpus ...domain.IndexItem) *IndexService {
	return &IndexService{
		corpus:   corpus,
		sessions: make(map[string]*indexSession),
	}
}

// Status reports the service as always available.
func (s *IndexService) Status(_ context.Context) domain.IndexStatus {
	return domain.IndexStatus{Available: true}
}

// StartSession opens a cursor holding up to opts.MaxResults hits.
func (s *IndexService) StartSession(
	_ context.Context, query string, opts driven.SessionOptions,
) (driven.SessionInfo, error) {
	if query == "" {
		return driven.SessionInfo{}, domain.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	needle := strings.ToLower(query)
	var hits []domain.IndexItem
	for _, item := range s.corpus {
		if strings.Contains(strings.ToLower(item.Name), needle) ||
			strings.Contains(strings.ToLower(item.Path), needle) {
			hits = append(hits, item)
		}
	}
	total := len(hits)
	if opts.MaxResults > 0 && len(hits) > opts.MaxResults {
		hits = hits[:opts.MaxResults]
	}

	id := uuid.New().String()
	s.sessions[id] = &indexSession{hits: hits}
	return driven.SessionInfo{SessionID: id, TotalCount: total}, nil
}

// GetRange fetches one page of an open session.
func (s *IndexService) GetRange(
	_ context.Context, sessionID string, offset, limit int,
) (driven.RangeResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return driven.RangeResult{}, domain.ErrSessionClosed
	}
	if offset < 0 || limit <= 0 {
		return driven.RangeResult{}, domain.ErrInvalidInput
	}

	if offset >= len(sess.hits) {
		return driven.RangeResult{TotalCount: len(sess.hits)}, nil
	}
	end := min(offset+limit, len(sess.hits))
	page := make([]domain.IndexItem, end-offset)
	copy(page, sess.hits[offset:end])
	return driven.RangeResult{Items: page, TotalCount: len(sess.hits)}, nil
}

// CloseSession releases the cursor. Closing an unknown session is not
// an error; the caller fires and forgets.
func (s *IndexService) CloseSession(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}

// OpenSessions reports the number of live cursors. Test helper.
func (s *IndexService) OpenSessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
