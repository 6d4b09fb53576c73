package services

import (
	"sync"
	"time"
)

// CancelFunc cancels a pending scheduled call. Safe to call more than
// once and after the call has fired.
type CancelFunc func()

// Scheduler owns every debounce and delay timer in the pipeline, so call
// sites acquire and release handles explicitly instead of scattering
// time.AfterFunc across the code.
type Scheduler struct {
	mu      sync.Mutex
	pending map[string]*time.Timer
	stopped bool
}

// NewScheduler creates an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{
		pending: make(map[string]*time.Timer),
	}
}

// Debounce schedules fn to run after d, replacing any pending call with
// the same key. Only the most recent pending call per key survives;
// earlier ones are dropped, not executed.
func (s *Scheduler) Debounce(key string, d time.Duration, fn func()) CancelFunc {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return func() {}
	}

	if prev, ok := s.pending[key]; ok {
		prev.Stop()
	}

	var timer *time.Timer
	timer = time.AfterFunc(d, func() {
		s.mu.Lock()
		// A replaced timer may still fire if Stop raced the expiry;
		// only the registered timer for the key is allowed through.
		current, ok := s.pending[key]
		if !ok || current != timer || s.stopped {
			s.mu.Unlock()
			return
		}
		delete(s.pending, key)
		s.mu.Unlock()
		fn()
	})
	s.pending[key] = timer

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if current, ok := s.pending[key]; ok && current == timer {
			current.Stop()
			delete(s.pending, key)
		}
	}
}

// After schedules fn to run once after d and returns a cancel handle.
func (s *Scheduler) After(d time.Duration, fn func()) CancelFunc {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return func() {}
	}

	timer := time.AfterFunc(d, fn)
	return func() {
		timer.Stop()
	}
}

// Stop cancels every pending call and rejects new ones.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopped = true
	for key, timer := range s.pending {
		timer.Stop()
		delete(s.pending, key)
	}
}
