package services

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduler_Debounce_FiresAfterDelay(t *testing.T) {
	s := NewScheduler()
	defer s.Stop()

	fired := make(chan struct{})
	s.Debounce("k", 5*time.Millisecond, func() { close(fired) })

	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("debounced call never fired")
	}
}

func TestScheduler_Debounce_ReplacesPendingCall(t *testing.T) {
	s := NewScheduler()
	defer s.Stop()

	var firstFired atomic.Bool
	secondFired := make(chan struct{})

	s.Debounce("k", 20*time.Millisecond, func() { firstFired.Store(true) })
	s.Debounce("k", 5*time.Millisecond, func() { close(secondFired) })

	select {
	case <-secondFired:
	case <-time.After(time.Second):
		t.Fatal("replacement call never fired")
	}

	// Give the replaced timer's original deadline time to pass.
	time.Sleep(40 * time.Millisecond)
	assert.False(t, firstFired.Load(), "replaced call must not fire")
}

func TestScheduler_Debounce_DistinctKeysAreIndependent(t *testing.T) {
	s := NewScheduler()
	defer s.Stop()

	var count atomic.Int32
	done := make(chan struct{}, 2)
	fn := func() {
		count.Add(1)
		done <- struct{}{}
	}

	s.Debounce("a", 5*time.Millisecond, fn)
	s.Debounce("b", 5*time.Millisecond, fn)

	for range 2 {
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("expected both keys to fire")
		}
	}
	require.Equal(t, int32(2), count.Load())
}

func TestScheduler_Debounce_CancelPreventsFire(t *testing.T) {
	s := NewScheduler()
	defer s.Stop()

	var fired atomic.Bool
	cancel := s.Debounce("k", 10*time.Millisecond, func() { fired.Store(true) })
	cancel()
	cancel() // repeat calls are safe

	time.Sleep(30 * time.Millisecond)
	assert.False(t, fired.Load())
}

func TestScheduler_After_FiresOnce(t *testing.T) {
	s := NewScheduler()
	defer s.Stop()

	fired := make(chan struct{})
	s.After(5*time.Millisecond, func() { close(fired) })

	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("delayed call never fired")
	}
}

func TestScheduler_Stop_CancelsPendingAndRejectsNew(t *testing.T) {
	s := NewScheduler()

	var fired atomic.Bool
	s.Debounce("k", 10*time.Millisecond, func() { fired.Store(true) })
	s.Stop()

	s.Debounce("k2", time.Millisecond, func() { fired.Store(true) })

	time.Sleep(30 * time.Millisecond)
	assert.False(t, fired.Load(), "no call may fire after Stop")
}
