package services

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itsharex/ReFast-sub000/internal/core/domain"
)

// emission is one snapshot captured from a delivery under test.
type emission struct {
	gen        uint64
	horizontal []domain.RankedResult
	vertical   []domain.RankedResult
	complete   bool
}

// emitRecorder captures every emitted snapshot.
type emitRecorder struct {
	mu        sync.Mutex
	emissions []emission
}

func (r *emitRecorder) emit(gen uint64, horizontal, vertical []domain.RankedResult, _ domain.SearchStatus, complete bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.emissions = append(r.emissions, emission{gen: gen, horizontal: horizontal, vertical: vertical, complete: complete})
}

func (r *emitRecorder) all() []emission {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]emission, len(r.emissions))
	copy(out, r.emissions)
	return out
}

func verticalSet(n int) []domain.RankedResult {
	out := make([]domain.RankedResult, 0, n)
	for i := range n {
		out = append(out, domain.RankedResult{SearchResult: domain.SearchResult{
			Source:         domain.SourceIndexService,
			DisplayName:    fmt.Sprintf("f%04d", i),
			NormalizedPath: fmt.Sprintf(`c:/bulk/f%04d`, i),
		}})
	}
	return out
}

func TestDelivery_SmallSetDeliveredInOneShot(t *testing.T) {
	sched := NewScheduler()
	defer sched.Stop()
	rec := &emitRecorder{}
	d := newDelivery(7, sched, rec.emit)

	d.Update(verticalSet(30), domain.SearchStatus{}, true)

	emissions := rec.all()
	require.Len(t, emissions, 1)
	assert.Equal(t, uint64(7), emissions[0].gen)
	assert.Len(t, emissions[0].vertical, 30)
	assert.True(t, emissions[0].complete)
	assert.Equal(t, DeliveryComplete, d.State())
}

func TestDelivery_LargeSetStreamsIncrements(t *testing.T) {
	sched := NewScheduler()
	defer sched.Stop()
	rec := &emitRecorder{}
	d := newDelivery(1, sched, rec.emit)

	d.Update(verticalSet(deliveryInitialBatch+deliveryIncrement*2), domain.SearchStatus{}, true)

	first := rec.all()
	require.NotEmpty(t, first)
	assert.Len(t, first[0].vertical, deliveryInitialBatch, "first batch is bounded")
	assert.False(t, first[0].complete)
	assert.Equal(t, DeliveryStreaming, d.State())

	require.Eventually(t, func() bool {
		return d.State() == DeliveryComplete
	}, time.Second, 5*time.Millisecond)

	emissions := rec.all()
	last := emissions[len(emissions)-1]
	assert.Len(t, last.vertical, deliveryInitialBatch+deliveryIncrement*2)
	assert.True(t, last.complete)
}

func TestDelivery_PrefixesGrowMonotonically(t *testing.T) {
	sched := NewScheduler()
	defer sched.Stop()
	rec := &emitRecorder{}
	d := newDelivery(1, sched, rec.emit)

	d.Update(verticalSet(deliveryInitialBatch+deliveryIncrement*3), domain.SearchStatus{}, true)

	require.Eventually(t, func() bool {
		return d.State() == DeliveryComplete
	}, time.Second, 5*time.Millisecond)

	prev := 0
	for _, e := range rec.all() {
		size := len(e.horizontal) + len(e.vertical)
		assert.GreaterOrEqual(t, size, prev, "a snapshot must never shrink")
		prev = size
	}
}

func TestDelivery_UpdateNeverShrinksDeliveredPrefix(t *testing.T) {
	sched := NewScheduler()
	defer sched.Stop()
	rec := &emitRecorder{}
	d := newDelivery(1, sched, rec.emit)

	d.Update(verticalSet(80), domain.SearchStatus{}, false)
	// A later pass with a smaller set: the prefix is capped, not grown,
	// and what was already shown is re-derived from the new ranking.
	d.Update(verticalSet(40), domain.SearchStatus{}, true)

	emissions := rec.all()
	require.Len(t, emissions, 2)
	assert.Len(t, emissions[0].vertical, 80)
	assert.Len(t, emissions[1].vertical, 40)
	assert.True(t, emissions[1].complete)
}

func TestDelivery_IncompleteSourcesHoldCompletion(t *testing.T) {
	sched := NewScheduler()
	defer sched.Stop()
	rec := &emitRecorder{}
	d := newDelivery(1, sched, rec.emit)

	d.Update(verticalSet(10), domain.SearchStatus{}, false)

	emissions := rec.all()
	require.Len(t, emissions, 1)
	assert.False(t, emissions[0].complete)
	assert.NotEqual(t, DeliveryComplete, d.State())

	d.Update(verticalSet(10), domain.SearchStatus{}, true)
	assert.Equal(t, DeliveryComplete, d.State())
}

func TestDelivery_CancelStopsStreaming(t *testing.T) {
	sched := NewScheduler()
	defer sched.Stop()
	rec := &emitRecorder{}
	d := newDelivery(1, sched, rec.emit)

	d.Update(verticalSet(deliveryInitialBatch+deliveryIncrement*5), domain.SearchStatus{}, true)
	d.Cancel()

	assert.Equal(t, DeliveryCancelled, d.State())

	// Let any in-flight step drain, then verify emission has stopped.
	time.Sleep(2 * deliveryTick)
	seen := len(rec.all())
	time.Sleep(5 * deliveryTick)
	assert.Equal(t, seen, len(rec.all()))

	d.Update(verticalSet(10), domain.SearchStatus{}, true)
	assert.Equal(t, seen, len(rec.all()), "a cancelled delivery ignores updates")
}

func TestDelivery_SuccessiveUpdatesDoNotBlock(t *testing.T) {
	sched := NewScheduler()
	defer sched.Stop()
	rec := &emitRecorder{}
	d := newDelivery(1, sched, rec.emit)

	// One update per source merge: the second and later passes must go
	// through the same mutex the first pass took.
	done := make(chan struct{})
	go func() {
		d.Update(verticalSet(10), domain.SearchStatus{}, false)
		d.Update(verticalSet(20), domain.SearchStatus{}, false)
		d.Update(verticalSet(30), domain.SearchStatus{}, true)
		_ = d.State()
		d.Cancel()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("a later pass blocked on the delivery mutex")
	}

	emissions := rec.all()
	require.Len(t, emissions, 3)
	assert.True(t, emissions[2].complete)
}

func TestDelivery_LanesSplitPerSnapshot(t *testing.T) {
	sched := NewScheduler()
	defer sched.Stop()
	rec := &emitRecorder{}
	d := newDelivery(1, sched, rec.emit)

	ranked := []domain.RankedResult{
		{SearchResult: domain.SearchResult{Source: domain.SourcePlugin, DisplayName: "Clipboard", NormalizedPath: "plugin://clip"}},
		{SearchResult: domain.SearchResult{Source: domain.SourceApp, DisplayName: "Notepad", NormalizedPath: `c:/w/notepad.exe`}},
		{SearchResult: domain.SearchResult{Source: domain.SourceFileHistory, DisplayName: "notes.txt", NormalizedPath: `c:/d/notes.txt`}},
	}
	d.Update(ranked, domain.SearchStatus{}, true)

	emissions := rec.all()
	require.Len(t, emissions, 1)
	assert.Len(t, emissions[0].horizontal, 2)
	assert.Len(t, emissions[0].vertical, 1)
}
