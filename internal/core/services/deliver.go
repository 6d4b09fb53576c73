package services

import (
	"sync"
	"time"

	"github.com/itsharex/ReFast-sub000/internal/core/domain"
	"github.com/itsharex/ReFast-sub000/internal/logger"
)

// DeliveryState is the lifecycle of one generation's result emission.
type DeliveryState int

const (
	// DeliveryIdle means nothing has been emitted yet.
	DeliveryIdle DeliveryState = iota
	// DeliveryLoading means the first batch is being prepared.
	DeliveryLoading
	// DeliveryStreaming means increments are being appended on cadence.
	DeliveryStreaming
	// DeliveryComplete means the full set has been delivered.
	DeliveryComplete
	// DeliveryCancelled means a newer generation superseded this one.
	DeliveryCancelled
)

// Delivery pacing. Sets at or under the initial batch go out in one
// shot; larger sets stream increments on a per-frame cadence so the
// caller can paint early.
const (
	deliveryInitialBatch = 100
	deliveryIncrement    = 50
	deliveryTick         = 16 * time.Millisecond
)

// delivery streams monotonically growing prefixes of one generation's
// ranked set. Each increment re-derives the lane split over the grown
// prefix so both lanes stay consistent with what has been delivered.
// A delivery whose generation was superseded stops immediately.
type delivery struct {
	mu          sync.Mutex
	state       DeliveryState
	gen         uint64
	ranked      []domain.RankedResult
	delivered   int
	sourcesDone bool
	status      domain.SearchStatus
	sched       *Scheduler
	cancelTick  CancelFunc

	// emit publishes one snapshot; never called with the mutex held.
	emit func(gen uint64, horizontal, vertical []domain.RankedResult, status domain.SearchStatus, complete bool)
}

// newDelivery creates an idle delivery for the generation.
func newDelivery(
	gen uint64, sched *Scheduler,
	emit func(gen uint64, horizontal, vertical []domain.RankedResult, status domain.SearchStatus, complete bool),
) *delivery {
	return &delivery{
		state: DeliveryIdle,
		gen:   gen,
		sched: sched,
		emit:  emit,
	}
}

// State returns the current lifecycle state.
func (d *delivery) State() DeliveryState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// Update replaces the ranked set with the outcome of a new aggregation
// pass and advances delivery. Small sets are delivered in one shot;
// larger sets emit the first batch immediately and stream the rest.
func (d *delivery) Update(ranked []domain.RankedResult, status domain.SearchStatus, sourcesDone bool) {
	d.mu.Lock()
	if d.state == DeliveryCancelled {
		d.mu.Unlock()
		return
	}
	if d.state == DeliveryIdle {
		d.state = DeliveryLoading
	}

	d.ranked = ranked
	d.status = status
	d.sourcesDone = sourcesDone

	// Never shrink the delivered prefix; snapshots only grow.
	target := min(deliveryInitialBatch, len(ranked))
	if target > d.delivered {
		d.delivered = target
	}
	if d.delivered > len(ranked) {
		d.delivered = len(ranked)
	}

	d.advanceLocked()
	d.emitLocked()
}

// Cancel marks the delivery superseded and stops the cadence.
func (d *delivery) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.state == DeliveryCancelled {
		return
	}
	d.state = DeliveryCancelled
	if d.cancelTick != nil {
		d.cancelTick()
		d.cancelTick = nil
	}
	logger.Debug("delivery: generation %d cancelled at %d/%d", d.gen, d.delivered, len(d.ranked))
}

// advanceLocked moves the state machine and schedules the next increment
// if more remains. Callers must hold d.mu.
func (d *delivery) advanceLocked() {
	if d.delivered < len(d.ranked) {
		d.state = DeliveryStreaming
		if d.cancelTick == nil {
			d.cancelTick = d.sched.After(deliveryTick, d.step)
		}
		return
	}

	if d.cancelTick != nil {
		d.cancelTick()
		d.cancelTick = nil
	}
	if d.sourcesDone {
		d.state = DeliveryComplete
	}
}

// step appends one increment on the cadence.
func (d *delivery) step() {
	d.mu.Lock()
	if d.state == DeliveryCancelled {
		d.mu.Unlock()
		return
	}
	d.cancelTick = nil

	d.delivered += deliveryIncrement
	if d.delivered > len(d.ranked) {
		d.delivered = len(d.ranked)
	}

	d.advanceLocked()
	d.emitLocked()
}

// emitLocked publishes the current prefix. Takes d.mu held and releases
// it: the snapshot is captured under the lock, the emit callback runs
// without it. Callers must call this last and must not touch d after.
func (d *delivery) emitLocked() {
	prefix := d.ranked[:d.delivered]
	complete := d.sourcesDone && d.delivered == len(d.ranked)
	if complete && d.state != DeliveryCancelled {
		d.state = DeliveryComplete
	}

	gen := d.gen
	status := d.status
	d.mu.Unlock()

	horizontal, vertical := SplitLanes(prefix)
	d.emit(gen, horizontal, vertical, status, complete)
}
