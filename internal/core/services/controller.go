package services

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/itsharex/ReFast-sub000/internal/core/domain"
	"github.com/itsharex/ReFast-sub000/internal/core/ports/driven"
	"github.com/itsharex/ReFast-sub000/internal/core/ports/driving"
	"github.com/itsharex/ReFast-sub000/internal/logger"
)

// Ensure Controller implements the interface.
var _ driving.SearchController = (*Controller)(nil)

// debounceKey is the single debounce slot for query input; every
// keystroke replaces the previous pending fire.
const debounceKey = "query"

// subscriberBuffer is the snapshot channel depth per subscriber.
const subscriberBuffer = 16

// Controller gates when a query is allowed to trigger the pipeline and
// owns the per-generation working state. All downstream completions
// compare their captured working set against the current one before
// mutating anything; a mismatch means the work is stale and discarded.
type Controller struct {
	sched   *Scheduler
	sources []Source
	session *SessionManager
	usage   driven.UsageStore
	history driven.FileHistoryStore

	mu              sync.Mutex
	gen             uint64
	liveInput       string
	lastExecuted    string
	working         *workingSet
	pendingPatterns []domain.SearchResult
	patternsOwner   string
	cancelDebounce  CancelFunc
	closed          bool

	subsMu  sync.Mutex
	subs    map[int]chan driving.Snapshot
	nextSub int
}

// workingSet accumulates one generation's results. It is discarded
// wholesale when the query changes or clears.
type workingSet struct {
	query    domain.Query
	results  []domain.SearchResult
	usage    domain.UsageTable
	pending  int // sources that have not reported yet
	status   domain.SearchStatus
	delivery *delivery
}

// NewController wires the pipeline together. usage and history may be
// nil; ranking then runs without a usage table and launches are not
// recorded.
func NewController(
	sources []Source,
	session *SessionManager,
	usage driven.UsageStore,
	history driven.FileHistoryStore,
) *Controller {
	return &Controller{
		sched:   NewScheduler(),
		sources: sources,
		session: session,
		usage:   usage,
		history: history,
		subs:    make(map[int]chan driving.Snapshot),
	}
}

// OnQueryChange feeds raw input into the pipeline.
func (c *Controller) OnQueryChange(raw string) {
	c.mu.Lock()

	if c.closed {
		c.mu.Unlock()
		return
	}

	trimmed := strings.TrimSpace(raw)
	c.liveInput = trimmed

	// Empty input short-circuits: no debounce, session closed, state
	// cleared, empty snapshot out immediately.
	if trimmed == "" {
		c.clearLocked()
		c.mu.Unlock()
		return
	}

	// Pattern detectors are O(1) pure functions; they run on every raw
	// change, undebounced, and ride along with the next fired generation.
	c.pendingPatterns = DetectPatterns(raw)
	c.patternsOwner = trimmed

	// Duplicate keystroke-driven re-renders are a no-op as long as the
	// previous execution still has results to show. An empty result set
	// despite a query match means something wiped them; re-execute.
	if trimmed == c.lastExecuted && c.working != nil && len(c.working.results) > 0 {
		c.mu.Unlock()
		return
	}

	q := domain.NewQuery(trimmed, 0)
	delay := domain.DebounceFor(q.Length())
	c.mu.Unlock()

	cancel := c.sched.Debounce(debounceKey, delay, func() { c.fire(trimmed) })

	c.mu.Lock()
	c.cancelDebounce = cancel
	c.mu.Unlock()
}

// Cancel tears down the in-flight query.
func (c *Controller) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.liveInput = ""
	c.clearLocked()
}

// Close shuts the controller down.
func (c *Controller) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	if c.working != nil && c.working.delivery != nil {
		c.working.delivery.Cancel()
	}
	c.working = nil
	c.mu.Unlock()

	c.sched.Stop()
	if c.session != nil {
		c.session.CloseCurrent()
	}
	for _, src := range c.sources {
		if closer, ok := src.(io.Closer); ok {
			closer.Close() //nolint:errcheck
		}
	}

	c.subsMu.Lock()
	for id, ch := range c.subs {
		close(ch)
		delete(c.subs, id)
	}
	c.subsMu.Unlock()
	return nil
}

// Subscribe registers a snapshot receiver.
func (c *Controller) Subscribe() (<-chan driving.Snapshot, func()) {
	c.subsMu.Lock()
	defer c.subsMu.Unlock()

	id := c.nextSub
	c.nextSub++
	ch := make(chan driving.Snapshot, subscriberBuffer)
	c.subs[id] = ch

	return ch, func() {
		c.subsMu.Lock()
		defer c.subsMu.Unlock()
		if existing, ok := c.subs[id]; ok {
			close(existing)
			delete(c.subs, id)
		}
	}
}

// RecordLaunch records that the user launched a result. The usage bump
// is applied to the live working set immediately; persistence happens
// asynchronously so launching never blocks on storage.
func (c *Controller) RecordLaunch(ctx context.Context, res domain.SearchResult) error {
	if res.Path == "" {
		return domain.ErrInvalidInput
	}

	c.mu.Lock()
	if c.working != nil {
		normalized := domain.NormalizePath(res.Path)
		if c.working.usage == nil {
			c.working.usage = domain.UsageTable{}
		}
		rec := c.working.usage[normalized]
		rec.Path = res.Path
		rec.UseCount++
		rec.LastUsed = time.Now().Unix()
		c.working.usage[normalized] = rec
	}
	c.mu.Unlock()

	go c.persistLaunch(res)
	return nil
}

// persistLaunch writes the launch to the stores and busts the history
// cache so the next pass sees the fresh entry.
func (c *Controller) persistLaunch(res domain.SearchResult) {
	ctx := context.Background()

	if c.usage != nil {
		if err := c.usage.RecordOpen(ctx, res.Path); err != nil {
			logger.Warn("record open %s: %v", res.Path, err)
		}
	}

	if c.history != nil && launchIsFile(&res) {
		if err := c.history.Add(ctx, res.Path); err != nil {
			logger.Warn("add history %s: %v", res.Path, err)
		}
	}

	for _, src := range c.sources {
		if inv, ok := src.(interface{ Invalidate() }); ok {
			inv.Invalidate()
		}
	}
}

// launchIsFile reports whether the launched result belongs in the file
// history: actual files and folders, not apps, plugins, or patterns.
func launchIsFile(res *domain.SearchResult) bool {
	switch res.Source {
	case domain.SourceFileHistory, domain.SourceIndexService, domain.SourceSystemFolder:
		return true
	default:
		return false
	}
}

// clearLocked cancels all in-flight work and emits an empty, complete
// snapshot for a fresh generation. Callers must hold c.mu.
func (c *Controller) clearLocked() {
	c.gen++
	c.lastExecuted = ""
	c.pendingPatterns = nil
	c.patternsOwner = ""

	if c.cancelDebounce != nil {
		c.cancelDebounce()
		c.cancelDebounce = nil
	}
	if c.working != nil {
		if c.working.delivery != nil {
			c.working.delivery.Cancel()
		}
		c.working = nil
	}
	if c.session != nil {
		c.session.CloseCurrent()
	}

	logger.Debug("controller: cleared, generation %d", c.gen)
	c.publish(c.gen, nil, nil, domain.SearchStatus{
		ExternalAvailable: c.session != nil && c.session.Available(),
	}, true)
}

// fire executes a debounced query.
func (c *Controller) fire(trimmed string) {
	c.mu.Lock()

	// The wait may have outlived the input that scheduled it.
	if c.closed || c.liveInput != trimmed {
		c.mu.Unlock()
		logger.Debug("controller: %q stale at fire, aborted", trimmed)
		return
	}

	c.gen++
	q := domain.NewQuery(trimmed, c.gen)
	c.lastExecuted = trimmed

	if c.working != nil && c.working.delivery != nil {
		c.working.delivery.Cancel()
	}

	ws := &workingSet{
		query:   q,
		usage:   domain.UsageTable{},
		pending: len(c.sources) + 1, // +1 for the external session
		status: domain.SearchStatus{
			IsSearchingExternal: c.session != nil,
			ExternalAvailable:   c.session != nil && c.session.Available(),
		},
		delivery: newDelivery(c.gen, c.sched, c.publish),
	}
	if c.patternsOwner == trimmed {
		ws.results = append(ws.results, c.pendingPatterns...)
	}
	c.working = ws
	c.mu.Unlock()

	logger.Section("Query Pipeline")
	logger.Info("generation %d: %q (debounce fired)", q.Generation, q.Text)

	go c.fanOut(q, ws)
}

// fanOut runs every source concurrently for one generation. Each
// completion merges into the working set and re-runs the aggregation
// pass; the aggregator is a commutative merge over whatever has arrived.
func (c *Controller) fanOut(q domain.Query, ws *workingSet) {
	ctx := context.Background()

	// Usage table first: it feeds the ranking of every pass.
	if c.usage != nil {
		table, err := c.usage.GetAll(ctx)
		if err != nil {
			logger.Warn("usage table load failed: %v", err)
		} else {
			c.mu.Lock()
			if c.working == ws {
				ws.usage = table
			}
			c.mu.Unlock()
		}
	}

	g, gctx := errgroup.WithContext(ctx)

	for _, src := range c.sources {
		g.Go(func() error {
			results, err := src.Search(gctx, q)
			if err != nil {
				// Partial failure: this source contributes nothing
				// for the pass, everything else proceeds.
				logger.Warn("source %s failed: %v", src.Name(), err)
				results = nil
			}
			c.merge(ws, results, true)
			return nil
		})
	}

	g.Go(func() error {
		c.externalSearch(gctx, q, ws)
		return nil
	})

	g.Wait() //nolint:errcheck // sources never return errors
}

// externalSearch drives the session manager for one generation.
func (c *Controller) externalSearch(ctx context.Context, q domain.Query, ws *workingSet) {
	if c.session == nil {
		c.finishExternal(ws, false)
		return
	}

	err := c.session.Search(ctx, q, func(items []domain.IndexItem, total int) {
		results := make([]domain.SearchResult, 0, len(items))
		for _, item := range items {
			results = append(results, indexResult(item))
		}
		c.mu.Lock()
		if c.working == ws {
			ws.status.ExternalTotalCount = total
		}
		c.mu.Unlock()
		c.merge(ws, results, false)
	})

	if err != nil && !errors.Is(err, domain.ErrStaleResult) {
		logger.Warn("external search failed for %q: %v", q.Text, err)
	}
	c.finishExternal(ws, err == nil)
}

// finishExternal marks the external source done for the generation.
func (c *Controller) finishExternal(ws *workingSet, ok bool) {
	c.mu.Lock()
	if c.working != ws {
		c.mu.Unlock()
		return
	}
	ws.status.IsSearchingExternal = false
	ws.status.ExternalAvailable = c.session != nil && c.session.Available()
	if !ok {
		ws.status.ExternalTotalCount = 0
	}
	ws.pending--
	c.passLocked(ws)
}

// indexResult converts an index-service hit into a SearchResult.
func indexResult(item domain.IndexItem) domain.SearchResult {
	name := item.Name
	if name == "" {
		name = item.Path
	}
	return domain.SearchResult{
		Source:         domain.SourceIndexService,
		DisplayName:    name,
		Path:           item.Path,
		NormalizedPath: domain.NormalizePath(item.Path),
		IsFolder:       item.IsFolder,
	}
}

// merge folds one source's results into the working set and re-runs the
// aggregation pass. Arrivals for a superseded generation are discarded.
func (c *Controller) merge(ws *workingSet, results []domain.SearchResult, countsAsDone bool) {
	c.mu.Lock()
	if c.working != ws || c.closed {
		c.mu.Unlock()
		return
	}

	ws.results = append(ws.results, results...)
	if countsAsDone {
		ws.pending--
	}
	c.passLocked(ws)
}

// passLocked runs aggregate/rank over the working set and hands the
// outcome to the delivery machine. Takes c.mu held, releases it.
func (c *Controller) passLocked(ws *workingSet) {
	raw := len(ws.results)
	deduped := Aggregate(ws.results)
	ranked := Rank(ws.query.Text, deduped, ws.usage)
	status := ws.status
	done := ws.pending <= 0
	del := ws.delivery
	c.mu.Unlock()

	logger.Debug("pass: %d raw, %d deduped, sources done: %t", raw, len(ranked), done)
	del.Update(ranked, status, done)
}

// publish fans a snapshot out to subscribers. Delivery is latest-wins:
// a full channel has its oldest pending snapshot dropped rather than
// blocking the pipeline.
func (c *Controller) publish(
	gen uint64, horizontal, vertical []domain.RankedResult,
	status domain.SearchStatus, complete bool,
) {
	snap := driving.Snapshot{
		Generation: gen,
		Horizontal: horizontal,
		Vertical:   vertical,
		Status:     status,
		Complete:   complete,
	}

	c.subsMu.Lock()
	defer c.subsMu.Unlock()

	for _, ch := range c.subs {
		select {
		case ch <- snap:
			continue
		default:
		}
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- snap:
		default:
		}
	}
}
