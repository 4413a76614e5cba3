package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"casper-stock-watcher/internal/catalog"
	"casper-stock-watcher/internal/detector"
	"casper-stock-watcher/internal/models"
)

var (
	// ErrAlreadyRunning is returned by Start while a polling loop is active.
	ErrAlreadyRunning = errors.New("scheduler already running")
	// ErrStillStopping is returned by Start while the previous loop, whose
	// Stop outlived the grace period, has not finished draining yet.
	ErrStillStopping = errors.New("scheduler still stopping")
)

// PollEngine is the slice of the polling engine the scheduler drives.
type PollEngine interface {
	PollVariantAcrossHierarchy(ctx context.Context, variant models.Variant, cat *catalog.Catalog) *models.Snapshot
}

// Callbacks receive each completed snapshot and each change report. Either
// may be nil. OnChange is skipped on the first cycle, when there is no
// previous snapshot to compare against.
type Callbacks struct {
	OnSnapshot func(*models.Snapshot)
	OnChange   func([]models.ChangeRecord)
}

// Scheduler drives the polling engine at a fixed interval and feeds
// successive snapshots through the change detector. It owns no business
// logic; a failed cycle is reported through the callbacks and the next
// cycle retries every leaf.
type Scheduler struct {
	engine    PollEngine
	cat       *catalog.Catalog
	stopGrace time.Duration

	mu       sync.Mutex
	running  bool
	stopChan chan struct{}
	cancel   context.CancelFunc
	done     chan struct{}

	snapshotMu   sync.RWMutex
	lastSnapshot *models.Snapshot
}

// New creates a scheduler over the given engine and catalog.
func New(engine PollEngine, cat *catalog.Catalog) *Scheduler {
	return &Scheduler{
		engine:    engine,
		cat:       cat,
		stopGrace: 30 * time.Second,
	}
}

// Start launches the polling loop for one variant. Each cycle polls the
// whole hierarchy, hands the snapshot to OnSnapshot, diffs it against the
// previous cycle's snapshot for OnChange, then sleeps until interval has
// elapsed since the cycle began. A cycle that runs longer than the
// interval is followed immediately by the next one, never overlapped.
func (s *Scheduler) Start(variant models.Variant, interval time.Duration, callbacks Callbacks) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return ErrAlreadyRunning
	}

	// A Stop that outlived its grace period leaves the old loop draining in
	// the background. Refuse to start a second loop beside it; the caller
	// can retry once the old one has exited.
	if s.done != nil {
		select {
		case <-s.done:
		default:
			return ErrStillStopping
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.running = true
	s.stopChan = make(chan struct{})
	s.cancel = cancel
	s.done = make(chan struct{})

	slog.Info("Starting poll scheduler",
		"variant", variant.ID,
		"interval", interval)

	go s.run(ctx, variant, interval, callbacks, s.stopChan, s.done)
	return nil
}

// Stop signals cancellation and waits for the loop to exit. In-flight leaf
// calls are cut off through the poll context and recorded as cancelled;
// the wait is bounded by the stop grace period. If the loop is still
// draining when the grace runs out, Start reports ErrStillStopping until
// it has exited.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	stopChan, cancel, done := s.stopChan, s.cancel, s.done
	s.running = false
	s.mu.Unlock()

	slog.Info("Stopping poll scheduler")
	close(stopChan)
	cancel()

	select {
	case <-done:
		slog.Info("Poll scheduler stopped")
	case <-time.After(s.stopGrace):
		slog.Warn("Poll scheduler did not stop within grace period",
			"grace", s.stopGrace)
	}
}

// IsRunning reports whether a polling loop is active.
func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// LatestSnapshot returns the most recent snapshot, or nil before the first
// cycle completes.
func (s *Scheduler) LatestSnapshot() *models.Snapshot {
	s.snapshotMu.RLock()
	defer s.snapshotMu.RUnlock()
	return s.lastSnapshot
}

func (s *Scheduler) run(ctx context.Context, variant models.Variant, interval time.Duration, callbacks Callbacks, stopChan <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	var previous *models.Snapshot
	cycle := 0

	for {
		cycle++
		began := time.Now()

		snapshot := s.engine.PollVariantAcrossHierarchy(ctx, variant, s.cat)

		s.snapshotMu.Lock()
		s.lastSnapshot = snapshot
		s.snapshotMu.Unlock()

		if callbacks.OnSnapshot != nil {
			callbacks.OnSnapshot(snapshot)
		}

		if previous != nil {
			records, err := detector.Diff(previous, snapshot)
			if err != nil {
				slog.Error("Snapshot diff failed", "cycle", cycle, "error", err)
			} else if callbacks.OnChange != nil {
				callbacks.OnChange(records)
			}
		}
		previous = snapshot

		// Sleep the remainder of the interval measured from the cycle
		// start, so a slow poll does not stack delay on top of it.
		remaining := interval - time.Since(began)
		if remaining < 0 {
			remaining = 0
		}
		select {
		case <-stopChan:
			return
		case <-ctx.Done():
			return
		case <-time.After(remaining):
		}
	}
}
