package engine

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/jonathan/speedyapply/internal/clock"
	"github.com/jonathan/speedyapply/internal/dom"
	"github.com/jonathan/speedyapply/internal/platform"
)

// DefaultDebounce is the quiet window after the last DOM mutation before a
// re-scan runs.
const DefaultDebounce = 500 * time.Millisecond

// ScanFunc receives the result of every scheduled scan.
type ScanFunc func(rep *Report, err error)

// Scheduler decides when scans of one document run: once after an initial
// delay, again after DOM mutations settle, and on demand. Scans never
// overlap.
type Scheduler struct {
	engine       *Engine
	doc          *dom.Document
	clock        clock.Clock
	debounce     time.Duration
	initialDelay time.Duration
	onScan       ScanFunc
	logger       *slog.Logger

	mu        sync.Mutex
	ctx       context.Context
	timers    []clock.Timer
	debounced clock.Timer
	started   bool
	stopped   bool

	scanMu sync.Mutex
}

// SchedulerOption configures a Scheduler.
type SchedulerOption func(*Scheduler)

// WithSchedulerClock sets the clock timers run on.
func WithSchedulerClock(c clock.Clock) SchedulerOption {
	return func(s *Scheduler) { s.clock = c }
}

// WithDebounce sets the mutation quiet window.
func WithDebounce(d time.Duration) SchedulerOption {
	return func(s *Scheduler) {
		if d > 0 {
			s.debounce = d
		}
	}
}

// WithInitialDelay sets the delay before the first scan on platforms without
// their own delay.
func WithInitialDelay(d time.Duration) SchedulerOption {
	return func(s *Scheduler) { s.initialDelay = d }
}

// OnScan registers the callback that receives every scan result.
func OnScan(fn ScanFunc) SchedulerOption {
	return func(s *Scheduler) { s.onScan = fn }
}

// NewScheduler returns a stopped scheduler for doc.
func NewScheduler(e *Engine, doc *dom.Document, opts ...SchedulerOption) *Scheduler {
	s := &Scheduler{
		engine:   e,
		doc:      doc,
		clock:    clock.Real(),
		debounce: DefaultDebounce,
		logger:   e.logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start schedules the initial scan and begins watching doc for mutations.
// Scans triggered by timers run with ctx. Start is a no-op after the first
// call.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started || s.stopped {
		return
	}
	s.started = true
	s.ctx = ctx

	p := platform.Detect(s.doc.URL())
	delay := platform.InitialDelay(p, s.initialDelay)
	s.timers = append(s.timers, s.clock.AfterFunc(delay, s.run))
	if extra := platform.FollowUpScan(p); extra > 0 {
		s.timers = append(s.timers, s.clock.AfterFunc(delay+extra, s.run))
	}
	s.doc.OnMutation(s.Notify)
	s.logger.Debug("scan scheduler started", "url", s.doc.URL(), "platform", p, "initial_delay", delay)
}

// Notify reports a DOM mutation. The re-scan runs once no further mutation
// has arrived for the debounce window.
func (s *Scheduler) Notify() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started || s.stopped {
		return
	}
	if s.debounced != nil {
		s.debounced.Stop()
	}
	s.debounced = s.clock.AfterFunc(s.debounce, s.run)
}

// FillNow runs a forced scan immediately and returns its result.
func (s *Scheduler) FillNow(ctx context.Context) (*Report, error) {
	s.scanMu.Lock()
	defer s.scanMu.Unlock()
	return s.engine.ScanAndFill(ctx, s.doc, ScanOptions{Force: true})
}

// Stop cancels pending scans. A scan already running completes.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped = true
	for _, t := range s.timers {
		t.Stop()
	}
	if s.debounced != nil {
		s.debounced.Stop()
	}
}

func (s *Scheduler) run() {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	ctx := s.ctx
	s.mu.Unlock()

	s.scanMu.Lock()
	rep, err := s.engine.ScanAndFill(ctx, s.doc, ScanOptions{})
	s.scanMu.Unlock()

	if err != nil {
		s.logger.Warn("scheduled scan failed", "url", s.doc.URL(), "error", err)
	}
	if s.onScan != nil {
		s.onScan(rep, err)
	}
}
