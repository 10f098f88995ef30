package countdown

import (
	"context"
	"errors"
	"time"
)

// DefaultInterval is the recompute cadence of the invitation page.
const DefaultInterval = 250 * time.Millisecond

// Engine recomputes the snapshot toward an immutable target on a fixed tick.
type Engine struct {
	target   time.Time
	interval time.Duration
	now      func() time.Time
}

type Option func(*Engine)

// WithInterval overrides the tick interval.
func WithInterval(d time.Duration) Option {
	return func(e *Engine) { e.interval = d }
}

// WithClock replaces time.Now. Tests only.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// New creates an engine with an immutable target.
func New(target time.Time, opts ...Option) (*Engine, error) {
	e := &Engine{
		target:   target,
		interval: DefaultInterval,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}

	if target.IsZero() {
		return nil, errors.New("countdown: target required")
	}
	if e.interval <= 0 {
		return nil, errors.New("countdown: interval must be > 0")
	}
	if e.now == nil {
		return nil, errors.New("countdown: clock required")
	}
	return e, nil
}

func (e *Engine) Target() time.Time { return e.target }

func (e *Engine) Interval() time.Duration { return e.interval }

// Snapshot computes against the engine clock.
func (e *Engine) Snapshot() Snapshot {
	return Compute(e.target, e.now())
}

// Run emits a snapshot immediately and then one per tick until ctx is done.
// A delayed tick is not compensated; the next one recomputes from absolute time.
func (e *Engine) Run(ctx context.Context, out chan<- Snapshot) {
	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()

	if !e.emit(ctx, out) {
		return
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !e.emit(ctx, out) {
				return
			}
		}
	}
}

// Stream runs the engine on its own goroutine. The returned channel is
// closed once ctx is cancelled and the ticker has been stopped.
func (e *Engine) Stream(ctx context.Context) <-chan Snapshot {
	out := make(chan Snapshot, 1)
	go func() {
		defer close(out)
		e.Run(ctx, out)
	}()
	return out
}

func (e *Engine) emit(ctx context.Context, out chan<- Snapshot) bool {
	select {
	case <-ctx.Done():
		return false
	case out <- e.Snapshot():
		return true
	}
}
