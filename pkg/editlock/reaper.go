package editlock

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Reaper periodically removes stale locks from a Registry. Removal goes
// through Registry.Remove, so a lock re-acquired between the scan and the
// removal is left alone and never double-reported.
type Reaper struct {
	registry *Registry
	interval time.Duration

	mu      sync.Mutex
	started bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// NewReaper creates a Reaper for r. A non-positive interval selects
// DefaultReapInterval.
func NewReaper(r *Registry, interval time.Duration) *Reaper {
	if interval <= 0 {
		interval = DefaultReapInterval
	}
	return &Reaper{
		registry: r,
		interval: interval,
	}
}

// Interval returns the scan interval.
func (p *Reaper) Interval() time.Duration {
	return p.interval
}

// Tick runs one scan and returns the number of locks removed. Slots left
// empty are pruned afterwards.
func (p *Reaper) Tick() int {
	removed := 0
	for _, rec := range p.registry.Stale() {
		if p.registry.Remove(rec.DashboardID, rec) {
			removed++
			slog.Info("editlock: stale lock reaped",
				"dashboard_id", rec.DashboardID,
				"owner_id", rec.OwnerID,
				"idle", p.registry.Now().Sub(rec.LastActivity).String(),
			)
		}
	}
	if n := p.registry.Prune(); n > 0 {
		slog.Debug("editlock: empty slots pruned", "count", n)
	}
	return removed
}

// safeTick runs Tick, turning a panic into an error so the loop survives.
func (p *Reaper) safeTick() (n int, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("reaper panic: %v", r)
		}
	}()
	return p.Tick(), nil
}

// Start launches the background scan loop. It stops when ctx is cancelled
// or Close is called. Only the first call has an effect.
func (p *Reaper) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.started {
		return
	}
	p.started = true

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	p.cancel = cancel
	p.done = done

	go func() {
		defer close(done)

		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if _, err := p.safeTick(); err != nil {
					slog.Error("editlock: reaper tick failed", "error", err)
				}
			}
		}
	}()
}

// Close stops the scan loop and waits for it to exit. A closed Reaper
// cannot be started again. It is safe to call Close even if Start was never
// called.
func (p *Reaper) Close() error {
	p.mu.Lock()
	p.started = true
	cancel, done := p.cancel, p.done
	p.cancel = nil
	p.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
	return nil
}
