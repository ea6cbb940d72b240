package audit

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/txn2/homedash/pkg/editlock"
)

const (
	// DefaultBufferSize is the number of events queued for the store.
	DefaultBufferSize = 256

	// writeTimeout bounds a single store write.
	writeTimeout = 5 * time.Second
)

// RecorderConfig configures a Recorder.
type RecorderConfig struct {
	Store      Store
	Notifier   *editlock.Notifier
	Clock      editlock.Clock
	BufferSize int
}

// Recorder turns lock changes into audit events. Notifier dispatch is
// synchronous, so events are queued and written by a single goroutine;
// when the queue is full the event is dropped.
type Recorder struct {
	store    Store
	notifier *editlock.Notifier
	clock    editlock.Clock

	mu      sync.RWMutex
	queue   chan Event
	closed  bool
	sub     editlock.Subscription
	started bool

	dropped atomic.Uint64
	done    chan struct{}
}

// NewRecorder creates a recorder. Start must be called to subscribe.
func NewRecorder(cfg RecorderConfig) *Recorder {
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = DefaultBufferSize
	}
	if cfg.Clock == nil {
		cfg.Clock = editlock.SystemClock{}
	}
	return &Recorder{
		store:    cfg.Store,
		notifier: cfg.Notifier,
		clock:    cfg.Clock,
		queue:    make(chan Event, cfg.BufferSize),
		done:     make(chan struct{}),
	}
}

// Start subscribes to the notifier and starts the writer.
func (r *Recorder) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.started || r.closed {
		return
	}
	r.started = true
	r.sub = r.notifier.Subscribe(r.handle)
	go r.drain()
}

func (r *Recorder) handle(c editlock.Change) {
	event := NewEvent(c, r.clock.Now())

	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.closed {
		return
	}
	select {
	case r.queue <- event:
	default:
		r.dropped.Add(1)
		slog.Warn("audit: queue full, event dropped",
			"dashboard_id", event.DashboardID, "kind", event.Kind)
	}
}

func (r *Recorder) drain() {
	defer close(r.done)
	for event := range r.queue {
		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		if err := r.store.Log(ctx, event); err != nil {
			slog.Error("audit: failed to log event",
				"dashboard_id", event.DashboardID, "kind", event.Kind, "error", err)
		}
		cancel()
	}
}

// Dropped returns how many events were discarded because the queue was full.
func (r *Recorder) Dropped() uint64 {
	return r.dropped.Load()
}

// Close unsubscribes, flushes queued events and waits for the writer.
// Calling Close more than once is harmless.
func (r *Recorder) Close() error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true
	started := r.started
	close(r.queue)
	r.mu.Unlock()

	if started {
		r.notifier.Unsubscribe(r.sub)
		<-r.done
	}
	return nil
}
