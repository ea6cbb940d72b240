package editlock

import (
	"fmt"
	"log/slog"
	"sync"
)

// Handler receives lock changes. Handlers run synchronously on the
// goroutine that committed the change and must not block.
type Handler func(Change)

// Subscription identifies a registered Handler.
type Subscription uint64

type subscriber struct {
	id      Subscription
	handler Handler
}

// Notifier multicasts lock changes to its subscribers. A handler that
// panics is logged and skipped; the remaining handlers still run.
type Notifier struct {
	mu     sync.RWMutex
	subs   []subscriber
	nextID Subscription
}

// NewNotifier creates a Notifier with no subscribers.
func NewNotifier() *Notifier {
	return &Notifier{}
}

// Subscribe registers h and returns a handle for Unsubscribe.
func (n *Notifier) Subscribe(h Handler) Subscription {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.nextID++
	subs := make([]subscriber, len(n.subs), len(n.subs)+1)
	copy(subs, n.subs)
	n.subs = append(subs, subscriber{id: n.nextID, handler: h})
	return n.nextID
}

// Unsubscribe removes the handler registered under s. Unknown or already
// removed handles are ignored.
func (n *Notifier) Unsubscribe(s Subscription) {
	n.mu.Lock()
	defer n.mu.Unlock()

	subs := make([]subscriber, 0, len(n.subs))
	for _, sub := range n.subs {
		if sub.id != s {
			subs = append(subs, sub)
		}
	}
	n.subs = subs
}

// Len returns the number of registered handlers.
func (n *Notifier) Len() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.subs)
}

// Publish delivers c to every handler registered at the time of the call.
func (n *Notifier) Publish(c Change) {
	n.mu.RLock()
	subs := n.subs
	n.mu.RUnlock()

	for _, sub := range subs {
		if err := deliver(sub.handler, c); err != nil {
			slog.Error("editlock: subscriber failed",
				"subscription", uint64(sub.id),
				"dashboard_id", c.DashboardID,
				"reason", string(c.Reason),
				"error", err,
			)
		}
	}
}

// deliver calls h, converting a panic into an error.
func deliver(h Handler, c Change) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panic: %v", r)
		}
	}()
	h(c)
	return nil
}
