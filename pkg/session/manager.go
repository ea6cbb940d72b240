package session

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/txn2/homedash/pkg/editlock"
)

// DefaultIdleTimeout is how long a connection may go untouched before
// Cleanup closes it.
const DefaultIdleTimeout = 30 * time.Minute

// ManagerConfig configures a Manager.
type ManagerConfig struct {
	Registry    *editlock.Registry
	IdleTimeout time.Duration

	// Clock defaults to the registry's clock.
	Clock editlock.Clock
}

// Manager owns the sessions of all connected clients.
type Manager struct {
	registry *editlock.Registry
	idle     time.Duration
	clock    editlock.Clock

	mu      sync.Mutex
	entries map[string]*Entry

	cancel context.CancelFunc
	done   chan struct{}
}

// NewManager creates a session manager.
func NewManager(cfg ManagerConfig) *Manager {
	if cfg.IdleTimeout <= 0 {
		cfg.IdleTimeout = DefaultIdleTimeout
	}
	var clock editlock.Clock = cfg.Clock
	if clock == nil {
		clock = cfg.Registry
	}
	return &Manager{
		registry: cfg.Registry,
		idle:     cfg.IdleTimeout,
		clock:    clock,
		entries:  make(map[string]*Entry),
	}
}

// Open creates a session for the given user and returns it.
func (m *Manager) Open(userID, userName string) *Entry {
	id := uuid.NewString()
	now := m.clock.Now()
	e := &Entry{
		ID:        id,
		UserID:    userID,
		CreatedAt: now,
		Lock: editlock.NewSession(m.registry, editlock.Identity{
			UserID:       userID,
			UserName:     userName,
			ConnectionID: id,
		}),
		lastActive: now,
	}

	m.mu.Lock()
	m.entries[id] = e
	m.mu.Unlock()

	slog.Debug("session: opened", "connection_id", id, "user_id", userID)
	return e
}

// Get returns the session for id. Returns nil, false if not found or idle
// past the timeout.
func (m *Manager) Get(id string) (*Entry, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[id]
	if !ok || m.expired(e, m.clock.Now()) {
		return nil, false
	}
	return e, true
}

// Lookup returns the session for id if it was opened by userID.
func (m *Manager) Lookup(id, userID string) (*Entry, error) {
	e, ok := m.Get(id)
	if !ok {
		return nil, ErrNotFound
	}
	if e.UserID != userID {
		return nil, ErrForbidden
	}
	return e, nil
}

// Touch marks the session as active.
func (m *Manager) Touch(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[id]
	if !ok {
		return ErrNotFound
	}
	e.lastActive = m.clock.Now()
	return nil
}

// Info returns a serializable view of the session.
func (m *Manager) Info(e *Entry) Info {
	m.mu.Lock()
	last := e.lastActive
	m.mu.Unlock()
	return newInfo(e, last)
}

// CloseSession closes the session, releasing any lock it holds.
func (m *Manager) CloseSession(id string) error {
	m.mu.Lock()
	e, ok := m.entries[id]
	delete(m.entries, id)
	m.mu.Unlock()

	if !ok {
		return ErrNotFound
	}
	if err := e.Lock.Close(); err != nil {
		return fmt.Errorf("closing session %s: %w", id, err)
	}
	slog.Debug("session: closed", "connection_id", id)
	return nil
}

// List returns all active sessions ordered by creation time.
func (m *Manager) List() []Info {
	m.mu.Lock()
	now := m.clock.Now()
	type pending struct {
		e    *Entry
		last time.Time
	}
	live := make([]pending, 0, len(m.entries))
	for _, e := range m.entries {
		if !m.expired(e, now) {
			live = append(live, pending{e: e, last: e.lastActive})
		}
	}
	m.mu.Unlock()

	result := make([]Info, 0, len(live))
	for _, p := range live {
		result = append(result, newInfo(p.e, p.last))
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID < result[j].ID
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result
}

// Len returns the number of hosted sessions, including idle ones not yet
// cleaned up.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// Cleanup closes sessions idle past the timeout and returns how many were
// closed.
func (m *Manager) Cleanup() int {
	m.mu.Lock()
	now := m.clock.Now()
	var stale []*Entry
	for id, e := range m.entries {
		if m.expired(e, now) {
			stale = append(stale, e)
			delete(m.entries, id)
		}
	}
	m.mu.Unlock()

	// Closing releases locks, which publishes events; do it outside mu.
	for _, e := range stale {
		if err := e.Lock.Close(); err != nil {
			slog.Warn("session: close failed", "connection_id", e.ID, "error", err)
			continue
		}
		slog.Info("session: idle session closed", "connection_id", e.ID, "user_id", e.UserID)
	}
	return len(stale)
}

func (m *Manager) expired(e *Entry, now time.Time) bool {
	return now.Sub(e.lastActive) > m.idle
}

// StartCleanupRoutine starts a background goroutine that periodically closes
// idle sessions. The goroutine is stopped when Close is called.
func (m *Manager) StartCleanupRoutine(interval time.Duration) {
	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.done = make(chan struct{})

	go func() {
		defer close(m.done)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.Cleanup()
			}
		}
	}()
}

// Close stops the cleanup goroutine and closes every session.
// It is safe to call Close even if StartCleanupRoutine was never called.
func (m *Manager) Close() error {
	if m.cancel != nil {
		m.cancel()
		<-m.done
		m.cancel = nil
	}

	m.mu.Lock()
	all := make([]*Entry, 0, len(m.entries))
	for _, e := range m.entries {
		all = append(all, e)
	}
	m.entries = make(map[string]*Entry)
	m.mu.Unlock()

	for _, e := range all {
		_ = e.Lock.Close()
	}
	return nil
}
