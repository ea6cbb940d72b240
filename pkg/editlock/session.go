package editlock

import "sync"

// Identity is who a Session acts for.
type Identity struct {
	UserID       string
	UserName     string
	ConnectionID string
}

// SessionState is a point-in-time view of a Session.
type SessionState struct {
	Identity

	// Focused reports whether DashboardID is meaningful.
	Focused     bool
	DashboardID int64

	// Lock is the last known record for the focused dashboard, nil when
	// unlocked or unknown.
	Lock *Record

	EditMode bool
}

// Session adapts one client connection onto a Registry. It tracks the
// dashboard the client is looking at, holds at most one lock, and drops out
// of edit mode when a change event shows the lock went to someone else.
//
// Calls from the owning client are serialized; change events may arrive
// concurrently from any goroutine.
type Session struct {
	registry *Registry
	id       Identity
	sub      Subscription

	// op serializes client calls. It is never taken by the event handler,
	// so registry calls made while holding it can deliver events back to
	// this session without deadlocking.
	op sync.Mutex

	mu        sync.Mutex
	focused   bool
	dashboard int64
	cached    *Record
	seq       uint64
	editing   bool
	closed    bool
	listeners []func(bool)
}

// NewSession creates a Session for id and subscribes it to the registry's
// notifier. Close must be called when the connection goes away.
func NewSession(r *Registry, id Identity) *Session {
	s := &Session{
		registry: r,
		id:       id,
	}
	s.sub = r.Notifier().Subscribe(s.handleChange)
	return s
}

// Identity returns who the session acts for.
func (s *Session) Identity() Identity {
	return s.id
}

// OnEditModeChanged registers fn to be called after every edit-mode flip,
// including ones caused by losing the lock. fn must not call back into the
// session.
func (s *Session) OnEditModeChanged(fn func(editing bool)) {
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}

// State returns a snapshot of the session.
func (s *Session) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return SessionState{
		Identity:    s.id,
		Focused:     s.focused,
		DashboardID: s.dashboard,
		Lock:        copyRecord(s.cached),
		EditMode:    s.editing,
	}
}

// EditMode reports whether the session currently holds edit mode.
func (s *Session) EditMode() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.editing
}

// Focus switches the session to dashboardID. A lock held on the previously
// focused dashboard is released first.
func (s *Session) Focus(dashboardID int64) error {
	s.op.Lock()
	defer s.op.Unlock()

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrSessionClosed
	}
	prev, refocus := s.dashboard, s.focused && s.dashboard == dashboardID
	wasEditing := s.editing && s.focused && !refocus
	s.mu.Unlock()

	if refocus {
		s.refresh(dashboardID)
		return nil
	}

	if wasEditing {
		s.registry.Release(prev, s.id.UserID)
		s.setEditing(false)
	}

	// Focus first so events committed after the snapshot read below are not
	// discarded as belonging to another dashboard.
	s.mu.Lock()
	s.focused = true
	s.dashboard = dashboardID
	s.cached = nil
	s.seq = 0
	s.mu.Unlock()

	s.refresh(dashboardID)
	return nil
}

// refresh reloads the cached record for dashboardID unless a newer change
// already arrived through handleChange.
func (s *Session) refresh(dashboardID int64) {
	rec, seq := s.registry.Snapshot(dashboardID)

	s.mu.Lock()
	if s.focused && s.dashboard == dashboardID && seq >= s.seq {
		s.seq = seq
		s.cached = rec
	}
	s.mu.Unlock()
}

// TryToggleEdit enters or leaves edit mode on the focused dashboard.
//
// Entering uses TryAcquire, or ForceAcquire when force is set, and reports
// false when the lock is held by someone else. Leaving always releases the
// session's lock and reports true.
func (s *Session) TryToggleEdit(force bool) (bool, error) {
	s.op.Lock()
	defer s.op.Unlock()

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return false, ErrSessionClosed
	}
	if !s.focused {
		s.mu.Unlock()
		return false, ErrNoFocus
	}
	dashboardID, editing := s.dashboard, s.editing
	s.mu.Unlock()

	if editing {
		s.registry.Release(dashboardID, s.id.UserID)
		s.setEditing(false)
		return true, nil
	}

	if force {
		s.registry.ForceAcquire(dashboardID, s.id.UserID, s.id.UserName, s.id.ConnectionID)
	} else if !s.registry.TryAcquire(dashboardID, s.id.UserID, s.id.UserName, s.id.ConnectionID) {
		return false, nil
	}

	// The acquire event has already been delivered to handleChange. If a
	// later change displaced us in the meantime, the cache says so.
	s.mu.Lock()
	held := s.cached != nil && s.cached.OwnerID == s.id.UserID
	var notify []func(bool)
	if held && !s.editing {
		s.editing = true
		notify = s.listeners
	}
	s.mu.Unlock()

	fire(notify, true)
	return held, nil
}

// Heartbeat refreshes the session's lock while in edit mode.
func (s *Session) Heartbeat() error {
	s.op.Lock()
	defer s.op.Unlock()

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrSessionClosed
	}
	dashboardID, editing := s.dashboard, s.editing && s.focused
	s.mu.Unlock()

	if editing {
		s.registry.UpdateActivity(dashboardID, s.id.UserID)
	}
	return nil
}

// Close unsubscribes the session and releases its lock if it still holds
// edit mode. Calling Close more than once is harmless.
func (s *Session) Close() error {
	s.op.Lock()
	defer s.op.Unlock()

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	dashboardID, editing := s.dashboard, s.editing && s.focused
	s.editing = false
	s.listeners = nil
	s.mu.Unlock()

	s.registry.Notifier().Unsubscribe(s.sub)
	if editing {
		s.registry.Release(dashboardID, s.id.UserID)
	}
	return nil
}

// handleChange applies a registry change to the session's cache.
func (s *Session) handleChange(c Change) {
	s.mu.Lock()
	if s.closed || !s.focused || c.DashboardID != s.dashboard || c.Seq <= s.seq {
		s.mu.Unlock()
		return
	}
	s.seq = c.Seq
	s.cached = copyRecord(c.Record)

	var notify []func(bool)
	if s.editing && (c.Record == nil || c.Record.OwnerID != s.id.UserID) {
		s.editing = false
		notify = s.listeners
	}
	s.mu.Unlock()

	fire(notify, false)
}

func (s *Session) setEditing(v bool) {
	s.mu.Lock()
	var notify []func(bool)
	if s.editing != v {
		s.editing = v
		notify = s.listeners
	}
	s.mu.Unlock()

	fire(notify, v)
}

func fire(listeners []func(bool), editing bool) {
	for _, fn := range listeners {
		fn(editing)
	}
}
