package editlock

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// slot guards one dashboard's record. Mutators hold pub from before the
// commit until Publish returns, which keeps deliveries for one dashboard in
// commit order. Lock order is pub, then mu.
//
// A slot emptied of its record may be pruned; it is then marked dead and
// anyone still holding it retries with a fresh slot.
type slot struct {
	pub  sync.Mutex
	mu   sync.Mutex
	rec  *Record
	seq  uint64
	dead bool
}

// RegistryConfig configures a Registry.
type RegistryConfig struct {
	// Notifier receives every committed transition. A new Notifier is
	// created when nil.
	Notifier *Notifier

	// Clock defaults to SystemClock.
	Clock Clock

	// Metrics is optional.
	Metrics *Metrics
}

// Registry is the single source of truth for dashboard lock ownership.
// Mutations on one dashboard are linearizable; unrelated dashboards never
// contend on a shared mutex.
//
// Handlers subscribed to the notifier may read the registry but must not
// mutate the dashboard whose change they are handling.
type Registry struct {
	slots    sync.Map // int64 -> *slot
	seq      atomic.Uint64
	notifier *Notifier
	clock    Clock
	metrics  *Metrics
}

// NewRegistry creates an empty Registry.
func NewRegistry(cfg RegistryConfig) *Registry {
	if cfg.Notifier == nil {
		cfg.Notifier = NewNotifier()
	}
	if cfg.Clock == nil {
		cfg.Clock = SystemClock{}
	}
	return &Registry{
		notifier: cfg.Notifier,
		clock:    cfg.Clock,
		metrics:  cfg.Metrics,
	}
}

// Notifier returns the notifier that receives this registry's changes.
func (r *Registry) Notifier() *Notifier {
	return r.notifier
}

// Now returns the registry clock's current time.
func (r *Registry) Now() time.Time {
	return r.clock.Now()
}

// lockSlot returns the live slot for dashboardID, creating it if needed,
// with pub and mu held.
func (r *Registry) lockSlot(dashboardID int64) *slot {
	for {
		v, _ := r.slots.LoadOrStore(dashboardID, &slot{})
		s := v.(*slot)
		s.pub.Lock()
		s.mu.Lock()
		if !s.dead {
			return s
		}
		s.mu.Unlock()
		s.pub.Unlock()
	}
}

// lockExisting is lockSlot without creation. It returns nil when the
// dashboard has no slot.
func (r *Registry) lockExisting(dashboardID int64) *slot {
	for {
		v, ok := r.slots.Load(dashboardID)
		if !ok {
			return nil
		}
		s := v.(*slot)
		s.pub.Lock()
		s.mu.Lock()
		if !s.dead {
			return s
		}
		s.mu.Unlock()
		s.pub.Unlock()
	}
}

// peek returns the slot for dashboardID without creating one.
func (r *Registry) peek(dashboardID int64) *slot {
	if v, ok := r.slots.Load(dashboardID); ok {
		return v.(*slot)
	}
	return nil
}

// Current returns the record stored for dashboardID, live or stale.
func (r *Registry) Current(dashboardID int64) (Record, bool) {
	rec, _ := r.Snapshot(dashboardID)
	if rec == nil {
		return Record{}, false
	}
	return *rec, true
}

// Snapshot returns a copy of the stored record, nil when unlocked, together
// with the sequence number of the last change on dashboardID. Comparing it
// with Change.Seq tells whether an event is older than the snapshot.
func (r *Registry) Snapshot(dashboardID int64) (*Record, uint64) {
	s := r.peek(dashboardID)
	if s == nil {
		return nil, 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyRecord(s.rec), s.seq
}

// TryAcquire takes the lock on dashboardID for ownerID. It succeeds when the
// dashboard is unlocked, already held by ownerID, or held by a stale record;
// the stored record is then replaced wholesale.
func (r *Registry) TryAcquire(dashboardID int64, ownerID, ownerName, connectionID string) bool {
	_, ok := r.Acquire(dashboardID, ownerID, ownerName, connectionID)
	return ok
}

// Acquire is TryAcquire returning the record it installed. When the lock is
// denied it returns the live record that blocked it.
func (r *Registry) Acquire(dashboardID int64, ownerID, ownerName, connectionID string) (Record, bool) {
	s := r.lockSlot(dashboardID)
	defer s.pub.Unlock()
	now := r.clock.Now()

	if prev := s.rec; prev != nil && prev.OwnerID != ownerID && prev.IsLive(now) {
		holder := *prev
		s.mu.Unlock()
		r.metrics.acquireDenied()
		return holder, false
	}
	change := r.replace(s, dashboardID, ownerID, ownerName, connectionID, now)
	s.mu.Unlock()

	r.metrics.acquireGranted()
	r.notifier.Publish(change)
	return *change.Record, true
}

// ForceAcquire replaces any record on dashboardID with one owned by ownerID.
func (r *Registry) ForceAcquire(dashboardID int64, ownerID, ownerName, connectionID string) Record {
	s := r.lockSlot(dashboardID)
	defer s.pub.Unlock()
	now := r.clock.Now()

	change := r.replace(s, dashboardID, ownerID, ownerName, connectionID, now)
	s.mu.Unlock()

	r.metrics.acquireForced()
	r.notifier.Publish(change)
	return *change.Record
}

// replace installs a fresh record in s. The caller holds s.mu.
func (r *Registry) replace(s *slot, dashboardID int64, ownerID, ownerName, connectionID string, now time.Time) Change {
	prev := s.rec
	s.seq = r.seq.Add(1)
	s.rec = &Record{
		DashboardID:  dashboardID,
		OwnerID:      ownerID,
		OwnerName:    ownerName,
		ConnectionID: connectionID,
		AcquiredAt:   now,
		LastActivity: now,
		Version:      s.seq,
	}

	reason := ReasonAcquired
	if prev != nil && prev.OwnerID != ownerID && prev.IsLive(now) {
		reason = ReasonTakenOver
	}
	return Change{
		DashboardID: dashboardID,
		Record:      copyRecord(s.rec),
		Previous:    copyRecord(prev),
		Reason:      reason,
		Seq:         s.seq,
	}
}

// Release removes the lock on dashboardID if ownerID holds it.
func (r *Registry) Release(dashboardID int64, ownerID string) bool {
	s := r.lockExisting(dashboardID)
	if s == nil {
		return false
	}
	defer s.pub.Unlock()

	if s.rec == nil || s.rec.OwnerID != ownerID {
		s.mu.Unlock()
		return false
	}
	change := r.vacate(s, dashboardID, ReasonReleased)
	s.mu.Unlock()

	r.metrics.released()
	r.notifier.Publish(change)
	return true
}

// Remove deletes the record on dashboardID only if it is still the record
// identified by expected.Version and it is still stale. It reports whether a
// record was removed.
func (r *Registry) Remove(dashboardID int64, expected Record) bool {
	s := r.lockExisting(dashboardID)
	if s == nil {
		return false
	}
	defer s.pub.Unlock()
	now := r.clock.Now()

	if s.rec == nil || s.rec.Version != expected.Version || s.rec.IsLive(now) {
		s.mu.Unlock()
		return false
	}
	change := r.vacate(s, dashboardID, ReasonExpired)
	s.mu.Unlock()

	r.metrics.expired()
	r.notifier.Publish(change)
	return true
}

// vacate removes the record in s. The caller holds s.mu.
func (r *Registry) vacate(s *slot, dashboardID int64, reason Reason) Change {
	prev := s.rec
	s.rec = nil
	s.seq = r.seq.Add(1)
	return Change{
		DashboardID: dashboardID,
		Previous:    copyRecord(prev),
		Reason:      reason,
		Seq:         s.seq,
	}
}

// UpdateActivity refreshes the heartbeat of ownerID's lock on dashboardID.
// It does nothing when the lock is absent or held by someone else, and it
// never publishes a change.
func (r *Registry) UpdateActivity(dashboardID int64, ownerID string) {
	s := r.peek(dashboardID)
	if s == nil {
		return
	}
	now := r.clock.Now()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.rec != nil && s.rec.OwnerID == ownerID {
		s.rec.LastActivity = now
	}
}

// IsLockedByOther reports whether a live lock on dashboardID is held by
// someone other than userID.
func (r *Registry) IsLockedByOther(dashboardID int64, userID string) bool {
	rec, ok := r.Current(dashboardID)
	return ok && rec.OwnerID != userID && rec.IsLive(r.clock.Now())
}

// ListLive returns a snapshot of all live locks ordered by dashboard ID.
func (r *Registry) ListLive() []Record {
	now := r.clock.Now()
	return r.collect(func(rec *Record) bool { return rec.IsLive(now) })
}

// Stale returns a snapshot of records that outlived LockTimeout.
func (r *Registry) Stale() []Record {
	now := r.clock.Now()
	return r.collect(func(rec *Record) bool { return !rec.IsLive(now) })
}

func (r *Registry) collect(keep func(*Record) bool) []Record {
	var out []Record
	r.slots.Range(func(_, v any) bool {
		s := v.(*slot)
		s.mu.Lock()
		if s.rec != nil && keep(s.rec) {
			out = append(out, *s.rec)
		}
		s.mu.Unlock()
		return true
	})
	sort.Slice(out, func(i, j int) bool { return out[i].DashboardID < out[j].DashboardID })
	return out
}

// Prune drops the slots of dashboards that hold no record and returns how
// many were dropped. Sequence numbers come from a registry-wide counter, so
// a dashboard's next change still orders after everything seen before.
func (r *Registry) Prune() int {
	pruned := 0
	r.slots.Range(func(k, v any) bool {
		s := v.(*slot)
		s.pub.Lock()
		s.mu.Lock()
		if s.rec == nil && !s.dead {
			s.dead = true
			r.slots.CompareAndDelete(k, s)
			pruned++
		}
		s.mu.Unlock()
		s.pub.Unlock()
		return true
	})
	return pruned
}

func copyRecord(rec *Record) *Record {
	if rec == nil {
		return nil
	}
	c := *rec
	return &c
}
