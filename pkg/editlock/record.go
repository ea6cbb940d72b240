// Package editlock coordinates which connected user may edit a dashboard's
// layout. A Registry holds at most one lease per dashboard, a Reaper evicts
// leases whose holder stopped heartbeating, a Notifier fans lock changes out
// to subscribers, and a Session adapts one client connection onto all three.
package editlock

import "time"

// LockTimeout is how long a lease stays live without a heartbeat.
const LockTimeout = 5 * time.Minute

// DefaultReapInterval is how often the Reaper scans for stale leases.
const DefaultReapInterval = 60 * time.Second

// Record is one dashboard's current edit ownership. Records are handed out
// by value; mutating a returned Record never changes registry state.
type Record struct {
	// DashboardID identifies the locked dashboard.
	DashboardID int64 `json:"dashboard_id"`

	// OwnerID is the opaque identity of the holding user.
	OwnerID string `json:"owner_id"`

	// OwnerName is the holder's display name. Informational only.
	OwnerName string `json:"owner_name"`

	// ConnectionID distinguishes concurrent sessions of the same user.
	ConnectionID string `json:"connection_id"`

	// AcquiredAt is when this record was created.
	AcquiredAt time.Time `json:"acquired_at"`

	// LastActivity is refreshed by heartbeats and decides staleness.
	LastActivity time.Time `json:"last_activity"`

	// Version increases with every committed transition on the dashboard.
	// Heartbeats leave it unchanged.
	Version uint64 `json:"version"`
}

// IsLive reports whether the record has been active within LockTimeout of now.
func (r Record) IsLive(now time.Time) bool {
	return now.Sub(r.LastActivity) <= LockTimeout
}

// ExpiresAt is the instant after which the record becomes stale unless
// refreshed.
func (r Record) ExpiresAt() time.Time {
	return r.LastActivity.Add(LockTimeout)
}

// Reason describes why a lock changed.
type Reason string

// Lock change reasons.
const (
	ReasonAcquired  Reason = "acquired"
	ReasonTakenOver Reason = "taken_over"
	ReasonReleased  Reason = "released"
	ReasonExpired   Reason = "expired"
)

// Change is a committed state transition on one dashboard's lock.
type Change struct {
	DashboardID int64

	// Record is the new state; nil means the dashboard is now unlocked.
	Record *Record

	// Previous is the record that was replaced or removed, if any.
	Previous *Record

	Reason Reason

	// Seq orders changes on the same dashboard. It equals Record.Version
	// when Record is non-nil.
	Seq uint64
}
