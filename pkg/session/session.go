// Package session hosts one edit-lock session per client connection.
// Each browser tab opens its own connection and is addressed by the
// connection ID handed out by Manager.Open.
package session

import (
	"errors"
	"time"

	"github.com/txn2/homedash/pkg/editlock"
)

var (
	// ErrNotFound is returned for unknown or expired connection IDs.
	ErrNotFound = errors.New("session not found")

	// ErrForbidden is returned when a user drives a session opened by
	// someone else.
	ErrForbidden = errors.New("session ownership mismatch")
)

// Entry is a hosted session.
type Entry struct {
	// ID is the connection ID.
	ID string

	// UserID identifies the user that opened the session.
	UserID string

	// CreatedAt is when the session was opened.
	CreatedAt time.Time

	// Lock is the edit-lock adapter for this connection.
	Lock *editlock.Session

	lastActive time.Time
}

// Info is a serializable view of an Entry.
type Info struct {
	ID           string    `json:"connection_id"`
	UserID       string    `json:"user_id"`
	UserName     string    `json:"user_name"`
	CreatedAt    time.Time `json:"created_at"`
	LastActiveAt time.Time `json:"last_active_at"`
	DashboardID  *int64    `json:"dashboard_id,omitempty"`
	EditMode     bool      `json:"edit_mode"`
	Lock         *LockInfo `json:"lock,omitempty"`
}

// LockInfo describes the last known holder of the focused dashboard.
type LockInfo struct {
	OwnerID      string    `json:"owner_id"`
	OwnerName    string    `json:"owner_name"`
	AcquiredAt   time.Time `json:"acquired_at"`
	LastActivity time.Time `json:"last_activity"`
}

func newInfo(e *Entry, lastActive time.Time) Info {
	st := e.Lock.State()
	info := Info{
		ID:           e.ID,
		UserID:       st.UserID,
		UserName:     st.UserName,
		CreatedAt:    e.CreatedAt,
		LastActiveAt: lastActive,
		EditMode:     st.EditMode,
	}
	if st.Focused {
		id := st.DashboardID
		info.DashboardID = &id
	}
	if st.Lock != nil {
		info.Lock = &LockInfo{
			OwnerID:      st.Lock.OwnerID,
			OwnerName:    st.Lock.OwnerName,
			AcquiredAt:   st.Lock.AcquiredAt,
			LastActivity: st.Lock.LastActivity,
		}
	}
	return info
}
