// Package audit records lock changes for later review. A Recorder listens on
// the edit-lock notifier and writes one Event per change to a Store.
package audit

import (
	"context"
	"time"
)

// Store defines the interface for audit persistence.
type Store interface {
	// Log records an audit event.
	Log(ctx context.Context, event Event) error

	// Query retrieves audit events matching the filter, newest first.
	Query(ctx context.Context, filter QueryFilter) ([]Event, error)

	// Breakdown returns event counts grouped by a dimension.
	Breakdown(ctx context.Context, filter BreakdownFilter) ([]BreakdownEntry, error)

	// Cleanup removes events recorded before the cutoff.
	Cleanup(ctx context.Context, before time.Time) error

	// Close releases resources.
	Close() error
}

// Event represents one lock change.
type Event struct {
	ID              string    `json:"id"`
	Timestamp       time.Time `json:"timestamp"`
	DashboardID     int64     `json:"dashboard_id"`
	Kind            Kind      `json:"kind"`
	OwnerID         string    `json:"owner_id,omitempty"`
	OwnerName       string    `json:"owner_name,omitempty"`
	ConnectionID    string    `json:"connection_id,omitempty"`
	PreviousOwnerID string    `json:"previous_owner_id,omitempty"`
}

// QueryFilter defines criteria for querying audit events.
type QueryFilter struct {
	StartTime   *time.Time
	EndTime     *time.Time
	DashboardID *int64
	OwnerID     string
	Kind        Kind
	Limit       int
	Offset      int
}
