package audit

import (
	"time"

	"github.com/google/uuid"

	"github.com/txn2/homedash/pkg/editlock"
)

// Kind categorizes audit events.
type Kind string

const (
	// KindAcquired is a lock taken on a free or stale dashboard, or renewed
	// by its owner.
	KindAcquired Kind = Kind(editlock.ReasonAcquired)

	// KindTakenOver is a forced acquisition that displaced a live holder.
	KindTakenOver Kind = Kind(editlock.ReasonTakenOver)

	// KindReleased is an owner release.
	KindReleased Kind = Kind(editlock.ReasonReleased)

	// KindExpired is a stale lock removed by the reaper.
	KindExpired Kind = Kind(editlock.ReasonExpired)
)

// ValidKinds is the set of allowed kind values.
var ValidKinds = map[Kind]bool{
	KindAcquired:  true,
	KindTakenOver: true,
	KindReleased:  true,
	KindExpired:   true,
}

// NewEvent converts a lock change into an audit event observed at ts.
// For acquisitions the owner fields describe the new holder; for releases
// and expiries they describe the holder that went away.
func NewEvent(c editlock.Change, ts time.Time) Event {
	e := Event{
		ID:          uuid.NewString(),
		Timestamp:   ts,
		DashboardID: c.DashboardID,
		Kind:        Kind(c.Reason),
	}

	holder := c.Record
	if holder == nil {
		holder = c.Previous
	} else if c.Previous != nil {
		e.PreviousOwnerID = c.Previous.OwnerID
	}
	if holder != nil {
		e.OwnerID = holder.OwnerID
		e.OwnerName = holder.OwnerName
		e.ConnectionID = holder.ConnectionID
	}
	return e
}
