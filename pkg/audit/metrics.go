package audit

import "time"

// BreakdownDimension defines valid group-by dimensions.
type BreakdownDimension string

const (
	// BreakdownByDashboard groups by dashboard ID.
	BreakdownByDashboard BreakdownDimension = "dashboard_id"

	// BreakdownByOwner groups by owner ID.
	BreakdownByOwner BreakdownDimension = "owner_id"

	// BreakdownByKind groups by event kind.
	BreakdownByKind BreakdownDimension = "kind"
)

// ValidBreakdownDimensions is the set of allowed group-by values.
var ValidBreakdownDimensions = map[BreakdownDimension]bool{
	BreakdownByDashboard: true,
	BreakdownByOwner:     true,
	BreakdownByKind:      true,
}

// DefaultBreakdownLimit is the default number of breakdown entries returned.
const DefaultBreakdownLimit = 10

// MaxBreakdownLimit caps the number of breakdown entries.
const MaxBreakdownLimit = 100

// BreakdownFilter controls breakdown query parameters.
type BreakdownFilter struct {
	GroupBy   BreakdownDimension
	Limit     int
	StartTime *time.Time
	EndTime   *time.Time
}

// BreakdownEntry holds the event count for a single dimension value.
type BreakdownEntry struct {
	Dimension string `json:"dimension"`
	Count     int    `json:"count"`
	Takeovers int    `json:"takeovers"`
	Expiries  int    `json:"expiries"`
}

// ClampBreakdownLimit applies default and max bounds to a breakdown limit.
func ClampBreakdownLimit(limit int) int {
	if limit <= 0 {
		return DefaultBreakdownLimit
	}
	if limit > MaxBreakdownLimit {
		return MaxBreakdownLimit
	}
	return limit
}
