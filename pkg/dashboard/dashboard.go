// Package dashboard provides the dashboard catalog. Lock requests are
// checked against it so clients cannot lock dashboards that do not exist.
package dashboard

import (
	"context"
	"errors"
	"strings"
	"time"
)

// ErrNotFound is returned by Delete for unknown dashboards.
var ErrNotFound = errors.New("dashboard not found")

// ErrNameRequired is returned when creating a dashboard without a name.
var ErrNameRequired = errors.New("dashboard name is required")

// Dashboard is a catalog entry.
type Dashboard struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Validate checks required fields.
func (d *Dashboard) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return ErrNameRequired
	}
	return nil
}

// Store defines the interface for dashboard persistence.
type Store interface {
	// Get retrieves a dashboard by ID. Returns nil, nil if not found.
	Get(ctx context.Context, id int64) (*Dashboard, error)

	// List returns all dashboards ordered by ID.
	List(ctx context.Context) ([]Dashboard, error)

	// Create persists d and fills in its ID and timestamps.
	Create(ctx context.Context, d *Dashboard) error

	// Delete removes a dashboard. Returns ErrNotFound if it does not exist.
	Delete(ctx context.Context, id int64) error
}
