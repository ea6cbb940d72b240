// Package postgres provides PostgreSQL storage for lock audit events.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/txn2/homedash/pkg/audit"
)

const (
	defaultRetentionDays = 30
	defaultQueryCapacity = 100
	maxQueryCapacity     = 10000
)

// psq is the PostgreSQL statement builder with dollar placeholders.
var psq = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// eventColumns lists columns returned by lock_events SELECT queries.
var eventColumns = []string{
	"id", "timestamp", "dashboard_id", "kind", "owner_id",
	"owner_name", "connection_id", "previous_owner_id",
}

// Store implements audit.Store using PostgreSQL.
type Store struct {
	db            *sql.DB
	retentionDays int
	now           func() time.Time
	cancel        context.CancelFunc
	done          chan struct{}
}

// Config configures the PostgreSQL audit store.
type Config struct {
	RetentionDays int
}

// New creates a new PostgreSQL audit store.
func New(db *sql.DB, cfg Config) *Store {
	if cfg.RetentionDays == 0 {
		cfg.RetentionDays = defaultRetentionDays
	}
	return &Store{
		db:            db,
		retentionDays: cfg.RetentionDays,
		now:           time.Now,
	}
}

// Log records an audit event.
func (s *Store) Log(ctx context.Context, event audit.Event) error {
	query, args, err := psq.Insert("lock_events").
		Columns(eventColumns...).
		Values(
			event.ID,
			event.Timestamp,
			event.DashboardID,
			string(event.Kind),
			event.OwnerID,
			event.OwnerName,
			event.ConnectionID,
			event.PreviousOwnerID,
		).ToSql()
	if err != nil {
		return fmt.Errorf("building lock event insert: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("inserting lock event: %w", err)
	}
	return nil
}

// applyEventFilter adds filter conditions to a SELECT builder.
func applyEventFilter(qb sq.SelectBuilder, filter audit.QueryFilter) sq.SelectBuilder {
	qb = applyTimeRange(qb, filter.StartTime, filter.EndTime)
	if filter.DashboardID != nil {
		qb = qb.Where(sq.Eq{"dashboard_id": *filter.DashboardID})
	}
	if filter.OwnerID != "" {
		qb = qb.Where(sq.Eq{"owner_id": filter.OwnerID})
	}
	if filter.Kind != "" {
		qb = qb.Where(sq.Eq{"kind": string(filter.Kind)})
	}
	return qb
}

func applyTimeRange(qb sq.SelectBuilder, start, end *time.Time) sq.SelectBuilder {
	if start != nil {
		qb = qb.Where(sq.GtOrEq{"timestamp": *start})
	}
	if end != nil {
		qb = qb.Where(sq.LtOrEq{"timestamp": *end})
	}
	return qb
}

// Query retrieves audit events matching the filter, newest first.
func (s *Store) Query(ctx context.Context, filter audit.QueryFilter) ([]audit.Event, error) {
	qb := applyEventFilter(psq.Select(eventColumns...).From("lock_events"), filter)
	qb = qb.OrderBy("timestamp DESC")
	if filter.Limit > 0 {
		qb = qb.Limit(uint64(filter.Limit)) // #nosec G115 -- checked positive
	}
	if filter.Offset > 0 {
		qb = qb.Offset(uint64(filter.Offset)) // #nosec G115 -- checked positive
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("building lock event query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying lock events: %w", err)
	}
	defer func() { _ = rows.Close() }()

	allocCap := defaultQueryCapacity
	if filter.Limit > 0 && filter.Limit <= maxQueryCapacity {
		allocCap = filter.Limit
	}
	events := make([]audit.Event, 0, allocCap)

	for rows.Next() {
		var event audit.Event
		var kind string
		if err := rows.Scan(
			&event.ID,
			&event.Timestamp,
			&event.DashboardID,
			&kind,
			&event.OwnerID,
			&event.OwnerName,
			&event.ConnectionID,
			&event.PreviousOwnerID,
		); err != nil {
			return nil, fmt.Errorf("scanning lock event row: %w", err)
		}
		event.Kind = audit.Kind(kind)
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating lock event rows: %w", err)
	}

	return events, nil
}

// Cleanup removes events recorded before the cutoff.
func (s *Store) Cleanup(ctx context.Context, before time.Time) error {
	query, args, err := psq.Delete("lock_events").Where(sq.Lt{"timestamp": before}).ToSql()
	if err != nil {
		return fmt.Errorf("building lock event cleanup: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("cleaning up lock events: %w", err)
	}
	return nil
}

// Close cancels the cleanup goroutine and waits for it to exit.
// It is safe to call Close even if StartCleanupRoutine was never called.
func (s *Store) Close() error {
	if s.cancel != nil {
		s.cancel()
		<-s.done
		s.cancel = nil
	}
	return nil
}

// cutoff is the oldest timestamp kept by the retention policy.
func (s *Store) cutoff() time.Time {
	return s.now().AddDate(0, 0, -s.retentionDays)
}

// StartCleanupRoutine starts a background goroutine that periodically deletes
// events older than the retention period. The goroutine is stopped when Close
// is called.
func (s *Store) StartCleanupRoutine(interval time.Duration) {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.done = make(chan struct{})

	go func() {
		defer close(s.done)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				_ = s.Cleanup(ctx, s.cutoff())
			}
		}
	}()
}

// Verify interface compliance.
var _ audit.Store = (*Store)(nil)
