// Package postgres provides PostgreSQL storage for the dashboard catalog.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/txn2/homedash/pkg/dashboard"
)

// psq is the PostgreSQL statement builder with dollar placeholders.
var psq = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// dashboardColumns lists columns returned by dashboard SELECT queries.
var dashboardColumns = []string{"id", "name", "description", "created_at", "updated_at"}

// Store implements dashboard.Store using PostgreSQL.
type Store struct {
	db *sql.DB
}

// New creates a new PostgreSQL dashboard store.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Get retrieves a dashboard by ID. Returns nil, nil if not found.
func (s *Store) Get(ctx context.Context, id int64) (*dashboard.Dashboard, error) {
	query, args, err := psq.Select(dashboardColumns...).
		From("dashboards").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building dashboard query: %w", err)
	}

	var d dashboard.Dashboard
	err = s.db.QueryRowContext(ctx, query, args...).
		Scan(&d.ID, &d.Name, &d.Description, &d.CreatedAt, &d.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil //nolint:nilnil // Store interface specifies nil,nil for not-found
	}
	if err != nil {
		return nil, fmt.Errorf("querying dashboard %d: %w", id, err)
	}
	return &d, nil
}

// List returns all dashboards ordered by ID.
func (s *Store) List(ctx context.Context) ([]dashboard.Dashboard, error) {
	query, args, err := psq.Select(dashboardColumns...).
		From("dashboards").
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building dashboard list query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying dashboards: %w", err)
	}
	defer func() { _ = rows.Close() }()

	result := []dashboard.Dashboard{}
	for rows.Next() {
		var d dashboard.Dashboard
		if err := rows.Scan(&d.ID, &d.Name, &d.Description, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning dashboard row: %w", err)
		}
		result = append(result, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating dashboard rows: %w", err)
	}
	return result, nil
}

// Create persists d and fills in its ID and timestamps.
func (s *Store) Create(ctx context.Context, d *dashboard.Dashboard) error {
	if err := d.Validate(); err != nil {
		return err
	}

	query, args, err := psq.Insert("dashboards").
		Columns("name", "description").
		Values(d.Name, d.Description).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("building dashboard insert: %w", err)
	}

	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt); err != nil {
		return fmt.Errorf("inserting dashboard: %w", err)
	}
	return nil
}

// Delete removes a dashboard.
func (s *Store) Delete(ctx context.Context, id int64) error {
	query, args, err := psq.Delete("dashboards").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("building dashboard delete: %w", err)
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("deleting dashboard %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading rows affected: %w", err)
	}
	if n == 0 {
		return dashboard.ErrNotFound
	}
	return nil
}

// Verify interface compliance.
var _ dashboard.Store = (*Store)(nil)
