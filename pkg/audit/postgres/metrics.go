package postgres

import (
	"context"
	"fmt"

	"github.com/txn2/homedash/pkg/audit"
)

// dimensionExprs maps validated breakdown dimensions to column expressions.
var dimensionExprs = map[audit.BreakdownDimension]string{
	audit.BreakdownByDashboard: "CAST(dashboard_id AS TEXT) AS dimension",
	audit.BreakdownByOwner:     "COALESCE(owner_id, '') AS dimension",
	audit.BreakdownByKind:      "kind AS dimension",
}

// Breakdown returns lock event counts grouped by a dimension.
func (s *Store) Breakdown(ctx context.Context, filter audit.BreakdownFilter) ([]audit.BreakdownEntry, error) {
	expr, ok := dimensionExprs[filter.GroupBy]
	if !ok {
		return nil, audit.InvalidDimension(filter.GroupBy)
	}
	limit := audit.ClampBreakdownLimit(filter.Limit)

	qb := psq.Select(
		expr,
		"COUNT(*) AS count",
		"COUNT(*) FILTER (WHERE kind = 'taken_over') AS takeovers",
		"COUNT(*) FILTER (WHERE kind = 'expired') AS expiries",
	).From("lock_events")
	qb = applyTimeRange(qb, filter.StartTime, filter.EndTime).
		GroupBy("dimension").
		OrderBy("count DESC", "dimension ASC").
		Limit(uint64(limit)) // #nosec G115 -- limit is clamped to [1, 100] by ClampBreakdownLimit

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("building breakdown query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying breakdown: %w", err)
	}
	defer func() { _ = rows.Close() }()

	entries := []audit.BreakdownEntry{}
	for rows.Next() {
		var entry audit.BreakdownEntry
		if err := rows.Scan(&entry.Dimension, &entry.Count, &entry.Takeovers, &entry.Expiries); err != nil {
			return nil, fmt.Errorf("scanning breakdown row: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating breakdown rows: %w", err)
	}
	return entries, nil
}
