package postgres

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/txn2/homedash/pkg/audit"
)

var breakdownColumns = []string{"dimension", "count", "takeovers", "expiries"}

func TestBreakdown_ByOwner(t *testing.T) {
	store, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT COALESCE(owner_id, '') AS dimension, COUNT(*) AS count",
	)).WillReturnRows(sqlmock.NewRows(breakdownColumns).
		AddRow("U1", 12, 2, 1).
		AddRow("U2", 4, 0, 3))

	entries, err := store.Breakdown(context.Background(), audit.BreakdownFilter{GroupBy: audit.BreakdownByOwner})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, audit.BreakdownEntry{Dimension: "U1", Count: 12, Takeovers: 2, Expiries: 1}, entries[0])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBreakdown_ByDashboardWithRange(t *testing.T) {
	store, mock := newMock(t)
	start := testTime.Add(-24 * time.Hour)
	end := testTime

	mock.ExpectQuery(regexp.QuoteMeta(
		"FROM lock_events WHERE timestamp >= $1 AND timestamp <= $2 GROUP BY dimension ORDER BY count DESC, dimension ASC LIMIT 5",
	)).WithArgs(start, end).
		WillReturnRows(sqlmock.NewRows(breakdownColumns).AddRow("42", 3, 1, 0))

	entries, err := store.Breakdown(context.Background(), audit.BreakdownFilter{
		GroupBy:   audit.BreakdownByDashboard,
		Limit:     5,
		StartTime: &start,
		EndTime:   &end,
	})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "42", entries[0].Dimension)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBreakdown_DefaultLimit(t *testing.T) {
	store, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("LIMIT 10")).
		WillReturnRows(sqlmock.NewRows(breakdownColumns))

	entries, err := store.Breakdown(context.Background(), audit.BreakdownFilter{GroupBy: audit.BreakdownByKind})
	require.NoError(t, err)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestBreakdown_InvalidDimension(t *testing.T) {
	store, _ := newMock(t)

	_, err := store.Breakdown(context.Background(), audit.BreakdownFilter{GroupBy: "color"})
	assert.ErrorIs(t, err, audit.ErrInvalidDimension)
}

func TestBreakdown_QueryError(t *testing.T) {
	store, mock := newMock(t)

	mock.ExpectQuery("SELECT").WillReturnError(errTestDB)

	_, err := store.Breakdown(context.Background(), audit.BreakdownFilter{GroupBy: audit.BreakdownByKind})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "querying breakdown")
}
