package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/txn2/homedash/pkg/audit"
)

const (
	testFilterLimit  = 10
	testFilterOffset = 5
)

var (
	testTime  = time.Date(2026, 6, 15, 10, 30, 0, 0, time.UTC)
	errTestDB = errors.New("connection refused")
)

func newTestEvent() audit.Event {
	return audit.Event{
		ID:              "0b5c1e0e-8f4f-4a43-9a40-3d1f2b8c7e11",
		Timestamp:       testTime,
		DashboardID:     42,
		Kind:            audit.KindTakenOver,
		OwnerID:         "U2",
		OwnerName:       "Bob",
		ConnectionID:    "c2",
		PreviousOwnerID: "U1",
	}
}

func newMock(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return New(db, Config{RetentionDays: 7}), mock
}

func TestNew(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	t.Run("custom retention", func(t *testing.T) {
		store := New(db, Config{RetentionDays: 7})
		assert.Equal(t, 7, store.retentionDays)
		assert.Equal(t, db, store.db)
	})

	t.Run("default retention when zero", func(t *testing.T) {
		store := New(db, Config{})
		assert.Equal(t, defaultRetentionDays, store.retentionDays)
	})
}

func TestLog_Success(t *testing.T) {
	store, mock := newMock(t)
	event := newTestEvent()

	mock.ExpectExec(regexp.QuoteMeta(
		"INSERT INTO lock_events (id,timestamp,dashboard_id,kind,owner_id,owner_name,connection_id,previous_owner_id) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)",
	)).WithArgs(
		event.ID,
		event.Timestamp,
		event.DashboardID,
		"taken_over",
		event.OwnerID,
		event.OwnerName,
		event.ConnectionID,
		event.PreviousOwnerID,
	).WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, store.Log(context.Background(), event))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLog_Error(t *testing.T) {
	store, mock := newMock(t)

	mock.ExpectExec("INSERT INTO lock_events").WillReturnError(errTestDB)

	err := store.Log(context.Background(), newTestEvent())
	require.Error(t, err)
	assert.ErrorIs(t, err, errTestDB)
	assert.Contains(t, err.Error(), "inserting lock event")
}

func eventRows() *sqlmock.Rows {
	e := newTestEvent()
	return sqlmock.NewRows(eventColumns).
		AddRow(e.ID, e.Timestamp, e.DashboardID, string(e.Kind), e.OwnerID, e.OwnerName, e.ConnectionID, e.PreviousOwnerID)
}

func TestQuery_NoFilter(t *testing.T) {
	store, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT id, timestamp, dashboard_id, kind, owner_id, owner_name, connection_id, previous_owner_id FROM lock_events ORDER BY timestamp DESC",
	)).WillReturnRows(eventRows())

	events, err := store.Query(context.Background(), audit.QueryFilter{})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, newTestEvent(), events[0])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuery_AllFilters(t *testing.T) {
	store, mock := newMock(t)
	dash := int64(42)
	start := testTime.Add(-time.Hour)
	end := testTime

	mock.ExpectQuery(regexp.QuoteMeta(
		"FROM lock_events WHERE timestamp >= $1 AND timestamp <= $2 AND dashboard_id = $3 AND owner_id = $4 AND kind = $5 ORDER BY timestamp DESC LIMIT 10 OFFSET 5",
	)).WithArgs(start, end, dash, "U2", "expired").
		WillReturnRows(sqlmock.NewRows(eventColumns))

	events, err := store.Query(context.Background(), audit.QueryFilter{
		StartTime:   &start,
		EndTime:     &end,
		DashboardID: &dash,
		OwnerID:     "U2",
		Kind:        audit.KindExpired,
		Limit:       testFilterLimit,
		Offset:      testFilterOffset,
	})
	require.NoError(t, err)
	assert.Empty(t, events)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuery_Error(t *testing.T) {
	store, mock := newMock(t)

	mock.ExpectQuery("SELECT .* FROM lock_events").WillReturnError(errTestDB)

	_, err := store.Query(context.Background(), audit.QueryFilter{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "querying lock events")
}

func TestQuery_ScanError(t *testing.T) {
	store, mock := newMock(t)

	mock.ExpectQuery("SELECT .* FROM lock_events").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("x"))

	_, err := store.Query(context.Background(), audit.QueryFilter{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scanning lock event row")
}

func TestCleanup(t *testing.T) {
	store, mock := newMock(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM lock_events WHERE timestamp < $1")).
		WithArgs(testTime).
		WillReturnResult(sqlmock.NewResult(0, 12))

	require.NoError(t, store.Cleanup(context.Background(), testTime))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCleanup_Error(t *testing.T) {
	store, mock := newMock(t)

	mock.ExpectExec("DELETE FROM lock_events").WillReturnError(errTestDB)

	err := store.Cleanup(context.Background(), testTime)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cleaning up lock events")
}

func TestCutoff(t *testing.T) {
	store, _ := newMock(t)
	store.now = func() time.Time { return testTime }
	assert.Equal(t, testTime.AddDate(0, 0, -7), store.cutoff())
}

func TestCleanupRoutine(t *testing.T) {
	store, mock := newMock(t)
	store.now = func() time.Time { return testTime }

	mock.ExpectExec("DELETE FROM lock_events").
		WithArgs(testTime.AddDate(0, 0, -7)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	store.StartCleanupRoutine(10 * time.Millisecond)
	assert.Eventually(t, func() bool {
		return mock.ExpectationsWereMet() == nil
	}, time.Second, 5*time.Millisecond)
	require.NoError(t, store.Close())
	require.NoError(t, store.Close())
}

func TestClose_WithoutStart(t *testing.T) {
	store, _ := newMock(t)
	assert.NoError(t, store.Close())
}
