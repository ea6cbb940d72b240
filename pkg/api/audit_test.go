package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/txn2/homedash/pkg/audit"
	"github.com/txn2/homedash/pkg/editlock"
)

func seedAudit(t *testing.T, a *testAPI) {
	t.Helper()
	ctx := context.Background()
	for _, e := range []audit.Event{
		{ID: "1", Timestamp: testEpoch, DashboardID: 42, Kind: audit.KindAcquired, OwnerID: "U1"},
		{ID: "2", Timestamp: testEpoch.Add(60e9), DashboardID: 42, Kind: audit.KindTakenOver, OwnerID: "U2", PreviousOwnerID: "U1"},
		{ID: "3", Timestamp: testEpoch.Add(120e9), DashboardID: 7, Kind: audit.KindAcquired, OwnerID: "U1"},
	} {
		require.NoError(t, a.audit.Log(ctx, e))
	}
}

func TestListLockEvents(t *testing.T) {
	a := newTestAPI(t)
	seedAudit(t, a)

	w := a.do(t, http.MethodGet, "/api/v1/audit/locks", alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[auditEventResponse](t, w)
	require.Len(t, resp.Data, 3)
	assert.Equal(t, "3", resp.Data[0].ID)
	assert.Equal(t, defaultAuditLimit, resp.Limit)

	w = a.do(t, http.MethodGet, "/api/v1/audit/locks?dashboard_id=42&kind=taken_over", alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp = decode[auditEventResponse](t, w)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "U1", resp.Data[0].PreviousOwnerID)

	w = a.do(t, http.MethodGet, "/api/v1/audit/locks?limit=1&offset=1", alice, nil)
	resp = decode[auditEventResponse](t, w)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "2", resp.Data[0].ID)
}

func TestListLockEvents_BadParams(t *testing.T) {
	a := newTestAPI(t)
	assert.Equal(t, http.StatusBadRequest, a.do(t, http.MethodGet, "/api/v1/audit/locks?kind=stolen", alice, nil).Code)
	assert.Equal(t, http.StatusBadRequest, a.do(t, http.MethodGet, "/api/v1/audit/locks?dashboard_id=x", alice, nil).Code)
}

func TestLockBreakdown(t *testing.T) {
	a := newTestAPI(t)
	seedAudit(t, a)

	w := a.do(t, http.MethodGet, "/api/v1/audit/locks/breakdown?group_by=dashboard_id", alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	entries := decode[[]audit.BreakdownEntry](t, w)
	require.Len(t, entries, 2)
	assert.Equal(t, audit.BreakdownEntry{Dimension: "42", Count: 2, Takeovers: 1}, entries[0])

	assert.Equal(t, http.StatusBadRequest,
		a.do(t, http.MethodGet, "/api/v1/audit/locks/breakdown?group_by=tool_name", alice, nil).Code)
}

func TestAuditRoutesAbsentWithoutStore(t *testing.T) {
	reg := editlock.NewRegistry(editlock.RegistryConfig{})
	a := &testAPI{handler: NewHandler(Deps{Registry: reg}, testAuth), registry: reg}
	assert.Equal(t, http.StatusNotFound, a.do(t, http.MethodGet, "/api/v1/audit/locks", alice, nil).Code)
}

func TestAuditRecorderEndToEnd(t *testing.T) {
	a := newTestAPI(t)
	rec := audit.NewRecorder(audit.RecorderConfig{Store: a.audit, Notifier: a.registry.Notifier(), Clock: a.clock})
	rec.Start()

	require.Equal(t, http.StatusOK, a.do(t, http.MethodPost, "/api/v1/locks/acquire", alice,
		acquireRequest{DashboardID: 42, ConnectionID: "c1"}).Code)
	require.Equal(t, http.StatusNoContent, a.do(t, http.MethodPost, "/api/v1/locks/42/release", alice, nil).Code)
	require.NoError(t, rec.Close())

	w := a.do(t, http.MethodGet, "/api/v1/audit/locks?owner_id=U1", alice, nil)
	resp := decode[auditEventResponse](t, w)
	require.Len(t, resp.Data, 2)
	kinds := []audit.Kind{resp.Data[0].Kind, resp.Data[1].Kind}
	assert.ElementsMatch(t, []audit.Kind{audit.KindAcquired, audit.KindReleased}, kinds)
}
