package api

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/txn2/homedash/pkg/editlock"
)

type sseEvent struct {
	name string
	data string
}

func readEvent(t *testing.T, rd *bufio.Reader) sseEvent {
	t.Helper()
	var ev sseEvent
	for {
		line, err := rd.ReadString('\n')
		require.NoError(t, err)
		line = strings.TrimRight(line, "\n")
		switch {
		case line == "":
			if ev.name != "" {
				return ev
			}
		case strings.HasPrefix(line, "event: "):
			ev.name = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			ev.data = strings.TrimPrefix(line, "data: ")
		}
	}
}

func openStream(t *testing.T, a *testAPI, path string) *bufio.Reader {
	t.Helper()
	srv := httptest.NewServer(a.handler)
	t.Cleanup(srv.Close)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+path, http.NoBody)
	require.NoError(t, err)
	req.Header.Set(testUserHeader, alice)

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))
	return bufio.NewReader(resp.Body)
}

func TestLockEvents_SnapshotThenChanges(t *testing.T) {
	a := newTestAPI(t)
	require.True(t, a.registry.TryAcquire(42, "U2", "Bob", "c2"))

	rd := openStream(t, a, "/api/v1/locks/42/events")

	ev := readEvent(t, rd)
	require.Equal(t, "snapshot", ev.name)
	var snap lockEvent
	require.NoError(t, json.Unmarshal([]byte(ev.data), &snap))
	assert.Equal(t, int64(42), snap.DashboardID)
	require.NotNil(t, snap.Lock)
	assert.Equal(t, "U2", snap.Lock.OwnerID)

	// Changes on other dashboards are filtered out.
	require.True(t, a.registry.TryAcquire(7, "U1", "Alice", "c1"))
	a.registry.ForceAcquire(42, "U1", "Alice", "c1")

	ev = readEvent(t, rd)
	require.Equal(t, "lock", ev.name)
	var got lockEvent
	require.NoError(t, json.Unmarshal([]byte(ev.data), &got))
	assert.Equal(t, string(editlock.ReasonTakenOver), got.Reason)
	assert.Greater(t, got.Seq, snap.Seq)
	require.NotNil(t, got.Lock)
	assert.Equal(t, "U1", got.Lock.OwnerID)

	require.True(t, a.registry.Release(42, "U1"))
	ev = readEvent(t, rd)
	require.NoError(t, json.Unmarshal([]byte(ev.data), &got))
	assert.Equal(t, string(editlock.ReasonReleased), got.Reason)
	assert.Nil(t, got.Lock)
}

func TestLockEvents_UnlockedSnapshot(t *testing.T) {
	a := newTestAPI(t)
	rd := openStream(t, a, "/api/v1/locks/7/events")

	ev := readEvent(t, rd)
	require.Equal(t, "snapshot", ev.name)
	var snap lockEvent
	require.NoError(t, json.Unmarshal([]byte(ev.data), &snap))
	assert.Nil(t, snap.Lock)
}

func TestLockEvents_Rejects(t *testing.T) {
	a := newTestAPI(t)
	assert.Equal(t, http.StatusNotFound, a.do(t, http.MethodGet, "/api/v1/locks/999/events", alice, nil).Code)
	assert.Equal(t, http.StatusBadRequest, a.do(t, http.MethodGet, "/api/v1/locks/abc/events", alice, nil).Code)
	assert.Equal(t, http.StatusUnauthorized, a.do(t, http.MethodGet, "/api/v1/locks/42/events", "", nil).Code)
}
