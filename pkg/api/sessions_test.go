package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/txn2/homedash/pkg/session"
)

func openSession(t *testing.T, a *testAPI, user string) session.Info {
	t.Helper()
	w := a.do(t, http.MethodPost, "/api/v1/sessions", user, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	info := decode[session.Info](t, w)
	require.NotEmpty(t, info.ID)
	assert.Equal(t, info.ID, w.Header().Get(session.ConnectionIDHeader))
	return info
}

func TestOpenAndGetSession(t *testing.T) {
	a := newTestAPI(t)
	info := openSession(t, a, alice)
	assert.Equal(t, "U1", info.UserID)
	assert.Equal(t, "Alice", info.UserName)
	assert.Nil(t, info.DashboardID)

	w := a.do(t, http.MethodGet, "/api/v1/sessions/"+info.ID, alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, info.ID, decode[session.Info](t, w).ID)

	assert.Equal(t, http.StatusForbidden, a.do(t, http.MethodGet, "/api/v1/sessions/"+info.ID, bob, nil).Code)
	assert.Equal(t, http.StatusNotFound, a.do(t, http.MethodGet, "/api/v1/sessions/missing", alice, nil).Code)
}

func TestToggleEdit_NoFocus(t *testing.T) {
	a := newTestAPI(t)
	info := openSession(t, a, alice)

	w := a.do(t, http.MethodPost, "/api/v1/sessions/"+info.ID+"/toggle", alice, toggleRequest{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode[problemDetail](t, w).Detail, "no dashboard focused")
}

func TestSessionEditFlow(t *testing.T) {
	a := newTestAPI(t)
	s1 := openSession(t, a, alice)
	s2 := openSession(t, a, bob)

	for _, s := range []struct{ id, user string }{{s1.ID, alice}, {s2.ID, bob}} {
		w := a.do(t, http.MethodPost, "/api/v1/sessions/"+s.id+"/focus", s.user, focusRequest{DashboardID: 42})
		require.Equal(t, http.StatusOK, w.Code)
		got := decode[session.Info](t, w)
		require.NotNil(t, got.DashboardID)
		assert.Equal(t, int64(42), *got.DashboardID)
	}

	// Alice enters edit mode.
	w := a.do(t, http.MethodPost, "/api/v1/sessions/"+s1.ID+"/toggle", alice, toggleRequest{})
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decode[session.Info](t, w).EditMode)

	// Bob is refused and told who holds it.
	w = a.do(t, http.MethodPost, "/api/v1/sessions/"+s2.ID+"/toggle", bob, toggleRequest{})
	require.Equal(t, http.StatusConflict, w.Code)
	p := decode[problemDetail](t, w)
	require.NotNil(t, p.Holder)
	assert.Equal(t, "Alice", p.Holder.OwnerName)

	// Bob forces; Alice drops out of edit mode without calling in.
	w = a.do(t, http.MethodPost, "/api/v1/sessions/"+s2.ID+"/toggle", bob, toggleRequest{ForceAcquire: true})
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decode[session.Info](t, w).EditMode)

	w = a.do(t, http.MethodGet, "/api/v1/sessions/"+s1.ID, alice, nil)
	got := decode[session.Info](t, w)
	assert.False(t, got.EditMode)
	require.NotNil(t, got.Lock)
	assert.Equal(t, "U2", got.Lock.OwnerID)

	// Bob leaves edit mode; the lock is gone.
	w = a.do(t, http.MethodPost, "/api/v1/sessions/"+s2.ID+"/toggle", bob, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, decode[session.Info](t, w).EditMode)
	_, held := a.registry.Current(42)
	assert.False(t, held)
}

func TestFocusSession_Validation(t *testing.T) {
	a := newTestAPI(t)
	info := openSession(t, a, alice)
	path := "/api/v1/sessions/" + info.ID + "/focus"

	assert.Equal(t, http.StatusBadRequest, a.do(t, http.MethodPost, path, alice, focusRequest{}).Code)
	assert.Equal(t, http.StatusNotFound, a.do(t, http.MethodPost, path, alice, focusRequest{DashboardID: 999}).Code)
	assert.Equal(t, http.StatusForbidden, a.do(t, http.MethodPost, path, bob, focusRequest{DashboardID: 42}).Code)
}

func TestHeartbeatSession(t *testing.T) {
	a := newTestAPI(t)
	info := openSession(t, a, alice)
	path := "/api/v1/sessions/" + info.ID

	require.Equal(t, http.StatusOK, a.do(t, http.MethodPost, path+"/focus", alice, focusRequest{DashboardID: 42}).Code)
	require.Equal(t, http.StatusOK, a.do(t, http.MethodPost, path+"/toggle", alice, nil).Code)

	a.clock.Advance(4 * 60e9)
	assert.Equal(t, http.StatusNoContent, a.do(t, http.MethodPost, path+"/heartbeat", alice, nil).Code)
	rec, ok := a.registry.Current(42)
	require.True(t, ok)
	assert.Equal(t, a.clock.Now(), rec.LastActivity)
}

func TestCloseSession(t *testing.T) {
	a := newTestAPI(t)
	info := openSession(t, a, alice)
	path := "/api/v1/sessions/" + info.ID

	require.Equal(t, http.StatusOK, a.do(t, http.MethodPost, path+"/focus", alice, focusRequest{DashboardID: 42}).Code)
	require.Equal(t, http.StatusOK, a.do(t, http.MethodPost, path+"/toggle", alice, nil).Code)

	assert.Equal(t, http.StatusForbidden, a.do(t, http.MethodDelete, path, bob, nil).Code)
	assert.Equal(t, http.StatusNoContent, a.do(t, http.MethodDelete, path, alice, nil).Code)
	_, held := a.registry.Current(42)
	assert.False(t, held, "closing the session releases its lock")

	assert.Equal(t, http.StatusNotFound, a.do(t, http.MethodGet, path, alice, nil).Code)
}
