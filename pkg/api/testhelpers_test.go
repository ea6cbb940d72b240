package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/txn2/homedash/pkg/audit"
	"github.com/txn2/homedash/pkg/auth"
	"github.com/txn2/homedash/pkg/dashboard"
	"github.com/txn2/homedash/pkg/editlock"
	"github.com/txn2/homedash/pkg/session"
)

const (
	testUserHeader = "X-Test-User"
	alice          = "U1:Alice"
	bob            = "U2:Bob"
)

var testEpoch = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

type testAPI struct {
	handler  *Handler
	registry *editlock.Registry
	clock    *editlock.ManualClock
	sessions *session.Manager
	audit    *audit.MemoryStore
}

// testAuth maps "id:name" in X-Test-User onto a UserContext.
func testAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		v := r.Header.Get(testUserHeader)
		if v == "" {
			next.ServeHTTP(w, r)
			return
		}
		id, name, _ := strings.Cut(v, ":")
		uc := &auth.UserContext{UserID: id, Name: name, AuthType: "test"}
		next.ServeHTTP(w, r.WithContext(auth.WithUserContext(r.Context(), uc)))
	})
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	clock := editlock.NewManualClock(testEpoch)
	reg := editlock.NewRegistry(editlock.RegistryConfig{Clock: clock})
	mgr := session.NewManager(session.ManagerConfig{Registry: reg})
	t.Cleanup(func() { _ = mgr.Close() })
	store := audit.NewMemoryStore(0)
	dashboards := dashboard.NewMemoryStore(
		dashboard.Dashboard{ID: 7, Name: "Media"},
		dashboard.Dashboard{ID: 42, Name: "Home Lab"},
	)

	h := NewHandler(Deps{
		Registry:   reg,
		Sessions:   mgr,
		Dashboards: dashboards,
		Audit:      store,
	}, testAuth)

	return &testAPI{handler: h, registry: reg, clock: clock, sessions: mgr, audit: store}
}

func (a *testAPI) do(t *testing.T, method, path, user string, body any, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var rdr io.Reader = http.NoBody
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		rdr = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, rdr)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if user != "" {
		req.Header.Set(testUserHeader, user)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	a.handler.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(w.Body).Decode(&v))
	return v
}
