// Package api provides the REST endpoints for dashboard edit locks, client
// sessions, the dashboard catalog and the lock audit trail.
//
//	@title						homedash API
//	@version					1.0
//	@description				Dashboard edit-lock coordination for the homedash landing page.
//	@BasePath					/api/v1
//	@securityDefinitions.apikey	ApiKeyAuth
//	@in							header
//	@name						X-API-Key
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
package api

//go:generate swag init --generalInfo handler.go --output docs --outputTypes go --dir .,../session,../dashboard,../audit,../editlock --parseInternal

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/txn2/homedash/pkg/audit"
	"github.com/txn2/homedash/pkg/auth"
	"github.com/txn2/homedash/pkg/dashboard"
	"github.com/txn2/homedash/pkg/editlock"
	"github.com/txn2/homedash/pkg/session"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 16

// Deps holds the handler's collaborators. Audit may be nil, in which case
// the audit routes are not registered.
type Deps struct {
	Registry   *editlock.Registry
	Sessions   *session.Manager
	Dashboards dashboard.Store
	Audit      audit.Store
}

// Handler provides the REST API.
type Handler struct {
	mux        *http.ServeMux
	deps       Deps
	authMiddle func(http.Handler) http.Handler
	chain      http.Handler
}

// NewHandler creates a new API handler. authMiddle must place an
// auth.UserContext on every request it lets through.
func NewHandler(deps Deps, authMiddle func(http.Handler) http.Handler) *Handler {
	h := &Handler{
		mux:        http.NewServeMux(),
		deps:       deps,
		authMiddle: authMiddle,
	}
	h.registerRoutes()

	var chain http.Handler = h.mux
	if deps.Sessions != nil {
		chain = session.Middleware(deps.Sessions)(chain)
	}
	if authMiddle != nil {
		chain = authMiddle(chain)
	}
	h.chain = chain
	return h
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.chain.ServeHTTP(w, r)
}

// registerRoutes registers all API routes.
func (h *Handler) registerRoutes() {
	h.mux.HandleFunc("GET /api/v1/locks", h.listLocks)
	h.mux.HandleFunc("POST /api/v1/locks/acquire", h.acquireLock)
	h.mux.HandleFunc("GET /api/v1/locks/{dashboardId}", h.getLock)
	h.mux.HandleFunc("POST /api/v1/locks/{dashboardId}/release", h.releaseLock)
	h.mux.HandleFunc("POST /api/v1/locks/{dashboardId}/activity", h.lockActivity)
	h.mux.HandleFunc("GET /api/v1/locks/{dashboardId}/events", h.lockEvents)

	if h.deps.Sessions != nil {
		h.mux.HandleFunc("POST /api/v1/sessions", h.openSession)
		h.mux.HandleFunc("GET /api/v1/sessions/{id}", h.getSession)
		h.mux.HandleFunc("DELETE /api/v1/sessions/{id}", h.closeSession)
		h.mux.HandleFunc("POST /api/v1/sessions/{id}/focus", h.focusSession)
		h.mux.HandleFunc("POST /api/v1/sessions/{id}/toggle", h.toggleEdit)
		h.mux.HandleFunc("POST /api/v1/sessions/{id}/heartbeat", h.heartbeatSession)
	}

	h.mux.HandleFunc("GET /api/v1/dashboards", h.listDashboards)
	h.mux.HandleFunc("POST /api/v1/dashboards", h.createDashboard)
	h.mux.HandleFunc("GET /api/v1/dashboards/{id}", h.getDashboard)
	h.mux.HandleFunc("DELETE /api/v1/dashboards/{id}", h.deleteDashboard)

	h.registerAuditRoutes()
}

// problemDetail is an RFC 9457 error body.
type problemDetail struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`

	// Holder is set on lock conflicts.
	Holder *holderInfo `json:"holder,omitempty"`
}

// holderInfo names the user currently holding a lock.
type holderInfo struct {
	OwnerID   string    `json:"owner_id"`
	OwnerName string    `json:"owner_name"`
	ExpiresAt time.Time `json:"expires_at"`
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeProblem(w http.ResponseWriter, p problemDetail) {
	if p.Type == "" {
		p.Type = "about:blank"
	}
	if p.Title == "" {
		p.Title = http.StatusText(p.Status)
	}
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(p.Status)
	_ = json.NewEncoder(w).Encode(p)
}

// writeError writes a problem details response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeProblem(w, problemDetail{Status: status, Detail: msg})
}

// writeConflict reports that rec's owner holds the lock.
func writeConflict(w http.ResponseWriter, rec *editlock.Record) {
	p := problemDetail{Status: http.StatusConflict, Detail: "dashboard is being edited by another user"}
	if rec != nil {
		p.Detail = "dashboard is being edited by " + rec.OwnerName
		p.Holder = &holderInfo{
			OwnerID:   rec.OwnerID,
			OwnerName: rec.OwnerName,
			ExpiresAt: rec.ExpiresAt(),
		}
	}
	writeProblem(w, p)
}

// decodeBody decodes a JSON request body into v.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// currentUser returns the authenticated user or writes 401.
func currentUser(w http.ResponseWriter, r *http.Request) (*auth.UserContext, bool) {
	uc := auth.GetUserContext(r.Context())
	if uc == nil || uc.UserID == "" {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return nil, false
	}
	return uc, true
}

// pathID parses a positive int64 path value.
func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return id, true
}

// requireDashboard writes 404 unless the catalog knows id.
func (h *Handler) requireDashboard(w http.ResponseWriter, r *http.Request, id int64) bool {
	if h.deps.Dashboards == nil {
		return true
	}
	d, err := h.deps.Dashboards.Get(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to look up dashboard")
		return false
	}
	if d == nil {
		writeError(w, http.StatusNotFound, "dashboard not found")
		return false
	}
	return true
}

// lookupSession resolves the {id} session for the current user.
func (h *Handler) lookupSession(w http.ResponseWriter, r *http.Request) (*session.Entry, bool) {
	uc, ok := currentUser(w, r)
	if !ok {
		return nil, false
	}
	e, err := h.deps.Sessions.Lookup(r.PathValue("id"), uc.UserID)
	switch {
	case errors.Is(err, session.ErrNotFound):
		writeError(w, http.StatusNotFound, "session not found")
		return nil, false
	case errors.Is(err, session.ErrForbidden):
		writeError(w, http.StatusForbidden, "session belongs to another user")
		return nil, false
	case err != nil:
		writeError(w, http.StatusInternalServerError, "failed to look up session")
		return nil, false
	}
	return e, true
}

func parseTimeParam(q url.Values, key string) *time.Time {
	v := q.Get(key)
	if v == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return nil
	}
	return &t
}

func parseIntParam(q url.Values, key string) int {
	if v := q.Get(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return 0
}
