package api

import (
	"errors"
	"net/http"

	"github.com/txn2/homedash/pkg/editlock"
	"github.com/txn2/homedash/pkg/session"
)

// focusRequest is the body of POST /sessions/{id}/focus.
type focusRequest struct {
	DashboardID int64 `json:"dashboardId"`
}

// toggleRequest is the body of POST /sessions/{id}/toggle.
type toggleRequest struct {
	ForceAcquire bool `json:"forceAcquire"`
}

// openSession handles POST /api/v1/sessions.
//
// @Summary      Open a session
// @Description  Opens a client session and returns its connection ID. Send it back in X-Connection-Id.
// @Tags         Sessions
// @Produce      json
// @Success      201  {object}  session.Info
// @Failure      401  {object}  problemDetail
// @Security     ApiKeyAuth
// @Security     BearerAuth
// @Router       /sessions [post]
func (h *Handler) openSession(w http.ResponseWriter, r *http.Request) {
	uc, ok := currentUser(w, r)
	if !ok {
		return
	}
	e := h.deps.Sessions.Open(uc.UserID, uc.DisplayName())
	w.Header().Set(session.ConnectionIDHeader, e.ID)
	writeJSON(w, http.StatusCreated, h.deps.Sessions.Info(e))
}

// getSession handles GET /api/v1/sessions/{id}.
//
// @Summary      Get session state
// @Tags         Sessions
// @Produce      json
// @Param        id  path  string  true  "Connection ID"
// @Success      200  {object}  session.Info
// @Failure      403  {object}  problemDetail
// @Failure      404  {object}  problemDetail
// @Security     ApiKeyAuth
// @Security     BearerAuth
// @Router       /sessions/{id} [get]
func (h *Handler) getSession(w http.ResponseWriter, r *http.Request) {
	e, ok := h.lookupSession(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, h.deps.Sessions.Info(e))
}

// closeSession handles DELETE /api/v1/sessions/{id}.
//
// @Summary      Close a session
// @Description  Closes the session and releases any lock it holds.
// @Tags         Sessions
// @Param        id  path  string  true  "Connection ID"
// @Success      204
// @Failure      403  {object}  problemDetail
// @Failure      404  {object}  problemDetail
// @Security     ApiKeyAuth
// @Security     BearerAuth
// @Router       /sessions/{id} [delete]
func (h *Handler) closeSession(w http.ResponseWriter, r *http.Request) {
	e, ok := h.lookupSession(w, r)
	if !ok {
		return
	}
	if err := h.deps.Sessions.CloseSession(e.ID); err != nil && !errors.Is(err, session.ErrNotFound) {
		writeError(w, http.StatusInternalServerError, "failed to close session")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// focusSession handles POST /api/v1/sessions/{id}/focus.
//
// @Summary      Focus a dashboard
// @Description  Switches the session to a dashboard, releasing a lock held on the previous one.
// @Tags         Sessions
// @Accept       json
// @Produce      json
// @Param        id    path  string        true  "Connection ID"
// @Param        body  body  focusRequest  true  "Focus request"
// @Success      200  {object}  session.Info
// @Failure      400  {object}  problemDetail
// @Failure      404  {object}  problemDetail
// @Security     ApiKeyAuth
// @Security     BearerAuth
// @Router       /sessions/{id}/focus [post]
func (h *Handler) focusSession(w http.ResponseWriter, r *http.Request) {
	e, ok := h.lookupSession(w, r)
	if !ok {
		return
	}
	var req focusRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.DashboardID <= 0 {
		writeError(w, http.StatusBadRequest, "dashboardId is required")
		return
	}
	if !h.requireDashboard(w, r, req.DashboardID) {
		return
	}
	if err := e.Lock.Focus(req.DashboardID); err != nil {
		writeSessionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.Sessions.Info(e))
}

// toggleEdit handles POST /api/v1/sessions/{id}/toggle.
//
// @Summary      Toggle edit mode
// @Description  Enters edit mode on the focused dashboard, or leaves it when already editing.
// @Tags         Sessions
// @Accept       json
// @Produce      json
// @Param        id    path  string         true  "Connection ID"
// @Param        body  body  toggleRequest  false "Toggle request"
// @Success      200  {object}  session.Info
// @Failure      400  {object}  problemDetail
// @Failure      409  {object}  problemDetail
// @Security     ApiKeyAuth
// @Security     BearerAuth
// @Router       /sessions/{id}/toggle [post]
func (h *Handler) toggleEdit(w http.ResponseWriter, r *http.Request) {
	e, ok := h.lookupSession(w, r)
	if !ok {
		return
	}
	var req toggleRequest
	if r.ContentLength != 0 && !decodeBody(w, r, &req) {
		return
	}

	granted, err := e.Lock.TryToggleEdit(req.ForceAcquire)
	if err != nil {
		writeSessionError(w, err)
		return
	}
	if !granted {
		writeConflict(w, e.Lock.State().Lock)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.Sessions.Info(e))
}

// heartbeatSession handles POST /api/v1/sessions/{id}/heartbeat.
//
// @Summary      Heartbeat a session
// @Description  Keeps the session alive and refreshes its lock while editing.
// @Tags         Sessions
// @Param        id  path  string  true  "Connection ID"
// @Success      204
// @Failure      404  {object}  problemDetail
// @Security     ApiKeyAuth
// @Security     BearerAuth
// @Router       /sessions/{id}/heartbeat [post]
func (h *Handler) heartbeatSession(w http.ResponseWriter, r *http.Request) {
	e, ok := h.lookupSession(w, r)
	if !ok {
		return
	}
	_ = h.deps.Sessions.Touch(e.ID)
	if err := e.Lock.Heartbeat(); err != nil {
		writeSessionError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeSessionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, editlock.ErrNoFocus):
		writeError(w, http.StatusBadRequest, "no dashboard focused")
	case errors.Is(err, editlock.ErrSessionClosed):
		writeError(w, http.StatusNotFound, "session closed")
	default:
		writeError(w, http.StatusInternalServerError, "session operation failed")
	}
}
