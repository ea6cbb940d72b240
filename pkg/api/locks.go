package api

import (
	"net/http"
	"time"

	"github.com/txn2/homedash/pkg/editlock"
	"github.com/txn2/homedash/pkg/session"
)

// lockResponse describes one dashboard's lock state.
type lockResponse struct {
	DashboardID   int64            `json:"dashboard_id"`
	Locked        bool             `json:"locked"`
	LockedByOther bool             `json:"locked_by_other"`
	Lock          *editlock.Record `json:"lock,omitempty"`
	ExpiresAt     *time.Time       `json:"expires_at,omitempty"`
}

// acquireRequest is the body of POST /locks/acquire.
type acquireRequest struct {
	DashboardID  int64  `json:"dashboardId"`
	ForceAcquire bool   `json:"forceAcquire"`
	ConnectionID string `json:"connectionId"`
}

func newLockResponse(dashboardID int64, rec *editlock.Record, userID string, now time.Time) lockResponse {
	resp := lockResponse{DashboardID: dashboardID}
	if rec == nil || !rec.IsLive(now) {
		return resp
	}
	exp := rec.ExpiresAt()
	resp.Locked = true
	resp.LockedByOther = rec.OwnerID != userID
	resp.Lock = rec
	resp.ExpiresAt = &exp
	return resp
}

// listLocks handles GET /api/v1/locks.
//
// @Summary      List live locks
// @Description  Returns every dashboard currently locked for editing, ordered by dashboard ID.
// @Tags         Locks
// @Produce      json
// @Success      200  {array}   lockResponse
// @Failure      401  {object}  problemDetail
// @Security     ApiKeyAuth
// @Security     BearerAuth
// @Router       /locks [get]
func (h *Handler) listLocks(w http.ResponseWriter, r *http.Request) {
	uc, ok := currentUser(w, r)
	if !ok {
		return
	}
	now := h.deps.Registry.Now()
	live := h.deps.Registry.ListLive()
	result := make([]lockResponse, 0, len(live))
	for i := range live {
		result = append(result, newLockResponse(live[i].DashboardID, &live[i], uc.UserID, now))
	}
	writeJSON(w, http.StatusOK, result)
}

// getLock handles GET /api/v1/locks/{dashboardId}.
//
// @Summary      Get lock state
// @Description  Returns the holder of a dashboard's edit lock. Stale locks are reported as unlocked.
// @Tags         Locks
// @Produce      json
// @Param        dashboardId  path  integer  true  "Dashboard ID"
// @Success      200  {object}  lockResponse
// @Failure      400  {object}  problemDetail
// @Failure      404  {object}  problemDetail
// @Security     ApiKeyAuth
// @Security     BearerAuth
// @Router       /locks/{dashboardId} [get]
func (h *Handler) getLock(w http.ResponseWriter, r *http.Request) {
	uc, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "dashboardId")
	if !ok || !h.requireDashboard(w, r, id) {
		return
	}

	var rec *editlock.Record
	if cur, held := h.deps.Registry.Current(id); held {
		rec = &cur
	}
	writeJSON(w, http.StatusOK, newLockResponse(id, rec, uc.UserID, h.deps.Registry.Now()))
}

// acquireLock handles POST /api/v1/locks/acquire.
//
// @Summary      Acquire a lock
// @Description  Locks a dashboard for editing. With forceAcquire the current holder is displaced.
// @Tags         Locks
// @Accept       json
// @Produce      json
// @Param        body  body  acquireRequest  true  "Acquire request"
// @Success      200  {object}  lockResponse
// @Failure      400  {object}  problemDetail
// @Failure      404  {object}  problemDetail
// @Failure      409  {object}  problemDetail
// @Security     ApiKeyAuth
// @Security     BearerAuth
// @Router       /locks/acquire [post]
func (h *Handler) acquireLock(w http.ResponseWriter, r *http.Request) {
	uc, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req acquireRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.DashboardID <= 0 {
		writeError(w, http.StatusBadRequest, "dashboardId is required")
		return
	}
	if req.ConnectionID == "" {
		req.ConnectionID = session.ConnectionID(r.Context())
	}
	if req.ConnectionID == "" {
		writeError(w, http.StatusBadRequest, "connectionId is required")
		return
	}
	if !h.requireDashboard(w, r, req.DashboardID) {
		return
	}

	reg := h.deps.Registry
	if req.ForceAcquire {
		rec := reg.ForceAcquire(req.DashboardID, uc.UserID, uc.DisplayName(), req.ConnectionID)
		writeJSON(w, http.StatusOK, newLockResponse(req.DashboardID, &rec, uc.UserID, reg.Now()))
		return
	}

	rec, granted := reg.Acquire(req.DashboardID, uc.UserID, uc.DisplayName(), req.ConnectionID)
	if !granted {
		writeConflict(w, &rec)
		return
	}
	writeJSON(w, http.StatusOK, newLockResponse(req.DashboardID, &rec, uc.UserID, reg.Now()))
}

// releaseLock handles POST /api/v1/locks/{dashboardId}/release.
//
// @Summary      Release a lock
// @Description  Releases the caller's lock on a dashboard.
// @Tags         Locks
// @Param        dashboardId  path  integer  true  "Dashboard ID"
// @Success      204
// @Failure      400  {object}  problemDetail
// @Failure      404  {object}  problemDetail
// @Failure      409  {object}  problemDetail
// @Security     ApiKeyAuth
// @Security     BearerAuth
// @Router       /locks/{dashboardId}/release [post]
func (h *Handler) releaseLock(w http.ResponseWriter, r *http.Request) {
	uc, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "dashboardId")
	if !ok || !h.requireDashboard(w, r, id) {
		return
	}
	if !h.deps.Registry.Release(id, uc.UserID) {
		writeError(w, http.StatusConflict, "lock is not held by the caller")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// lockActivity handles POST /api/v1/locks/{dashboardId}/activity.
//
// @Summary      Heartbeat a lock
// @Description  Refreshes the caller's lock. A no-op when the caller does not hold it.
// @Tags         Locks
// @Param        dashboardId  path  integer  true  "Dashboard ID"
// @Success      204
// @Failure      400  {object}  problemDetail
// @Failure      404  {object}  problemDetail
// @Security     ApiKeyAuth
// @Security     BearerAuth
// @Router       /locks/{dashboardId}/activity [post]
func (h *Handler) lockActivity(w http.ResponseWriter, r *http.Request) {
	uc, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "dashboardId")
	if !ok || !h.requireDashboard(w, r, id) {
		return
	}
	h.deps.Registry.UpdateActivity(id, uc.UserID)
	w.WriteHeader(http.StatusNoContent)
}
