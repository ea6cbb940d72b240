package api

import (
	"errors"
	"net/http"

	"github.com/txn2/homedash/pkg/dashboard"
)

// createDashboardRequest is the body of POST /dashboards.
type createDashboardRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// listDashboards handles GET /api/v1/dashboards.
//
// @Summary      List dashboards
// @Tags         Dashboards
// @Produce      json
// @Success      200  {array}   dashboard.Dashboard
// @Failure      500  {object}  problemDetail
// @Security     ApiKeyAuth
// @Security     BearerAuth
// @Router       /dashboards [get]
func (h *Handler) listDashboards(w http.ResponseWriter, r *http.Request) {
	if _, ok := currentUser(w, r); !ok {
		return
	}
	list, err := h.deps.Dashboards.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list dashboards")
		return
	}
	if list == nil {
		list = []dashboard.Dashboard{}
	}
	writeJSON(w, http.StatusOK, list)
}

// createDashboard handles POST /api/v1/dashboards.
//
// @Summary      Create a dashboard
// @Tags         Dashboards
// @Accept       json
// @Produce      json
// @Param        body  body  createDashboardRequest  true  "Dashboard"
// @Success      201  {object}  dashboard.Dashboard
// @Failure      400  {object}  problemDetail
// @Failure      500  {object}  problemDetail
// @Security     ApiKeyAuth
// @Security     BearerAuth
// @Router       /dashboards [post]
func (h *Handler) createDashboard(w http.ResponseWriter, r *http.Request) {
	if _, ok := currentUser(w, r); !ok {
		return
	}
	var req createDashboardRequest
	if !decodeBody(w, r, &req) {
		return
	}
	d := &dashboard.Dashboard{Name: req.Name, Description: req.Description}
	if err := h.deps.Dashboards.Create(r.Context(), d); err != nil {
		if errors.Is(err, dashboard.ErrNameRequired) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to create dashboard")
		return
	}
	writeJSON(w, http.StatusCreated, d)
}

// getDashboard handles GET /api/v1/dashboards/{id}.
//
// @Summary      Get a dashboard
// @Tags         Dashboards
// @Produce      json
// @Param        id  path  integer  true  "Dashboard ID"
// @Success      200  {object}  dashboard.Dashboard
// @Failure      404  {object}  problemDetail
// @Security     ApiKeyAuth
// @Security     BearerAuth
// @Router       /dashboards/{id} [get]
func (h *Handler) getDashboard(w http.ResponseWriter, r *http.Request) {
	if _, ok := currentUser(w, r); !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	d, err := h.deps.Dashboards.Get(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get dashboard")
		return
	}
	if d == nil {
		writeError(w, http.StatusNotFound, "dashboard not found")
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// deleteDashboard handles DELETE /api/v1/dashboards/{id}.
//
// @Summary      Delete a dashboard
// @Description  Removes a dashboard from the catalog. Refused while someone is editing it.
// @Tags         Dashboards
// @Param        id  path  integer  true  "Dashboard ID"
// @Success      204
// @Failure      404  {object}  problemDetail
// @Failure      409  {object}  problemDetail
// @Security     ApiKeyAuth
// @Security     BearerAuth
// @Router       /dashboards/{id} [delete]
func (h *Handler) deleteDashboard(w http.ResponseWriter, r *http.Request) {
	uc, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if h.deps.Registry.IsLockedByOther(id, uc.UserID) {
		rec, _ := h.deps.Registry.Current(id)
		writeConflict(w, &rec)
		return
	}

	err := h.deps.Dashboards.Delete(r.Context(), id)
	switch {
	case errors.Is(err, dashboard.ErrNotFound):
		writeError(w, http.StatusNotFound, "dashboard not found")
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, "failed to delete dashboard")
		return
	}
	h.deps.Registry.Release(id, uc.UserID)
	w.WriteHeader(http.StatusNoContent)
}
