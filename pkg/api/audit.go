package api

import (
	"net/http"
	"strconv"

	"github.com/txn2/homedash/pkg/audit"
)

const (
	defaultAuditLimit = 50
	maxAuditLimit     = 1000

	paramStartTime = "start_time"
	paramEndTime   = "end_time"
)

// auditEventResponse wraps a page of audit events.
type auditEventResponse struct {
	Data   []audit.Event `json:"data"`
	Limit  int           `json:"limit"`
	Offset int           `json:"offset"`
}

// registerAuditRoutes registers audit endpoints.
func (h *Handler) registerAuditRoutes() {
	if h.deps.Audit == nil {
		return
	}
	h.mux.HandleFunc("GET /api/v1/audit/locks", h.listLockEvents)
	h.mux.HandleFunc("GET /api/v1/audit/locks/breakdown", h.getLockBreakdown)
}

// listLockEvents handles GET /api/v1/audit/locks.
//
// @Summary      List lock events
// @Description  Returns lock audit events, newest first.
// @Tags         Audit
// @Produce      json
// @Param        dashboard_id  query  integer  false  "Filter by dashboard ID"
// @Param        owner_id      query  string   false  "Filter by owner ID"
// @Param        kind          query  string   false  "Filter by kind: acquired, taken_over, released, expired"
// @Param        start_time    query  string   false  "Events after this time (RFC 3339)"
// @Param        end_time      query  string   false  "Events before this time (RFC 3339)"
// @Param        limit         query  integer  false  "Max events (default: 50, max: 1000)"
// @Param        offset        query  integer  false  "Events to skip"
// @Success      200  {object}  auditEventResponse
// @Failure      400  {object}  problemDetail
// @Failure      500  {object}  problemDetail
// @Security     ApiKeyAuth
// @Security     BearerAuth
// @Router       /audit/locks [get]
func (h *Handler) listLockEvents(w http.ResponseWriter, r *http.Request) {
	if _, ok := currentUser(w, r); !ok {
		return
	}
	q := r.URL.Query()
	filter := audit.QueryFilter{
		OwnerID:   q.Get("owner_id"),
		Kind:      audit.Kind(q.Get("kind")),
		StartTime: parseTimeParam(q, paramStartTime),
		EndTime:   parseTimeParam(q, paramEndTime),
		Limit:     parseIntParam(q, "limit"),
		Offset:    parseIntParam(q, "offset"),
	}
	if filter.Kind != "" && !audit.ValidKinds[filter.Kind] {
		writeError(w, http.StatusBadRequest, "invalid kind: must be acquired, taken_over, released, or expired")
		return
	}
	if v := q.Get("dashboard_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid dashboard_id")
			return
		}
		filter.DashboardID = &id
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultAuditLimit
	}
	if filter.Limit > maxAuditLimit {
		filter.Limit = maxAuditLimit
	}

	events, err := h.deps.Audit.Query(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to query lock events")
		return
	}
	if events == nil {
		events = []audit.Event{}
	}
	writeJSON(w, http.StatusOK, auditEventResponse{
		Data:   events,
		Limit:  filter.Limit,
		Offset: filter.Offset,
	})
}

// getLockBreakdown handles GET /api/v1/audit/locks/breakdown.
//
// @Summary      Get lock event breakdown
// @Description  Returns lock event counts grouped by a dimension.
// @Tags         Audit
// @Produce      json
// @Param        group_by    query  string   true   "Dimension: dashboard_id, owner_id, kind"
// @Param        limit       query  integer  false  "Max entries (default: 10, max: 100)"
// @Param        start_time  query  string   false  "Start time (RFC 3339)"
// @Param        end_time    query  string   false  "End time (RFC 3339)"
// @Success      200  {array}   audit.BreakdownEntry
// @Failure      400  {object}  problemDetail
// @Failure      500  {object}  problemDetail
// @Security     ApiKeyAuth
// @Security     BearerAuth
// @Router       /audit/locks/breakdown [get]
func (h *Handler) getLockBreakdown(w http.ResponseWriter, r *http.Request) {
	if _, ok := currentUser(w, r); !ok {
		return
	}
	q := r.URL.Query()

	groupBy := audit.BreakdownDimension(q.Get("group_by"))
	if !audit.ValidBreakdownDimensions[groupBy] {
		writeError(w, http.StatusBadRequest, "invalid group_by: must be dashboard_id, owner_id, or kind")
		return
	}

	entries, err := h.deps.Audit.Breakdown(r.Context(), audit.BreakdownFilter{
		GroupBy:   groupBy,
		Limit:     parseIntParam(q, "limit"),
		StartTime: parseTimeParam(q, paramStartTime),
		EndTime:   parseTimeParam(q, paramEndTime),
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to query breakdown")
		return
	}
	if entries == nil {
		entries = []audit.BreakdownEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}
