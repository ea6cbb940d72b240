package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/txn2/homedash/pkg/editlock"
)

const (
	// eventBuffer is how many changes may queue for a slow stream before it
	// falls back to sending a fresh snapshot.
	eventBuffer = 32

	// keepAliveInterval is how often an idle stream sends a comment line.
	keepAliveInterval = 25 * time.Second
)

// lockEvent is the data payload of a server-sent lock event.
type lockEvent struct {
	DashboardID int64            `json:"dashboard_id"`
	Reason      string           `json:"reason,omitempty"`
	Seq         uint64           `json:"seq"`
	Lock        *editlock.Record `json:"lock"`
}

// lockEvents handles GET /api/v1/locks/{dashboardId}/events.
//
// The stream opens with a "snapshot" event and then emits one "lock" event
// per change. A client that falls behind receives a new "snapshot" instead
// of the changes it missed. Events carry seq; stale ones can be discarded.
//
// @Summary      Stream lock changes
// @Description  Server-sent events for one dashboard's lock.
// @Tags         Locks
// @Produce      text/event-stream
// @Param        dashboardId  path  integer  true  "Dashboard ID"
// @Success      200
// @Failure      400  {object}  problemDetail
// @Failure      404  {object}  problemDetail
// @Security     ApiKeyAuth
// @Security     BearerAuth
// @Router       /locks/{dashboardId}/events [get]
func (h *Handler) lockEvents(w http.ResponseWriter, r *http.Request) {
	if _, ok := currentUser(w, r); !ok {
		return
	}
	id, ok := pathID(w, r, "dashboardId")
	if !ok || !h.requireDashboard(w, r, id) {
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming not supported")
		return
	}

	changes := make(chan editlock.Change, eventBuffer)
	var lagged atomic.Bool
	wake := make(chan struct{}, 1)

	notifier := h.deps.Registry.Notifier()
	sub := notifier.Subscribe(func(c editlock.Change) {
		if c.DashboardID != id {
			return
		}
		select {
		case changes <- c:
		default:
			lagged.Store(true)
			select {
			case wake <- struct{}{}:
			default:
			}
		}
	})
	defer notifier.Unsubscribe(sub)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	if err := h.writeSnapshot(w, id); err != nil {
		return
	}
	flusher.Flush()

	keepAlive := time.NewTicker(keepAliveInterval)
	defer keepAlive.Stop()

	for {
		var err error
		select {
		case <-r.Context().Done():
			return
		case c := <-changes:
			err = writeEvent(w, "lock", lockEvent{
				DashboardID: c.DashboardID,
				Reason:      string(c.Reason),
				Seq:         c.Seq,
				Lock:        c.Record,
			})
		case <-wake:
		case <-keepAlive.C:
			_, err = fmt.Fprint(w, ": keep-alive\n\n")
		}
		if err == nil && lagged.Swap(false) {
			// Drop the backlog; the snapshot supersedes it.
			for len(changes) > 0 {
				<-changes
			}
			err = h.writeSnapshot(w, id)
		}
		if err != nil {
			slog.Debug("lock stream closed", "dashboard_id", id, "error", err)
			return
		}
		flusher.Flush()
	}
}

func (h *Handler) writeSnapshot(w http.ResponseWriter, id int64) error {
	rec, seq := h.deps.Registry.Snapshot(id)
	ev := lockEvent{DashboardID: id, Seq: seq}
	if rec != nil && rec.IsLive(h.deps.Registry.Now()) {
		ev.Lock = rec
	}
	return writeEvent(w, "snapshot", ev)
}

func writeEvent(w http.ResponseWriter, name string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s event: %w", name, err)
	}
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", name, data); err != nil {
		return fmt.Errorf("writing %s event: %w", name, err)
	}
	return nil
}
