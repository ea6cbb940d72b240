package session

import (
	"context"
	"log/slog"
	"net/http"
)

// ConnectionIDHeader carries the connection ID on client requests.
const ConnectionIDHeader = "X-Connection-Id"

type contextKey struct{}

// WithConnectionID adds a connection ID to the context.
func WithConnectionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// ConnectionID returns the connection ID stored by Middleware, or "".
func ConnectionID(ctx context.Context) string {
	id, _ := ctx.Value(contextKey{}).(string)
	return id
}

// Middleware records activity for the connection named in the
// X-Connection-Id header and makes the ID available via ConnectionID.
// Unknown IDs are passed through; handlers decide whether they matter.
func Middleware(m *Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(ConnectionIDHeader)
			if id == "" {
				next.ServeHTTP(w, r)
				return
			}

			if err := m.Touch(id); err != nil {
				slog.Debug("session: touch failed", "connection_id", id, "error", err)
			}
			next.ServeHTTP(w, r.WithContext(WithConnectionID(r.Context(), id)))
		})
	}
}
