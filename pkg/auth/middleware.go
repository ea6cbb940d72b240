package auth

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
)

// TokenFromRequest returns the Bearer token, falling back to X-API-Key.
func TokenFromRequest(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if token, ok := strings.CutPrefix(authHeader, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return r.Header.Get("X-API-Key")
}

// Middleware authenticates every request with authn and stores the resulting
// UserContext on the request context. Failures are answered with 401.
func Middleware(authn Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if token := TokenFromRequest(r); token != "" {
				ctx = WithToken(ctx, token)
			}

			uc, err := authn.Authenticate(ctx)
			if err != nil || uc == nil {
				if err != nil && !errors.Is(err, ErrNoCredentials) {
					slog.Debug("authentication failed", "path", r.URL.Path, "error", err)
				}
				writeUnauthorized(w)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUserContext(ctx, uc)))
		})
	}
}

func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.Header().Set("WWW-Authenticate", "Bearer")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"type":   "about:blank",
		"title":  http.StatusText(http.StatusUnauthorized),
		"status": http.StatusUnauthorized,
		"detail": "missing or invalid credentials",
	})
}
