// Package auth maps request credentials to a dashboard user.
package auth

import (
	"context"
	"slices"
)

// contextKey is a private type for context keys.
type contextKey int

const (
	userContextKey contextKey = iota
	tokenContextKey
)

// Auth types reported in UserContext.AuthType.
const (
	AuthTypeAPIKey    = "apikey"
	AuthTypeJWT       = "jwt"
	AuthTypeAnonymous = "anonymous"
)

// AnonymousUserID is the identity given to unauthenticated requests when
// anonymous access is allowed.
const AnonymousUserID = "anonymous"

// UserContext holds authenticated user information.
type UserContext struct {
	UserID   string   `json:"user_id"`
	Name     string   `json:"name,omitempty"`
	Email    string   `json:"email,omitempty"`
	Roles    []string `json:"roles,omitempty"`
	AuthType string   `json:"auth_type"`
}

// DisplayName returns Name, falling back to UserID.
func (uc *UserContext) DisplayName() string {
	if uc.Name != "" {
		return uc.Name
	}
	return uc.UserID
}

// HasRole checks if the user has a specific role.
func (uc *UserContext) HasRole(role string) bool {
	return slices.Contains(uc.Roles, role)
}

// WithUserContext adds user context to the context.
func WithUserContext(ctx context.Context, uc *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey, uc)
}

// GetUserContext retrieves user context from the context.
func GetUserContext(ctx context.Context) *UserContext {
	if uc, ok := ctx.Value(userContextKey).(*UserContext); ok {
		return uc
	}
	return nil
}

// WithToken adds a raw credential to the context.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenContextKey, token)
}

// GetToken retrieves the raw credential from the context.
func GetToken(ctx context.Context) string {
	token, _ := ctx.Value(tokenContextKey).(string)
	return token
}
