package auth

import (
	"context"
	"errors"
	"fmt"
)

// ErrNoCredentials is returned when a request carries no token.
var ErrNoCredentials = errors.New("no credentials provided")

// Authenticator validates the credential stored in ctx.
type Authenticator interface {
	Authenticate(ctx context.Context) (*UserContext, error)
}

// ChainedAuthenticator tries multiple authenticators in order.
type ChainedAuthenticator struct {
	authenticators []Authenticator
	allowAnonymous bool
}

// ChainedAuthConfig configures the chained authenticator.
type ChainedAuthConfig struct {
	AllowAnonymous bool
}

// NewChainedAuthenticator creates a new chained authenticator.
func NewChainedAuthenticator(cfg ChainedAuthConfig, authenticators ...Authenticator) *ChainedAuthenticator {
	return &ChainedAuthenticator{
		authenticators: authenticators,
		allowAnonymous: cfg.AllowAnonymous,
	}
}

// Authenticate tries each authenticator in order. Anonymous access, when
// allowed, only applies to requests without any credential; a bad token is
// always rejected.
func (c *ChainedAuthenticator) Authenticate(ctx context.Context) (*UserContext, error) {
	if GetToken(ctx) == "" {
		if c.allowAnonymous {
			return &UserContext{
				UserID:   AnonymousUserID,
				Name:     "Anonymous",
				AuthType: AuthTypeAnonymous,
			}, nil
		}
		return nil, ErrNoCredentials
	}

	var lastErr error
	for _, a := range c.authenticators {
		uc, err := a.Authenticate(ctx)
		if err == nil && uc != nil {
			return uc, nil
		}
		if err != nil {
			lastErr = err
		}
	}

	if lastErr != nil {
		return nil, lastErr
	}
	return nil, fmt.Errorf("authentication failed")
}

// Verify interface compliance.
var _ Authenticator = (*ChainedAuthenticator)(nil)
