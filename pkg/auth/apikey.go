package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidAPIKey is returned for unknown API keys.
var ErrInvalidAPIKey = errors.New("invalid API key")

// APIKeyConfig holds API key configuration.
type APIKeyConfig struct {
	Keys []APIKey
}

// APIKey represents an API key entry. Either Key or KeyHash (bcrypt) is set.
type APIKey struct {
	Key         string
	KeyHash     string
	Name        string
	DisplayName string
	Roles       []string
}

// APIKeyAuthenticator authenticates using API keys.
type APIKeyAuthenticator struct {
	plain  []APIKey
	hashed []APIKey
}

// NewAPIKeyAuthenticator creates a new API key authenticator.
func NewAPIKeyAuthenticator(cfg APIKeyConfig) *APIKeyAuthenticator {
	a := &APIKeyAuthenticator{}
	for _, k := range cfg.Keys {
		if k.KeyHash != "" {
			a.hashed = append(a.hashed, k)
		} else {
			a.plain = append(a.plain, k)
		}
	}
	return a
}

// Authenticate validates the API key and returns user info.
func (a *APIKeyAuthenticator) Authenticate(ctx context.Context) (*UserContext, error) {
	token := GetToken(ctx)
	if token == "" {
		return nil, ErrNoCredentials
	}

	for i := range a.plain {
		if subtle.ConstantTimeCompare([]byte(a.plain[i].Key), []byte(token)) == 1 {
			return a.plain[i].userContext(), nil
		}
	}
	for i := range a.hashed {
		err := bcrypt.CompareHashAndPassword([]byte(a.hashed[i].KeyHash), []byte(token))
		if err == nil {
			return a.hashed[i].userContext(), nil
		}
		if !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, fmt.Errorf("checking key %q: %w", a.hashed[i].Name, err)
		}
	}

	return nil, ErrInvalidAPIKey
}

func (k *APIKey) userContext() *UserContext {
	name := k.DisplayName
	if name == "" {
		name = k.Name
	}
	return &UserContext{
		UserID:   "apikey:" + k.Name,
		Name:     name,
		Roles:    k.Roles,
		AuthType: AuthTypeAPIKey,
	}
}

// HashAPIKey returns a bcrypt hash suitable for APIKey.KeyHash.
func HashAPIKey(key string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hashing API key: %w", err)
	}
	return string(h), nil
}

// Verify interface compliance.
var _ Authenticator = (*APIKeyAuthenticator)(nil)
