package auth

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

const (
	testRoleEditor = "editor"
	testRoleViewer = "viewer"
)

func TestAPIKeyAuthenticator(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hashed-key"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("GenerateFromPassword() error = %v", err)
	}
	cfg := APIKeyConfig{
		Keys: []APIKey{
			{Key: "test-key-1", Name: "kiosk", DisplayName: "Hall Kiosk", Roles: []string{testRoleEditor}},
			{Key: "test-key-2", Name: "tablet", Roles: []string{testRoleViewer}},
			{KeyHash: string(hash), Name: "hashed"},
		},
	}
	auth := NewAPIKeyAuthenticator(cfg)

	t.Run("valid key", func(t *testing.T) {
		ctx := WithToken(context.Background(), "test-key-1")
		uc, err := auth.Authenticate(ctx)
		if err != nil {
			t.Fatalf("Authenticate() error = %v", err)
		}
		if uc.AuthType != AuthTypeAPIKey {
			t.Errorf("AuthType = %q, want %q", uc.AuthType, AuthTypeAPIKey)
		}
		if uc.UserID != "apikey:kiosk" {
			t.Errorf("UserID = %q, want %q", uc.UserID, "apikey:kiosk")
		}
		if uc.Name != "Hall Kiosk" {
			t.Errorf("Name = %q, want %q", uc.Name, "Hall Kiosk")
		}
		if !uc.HasRole(testRoleEditor) {
			t.Errorf("Roles = %v, want [%s]", uc.Roles, testRoleEditor)
		}
	})

	t.Run("name falls back to key name", func(t *testing.T) {
		ctx := WithToken(context.Background(), "test-key-2")
		uc, err := auth.Authenticate(ctx)
		if err != nil {
			t.Fatalf("Authenticate() error = %v", err)
		}
		if uc.Name != "tablet" {
			t.Errorf("Name = %q, want %q", uc.Name, "tablet")
		}
	})

	t.Run("hashed key", func(t *testing.T) {
		ctx := WithToken(context.Background(), "hashed-key")
		uc, err := auth.Authenticate(ctx)
		if err != nil {
			t.Fatalf("Authenticate() error = %v", err)
		}
		if uc.UserID != "apikey:hashed" {
			t.Errorf("UserID = %q, want %q", uc.UserID, "apikey:hashed")
		}
	})

	t.Run("invalid key", func(t *testing.T) {
		ctx := WithToken(context.Background(), "invalid-key")
		_, err := auth.Authenticate(ctx)
		if !errors.Is(err, ErrInvalidAPIKey) {
			t.Errorf("Authenticate() error = %v, want %v", err, ErrInvalidAPIKey)
		}
	})

	t.Run("no key", func(t *testing.T) {
		_, err := auth.Authenticate(context.Background())
		if !errors.Is(err, ErrNoCredentials) {
			t.Errorf("Authenticate() error = %v, want %v", err, ErrNoCredentials)
		}
	})
}

func TestHashAPIKey(t *testing.T) {
	hash, err := HashAPIKey("secret")
	if err != nil {
		t.Fatalf("HashAPIKey() error = %v", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte("secret")); err != nil {
		t.Errorf("hash does not verify: %v", err)
	}
}
