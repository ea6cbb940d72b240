package auth

import (
	"context"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// JWTConfig configures the JWT authenticator.
type JWTConfig struct {
	// Issuer is the expected iss claim.
	Issuer string

	// SigningKey is the HMAC key used to verify signatures.
	SigningKey []byte

	// RoleClaimPath is the dot-separated path to roles, e.g. "realm_access.roles".
	RoleClaimPath string

	// NameClaimPath is the path to the display name. Defaults to "name".
	NameClaimPath string
}

// JWTAuthenticator validates HMAC-signed bearer tokens, typically minted by
// the reverse proxy or identity provider in front of the dashboard.
type JWTAuthenticator struct {
	cfg       JWTConfig
	extractor *ClaimsExtractor
}

// NewJWTAuthenticator creates a new JWT authenticator.
func NewJWTAuthenticator(cfg JWTConfig) (*JWTAuthenticator, error) {
	if cfg.Issuer == "" {
		return nil, fmt.Errorf("jwt issuer is required")
	}
	if len(cfg.SigningKey) == 0 {
		return nil, fmt.Errorf("jwt signing key is required")
	}
	if cfg.NameClaimPath == "" {
		cfg.NameClaimPath = "name"
	}

	return &JWTAuthenticator{
		cfg: cfg,
		extractor: &ClaimsExtractor{
			RoleClaimPath:    cfg.RoleClaimPath,
			EmailClaimPath:   "email",
			NameClaimPath:    cfg.NameClaimPath,
			SubjectClaimPath: "sub",
		},
	}, nil
}

// Authenticate validates the JWT token and returns user info.
func (a *JWTAuthenticator) Authenticate(ctx context.Context) (*UserContext, error) {
	token := GetToken(ctx)
	if token == "" {
		return nil, ErrNoCredentials
	}

	claims, err := a.parseAndValidateToken(token)
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	uc := a.extractor.Extract(claims)
	if uc.UserID == "" {
		return nil, fmt.Errorf("missing sub claim")
	}
	if uc.Name == "" {
		if username, ok := claims["preferred_username"].(string); ok {
			uc.Name = username
		}
	}
	uc.AuthType = AuthTypeJWT
	return uc, nil
}

// parseAndValidateToken parses and validates the JWT.
func (a *JWTAuthenticator) parseAndValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return a.cfg.SigningKey, nil
	}, jwt.WithIssuer(a.cfg.Issuer), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("parsing token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid claims")
	}
	return claims, nil
}

// Verify interface compliance.
var _ Authenticator = (*JWTAuthenticator)(nil)
