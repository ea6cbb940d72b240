package auth

import "strings"

// ClaimsExtractor extracts values from JWT claims.
type ClaimsExtractor struct {
	// RoleClaimPath is the dot-separated path to roles in claims.
	// e.g., "realm_access.roles" or "roles"
	RoleClaimPath string

	// EmailClaimPath is the path to the email claim.
	EmailClaimPath string

	// NameClaimPath is the path to the name claim.
	NameClaimPath string

	// SubjectClaimPath is the path to the subject claim.
	SubjectClaimPath string
}

// Extract builds a UserContext from claims. Missing claims leave the
// corresponding fields empty.
func (e *ClaimsExtractor) Extract(claims map[string]any) *UserContext {
	uc := &UserContext{
		UserID: e.getStringValue(claims, e.SubjectClaimPath),
		Email:  e.getStringValue(claims, e.EmailClaimPath),
		Name:   e.getStringValue(claims, e.NameClaimPath),
	}
	if e.RoleClaimPath != "" {
		uc.Roles = e.getStringSlice(claims, e.RoleClaimPath)
	}
	return uc
}

// getStringValue gets a string value at a dot-separated path.
func (e *ClaimsExtractor) getStringValue(claims map[string]any, path string) string {
	if s, ok := e.getValue(claims, path).(string); ok {
		return s
	}
	return ""
}

// getStringSlice gets a string slice at a dot-separated path.
func (e *ClaimsExtractor) getStringSlice(claims map[string]any, path string) []string {
	switch v := e.getValue(claims, path).(type) {
	case []any:
		result := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				result = append(result, s)
			}
		}
		return result
	case []string:
		return v
	}
	return nil
}

// getValue gets a value at a dot-separated path.
func (*ClaimsExtractor) getValue(claims map[string]any, path string) any {
	if path == "" {
		return nil
	}

	var current any = claims
	for part := range strings.SplitSeq(path, ".") {
		m, ok := current.(map[string]any)
		if !ok {
			return nil
		}
		current = m[part]
	}
	return current
}
