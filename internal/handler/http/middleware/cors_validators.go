package middleware

import (
	"strings"
)

// WildcardOrigin allows every origin.
const WildcardOrigin = "*"

// WhitelistValidator allows origins from a fixed list.
// Comparison is case-insensitive and ignores a trailing slash.
type WhitelistValidator struct {
	allowedOrigins []string
}

// NewWhitelistValidator creates a validator for origins. Empty entries are skipped.
func NewWhitelistValidator(origins []string) *WhitelistValidator {
	normalized := make([]string, 0, len(origins))
	for _, origin := range origins {
		if origin = normalizeOrigin(origin); origin != "" {
			normalized = append(normalized, origin)
		}
	}

	return &WhitelistValidator{
		allowedOrigins: normalized,
	}
}

func (v *WhitelistValidator) IsAllowed(origin string) bool {
	origin = normalizeOrigin(origin)
	if origin == "" {
		return false
	}

	for _, allowed := range v.allowedOrigins {
		if origin == allowed {
			return true
		}
	}

	return false
}

func (v *WhitelistValidator) GetAllowedOrigins() []string {
	out := make([]string, len(v.allowedOrigins))
	copy(out, v.allowedOrigins)
	return out
}

// AnyOriginValidator allows every non-empty origin.
type AnyOriginValidator struct{}

func (AnyOriginValidator) IsAllowed(origin string) bool { return origin != "" }

func (AnyOriginValidator) GetAllowedOrigins() []string { return []string{WildcardOrigin} }

// NewOriginValidator returns AnyOriginValidator when origins contains "*",
// and a WhitelistValidator otherwise.
func NewOriginValidator(origins []string) OriginValidator {
	for _, o := range origins {
		if strings.TrimSpace(o) == WildcardOrigin {
			return AnyOriginValidator{}
		}
	}
	return NewWhitelistValidator(origins)
}

func normalizeOrigin(origin string) string {
	origin = strings.ToLower(strings.TrimSpace(origin))
	return strings.TrimSuffix(origin, "/")
}
