package errors

import (
	"math"
	"strings"
	"unicode"
)

// MaxIdentityLength bounds item identities.
const MaxIdentityLength = 256

// ValidateIdentity validates an item identity.
//
// Validation rules:
//   - Identity cannot be empty
//   - Maximum length of MaxIdentityLength bytes
//   - No control characters
//   - No surrounding whitespace
func ValidateIdentity(id string) error {
	if id == "" {
		return New(ErrCodeInvalidIdentity, "identity cannot be empty")
	}
	if len(id) > MaxIdentityLength {
		return New(ErrCodeInvalidIdentity, "identity too long (max %d characters)", MaxIdentityLength)
	}
	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidIdentity, "identity %q contains control characters", id)
		}
	}
	if strings.TrimSpace(id) != id {
		return New(ErrCodeInvalidIdentity, "identity %q has surrounding whitespace", id)
	}
	return nil
}

// ValidateWidth validates a container width. Zero is allowed and lays out
// every fit item with zero width.
func ValidateWidth(w float64) error {
	if math.IsNaN(w) || math.IsInf(w, 0) {
		return New(ErrCodeInvalidWidth, "width must be finite, got %v", w)
	}
	if w < 0 {
		return New(ErrCodeInvalidWidth, "width must not be negative, got %v", w)
	}
	return nil
}
