package errors

import (
	"math"
	"strings"
	"testing"
)

func TestValidateIdentity(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "card-1", false},
		{"uuid", "6ba7b812-9dad-11d1-80b4-00c04fd430c8", false},
		{"unicode", "karte-ü", false},
		{"with spaces inside", "hero banner", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", MaxIdentityLength+1), true},
		{"control char", "foo\x01bar", true},
		{"newline", "foo\nbar", true},
		{"leading space", " foo", true},
		{"trailing space", "foo ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateIdentity(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateIdentity(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidIdentity) {
				t.Errorf("ValidateIdentity(%q) returned wrong error code: %v", tt.input, err)
			}
		})
	}
}

func TestValidateWidth(t *testing.T) {
	tests := []struct {
		name    string
		input   float64
		wantErr bool
	}{
		{"zero", 0, false},
		{"phone", 390, false},
		{"fractional", 320.5, false},

		{"negative", -1, true},
		{"nan", math.NaN(), true},
		{"inf", math.Inf(1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateWidth(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateWidth(%v) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidWidth) {
				t.Errorf("ValidateWidth(%v) returned wrong error code: %v", tt.input, err)
			}
		})
	}
}

func TestErrorCodesAreUnique(t *testing.T) {
	codes := []Code{
		ErrCodeInvalidInput,
		ErrCodeInvalidSize,
		ErrCodeInvalidStyle,
		ErrCodeInvalidManifest,
		ErrCodeInvalidFormat,
		ErrCodeInvalidWidth,
		ErrCodeInvalidIdentity,
		ErrCodeInvalidPath,
		ErrCodeNotFound,
		ErrCodeFileNotFound,
		ErrCodeNetwork,
		ErrCodeTimeout,
		ErrCodeInternal,
		ErrCodeUnsupported,
	}

	seen := make(map[Code]bool)
	for _, code := range codes {
		if seen[code] {
			t.Errorf("Duplicate error code: %s", code)
		}
		seen[code] = true
	}
}
