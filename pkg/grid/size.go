package grid

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	errs "github.com/matzehuels/gridcompose/pkg/errors"
)

// DefaultEstimate is the value an estimated size without a hint resolves to.
const DefaultEstimate = 100.0

// Axis selects the width or height of an item.
type Axis int

const (
	AxisWidth Axis = iota
	AxisHeight
)

func (a Axis) String() string {
	if a == AxisHeight {
		return "height"
	}
	return "width"
}

// SizeKind enumerates the ways one axis of an item can be sized.
type SizeKind int

const (
	// SizeFixed is an exact value.
	SizeFixed SizeKind = iota
	// SizeEstimated is resolved from content at render time. The hint, if
	// present, is used for the first layout pass.
	SizeEstimated
	// SizeFit takes the container width. Not valid on the height axis.
	SizeFit
)

// SizeSpec describes one axis of an item.
type SizeSpec struct {
	Kind    SizeKind
	Value   float64 // fixed value or estimate hint
	HasHint bool    // only meaningful for SizeEstimated
}

// Fixed returns an exact size.
func Fixed(v float64) SizeSpec { return SizeSpec{Kind: SizeFixed, Value: v} }

// Estimated returns an estimated size without a hint.
func Estimated() SizeSpec { return SizeSpec{Kind: SizeEstimated} }

// EstimatedHint returns an estimated size with an initial hint.
func EstimatedHint(v float64) SizeSpec {
	return SizeSpec{Kind: SizeEstimated, Value: v, HasHint: true}
}

// Fit returns a fit-to-container size. Use it for widths only.
func Fit() SizeSpec { return SizeSpec{Kind: SizeFit} }

// IsEstimated reports whether the spec is resolved from content.
func (s SizeSpec) IsEstimated() bool { return s.Kind == SizeEstimated }

// Resolve returns the numeric value of the spec on the given axis.
//
// Estimated specs resolve to their hint or [DefaultEstimate]. Fit widths
// resolve to containerWidth. A fit height is a programming error and panics.
func (s SizeSpec) Resolve(axis Axis, containerWidth float64) float64 {
	switch s.Kind {
	case SizeFixed:
		return s.Value
	case SizeEstimated:
		if s.HasHint {
			return s.Value
		}
		return DefaultEstimate
	case SizeFit:
		if axis == AxisHeight {
			panic("grid: fit is not supported on the height axis")
		}
		return containerWidth
	}
	panic(fmt.Sprintf("grid: unknown size kind %d", s.Kind))
}

// Validate checks the spec for use on the given axis.
func (s SizeSpec) Validate(axis Axis) error {
	switch s.Kind {
	case SizeFixed, SizeEstimated:
		if s.Value < 0 || math.IsNaN(s.Value) || math.IsInf(s.Value, 0) {
			return errs.New(errs.ErrCodeInvalidSize, "%s must be a finite non-negative number, got %v", axis, s.Value)
		}
	case SizeFit:
		if axis == AxisHeight {
			return errs.New(errs.ErrCodeInvalidSize, "height cannot be fit")
		}
	default:
		return errs.New(errs.ErrCodeInvalidSize, "unknown %s kind %d", axis, s.Kind)
	}
	return nil
}

// String renders the spec in the form accepted by [ParseSizeSpec].
func (s SizeSpec) String() string {
	switch s.Kind {
	case SizeFit:
		return "fit"
	case SizeEstimated:
		if s.HasHint {
			return "est:" + formatNumber(s.Value)
		}
		return "est"
	default:
		return formatNumber(s.Value)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s SizeSpec) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *SizeSpec) UnmarshalText(text []byte) error {
	v, err := ParseSizeSpec(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// ParseSizeSpec parses "fit", "est", "est:120" or a plain number.
func ParseSizeSpec(s string) (SizeSpec, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	switch {
	case v == "fit":
		return Fit(), nil
	case v == "est" || v == "estimated":
		return Estimated(), nil
	case strings.HasPrefix(v, "est:"):
		n, err := strconv.ParseFloat(strings.TrimPrefix(v, "est:"), 64)
		if err != nil {
			return SizeSpec{}, errs.Wrap(errs.ErrCodeInvalidSize, err, "invalid estimate hint %q", s)
		}
		return EstimatedHint(n), nil
	case v == "":
		return SizeSpec{}, errs.New(errs.ErrCodeInvalidSize, "empty size")
	}
	n, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return SizeSpec{}, errs.Wrap(errs.ErrCodeInvalidSize, err, "invalid size %q", s)
	}
	return Fixed(n), nil
}

// Size pairs the width and height specs of an item.
type Size struct {
	Width  SizeSpec
	Height SizeSpec
}

// NewSize is shorthand for Size{Width: w, Height: h}.
func NewSize(w, h SizeSpec) Size { return Size{Width: w, Height: h} }

// Validate rejects fit heights and negative values.
func (s Size) Validate() error {
	if err := s.Width.Validate(AxisWidth); err != nil {
		return err
	}
	return s.Height.Validate(AxisHeight)
}

// WidthValue resolves the width against the container.
func (s Size) WidthValue(containerWidth float64) float64 {
	return s.Width.Resolve(AxisWidth, containerWidth)
}

// HeightValue resolves the height. It panics on a fit height.
func (s Size) HeightValue() float64 {
	return s.Height.Resolve(AxisHeight, 0)
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
