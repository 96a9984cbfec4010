package geometry

import (
	"fmt"
	"strconv"

	"github.com/matzehuels/gridcompose/pkg/grid"
)

// DimensionKind says how a dimension's value is interpreted.
type DimensionKind int

const (
	// KindAbsolute is an exact point value.
	KindAbsolute DimensionKind = iota
	// KindEstimated is a first-pass value refined from content.
	KindEstimated
	// KindFractional is a fraction of the container width.
	KindFractional
)

var dimensionKindNames = [...]string{"absolute", "estimated", "fractional"}

func (k DimensionKind) String() string {
	if int(k) < len(dimensionKindNames) {
		return dimensionKindNames[k]
	}
	return "dimension(" + strconv.Itoa(int(k)) + ")"
}

// MarshalText implements encoding.TextMarshaler.
func (k DimensionKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *DimensionKind) UnmarshalText(text []byte) error {
	for i, n := range dimensionKindNames {
		if n == string(text) {
			*k = DimensionKind(i)
			return nil
		}
	}
	return fmt.Errorf("unknown dimension kind %q", text)
}

// Dimension is one resolved axis of a node.
type Dimension struct {
	Kind  DimensionKind `json:"kind"`
	Value float64       `json:"value"`
}

// Absolute returns an exact dimension.
func Absolute(v float64) Dimension { return Dimension{Kind: KindAbsolute, Value: v} }

// Estimate returns an estimated dimension.
func Estimate(v float64) Dimension { return Dimension{Kind: KindEstimated, Value: v} }

// Fractional returns a fraction of the container width.
func Fractional(v float64) Dimension { return Dimension{Kind: KindFractional, Value: v} }

// IsEstimated reports whether the dimension is estimated.
func (d Dimension) IsEstimated() bool { return d.Kind == KindEstimated }

// Points converts the dimension to points for a container of the given
// width.
func (d Dimension) Points(containerWidth float64) float64 {
	if d.Kind == KindFractional {
		return d.Value * containerWidth
	}
	return d.Value
}

func (d Dimension) String() string {
	v := strconv.FormatFloat(d.Value, 'g', 6, 64)
	switch d.Kind {
	case KindEstimated:
		return "~" + v
	case KindFractional:
		return v + "w"
	}
	return v
}

// absoluteOrEstimated returns an estimated dimension when estimated is set
// and an absolute one otherwise.
func absoluteOrEstimated(v float64, estimated bool) Dimension {
	if estimated {
		return Estimate(v)
	}
	return Absolute(v)
}

// Size is the resolved size of a node.
type Size struct {
	Width  Dimension `json:"width"`
	Height Dimension `json:"height"`
}

func (s Size) String() string { return s.Width.String() + "x" + s.Height.String() }

// heightDimension maps an item's height spec to a dimension. It panics on a
// fit height.
func heightDimension(s grid.SizeSpec) Dimension {
	return absoluteOrEstimated(s.Resolve(grid.AxisHeight, 0), s.IsEstimated())
}

// widthDimension maps an item's width spec to a dimension. Fit widths take
// the full container.
func widthDimension(s grid.SizeSpec) Dimension {
	if s.Kind == grid.SizeFit {
		return Fractional(1)
	}
	return absoluteOrEstimated(s.Resolve(grid.AxisWidth, 0), s.IsEstimated())
}
