package grid

import (
	"fmt"
	"strconv"
	"strings"

	errs "github.com/matzehuels/gridcompose/pkg/errors"
)

// StyleKind enumerates the packing strategies a section can use.
type StyleKind int

const (
	// Flow wraps items into rows greedily.
	Flow StyleKind = iota
	// FixedColumns chunks items into rows of Count uniformly sized cells.
	FixedColumns
	// DynamicColumns distributes items round-robin into Count vertical stacks.
	DynamicColumns
	// FixedRows lays items out in a horizontally scrolling carousel with
	// Count uniformly sized rows.
	FixedRows
	// DynamicRows distributes items round-robin into Count horizontal strips
	// inside a horizontally scrolling carousel.
	DynamicRows
)

var styleNames = map[StyleKind]string{
	Flow:           "flow",
	FixedColumns:   "fixed-columns",
	DynamicColumns: "dynamic-columns",
	FixedRows:      "fixed-rows",
	DynamicRows:    "dynamic-rows",
}

// GroupStyle is the layout strategy of a section. Count is ignored for Flow.
// A zero Count on any other kind is invalid and lays out nothing.
type GroupStyle struct {
	Kind  StyleKind
	Count int
}

// FlowStyle returns the flow style.
func FlowStyle() GroupStyle { return GroupStyle{Kind: Flow} }

// FixedColumnsStyle returns a fixed grid with n columns.
func FixedColumnsStyle(n int) GroupStyle { return GroupStyle{Kind: FixedColumns, Count: n} }

// DynamicColumnsStyle returns an interleaved grid with n columns.
func DynamicColumnsStyle(n int) GroupStyle { return GroupStyle{Kind: DynamicColumns, Count: n} }

// FixedRowsStyle returns a carousel with n uniform rows.
func FixedRowsStyle(n int) GroupStyle { return GroupStyle{Kind: FixedRows, Count: n} }

// DynamicRowsStyle returns a carousel with n interleaved strips.
func DynamicRowsStyle(n int) GroupStyle { return GroupStyle{Kind: DynamicRows, Count: n} }

// IsOrthogonal reports whether the section scrolls perpendicular to the
// main container.
func (g GroupStyle) IsOrthogonal() bool {
	return g.Kind == FixedRows || g.Kind == DynamicRows
}

// IsInterleaved reports whether items are regrouped round-robin before
// layout.
func (g GroupStyle) IsInterleaved() bool {
	return g.Kind == DynamicColumns || g.Kind == DynamicRows
}

// IsEmpty reports whether the style lays out nothing (zero count on a
// column or row style).
func (g GroupStyle) IsEmpty() bool {
	return g.Kind != Flow && g.Count <= 0
}

func (g GroupStyle) String() string {
	name, ok := styleNames[g.Kind]
	if !ok {
		return fmt.Sprintf("style(%d)", g.Kind)
	}
	if g.Kind == Flow {
		return name
	}
	return name + ":" + strconv.Itoa(g.Count)
}

// MarshalText implements encoding.TextMarshaler.
func (g GroupStyle) MarshalText() ([]byte, error) {
	return []byte(g.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (g *GroupStyle) UnmarshalText(text []byte) error {
	v, err := ParseGroupStyle(string(text))
	if err != nil {
		return err
	}
	*g = v
	return nil
}

// ParseGroupStyle parses "flow" or "<kind>:<n>" such as "fixed-columns:3".
// A kind without a count defaults to a count of 1.
func ParseGroupStyle(s string) (GroupStyle, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if v == "" {
		return FlowStyle(), nil
	}
	name, countStr, hasCount := strings.Cut(v, ":")
	for kind, n := range styleNames {
		if n != name {
			continue
		}
		if kind == Flow {
			if hasCount {
				return GroupStyle{}, errs.New(errs.ErrCodeInvalidStyle, "flow takes no count: %q", s)
			}
			return FlowStyle(), nil
		}
		count := 1
		if hasCount {
			c, err := strconv.Atoi(countStr)
			if err != nil || c < 0 {
				return GroupStyle{}, errs.New(errs.ErrCodeInvalidStyle, "invalid count in %q", s)
			}
			count = c
		}
		return GroupStyle{Kind: kind, Count: count}, nil
	}
	return GroupStyle{}, errs.New(errs.ErrCodeInvalidStyle, "unknown style %q", s)
}

// Insets are content insets of a section.
type Insets struct {
	Top    float64 `json:"top"`
	Left   float64 `json:"left"`
	Bottom float64 `json:"bottom"`
	Right  float64 `json:"right"`
}

// Horizontal returns Left+Right.
func (i Insets) Horizontal() float64 { return i.Left + i.Right }

// SectionDescriptor identifies a section and carries its layout settings.
// Two descriptors are equal iff all fields match.
type SectionDescriptor struct {
	Index  int
	Style  GroupStyle
	Insets Insets
}

// LayoutIndex orders items: by section index, then by row.
type LayoutIndex struct {
	Section SectionDescriptor
	Row     int
}

// At is shorthand for a flow-styled layout index without insets.
func At(section, row int) LayoutIndex {
	return LayoutIndex{Section: SectionDescriptor{Index: section}, Row: row}
}

// Compare returns -1, 0 or +1 ordering a before, equal to, or after b.
func Compare(a, b LayoutIndex) int {
	switch {
	case a.Section.Index < b.Section.Index:
		return -1
	case a.Section.Index > b.Section.Index:
		return 1
	case a.Row < b.Row:
		return -1
	case a.Row > b.Row:
		return 1
	}
	return 0
}

// Less reports whether l sorts before other.
func (l LayoutIndex) Less(other LayoutIndex) bool { return Compare(l, other) < 0 }
