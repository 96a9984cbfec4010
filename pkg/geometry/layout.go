package geometry

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/matzehuels/gridcompose/pkg/grid"
)

// Scroll is the scrolling behaviour of a section along the secondary axis.
type Scroll string

const (
	ScrollNone       Scroll = "none"
	ScrollContinuous Scroll = "continuous"
)

// SectionLayout is the resolved layout of one section.
type SectionLayout struct {
	Index  int             `json:"index"`
	Style  grid.GroupStyle `json:"style"`
	Insets grid.Insets     `json:"insets"`
	Scroll Scroll          `json:"scroll"`
	Group  *Node           `json:"group"`
	Header *Node           `json:"header,omitempty"`
	Footer *Node           `json:"footer,omitempty"`
}

// Layout is the resolved layout of a section list at a given width.
type Layout struct {
	Width    float64         `json:"width"`
	Sections []SectionLayout `json:"sections"`
}

// ItemCount returns the number of leaves across all section groups.
func (l Layout) ItemCount() int {
	var n int
	for _, s := range l.Sections {
		n += len(s.Group.Leaves())
	}
	return n
}

// Section returns the layout of the section with the given index.
func (l Layout) Section(index int) (SectionLayout, bool) {
	for _, s := range l.Sections {
		if s.Index == index {
			return s, true
		}
	}
	return SectionLayout{}, false
}

// ResolveSection lays out section for a container of effectiveWidth. The
// section's horizontal insets are subtracted before packing. Orthogonal
// styles are marked for continuous scrolling.
//
// It returns false when the section resolves to no group.
func ResolveSection(section grid.Section, effectiveWidth float64) (SectionLayout, bool) {
	d := section.Descriptor()
	cw := effectiveWidth - d.Insets.Horizontal()

	g := Resolve(section, cw)
	if g == nil {
		return SectionLayout{}, false
	}

	out := SectionLayout{
		Index:  section.Index,
		Style:  d.Style,
		Insets: d.Insets,
		Scroll: ScrollNone,
		Group:  g,
		Header: boundary(section.Header),
		Footer: boundary(section.Footer),
	}
	if d.Style.IsOrthogonal() {
		out.Scroll = ScrollContinuous
	}
	return out, true
}

// ResolveAll lays out every section that resolves to a group.
func ResolveAll(sections []grid.Section, effectiveWidth float64) Layout {
	out := Layout{Width: effectiveWidth, Sections: make([]SectionLayout, 0, len(sections))}
	for _, s := range sections {
		if sl, ok := ResolveSection(s, effectiveWidth); ok {
			out.Sections = append(out.Sections, sl)
		}
	}
	return out
}

func boundary(v *grid.ViewItem) *Node {
	if v == nil {
		return nil
	}
	return leaf(v.Key(), Size{
		Width:  Fractional(1),
		Height: heightDimension(v.Item.Size().Height),
	})
}

// MarshalLayout converts a layout to indented JSON.
func MarshalLayout(l Layout) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteLayout(l, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteLayout writes a layout as indented JSON to w.
func WriteLayout(l Layout, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(l); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// UnmarshalLayout decodes a layout produced by [MarshalLayout].
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, fmt.Errorf("decode: %w", err)
	}
	return l, nil
}
