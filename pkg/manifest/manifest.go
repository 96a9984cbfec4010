// Package manifest reads item manifests: TOML or JSON documents describing
// sections, their items, and the display settings of a grid.
//
// A minimal TOML manifest:
//
//	width = 390
//	has_more = true
//
//	[settings]
//	load_more_enabled = true
//
//	[[sections]]
//	index = 0
//	style = "fixed-columns:2"
//	item_spacing = 8
//
//	[[sections.items]]
//	id = "hero"
//	width = "fit"
//	height = 120
//
// Sizes are numbers (fixed), "fit", "est" or "est:<hint>". Items without an
// id get a deterministic UUID derived from their section and row, so the
// same manifest always yields the same identities.
package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"

	errs "github.com/matzehuels/gridcompose/pkg/errors"
	"github.com/matzehuels/gridcompose/pkg/grid"
	"github.com/matzehuels/gridcompose/pkg/gridview"
)

// Supported formats.
const (
	FormatTOML = "toml"
	FormatJSON = "json"
)

// Document is a decoded manifest.
type Document struct {
	Width    float64            `toml:"width" json:"width"`
	HasMore  bool               `toml:"has_more" json:"has_more"`
	Settings *gridview.Settings `toml:"settings" json:"settings,omitempty"`
	Sections []SectionSpec      `toml:"sections" json:"sections"`
}

// SectionSpec describes one section and its items.
type SectionSpec struct {
	Index       int         `toml:"index" json:"index"`
	Style       string      `toml:"style" json:"style"`
	ItemSpacing float64     `toml:"item_spacing" json:"item_spacing"`
	LineSpacing float64     `toml:"line_spacing" json:"line_spacing"`
	Insets      grid.Insets `toml:"insets" json:"insets"`
	Header      *ItemSpec   `toml:"header" json:"header,omitempty"`
	Footer      *ItemSpec   `toml:"footer" json:"footer,omitempty"`
	Items       []ItemSpec  `toml:"items" json:"items"`
}

// ItemSpec describes one item. Width and Height hold a number or a size
// string.
type ItemSpec struct {
	ID           string `toml:"id" json:"id,omitempty"`
	Row          *int   `toml:"row" json:"row,omitempty"`
	Kind         string `toml:"kind" json:"kind,omitempty"`
	Reuse        string `toml:"reuse" json:"reuse,omitempty"`
	Width        any    `toml:"width" json:"width,omitempty"`
	Height       any    `toml:"height" json:"height,omitempty"`
	Title        string `toml:"title" json:"title,omitempty"`
	SelfHandling bool   `toml:"self_handling" json:"self_handling,omitempty"`
	Hidden       bool   `toml:"hidden" json:"hidden,omitempty"`
}

// Item is a grid item decoded from a manifest. Two items are equal when
// identity, kind, size and title all match.
type Item struct {
	grid.Base
	Title string
}

// Equal reports structural equality.
func (it Item) Equal(other grid.Item) bool {
	o, ok := other.(Item)
	return ok && o.ID == it.ID && o.Title == it.Title && o.Dims == it.Dims && o.Kind == it.Kind
}

// Entry is a self-handling item with its initial visibility.
type Entry struct {
	Item   grid.SelfHandlingItem
	Hidden bool
}

// Set is the item list of a manifest.
type Set struct {
	Items        []grid.Item
	SelfHandling []Entry
}

// Visible returns the primary items followed by the visible self-handling
// items.
func (s Set) Visible() []grid.Item {
	out := make([]grid.Item, 0, len(s.Items)+len(s.SelfHandling))
	out = append(out, s.Items...)
	for _, e := range s.SelfHandling {
		if !e.Hidden {
			out = append(out, e.Item)
		}
	}
	return out
}

// Load reads and validates a manifest file. The format is chosen by
// extension.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "manifest %s", path)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}
	return Parse(data, format)
}

// DetectFormat maps a file extension to a manifest format.
func DetectFormat(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	}
	return "", errs.New(errs.ErrCodeInvalidFormat, "unsupported manifest extension %q (want .toml or .json)", filepath.Ext(path))
}

// Parse decodes and validates manifest data.
func Parse(data []byte, format string) (*Document, error) {
	var doc Document
	switch format {
	case FormatTOML:
		if err := toml.Unmarshal(data, &doc); err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidManifest, err, "decode toml")
		}
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&doc); err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidManifest, err, "decode json")
		}
	default:
		return nil, errs.New(errs.ErrCodeInvalidFormat, "unsupported manifest format %q", format)
	}
	if _, err := doc.Build(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Build converts the document into grid items, validating every size and
// style.
func (d *Document) Build() (Set, error) {
	var set Set
	if err := errs.ValidateWidth(d.Width); err != nil {
		return set, err
	}
	for _, sec := range d.Sections {
		style, err := grid.ParseGroupStyle(sec.Style)
		if err != nil {
			return set, errs.Wrap(errs.ErrCodeInvalidManifest, err, "section %d", sec.Index)
		}
		desc := grid.SectionDescriptor{Index: sec.Index, Style: style, Insets: sec.Insets}

		if sec.Header != nil {
			it, err := buildItem(sec, desc, *sec.Header, 0, grid.HeaderKind(orDefault(sec.Header.Kind, "Header")))
			if err != nil {
				return set, err
			}
			set.Items = append(set.Items, it)
		}
		for pos, spec := range sec.Items {
			if spec.SelfHandling {
				it, err := buildItem(sec, desc, spec, pos, grid.SelfHandlingKind())
				if err != nil {
					return set, err
				}
				sh := grid.NewSelfHandlingItem(it.Index, it.ID, it.Dims)
				sh.ItemGap, sh.LineGap = it.ItemGap, it.LineGap
				set.SelfHandling = append(set.SelfHandling, Entry{Item: sh, Hidden: spec.Hidden})
				continue
			}
			it, err := buildItem(sec, desc, spec, pos, grid.CellKind(orDefault(spec.Kind, "Cell")))
			if err != nil {
				return set, err
			}
			set.Items = append(set.Items, it)
		}
		if sec.Footer != nil {
			it, err := buildItem(sec, desc, *sec.Footer, len(sec.Items), grid.FooterKind(orDefault(sec.Footer.Kind, "Footer")))
			if err != nil {
				return set, err
			}
			set.Items = append(set.Items, it)
		}
	}
	return set, nil
}

// DisplaySettings returns the document's settings, or the defaults when the
// document has no settings table.
func (d *Document) DisplaySettings() gridview.Settings {
	if d.Settings == nil {
		return gridview.DefaultSettings()
	}
	return *d.Settings
}

// Items returns the visible items of the document.
func (d *Document) Items() ([]grid.Item, error) {
	set, err := d.Build()
	if err != nil {
		return nil, err
	}
	return set.Visible(), nil
}

func buildItem(sec SectionSpec, desc grid.SectionDescriptor, spec ItemSpec, pos int, kind grid.ViewKind) (Item, error) {
	row := pos
	if spec.Row != nil {
		row = *spec.Row
	}
	id := spec.ID
	if id == "" {
		id = uuid.NewSHA1(uuid.NameSpaceOID, fmt.Appendf(nil, "gridcompose/%d/%d/%s", sec.Index, row, kind.Tag)).String()
	}
	if err := errs.ValidateIdentity(id); err != nil {
		return Item{}, err
	}

	w, err := sizeValue(spec.Width, grid.Fit())
	if err != nil {
		return Item{}, errs.Wrap(errs.ErrCodeInvalidSize, err, "item %q width", id)
	}
	h, err := sizeValue(spec.Height, grid.Estimated())
	if err != nil {
		return Item{}, errs.Wrap(errs.ErrCodeInvalidSize, err, "item %q height", id)
	}
	size := grid.NewSize(w, h)
	if err := size.Validate(); err != nil {
		return Item{}, errs.Wrap(errs.ErrCodeInvalidSize, err, "item %q", id)
	}

	return Item{
		Base: grid.Base{
			Index:   grid.LayoutIndex{Section: desc, Row: row},
			ID:      id,
			Reuse:   spec.Reuse,
			Kind:    kind,
			Dims:    size,
			ItemGap: sec.ItemSpacing,
			LineGap: sec.LineSpacing,
		},
		Title: spec.Title,
	}, nil
}

// sizeValue converts a decoded TOML or JSON value into a size spec.
func sizeValue(v any, def grid.SizeSpec) (grid.SizeSpec, error) {
	switch x := v.(type) {
	case nil:
		return def, nil
	case int64:
		return grid.Fixed(float64(x)), nil
	case int:
		return grid.Fixed(float64(x)), nil
	case float64:
		return grid.Fixed(x), nil
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return grid.SizeSpec{}, err
		}
		return grid.Fixed(f), nil
	case string:
		return grid.ParseSizeSpec(x)
	}
	return grid.SizeSpec{}, fmt.Errorf("unsupported size value %v (%T)", v, v)
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
