// Package pipeline provides the manifest → layout → render pipeline shared
// by the CLI and the layout service.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Parse: decode a TOML or JSON item manifest (or take items directly)
//  2. Layout: compose items into sections and resolve their geometry
//  3. Render: produce artifacts (JSON layout, text outline, DOT, SVG, PNG)
//
// Layouts and artifacts are cached by content hash, so repeated requests
// for the same items and width are served from the cache.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Manifest:       data,
//	    ManifestFormat: "toml",
//	    Formats:        []string{"txt", "svg"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Print(string(result.Artifacts["txt"]))
package pipeline

import (
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gridcompose/pkg/cache"
	errs "github.com/matzehuels/gridcompose/pkg/errors"
	"github.com/matzehuels/gridcompose/pkg/geometry"
	"github.com/matzehuels/gridcompose/pkg/grid"
	"github.com/matzehuels/gridcompose/pkg/gridview"
	"github.com/matzehuels/gridcompose/pkg/manifest"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

// DefaultWidth is the container width used when neither the options nor the
// manifest name one. It matches a common phone screen width in points.
const DefaultWidth = 390.0

// Format constants for output formats.
const (
	FormatJSON = "json"
	FormatText = "txt"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
	FormatPNG  = "png"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatText: true,
	FormatDOT:  true,
	FormatSVG:  true,
	FormatPNG:  true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline. It supports JSON
// serialization for API requests; the manifest is then sent inline.
type Options struct {
	// Parse options
	Manifest       []byte `json:"manifest,omitempty"`
	ManifestFormat string `json:"manifest_format,omitempty"`

	// Items are used instead of a manifest when set.
	Items   []grid.Item `json:"-"`
	HasMore bool        `json:"has_more,omitempty"`

	// Layout options
	Width float64 `json:"width,omitempty"`

	// Render options
	Formats  []string `json:"formats,omitempty"`
	Detailed bool     `json:"detailed,omitempty"`

	// Refresh bypasses cache reads. Results are still written back.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Sections are the composed sections, including the load-more section.
	Sections []grid.Section

	// Settings are the manifest's display settings, or the defaults.
	Settings gridview.Settings

	// ItemsHash is the content hash of the items' layout-relevant fields.
	ItemsHash string

	// Layout is the resolved geometry.
	Layout geometry.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	ItemCount    int
	SectionCount int
	ParseTime    time.Duration
	LayoutTime   time.Duration
	RenderTime   time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errs.New(errs.ErrCodeInvalidFormat, "invalid format: %q (must be one of: %s)", format, strings.Join(formatNames(), ", "))
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateItems checks identities and sizes of items that did not come
// from a manifest.
func ValidateItems(items []grid.Item) error {
	for i, it := range items {
		if it == nil {
			return errs.New(errs.ErrCodeInvalidInput, "item %d is nil", i)
		}
		if err := errs.ValidateIdentity(it.Identity()); err != nil {
			return err
		}
		if err := it.Size().Validate(); err != nil {
			return errs.Wrap(errs.ErrCodeInvalidSize, err, "item %q", it.Identity())
		}
	}
	return nil
}

func formatNames() []string {
	names := make([]string, 0, len(ValidFormats))
	for f := range ValidFormats {
		names = append(names, f)
	}
	slices.Sort(names)
	return names
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the
// full pipeline. Width is defaulted after parsing, since a manifest may name
// one. The method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForParse(); err != nil {
		return err
	}
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForParse checks that a manifest or items are present.
func (o *Options) ValidateForParse() error {
	if len(o.Manifest) == 0 && o.Items == nil {
		return errs.New(errs.ErrCodeInvalidInput, "manifest or items are required")
	}
	if len(o.Manifest) > 0 {
		switch o.ManifestFormat {
		case manifest.FormatTOML, manifest.FormatJSON:
		case "":
			return errs.New(errs.ErrCodeInvalidInput, "manifest_format is required")
		default:
			return errs.New(errs.ErrCodeInvalidFormat, "invalid manifest_format: %q (must be toml or json)", o.ManifestFormat)
		}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	return errs.ValidateWidth(o.Width)
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatJSON}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetLayoutDefaults()
	o.SetRenderDefaults()
	return ValidateFormats(o.Formats)
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{Width: o.Width, HasMore: o.HasMore}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{Format: format, Detailed: o.Detailed}
}
