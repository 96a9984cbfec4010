package pipeline

import (
	"github.com/matzehuels/gridcompose/pkg/grid"
	"github.com/matzehuels/gridcompose/pkg/gridview"
	"github.com/matzehuels/gridcompose/pkg/manifest"
)

// Source is the parsed input of a pipeline run.
type Source struct {
	Items    []grid.Item
	HasMore  bool
	Width    float64
	Settings gridview.Settings
}

// Parse decodes the manifest in opts, or passes opts.Items through. The
// manifest's has_more flag is OR-ed with opts.HasMore, and a width in opts
// takes precedence over the manifest's.
func Parse(opts Options) (Source, error) {
	if err := opts.ValidateForParse(); err != nil {
		return Source{}, err
	}

	if len(opts.Manifest) == 0 {
		if err := ValidateItems(opts.Items); err != nil {
			return Source{}, err
		}
		return Source{
			Items:    opts.Items,
			HasMore:  opts.HasMore,
			Width:    opts.Width,
			Settings: gridview.DefaultSettings(),
		}, nil
	}

	doc, err := manifest.Parse(opts.Manifest, opts.ManifestFormat)
	if err != nil {
		return Source{}, err
	}
	items, err := doc.Items()
	if err != nil {
		return Source{}, err
	}
	src := Source{
		Items:    items,
		HasMore:  doc.HasMore || opts.HasMore,
		Width:    opts.Width,
		Settings: doc.DisplaySettings(),
	}
	if src.Width == 0 {
		src.Width = doc.Width
	}
	return src, nil
}
