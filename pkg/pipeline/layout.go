package pipeline

import (
	"fmt"
	"strings"

	"github.com/matzehuels/gridcompose/pkg/cache"
	"github.com/matzehuels/gridcompose/pkg/compose"
	"github.com/matzehuels/gridcompose/pkg/geometry"
	"github.com/matzehuels/gridcompose/pkg/grid"
)

// Compose builds the section list for items. The load-more section is
// appended when hasMore is set.
func Compose(items []grid.Item, hasMore bool) []grid.Section {
	return compose.Build(items, hasMore)
}

// GenerateLayout resolves the geometry of sections at opts.Width.
func GenerateLayout(sections []grid.Section, opts Options) (geometry.Layout, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return geometry.Layout{}, err
	}
	return geometry.ResolveAll(sections, opts.Width), nil
}

// ItemsHash hashes the fields of items that influence layout: position,
// identity, kind, size and spacing. Content such as titles is ignored, so
// a content-only change reuses the cached layout.
func ItemsHash(items []grid.Item) string {
	var b strings.Builder
	for _, it := range items {
		li := it.LayoutIndex()
		d := li.Section
		fmt.Fprintf(&b, "%d|%s|%g,%g,%g,%g|%d|%s|%s|%s|%g|%g\n",
			d.Index, d.Style, d.Insets.Top, d.Insets.Left, d.Insets.Bottom, d.Insets.Right,
			li.Row, it.Identity(), it.ViewKind(), it.Size().Width.String()+"x"+it.Size().Height.String(),
			it.ItemSpacing(), it.LineSpacing())
	}
	return cache.Hash([]byte(b.String()))
}
