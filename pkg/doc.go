// Package pkg provides the libraries behind gridcompose, a declarative
// layout-composition engine for scrolling grids.
//
// # Overview
//
// Callers describe what to show as a flat list of items. Each item knows
// its section, its row, its size and how its section is arranged. The
// engine groups the items into sections, resolves every section into a
// tree of horizontal and vertical groups, and keeps a live view in sync
// with animated diffs.
//
//  1. [grid] - Vocabulary: items, sizes, group styles, sections
//  2. [compose] - Sorting, bucketing and interleaving items into sections
//  3. [geometry] - Resolving sections into group trees at a container width
//  4. [diff] - Keyed diffs between section lists
//  5. [gridview] - The live composer: debounced recomposition, load-more,
//     self-handling items, settings, delegate events
//  6. [manifest] - TOML and JSON item manifests
//  7. [pipeline] - Orchestration (manifest → layout → render) with caching
//  8. [render] - Text outlines and Graphviz diagrams of layouts
//  9. [api] - The HTTP layout service
//
// # Architecture
//
//	items (host code or manifest)
//	         ↓
//	    [compose] package (sections, load-more, interleaving)
//	         ↓
//	    [geometry] package (group trees)            [diff] package (updates)
//	         ↓                                              ↓
//	    [render] artifacts                         [gridview] surface
//
// # Quick Start
//
//	items := []grid.Item{
//	    grid.Base{Index: grid.At(0, 0), ID: "a", Dims: grid.NewSize(grid.Fixed(80), grid.Fixed(40))},
//	    grid.Base{Index: grid.At(0, 1), ID: "b", Dims: grid.NewSize(grid.Fixed(90), grid.Fixed(40))},
//	}
//	sections := compose.Build(items, false)
//	layout := geometry.ResolveAll(sections, 390)
//	fmt.Print(outline.Render(layout, outline.Options{}))
//
// [grid]: github.com/matzehuels/gridcompose/pkg/grid
// [compose]: github.com/matzehuels/gridcompose/pkg/compose
// [geometry]: github.com/matzehuels/gridcompose/pkg/geometry
// [diff]: github.com/matzehuels/gridcompose/pkg/diff
// [gridview]: github.com/matzehuels/gridcompose/pkg/gridview
// [manifest]: github.com/matzehuels/gridcompose/pkg/manifest
// [pipeline]: github.com/matzehuels/gridcompose/pkg/pipeline
// [render]: github.com/matzehuels/gridcompose/pkg/render
// [api]: github.com/matzehuels/gridcompose/pkg/api
package pkg
