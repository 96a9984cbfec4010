// Package treeviz renders resolved layouts as Graphviz tree diagrams.
//
// # Overview
//
// Every section becomes a DOT cluster. Groups are drawn as boxes labelled
// with their direction and size, items as rounded boxes labelled with their
// slot key. Edges run from a group to its children in layout order.
//
// # Usage
//
//	dot := treeviz.ToDOT(layout, treeviz.Options{Detailed: true})
//	svg, err := treeviz.RenderSVG(ctx, dot)
//	png, err := treeviz.RenderPNG(ctx, dot)
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process rendering;
// no Graphviz installation is required.
package treeviz
