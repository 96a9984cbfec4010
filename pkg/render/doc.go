// Package render turns resolved layouts into artifacts.
//
// # Outline
//
// The [outline] subpackage prints a layout as an indented text tree, one
// line per section, group and item:
//
//	section 2 flow (insets 0/16/0/16, scroll none)
//	├── vertical 1wx32 gap 6
//	│   ├── horizontal 1wx32 gap 6
//	│   │   ├── 2-0-tag-hiking 80x32
//	│   │   └── 2-1-tag-camping 96x32
//	└── footer 2-4-tags-footer 1wx24
//
// # Tree Diagrams
//
// The [treeviz] subpackage converts a layout to Graphviz DOT with one
// cluster per section and renders it to SVG or PNG in-process.
//
//	dot := treeviz.ToDOT(layout, treeviz.Options{})
//	svg, err := treeviz.RenderSVG(ctx, dot)
//
// [outline]: github.com/matzehuels/gridcompose/pkg/render/outline
// [treeviz]: github.com/matzehuels/gridcompose/pkg/render/treeviz
package render
