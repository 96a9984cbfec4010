package treeviz

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/gridcompose/pkg/geometry"
)

// Options configures diagram generation.
type Options struct {
	// Detailed adds spacing and resolved point widths to node labels.
	Detailed bool
}

// ToDOT converts a layout to Graphviz DOT.
func ToDOT(l geometry.Layout, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  compound=true;\n")
	buf.WriteString("  node [shape=box, fontsize=14, margin=\"0.15,0.05\"];\n")
	buf.WriteString("  ranksep=0.4;\n")
	buf.WriteString("  nodesep=0.2;\n")

	for _, s := range l.Sections {
		w := &writer{buf: &buf, prefix: fmt.Sprintf("s%d", s.Index), cw: l.Width - s.Insets.Horizontal(), opts: opts}
		fmt.Fprintf(&buf, "\n  subgraph \"cluster_%d\" {\n", s.Index)
		fmt.Fprintf(&buf, "    label=%q;\n", fmt.Sprintf("section %d · %s · scroll %s", s.Index, s.Style, s.Scroll))
		buf.WriteString("    style=\"rounded,dashed\";\n")

		root := w.node(s.Group, "g")
		if s.Header != nil {
			id := w.leaf(s.Header, "header", "lightyellow")
			fmt.Fprintf(&buf, "    %q -> %q [style=dotted, arrowhead=none];\n", id, root)
		}
		if s.Footer != nil {
			id := w.leaf(s.Footer, "footer", "lightyellow")
			fmt.Fprintf(&buf, "    %q -> %q [style=dotted, arrowhead=none];\n", root, id)
		}
		buf.WriteString("  }\n")
	}

	buf.WriteString("}\n")
	return buf.String()
}

type writer struct {
	buf    *bytes.Buffer
	prefix string
	cw     float64
	opts   Options
}

func (w *writer) node(n *geometry.Node, path string) string {
	if n.IsLeaf() {
		return w.leaf(n, path, "white")
	}
	id := w.prefix + "_" + path
	lines := []string{fmt.Sprintf("%s %s", n.Kind, n.Size)}
	if w.opts.Detailed {
		lines = append(lines, fmt.Sprintf("gap %s", num(n.Spacing)), fmt.Sprintf("%spt wide", num(n.Size.Width.Points(w.cw))))
	}
	fmt.Fprintf(w.buf, "    %q [label=%q, style=filled, fillcolor=lightgrey];\n", id, strings.Join(lines, "\n"))
	for i, c := range n.Children {
		child := w.node(c, fmt.Sprintf("%s_%d", path, i))
		fmt.Fprintf(w.buf, "    %q -> %q;\n", id, child)
	}
	return id
}

func (w *writer) leaf(n *geometry.Node, path, fill string) string {
	id := w.prefix + "_" + path
	lines := []string{n.Key, n.Size.String()}
	if w.opts.Detailed {
		lines = append(lines, fmt.Sprintf("%spt wide", num(n.Size.Width.Points(w.cw))))
	}
	attrs := []string{
		fmt.Sprintf("label=%q", strings.Join(lines, "\n")),
		"style=\"rounded,filled\"",
		"fillcolor=" + fill,
	}
	if n.Size.Height.IsEstimated() {
		attrs[1] = "style=\"rounded,filled,dashed\""
	}
	fmt.Fprintf(w.buf, "    %q [%s];\n", id, strings.Join(attrs, ", "))
	return id
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}

// RenderSVG renders DOT to SVG.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	data, err := render(ctx, dot, graphviz.SVG)
	if err != nil {
		return nil, err
	}
	return normalizeViewBox(data), nil
}

// RenderPNG renders DOT to PNG.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return render(ctx, dot, graphviz.PNG)
}

func render(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render %s: %w", format, err)
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-based svg tag with a pixel-sized
// one so the diagram scales in browsers.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}
	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}
	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
