// Package outline prints resolved layouts as text trees.
package outline

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"

	"github.com/matzehuels/gridcompose/pkg/geometry"
)

// Options configures the outline.
type Options struct {
	// Detailed adds the point width of every node, resolved against the
	// section's content width.
	Detailed bool

	// Styled colors section and group lines for terminal output.
	Styled bool
}

var (
	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	groupStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	plainStyle   = lipgloss.NewStyle()
)

// Render returns the outline of l. A layout without sections renders as
// "(empty)".
func Render(l geometry.Layout, opts Options) string {
	if len(l.Sections) == 0 {
		return "(empty)\n"
	}
	var b strings.Builder
	for _, s := range l.Sections {
		b.WriteString(sectionTree(l.Width, s, opts).String())
		b.WriteString("\n")
	}
	return b.String()
}

// Write writes the outline of l to w.
func Write(w io.Writer, l geometry.Layout, opts Options) error {
	_, err := io.WriteString(w, Render(l, opts))
	return err
}

func sectionTree(width float64, s geometry.SectionLayout, opts Options) *tree.Tree {
	in := s.Insets
	title := fmt.Sprintf("section %d %s (insets %s/%s/%s/%s, scroll %s)",
		s.Index, s.Style, num(in.Top), num(in.Left), num(in.Bottom), num(in.Right), s.Scroll)

	t := tree.Root(style(sectionStyle, opts).Render(title))
	cw := width - in.Horizontal()
	if s.Header != nil {
		t.Child("header " + leafLabel(s.Header, cw, opts))
	}
	t.Child(nodeTree(s.Group, cw, opts))
	if s.Footer != nil {
		t.Child("footer " + leafLabel(s.Footer, cw, opts))
	}
	return t
}

func nodeTree(n *geometry.Node, cw float64, opts Options) any {
	if n.IsLeaf() {
		return leafLabel(n, cw, opts)
	}
	label := fmt.Sprintf("%s %s", n.Kind, n.Size)
	if n.Spacing != 0 {
		label += " gap " + num(n.Spacing)
	}
	if opts.Detailed {
		label += fmt.Sprintf(" [%spt]", num(n.Size.Width.Points(cw)))
	}
	t := tree.Root(style(groupStyle, opts).Render(label))
	for _, c := range n.Children {
		t.Child(nodeTree(c, cw, opts))
	}
	return t
}

func leafLabel(n *geometry.Node, cw float64, opts Options) string {
	label := fmt.Sprintf("%s %s", n.Key, n.Size)
	if opts.Detailed {
		label += fmt.Sprintf(" [%spt]", num(n.Size.Width.Points(cw)))
	}
	return label
}

func style(s lipgloss.Style, opts Options) lipgloss.Style {
	if opts.Styled {
		return s
	}
	return plainStyle
}

func num(v float64) string {
	return fmt.Sprintf("%g", v)
}
