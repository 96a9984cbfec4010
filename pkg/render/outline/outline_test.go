package outline

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/matzehuels/gridcompose/pkg/compose"
	"github.com/matzehuels/gridcompose/pkg/geometry"
	"github.com/matzehuels/gridcompose/pkg/grid"
)

func layout(style grid.GroupStyle, n int, header bool) geometry.Layout {
	desc := grid.SectionDescriptor{Index: 0, Style: style, Insets: grid.Insets{Left: 10, Right: 10}}
	var items []grid.Item
	for i := 0; i < n; i++ {
		items = append(items, grid.Base{
			Index:   grid.LayoutIndex{Section: desc, Row: i},
			ID:      fmt.Sprintf("item%d", i),
			Kind:    grid.CellKind("Card"),
			Dims:    grid.NewSize(grid.Fixed(40), grid.Fixed(20)),
			ItemGap: 4,
		})
	}
	if header {
		items = append(items, grid.Base{
			Index: grid.LayoutIndex{Section: desc, Row: -1},
			ID:    "title",
			Kind:  grid.HeaderKind("Title"),
			Dims:  grid.NewSize(grid.Fit(), grid.Fixed(30)),
		})
	}
	return geometry.ResolveAll(compose.Build(items, false), 120)
}

func TestRender(t *testing.T) {
	out := Render(layout(grid.FlowStyle(), 3, true), Options{})

	for _, want := range []string{
		"section 0 flow (insets 0/10/0/10, scroll none)",
		"header 0--1-title 1wx30",
		"vertical 1wx40",
		"horizontal 1wx20 gap 4",
		"0-0-item0 40x20",
		"0-2-item2 40x20",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Render() missing %q\n%s", want, out)
		}
	}
	if strings.Contains(out, "pt]") {
		t.Errorf("Render() without Detailed has point widths\n%s", out)
	}
}

func TestRenderDetailed(t *testing.T) {
	out := Render(layout(grid.FixedColumnsStyle(2), 2, false), Options{Detailed: true})

	if !strings.Contains(out, "scroll none") {
		t.Errorf("Render() missing scroll mode\n%s", out)
	}
	// Content width is 120-20; the row spans it fully.
	if !strings.Contains(out, "[100pt]") {
		t.Errorf("Render() missing resolved row width\n%s", out)
	}
}

func TestRenderOrthogonal(t *testing.T) {
	out := Render(layout(grid.FixedRowsStyle(1), 3, false), Options{})
	if !strings.Contains(out, "scroll continuous") {
		t.Errorf("Render() = %s, want continuous scroll", out)
	}
}

func TestRenderEmpty(t *testing.T) {
	if got := Render(geometry.Layout{Width: 100}, Options{}); got != "(empty)\n" {
		t.Errorf("Render(empty) = %q, want %q", got, "(empty)\n")
	}
}

func TestWrite(t *testing.T) {
	l := layout(grid.FlowStyle(), 1, false)
	var buf bytes.Buffer
	if err := Write(&buf, l, Options{}); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if buf.String() != Render(l, Options{}) {
		t.Error("Write() differs from Render()")
	}
}
