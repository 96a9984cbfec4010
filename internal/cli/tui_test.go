package cli

import (
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/gridcompose/pkg/compose"
	"github.com/matzehuels/gridcompose/pkg/grid"
	"github.com/matzehuels/gridcompose/pkg/gridview"
)

func cards(n int) []grid.Item {
	items := make([]grid.Item, n)
	for i := range items {
		items[i] = grid.Base{
			Index: grid.At(0, i),
			ID:    fmt.Sprintf("card-%d", i),
			Kind:  grid.CellKind("Card"),
			Dims:  grid.NewSize(grid.Fit(), grid.Fixed(40)),
		}
	}
	return items
}

// waitFor returns the next message of type T, skipping others.
func waitFor[T tea.Msg](t *testing.T, msgs <-chan tea.Msg) T {
	t.Helper()
	timeout := time.After(2 * time.Second)
	for {
		select {
		case m := <-msgs:
			if v, ok := m.(T); ok {
				return v
			}
		case <-timeout:
			var zero T
			t.Fatalf("timed out waiting for %T", zero)
			return zero
		}
	}
}

func TestPager(t *testing.T) {
	p := newPager(cards(5), 2)

	tests := []struct {
		wantLen  int
		wantMore bool
	}{
		{2, true},
		{4, true},
		{5, false},
		{5, false},
	}
	for i, tt := range tests {
		items, more := p.next()
		if len(items) != tt.wantLen || more != tt.wantMore {
			t.Errorf("next() #%d = %d items, more %v; want %d, %v", i, len(items), more, tt.wantLen, tt.wantMore)
		}
	}

	items, more := p.reset()
	if len(items) != 2 || !more {
		t.Errorf("reset() = %d items, more %v; want 2, true", len(items), more)
	}

	all, more := newPager(cards(3), 0).next()
	if len(all) != 3 || more {
		t.Errorf("unpaged next() = %d items, more %v; want 3, false", len(all), more)
	}
}

func TestTermSurface(t *testing.T) {
	s := newTermSurface()
	msgs := make(chan tea.Msg, 8)
	s.attach(func(m tea.Msg) { msgs <- m })

	s.EndRefreshing()
	if _, ok := (<-msgs).(endRefreshMsg); !ok {
		t.Error("EndRefreshing was not forwarded")
	}
	s.ApplySettings(gridview.DefaultSettings())
	if got, ok := (<-msgs).(settingsMsg); !ok || gridview.Settings(got) != gridview.DefaultSettings() {
		t.Errorf("ApplySettings forwarded %v", got)
	}

	visible := []grid.Path{{Section: 0, Row: 3}}
	s.setViewport(40, 3, visible)
	if got := s.ContentSize().Height; got != 40 {
		t.Errorf("ContentSize().Height = %v, want 40", got)
	}
	if got := s.ContentOffset().Y; got != 3 {
		t.Errorf("ContentOffset().Y = %v, want 3", got)
	}
	if got := s.VisibleItems(); len(got) != 1 || got[0] != visible[0] {
		t.Errorf("VisibleItems() = %v, want %v", got, visible)
	}
}

func TestBuildRows(t *testing.T) {
	header := grid.Base{Index: grid.At(0, -1), ID: "title", Kind: grid.HeaderKind("Title"), Dims: grid.NewSize(grid.Fit(), grid.Fixed(20))}
	items := append(cards(2), header)
	sections := compose.Build(items, true)

	comp := gridview.New(newAttachedSurface(t), gridview.Options{})
	defer comp.Close()

	rows := buildRows(comp, sections)
	if len(rows) != 4 {
		t.Fatalf("len(rows) = %d, want 4", len(rows))
	}

	tests := []struct {
		kind       gridview.BindingKind
		selectable bool
	}{
		{gridview.BindHeader, false},
		{gridview.BindCell, true},
		{gridview.BindCell, true},
		{gridview.BindLoadMore, false},
	}
	for i, tt := range tests {
		if rows[i].binding.Kind != tt.kind || rows[i].selectable != tt.selectable {
			t.Errorf("rows[%d] = %v selectable %v, want %v %v", i, rows[i].binding.Kind, rows[i].selectable, tt.kind, tt.selectable)
		}
	}
	if got := rows[2].path; got != (grid.Path{Section: 0, Row: 1}) {
		t.Errorf("rows[2].path = %v, want 0.1", got)
	}
}

func newAttachedSurface(t *testing.T) *termSurface {
	t.Helper()
	s := newTermSurface()
	s.attach(func(tea.Msg) {})
	return s
}

func TestPreviewModelFlow(t *testing.T) {
	surface := newTermSurface()
	msgs := make(chan tea.Msg, 256)
	surface.attach(func(m tea.Msg) { msgs <- m })

	settings := gridview.DefaultSettings()
	settings.LoadMoreEnabled = true
	settings.ReloadEnabled = true
	comp := gridview.New(surface, gridview.Options{
		Settings: &settings,
		Delegate: gridview.DelegateFuncs{
			LoadMore: func() { surface.post(loadMoreMsg{}) },
			Reload:   func() { surface.post(reloadMsg{}) },
			Selected: func(item grid.Item) { surface.post(selectedMsg{item: item}) },
		},
	})
	defer comp.Close()

	source := newPager(cards(5), 3)
	items, more := source.next()
	comp.UpdateItems(items, more)

	var model tea.Model = newPreviewModel("feed.toml", comp, surface, source, nil, time.Millisecond)
	model, _ = model.Update(waitFor[applyMsg](t, msgs))
	m := model.(previewModel)
	if len(m.rows) != 4 {
		t.Fatalf("rows after first page = %d, want 4 (3 cards + load more)", len(m.rows))
	}
	if !strings.Contains(m.View(), "card-2") {
		t.Error("View() does not list card-2")
	}

	// The load-more row is on screen, so the composer asks for a page.
	model, cmd := model.Update(waitFor[loadMoreMsg](t, msgs))
	if cmd == nil || !model.(previewModel).loading {
		t.Fatal("loadMoreMsg did not start loading")
	}
	model, _ = model.Update(pageMsg{})
	model, _ = model.Update(waitFor[applyMsg](t, msgs))
	m = model.(previewModel)
	if len(m.rows) != 5 {
		t.Fatalf("rows after last page = %d, want 5", len(m.rows))
	}

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyDown})
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	sel := waitFor[selectedMsg](t, msgs)
	if sel.item.Identity() != "card-1" {
		t.Errorf("selected %s, want card-1", sel.item.Identity())
	}
	model, _ = model.Update(sel)
	if got := model.(previewModel).selected; got != "card-1" {
		t.Errorf("selected = %q, want card-1", got)
	}

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	model, _ = model.Update(waitFor[reloadMsg](t, msgs))
	model, _ = model.Update(waitFor[applyMsg](t, msgs))
	if got := len(model.(previewModel).rows); got != 4 {
		t.Errorf("rows after reload = %d, want 4", got)
	}

	if _, cmd := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")}); cmd == nil {
		t.Error("q did not quit")
	}
}
