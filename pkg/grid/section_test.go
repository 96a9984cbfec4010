package grid

import "testing"

type titled struct {
	Base
	Title string
}

func (t titled) Equal(other Item) bool {
	o, ok := other.(titled)
	return ok && o.ID == t.ID && o.Title == t.Title
}

func TestViewItemKey(t *testing.T) {
	item := Base{Index: At(3, 2), ID: "card-1"}
	if got, want := (ViewItem{Item: item}).Key(), "3-2-card-1"; got != want {
		t.Errorf("Key() = %q, want %q", got, want)
	}
}

func TestViewItemKeyAndEqualitySplit(t *testing.T) {
	before := ViewItem{Item: titled{Base: Base{Index: At(0, 0), ID: "a"}, Title: "old"}}
	after := ViewItem{Item: titled{Base: Base{Index: At(0, 0), ID: "a"}, Title: "new"}}

	if before.Key() != after.Key() {
		t.Errorf("Key() differs: %q vs %q", before.Key(), after.Key())
	}
	if before.Equal(after) {
		t.Error("Equal() = true for changed content, want false")
	}
}

func TestBaseReuseKey(t *testing.T) {
	tests := []struct {
		name string
		item Base
		want string
	}{
		{"explicit", Base{ID: "x", Reuse: "Card", Kind: CellKind("Other")}, "Card"},
		{"view type", Base{ID: "x", Kind: CellKind("Banner")}, "Banner"},
		{"identity", Base{ID: "x"}, "x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.item.ReuseKey(); got != tt.want {
				t.Errorf("ReuseKey() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSelfHandlingItem(t *testing.T) {
	item := NewSelfHandlingItem(At(1, 0), "video", NewSize(Fit(), Fixed(200)))
	if item.ReuseKey() != "video" {
		t.Errorf("ReuseKey() = %q, want %q", item.ReuseKey(), "video")
	}
	if item.ViewKind().Tag != TagSelfHandling {
		t.Errorf("ViewKind() = %v, want self-handling", item.ViewKind())
	}
}

func TestLoadMoreItem(t *testing.T) {
	item := LoadMoreItem()
	if item.Identity() != LoadMoreIdentity || item.ReuseKey() != LoadMoreIdentity {
		t.Errorf("identity/reuse = %q/%q", item.Identity(), item.ReuseKey())
	}
	if got := item.Size().HeightValue(); got != 60 {
		t.Errorf("HeightValue() = %v, want 60", got)
	}
	if got := item.Size().WidthValue(320); got != 320 {
		t.Errorf("WidthValue(320) = %v, want 320", got)
	}
	if !IsLoadMore(item) {
		t.Error("IsLoadMore() = false")
	}
	if IsLoadMore(Base{ID: LoadMoreIdentity}) {
		t.Error("IsLoadMore() = true for a regular item with the same identity")
	}
}

func TestSectionFirstWins(t *testing.T) {
	s := Section{Index: 4, Items: []ViewItem{
		{Item: Base{ID: "a", Index: LayoutIndex{Section: SectionDescriptor{Index: 9, Style: FixedColumnsStyle(2), Insets: Insets{Left: 8}}}}},
		{Item: Base{ID: "b", Index: LayoutIndex{Section: SectionDescriptor{Index: 9, Style: FlowStyle()}}}},
	}}

	d := s.Descriptor()
	if d.Index != 4 {
		t.Errorf("Descriptor().Index = %d, want 4", d.Index)
	}
	if d.Style != FixedColumnsStyle(2) {
		t.Errorf("Descriptor().Style = %v, want fixed-columns:2", d.Style)
	}
	if d.Insets.Left != 8 {
		t.Errorf("Descriptor().Insets.Left = %v, want 8", d.Insets.Left)
	}
}

func TestLocateAndItemAt(t *testing.T) {
	sections := []Section{
		{Index: 0, Items: []ViewItem{{Item: Base{ID: "a"}}, {Item: Base{ID: "b"}}}},
		{Index: 1, Items: []ViewItem{{Item: Base{ID: "c"}}}},
	}

	p, ok := Locate(sections, Base{ID: "c"})
	if !ok || p != (Path{Section: 1, Row: 0}) {
		t.Errorf("Locate(c) = %v, %v", p, ok)
	}
	if _, ok := Locate(sections, Base{ID: "zzz"}); ok {
		t.Error("Locate(zzz) found a missing item")
	}

	item, ok := ItemAt(sections, Path{Section: 0, Row: 1})
	if !ok || item.Identity() != "b" {
		t.Errorf("ItemAt(0.1) = %v, %v", item, ok)
	}
	if _, ok := ItemAt(sections, Path{Section: 7}); ok {
		t.Error("ItemAt(7.0) found an unknown section")
	}
	if _, ok := ItemAt(sections, Path{Section: 1, Row: 5}); ok {
		t.Error("ItemAt(1.5) found an out of range row")
	}
}
