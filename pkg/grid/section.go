package grid

import "fmt"

// ViewItem wraps an item placed in a section.
type ViewItem struct {
	Item Item
}

// Key returns the stable slot key "{section}-{row}-{identity}". The section
// and row come from the item's own layout index, not the dense section
// index assigned during composition.
func (v ViewItem) Key() string {
	li := v.Item.LayoutIndex()
	return fmt.Sprintf("%d-%d-%s", li.Section.Index, li.Row, v.Item.Identity())
}

// Equal delegates to the wrapped item's content equality.
func (v ViewItem) Equal(other ViewItem) bool {
	if v.Item == nil || other.Item == nil {
		return v.Item == nil && other.Item == nil
	}
	return v.Item.Equal(other.Item)
}

// Section is an ordered, independently styled group of items.
type Section struct {
	Index  int
	Items  []ViewItem
	Header *ViewItem
	Footer *ViewItem
}

// first returns the item that defines the section's style and insets.
func (s Section) first() Item {
	switch {
	case len(s.Items) > 0:
		return s.Items[0].Item
	case s.Header != nil:
		return s.Header.Item
	case s.Footer != nil:
		return s.Footer.Item
	}
	return nil
}

// Descriptor returns the section's dense index with the style and insets of
// its first item.
func (s Section) Descriptor() SectionDescriptor {
	d := SectionDescriptor{Index: s.Index}
	if it := s.first(); it != nil {
		src := it.LayoutIndex().Section
		d.Style = src.Style
		d.Insets = src.Insets
	}
	return d
}

// Style returns the group style of the first item.
func (s Section) Style() GroupStyle { return s.Descriptor().Style }

// Insets returns the content insets of the first item.
func (s Section) Insets() Insets { return s.Descriptor().Insets }

// IsEmpty reports whether the section has no laid-out items.
func (s Section) IsEmpty() bool { return len(s.Items) == 0 }

// IndexOf returns the row of the first item equal to item.
func (s Section) IndexOf(item Item) (int, bool) {
	for i, v := range s.Items {
		if v.Item.Equal(item) {
			return i, true
		}
	}
	return 0, false
}

// Contains reports whether an item equal to item is placed in the section.
func (s Section) Contains(item Item) bool {
	_, ok := s.IndexOf(item)
	return ok
}

// Path addresses an item in a section list.
type Path struct {
	Section int
	Row     int
}

func (p Path) String() string { return fmt.Sprintf("%d.%d", p.Section, p.Row) }

// Locate returns the path of the first item equal to item.
func Locate(sections []Section, item Item) (Path, bool) {
	for _, s := range sections {
		if row, ok := s.IndexOf(item); ok {
			return Path{Section: s.Index, Row: row}, true
		}
	}
	return Path{}, false
}

// ItemAt returns the item at path, if any.
func ItemAt(sections []Section, p Path) (Item, bool) {
	for _, s := range sections {
		if s.Index != p.Section {
			continue
		}
		if p.Row < 0 || p.Row >= len(s.Items) {
			return nil, false
		}
		return s.Items[p.Row].Item, true
	}
	return nil, false
}
