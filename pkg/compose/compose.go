// Package compose turns a flat item list into ordered, densely indexed
// sections.
//
// [Build] is a pure function of its inputs. It sorts items by layout index,
// buckets them by section, optionally appends the load-more section, regroups
// interleaved styles into column-major order and finally renumbers the
// sections 0..n-1.
package compose

import (
	"sort"

	"github.com/matzehuels/gridcompose/pkg/grid"
)

type bucket struct {
	items  []grid.ViewItem
	header *grid.ViewItem
	footer *grid.ViewItem
}

func (b *bucket) add(item grid.Item) {
	v := grid.ViewItem{Item: item}
	switch item.ViewKind().Tag {
	case grid.TagHeader:
		if b.header == nil {
			b.header = &v
		}
	case grid.TagFooter:
		if b.footer == nil {
			b.footer = &v
		}
	default:
		b.items = append(b.items, v)
	}
}

func (b *bucket) style() grid.GroupStyle {
	switch {
	case len(b.items) > 0:
		return b.items[0].Item.LayoutIndex().Section.Style
	case b.header != nil:
		return b.header.Item.LayoutIndex().Section.Style
	case b.footer != nil:
		return b.footer.Item.LayoutIndex().Section.Style
	}
	return grid.FlowStyle()
}

// Build groups items into sections.
//
// When hasMore is set an extra section holding only [grid.LoadMoreItem] is
// appended after every other section. Buckets that end up with neither items
// nor supplementary views are not emitted. An interleaved style with a zero
// count yields a section without items.
func Build(items []grid.Item, hasMore bool) []grid.Section {
	sorted := make([]grid.Item, 0, len(items))
	for _, it := range items {
		if it != nil {
			sorted = append(sorted, it)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return grid.Compare(sorted[i].LayoutIndex(), sorted[j].LayoutIndex()) < 0
	})

	buckets := make(map[int]*bucket)
	var keys []int
	get := func(key int) *bucket {
		b, ok := buckets[key]
		if !ok {
			b = &bucket{}
			buckets[key] = b
			keys = append(keys, key)
		}
		return b
	}

	for _, it := range sorted {
		get(it.LayoutIndex().Section.Index).add(it)
	}
	sort.Ints(keys)

	sections := make([]grid.Section, 0, len(keys))
	for _, key := range keys {
		b := buckets[key]
		if len(b.items) == 0 && b.header == nil && b.footer == nil {
			continue
		}
		laid := b.items
		if style := b.style(); style.IsInterleaved() {
			laid = Interleave(b.items, style.Count)
		}
		sections = append(sections, grid.Section{
			Index:  len(sections),
			Items:  laid,
			Header: b.header,
			Footer: b.footer,
		})
	}
	// The placeholder never shares a bucket with user items, even ones
	// filed under grid.LoadMoreSection.
	if hasMore {
		sections = append(sections, grid.Section{
			Index: len(sections),
			Items: []grid.ViewItem{{Item: grid.LoadMoreItem()}},
		})
	}
	return sections
}

// Interleave regroups items into n round-robin groups and concatenates them
// group by group: the item at position k lands in group k mod n. A count of
// zero yields no items and a count of one returns the items unchanged.
func Interleave[T any](items []T, n int) []T {
	if n <= 0 {
		return []T{}
	}
	out := make([]T, 0, len(items))
	if n == 1 {
		return append(out, items...)
	}
	for g := 0; g < n; g++ {
		for k := g; k < len(items); k += n {
			out = append(out, items[k])
		}
	}
	return out
}

// GroupSizes returns how many of count interleaved items fall into each of
// the n groups produced by [Interleave].
func GroupSizes(count, n int) []int {
	if n <= 0 {
		return nil
	}
	sizes := make([]int, n)
	for g := range sizes {
		sizes[g] = count / n
		if g < count%n {
			sizes[g]++
		}
	}
	return sizes
}

// AllItems returns every item placed in sections, supplementaries included,
// in section order. The load-more placeholder is omitted so the result can
// be fed back into [Build].
func AllItems(sections []grid.Section) []grid.Item {
	var out []grid.Item
	for _, s := range sections {
		if s.Header != nil {
			out = append(out, s.Header.Item)
		}
		for _, v := range s.Items {
			if !grid.IsLoadMore(v.Item) {
				out = append(out, v.Item)
			}
		}
		if s.Footer != nil {
			out = append(out, s.Footer.Item)
		}
	}
	return out
}

// Flatten returns the laid-out view items of all sections in order.
func Flatten(sections []grid.Section) []grid.ViewItem {
	var out []grid.ViewItem
	for _, s := range sections {
		out = append(out, s.Items...)
	}
	return out
}

// ReuseItems returns the first item for every distinct reuse key in
// sections, in first-seen order.
func ReuseItems(sections []grid.Section) []grid.Item {
	seen := make(map[string]bool)
	var out []grid.Item
	add := func(v *grid.ViewItem) {
		if v == nil {
			return
		}
		k := v.Item.ReuseKey()
		if !seen[k] {
			seen[k] = true
			out = append(out, v.Item)
		}
	}
	for _, s := range sections {
		add(s.Header)
		for i := range s.Items {
			add(&s.Items[i])
		}
		add(s.Footer)
	}
	return out
}
