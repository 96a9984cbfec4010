// Package diff computes keyed differences between two section snapshots.
//
// Sections are matched by index and items by [grid.ViewItem.Key]. Content
// changes are detected separately with [grid.ViewItem.Equal], so an item
// whose identity is unchanged but whose content differs is reported as an
// update rather than as a delete followed by an insert.
package diff

import (
	"fmt"
	"sort"

	"github.com/matzehuels/gridcompose/pkg/grid"
)

// Result lists the changes that turn an old snapshot into a new one.
// Section entries are section indices; item entries are slot keys.
type Result struct {
	InsertedSections []int `json:"inserted_sections,omitempty"`
	DeletedSections  []int `json:"deleted_sections,omitempty"`
	ReloadedSections []int `json:"reloaded_sections,omitempty"`

	Inserted []string `json:"inserted,omitempty"`
	Deleted  []string `json:"deleted,omitempty"`
	Updated  []string `json:"updated,omitempty"`
	Moved    []string `json:"moved,omitempty"`

	// Duplicates holds keys that occurred more than once in the new
	// snapshot. Only the first occurrence takes part in the diff.
	Duplicates []string `json:"duplicates,omitempty"`
}

// IsEmpty reports whether the snapshots are equivalent.
func (r Result) IsEmpty() bool {
	return len(r.InsertedSections) == 0 && len(r.DeletedSections) == 0 &&
		len(r.ReloadedSections) == 0 && len(r.Inserted) == 0 &&
		len(r.Deleted) == 0 && len(r.Updated) == 0 && len(r.Moved) == 0
}

// Summary returns a one-line description suitable for logs.
func (r Result) Summary() string {
	return fmt.Sprintf("sections +%d -%d ~%d, items +%d -%d ~%d >%d",
		len(r.InsertedSections), len(r.DeletedSections), len(r.ReloadedSections),
		len(r.Inserted), len(r.Deleted), len(r.Updated), len(r.Moved))
}

type slot struct {
	item    grid.ViewItem
	section int
	pos     int
}

type snapshot struct {
	order []string
	slots map[string]slot
	dups  []string
}

func index(sections []grid.Section) snapshot {
	s := snapshot{slots: make(map[string]slot)}
	for _, sec := range sections {
		for _, v := range sec.Items {
			k := v.Key()
			if _, dup := s.slots[k]; dup {
				s.dups = append(s.dups, k)
				continue
			}
			s.slots[k] = slot{item: v, section: sec.Index, pos: len(s.order)}
			s.order = append(s.order, k)
		}
	}
	return s
}

// Compute diffs the snapshot from against the snapshot to.
func Compute(from, to []grid.Section) Result {
	var r Result

	oldSections := make(map[int]grid.Section, len(from))
	for _, s := range from {
		oldSections[s.Index] = s
	}
	newSections := make(map[int]bool, len(to))
	for _, s := range to {
		newSections[s.Index] = true
		prev, ok := oldSections[s.Index]
		switch {
		case !ok:
			r.InsertedSections = append(r.InsertedSections, s.Index)
		case !sameBoundary(prev.Header, s.Header) || !sameBoundary(prev.Footer, s.Footer):
			r.ReloadedSections = append(r.ReloadedSections, s.Index)
		}
	}
	for _, s := range from {
		if !newSections[s.Index] {
			r.DeletedSections = append(r.DeletedSections, s.Index)
		}
	}

	before, after := index(from), index(to)
	r.Duplicates = after.dups

	for _, k := range before.order {
		if _, ok := after.slots[k]; !ok {
			r.Deleted = append(r.Deleted, k)
		}
	}

	// Old positions of surviving items, in new order.
	var common []string
	var positions []int
	for _, k := range after.order {
		prev, ok := before.slots[k]
		if !ok {
			r.Inserted = append(r.Inserted, k)
			continue
		}
		common = append(common, k)
		positions = append(positions, prev.pos)
		if !prev.item.Equal(after.slots[k].item) {
			r.Updated = append(r.Updated, k)
		}
	}

	stable := longestIncreasing(positions)
	for i, k := range common {
		if !stable[i] || before.slots[k].section != after.slots[k].section {
			r.Moved = append(r.Moved, k)
		}
	}

	sort.Ints(r.InsertedSections)
	sort.Ints(r.DeletedSections)
	sort.Ints(r.ReloadedSections)
	return r
}

func sameBoundary(a, b *grid.ViewItem) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Key() == b.Key() && a.Equal(*b)
}

// longestIncreasing marks the members of one longest strictly increasing
// subsequence of seq.
func longestIncreasing(seq []int) []bool {
	keep := make([]bool, len(seq))
	if len(seq) == 0 {
		return keep
	}

	// tails[l] is the index in seq of the smallest tail of an increasing
	// subsequence of length l+1.
	tails := make([]int, 0, len(seq))
	prev := make([]int, len(seq))
	for i, v := range seq {
		l := sort.Search(len(tails), func(j int) bool { return seq[tails[j]] >= v })
		if l > 0 {
			prev[i] = tails[l-1]
		} else {
			prev[i] = -1
		}
		if l == len(tails) {
			tails = append(tails, i)
		} else {
			tails[l] = i
		}
	}

	for i := tails[len(tails)-1]; i >= 0; i = prev[i] {
		keep[i] = true
	}
	return keep
}
