// Package geometry resolves composed sections into nested group trees.
//
// # Overview
//
// A section's items are packed into a tree of [Node] values: horizontal and
// vertical groups whose leaves are the items themselves. Every node carries
// a resolved [Size] in which each axis is absolute, estimated (a first-pass
// value to be refined from content) or a fraction of the enclosing
// container's width.
//
// The packing depends on the section's group style:
//
//   - Flow: greedy row wrapping
//   - FixedColumns(n): contiguous rows of n uniformly sized cells
//   - DynamicColumns(n): n vertical stacks of variable height, stack c
//     holding every item at position k with k mod n == c
//   - FixedRows(n): a carousel of columns holding up to n uniform cells
//   - DynamicRows(n): n horizontal strips stacked vertically in a carousel
//
// Row and column styles with a zero count resolve to nil, as do sections
// without items.
//
// # Usage
//
// [Resolve] works on a single section with a width that already excludes
// the section's horizontal insets. [ResolveSection] subtracts the insets
// itself and [ResolveAll] lays out a whole section list:
//
//	sections := compose.Build(items, hasMore)
//	layout := geometry.ResolveAll(sections, 390)
//	data, _ := geometry.MarshalLayout(layout)
//
// Resolution is a pure function of its inputs and safe for concurrent use.
package geometry
