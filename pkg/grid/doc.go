// Package grid defines the data model shared by every stage of gridcompose:
// per-axis size specifications, section group styles, layout indices, the
// item contract, and the derived section and view-item types.
//
// # Items
//
// Anything that participates in a layout implements [Item]. Concrete item
// types usually embed [Base], which supplies zero spacing and identity-based
// equality, and override only what they need:
//
//	type Card struct {
//	    grid.Base
//	    Title string
//	}
//
//	func (c Card) Equal(other grid.Item) bool {
//	    o, ok := other.(Card)
//	    return ok && o.ID == c.ID && o.Title == c.Title
//	}
//
// # Keys and Equality
//
// A [ViewItem] has two distinct notions of sameness. [ViewItem.Key] returns
// the stable slot key "{section}-{row}-{identity}" used to match items
// across snapshots, while [ViewItem.Equal] delegates to [Item.Equal] to
// detect content changes. Two view items may share a key yet differ in
// content; the diff stage reports these as updates rather than as an
// insert/delete pair.
//
// # Sizes
//
// Each axis of an item is a [SizeSpec]: fixed, estimated (with an optional
// hint, [DefaultEstimate] otherwise) or fit-to-container. Fit is only
// meaningful for widths. Resolving a fit height panics; input decoders call
// [Size.Validate] first so well-formed input never reaches that path.
//
// # Sections
//
// [Section] values are derived by the compose package and replaced
// wholesale on every recomposition. Style and insets of a section are taken
// from its first item.
package grid
