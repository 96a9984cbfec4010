package grid

import (
	"fmt"
	"math"
)

// ViewTag discriminates the kinds of view an item binds to.
type ViewTag int

const (
	// TagCell is a regular cell configured from the item's data.
	TagCell ViewTag = iota
	// TagSelfHandling is a cell hosting an externally supplied view.
	TagSelfHandling
	// TagHeader is a supplementary view at the top of a section.
	TagHeader
	// TagFooter is a supplementary view at the bottom of a section.
	TagFooter
)

func (t ViewTag) String() string {
	switch t {
	case TagCell:
		return "cell"
	case TagSelfHandling:
		return "self-handling"
	case TagHeader:
		return "header"
	case TagFooter:
		return "footer"
	}
	return fmt.Sprintf("tag(%d)", int(t))
}

// ViewKind is the view-kind tag of an item plus the concrete view type name
// for cells and supplementaries.
type ViewKind struct {
	Tag  ViewTag
	Type string
}

// CellKind returns a cell view kind of the given type.
func CellKind(viewType string) ViewKind { return ViewKind{Tag: TagCell, Type: viewType} }

// SelfHandlingKind returns the self-handling view kind.
func SelfHandlingKind() ViewKind { return ViewKind{Tag: TagSelfHandling} }

// HeaderKind returns a section header view kind.
func HeaderKind(viewType string) ViewKind { return ViewKind{Tag: TagHeader, Type: viewType} }

// FooterKind returns a section footer view kind.
func FooterKind(viewType string) ViewKind { return ViewKind{Tag: TagFooter, Type: viewType} }

// IsSupplementary reports whether the kind is a header or a footer.
func (k ViewKind) IsSupplementary() bool { return k.Tag == TagHeader || k.Tag == TagFooter }

func (k ViewKind) String() string {
	if k.Type == "" {
		return k.Tag.String()
	}
	return k.Tag.String() + "(" + k.Type + ")"
}

// Item is the capability set every layout-participating value satisfies.
//
// Equal is the content-equality test used by the diff stage. It is
// independent of the slot key derived from LayoutIndex and Identity.
type Item interface {
	LayoutIndex() LayoutIndex
	Identity() string
	ReuseKey() string
	ViewKind() ViewKind
	Size() Size
	ItemSpacing() float64
	LineSpacing() float64
	Equal(other Item) bool
}

// Base is an embeddable implementation of [Item]. Spacing defaults to zero
// and equality compares identities.
type Base struct {
	Index   LayoutIndex
	ID      string
	Reuse   string // defaults to Kind.Type, then ID
	Kind    ViewKind
	Dims    Size
	ItemGap float64
	LineGap float64
}

func (b Base) LayoutIndex() LayoutIndex { return b.Index }
func (b Base) Identity() string         { return b.ID }
func (b Base) ViewKind() ViewKind       { return b.Kind }
func (b Base) Size() Size               { return b.Dims }
func (b Base) ItemSpacing() float64     { return b.ItemGap }
func (b Base) LineSpacing() float64     { return b.LineGap }

func (b Base) ReuseKey() string {
	switch {
	case b.Reuse != "":
		return b.Reuse
	case b.Kind.Type != "":
		return b.Kind.Type
	}
	return b.ID
}

// Equal compares identities.
func (b Base) Equal(other Item) bool {
	return other != nil && other.Identity() == b.ID
}

// SelfHandlingItem is an item whose view is a pre-built foreign view
// supplied by the host. Its reuse key is its identity, so every instance
// gets its own registration.
type SelfHandlingItem struct {
	Base
}

// NewSelfHandlingItem builds a self-handling item.
func NewSelfHandlingItem(index LayoutIndex, id string, size Size) SelfHandlingItem {
	return SelfHandlingItem{Base: Base{
		Index: index,
		ID:    id,
		Kind:  SelfHandlingKind(),
		Dims:  size,
	}}
}

func (s SelfHandlingItem) ReuseKey() string   { return s.ID }
func (s SelfHandlingItem) ViewKind() ViewKind { return SelfHandlingKind() }

// Load-more placeholder constants.
const (
	LoadMoreIdentity = "LoadMoreCell"
	LoadMoreHeight   = 60.0
)

// LoadMoreSection is the section index carried by the load-more item. The
// item always gets a section of its own after every other section.
const LoadMoreSection = math.MaxInt

type loadMoreItem struct {
	Base
}

// LoadMoreItem returns the synthetic pagination placeholder: full width,
// fixed height 60, flow style, sorted after every other section.
func LoadMoreItem() Item {
	return loadMoreItem{Base: Base{
		Index: LayoutIndex{Section: SectionDescriptor{Index: LoadMoreSection, Style: FlowStyle()}},
		ID:    LoadMoreIdentity,
		Reuse: LoadMoreIdentity,
		Kind:  CellKind(LoadMoreIdentity),
		Dims:  Size{Width: Fit(), Height: Fixed(LoadMoreHeight)},
	}}
}

// IsLoadMore reports whether item is the load-more placeholder.
func IsLoadMore(item Item) bool {
	_, ok := item.(loadMoreItem)
	return ok
}
