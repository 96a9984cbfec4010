package gridview

import "github.com/matzehuels/gridcompose/pkg/grid"

// BindingKind discriminates the payload of a Binding.
type BindingKind int

const (
	// BindNone leaves the view unconfigured.
	BindNone BindingKind = iota
	// BindCell configures a cell from Item.
	BindCell
	// BindSelfHandling embeds View into the cell.
	BindSelfHandling
	// BindHeader configures a section header from Item.
	BindHeader
	// BindFooter configures a section footer from Item.
	BindFooter
	// BindLoadMore configures the pagination placeholder.
	BindLoadMore
)

func (k BindingKind) String() string {
	switch k {
	case BindCell:
		return "cell"
	case BindSelfHandling:
		return "self-handling"
	case BindHeader:
		return "header"
	case BindFooter:
		return "footer"
	case BindLoadMore:
		return "load-more"
	}
	return "none"
}

// Binding tells the surface how to configure the view for one item.
type Binding struct {
	Kind     BindingKind
	ViewType string
	Item     grid.Item
	// View is the foreign view of a self-handling item.
	View any
}

// Bind resolves the binding for v. Call it on the UI executor so foreign
// views registered by AddSelfHandlingItem are visible.
func (c *Composer) Bind(v grid.ViewItem) Binding {
	if v.Item == nil {
		return Binding{}
	}
	kind := v.Item.ViewKind()
	switch {
	case grid.IsLoadMore(v.Item):
		return Binding{Kind: BindLoadMore, ViewType: grid.LoadMoreIdentity, Item: v.Item}
	case kind.Tag == grid.TagCell:
		return Binding{Kind: BindCell, ViewType: kind.Type, Item: v.Item}
	case kind.Tag == grid.TagHeader:
		return Binding{Kind: BindHeader, ViewType: kind.Type, Item: v.Item}
	case kind.Tag == grid.TagFooter:
		return Binding{Kind: BindFooter, ViewType: kind.Type, Item: v.Item}
	case kind.Tag == grid.TagSelfHandling:
		c.viewsMu.Lock()
		view, ok := c.views[v.Item.Identity()]
		c.viewsMu.Unlock()
		if !ok {
			return Binding{}
		}
		return Binding{Kind: BindSelfHandling, Item: v.Item, View: view}
	}
	return Binding{}
}
