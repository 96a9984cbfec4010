package gridview

import "github.com/matzehuels/gridcompose/pkg/grid"

// CellEvent is a custom event emitted by a cell, such as a button tap.
type CellEvent struct {
	Path    grid.Path
	Item    grid.Item
	Name    string
	Payload any
}

// Delegate receives user-driven requests. Every method is called on the UI
// executor, at most once per user action.
type Delegate interface {
	OnLoadMoreRequested()
	OnReloadRequested()
	OnItemSelected(item grid.Item)
	OnCellEvent(event CellEvent)
}

// DelegateFuncs implements Delegate with optional functions. Nil fields are
// ignored.
type DelegateFuncs struct {
	LoadMore func()
	Reload   func()
	Selected func(item grid.Item)
	Event    func(event CellEvent)
}

func (d DelegateFuncs) OnLoadMoreRequested() {
	if d.LoadMore != nil {
		d.LoadMore()
	}
}

func (d DelegateFuncs) OnReloadRequested() {
	if d.Reload != nil {
		d.Reload()
	}
}

func (d DelegateFuncs) OnItemSelected(item grid.Item) {
	if d.Selected != nil {
		d.Selected(item)
	}
}

func (d DelegateFuncs) OnCellEvent(event CellEvent) {
	if d.Event != nil {
		d.Event(event)
	}
}
