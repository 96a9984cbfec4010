package gridview

import (
	"github.com/matzehuels/gridcompose/pkg/diff"
	"github.com/matzehuels/gridcompose/pkg/grid"
)

// Settings are the display settings of a grid view. Settings values are
// comparable; setting an equal value is a no-op.
type Settings struct {
	ReloadEnabled   bool        `json:"reload_enabled" toml:"reload_enabled"`
	LoadMoreEnabled bool        `json:"load_more_enabled" toml:"load_more_enabled"`
	ScrollEnabled   bool        `json:"scroll_enabled" toml:"scroll_enabled"`
	BackgroundColor string      `json:"background_color" toml:"background_color"`
	ContentInset    grid.Insets `json:"content_inset" toml:"content_inset"`
}

// DefaultSettings returns scrolling enabled on a clear background with
// reload and load-more disabled.
func DefaultSettings() Settings {
	return Settings{ScrollEnabled: true, BackgroundColor: "clear"}
}

// Update is a new section list handed to the surface together with its
// diff against the previously applied list.
type Update struct {
	Old      []grid.Section
	New      []grid.Section
	Diff     diff.Result
	Animated bool
}

// Point is a position in surface coordinates.
type Point struct {
	X, Y float64
}

// Extent is a width and height in surface coordinates.
type Extent struct {
	Width, Height float64
}

// Surface is the rendering collaborator. Every method is called on the UI
// executor.
type Surface interface {
	// RegisterReuseKey is called once per distinct reuse key before the
	// first update that uses it.
	RegisterReuseKey(item grid.Item)
	// Apply applies a keyed update.
	Apply(u Update)
	// ApplySettings applies background, insets and scroll enablement.
	ApplySettings(s Settings)
	// EndRefreshing clears any in-flight loading indicator.
	EndRefreshing()

	ContentSize() Extent
	ContentOffset() Point
	VisibleItems() []grid.Path
}

// ScrollMetrics describe the scroll position reported by the surface.
type ScrollMetrics struct {
	ContentHeight float64
	OffsetY       float64
	FrameHeight   float64
	InsetTop      float64
	InsetBottom   float64
	// TranslationY is the drag translation; negative while dragging up.
	TranslationY float64
	// Refreshing is set while a pull-to-refresh is in flight.
	Refreshing bool
}

// RemainingScreens returns how many visible screen heights of content are
// left below the current offset.
func (m ScrollMetrics) RemainingScreens() float64 {
	visible := m.FrameHeight - m.InsetTop - m.InsetBottom
	if visible <= 0 {
		return 0
	}
	return (m.ContentHeight - m.OffsetY) / visible
}

// NearEnd reports whether an upward drag has brought the remaining content
// within threshold screens. It is always false while refreshing.
func (m ScrollMetrics) NearEnd(threshold float64) bool {
	if m.Refreshing || m.TranslationY >= 0 {
		return false
	}
	return m.RemainingScreens() <= threshold
}
