package gridview

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// Default option values.
const (
	DefaultDebounce          = 10 * time.Millisecond
	DefaultLoadMoreDebounce  = 100 * time.Millisecond
	DefaultLoadMoreThreshold = 2.0
)

// Options configure a Composer. Zero values select the defaults.
type Options struct {
	// Debounce coalesces source mutations before recomposition.
	Debounce time.Duration
	// LoadMoreDebounce coalesces load-more signals.
	LoadMoreDebounce time.Duration
	// LoadMoreThreshold is the number of remaining screens below which an
	// upward drag raises the load-more trigger.
	LoadMoreThreshold float64
	// Executor runs surface calls and delegate callbacks. Defaults to Inline.
	Executor Executor
	// Delegate receives user-driven requests. May be nil.
	Delegate Delegate
	// Settings are the initial display settings. Defaults to DefaultSettings.
	Settings *Settings
	// Logger receives debug output. Defaults to a discard logger.
	Logger *log.Logger
}

func (o *Options) setDefaults() {
	if o.Debounce <= 0 {
		o.Debounce = DefaultDebounce
	}
	if o.LoadMoreDebounce <= 0 {
		o.LoadMoreDebounce = DefaultLoadMoreDebounce
	}
	if o.LoadMoreThreshold <= 0 {
		o.LoadMoreThreshold = DefaultLoadMoreThreshold
	}
	if o.Executor == nil {
		o.Executor = Inline{}
	}
	if o.Delegate == nil {
		o.Delegate = DelegateFuncs{}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}
