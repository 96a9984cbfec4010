package gridview

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gridcompose/pkg/compose"
	"github.com/matzehuels/gridcompose/pkg/diff"
	"github.com/matzehuels/gridcompose/pkg/geometry"
	"github.com/matzehuels/gridcompose/pkg/grid"
	"github.com/matzehuels/gridcompose/pkg/observability"
)

type selfHandling struct {
	item    grid.Item
	visible bool
}

// Composer drives a Surface from four item sources. Create one with New.
type Composer struct {
	surface   Surface
	exec      Executor
	delegate  Delegate
	logger    *log.Logger
	threshold float64

	recompose *trigger
	loadMore  *trigger

	// Sources, guarded by mu.
	mu         sync.Mutex
	items      []grid.Item
	self       []selfHandling
	hasNext    bool
	settings   Settings
	pending    bool
	generation uint64
	closed     bool

	// applyMu serializes apply so results reach the surface in generation
	// order even when the executor runs them concurrently.
	applyMu sync.Mutex

	// Applied state, written on the UI executor.
	stateMu    sync.RWMutex
	applied    []grid.Section
	appliedGen uint64
	registered map[string]bool

	viewsMu sync.Mutex
	views   map[string]any
}

// New creates a composer that renders into surface.
func New(surface Surface, opts Options) *Composer {
	opts.setDefaults()
	c := &Composer{
		surface:    surface,
		exec:       opts.Executor,
		delegate:   opts.Delegate,
		logger:     opts.Logger,
		threshold:  opts.LoadMoreThreshold,
		settings:   DefaultSettings(),
		registered: make(map[string]bool),
		views:      make(map[string]any),
	}
	if opts.Settings != nil {
		c.settings = *opts.Settings
	}
	c.recompose = newTrigger(opts.Debounce, Inline{}, c.run)
	c.loadMore = newTrigger(opts.LoadMoreDebounce, c.exec, c.requestLoadMore)

	initial := c.settings
	c.exec.Post(func() { c.surface.ApplySettings(initial) })
	return c
}

// markPending records a source change and re-arms the debounce timer. The
// caller must hold c.mu.
func (c *Composer) markPending() {
	if c.closed {
		return
	}
	c.generation++
	c.pending = true
	c.recompose.fire()
}

// UpdateItems ends any loading state and replaces the primary items.
func (c *Composer) UpdateItems(items []grid.Item, hasNext bool) {
	c.EndLoading(hasNext)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append([]grid.Item(nil), items...)
	c.markPending()
}

// EndLoading clears the surface's loading indicator and updates the
// has-next flag.
func (c *Composer) EndLoading(hasNext bool) {
	c.exec.Post(c.surface.EndRefreshing)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.hasNext == hasNext {
		return
	}
	c.hasNext = hasNext
	c.markPending()
}

// SetSettings replaces the display settings. Disabling load-more ends any
// loading state right away.
func (c *Composer) SetSettings(s Settings) {
	c.mu.Lock()
	if c.settings == s {
		c.mu.Unlock()
		return
	}
	c.settings = s
	c.markPending()
	c.mu.Unlock()

	c.exec.Post(func() {
		c.surface.ApplySettings(s)
		if !s.LoadMoreEnabled {
			c.surface.EndRefreshing()
		}
	})
}

// Settings returns the current display settings.
func (c *Composer) Settings() Settings {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.settings
}

// AddSelfHandlingItem adds or replaces a self-handling item and the foreign
// view it embeds. Items keep the order in which they were first added.
func (c *Composer) AddSelfHandlingItem(item grid.Item, view any, hidden bool) {
	id := item.Identity()
	c.exec.Post(func() {
		c.viewsMu.Lock()
		c.views[id] = view
		c.viewsMu.Unlock()
	})

	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.self {
		if c.self[i].item.Identity() == id {
			c.self[i] = selfHandling{item: item, visible: !hidden}
			c.markPending()
			return
		}
	}
	c.self = append(c.self, selfHandling{item: item, visible: !hidden})
	c.markPending()
}

// SetHidden changes the visibility of a self-handling item. It reports
// whether an item with the identity exists.
func (c *Composer) SetHidden(identity string, hidden bool) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.self {
		if c.self[i].item.Identity() != identity {
			continue
		}
		if c.self[i].visible == !hidden {
			return true
		}
		c.self[i].visible = !hidden
		c.markPending()
		return true
	}
	return false
}

// run snapshots the sources and composes sections. It runs on the debounce
// timer's goroutine.
func (c *Composer) run() {
	c.mu.Lock()
	if c.closed || !c.pending {
		c.mu.Unlock()
		return
	}
	c.pending = false
	gen := c.generation
	all := make([]grid.Item, 0, len(c.items)+len(c.self))
	all = append(all, c.items...)
	for _, s := range c.self {
		if s.visible {
			all = append(all, s.item)
		}
	}
	hasMore := c.hasNext && c.settings.LoadMoreEnabled
	c.mu.Unlock()

	ctx := context.Background()
	hooks := observability.Compose()
	hooks.OnRecomposeStart(ctx, len(all))
	start := time.Now()
	sections := compose.Build(all, hasMore)
	elapsed := time.Since(start)
	hooks.OnRecomposeComplete(ctx, len(sections), len(all), elapsed)
	c.logger.Debug("recomposed", "generation", gen, "sections", len(sections), "items", len(all), "has_more", hasMore, "duration", elapsed)

	c.exec.Post(func() { c.apply(gen, sections) })
}

// apply hands sections to the surface unless a newer snapshot exists. It
// runs on the UI executor.
func (c *Composer) apply(gen uint64, sections []grid.Section) {
	c.applyMu.Lock()
	defer c.applyMu.Unlock()

	c.mu.Lock()
	latest, closed := c.generation, c.closed
	c.mu.Unlock()
	if closed {
		return
	}

	c.stateMu.Lock()
	if gen < latest || gen <= c.appliedGen {
		c.stateMu.Unlock()
		observability.Compose().OnRecomposeDropped(context.Background())
		c.logger.Debug("dropped stale sections", "generation", gen, "latest", latest)
		return
	}
	var fresh []grid.Item
	for _, it := range compose.ReuseItems(sections) {
		if key := it.ReuseKey(); !c.registered[key] {
			c.registered[key] = true
			fresh = append(fresh, it)
		}
	}
	old := c.applied
	c.applied = sections
	c.appliedGen = gen
	c.stateMu.Unlock()

	for _, it := range fresh {
		c.surface.RegisterReuseKey(it)
	}
	d := diff.Compute(old, sections)
	if len(d.Duplicates) > 0 {
		c.logger.Warn("duplicate item keys", "keys", d.Duplicates)
	}
	c.surface.Apply(Update{Old: old, New: sections, Diff: d, Animated: true})
	observability.Compose().OnDiffApplied(context.Background(), len(d.Inserted), len(d.Deleted), len(d.Updated), len(d.Moved))
	c.logger.Debug("applied sections", "generation", gen, "diff", d.Summary())
}

// loadMoreAvailable reports whether load-more is enabled and more pages
// exist.
func (c *Composer) loadMoreAvailable() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.closed && c.settings.LoadMoreEnabled && c.hasNext
}

// NotifyScroll feeds scroll metrics from the surface into the load-more
// trigger.
func (c *Composer) NotifyScroll(m ScrollMetrics) {
	if c.loadMoreAvailable() && m.NearEnd(c.threshold) {
		c.loadMore.fire()
	}
}

// WillDisplay is called by the surface before an item's view appears. The
// load-more placeholder raises the load-more trigger.
func (c *Composer) WillDisplay(item grid.Item) {
	if item != nil && grid.IsLoadMore(item) {
		c.loadMore.fire()
	}
}

func (c *Composer) requestLoadMore() {
	if !c.loadMoreAvailable() {
		return
	}
	observability.Compose().OnLoadMoreTriggered(context.Background())
	c.logger.Debug("load more requested")
	c.delegate.OnLoadMoreRequested()
}

// RequestReload forwards a pull-to-refresh to the delegate when reload is
// enabled.
func (c *Composer) RequestReload() {
	if !c.Settings().ReloadEnabled {
		return
	}
	c.exec.Post(c.delegate.OnReloadRequested)
}

// SelectItem forwards a selection to the delegate. Unknown paths are
// ignored.
func (c *Composer) SelectItem(p grid.Path) {
	item, ok := c.ItemAt(p)
	if !ok {
		return
	}
	c.exec.Post(func() { c.delegate.OnItemSelected(item) })
}

// EmitCellEvent forwards a cell event to the delegate.
func (c *Composer) EmitCellEvent(e CellEvent) {
	c.exec.Post(func() { c.delegate.OnCellEvent(e) })
}

// Sections returns the last applied sections.
func (c *Composer) Sections() []grid.Section {
	c.stateMu.RLock()
	defer c.stateMu.RUnlock()
	return c.applied
}

// IndexOf returns the path of the first applied item equal to item.
func (c *Composer) IndexOf(item grid.Item) (grid.Path, bool) {
	return grid.Locate(c.Sections(), item)
}

// ItemAt returns the applied item at p.
func (c *Composer) ItemAt(p grid.Path) (grid.Item, bool) {
	return grid.ItemAt(c.Sections(), p)
}

// Layout resolves the geometry of the applied sections.
func (c *Composer) Layout(width float64) geometry.Layout {
	return geometry.ResolveAll(c.Sections(), width)
}

// SectionLayout resolves the geometry of one applied section.
func (c *Composer) SectionLayout(index int, width float64) (geometry.SectionLayout, bool) {
	for _, s := range c.Sections() {
		if s.Index == index {
			return geometry.ResolveSection(s, width)
		}
	}
	return geometry.SectionLayout{}, false
}

// ContentSize passes through to the surface.
func (c *Composer) ContentSize() Extent { return c.surface.ContentSize() }

// ContentOffset passes through to the surface.
func (c *Composer) ContentOffset() Point { return c.surface.ContentOffset() }

// VisibleItems passes through to the surface.
func (c *Composer) VisibleItems() []grid.Path { return c.surface.VisibleItems() }

// Close stops both timers. Pending results are dropped.
func (c *Composer) Close() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
	c.recompose.stop()
	c.loadMore.stop()
}
