package cli

import (
	"fmt"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/gridcompose/pkg/grid"
	"github.com/matzehuels/gridcompose/pkg/gridview"
	"github.com/matzehuels/gridcompose/pkg/manifest"
)

// List styles
var (
	listDimStyle    = lipgloss.NewStyle().Foreground(colorDim)
	listHeaderStyle = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
)

// =============================================================================
// Messages
// =============================================================================

// Surface and delegate calls arrive on the composer's loop and are forwarded
// to the program as messages, so the model is only touched by bubbletea.
type (
	applyMsg      gridview.Update
	settingsMsg   gridview.Settings
	reuseMsg      struct{ key string }
	endRefreshMsg struct{}
	loadMoreMsg   struct{}
	reloadMsg     struct{}
	selectedMsg   struct{ item grid.Item }
	pageMsg       struct{}
)

// =============================================================================
// termSurface - gridview.Surface for the terminal
// =============================================================================

// termSurface implements gridview.Surface by forwarding every call to the
// bubbletea program. Calls block until the program is attached.
type termSurface struct {
	ready chan struct{}
	send  func(tea.Msg)

	mu      sync.Mutex
	content float64
	offset  float64
	visible []grid.Path
}

func newTermSurface() *termSurface {
	return &termSurface{ready: make(chan struct{})}
}

// attach sets the message sink and releases blocked calls.
func (s *termSurface) attach(send func(tea.Msg)) {
	s.send = send
	close(s.ready)
}

func (s *termSurface) post(msg tea.Msg) {
	<-s.ready
	s.send(msg)
}

func (s *termSurface) RegisterReuseKey(item grid.Item) { s.post(reuseMsg{key: item.ReuseKey()}) }
func (s *termSurface) Apply(u gridview.Update)         { s.post(applyMsg(u)) }
func (s *termSurface) ApplySettings(st gridview.Settings) {
	s.post(settingsMsg(st))
}
func (s *termSurface) EndRefreshing() { s.post(endRefreshMsg{}) }

func (s *termSurface) ContentSize() gridview.Extent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return gridview.Extent{Height: s.content}
}

func (s *termSurface) ContentOffset() gridview.Point {
	s.mu.Lock()
	defer s.mu.Unlock()
	return gridview.Point{Y: s.offset}
}

func (s *termSurface) VisibleItems() []grid.Path {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]grid.Path(nil), s.visible...)
}

// setViewport records the scroll state; one row is one point.
func (s *termSurface) setViewport(content, offset int, visible []grid.Path) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.content, s.offset, s.visible = float64(content), float64(offset), visible
}

// =============================================================================
// pager - paged item source
// =============================================================================

// pager serves the primary items of a manifest page by page, standing in
// for a remote feed.
type pager struct {
	items []grid.Item
	size  int
	shown int
}

// newPager creates a pager. A size of zero or less serves everything at once.
func newPager(items []grid.Item, size int) *pager {
	if size <= 0 {
		size = len(items)
	}
	return &pager{items: items, size: size}
}

// next reveals another page and returns the revealed items and whether more
// pages remain.
func (p *pager) next() ([]grid.Item, bool) {
	p.shown = min(p.shown+p.size, len(p.items))
	return p.items[:p.shown], p.shown < len(p.items)
}

// reset rewinds to the first page.
func (p *pager) reset() ([]grid.Item, bool) {
	p.shown = 0
	return p.next()
}

// =============================================================================
// previewModel - interactive grid preview
// =============================================================================

// previewRow is one line of the preview: a section boundary or an item.
type previewRow struct {
	view    grid.ViewItem
	path    grid.Path
	binding gridview.Binding
	// selectable rows address an item in a section's item list.
	selectable bool
}

// previewModel is the bubbletea model of the preview command.
type previewModel struct {
	comp    *gridview.Composer
	surface *termSurface
	source  *pager
	self    []manifest.Entry
	title   string
	latency time.Duration

	sections []grid.Section
	rows     []previewRow
	settings gridview.Settings
	reuse    map[string]bool
	cursor   int
	offset   int
	height   int

	loading  bool
	lastDiff string
	selected string
}

func newPreviewModel(title string, comp *gridview.Composer, surface *termSurface, source *pager, self []manifest.Entry, latency time.Duration) previewModel {
	return previewModel{
		comp:     comp,
		surface:  surface,
		source:   source,
		self:     self,
		title:    title,
		latency:  latency,
		settings: comp.Settings(),
		reuse:    make(map[string]bool),
		height:   15,
	}
}

func (m previewModel) Init() tea.Cmd {
	return nil
}

func (m previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.height = max(msg.Height-10, 5)
		m.scrollTo(m.cursor, 0)
	case applyMsg:
		m.sections = msg.New
		m.lastDiff = msg.Diff.Summary()
		m.rows = buildRows(m.comp, msg.New)
		m.cursor = min(m.cursor, max(len(m.rows)-1, 0))
		m.scrollTo(m.cursor, 0)
	case settingsMsg:
		m.settings = gridview.Settings(msg)
	case reuseMsg:
		m.reuse[msg.key] = true
	case endRefreshMsg:
		m.loading = false
	case loadMoreMsg:
		if m.loading {
			return m, nil
		}
		m.loading = true
		return m, tea.Tick(m.latency, func(time.Time) tea.Msg { return pageMsg{} })
	case pageMsg:
		items, hasNext := m.source.next()
		m.comp.UpdateItems(items, hasNext)
	case reloadMsg:
		items, hasNext := m.source.reset()
		m.comp.UpdateItems(items, hasNext)
	case selectedMsg:
		m.selected = msg.item.Identity()
	}
	return m, nil
}

func (m previewModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.scrollTo(m.cursor-1, 1)
		}
	case "down", "j":
		if m.cursor < len(m.rows)-1 {
			m.scrollTo(m.cursor+1, -1)
		}
	case "enter":
		if m.cursor < len(m.rows) && m.rows[m.cursor].selectable {
			m.comp.SelectItem(m.rows[m.cursor].path)
		}
	case "r":
		m.comp.RequestReload()
	case "l":
		s := m.comp.Settings()
		s.LoadMoreEnabled = !s.LoadMoreEnabled
		m.comp.SetSettings(s)
	case "h":
		for i := range m.self {
			m.self[i].Hidden = !m.self[i].Hidden
			m.comp.SetHidden(m.self[i].Item.Identity(), m.self[i].Hidden)
		}
	}
	return m, nil
}

// scrollTo moves the cursor, keeps it inside the window, publishes the
// viewport to the surface and feeds the scroll into the composer. A
// negative translation is an upward drag that reveals more content.
func (m *previewModel) scrollTo(cursor int, translation float64) {
	m.cursor = cursor
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+m.height {
		m.offset = m.cursor - m.height + 1
	}
	m.offset = max(min(m.offset, len(m.rows)-m.height), 0)

	end := min(m.offset+m.height, len(m.rows))
	var visible []grid.Path
	for _, r := range m.rows[m.offset:end] {
		if r.selectable {
			visible = append(visible, r.path)
		}
		if r.binding.Kind == gridview.BindLoadMore {
			m.comp.WillDisplay(r.view.Item)
		}
	}
	m.surface.setViewport(len(m.rows), m.offset, visible)

	if translation != 0 {
		m.comp.NotifyScroll(gridview.ScrollMetrics{
			ContentHeight: float64(len(m.rows)),
			OffsetY:       float64(m.offset),
			FrameHeight:   float64(m.height),
			TranslationY:  translation,
		})
	}
}

// buildRows flattens sections into preview rows.
func buildRows(comp *gridview.Composer, sections []grid.Section) []previewRow {
	var rows []previewRow
	for _, s := range sections {
		if s.Header != nil {
			rows = append(rows, previewRow{view: *s.Header, path: grid.Path{Section: s.Index, Row: -1}, binding: comp.Bind(*s.Header)})
		}
		for i, v := range s.Items {
			b := comp.Bind(v)
			rows = append(rows, previewRow{view: v, path: grid.Path{Section: s.Index, Row: i}, binding: b, selectable: b.Kind != gridview.BindLoadMore})
		}
		if s.Footer != nil {
			rows = append(rows, previewRow{view: *s.Footer, path: grid.Path{Section: s.Index, Row: len(s.Items)}, binding: comp.Bind(*s.Footer)})
		}
	}
	return rows
}

func (m previewModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Preview " + m.title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ scroll  ⏎ select  r reload  l load-more  h hidden items  q quit"))
	b.WriteString("\n\n")

	end := min(m.offset+m.height, len(m.rows))
	var rows [][]string
	for i := m.offset; i < end; i++ {
		r := m.rows[i]
		cursor := "  "
		if i == m.cursor {
			cursor = iconCursor + " "
		}
		path := r.path.String()
		if !r.selectable {
			path = fmt.Sprintf("%d", r.path.Section)
		}
		size := r.view.Item.Size()
		rows = append(rows, []string{
			cursor,
			path,
			r.binding.Kind.String(),
			bindingLabel(r.binding),
			r.view.Item.Identity(),
			size.Width.String() + " × " + size.Height.String(),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Path", "Binding", "View", "Identity", "Size").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return listHeaderStyle
			}
			idx := m.offset + row
			if idx >= len(m.rows) {
				return lipgloss.NewStyle()
			}
			r := m.rows[idx]
			base := lipgloss.NewStyle()
			switch {
			case idx == m.cursor:
				return base.Foreground(colorAccent).Bold(true)
			case r.binding.Kind == gridview.BindLoadMore:
				return base.Foreground(colorUpdate)
			case !r.selectable:
				return base.Foreground(colorGray)
			case r.view.Item.Identity() == m.selected:
				return base.Foreground(colorInsert)
			}
			return base.Foreground(colorText)
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(m.statusLine())
	return b.String()
}

func bindingLabel(b gridview.Binding) string {
	switch {
	case b.Kind == gridview.BindSelfHandling:
		return fmt.Sprint(b.View)
	case b.ViewType != "":
		return b.ViewType
	}
	return "—"
}

func (m previewModel) statusLine() string {
	parts := []string{
		fmt.Sprintf("%d sections", len(m.sections)),
		fmt.Sprintf("%d rows", len(m.rows)),
		fmt.Sprintf("%d reuse keys", len(m.reuse)),
	}
	if m.settings.LoadMoreEnabled {
		parts = append(parts, "load-more on")
	} else {
		parts = append(parts, "load-more off")
	}
	if m.loading {
		parts = append(parts, StyleWarning.Render("loading…"))
	}
	line := "  " + listDimStyle.Render(strings.Join(parts, " · "))
	if m.lastDiff != "" {
		line += "\n  " + listDimStyle.Render("last update: "+m.lastDiff)
	}
	if m.selected != "" {
		line += "\n  " + StyleSuccess.Render(iconSuccess) + " selected " + StyleValue.Render(m.selected)
	}
	return line
}
