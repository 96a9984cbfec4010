package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/gridcompose/pkg/grid"
	"github.com/matzehuels/gridcompose/pkg/gridview"
	"github.com/matzehuels/gridcompose/pkg/manifest"
)

// previewOpts holds the flags of the preview command.
type previewOpts struct {
	pageSize int
	latency  time.Duration
}

// previewCommand creates the interactive preview command.
func (c *CLI) previewCommand() *cobra.Command {
	opts := previewOpts{pageSize: 20, latency: 300 * time.Millisecond}

	cmd := &cobra.Command{
		Use:   "preview [manifest]",
		Short: "Browse a manifest's sections interactively",
		Long: `Browse a manifest's sections interactively.

The preview feeds the manifest's items into a live grid composer page by
page. Scrolling towards the end, or reaching the load-more row, requests the
next page after a simulated latency. Reload rewinds to the first page and
'h' toggles the manifest's self-handling items.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeManifests(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPreview(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().IntVar(&opts.pageSize, "page", opts.pageSize, "items per page (0 loads everything)")
	cmd.Flags().DurationVar(&opts.latency, "latency", opts.latency, "simulated page load latency")

	return cmd
}

func (c *CLI) runPreview(ctx context.Context, input string, opts previewOpts) error {
	doc, err := manifest.Load(input)
	if err != nil {
		return err
	}
	set, err := doc.Build()
	if err != nil {
		return err
	}

	source := newPager(set.Items, opts.pageSize)
	settings := doc.DisplaySettings()
	settings.LoadMoreEnabled = settings.LoadMoreEnabled || len(set.Items) > source.size
	settings.ReloadEnabled = true

	surface := newTermSurface()
	loop := gridview.NewLoop(0)
	defer loop.Close()

	comp := gridview.New(surface, gridview.Options{
		Executor: loop,
		Settings: &settings,
		Logger:   c.Logger,
		Delegate: gridview.DelegateFuncs{
			LoadMore: func() { surface.post(loadMoreMsg{}) },
			Reload:   func() { surface.post(reloadMsg{}) },
			Selected: func(item grid.Item) { surface.post(selectedMsg{item: item}) },
		},
	})
	defer comp.Close()

	for _, e := range set.SelfHandling {
		comp.AddSelfHandlingItem(e.Item, fmt.Sprintf("embedded:%s", e.Item.Identity()), e.Hidden)
	}
	items, hasNext := source.next()
	comp.UpdateItems(items, hasNext || doc.HasMore)

	model := newPreviewModel(filepath.Base(input), comp, surface, source, set.SelfHandling, opts.latency)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	surface.attach(p.Send)

	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("preview: %w", err)
	}
	if m, ok := final.(previewModel); ok && m.selected != "" {
		printSuccess("Selected %s", m.selected)
	}
	return nil
}
