package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gridcompose/pkg/pipeline"
)

// renderCommand creates the render command for generating artifacts.
//
// Default settings:
//   - format: txt (text outline)
//   - width: manifest width, or 390 points
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output     string
		formatsStr string
		noCache    bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "render [manifest]",
		Short: "Render a manifest's layout as JSON, text, DOT, SVG or PNG",
		Long: `Render a manifest's layout.

Formats (comma-separated):
  json  resolved layout
  txt   text outline of each section's group tree
  dot   Graphviz source, one cluster per section
  svg   Graphviz drawing
  png   Graphviz drawing

A single format may be written to stdout with -o -. With several formats,
-o names the base path and each file gets its format's extension.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeManifests(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format, - for stdout) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): txt (default), json, dot, svg, png (comma-separated)")
	_ = cmd.RegisterFlagCompletionFunc("format", completeFormats)
	cmd.Flags().Float64Var(&opts.Width, "width", 0, "container width in points (default: manifest width or 390)")
	cmd.Flags().BoolVar(&opts.HasMore, "has-more", false, "append the load-more section")
	cmd.Flags().BoolVar(&opts.Detailed, "detailed", false, "annotate resolved point widths")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even when cached")

	return cmd
}

// runRender runs the full pipeline and writes one file per format.
func (c *CLI) runRender(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	if err := loadManifest(input, &opts); err != nil {
		return err
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger
	prog := newProgress(c.Logger)
	result, err := runner.Execute(ctx, opts)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Rendered %d items in %d sections", result.Stats.ItemCount, result.Stats.SectionCount))

	paths := outputPaths(input, output, opts.Formats)
	for _, format := range opts.Formats {
		if err := writeOutput(paths[format], result.Artifacts[format]); err != nil {
			return err
		}
	}
	if output == "-" {
		return nil
	}

	printSuccess("Render complete")
	for _, format := range opts.Formats {
		printFile(paths[format])
	}
	printStats(layoutStats{
		Items:    result.Stats.ItemCount,
		Sections: result.Stats.SectionCount,
		Width:    result.Layout.Width,
		Cached:   result.CacheInfo.LayoutHit && result.CacheInfo.RenderHit,
	})
	return nil
}

// outputPaths maps each format to its output file. A single format uses
// output verbatim when it is set.
func outputPaths(input, output string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" {
		paths[formats[0]] = output
		return paths
	}
	base := basePath(output, input)
	for _, f := range formats {
		paths[f] = base + "." + f
	}
	return paths
}
