package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gridcompose/pkg/geometry"
	"github.com/matzehuels/gridcompose/pkg/manifest"
	"github.com/matzehuels/gridcompose/pkg/pipeline"
)

// layoutCommand creates the layout command for resolving manifest geometry.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		noCache bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "layout [manifest]",
		Short: "Resolve the layout of an item manifest",
		Long: `Resolve the layout of an item manifest.

The layout command reads a TOML or JSON manifest, groups its items into
sections and resolves each section's group tree for the container width.
The output is a layout.json file (same format as 'render -f json').

Results are cached locally for faster subsequent runs.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeManifests(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json, - for stdout)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even when cached")
	cmd.Flags().Float64Var(&opts.Width, "width", 0, "container width in points (default: manifest width or 390)")
	cmd.Flags().BoolVar(&opts.HasMore, "has-more", false, "append the load-more section")

	return cmd
}

// runLayout loads the manifest, computes the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	if err := loadManifest(input, &opts); err != nil {
		return err
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger
	spinner := newStageSpinner(ctx, "parse manifest", "resolve sections")
	spinner.Start()

	src, err := pipeline.Parse(opts)
	if err != nil {
		spinner.Fail("Invalid manifest")
		return err
	}
	opts.Items, opts.HasMore, opts.Width = src.Items, src.HasMore, src.Width
	spinner.Advance()

	sections, layout, _, cacheHit, err := runner.GenerateLayoutWithCacheInfo(ctx, opts)
	if err != nil {
		spinner.Fail("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	data, err := geometry.MarshalLayout(layout)
	if err != nil {
		return err
	}

	outputPath := output
	if outputPath == "" {
		outputPath = basePath("", input) + ".layout.json"
	}
	if err := writeOutput(outputPath, data); err != nil {
		return err
	}
	if outputPath == "-" {
		return nil
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(layoutStats{Items: len(src.Items), Sections: len(sections), Width: layout.Width, Cached: cacheHit})
	printNewline()
	printNextStep("Render", appName+" render -f txt,svg "+input)

	return nil
}

// loadManifest reads a manifest file into opts.
func loadManifest(path string, opts *pipeline.Options) error {
	format, err := manifest.DetectFormat(path)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read manifest %s: %w", path, err)
	}
	opts.Manifest = data
	opts.ManifestFormat = format
	return nil
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input. If output has a
// format extension (.svg, .txt, ...), that extension is stripped.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// writeOutput writes data to path, or to stdout when path is "-".
func writeOutput(path string, data []byte) error {
	if path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", path, err)
	}
	return nil
}
