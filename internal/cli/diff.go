package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gridcompose/pkg/compose"
	"github.com/matzehuels/gridcompose/pkg/diff"
	"github.com/matzehuels/gridcompose/pkg/grid"
	"github.com/matzehuels/gridcompose/pkg/manifest"
)

// diffCommand creates the diff command comparing two manifests.
func (c *CLI) diffCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "diff [old] [new]",
		Short: "Show the keyed changes between two manifests",
		Long: `Show the keyed changes between two manifests.

Items are matched by section, row and identity. Items whose identity is kept
but whose content changed are reported as updated; items that only changed
position are reported as moved.`,
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: completeManifests(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := diffManifests(args[0], args[1])
			if err != nil {
				return err
			}
			c.Logger.Debug("diff computed", "summary", d.Summary())

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(d)
			}
			if d.IsEmpty() {
				printSuccess("No changes")
				return nil
			}
			printDiff(d)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the diff as JSON")

	return cmd
}

func diffManifests(oldPath, newPath string) (diff.Result, error) {
	from, err := manifestSections(oldPath)
	if err != nil {
		return diff.Result{}, err
	}
	to, err := manifestSections(newPath)
	if err != nil {
		return diff.Result{}, err
	}
	return diff.Compute(from, to), nil
}

func manifestSections(path string) ([]grid.Section, error) {
	doc, err := manifest.Load(path)
	if err != nil {
		return nil, err
	}
	items, err := doc.Items()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return compose.Build(items, doc.HasMore), nil
}
