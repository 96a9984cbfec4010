package cli

import (
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gridcompose/pkg/manifest"
	"github.com/matzehuels/gridcompose/pkg/pipeline"
)

// completionCommand prints a shell completion script. Manifest arguments
// complete to .toml and .json files, and --format completes to the output
// formats the pipeline accepts.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate a shell completion script for gridcompose.

Manifest arguments complete to .toml and .json files, and render --format
completes to the supported output formats.

  $ source <(gridcompose completion bash)
  $ gridcompose completion zsh > "${fpath[1]}/_gridcompose"
  $ gridcompose completion fish > ~/.config/fish/completions/gridcompose.fish
  PS> gridcompose completion powershell | Out-String | Invoke-Expression`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			root := cmd.Root()
			switch args[0] {
			case "zsh":
				return root.GenZshCompletion(out)
			case "fish":
				return root.GenFishCompletion(out, true)
			case "powershell":
				return root.GenPowerShellCompletionWithDesc(out)
			}
			return root.GenBashCompletionV2(out, true)
		},
	}
}

// completeManifests completes up to n manifest paths.
func completeManifests(n int) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
		if len(args) >= n {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		return []string{manifest.FormatTOML, manifest.FormatJSON}, cobra.ShellCompDirectiveFilterFileExt
	}
}

// completeFormats completes the comma-separated --format value, offering
// only formats not listed yet.
func completeFormats(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	done := strings.Split(toComplete, ",")
	prefix := strings.Join(done[:len(done)-1], ",")
	if prefix != "" {
		prefix += ","
	}
	seen := make(map[string]bool, len(done))
	for _, f := range done[:len(done)-1] {
		seen[f] = true
	}

	var out []string
	for f := range pipeline.ValidFormats {
		if !seen[f] {
			out = append(out, prefix+f)
		}
	}
	sort.Strings(out)
	return out, cobra.ShellCompDirectiveNoFileComp | cobra.ShellCompDirectiveNoSpace
}
