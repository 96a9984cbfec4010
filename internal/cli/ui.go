package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"

	"github.com/matzehuels/gridcompose/pkg/diff"
)

// Palette. Diff colors follow the change kind so the CLI output and the
// preview agree on what green or amber means.
var (
	colorAccent = lipgloss.Color("36")  // sections, titles
	colorInsert = lipgloss.Color("35")  // inserted items, success
	colorUpdate = lipgloss.Color("220") // updated items, warnings
	colorDelete = lipgloss.Color("167") // deleted items, errors
	colorMove   = lipgloss.Color("75")  // moved items, commands
	colorText   = lipgloss.Color("255")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
)

var (
	StyleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	StyleDim     = lipgloss.NewStyle().Foreground(colorDim)
	StyleValue   = lipgloss.NewStyle().Foreground(colorText)
	StyleSuccess = lipgloss.NewStyle().Foreground(colorInsert)
	StyleWarning = lipgloss.NewStyle().Foreground(colorUpdate)
)

var (
	styleSpinnerCell = lipgloss.NewStyle().Foreground(colorAccent)
	styleError       = lipgloss.NewStyle().Foreground(colorDelete)
	styleInfo        = lipgloss.NewStyle().Foreground(colorGray)
	styleCommand     = lipgloss.NewStyle().Foreground(colorMove)
	styleCached      = lipgloss.NewStyle().Foreground(colorInsert)

	changeStyles = map[string]lipgloss.Style{
		"inserted":  lipgloss.NewStyle().Foreground(colorInsert),
		"deleted":   lipgloss.NewStyle().Foreground(colorDelete),
		"updated":   lipgloss.NewStyle().Foreground(colorUpdate),
		"moved":     lipgloss.NewStyle().Foreground(colorMove),
		"duplicate": lipgloss.NewStyle().Foreground(colorDim),
	}
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconInfo    = "›"
	iconArrow   = "→"
	iconCursor  = "▸"
)

func printSuccess(format string, args ...any) {
	fmt.Println(StyleSuccess.Render(iconSuccess) + " " + fmt.Sprintf(format, args...))
}

func printError(format string, args ...any) {
	fmt.Println(styleError.Render(iconError) + " " + fmt.Sprintf(format, args...))
}

func printInfo(format string, args ...any) {
	fmt.Println(styleInfo.Render(iconInfo) + " " + fmt.Sprintf(format, args...))
}

// printDetail prints an indented, dimmed line.
func printDetail(format string, args ...any) {
	fmt.Println("  " + StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints a written artifact path.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

// printNextStep suggests a follow-up command.
func printNextStep(description, cmd string) {
	fmt.Println(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

// layoutStats summarizes one layout or render run.
type layoutStats struct {
	Items    int
	Sections int
	Width    float64
	Cached   bool
}

// formatStats renders stats as "12 items · 3 sections · 390pt · cached".
// Zero counts and widths are left out.
func formatStats(st layoutStats) string {
	var parts []string
	if st.Items > 0 {
		parts = append(parts, plural(st.Items, "item"))
	}
	if st.Sections > 0 {
		parts = append(parts, plural(st.Sections, "section"))
	}
	if st.Width > 0 {
		parts = append(parts, strconv.FormatFloat(st.Width, 'f', -1, 64)+"pt")
	}
	for i, p := range parts {
		parts[i] = StyleDim.Render(p)
	}
	if st.Cached {
		parts = append(parts, styleCached.Render("cached"))
	} else {
		parts = append(parts, StyleDim.Render("fresh"))
	}
	return strings.Join(parts, StyleDim.Render(" · "))
}

func printStats(st layoutStats) {
	fmt.Println("  " + formatStats(st))
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return strconv.Itoa(n) + " " + noun + "s"
}

// diffTree renders the keyed changes of d as a tree: one branch per change
// kind holding the affected item keys, then one branch for section changes.
func diffTree(d diff.Result) *tree.Tree {
	root := tree.Root(StyleTitle.Render(d.Summary())).
		Enumerator(tree.RoundedEnumerator).
		EnumeratorStyle(StyleDim)

	items := []struct {
		kind string
		keys []string
	}{
		{"inserted", d.Inserted},
		{"deleted", d.Deleted},
		{"updated", d.Updated},
		{"moved", d.Moved},
		{"duplicate", d.Duplicates},
	}
	for _, g := range items {
		if len(g.keys) == 0 {
			continue
		}
		branch := tree.Root(changeStyles[g.kind].Render(g.kind)).
			Enumerator(tree.RoundedEnumerator).
			EnumeratorStyle(StyleDim)
		for _, k := range g.keys {
			branch.Child(StyleValue.Render(k))
		}
		root.Child(branch)
	}

	sections := []struct {
		kind    string
		indices []int
	}{
		{"inserted", d.InsertedSections},
		{"deleted", d.DeletedSections},
		{"reloaded", d.ReloadedSections},
	}
	var changed []string
	for _, g := range sections {
		for _, idx := range g.indices {
			changed = append(changed, fmt.Sprintf("%d %s", idx, g.kind))
		}
	}
	if len(changed) > 0 {
		branch := tree.Root(StyleDim.Render("sections")).
			Enumerator(tree.RoundedEnumerator).
			EnumeratorStyle(StyleDim)
		for _, c := range changed {
			branch.Child(StyleDim.Render(c))
		}
		root.Child(branch)
	}
	return root
}

func printDiff(d diff.Result) {
	fmt.Println(diffTree(d).String())
}

func printNewline() {
	fmt.Println()
}
