// -- internal/reporting/console.go --
package reporting

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"github.com/olekukonko/tablewriter"
	"golang.org/x/term"

	"github.com/auditlens/auditlens/api/schemas"
)

const (
	defaultConsoleWidth = 100
	minConsoleWidth     = 40
)

// ConsoleOptions tunes the plain-text summary.
type ConsoleOptions struct {
	// NoColor disables ANSI colors.
	NoColor bool
	// Cap is the maximum number of issues printed per severity bucket before
	// the elision line.
	Cap int
	// Width is the target line width; zero means detect from the terminal.
	Width int
}

// consoleBuckets fixes the display order of the non-empty severity buckets.
var consoleBuckets = []schemas.Severity{
	schemas.SeverityHigh,
	schemas.SeverityMedium,
	schemas.SeverityLow,
}

// PrintConsoleSummary writes the human-oriented run summary: overall
// statistics, then for each non-empty High/Medium/Low bucket up to Cap issues
// followed by an elision line, then the closing totals.
func PrintConsoleSummary(w io.Writer, env *schemas.Envelope, opts ConsoleOptions) {
	if opts.Cap <= 0 {
		opts.Cap = 5
	}
	width := opts.Width
	if width <= 0 {
		width = detectWidth()
	}
	if width < minConsoleWidth {
		width = minConsoleWidth
	}

	header := color.New(color.FgCyan, color.Bold)
	section := color.New(color.FgBlue, color.Bold)
	bold := color.New(color.Bold)
	severityColors := map[schemas.Severity]*color.Color{
		schemas.SeverityHigh:   color.New(color.FgRed, color.Bold),
		schemas.SeverityMedium: color.New(color.FgYellow, color.Bold),
		schemas.SeverityLow:    color.New(color.FgBlue, color.Bold),
	}
	if opts.NoColor {
		for _, c := range []*color.Color{header, section, bold} {
			c.DisableColor()
		}
		for _, c := range severityColors {
			c.DisableColor()
		}
	}

	rule := strings.Repeat("=", width)
	header.Fprintln(w, rule)
	header.Fprintln(w, centerText("Security Analysis Summary", width))
	header.Fprintln(w, rule)

	if env.Summary.Len() > 0 {
		fmt.Fprintln(w)
		section.Fprintln(w, "Summary Statistics")
		table := tablewriter.NewWriter(w)
		table.Header("Metric", "Value")
		for _, entry := range env.Summary.Entries {
			table.Append([]string{entry.Label, entry.Value})
		}
		table.Render()
	}

	for _, sev := range consoleBuckets {
		count := env.Aggregate.BySeverity[sev]
		if count == 0 {
			continue
		}
		c := severityColors[sev]
		fmt.Fprintln(w)
		c.Fprintf(w, "%s Issues: %d\n", strings.ToUpper(string(sev)), count)

		bucket := FilterIssues(env.Issues, FilterState{Severity: sev})
		for i, issue := range bucket {
			if i == opts.Cap {
				break
			}
			line := fmt.Sprintf("  %s: %s", issue.ID, issue.Title)
			fmt.Fprintln(w, truncateToWidth(line, width))
		}
		if count > opts.Cap {
			fmt.Fprintf(w, "  ... and %d more\n", count-opts.Cap)
		}
	}

	fmt.Fprintln(w)
	bold.Fprintf(w, "Total Issues Found: %d\n", env.Aggregate.Total)
	bold.Fprintf(w, "Auto-fixable: %d\n", env.Aggregate.AutoFixable)
	if env.Anomalies > 0 {
		fmt.Fprintf(w, "Skipped %d malformed report element(s); the issue list may be incomplete.\n", env.Anomalies)
	}
}

// detectWidth reads the terminal width from stdout, falling back to a fixed
// width when stdout is not a terminal.
func detectWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return defaultConsoleWidth
	}
	w, _, err := term.GetSize(fd)
	if err != nil || w <= 0 {
		return defaultConsoleWidth
	}
	return w
}

// truncateToWidth trims a line to the display width, ellipsized. Width is
// measured in terminal cells, not bytes, so wide runes are handled correctly.
func truncateToWidth(s string, width int) string {
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width-3, "...")
}

func centerText(s string, width int) string {
	pad := (width - runewidth.StringWidth(s)) / 2
	if pad <= 0 {
		return s
	}
	return strings.Repeat(" ", pad) + s
}
