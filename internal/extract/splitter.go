// File: internal/extract/splitter.go
package extract

import "strings"

// Section is a contiguous span of report text under one heading.
type Section struct {
	// Label is the heading text with the marker stripped, e.g.
	// "H-1: Reentrancy in withdraw".
	Label string
	// Body is everything until the next heading of equal or higher rank.
	Body string
}

// headingRank returns the markdown heading rank of a line (1 for "# ", 2 for
// "## ", ...) or 0 when the line is not a heading. Headings are recognized at
// line start only.
func headingRank(line string) int {
	n := 0
	for n < len(line) && line[n] == '#' {
		n++
	}
	if n == 0 || n > 6 {
		return 0
	}
	// Require a separating space so "#not-a-heading" stays body text.
	if n >= len(line) || line[n] != ' ' {
		return 0
	}
	return n
}

// isFenceDelimiter reports whether a line opens or closes a fenced code block.
func isFenceDelimiter(line string) bool {
	return strings.HasPrefix(strings.TrimLeft(line, " \t"), "```")
}

// SplitSections splits report text into labeled sections at headings of
// exactly the given rank. Headings of lower rank (more '#') stay inside the
// enclosing body; a heading of higher rank (fewer '#') terminates the current
// section without starting a new one. Heading-like lines inside fenced code
// blocks are ignored. Text before the first heading of the requested rank is
// not part of any section. When no heading of the rank exists the result is
// empty, never an error.
func SplitSections(text string, rank int) []Section {
	var (
		sections []Section
		label    string
		body     []string
		open     bool
		inFence  bool
	)

	flush := func() {
		if open {
			sections = append(sections, Section{Label: label, Body: strings.Join(body, "\n")})
		}
		open = false
		body = nil
	}

	for _, line := range strings.Split(text, "\n") {
		if isFenceDelimiter(line) {
			inFence = !inFence
			if open {
				body = append(body, line)
			}
			continue
		}
		if !inFence {
			if r := headingRank(line); r > 0 && r <= rank {
				flush()
				if r == rank {
					label = strings.TrimSpace(line[rank+1:])
					open = true
				}
				continue
			}
		}
		if open {
			body = append(body, line)
		}
	}
	flush()

	return sections
}
