package schemas

import "time"

// -- Issue Schemas --

// Severity represents the severity level of an audit finding. The values are
// lowercase to align with the embedded report JSON consumed by the HTML view.
type Severity string

// Constants defining the standard severity levels for issues.
const (
	SeverityHigh   Severity = "high"   // Derived from an "H-" label prefix.
	SeverityMedium Severity = "medium" // Derived from an "M-" label prefix.
	SeverityLow    Severity = "low"    // Derived from an "L-" label prefix.
	SeverityInfo   Severity = "info"   // Fallback for unrecognized prefixes.
)

// Severities lists all severity levels in display order. Aggregation reports
// a count for every entry, including zeroes.
var Severities = []Severity{SeverityHigh, SeverityMedium, SeverityLow, SeverityInfo}

// SeverityFromLabel derives a severity from a finding label such as
// "H-1: Reentrancy in withdraw". Unrecognized prefixes map to SeverityInfo.
func SeverityFromLabel(label string) Severity {
	switch {
	case len(label) >= 2 && label[0] == 'H' && label[1] == '-':
		return SeverityHigh
	case len(label) >= 2 && label[0] == 'M' && label[1] == '-':
		return SeverityMedium
	case len(label) >= 2 && label[0] == 'L' && label[1] == '-':
		return SeverityLow
	default:
		return SeverityInfo
	}
}

// Locator pinpoints one "found at" occurrence inside a finding body. A zero
// Locator means the finding was described in prose only.
type Locator struct {
	// File is the path reported by the analyzer, relative to the audited project.
	File string `json:"file"`
	// Line is the 1-based source line. Zero means the report carried no line.
	Line int `json:"line,omitempty"`
	// Snippet is the fenced code block attached to the locator, if any.
	Snippet string `json:"code_snippet,omitempty"`
}

// IsZero reports whether the locator carries no location at all.
func (l Locator) IsZero() bool {
	return l.File == "" && l.Line == 0 && l.Snippet == ""
}

// Issue is the normalized unit of output: one finding occurrence, immutable
// once extracted. A finding section with N locators yields N issues sharing
// title, severity, description and fix classification.
type Issue struct {
	// ID is the severity-prefixed ordinal from the report heading, e.g. "H-1".
	ID string `json:"id"`
	// Title is the first line of the finding body with any "<id>: " prefix stripped.
	Title string `json:"title"`
	// Description is the first paragraph of the finding body, truncated to the
	// configured maximum on a rune boundary.
	Description string `json:"description"`

	Severity Severity `json:"severity"`
	Locator  Locator  `json:"locator"`

	// AutoFixable marks findings that match a known mechanical-remediation
	// pattern. It is set exclusively by the advisor classification.
	AutoFixable bool `json:"auto_fixable"`
	// FixSuggestion is always non-empty; when no rule matches it holds a
	// generic manual-review instruction.
	FixSuggestion string `json:"fix_suggestion"`
}

// ReportSummary holds label/value pairs harvested opportunistically from the
// report's "Summary" or "Files Summary" tables. It preserves the order rows
// appeared in and is empty when the report has no such table.
type ReportSummary struct {
	Entries []SummaryEntry `json:"entries,omitempty"`
}

// SummaryEntry is one row of the report summary table.
type SummaryEntry struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Add appends a label/value pair to the summary.
func (s *ReportSummary) Add(label, value string) {
	s.Entries = append(s.Entries, SummaryEntry{Label: label, Value: value})
}

// Len returns the number of summary rows.
func (s *ReportSummary) Len() int { return len(s.Entries) }

// FileGroup is the ordered set of issues that share a file path.
type FileGroup struct {
	File   string  `json:"file"`
	Issues []Issue `json:"issues"`
}

// Aggregate carries the derived statistics for one issue collection. It is
// recomputed from the issues on every render and never mutated in place.
type Aggregate struct {
	Total       int              `json:"total"`
	BySeverity  map[Severity]int `json:"by_severity"`
	AutoFixable int              `json:"auto_fixable"`
	// ByFile groups issues by file path, preserving first-seen order of files
	// and, within each file, first-seen order of issues. Issues without a
	// locator are grouped under the empty path.
	ByFile []FileGroup `json:"by_file"`
}

// Envelope is the top-level structure handed to reporters: the normalized
// issues plus everything derived from them for a single run.
type Envelope struct {
	RunID       string        `json:"run_id"`
	GeneratedAt time.Time     `json:"generated_at"`
	Source      string        `json:"source,omitempty"`
	Summary     ReportSummary `json:"summary"`
	Aggregate   Aggregate     `json:"aggregate"`
	Issues      []Issue       `json:"issues"`
	// Anomalies counts recoverable structural deviations skipped during
	// extraction, so reviewers know the issue list may be incomplete.
	Anomalies int `json:"anomalies"`
}
