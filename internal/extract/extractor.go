// File: internal/extract/extractor.go
package extract

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/auditlens/auditlens/api/schemas"
	"github.com/auditlens/auditlens/internal/advisor"
)

// ErrNoReport is returned when there is no report text to extract from.
// It is the only fatal condition in the extraction stage.
var ErrNoReport = errors.New("no report content")

// severityGroup binds a known top-level group title to the finding prefix
// expected inside it. The prefix check keeps a finding's label consistent
// with its group; the severity itself is derived from the label.
type severityGroup struct {
	Title  string
	Prefix string
}

// severityGroups lists the recognized top-level groups. Top-level groups with
// other titles are ignored.
var severityGroups = []severityGroup{
	{Title: "High Issues", Prefix: "H"},
	{Title: "Medium Issues", Prefix: "M"},
	{Title: "Low Issues", Prefix: "L"},
}

// findingLabelPattern matches a finding heading label such as
// "H-1: Missing zero check".
var findingLabelPattern = regexp.MustCompile(`^([HML])-(\d+):\s*(.*)$`)

// summarySectionTitles are the second-level headings whose pipe tables feed
// the report summary.
var summarySectionTitles = []string{"Summary", "Files Summary"}

// Result is the complete output of one extraction run.
type Result struct {
	Issues  []schemas.Issue
	Summary schemas.ReportSummary
	// Anomalies counts recoverable structural deviations (malformed locator
	// numbers, mislabeled finding headings) that were skipped.
	Anomalies int
}

// Extractor turns raw report text into the normalized issue collection. It is
// stateless between runs; every Extract call is independent.
type Extractor struct {
	maxDescription int
	logger         *zap.Logger
}

// New creates an Extractor. maxDescription bounds issue descriptions in bytes.
func New(maxDescription int, logger *zap.Logger) *Extractor {
	return &Extractor{
		maxDescription: maxDescription,
		logger:         logger.Named("extract"),
	}
}

// Extract parses the full report text and returns the ordered issue
// collection, the optional report summary, and the anomaly count. Structural
// anomalies never fail the run; only an empty report does.
func (e *Extractor) Extract(text string) (*Result, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrNoReport
	}

	res := &Result{Summary: e.extractSummary(text)}

	// Pass 1: isolate the known severity groups at heading rank 1.
	for _, section := range SplitSections(text, 1) {
		group, ok := groupFor(section.Label)
		if !ok {
			e.logger.Debug("Ignoring unrecognized top-level group", zap.String("label", section.Label))
			continue
		}

		// Pass 2: individual findings at heading rank 3 within the group body.
		for _, finding := range SplitSections(section.Body, 3) {
			e.extractFinding(res, finding, group.Prefix)
		}
	}

	e.logger.Info("Extraction complete",
		zap.Int("issues", len(res.Issues)),
		zap.Int("summary_rows", res.Summary.Len()),
		zap.Int("anomalies", res.Anomalies),
	)
	return res, nil
}

func groupFor(label string) (severityGroup, bool) {
	for _, g := range severityGroups {
		if strings.EqualFold(strings.TrimSpace(label), g.Title) {
			return g, true
		}
	}
	return severityGroup{}, false
}

// extractFinding converts one finding section into issues, one per locator,
// or exactly one locator-less issue when the body has no markers. Severity
// comes from the label prefix via schemas.SeverityFromLabel.
func (e *Extractor) extractFinding(res *Result, finding Section, prefix string) {
	m := findingLabelPattern.FindStringSubmatch(strings.TrimSpace(finding.Label))
	if m == nil || m[1] != prefix {
		res.Anomalies++
		e.logger.Warn("Skipping finding heading that does not match its group",
			zap.String("label", finding.Label),
			zap.String("expected_prefix", prefix),
		)
		return
	}

	id := fmt.Sprintf("%s-%s", m[1], m[2])
	severity := schemas.SeverityFromLabel(id)
	title := e.deriveTitle(m[3], id, finding.Body)
	description := truncateOnRuneBoundary(firstParagraph(finding.Body), e.maxDescription)
	autoFixable, suggestion := advisor.Classify(title)

	base := schemas.Issue{
		ID:            id,
		Title:         title,
		Description:   description,
		Severity:      severity,
		AutoFixable:   autoFixable,
		FixSuggestion: suggestion,
	}

	locators, anomalies := CollectLocators(finding.Body, e.logger)
	res.Anomalies += anomalies

	if len(locators) == 0 {
		// A finding described only in prose still yields one issue.
		res.Issues = appendUnique(res.Issues, base, e.logger)
		return
	}
	for _, loc := range locators {
		issue := base
		issue.Locator = loc
		res.Issues = appendUnique(res.Issues, issue, e.logger)
	}
}

// appendUnique enforces the (ID, Locator.Line) uniqueness invariant so the
// same finding occurrence is never rendered twice in one run.
func appendUnique(issues []schemas.Issue, issue schemas.Issue, logger *zap.Logger) []schemas.Issue {
	for _, existing := range issues {
		if existing.ID == issue.ID && existing.Locator.Line == issue.Locator.Line && existing.Locator.File == issue.Locator.File {
			logger.Debug("Dropping duplicate issue occurrence",
				zap.String("id", issue.ID),
				zap.Int("line", issue.Locator.Line),
			)
			return issues
		}
	}
	return append(issues, issue)
}

// deriveTitle prefers the heading remainder; when the heading carried only
// the id, it falls back to the first body line with any "<id>: " prefix
// stripped.
func (e *Extractor) deriveTitle(remainder, id, body string) string {
	title := strings.TrimSpace(remainder)
	if title != "" {
		return title
	}
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		return strings.TrimSpace(strings.TrimPrefix(line, id+":"))
	}
	return id
}

// firstParagraph returns body text up to the first blank-line paragraph
// boundary, trimmed.
func firstParagraph(body string) string {
	trimmed := strings.TrimSpace(body)
	if idx := strings.Index(trimmed, "\n\n"); idx >= 0 {
		return strings.TrimSpace(trimmed[:idx])
	}
	return trimmed
}

// truncateOnRuneBoundary caps s at max bytes without splitting a multi-byte
// character.
func truncateOnRuneBoundary(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

// extractSummary harvests label/value pairs from the pipe tables under the
// "Summary" and "Files Summary" headings, when present. Separator rows and
// rows with fewer than two cells are skipped.
func (e *Extractor) extractSummary(text string) schemas.ReportSummary {
	var summary schemas.ReportSummary
	for _, section := range SplitSections(text, 2) {
		if !isSummaryTitle(section.Label) {
			continue
		}
		for _, line := range strings.Split(section.Body, "\n") {
			if !strings.Contains(line, "|") {
				continue
			}
			cells := splitTableRow(line)
			if len(cells) < 2 || isSeparatorRow(cells) {
				continue
			}
			summary.Add(cells[0], cells[1])
		}
	}
	return summary
}

func isSummaryTitle(label string) bool {
	for _, t := range summarySectionTitles {
		if strings.EqualFold(strings.TrimSpace(label), t) {
			return true
		}
	}
	return false
}

// splitTableRow splits a pipe-delimited row into trimmed, non-empty cells.
func splitTableRow(line string) []string {
	var cells []string
	for _, cell := range strings.Split(line, "|") {
		cell = strings.TrimSpace(cell)
		if cell != "" {
			cells = append(cells, cell)
		}
	}
	return cells
}

// isSeparatorRow reports whether every cell consists solely of dashes and
// colons, i.e. the markdown header separator.
func isSeparatorRow(cells []string) bool {
	for _, cell := range cells {
		if strings.Trim(cell, "-: ") != "" {
			return false
		}
	}
	return true
}
