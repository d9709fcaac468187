// File: internal/extract/locator.go
package extract

import (
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/auditlens/auditlens/api/schemas"
)

// markerPattern matches an analyzer locator line such as
// "- Found in src/Vault.sol [Line: 42]". The leading dash is optional and the
// line field is captured loosely so malformed numbers can be reported instead
// of silently ignored.
var markerPattern = regexp.MustCompile(`^\s*(?:-\s*)?Found in (\S+) \[Line: ([^\]]*)\]`)

// LocatorScanner walks a section body and yields one Locator per marker line,
// in text order. The scanner is a small state machine with two states, Normal
// and InFence, so marker-like text inside fenced code blocks is never treated
// as a marker. A fresh scanner over the same body yields the same sequence.
type LocatorScanner struct {
	lines     []string
	pos       int
	inFence   bool
	anomalies int
	logger    *zap.Logger
}

// NewLocatorScanner creates a scanner over one section body.
func NewLocatorScanner(body string, logger *zap.Logger) *LocatorScanner {
	return &LocatorScanner{
		lines:  strings.Split(body, "\n"),
		logger: logger,
	}
}

// Anomalies returns the number of malformed locators skipped so far.
func (s *LocatorScanner) Anomalies() int { return s.anomalies }

// Next returns the next locator and true, or a zero locator and false when
// the body is exhausted. A marker with an unparseable line number is skipped
// and counted as a recoverable anomaly; scanning continues.
func (s *LocatorScanner) Next() (schemas.Locator, bool) {
	for s.pos < len(s.lines) {
		line := s.lines[s.pos]
		s.pos++

		if isFenceDelimiter(line) {
			s.inFence = !s.inFence
			continue
		}
		if s.inFence {
			continue
		}

		m := markerPattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		lineNum, err := strconv.Atoi(strings.TrimSpace(m[2]))
		if err != nil || lineNum < 0 {
			s.anomalies++
			s.logger.Warn("Skipping locator with malformed line number",
				zap.String("file", m[1]),
				zap.String("raw_line", m[2]),
			)
			continue
		}

		return schemas.Locator{
			File:    m[1],
			Line:    lineNum,
			Snippet: s.snippetAfter(s.pos),
		}, true
	}
	return schemas.Locator{}, false
}

// snippetAfter finds the first fenced code block strictly between the marker
// at lines[from-1] and the next marker (or end of body). It is a bounded
// lookahead and does not move the scanner cursor, so the main scan keeps its
// own fence accounting.
func (s *LocatorScanner) snippetAfter(from int) string {
	var (
		collecting bool
		snippet    []string
	)
	for i := from; i < len(s.lines); i++ {
		line := s.lines[i]
		if isFenceDelimiter(line) {
			if collecting {
				return strings.Join(snippet, "\n")
			}
			collecting = true
			continue
		}
		if collecting {
			snippet = append(snippet, line)
			continue
		}
		if markerPattern.MatchString(line) {
			// Next marker before any fence: this locator has no snippet.
			return ""
		}
	}
	if collecting {
		// Unterminated fence at end of body; keep what was collected.
		return strings.Join(snippet, "\n")
	}
	return ""
}

// CollectLocators drains a fresh scanner over body and returns all locators
// plus the anomaly count. Convenience for callers that do not need laziness.
func CollectLocators(body string, logger *zap.Logger) ([]schemas.Locator, int) {
	scanner := NewLocatorScanner(body, logger)
	var locators []schemas.Locator
	for {
		loc, ok := scanner.Next()
		if !ok {
			break
		}
		locators = append(locators, loc)
	}
	return locators, scanner.Anomalies()
}
