// -- internal/reporting/filter.go --
package reporting

import (
	"strings"

	"github.com/auditlens/auditlens/api/schemas"
)

// FixabilityFilter selects issues by their fix classification.
type FixabilityFilter string

const (
	FixabilityAll    FixabilityFilter = "all"
	FixabilityAuto   FixabilityFilter = "auto-fixable"
	FixabilityManual FixabilityFilter = "manual"
)

// FilterState is one concrete combination of the three independent filters.
// The zero value selects everything. The embedded script in the interactive
// document implements the exact same semantics client-side.
type FilterState struct {
	// Severity narrows to one severity; empty means all.
	Severity schemas.Severity
	// Fixability narrows to auto-fixable or manual issues.
	Fixability FixabilityFilter
	// Query is a case-insensitive substring matched against title,
	// description, and file path.
	Query string
}

// FilterIssues returns the issues matching the state. All three filters are
// AND-composed. The function is pure: the input slice is never modified and
// the result preserves input order.
func FilterIssues(issues []schemas.Issue, state FilterState) []schemas.Issue {
	query := strings.ToLower(state.Query)
	var out []schemas.Issue
	for _, issue := range issues {
		if state.Severity != "" && issue.Severity != state.Severity {
			continue
		}
		if state.Fixability == FixabilityAuto && !issue.AutoFixable {
			continue
		}
		if state.Fixability == FixabilityManual && issue.AutoFixable {
			continue
		}
		if query != "" {
			haystack := strings.ToLower(issue.Title + " " + issue.Description + " " + issue.Locator.File)
			if !strings.Contains(haystack, query) {
				continue
			}
		}
		out = append(out, issue)
	}
	return out
}
