// -- internal/reporting/filter_test.go --
package reporting_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/auditlens/auditlens/api/schemas"
	"github.com/auditlens/auditlens/internal/reporting"
)

func filterFixtures() []schemas.Issue {
	return []schemas.Issue{
		{ID: "H-1", Title: "Reentrancy in withdraw", Severity: schemas.SeverityHigh, Locator: schemas.Locator{File: "src/Vault.sol"}},
		{ID: "H-2", Title: "Missing checks for `address(0)`", Severity: schemas.SeverityHigh, AutoFixable: true, Locator: schemas.Locator{File: "src/Registry.sol"}},
		{ID: "M-1", Title: "Centralization Risk", Description: "owner can pause", Severity: schemas.SeverityMedium, Locator: schemas.Locator{File: "src/Vault.sol"}},
		{ID: "L-1", Title: "Wide pragma", Severity: schemas.SeverityLow},
	}
}

// TestFilterIssues_ZeroState verifies that the zero state selects everything
// in input order.
func TestFilterIssues_ZeroState(t *testing.T) {
	issues := filterFixtures()
	got := reporting.FilterIssues(issues, reporting.FilterState{})
	assert.Equal(t, issues, got)
}

// TestFilterIssues_Composition verifies that severity, fixability, and query
// compose with AND semantics.
func TestFilterIssues_Composition(t *testing.T) {
	issues := filterFixtures()

	tests := []struct {
		name  string
		state reporting.FilterState
		ids   []string
	}{
		{
			name:  "severity only",
			state: reporting.FilterState{Severity: schemas.SeverityHigh},
			ids:   []string{"H-1", "H-2"},
		},
		{
			name:  "auto-fixable only",
			state: reporting.FilterState{Fixability: reporting.FixabilityAuto},
			ids:   []string{"H-2"},
		},
		{
			name:  "manual only",
			state: reporting.FilterState{Fixability: reporting.FixabilityManual},
			ids:   []string{"H-1", "M-1", "L-1"},
		},
		{
			name:  "query matches title case-insensitively",
			state: reporting.FilterState{Query: "REENTRANCY"},
			ids:   []string{"H-1"},
		},
		{
			name:  "query matches file path",
			state: reporting.FilterState{Query: "vault.sol"},
			ids:   []string{"H-1", "M-1"},
		},
		{
			name:  "query matches description",
			state: reporting.FilterState{Query: "pause"},
			ids:   []string{"M-1"},
		},
		{
			name: "all three composed",
			state: reporting.FilterState{
				Severity:   schemas.SeverityHigh,
				Fixability: reporting.FixabilityManual,
				Query:      "vault",
			},
			ids: []string{"H-1"},
		},
		{
			name:  "no match",
			state: reporting.FilterState{Severity: schemas.SeverityInfo},
			ids:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := reporting.FilterIssues(issues, tt.state)
			var ids []string
			for _, issue := range got {
				ids = append(ids, issue.ID)
			}
			assert.Equal(t, tt.ids, ids)
		})
	}
}

// TestFilterIssues_Pure verifies the input slice is never modified.
func TestFilterIssues_Pure(t *testing.T) {
	issues := filterFixtures()
	snapshot := make([]schemas.Issue, len(issues))
	copy(snapshot, issues)

	_ = reporting.FilterIssues(issues, reporting.FilterState{Severity: schemas.SeverityHigh, Query: "x"})
	require.Equal(t, snapshot, issues)
}
