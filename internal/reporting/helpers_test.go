// -- internal/reporting/helpers_test.go --
package reporting_test

import (
	"bytes"
	"time"

	"github.com/auditlens/auditlens/api/schemas"
	"github.com/auditlens/auditlens/internal/aggregate"
)

// nopCloseBuffer lets the buffer stand in for the file handle a reporter
// normally owns.
type nopCloseBuffer struct {
	bytes.Buffer
}

func (b *nopCloseBuffer) Close() error { return nil }

// testEnvelope builds a small but fully populated envelope: two high issues
// (one auto-fixable with a snippet), one medium, one locator-less low, plus a
// summary table.
func testEnvelope() *schemas.Envelope {
	issues := []schemas.Issue{
		{
			ID:            "H-1",
			Title:         "Missing checks for `address(0)`",
			Description:   "Assigning an unchecked address can brick the contract.",
			Severity:      schemas.SeverityHigh,
			Locator:       schemas.Locator{File: "src/Vault.sol", Line: 42, Snippet: "owner = _owner;"},
			AutoFixable:   true,
			FixSuggestion: "Add require(_addr != address(0), 'Invalid address') check before assignment",
		},
		{
			ID:            "H-2",
			Title:         "Reentrancy in withdraw",
			Description:   "External call before state update.",
			Severity:      schemas.SeverityHigh,
			Locator:       schemas.Locator{File: "src/Vault.sol", Line: 77},
			FixSuggestion: "Review and fix manually based on best practices",
		},
		{
			ID:            "M-1",
			Title:         "Centralization Risk for trusted owners",
			Description:   "Owner can pause transfers.",
			Severity:      schemas.SeverityMedium,
			Locator:       schemas.Locator{File: "src/Registry.sol", Line: 5},
			FixSuggestion: "Document owner privileges, consider multi-sig, or implement timelock",
		},
		{
			ID:            "L-1",
			Title:         "Solidity pragma should be specific, not wide",
			Description:   "Pin the compiler version.",
			Severity:      schemas.SeverityLow,
			FixSuggestion: "Consider using specific version instead of ^ (e.g., 0.8.22 instead of ^0.8.22)",
		},
	}

	var summary schemas.ReportSummary
	summary.Add(".sol Files", "12")
	summary.Add("Total nSLOC", "480")

	return &schemas.Envelope{
		RunID:       "test-run-id",
		GeneratedAt: time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC),
		Source:      "report.md",
		Summary:     summary,
		Aggregate:   aggregate.Compute(issues),
		Issues:      issues,
	}
}
