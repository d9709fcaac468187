// File: internal/advisor/advisor.go

// Package advisor classifies issue titles into remediation advice. The
// classification is a pure function over a fixed, ordered rule table; order
// is load-bearing, with more specific keywords listed before generic ones.
package advisor

import "strings"

// ManualReviewSuggestion is the fallback advice when no rule matches. Every
// classification returns a non-empty suggestion.
const ManualReviewSuggestion = "Review and fix manually based on best practices"

// rule pairs a title keyword with its remediation advice. AutoFixable marks
// the mechanically-fixable subset.
type rule struct {
	Keyword     string
	Suggestion  string
	AutoFixable bool
}

// rules is evaluated top to bottom; the first substring match wins. The four
// auto-fixable rules come first, then manual-only advice from most specific
// to most generic.
var rules = []rule{
	{
		Keyword:     "Missing checks for `address(0)`",
		Suggestion:  "Add require(_addr != address(0), 'Invalid address') check before assignment",
		AutoFixable: true,
	},
	{
		// Shorthand used when reports abbreviate the address(0) finding.
		Keyword:     "zero check",
		Suggestion:  "Add require(_addr != address(0), 'Invalid address') check before assignment",
		AutoFixable: true,
	},
	{
		Keyword:     "Define and use `constant`",
		Suggestion:  "Create constant variable BPS_DENOMINATOR = 1e4 and use it instead of 10000",
		AutoFixable: true,
	},
	{
		Keyword:     "Large literal values multiples of 10000",
		Suggestion:  "Replace 10000 with 1e4 (scientific notation) or use BPS_DENOMINATOR constant",
		AutoFixable: true,
	},
	{
		Keyword:     "Return value of the function call is not checked",
		Suggestion:  "Use SafeERC20 library from OpenZeppelin or check return values explicitly",
		AutoFixable: true,
	},
	{
		Keyword:    "Unsafe ERC20 Operations",
		Suggestion: "Migrate to SafeERC20 library from OpenZeppelin contracts",
	},
	{
		Keyword:    "Event is missing `indexed` fields",
		Suggestion: "Add 'indexed' keyword to event parameters for better off-chain indexing",
	},
	{
		Keyword:    "Solidity pragma should be specific",
		Suggestion: "Consider using specific version instead of ^ (e.g., 0.8.22 instead of ^0.8.22)",
	},
	{
		Keyword:    "Centralization Risk",
		Suggestion: "Document owner privileges, consider multi-sig, or implement timelock",
	},
}

// Classify maps an issue title to its fix classification. It is total: a
// title that matches no rule yields (false, ManualReviewSuggestion).
func Classify(title string) (autoFixable bool, suggestion string) {
	for _, r := range rules {
		if strings.Contains(title, r.Keyword) {
			return r.AutoFixable, r.Suggestion
		}
	}
	return false, ManualReviewSuggestion
}
