// File: internal/extract/locator_test.go
package extract_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/auditlens/auditlens/api/schemas"
	"github.com/auditlens/auditlens/internal/extract"
)

// TestLocatorScanner_MarkerWithSnippet verifies the common case of a marker
// followed by a fenced code block.
func TestLocatorScanner_MarkerWithSnippet(t *testing.T) {
	body := "Some prose first.\n" +
		"- Found in src/Vault.sol [Line: 42]\n" +
		"```solidity\n" +
		"require(x);\n" +
		"```\n"

	locators, anomalies := extract.CollectLocators(body, zap.NewNop())
	require.Len(t, locators, 1)
	assert.Zero(t, anomalies)
	assert.Equal(t, schemas.Locator{
		File:    "src/Vault.sol",
		Line:    42,
		Snippet: "require(x);",
	}, locators[0])
}

// TestLocatorScanner_SnippetAttachment verifies that a snippet attaches only
// to the marker it directly follows; a marker immediately followed by another
// marker has no snippet.
func TestLocatorScanner_SnippetAttachment(t *testing.T) {
	body := "- Found in src/A.sol [Line: 1]\n" +
		"- Found in src/B.sol [Line: 2]\n" +
		"```solidity\n" +
		"uint256 x;\n" +
		"```\n"

	locators, anomalies := extract.CollectLocators(body, zap.NewNop())
	require.Len(t, locators, 2)
	assert.Zero(t, anomalies)
	assert.Empty(t, locators[0].Snippet)
	assert.Equal(t, "uint256 x;", locators[1].Snippet)
}

// TestLocatorScanner_MalformedLineNumber verifies that an unparseable line
// number is skipped, counted as an anomaly, and does not stop the scan.
func TestLocatorScanner_MalformedLineNumber(t *testing.T) {
	body := "- Found in src/Bad.sol [Line: abc]\n" +
		"- Found in src/Good.sol [Line: 7]\n"

	locators, anomalies := extract.CollectLocators(body, zap.NewNop())
	require.Len(t, locators, 1)
	assert.Equal(t, 1, anomalies)
	assert.Equal(t, "src/Good.sol", locators[0].File)
	assert.Equal(t, 7, locators[0].Line)
}

// TestLocatorScanner_MarkerInsideFence verifies that marker-like text inside a
// fenced code block is never treated as a marker.
func TestLocatorScanner_MarkerInsideFence(t *testing.T) {
	body := "```md\n" +
		"- Found in src/Fake.sol [Line: 99]\n" +
		"```\n" +
		"- Found in src/Real.sol [Line: 3]\n"

	locators, anomalies := extract.CollectLocators(body, zap.NewNop())
	require.Len(t, locators, 1)
	assert.Zero(t, anomalies)
	assert.Equal(t, "src/Real.sol", locators[0].File)
}

// TestLocatorScanner_Deterministic verifies that a fresh scanner over the same
// body yields an identical sequence.
func TestLocatorScanner_Deterministic(t *testing.T) {
	body := "- Found in src/A.sol [Line: 1]\n" +
		"```\nsnippet\n```\n" +
		"- Found in src/B.sol [Line: 2]\n"

	first, _ := extract.CollectLocators(body, zap.NewNop())
	second, _ := extract.CollectLocators(body, zap.NewNop())
	assert.Equal(t, first, second)
}

// TestLocatorScanner_UnterminatedFence verifies that a snippet fence left open
// at the end of the body keeps what was collected.
func TestLocatorScanner_UnterminatedFence(t *testing.T) {
	body := "- Found in src/A.sol [Line: 1]\n" +
		"```solidity\n" +
		"line one\n" +
		"line two"

	locators, _ := extract.CollectLocators(body, zap.NewNop())
	require.Len(t, locators, 1)
	assert.Equal(t, "line one\nline two", locators[0].Snippet)
}

// TestLocatorScanner_NoMarkers verifies the empty result for prose-only text.
func TestLocatorScanner_NoMarkers(t *testing.T) {
	locators, anomalies := extract.CollectLocators("prose only, nothing located", zap.NewNop())
	assert.Empty(t, locators)
	assert.Zero(t, anomalies)
}

// TestLocatorScanner_OptionalDash verifies that the leading "- " on a marker
// line is optional.
func TestLocatorScanner_OptionalDash(t *testing.T) {
	locators, _ := extract.CollectLocators("Found in src/NoDash.sol [Line: 12]", zap.NewNop())
	require.Len(t, locators, 1)
	assert.Equal(t, "src/NoDash.sol", locators[0].File)
	assert.Equal(t, 12, locators[0].Line)
}
