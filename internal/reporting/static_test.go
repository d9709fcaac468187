// -- internal/reporting/static_test.go --
package reporting_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/auditlens/auditlens/internal/reporting"
)

func renderStatic(t *testing.T, markdown string) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, reporting.RenderStatic(&buf, markdown, reporting.Options{Title: "Audit Report", ToolVersion: "0.1.0"}))
	return buf.String()
}

// TestRenderStatic_Headings verifies the three heading levels map to h1..h3.
func TestRenderStatic_Headings(t *testing.T) {
	out := renderStatic(t, "# Top\n## Middle\n### Inner\n")

	assert.Contains(t, out, "<h1>Top</h1>")
	assert.Contains(t, out, "<h2>Middle</h2>")
	assert.Contains(t, out, "<h3>Inner</h3>")
}

// TestRenderStatic_InlineMarkup verifies bold and inline-code transforms and
// that raw HTML in the source is escaped.
func TestRenderStatic_InlineMarkup(t *testing.T) {
	out := renderStatic(t, "This is **bold** and `code` and <script>alert(1)</script>\n")

	assert.Contains(t, out, "<strong>bold</strong>")
	assert.Contains(t, out, "<code>code</code>")
	assert.NotContains(t, out, "<script>alert(1)</script>")
	assert.Contains(t, out, "&lt;script&gt;")
}

// TestRenderStatic_FencedCode verifies fenced blocks become highlighted or at
// minimum preformatted output, with the code text preserved.
func TestRenderStatic_FencedCode(t *testing.T) {
	out := renderStatic(t, "```go\nfunc main() {}\n```\n")

	assert.Contains(t, out, "<pre")
	assert.Contains(t, out, "main")
}

// TestRenderStatic_Table verifies the table contract: the dash separator row
// is dropped, the first row becomes the header, and the rest become body rows.
func TestRenderStatic_Table(t *testing.T) {
	md := "| Metric | Value |\n" +
		"| ------ | ----- |\n" +
		"| Files | 12 |\n" +
		"| nSLOC | 480 |\n"
	out := renderStatic(t, md)

	assert.Contains(t, out, "<table>")
	assert.Contains(t, out, "<th>Metric</th><th>Value</th>")
	assert.Contains(t, out, "<td>Files</td><td>12</td>")
	assert.Contains(t, out, "<td>nSLOC</td><td>480</td>")
	assert.NotContains(t, out, "------")
}

// TestRenderStatic_SinglePipeLineIsNotATable verifies a lone pipe-delimited
// line falls back to paragraph text.
func TestRenderStatic_SinglePipeLineIsNotATable(t *testing.T) {
	out := renderStatic(t, "| just one row |\n\nprose after\n")

	assert.NotContains(t, out, "<table>")
	assert.Contains(t, out, "just one row")
}

// TestRenderStatic_Paragraphs verifies blank lines split paragraphs.
func TestRenderStatic_Paragraphs(t *testing.T) {
	out := renderStatic(t, "first paragraph\n\nsecond paragraph\n")

	assert.Contains(t, out, "<p>first paragraph</p>")
	assert.Contains(t, out, "<p>second paragraph</p>")
}

// TestRenderStatic_WellFormed parses a representative document.
func TestRenderStatic_WellFormed(t *testing.T) {
	md := "# Report\n" +
		"## Summary\n" +
		"| Metric | Value |\n" +
		"| --- | --- |\n" +
		"| Files | 3 |\n" +
		"\n" +
		"### H-1: Finding with **bold** text\n" +
		"prose line\n" +
		"```solidity\n" +
		"owner = _owner;\n" +
		"```\n"
	out := renderStatic(t, md)

	_, err := html.Parse(strings.NewReader(out))
	require.NoError(t, err)
	assert.Contains(t, out, "Audit Report")
	assert.Contains(t, out, "v0.1.0")
}
