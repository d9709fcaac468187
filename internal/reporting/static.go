// -- internal/reporting/static.go --
package reporting

import (
	"fmt"
	"html"
	"html/template"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"go.uber.org/zap"

	"github.com/auditlens/auditlens/internal/observability"
)

// RenderStatic converts raw report markdown into a styled, self-contained
// HTML document. Only the constructs a security report actually uses are
// transformed: headings, bold spans, fenced code blocks, inline code,
// pipe-delimited tables, and paragraph breaks.
func RenderStatic(w io.Writer, markdown string, opts Options) error {
	logger := observability.GetLogger().Named("static_reporter")
	if opts.Title == "" {
		opts.Title = "Audit Report"
	}

	body := transformMarkdown(markdown)

	data := struct {
		Title       string
		ToolVersion string
		GeneratedAt string
		Body        template.HTML
	}{
		Title:       opts.Title,
		ToolVersion: opts.ToolVersion,
		GeneratedAt: time.Now().Format("2006-01-02 15:04:05"),
		// Body is built entirely from escaped text and chroma output.
		Body: template.HTML(body),
	}

	if err := staticTemplate.Execute(w, data); err != nil {
		return fmt.Errorf("failed to render static report: %w", err)
	}
	logger.Info("Rendered static report", zap.Int("markdown_bytes", len(markdown)))
	return nil
}

var (
	boldPattern       = regexp.MustCompile(`\*\*(.+?)\*\*`)
	inlineCodePattern = regexp.MustCompile("`([^`]+)`")
)

// transformMarkdown walks the markdown line by line with a small state
// machine: fenced blocks are collected and highlighted, consecutive
// pipe-delimited lines form one table, everything else becomes headings or
// paragraphs.
func transformMarkdown(markdown string) string {
	var (
		out       strings.Builder
		paragraph []string
		tableRows []string
		fence     []string
		fenceLang string
		inFence   bool
	)

	flushParagraph := func() {
		if len(paragraph) == 0 {
			return
		}
		out.WriteString("<p>")
		out.WriteString(strings.Join(paragraph, "<br>\n"))
		out.WriteString("</p>\n")
		paragraph = nil
	}
	flushTable := func() {
		if len(tableRows) == 0 {
			return
		}
		writeTable(&out, tableRows)
		tableRows = nil
	}

	for _, line := range strings.Split(markdown, "\n") {
		if inFence {
			if isFenceLine(line) {
				out.WriteString(highlightSnippet(strings.Join(fence, "\n"), fenceLang))
				fence = nil
				inFence = false
				continue
			}
			fence = append(fence, line)
			continue
		}

		switch {
		case isFenceLine(line):
			flushParagraph()
			flushTable()
			inFence = true
			fenceLang = strings.TrimSpace(strings.TrimPrefix(strings.TrimLeft(line, " \t"), "```"))
		case strings.HasPrefix(strings.TrimSpace(line), "|"):
			flushParagraph()
			tableRows = append(tableRows, line)
		case strings.HasPrefix(line, "### "):
			flushParagraph()
			flushTable()
			fmt.Fprintf(&out, "<h3>%s</h3>\n", renderInline(line[4:]))
		case strings.HasPrefix(line, "## "):
			flushParagraph()
			flushTable()
			fmt.Fprintf(&out, "<h2>%s</h2>\n", renderInline(line[3:]))
		case strings.HasPrefix(line, "# "):
			flushParagraph()
			flushTable()
			fmt.Fprintf(&out, "<h1>%s</h1>\n", renderInline(line[2:]))
		case strings.TrimSpace(line) == "":
			flushParagraph()
			flushTable()
		default:
			flushTable()
			paragraph = append(paragraph, renderInline(line))
		}
	}
	// An unterminated fence is kept as a snippet rather than dropped.
	if inFence {
		out.WriteString(highlightSnippet(strings.Join(fence, "\n"), fenceLang))
	}
	flushParagraph()
	flushTable()

	return out.String()
}

func isFenceLine(line string) bool {
	return strings.HasPrefix(strings.TrimLeft(line, " \t"), "```")
}

// renderInline escapes a text span and then applies bold and inline-code
// markup. Escaping first keeps user text inert; the marker characters survive
// escaping untouched.
func renderInline(s string) string {
	escaped := html.EscapeString(s)
	escaped = boldPattern.ReplaceAllString(escaped, "<strong>$1</strong>")
	escaped = inlineCodePattern.ReplaceAllString(escaped, "<code>$1</code>")
	return escaped
}

// writeTable renders one block of consecutive pipe-delimited lines. The
// second line is discarded when it is a markdown separator row; the first
// remaining line becomes the header. A block with fewer than two remaining
// rows is not a table and falls back to paragraph text.
func writeTable(out *strings.Builder, rows []string) {
	parsed := make([][]string, 0, len(rows))
	for _, row := range rows {
		cells := splitStaticRow(row)
		if len(cells) > 0 {
			parsed = append(parsed, cells)
		}
	}
	if len(parsed) >= 2 && isDashRow(parsed[1]) {
		parsed = append(parsed[:1], parsed[2:]...)
	}
	if len(parsed) < 2 {
		for _, row := range rows {
			out.WriteString("<p>")
			out.WriteString(html.EscapeString(row))
			out.WriteString("</p>\n")
		}
		return
	}

	out.WriteString("<table>\n<thead><tr>")
	for _, cell := range parsed[0] {
		fmt.Fprintf(out, "<th>%s</th>", renderInline(cell))
	}
	out.WriteString("</tr></thead>\n<tbody>\n")
	for _, row := range parsed[1:] {
		out.WriteString("<tr>")
		for _, cell := range row {
			fmt.Fprintf(out, "<td>%s</td>", renderInline(cell))
		}
		out.WriteString("</tr>\n")
	}
	out.WriteString("</tbody>\n</table>\n")
}

func splitStaticRow(line string) []string {
	var cells []string
	for _, cell := range strings.Split(line, "|") {
		cell = strings.TrimSpace(cell)
		if cell != "" {
			cells = append(cells, cell)
		}
	}
	return cells
}

func isDashRow(cells []string) bool {
	for _, cell := range cells {
		if strings.Trim(cell, "-: ") != "" {
			return false
		}
	}
	return true
}

// highlightSnippet renders a fenced block through chroma when a usable lexer
// exists, falling back to an escaped <pre> block.
func highlightSnippet(code, lang string) string {
	lexer := lexers.Get(lang)
	if lexer == nil {
		lexer = lexers.Analyse(code)
	}
	if lexer == nil {
		return "<pre><code>" + html.EscapeString(code) + "</code></pre>\n"
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get("github")
	if style == nil {
		style = styles.Fallback
	}
	formatter := chromahtml.New(chromahtml.WithClasses(false))

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return "<pre><code>" + html.EscapeString(code) + "</code></pre>\n"
	}
	var buf strings.Builder
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return "<pre><code>" + html.EscapeString(code) + "</code></pre>\n"
	}
	return buf.String() + "\n"
}

var staticTemplate = template.Must(template.New("static").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>{{.Title}}</title>
<style>
body {
  font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif;
  line-height: 1.6;
  color: #333;
  max-width: 1200px;
  margin: 0 auto;
  padding: 20px;
  background: #f5f5f5;
}
.header {
  background: linear-gradient(135deg, #667eea 0%, #764ba2 100%);
  color: white;
  padding: 30px;
  border-radius: 10px;
  margin-bottom: 30px;
  box-shadow: 0 4px 6px rgba(0,0,0,0.1);
}
.header h1 { margin: 0; font-size: 2em; }
.header p { margin: 10px 0 0 0; opacity: 0.9; }
.content {
  background: white;
  padding: 30px;
  border-radius: 10px;
  box-shadow: 0 2px 4px rgba(0,0,0,0.1);
}
h1 { color: #667eea; border-bottom: 3px solid #667eea; padding-bottom: 10px; }
h2 { color: #764ba2; margin-top: 30px; }
h3 { color: #555; margin-top: 20px; }
code {
  background: #f4f4f4;
  padding: 2px 6px;
  border-radius: 3px;
  font-family: 'Courier New', monospace;
  font-size: 0.9em;
}
pre {
  background: #f4f4f4;
  padding: 15px;
  border-radius: 5px;
  overflow-x: auto;
  border-left: 4px solid #667eea;
}
table { width: 100%; border-collapse: collapse; margin: 20px 0; }
th, td { padding: 12px; text-align: left; border-bottom: 1px solid #ddd; }
th { background: #667eea; color: white; font-weight: bold; }
tr:hover { background: #f9f9f9; }
.footer { text-align: center; margin-top: 40px; padding: 20px; color: #666; font-size: 0.9em; }
</style>
</head>
<body>
<div class="header">
  <h1>{{.Title}}</h1>
  <p>Generated on {{.GeneratedAt}}</p>
</div>
<div class="content">
{{.Body}}
</div>
<div class="footer">
  <p>Generated by auditlens{{if .ToolVersion}} v{{.ToolVersion}}{{end}}</p>
</div>
</body>
</html>
`))
