// -- internal/reporting/html.go --
package reporting

import (
	"fmt"
	"html/template"
	"io"

	"go.uber.org/zap"

	"github.com/auditlens/auditlens/api/schemas"
	"github.com/auditlens/auditlens/internal/observability"
)

// HTMLReporter renders the envelope as a single self-contained page: summary
// cards, filter controls, and the full issue collection embedded as JSON for
// the client-side browser. No server round-trip is involved; filtering is a
// pure function of (issues, filter state) evaluated in the page.
type HTMLReporter struct {
	writer io.WriteCloser
	logger *zap.Logger
	opts   Options
}

// NewHTMLReporter creates a reporter producing the interactive document. It
// takes ownership of the writer.
func NewHTMLReporter(writer io.WriteCloser, opts Options) *HTMLReporter {
	if opts.Title == "" {
		opts.Title = "Audit Report"
	}
	return &HTMLReporter{
		writer: writer,
		logger: observability.GetLogger().Named("html_reporter"),
		opts:   opts,
	}
}

// Write renders the envelope into the document template.
func (r *HTMLReporter) Write(env *schemas.Envelope) error {
	issues := env.Issues
	if issues == nil {
		// The embedded script expects an array even for an empty run.
		issues = []schemas.Issue{}
	}
	issuesJSON, err := json.MarshalIndent(issues, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize issues for embedding: %w", err)
	}

	data := struct {
		Title       string
		ToolVersion string
		Env         *schemas.Envelope
		High        int
		Medium      int
		Low         int
		Info        int
		IssuesJSON  template.JS
	}{
		Title:       r.opts.Title,
		ToolVersion: r.opts.ToolVersion,
		Env:         env,
		High:        env.Aggregate.BySeverity[schemas.SeverityHigh],
		Medium:      env.Aggregate.BySeverity[schemas.SeverityMedium],
		Low:         env.Aggregate.BySeverity[schemas.SeverityLow],
		Info:        env.Aggregate.BySeverity[schemas.SeverityInfo],
		// MarshalIndent escapes '<' and '>' so the blob cannot terminate the
		// script element early.
		IssuesJSON: template.JS(issuesJSON),
	}

	if err := interactiveTemplate.Execute(r.writer, data); err != nil {
		return fmt.Errorf("failed to render interactive report: %w", err)
	}

	r.logger.Info("Rendered interactive report",
		zap.Int("issues", len(env.Issues)),
		zap.String("run_id", env.RunID),
	)
	return nil
}

// Close closes the underlying writer.
func (r *HTMLReporter) Close() error {
	if err := r.writer.Close(); err != nil {
		return fmt.Errorf("failed to close output writer: %w", err)
	}
	return nil
}

var interactiveTemplate = template.Must(template.New("interactive").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>{{.Title}}</title>
<style>
* { margin: 0; padding: 0; box-sizing: border-box; }
body {
  font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif;
  background: linear-gradient(135deg, #667eea 0%, #764ba2 100%);
  min-height: 100vh;
  padding: 20px;
}
.container {
  max-width: 1400px;
  margin: 0 auto;
  background: white;
  border-radius: 12px;
  box-shadow: 0 20px 60px rgba(0,0,0,0.3);
  overflow: hidden;
}
.header {
  background: linear-gradient(135deg, #667eea 0%, #764ba2 100%);
  color: white;
  padding: 30px;
  text-align: center;
}
.header h1 { font-size: 2.5em; margin-bottom: 10px; }
.header .meta { opacity: 0.9; font-size: 1.1em; }
.stats {
  display: grid;
  grid-template-columns: repeat(auto-fit, minmax(180px, 1fr));
  gap: 20px;
  padding: 30px;
  background: #f8f9fa;
}
.stat-card {
  background: white;
  padding: 20px;
  border-radius: 8px;
  box-shadow: 0 2px 4px rgba(0,0,0,0.1);
  text-align: center;
}
.stat-card .number { font-size: 2.5em; font-weight: bold; margin-bottom: 5px; }
.stat-card.total .number { color: #007bff; }
.stat-card.high .number { color: #dc3545; }
.stat-card.medium .number { color: #fd7e14; }
.stat-card.low .number { color: #ffc107; }
.stat-card.info .number { color: #17a2b8; }
.stat-card.auto-fixable .number { color: #28a745; }
.filters {
  padding: 20px 30px;
  background: white;
  border-bottom: 1px solid #e9ecef;
  display: flex;
  flex-wrap: wrap;
  gap: 15px;
  align-items: center;
}
.filter-group { display: flex; gap: 10px; align-items: center; }
.filter-group label { font-weight: 600; color: #495057; }
.filter-btn {
  padding: 8px 16px;
  border: 2px solid #dee2e6;
  background: white;
  border-radius: 6px;
  cursor: pointer;
  transition: all 0.3s;
  font-weight: 500;
}
.filter-btn:hover { border-color: #667eea; color: #667eea; }
.filter-btn.active { background: #667eea; color: white; border-color: #667eea; }
.search-box {
  flex: 1;
  min-width: 200px;
  padding: 10px 15px;
  border: 2px solid #dee2e6;
  border-radius: 6px;
  font-size: 1em;
}
.search-box:focus { outline: none; border-color: #667eea; }
.issues-container { padding: 30px; }
.issue-card {
  background: white;
  border-left: 4px solid #dee2e6;
  border-radius: 8px;
  padding: 20px;
  margin-bottom: 20px;
  box-shadow: 0 2px 8px rgba(0,0,0,0.1);
}
.issue-card.high { border-left-color: #dc3545; }
.issue-card.medium { border-left-color: #fd7e14; }
.issue-card.low { border-left-color: #ffc107; }
.issue-card.info { border-left-color: #17a2b8; }
.issue-header { display: flex; justify-content: space-between; align-items: flex-start; margin-bottom: 15px; }
.issue-title { font-size: 1.3em; font-weight: 600; color: #212529; flex: 1; }
.severity-badge {
  padding: 6px 12px;
  border-radius: 20px;
  font-size: 0.85em;
  font-weight: 600;
  text-transform: uppercase;
  margin-left: 15px;
}
.severity-badge.high { background: #dc3545; color: white; }
.severity-badge.medium { background: #fd7e14; color: white; }
.severity-badge.low { background: #ffc107; color: #212529; }
.severity-badge.info { background: #17a2b8; color: white; }
.auto-fix-badge {
  background: #28a745;
  color: white;
  padding: 4px 10px;
  border-radius: 12px;
  font-size: 0.75em;
  font-weight: 600;
  margin-left: 10px;
}
.issue-meta { display: flex; gap: 20px; margin-bottom: 15px; font-size: 0.9em; color: #6c757d; }
.issue-description { color: #495057; line-height: 1.6; margin-bottom: 15px; }
.code-snippet {
  background: #f8f9fa;
  border: 1px solid #e9ecef;
  border-radius: 6px;
  padding: 15px;
  margin: 15px 0;
  font-family: 'Courier New', monospace;
  font-size: 0.9em;
  overflow-x: auto;
}
.fix-suggestion {
  background: #e7f3ff;
  border-left: 4px solid #007bff;
  padding: 15px;
  border-radius: 6px;
  margin-top: 15px;
}
.fix-suggestion h4 { color: #007bff; margin-bottom: 8px; }
.fix-suggestion p { color: #495057; line-height: 1.6; }
.empty-state { text-align: center; padding: 60px 20px; color: #6c757d; }
.footer { text-align: center; padding: 20px; color: #6c757d; font-size: 0.9em; }
</style>
</head>
<body>
<div class="container">
  <div class="header">
    <h1>{{.Title}}</h1>
    <div class="meta">Generated: {{.Env.GeneratedAt.Format "2006-01-02 15:04:05"}} &middot; Run {{.Env.RunID}}</div>
  </div>

  <div class="stats">
    <div class="stat-card total"><div class="number">{{.Env.Aggregate.Total}}</div><div>Total Issues</div></div>
    <div class="stat-card high"><div class="number">{{.High}}</div><div>High</div></div>
    <div class="stat-card medium"><div class="number">{{.Medium}}</div><div>Medium</div></div>
    <div class="stat-card low"><div class="number">{{.Low}}</div><div>Low</div></div>
    <div class="stat-card info"><div class="number">{{.Info}}</div><div>Informational</div></div>
    <div class="stat-card auto-fixable"><div class="number">{{.Env.Aggregate.AutoFixable}}</div><div>Auto-fixable</div></div>
  </div>

  <div class="filters">
    <div class="filter-group">
      <label>Severity:</label>
      <button class="filter-btn active" data-severity="all">All</button>
      <button class="filter-btn" data-severity="high">High</button>
      <button class="filter-btn" data-severity="medium">Medium</button>
      <button class="filter-btn" data-severity="low">Low</button>
      <button class="filter-btn" data-severity="info">Info</button>
    </div>
    <div class="filter-group">
      <label>Type:</label>
      <button class="filter-btn active" data-type="all">All</button>
      <button class="filter-btn" data-type="auto-fixable">Auto-fixable</button>
      <button class="filter-btn" data-type="manual">Manual</button>
    </div>
    <input type="text" id="searchBox" class="search-box" placeholder="Search by file, title, or description...">
  </div>

  <div class="issues-container" id="issuesContainer"></div>

  <div class="footer">Generated by auditlens{{if .ToolVersion}} v{{.ToolVersion}}{{end}}</div>
</div>

<script>
const issues = {{.IssuesJSON}};

// filterIssues is a pure function of (issues, state); rendering never touches
// the source collection.
function filterIssues(issues, state) {
  return issues.filter(issue => {
    if (state.severity !== 'all' && issue.severity !== state.severity) {
      return false;
    }
    if (state.type === 'auto-fixable' && !issue.auto_fixable) {
      return false;
    }
    if (state.type === 'manual' && issue.auto_fixable) {
      return false;
    }
    if (state.query) {
      const haystack = (issue.title + ' ' + issue.description + ' ' + (issue.locator.file || '')).toLowerCase();
      if (!haystack.includes(state.query)) {
        return false;
      }
    }
    return true;
  });
}

function escapeHtml(text) {
  const div = document.createElement('div');
  div.textContent = text;
  return div.innerHTML;
}

function renderIssues(visible) {
  const container = document.getElementById('issuesContainer');
  if (visible.length === 0) {
    container.innerHTML = '<div class="empty-state"><h2>No issues found</h2><p>Try adjusting your filters</p></div>';
    return;
  }
  container.innerHTML = visible.map(issue => {
    const sev = issue.severity;
    const file = issue.locator.file || '';
    return '<div class="issue-card ' + sev + '">'
      + '<div class="issue-header"><div class="issue-title">'
      + escapeHtml(issue.id + ': ' + issue.title)
      + (issue.auto_fixable ? '<span class="auto-fix-badge">Auto-fixable</span>' : '')
      + '</div><span class="severity-badge ' + sev + '">' + sev + '</span></div>'
      + '<div class="issue-meta">'
      + (file ? '<span><strong>File:</strong> ' + escapeHtml(file) + '</span>' : '<span>No location reported</span>')
      + (issue.locator.line ? '<span><strong>Line:</strong> ' + issue.locator.line + '</span>' : '')
      + '</div>'
      + '<div class="issue-description">' + escapeHtml(issue.description) + '</div>'
      + (issue.locator.code_snippet
        ? '<div class="code-snippet"><pre><code>' + escapeHtml(issue.locator.code_snippet) + '</code></pre></div>'
        : '')
      + '<div class="fix-suggestion"><h4>Fix Suggestion</h4><p>' + escapeHtml(issue.fix_suggestion) + '</p></div>'
      + '</div>';
  }).join('');
}

function update(state) {
  renderIssues(filterIssues(issues, state));
}

const state = { severity: 'all', type: 'all', query: '' };

document.querySelectorAll('[data-severity]').forEach(btn => {
  btn.addEventListener('click', () => {
    state.severity = btn.dataset.severity;
    document.querySelectorAll('[data-severity]').forEach(b => {
      b.classList.toggle('active', b.dataset.severity === state.severity);
    });
    update(state);
  });
});

document.querySelectorAll('[data-type]').forEach(btn => {
  btn.addEventListener('click', () => {
    state.type = btn.dataset.type;
    document.querySelectorAll('[data-type]').forEach(b => {
      b.classList.toggle('active', b.dataset.type === state.type);
    });
    update(state);
  });
});

document.getElementById('searchBox').addEventListener('input', e => {
  state.query = e.target.value.toLowerCase();
  update(state);
});

update(state);
</script>
</body>
</html>
`))
