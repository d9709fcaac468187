// File: internal/aggregate/aggregate.go

// Package aggregate derives summary statistics from an issue collection. The
// computation is a pure, deterministic fold: rerunning it on the same input
// yields identical output, which the renderers rely on for idempotence.
package aggregate

import "github.com/auditlens/auditlens/api/schemas"

// Compute folds the issue collection into an Aggregate. All four severity
// counts are always present, even at zero. By-file grouping preserves
// first-seen order of files and, within each file, first-seen order of
// issues; locator-less issues group under the empty path.
func Compute(issues []schemas.Issue) schemas.Aggregate {
	agg := schemas.Aggregate{
		Total:      len(issues),
		BySeverity: make(map[schemas.Severity]int, len(schemas.Severities)),
	}
	for _, sev := range schemas.Severities {
		agg.BySeverity[sev] = 0
	}

	fileIndex := make(map[string]int)
	for _, issue := range issues {
		agg.BySeverity[issue.Severity]++
		if issue.AutoFixable {
			agg.AutoFixable++
		}

		idx, seen := fileIndex[issue.Locator.File]
		if !seen {
			idx = len(agg.ByFile)
			fileIndex[issue.Locator.File] = idx
			agg.ByFile = append(agg.ByFile, schemas.FileGroup{File: issue.Locator.File})
		}
		agg.ByFile[idx].Issues = append(agg.ByFile[idx].Issues, issue)
	}
	return agg
}
