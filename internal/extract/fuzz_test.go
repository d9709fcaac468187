// File: internal/extract/fuzz_test.go
package extract_test

import (
	"fmt"
	"strings"
	"testing"

	fuzzheaders "github.com/AdaLogics/go-fuzz-headers"
	"go.uber.org/zap"

	"github.com/auditlens/auditlens/internal/extract"
)

// FuzzExtract feeds arbitrary and semi-structured report text through the
// extractor and checks the invariants that must hold for any input: no panic,
// no error except for blank input, every issue fully classified, and a stable
// result on re-extraction.
func FuzzExtract(f *testing.F) {
	f.Add([]byte("# High Issues\n### H-1: Something\n- Found in src/A.sol [Line: 1]\n"))
	f.Add([]byte("# Medium Issues\n### M-1:\nM-1: title line\n```\ncode\n```\n"))
	f.Add([]byte("no structure at all"))
	f.Add([]byte(""))

	f.Fuzz(func(t *testing.T, data []byte) {
		consumer := fuzzheaders.NewConsumer(data)

		// Interleave raw fuzz text with report-shaped fragments so the parser
		// sees both garbage and near-valid structure.
		var sb strings.Builder
		for i := 0; i < 4; i++ {
			chunk, err := consumer.GetString()
			if err != nil {
				break
			}
			sb.WriteString(chunk)
			line, err := consumer.GetInt()
			if err != nil {
				break
			}
			fmt.Fprintf(&sb, "\n### H-%d: fuzzed\n- Found in src/F.sol [Line: %d]\n", i+1, line%100000)
		}
		text := sb.String() + string(data)

		ex := extract.New(200, zap.NewNop())
		res, err := ex.Extract(text)
		if err != nil {
			if strings.TrimSpace(text) != "" {
				t.Fatalf("non-blank input must not fail: %v", err)
			}
			return
		}

		for _, issue := range res.Issues {
			if issue.ID == "" || issue.Title == "" {
				t.Fatalf("issue missing identity: %+v", issue)
			}
			if issue.FixSuggestion == "" {
				t.Fatalf("issue %s has empty fix suggestion", issue.ID)
			}
			if len(issue.Description) > 200 {
				t.Fatalf("issue %s description exceeds cap: %d bytes", issue.ID, len(issue.Description))
			}
		}

		again, err := ex.Extract(text)
		if err != nil {
			t.Fatalf("re-extraction failed: %v", err)
		}
		if len(again.Issues) != len(res.Issues) || again.Anomalies != res.Anomalies {
			t.Fatalf("extraction is not deterministic: %d/%d issues, %d/%d anomalies",
				len(res.Issues), len(again.Issues), res.Anomalies, again.Anomalies)
		}
	})
}
