// -- cmd/convert_test.go --
package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRunConvert verifies the markdown-to-static-HTML conversion with the
// default derived output path.
func TestRunConvert(t *testing.T) {
	dir := t.TempDir()
	report := writeReport(t, dir, "report.md")

	require.NoError(t, runConvert(testConfig(), report, ""))

	data, err := os.ReadFile(filepath.Join(dir, "report.html"))
	require.NoError(t, err)
	out := string(data)

	assert.Contains(t, out, "<h1>High Issues</h1>")
	assert.Contains(t, out, "<h3>H-1:")
	assert.Contains(t, out, "<table>")
	assert.Contains(t, out, "Audit Report")
}

// TestRunConvert_ExplicitOutput verifies the -o path is honored.
func TestRunConvert_ExplicitOutput(t *testing.T) {
	dir := t.TempDir()
	report := writeReport(t, dir, "report.md")
	out := filepath.Join(dir, "converted.html")

	require.NoError(t, runConvert(testConfig(), report, out))

	_, err := os.Stat(out)
	assert.NoError(t, err)
}

// TestRunConvert_EmptyReport verifies blank input is rejected.
func TestRunConvert_EmptyReport(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.md")
	require.NoError(t, os.WriteFile(path, []byte("\n\t\n"), 0o644))

	err := runConvert(testConfig(), path, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is empty")
}

// TestRunConvert_NoPartialOutput verifies a conversion that cannot complete
// leaves nothing at the destination, staged file included.
func TestRunConvert_NoPartialOutput(t *testing.T) {
	dir := t.TempDir()
	report := writeReport(t, dir, "report.md")
	dest := filepath.Join(dir, "missing-dir", "out.html")

	err := runConvert(testConfig(), report, dest)
	require.Error(t, err)
	assert.NoFileExists(t, dest)
	assert.NoFileExists(t, dest+".tmp")
}

// TestRunConvert_MissingFile verifies the read failure is surfaced.
func TestRunConvert_MissingFile(t *testing.T) {
	err := runConvert(testConfig(), filepath.Join(t.TempDir(), "absent.md"), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read report")
}
