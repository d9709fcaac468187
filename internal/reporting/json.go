// -- internal/reporting/json.go --
package reporting

import (
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"

	"github.com/auditlens/auditlens/api/schemas"
	"github.com/auditlens/auditlens/internal/observability"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// JSONReporter writes the envelope as pretty-printed JSON. It is the
// machine-readable counterpart of the HTML view and carries the exact same
// normalized model.
type JSONReporter struct {
	writer io.WriteCloser
	logger *zap.Logger
}

// NewJSONReporter creates a reporter that writes JSON output. It takes
// ownership of the writer.
func NewJSONReporter(writer io.WriteCloser) *JSONReporter {
	return &JSONReporter{
		writer: writer,
		logger: observability.GetLogger().Named("json_reporter"),
	}
}

// Write serializes the envelope to the output.
func (r *JSONReporter) Write(env *schemas.Envelope) error {
	data, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize report to JSON: %w", err)
	}
	data = append(data, '\n')
	if _, err := r.writer.Write(data); err != nil {
		return fmt.Errorf("failed to write JSON report: %w", err)
	}
	r.logger.Debug("Wrote JSON report", zap.Int("issues", len(env.Issues)))
	return nil
}

// Close closes the underlying writer.
func (r *JSONReporter) Close() error {
	if err := r.writer.Close(); err != nil {
		return fmt.Errorf("failed to close output writer: %w", err)
	}
	return nil
}
