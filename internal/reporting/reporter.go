// -- internal/reporting/reporter.go --
package reporting

import (
	"fmt"
	"io"
	"os"

	"github.com/auditlens/auditlens/api/schemas"
)

// Reporter defines the interface for writing a rendered report to an output.
type Reporter interface {
	// Write renders a single envelope.
	Write(env *schemas.Envelope) error
	// Close finalizes the report and closes any underlying resources (e.g., file handles).
	Close() error
}

// Options carries rendering settings shared by the document reporters.
type Options struct {
	// Title is the document title for the HTML reporters.
	Title string
	// ToolVersion is stamped into document footers.
	ToolVersion string
}

// nopWriteCloser wraps an io.Writer and provides a no-op Close method.
type nopWriteCloser struct {
	io.Writer
}

func (nwc *nopWriteCloser) Close() error {
	return nil
}

// New creates a reporter for the given format writing to outputPath. An empty
// path or "stdout" writes to standard output.
func New(format, outputPath string, opts Options) (Reporter, error) {
	var writer io.WriteCloser
	isStdOut := outputPath == "" || outputPath == "stdout"

	if isStdOut {
		// Wrap Stdout so Close() is a no-op.
		writer = &nopWriteCloser{os.Stdout}
	} else {
		f, err := os.Create(outputPath)
		if err != nil {
			return nil, fmt.Errorf("failed to create output file %s: %w", outputPath, err)
		}
		writer = f
	}

	cleanup := func() {
		if !isStdOut {
			writer.Close()
		}
	}

	switch format {
	case "html":
		// NewHTMLReporter takes ownership of the writer.
		return NewHTMLReporter(writer, opts), nil
	case "json":
		return NewJSONReporter(writer), nil
	default:
		cleanup()
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}
