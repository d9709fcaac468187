// -- cmd/convert.go --
package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/auditlens/auditlens/internal/config"
	"github.com/auditlens/auditlens/internal/observability"
	"github.com/auditlens/auditlens/internal/reporting"
)

// newConvertCmd creates and configures the `convert` command.
func newConvertCmd() *cobra.Command {
	var outputPath string

	convertCmd := &cobra.Command{
		Use:   "convert <report.md>",
		Short: "Convert a markdown report into a static styled HTML document",
		Long: `Applies the minimal structural markdown transform (headings, bold, fenced
code blocks with syntax highlighting, inline code, tables, paragraphs) and
wraps the result in a styled, self-contained HTML page.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := configFromContext(cmd.Context())
			if err != nil {
				return err
			}
			return runConvert(cfg, args[0], outputPath)
		},
	}

	convertCmd.Flags().StringVarP(&outputPath, "output", "o", "", "output path (default <report>.html)")

	return convertCmd
}

// runConvert contains the core, testable logic for the convert command.
func runConvert(cfg *config.Config, reportPath, outputPath string) error {
	logger := observability.GetLogger()

	raw, err := os.ReadFile(reportPath)
	if err != nil {
		return fmt.Errorf("failed to read report %s: %w", reportPath, err)
	}
	if strings.TrimSpace(string(raw)) == "" {
		return fmt.Errorf("report %s is empty", reportPath)
	}

	if outputPath == "" {
		outputPath = strings.TrimSuffix(reportPath, filepath.Ext(reportPath)) + ".html"
	}

	// Stage the document and rename into place on success so a failed render
	// never leaves a partial file at the destination.
	tmpPath := outputPath + ".tmp"
	out, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("failed to create output file %s: %w", outputPath, err)
	}

	renderErr := reporting.RenderStatic(out, string(raw), reporting.Options{
		Title:       cfg.Render.Title,
		ToolVersion: Version,
	})
	closeErr := out.Close()
	if renderErr != nil || closeErr != nil {
		os.Remove(tmpPath)
		if renderErr != nil {
			return renderErr
		}
		return fmt.Errorf("failed to finalize output file %s: %w", outputPath, closeErr)
	}
	if err := os.Rename(tmpPath, outputPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to finalize output file %s: %w", outputPath, err)
	}

	logger.Info("Static report written", zap.String("path", outputPath))
	return nil
}
