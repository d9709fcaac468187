// -- cmd/render.go --
package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/auditlens/auditlens/api/schemas"
	"github.com/auditlens/auditlens/internal/aggregate"
	"github.com/auditlens/auditlens/internal/config"
	"github.com/auditlens/auditlens/internal/extract"
	"github.com/auditlens/auditlens/internal/observability"
	"github.com/auditlens/auditlens/internal/reporting"
)

// newRenderCmd creates and configures the `render` command.
func newRenderCmd() *cobra.Command {
	var (
		format     string
		outputPath string
		noColor    bool
		noConsole  bool
	)

	renderCmd := &cobra.Command{
		Use:   "render <report.md> [more-reports...]",
		Short: "Parse audit reports and render summaries",
		Long: `Parses one or more markdown audit reports into normalized issue records,
prints a console summary for each, and writes an interactive HTML document
(or JSON) per report. Reports are independent and processed in parallel.`,
		Args: cobra.MinimumNArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			// Flag -> viper binding so CLI values override file and env config.
			if err := viper.BindPFlag("render.console_cap", cmd.Flags().Lookup("console-cap")); err != nil {
				return err
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := configFromContext(ctx)
			if err != nil {
				return err
			}
			cfg.Render.ConsoleCap = viper.GetInt("render.console_cap")

			if outputPath != "" && len(args) > 1 {
				return fmt.Errorf("--output is only valid with a single report; got %d", len(args))
			}
			if format != "html" && format != "json" {
				return fmt.Errorf("unsupported output format: %s", format)
			}

			return runRender(ctx, cfg, args, renderSettings{
				Format:     format,
				OutputPath: outputPath,
				NoColor:    noColor,
				NoConsole:  noConsole,
			})
		},
	}

	renderCmd.Flags().StringVarP(&format, "format", "f", "html", "document format: html or json")
	renderCmd.Flags().StringVarP(&outputPath, "output", "o", "", "output path (single report only; default <report>.<format>, 'stdout' allowed)")
	renderCmd.Flags().BoolVar(&noColor, "no-color", false, "disable colorized console output")
	renderCmd.Flags().BoolVar(&noConsole, "no-console", false, "skip the console summary")
	renderCmd.Flags().Int("console-cap", 5, "maximum issues shown per severity bucket")

	return renderCmd
}

// renderSettings centralizes the per-invocation options of the render command.
type renderSettings struct {
	Format     string
	OutputPath string
	NoColor    bool
	NoConsole  bool
}

// runRender contains the core, testable logic for the render command. Each
// report is a fully independent pipeline, so reports are processed
// concurrently and only the console output is serialized afterwards.
func runRender(ctx context.Context, cfg *config.Config, reports []string, settings renderSettings) error {
	logger := observability.GetLogger()
	envelopes := make([]*schemas.Envelope, len(reports))

	g, ctx := errgroup.WithContext(ctx)
	for i, path := range reports {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			env, err := processReport(cfg, path)
			if err != nil {
				return err
			}
			dest := settings.OutputPath
			if dest == "" {
				dest = derivedOutputPath(path, settings.Format)
			}
			if err := writeDocument(logger, env, settings.Format, dest, cfg.Render.Title); err != nil {
				return err
			}
			envelopes[i] = env
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	total := 0
	anomalies := 0
	for _, env := range envelopes {
		total += env.Aggregate.Total
		anomalies += env.Anomalies
	}
	logger.Info("Analysis completed",
		zap.Int("reports", len(reports)),
		zap.Int("issues", total),
		zap.Int("anomalies", anomalies),
	)

	if !settings.NoConsole {
		for _, env := range envelopes {
			reporting.PrintConsoleSummary(os.Stdout, env, reporting.ConsoleOptions{
				NoColor: settings.NoColor,
				Cap:     cfg.Render.ConsoleCap,
			})
		}
	}
	return nil
}

// processReport runs the extraction and aggregation pipeline for one report
// file and wraps the result in an envelope.
func processReport(cfg *config.Config, path string) (*schemas.Envelope, error) {
	logger := observability.GetLogger()

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read report %s: %w", path, err)
	}

	extractor := extract.New(cfg.Parser.MaxDescription, logger)
	result, err := extractor.Extract(string(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to extract issues from %s: %w", path, err)
	}

	env := &schemas.Envelope{
		RunID:       uuid.New().String(),
		GeneratedAt: time.Now(),
		Source:      path,
		Summary:     result.Summary,
		Aggregate:   aggregate.Compute(result.Issues),
		Issues:      result.Issues,
		Anomalies:   result.Anomalies,
	}

	logger.Info("Processed report",
		zap.String("source", path),
		zap.String("run_id", env.RunID),
		zap.Int("issues", env.Aggregate.Total),
		zap.Int("anomalies", env.Anomalies),
	)
	return env, nil
}

// writeDocument renders the envelope through the reporting factory. File
// output is staged next to the destination and renamed into place only after
// a successful render, so a failed run never leaves a partial document.
func writeDocument(logger *zap.Logger, env *schemas.Envelope, format, dest, title string) error {
	opts := reporting.Options{
		Title:       title,
		ToolVersion: Version,
	}

	toStdout := dest == "" || dest == "stdout"
	target := dest
	if !toStdout {
		target = dest + ".tmp"
	}
	discard := func() {
		if !toStdout {
			os.Remove(target)
		}
	}

	reporter, err := reporting.New(format, target, opts)
	if err != nil {
		discard()
		return fmt.Errorf("failed to initialize reporter: %w", err)
	}

	writeErr := reporter.Write(env)
	closeErr := reporter.Close()
	if writeErr != nil || closeErr != nil {
		discard()
		if writeErr != nil {
			return fmt.Errorf("failed to write report document: %w", writeErr)
		}
		return fmt.Errorf("failed to finalize report document: %w", closeErr)
	}

	if !toStdout {
		if err := os.Rename(target, dest); err != nil {
			discard()
			return fmt.Errorf("failed to finalize report document %s: %w", dest, err)
		}
		logger.Info("Report document written", zap.String("path", dest), zap.String("format", format))
	}
	return nil
}

// derivedOutputPath maps report.md to report.html (or .json) next to the
// input file.
func derivedOutputPath(reportPath, format string) string {
	base := strings.TrimSuffix(reportPath, filepath.Ext(reportPath))
	return base + "." + format
}
