// Package batch analyses every ledger file of a directory
package batch

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"fjacquet/gl-analyzer/cmd/common"
	"fjacquet/gl-analyzer/cmd/root"
	internalcommon "fjacquet/gl-analyzer/internal/common"
	"fjacquet/gl-analyzer/internal/container"
	"fjacquet/gl-analyzer/internal/export"
	"fjacquet/gl-analyzer/internal/logging"
	"fjacquet/gl-analyzer/internal/report"
	"fjacquet/gl-analyzer/internal/validation"

	"github.com/spf13/cobra"
)

// Cmd represents the batch command
var Cmd = &cobra.Command{
	Use:   "batch",
	Short: "Analyse every ledger file of a directory",
	Long: `Analyse every .csv ledger in the input directory concurrently
(batch.workers at a time). With an output directory one report per ledger is
written there; otherwise a summary line per ledger is printed.

Example:
  gl-analyzer batch -i exports/ -o reports/ --format json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		f := root.SharedFlags
		return Run(cmd.Context(), root.GetContainer(), f.Input, f.Year, f.Format, f.Output, cmd.OutOrStdout())
	},
}

// Run analyses inputDir.
func Run(ctx context.Context, c *container.Container, inputDir, year, format, outputDir string, w io.Writer) error {
	if inputDir == "" {
		return fmt.Errorf("an input directory is required (--input)")
	}
	if err := validation.IsValidInputDir(inputDir); err != nil {
		return err
	}
	if err := validation.IsValidYear(year); err != nil {
		return err
	}

	sess, err := c.GetStore().Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}

	results, err := c.GetBatchAnalyzer().AnalyzeDir(ctx, inputDir, c.AnalysisOptions(sess, year))
	if err != nil {
		return err
	}

	if outputDir != "" {
		if err := os.MkdirAll(outputDir, 0750); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	ext := format
	if ext == "" || ext == report.FormatText {
		ext = "txt"
	}

	written := 0
	for _, r := range results {
		if r.Err != nil {
			if _, err := fmt.Fprintf(w, "%s\tERROR\t%v\n", filepath.Base(r.File), r.Err); err != nil {
				return err
			}
			continue
		}
		if outputDir == "" {
			if _, err := fmt.Fprintf(w, "%s\t%d records\tnet income %s\n",
				filepath.Base(r.File), r.Records, r.Snapshot.NetIncome.Neg().StringFixed(2)); err != nil {
				return err
			}
			continue
		}

		lang := c.GetConfig().Analysis.Language
		snap := r.Snapshot
		rows := append(export.ProfitAndLossRows(snap, lang), export.BalanceSheetRows(snap, lang)...)
		path := filepath.Join(outputDir, internalcommon.OutputFileName(r.File, "report", ext))
		if err := common.Render(c, report.Analysis{Period: snap.Period, Snapshot: &snap, Rows: rows}, format, path, w); err != nil {
			return err
		}
		written++
	}

	c.GetLogger().Info("Batch processing completed",
		logging.F(logging.FieldCount, len(results)),
		logging.F("written", written))
	return nil
}
