// Package check reconciles depreciation between years and validates the
// computed totals against the totals in the ledger export.
package check

import (
	"context"
	"fmt"
	"io"

	"fjacquet/gl-analyzer/cmd/common"
	"fjacquet/gl-analyzer/cmd/root"
	"fjacquet/gl-analyzer/internal/checks"
	"fjacquet/gl-analyzer/internal/container"
	"fjacquet/gl-analyzer/internal/export"
	"fjacquet/gl-analyzer/internal/logging"
	"fjacquet/gl-analyzer/internal/report"

	"github.com/spf13/cobra"
)

// Cmd represents the check command
var Cmd = &cobra.Command{
	Use:   "check",
	Short: "Run the depreciation reconciliation and source total checks",
	Long: `Compare the movement of accumulated depreciation on the balance sheet with
the depreciation charged in the profit & loss, validate the section totals of
the export against the computed ones and flag misplaced items.

The year defaults to the most recent year in the ledger; it is reconciled
against the year before.

Example:
  gl-analyzer check -i grootboek.csv -y 2024`,
	RunE: func(cmd *cobra.Command, args []string) error {
		f := root.SharedFlags
		return Run(cmd.Context(), root.GetContainer(), f.Input, f.Year, f.Format, f.Output, cmd.OutOrStdout())
	},
}

// Run checks year against the year before it.
func Run(ctx context.Context, c *container.Container, input, year, format, output string, w io.Writer) error {
	r, err := common.Load(ctx, c, input, year)
	if err != nil {
		return err
	}

	if r.Year == "" {
		_, latest, err := common.CompareYears(c, r.Ledger.Records, "", "")
		if err != nil {
			return fmt.Errorf("depreciation check: %w", err)
		}
		r.Year = latest
		r.Snapshot = r.SnapshotFor(c, latest)
	}

	prev, ok := r.PreviousYear()
	if !ok {
		return fmt.Errorf("depreciation check needs %s and the year before it", r.Year)
	}

	dep := checks.ReconcileDepreciation(r.SnapshotFor(c, prev), r.Snapshot)
	totals := checks.ValidateTotals(r.Ledger.Totals, r.Snapshot, r.Year)
	flags := checks.FlagItems(r.Snapshot)

	logger := c.GetLogger()
	if !dep.Match {
		logger.Warn("Depreciation does not reconcile",
			logging.F(logging.FieldYear, r.Year),
			logging.F("difference", dep.Difference.StringFixed(2)))
	}
	for _, t := range totals {
		if !t.Match {
			logger.Warn("Source total mismatch",
				logging.F("section", t.Section),
				logging.F("difference", t.Difference.StringFixed(2)))
		}
	}

	return common.Render(c, report.Analysis{
		Period:       r.Year,
		ComparedWith: prev,
		Depreciation: &dep,
		TotalChecks:  totals,
		Flags:        flags,
		Rows:         export.CheckRows(dep, totals),
	}, format, output, w)
}
