// Package export writes flat CSV rows for spreadsheets.
package export

import (
	"context"
	"fmt"
	"io"

	"fjacquet/gl-analyzer/cmd/common"
	"fjacquet/gl-analyzer/cmd/root"
	"fjacquet/gl-analyzer/internal/checks"
	"fjacquet/gl-analyzer/internal/comparator"
	"fjacquet/gl-analyzer/internal/container"
	"fjacquet/gl-analyzer/internal/export"
	"fjacquet/gl-analyzer/internal/materiality"

	"github.com/spf13/cobra"
)

// Exportable views.
const (
	ViewPnL         = "pnl"
	ViewBalance     = "balance"
	ViewKPI         = "kpi"
	ViewMateriality = "materiality"
	ViewChecks      = "checks"
	ViewComparison  = "comparison"
)

var view string

// Cmd represents the export command
var Cmd = &cobra.Command{
	Use:   "export",
	Short: "Export a view as CSV",
	Long: `Export one view as CSV rows (section, label, value) using the configured
delimiter. Views: pnl, balance, kpi, materiality, checks, comparison.

Example:
  gl-analyzer export -i grootboek.csv -y 2024 --view pnl -o pnl.csv`,
	RunE: func(cmd *cobra.Command, args []string) error {
		f := root.SharedFlags
		return Run(cmd.Context(), root.GetContainer(), f.Input, f.Year, view, f.Output, cmd.OutOrStdout())
	},
}

func init() {
	Cmd.Flags().StringVar(&view, "view", ViewPnL, "View to export")
}

// Run exports view of year to output, or to w when output is empty.
func Run(ctx context.Context, c *container.Container, input, year, view, output string, w io.Writer) error {
	r, err := common.Load(ctx, c, input, year)
	if err != nil {
		return err
	}

	cfg := c.GetConfig()
	lang := cfg.Analysis.Language
	delimiter := rune(cfg.CSV.Delimiter[0])

	if view == ViewComparison {
		a, b, err := common.CompareYears(c, r.Ledger.Records, "", "")
		if err != nil {
			return err
		}
		snapA, snapB := r.SnapshotFor(c, a), r.SnapshotFor(c, b)
		sections := comparator.CompareAll(comparator.PnLSections, snapA, snapB)
		sections = append(sections, comparator.CompareAll(comparator.BalanceSections, snapA, snapB)...)
		lines := export.ComparisonLines(sections, lang)
		if output != "" {
			return export.WriteFile(lines, output, delimiter, c.GetLogger())
		}
		return export.Write(w, lines, delimiter)
	}

	var rows []export.Row
	switch view {
	case ViewPnL:
		rows = export.ProfitAndLossRows(r.Snapshot, lang)
	case ViewBalance:
		rows = export.BalanceSheetRows(r.Snapshot, lang)
	case ViewKPI:
		items := c.GetKPIEngine().Compute(r.Snapshot, r.Session.KPIAdjustments)
		rows = append(export.KPIRows(items), export.GoalRows(r.Session.Goals)...)
	case ViewMateriality:
		res, err := materiality.Calculate(r.Snapshot, c.MaterialitySettings(r.Session))
		if err != nil {
			return err
		}
		rows = export.MaterialityRows(res)
	case ViewChecks:
		var dep checks.DepreciationCheck
		if prev, ok := r.PreviousYear(); ok {
			dep = checks.ReconcileDepreciation(r.SnapshotFor(c, prev), r.Snapshot)
		}
		rows = export.CheckRows(dep, checks.ValidateTotals(r.Ledger.Totals, r.Snapshot, r.Year))
	default:
		return fmt.Errorf("unknown view: %s", view)
	}

	if output != "" {
		return export.WriteFile(rows, output, delimiter, c.GetLogger())
	}
	return export.Write(w, rows, delimiter)
}
