// Package analyze renders the profit & loss and the balance sheet of one period.
package analyze

import (
	"context"
	"io"

	"fjacquet/gl-analyzer/cmd/common"
	"fjacquet/gl-analyzer/cmd/root"
	"fjacquet/gl-analyzer/internal/checks"
	"fjacquet/gl-analyzer/internal/container"
	"fjacquet/gl-analyzer/internal/export"
	"fjacquet/gl-analyzer/internal/report"

	"github.com/spf13/cobra"
)

// Cmd represents the analyze command
var Cmd = &cobra.Command{
	Use:   "analyze",
	Short: "Show the profit & loss and balance sheet of a ledger",
	Long: `Classify every line of a ledger export and show the profit & loss and
balance sheet sections with their totals. Items that look misplaced are flagged.

Example:
  gl-analyzer analyze -i grootboek.csv -y 2024 --format json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		f := root.SharedFlags
		return Run(cmd.Context(), root.GetContainer(), f.Input, f.Year, f.Format, f.Output, cmd.OutOrStdout())
	},
}

// Run analyses input and renders the result.
func Run(ctx context.Context, c *container.Container, input, year, format, output string, w io.Writer) error {
	r, err := common.Load(ctx, c, input, year)
	if err != nil {
		return err
	}

	lang := c.GetConfig().Analysis.Language
	rows := export.ProfitAndLossRows(r.Snapshot, lang)
	rows = append(rows, export.BalanceSheetRows(r.Snapshot, lang)...)

	return common.Render(c, report.Analysis{
		Period:   r.Year,
		Snapshot: &r.Snapshot,
		Flags:    checks.FlagItems(r.Snapshot),
		Rows:     rows,
	}, format, output, w)
}
