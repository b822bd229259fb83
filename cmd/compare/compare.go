// Package compare compares the report sections of two years.
package compare

import (
	"context"
	"io"

	"fjacquet/gl-analyzer/cmd/common"
	"fjacquet/gl-analyzer/cmd/root"
	"fjacquet/gl-analyzer/internal/comparator"
	"fjacquet/gl-analyzer/internal/container"
	"fjacquet/gl-analyzer/internal/export"
	"fjacquet/gl-analyzer/internal/report"

	"github.com/spf13/cobra"
)

var (
	yearA string
	yearB string
)

// Cmd represents the compare command
var Cmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare two years section by section",
	Long: `Compare every profit & loss and balance sheet section of two years.
Without --year-a/--year-b the two most recent years of the ledger are used.

Example:
  gl-analyzer compare -i grootboek.csv --year-a 2023 --year-b 2024`,
	RunE: func(cmd *cobra.Command, args []string) error {
		f := root.SharedFlags
		return Run(cmd.Context(), root.GetContainer(), f.Input, yearA, yearB, f.Format, f.Output, cmd.OutOrStdout())
	},
}

func init() {
	Cmd.Flags().StringVar(&yearA, "year-a", "", "Base year")
	Cmd.Flags().StringVar(&yearB, "year-b", "", "Year compared against the base year")
}

// Run compares years a and b of the ledger at input.
func Run(ctx context.Context, c *container.Container, input, a, b, format, output string, w io.Writer) error {
	r, err := common.Load(ctx, c, input, "")
	if err != nil {
		return err
	}

	a, b, err = common.CompareYears(c, r.Ledger.Records, a, b)
	if err != nil {
		return err
	}
	snapA := r.SnapshotFor(c, a)
	snapB := r.SnapshotFor(c, b)

	sections := comparator.CompareAll(comparator.PnLSections, snapA, snapB)
	sections = append(sections, comparator.CompareAll(comparator.BalanceSections, snapA, snapB)...)

	lang := c.GetConfig().Analysis.Language
	var rows []export.Row
	for _, sc := range sections {
		title := sc.Section.Bucket.Title(lang)
		rows = append(rows,
			export.Row{Section: title, Label: a, Value: sc.Totals.Val1},
			export.Row{Section: title, Label: b, Value: sc.Totals.Val2},
			export.Row{Section: title, Label: "%", Value: sc.Totals.DiffPct.Round(1)},
		)
	}

	return common.Render(c, report.Analysis{
		Period:       b,
		ComparedWith: a,
		Comparison:   sections,
		Rows:         rows,
	}, format, output, w)
}
