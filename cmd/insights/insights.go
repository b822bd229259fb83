// Package insights shows the financial key overview and the health check.
package insights

import (
	"context"
	"io"

	"fjacquet/gl-analyzer/cmd/common"
	"fjacquet/gl-analyzer/cmd/root"
	"fjacquet/gl-analyzer/internal/container"
	"fjacquet/gl-analyzer/internal/export"
	"fjacquet/gl-analyzer/internal/insights"
	"fjacquet/gl-analyzer/internal/models"
	"fjacquet/gl-analyzer/internal/report"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// Cmd represents the insights command
var Cmd = &cobra.Command{
	Use:   "insights",
	Short: "Show monthly averages and the profit/cost health check",
	Long: `Show average revenue, costs and investments per month, available cash and
the health check zone (healthy, risk, critical) derived from net margin and
cost ratio. Investments are measured against the year before when present.

Example:
  gl-analyzer insights -i grootboek.csv -y 2024`,
	RunE: func(cmd *cobra.Command, args []string) error {
		f := root.SharedFlags
		return Run(cmd.Context(), root.GetContainer(), f.Input, f.Year, f.Format, f.Output, cmd.OutOrStdout())
	},
}

// Run renders the overview and health check of year.
func Run(ctx context.Context, c *container.Container, input, year, format, output string, w io.Writer) error {
	r, err := common.Load(ctx, c, input, year)
	if err != nil {
		return err
	}

	var prev *models.PeriodSnapshot
	if y, ok := r.PreviousYear(); ok {
		p := r.SnapshotFor(c, y)
		prev = &p
	}

	overview := insights.BuildOverview(r.Snapshot, prev, c.GetConfig().Analysis.AnnualMode)
	health := insights.Check(r.Snapshot)

	rows := []export.Row{
		{Section: "Overview", Label: "Months", Value: decimal.NewFromInt(int64(overview.Months))},
		{Section: "Overview", Label: "AvgRevenuePerMonth", Value: overview.AvgRevenuePerMonth},
		{Section: "Overview", Label: "AvgCostPerMonth", Value: overview.AvgCostPerMonth},
		{Section: "Overview", Label: "InvestmentsPerMonth", Value: overview.InvestmentsPerMonth},
		{Section: "Overview", Label: "AvailableCash", Value: overview.AvailableCash},
		{Section: "Health " + string(health.Zone), Label: "NetMarginPct", Value: health.NetMarginPct},
		{Section: "Health " + string(health.Zone), Label: "CostPct", Value: health.CostPct},
		{Section: "Health " + string(health.Zone), Label: "TaxAmount", Value: health.TaxAmount},
	}

	return common.Render(c, report.Analysis{
		Period:   r.Year,
		Overview: &overview,
		Health:   &health,
		Rows:     rows,
	}, format, output, w)
}
