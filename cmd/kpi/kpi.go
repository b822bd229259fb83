// Package kpi shows the fixed KPIs, manages their adjustments and lists the custom goals.
package kpi

import (
	"context"
	"fmt"
	"io"

	"fjacquet/gl-analyzer/cmd/common"
	"fjacquet/gl-analyzer/cmd/root"
	"fjacquet/gl-analyzer/internal/container"
	"fjacquet/gl-analyzer/internal/export"
	"fjacquet/gl-analyzer/internal/kpi"
	"fjacquet/gl-analyzer/internal/logging"
	"fjacquet/gl-analyzer/internal/report"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// Cmd represents the kpi command
var Cmd = &cobra.Command{
	Use:   "kpi",
	Short: "Show the KPI dashboard of a period",
	Long: `Show liquidity buffer, AR vs AP, EBITDA, OPEX ratio and recurring cost
ratio of a period, each with its status, formula and breakdown, followed by the
custom goals.

Example:
  gl-analyzer kpi -i grootboek.csv -y 2024
  gl-analyzer kpi adjust ebitda 2500`,
	RunE: func(cmd *cobra.Command, args []string) error {
		f := root.SharedFlags
		return Run(cmd.Context(), root.GetContainer(), f.Input, f.Year, f.Format, f.Output, cmd.OutOrStdout())
	},
}

var adjustCmd = &cobra.Command{
	Use:   "adjust <key> <amount>",
	Short: "Set a manual KPI adjustment (amount 0 removes it)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return Adjust(cmd.Context(), root.GetContainer(), args[0], args[1])
	},
}

func init() {
	adjustCmd.Long = fmt.Sprintf("Set a manual KPI adjustment. Known keys: %v", kpi.AdjustmentKeys())
	Cmd.AddCommand(adjustCmd)
}

// Run computes the KPIs of year and renders them with the goals.
func Run(ctx context.Context, c *container.Container, input, year, format, output string, w io.Writer) error {
	r, err := common.Load(ctx, c, input, year)
	if err != nil {
		return err
	}

	items := c.GetKPIEngine().Compute(r.Snapshot, r.Session.KPIAdjustments)
	rows := append(export.KPIRows(items), export.GoalRows(r.Session.Goals)...)

	return common.Render(c, report.Analysis{
		Period: r.Year,
		KPIs:   items,
		Goals:  r.Session.Goals,
		Rows:   rows,
	}, format, output, w)
}

// Adjust stores a KPI adjustment in the session.
func Adjust(ctx context.Context, c *container.Container, key, amount string) error {
	if err := kpi.ValidateAdjustmentKey(key); err != nil {
		return err
	}
	v, err := decimal.NewFromString(amount)
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", amount, err)
	}

	s := c.GetStore()
	sess, err := s.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}
	if v.IsZero() {
		delete(sess.KPIAdjustments, key)
	} else {
		sess.KPIAdjustments[key] = v
	}
	if err := s.Save(ctx, sess); err != nil {
		return err
	}

	c.GetLogger().Info("KPI adjustment updated",
		logging.F(logging.FieldKPI, key),
		logging.F(logging.FieldAmount, v.String()))
	return nil
}
