// Package materiality calculates audit materiality and stores its settings.
package materiality

import (
	"context"
	"fmt"
	"io"

	"fjacquet/gl-analyzer/cmd/common"
	"fjacquet/gl-analyzer/cmd/root"
	"fjacquet/gl-analyzer/internal/container"
	"fjacquet/gl-analyzer/internal/export"
	"fjacquet/gl-analyzer/internal/materiality"
	"fjacquet/gl-analyzer/internal/models"
	"fjacquet/gl-analyzer/internal/report"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// Settings are the command-line overrides; empty fields keep the stored value.
type Settings struct {
	Benchmark   string
	Percentage  string
	RiskProfile string
	Save        bool
}

var flags Settings

// Cmd represents the materiality command
var Cmd = &cobra.Command{
	Use:   "materiality",
	Short: "Calculate audit materiality",
	Long: `Calculate initial materiality, the risk-adjusted materiality and the
tolerable error from a benchmark (revenue, assets or result), a percentage
between 0.1 and 5 and a risk profile (low, medium, high).

Example:
  gl-analyzer materiality -i grootboek.csv --benchmark assets --percentage 2 --risk low --save`,
	RunE: func(cmd *cobra.Command, args []string) error {
		f := root.SharedFlags
		return Run(cmd.Context(), root.GetContainer(), f.Input, f.Year, flags, f.Format, f.Output, cmd.OutOrStdout())
	},
}

func init() {
	Cmd.Flags().StringVar(&flags.Benchmark, "benchmark", "", "revenue, assets or result")
	Cmd.Flags().StringVar(&flags.Percentage, "percentage", "", "Percentage of the benchmark (0.1 - 5)")
	Cmd.Flags().StringVar(&flags.RiskProfile, "risk", "", "low, medium or high")
	Cmd.Flags().BoolVar(&flags.Save, "save", false, "Store the settings in the session")
}

// Resolve applies the overrides in s to base.
func Resolve(base models.MaterialitySettings, s Settings) (models.MaterialitySettings, error) {
	out := base
	if s.Benchmark != "" {
		b, err := models.ParseBenchmark(s.Benchmark)
		if err != nil {
			return out, err
		}
		out.Benchmark = b
	}
	if s.Percentage != "" {
		p, err := decimal.NewFromString(s.Percentage)
		if err != nil {
			return out, fmt.Errorf("invalid percentage %q: %w", s.Percentage, err)
		}
		out.Percentage = p
	}
	if s.RiskProfile != "" {
		r, err := models.ParseRiskProfile(s.RiskProfile)
		if err != nil {
			return out, err
		}
		out.RiskProfile = r
	}
	return out, materiality.Validate(out)
}

// Run calculates materiality for year, optionally saving the settings.
func Run(ctx context.Context, c *container.Container, input, year string, s Settings, format, output string, w io.Writer) error {
	r, err := common.Load(ctx, c, input, year)
	if err != nil {
		return err
	}

	settings, err := Resolve(c.MaterialitySettings(r.Session), s)
	if err != nil {
		return err
	}

	res, err := materiality.Calculate(r.Snapshot, settings)
	if err != nil {
		return err
	}

	if s.Save {
		settings.Saved = true
		r.Session.Materiality = settings
		if err := c.GetStore().Save(ctx, r.Session); err != nil {
			return err
		}
	}

	return common.Render(c, report.Analysis{
		Period:      r.Year,
		Materiality: &res,
		Rows:        export.MaterialityRows(res),
	}, format, output, w)
}
