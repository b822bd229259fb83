// Package summary asks the AI model for a narrative summary of a period.
package summary

import (
	"context"
	"fmt"
	"io"

	"fjacquet/gl-analyzer/cmd/common"
	"fjacquet/gl-analyzer/cmd/root"
	"fjacquet/gl-analyzer/internal/container"
	"fjacquet/gl-analyzer/internal/report"

	"github.com/spf13/cobra"
)

// Cmd represents the summary command
var Cmd = &cobra.Command{
	Use:   "summary",
	Short: "Write an AI narrative of a period",
	Long: `Send the key figures of a period to Gemini and print a short narrative.
Requires ai.enabled and GEMINI_API_KEY.

Example:
  GLA_AI_ENABLED=true gl-analyzer summary -i grootboek.csv -y 2024`,
	RunE: func(cmd *cobra.Command, args []string) error {
		f := root.SharedFlags
		return Run(cmd.Context(), root.GetContainer(), f.Input, f.Year, f.Format, f.Output, cmd.OutOrStdout())
	},
}

// Run summarises year. A failing model call is logged and yields an empty summary.
func Run(ctx context.Context, c *container.Container, input, year, format, output string, w io.Writer) error {
	if !c.GetConfig().AI.Enabled {
		return fmt.Errorf("AI summary is disabled (set ai.enabled and GEMINI_API_KEY)")
	}

	r, err := common.Load(ctx, c, input, year)
	if err != nil {
		return err
	}

	text, err := c.GetSummarizer().Summarize(ctx, r.Snapshot, c.GetConfig().Analysis.Language)
	if err != nil {
		c.GetLogger().WithError(err).Warn("AI summary failed")
		text = ""
	}

	if format == report.FormatText || format == "" {
		return common.WriteOutput(c.GetLogger(), []byte(text+"\n"), output, w)
	}
	return common.Render(c, report.Analysis{Period: r.Year, Summary: text}, format, output, w)
}
