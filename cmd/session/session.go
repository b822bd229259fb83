// Package session inspects and resets the stored session.
package session

import (
	"context"
	"io"

	"fjacquet/gl-analyzer/cmd/common"
	"fjacquet/gl-analyzer/cmd/root"
	"fjacquet/gl-analyzer/internal/container"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Cmd represents the session command
var Cmd = &cobra.Command{
	Use:   "session",
	Short: "Show or reset the stored session",
	Long: `The session holds category overrides, item order, KPI adjustments, custom
goals and materiality settings between runs.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return Show(cmd.Context(), root.GetContainer(), root.SharedFlags.Output, cmd.OutOrStdout())
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all session data",
	RunE: func(cmd *cobra.Command, args []string) error {
		return root.GetContainer().GetStore().Reset(cmd.Context())
	},
}

func init() {
	Cmd.AddCommand(resetCmd)
}

// Show prints the session as YAML.
func Show(ctx context.Context, c *container.Container, output string, w io.Writer) error {
	sess, err := c.GetStore().Load(ctx)
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(sess)
	if err != nil {
		return err
	}
	return common.WriteOutput(c.GetLogger(), data, output, w)
}
