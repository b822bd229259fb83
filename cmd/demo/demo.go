// Package demo writes a generated two-year demo ledger.
package demo

import (
	"fmt"
	"time"

	"fjacquet/gl-analyzer/cmd/root"
	"fjacquet/gl-analyzer/internal/container"
	"fjacquet/gl-analyzer/internal/demo"
	"fjacquet/gl-analyzer/internal/logging"

	"github.com/spf13/cobra"
)

var seed uint64

// Cmd represents the demo command
var Cmd = &cobra.Command{
	Use:   "demo",
	Short: "Write a demo ledger",
	Long: `Write a generated ledger covering every report section for the given year
(default: the current year) and the year before. The same seed always gives the
same ledger.

Example:
  gl-analyzer demo -o demo.csv -y 2024 --lang en`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c := root.GetContainer()
		return Run(c, root.SharedFlags.Year, c.GetConfig().Analysis.Language, seed, root.SharedFlags.Output)
	},
}

func init() {
	Cmd.Flags().Uint64Var(&seed, "seed", 42, "Random seed")
}

// Run writes the demo ledger to output.
func Run(c *container.Container, year, lang string, seed uint64, output string) error {
	if output == "" {
		return fmt.Errorf("an output file is required (--output)")
	}

	y := time.Now().Year()
	if year != "" {
		if _, err := fmt.Sscanf(year, "%d", &y); err != nil {
			return fmt.Errorf("invalid year %q: %w", year, err)
		}
	}

	records := demo.Generate(demo.Options{Year: y, Language: lang, Seed: seed})
	if err := c.GetParser().WriteFile(records, output); err != nil {
		return err
	}

	c.GetLogger().Info("Demo ledger written",
		logging.F(logging.FieldOutputFile, output),
		logging.F(logging.FieldCount, len(records)),
		logging.F(logging.FieldYear, y))
	return nil
}
