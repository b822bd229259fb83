// Package root contains the root command for the application
package root

import (
	"fmt"

	"fjacquet/gl-analyzer/internal/config"
	"fjacquet/gl-analyzer/internal/container"
	"fjacquet/gl-analyzer/internal/logging"

	"github.com/spf13/cobra"
)

// CommonFlags represents the flags that are common to multiple commands
type CommonFlags struct {
	Input     string
	Output    string
	Year      string
	Format    string
	Language  string
	HideSmall bool
}

var (
	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "gl-analyzer",
		Short: "Classify a general ledger export into a P&L, a balance sheet and KPIs.",
		Long: `gl-analyzer reads a general ledger export (CSV), classifies every line into
fixed profit & loss and balance sheet sections and derives KPIs, year-on-year
comparisons, reconciliation checks and audit materiality.`,
		SilenceUsage:      true,
		PersistentPreRunE: setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if appContainer == nil {
				return
			}
			if err := appContainer.Close(); err != nil {
				appContainer.GetLogger().WithError(err).Warn("Failed to close resources")
			}
			appContainer = nil
		},
	}

	// SharedFlags holds the values of the persistent flags
	SharedFlags = CommonFlags{}

	appContainer *container.Container
)

// Init registers the persistent flags.
func Init() {
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Input, "input", "i", "", "Input ledger file")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Output, "output", "o", "", "Output file (stdout when empty)")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Year, "year", "y", "", "Year to analyse (all years when empty)")
	Cmd.PersistentFlags().StringVar(&SharedFlags.Format, "format", "text", "Output format: text, json or yaml")
	Cmd.PersistentFlags().StringVar(&SharedFlags.Language, "lang", "", "Language of titles: nl or en")
	Cmd.PersistentFlags().BoolVar(&SharedFlags.HideSmall, "hide-small", false, "Hide records below analysis.small_amount_filter")
}

func setup(cmd *cobra.Command, args []string) error {
	if appContainer != nil {
		return nil
	}

	if _, err := config.LoadEnv(); err != nil {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	cfg, err := config.InitializeConfig()
	if err != nil {
		return err
	}
	ApplyFlags(cmd, cfg)

	c, err := container.NewContainer(cfg)
	if err != nil {
		return err
	}
	appContainer = c

	c.GetLogger().Debug("Command started", logging.F(logging.FieldOperation, cmd.Name()))
	return nil
}

// ApplyFlags copies explicitly set flags over the loaded configuration.
func ApplyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("year") {
		cfg.Analysis.Year = SharedFlags.Year
	}
	if flags.Changed("hide-small") {
		cfg.Analysis.HideSmallAmounts = SharedFlags.HideSmall
	}
	if flags.Changed("lang") && (SharedFlags.Language == "nl" || SharedFlags.Language == "en") {
		cfg.Analysis.Language = SharedFlags.Language
	}
}

// GetContainer returns the container built for the running command.
func GetContainer() *container.Container {
	return appContainer
}

// SetContainer installs a container, bypassing configuration loading.
func SetContainer(c *container.Container) {
	appContainer = c
}
