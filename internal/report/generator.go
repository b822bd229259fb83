// Package report renders analysis results as JSON, YAML or a plain text table.
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"fjacquet/gl-analyzer/internal/checks"
	"fjacquet/gl-analyzer/internal/comparator"
	"fjacquet/gl-analyzer/internal/export"
	"fjacquet/gl-analyzer/internal/insights"
	"fjacquet/gl-analyzer/internal/logging"
	"fjacquet/gl-analyzer/internal/materiality"
	"fjacquet/gl-analyzer/internal/models"

	"gopkg.in/yaml.v3"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Analysis collects whatever a command computed. Empty parts are omitted.
type Analysis struct {
	Period       string                         `json:"period,omitempty" yaml:"period,omitempty"`
	ComparedWith string                         `json:"comparedWith,omitempty" yaml:"compared_with,omitempty"`
	Snapshot     *models.PeriodSnapshot         `json:"snapshot,omitempty" yaml:"snapshot,omitempty"`
	Comparison   []comparator.SectionComparison `json:"comparison,omitempty" yaml:"comparison,omitempty"`
	KPIs         []models.KPIItem               `json:"kpis,omitempty" yaml:"kpis,omitempty"`
	Goals        []models.Goal                  `json:"goals,omitempty" yaml:"goals,omitempty"`
	Materiality  *materiality.Result            `json:"materiality,omitempty" yaml:"materiality,omitempty"`
	Depreciation *checks.DepreciationCheck      `json:"depreciation,omitempty" yaml:"depreciation,omitempty"`
	TotalChecks  []checks.TotalCheck            `json:"totalChecks,omitempty" yaml:"total_checks,omitempty"`
	Flags        []checks.Flag                  `json:"flags,omitempty" yaml:"flags,omitempty"`
	Overview     *insights.Overview             `json:"overview,omitempty" yaml:"overview,omitempty"`
	Health       *insights.HealthCheck          `json:"health,omitempty" yaml:"health,omitempty"`
	Summary      string                         `json:"summary,omitempty" yaml:"summary,omitempty"`

	// Rows is the flat rendering used by the text format.
	Rows []export.Row `json:"-" yaml:"-"`
}

// Generator renders analyses.
type Generator struct {
	logger logging.Logger
}

// NewGenerator creates a Generator.
func NewGenerator(logger logging.Logger) *Generator {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Generator{logger: logger.WithField(logging.FieldComponent, "report")}
}

// Generate renders the analysis in the given format.
func (g *Generator) Generate(a Analysis, format string) ([]byte, error) {
	g.logger.Debug("Generating report", logging.F(logging.FieldFormat, format))
	switch format {
	case FormatJSON:
		return g.generateJSON(a)
	case FormatYAML:
		return g.generateYAML(a)
	case FormatText, "":
		return g.generateText(a)
	default:
		return nil, fmt.Errorf("unsupported report format: %s", format)
	}
}

func (g *Generator) generateJSON(a Analysis) ([]byte, error) {
	out, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		g.logger.WithError(err).Error("Failed to marshal JSON report")
		return nil, fmt.Errorf("failed to marshal JSON report: %w", err)
	}
	return append(out, '\n'), nil
}

func (g *Generator) generateYAML(a Analysis) ([]byte, error) {
	out, err := yaml.Marshal(a)
	if err != nil {
		g.logger.WithError(err).Error("Failed to marshal YAML report")
		return nil, fmt.Errorf("failed to marshal YAML report: %w", err)
	}
	return out, nil
}

func (g *Generator) generateText(a Analysis) ([]byte, error) {
	var buf bytes.Buffer
	tw := tabwriter.NewWriter(&buf, 0, 4, 2, ' ', 0)

	if a.Period != "" {
		fmt.Fprintf(tw, "Period\t%s\t\n", a.Period)
	}
	section := ""
	for _, r := range a.Rows {
		if r.Section != section {
			section = r.Section
			fmt.Fprintf(tw, "\t\t\n%s\t\t\n", section)
		}
		fmt.Fprintf(tw, "  %s\t%s\t\n", r.Label, r.Value.StringFixed(2))
	}
	if a.Summary != "" {
		fmt.Fprintf(tw, "\t\t\n%s\t\t\n", a.Summary)
	}
	if err := tw.Flush(); err != nil {
		return nil, fmt.Errorf("failed to render text report: %w", err)
	}
	return buf.Bytes(), nil
}
