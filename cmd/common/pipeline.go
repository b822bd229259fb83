// Package common contains shared functionality for command handlers
package common

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"fjacquet/gl-analyzer/internal/aggregator"
	"fjacquet/gl-analyzer/internal/container"
	"fjacquet/gl-analyzer/internal/ledgerparser"
	"fjacquet/gl-analyzer/internal/logging"
	"fjacquet/gl-analyzer/internal/models"
	"fjacquet/gl-analyzer/internal/report"
	"fjacquet/gl-analyzer/internal/store"
	"fjacquet/gl-analyzer/internal/validation"
)

// Run is a parsed ledger with the session and the snapshot of the selected year.
type Run struct {
	Ledger   ledgerparser.Result
	Session  store.Session
	Year     string
	Snapshot models.PeriodSnapshot
}

// Load parses the ledger at input, loads the session and computes the
// snapshot of year (the configured year when empty).
func Load(ctx context.Context, c *container.Container, input, year string) (*Run, error) {
	if err := validation.IsValidInputFile(input); err != nil {
		return nil, err
	}
	if err := validation.IsValidYear(year); err != nil {
		return nil, err
	}

	ledger, err := c.GetParser().ParseFile(input)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", input, err)
	}

	sess, err := c.GetStore().Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	opts := c.AnalysisOptions(sess, year)
	return &Run{
		Ledger:   ledger,
		Session:  sess,
		Year:     opts.Year,
		Snapshot: c.GetAggregator().ComputeSnapshot(ledger.Records, opts),
	}, nil
}

// SnapshotFor computes the snapshot of another year of the same ledger.
func (r *Run) SnapshotFor(c *container.Container, year string) models.PeriodSnapshot {
	return c.GetAggregator().ComputeSnapshot(r.Ledger.Records, c.AnalysisOptions(r.Session, year))
}

// PreviousYear returns the year before r.Year when the ledger holds it.
func (r *Run) PreviousYear() (string, bool) {
	if r.Year == "" {
		return "", false
	}
	var y int
	if _, err := fmt.Sscanf(r.Year, "%d", &y); err != nil {
		return "", false
	}
	prev := fmt.Sprintf("%d", y-1)
	for _, available := range aggregator.AvailableYears(r.Ledger.Records) {
		if available == prev {
			return prev, true
		}
	}
	return "", false
}

// CompareYears resolves the two years to compare: explicit values first,
// then the configured ones, then the two newest years of the ledger.
func CompareYears(c *container.Container, records []models.TransactionRecord, a, b string) (string, string, error) {
	cfg := c.GetConfig().Analysis
	if a == "" {
		a = cfg.CompareYearA
	}
	if b == "" {
		b = cfg.CompareYearB
	}
	if a != "" && b != "" {
		return a, b, nil
	}

	years := aggregator.AvailableYears(records)
	if len(years) < 2 {
		return "", "", fmt.Errorf("need two years to compare, ledger has %d", len(years))
	}
	// Newest first: compare the previous year (A) with the latest (B).
	if a == "" {
		a = years[1]
	}
	if b == "" {
		b = years[0]
	}
	return a, b, nil
}

// Render generates the report and writes it to output, or to w when output is empty.
func Render(c *container.Container, a report.Analysis, format, output string, w io.Writer) error {
	if err := validation.IsValidOutputFormat(format, report.FormatText, report.FormatJSON, report.FormatYAML); err != nil {
		return err
	}
	data, err := c.GetReportGenerator().Generate(a, format)
	if err != nil {
		return err
	}
	return WriteOutput(c.GetLogger(), data, output, w)
}

// WriteOutput writes data to the file output, or to w when output is empty.
func WriteOutput(logger logging.Logger, data []byte, output string, w io.Writer) error {
	if output == "" {
		_, err := w.Write(data)
		return err
	}
	if dir := filepath.Dir(output); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(output, data, 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", output, err)
	}
	logger.Info("Output written", logging.F(logging.FieldOutputFile, output))
	return nil
}
