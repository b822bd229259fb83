// Package batch analyses every ledger file of a directory concurrently.
package batch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"fjacquet/gl-analyzer/internal/aggregator"
	"fjacquet/gl-analyzer/internal/ledgerparser"
	"fjacquet/gl-analyzer/internal/logging"
	"fjacquet/gl-analyzer/internal/models"

	"golang.org/x/sync/errgroup"
)

// FileResult is the analysis of one ledger file. Err is set when the file
// could not be parsed; the other files are still processed.
type FileResult struct {
	File     string                   `json:"file" yaml:"file"`
	Records  int                      `json:"records" yaml:"records"`
	Snapshot models.PeriodSnapshot    `json:"snapshot" yaml:"snapshot"`
	Totals   []models.ValidationTotal `json:"totals,omitempty" yaml:"totals,omitempty"`
	Err      error                    `json:"-" yaml:"-"`
}

// Analyzer runs the parse and aggregate pipeline over many files.
type Analyzer struct {
	parser     *ledgerparser.Parser
	aggregator *aggregator.Aggregator
	workers    int
	logger     logging.Logger
}

// NewAnalyzer creates an Analyzer processing at most workers files at once.
func NewAnalyzer(parser *ledgerparser.Parser, agg *aggregator.Aggregator, workers int, logger logging.Logger) *Analyzer {
	if logger == nil {
		logger = logging.Nop()
	}
	if workers < 1 {
		workers = 1
	}
	return &Analyzer{parser: parser, aggregator: agg, workers: workers, logger: logger}
}

// LedgerFiles lists the .csv files of dir, sorted by name.
func LedgerFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("error reading directory %s: %w", dir, err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".csv") {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// AnalyzeDir analyses every ledger file in dir.
func (a *Analyzer) AnalyzeDir(ctx context.Context, dir string, opts aggregator.Options) ([]FileResult, error) {
	files, err := LedgerFiles(dir)
	if err != nil {
		return nil, err
	}
	return a.AnalyzeFiles(ctx, files, opts)
}

// AnalyzeFiles analyses files concurrently. Results keep the order of files.
// Only context cancellation aborts the run.
func (a *Analyzer) AnalyzeFiles(ctx context.Context, files []string, opts aggregator.Options) ([]FileResult, error) {
	start := time.Now()
	results := make([]FileResult, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(a.workers)

	for i, file := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = a.analyzeFile(file, opts)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	a.logger.Info("Batch analysis finished",
		logging.F(logging.FieldCount, len(files)),
		logging.F("failed", failed),
		logging.F(logging.FieldDuration, time.Since(start).Milliseconds()))
	return results, nil
}

func (a *Analyzer) analyzeFile(file string, opts aggregator.Options) FileResult {
	result := FileResult{File: file}

	parsed, err := a.parser.ParseFile(file)
	if err != nil {
		a.logger.WithError(err).Error("Failed to parse file", logging.F(logging.FieldFile, file))
		result.Err = err
		return result
	}

	if dups := FindDuplicates(parsed.Records); len(dups) > 0 {
		a.logger.Warn("Found potential duplicate records",
			logging.F(logging.FieldFile, file),
			logging.F(logging.FieldCount, len(dups)))
	}

	result.Records = len(parsed.Records)
	result.Totals = parsed.Totals
	result.Snapshot = a.aggregator.ComputeSnapshot(parsed.Records, opts)
	return result
}

// FindDuplicates returns records that repeat an earlier record's date, code,
// description and amounts. Duplicates are reported, never removed.
func FindDuplicates(records []models.TransactionRecord) []models.TransactionRecord {
	type key struct {
		date, code, desc, debit, credit string
	}
	seen := make(map[key]struct{}, len(records))
	var dups []models.TransactionRecord
	for _, r := range records {
		k := key{
			date:   r.Date,
			code:   r.AccountCode,
			desc:   strings.ToLower(strings.TrimSpace(r.Description)),
			debit:  r.Debit.String(),
			credit: r.Credit.String(),
		}
		if _, ok := seen[k]; ok {
			dups = append(dups, r)
			continue
		}
		seen[k] = struct{}{}
	}
	return dups
}
