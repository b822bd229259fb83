package batch

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"fjacquet/gl-analyzer/internal/aggregator"
	"fjacquet/gl-analyzer/internal/ledgerparser"
	"fjacquet/gl-analyzer/internal/logging"
	"fjacquet/gl-analyzer/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ledgerA = `Datum,Grootboek,Omschrijving,Debet,Credit
15-01-2024,8000,Omzet,,1000
15-01-2024,4000,Brutoloon,400,
`

const ledgerB = `Datum,Grootboek,Omschrijving,Debet,Credit
15-02-2024,8000,Omzet,,2500
15-02-2024,4000,Brutoloon,900,
15-02-2024,4000,Brutoloon,900,
`

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0600))
}

func newAnalyzer(logger logging.Logger, workers int) *Analyzer {
	return NewAnalyzer(ledgerparser.New(logger, ','), aggregator.New(nil, logger), workers, logger)
}

func TestLedgerFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.csv", ledgerB)
	writeFile(t, dir, "a.CSV", ledgerA)
	writeFile(t, dir, "notes.txt", "x")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.csv"), 0750))

	files, err := LedgerFiles(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.CSV"), filepath.Join(dir, "b.csv")}, files)

	_, err = LedgerFiles(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}

func TestAnalyzeDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.csv", ledgerA)
	writeFile(t, dir, "b.csv", ledgerB)
	writeFile(t, dir, "c.csv", "nothing useful\n")

	logger := logging.NewMockLogger()
	results, err := newAnalyzer(logger, 2).AnalyzeDir(context.Background(), dir, aggregator.Options{})
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, filepath.Join(dir, "a.csv"), results[0].File)
	assert.NoError(t, results[0].Err)
	assert.Equal(t, 2, results[0].Records)
	assert.True(t, results[0].Snapshot.TotalSales.Equal(decimal.NewFromInt(-1000)))

	assert.NoError(t, results[1].Err)
	assert.True(t, results[1].Snapshot.Total(models.BucketLabor).Equal(decimal.NewFromInt(1800)))

	assert.Error(t, results[2].Err)
	assert.True(t, logger.HasEntry("ERROR", "Failed to parse file"))
	assert.True(t, logger.HasEntry("WARN", "Found potential duplicate records"))
	assert.True(t, logger.HasEntry("INFO", "Batch analysis finished"))
}

func TestAnalyzeFiles_Cancelled(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.csv", ledgerA)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newAnalyzer(nil, 1).AnalyzeFiles(ctx, []string{filepath.Join(dir, "a.csv")}, aggregator.Options{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFindDuplicates(t *testing.T) {
	rec := func(desc, debit string) models.TransactionRecord {
		return models.TransactionRecord{Date: "2024-01-15", AccountCode: "4000", Description: desc,
			Debit: decimal.RequireFromString(debit), Credit: decimal.Zero}
	}
	records := []models.TransactionRecord{
		rec("Brutoloon", "900"),
		rec("brutoloon ", "900"),
		rec("Brutoloon", "901"),
	}
	dups := FindDuplicates(records)
	require.Len(t, dups, 1)
	assert.Equal(t, "brutoloon ", dups[0].Description)

	assert.Empty(t, FindDuplicates(nil))
}
