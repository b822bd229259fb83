package export

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fjacquet/gl-analyzer/internal/checks"
	"fjacquet/gl-analyzer/internal/comparator"
	"fjacquet/gl-analyzer/internal/logging"
	"fjacquet/gl-analyzer/internal/materiality"
	"fjacquet/gl-analyzer/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(v string) decimal.Decimal { return decimal.RequireFromString(v) }

func sampleSnapshot() models.PeriodSnapshot {
	return models.PeriodSnapshot{
		Buckets: map[models.BucketID]models.Bucket{
			models.BucketSales:  {ID: models.BucketSales, Items: []models.GroupedItem{{Name: "Omzet", Value: d("-1000")}}, Total: d("-1000")},
			models.BucketEquity: {ID: models.BucketEquity, Items: []models.GroupedItem{{Name: "Kapitaal", Value: d("-500")}}, Total: d("-500")},
		},
		TotalSales:  d("-1000"),
		NetIncome:   d("-1000"),
		TotalEquity: d("-500"),
	}
}

func TestProfitAndLossRows(t *testing.T) {
	rows := ProfitAndLossRows(sampleSnapshot(), "nl")

	// one item row, then a total row per bucket, then six result rows
	require.Len(t, rows, 1+len(models.PnLBuckets)+6)
	assert.Equal(t, Row{"Omzet", "Omzet", d("-1000")}, rows[0])
	assert.Equal(t, TotalLabel, rows[1].Label)
	assert.Equal(t, "NetIncome", rows[len(rows)-3].Label)
}

func TestBalanceSheetRows(t *testing.T) {
	rows := BalanceSheetRows(sampleSnapshot(), "en")
	require.Len(t, rows, 1+len(models.BalanceSheetBuckets)+3)
	last := rows[len(rows)-1]
	assert.Equal(t, "Balance sheet", last.Section)
	assert.Equal(t, "TotalEquity", last.Label)
	assert.True(t, last.Value.Equal(d("-500")))
}

func TestKPIAndGoalRows(t *testing.T) {
	kpis := []models.KPIItem{{
		ID: "ebitda", Title: "EBITDA", Value: d("100"),
		Breakdown: []models.BreakdownLine{{Label: "Bedrijfsresultaat", Value: d("80")}, {Label: "Afschrijvingen", Value: d("20")}},
	}}
	assert.Len(t, KPIRows(kpis), 3)

	goals := []models.Goal{{ID: "g", Title: "Omzet", Current: d("50"), Target: d("200")}}
	rows := GoalRows(goals)
	require.Len(t, rows, 3)
	assert.True(t, rows[2].Value.Equal(d("0.25")))
}

func TestMaterialityAndCheckRows(t *testing.T) {
	res := materiality.Result{Settings: models.DefaultMaterialitySettings(), AdjustedMateriality: d("2200")}
	assert.Len(t, MaterialityRows(res), 6)

	rows := CheckRows(checks.DepreciationCheck{Match: true}, []checks.TotalCheck{{Section: checks.SectionAssets, Match: false}})
	require.Len(t, rows, 9)
	assert.True(t, rows[5].Value.Equal(d("1")))
	assert.True(t, rows[8].Value.IsZero())
}

func TestComparisonLines(t *testing.T) {
	a := sampleSnapshot()
	b := sampleSnapshot()
	b.Buckets[models.BucketSales] = models.Bucket{ID: models.BucketSales, Items: []models.GroupedItem{{Name: "Omzet", Value: d("-1500")}}, Total: d("-1500")}

	cmp := comparator.CompareAll([]comparator.Section{{Bucket: models.BucketSales, IsCreditNature: true, GoodDirection: comparator.Up}}, a, b)
	lines := ComparisonLines(cmp, "nl")
	require.Len(t, lines, 2)
	assert.Equal(t, "Omzet", lines[0].Name)
	assert.True(t, lines[0].DiffPct.Equal(d("50")))
	assert.Equal(t, string(comparator.Beneficial), lines[0].Assessment)
	assert.Equal(t, TotalLabel, lines[1].Name)
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, []Row{{"Omzet", "Omzet", d("-1000.5")}}, ';'))
	assert.Equal(t, "section;label;value\nOmzet;Omzet;-1000.5\n", buf.String())
}

func TestWriteFile_EmptyWritesHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	var rows []ComparisonLine
	require.NoError(t, WriteFile(rows, path, ',', logging.Nop()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "section,name,value_a"))
}
