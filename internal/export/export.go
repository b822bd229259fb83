// Package export flattens analysis results into label/value rows for CSV output.
package export

import (
	"io"

	"fjacquet/gl-analyzer/internal/checks"
	"fjacquet/gl-analyzer/internal/common"
	"fjacquet/gl-analyzer/internal/comparator"
	"fjacquet/gl-analyzer/internal/logging"
	"fjacquet/gl-analyzer/internal/materiality"
	"fjacquet/gl-analyzer/internal/models"

	"github.com/shopspring/decimal"
)

// Row is one exported line.
type Row struct {
	Section string          `csv:"section" json:"section" yaml:"section"`
	Label   string          `csv:"label" json:"label" yaml:"label"`
	Value   decimal.Decimal `csv:"value" json:"value" yaml:"value"`
}

// ComparisonLine is one exported comparison line.
type ComparisonLine struct {
	Section    string          `csv:"section"`
	Name       string          `csv:"name"`
	Val1       decimal.Decimal `csv:"value_a"`
	Val2       decimal.Decimal `csv:"value_b"`
	Diff       decimal.Decimal `csv:"difference"`
	DiffPct    decimal.Decimal `csv:"difference_pct"`
	Assessment string          `csv:"assessment"`
}

// TotalLabel labels bucket and section totals.
const TotalLabel = "Totaal"

func bucketRows(snap models.PeriodSnapshot, ids []models.BucketID, lang string) []Row {
	var rows []Row
	for _, id := range ids {
		b := snap.Bucket(id)
		section := id.Title(lang)
		for _, item := range b.Items {
			rows = append(rows, Row{Section: section, Label: item.Name, Value: item.Value})
		}
		rows = append(rows, Row{Section: section, Label: TotalLabel, Value: b.Total})
	}
	return rows
}

// ProfitAndLossRows lists every P&L item, the bucket totals and the result lines.
func ProfitAndLossRows(snap models.PeriodSnapshot, lang string) []Row {
	rows := bucketRows(snap, models.PnLBuckets, lang)
	section := "Resultaat"
	if lang == "en" {
		section = "Result"
	}
	return append(rows,
		Row{section, "TotalSales", snap.TotalSales},
		Row{section, "GrossProfit", snap.GrossProfit},
		Row{section, "OperatingIncome", snap.OperatingIncome},
		Row{section, "NetIncome", snap.NetIncome},
		Row{section, "ResultAfterAdjustments", snap.ResultAfterAdjustments},
		Row{section, "TaxAmount", snap.TaxAmount},
	)
}

// BalanceSheetRows lists every balance sheet item, the bucket totals and the
// side totals.
func BalanceSheetRows(snap models.PeriodSnapshot, lang string) []Row {
	rows := bucketRows(snap, models.BalanceSheetBuckets, lang)
	section := "Balans"
	if lang == "en" {
		section = "Balance sheet"
	}
	return append(rows,
		Row{section, "TotalAssets", snap.TotalAssets},
		Row{section, "TotalLiabilities", snap.TotalLiabilities},
		Row{section, "TotalEquity", snap.TotalEquity},
	)
}

// KPIRows lists KPI values and their breakdown lines.
func KPIRows(items []models.KPIItem) []Row {
	var rows []Row
	for _, k := range items {
		rows = append(rows, Row{Section: k.Title, Label: k.ID, Value: k.Value})
		for _, b := range k.Breakdown {
			rows = append(rows, Row{Section: k.Title, Label: b.Label, Value: b.Value})
		}
	}
	return rows
}

// GoalRows lists custom goals with their current and target values.
func GoalRows(goals []models.Goal) []Row {
	var rows []Row
	for _, g := range goals {
		rows = append(rows,
			Row{g.Title, "current", g.Current},
			Row{g.Title, "target", g.Target},
			Row{g.Title, "progress", g.Progress()},
		)
	}
	return rows
}

// MaterialityRows lists the materiality figures.
func MaterialityRows(r materiality.Result) []Row {
	const section = "Materiality"
	return []Row{
		{section, "BaseValue", r.BaseValue},
		{section, "Percentage", r.Settings.Percentage},
		{section, "InitialMateriality", r.InitialMateriality},
		{section, "RiskModifier", r.RiskModifier},
		{section, "AdjustedMateriality", r.AdjustedMateriality},
		{section, "TolerableError", r.TolerableError},
	}
}

func boolValue(b bool) decimal.Decimal {
	if b {
		return decimal.NewFromInt(1)
	}
	return decimal.Zero
}

// CheckRows lists the depreciation reconciliation and source validations.
// Match flags export as 1 or 0.
func CheckRows(dep checks.DepreciationCheck, totals []checks.TotalCheck) []Row {
	const section = "Depreciation"
	rows := []Row{
		{section, "BalanceA", dep.BalanceA},
		{section, "BalanceB", dep.BalanceB},
		{section, "Movement", dep.Movement},
		{section, "PnLDepreciation", dep.PnLDepreciation},
		{section, "Difference", dep.Difference},
		{section, "Match", boolValue(dep.Match)},
	}
	for _, t := range totals {
		rows = append(rows,
			Row{t.Section, "Source", t.SourceVal},
			Row{t.Section, "Calculated", t.Calculated},
			Row{t.Section, "Match", boolValue(t.Match)},
		)
	}
	return rows
}

// ComparisonLines flattens section comparisons, totals last per section.
func ComparisonLines(cmp []comparator.SectionComparison, lang string) []ComparisonLine {
	var lines []ComparisonLine
	for _, sc := range cmp {
		section := sc.Section.Bucket.Title(lang)
		for _, r := range sc.Rows {
			lines = append(lines, comparisonLine(section, r))
		}
		total := sc.Totals
		total.Name = TotalLabel
		lines = append(lines, comparisonLine(section, total))
	}
	return lines
}

func comparisonLine(section string, r comparator.Row) ComparisonLine {
	return ComparisonLine{
		Section:    section,
		Name:       r.Name,
		Val1:       r.Val1,
		Val2:       r.Val2,
		Diff:       r.Diff,
		DiffPct:    r.DiffPct.Round(2),
		Assessment: string(r.Assessment),
	}
}

// Write writes rows as CSV to w.
func Write[T Row | ComparisonLine](w io.Writer, rows []T, delimiter rune) error {
	return common.WriteCSV(w, rows, delimiter)
}

// WriteFile writes rows as CSV to path.
func WriteFile[T Row | ComparisonLine](rows []T, path string, delimiter rune, logger logging.Logger) error {
	if rows == nil {
		rows = []T{}
	}
	return common.WriteCSVFile(rows, path, delimiter, logger)
}
