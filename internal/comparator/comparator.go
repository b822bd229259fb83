// Package comparator compares report sections of two period snapshots.
package comparator

import (
	"sort"

	"fjacquet/gl-analyzer/internal/models"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Direction is the direction in which a section improves.
type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
)

// Assessment qualifies a difference given the section's good direction.
type Assessment string

const (
	Beneficial  Assessment = "beneficial"
	Detrimental Assessment = "detrimental"
	Neutral     Assessment = "neutral"
)

// SignificantPct is the |diff%| above which a row is highlighted.
var SignificantPct = decimal.NewFromInt(20)

// neutralBand is the absolute difference treated as no change.
var neutralBand = decimal.RequireFromString("0.01")

// Section describes how one bucket is compared.
type Section struct {
	Bucket         models.BucketID `json:"bucket" yaml:"bucket"`
	IsCreditNature bool            `json:"isCreditNature" yaml:"is_credit_nature"`
	GoodDirection  Direction       `json:"goodDirection" yaml:"good_direction"`
}

// PnLSections is the standard profit and loss comparison layout.
var PnLSections = []Section{
	{models.BucketSales, true, Up},
	{models.BucketRecurring, true, Up},
	{models.BucketCOGS, false, Down},
	{models.BucketLabor, false, Down},
	{models.BucketOtherExpenses, false, Down},
	{models.BucketRecurringCosts, false, Down},
	{models.BucketDepreciation, false, Down},
	{models.BucketNonOperationalExpenses, false, Down},
}

// BalanceSections is the standard balance sheet comparison layout.
var BalanceSections = []Section{
	{models.BucketInvestments, false, Up},
	{models.BucketProductionInProgress, false, Up},
	{models.BucketAssets, false, Up},
	{models.BucketLiquidAssets, false, Up},
	{models.BucketAssetDepreciation, false, Up},
	{models.BucketAccountsReceivable, false, Up},
	{models.BucketEquity, true, Up},
	{models.BucketLiabilities, true, Down},
	{models.BucketAccountsPayable, true, Down},
	{models.BucketExternalFinancing, true, Down},
	{models.BucketDirectObligations, true, Down},
	{models.BucketCurrentAccounts, true, Down},
}

// Row is a compared item with its assessment.
type Row struct {
	models.ComparisonRow `yaml:",inline"`
	Assessment           Assessment `json:"assessment" yaml:"assessment"`
	Significant          bool       `json:"significant" yaml:"significant"`
}

// SectionComparison is the comparison of one bucket across two periods.
type SectionComparison struct {
	Section Section `json:"section" yaml:"section"`
	Rows    []Row   `json:"rows" yaml:"rows"`
	Totals  Row     `json:"totals" yaml:"totals"`
}

// Compare compares one bucket across periods a and b. Item names are the
// union of both periods, sorted by name; missing items count as zero. Credit
// nature sections are sign-flipped so magnitudes show positive.
func Compare(section models.BucketID, a, b models.PeriodSnapshot, isCreditNature bool) SectionComparison {
	return CompareSection(Section{Bucket: section, IsCreditNature: isCreditNature, GoodDirection: Up}, a, b)
}

// CompareSection is Compare with an explicit good direction.
func CompareSection(section Section, a, b models.PeriodSnapshot) SectionComparison {
	sign := decimal.NewFromInt(1)
	if section.IsCreditNature {
		sign = decimal.NewFromInt(-1)
	}

	bucketA := a.Bucket(section.Bucket)
	bucketB := b.Bucket(section.Bucket)

	seen := make(map[string]struct{})
	var names []string
	for _, bucket := range []models.Bucket{bucketA, bucketB} {
		for _, item := range bucket.Items {
			if _, ok := seen[item.Name]; ok {
				continue
			}
			seen[item.Name] = struct{}{}
			names = append(names, item.Name)
		}
	}
	sort.Strings(names)

	rows := make([]Row, 0, len(names))
	for _, name := range names {
		rows = append(rows, newRow(name,
			bucketA.ItemValue(name).Mul(sign),
			bucketB.ItemValue(name).Mul(sign),
			section.GoodDirection))
	}

	return SectionComparison{
		Section: section,
		Rows:    rows,
		Totals:  newRow("total", bucketA.Total.Mul(sign), bucketB.Total.Mul(sign), section.GoodDirection),
	}
}

// CompareAll compares every section of a layout.
func CompareAll(sections []Section, a, b models.PeriodSnapshot) []SectionComparison {
	out := make([]SectionComparison, 0, len(sections))
	for _, s := range sections {
		out = append(out, CompareSection(s, a, b))
	}
	return out
}

func newRow(name string, val1, val2 decimal.Decimal, good Direction) Row {
	diff := val2.Sub(val1)
	row := Row{ComparisonRow: models.ComparisonRow{
		Name:    name,
		Val1:    val1,
		Val2:    val2,
		Diff:    diff,
		DiffPct: DiffPct(val1, diff),
	}}
	row.Assessment = assess(diff, good)
	row.Significant = !val1.IsZero() && row.DiffPct.Abs().GreaterThan(SignificantPct)
	return row
}

// DiffPct returns diff / |val1| in percent, or zero when val1 is zero.
func DiffPct(val1, diff decimal.Decimal) decimal.Decimal {
	if val1.IsZero() {
		return decimal.Zero
	}
	return diff.Div(val1.Abs()).Mul(hundred)
}

func assess(diff decimal.Decimal, good Direction) Assessment {
	if diff.Abs().LessThanOrEqual(neutralBand) {
		return Neutral
	}
	if diff.IsPositive() == (good == Up) {
		return Beneficial
	}
	return Detrimental
}
