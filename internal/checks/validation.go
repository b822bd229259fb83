package checks

import (
	"strings"

	"fjacquet/gl-analyzer/internal/models"

	"github.com/shopspring/decimal"
)

// Report sections that can be validated against uploaded totals.
const (
	SectionAssets      = "Activa"
	SectionLiabilities = "Passiva"
	SectionEquity      = "Eigen Vermogen"
	SectionResult      = "Resultaat"
)

var totalTolerance = decimal.NewFromInt(1)

// TotalCheck is the outcome of comparing one computed section total with a
// total row from the source file.
type TotalCheck struct {
	Section    string          `json:"section" yaml:"section"`
	Source     string          `json:"source" yaml:"source"`
	SourceVal  decimal.Decimal `json:"sourceValue" yaml:"source_value"`
	Calculated decimal.Decimal `json:"calculated" yaml:"calculated"`
	Difference decimal.Decimal `json:"difference" yaml:"difference"`
	Match      bool            `json:"match" yaml:"match"`
}

func sectionMatches(section, name string) bool {
	n := strings.ToLower(name)
	switch section {
	case SectionAssets:
		return strings.Contains(n, "activa") && !strings.Contains(n, "vaste")
	case SectionLiabilities:
		return strings.Contains(n, "passiva")
	case SectionEquity:
		return strings.Contains(n, "eigen vermogen")
	case SectionResult:
		return strings.Contains(n, "resultaat") || strings.Contains(n, "winst")
	}
	return false
}

// ValidateTotals compares the snapshot against the total rows of the source
// file. Sections without a matching total row are omitted. A total row with a
// year only applies when it equals year; an empty year accepts every row.
// Passiva is compared with liabilities plus equity.
func ValidateTotals(totals []models.ValidationTotal, snap models.PeriodSnapshot, year string) []TotalCheck {
	sections := []struct {
		name string
		calc decimal.Decimal
	}{
		{SectionAssets, snap.TotalAssets},
		{SectionLiabilities, snap.TotalLiabilities.Add(snap.TotalEquity)},
		{SectionEquity, snap.TotalEquity},
		{SectionResult, snap.NetIncome},
	}

	var out []TotalCheck
	for _, s := range sections {
		for _, t := range totals {
			if year != "" && t.Year != "" && t.Year != year {
				continue
			}
			if !sectionMatches(s.name, t.Name) {
				continue
			}
			diff := t.Value.Abs().Sub(s.calc.Abs()).Abs()
			out = append(out, TotalCheck{
				Section:    s.name,
				Source:     t.Name,
				SourceVal:  t.Value,
				Calculated: s.calc,
				Difference: diff,
				Match:      diff.LessThan(totalTolerance),
			})
			break
		}
	}
	return out
}
