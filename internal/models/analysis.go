package models

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// KPIStatus is the traffic-light assessment of a KPI value.
type KPIStatus string

const (
	StatusGood    KPIStatus = "good"
	StatusWarning KPIStatus = "warning"
	StatusBad     KPIStatus = "bad"
)

// KPIUnit describes how a KPI value is displayed.
type KPIUnit string

const (
	UnitCurrency KPIUnit = "currency"
	UnitPercent  KPIUnit = "percent"
	UnitRatio    KPIUnit = "ratio"
	UnitNumber   KPIUnit = "number"
)

// BreakdownLine is one labelled component of a KPI computation.
type BreakdownLine struct {
	Label string          `json:"label" yaml:"label"`
	Value decimal.Decimal `json:"value" yaml:"value"`
	Items []GroupedItem   `json:"items,omitempty" yaml:"items,omitempty"`
}

// KPIItem is one computed key performance indicator.
type KPIItem struct {
	ID          string          `json:"id" yaml:"id"`
	Title       string          `json:"title" yaml:"title"`
	Value       decimal.Decimal `json:"value" yaml:"value"`
	Target      decimal.Decimal `json:"target" yaml:"target"`
	TargetLabel string          `json:"targetLabel" yaml:"target_label"`
	Unit        KPIUnit         `json:"unit" yaml:"unit"`
	Status      KPIStatus       `json:"status" yaml:"status"`
	Formula     string          `json:"formula" yaml:"formula"`
	Breakdown   []BreakdownLine `json:"breakdown" yaml:"breakdown"`
}

// Goal is a user-defined target tracked next to the fixed KPIs.
type Goal struct {
	ID      string          `json:"id" yaml:"id"`
	Title   string          `json:"title" yaml:"title"`
	Current decimal.Decimal `json:"current" yaml:"current"`
	Target  decimal.Decimal `json:"target" yaml:"target"`
}

// NewGoal creates a goal with a fresh id and zero progress.
func NewGoal(title string, target decimal.Decimal) Goal {
	return Goal{
		ID:      uuid.NewString(),
		Title:   title,
		Current: decimal.Zero,
		Target:  target,
	}
}

// Progress returns current/target, or zero when the target is zero.
func (g Goal) Progress() decimal.Decimal {
	if g.Target.IsZero() {
		return decimal.Zero
	}
	return g.Current.Div(g.Target)
}

// ComparisonRow holds one item compared across two periods.
type ComparisonRow struct {
	Name    string          `json:"name" yaml:"name" csv:"name"`
	Val1    decimal.Decimal `json:"val1" yaml:"val1" csv:"value_a"`
	Val2    decimal.Decimal `json:"val2" yaml:"val2" csv:"value_b"`
	Diff    decimal.Decimal `json:"diff" yaml:"diff" csv:"difference"`
	DiffPct decimal.Decimal `json:"diffPct" yaml:"diff_pct" csv:"difference_pct"`
}

// Benchmark selects the base value of the materiality calculation.
type Benchmark string

const (
	BenchmarkRevenue Benchmark = "revenue"
	BenchmarkAssets  Benchmark = "assets"
	BenchmarkResult  Benchmark = "result"
)

// RiskProfile shifts the materiality percentage.
type RiskProfile string

const (
	RiskLow    RiskProfile = "low"
	RiskMedium RiskProfile = "medium"
	RiskHigh   RiskProfile = "high"
)

// MaterialitySettings are the user choices of the materiality calculator.
type MaterialitySettings struct {
	Benchmark   Benchmark       `json:"benchmark" yaml:"benchmark"`
	Percentage  decimal.Decimal `json:"percentage" yaml:"percentage"`
	RiskProfile RiskProfile     `json:"riskProfile" yaml:"risk_profile"`
	Saved       bool            `json:"saved" yaml:"saved"`
}

// DefaultMaterialitySettings returns revenue / 1% / medium.
func DefaultMaterialitySettings() MaterialitySettings {
	return MaterialitySettings{
		Benchmark:   BenchmarkRevenue,
		Percentage:  decimal.NewFromInt(1),
		RiskProfile: RiskMedium,
	}
}

// ParseBenchmark validates a benchmark name.
func ParseBenchmark(s string) (Benchmark, error) {
	switch b := Benchmark(s); b {
	case BenchmarkRevenue, BenchmarkAssets, BenchmarkResult:
		return b, nil
	}
	return "", fmt.Errorf("unknown benchmark %q", s)
}

// ParseRiskProfile validates a risk profile name.
func ParseRiskProfile(s string) (RiskProfile, error) {
	switch r := RiskProfile(s); r {
	case RiskLow, RiskMedium, RiskHigh:
		return r, nil
	}
	return "", fmt.Errorf("unknown risk profile %q", s)
}

// ValidationTotal is a total row found in the source export, kept to
// cross-check the computed totals.
type ValidationTotal struct {
	Name  string          `json:"name" yaml:"name"`
	Value decimal.Decimal `json:"value" yaml:"value"`
	Year  string          `json:"year" yaml:"year"`
}
