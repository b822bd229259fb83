// Package materiality computes audit materiality thresholds for a snapshot.
package materiality

import (
	"errors"
	"fmt"

	"fjacquet/gl-analyzer/internal/models"

	"github.com/shopspring/decimal"
)

// ErrInvalidSettings is returned for out-of-range or unknown settings.
var ErrInvalidSettings = errors.New("invalid materiality settings")

var (
	MinPercentage = decimal.RequireFromString("0.1")
	MaxPercentage = decimal.NewFromInt(5)

	hundred        = decimal.NewFromInt(100)
	tolerableShare = decimal.RequireFromString("0.5")
)

var riskModifiers = map[models.RiskProfile]decimal.Decimal{
	models.RiskLow:    decimal.RequireFromString("-0.10"),
	models.RiskMedium: decimal.Zero,
	models.RiskHigh:   decimal.RequireFromString("0.10"),
}

// Result holds the materiality figures.
type Result struct {
	Settings            models.MaterialitySettings `json:"settings" yaml:"settings"`
	BaseValue           decimal.Decimal            `json:"baseValue" yaml:"base_value"`
	InitialMateriality  decimal.Decimal            `json:"initialMateriality" yaml:"initial_materiality"`
	RiskModifier        decimal.Decimal            `json:"riskModifier" yaml:"risk_modifier"`
	AdjustedMateriality decimal.Decimal            `json:"adjustedMateriality" yaml:"adjusted_materiality"`
	TolerableError      decimal.Decimal            `json:"tolerableError" yaml:"tolerable_error"`
}

// Validate checks settings ranges.
func Validate(s models.MaterialitySettings) error {
	if _, err := models.ParseBenchmark(string(s.Benchmark)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSettings, err)
	}
	if _, err := models.ParseRiskProfile(string(s.RiskProfile)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSettings, err)
	}
	if s.Percentage.LessThan(MinPercentage) || s.Percentage.GreaterThan(MaxPercentage) {
		return fmt.Errorf("%w: percentage %s outside [%s, %s]", ErrInvalidSettings, s.Percentage, MinPercentage, MaxPercentage)
	}
	return nil
}

// BaseValue returns the benchmark amount: |total sales|, total assets or
// |net income|.
func BaseValue(snap models.PeriodSnapshot, b models.Benchmark) decimal.Decimal {
	switch b {
	case models.BenchmarkAssets:
		return snap.TotalAssets
	case models.BenchmarkResult:
		return snap.NetIncome.Abs()
	default:
		return snap.TotalSales.Abs()
	}
}

// Calculate computes materiality for snap.
func Calculate(snap models.PeriodSnapshot, s models.MaterialitySettings) (Result, error) {
	if err := Validate(s); err != nil {
		return Result{}, err
	}

	base := BaseValue(snap, s.Benchmark)
	initial := base.Mul(s.Percentage).Div(hundred)
	modifier := riskModifiers[s.RiskProfile]
	adjusted := initial.Mul(decimal.NewFromInt(1).Add(modifier))

	return Result{
		Settings:            s,
		BaseValue:           base,
		InitialMateriality:  initial,
		RiskModifier:        modifier,
		AdjustedMateriality: adjusted,
		TolerableError:      adjusted.Mul(tolerableShare),
	}, nil
}
