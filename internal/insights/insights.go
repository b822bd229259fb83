// Package insights derives the management overview and health check from a
// period snapshot.
package insights

import (
	"fjacquet/gl-analyzer/internal/models"

	"github.com/shopspring/decimal"
)

// Zone is the health classification of the result.
type Zone string

const (
	ZoneHealthy  Zone = "healthy"
	ZoneRisk     Zone = "risk"
	ZoneCritical Zone = "critical"
)

var (
	hundred       = decimal.NewFromInt(100)
	riskLossFloor = decimal.NewFromInt(-5000)
	monthsPerYear = 12
)

// Overview is the financial key figure summary.
type Overview struct {
	Months              int             `json:"months" yaml:"months"`
	AvgRevenuePerMonth  decimal.Decimal `json:"avgRevenuePerMonth" yaml:"avg_revenue_per_month"`
	AvgCostPerMonth     decimal.Decimal `json:"avgCostPerMonth" yaml:"avg_cost_per_month"`
	InvestmentsPerMonth decimal.Decimal `json:"investmentsPerMonth" yaml:"investments_per_month"`
	AvailableCash       decimal.Decimal `json:"availableCash" yaml:"available_cash"`
}

// BuildOverview computes the overview. In annual mode figures are averaged
// over twelve months, otherwise over the months present in the data. When
// prev is non-nil investments are the movement against it.
func BuildOverview(cur models.PeriodSnapshot, prev *models.PeriodSnapshot, annualMode bool) Overview {
	months := max(1, cur.MonthCount)
	if annualMode {
		months = monthsPerYear
	}
	m := decimal.NewFromInt(int64(months))

	investments := cur.Total(models.BucketInvestments)
	if prev != nil {
		investments = investments.Sub(prev.Total(models.BucketInvestments)).Div(m)
	}

	return Overview{
		Months:              months,
		AvgRevenuePerMonth:  cur.TotalSales.Abs().Div(m),
		AvgCostPerMonth:     cur.TotalExpenses.Div(m),
		InvestmentsPerMonth: investments,
		AvailableCash:       cur.Total(models.BucketLiquidAssets).Add(cur.Total(models.BucketDirectObligations)),
	}
}

// HealthCheck is the two-factor profitability check.
type HealthCheck struct {
	Revenue      decimal.Decimal `json:"revenue" yaml:"revenue"`
	Profit       decimal.Decimal `json:"profit" yaml:"profit"`
	NetMarginPct decimal.Decimal `json:"netMarginPct" yaml:"net_margin_pct"`
	CostPct      decimal.Decimal `json:"costPct" yaml:"cost_pct"`
	Zone         Zone            `json:"zone" yaml:"zone"`
	TaxAmount    decimal.Decimal `json:"taxAmount" yaml:"tax_amount"`
	TaxImpactPct decimal.Decimal `json:"taxImpactPct" yaml:"tax_impact_pct"`
}

// Check runs the health check. Profit is the sign-flipped net income.
func Check(snap models.PeriodSnapshot) HealthCheck {
	revenue := snap.TotalSales.Abs()
	profit := snap.NetIncome.Neg()

	hc := HealthCheck{
		Revenue:      revenue,
		Profit:       profit,
		NetMarginPct: pct(profit, revenue),
		CostPct:      pct(snap.TotalExpenses, revenue),
		TaxAmount:    snap.TaxAmount,
		TaxImpactPct: pct(snap.TaxAmount, profit.Add(snap.TaxAmount)),
	}

	switch {
	case profit.IsPositive():
		hc.Zone = ZoneHealthy
	case profit.GreaterThan(riskLossFloor):
		hc.Zone = ZoneRisk
	default:
		hc.Zone = ZoneCritical
	}
	return hc
}

func pct(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(hundred)
}
