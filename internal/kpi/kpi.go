// Package kpi computes the fixed set of key performance indicators from a
// period snapshot, with optional manual adjustments per component.
package kpi

import (
	"fmt"
	"sort"

	"fjacquet/gl-analyzer/internal/logging"
	"fjacquet/gl-analyzer/internal/models"

	"github.com/shopspring/decimal"
)

// KPI identifiers.
const (
	Liquidity     = "liquidity"
	ARAP          = "arap"
	EBITDA        = "ebitda"
	Opex          = "opex"
	RecurringCost = "reccost"
)

// Adjustment keys. Each adds a manual delta to one component before the ratio is taken.
const (
	AdjLiquidityCash  = "liquidity-cash"
	AdjLiquidityCosts = "liquidity-costs"
	AdjAR             = "ar"
	AdjAP             = "ap"
	AdjEBITDA         = "ebitda"
	AdjOpex           = "opex"
	AdjRevenue        = "revenue"
	AdjRecCosts       = "recCosts"
)

var adjustmentKeys = map[string]struct{}{
	AdjLiquidityCash: {}, AdjLiquidityCosts: {}, AdjAR: {}, AdjAP: {},
	AdjEBITDA: {}, AdjOpex: {}, AdjRevenue: {}, AdjRecCosts: {},
}

// AdjustmentKeys returns the known adjustment keys, sorted.
func AdjustmentKeys() []string {
	keys := make([]string, 0, len(adjustmentKeys))
	for k := range adjustmentKeys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ValidateAdjustmentKey rejects unknown adjustment keys.
func ValidateAdjustmentKey(key string) error {
	if _, ok := adjustmentKeys[key]; !ok {
		return fmt.Errorf("unknown KPI adjustment %q", key)
	}
	return nil
}

// Adjustments maps adjustment keys to manual deltas.
type Adjustments map[string]decimal.Decimal

func (a Adjustments) get(key string) decimal.Decimal {
	if v, ok := a[key]; ok {
		return v
	}
	return decimal.Zero
}

var (
	one     = decimal.NewFromInt(1)
	two     = decimal.NewFromInt(2)
	ten     = decimal.NewFromInt(10)
	hundred = decimal.NewFromInt(100)
)

// Engine computes KPIs.
type Engine struct {
	logger logging.Logger
	lang   string
}

// NewEngine creates an Engine producing titles in lang ("nl" or "en").
func NewEngine(logger logging.Logger, lang string) *Engine {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Engine{logger: logger, lang: lang}
}

// Compute returns the five KPIs in display order.
func (e *Engine) Compute(snap models.PeriodSnapshot, adj Adjustments) []models.KPIItem {
	for key := range adj {
		if err := ValidateAdjustmentKey(key); err != nil {
			e.logger.WithError(err).Warn("Ignoring KPI adjustment")
		}
	}

	revenue := snap.TotalSales.Abs().Add(adj.get(AdjRevenue))
	items := []models.KPIItem{
		e.liquidity(snap, adj),
		e.arap(snap, adj),
		e.ebitda(snap, adj),
		e.opex(snap, adj, revenue),
		e.recurringCost(snap, adj, revenue),
	}

	for _, item := range items {
		e.logger.Debug("KPI computed",
			logging.F(logging.FieldKPI, item.ID),
			logging.F(logging.FieldStatus, string(item.Status)),
			logging.F("value", item.Value.StringFixed(2)))
	}
	return items
}

func (e *Engine) title(nl, en string) string {
	if e.lang == "en" {
		return en
	}
	return nl
}

// atLeast grades a higher-is-better value.
func atLeast(v, good, warning decimal.Decimal) models.KPIStatus {
	switch {
	case v.GreaterThanOrEqual(good):
		return models.StatusGood
	case v.GreaterThanOrEqual(warning):
		return models.StatusWarning
	default:
		return models.StatusBad
	}
}

// atMost grades a lower-is-better value.
func atMost(v, good, warning decimal.Decimal) models.KPIStatus {
	switch {
	case v.LessThanOrEqual(good):
		return models.StatusGood
	case v.LessThanOrEqual(warning):
		return models.StatusWarning
	default:
		return models.StatusBad
	}
}

func concatItems(buckets ...models.Bucket) []models.GroupedItem {
	var out []models.GroupedItem
	for _, b := range buckets {
		out = append(out, b.Items...)
	}
	return out
}

func (e *Engine) liquidity(snap models.PeriodSnapshot, adj Adjustments) models.KPIItem {
	liquid := snap.Bucket(models.BucketLiquidAssets)
	labor := snap.Bucket(models.BucketLabor)
	cash := liquid.Total.Add(adj.get(AdjLiquidityCash))
	costs := labor.Total.
		Add(snap.Total(models.BucketOtherExpenses)).
		Add(snap.Total(models.BucketRecurringCosts)).
		Add(adj.get(AdjLiquidityCosts))

	months := decimal.NewFromInt(int64(max(1, snap.MonthCount)))
	avgMonthly := decimal.Max(one, costs.Div(months))
	value := cash.Div(avgMonthly)

	fixedItems := []models.GroupedItem{{Name: e.title("Personeelskosten (totaal)", "Labor costs (total)"), Value: labor.Total}}
	fixedItems = append(fixedItems, concatItems(snap.Bucket(models.BucketRecurringCosts), snap.Bucket(models.BucketOtherExpenses))...)

	return models.KPIItem{
		ID:          Liquidity,
		Title:       e.title("Liquiditeitsbuffer", "Liquidity buffer"),
		Value:       value,
		Target:      two,
		TargetLabel: e.title("> 2 mnd", "> 2 months"),
		Unit:        models.UnitNumber,
		Status:      atLeast(value, two, one),
		Formula:     e.title("Cash / gem. vaste kosten p/m", "Cash / avg. fixed costs per month"),
		Breakdown: []models.BreakdownLine{
			{Label: e.title("Liquide middelen", "Liquid assets"), Value: liquid.Total, Items: liquid.Items},
			{Label: e.title("Vaste kosten (totaal)", "Fixed costs (total)"), Value: costs, Items: fixedItems},
		},
	}
}

func (e *Engine) arap(snap models.PeriodSnapshot, adj Adjustments) models.KPIItem {
	arBucket := snap.Bucket(models.BucketAccountsReceivable)
	apBucket := snap.Bucket(models.BucketAccountsPayable)
	ar := arBucket.Total.Add(adj.get(AdjAR))
	ap := apBucket.Total.Abs().Add(adj.get(AdjAP))

	var value decimal.Decimal
	switch {
	case ap.IsPositive():
		value = ar.Div(ap)
	case ar.IsPositive():
		value = ten
	default:
		value = decimal.Zero
	}

	return models.KPIItem{
		ID:          ARAP,
		Title:       e.title("Debiteuren vs crediteuren", "AR vs AP"),
		Value:       value,
		Target:      two,
		TargetLabel: "> 2.0x",
		Unit:        models.UnitRatio,
		Status:      atLeast(value, two, one),
		Formula:     e.title("Debiteuren / crediteuren", "Receivables / payables"),
		Breakdown: []models.BreakdownLine{
			{Label: e.title("Debiteuren", "Receivables"), Value: arBucket.Total, Items: arBucket.Items},
			{Label: e.title("Crediteuren", "Payables"), Value: apBucket.Total, Items: apBucket.Items},
		},
	}
}

func (e *Engine) ebitda(snap models.PeriodSnapshot, adj Adjustments) models.KPIItem {
	dep := snap.Bucket(models.BucketDepreciation)
	value := snap.OperatingIncome.Add(dep.Total).Add(adj.get(AdjEBITDA))

	status := models.StatusBad
	if value.IsPositive() {
		status = models.StatusGood
	}

	return models.KPIItem{
		ID:          EBITDA,
		Title:       "EBITDA",
		Value:       value,
		Target:      decimal.Zero,
		TargetLabel: "> 0",
		Unit:        models.UnitCurrency,
		Status:      status,
		Formula:     e.title("Bedrijfsresultaat + afschrijvingen", "Operating income + depreciation"),
		Breakdown: []models.BreakdownLine{
			{Label: e.title("Bedrijfsresultaat", "Operating income"), Value: snap.OperatingIncome},
			{Label: e.title("Afschrijvingen", "Depreciation"), Value: dep.Total, Items: dep.Items},
		},
	}
}

func (e *Engine) opex(snap models.PeriodSnapshot, adj Adjustments, revenue decimal.Decimal) models.KPIItem {
	labor := snap.Bucket(models.BucketLabor)
	other := snap.Bucket(models.BucketOtherExpenses)
	recurring := snap.Bucket(models.BucketRecurringCosts)
	dep := snap.Bucket(models.BucketDepreciation)

	opex := labor.Total.Add(other.Total).Add(recurring.Total).Add(dep.Total).Add(adj.get(AdjOpex))
	value := decimal.Zero
	if revenue.IsPositive() {
		value = opex.Div(revenue).Mul(hundred)
	}

	good := decimal.NewFromInt(60)
	return models.KPIItem{
		ID:          Opex,
		Title:       e.title("OPEX-ratio", "OPEX ratio"),
		Value:       value,
		Target:      good,
		TargetLabel: "< 60%",
		Unit:        models.UnitPercent,
		Status:      atMost(value, good, decimal.NewFromInt(70)),
		Formula:     e.title("Totale OPEX / omzet", "Total OPEX / revenue"),
		Breakdown: []models.BreakdownLine{
			{Label: e.title("Totale OPEX", "Total OPEX"), Value: opex, Items: concatItems(labor, other, recurring, dep)},
			{Label: e.title("Omzet totaal", "Total revenue"), Value: revenue,
				Items: concatItems(snap.Bucket(models.BucketSales), snap.Bucket(models.BucketRecurring))},
		},
	}
}

func (e *Engine) recurringCost(snap models.PeriodSnapshot, adj Adjustments, revenue decimal.Decimal) models.KPIItem {
	recurring := snap.Bucket(models.BucketRecurringCosts)
	costs := recurring.Total.Add(adj.get(AdjRecCosts))
	value := decimal.Zero
	if revenue.IsPositive() {
		value = costs.Div(revenue).Mul(hundred)
	}

	good := decimal.NewFromInt(20)
	return models.KPIItem{
		ID:          RecurringCost,
		Title:       e.title("Terugkerende kosten ratio", "Recurring cost ratio"),
		Value:       value,
		Target:      good,
		TargetLabel: "< 20%",
		Unit:        models.UnitPercent,
		Status:      atMost(value, good, decimal.NewFromInt(25)),
		Formula:     e.title("Terugkerende kosten / omzet", "Recurring costs / revenue"),
		Breakdown: []models.BreakdownLine{
			{Label: e.title("Terugkerende kosten", "Recurring costs"), Value: costs, Items: recurring.Items},
			{Label: e.title("Omzet", "Revenue"), Value: revenue},
		},
	}
}
