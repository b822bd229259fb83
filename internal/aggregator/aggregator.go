// Package aggregator turns classified ledger records into a period snapshot:
// grouped report sections, totals and the derived scalars that feed the
// statements, KPIs and materiality.
package aggregator

import (
	"sort"
	"time"

	"fjacquet/gl-analyzer/internal/classifier"
	"fjacquet/gl-analyzer/internal/logging"
	"fjacquet/gl-analyzer/internal/models"

	"github.com/shopspring/decimal"
)

// Options are the inputs of one snapshot computation besides the records.
type Options struct {
	// Year keeps only records whose date starts with it. Empty keeps all.
	Year string
	// HideSmallAmounts drops records with |debit-credit| below SmallAmountFilter.
	HideSmallAmounts  bool
	SmallAmountFilter decimal.Decimal
	Overrides         map[string]models.BucketID
	SortOrder         map[models.BucketID][]string
}

// Aggregator computes period snapshots.
type Aggregator struct {
	classifier *classifier.Classifier
	logger     logging.Logger
}

// New creates an Aggregator using the given classifier.
func New(c *classifier.Classifier, logger logging.Logger) *Aggregator {
	if logger == nil {
		logger = logging.Nop()
	}
	if c == nil {
		c = classifier.New(logger)
	}
	return &Aggregator{classifier: c, logger: logger}
}

// ComputeSnapshot filters, classifies and aggregates records. It is a pure
// function of its inputs: equal inputs give equal snapshots.
func (a *Aggregator) ComputeSnapshot(records []models.TransactionRecord, opts Options) models.PeriodSnapshot {
	start := time.Now()

	filtered := FilterRecords(records, opts)
	classified, tax := a.classifier.ClassifyAll(filtered, opts.Overrides)
	snap := Aggregate(classified, opts.SortOrder)
	snap.Period = opts.Year
	snap.TaxAmount = tax

	a.logger.Info("Snapshot computed",
		logging.F(logging.FieldPeriod, periodLabel(opts.Year)),
		logging.F(logging.FieldCount, len(filtered)),
		logging.F("dropped", len(records)-len(filtered)),
		logging.F(logging.FieldDuration, time.Since(start).Milliseconds()))
	return snap
}

func periodLabel(year string) string {
	if year == "" {
		return "all"
	}
	return year
}

// FilterRecords applies the year and small-amount filters.
func FilterRecords(records []models.TransactionRecord, opts Options) []models.TransactionRecord {
	out := make([]models.TransactionRecord, 0, len(records))
	for _, r := range records {
		if opts.Year != "" && r.Year() != opts.Year {
			continue
		}
		if opts.HideSmallAmounts && r.NetAmount().Abs().LessThan(opts.SmallAmountFilter) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Aggregate builds a snapshot from classified records. TaxAmount and Period
// are left for the caller.
func Aggregate(classified []classifier.Classified, sortOrder map[models.BucketID][]string) models.PeriodSnapshot {
	snap := models.PeriodSnapshot{
		RecordCount: len(classified),
		Buckets:     make(map[models.BucketID]models.Bucket, len(models.AllBuckets())),
		TaxAmount:   decimal.Zero,
	}

	for _, id := range models.AllBuckets() {
		items := ApplySort(GroupItems(classified, id), sortOrder[id])
		if items == nil {
			items = []models.GroupedItem{}
		}
		snap.Buckets[id] = models.Bucket{ID: id, Items: items, Total: SumItems(items)}
	}

	computeScalars(&snap)
	snap.MonthCount = countMonths(classified)
	snap.ExpenseDistribution = expenseDistribution(snap)
	snap.MonthlySeries = monthlySeries(classified)
	return snap
}

func sumTotals(snap models.PeriodSnapshot, ids ...models.BucketID) decimal.Decimal {
	total := decimal.Zero
	for _, id := range ids {
		total = total.Add(snap.Total(id))
	}
	return total
}

func computeScalars(snap *models.PeriodSnapshot) {
	s := *snap
	snap.TotalSales = sumTotals(s, models.BucketSales, models.BucketRecurring)
	snap.GrossProfit = snap.TotalSales.Add(s.Total(models.BucketCOGS))
	snap.OperatingIncome = snap.GrossProfit.Add(sumTotals(s,
		models.BucketLabor, models.BucketOtherExpenses, models.BucketRecurringCosts, models.BucketDepreciation))
	snap.NetIncome = snap.OperatingIncome.Add(s.Total(models.BucketNonOperationalExpenses))
	snap.ResultAfterAdjustments = snap.NetIncome.Add(s.Total(models.BucketResultsAdjustments))
	snap.TotalOperationalOtherExpenses = sumTotals(s,
		models.BucketOtherExpenses, models.BucketRecurringCosts, models.BucketDepreciation)
	snap.TotalExpenses = sumTotals(s,
		models.BucketLabor, models.BucketOtherExpenses, models.BucketRecurringCosts,
		models.BucketDepreciation, models.BucketNonOperationalExpenses)

	snap.TotalAssets = sumTotals(s, AssetBuckets...)
	snap.TotalLiabilities = sumTotals(s, LiabilityBuckets...)
	snap.TotalEquity = s.Total(models.BucketEquity)
}

// AssetBuckets make up total assets.
var AssetBuckets = []models.BucketID{
	models.BucketAssets, models.BucketLiquidAssets, models.BucketInvestments,
	models.BucketProductionInProgress, models.BucketAssetDepreciation, models.BucketAccountsReceivable,
}

// LiabilityBuckets make up total liabilities.
var LiabilityBuckets = []models.BucketID{
	models.BucketLiabilities, models.BucketCurrentAccounts, models.BucketDirectObligations,
	models.BucketAccountsPayable, models.BucketExternalFinancing,
}

func countMonths(classified []classifier.Classified) int {
	months := make(map[string]struct{})
	for _, c := range classified {
		if key := c.Record.MonthKey(); key != "" {
			months[key] = struct{}{}
		}
	}
	if len(months) == 0 {
		return 1
	}
	return len(months)
}

var distributionBuckets = []models.BucketID{
	models.BucketCOGS, models.BucketLabor, models.BucketRecurringCosts,
	models.BucketOtherExpenses, models.BucketDepreciation,
}

func expenseDistribution(snap models.PeriodSnapshot) []models.DistributionEntry {
	out := []models.DistributionEntry{}
	for _, id := range distributionBuckets {
		if total := snap.Total(id); total.IsPositive() {
			out = append(out, models.DistributionEntry{Bucket: id, Value: total})
		}
	}
	return out
}

// monthlySeries sums dated P&L records per month. Undated records count in
// the period totals but not in any month.
func monthlySeries(classified []classifier.Classified) []models.MonthlyStat {
	byMonth := make(map[string]*models.MonthlyStat)
	for _, c := range classified {
		month := c.Record.MonthKey()
		if month == "" || c.Record.LedgerCode() < 4000 {
			continue
		}
		if c.Bucket.IsBalanceSheet() || c.Bucket == models.BucketResultsAdjustments {
			continue
		}
		stat, ok := byMonth[month]
		if !ok {
			stat = &models.MonthlyStat{Month: month, Revenue: decimal.Zero, Costs: decimal.Zero}
			byMonth[month] = stat
		}
		if c.Bucket == models.BucketSales || c.Bucket == models.BucketRecurring {
			stat.Revenue = stat.Revenue.Add(c.Record.NetAmount())
		} else {
			stat.Costs = stat.Costs.Add(c.Record.NetAmount())
		}
	}

	out := make([]models.MonthlyStat, 0, len(byMonth))
	for _, stat := range byMonth {
		out = append(out, models.MonthlyStat{
			Month:   stat.Month,
			Revenue: stat.Revenue.Abs(),
			Costs:   stat.Costs,
			Result:  stat.Revenue.Add(stat.Costs),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}

// AvailableYears returns the distinct years present in the records, newest first.
func AvailableYears(records []models.TransactionRecord) []string {
	seen := make(map[string]struct{})
	var years []string
	for _, r := range records {
		y := r.Year()
		if y == "" {
			continue
		}
		if _, ok := seen[y]; ok {
			continue
		}
		seen[y] = struct{}{}
		years = append(years, y)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(years)))
	return years
}
