package models

import "github.com/shopspring/decimal"

// GroupedItem is the sum of all records sharing one description within a bucket.
type GroupedItem struct {
	Name  string          `json:"name" yaml:"name"`
	Value decimal.Decimal `json:"value" yaml:"value"`
}

// Bucket is one report section with its ordered items and total.
type Bucket struct {
	ID    BucketID        `json:"id" yaml:"id"`
	Items []GroupedItem   `json:"items" yaml:"items"`
	Total decimal.Decimal `json:"total" yaml:"total"`
}

// ItemValue returns the value of the named item, or zero when absent.
func (b Bucket) ItemValue(name string) decimal.Decimal {
	for _, item := range b.Items {
		if item.Name == name {
			return item.Value
		}
	}
	return decimal.Zero
}

// MonthlyStat is the revenue/cost aggregate of one calendar month.
type MonthlyStat struct {
	Month   string          `json:"month" yaml:"month"`
	Revenue decimal.Decimal `json:"revenue" yaml:"revenue"`
	Costs   decimal.Decimal `json:"costs" yaml:"costs"`
	Result  decimal.Decimal `json:"result" yaml:"result"`
}

// DistributionEntry is one slice of the expense distribution.
type DistributionEntry struct {
	Bucket BucketID        `json:"bucket" yaml:"bucket"`
	Value  decimal.Decimal `json:"value" yaml:"value"`
}

// PeriodSnapshot is the full aggregation result for one period.
type PeriodSnapshot struct {
	Period      string              `json:"period" yaml:"period"`
	RecordCount int                 `json:"recordCount" yaml:"record_count"`
	Buckets     map[BucketID]Bucket `json:"buckets" yaml:"buckets"`

	TotalSales                    decimal.Decimal `json:"totalSales" yaml:"total_sales"`
	GrossProfit                   decimal.Decimal `json:"grossProfit" yaml:"gross_profit"`
	OperatingIncome               decimal.Decimal `json:"operatingIncome" yaml:"operating_income"`
	NetIncome                     decimal.Decimal `json:"netIncome" yaml:"net_income"`
	ResultAfterAdjustments        decimal.Decimal `json:"resultAfterAdjustments" yaml:"result_after_adjustments"`
	TotalOperationalOtherExpenses decimal.Decimal `json:"totalOperationalOtherExpenses" yaml:"total_operational_other_expenses"`
	TotalExpenses                 decimal.Decimal `json:"totalExpenses" yaml:"total_expenses"`
	TotalAssets                   decimal.Decimal `json:"totalAssets" yaml:"total_assets"`
	TotalLiabilities              decimal.Decimal `json:"totalLiabilities" yaml:"total_liabilities"`
	TotalEquity                   decimal.Decimal `json:"totalEquity" yaml:"total_equity"`
	TaxAmount                     decimal.Decimal `json:"taxAmount" yaml:"tax_amount"`
	MonthCount                    int             `json:"monthCount" yaml:"month_count"`

	ExpenseDistribution []DistributionEntry `json:"expenseDistribution" yaml:"expense_distribution"`
	MonthlySeries       []MonthlyStat       `json:"monthlySeries" yaml:"monthly_series"`
}

// Bucket returns the bucket with the given id. Missing buckets are returned empty.
func (s PeriodSnapshot) Bucket(id BucketID) Bucket {
	if b, ok := s.Buckets[id]; ok {
		return b
	}
	return Bucket{ID: id, Total: decimal.Zero}
}

// Total returns the total of the given bucket.
func (s PeriodSnapshot) Total(id BucketID) decimal.Decimal {
	return s.Bucket(id).Total
}
