package models

import "fmt"

// BucketID names one report section. The set is fixed.
type BucketID string

// Profit and loss buckets.
const (
	BucketSales                  BucketID = "sales"
	BucketRecurring              BucketID = "recurring"
	BucketCOGS                   BucketID = "cogs"
	BucketLabor                  BucketID = "labor"
	BucketOtherExpenses          BucketID = "otherExpenses"
	BucketRecurringCosts         BucketID = "recurringCosts"
	BucketDepreciation           BucketID = "depreciation"
	BucketNonOperationalExpenses BucketID = "nonOperationalExpenses"
	BucketResultsAdjustments     BucketID = "resultsAdjustments"
)

// Balance sheet buckets.
const (
	BucketInvestments          BucketID = "investments"
	BucketProductionInProgress BucketID = "productionInProgress"
	BucketAssetDepreciation    BucketID = "assetDepreciation"
	BucketLiquidAssets         BucketID = "liquidAssets"
	BucketAccountsReceivable   BucketID = "accountsReceivable"
	BucketAssets               BucketID = "assets"
	BucketAccountsPayable      BucketID = "accountsPayable"
	BucketLiabilities          BucketID = "liabilities"
	BucketExternalFinancing    BucketID = "externalFinancing"
	BucketCurrentAccounts      BucketID = "currentAccounts"
	BucketDirectObligations    BucketID = "directObligations"
	BucketEquity               BucketID = "equity"
)

type bucketInfo struct {
	balanceSheet bool
	titleNL      string
	titleEN      string
}

var bucketCatalog = map[BucketID]bucketInfo{
	BucketSales:                  {false, "Omzet", "Revenue"},
	BucketRecurring:              {false, "Terugkerende omzet", "Recurring revenue"},
	BucketCOGS:                   {false, "Kostprijs omzet", "Cost of goods sold"},
	BucketLabor:                  {false, "Personeelskosten", "Labor costs"},
	BucketOtherExpenses:          {false, "Overige bedrijfskosten", "Other expenses"},
	BucketRecurringCosts:         {false, "Terugkerende kosten", "Recurring costs"},
	BucketDepreciation:           {false, "Afschrijvingen", "Depreciation"},
	BucketNonOperationalExpenses: {false, "Financiële baten en lasten", "Non-operational expenses"},
	BucketResultsAdjustments:     {false, "Resultaatcorrecties", "Results adjustments"},
	BucketInvestments:            {true, "Investeringen", "Investments"},
	BucketProductionInProgress:   {true, "Voorraad en onderhanden werk", "Production in progress"},
	BucketAssetDepreciation:      {true, "Cumulatieve afschrijvingen", "Accumulated depreciation"},
	BucketLiquidAssets:           {true, "Liquide middelen", "Liquid assets"},
	BucketAccountsReceivable:     {true, "Debiteuren", "Accounts receivable"},
	BucketAssets:                 {true, "Overige activa", "Other assets"},
	BucketAccountsPayable:        {true, "Crediteuren", "Accounts payable"},
	BucketLiabilities:            {true, "Overige passiva", "Other liabilities"},
	BucketExternalFinancing:      {true, "Externe financiering", "External financing"},
	BucketCurrentAccounts:        {true, "Rekening-courant", "Current accounts"},
	BucketDirectObligations:      {true, "Directe verplichtingen", "Direct obligations"},
	BucketEquity:                 {true, "Eigen vermogen", "Equity"},
}

// PnLBuckets lists the profit and loss buckets in report order.
var PnLBuckets = []BucketID{
	BucketSales, BucketRecurring, BucketCOGS, BucketLabor, BucketOtherExpenses,
	BucketRecurringCosts, BucketDepreciation, BucketNonOperationalExpenses, BucketResultsAdjustments,
}

// BalanceSheetBuckets lists the balance sheet buckets in report order, assets first.
var BalanceSheetBuckets = []BucketID{
	BucketInvestments, BucketProductionInProgress, BucketAssetDepreciation, BucketLiquidAssets,
	BucketAccountsReceivable, BucketAssets, BucketAccountsPayable, BucketLiabilities,
	BucketExternalFinancing, BucketCurrentAccounts, BucketDirectObligations, BucketEquity,
}

// AllBuckets lists every bucket, P&L first.
func AllBuckets() []BucketID {
	all := make([]BucketID, 0, len(PnLBuckets)+len(BalanceSheetBuckets))
	all = append(all, PnLBuckets...)
	return append(all, BalanceSheetBuckets...)
}

// IsBalanceSheet reports whether the bucket belongs to the balance sheet.
func (b BucketID) IsBalanceSheet() bool {
	return bucketCatalog[b].balanceSheet
}

// Valid reports whether b is one of the known buckets.
func (b BucketID) Valid() bool {
	_, ok := bucketCatalog[b]
	return ok
}

// Title returns the display title in the given language ("nl" or "en").
func (b BucketID) Title(lang string) string {
	info, ok := bucketCatalog[b]
	if !ok {
		return string(b)
	}
	if lang == "en" {
		return info.titleEN
	}
	return info.titleNL
}

// ParseBucketID validates a bucket name coming from user input.
func ParseBucketID(s string) (BucketID, error) {
	id := BucketID(s)
	if !id.Valid() {
		return "", fmt.Errorf("unknown bucket %q", s)
	}
	return id, nil
}
