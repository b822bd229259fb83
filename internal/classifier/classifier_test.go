package classifier

import (
	"testing"

	"fjacquet/gl-analyzer/internal/logging"
	"fjacquet/gl-analyzer/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rec(code, desc string) models.TransactionRecord {
	return models.TransactionRecord{AccountCode: code, Description: desc, Debit: decimal.NewFromInt(100), Credit: decimal.Zero}
}

func TestClassify_Rules(t *testing.T) {
	tests := []struct {
		name   string
		code   string
		desc   string
		bucket models.BucketID
		rule   string
	}{
		{"result row", "9999", "Resultaat", models.BucketResultsAdjustments, "results-adjustment"},
		{"selected periods", "9999", "Resultaat geselecteerde perioden", models.BucketResultsAdjustments, "results-adjustment"},
		{"undistributed result", "0510", "Onverdeeld resultaat", models.BucketEquity, "undistributed-result"},
		{"profit distribution in P&L range", "9100", "Winstverdeling", models.BucketEquity, "undistributed-result"},
		{"purchase discount", "7100", "Inkoopkorting", models.BucketOtherExpenses, "discount"},
		{"subscription revenue", "8100", "Abonnementen", models.BucketRecurring, "recurring-revenue"},

		{"IBAN bank account", "1100", "NL91ABNA0417164300", models.BucketLiquidAssets, "liquid"},
		{"credit card", "1120", "Creditcard zakelijk", models.BucketLiquidAssets, "liquid"},
		{"kitchen fixtures", "0210", "Inventaris Keuken", models.BucketInvestments, "fixed-assets"},
		{"accumulated depreciation", "0211", "Afschrijving Inventaris Keuken", models.BucketAssetDepreciation, "asset-depreciation"},
		{"vehicles", "0220", "Vervoermiddelen", models.BucketInvestments, "fixed-assets"},
		{"english inventory", "0300", "Inventory kitchen", models.BucketInvestments, "fixed-assets"},
		{"english inventory depreciation", "0301", "Afschrijving inventory", models.BucketAssetDepreciation, "asset-depreciation"},
		{"work in progress", "3000", "Onderhanden werk", models.BucketProductionInProgress, "stock"},
		{"english stock", "3010", "Stock raw materials", models.BucketProductionInProgress, "stock"},
		{"vat payable", "1500", "Af te dragen BTW", models.BucketDirectObligations, "direct-obligation"},
		{"net salaries", "1510", "Netto salarissen", models.BucketDirectObligations, "direct-obligation"},
		{"vat cost account is not an obligation", "1520", "Kosten BTW correctie", models.BucketLiabilities, "range-liabilities"},
		{"current account", "1700", "R/C directeur", models.BucketCurrentAccounts, "current-account"},
		{"payables", "1600", "Crediteuren", models.BucketAccountsPayable, "payables"},
		{"receivables", "1300", "Debiteuren", models.BucketAccountsReceivable, "receivables"},
		{"bank loan", "1650", "Lening ING", models.BucketExternalFinancing, "external-financing"},
		{"loan below 1400 is not financing", "1200", "Lening u/g", models.BucketAssets, "range-assets"},
		{"low range assets", "0100", "Goodwill", models.BucketAssets, "range-assets"},
		{"equity range", "0500", "Aandelenkapitaal", models.BucketEquity, "range-equity"},
		{"other liabilities", "1900", "Overlopende passiva", models.BucketLiabilities, "range-liabilities"},

		{"bank charges", "4900", "Bankkosten", models.BucketNonOperationalExpenses, "financial"},
		{"corporate tax", "9500", "Vennootschapsbelasting", models.BucketNonOperationalExpenses, "financial"},
		{"depreciation expense", "4800", "Afschrijvingskosten inventaris", models.BucketDepreciation, "depreciation"},
		{"revenue range", "8000", "Omzet hoog", models.BucketSales, "revenue-range"},
		{"cogs range", "7000", "Inkoopwaarde", models.BucketCOGS, "cogs-range"},
		{"rent", "4100", "Huur kantoor", models.BucketRecurringCosts, "recurring-costs"},
		{"software", "4120", "Software licenties", models.BucketRecurringCosts, "recurring-costs"},
		{"wages", "4000", "Brutoloon", models.BucketLabor, "labor"},
		{"travel", "4010", "Reiskosten", models.BucketLabor, "labor"},
		{"office", "4500", "Kantoorartikelen", models.BucketOtherExpenses, "other-expenses"},
		{"unknown code goes to P&L", "", "Diversen", models.BucketOtherExpenses, "other-expenses"},
		{"malformed code goes to P&L", "abc", "Huur opslag", models.BucketRecurringCosts, "recurring-costs"},
	}

	c := New(logging.Nop())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bucket, rule := c.Classify(rec(tt.code, tt.desc), nil)
			assert.Equal(t, tt.bucket, bucket)
			assert.Equal(t, tt.rule, rule)
		})
	}
}

func TestClassify_OverrideWins(t *testing.T) {
	c := New(logging.Nop())
	overrides := map[string]models.BucketID{"Huur kantoor": models.BucketLabor}

	bucket, rule := c.Classify(rec("4100", "Huur kantoor"), overrides)
	assert.Equal(t, models.BucketLabor, bucket)
	assert.Equal(t, OverrideRuleName, rule)

	// Exact, case-sensitive description match only.
	bucket, _ = c.Classify(rec("4100", "huur kantoor"), overrides)
	assert.Equal(t, models.BucketRecurringCosts, bucket)
}

func TestClassify_InvalidOverrideIgnored(t *testing.T) {
	c := New(logging.Nop())
	bucket, _ := c.Classify(rec("8000", "Omzet"), map[string]models.BucketID{"Omzet": "bogus"})
	assert.Equal(t, models.BucketSales, bucket)
}

func TestClassify_Deterministic(t *testing.T) {
	c := New(logging.Nop())
	r := rec("1100", "NL91ABNA0417164300")
	first, _ := c.Classify(r, nil)
	for i := 0; i < 10; i++ {
		again, _ := c.Classify(r, nil)
		require.Equal(t, first, again)
	}
}

func TestClassifyAll_TaxAccumulator(t *testing.T) {
	c := New(logging.Nop())
	records := []models.TransactionRecord{
		{AccountCode: "9500", Description: "Vennootschapsbelasting 2024", Debit: decimal.NewFromInt(4000)},
		{AccountCode: "1550", Description: "VPB te betalen", Credit: decimal.NewFromInt(1000)},
		{AccountCode: "4500", Description: "Kantoor", Debit: decimal.NewFromInt(10)},
	}

	classified, tax := c.ClassifyAll(records, nil)
	require.Len(t, classified, 3)
	assert.True(t, tax.Equal(decimal.NewFromInt(3000)), "tax %s", tax)
}

func TestClassify_LogsDecision(t *testing.T) {
	mock := logging.NewMockLogger()
	c := New(mock)
	c.Classify(rec("8000", "Omzet"), nil)

	entries := mock.GetEntriesByLevel("DEBUG")
	require.NotEmpty(t, entries)
	assert.Contains(t, entries[0].Fields, logging.F(logging.FieldRule, "revenue-range"))
}

func TestIsDirectObligation(t *testing.T) {
	assert.True(t, IsDirectObligation(NewInput(rec("1500", "Te betalen BTW"))))
	assert.False(t, IsDirectObligation(NewInput(rec("1500", "BTW kosten"))))
	assert.False(t, IsDirectObligation(NewInput(rec("1500", "Overige schulden"))))
}
