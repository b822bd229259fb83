package classifier

import (
	"regexp"
	"strings"

	"fjacquet/gl-analyzer/internal/models"
)

// Input is what a rule sees of a record: the raw description, its lower-cased
// form and the parsed ledger code.
type Input struct {
	Description string
	Lower       string
	Code        int
}

// NewInput derives the rule input of a record.
func NewInput(rec models.TransactionRecord) Input {
	return Input{
		Description: rec.Description,
		Lower:       strings.ToLower(rec.Description),
		Code:        rec.LedgerCode(),
	}
}

// Rule maps records matching a predicate to a bucket.
type Rule struct {
	Name   string
	Match  func(Input) bool
	Bucket models.BucketID
}

// balanceSheetRangeEnd is the first ledger code of the profit and loss range.
const balanceSheetRangeEnd = 4000

// InBalanceSheetRange reports whether a ledger code falls in the balance sheet range.
// Code 0 is the unknown sentinel and is treated as profit and loss.
func InBalanceSheetRange(code int) bool {
	return code > 0 && code < balanceSheetRangeEnd
}

func containsAny(s string, keywords ...string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

func keywords(kws ...string) func(Input) bool {
	return func(in Input) bool { return containsAny(in.Lower, kws...) }
}

var ibanLike = regexp.MustCompile(`[a-zA-Z]{2}[0-9]{2}[a-zA-Z0-9]{4,}`)

// IsLiquid reports whether a description names cash, a bank account or a card.
func IsLiquid(in Input) bool {
	if containsAny(in.Lower, "lunchpas", "credietcard", "creditcard", "bankgarantie", "liquide middelen", "cash at bank") {
		return true
	}
	return ibanLike.MatchString(in.Description)
}

// IsCurrentAccount reports whether a description names an R/C (current account) position.
func IsCurrentAccount(in Input) bool {
	return containsAny(in.Lower, "r/c", "rc ")
}

// IsDirectObligation reports whether a description names a short-term tax or
// payroll obligation. VAT-related cost accounts ("kosten" together with "btw")
// are not obligations.
func IsDirectObligation(in Input) bool {
	if strings.Contains(in.Lower, "kosten") && strings.Contains(in.Lower, "btw") {
		return false
	}
	return containsAny(in.Lower, "netto salaris", "net salary", "btw", "vat payable", "af te dragen", "tax payable", "payable tax")
}

// IsCorporateTax reports whether a description is a corporate income tax line.
func IsCorporateTax(lower string) bool {
	return containsAny(lower, "vennootschapsbelasting", "vpb ", "corporate tax")
}

func balance(name string, bucket models.BucketID, match func(Input) bool) Rule {
	return Rule{
		Name:   name,
		Bucket: bucket,
		Match: func(in Input) bool {
			return InBalanceSheetRange(in.Code) && match(in)
		},
	}
}

func pnl(name string, bucket models.BucketID, match func(Input) bool) Rule {
	return Rule{
		Name:   name,
		Bucket: bucket,
		Match: func(in Input) bool {
			return !InBalanceSheetRange(in.Code) && match(in)
		},
	}
}

// DefaultRules returns the classification chain in evaluation order.
// Every record matches at least one rule.
func DefaultRules() []Rule {
	return []Rule{
		{Name: "results-adjustment", Bucket: models.BucketResultsAdjustments, Match: func(in Input) bool {
			return in.Lower == "resultaat" || in.Lower == "result" ||
				containsAny(in.Lower, "resultaat geselecteerde perioden", "result selected periods")
		}},
		{Name: "undistributed-result", Bucket: models.BucketEquity,
			Match: keywords("onverwerkt", "onverdeeld", "winstverdeling", "undistributed", "unprocessed", "profit distribution")},
		{Name: "discount", Bucket: models.BucketOtherExpenses,
			Match: keywords("inkoopkorting", "verkoopkorting", "purchase discount", "sales discount")},
		{Name: "recurring-revenue", Bucket: models.BucketRecurring,
			Match: keywords("abonnement", "subscription", "recurring", "contributie", "membership")},

		balance("liquid", models.BucketLiquidAssets, IsLiquid),
		balance("asset-depreciation", models.BucketAssetDepreciation, keywords("afschrijving", "depreciation")),
		balance("fixed-assets", models.BucketInvestments, keywords("inventaris", "vervoermiddelen", "inventory", "fixtures", "vehicles")),
		balance("stock", models.BucketProductionInProgress, keywords("voorraad", "onderhanden werk", "stock", "work in progress")),
		balance("direct-obligation", models.BucketDirectObligations, IsDirectObligation),
		balance("current-account", models.BucketCurrentAccounts, IsCurrentAccount),
		balance("payables", models.BucketAccountsPayable, keywords("crediteuren", "payables")),
		balance("receivables", models.BucketAccountsReceivable, keywords("debiteuren", "receivables")),
		balance("external-financing", models.BucketExternalFinancing, func(in Input) bool {
			return in.Code >= 1400 && containsAny(in.Lower, "lening", "financiering", "hypotheek", "krediet", "lease", "loan", "financing", "mortgage", "credit")
		}),
		balance("range-assets", models.BucketAssets, func(in Input) bool {
			return in.Code < 500 || (in.Code >= 1000 && in.Code < 1400)
		}),
		balance("range-equity", models.BucketEquity, func(in Input) bool {
			return in.Code >= 500 && in.Code < 1000
		}),
		balance("range-liabilities", models.BucketLiabilities, func(Input) bool { return true }),

		pnl("financial", models.BucketNonOperationalExpenses, keywords(
			"bankkosten", "kosten bank", "bank charges", "rentelasten", "rente", "interest",
			"belasting", "tax", "vpb", "vennootschap", "btw")),
		pnl("depreciation", models.BucketDepreciation, keywords("afschrijving", "amorti", "afschr", "depreciation")),
		pnl("revenue-range", models.BucketSales, func(in Input) bool { return in.Code >= 8000 }),
		pnl("cogs-range", models.BucketCOGS, func(in Input) bool { return in.Code >= 7000 }),
		pnl("recurring-costs", models.BucketRecurringCosts, keywords("huur", "rent ", "lease", "software")),
		pnl("labor", models.BucketLabor, keywords(
			"salaris", "salary", "loon", "wage", "personeel", "staff", "pensioen", "pension",
			"lunch", "reis", "travel", "verzuim", "sick", "wbso", "premie", "zorg", "verblijf",
			"vakantie", "opleiding", "training", "kantine", "vergoeding", "recruitment", "werving", "bijdrage")),
		pnl("other-expenses", models.BucketOtherExpenses, func(Input) bool { return true }),
	}
}
