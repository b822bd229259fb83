// Package demo generates a deterministic two-year demo ledger that exercises
// every report bucket.
package demo

import (
	"fmt"
	"math/rand/v2"

	"fjacquet/gl-analyzer/internal/models"

	"github.com/shopspring/decimal"
)

type nature int

const (
	debitNature nature = iota
	creditNature
)

type group struct {
	nl, en   []string
	min, max int64
	prefix   string
	nature   nature
}

var groups = []group{
	{[]string{"Verkoop Eten", "Verkoop Drank", "Wijn", "Bier", "Abonnementen Dienst", "Service Abonnement"},
		[]string{"Food Sales", "Beverage Sales", "Wine", "Beer", "Subscription Service", "Recurring Plan"},
		15000, 35000, "80", creditNature},
	{[]string{"Inkoop Eten", "Inkoop Drank"}, []string{"Food Cost", "Beverage Cost"}, 5000, 10000, "70", debitNature},
	{[]string{"Huur", "Gas/Water/Licht", "Marketing", "Onderhoud", "Inkoopkortingen (algemeen)"},
		[]string{"Rent", "Utilities", "Marketing", "Repairs & Maintenance", "Purchase Discounts"},
		1000, 3000, "40", debitNature},
	{[]string{"Brutoloon", "Pensioenpremie"}, []string{"Gross Salary", "Pension Contributions"}, 3000, 8000, "40", debitNature},
	{[]string{"Software Abonnement", "Lease Auto", "Huur Pand"},
		[]string{"Software Subscription", "Car Lease", "Rent Building"}, 500, 2000, "41", debitNature},
	{[]string{"Afschrijving Inventaris", "Afschrijving Verbouwing"},
		[]string{"Depreciation Fixtures", "Depreciation Improvements"}, 500, 1500, "48", debitNature},
	{[]string{"Rentelasten Bank", "Bankkosten", "Rente R/C", "Vennootschapsbelasting"},
		[]string{"Interest Expense", "Bank Charges", "Interest R/C", "Corporate Tax"}, 500, 2000, "90", debitNature},

	{[]string{"Inventaris Keuken", "Vervoermiddelen"}, []string{"Kitchen Fixtures", "Transport Vehicles"}, 20000, 50000, "02", debitNature},
	{[]string{"Voorraad Grondstoffen", "Onderhanden Werk Projecten"},
		[]string{"Raw Materials Stock", "Work in Progress Projects"}, 5000, 20000, "03", debitNature},
	{[]string{"Afschrijving Inventaris Keuken", "Afschrijving Vervoermiddelen"},
		[]string{"Depreciation Kitchen Fixtures", "Depreciation Transport Vehicles"}, 5000, 15000, "02", creditNature},
	{[]string{"Computers"}, []string{"Computers"}, 5000, 10000, "01", debitNature},
	{[]string{"Debiteuren", "Te ontvangen posten"}, []string{"Accounts Receivable", "Receivables"}, 2000, 15000, "13", debitNature},
	{[]string{"Bankgarantie", "Lunchpas", "Kas", "Credietcard", "NL66INGB0001234567"},
		[]string{"Bank Guarantee", "Lunch Pass", "Cash at bank", "Credit Card", "NL66INGB0001234567"}, 1000, 15000, "11", debitNature},

	{[]string{"Lening Rabobank", "Financial Lease Auto", "Hypotheek"},
		[]string{"Loan Rabobank", "Financial Lease Car", "Mortgage"}, 5000, 30000, "16", creditNature},
	{[]string{"Overige Schulden"}, []string{"Other Liabilities"}, 2000, 20000, "16", creditNature},
	{[]string{"Crediteuren", "Te betalen kosten"}, []string{"Accounts Payable", "Payables"}, 1000, 10000, "16", creditNature},
	{[]string{"Netto salaris personeel", "Af te dragen BTW", "Af te dragen loonheffing"},
		[]string{"Net Salary", "VAT Payable", "Wage Tax Payable"}, 2000, 8000, "15", creditNature},
	{[]string{"R/C Pedveg", "RC Holding"}, []string{"R/C Pedveg", "RC Holding"}, 1000, 5000, "17", creditNature},
	{[]string{"Aandelenkapitaal", "Winstreserve", "Onverwerkt Resultaat"},
		[]string{"Share Capital", "Retained Earnings", "Undistributed Result"}, 10000, 100000, "05", creditNature},

	{[]string{"Resultaat", "Resultaat geselecteerde perioden: 1 - 12"},
		[]string{"Result", "Result selected periods: 1 - 12"}, 5000, 5000, "99", debitNature},
}

var twelve = decimal.NewFromInt(12)

// Options configure Generate.
type Options struct {
	// Year is the most recent year; the year before it is generated as well.
	Year     int
	Language string
	Seed     uint64
}

// Generate returns a demo ledger. The same options always give the same records.
// Every item gets one record per month, on the 15th, each holding a twelfth
// of the yearly amount.
func Generate(opts Options) []models.TransactionRecord {
	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15))

	var records []models.TransactionRecord
	for offset := 0; offset < 2; offset++ {
		year := opts.Year - offset
		for _, g := range groups {
			names := g.nl
			if opts.Language == "en" {
				names = g.en
			}
			for _, name := range names {
				records = append(records, item(rng, g, name, year, len(records))...)
			}
		}
	}
	return records
}

func item(rng *rand.Rand, g group, name string, year, seq int) []models.TransactionRecord {
	yearly := g.min
	if g.max > g.min {
		yearly += rng.Int64N(g.max - g.min)
	}
	monthly := decimal.NewFromInt(yearly).Div(twelve).Round(2)

	out := make([]models.TransactionRecord, 0, 12)
	for m := 1; m <= 12; m++ {
		rec := models.TransactionRecord{
			ID:          fmt.Sprintf("demo-%d", seq+m-1),
			Date:        fmt.Sprintf("%d-%02d-15", year, m),
			AccountCode: fmt.Sprintf("%s%02d", g.prefix, rng.IntN(99)),
			Description: name,
			Debit:       decimal.Zero,
			Credit:      decimal.Zero,
		}
		if g.nature == creditNature {
			rec.Credit = monthly
		} else {
			rec.Debit = monthly
		}
		out = append(out, rec)
	}
	return out
}
