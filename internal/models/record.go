// Package models defines the core data structures of the ledger analysis engine.
package models

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// TransactionRecord is one general-ledger line as exported by the bookkeeping system.
// Debit and Credit are non-negative; the date is an ISO YYYY-MM-DD string and may be empty.
type TransactionRecord struct {
	ID          string          `json:"id" yaml:"id" csv:"id"`
	Date        string          `json:"date" yaml:"date" csv:"date"`
	AccountCode string          `json:"accountCode" yaml:"account_code" csv:"account_code"`
	Description string          `json:"description" yaml:"description" csv:"description"`
	Debit       decimal.Decimal `json:"debit" yaml:"debit" csv:"debit"`
	Credit      decimal.Decimal `json:"credit" yaml:"credit" csv:"credit"`
}

// NetAmount returns debit minus credit. Positive values are debit-nature
// (costs, assets), negative values credit-nature (revenue, liabilities, equity).
func (r TransactionRecord) NetAmount() decimal.Decimal {
	return r.Debit.Sub(r.Credit)
}

// LedgerCode parses the numeric part of the account code. Codes without
// digits, or too long to parse, yield 0, the unknown-code sentinel.
func (r TransactionRecord) LedgerCode() int {
	digits := DigitsOnly(r.AccountCode)
	if digits == "" {
		return 0
	}
	code, err := strconv.Atoi(digits)
	if err != nil {
		return 0
	}
	return code
}

// MonthKey returns the YYYY-MM prefix of the date, or "" when the date is too short.
func (r TransactionRecord) MonthKey() string {
	if len(r.Date) < 7 {
		return ""
	}
	return r.Date[:7]
}

// Year returns the YYYY prefix of the date, or "" when absent.
func (r TransactionRecord) Year() string {
	if len(r.Date) < 4 {
		return ""
	}
	return r.Date[:4]
}

// DigitsOnly strips every non-digit rune from s.
func DigitsOnly(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, c := range s {
		if c >= '0' && c <= '9' {
			b.WriteRune(c)
		}
	}
	return b.String()
}
