package models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RecordBuilder provides a fluent API for constructing ledger records.
// The first error encountered is sticky and returned by Build.
type RecordBuilder struct {
	rec TransactionRecord
	err error
}

// NewRecordBuilder creates a builder with zero amounts.
func NewRecordBuilder() *RecordBuilder {
	return &RecordBuilder{
		rec: TransactionRecord{
			Debit:  decimal.Zero,
			Credit: decimal.Zero,
		},
	}
}

// WithID sets the record id. Without one, Build assigns a random UUID.
func (b *RecordBuilder) WithID(id string) *RecordBuilder {
	if b.err != nil {
		return b
	}
	b.rec.ID = id
	return b
}

// WithDate sets the ISO date (YYYY-MM-DD). An empty date is allowed.
func (b *RecordBuilder) WithDate(date string) *RecordBuilder {
	if b.err != nil {
		return b
	}
	date = strings.TrimSpace(date)
	if date != "" && len(date) < 7 {
		b.err = fmt.Errorf("date %q is not in YYYY-MM-DD form", date)
		return b
	}
	b.rec.Date = date
	return b
}

// WithAccountCode sets the ledger account code.
func (b *RecordBuilder) WithAccountCode(code string) *RecordBuilder {
	if b.err != nil {
		return b
	}
	b.rec.AccountCode = strings.TrimSpace(code)
	return b
}

// WithDescription sets the account description.
func (b *RecordBuilder) WithDescription(desc string) *RecordBuilder {
	if b.err != nil {
		return b
	}
	b.rec.Description = strings.TrimSpace(desc)
	return b
}

// WithDebit sets the debit side. Negative values are moved to the credit side.
func (b *RecordBuilder) WithDebit(amount decimal.Decimal) *RecordBuilder {
	if b.err != nil {
		return b
	}
	if amount.IsNegative() {
		b.rec.Credit = b.rec.Credit.Add(amount.Abs())
		return b
	}
	b.rec.Debit = b.rec.Debit.Add(amount)
	return b
}

// WithCredit sets the credit side. Negative values are moved to the debit side.
func (b *RecordBuilder) WithCredit(amount decimal.Decimal) *RecordBuilder {
	if b.err != nil {
		return b
	}
	if amount.IsNegative() {
		b.rec.Debit = b.rec.Debit.Add(amount.Abs())
		return b
	}
	b.rec.Credit = b.rec.Credit.Add(amount)
	return b
}

// WithSignedAmount books a single signed amount: positive on debit, negative on credit.
func (b *RecordBuilder) WithSignedAmount(amount decimal.Decimal) *RecordBuilder {
	return b.WithDebit(amount)
}

// Build validates and returns the record.
func (b *RecordBuilder) Build() (TransactionRecord, error) {
	if b.err != nil {
		return TransactionRecord{}, b.err
	}
	if b.rec.Description == "" && b.rec.AccountCode == "" {
		return TransactionRecord{}, errors.New("record needs a description or an account code")
	}
	if b.rec.ID == "" {
		b.rec.ID = uuid.NewString()
	}
	return b.rec, nil
}
