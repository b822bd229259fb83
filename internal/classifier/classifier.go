// Package classifier assigns every ledger record to exactly one report bucket.
//
// Classification is a chain: a manual override on the exact description wins,
// then the rules of DefaultRules are tried in order and the first match decides.
package classifier

import (
	"fjacquet/gl-analyzer/internal/logging"
	"fjacquet/gl-analyzer/internal/models"

	"github.com/shopspring/decimal"
)

// OverrideRuleName is reported when a manual override decided the bucket.
const OverrideRuleName = "override"

// Classified is a record together with its bucket and the rule that chose it.
type Classified struct {
	Record models.TransactionRecord
	Bucket models.BucketID
	Rule   string
}

// Classifier runs the ordered rule chain.
type Classifier struct {
	rules  []Rule
	logger logging.Logger
}

// New creates a classifier with the default rule chain.
func New(logger logging.Logger) *Classifier {
	return NewWithRules(DefaultRules(), logger)
}

// NewWithRules creates a classifier with a custom rule chain. The chain must
// end with a rule that always matches.
func NewWithRules(rules []Rule, logger logging.Logger) *Classifier {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Classifier{rules: rules, logger: logger}
}

// Classify returns the bucket of a record and the name of the deciding rule.
func (c *Classifier) Classify(rec models.TransactionRecord, overrides map[string]models.BucketID) (models.BucketID, string) {
	if bucket, ok := overrides[rec.Description]; ok && bucket.Valid() {
		c.logDecision(rec, bucket, OverrideRuleName)
		return bucket, OverrideRuleName
	}

	in := NewInput(rec)
	for _, rule := range c.rules {
		if rule.Match(in) {
			c.logDecision(rec, rule.Bucket, rule.Name)
			return rule.Bucket, rule.Name
		}
	}

	// Unreachable with DefaultRules, which ends in a catch-all.
	return models.BucketOtherExpenses, "fallback"
}

// ClassifyAll classifies every record and sums the corporate tax lines.
// No record is dropped.
func (c *Classifier) ClassifyAll(records []models.TransactionRecord, overrides map[string]models.BucketID) ([]Classified, decimal.Decimal) {
	out := make([]Classified, 0, len(records))
	tax := decimal.Zero
	for _, rec := range records {
		bucket, rule := c.Classify(rec, overrides)
		out = append(out, Classified{Record: rec, Bucket: bucket, Rule: rule})
		if IsCorporateTax(NewInput(rec).Lower) {
			tax = tax.Add(rec.NetAmount())
		}
	}
	c.logger.Debug("Classified records", logging.F(logging.FieldCount, len(out)))
	return out, tax
}

func (c *Classifier) logDecision(rec models.TransactionRecord, bucket models.BucketID, rule string) {
	c.logger.WithFields(
		logging.F(logging.FieldRule, rule),
		logging.F(logging.FieldBucket, string(bucket)),
		logging.F(logging.FieldDescription, rec.Description),
		logging.F(logging.FieldLedgerCode, rec.AccountCode),
	).Debug("Record classified")
}
