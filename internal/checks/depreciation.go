// Package checks holds the internal consistency checks run on finished
// snapshots: depreciation reconciliation, source-total validation and
// misplacement flags.
package checks

import (
	"fjacquet/gl-analyzer/internal/models"

	"github.com/shopspring/decimal"
)

// DepreciationTolerance is the largest difference still reported as a match.
var DepreciationTolerance = decimal.NewFromInt(5)

// DepreciationCheck compares the movement of accumulated depreciation on the
// balance sheet with the depreciation expense booked in the later period.
type DepreciationCheck struct {
	BalanceA        decimal.Decimal `json:"balanceA" yaml:"balance_a"`
	BalanceB        decimal.Decimal `json:"balanceB" yaml:"balance_b"`
	Movement        decimal.Decimal `json:"movement" yaml:"movement"`
	PnLDepreciation decimal.Decimal `json:"pnlDepreciation" yaml:"pnl_depreciation"`
	Difference      decimal.Decimal `json:"difference" yaml:"difference"`
	Match           bool            `json:"match" yaml:"match"`
}

// ReconcileDepreciation checks period b against the earlier period a.
func ReconcileDepreciation(a, b models.PeriodSnapshot) DepreciationCheck {
	balA := a.Total(models.BucketAssetDepreciation).Abs()
	balB := b.Total(models.BucketAssetDepreciation).Abs()
	movement := balB.Sub(balA)
	pnl := b.Total(models.BucketDepreciation)
	diff := movement.Sub(pnl).Abs()

	return DepreciationCheck{
		BalanceA:        balA,
		BalanceB:        balB,
		Movement:        movement,
		PnLDepreciation: pnl,
		Difference:      diff,
		Match:           diff.LessThan(DepreciationTolerance),
	}
}
