package checks

import (
	"strings"

	"fjacquet/gl-analyzer/internal/classifier"
	"fjacquet/gl-analyzer/internal/models"
)

// FlagReason explains why an item needs review.
type FlagReason string

const (
	ReasonReceivablePayable FlagReason = "receivable-payable"
	ReasonLiquidInLiability FlagReason = "liquid-in-liabilities"
	ReasonCurrentInAssets   FlagReason = "current-account-in-assets"
)

// Flag marks one grouped item for manual review.
type Flag struct {
	Bucket models.BucketID `json:"bucket" yaml:"bucket"`
	Item   string          `json:"item" yaml:"item"`
	Reason FlagReason      `json:"reason" yaml:"reason"`
}

var liabilitySide = map[models.BucketID]bool{
	models.BucketLiabilities:       true,
	models.BucketEquity:            true,
	models.BucketCurrentAccounts:   true,
	models.BucketDirectObligations: true,
	models.BucketExternalFinancing: true,
}

var assetSide = map[models.BucketID]bool{
	models.BucketAssets:               true,
	models.BucketLiquidAssets:         true,
	models.BucketInvestments:          true,
	models.BucketProductionInProgress: true,
}

func itemInput(name string) classifier.Input {
	return classifier.Input{Description: name, Lower: strings.ToLower(name)}
}

// FlagItems lists the balance sheet items that are probably misplaced, in
// balance sheet order.
func FlagItems(snap models.PeriodSnapshot) []Flag {
	var flags []Flag
	for _, id := range models.BalanceSheetBuckets {
		for _, item := range snap.Bucket(id).Items {
			if reason, ok := flagReason(id, item.Name); ok {
				flags = append(flags, Flag{Bucket: id, Item: item.Name, Reason: reason})
			}
		}
	}
	return flags
}

func flagReason(id models.BucketID, name string) (FlagReason, bool) {
	if id == models.BucketAccountsReceivable || id == models.BucketAccountsPayable {
		return ReasonReceivablePayable, true
	}
	in := itemInput(name)
	if liabilitySide[id] && classifier.IsLiquid(in) {
		return ReasonLiquidInLiability, true
	}
	if assetSide[id] && classifier.IsCurrentAccount(in) {
		return ReasonCurrentInAssets, true
	}
	return "", false
}
