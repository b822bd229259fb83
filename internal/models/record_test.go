package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactionRecord_LedgerCode(t *testing.T) {
	tests := []struct {
		code string
		want int
	}{
		{"8000", 8000},
		{"0210", 210},
		{"GL-1400a", 1400},
		{"", 0},
		{"abc", 0},
		{"99999999999999999999999", 0},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, TransactionRecord{AccountCode: tt.code}.LedgerCode())
		})
	}
}

func TestTransactionRecord_DateKeys(t *testing.T) {
	rec := TransactionRecord{Date: "2024-05-31"}
	assert.Equal(t, "2024-05", rec.MonthKey())
	assert.Equal(t, "2024", rec.Year())

	empty := TransactionRecord{}
	assert.Equal(t, "", empty.MonthKey())
	assert.Equal(t, "", empty.Year())
}

func TestBucketID(t *testing.T) {
	assert.True(t, BucketLiquidAssets.IsBalanceSheet())
	assert.False(t, BucketSales.IsBalanceSheet())
	assert.Len(t, AllBuckets(), 21)
	assert.Equal(t, "Liquid assets", BucketLiquidAssets.Title("en"))
	assert.Equal(t, "Liquide middelen", BucketLiquidAssets.Title("nl"))

	id, err := ParseBucketID("equity")
	require.NoError(t, err)
	assert.Equal(t, BucketEquity, id)

	_, err = ParseBucketID("nope")
	assert.Error(t, err)
}

func TestGoal_Progress(t *testing.T) {
	g := NewGoal("Omzet Q4", decimal.NewFromInt(1000))
	assert.NotEmpty(t, g.ID)
	assert.True(t, g.Progress().IsZero())

	g.Current = decimal.NewFromInt(250)
	assert.True(t, g.Progress().Equal(decimal.RequireFromString("0.25")))

	g.Target = decimal.Zero
	assert.True(t, g.Progress().IsZero())
}

func TestPeriodSnapshot_MissingBucket(t *testing.T) {
	var s PeriodSnapshot
	b := s.Bucket(BucketSales)
	assert.Equal(t, BucketSales, b.ID)
	assert.True(t, s.Total(BucketSales).IsZero())
}
