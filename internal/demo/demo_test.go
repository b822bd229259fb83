package demo

import (
	"testing"

	"fjacquet/gl-analyzer/internal/aggregator"
	"fjacquet/gl-analyzer/internal/classifier"
	"fjacquet/gl-analyzer/internal/logging"
	"fjacquet/gl-analyzer/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_Deterministic(t *testing.T) {
	opts := Options{Year: 2024, Language: "nl", Seed: 42}
	assert.Equal(t, Generate(opts), Generate(opts))

	other := Generate(Options{Year: 2024, Language: "nl", Seed: 43})
	assert.NotEqual(t, Generate(opts), other)
}

func TestGenerate_Shape(t *testing.T) {
	records := Generate(Options{Year: 2024, Seed: 1})

	items := 0
	for _, g := range groups {
		items += len(g.nl)
	}
	require.Len(t, records, items*12*2)

	ids := make(map[string]struct{}, len(records))
	for _, r := range records {
		ids[r.ID] = struct{}{}
		assert.True(t, r.Debit.IsZero() != r.Credit.IsZero(), "one side per record: %+v", r)
		assert.Len(t, r.AccountCode, 4)
	}
	assert.Len(t, ids, len(records), "ids are unique")

	assert.Equal(t, []string{"2024", "2023"}, aggregator.AvailableYears(records))
}

func TestGenerate_FillsBuckets(t *testing.T) {
	records := Generate(Options{Year: 2024, Language: "nl", Seed: 7})
	agg := aggregator.New(classifier.New(logging.Nop()), logging.Nop())
	snap := agg.ComputeSnapshot(records, aggregator.Options{Year: "2024"})

	for _, id := range models.AllBuckets() {
		assert.NotEmpty(t, snap.Bucket(id).Items, "bucket %s", id)
	}
	assert.Equal(t, 12, snap.MonthCount)
	assert.True(t, snap.TaxAmount.IsPositive())
}

func TestGenerate_English(t *testing.T) {
	records := Generate(Options{Year: 2024, Language: "en", Seed: 1})
	assert.Equal(t, "Food Sales", records[0].Description)
}
