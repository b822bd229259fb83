package kpi

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"fjacquet/gl-analyzer/cmd/demo"
	"fjacquet/gl-analyzer/internal/config"
	"fjacquet/gl-analyzer/internal/container"
	"fjacquet/gl-analyzer/internal/kpi"
	"fjacquet/gl-analyzer/internal/logging"
	"fjacquet/gl-analyzer/internal/models"
	"fjacquet/gl-analyzer/internal/store"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (*container.Container, *store.MockSessionStore, string) {
	t.Helper()
	mock := &store.MockSessionStore{}
	c, err := container.NewContainer(config.Default(),
		container.WithLogger(logging.Nop()), container.WithStore(mock))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "ledger.csv")
	require.NoError(t, demo.Run(c, "2024", "nl", 7, path))
	return c, mock, path
}

func TestRun(t *testing.T) {
	c, mock, path := setup(t)
	sess := store.NewSession()
	sess.Goals = []models.Goal{{ID: "g1", Title: "Klanten", Current: decimal.NewFromInt(5), Target: decimal.NewFromInt(10)}}
	mock.Session = &sess

	var out bytes.Buffer
	require.NoError(t, Run(context.Background(), c, path, "2024", "json", "", &out))

	var got struct {
		KPIs  []models.KPIItem `json:"kpis"`
		Goals []models.Goal    `json:"goals"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	require.Len(t, got.KPIs, 5)
	assert.Equal(t, kpi.Liquidity, got.KPIs[0].ID)
	assert.Equal(t, kpi.RecurringCost, got.KPIs[4].ID)
	require.Len(t, got.Goals, 1)
	assert.Equal(t, "Klanten", got.Goals[0].Title)
}

func TestAdjust(t *testing.T) {
	c, mock, _ := setup(t)
	ctx := context.Background()

	require.NoError(t, Adjust(ctx, c, kpi.AdjEBITDA, "2500"))
	require.NotNil(t, mock.Session)
	assert.True(t, mock.Session.KPIAdjustments[kpi.AdjEBITDA].Equal(decimal.NewFromInt(2500)))

	require.NoError(t, Adjust(ctx, c, kpi.AdjEBITDA, "0"))
	assert.NotContains(t, mock.Session.KPIAdjustments, kpi.AdjEBITDA)

	assert.Error(t, Adjust(ctx, c, "bogus", "1"))
	assert.Error(t, Adjust(ctx, c, kpi.AdjAR, "abc"))
}

func TestAdjust_ChangesKPI(t *testing.T) {
	c, _, path := setup(t)
	ctx := context.Background()

	ebitda := func() decimal.Decimal {
		var out bytes.Buffer
		require.NoError(t, Run(ctx, c, path, "2024", "json", "", &out))
		var got struct {
			KPIs []models.KPIItem `json:"kpis"`
		}
		require.NoError(t, json.Unmarshal(out.Bytes(), &got))
		return got.KPIs[2].Value
	}

	before := ebitda()
	require.NoError(t, Adjust(ctx, c, kpi.AdjEBITDA, "1000"))
	assert.True(t, ebitda().Sub(before).Equal(decimal.NewFromInt(1000)))
}
