package check

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"fjacquet/gl-analyzer/cmd/demo"
	"fjacquet/gl-analyzer/internal/checks"
	"fjacquet/gl-analyzer/internal/config"
	"fjacquet/gl-analyzer/internal/container"
	"fjacquet/gl-analyzer/internal/logging"
	"fjacquet/gl-analyzer/internal/store"

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

func TestRun_DefaultsToLatestYear(t *testing.T) {
	c, _, path := setup(t)
	var out bytes.Buffer
	require.NoError(t, Run(context.Background(), c, path, "", "json", "", &out))

	var got struct {
		Period       string                    `json:"period"`
		ComparedWith string                    `json:"comparedWith"`
		Depreciation *checks.DepreciationCheck `json:"depreciation"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, "2024", got.Period)
	assert.Equal(t, "2023", got.ComparedWith)
	require.NotNil(t, got.Depreciation)
	assert.True(t, got.Depreciation.Movement.Equal(got.Depreciation.BalanceB.Sub(got.Depreciation.BalanceA)))
}

func TestRun_NoPreviousYear(t *testing.T) {
	c, _, path := setup(t)
	var out bytes.Buffer
	err := Run(context.Background(), c, path, "2023", "json", "", &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2023")
}
