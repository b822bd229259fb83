package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"fjacquet/gl-analyzer/internal/config"
	"fjacquet/gl-analyzer/internal/logging"
	"fjacquet/gl-analyzer/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSession() Session {
	s := NewSession()
	s.Overrides["Kantoorartikelen"] = models.BucketLabor
	s.SortOrder[models.BucketSales] = []string{"Omzet laag", "Omzet hoog"}
	s.KPIAdjustments["ebitda"] = decimal.RequireFromString("1500.50")
	s.Goals = append(s.Goals,
		models.Goal{ID: "g1", Title: "Omzet", Current: decimal.NewFromInt(10), Target: decimal.NewFromInt(100)},
		models.Goal{ID: "g2", Title: "Klanten", Current: decimal.Zero, Target: decimal.NewFromInt(5)},
	)
	s.Materiality = models.MaterialitySettings{
		Benchmark:   models.BenchmarkAssets,
		Percentage:  decimal.RequireFromString("2.5"),
		RiskProfile: models.RiskHigh,
		Saved:       true,
	}
	return s
}

func assertSessionEqual(t *testing.T, want, got Session) {
	t.Helper()
	assert.Equal(t, want.Overrides, got.Overrides)
	assert.Equal(t, want.SortOrder, got.SortOrder)
	require.Len(t, got.KPIAdjustments, len(want.KPIAdjustments))
	for k, v := range want.KPIAdjustments {
		assert.True(t, v.Equal(got.KPIAdjustments[k]), "adjustment %s", k)
	}
	require.Len(t, got.Goals, len(want.Goals))
	for i := range want.Goals {
		assert.Equal(t, want.Goals[i].ID, got.Goals[i].ID)
		assert.Equal(t, want.Goals[i].Title, got.Goals[i].Title)
		assert.True(t, want.Goals[i].Target.Equal(got.Goals[i].Target))
		assert.True(t, want.Goals[i].Current.Equal(got.Goals[i].Current))
	}
	assert.Equal(t, want.Materiality.Benchmark, got.Materiality.Benchmark)
	assert.Equal(t, want.Materiality.RiskProfile, got.Materiality.RiskProfile)
	assert.True(t, want.Materiality.Percentage.Equal(got.Materiality.Percentage))
	assert.Equal(t, want.Materiality.Saved, got.Materiality.Saved)
}

func backends(t *testing.T) map[string]SessionStore {
	dir := t.TempDir()
	sqliteStore, err := NewSQLiteStore(filepath.Join(dir, "db", "session.db"), logging.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqliteStore.Close() })

	return map[string]SessionStore{
		BackendYAML:   NewYAMLStore(filepath.Join(dir, "state", "session.yaml"), logging.Nop()),
		BackendSQLite: sqliteStore,
		"mock":        &MockSessionStore{},
	}
}

func TestSessionStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			fresh, err := s.Load(ctx)
			require.NoError(t, err)
			assert.Empty(t, fresh.Overrides)
			assert.Empty(t, fresh.Goals)
			assert.Equal(t, models.BenchmarkRevenue, fresh.Materiality.Benchmark)

			want := sampleSession()
			require.NoError(t, s.Save(ctx, want))

			got, err := s.Load(ctx)
			require.NoError(t, err)
			assertSessionEqual(t, want, got)

			// Saving again replaces, it does not append.
			want.Goals = want.Goals[:1]
			delete(want.Overrides, "Kantoorartikelen")
			require.NoError(t, s.Save(ctx, want))
			got, err = s.Load(ctx)
			require.NoError(t, err)
			assertSessionEqual(t, want, got)

			require.NoError(t, s.Reset(ctx))
			got, err = s.Load(ctx)
			require.NoError(t, err)
			assert.Empty(t, got.Goals)
			assert.False(t, got.Materiality.Saved)
		})
	}
}

func TestYAMLStore_ResetMissingFile(t *testing.T) {
	s := NewYAMLStore(filepath.Join(t.TempDir(), "none.yaml"), nil)
	assert.NoError(t, s.Reset(context.Background()))
}

func TestYAMLStore_InvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.yaml")
	require.NoError(t, os.WriteFile(path, []byte("overrides: [unclosed"), 0600))

	_, err := NewYAMLStore(path, nil).Load(context.Background())
	assert.Error(t, err)
}

func TestYAMLStore_SaveLogs(t *testing.T) {
	logger := logging.NewMockLogger()
	s := NewYAMLStore(filepath.Join(t.TempDir(), "session.yaml"), logger)
	require.NoError(t, s.Save(context.Background(), NewSession()))
	assert.True(t, logger.HasEntry("INFO", "Saved session"))
}

func TestYAMLStore_WarnsOnOpenPermissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.yaml")
	require.NoError(t, os.WriteFile(path, []byte("overrides: {}\n"), 0600))
	require.NoError(t, os.Chmod(path, 0644))

	logger := logging.NewMockLogger()
	_, err := NewYAMLStore(path, logger).Load(context.Background())
	require.NoError(t, err)
	assert.True(t, logger.HasEntry("WARN", "Session file is readable by others"))
}

func TestSQLiteStore_ReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "session.db")

	first, err := NewSQLiteStore(path, nil)
	require.NoError(t, err)
	require.NoError(t, first.Save(ctx, sampleSession()))
	require.NoError(t, first.Close())

	second, err := NewSQLiteStore(path, nil)
	require.NoError(t, err)
	defer second.Close()

	got, err := second.Load(ctx)
	require.NoError(t, err)
	assertSessionEqual(t, sampleSession(), got)
}

func TestFindConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "session.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0600))

	found, err := FindConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, path, found)

	_, err = FindConfigFile(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSession_Overrides(t *testing.T) {
	s := NewSession()
	require.NoError(t, s.SetOverride("Huur", models.BucketRecurringCosts))
	assert.Equal(t, models.BucketRecurringCosts, s.Overrides["Huur"])

	assert.Error(t, s.SetOverride("Huur", models.BucketID("nope")))

	s.ClearOverride("Huur")
	assert.Empty(t, s.Overrides)
}

func TestNew(t *testing.T) {
	dir := t.TempDir()

	s, err := New(config.StoreConfig{Backend: BackendYAML, Path: filepath.Join(dir, "s.yaml")}, nil)
	require.NoError(t, err)
	assert.IsType(t, &YAMLStore{}, s)

	s, err = New(config.StoreConfig{Backend: BackendSQLite, Path: filepath.Join(dir, "s.db")}, nil)
	require.NoError(t, err)
	assert.IsType(t, &SQLiteStore{}, s)
	require.NoError(t, s.Close())

	_, err = New(config.StoreConfig{Backend: "redis"}, nil)
	assert.Error(t, err)
}

func TestMockSessionStore_Isolation(t *testing.T) {
	ctx := context.Background()
	m := &MockSessionStore{}
	s := sampleSession()
	require.NoError(t, m.Save(ctx, s))

	s.Overrides["Extra"] = models.BucketSales
	got, err := m.Load(ctx)
	require.NoError(t, err)
	_, ok := got.Overrides["Extra"]
	assert.False(t, ok)
	assert.Equal(t, 1, m.SaveCalls)
}
