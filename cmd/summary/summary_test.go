package summary

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"

	"fjacquet/gl-analyzer/cmd/demo"
	"fjacquet/gl-analyzer/internal/config"
	"fjacquet/gl-analyzer/internal/container"
	"fjacquet/gl-analyzer/internal/logging"
	"fjacquet/gl-analyzer/internal/models"
	"fjacquet/gl-analyzer/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSummarizer struct {
	text string
	err  error
	lang string
}

func (f *fakeSummarizer) Summarize(_ context.Context, _ models.PeriodSnapshot, lang string) (string, error) {
	f.lang = lang
	return f.text, f.err
}

func setup(t *testing.T, enabled bool, s *fakeSummarizer) (*container.Container, *logging.MockLogger, string) {
	cfg := config.Default()
	cfg.AI.Enabled = enabled
	logger := logging.NewMockLogger()
	c, err := container.NewContainer(cfg,
		container.WithLogger(logger), container.WithStore(&store.MockSessionStore{}), container.WithSummarizer(s))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "ledger.csv")
	require.NoError(t, demo.Run(c, "2024", "nl", 1, path))
	return c, logger, path
}

func TestRun(t *testing.T) {
	fake := &fakeSummarizer{text: "Een goed jaar."}
	c, _, path := setup(t, true, fake)

	var out bytes.Buffer
	require.NoError(t, Run(context.Background(), c, path, "2024", "text", "", &out))
	assert.Equal(t, "Een goed jaar.\n", out.String())
	assert.Equal(t, "nl", fake.lang)

	out.Reset()
	require.NoError(t, Run(context.Background(), c, path, "2024", "json", "", &out))
	assert.Contains(t, out.String(), "\"summary\": \"Een goed jaar.\"")
}

func TestRun_FailureIsNotFatal(t *testing.T) {
	c, logger, path := setup(t, true, &fakeSummarizer{err: errors.New("quota exceeded")})

	var out bytes.Buffer
	require.NoError(t, Run(context.Background(), c, path, "2024", "text", "", &out))
	assert.Equal(t, "\n", out.String())
	assert.True(t, logger.HasEntry("WARN", "AI summary failed"))
}

func TestRun_Disabled(t *testing.T) {
	c, _, path := setup(t, false, &fakeSummarizer{})
	var out bytes.Buffer
	assert.Error(t, Run(context.Background(), c, path, "2024", "text", "", &out))
}
