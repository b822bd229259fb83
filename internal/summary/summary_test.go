package summary

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"fjacquet/gl-analyzer/internal/logging"
	"fjacquet/gl-analyzer/internal/models"

	"github.com/google/generative-ai-go/genai"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGenerator struct {
	resp     *genai.GenerateContentResponse
	err      error
	prompt   string
	deadline bool
}

func (f *fakeGenerator) GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error) {
	_, f.deadline = ctx.Deadline()
	for _, p := range parts {
		if t, ok := p.(genai.Text); ok {
			f.prompt += string(t)
		}
	}
	return f.resp, f.err
}

func textResponse(parts ...string) *genai.GenerateContentResponse {
	content := &genai.Content{}
	for _, p := range parts {
		content.Parts = append(content.Parts, genai.Text(p))
	}
	return &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{Content: content}}}
}

func sampleSnapshot() models.PeriodSnapshot {
	return models.PeriodSnapshot{
		Period:     "2024",
		TotalSales: decimal.NewFromInt(-120000),
		NetIncome:  decimal.NewFromInt(-15000),
		MonthCount: 12,
		ExpenseDistribution: []models.DistributionEntry{
			{Bucket: models.BucketLabor, Value: decimal.NewFromInt(60000)},
		},
	}
}

func TestGeminiSummarizer_Summarize(t *testing.T) {
	gen := &fakeGenerator{resp: textResponse("Goed jaar. ", "Let op personeelskosten.")}
	s := &GeminiSummarizer{model: gen, timeout: time.Second, logger: logging.Nop()}

	text, err := s.Summarize(context.Background(), sampleSnapshot(), "nl")
	require.NoError(t, err)
	assert.Equal(t, "Goed jaar. Let op personeelskosten.", text)
	assert.True(t, gen.deadline)
	assert.Contains(t, gen.prompt, "Dutch")
	assert.Contains(t, gen.prompt, "Total revenue: 120000.00")
}

func TestGeminiSummarizer_Errors(t *testing.T) {
	tests := []struct {
		name string
		gen  *fakeGenerator
	}{
		{"api error", &fakeGenerator{err: errors.New("quota")}},
		{"no candidates", &fakeGenerator{resp: &genai.GenerateContentResponse{}}},
		{"blank text", &fakeGenerator{resp: textResponse("  ")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &GeminiSummarizer{model: tt.gen, logger: logging.Nop()}
			_, err := s.Summarize(context.Background(), sampleSnapshot(), "en")
			assert.Error(t, err)
		})
	}
}

func TestNewGeminiSummarizer_RequiresKey(t *testing.T) {
	_, err := NewGeminiSummarizer(context.Background(), "", "gemini-2.0-flash", time.Second, nil)
	assert.Error(t, err)
}

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt(sampleSnapshot(), "en")
	assert.Contains(t, prompt, "English")
	assert.Contains(t, prompt, "results for 2024")
	assert.Contains(t, prompt, "Net income: 15000.00")
	assert.Contains(t, prompt, "Months with activity: 12")
	assert.Contains(t, prompt, "Revenue, profit and income figures are shown as positive amounts")
	assert.NotContains(t, prompt, "Credit amounts (revenue")
	assert.True(t, strings.Contains(prompt, "Expense distribution"))

	assert.Contains(t, BuildPrompt(models.PeriodSnapshot{}, "nl"), "all periods")
}

func TestNoop(t *testing.T) {
	text, err := Noop{}.Summarize(context.Background(), sampleSnapshot(), "nl")
	require.NoError(t, err)
	assert.Empty(t, text)
}
