// Package summary produces a short narrative of a finished period snapshot
// with a generative language model.
package summary

import (
	"context"
	"fmt"
	"strings"
	"time"

	"fjacquet/gl-analyzer/internal/logging"
	"fjacquet/gl-analyzer/internal/models"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Summarizer turns a snapshot into prose.
type Summarizer interface {
	Summarize(ctx context.Context, snap models.PeriodSnapshot, lang string) (string, error)
}

// Noop is used when the AI summary is disabled.
type Noop struct{}

// Summarize returns an empty summary.
func (Noop) Summarize(context.Context, models.PeriodSnapshot, string) (string, error) {
	return "", nil
}

// generator is the part of *genai.GenerativeModel we use.
type generator interface {
	GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

// GeminiSummarizer calls the Gemini API.
type GeminiSummarizer struct {
	client  *genai.Client
	model   generator
	timeout time.Duration
	logger  logging.Logger
}

// NewGeminiSummarizer creates a client for the given model.
func NewGeminiSummarizer(ctx context.Context, apiKey, model string, timeout time.Duration, logger logging.Logger) (*GeminiSummarizer, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable not set")
	}
	if logger == nil {
		logger = logging.Nop()
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiSummarizer{
		client:  client,
		model:   client.GenerativeModel(model),
		timeout: timeout,
		logger:  logger,
	}, nil
}

// Close releases the client.
func (g *GeminiSummarizer) Close() error {
	if g.client == nil {
		return nil
	}
	return g.client.Close()
}

// Summarize asks the model for a narrative of snap.
func (g *GeminiSummarizer) Summarize(ctx context.Context, snap models.PeriodSnapshot, lang string) (string, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	g.logger.Debug("Requesting AI summary",
		logging.F(logging.FieldPeriod, snap.Period),
		logging.F("language", lang))

	resp, err := g.model.GenerateContent(ctx, genai.Text(BuildPrompt(snap, lang)))
	if err != nil {
		return "", fmt.Errorf("Gemini API error: %w", err)
	}

	text := responseText(resp)
	if text == "" {
		return "", fmt.Errorf("no response from Gemini API")
	}
	return text, nil
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			sb.WriteString(string(t))
		}
	}
	return strings.TrimSpace(sb.String())
}

// BuildPrompt renders the key figures of snap into a prompt.
func BuildPrompt(snap models.PeriodSnapshot, lang string) string {
	language := "Dutch"
	if lang == "en" {
		language = "English"
	}

	period := snap.Period
	if period == "" {
		period = "all periods"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "You are a financial controller. Write a short summary in %s (at most 150 words) of the results for %s.\n", language, period)
	sb.WriteString("Figures are in EUR. Revenue, profit and income figures are shown as positive amounts. Liabilities and equity keep their credit sign and are negative.\n\n")

	figures := []struct {
		label string
		value string
	}{
		{"Total revenue", snap.TotalSales.Neg().StringFixed(2)},
		{"Gross profit", snap.GrossProfit.Neg().StringFixed(2)},
		{"Operating income", snap.OperatingIncome.Neg().StringFixed(2)},
		{"Net income", snap.NetIncome.Neg().StringFixed(2)},
		{"Total expenses", snap.TotalExpenses.StringFixed(2)},
		{"Total assets", snap.TotalAssets.StringFixed(2)},
		{"Total liabilities", snap.TotalLiabilities.StringFixed(2)},
		{"Total equity", snap.TotalEquity.StringFixed(2)},
		{"Corporate tax", snap.TaxAmount.StringFixed(2)},
		{"Months with activity", fmt.Sprintf("%d", snap.MonthCount)},
	}
	for _, f := range figures {
		fmt.Fprintf(&sb, "- %s: %s\n", f.label, f.value)
	}

	if len(snap.ExpenseDistribution) > 0 {
		sb.WriteString("\nExpense distribution:\n")
		for _, e := range snap.ExpenseDistribution {
			fmt.Fprintf(&sb, "- %s: %s\n", e.Bucket.Title("en"), e.Value.StringFixed(2))
		}
	}

	sb.WriteString("\nMention the main cost drivers and one concrete point of attention. Do not invent figures.")
	return sb.String()
}
