// Package container wires the application's dependencies together.
package container

import (
	"context"
	"fmt"
	"time"

	"fjacquet/gl-analyzer/internal/aggregator"
	"fjacquet/gl-analyzer/internal/batch"
	"fjacquet/gl-analyzer/internal/classifier"
	"fjacquet/gl-analyzer/internal/config"
	"fjacquet/gl-analyzer/internal/kpi"
	"fjacquet/gl-analyzer/internal/ledgerparser"
	"fjacquet/gl-analyzer/internal/logging"
	"fjacquet/gl-analyzer/internal/models"
	"fjacquet/gl-analyzer/internal/report"
	"fjacquet/gl-analyzer/internal/store"
	"fjacquet/gl-analyzer/internal/summary"

	"github.com/shopspring/decimal"
)

// Container holds all application dependencies. It is immutable after creation.
type Container struct {
	logger     logging.Logger
	config     *config.Config
	classifier *classifier.Classifier
	aggregator *aggregator.Aggregator
	parser     *ledgerparser.Parser
	kpi        *kpi.Engine
	report     *report.Generator
	store      store.SessionStore
	summarizer summary.Summarizer
	batch      *batch.Analyzer
}

// Option overrides a dependency, mainly for tests.
type Option func(*Container)

// WithLogger replaces the logger built from the configuration.
func WithLogger(l logging.Logger) Option {
	return func(c *Container) { c.logger = l }
}

// WithStore replaces the configured session store.
func WithStore(s store.SessionStore) Option {
	return func(c *Container) { c.store = s }
}

// WithSummarizer replaces the configured summarizer.
func WithSummarizer(s summary.Summarizer) Option {
	return func(c *Container) { c.summarizer = s }
}

// NewContainer creates and wires all application dependencies.
func NewContainer(cfg *config.Config, opts ...Option) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}

	c := &Container{config: cfg}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format)
	}

	delimiter := ','
	if cfg.CSV.Delimiter != "" {
		delimiter = rune(cfg.CSV.Delimiter[0])
	}

	c.classifier = classifier.New(c.logger)
	c.aggregator = aggregator.New(c.classifier, c.logger)
	c.parser = ledgerparser.New(c.logger, delimiter)
	c.kpi = kpi.NewEngine(c.logger, cfg.Analysis.Language)
	c.report = report.NewGenerator(c.logger)
	c.batch = batch.NewAnalyzer(c.parser, c.aggregator, cfg.Batch.Workers, c.logger)

	if c.store == nil {
		s, err := store.New(cfg.Store, c.logger)
		if err != nil {
			return nil, fmt.Errorf("failed to open session store: %w", err)
		}
		c.store = s
	}

	if c.summarizer == nil {
		c.summarizer = summary.Noop{}
		if cfg.AI.Enabled && cfg.AI.APIKey != "" {
			timeout := time.Duration(cfg.AI.TimeoutSeconds) * time.Second
			gs, err := summary.NewGeminiSummarizer(context.Background(), cfg.AI.APIKey, cfg.AI.Model, timeout, c.logger)
			if err != nil {
				c.logger.WithError(err).Warn("AI summary unavailable")
			} else {
				c.summarizer = gs
			}
		}
	}

	c.logger.Debug("Container initialized",
		logging.F(logging.FieldBackend, cfg.Store.Backend),
		logging.F("ai_enabled", cfg.AI.Enabled))
	return c, nil
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger { return c.logger }

// GetConfig returns the configuration the container was built from.
func (c *Container) GetConfig() *config.Config { return c.config }

// GetClassifier returns the ledger record classifier.
func (c *Container) GetClassifier() *classifier.Classifier { return c.classifier }

// GetAggregator returns the snapshot aggregator.
func (c *Container) GetAggregator() *aggregator.Aggregator { return c.aggregator }

// GetParser returns the ledger file parser.
func (c *Container) GetParser() *ledgerparser.Parser { return c.parser }

// GetKPIEngine returns the KPI engine configured for the analysis language.
func (c *Container) GetKPIEngine() *kpi.Engine { return c.kpi }

// GetReportGenerator returns the report generator.
func (c *Container) GetReportGenerator() *report.Generator { return c.report }

// GetStore returns the session store selected by store.backend.
func (c *Container) GetStore() store.SessionStore { return c.store }

// GetSummarizer returns the AI summarizer, or a no-op one when AI is disabled.
func (c *Container) GetSummarizer() summary.Summarizer { return c.summarizer }

// GetBatchAnalyzer returns the analyzer for directories of ledger files.
func (c *Container) GetBatchAnalyzer() *batch.Analyzer { return c.batch }

// AnalysisOptions combines the configured filters with the session's
// overrides and sort order. An empty year falls back to analysis.year.
func (c *Container) AnalysisOptions(sess store.Session, year string) aggregator.Options {
	if year == "" {
		year = c.config.Analysis.Year
	}
	return aggregator.Options{
		Year:              year,
		HideSmallAmounts:  c.config.Analysis.HideSmallAmounts,
		SmallAmountFilter: decimal.NewFromFloat(c.config.Analysis.SmallAmountFilter),
		Overrides:         sess.Overrides,
		SortOrder:         sess.SortOrder,
	}
}

// MaterialitySettings returns the session's settings once saved, the
// configured defaults otherwise.
func (c *Container) MaterialitySettings(sess store.Session) models.MaterialitySettings {
	if sess.Materiality.Saved {
		return sess.Materiality
	}
	m := c.config.Materiality
	return models.MaterialitySettings{
		Benchmark:   models.Benchmark(m.Benchmark),
		Percentage:  decimal.NewFromFloat(m.Percentage),
		RiskProfile: models.RiskProfile(m.RiskProfile),
	}
}

// Close releases the session store and the AI client.
func (c *Container) Close() error {
	var firstErr error
	if closer, ok := c.summarizer.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			firstErr = err
		}
	}
	if c.store != nil {
		if err := c.store.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	c.logger.Debug("Container closed")
	return firstErr
}
