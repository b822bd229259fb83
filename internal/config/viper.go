// Package config provides Viper-based hierarchical configuration management
package config

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config represents the complete application configuration
type Config struct {
	Log         LogConfig         `mapstructure:"log" yaml:"log"`
	CSV         CSVConfig         `mapstructure:"csv" yaml:"csv"`
	Analysis    AnalysisConfig    `mapstructure:"analysis" yaml:"analysis"`
	Materiality MaterialityConfig `mapstructure:"materiality" yaml:"materiality"`
	Store       StoreConfig       `mapstructure:"store" yaml:"store"`
	AI          AIConfig          `mapstructure:"ai" yaml:"ai"`
	Batch       BatchConfig       `mapstructure:"batch" yaml:"batch"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

type CSVConfig struct {
	Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
}

// AnalysisConfig holds the inputs of the aggregation pipeline.
type AnalysisConfig struct {
	SmallAmountFilter float64 `mapstructure:"small_amount_filter" yaml:"small_amount_filter"`
	HideSmallAmounts  bool    `mapstructure:"hide_small_amounts" yaml:"hide_small_amounts"`
	Year              string  `mapstructure:"year" yaml:"year"`
	CompareYearA      string  `mapstructure:"compare_year_a" yaml:"compare_year_a"`
	CompareYearB      string  `mapstructure:"compare_year_b" yaml:"compare_year_b"`
	AnnualMode        bool    `mapstructure:"annual_mode" yaml:"annual_mode"`
	Language          string  `mapstructure:"language" yaml:"language"`
}

// MaterialityConfig holds the defaults used until a session saves its own settings.
type MaterialityConfig struct {
	Benchmark   string  `mapstructure:"benchmark" yaml:"benchmark"`
	Percentage  float64 `mapstructure:"percentage" yaml:"percentage"`
	RiskProfile string  `mapstructure:"risk_profile" yaml:"risk_profile"`
}

type StoreConfig struct {
	Backend string `mapstructure:"backend" yaml:"backend"`
	Path    string `mapstructure:"path" yaml:"path"`
}

type AIConfig struct {
	Enabled        bool   `mapstructure:"enabled" yaml:"enabled"`
	Model          string `mapstructure:"model" yaml:"model"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
	APIKey         string `mapstructure:"api_key" yaml:"-"` // Never serialize API key
}

type BatchConfig struct {
	Workers int `mapstructure:"workers" yaml:"workers"`
}

// InitializeConfig initializes Viper configuration with hierarchical loading
func InitializeConfig() (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.gl-analyzer")
	v.AddConfigPath(".gl-analyzer")
	v.AddConfigPath(".")

	// 3. Environment variables
	v.SetEnvPrefix("GLA")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 4. Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file %s: %w", v.ConfigFileUsed(), err)
		}
	}

	// 5. API key comes from the unprefixed variable
	if err := v.BindEnv("ai.api_key", "GEMINI_API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind GEMINI_API_KEY: %w", err)
	}
	if err := v.BindEnv("log.level", "GLA_LOG_LEVEL", "LOG_LEVEL"); err != nil {
		return nil, fmt.Errorf("failed to bind LOG_LEVEL: %w", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 6. Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("csv.delimiter", ",")

	v.SetDefault("analysis.small_amount_filter", 0.0)
	v.SetDefault("analysis.hide_small_amounts", false)
	v.SetDefault("analysis.year", "")
	v.SetDefault("analysis.compare_year_a", "")
	v.SetDefault("analysis.compare_year_b", "")
	v.SetDefault("analysis.annual_mode", true)
	v.SetDefault("analysis.language", "nl")

	v.SetDefault("materiality.benchmark", "revenue")
	v.SetDefault("materiality.percentage", 1.0)
	v.SetDefault("materiality.risk_profile", "medium")

	v.SetDefault("store.backend", "yaml")
	v.SetDefault("store.path", "session.yaml")

	v.SetDefault("ai.enabled", false)
	v.SetDefault("ai.model", "gemini-2.0-flash")
	v.SetDefault("ai.timeout_seconds", 30)

	v.SetDefault("batch.workers", 4)
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if len(config.CSV.Delimiter) != 1 {
		return fmt.Errorf("CSV delimiter must be a single character, got: %s", config.CSV.Delimiter)
	}

	if config.Analysis.SmallAmountFilter < 0 {
		return fmt.Errorf("analysis.small_amount_filter must not be negative, got: %f", config.Analysis.SmallAmountFilter)
	}

	if config.Analysis.Language != "nl" && config.Analysis.Language != "en" {
		return fmt.Errorf("analysis.language must be 'nl' or 'en', got: %s", config.Analysis.Language)
	}

	switch config.Materiality.Benchmark {
	case "revenue", "assets", "result":
	default:
		return fmt.Errorf("materiality.benchmark must be revenue, assets or result, got: %s", config.Materiality.Benchmark)
	}

	if config.Materiality.Percentage < 0.1 || config.Materiality.Percentage > 5.0 {
		return fmt.Errorf("materiality.percentage must be between 0.1 and 5.0, got: %f", config.Materiality.Percentage)
	}

	switch config.Materiality.RiskProfile {
	case "low", "medium", "high":
	default:
		return fmt.Errorf("materiality.risk_profile must be low, medium or high, got: %s", config.Materiality.RiskProfile)
	}

	if config.Store.Backend != "yaml" && config.Store.Backend != "sqlite" {
		return fmt.Errorf("store.backend must be 'yaml' or 'sqlite', got: %s", config.Store.Backend)
	}

	if config.AI.Enabled {
		if config.AI.APIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY required when AI is enabled")
		}
		if config.AI.TimeoutSeconds < 1 || config.AI.TimeoutSeconds > 300 {
			return fmt.Errorf("ai.timeout_seconds must be between 1 and 300, got: %d", config.AI.TimeoutSeconds)
		}
	}

	if config.Batch.Workers < 1 || config.Batch.Workers > 64 {
		return fmt.Errorf("batch.workers must be between 1 and 64, got: %d", config.Batch.Workers)
	}

	return nil
}

// ConfigureLoggingFromConfig configures a logrus logger based on the Config struct
func ConfigureLoggingFromConfig(config *Config) *logrus.Logger {
	logger := logrus.New()

	logLevel, err := logrus.ParseLevel(strings.ToLower(config.Log.Level))
	if err != nil {
		logger.Warnf("Invalid log level '%s', using 'info'", config.Log.Level)
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	if strings.ToLower(config.Log.Format) == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return logger
}

// Default returns a configuration populated with defaults only.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var config Config
	// Defaults always unmarshal cleanly.
	_ = v.Unmarshal(&config)
	return &config
}
