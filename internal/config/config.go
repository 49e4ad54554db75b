package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Analysis struct {
		Symbol       string `yaml:"symbol"`
		Market       string `yaml:"market"`
		Timeframe    string `yaml:"timeframe"`
		LookbackDays int    `yaml:"lookback_days"`
	} `yaml:"analysis"`
	Output struct {
		CSVPath    string `yaml:"csv_path"`
		ChartPath  string `yaml:"chart_path"`
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"output"`
	Schedule struct {
		AnalyzeCron string `yaml:"analyze_cron"`
	} `yaml:"schedule"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("ANALYZER_SYMBOL"); v != "" {
		cfg.Analysis.Symbol = v
	}
	if v := os.Getenv("ANALYZER_MARKET"); v != "" {
		cfg.Analysis.Market = v
	}
	if v := os.Getenv("ANALYZER_TIMEFRAME"); v != "" {
		cfg.Analysis.Timeframe = v
	}
	if v := os.Getenv("ANALYZER_LOOKBACK_DAYS"); v != "" {
		if days, err := strconv.Atoi(v); err == nil {
			cfg.Analysis.LookbackDays = days
		}
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Output.SQLitePath = v
	}
	if v := os.Getenv("CRON_ANALYZE"); v != "" {
		cfg.Schedule.AnalyzeCron = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}

	// Defaults
	if cfg.Analysis.Market == "" {
		cfg.Analysis.Market = "stock"
	}
	if cfg.Analysis.Timeframe == "" {
		cfg.Analysis.Timeframe = "1d"
	}
	if cfg.Analysis.LookbackDays == 0 {
		cfg.Analysis.LookbackDays = 365
	}
	if cfg.Output.CSVPath == "" {
		cfg.Output.CSVPath = "market_analysis.csv"
	}
	if cfg.Output.ChartPath == "" {
		cfg.Output.ChartPath = "market_trend.html"
	}

	return cfg, nil
}

// Validate checks that all required fields are set and consistent.
func (c *Config) Validate() error {
	if c.Analysis.Symbol == "" {
		return fmt.Errorf("analysis.symbol is required")
	}
	if c.Analysis.Market != "stock" && c.Analysis.Market != "crypto" {
		return fmt.Errorf("analysis.market must be \"stock\" or \"crypto\", got %q", c.Analysis.Market)
	}
	switch c.Analysis.Timeframe {
	case "1h", "1d", "1w", "1wk":
	default:
		return fmt.Errorf("analysis.timeframe %q is not supported", c.Analysis.Timeframe)
	}
	if c.Analysis.LookbackDays <= 0 {
		return fmt.Errorf("analysis.lookback_days must be positive")
	}
	return nil
}
