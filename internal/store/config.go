package store

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"stock-predictor/internal/features"
)

type Config struct {
	// DataSource selects where price history comes from.
	DataSource string `yaml:"data_source"` // LIVE or STATIC
	Exchange   string `yaml:"exchange"`
	// SymbolSuffix is appended to tickers for the history provider, e.g.
	// ".NS" for NSE listings on Yahoo Finance.
	SymbolSuffix string `yaml:"symbol_suffix"`
	ProxyURL     string `yaml:"proxy_url"`

	MappingPath string `yaml:"mapping_path"`

	Indicators features.Params `yaml:"indicators"`

	Forest struct {
		Trees        int   `yaml:"trees"`
		Seed         int64 `yaml:"seed"`
		WithAccuracy bool  `yaml:"with_accuracy"`
	} `yaml:"forest"`

	LongTerm struct {
		Lags   int    `yaml:"lags"`
		Diff   int    `yaml:"diff"`
		Steps  int    `yaml:"steps"`
		Period string `yaml:"period"`
	} `yaml:"long_term"`

	News struct {
		Source       string `yaml:"source"` // API or SCRAPE
		URL          string `yaml:"url"`
		Host         string `yaml:"host"`
		APIKeyEnv    string `yaml:"api_key_env"`
		MaxAttempts  int    `yaml:"max_attempts"`
		BackoffSecs  int    `yaml:"backoff_seconds"`
		CacheTTLMins int    `yaml:"cache_ttl_minutes"`
		RefreshCron  string `yaml:"refresh_cron"`
		MaxArticles  int    `yaml:"max_articles"`
	} `yaml:"news"`

	Screen struct {
		Workers         int `yaml:"workers"`
		IntervalMinutes int `yaml:"interval_minutes"`
		FitTimeoutSecs  int `yaml:"fit_timeout_seconds"`
	} `yaml:"screen"`
}

func (c *Config) Validate() error {
	if c.DataSource != "LIVE" && c.DataSource != "STATIC" {
		return fmt.Errorf("invalid data_source '%s': must be 'LIVE' or 'STATIC'", c.DataSource)
	}
	if c.News.Source != "API" && c.News.Source != "SCRAPE" {
		return fmt.Errorf("invalid news.source '%s': must be 'API' or 'SCRAPE'", c.News.Source)
	}
	if c.News.Source == "API" && c.News.URL == "" {
		return fmt.Errorf("news.url is required when news.source is 'API'")
	}
	if c.MappingPath == "" {
		return fmt.Errorf("mapping_path cannot be empty")
	}
	if c.Forest.Trees <= 0 {
		return fmt.Errorf("forest.trees must be positive, got %d", c.Forest.Trees)
	}
	if c.LongTerm.Lags <= 0 || c.LongTerm.Steps <= 0 {
		return fmt.Errorf("long_term.lags and long_term.steps must be positive")
	}
	return nil
}

func LoadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}
	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &c, nil
}

func (c *Config) applyDefaults() {
	if c.DataSource == "" {
		c.DataSource = "STATIC"
	}
	if c.Exchange == "" {
		c.Exchange = "NSE"
	}
	// Indicator windows default field by field so a partial override keeps
	// the standard lengths for the rest.
	def := features.DefaultParams()
	if c.Indicators.SMAShort == 0 {
		c.Indicators.SMAShort = def.SMAShort
	}
	if c.Indicators.SMALong == 0 {
		c.Indicators.SMALong = def.SMALong
	}
	if c.Indicators.EMAShort == 0 {
		c.Indicators.EMAShort = def.EMAShort
	}
	if c.Indicators.EMALong == 0 {
		c.Indicators.EMALong = def.EMALong
	}
	if c.Indicators.RSIPeriod == 0 {
		c.Indicators.RSIPeriod = def.RSIPeriod
	}
	if c.Indicators.MACDFast == 0 {
		c.Indicators.MACDFast = def.MACDFast
	}
	if c.Indicators.MACDSlow == 0 {
		c.Indicators.MACDSlow = def.MACDSlow
	}
	if c.Indicators.MACDSignal == 0 {
		c.Indicators.MACDSignal = def.MACDSignal
	}
	if c.Indicators.BBWindow == 0 {
		c.Indicators.BBWindow = def.BBWindow
	}
	if c.Indicators.BBStdDev == 0 {
		c.Indicators.BBStdDev = def.BBStdDev
	}
	if c.Indicators.ATRPeriod == 0 {
		c.Indicators.ATRPeriod = def.ATRPeriod
	}
	if c.Indicators.StochPeriod == 0 {
		c.Indicators.StochPeriod = def.StochPeriod
	}
	if c.Indicators.CMFWindow == 0 {
		c.Indicators.CMFWindow = def.CMFWindow
	}
	if c.Indicators.AroonWindow == 0 {
		c.Indicators.AroonWindow = def.AroonWindow
	}
	if c.Forest.Trees == 0 {
		c.Forest.Trees = 100
	}
	if c.Forest.Seed == 0 {
		c.Forest.Seed = 42
	}
	if c.LongTerm.Lags == 0 {
		c.LongTerm.Lags = 5
	}
	if c.LongTerm.Diff == 0 {
		c.LongTerm.Diff = 1
	}
	if c.LongTerm.Steps == 0 {
		c.LongTerm.Steps = 30
	}
	if c.LongTerm.Period == "" {
		c.LongTerm.Period = "5y"
	}
	if c.News.Source == "" {
		c.News.Source = "SCRAPE"
	}
	if c.News.MaxAttempts == 0 {
		c.News.MaxAttempts = 3
	}
	if c.News.BackoffSecs == 0 {
		c.News.BackoffSecs = 2
	}
	if c.News.CacheTTLMins == 0 {
		c.News.CacheTTLMins = 60
	}
	if c.News.MaxArticles == 0 {
		c.News.MaxArticles = 30
	}
	if c.Screen.Workers == 0 {
		c.Screen.Workers = 4
	}
	if c.Screen.IntervalMinutes == 0 {
		c.Screen.IntervalMinutes = 30
	}
	if c.Screen.FitTimeoutSecs == 0 {
		c.Screen.FitTimeoutSecs = 120
	}
}
