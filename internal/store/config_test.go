package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}
	return path
}

func TestLoadConfigAppliesDefaults(t *testing.T) {
	path := writeConfig(t, "mapping_path: data/company_mappings.csv\n")

	c, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if c.DataSource != "STATIC" {
		t.Errorf("Expected STATIC default, got %s", c.DataSource)
	}
	if c.Forest.Trees != 100 || c.Forest.Seed != 42 {
		t.Errorf("Forest defaults wrong: trees=%d seed=%d", c.Forest.Trees, c.Forest.Seed)
	}
	if c.LongTerm.Lags != 5 || c.LongTerm.Diff != 1 || c.LongTerm.Steps != 30 {
		t.Errorf("Long-term defaults wrong: %+v", c.LongTerm)
	}
	if c.LongTerm.Period != "5y" {
		t.Errorf("Expected 5y period default, got %s", c.LongTerm.Period)
	}
	if c.Indicators.SMALong != 100 {
		t.Errorf("Indicator defaults not applied, sma_long=%d", c.Indicators.SMALong)
	}
	if c.News.Source != "SCRAPE" || c.News.MaxAttempts != 3 {
		t.Errorf("News defaults wrong: %+v", c.News)
	}
	if c.Screen.Workers != 4 || c.Screen.FitTimeoutSecs != 120 {
		t.Errorf("Screen defaults wrong: %+v", c.Screen)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	path := writeConfig(t, `
data_source: LIVE
symbol_suffix: ".NS"
mapping_path: data/company_mappings.csv
indicators:
  sma_short: 10
  sma_long: 50
forest:
  trees: 25
  seed: 7
long_term:
  lags: 3
  steps: 10
news:
  source: API
  url: https://example.com/news
screen:
  workers: 8
`)

	c, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if c.DataSource != "LIVE" || c.SymbolSuffix != ".NS" {
		t.Errorf("Overrides not applied: %s %s", c.DataSource, c.SymbolSuffix)
	}
	if c.Forest.Trees != 25 || c.Forest.Seed != 7 {
		t.Errorf("Forest overrides wrong: %+v", c.Forest)
	}
	if c.Indicators.SMAShort != 10 || c.Indicators.SMALong != 50 {
		t.Errorf("Indicator overrides wrong: %+v", c.Indicators)
	}
	if c.Indicators.RSIPeriod != 14 || c.Indicators.BBStdDev != 2.0 {
		t.Errorf("Partial indicator override lost defaults: %+v", c.Indicators)
	}
	if c.LongTerm.Lags != 3 || c.LongTerm.Steps != 10 {
		t.Errorf("Long-term overrides wrong: %+v", c.LongTerm)
	}
	// Unset nested fields still get defaults.
	if c.LongTerm.Diff != 1 || c.Screen.IntervalMinutes != 30 {
		t.Errorf("Defaults missing on partial override: diff=%d interval=%d", c.LongTerm.Diff, c.Screen.IntervalMinutes)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{
			name: "bad data source",
			body: "data_source: FEED\nmapping_path: x.csv\n",
			want: "data_source",
		},
		{
			name: "bad news source",
			body: "mapping_path: x.csv\nnews:\n  source: RSS\n",
			want: "news.source",
		},
		{
			name: "api without url",
			body: "mapping_path: x.csv\nnews:\n  source: API\n",
			want: "news.url",
		},
		{
			name: "missing mapping path",
			body: "data_source: STATIC\n",
			want: "mapping_path",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tc.body))
			if err == nil {
				t.Fatal("Expected validation error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("Error %q does not mention %q", err, tc.want)
			}
		})
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("Expected error for missing config file")
	}
}
