package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"stock-predictor/internal/interfaces"
	"stock-predictor/internal/types"
)

const yahooChartURL = "https://query1.finance.yahoo.com/v8/finance/chart"

// YahooProvider fetches daily OHLCV history from the Yahoo Finance chart API.
type YahooProvider struct {
	client *http.Client
	// Suffix is appended to every symbol before the request, e.g. ".NS"
	// for NSE-listed tickers.
	Suffix  string
	baseURL string
}

var _ interfaces.HistoryProvider = (*YahooProvider)(nil)

func NewYahooProvider(suffix, proxyURL string, timeout time.Duration) *YahooProvider {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &YahooProvider{
		client:  &http.Client{Timeout: timeout, Transport: transport},
		Suffix:  suffix,
		baseURL: yahooChartURL,
	}
}

type yahooChart struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []interface{} `json:"open"`
					High   []interface{} `json:"high"`
					Low    []interface{} `json:"low"`
					Close  []interface{} `json:"close"`
					Volume []interface{} `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

func toFloat(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	default:
		return 0
	}
}

// History fetches daily bars for an explicit date range.
func (p *YahooProvider) History(ctx context.Context, symbol string, start, end time.Time) (types.PriceSeries, error) {
	q := url.Values{}
	q.Set("interval", "1d")
	q.Set("period1", fmt.Sprintf("%d", start.Unix()))
	q.Set("period2", fmt.Sprintf("%d", end.Unix()))
	return p.fetchChart(ctx, symbol, q)
}

// HistoryPeriod fetches daily bars for a named period such as "max", "5y",
// "1y" or "1d".
func (p *YahooProvider) HistoryPeriod(ctx context.Context, symbol, period string) (types.PriceSeries, error) {
	q := url.Values{}
	q.Set("interval", "1d")
	q.Set("range", period)
	return p.fetchChart(ctx, symbol, q)
}

func (p *YahooProvider) fetchChart(ctx context.Context, symbol string, q url.Values) (types.PriceSeries, error) {
	u := fmt.Sprintf("%s/%s?%s", p.baseURL, url.PathEscape(symbol+p.Suffix), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("yahoo fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("yahoo read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("yahoo: status %d", resp.StatusCode)
	}

	var chart yahooChart
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, fmt.Errorf("yahoo decode: %w", err)
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo api error: %s", chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Timestamp) == 0 {
		// no data is a valid response
		return nil, nil
	}

	result := chart.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, nil
	}
	quote := result.Indicators.Quote[0]
	n := len(result.Timestamp)
	if len(quote.Open) != n || len(quote.High) != n || len(quote.Low) != n ||
		len(quote.Close) != n || len(quote.Volume) != n {
		return nil, fmt.Errorf("yahoo: quote arrays do not match %d timestamps", n)
	}

	bars := make(types.PriceSeries, 0, n)
	for i, ts := range result.Timestamp {
		o := toFloat(quote.Open[i])
		h := toFloat(quote.High[i])
		l := toFloat(quote.Low[i])
		c := toFloat(quote.Close[i])
		if o == 0 && h == 0 && l == 0 && c == 0 {
			continue // null bars (holidays etc.)
		}
		bars = append(bars, types.Bar{
			Date:  time.Unix(ts, 0).UTC(),
			Open:  o,
			High:  h,
			Low:   l,
			Close: c,
			Vol:   toFloat(quote.Volume[i]),
		})
	}
	sort.Slice(bars, func(i, j int) bool { return bars[i].Date.Before(bars[j].Date) })
	return dedupeDates(bars), nil
}

// dedupeDates enforces the strictly-increasing-dates invariant, keeping the
// first bar seen for a date.
func dedupeDates(bars types.PriceSeries) types.PriceSeries {
	out := bars[:0]
	for i, b := range bars {
		if i > 0 && !out[len(out)-1].Date.Before(b.Date) {
			continue
		}
		out = append(out, b)
	}
	return out
}
