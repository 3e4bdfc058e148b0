package news

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"stock-predictor/internal/interfaces"
	"stock-predictor/internal/logger"
	"stock-predictor/internal/types"
)

// ErrProviderUnavailable is returned once the retry budget for the upstream
// news API is exhausted. Callers treat it as "no articles this cycle".
var ErrProviderUnavailable = errors.New("news provider unavailable")

// ClientConfig configures the market-news API client.
type ClientConfig struct {
	URL         string        // endpoint returning a JSON array of {Title, URL}
	APIKey      string        // sent as x-rapidapi-key
	Host        string        // sent as x-rapidapi-host
	MaxAttempts int           // retry budget per fetch, including the first try
	Backoff     time.Duration // initial backoff, doubled per retry
	RateLimit   rate.Limit    // requests per second against the upstream
	Timeout     time.Duration
}

func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		MaxAttempts: 3,
		Backoff:     2 * time.Second,
		RateLimit:   rate.Every(5 * time.Second),
		Timeout:     15 * time.Second,
	}
}

// Client fetches headlines from a market-news JSON API. Malformed payloads
// and transport failures are retried a bounded number of times with
// exponential backoff; after that the typed failure surfaces.
type Client struct {
	cfg     ClientConfig
	http    *http.Client
	limiter *rate.Limiter
}

var _ interfaces.NewsProvider = (*Client)(nil)

func NewClient(cfg ClientConfig) *Client {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 3
	}
	if cfg.Backoff <= 0 {
		cfg.Backoff = 2 * time.Second
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	if cfg.RateLimit == 0 {
		cfg.RateLimit = rate.Every(5 * time.Second)
	}
	return &Client{
		cfg:     cfg,
		http:    &http.Client{Timeout: cfg.Timeout},
		limiter: rate.NewLimiter(cfg.RateLimit, 1),
	}
}

// LatestArticles fetches the current headline collection.
func (c *Client) LatestArticles(ctx context.Context) ([]types.NewsArticle, error) {
	backoff := c.cfg.Backoff
	var lastErr error

	for attempt := 1; attempt <= c.cfg.MaxAttempts; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
		articles, err := c.fetch(ctx)
		if err == nil {
			return articles, nil
		}
		lastErr = err
		logger.Warn(ctx, "News fetch attempt failed",
			"attempt", attempt, "max_attempts", c.cfg.MaxAttempts, "error", err)

		if attempt == c.cfg.MaxAttempts {
			break
		}
		select {
		case <-time.After(backoff):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		backoff *= 2
	}
	return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, lastErr)
}

func (c *Client) fetch(ctx context.Context) ([]types.NewsArticle, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.URL, nil)
	if err != nil {
		return nil, err
	}
	if c.cfg.APIKey != "" {
		req.Header.Set("x-rapidapi-key", c.cfg.APIKey)
	}
	if c.cfg.Host != "" {
		req.Header.Set("x-rapidapi-host", c.cfg.Host)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("news api status %d", resp.StatusCode)
	}

	var articles []types.NewsArticle
	if err := json.NewDecoder(resp.Body).Decode(&articles); err != nil {
		return nil, fmt.Errorf("malformed news payload: %w", err)
	}
	return articles, nil
}
