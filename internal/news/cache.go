package news

import (
	"context"
	"sync"
	"time"

	"stock-predictor/internal/interfaces"
	"stock-predictor/internal/logger"
	"stock-predictor/internal/types"
)

// ArticleCache holds the most recently fetched headline collection. It is an
// explicit dependency owned by the caller, refreshed on demand or on a
// schedule, never a hidden package-level variable. Concurrent reads are safe.
type ArticleCache struct {
	src interfaces.NewsProvider
	ttl time.Duration

	mu        sync.RWMutex
	articles  []types.NewsArticle
	fetchedAt time.Time
}

func NewArticleCache(src interfaces.NewsProvider, ttl time.Duration) *ArticleCache {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &ArticleCache{src: src, ttl: ttl}
}

// Articles returns the cached collection, refreshing first when the cache is
// empty or stale. If the refresh fails but stale articles exist, the stale
// set is served.
func (c *ArticleCache) Articles(ctx context.Context) ([]types.NewsArticle, error) {
	c.mu.RLock()
	age := time.Since(c.fetchedAt)
	fresh := c.articles != nil && age <= c.ttl
	cached := c.articles
	c.mu.RUnlock()

	if fresh {
		return cached, nil
	}
	if err := c.Refresh(ctx); err != nil {
		if cached != nil {
			logger.Warn(ctx, "News refresh failed, serving stale articles",
				"age", age.String(), "error", err)
			return cached, nil
		}
		return nil, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.articles, nil
}

// Refresh fetches the latest collection and swaps it in atomically.
func (c *ArticleCache) Refresh(ctx context.Context) error {
	articles, err := c.src.LatestArticles(ctx)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.articles = articles
	c.fetchedAt = time.Now()
	c.mu.Unlock()
	logger.Info(ctx, "News cache refreshed", "articles", len(articles))
	return nil
}

// Age reports how old the cached collection is. Zero when never fetched.
func (c *ArticleCache) Age() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.fetchedAt.IsZero() {
		return 0
	}
	return time.Since(c.fetchedAt)
}
