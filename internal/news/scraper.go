package news

import (
	"context"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"

	"stock-predictor/internal/interfaces"
	"stock-predictor/internal/logger"
	"stock-predictor/internal/types"
)

// Scraper collects market headlines from financial news sites. It is the
// fallback headline source when no API key is configured.
type Scraper struct {
	sources     []ScrapeSource
	maxArticles int
	timeout     time.Duration
}

// ScrapeSource describes one site and the selectors locating its headlines.
type ScrapeSource struct {
	Name          string
	URL           string
	ItemSelector  string
	TitleSelector string
	LinkSelector  string
}

var _ interfaces.NewsProvider = (*Scraper)(nil)

func NewScraper(maxArticles int, timeout time.Duration) *Scraper {
	if maxArticles <= 0 {
		maxArticles = 30
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Scraper{
		sources:     defaultScrapeSources(),
		maxArticles: maxArticles,
		timeout:     timeout,
	}
}

func defaultScrapeSources() []ScrapeSource {
	return []ScrapeSource{
		{
			Name:          "MoneyControl",
			URL:           "https://www.moneycontrol.com/news/business/markets/",
			ItemSelector:  "li.clearfix",
			TitleSelector: "h2 a",
			LinkSelector:  "h2 a",
		},
		{
			Name:          "EconomicTimes",
			URL:           "https://economictimes.indiatimes.com/markets/stocks/news",
			ItemSelector:  "div.eachStory",
			TitleSelector: "h3 a",
			LinkSelector:  "h3 a",
		},
	}
}

// LatestArticles scrapes every source and returns the combined headline set.
// A source failure is logged and skipped; only a fully empty cycle with
// errors surfaces as provider unavailability.
func (s *Scraper) LatestArticles(ctx context.Context) ([]types.NewsArticle, error) {
	var all []types.NewsArticle
	failures := 0

	for _, src := range s.sources {
		if err := ctx.Err(); err != nil {
			return all, err
		}
		articles, err := s.scrapeSource(ctx, src)
		if err != nil {
			failures++
			logger.Warn(ctx, "Headline source failed", "source", src.Name, "error", err)
			continue
		}
		all = append(all, articles...)
		if len(all) >= s.maxArticles {
			all = all[:s.maxArticles]
			break
		}
	}

	if len(all) == 0 && failures == len(s.sources) {
		return nil, ErrProviderUnavailable
	}
	return all, nil
}

func (s *Scraper) scrapeSource(ctx context.Context, src ScrapeSource) ([]types.NewsArticle, error) {
	c := colly.NewCollector(
		colly.UserAgent("Mozilla/5.0 (compatible; stock-predictor/1.0)"),
		colly.MaxDepth(1),
	)
	c.SetRequestTimeout(s.timeout)

	var articles []types.NewsArticle
	c.OnHTML(src.ItemSelector, func(e *colly.HTMLElement) {
		title := cleanText(e.DOM.Find(src.TitleSelector))
		link, _ := e.DOM.Find(src.LinkSelector).Attr("href")
		if title == "" || link == "" {
			return
		}
		articles = append(articles, types.NewsArticle{
			Title: title,
			URL:   e.Request.AbsoluteURL(link),
		})
	})

	if err := c.Visit(src.URL); err != nil {
		return nil, err
	}
	c.Wait()
	return articles, nil
}

func cleanText(sel *goquery.Selection) string {
	return strings.Join(strings.Fields(sel.First().Text()), " ")
}
