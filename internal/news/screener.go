package news

import (
	"context"
	"strings"

	"stock-predictor/internal/logger"
	"stock-predictor/internal/symbols"
	"stock-predictor/internal/types"
)

// positiveIndicators is the fixed buy-signal lexicon. Matching is plain
// substring containment, so "buy" also hits "buyback", "buyer" and friends;
// that crudeness is a known limitation of the screening policy.
var positiveIndicators = []string{"good buy", "buy", "positive outlook", "strong performance"}

// Screener scans headlines for positive-sentiment cues and resolves the
// mentioned company to a ticker symbol.
type Screener struct {
	mapping *symbols.Mapping
}

func NewScreener(mapping *symbols.Mapping) *Screener {
	return &Screener{mapping: mapping}
}

// Screen returns buy candidates keyed by symbol. When several headlines
// resolve to the same symbol, the last one processed wins. Headlines that
// resolve to no symbol are simply skipped.
func (s *Screener) Screen(ctx context.Context, articles []types.NewsArticle) map[string]types.BuyCandidate {
	candidates := make(map[string]types.BuyCandidate)
	for _, article := range articles {
		title := strings.ToLower(article.Title)
		if !hasPositiveIndicator(title) {
			continue
		}
		symbol, ok := s.mapping.Resolve(title)
		if !ok {
			continue
		}
		candidates[symbol] = types.BuyCandidate{
			Symbol: symbol,
			Reason: title,
			URL:    article.URL,
		}
	}
	logger.Info(ctx, "News screening complete",
		"articles", len(articles), "candidates", len(candidates))
	return candidates
}

func hasPositiveIndicator(title string) bool {
	for _, indicator := range positiveIndicators {
		if strings.Contains(title, indicator) {
			return true
		}
	}
	return false
}
