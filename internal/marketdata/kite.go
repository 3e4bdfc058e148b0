package marketdata

import (
	"context"
	"fmt"

	kiteconnect "github.com/zerodha/gokiteconnect/v4"

	"stock-predictor/internal/interfaces"
)

// KiteQuotes fetches last traded prices through the Zerodha Kite Connect
// API. Requires KITE_API_KEY and KITE_ACCESS_TOKEN credentials.
type KiteQuotes struct {
	kc       *kiteconnect.Client
	exchange string
}

var _ interfaces.QuoteProvider = (*KiteQuotes)(nil)

func NewKiteQuotes(apiKey, accessToken, exchange string) *KiteQuotes {
	kc := kiteconnect.New(apiKey)
	kc.SetAccessToken(accessToken)
	if exchange == "" {
		exchange = "NSE"
	}
	return &KiteQuotes{kc: kc, exchange: exchange}
}

func (k *KiteQuotes) LastPrice(ctx context.Context, symbol string) (float64, error) {
	instrument := k.exchange + ":" + symbol
	quotes, err := k.kc.GetLTP(instrument)
	if err != nil {
		return 0, fmt.Errorf("kite ltp %s: %w", instrument, err)
	}
	q, ok := quotes[instrument]
	if !ok {
		return 0, fmt.Errorf("kite ltp %s: no quote returned", instrument)
	}
	return q.LastPrice, nil
}

// HistoryQuotes derives the last traded price from a history provider's most
// recent daily bar. Used when Kite credentials are absent.
type HistoryQuotes struct {
	history interfaces.HistoryProvider
}

var _ interfaces.QuoteProvider = (*HistoryQuotes)(nil)

func NewHistoryQuotes(history interfaces.HistoryProvider) *HistoryQuotes {
	return &HistoryQuotes{history: history}
}

func (h *HistoryQuotes) LastPrice(ctx context.Context, symbol string) (float64, error) {
	bars, err := h.history.HistoryPeriod(ctx, symbol, "1d")
	if err != nil {
		return 0, err
	}
	if len(bars) == 0 {
		return 0, fmt.Errorf("no recent bars for %s", symbol)
	}
	return bars[len(bars)-1].Close, nil
}
