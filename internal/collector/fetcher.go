package collector

import (
	"context"

	"StockAnalyzer/internal/model"
)

// HistoryProvider fetches daily bars for a symbol over a trailing range such as "6mo".
// Zero rows with a nil error means the provider knows nothing about the symbol.
type HistoryProvider interface {
	FetchHistory(ctx context.Context, symbol, rng string) ([]model.OHLCV, error)
	Name() string
}
