package collector

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"StockAnalyzer/internal/model"
)

// HistoryRange is the fixed trailing window requested for every symbol.
const HistoryRange = "6mo"

// ErrNotFound is returned when the provider has no rows for a symbol.
var ErrNotFound = errors.New("no data found")

// FetchError wraps any provider failure for a symbol.
type FetchError struct {
	Symbol string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.Symbol, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Collector turns provider rows into a PriceSeries.
type Collector struct {
	Provider HistoryProvider
}

// NewCollector creates a new Collector.
func NewCollector(provider HistoryProvider) *Collector {
	return &Collector{Provider: provider}
}

// Fetch performs exactly one provider request for symbol.
func (c *Collector) Fetch(ctx context.Context, symbol string) (*model.PriceSeries, error) {
	bars, err := c.Provider.FetchHistory(ctx, symbol, HistoryRange)
	if err != nil {
		return nil, &FetchError{Symbol: symbol, Err: err}
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("%s: %w", symbol, ErrNotFound)
	}
	slog.Debug("history fetched", "symbol", symbol, "provider", c.Provider.Name(), "rows", len(bars),
		"first", bars[0].Date.Format("2006-01-02"), "last", bars[len(bars)-1].Date.Format("2006-01-02"))
	return &model.PriceSeries{Symbol: symbol, Bars: bars}, nil
}
