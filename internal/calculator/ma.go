package calculator

import (
	"errors"
	"fmt"

	"github.com/guregu/null/v6"
	"github.com/shopspring/decimal"

	"StockAnalyzer/internal/model"
)

// CalculateSMA computes the simple moving average of the last period prices.
func CalculateSMA(prices []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(prices) < period {
		return 0, errors.New("not enough data for SMA calculation")
	}
	sum := decimal.Zero
	for i := len(prices) - period; i < len(prices); i++ {
		sum = sum.Add(decimal.NewFromFloat(prices[i]))
	}
	return sum.Div(decimal.NewFromInt(int64(period))).InexactFloat64(), nil
}

// RollingSMA returns the trailing mean of closes over window for every row.
// Rows with fewer than window observations are left undefined.
func RollingSMA(closes []float64, window int) []null.Float {
	out := make([]null.Float, len(closes))
	if window <= 0 || window > len(closes) {
		return out
	}

	n := decimal.NewFromInt(int64(window))
	sum := decimal.Zero
	for i, c := range closes {
		sum = sum.Add(decimal.NewFromFloat(c))
		if i >= window {
			sum = sum.Sub(decimal.NewFromFloat(closes[i-window]))
		}
		if i >= window-1 {
			out[i] = null.FloatFrom(sum.Div(n).InexactFloat64())
		}
	}
	return out
}

// SMAColumnName is the derived column name for window, e.g. SMA_20.
func SMAColumnName(window int) string {
	return fmt.Sprintf("SMA_%d", window)
}

// WithSMA returns a new series with the SMA column for window added.
// A non-positive window returns series unchanged.
func WithSMA(series *model.PriceSeries, window int) *model.PriceSeries {
	if window <= 0 {
		return series
	}
	return series.WithColumn(model.Column{
		Name:   SMAColumnName(window),
		Values: RollingSMA(series.Closes(), window),
	})
}
