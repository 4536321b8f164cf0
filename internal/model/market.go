package model

import (
	"time"

	"github.com/guregu/null/v6"
)

// OHLCV represents a single daily bar. Date is midnight UTC of the exchange-local trading day.
type OHLCV struct {
	Date   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume int64
}

// Column is a derived per-row value such as SMA_20. Invalid cells are undefined.
type Column struct {
	Name   string
	Values []null.Float
}

// PriceSeries holds the daily history of one symbol plus any derived columns.
// Bars are ascending by date with no duplicates.
type PriceSeries struct {
	Symbol  string
	Bars    []OHLCV
	Columns []Column
}

// Len returns the number of rows.
func (s *PriceSeries) Len() int { return len(s.Bars) }

// Closes returns the closing prices in row order.
func (s *PriceSeries) Closes() []float64 {
	closes := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		closes[i] = b.Close
	}
	return closes
}

// Column looks up a derived column by name.
func (s *PriceSeries) Column(name string) (Column, bool) {
	for _, c := range s.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// WithColumn returns a copy of the series carrying col. A column with the same
// name is replaced. The receiver is left untouched.
func (s *PriceSeries) WithColumn(col Column) *PriceSeries {
	out := &PriceSeries{
		Symbol:  s.Symbol,
		Bars:    make([]OHLCV, len(s.Bars)),
		Columns: make([]Column, 0, len(s.Columns)+1),
	}
	copy(out.Bars, s.Bars)

	replaced := false
	for _, c := range s.Columns {
		if c.Name == col.Name {
			c = col
			replaced = true
		}
		out.Columns = append(out.Columns, cloneColumn(c))
	}
	if !replaced {
		out.Columns = append(out.Columns, cloneColumn(col))
	}
	return out
}

func cloneColumn(c Column) Column {
	values := make([]null.Float, len(c.Values))
	copy(values, c.Values)
	return Column{Name: c.Name, Values: values}
}
