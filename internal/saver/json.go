package saver

import (
	"bufio"
	"encoding/json"
	"os"

	"github.com/guregu/null/v6"

	"StockAnalyzer/internal/model"
)

type jsonSeries struct {
	Symbol string    `json:"symbol"`
	Rows   []jsonRow `json:"rows"`
}

type jsonRow struct {
	Date    string                `json:"date"`
	Open    float64               `json:"open"`
	High    float64               `json:"high"`
	Low     float64               `json:"low"`
	Close   float64               `json:"close"`
	Volume  int64                 `json:"volume"`
	Derived map[string]null.Float `json:"derived,omitempty"`
}

// JSONSaver writes the series as one indented JSON document. Undefined cells are null.
type JSONSaver struct{}

func (JSONSaver) Extension() string { return "json" }

func (JSONSaver) Save(series *model.PriceSeries, path string) (err error) {
	doc := jsonSeries{Symbol: series.Symbol, Rows: make([]jsonRow, len(series.Bars))}
	for i, b := range series.Bars {
		row := jsonRow{
			Date:   b.Date.Format(dateLayout),
			Open:   b.Open,
			High:   b.High,
			Low:    b.Low,
			Close:  b.Close,
			Volume: b.Volume,
		}
		if len(series.Columns) > 0 {
			row.Derived = make(map[string]null.Float, len(series.Columns))
			for _, c := range series.Columns {
				row.Derived[c.Name] = c.Values[i]
			}
		}
		doc.Rows[i] = row
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	w := bufio.NewWriter(f)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return w.Flush()
}
