package saver

import (
	"time"

	"github.com/parquet-go/parquet-go"

	"StockAnalyzer/internal/model"
)

// parquetRow is the on-disk layout. Parquet needs a static schema, so the first
// derived column is stored as sma/sma_name rather than under its own name.
type parquetRow struct {
	Date    time.Time `parquet:"date,timestamp"`
	Open    float64   `parquet:"open"`
	High    float64   `parquet:"high"`
	Low     float64   `parquet:"low"`
	Close   float64   `parquet:"close"`
	Volume  int64     `parquet:"volume"`
	SMA     *float64  `parquet:"sma,optional"`
	SMAName string    `parquet:"sma_name"`
}

// ParquetSaver writes the series as a Parquet file.
type ParquetSaver struct{}

func (ParquetSaver) Extension() string { return "parquet" }

func (ParquetSaver) Save(series *model.PriceSeries, path string) error {
	rows := make([]parquetRow, len(series.Bars))
	for i, b := range series.Bars {
		rows[i] = parquetRow{
			Date:   b.Date,
			Open:   b.Open,
			High:   b.High,
			Low:    b.Low,
			Close:  b.Close,
			Volume: b.Volume,
		}
		if len(series.Columns) > 0 {
			c := series.Columns[0]
			rows[i].SMAName = c.Name
			if v := c.Values[i]; v.Valid {
				f := v.Float64
				rows[i].SMA = &f
			}
		}
	}
	return parquet.WriteFile(path, rows)
}
