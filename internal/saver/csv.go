package saver

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/guregu/null/v6"

	"StockAnalyzer/internal/model"
)

const dateLayout = "2006-01-02"

var baseHeader = []string{"Date", "Open", "High", "Low", "Close", "Volume"}

// CSVSaver writes one row per bar, header first, derived columns after Volume.
type CSVSaver struct{}

func (CSVSaver) Extension() string { return "csv" }

func (CSVSaver) Save(series *model.PriceSeries, path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	w := csv.NewWriter(f)

	header := append([]string{}, baseHeader...)
	for _, c := range series.Columns {
		header = append(header, c.Name)
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for i, b := range series.Bars {
		row := []string{
			b.Date.Format(dateLayout),
			floatStr(b.Open),
			floatStr(b.High),
			floatStr(b.Low),
			floatStr(b.Close),
			strconv.FormatInt(b.Volume, 10),
		}
		for _, c := range series.Columns {
			row = append(row, nullStr(c.Values[i]))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// LoadCSV reads a file written by CSVSaver. The symbol is not stored in the file.
func LoadCSV(path, symbol string) (*model.PriceSeries, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(records) == 0 {
		return nil, errors.New("empty csv")
	}
	header := records[0]
	if len(header) < len(baseHeader) {
		return nil, fmt.Errorf("short header: %v", header)
	}
	for i, name := range baseHeader {
		if header[i] != name {
			return nil, fmt.Errorf("unexpected column %d: %q", i, header[i])
		}
	}

	series := &model.PriceSeries{Symbol: symbol}
	for _, name := range header[len(baseHeader):] {
		series.Columns = append(series.Columns, model.Column{Name: name})
	}
	for n, rec := range records[1:] {
		bar, err := parseBar(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", n+1, err)
		}
		series.Bars = append(series.Bars, bar)
		for j := range series.Columns {
			v, err := parseNull(rec[len(baseHeader)+j])
			if err != nil {
				return nil, fmt.Errorf("row %d column %s: %w", n+1, series.Columns[j].Name, err)
			}
			series.Columns[j].Values = append(series.Columns[j].Values, v)
		}
	}
	return series, nil
}

func parseBar(rec []string) (model.OHLCV, error) {
	var b model.OHLCV
	d, err := time.Parse(dateLayout, rec[0])
	if err != nil {
		return b, fmt.Errorf("parse date %q: %w", rec[0], err)
	}
	b.Date = d
	prices := []*float64{&b.Open, &b.High, &b.Low, &b.Close}
	for i, p := range prices {
		v, err := strconv.ParseFloat(rec[i+1], 64)
		if err != nil {
			return b, fmt.Errorf("parse %s %q: %w", baseHeader[i+1], rec[i+1], err)
		}
		*p = v
	}
	b.Volume, err = strconv.ParseInt(rec[5], 10, 64)
	if err != nil {
		return b, fmt.Errorf("parse Volume %q: %w", rec[5], err)
	}
	return b, nil
}

func parseNull(s string) (null.Float, error) {
	if s == "" {
		return null.Float{}, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return null.Float{}, err
	}
	return null.FloatFrom(v), nil
}

func floatStr(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }

func nullStr(v null.Float) string {
	if !v.Valid {
		return ""
	}
	return floatStr(v.Float64)
}
