package saver

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"StockAnalyzer/internal/model"
)

// SeriesSaver writes a PriceSeries, derived columns included, to path.
type SeriesSaver interface {
	Save(series *model.PriceSeries, path string) error
	Extension() string
}

// NewSeriesSaver creates an implementation by format (csv, json, parquet).
// Returns nil if format is not supported.
func NewSeriesSaver(format string) SeriesSaver {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "csv":
		return CSVSaver{}
	case "json":
		return JSONSaver{}
	case "parquet":
		return ParquetSaver{}
	default:
		return nil
	}
}

// DataFileName returns {SYMBOL}_stock_data.{ext}.
func DataFileName(symbol, ext string) string {
	return fmt.Sprintf("%s_stock_data.%s", symbol, ext)
}

// SaveAll writes series into dir with the CSV saver plus every extra saver.
// It returns the CSV path. Existing files are overwritten.
func SaveAll(dir string, series *model.PriceSeries, extra ...SeriesSaver) (string, error) {
	if dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("create output dir: %w", err)
		}
	}
	csvPath := filepath.Join(dir, DataFileName(series.Symbol, "csv"))
	if err := (CSVSaver{}).Save(series, csvPath); err != nil {
		return "", fmt.Errorf("write %s: %w", csvPath, err)
	}
	for _, s := range extra {
		if s == nil || s.Extension() == "csv" {
			continue
		}
		p := filepath.Join(dir, DataFileName(series.Symbol, s.Extension()))
		if err := s.Save(series, p); err != nil {
			return csvPath, fmt.Errorf("write %s: %w", p, err)
		}
	}
	return csvPath, nil
}
