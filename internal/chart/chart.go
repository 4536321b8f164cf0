// Package chart renders a price series and its SMA overlay to an image file.
package chart

import (
	"errors"
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"StockAnalyzer/internal/calculator"
	"StockAnalyzer/internal/model"
)

var (
	closeColor = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	smaColor   = color.RGBA{R: 255, G: 127, B: 14, A: 255}
)

// Options controls the rendered image size in inches.
type Options struct {
	WidthIn  float64
	HeightIn float64
}

// DefaultOptions is a 12x6 inch image.
func DefaultOptions() Options {
	return Options{WidthIn: 12, HeightIn: 6}
}

// ChartFileName returns {SYMBOL}_stock_chart.png.
func ChartFileName(symbol string) string {
	return fmt.Sprintf("%s_stock_chart.png", symbol)
}

// Render draws the close line and, when smaWindow > 0 and the SMA column has
// at least one defined value, the SMA line. The format follows path's extension.
func Render(series *model.PriceSeries, smaWindow int, path string, opts Options) error {
	if series == nil || series.Len() == 0 {
		return errors.New("empty series")
	}
	if opts.WidthIn <= 0 || opts.HeightIn <= 0 {
		opts = DefaultOptions()
	}

	p := plot.New()
	p.Title.Text = "Stock Price and SMA for " + series.Symbol
	p.X.Label.Text = "Date"
	p.Y.Label.Text = "Price (USD)"
	p.X.Tick.Marker = plot.TimeTicks{Format: "2006-01-02"}
	p.Legend.Top = true
	p.Legend.Left = true
	p.Add(plotter.NewGrid())

	closes := make(plotter.XYs, series.Len())
	for i, b := range series.Bars {
		closes[i].X = float64(b.Date.Unix())
		closes[i].Y = b.Close
	}
	closeLine, err := plotter.NewLine(closes)
	if err != nil {
		return fmt.Errorf("close line: %w", err)
	}
	closeLine.LineStyle.Color = closeColor
	closeLine.LineStyle.Width = vg.Points(1.5)
	p.Add(closeLine)
	p.Legend.Add(series.Symbol+" Close Price", closeLine)

	if smaWindow > 0 {
		name := calculator.SMAColumnName(smaWindow)
		if pts := definedPoints(series, name); len(pts) > 0 {
			smaLine, err := plotter.NewLine(pts)
			if err != nil {
				return fmt.Errorf("sma line: %w", err)
			}
			smaLine.LineStyle.Color = smaColor
			smaLine.LineStyle.Width = vg.Points(1.5)
			p.Add(smaLine)
			p.Legend.Add(name, smaLine)
		}
	}

	if err := p.Save(vg.Length(opts.WidthIn)*vg.Inch, vg.Length(opts.HeightIn)*vg.Inch, path); err != nil {
		return fmt.Errorf("save chart: %w", err)
	}
	return nil
}

// definedPoints returns the (date, value) pairs of column name with valid cells.
func definedPoints(series *model.PriceSeries, name string) plotter.XYs {
	col, ok := series.Column(name)
	if !ok {
		return nil
	}
	var pts plotter.XYs
	for i, v := range col.Values {
		if !v.Valid || i >= len(series.Bars) {
			continue
		}
		pts = append(pts, plotter.XY{X: float64(series.Bars[i].Date.Unix()), Y: v.Float64})
	}
	return pts
}
