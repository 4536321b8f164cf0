// Package pipeline runs a batch of symbols through fetch, SMA, save and chart.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"StockAnalyzer/internal/calculator"
	"StockAnalyzer/internal/chart"
	"StockAnalyzer/internal/collector"
	"StockAnalyzer/internal/model"
	"StockAnalyzer/internal/notifier"
	"StockAnalyzer/internal/recorder"
	"StockAnalyzer/internal/saver"
)

const Farewell = "Thank you for using the Stock Price Analyzer!"

// Runner processes symbols one at a time. A failure on one symbol never stops the batch.
type Runner struct {
	Collector   *collector.Collector
	OutputDir   string
	Exports     []saver.SeriesSaver // extra formats written next to the CSV
	Charts      bool
	ChartOpts   chart.Options
	Viewer      chart.Viewer
	Recorder    recorder.Recorder
	Notifier    notifier.Notifier
	Out         io.Writer // console status lines
	Interactive bool
	Log         *slog.Logger

	now func() time.Time
}

// NewRunner returns a headless runner writing into the current directory.
func NewRunner(col *collector.Collector, out io.Writer) *Runner {
	return &Runner{
		Collector: col,
		OutputDir: ".",
		Charts:    true,
		ChartOpts: chart.DefaultOptions(),
		Viewer:    chart.NoopViewer{},
		Recorder:  recorder.NewNoopRecorder(),
		Notifier:  notifier.NoopNotifier{},
		Out:       out,
		Log:       slog.Default(),
		now:       time.Now,
	}
}

// Run processes req.Symbols in order and returns one result per symbol.
// Recording and notification failures are logged, never returned.
func (r *Runner) Run(ctx context.Context, req model.RunRequest) *model.RunSummary {
	summary := &model.RunSummary{StartedAt: r.clock(), Request: req}
	r.Log.Info("batch started", "symbols", len(req.Symbols), "sma_window", req.SMAWindow)

	for _, sym := range req.Symbols {
		if err := ctx.Err(); err != nil {
			r.Log.Warn("batch interrupted", "error", err)
			break
		}
		res := r.processSymbol(ctx, sym, req.SMAWindow)
		r.logResult(res)
		summary.Results = append(summary.Results, res)
	}

	summary.FinishedAt = r.clock()
	r.Log.Info("batch finished", "succeeded", summary.Succeeded(), "failed", summary.Failed(),
		"took", summary.FinishedAt.Sub(summary.StartedAt))

	if err := r.Recorder.RecordRun(summary); err != nil {
		r.Log.Error("record run", "error", err)
	}
	if len(summary.Results) > 0 {
		if err := r.Notifier.NotifyRun(ctx, summary); err != nil {
			r.Log.Error("notify run", "error", err)
		}
	}
	if r.Interactive {
		r.println(Farewell)
	}
	return summary
}

func (r *Runner) processSymbol(ctx context.Context, sym string, window int) model.SymbolResult {
	res := model.SymbolResult{Symbol: sym, Stage: model.StageFetch}

	r.printf("Fetching data for %s...\n", sym)
	series, err := r.Collector.Fetch(ctx, sym)
	if err != nil {
		res.Err = err
		var fe *collector.FetchError
		switch {
		case errors.Is(err, collector.ErrNotFound):
			res.Status = model.StatusNotFound
			r.printf("No data found for %s. Check the stock symbol.\n", sym)
		case errors.As(err, &fe):
			res.Status = model.StatusFetchError
			r.printf("Error fetching data for %s: %v\n", sym, fe.Err)
		default:
			res.Status = model.StatusFetchError
			r.printf("Error fetching data for %s: %v\n", sym, err)
		}
		r.printf("Failed to fetch or parse stock data for %s.\n", sym)
		return res
	}
	res.Rows = series.Len()
	r.printf("Data fetched successfully for %s!\n", sym)

	if window > 0 {
		res.Stage = model.StageSMA
		series = calculator.WithSMA(series, window)
		r.printf("%s calculated for %s.\n", calculator.SMAColumnName(window), sym)
	}

	res.Stage = model.StageSave
	path, err := saver.SaveAll(r.OutputDir, series, r.Exports...)
	res.DataPath = path
	if err != nil {
		res.Status = model.StatusSaveError
		res.Err = err
		r.printf("Error saving data for %s: %v\n", sym, err)
		return res
	}
	r.printf("Data saved to %s\n", path)

	if r.Charts {
		res.Stage = model.StagePlot
		chartPath := filepath.Join(r.OutputDir, chart.ChartFileName(sym))
		if err := r.plot(ctx, series, window, chartPath); err != nil {
			res.Status = model.StatusPlotError
			res.Err = err
			r.printf("Error plotting data for %s: %v\n", sym, err)
			return res
		}
		res.ChartPath = chartPath
	}

	res.Stage = model.StageDone
	res.Status = model.StatusOK
	return res
}

func (r *Runner) plot(ctx context.Context, series *model.PriceSeries, window int, path string) error {
	if err := chart.Render(series, window, path, r.ChartOpts); err != nil {
		return err
	}
	if r.Viewer == nil {
		return nil
	}
	return r.Viewer.Show(ctx, path)
}

func (r *Runner) logResult(res model.SymbolResult) {
	attrs := []any{"symbol", res.Symbol, "status", res.Status, "stage", res.Stage, "rows", res.Rows}
	if res.DataPath != "" {
		attrs = append(attrs, "path", res.DataPath)
	}
	if res.Err != nil {
		r.Log.Warn("symbol failed", append(attrs, "error", res.Err)...)
		return
	}
	r.Log.Info("symbol processed", attrs...)
}

func (r *Runner) clock() time.Time {
	if r.now == nil {
		return time.Now()
	}
	return r.now()
}

func (r *Runner) printf(format string, args ...any) {
	fmt.Fprintf(r.Out, format, args...)
}

func (r *Runner) println(s string) {
	fmt.Fprintln(r.Out, s)
}
