package main

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"StockAnalyzer/internal/chart"
	"StockAnalyzer/internal/collector"
	"StockAnalyzer/internal/config"
	"StockAnalyzer/internal/model"
	"StockAnalyzer/internal/notifier"
	"StockAnalyzer/internal/pipeline"
	"StockAnalyzer/internal/prompt"
	"StockAnalyzer/internal/recorder"
	"StockAnalyzer/internal/saver"
	"StockAnalyzer/internal/scheduler"
	"StockAnalyzer/internal/slogx"
)

func main() {
	os.Exit(run())
}

// run returns the process exit code. Deferred cleanup runs before main exits.
func run() int {
	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		slog.Error("load config", "error", err)
		return 1
	}
	log := slogx.NewDefault(cfg.LogLevel)
	slog.SetDefault(log)
	if err := cfg.Validate(); err != nil {
		log.Error("config validation", "error", err)
		return 1
	}

	// Init fetcher
	fetcher := collector.NewYahooFetcher(cfg.DataSource.BaseURL, cfg.Proxy)
	log.Debug("data source", "provider", fetcher.Name(), "base_url", fetcher.BaseURL)

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Warn("init sqlite recorder failed, using noop", "error", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}
	defer rec.Close()

	stdin := bufio.NewReader(os.Stdin)
	runner := pipeline.NewRunner(collector.NewCollector(fetcher), os.Stdout)
	runner.OutputDir = cfg.OutputDir
	runner.Charts = cfg.ChartsEnabled()
	runner.ChartOpts = chart.Options{WidthIn: cfg.Chart.WidthIn, HeightIn: cfg.Chart.HeightIn}
	runner.Recorder = rec
	runner.Log = log
	for _, f := range cfg.Exports {
		runner.Exports = append(runner.Exports, saver.NewSeriesSaver(f))
	}
	if cfg.InteractiveCharts() {
		runner.Viewer = chart.CommandViewer{Command: cfg.Chart.Viewer, In: stdin, Out: os.Stdout}
	}
	if cfg.TelegramEnabled() {
		runner.Notifier = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)
	}

	// Context for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Scheduled() {
		if err := runScheduled(ctx, cfg, runner, log); err != nil {
			log.Error("scheduled mode", "error", err)
			return 1
		}
		return 0
	}

	if err := runInteractive(ctx, runner, stdin, os.Stdout); err != nil {
		log.Error("read input", "error", err)
		return 1
	}
	return 0
}

func runInteractive(ctx context.Context, runner *pipeline.Runner, in *bufio.Reader, out io.Writer) error {
	runner.Interactive = true
	req, err := prompt.New(in, out).ReadRequest()
	if err != nil {
		return err
	}
	runner.Run(ctx, req)
	return nil
}

func runScheduled(ctx context.Context, cfg *config.Config, runner *pipeline.Runner, log *slog.Logger) error {
	req := model.RunRequest{Symbols: cfg.Schedule.Symbols, SMAWindow: cfg.Schedule.SMAWindow}

	sched := scheduler.NewScheduler(ctx, runner, log)
	if err := sched.RegisterBatch(cfg.Schedule.Cron, req); err != nil {
		return err
	}
	sched.Start()
	defer sched.Stop()

	if cfg.RunOnStart {
		log.Info("RUN_ON_START enabled, running batch now")
		sched.Trigger(req)
	}

	log.Info("StockAnalyzer is running. Press Ctrl+C to stop.", "cron", cfg.Schedule.Cron)
	<-ctx.Done()
	log.Info("shutdown signal received, stopping...")
	return nil
}
