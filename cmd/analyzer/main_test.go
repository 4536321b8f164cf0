package main

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockAnalyzer/internal/collector"
	"StockAnalyzer/internal/config"
	"StockAnalyzer/internal/pipeline"
)

func quietRunner() *pipeline.Runner {
	r := pipeline.NewRunner(collector.NewCollector(collector.NewYahooFetcher("http://127.0.0.1:0", "")), io.Discard)
	r.Log = slog.New(slog.NewTextHandler(io.Discard, nil))
	return r
}

func TestRun_ConfigFailuresExitNonZero(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"unparsable yaml", "exports: [json\n"},
		{"invalid value", "exports: [xlsx]\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.body), 0644))
			t.Setenv("CONFIG_PATH", path)
			t.Setenv("LOG_LEVEL", "error")

			assert.Equal(t, 1, run())
		})
	}
}

func TestRunScheduled_RegisterFailure(t *testing.T) {
	cfg := &config.Config{}
	cfg.Schedule.Cron = "@hourly"

	err := runScheduled(context.Background(), cfg, quietRunner(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	assert.ErrorContains(t, err, "no symbols")
}

func TestRunInteractive_EOF(t *testing.T) {
	r := quietRunner()
	err := runInteractive(context.Background(), r, bufio.NewReader(strings.NewReader("")), io.Discard)
	assert.ErrorIs(t, err, io.EOF)
	assert.True(t, r.Interactive)
}
