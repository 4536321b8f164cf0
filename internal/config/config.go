package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"

	"StockAnalyzer/internal/saver"
)

// Config holds all application configuration.
type Config struct {
	OutputDir string   `yaml:"output_dir"`
	Exports   []string `yaml:"exports"`
	Chart     struct {
		Enabled     *bool   `yaml:"enabled"`
		Interactive *bool   `yaml:"interactive"`
		WidthIn     float64 `yaml:"width_in"`
		HeightIn    float64 `yaml:"height_in"`
		Viewer      string  `yaml:"viewer"`
	} `yaml:"chart"`
	DataSource struct {
		BaseURL string `yaml:"base_url"`
	} `yaml:"data_source"`
	Proxy    string `yaml:"proxy"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Schedule struct {
		Cron      string   `yaml:"cron"`
		Symbols   []string `yaml:"symbols"`
		SMAWindow int      `yaml:"sma_window"`
	} `yaml:"schedule"`
	LogLevel   string `yaml:"log_level"`
	RunOnStart bool   `yaml:"run_on_start"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
// A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("OUTPUT_DIR"); v != "" {
		cfg.OutputDir = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("CRON_SCHEDULE"); v != "" {
		cfg.Schedule.Cron = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("RUN_ON_START"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.RunOnStart = b
		}
	}

	// Defaults
	if cfg.OutputDir == "" {
		cfg.OutputDir = "."
	}
	if cfg.Chart.Enabled == nil {
		cfg.Chart.Enabled = boolPtr(true)
	}
	if cfg.Chart.Interactive == nil {
		cfg.Chart.Interactive = boolPtr(true)
	}
	if cfg.Chart.WidthIn == 0 {
		cfg.Chart.WidthIn = 12
	}
	if cfg.Chart.HeightIn == 0 {
		cfg.Chart.HeightIn = 6
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	symbols := cfg.Schedule.Symbols[:0]
	for _, s := range cfg.Schedule.Symbols {
		if s = strings.ToUpper(strings.TrimSpace(s)); s != "" {
			symbols = append(symbols, s)
		}
	}
	cfg.Schedule.Symbols = symbols

	return cfg, nil
}

// Scheduled reports whether the program runs batches on a cron schedule
// instead of prompting.
func (c *Config) Scheduled() bool { return c.Schedule.Cron != "" }

// ChartsEnabled reports whether charts are rendered at all.
func (c *Config) ChartsEnabled() bool { return c.Chart.Enabled == nil || *c.Chart.Enabled }

// InteractiveCharts reports whether rendered charts are opened and waited on.
// Scheduled runs are always headless.
func (c *Config) InteractiveCharts() bool {
	return !c.Scheduled() && (c.Chart.Interactive == nil || *c.Chart.Interactive)
}

// TelegramEnabled reports whether run summaries are sent to Telegram.
func (c *Config) TelegramEnabled() bool {
	return c.Telegram.BotToken != "" && c.Telegram.ChatID != ""
}

// Validate checks that the configured values are usable.
func (c *Config) Validate() error {
	for _, e := range c.Exports {
		if saver.NewSeriesSaver(e) == nil {
			return fmt.Errorf("exports: unsupported format %q", e)
		}
	}
	if c.Chart.WidthIn < 0 || c.Chart.HeightIn < 0 {
		return fmt.Errorf("chart size must be positive")
	}
	if (c.Telegram.BotToken == "") != (c.Telegram.ChatID == "") {
		return fmt.Errorf("telegram.bot_token and telegram.chat_id must be set together")
	}
	if c.Scheduled() {
		if _, err := cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor).Parse(c.Schedule.Cron); err != nil {
			return fmt.Errorf("schedule.cron: %w", err)
		}
		if len(c.Schedule.Symbols) == 0 {
			return fmt.Errorf("schedule.symbols is required when schedule.cron is set")
		}
		if c.Schedule.SMAWindow < 0 {
			return fmt.Errorf("schedule.sma_window must not be negative")
		}
	}
	return nil
}

func boolPtr(b bool) *bool { return &b }
