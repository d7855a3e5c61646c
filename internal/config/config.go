package config

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"

	"github.com/joho/godotenv"
	"go-simpler.org/env"
)

type Config struct {
	Headless   bool   `env:"SPARKCALC_HEADLESS" default:"false"`
	Hz         int    `env:"SPARKCALC_HZ" default:"60"`
	Ticks      uint64 `env:"SPARKCALC_TICKS" default:"0"`
	Keys       string `env:"SPARKCALC_KEYS"`
	Scale      int    `env:"SPARKCALC_SCALE" default:"1"`
	Title      string `env:"SPARKCALC_TITLE" default:"Calculator"`
	StepBudget int    `env:"SPARKCALC_STEP_BUDGET" default:"256"`
	LogLevel   string `env:"LOG_LEVEL" default:"info"`
	LogFormat  string `env:"LOG_FORMAT" default:"text"`
}

// Load reads .env (if present), then the environment, then command-line
// flags, each layer overriding the previous one.
func Load(args []string) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file found, using environment variables")
	}

	var cfg Config
	if err := env.Load(&cfg, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	fs := flag.NewFlagSet("sparkcalc", flag.ContinueOnError)
	fs.BoolVar(&cfg.Headless, "headless", cfg.Headless, "Run without a window.")
	fs.IntVar(&cfg.Hz, "hz", cfg.Hz, "Tick rate in headless mode.")
	fs.Uint64Var(&cfg.Ticks, "ticks", cfg.Ticks, "Stop after N ticks in headless mode (0 = run forever).")
	fs.StringVar(&cfg.Keys, "keys", cfg.Keys, "Key script typed in headless mode, e.g. \"2+3*4<enter>\".")
	fs.IntVar(&cfg.Scale, "scale", cfg.Scale, "Window scale factor.")
	fs.StringVar(&cfg.Title, "title", cfg.Title, "Window title.")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn, error.")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format: text or json.")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Hz <= 0 {
		return fmt.Errorf("hz must be positive, got %d", c.Hz)
	}
	if c.Scale <= 0 {
		return fmt.Errorf("scale must be positive, got %d", c.Scale)
	}
	if c.StepBudget <= 0 {
		return fmt.Errorf("step budget must be positive, got %d", c.StepBudget)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.LogLevel)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.LogFormat)
	}
	if c.Keys != "" && !c.Headless {
		return errors.New("keys requires headless mode")
	}
	return nil
}
