package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/temidaradev/ebikline/internal/binance"
	"github.com/temidaradev/ebikline/internal/market"
)

type Config struct {
	APIURL          string        `env:"KLINE_API_URL" envDefault:"https://api.binance.com"`
	CandleLimit     int           `env:"KLINE_CANDLE_LIMIT" envDefault:"1000"`
	HistoryPageSize int           `env:"KLINE_HISTORY_PAGE_SIZE" envDefault:"500"`
	HTTPTimeout     time.Duration `env:"KLINE_HTTP_TIMEOUT" envDefault:"30s"`
	LogLevel        string        `env:"KLINE_LOG_LEVEL" envDefault:"info"`
	Symbol          string        `env:"KLINE_SYMBOL" envDefault:"BTCUSDT"`
	Interval        string        `env:"KLINE_INTERVAL" envDefault:"1d"`
	Category        string        `env:"KLINE_CATEGORY" envDefault:"volume"`
	WindowWidth     int           `env:"KLINE_WINDOW_WIDTH" envDefault:"1024"`
	WindowHeight    int           `env:"KLINE_WINDOW_HEIGHT" envDefault:"720"`
}

// Load reads an optional .env file from the working directory and then the
// process environment.
func Load(files ...string) (Config, error) {
	// Ignore error if .env is missing
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, err
	}

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, err
	}
	if err := cfg.normalize(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) normalize() error {
	c.CandleLimit = clampLimit(c.CandleLimit)
	c.HistoryPageSize = clampLimit(c.HistoryPageSize)
	if c.HTTPTimeout < 0 {
		c.HTTPTimeout = 0
	}
	if _, err := c.ParsedInterval(); err != nil {
		return err
	}
	if _, err := c.ParsedCategory(); err != nil {
		return err
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

func (c Config) ParsedInterval() (binance.Interval, error) {
	return binance.ParseInterval(c.Interval)
}

// ParsedCategory is the listing tab selected at startup.
func (c Config) ParsedCategory() (market.Category, error) {
	return market.ParseCategory(c.Category)
}

func (c Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("log level %q: %w", c.LogLevel, err)
	}
	return l, nil
}

func clampLimit(n int) int {
	return max(1, min(binance.MaxCandleLimit, n))
}
