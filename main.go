package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/lmittmann/tint"

	"github.com/temidaradev/ebikline/internal/binance"
	"github.com/temidaradev/ebikline/internal/config"
	"github.com/temidaradev/ebikline/internal/ui"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	level := new(slog.LevelVar)
	slog.SetDefault(slog.New(
		tint.NewHandler(os.Stderr, &tint.Options{
			Level:      level,
			TimeFormat: time.DateTime,
		}),
	))

	cfg, err := config.Load()
	if err != nil {
		slog.ErrorContext(ctx, "failed to load config", "error", err)
		os.Exit(1)
	}
	lvl, _ := cfg.Level()
	level.Set(lvl)
	interval, _ := cfg.ParsedInterval()
	category, _ := cfg.ParsedCategory()

	client := binance.NewClient(
		binance.WithBaseURL(cfg.APIURL),
		binance.WithTimeout(cfg.HTTPTimeout),
		binance.WithLogger(slog.Default()),
	)

	deviceScale := ebiten.Monitor().DeviceScaleFactor()
	game, err := ui.NewGame(ctx, client, ui.Options{
		Symbol:      cfg.Symbol,
		Interval:    interval,
		Category:    category,
		CandleLimit: cfg.CandleLimit,
		PageSize:    cfg.HistoryPageSize,
		DeviceScale: deviceScale,
		Logger:      slog.Default(),
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to create game", "error", err)
		os.Exit(1)
	}
	defer game.Close()

	ebiten.SetWindowSize(cfg.WindowWidth, cfg.WindowHeight)
	ebiten.SetWindowTitle("Kline Charts")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	slog.InfoContext(ctx, "starting", "api", cfg.APIURL, "symbol", cfg.Symbol, "interval", interval.String())
	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		slog.ErrorContext(ctx, "game stopped", "error", err)
		os.Exit(1)
	}
}
