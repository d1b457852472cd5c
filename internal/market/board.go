package market

import (
	"context"
	"log/slog"

	"github.com/temidaradev/ebikline/internal/binance"
)

type TickerFetcher interface {
	FetchTickers(ctx context.Context) ([]binance.Ticker, error)
}

// Board holds the listing's ticker snapshot and its loading/error state.
// Methods run on the UI goroutine; post marshals completions back onto it.
type Board struct {
	fetcher TickerFetcher
	post    func(func())
	spawn   func(func())
	logger  *slog.Logger

	tickers []binance.Ticker
	loading bool
	err     error
	closed  bool
	// onUpdate receives every successfully fetched snapshot.
	onUpdate func([]binance.Ticker)
}

type BoardOption func(*Board)

func WithPost(post func(func())) BoardOption {
	return func(b *Board) {
		b.post = post
	}
}

func WithSpawn(spawn func(func())) BoardOption {
	return func(b *Board) {
		b.spawn = spawn
	}
}

func WithLogger(l *slog.Logger) BoardOption {
	return func(b *Board) {
		b.logger = l
	}
}

// WithCached seeds the board with a snapshot fetched earlier.
func WithCached(tickers []binance.Ticker) BoardOption {
	return func(b *Board) {
		b.tickers = tickers
	}
}

func OnUpdate(fn func([]binance.Ticker)) BoardOption {
	return func(b *Board) {
		b.onUpdate = fn
	}
}

func NewBoard(fetcher TickerFetcher, opts ...BoardOption) *Board {
	b := &Board{
		fetcher: fetcher,
		post:    func(fn func()) { fn() },
		spawn:   func(fn func()) { go fn() },
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Init loads the snapshot unless one is already cached.
func (b *Board) Init(ctx context.Context) {
	if len(b.tickers) == 0 {
		b.Refresh(ctx)
	}
}

// Refresh replaces the snapshot wholesale. It is ignored while a load is pending.
func (b *Board) Refresh(ctx context.Context) {
	if b.loading || b.closed {
		return
	}
	b.loading = true
	b.err = nil

	b.spawn(func() {
		tickers, err := b.fetcher.FetchTickers(ctx)
		b.post(func() {
			if b.closed {
				return
			}
			b.loading = false
			if err != nil {
				b.err = err
				b.logger.Error("failed to load tickers", "error", err)
				return
			}
			b.tickers = tickers
			if b.onUpdate != nil {
				b.onUpdate(tickers)
			}
		})
	})
}

// Close drops the results of loads still in flight.
func (b *Board) Close() {
	b.closed = true
}

func (b *Board) Tickers() []binance.Ticker {
	return b.tickers
}

func (b *Board) Loading() bool {
	return b.loading
}

// Err is the last load error, cleared by the next Refresh.
func (b *Board) Err() error {
	return b.err
}

// Listing is what the listing screen shows.
type Listing int

const (
	ShowRows Listing = iota
	ShowLoading
	ShowError
	ShowEmpty
)

// Show picks the listing state for rows visible pairs. A load error wins over
// cached rows so a failed refresh always offers a retry.
func (b *Board) Show(rows int) Listing {
	switch {
	case b.loading && rows == 0:
		return ShowLoading
	case b.err != nil:
		return ShowError
	case rows == 0:
		return ShowEmpty
	}
	return ShowRows
}
