package chart

import (
	"context"
	"log/slog"
	"time"

	"github.com/temidaradev/ebikline/internal/binance"
)

const (
	DefaultLimit    = binance.MaxCandleLimit
	DefaultPageSize = 500

	priceTicks = 12
	timeTicks  = 6
)

// CandleFetcher is the part of the market data client the chart needs.
type CandleFetcher interface {
	FetchCandles(ctx context.Context, q binance.KlineQuery) ([]binance.Candle, error)
}

type Options struct {
	Symbol   string
	Interval binance.Interval
	// Limit is the batch size of the initial load and of refreshes.
	Limit int
	// PageSize is the batch size of each backward history fetch.
	PageSize int
	// Post runs fn on the UI goroutine. Nil runs fn in place.
	Post func(fn func())
	// Go runs a blocking fetch. Nil starts a goroutine.
	Go     func(fn func())
	Logger *slog.Logger
}

// Chart owns one symbol/interval series, its viewport and crosshair, and
// coordinates backward pagination. All methods must be called from the UI
// goroutine; fetch completions are delivered there through Options.Post.
type Chart struct {
	opts    Options
	fetcher CandleFetcher
	logger  *slog.Logger

	View      *Viewport
	Crosshair Crosshair

	candles []binance.Candle
	loading bool
	lastErr error

	isLoadingHistorical        bool
	hasRequestedHistoricalData bool

	// generation is bumped by every full load; completions from older
	// generations are discarded.
	generation uint64

	ctx    context.Context
	cancel context.CancelFunc
	closed bool
}

func New(ctx context.Context, fetcher CandleFetcher, opts Options) *Chart {
	if opts.Limit <= 0 {
		opts.Limit = DefaultLimit
	}
	if opts.PageSize <= 0 {
		opts.PageSize = DefaultPageSize
	}
	if opts.Post == nil {
		opts.Post = func(fn func()) { fn() }
	}
	if opts.Go == nil {
		opts.Go = func(fn func()) { go fn() }
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	ctx, cancel := context.WithCancel(ctx)
	return &Chart{
		opts:    opts,
		fetcher: fetcher,
		logger:  opts.Logger.With("symbol", opts.Symbol, "interval", opts.Interval.String()),
		View:    NewViewport(),
		ctx:     ctx,
		cancel:  cancel,
	}
}

func (c *Chart) Symbol() string {
	return c.opts.Symbol
}

func (c *Chart) Interval() binance.Interval {
	return c.opts.Interval
}

func (c *Chart) Candles() []binance.Candle {
	return c.candles
}

func (c *Chart) Loading() bool {
	return c.loading
}

func (c *Chart) LoadingHistory() bool {
	return c.isLoadingHistorical
}

// Err is the error of the last failed full load.
func (c *Chart) Err() error {
	return c.lastErr
}

// Close stops delivery of in-flight results.
func (c *Chart) Close() {
	c.closed = true
	c.cancel()
}

// Load replaces the series with the latest batch. It is used both for the
// initial load and for manual refresh; any pending history fetch is
// superseded.
func (c *Chart) Load() {
	if c.closed {
		return
	}
	c.generation++
	gen := c.generation
	c.isLoadingHistorical = false
	c.hasRequestedHistoricalData = false
	c.View.UnlockPrices()
	c.loading = true

	q := binance.KlineQuery{
		Symbol:   c.opts.Symbol,
		Interval: c.opts.Interval,
		Limit:    c.opts.Limit,
	}
	c.fetch(q, func(candles []binance.Candle, err error) {
		if gen != c.generation {
			c.logger.Debug("discarding superseded load")
			return
		}
		c.loading = false
		if err != nil {
			c.lastErr = err
			c.logger.Error("failed to load candles", "error", err)
			return
		}
		c.lastErr = nil
		c.candles = candles
		c.View.InitialPosition = true
	})
}

// LoadOlder requests the page of candles ending just before the oldest loaded
// one. It reports whether a request was issued; at most one is in flight.
func (c *Chart) LoadOlder() bool {
	if c.closed || c.loading || len(c.candles) == 0 {
		return false
	}
	if c.isLoadingHistorical || c.hasRequestedHistoricalData {
		return false
	}

	minPrice, maxPrice := c.View.PriceRange(c.candles)
	c.View.LockPrices(minPrice, maxPrice)
	c.isLoadingHistorical = true
	c.hasRequestedHistoricalData = true

	gen := c.generation
	q := binance.KlineQuery{
		Symbol:   c.opts.Symbol,
		Interval: c.opts.Interval,
		Limit:    c.opts.PageSize,
		EndTime:  c.candles[0].OpenTime - 1,
	}
	c.fetch(q, func(older []binance.Candle, err error) {
		c.applyHistory(gen, older, err)
	})
	return true
}

func (c *Chart) applyHistory(gen uint64, older []binance.Candle, err error) {
	if gen != c.generation {
		c.logger.Debug("discarding history superseded by refresh", "count", len(older))
		return
	}
	defer func() {
		c.isLoadingHistorical = false
		c.hasRequestedHistoricalData = false
		c.View.UnlockPrices()
	}()

	if err != nil {
		c.logger.Warn("failed to load older candles", "error", err)
		return
	}

	merged, added := PrependHistory(c.candles, older)
	if added == 0 {
		c.logger.Debug("no older candles")
		return
	}
	c.candles = merged
	c.View.ShiftForPrepended(added)
	c.logger.Debug("prepended older candles", "added", added, "total", len(merged))
}

func (c *Chart) fetch(q binance.KlineQuery, done func([]binance.Candle, error)) {
	ctx := c.ctx
	c.opts.Go(func() {
		candles, err := c.fetcher.FetchCandles(ctx, q)
		c.opts.Post(func() {
			if c.closed {
				return
			}
			done(candles, err)
		})
	})
}

// Layout records the canvas size and performs the pending auto-center.
func (c *Chart) Layout(width, height float64) {
	c.View.SetCanvasSize(width, height)
	c.View.AutoCenter(c.candles)
}

// Pan moves the chart, or the touch crosshair while it is active. Panning
// towards older candles near the data start triggers a history fetch.
func (c *Chart) Pan(dx, dy float64) {
	if c.Crosshair.TouchActive() {
		c.Crosshair.Drag(dx, dy, c.View.Width, c.View.Height)
		return
	}
	if dx == 0 && dy == 0 {
		return
	}
	c.View.Pan(dx, dy, len(c.candles))
	if dx > 0 && c.View.NearDataStart() {
		c.LoadOlder()
	}
}

func (c *Chart) Pinch(factor, centroidX float64) {
	if factor == 1 || factor <= 0 {
		return
	}
	c.View.ZoomX(factor, centroidX)
}

func (c *Chart) Scroll(delta float64) {
	c.View.ScrollZoom(delta)
}

func (c *Chart) DragPriceBar(dy float64) {
	c.View.DragYZoom(dy)
}

// ResetView restores default zoom and re-centers on the latest candle.
func (c *Chart) ResetView() {
	c.View.Reset()
	c.View.AutoCenter(c.candles)
}

func (c *Chart) PriceRange() (minPrice, maxPrice float64) {
	return c.View.PriceRange(c.candles)
}

// Last returns the most recent candle.
func (c *Chart) Last() (binance.Candle, bool) {
	if len(c.candles) == 0 {
		return binance.Candle{}, false
	}
	return c.candles[len(c.candles)-1], true
}

// Inspection is what the crosshair points at.
type Inspection struct {
	Pos   Point
	Price float64
	// Time is the open time of the candle slot under the crosshair. Slots
	// outside the loaded data are extrapolated by the interval.
	Time      time.Time
	Candle    binance.Candle
	HasCandle bool
}

func (c *Chart) Inspect() (Inspection, bool) {
	pos, ok := c.Crosshair.Position()
	if !ok || !c.View.HasCanvas() {
		return Inspection{}, false
	}
	minPrice, maxPrice := c.PriceRange()
	in := Inspection{
		Pos:   pos,
		Price: c.View.YToPrice(pos.Y, minPrice, maxPrice),
	}
	n := len(c.candles)
	if n == 0 {
		return in, true
	}
	step := c.opts.Interval.Duration()
	switch idx := c.View.XToIndex(pos.X); {
	case idx < 0:
		in.Time = c.candles[0].OpenAt().Add(time.Duration(idx) * step)
	case idx >= n:
		in.Time = c.candles[n-1].OpenAt().Add(time.Duration(idx-n+1) * step)
	default:
		in.Candle = c.candles[idx]
		in.HasCandle = true
		in.Time = in.Candle.OpenAt()
	}
	return in, true
}

// PriceTicks returns evenly spaced prices from the top to the bottom of the canvas.
func (c *Chart) PriceTicks() []float64 {
	minPrice, maxPrice := c.PriceRange()
	ticks := make([]float64, priceTicks)
	for i := range ticks {
		y := c.View.Height * float64(i) / float64(priceTicks-1)
		ticks[i] = c.View.YToPrice(y, minPrice, maxPrice)
	}
	return ticks
}

// TimeTicks returns open times spread across the visible candles.
func (c *Chart) TimeTicks() []time.Time {
	first, last, ok := c.View.VisibleRange(len(c.candles))
	if !ok {
		return nil
	}
	span := max(last-first, 1)
	ticks := make([]time.Time, 0, timeTicks)
	for i := 0; i < timeTicks; i++ {
		idx := clampInt(first+span*i/(timeTicks-1), 0, len(c.candles)-1)
		ticks = append(ticks, c.candles[idx].OpenAt())
	}
	return ticks
}
