package ui

import (
	"context"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/temidaradev/ebikline/internal/app"
	"github.com/temidaradev/ebikline/internal/binance"
	"github.com/temidaradev/ebikline/internal/chart"
	"github.com/temidaradev/ebikline/internal/market"
)

// MarketData is everything the screens fetch.
type MarketData interface {
	chart.CandleFetcher
	market.TickerFetcher
}

type Options struct {
	Symbol      string
	Interval    binance.Interval
	Category    market.Category
	CandleLimit int
	PageSize    int
	DeviceScale float64
	Logger      *slog.Logger
}

// Game is the ebiten.Game hosting the listing and chart screens. Fetch
// results are posted to the mailbox and applied at the start of Update.
type Game struct {
	ctx    context.Context
	data   MarketData
	opts   Options
	logger *slog.Logger

	th      *theme
	state   *app.State
	mailbox app.Mailbox
	back    app.BackStack
	keys    backKeys
	input   *pointerInput

	board *market.Board
	home  *homeView

	chart       *chart.Chart
	chartView   *chartView
	disposeBack func()

	width, height float64
}

func NewGame(ctx context.Context, data MarketData, opts Options) (*Game, error) {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.DeviceScale <= 0 {
		opts.DeviceScale = 1
	}
	th, err := newTheme(opts.DeviceScale)
	if err != nil {
		return nil, err
	}

	g := &Game{
		ctx:    ctx,
		data:   data,
		opts:   opts,
		logger: opts.Logger,
		th:     th,
		state:  app.NewState(opts.Symbol, opts.Interval),
		input:  newPointerInput(),
	}
	g.state.SetCategory(opts.Category)
	g.openHome()
	return g, nil
}

func (g *Game) openHome() {
	g.board = market.NewBoard(g.data,
		market.WithPost(g.mailbox.Post),
		market.WithLogger(g.logger),
		market.WithCached(g.state.Tickers),
		market.OnUpdate(func(tickers []binance.Ticker) {
			g.state.SetTickers(tickers)
			if g.home != nil {
				g.home.tickersChanged()
			}
		}),
	)
	g.home = newHomeView(g.th, g.state, g.board)
	g.board.Init(g.ctx)
}

func (g *Game) closeHome() {
	if g.board != nil {
		g.board.Close()
	}
	g.board, g.home = nil, nil
}

// openChart replaces the chart with a fresh one for the state's symbol and
// interval and starts loading it.
func (g *Game) openChart() {
	g.closeChart()

	g.logger.Info("opening chart", "symbol", g.state.Symbol, "interval", g.state.Interval.String())
	g.chart = chart.New(g.ctx, g.data, chart.Options{
		Symbol:   g.state.Symbol,
		Interval: g.state.Interval,
		Limit:    g.opts.CandleLimit,
		PageSize: g.opts.PageSize,
		Post:     g.mailbox.Post,
		Logger:   g.logger,
	})
	g.chartView = newChartView(g.th, g.chart)
	g.disposeBack = g.back.Register(g.goBack)
	g.chart.Load()
}

func (g *Game) closeChart() {
	if g.disposeBack != nil {
		g.disposeBack()
		g.disposeBack = nil
	}
	if g.chart != nil {
		g.chart.Close()
	}
	g.chart, g.chartView = nil, nil
}

func (g *Game) goBack() {
	if !g.state.GoBack() {
		return
	}
	g.logger.Debug("back to listing", "symbol", g.state.Symbol)
	g.closeChart()
	g.openHome()
}

func (g *Game) Update() error {
	if g.ctx.Err() != nil {
		return ebiten.Termination
	}
	g.mailbox.Drain()
	g.input.update()

	if g.keys.pressed() {
		g.back.Back()
		return nil
	}

	switch g.state.Page {
	case app.HomePage:
		if g.home.update(g.ctx, g.input, g.width, g.height) {
			g.closeHome()
			g.openChart()
		}
	case app.ChartPage:
		act := g.chartView.update(g.input, g.width, g.height)
		switch {
		case act.back:
			g.back.Back()
		case act.refresh:
			g.chart.Load()
		case act.interval != "":
			if g.state.ChangeTimeframe(act.interval) {
				g.openChart()
			}
		}
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	switch g.state.Page {
	case app.HomePage:
		g.home.draw(screen)
	case app.ChartPage:
		g.chartView.draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	g.width, g.height = float64(outsideWidth), float64(outsideHeight)
	return outsideWidth, outsideHeight
}

// Close stops every in-flight fetch.
func (g *Game) Close() {
	g.closeChart()
	g.closeHome()
}
