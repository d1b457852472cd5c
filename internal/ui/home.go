package ui

import (
	"context"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/temidaradev/ebikline/internal/app"
	"github.com/temidaradev/ebikline/internal/binance"
	"github.com/temidaradev/ebikline/internal/market"
	"github.com/temidaradev/ebikline/internal/ui/layout"
)

const rerankEvery = time.Minute

// homeView is the listing of USDT pairs with search and category tabs.
type homeView struct {
	th    *theme
	state *app.State
	board *market.Board

	list    layout.List
	title   layout.Rect
	refresh button
	retry   button
	search  layout.Rect
	tabs    []button
	card    layout.Rect

	ranked   []binance.Ticker
	rankedAt time.Time
	dirty    bool
	runes    []rune
}

func newHomeView(th *theme, state *app.State, board *market.Board) *homeView {
	return &homeView{th: th, state: state, board: board, dirty: true}
}

func (h *homeView) arrange(width, height float64) {
	th := h.th
	pad := th.px(12)
	row := th.px(36)

	h.title = layout.Rect{X: pad, Y: pad, W: width - 2*pad, H: row}
	rw := buttonWidth("Refresh", th)
	h.refresh = button{
		rect:     layout.Rect{X: width - pad - rw, Y: pad, W: rw, H: row},
		label:    "Refresh",
		disabled: h.board.Loading(),
	}

	h.search = layout.Rect{X: pad, Y: h.title.Bottom() + th.px(8), W: width - 2*pad, H: row}

	cats := market.Categories()
	widths := make([]float64, len(cats))
	for i := range widths {
		widths[i] = (width - 2*pad - th.px(6)*float64(len(cats)-1)) / float64(len(cats))
	}
	rects := layout.Row(pad, h.search.Bottom()+th.px(8), row, th.px(6), widths...)
	h.tabs = h.tabs[:0]
	for i, c := range cats {
		h.tabs = append(h.tabs, button{rect: rects[i], label: c.String(), selected: c == h.state.Category})
	}

	top := rects[0].Bottom() + th.px(8)
	h.list.Area = layout.Rect{X: pad, Y: top, W: width - 2*pad, H: height - top - pad}
	h.list.RowHeight = th.px(56)

	h.card = layout.Rect{X: pad, Y: top, W: width - 2*pad, H: th.px(120)}
	rtw := buttonWidth("Retry", th)
	h.retry = button{
		rect:  layout.Rect{X: h.card.X + (h.card.W-rtw)/2, Y: h.card.Bottom() - row - th.px(12), W: rtw, H: row},
		label: "Retry",
	}
}

// update reports whether a pair was opened.
func (h *homeView) update(ctx context.Context, in *pointerInput, width, height float64) (opened bool) {
	h.arrange(width, height)

	if h.refresh.hit(in) {
		h.board.Refresh(ctx)
	}
	if h.board.Show(len(h.ranked)) == market.ShowError && h.retry.hit(in) {
		h.board.Refresh(ctx)
		return false
	}
	for i, b := range h.tabs {
		if b.hit(in) {
			h.state.SetCategory(market.Categories()[i])
			h.filtered()
		}
	}

	if h.typing() {
		h.filtered()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadEnter) {
		if h.state.SubmitQuery() {
			return true
		}
	}

	h.rerank()

	if in.wheelY != 0 && h.list.Area.Contains(in.cursorX, in.cursorY) {
		h.list.Scroll -= in.wheelY * h.list.RowHeight
	}
	if in.mouseStartedIn(h.list.Area) {
		h.list.Scroll -= in.mouseDelta.dy
	}
	if len(in.touchOrder) == 1 {
		id := in.touchOrder[0]
		if p := in.touches[id]; h.list.Area.Contains(p.StartX, p.StartY) {
			h.list.Scroll -= in.touchDelta[id].dy
		}
	}
	h.list.ClampScroll(len(h.ranked))

	if h.board.Show(len(h.ranked)) != market.ShowRows {
		return false
	}
	for _, r := range in.released {
		if !r.tap {
			continue
		}
		if idx := h.list.RowAt(r.x, r.y, len(h.ranked)); idx >= 0 {
			h.state.SelectPair(h.ranked[idx].Symbol)
			return true
		}
	}
	return false
}

// typing applies this tick's keyboard input to the search query.
func (h *homeView) typing() bool {
	h.runes = ebiten.AppendInputChars(h.runes[:0])
	changed := false
	q := []rune(h.state.Query)
	if len(h.runes) > 0 {
		q = append(q, h.runes...)
		changed = true
	}
	if len(q) > 0 && repeating(ebiten.KeyBackspace) {
		q = q[:len(q)-1]
		changed = true
	}
	if changed {
		h.state.SetQuery(string(q))
	}
	return changed
}

// repeating is true on the first tick of a key press and then every few
// ticks while it is held.
func repeating(key ebiten.Key) bool {
	d := inpututil.KeyPressDuration(key)
	return d == 1 || d > 30 && d%3 == 0
}

// rerank recomputes the visible rows when the inputs changed, and once a
// minute so the stale filter keeps up with the clock.
func (h *homeView) rerank() {
	now := time.Now()
	if !h.dirty && now.Sub(h.rankedAt) < rerankEvery {
		return
	}
	h.ranked = market.Rank(h.state.Tickers, h.state.Category, h.state.Query, now)
	h.rankedAt = now
	h.dirty = false
}

// filtered restarts the list from the top after the category or query changed.
func (h *homeView) filtered() {
	h.dirty = true
	h.list.Scroll = 0
}

// tickersChanged marks the ranking for recomputation.
func (h *homeView) tickersChanged() {
	h.dirty = true
}

func (h *homeView) draw(dst *ebiten.Image) {
	th := h.th
	drawText(dst, "USDT Trading Pairs", h.title.X, h.title.Y, th.titleFace, textColor)
	h.refresh.draw(dst, th)

	fillRect(dst, h.search, panelColor)
	query, clr := h.state.Query, textColor
	if query == "" {
		query, clr = "Search symbol, Enter to open", mutedColor
	}
	drawText(dst, query, h.search.X+th.px(8), h.search.Y+th.px(8), th.face, clr)

	for _, b := range h.tabs {
		b.draw(dst, th)
	}

	switch h.board.Show(len(h.ranked)) {
	case market.ShowLoading:
		drawCentered(dst, "Loading...", h.list.Area, th.face, mutedColor)
		return
	case market.ShowError:
		fillRect(dst, h.card, panelColor)
		drawText(dst, "Error: "+h.board.Err().Error(), h.card.X+th.px(12), h.card.Y+th.px(12), th.face, bearColor)
		h.retry.draw(dst, th)
		return
	case market.ShowEmpty:
		drawCentered(dst, "No trading pairs available", h.list.Area, th.face, mutedColor)
		return
	}

	if h.board.Loading() {
		drawRight(dst, "Loading...", h.refresh.rect.X-th.px(8), h.refresh.rect.Y+th.px(8), th.face, mutedColor)
	}

	sub := dst.SubImage(canvasBounds(h.list.Area)).(*ebiten.Image)
	from, to := h.list.Visible(len(h.ranked))
	for i := from; i < to; i++ {
		h.drawRow(sub, h.list.RowRect(i), h.ranked[i])
	}
}

func (h *homeView) drawRow(dst *ebiten.Image, r layout.Rect, t binance.Ticker) {
	th := h.th
	card := r.Inset(th.px(2))
	fillRect(dst, card, panelColor)

	x, y := card.X+th.px(10), card.Y+th.px(8)
	drawText(dst, t.Symbol, x, y, th.face, textColor)
	drawText(dst, "Vol: "+market.FormatVolume(t.QuoteVol()), x, y+th.lineHeight, th.smallFace, mutedColor)

	change := t.ChangePercent()
	clr := bullColor
	if change < 0 {
		clr = bearColor
	}
	right := card.Right() - th.px(10)
	drawRight(dst, market.FormatLastPrice(t.Last()), right, y, th.face, textColor)
	drawRight(dst, market.FormatChange(change), right, y+th.lineHeight, th.smallFace, clr)

	vector.StrokeLine(dst, float32(card.X), float32(card.Bottom()), float32(card.Right()), float32(card.Bottom()), 1, gridColor, false)
}
