package ui

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/temidaradev/ebikline/internal/binance"
	"github.com/temidaradev/ebikline/internal/chart"
	"github.com/temidaradev/ebikline/internal/market"
	"github.com/temidaradev/ebikline/internal/ui/layout"
)

// chartAction is what the chart header asked the game to do this tick.
type chartAction struct {
	back     bool
	refresh  bool
	interval binance.Interval
}

// chartView renders one chart.Chart and maps pointer input onto it.
type chartView struct {
	th    *theme
	chart *chart.Chart

	layout   layout.ChartLayout
	back     button
	title    button
	refresh  button
	reset    button
	timeline []button

	pinch layout.Pinch
}

func newChartView(th *theme, c *chart.Chart) *chartView {
	return &chartView{th: th, chart: c}
}

func (v *chartView) arrange(width, height float64) {
	th := v.th
	v.layout = layout.NewChartLayout(width, height, th.scale)

	pad := th.px(8)
	h := v.layout.Header.H - 2*pad
	labels := []string{"< Back", v.chart.Symbol(), "Refresh", "Reset"}
	widths := make([]float64, 0, len(labels)+len(binance.Intervals()))
	for _, l := range labels {
		widths = append(widths, buttonWidth(l, th))
	}
	for _, iv := range binance.Intervals() {
		widths = append(widths, buttonWidth(iv.String(), th))
	}
	rects := layout.Row(pad, pad, h, th.px(6), widths...)

	v.back = button{rect: rects[0], label: labels[0]}
	v.title = button{rect: rects[1], label: labels[1], disabled: true}
	v.refresh = button{rect: rects[2], label: labels[2], disabled: v.chart.Loading()}
	v.reset = button{rect: rects[3], label: labels[3]}
	v.timeline = v.timeline[:0]
	for i, iv := range binance.Intervals() {
		v.timeline = append(v.timeline, button{
			rect:     rects[4+i],
			label:    iv.String(),
			selected: iv == v.chart.Interval(),
		})
	}
}

func (v *chartView) update(in *pointerInput, width, height float64) chartAction {
	v.arrange(width, height)
	canvas := v.layout.Canvas
	v.chart.Layout(canvas.W, canvas.H)

	var act chartAction
	switch {
	case v.back.hit(in):
		act.back = true
		return act
	case v.refresh.hit(in):
		act.refresh = true
		return act
	case v.reset.hit(in):
		v.chart.ResetView()
		return act
	}
	for i, b := range v.timeline {
		if b.hit(in) {
			act.interval = binance.Intervals()[i]
			return act
		}
	}

	v.mouse(in)
	v.touch(in)

	for _, r := range in.released {
		if r.tap && canvas.Contains(r.x, r.y) {
			v.chart.Crosshair.Tap()
		}
	}
	return act
}

func (v *chartView) mouse(in *pointerInput) {
	canvas, priceBar := v.layout.Canvas, v.layout.PriceBar

	if in.wheelY != 0 && (canvas.Contains(in.cursorX, in.cursorY) || priceBar.Contains(in.cursorX, in.cursorY)) {
		v.chart.Scroll(-in.wheelY)
	}

	if in.rightPress && canvas.Contains(in.cursorX, in.cursorY) {
		if v.chart.Crosshair.TouchActive() {
			v.chart.Crosshair.Tap()
		} else {
			x, y := canvas.Local(in.cursorX, in.cursorY)
			v.chart.Crosshair.LongPress(chart.Point{X: x, Y: y})
		}
	}

	switch {
	case in.mouseStartedIn(priceBar):
		v.chart.DragPriceBar(in.mouseDelta.dy)
	case in.mouseStartedIn(canvas):
		v.chart.Pan(in.mouseDelta.dx, in.mouseDelta.dy)
	}

	if in.touching() {
		return
	}
	if canvas.Contains(in.cursorX, in.cursorY) {
		x, y := canvas.Local(in.cursorX, in.cursorY)
		v.chart.Crosshair.Hover(chart.Point{X: x, Y: y})
	} else {
		v.chart.Crosshair.Leave()
	}
}

func (v *chartView) touch(in *pointerInput) {
	canvas, priceBar := v.layout.Canvas, v.layout.PriceBar

	if len(in.touchOrder) < 2 {
		v.pinch.Reset()
	}
	switch len(in.touchOrder) {
	case 0:
		return
	case 1:
		id := in.touchOrder[0]
		p, d := in.touches[id], in.touchDelta[id]
		switch {
		case priceBar.Contains(p.StartX, p.StartY):
			v.chart.DragPriceBar(d.dy)
		case canvas.Contains(p.StartX, p.StartY):
			if p.LongPress() {
				x, y := canvas.Local(p.LastX, p.LastY)
				v.chart.Crosshair.LongPress(chart.Point{X: x, Y: y})
				return
			}
			v.chart.Pan(d.dx, d.dy)
		}
	default:
		a, b := in.touches[in.touchOrder[0]], in.touches[in.touchOrder[1]]
		if !canvas.Contains(a.StartX, a.StartY) || !canvas.Contains(b.StartX, b.StartY) {
			return
		}
		factor, cx, dx, dy := v.pinch.Update(a.LastX, a.LastY, b.LastX, b.LastY)
		localX, _ := canvas.Local(cx, 0)
		v.chart.Pinch(factor, localX)
		v.chart.Pan(dx, dy)
	}
}

func (v *chartView) draw(dst *ebiten.Image) {
	th := v.th
	fillRect(dst, v.layout.Header, panelColor)
	v.back.draw(dst, th)
	v.title.draw(dst, th)
	v.refresh.draw(dst, th)
	v.reset.draw(dst, th)
	for _, b := range v.timeline {
		b.draw(dst, th)
	}

	fillRect(dst, v.layout.PriceBar, panelColor)
	fillRect(dst, v.layout.TimeBar, panelColor)

	canvas := v.layout.Canvas
	if canvas.W <= 0 || canvas.H <= 0 {
		return
	}
	sub := dst.SubImage(canvasBounds(canvas)).(*ebiten.Image)

	candles := v.chart.Candles()
	if len(candles) == 0 {
		msg := "Loading..."
		if err := v.chart.Err(); err != nil && !v.chart.Loading() {
			msg = "Error: " + err.Error()
		}
		drawCentered(dst, msg, canvas, th.face, mutedColor)
		return
	}

	minPrice, maxPrice := v.chart.PriceRange()
	v.drawGrid(sub, canvas)
	v.drawCandles(sub, canvas, candles, minPrice, maxPrice)
	v.drawLastPrice(dst, sub, canvas, minPrice, maxPrice)
	v.drawPriceBar(dst)
	v.drawTimeBar(dst)
	v.drawCrosshair(dst, sub, canvas)

	if v.chart.LoadingHistory() {
		drawText(dst, "Loading history...", canvas.X+th.px(8), canvas.Y+th.px(8), th.smallFace, mutedColor)
	}
}

func (v *chartView) drawGrid(sub *ebiten.Image, canvas layout.Rect) {
	ticks := len(v.chart.PriceTicks())
	for i := 0; i < ticks; i++ {
		y := canvas.Y + canvas.H*float64(i)/float64(ticks-1)
		vector.StrokeLine(sub, float32(canvas.X), float32(y), float32(canvas.Right()), float32(y), 1, gridColor, false)
	}
}

func (v *chartView) drawCandles(sub *ebiten.Image, canvas layout.Rect, candles []binance.Candle, minPrice, maxPrice float64) {
	view := v.chart.View
	first, last, ok := view.VisibleRange(len(candles))
	if !ok {
		return
	}
	w := view.CandleWidth()
	stroke := float32(math.Max(1, v.th.px(1)))

	for i := first; i <= last; i++ {
		c := candles[i]
		x := canvas.X + view.IndexToX(i)
		high := canvas.Y + view.PriceToY(c.High, minPrice, maxPrice)
		low := canvas.Y + view.PriceToY(c.Low, minPrice, maxPrice)
		open := canvas.Y + view.PriceToY(c.Open, minPrice, maxPrice)
		closed := canvas.Y + view.PriceToY(c.Close, minPrice, maxPrice)

		clr := bearColor
		if c.Bullish() {
			clr = bullColor
		}
		mid := float32(x + w/2)
		vector.StrokeLine(sub, mid, float32(high), mid, float32(low), stroke, clr, false)

		top, bottom := math.Min(open, closed), math.Max(open, closed)
		bodyH := math.Max(1, bottom-top)
		if c.Bullish() {
			vector.DrawFilledRect(sub, float32(x), float32(top), float32(w), float32(bodyH), backgroundColor, false)
			vector.StrokeRect(sub, float32(x), float32(top), float32(w), float32(bodyH), stroke, clr, false)
		} else {
			vector.DrawFilledRect(sub, float32(x), float32(top), float32(w), float32(bodyH), clr, false)
		}
	}
}

func (v *chartView) drawLastPrice(dst, sub *ebiten.Image, canvas layout.Rect, minPrice, maxPrice float64) {
	last, ok := v.chart.Last()
	if !ok {
		return
	}
	y := canvas.Y + v.chart.View.PriceToY(last.Close, minPrice, maxPrice)
	if y < canvas.Y || y > canvas.Bottom() {
		return
	}
	drawDashedLine(sub, canvas.X, y, canvas.Right(), y, 1, ltpColor)
	v.priceTag(dst, y, market.FormatPrice(last.Close), ltpColor)
}

// priceTag draws a filled label in the price bar centered on y.
func (v *chartView) priceTag(dst *ebiten.Image, y float64, label string, clr color.RGBA) {
	th := v.th
	bar := v.layout.PriceBar
	_, h := text.Measure(label, th.smallFace, 0)
	tag := layout.Rect{X: bar.X, Y: y - h/2 - th.px(2), W: bar.W, H: h + th.px(4)}
	fillRect(dst, tag, clr)
	drawText(dst, label, tag.X+th.px(4), tag.Y+th.px(2), th.smallFace, blackColor)
}

func (v *chartView) drawPriceBar(dst *ebiten.Image) {
	th := v.th
	bar := v.layout.PriceBar
	ticks := v.chart.PriceTicks()
	for i, p := range ticks {
		y := bar.Y + bar.H*float64(i)/float64(len(ticks)-1)
		label := market.FormatPrice(p)
		_, h := text.Measure(label, th.smallFace, 0)
		ty := math.Max(bar.Y, math.Min(bar.Bottom()-h, y-h/2))
		drawText(dst, label, bar.X+th.px(4), ty, th.smallFace, mutedColor)
	}
}

func (v *chartView) drawTimeBar(dst *ebiten.Image) {
	th := v.th
	bar := v.layout.TimeBar
	ticks := v.chart.TimeTicks()
	if len(ticks) == 0 {
		return
	}
	slot := bar.W / float64(len(ticks))
	for i, t := range ticks {
		cell := layout.Rect{X: bar.X + slot*float64(i), Y: bar.Y, W: slot, H: bar.H}
		drawCentered(dst, market.FormatDate(t), cell, th.smallFace, mutedColor)
	}
}

func (v *chartView) drawCrosshair(dst, sub *ebiten.Image, canvas layout.Rect) {
	insp, ok := v.chart.Inspect()
	if !ok {
		return
	}
	th := v.th
	x, y := canvas.X+insp.Pos.X, canvas.Y+insp.Pos.Y
	drawDashedLine(sub, canvas.X, y, canvas.Right(), y, 1, crosshairColor)
	drawDashedLine(sub, x, canvas.Y, x, canvas.Bottom(), 1, crosshairColor)

	v.priceTag(dst, y, market.FormatPrice(insp.Price), crosshairColor)

	if insp.Time.IsZero() {
		return
	}
	label := market.FormatDateTime(insp.Time)
	w, _ := text.Measure(label, th.smallFace, 0)
	bar := v.layout.TimeBar
	tag := layout.Rect{X: x - w/2 - th.px(4), Y: bar.Y, W: w + th.px(8), H: bar.H}
	tag.X = math.Max(bar.X, math.Min(bar.Right()-tag.W, tag.X))
	fillRect(dst, tag, crosshairColor)
	drawCentered(dst, label, tag, th.smallFace, blackColor)

	if !insp.HasCandle {
		return
	}
	c := insp.Candle
	ohlc := "O " + market.FormatPrice(c.Open) + "  H " + market.FormatPrice(c.High) +
		"  L " + market.FormatPrice(c.Low) + "  C " + market.FormatPrice(c.Close)
	drawText(dst, ohlc, canvas.X+th.px(8), canvas.Bottom()-th.lineHeight, th.smallFace, textColor)
}

func canvasBounds(r layout.Rect) image.Rectangle {
	return image.Rect(int(r.X), int(r.Y), int(math.Ceil(r.Right())), int(math.Ceil(r.Bottom())))
}
