package chart

import (
	"math"

	"github.com/temidaradev/ebikline/internal/binance"
)

const (
	BaseCandleWidth   = 20.0
	BaseCandleSpacing = 5.0

	MinXZoom = 0.03
	MaxXZoom = 5.0
	MinYZoom = 0.1
	MaxYZoom = 5.0

	// ScrollZoomStep is the xZoom change per wheel notch.
	ScrollZoomStep = 0.1
	// PriceDragZoomStep is the yZoom change per price bar drag event.
	PriceDragZoomStep = 0.05
	// PriceDragDeadZone is the vertical drag in pixels ignored by the price bar.
	PriceDragDeadZone = 2.0

	// rightMarginRatio is the gap kept right of the latest candle on auto-center.
	rightMarginRatio = 0.05
	// historyThresholdRatio is how close to the data start, as a share of the
	// visible width, the left edge may come before older candles are requested.
	historyThresholdRatio = 0.2
	// minVisiblePriceRatio is the share of the scaled price height that pan keeps on screen.
	minVisiblePriceRatio = 0.1
)

// Viewport maps candle indices and prices onto canvas pixels.
// Y grows downwards, so higher prices map to smaller Y.
type Viewport struct {
	XZoom   float64
	YZoom   float64
	XOffset float64
	YOffset float64

	Width  float64
	Height float64

	// InitialPosition arms the one-time auto-center done on the first layout
	// pass that has both a canvas size and candles.
	InitialPosition bool

	stableMinPrice float64
	stableMaxPrice float64
	useStable      bool
}

func NewViewport() *Viewport {
	v := &Viewport{}
	v.Reset()
	return v
}

// Reset restores default zoom and offsets and re-arms auto-centering.
// The canvas size and the stable price lock are kept.
func (v *Viewport) Reset() {
	v.XZoom = 1
	v.YZoom = 1
	v.XOffset = 0
	v.YOffset = 0
	v.InitialPosition = true
}

func (v *Viewport) SetCanvasSize(width, height float64) {
	v.Width = width
	v.Height = height
}

func (v *Viewport) HasCanvas() bool {
	return v.Width > 0 && v.Height > 0
}

func (v *Viewport) CandleWidth() float64 {
	return BaseCandleWidth * v.XZoom
}

func (v *Viewport) CandleSpacing() float64 {
	return BaseCandleSpacing * v.XZoom
}

// Step is the horizontal distance between two neighbouring candles.
func (v *Viewport) Step() float64 {
	return v.CandleWidth() + v.CandleSpacing()
}

func (v *Viewport) ContentWidth(n int) float64 {
	return float64(n) * v.Step()
}

func (v *Viewport) IndexToX(index int) float64 {
	return float64(index)*v.Step() + v.XOffset
}

// XToIndex returns the candle index under x. It may be out of range.
func (v *Viewport) XToIndex(x float64) int {
	return int(math.Floor((x - v.XOffset) / v.Step()))
}

func (v *Viewport) scaledHeight() float64 {
	return v.Height * v.YZoom
}

func (v *Viewport) PriceToY(price, minPrice, maxPrice float64) float64 {
	sh := v.scaledHeight()
	return sh - (price-minPrice)/(maxPrice-minPrice)*sh + v.YOffset
}

func (v *Viewport) YToPrice(y, minPrice, maxPrice float64) float64 {
	sh := v.scaledHeight()
	if sh == 0 {
		return minPrice
	}
	ratio := 1 - (y-v.YOffset)/sh
	return minPrice + ratio*(maxPrice-minPrice)
}

// PriceRange is the displayed price span: the locked span while the stable
// viewport is active, otherwise the full span of candles.
func (v *Viewport) PriceRange(candles []binance.Candle) (minPrice, maxPrice float64) {
	if v.useStable {
		return v.stableMinPrice, v.stableMaxPrice
	}
	return DataPriceRange(candles)
}

// DataPriceRange returns the lowest and highest price across candles.
// A flat or empty series is widened so the span is never zero.
func DataPriceRange(candles []binance.Candle) (minPrice, maxPrice float64) {
	if len(candles) == 0 {
		return 0, 100
	}
	minPrice = math.Inf(1)
	maxPrice = math.Inf(-1)
	for _, c := range candles {
		minPrice = math.Min(minPrice, math.Min(math.Min(c.Low, c.High), math.Min(c.Open, c.Close)))
		maxPrice = math.Max(maxPrice, math.Max(math.Max(c.Low, c.High), math.Max(c.Open, c.Close)))
	}
	if maxPrice == minPrice {
		minPrice -= 0.5
		maxPrice += 0.5
	}
	return minPrice, maxPrice
}

// LockPrices freezes the displayed price span.
func (v *Viewport) LockPrices(minPrice, maxPrice float64) {
	v.stableMinPrice = minPrice
	v.stableMaxPrice = maxPrice
	v.useStable = true
}

func (v *Viewport) UnlockPrices() {
	v.useStable = false
}

func (v *Viewport) PricesLocked() bool {
	return v.useStable
}

// ZoomX scales the horizontal axis by factor keeping focalX fixed on screen.
func (v *Viewport) ZoomX(factor, focalX float64) {
	v.setXZoom(v.XZoom*factor, focalX)
}

// ScrollZoom applies one wheel notch around the canvas center.
// Positive delta zooms out, negative zooms in.
func (v *Viewport) ScrollZoom(delta float64) {
	if math.Abs(delta) <= 0.1 {
		return
	}
	next := v.XZoom + ScrollZoomStep
	if delta > 0 {
		next = v.XZoom - ScrollZoomStep
	}
	v.setXZoom(next, v.Width/2)
}

func (v *Viewport) setXZoom(zoom, focalX float64) {
	old := v.XZoom
	zoom = clamp(zoom, MinXZoom, MaxXZoom)
	v.XOffset = focalX - (focalX-v.XOffset)*(zoom/old)
	v.XZoom = zoom
	v.InitialPosition = false
}

// DragYZoom converts a vertical drag on the price bar into a yZoom change.
// Dragging up zooms in. The price under the canvas center stays put.
func (v *Viewport) DragYZoom(dy float64) {
	if math.Abs(dy) <= PriceDragDeadZone {
		return
	}
	delta := PriceDragZoomStep
	if dy > 0 {
		delta = -PriceDragZoomStep
	}
	v.ZoomY(v.YZoom+delta, v.Height/2)
}

// ZoomY sets yZoom keeping the price under focalY fixed on screen.
func (v *Viewport) ZoomY(zoom, focalY float64) {
	zoom = clamp(zoom, MinYZoom, MaxYZoom)
	oldScaled := v.scaledHeight()
	newScaled := v.Height * zoom
	if oldScaled > 0 {
		ratio := (oldScaled + v.YOffset - focalY) / oldScaled
		v.YOffset = focalY - newScaled*(1-ratio)
	}
	v.YZoom = zoom
	v.InitialPosition = false
}

// Pan moves the content and clamps it so some of it stays visible.
func (v *Viewport) Pan(dx, dy float64, n int) {
	v.XOffset += dx
	v.YOffset += dy
	v.InitialPosition = false
	v.Clamp(n)
}

// Clamp keeps at least one candle step horizontally and a slice of the
// scaled price height vertically inside the canvas.
func (v *Viewport) Clamp(n int) {
	if !v.HasCanvas() || n == 0 {
		return
	}
	step := v.Step()
	v.XOffset = clamp(v.XOffset, step-v.ContentWidth(n), v.Width-step)

	margin := v.scaledHeight() * minVisiblePriceRatio
	v.YOffset = clamp(v.YOffset, margin-v.scaledHeight(), v.Height-margin)
}

// NearDataStart reports whether the first candle is within the pagination
// threshold of the left edge or already on screen.
func (v *Viewport) NearDataStart() bool {
	return v.XOffset > -v.Width*historyThresholdRatio
}

// AutoCenter places the newest candle near the right edge and centres its
// midpoint vertically. It runs once per InitialPosition arm and reports
// whether it did anything.
func (v *Viewport) AutoCenter(candles []binance.Candle) bool {
	if !v.InitialPosition || !v.HasCanvas() || len(candles) == 0 {
		return false
	}

	v.XOffset = v.Width - v.ContentWidth(len(candles)) - v.Width*rightMarginRatio

	minPrice, maxPrice := v.PriceRange(candles)
	last := candles[len(candles)-1]
	sh := v.scaledHeight()
	targetY := sh - (last.Mid()-minPrice)/(maxPrice-minPrice)*sh
	v.YOffset = v.Height/2 - targetY

	v.InitialPosition = false
	return true
}

// ShiftForPrepended compensates for added candles inserted in front of the
// series so the candles that were on screen stay where they were.
func (v *Viewport) ShiftForPrepended(added int) {
	v.XOffset -= v.ContentWidth(added)
}

// VisibleRange returns the first and last candle index intersecting the canvas,
// clamped to [0, n-1]. ok is false when n is zero.
func (v *Viewport) VisibleRange(n int) (first, last int, ok bool) {
	if n == 0 {
		return 0, 0, false
	}
	first = clampInt(v.XToIndex(0), 0, n-1)
	last = clampInt(v.XToIndex(v.Width), 0, n-1)
	return first, last, true
}

func clamp(v, lo, hi float64) float64 {
	if lo > hi {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}

func clampInt(v, lo, hi int) int {
	return max(lo, min(hi, v))
}
