// Package layout holds the screen geometry and gesture arithmetic of the UI,
// kept free of the rendering backend.
package layout

import "math"

type Rect struct {
	X, Y, W, H float64
}

func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Local converts screen coordinates into coordinates relative to r.
func (r Rect) Local(x, y float64) (float64, float64) {
	return x - r.X, y - r.Y
}

func (r Rect) Right() float64 {
	return r.X + r.W
}

func (r Rect) Bottom() float64 {
	return r.Y + r.H
}

// Inset shrinks r by d on every side.
func (r Rect) Inset(d float64) Rect {
	return Rect{X: r.X + d, Y: r.Y + d, W: math.Max(0, r.W-2*d), H: math.Max(0, r.H-2*d)}
}

// Row lays out widths left to right starting at x, separated by gap, and
// returns one rect per width with height h at y.
func Row(x, y, h, gap float64, widths ...float64) []Rect {
	out := make([]Rect, 0, len(widths))
	for _, w := range widths {
		out = append(out, Rect{X: x, Y: y, W: w, H: h})
		x += w + gap
	}
	return out
}

// ChartLayout splits the chart screen into its regions.
type ChartLayout struct {
	Header   Rect
	Canvas   Rect
	PriceBar Rect
	TimeBar  Rect
}

func NewChartLayout(width, height, scale float64) ChartLayout {
	header := 48 * scale
	priceBar := 80 * scale
	timeBar := 28 * scale

	canvasW := math.Max(0, width-priceBar)
	canvasH := math.Max(0, height-header-timeBar)
	return ChartLayout{
		Header:   Rect{X: 0, Y: 0, W: width, H: header},
		Canvas:   Rect{X: 0, Y: header, W: canvasW, H: canvasH},
		PriceBar: Rect{X: canvasW, Y: header, W: priceBar, H: canvasH},
		TimeBar:  Rect{X: 0, Y: header + canvasH, W: canvasW, H: timeBar},
	}
}

// List is a vertically scrolling list of fixed height rows.
type List struct {
	Area      Rect
	RowHeight float64
	Scroll    float64
}

func (l List) contentHeight(n int) float64 {
	return float64(n) * l.RowHeight
}

// ClampScroll keeps the scroll position inside the content of n rows.
func (l *List) ClampScroll(n int) {
	maxScroll := math.Max(0, l.contentHeight(n)-l.Area.H)
	l.Scroll = math.Max(0, math.Min(maxScroll, l.Scroll))
}

// RowAt returns the row index at screen y, or -1.
func (l List) RowAt(x, y float64, n int) int {
	if !l.Area.Contains(x, y) || l.RowHeight <= 0 {
		return -1
	}
	idx := int((y - l.Area.Y + l.Scroll) / l.RowHeight)
	if idx < 0 || idx >= n {
		return -1
	}
	return idx
}

// Visible returns the half-open range of rows intersecting the area.
func (l List) Visible(n int) (from, to int) {
	if l.RowHeight <= 0 || n == 0 {
		return 0, 0
	}
	from = int(l.Scroll / l.RowHeight)
	to = int(math.Ceil((l.Scroll + l.Area.H) / l.RowHeight))
	return max(0, min(n, from)), max(0, min(n, to))
}

// RowRect is the on-screen rect of row i.
func (l List) RowRect(i int) Rect {
	return Rect{X: l.Area.X, Y: l.Area.Y + float64(i)*l.RowHeight - l.Scroll, W: l.Area.W, H: l.RowHeight}
}

// Dashes splits the segment from a to b into dash/gap pieces and returns the
// start and end of each dash along the segment, as distances from a.
func Dashes(length, dash, gap float64) [][2]float64 {
	if length <= 0 || dash <= 0 {
		return nil
	}
	var out [][2]float64
	for s := 0.0; s < length; s += dash + gap {
		out = append(out, [2]float64{s, math.Min(length, s+dash)})
	}
	return out
}
