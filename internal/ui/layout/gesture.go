package layout

import "math"

const (
	// LongPressTicks is how long a press must be held to count as a long press.
	LongPressTicks = 30
	// TapSlop is how far a press may move and still be a tap or long press.
	TapSlop = 8.0
)

// Press follows one pointer from press to release.
type Press struct {
	StartX, StartY float64
	LastX, LastY   float64
	Ticks          int
	// Travel is the largest distance from the start seen so far.
	Travel    float64
	LongFired bool
}

func NewPress(x, y float64) *Press {
	return &Press{StartX: x, StartY: y, LastX: x, LastY: y}
}

// Move records the pointer at x, y for one tick and returns the delta since
// the previous tick.
func (p *Press) Move(x, y float64) (dx, dy float64) {
	dx, dy = x-p.LastX, y-p.LastY
	p.LastX, p.LastY = x, y
	p.Ticks++
	p.Travel = math.Max(p.Travel, math.Hypot(x-p.StartX, y-p.StartY))
	return dx, dy
}

// Still reports whether the pointer has stayed within the tap slop.
func (p *Press) Still() bool {
	return p.Travel <= TapSlop
}

// LongPress reports true exactly once, when a still press reaches LongPressTicks.
func (p *Press) LongPress() bool {
	if p.LongFired || !p.Still() || p.Ticks < LongPressTicks {
		return false
	}
	p.LongFired = true
	return true
}

// IsTap reports whether releasing now is a tap.
func (p *Press) IsTap() bool {
	return p.Still() && !p.LongFired
}

// Pinch tracks a two finger gesture.
type Pinch struct {
	active   bool
	distance float64
	cx, cy   float64
}

// Update takes the two touch points and returns the zoom factor and centroid
// movement since the previous update. The first update after Reset returns
// factor 1 and no movement.
func (p *Pinch) Update(x0, y0, x1, y1 float64) (factor, cx, dx, dy float64) {
	d := math.Hypot(x1-x0, y1-y0)
	cx, cy := (x0+x1)/2, (y0+y1)/2
	if !p.active || p.distance == 0 {
		p.active = true
		p.distance, p.cx, p.cy = d, cx, cy
		return 1, cx, 0, 0
	}
	factor = d / p.distance
	dx, dy = cx-p.cx, cy-p.cy
	p.distance, p.cx, p.cy = d, cx, cy
	if d == 0 {
		factor = 1
	}
	return factor, cx, dx, dy
}

func (p *Pinch) Reset() {
	*p = Pinch{}
}
