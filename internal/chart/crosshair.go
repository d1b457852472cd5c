package chart

import "math"

type Point struct {
	X, Y float64
}

// Crosshair tracks the two crosshair sources. A touch activated crosshair
// suppresses the hover one until it is dismissed.
type Crosshair struct {
	touchActive bool
	touch       Point
	hover       *Point
}

// LongPress activates the touch crosshair at p.
func (c *Crosshair) LongPress(p Point) {
	c.touchActive = true
	c.touch = p
	c.hover = nil
}

// Tap dismisses the touch crosshair and any hover position.
func (c *Crosshair) Tap() {
	if !c.touchActive {
		return
	}
	c.touchActive = false
	c.hover = nil
}

// Hover follows the pointer unless the touch crosshair is active.
func (c *Crosshair) Hover(p Point) {
	if c.touchActive {
		c.hover = nil
		return
	}
	c.hover = &p
}

// Leave clears the hover position when the pointer exits the canvas.
func (c *Crosshair) Leave() {
	c.hover = nil
}

// Drag moves the touch crosshair, keeping it inside a width x height canvas.
func (c *Crosshair) Drag(dx, dy, width, height float64) {
	if !c.touchActive {
		return
	}
	c.touch.X = math.Max(0, math.Min(width, c.touch.X+dx))
	c.touch.Y = math.Max(0, math.Min(height, c.touch.Y+dy))
}

func (c *Crosshair) TouchActive() bool {
	return c.touchActive
}

// Position returns the active crosshair position, if any.
func (c *Crosshair) Position() (Point, bool) {
	if c.touchActive {
		return c.touch, true
	}
	if c.hover != nil {
		return *c.hover, true
	}
	return Point{}, false
}
