package chart

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCrosshairHover(t *testing.T) {
	var c Crosshair
	_, ok := c.Position()
	assert.False(t, ok)

	c.Hover(Point{X: 10, Y: 20})
	pos, ok := c.Position()
	assert.True(t, ok)
	assert.Equal(t, Point{X: 10, Y: 20}, pos)

	c.Leave()
	_, ok = c.Position()
	assert.False(t, ok)
}

func TestCrosshairTouchSuppressesHover(t *testing.T) {
	var c Crosshair
	c.Hover(Point{X: 1, Y: 1})
	c.LongPress(Point{X: 50, Y: 60})
	c.Hover(Point{X: 300, Y: 300})

	pos, ok := c.Position()
	assert.True(t, ok)
	assert.Equal(t, Point{X: 50, Y: 60}, pos)
	assert.True(t, c.TouchActive())

	c.Drag(-100, 10, 200, 100)
	pos, _ = c.Position()
	assert.Equal(t, Point{X: 0, Y: 70}, pos)

	c.Tap()
	assert.False(t, c.TouchActive())
	_, ok = c.Position()
	assert.False(t, ok)
}

func TestCrosshairTapWithoutTouchKeepsHover(t *testing.T) {
	var c Crosshair
	c.Hover(Point{X: 5, Y: 5})
	c.Tap()
	_, ok := c.Position()
	assert.True(t, ok)

	c.Drag(10, 10, 100, 100)
	pos, _ := c.Position()
	assert.Equal(t, Point{X: 5, Y: 5}, pos)
}
