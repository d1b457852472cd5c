package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPressTap(t *testing.T) {
	p := NewPress(100, 100)
	dx, dy := p.Move(103, 98)
	assert.Equal(t, 3.0, dx)
	assert.Equal(t, -2.0, dy)
	assert.True(t, p.IsTap())

	p.Move(140, 100)
	assert.False(t, p.IsTap())
	p.Move(100, 100)
	assert.False(t, p.Still(), "travel is remembered")
}

func TestPressLongPress(t *testing.T) {
	p := NewPress(0, 0)
	for i := 0; i < LongPressTicks-1; i++ {
		p.Move(1, 1)
		assert.False(t, p.LongPress())
	}
	p.Move(1, 1)
	assert.True(t, p.LongPress())
	assert.False(t, p.LongPress(), "fires once")
	assert.False(t, p.IsTap())
}

func TestPinch(t *testing.T) {
	var p Pinch
	factor, cx, dx, dy := p.Update(100, 100, 200, 100)
	assert.Equal(t, 1.0, factor)
	assert.Equal(t, 150.0, cx)
	assert.Zero(t, dx)
	assert.Zero(t, dy)

	factor, cx, dx, dy = p.Update(60, 110, 260, 110)
	assert.Equal(t, 2.0, factor)
	assert.Equal(t, 160.0, cx)
	assert.Equal(t, 10.0, dx)
	assert.Equal(t, 10.0, dy)

	p.Reset()
	factor, cx, dx, _ = p.Update(0, 0, 50, 0)
	assert.Equal(t, 1.0, factor, "first update after reset starts a new gesture")
	assert.Equal(t, 25.0, cx)
	assert.Zero(t, dx)
}
