package ui

import (
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/temidaradev/ebikline/internal/ui/layout"
)

type release struct {
	x, y  float64
	tap   bool
	touch bool
}

type delta struct {
	dx, dy float64
}

// pointerInput is a per-tick snapshot of mouse and touch state.
type pointerInput struct {
	cursorX, cursorY float64
	wheelY           float64

	mouse      *layout.Press
	mouseDelta delta

	touches    map[ebiten.TouchID]*layout.Press
	touchDelta map[ebiten.TouchID]delta
	touchOrder []ebiten.TouchID
	rightPress bool
	released   []release
}

func newPointerInput() *pointerInput {
	return &pointerInput{
		touches:    map[ebiten.TouchID]*layout.Press{},
		touchDelta: map[ebiten.TouchID]delta{},
	}
}

func (in *pointerInput) update() {
	in.released = in.released[:0]
	in.mouseDelta = delta{}

	mx, my := ebiten.CursorPosition()
	in.cursorX, in.cursorY = float64(mx), float64(my)
	_, in.wheelY = ebiten.Wheel()
	in.rightPress = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight)

	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		in.mouse = layout.NewPress(in.cursorX, in.cursorY)
	case in.mouse != nil && inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft):
		in.released = append(in.released, release{x: in.mouse.LastX, y: in.mouse.LastY, tap: in.mouse.IsTap()})
		in.mouse = nil
	case in.mouse != nil:
		dx, dy := in.mouse.Move(in.cursorX, in.cursorY)
		in.mouseDelta = delta{dx, dy}
	}

	for _, id := range inpututil.AppendJustPressedTouchIDs(nil) {
		x, y := ebiten.TouchPosition(id)
		in.touches[id] = layout.NewPress(float64(x), float64(y))
		in.touchOrder = append(in.touchOrder, id)
	}
	clear(in.touchDelta)
	for _, id := range slices.Clone(in.touchOrder) {
		p := in.touches[id]
		if inpututil.IsTouchJustReleased(id) {
			in.released = append(in.released, release{x: p.LastX, y: p.LastY, tap: p.IsTap(), touch: true})
			delete(in.touches, id)
			in.touchOrder = slices.DeleteFunc(in.touchOrder, func(t ebiten.TouchID) bool { return t == id })
			continue
		}
		x, y := ebiten.TouchPosition(id)
		dx, dy := p.Move(float64(x), float64(y))
		in.touchDelta[id] = delta{dx, dy}
	}
}

func (in *pointerInput) touching() bool {
	return len(in.touchOrder) > 0
}

// mouseStartedIn reports whether the active mouse press began inside r.
func (in *pointerInput) mouseStartedIn(r layout.Rect) bool {
	return in.mouse != nil && r.Contains(in.mouse.StartX, in.mouse.StartY)
}
