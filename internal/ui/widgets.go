package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/temidaradev/esset/v2"

	"github.com/temidaradev/ebikline/internal/ui/layout"
)

type button struct {
	rect     layout.Rect
	label    string
	selected bool
	disabled bool
}

// hit reports whether a tap or click was released inside the button this tick.
func (b button) hit(in *pointerInput) bool {
	if b.disabled {
		return false
	}
	for _, r := range in.released {
		if r.tap && b.rect.Contains(r.x, r.y) {
			return true
		}
	}
	return false
}

func (b button) draw(dst *ebiten.Image, th *theme) {
	bg := buttonColor
	if b.selected {
		bg = accentColor
	}
	fg := textColor
	if b.disabled {
		fg = mutedColor
	}
	fillRect(dst, b.rect, bg)
	drawCentered(dst, b.label, b.rect, th.face, fg)
}

func fillRect(dst *ebiten.Image, r layout.Rect, clr color.RGBA) {
	vector.DrawFilledRect(dst, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), clr, false)
}

func drawText(dst *ebiten.Image, s string, x, y float64, face text.Face, clr color.RGBA) {
	esset.DrawText(dst, s, 0, x, y, face, clr)
}

func drawCentered(dst *ebiten.Image, s string, r layout.Rect, face text.Face, clr color.RGBA) {
	w, h := text.Measure(s, face, 0)
	drawText(dst, s, r.X+(r.W-w)/2, r.Y+(r.H-h)/2, face, clr)
}

func drawRight(dst *ebiten.Image, s string, right, y float64, face text.Face, clr color.RGBA) {
	w, _ := text.Measure(s, face, 0)
	drawText(dst, s, right-w, y, face, clr)
}

func drawDashedLine(dst *ebiten.Image, x0, y0, x1, y1, width float64, clr color.RGBA) {
	length := max(abs(x1-x0), abs(y1-y0))
	if length == 0 {
		return
	}
	ux, uy := (x1-x0)/length, (y1-y0)/length
	for _, d := range layout.Dashes(length, 5, 5) {
		vector.StrokeLine(dst,
			float32(x0+ux*d[0]), float32(y0+uy*d[0]),
			float32(x0+ux*d[1]), float32(y0+uy*d[1]),
			float32(width), clr, false)
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// buttonWidth sizes a button to fit its label.
func buttonWidth(label string, th *theme) float64 {
	w, _ := text.Measure(label, th.face, 0)
	return w + th.px(24)
}
