package ui

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// backKeys is the desktop back signal: Escape or the mouse back button.
type backKeys struct{}

func (backKeys) pressed() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyEscape) ||
		inpututil.IsMouseButtonJustPressed(ebiten.MouseButton3)
}
