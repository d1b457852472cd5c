package ui

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/temidaradev/esset/v2"
	"golang.org/x/image/font/gofont/goregular"
)

const baseFontSize = 12

var (
	backgroundColor = color.RGBA{13, 17, 23, 255}
	panelColor      = color.RGBA{22, 27, 34, 255}
	buttonColor     = color.RGBA{33, 38, 45, 255}
	accentColor     = color.RGBA{35, 134, 54, 255}
	textColor       = color.RGBA{255, 255, 255, 255}
	mutedColor      = color.RGBA{139, 148, 158, 255}
	bullColor       = color.RGBA{0, 212, 170, 255}
	bearColor       = color.RGBA{255, 71, 71, 255}
	gridColor       = color.RGBA{48, 54, 61, 255}
	crosshairColor  = color.RGBA{139, 148, 158, 200}
	ltpColor        = color.RGBA{255, 214, 0, 255}
	blackColor      = color.RGBA{0, 0, 0, 255}
)

// theme carries the fonts and metrics scaled for the monitor.
type theme struct {
	scale      float64
	face       text.Face
	smallFace  text.Face
	titleFace  text.Face
	lineHeight float64
}

func newTheme(deviceScale float64) (*theme, error) {
	face, err := esset.GetFont(goregular.TTF, int(baseFontSize*deviceScale))
	if err != nil {
		return nil, fmt.Errorf("font could not be loaded with scaled size %f: %w", baseFontSize*deviceScale, err)
	}
	small, err := esset.GetFont(goregular.TTF, int(10*deviceScale))
	if err != nil {
		return nil, fmt.Errorf("small font: %w", err)
	}
	title, err := esset.GetFont(goregular.TTF, int(20*deviceScale))
	if err != nil {
		return nil, fmt.Errorf("title font: %w", err)
	}

	return &theme{
		scale:      deviceScale,
		face:       face,
		smallFace:  small,
		titleFace:  title,
		lineHeight: baseFontSize*deviceScale*1.5 + 5*deviceScale,
	}, nil
}

// px converts a size in logical pixels into device pixels.
func (t *theme) px(v float64) float64 {
	return v * t.scale
}
