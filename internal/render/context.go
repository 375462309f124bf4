// Package render draws the puzzle with ebiten. Everything a draw call needs is carried by
// a Context, so nothing here reads package state.
package render

import (
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/DoyleJ11/attack15/internal/engine"
)

type Palette struct {
	Background color.RGBA
	Ink        color.RGBA
	Panel      color.RGBA
	Selected   color.RGBA
	Timer      color.RGBA
	Alert      color.RGBA
	Button     color.RGBA
	BackButton color.RGBA
}

func DefaultPalette() Palette {
	return Palette{
		Background: color.RGBA{255, 255, 255, 255},
		Ink:        color.RGBA{0, 0, 0, 255},
		Panel:      color.RGBA{255, 255, 255, 255},
		Selected:   color.RGBA{173, 216, 230, 255},
		Timer:      color.RGBA{144, 238, 144, 255},
		Alert:      color.RGBA{255, 99, 71, 255},
		Button:     color.RGBA{200, 200, 200, 255},
		BackButton: color.RGBA{255, 255, 153, 255},
	}
}

// Context bundles the face, text scales, palette and geometry used by every draw call.
type Context struct {
	Face    font.Face
	Body    float64 // panel values and button labels
	Small   float64 // HUD
	Title   float64
	Palette Palette
	Layout  engine.Layout
}

func NewContext(layout engine.Layout) *Context {
	return &Context{
		Face:    basicfont.Face7x13,
		Body:    3,
		Small:   2,
		Title:   5,
		Palette: DefaultPalette(),
		Layout:  layout,
	}
}
