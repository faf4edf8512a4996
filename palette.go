package tileset

import (
	"image/color"

	"golang.org/x/image/colornames"
)

// Palette lists the colours of the sheet rows, from top to bottom.
var Palette = []color.NRGBA{
	opaque(colornames.Red),
	opaque(colornames.Blue),
	opaque(colornames.Lime),
	opaque(colornames.Yellow),
	opaque(colornames.Magenta),
	opaque(colornames.Cyan),
	{R: 255, G: 200, A: 255}, // orange, lighter than the CSS colour
	opaque(colornames.Purple),
}

func opaque(c color.RGBA) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 255}
}
