package filter

import (
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// toHSL returns hue in [0, 360), saturation and lightness in [0, 1].
func toHSL(c color.NRGBA) (h, s, l float64) {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}.Hsl()
}

// fromHSL converts back to 8-bit channels, rounding to nearest.
func fromHSL(h, s, l float64) (r, g, b uint8) {
	return colorful.Hsl(h, s, l).Clamped().RGB255()
}
