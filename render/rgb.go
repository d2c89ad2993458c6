package render

import (
	"math/rand"

	"github.com/lucasb-eyer/go-colorful"
)

// RGB represents a 24-bit color
type RGB struct {
	R, G, B uint8
}

// Equal returns true if colors match
func (c RGB) Equal(other RGB) bool {
	return c.R == other.R && c.G == other.G && c.B == other.B
}

func (c RGB) colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

func fromColorful(c colorful.Color) RGB {
	r, g, b := c.Clamped().RGB255()
	return RGB{R: r, G: g, B: b}
}

// Lerp blends a→b in Lab space, t clamped to [0,1]
func Lerp(a, b RGB, t float64) RGB {
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}
	return fromColorful(a.colorful().BlendLab(b.colorful(), t))
}

// Palette is the session's character and background colors
type Palette struct {
	Hue float64
	Fg  RGB
	Bg  RGB
}

// Palette saturation/lightness, matching a bright glyph on a near-black tint of the same hue
const (
	fgSaturation = 0.80
	fgLightness  = 0.70
	bgSaturation = 0.70
	bgLightness  = 0.06
)

// NewPalette derives both colors from a single hue in degrees
func NewPalette(hue float64) Palette {
	return Palette{
		Hue: hue,
		Fg:  fromColorful(colorful.Hsl(hue, fgSaturation, fgLightness)),
		Bg:  fromColorful(colorful.Hsl(hue, bgSaturation, bgLightness)),
	}
}

// RandomPalette picks a whole-degree hue from rng
func RandomPalette(rng *rand.Rand) Palette {
	return NewPalette(float64(rng.Intn(360)))
}

// Fade returns the foreground at the given opacity over the background
func (p Palette) Fade(alpha float64) RGB {
	return Lerp(p.Bg, p.Fg, alpha)
}
