package render

import (
	"fmt"
	"math"

	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/buddy/buddy"
	"github.com/lixenwraith/buddy/vmath"
)

// Face layout, relative to the sink center
const (
	eyeSpacing  = 4 // eye center column distance from origin
	eyeRow      = -1
	browRow     = eyeRow - 1
	mouthRow    = 2
	mouthCells  = 5 // at Width = 1
	blushColumn = 7
	blushRow    = 0
	captionRow  = 5
)

// Eye openness bands
const (
	eyeClosed = 0.15
	eyeNarrow = 0.35
	eyeHalf   = 0.75
	eyeWide   = 1.25
)

// Face maps a buddy.Frame onto cells
type Face struct {
	Palette Palette
	Debug   bool // caption with expression and sleep state
}

// Draw paints the background and the character centered in sink
func (f *Face) Draw(sink Sink, fr buddy.Frame) {
	w, h := sink.Size()
	if w <= 0 || h <= 0 {
		return
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			sink.SetCell(x, y, ' ', f.Palette.Fg, f.Palette.Bg)
		}
	}

	ox := w/2 + int(math.Round(fr.OffsetX))
	oy := h/2 + int(math.Round(fr.OffsetY))
	c := canvas{sink: sink, w: w, h: h, ox: ox, oy: oy, palette: f.Palette}

	f.drawEyes(&c, fr)
	f.drawMouth(&c, fr)

	if fr.Pose.Eyes.Sparkle && !fr.Sleeping {
		alpha := 0.5 + math.Sin(fr.Seconds*2)*0.2
		c.put(-blushColumn, blushRow, '*', f.Palette.Fade(alpha))
		c.put(blushColumn, blushRow, '*', f.Palette.Fade(alpha))
	}

	if fr.Sleeping {
		f.drawZzz(&c, fr.ZzzPhase)
	}

	if f.Debug {
		name := fr.Pose.Name
		if name == "" {
			name = "…"
		}
		caption := fmt.Sprintf("%s  L%.2f R%.2f", name, fr.LeftEye, fr.RightEye)
		if fr.Sleeping {
			caption += "  zzz"
		}
		DrawText(sink, w/2-runewidth.StringWidth(caption)/2, h/2+captionRow, caption, f.Palette.Fade(0.5), f.Palette.Bg)
	}
}

func (f *Face) drawEyes(c *canvas, fr buddy.Frame) {
	dx := int(math.Round(vmath.Clamp(fr.LookX, -1, 1)))
	dy := int(math.Round(vmath.Clamp(fr.LookY, -1, 1)))
	eyes := fr.Pose.Eyes

	for _, side := range []struct {
		x        int
		openness float64
	}{{-eyeSpacing, fr.LeftEye}, {eyeSpacing, fr.RightEye}} {
		x, y := side.x+dx, eyeRow+dy
		pupil, framed := EyeGlyph(side.openness, eyes.Squint, eyes.Sparkle, fr.Sleeping)
		if framed {
			c.put(x-1, y, '(', f.Palette.Fg)
			c.put(x+1, y, ')', f.Palette.Fg)
		}
		c.put(x, y, pupil, f.Palette.Fg)
	}

	if eyes.Asymmetric {
		c.put(eyeSpacing+dx, browRow+dy, '~', f.Palette.Fg)
	}
}

// EyeGlyph picks the pupil glyph for an effective openness
// framed reports whether the eye is open enough to draw its lids
func EyeGlyph(openness, squint float64, sparkle, sleeping bool) (pupil rune, framed bool) {
	switch {
	case openness < eyeClosed:
		if sleeping {
			return '^', false
		}
		return '-', false
	case openness < eyeNarrow:
		return '-', true
	case openness < eyeHalf:
		return '•', true
	case sparkle:
		return '*', true
	case squint >= 0.2:
		return '^', true
	case openness >= eyeWide:
		return 'O', true
	default:
		return '●', true
	}
}

func (f *Face) drawMouth(c *canvas, fr buddy.Frame) {
	m := fr.Pose.Mouth
	cells := int(math.Round(mouthCells * m.Width))
	if cells < 1 {
		cells = 1
	}
	left := int(math.Round(m.Offset*4)) - cells/2

	glyphs := MouthGlyphs(m.Smile, m.Openness, cells)
	for i, g := range glyphs {
		c.put(left+i, mouthRow, g, f.Palette.Fg)
	}
}

// MouthGlyphs lays out a mouth of the given cell width
func MouthGlyphs(smile, openness float64, cells int) []rune {
	out := make([]rune, cells)

	fill, leftEdge, rightEdge := '_', '_', '_'
	switch {
	case smile >= 0.15:
		leftEdge, rightEdge = '\\', '/'
	case smile <= -0.15:
		fill, leftEdge, rightEdge = '-', '/', '\\'
	}

	for i := range out {
		out[i] = fill
	}
	if cells >= 3 {
		out[0], out[cells-1] = leftEdge, rightEdge
	}

	switch {
	case openness >= 0.5:
		out[cells/2] = 'O'
	case openness >= 0.25:
		out[cells/2] = 'o'
	}
	return out
}

func (f *Face) drawZzz(c *canvas, phase float64) {
	for i, ch := range []rune{'z', 'z', 'Z'} {
		p := math.Mod(phase-float64(i)/3+1, 1)
		if p >= 0.8 {
			continue
		}
		rise := p / 0.8
		alpha := math.Sin(rise * math.Pi)
		x := int(math.Round(blushColumn + float64(i)*1.2))
		y := int(math.Round(-3 - float64(i)*1.5 - rise*2))
		c.put(x, y, ch, f.Palette.Fade(alpha))
	}
}

// canvas clips origin-relative glyphs to the sink
type canvas struct {
	sink    Sink
	w, h    int
	ox, oy  int
	palette Palette
}

func (c *canvas) put(x, y int, ch rune, fg RGB) {
	ax, ay := c.ox+x, c.oy+y
	if ax < 0 || ay < 0 || ax >= c.w || ay >= c.h {
		return
	}
	c.sink.SetCell(ax, ay, ch, fg, c.palette.Bg)
}
