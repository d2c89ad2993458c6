package render

import (
	"github.com/mattn/go-runewidth"
)

// Sink receives per-cell glyph placement
type Sink interface {
	SetCell(x, y int, ch rune, fg, bg RGB)
	Size() (width, height int)
}

// DrawText writes s left to right from (x, y), advancing by display width
// Returns the column after the last glyph
func DrawText(sink Sink, x, y int, s string, fg, bg RGB) int {
	w, h := sink.Size()
	if y < 0 || y >= h {
		return x
	}
	for _, r := range s {
		rw := runewidth.RuneWidth(r)
		if rw == 0 {
			continue
		}
		if x >= 0 && x+rw <= w {
			sink.SetCell(x, y, r, fg, bg)
		}
		x += rw
	}
	return x
}

// Cell is a recorded glyph
type Cell struct {
	Ch rune
	Fg RGB
	Bg RGB
}

// Grid is an in-memory Sink, used for headless output and tests
type Grid struct {
	Width, Height int
	Cells         []Cell
}

// NewGrid allocates a blank grid
func NewGrid(width, height int) *Grid {
	g := &Grid{Width: width, Height: height, Cells: make([]Cell, width*height)}
	for i := range g.Cells {
		g.Cells[i].Ch = ' '
	}
	return g
}

// SetCell implements Sink; out-of-range writes are dropped
func (g *Grid) SetCell(x, y int, ch rune, fg, bg RGB) {
	if x < 0 || y < 0 || x >= g.Width || y >= g.Height {
		return
	}
	g.Cells[y*g.Width+x] = Cell{Ch: ch, Fg: fg, Bg: bg}
}

// Size implements Sink
func (g *Grid) Size() (int, int) { return g.Width, g.Height }

// At returns the cell at (x, y)
func (g *Grid) At(x, y int) Cell {
	return g.Cells[y*g.Width+x]
}

// Row returns the glyphs of row y as a string
func (g *Grid) Row(y int) string {
	rs := make([]rune, g.Width)
	for x := 0; x < g.Width; x++ {
		rs[x] = g.Cells[y*g.Width+x].Ch
	}
	return string(rs)
}

// String renders every row separated by newlines
func (g *Grid) String() string {
	var out []rune
	for y := 0; y < g.Height; y++ {
		if y > 0 {
			out = append(out, '\n')
		}
		out = append(out, []rune(g.Row(y))...)
	}
	return string(out)
}
