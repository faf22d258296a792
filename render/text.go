package render

import (
	"github.com/mattn/go-runewidth"
)

// PutChar writes one glyph at the clamped coordinate, bypassing the depth buffer
func (g *Grid) PutChar(x, y int, glyph rune, format PixelFormat) {
	g.SetRaw(x, y, glyph, format)
}

// PutString writes s starting at (x, y), bypassing the depth buffer
// '\n' moves to column x of the next row; glyphs wider than one cell are replaced
// and the cursor advances by one, zero-width runes are skipped
// Writes past the right or bottom edge pile up on the clamped border cell
func (g *Grid) PutString(x, y int, s string, format PixelFormat) {
	cx := x
	for _, r := range s {
		if r == '\n' {
			cx = x
			y++
			continue
		}
		if runewidth.RuneWidth(r) == 0 {
			continue
		}
		g.SetRaw(cx, y, r, format)
		cx++
	}
}
