package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/termgl/terminal"
)

// ColorToTcell converts a terminal color to tcell.Color
func ColorToTcell(c terminal.Color) tcell.Color {
	if c.Kind == terminal.KindRGB {
		return tcell.NewRGBColor(int32(c.RGB.R), int32(c.RGB.G), int32(c.RGB.B))
	}
	return tcell.PaletteColor(int(c.Index))
}

// FormatToStyle converts a pixel format to tcell.Style
func FormatToStyle(f PixelFormat) tcell.Style {
	return tcell.StyleDefault.
		Foreground(ColorToTcell(f.Fg)).
		Background(ColorToTcell(f.Bg)).
		Bold(f.Style&terminal.StyleBold != 0).
		Underline(f.Style&terminal.StyleUnderline != 0)
}

// Blit copies the grid into the top-left corner of screen without calling Show
// Cells outside the screen are skipped; consecutive cells sharing a format reuse one style
func Blit(g *Grid, screen tcell.Screen) {
	sw, sh := screen.Size()
	w, h := min(g.Width(), sw), min(g.Height(), sh)
	cells := g.Cells()

	var (
		last  PixelFormat
		style tcell.Style
		valid bool
	)
	for y := 0; y < h; y++ {
		row := cells[y*g.Width():]
		for x := 0; x < w; x++ {
			c := row[x]
			if !valid || !c.Format.Equal(last) {
				last, style, valid = c.Format, FormatToStyle(c.Format), true
			}
			r := c.Glyph
			if r == 0 {
				r = ' '
			}
			screen.SetContent(x, y, r, nil, style)
		}
	}
}
