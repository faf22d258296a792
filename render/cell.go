package render

import (
	"github.com/lixenwraith/termgl/terminal"
)

// Cell is an alias to terminal.Cell to avoid copying between grid and encoder
type Cell = terminal.Cell

// PixelFormat is an alias to terminal.PixelFormat
type PixelFormat = terminal.PixelFormat

// PixelShader resolves the glyph and format of one pixel from its interpolated u, v
// Closures carry any per-draw data
type PixelShader func(u, v uint8) (rune, PixelFormat)
