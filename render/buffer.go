package render

import (
	"errors"
	"fmt"
	"math"

	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/termgl/terminal"
)

// MaxCells bounds width*height so the worst-case output buffer stays addressable
const MaxCells = 1 << 22

// ErrInvalidSize is returned for non-positive or oversized grid dimensions
var ErrInvalidSize = errors.New("render: invalid grid size")

// DepthCleared is the depth of a cell nothing has been drawn to; every depth-tested write beats it
var DepthCleared = float32(math.Inf(-1))

// fallbackGlyph replaces glyphs that do not occupy exactly one cell
const fallbackGlyph = '?'

// Grid owns the cell array, the optional depth array and the optional output text buffer
// Cells are row-major: cells[y*width + x]
type Grid struct {
	cells []Cell
	depth []float32 // nil when depth buffering is disabled
	out   []byte    // nil when output buffering is disabled

	width  int
	height int
	maxX   int
	maxY   int
}

// NewGrid creates a cleared grid with the specified dimensions
func NewGrid(width, height int) (*Grid, error) {
	if width <= 0 || height <= 0 || width > MaxCells/height {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	g := &Grid{
		cells:  make([]Cell, width*height),
		width:  width,
		height: height,
		maxX:   width - 1,
		maxY:   height - 1,
	}
	g.Clear(FrameBuffer)
	return g, nil
}

// Width returns the grid width in cells
func (g *Grid) Width() int { return g.width }

// Height returns the grid height in cells
func (g *Grid) Height() int { return g.height }

// Cells exposes the cell array for encoding; callers must not retain it across Clear
func (g *Grid) Cells() []Cell { return g.cells }

// At returns the cell at the clamped coordinate
func (g *Grid) At(x, y int) Cell {
	x, y = g.Clamp(x, y)
	return g.cells[y*g.width+x]
}

// Depth returns the stored depth at the clamped coordinate, false when depth buffering is off
func (g *Grid) Depth(x, y int) (float32, bool) {
	if g.depth == nil {
		return 0, false
	}
	x, y = g.Clamp(x, y)
	return g.depth[y*g.width+x], true
}

// DepthEnabled reports whether writes are depth-tested
func (g *Grid) DepthEnabled() bool { return g.depth != nil }

// EnableDepth allocates a cleared depth array; no-op when already enabled
func (g *Grid) EnableDepth() {
	if g.depth != nil {
		return
	}
	g.depth = make([]float32, len(g.cells))
	g.Clear(DepthBuffer)
	Logger().Debug("depth buffer allocated", "cells", len(g.depth))
}

// DisableDepth releases the depth array
func (g *Grid) DisableDepth() {
	g.depth = nil
}

// OutputEnabled reports whether a pre-sized output buffer is held
func (g *Grid) OutputEnabled() bool { return g.out != nil }

// EnableOutput allocates the output text buffer sized for the worst-case frame
func (g *Grid) EnableOutput() {
	if g.out != nil {
		return
	}
	size := terminal.OutputBufferSize(g.width, g.height)
	g.out = make([]byte, 0, size)
	Logger().Debug("output buffer allocated", "bytes", size)
}

// DisableOutput releases the output text buffer
func (g *Grid) DisableOutput() {
	g.out = nil
}

// Output returns the output text buffer (length is the last encoded frame)
func (g *Grid) Output() []byte { return g.out }

// setOutput stores the buffer returned by the encoder, keeping any growth
func (g *Grid) setOutput(b []byte) {
	g.out = b
}

// Clear resets the selected arrays using exponential copy
func (g *Grid) Clear(mask Buffer) {
	if mask&FrameBuffer != 0 {
		fill(g.cells, terminal.BlankCell)
	}
	if mask&DepthBuffer != 0 && g.depth != nil {
		fill(g.depth, DepthCleared)
	}
	if mask&OutputBuffer != 0 && g.out != nil {
		clear(g.out[:cap(g.out)])
		g.out = g.out[:0]
	}
}

// fill sets every element to v, doubling the copied prefix each pass
func fill[T any](s []T, v T) {
	if len(s) == 0 {
		return
	}
	s[0] = v
	for filled := 1; filled < len(s); filled *= 2 {
		copy(s[filled:], s[:filled])
	}
}

// Clamp limits a coordinate to the grid rectangle
// Off-screen primitives therefore degenerate onto the border instead of faulting
func (g *Grid) Clamp(x, y int) (int, int) {
	return max(min(g.maxX, x), 0), max(min(g.maxY, y), 0)
}

// SetRaw unconditionally overwrites the cell at the clamped coordinate
func (g *Grid) SetRaw(x, y int, glyph rune, format PixelFormat) {
	x, y = g.Clamp(x, y)
	g.cells[y*g.width+x] = Cell{Glyph: sanitizeGlyph(glyph), Format: format}
}

// SetDepthTested writes the cell at the clamped coordinate when depth buffering is off
// or z is not behind the stored depth (z >= stored), updating the stored depth
func (g *Grid) SetDepthTested(x, y int, z float32, glyph rune, format PixelFormat) bool {
	x, y = g.Clamp(x, y)
	idx := y*g.width + x
	if g.depth != nil {
		if !(z >= g.depth[idx]) {
			return false
		}
		g.depth[idx] = z
	}
	g.cells[idx] = Cell{Glyph: sanitizeGlyph(glyph), Format: format}
	return true
}

// shade is the rasterizer hot path: depth test first, run the shader only for surviving pixels
// x, y must already be in bounds
func (g *Grid) shade(x, y int, z float32, u, v uint8, shader PixelShader) {
	idx := y*g.width + x
	if g.depth != nil {
		if !(z >= g.depth[idx]) {
			return
		}
		g.depth[idx] = z
	}
	glyph, format := shader(u, v)
	g.cells[idx] = Cell{Glyph: sanitizeGlyph(glyph), Format: format}
}

// sanitizeGlyph keeps the one-glyph-per-cell invariant the encoder relies on
func sanitizeGlyph(r rune) rune {
	if r >= 0x20 && r < 0x7f {
		return r
	}
	if r == 0 {
		return ' '
	}
	if runewidth.RuneWidth(r) != 1 {
		return fallbackGlyph
	}
	return r
}
