// @focus: #sys { term }
// Package terminal serializes glyph/color cell grids to ANSI terminals.
//
// Features:
//   - 16-color, xterm-256 and 24-bit color with bold/underline styles
//   - Minimal SGR transitions between consecutive cells
//   - Direct (write per cell) and buffered (single write) frame output with identical bytes
//   - Optional downsampling of RGB24 to the 256-color palette
//   - Alternate screen session and SIGWINCH resize detection for render loops
//
// This package bypasses terminfo/termcap entirely, emitting direct ANSI sequences.
package terminal
