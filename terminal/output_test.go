package terminal

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func blankCells(w, h int) []Cell {
	cells := make([]Cell, w*h)
	for i := range cells {
		cells[i] = BlankCell
	}
	return cells
}

// countingWriter records every write
type countingWriter struct {
	bytes.Buffer
	writes int
}

func (w *countingWriter) Write(p []byte) (int, error) {
	w.writes++
	return w.Buffer.Write(p)
}

// failingWriter fails after n successful writes
type failingWriter struct {
	n   int
	err error
}

func (w *failingWriter) Write(p []byte) (int, error) {
	if w.n == 0 {
		return 0, w.err
	}
	w.n--
	return len(p), nil
}

func TestFrameLayout(t *testing.T) {
	cells := blankCells(3, 2)
	cells[0] = Cell{Glyph: 'a', Format: DefaultFormat}
	cells[4] = Cell{Glyph: 'b', Format: Format(Indexed(Red), Indexed(Black), StyleNone)}

	tests := []struct {
		name string
		opts FrameOptions
		want string
	}{
		{
			"clear screen",
			FrameOptions{},
			"\x1b[1;1H\x1b[2Ja  \n \x1b[31mb\x1b[37m \n\x1b[0m",
		},
		{
			"progressive",
			FrameOptions{Progressive: true},
			"\x1b[;Ha  \n \x1b[31mb\x1b[37m \n\x1b[0m",
		},
		{
			"double width",
			FrameOptions{Progressive: true, DoubleWidth: true},
			"\x1b[;H\x1b#6a  \n\x1b#6 \x1b[31mb\x1b[37m \n\x1b[0m",
		},
		{
			"double chars",
			FrameOptions{Progressive: true, DoubleChars: true},
			"\x1b[;Haa    \n  \x1b[31mbb\x1b[37m  \n\x1b[0m",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AppendFrame(nil, cells, 3, 2, tt.opts)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestDirectAndBufferedIdentical(t *testing.T) {
	const w, h = 7, 4
	cells := blankCells(w, h)
	formats := []PixelFormat{
		DefaultFormat,
		Format(TrueColor(200, 10, 10), Indexed(Black), StyleBold),
		Format(Indexed(Yellow|HighIntensity), TrueColor(0, 0, 90), StyleUnderline),
		Format(Indexed(100), Indexed(200), StyleNone),
	}
	glyphs := []rune{'#', 'é', '@', 0}
	for i := range cells {
		cells[i] = Cell{Glyph: glyphs[i%len(glyphs)], Format: formats[(i/3)%len(formats)]}
	}

	for _, opts := range []FrameOptions{
		{},
		{Progressive: true},
		{DoubleWidth: true, DoubleChars: true},
		{ColorMode: ColorMode256},
	} {
		var direct, buffered countingWriter

		err := NewEncoder(&direct, opts).FlushDirect(cells, w, h)
		require.NoError(t, err)

		buf := make([]byte, 0, OutputBufferSize(w, h))
		out, err := NewEncoder(&buffered, opts).FlushBuffered(buf, cells, w, h)
		require.NoError(t, err)

		assert.Equal(t, direct.String(), buffered.String())
		assert.Equal(t, 1, buffered.writes)
		assert.Greater(t, direct.writes, 1)
		assert.Equal(t, buffered.String(), string(out))
		assert.LessOrEqual(t, len(out), OutputBufferSize(w, h))
		assert.Equal(t, cap(buf), cap(out), "pre-sized buffer must not grow")
	}
}

func TestFrameMinimalTransitions(t *testing.T) {
	const w, h = 10, 3
	red := Format(Indexed(Red), Indexed(Black), StyleNone)
	cells := blankCells(w, h)
	for i := range cells {
		cells[i].Format = red
	}

	got := string(AppendFrame(nil, cells, w, h, FrameOptions{}))
	assert.Equal(t, 1, strings.Count(got, "\x1b[31m"))
	// Prefix, one transition, reset
	assert.Equal(t, 4, strings.Count(got, "\x1b["))
}

func TestFrameRowsCarryState(t *testing.T) {
	const w, h = 2, 2
	bold := Format(Indexed(White), Indexed(Black), StyleBold)
	cells := blankCells(w, h)
	cells[1].Format = bold
	cells[2].Format = bold

	got := string(AppendFrame(nil, cells, w, h, FrameOptions{Progressive: true}))
	assert.Equal(t, "\x1b[;H \x1b[1m \n \x1b[22m \n\x1b[0m", got)
}

func TestColorMode256Downsamples(t *testing.T) {
	cells := []Cell{{Glyph: 'x', Format: Format(TrueColor(255, 0, 0), TrueColor(0, 0, 0), StyleNone)}}

	got := string(AppendFrame(nil, cells, 1, 1, FrameOptions{Progressive: true, ColorMode: ColorMode256}))
	assert.Equal(t, "\x1b[;H\x1b[38;5;196;48;5;16mx\n\x1b[0m", got)
}

func TestFlushDirectStopsOnError(t *testing.T) {
	sentinel := errors.New("broken pipe")
	cells := blankCells(4, 4)

	fw := &failingWriter{n: 3, err: sentinel}
	err := NewEncoder(fw, FrameOptions{}).FlushDirect(cells, 4, 4)
	require.Error(t, err)
	assert.ErrorIs(t, err, sentinel)
}

func TestFlushBufferedError(t *testing.T) {
	sentinel := errors.New("closed")
	cells := blankCells(2, 2)

	_, err := NewEncoder(&failingWriter{err: sentinel}, FrameOptions{}).FlushBuffered(nil, cells, 2, 2)
	assert.ErrorIs(t, err, sentinel)
}

func TestShortFrame(t *testing.T) {
	var buf bytes.Buffer
	enc := NewEncoder(&buf, FrameOptions{})

	assert.ErrorIs(t, enc.FlushDirect(make([]Cell, 3), 2, 2), ErrShortFrame)
	_, err := enc.FlushBuffered(nil, make([]Cell, 3), 2, 2)
	assert.ErrorIs(t, err, ErrShortFrame)
	assert.Zero(t, buf.Len())
}

func TestOutputBufferSizeWorstCase(t *testing.T) {
	const w, h = 5, 3
	a := Format(TrueColor(255, 255, 255), TrueColor(255, 255, 255), StyleBold|StyleUnderline)
	b := Format(TrueColor(100, 100, 100), TrueColor(100, 100, 100), StyleNone)
	cells := make([]Cell, w*h)
	for i := range cells {
		f := a
		if i%2 == 1 {
			f = b
		}
		cells[i] = Cell{Glyph: '\U0001F600', Format: f}
	}

	got := AppendFrame(nil, cells, w, h, FrameOptions{DoubleWidth: true, DoubleChars: true})
	assert.LessOrEqual(t, len(got), OutputBufferSize(w, h))
}
