// @lixen: #focus{sys[term,io,output]}
// @lixen: #interact{trigger[output,ansi]}
package terminal

import (
	"fmt"
	"io"
	"unicode/utf8"
)

// maxCellBytes bounds the bytes one cell can produce: a full SGR transition plus a doubled glyph
const maxCellBytes = maxSGRBytes + 2*utf8.UTFMax

// FrameOptions controls how a cell grid is serialized
type FrameOptions struct {
	// Progressive homes the cursor instead of clearing the screen before the frame
	Progressive bool
	// DoubleWidth prefixes each row with DECDWL so the terminal doubles glyph width
	DoubleWidth bool
	// DoubleChars prints every glyph twice for roughly square pixels
	DoubleChars bool
	// ColorMode downsamples RGB24 colors when set to ColorMode256
	ColorMode ColorMode
}

// OutputBufferSize returns the worst-case byte length of one encoded frame
func OutputBufferSize(width, height int) int {
	perRow := len(escDoubleWidth) + 1
	return maxCellBytes*width*height + perRow*height + len(csiClearScreen) + len(csiReset)
}

// Encoder serializes cell grids to a writer as ANSI text
// Each frame starts from DefaultFormat and ends with an SGR reset
type Encoder struct {
	writer io.Writer
	opts   FrameOptions

	// Scratch space for one cell in direct mode
	scratch [maxCellBytes]byte
}

// NewEncoder creates an encoder writing to w
func NewEncoder(w io.Writer, opts FrameOptions) *Encoder {
	return &Encoder{writer: w, opts: opts}
}

// SetWriter replaces the output writer
func (e *Encoder) SetWriter(w io.Writer) {
	e.writer = w
}

// Writer returns the output writer
func (e *Encoder) Writer() io.Writer {
	return e.writer
}

// Options returns the current frame options
func (e *Encoder) Options() FrameOptions {
	return e.opts
}

// SetOptions replaces the frame options
func (e *Encoder) SetOptions(opts FrameOptions) {
	e.opts = opts
}

// FlushDirect writes the frame piece by piece, one write per escape sequence or cell
// Returns on the first write error; the frame is then partially written
func (e *Encoder) FlushDirect(cells []Cell, width, height int) error {
	if len(cells) < width*height {
		return fmt.Errorf("terminal: %d cells for %dx%d frame: %w", len(cells), width, height, ErrShortFrame)
	}

	w := e.writer
	if err := e.write(e.prefix()); err != nil {
		return err
	}

	current := DefaultFormat
	for y := 0; y < height; y++ {
		if e.opts.DoubleWidth {
			if err := e.write(escDoubleWidth); err != nil {
				return err
			}
		}
		row := cells[y*width : (y+1)*width]
		for i := range row {
			p := e.scratch[:0]
			p, current = appendCell(p, current, row[i], e.opts)
			if _, err := w.Write(p); err != nil {
				return fmt.Errorf("terminal: write cell: %w", err)
			}
		}
		if err := e.write(newline); err != nil {
			return err
		}
	}

	return e.write(csiReset)
}

// FlushBuffered encodes the whole frame into buf and issues a single write
// buf is reused from index 0; the returned slice holds the encoded frame and may have grown
func (e *Encoder) FlushBuffered(buf []byte, cells []Cell, width, height int) ([]byte, error) {
	if len(cells) < width*height {
		return buf, fmt.Errorf("terminal: %d cells for %dx%d frame: %w", len(cells), width, height, ErrShortFrame)
	}

	buf = AppendFrame(buf[:0], cells, width, height, e.opts)
	if _, err := e.writer.Write(buf); err != nil {
		return buf, fmt.Errorf("terminal: write frame: %w", err)
	}
	return buf, nil
}

// AppendFrame appends the encoded frame to dst
// Produces exactly the bytes FlushDirect writes for the same input
func AppendFrame(dst []byte, cells []Cell, width, height int, opts FrameOptions) []byte {
	if opts.Progressive {
		dst = append(dst, csiHome...)
	} else {
		dst = append(dst, csiClearScreen...)
	}

	current := DefaultFormat
	for y := 0; y < height; y++ {
		if opts.DoubleWidth {
			dst = append(dst, escDoubleWidth...)
		}
		row := cells[y*width : (y+1)*width]
		for i := range row {
			dst, current = appendCell(dst, current, row[i], opts)
		}
		dst = append(dst, '\n')
	}

	return append(dst, csiReset...)
}

// appendCell emits the transition from current to the cell format followed by its glyph
func appendCell(dst []byte, current PixelFormat, c Cell, opts FrameOptions) ([]byte, PixelFormat) {
	f := c.Format.Downsample(opts.ColorMode)
	if !f.Equal(current) {
		dst = AppendSGR(dst, current, f)
		current = f
	}

	r := c.Glyph
	if r == 0 {
		r = ' '
	}
	dst = appendGlyph(dst, r)
	if opts.DoubleChars {
		dst = appendGlyph(dst, r)
	}
	return dst, current
}

func appendGlyph(dst []byte, r rune) []byte {
	if r < utf8.RuneSelf {
		return append(dst, byte(r))
	}
	return utf8.AppendRune(dst, r)
}

var newline = []byte{'\n'}

func (e *Encoder) prefix() []byte {
	if e.opts.Progressive {
		return csiHome
	}
	return csiClearScreen
}

func (e *Encoder) write(p []byte) error {
	if _, err := e.writer.Write(p); err != nil {
		return fmt.Errorf("terminal: write: %w", err)
	}
	return nil
}
