// @lixen: #focus{render[context,api]}
package render

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/lixenwraith/termgl/terminal"
)

// ErrClosed is returned by operations on a closed Context
var ErrClosed = errors.New("render: context closed")

// Context is the drawing handle: one grid, one encoder, one set of toggles
// Not safe for concurrent use; independent contexts share nothing
type Context struct {
	grid     *Grid
	encoder  *terminal.Encoder
	pipeline *Pipeline
	settings Setting
	closed   bool
}

// Option configures a Context at creation
type Option func(*config)

type config struct {
	output    io.Writer
	colorMode terminal.ColorMode
	settings  Setting
}

// WithOutput sets the frame destination, stdout by default
func WithOutput(w io.Writer) Option {
	return func(c *config) { c.output = w }
}

// WithColorMode sets RGB handling of the encoder
func WithColorMode(mode terminal.ColorMode) Option {
	return func(c *config) { c.colorMode = mode }
}

// WithSettings enables settings right after creation
func WithSettings(s Setting) Option {
	return func(c *config) { c.settings |= s }
}

// New creates a context with a cleared width x height grid
// Culling defaults to discarding back faces of clockwise-front triangles once enabled
func New(width, height int, opts ...Option) (*Context, error) {
	cfg := config{output: os.Stdout}
	for _, opt := range opts {
		opt(&cfg)
	}

	grid, err := NewGrid(width, height)
	if err != nil {
		return nil, err
	}

	c := &Context{
		grid:     grid,
		encoder:  terminal.NewEncoder(cfg.output, terminal.FrameOptions{ColorMode: cfg.colorMode}),
		pipeline: NewPipeline(grid),
	}
	c.pipeline.CullFace(CullBack, WindingCW)

	if cfg.settings != 0 {
		if err := c.Enable(cfg.settings); err != nil {
			return nil, err
		}
	}

	Logger().Debug("context created", "width", width, "height", height, "settings", uint8(c.settings))
	return c, nil
}

// Close releases all buffers; later Flush and Enable calls return ErrClosed
func (c *Context) Close() {
	if c.closed {
		return
	}
	c.grid.DisableDepth()
	c.grid.DisableOutput()
	c.closed = true
}

// Grid returns the underlying cell grid
func (c *Context) Grid() *Grid { return c.grid }

// Settings returns the currently enabled settings
func (c *Context) Settings() Setting { return c.settings }

// Enabled reports whether every bit of s is enabled
func (c *Context) Enabled(s Setting) bool { return c.settings&s == s }

// Enable turns on one or more settings, allocating depth or output buffers as needed
func (c *Context) Enable(s Setting) error {
	if c.closed {
		return ErrClosed
	}
	if s&SettingDepthBuffer != 0 {
		c.grid.EnableDepth()
	}
	if s&SettingOutputBuffer != 0 {
		c.grid.EnableOutput()
	}
	if s&SettingCullFace != 0 {
		c.pipeline.SetCulling(true)
	}
	c.settings |= s
	c.syncFrameOptions()
	Logger().Debug("settings enabled", "mask", uint8(s))
	return nil
}

// Disable turns off one or more settings, freeing buffers they owned
func (c *Context) Disable(s Setting) {
	if s&SettingDepthBuffer != 0 {
		c.grid.DisableDepth()
	}
	if s&SettingOutputBuffer != 0 {
		c.grid.DisableOutput()
	}
	if s&SettingCullFace != 0 {
		c.pipeline.SetCulling(false)
	}
	c.settings &^= s
	c.syncFrameOptions()
	Logger().Debug("settings disabled", "mask", uint8(s))
}

func (c *Context) syncFrameOptions() {
	opts := c.encoder.Options()
	opts.Progressive = c.settings&SettingProgressive != 0
	opts.DoubleWidth = c.settings&SettingDoubleWidth != 0
	opts.DoubleChars = c.settings&SettingDoubleChars != 0
	c.encoder.SetOptions(opts)
}

// SetOutput replaces the frame destination
func (c *Context) SetOutput(w io.Writer) {
	c.encoder.SetWriter(w)
}

// SetColorMode changes RGB handling for subsequent flushes
func (c *Context) SetColorMode(mode terminal.ColorMode) {
	opts := c.encoder.Options()
	opts.ColorMode = mode
	c.encoder.SetOptions(opts)
}

// Clear resets the selected buffers
func (c *Context) Clear(mask Buffer) {
	c.grid.Clear(mask)
}

// Flush encodes the grid and writes it to the output
// With SettingOutputBuffer the frame goes out in a single write, otherwise piece by piece
func (c *Context) Flush() error {
	if c.closed {
		return ErrClosed
	}

	g := c.grid
	var err error
	if g.OutputEnabled() {
		var out []byte
		out, err = c.encoder.FlushBuffered(g.Output(), g.Cells(), g.Width(), g.Height())
		g.setOutput(out)
	} else {
		err = c.encoder.FlushDirect(g.Cells(), g.Width(), g.Height())
	}
	if err != nil {
		Logger().Warn("flush failed", "error", err)
		return fmt.Errorf("render: flush: %w", err)
	}
	return nil
}

// Point shades a single pixel
func (c *Context) Point(v Vertex, shader PixelShader) {
	c.grid.Point(v, shader)
}

// Line draws a line between two vertices
func (c *Context) Line(v0, v1 Vertex, shader PixelShader) {
	c.grid.Line(v0, v1, shader)
}

// Triangle draws a triangle outline
func (c *Context) Triangle(v0, v1, v2 Vertex, shader PixelShader) {
	c.grid.Triangle(v0, v1, v2, shader)
}

// TriangleFill draws a filled triangle
func (c *Context) TriangleFill(v0, v1, v2 Vertex, shader PixelShader) {
	c.grid.TriangleFill(v0, v1, v2, shader)
}

// PutString writes text at (x, y) bypassing the depth buffer
func (c *Context) PutString(x, y int, s string, format PixelFormat) {
	c.grid.PutString(x, y, s, format)
}

// CullFace selects which faces are discarded while SettingCullFace is enabled
func (c *Context) CullFace(face Face, winding Winding) {
	c.pipeline.CullFace(face, winding)
}

// Triangle3D runs a model-space triangle through the 3D pipeline
// Returns the number of triangles rasterized after culling and clipping
func (c *Context) Triangle3D(tri Triangle, uv UV, fill bool, vs VertexShader, fs PixelShader) int {
	return c.pipeline.Draw(tri, uv, fill, vs, fs)
}
