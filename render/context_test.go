package render

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/termgl/terminal"
	"github.com/lixenwraith/termgl/vmath"
)

type writeCounter struct {
	bytes.Buffer
	writes int
}

func (w *writeCounter) Write(p []byte) (int, error) {
	w.writes++
	return w.Buffer.Write(p)
}

type brokenWriter struct{ err error }

func (w brokenWriter) Write([]byte) (int, error) { return 0, w.err }

func newContext(t *testing.T, w, h int, opts ...Option) *Context {
	t.Helper()
	c, err := New(w, h, opts...)
	require.NoError(t, err)
	t.Cleanup(c.Close)
	return c
}

func TestNewInvalidSize(t *testing.T) {
	_, err := New(0, 5)
	assert.ErrorIs(t, err, ErrInvalidSize)
}

func TestFlushModesMatch(t *testing.T) {
	var direct, buffered writeCounter

	draw := func(c *Context) {
		c.TriangleFill(Vertex{X: 1, Y: 1}, Vertex{X: 10, Y: 2}, Vertex{X: 4, Y: 6}, SimpleShader(red, GradientMin))
		c.Line(Vertex{X: 0, Y: 7}, Vertex{X: 11, Y: 0, U: 200}, SimpleShader(green, GradientFull))
		c.Point(Vertex{X: 11, Y: 7}, solid('@', red))
		c.PutString(0, 0, "hi", green)
	}

	a := newContext(t, 12, 8, WithOutput(&direct), WithSettings(SettingProgressive))
	b := newContext(t, 12, 8, WithOutput(&buffered), WithSettings(SettingProgressive|SettingOutputBuffer))
	draw(a)
	draw(b)

	require.NoError(t, a.Flush())
	require.NoError(t, b.Flush())

	assert.Equal(t, direct.String(), buffered.String())
	assert.Equal(t, 1, buffered.writes)
	assert.Greater(t, direct.writes, 1)
	assert.True(t, strings.HasPrefix(direct.String(), "\x1b[;H"))
	assert.Equal(t, buffered.String(), string(b.Grid().Output()))
}

func TestFlushSettings(t *testing.T) {
	var out bytes.Buffer
	c := newContext(t, 2, 1, WithOutput(&out))

	require.NoError(t, c.Flush())
	assert.Equal(t, "\x1b[1;1H\x1b[2J  \n\x1b[0m", out.String())

	out.Reset()
	require.NoError(t, c.Enable(SettingDoubleWidth|SettingDoubleChars|SettingProgressive))
	require.NoError(t, c.Flush())
	assert.Equal(t, "\x1b[;H\x1b#6    \n\x1b[0m", out.String())

	out.Reset()
	c.Disable(SettingDoubleWidth | SettingDoubleChars)
	require.NoError(t, c.Flush())
	assert.Equal(t, "\x1b[;H  \n\x1b[0m", out.String())
}

func TestFlushError(t *testing.T) {
	sentinel := errors.New("disk full")

	for _, s := range []Setting{0, SettingOutputBuffer} {
		c := newContext(t, 3, 3, WithOutput(brokenWriter{sentinel}), WithSettings(s))
		err := c.Flush()
		require.Error(t, err)
		assert.ErrorIs(t, err, sentinel)
	}
}

func TestEnableAllocatesBuffers(t *testing.T) {
	c := newContext(t, 5, 5, WithOutput(&bytes.Buffer{}))

	assert.False(t, c.Grid().DepthEnabled())
	require.NoError(t, c.Enable(SettingDepthBuffer|SettingOutputBuffer))
	assert.True(t, c.Grid().DepthEnabled())
	assert.True(t, c.Grid().OutputEnabled())
	assert.True(t, c.Enabled(SettingDepthBuffer|SettingOutputBuffer))

	c.Disable(SettingDepthBuffer)
	assert.False(t, c.Grid().DepthEnabled())
	assert.True(t, c.Grid().OutputEnabled())
	assert.False(t, c.Enabled(SettingDepthBuffer))
}

func TestClosed(t *testing.T) {
	c, err := New(4, 4, WithOutput(&bytes.Buffer{}), WithSettings(SettingDepthBuffer))
	require.NoError(t, err)

	c.Close()
	c.Close()
	assert.ErrorIs(t, c.Flush(), ErrClosed)
	assert.ErrorIs(t, c.Enable(SettingDepthBuffer), ErrClosed)
	assert.False(t, c.Grid().DepthEnabled())
}

func TestContextClear(t *testing.T) {
	c := newContext(t, 4, 4, WithOutput(&bytes.Buffer{}), WithSettings(SettingDepthBuffer))
	c.Point(Vertex{X: 1, Y: 1, Z: 1}, solid('x', red))

	// Without clearing depth, a farther write loses
	c.Clear(FrameBuffer)
	c.Point(Vertex{X: 1, Y: 1, Z: 0}, solid('y', red))
	assert.Equal(t, ' ', c.Grid().At(1, 1).Glyph)

	c.Clear(AllBuffers)
	c.Point(Vertex{X: 1, Y: 1, Z: 0}, solid('y', red))
	assert.Equal(t, 'y', c.Grid().At(1, 1).Glyph)
}

func TestContextCulling(t *testing.T) {
	c := newContext(t, 40, 20, WithOutput(&bytes.Buffer{}))
	tri := Triangle{{X: -0.5, Y: -0.5, Z: 0}, {X: 0.5, Y: -0.5, Z: 0}, {X: 0, Y: 0.5, Z: 0}}
	flipped := Triangle{tri[0], tri[2], tri[1]}
	identity := MatrixVertexShader(vmath.Identity())

	require.Equal(t, 1, c.Triangle3D(tri, fullUV, true, identity, solid('a', red)))
	require.Equal(t, 1, c.Triangle3D(flipped, fullUV, true, identity, solid('a', red)))

	require.NoError(t, c.Enable(SettingCullFace))
	a := c.Triangle3D(tri, fullUV, true, identity, solid('a', red))
	b := c.Triangle3D(flipped, fullUV, true, identity, solid('a', red))
	assert.Equal(t, 1, a+b, "exactly one winding survives")

	c.CullFace(CullFront, WindingCW)
	a2 := c.Triangle3D(tri, fullUV, true, identity, solid('a', red))
	b2 := c.Triangle3D(flipped, fullUV, true, identity, solid('a', red))
	assert.Equal(t, a, 1-a2)
	assert.Equal(t, b, 1-b2)

	c.Disable(SettingCullFace)
	assert.Equal(t, 1, c.Triangle3D(tri, fullUV, true, identity, solid('a', red)))
}

func TestColorModeOption(t *testing.T) {
	var out bytes.Buffer
	c := newContext(t, 1, 1, WithOutput(&out), WithColorMode(terminal.ColorMode256), WithSettings(SettingProgressive))
	c.Point(Vertex{}, solid('x', terminal.Format(terminal.TrueColor(255, 0, 0), terminal.Indexed(terminal.Black), terminal.StyleNone)))

	require.NoError(t, c.Flush())
	assert.Equal(t, "\x1b[;H\x1b[38;5;196mx\n\x1b[0m", out.String())

	out.Reset()
	c.SetColorMode(terminal.ColorModeTrueColor)
	require.NoError(t, c.Flush())
	assert.Equal(t, "\x1b[;H\x1b[38;2;255;0;0mx\n\x1b[0m", out.String())
}

func TestSetOutput(t *testing.T) {
	var first, second bytes.Buffer
	c := newContext(t, 1, 1, WithOutput(&first))
	c.SetOutput(&second)
	require.NoError(t, c.Flush())
	assert.Zero(t, first.Len())
	assert.NotZero(t, second.Len())
}

func TestLogger(t *testing.T) {
	var logs bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { SetLogger(nil) })

	c := newContext(t, 3, 3, WithOutput(brokenWriter{errors.New("eof")}))
	require.NoError(t, c.Enable(SettingDepthBuffer))
	assert.Error(t, c.Flush())

	assert.Contains(t, logs.String(), "depth buffer allocated")
	assert.Contains(t, logs.String(), "flush failed")

	SetLogger(nil)
	assert.False(t, Logger().Enabled(context.Background(), slog.LevelError))
}
