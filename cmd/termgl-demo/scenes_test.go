package main

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScenesRender(t *testing.T) {
	for name := range scenes {
		t.Run(name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Scene = name
			cfg.Color = "truecolor"
			require.NoError(t, cfg.Validate())

			var out bytes.Buffer
			ctx, sc, err := newRenderer(cfg, 60, 25, &out)
			require.NoError(t, err)
			defer ctx.Close()

			assert.Equal(t, 60, ctx.Grid().Width())
			assert.Equal(t, 24, ctx.Grid().Height())

			for _, ts := range []float64{0, 0.5, 3.25} {
				assert.NotPanics(t, func() { sc.draw(ctx, ts) })
				require.NoError(t, ctx.Flush())
			}
			assert.True(t, bytes.HasPrefix(out.Bytes(), []byte("\x1b[;H")))
			assert.True(t, bytes.HasSuffix(out.Bytes(), []byte("\x1b[0m")))
		})
	}
}

func TestNewRendererDoubleChars(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Output.DoubleChars = true

	ctx, _, err := newRenderer(cfg, 81, 10, &bytes.Buffer{})
	require.NoError(t, err)
	defer ctx.Close()

	assert.Equal(t, 40, ctx.Grid().Width())
	assert.Equal(t, 9, ctx.Grid().Height())
}

func TestNewRendererBadBlendColor(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Scene = "rgb"
	cfg.Blend.From = "red"

	_, _, err := newRenderer(cfg, 20, 10, &bytes.Buffer{})
	assert.ErrorContains(t, err, "scene rgb")
}

func TestCubeSceneDrawsSomething(t *testing.T) {
	cfg := DefaultConfig()
	ctx, sc, err := newRenderer(cfg, 40, 21, &bytes.Buffer{})
	require.NoError(t, err)
	defer ctx.Close()

	sc.draw(ctx, 0.3)

	filled := 0
	for _, c := range ctx.Grid().Cells() {
		if c.Glyph != ' ' {
			filled++
		}
	}
	assert.Positive(t, filled)
}

func TestEscapeTime(t *testing.T) {
	assert.Equal(t, 50, escapeTime(0, 0, 50))
	assert.Equal(t, 50, escapeTime(-1, 0, 50))
	assert.Equal(t, 0, escapeTime(3, 3, 50))
	assert.Less(t, escapeTime(0.5, 0.5, 50), 50)
}

func TestLoadImage(t *testing.T) {
	img, err := loadImage("")
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 64, 64), img.Bounds())

	src := image.NewRGBA(image.Rect(0, 0, 4, 2))
	src.Set(0, 0, color.White)
	path := filepath.Join(t.TempDir(), "tex.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, src))
	require.NoError(t, f.Close())

	img, err = loadImage(path)
	require.NoError(t, err)
	assert.Equal(t, 4, img.Bounds().Dx())

	_, err = loadImage(filepath.Join(t.TempDir(), "missing.png"))
	assert.ErrorContains(t, err, "open texture")
}
