package render

import (
	"fmt"
	"image"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/draw"

	"github.com/lixenwraith/termgl/terminal"
)

// Texture is a row-major grid of glyphs and formats sampled by u, v
type Texture struct {
	width   int
	height  int
	glyphs  []rune
	formats []PixelFormat
}

// NewTexture creates a texture; glyphs and formats must hold exactly width*height entries
func NewTexture(width, height int, glyphs []rune, formats []PixelFormat) (*Texture, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: texture %dx%d", ErrInvalidSize, width, height)
	}
	n := width * height
	if len(glyphs) != n || len(formats) != n {
		return nil, fmt.Errorf("%w: texture %dx%d with %d glyphs and %d formats",
			ErrInvalidSize, width, height, len(glyphs), len(formats))
	}
	return &Texture{width: width, height: height, glyphs: glyphs, formats: formats}, nil
}

// Width returns the texture width in texels
func (t *Texture) Width() int { return t.width }

// Height returns the texture height in texels
func (t *Texture) Height() int { return t.height }

// Sample returns the texel at u*w/256 + w*(v*h/256)
func (t *Texture) Sample(u, v uint8) (rune, PixelFormat) {
	idx := int(u)*t.width/256 + t.width*(int(v)*t.height/256)
	return t.glyphs[idx], t.formats[idx]
}

// TextureShader samples tex at the interpolated u, v
func TextureShader(tex *Texture) PixelShader {
	return tex.Sample
}

// TextureFromImage scales img to width x height texels
// Each texel keeps the scaled pixel as an RGB foreground on black and picks its glyph from Lab lightness
func TextureFromImage(img image.Image, width, height int, grad Gradient) (*Texture, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: texture %dx%d", ErrInvalidSize, width, height)
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)

	n := width * height
	glyphs := make([]rune, n)
	formats := make([]PixelFormat, n)
	bg := terminal.Indexed(terminal.Black)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			i := y*width + x
			px := dst.RGBAAt(x, y)
			c, _ := colorful.MakeColor(px)
			l, _, _ := c.Lab()
			glyphs[i] = grad.Char(uint8(min(max(l, 0), 1) * 255))
			formats[i] = PixelFormat{Fg: terminal.TrueColor(px.R, px.G, px.B), Bg: bg}
		}
	}

	return NewTexture(width, height, glyphs, formats)
}
