// @lixen: #focus{render[shader]}
package render

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/termgl/terminal"
	"github.com/lixenwraith/termgl/vmath"
)

// Gradient maps an 8-bit intensity onto an ordered run of glyphs, darkest first
type Gradient struct {
	glyphs []rune
}

// NewGradient creates a gradient from chars, darkest first
func NewGradient(chars string) Gradient {
	return Gradient{glyphs: []rune(chars)}
}

var (
	// GradientFull is a 70 step ramp
	GradientFull = NewGradient(" .'`^\",:;Il!i><~+_-?][}{1)(|\\/tfjrxnuvczXYUJCLQ0OZmwqpdbkhao*#MW&8%B@$")
	// GradientMin is a 10 step ramp
	GradientMin = NewGradient(" .:-=+*#%@")
)

// Len returns the number of glyphs
func (g Gradient) Len() int { return len(g.glyphs) }

// Char returns glyphs[len*intensity/256]; an empty gradient yields a space
func (g Gradient) Char(intensity uint8) rune {
	if len(g.glyphs) == 0 {
		return ' '
	}
	return g.glyphs[len(g.glyphs)*int(intensity)/256]
}

// SimpleShader draws every pixel in one format with the glyph picked by u+v (wrapping at 256)
func SimpleShader(format PixelFormat, grad Gradient) PixelShader {
	return func(u, v uint8) (rune, PixelFormat) {
		return grad.Char(u + v), format
	}
}

// BlendShader colors pixels along u from one color to another in Lab space
// The glyph follows v on the gradient; the background stays black
func BlendShader(from, to colorful.Color, grad Gradient) PixelShader {
	var lut [256]terminal.Color
	for i := range lut {
		c := from.BlendLab(to, float64(i)/255).Clamped()
		r, g, b := c.RGB255()
		lut[i] = terminal.TrueColor(r, g, b)
	}
	bg := terminal.Indexed(terminal.Black)
	return func(u, v uint8) (rune, PixelFormat) {
		return grad.Char(v), PixelFormat{Fg: lut[u], Bg: bg}
	}
}

// MatrixVertexShader transforms vertices by m with w = 1
func MatrixVertexShader(m vmath.Mat4) VertexShader {
	return func(in vmath.Vec3) vmath.Vec4 {
		return vmath.MulVec3(m, in)
	}
}
