// @lixen: #focus{render[pipeline,cull,project]}
package render

import (
	"math"

	"github.com/lixenwraith/termgl/vmath"
)

// VertexShader transforms a model-space vertex into clip space
type VertexShader func(in vmath.Vec3) vmath.Vec4

// Triangle is a model-space triangle
type Triangle [3]vmath.Vec3

// UV holds per-vertex texture coordinates of a Triangle
type UV [3][2]uint8

// maxPixel bounds float-to-int conversion of screen coordinates; the rasterizer clamps the rest
const maxPixel = 1 << 24

// Pipeline runs triangles through vertex shading, culling, clipping and projection onto a Grid
type Pipeline struct {
	grid    *Grid
	halfW   float32
	halfH   float32
	cull    bool
	cullBit bool
}

// NewPipeline creates a pipeline drawing onto g with back faces of clockwise triangles culled when enabled
func NewPipeline(g *Grid) *Pipeline {
	return &Pipeline{
		grid:  g,
		halfW: float32(g.Width()) / 2,
		halfH: float32(g.Height()) / 2,
	}
}

// SetCulling enables or disables face culling
func (p *Pipeline) SetCulling(enabled bool) {
	p.cull = enabled
}

// Culling reports whether face culling is enabled
func (p *Pipeline) Culling() bool { return p.cull }

// CullFace selects the discarded face and the front-facing winding
func (p *Pipeline) CullFace(face Face, winding Winding) {
	p.cullBit = (face == CullFront) != (winding == WindingCCW)
}

// Draw rasterizes one triangle and returns the number of post-clip triangles drawn
// Culled or fully clipped triangles return 0
func (p *Pipeline) Draw(tri Triangle, uv UV, fill bool, vs VertexShader, fs PixelShader) int {
	var in ClipTriangle
	for i := range tri {
		in[i] = ClipVertex{Pos: vs(tri[i]), U: uv[i][0], V: uv[i][1]}
	}

	if p.cull && p.culled(&in) {
		return 0
	}

	var buf clipBuffer
	out := buf.clip(in)

	for i := range out {
		v0 := p.toScreen(out[i][0])
		v1 := p.toScreen(out[i][1])
		v2 := p.toScreen(out[i][2])
		if fill {
			p.grid.TriangleFill(v0, v1, v2, fs)
		} else {
			p.grid.Triangle(v0, v1, v2, fs)
		}
	}
	return len(out)
}

// culled decides facing from the sign of the projected cross product z
func (p *Pipeline) culled(t *ClipTriangle) bool {
	a := vmath.PerspectiveDivide(t[0].Pos)
	b := vmath.PerspectiveDivide(t[1].Pos)
	c := vmath.PerspectiveDivide(t[2].Pos)
	n := vmath.V3Cross(vmath.V3Sub(b, a), vmath.V3Sub(c, a))
	return p.cullBit != math.Signbit(float64(n.Z))
}

// toScreen divides by w and maps NDC [-1, 1] onto the grid
func (p *Pipeline) toScreen(v ClipVertex) Vertex {
	ndc := vmath.PerspectiveDivide(v.Pos)
	return Vertex{
		X: toPixel(p.halfW*ndc.X + p.halfW),
		Y: toPixel(p.halfH*ndc.Y + p.halfH),
		Z: ndc.Z,
		U: v.U,
		V: v.V,
	}
}

// toPixel truncates toward zero; NaN maps to 0 and infinities saturate
func toPixel(f float32) int {
	switch {
	case f != f:
		return 0
	case f > maxPixel:
		return maxPixel
	case f < -maxPixel:
		return -maxPixel
	}
	return int(f)
}
