// @lixen: #focus{render[pipeline,clip]}
package render

import (
	"fmt"

	"github.com/lixenwraith/termgl/vmath"
)

// ClipVertex is a clip-space vertex produced by the vertex shader
type ClipVertex struct {
	Pos  vmath.Vec4
	U, V uint8
}

// ClipTriangle is one clip-space triangle
type ClipTriangle [3]ClipVertex

// ClipPlane identifies a frustum plane; a point is inside all planes iff -w <= x,y,z <= w
type ClipPlane uint8

const (
	ClipNear ClipPlane = iota
	ClipFar
	ClipLeft
	ClipRight
	ClipTop
	ClipBottom

	clipPlaneCount
)

// Distance returns the signed distance of v to the plane, >= 0 is inside
func (p ClipPlane) Distance(v vmath.Vec4) float32 {
	switch p {
	case ClipNear:
		return v.Z + v.W
	case ClipFar:
		return -v.Z + v.W
	case ClipLeft:
		return v.X + v.W
	case ClipRight:
		return -v.X + v.W
	case ClipTop:
		return -v.Y + v.W
	case ClipBottom:
		return v.Y + v.W
	default:
		panic(fmt.Sprintf("render: unknown clip plane %d", p))
	}
}

// clipBufferSize bounds the triangles of all clip stages of one input triangle
// Convex clipping of one triangle against 6 planes stays far below this
const clipBufferSize = 128

// clipBuffer is per-call scratch for staged clipping; stage outputs are appended after their inputs
type clipBuffer struct {
	tris [clipBufferSize]ClipTriangle
}

// clip runs tri through all six planes and returns the surviving triangles, aliasing the buffer
// Exceeding the buffer is an invariant violation and panics
func (b *clipBuffer) clip(tri ClipTriangle) []ClipTriangle {
	b.tris[0] = tri
	offset, nCur := 0, 1

	for p := ClipPlane(0); p < clipPlaneCount; p++ {
		nNext := 0
		for i := 0; i < nCur; i++ {
			dst := offset + nCur + nNext
			if dst+2 > clipBufferSize {
				panic(fmt.Sprintf("render: clip buffer overflow at plane %d (%d triangles)", p, dst))
			}
			nNext += clipTrianglePlane(p, &b.tris[offset+i], b.tris[dst:dst+2])
		}
		offset += nCur
		nCur = nNext
		if nCur == 0 {
			break
		}
	}

	return b.tris[offset : offset+nCur]
}

// Clip clips a clip-space triangle against the view frustum
// Returns 0 triangles when fully outside any plane, the input unchanged when fully inside
func Clip(tri ClipTriangle) []ClipTriangle {
	var b clipBuffer
	out := b.clip(tri)
	res := make([]ClipTriangle, len(out))
	copy(res, out)
	return res
}

// clipTrianglePlane clips in against one plane, writing 0-2 triangles to out
func clipTrianglePlane(p ClipPlane, in *ClipTriangle, out []ClipTriangle) int {
	var (
		inside, outside [3]int
		nIn, nOut       int
		d               [3]float32
	)
	for i := range in {
		d[i] = p.Distance(in[i].Pos)
		if d[i] >= 0 {
			inside[nIn] = i
			nIn++
		} else {
			outside[nOut] = i
			nOut++
		}
	}

	switch nIn {
	case 0:
		return 0
	case 1:
		i0, o0, o1 := inside[0], outside[0], outside[1]
		out[0] = ClipTriangle{
			in[i0],
			intersect(d[i0], in[i0], d[o0], in[o0]),
			intersect(d[i0], in[i0], d[o1], in[o1]),
		}
		return 1
	case 2:
		// Quad split along the diagonal from the second inside vertex to the first intersection
		i0, i1, o0 := inside[0], inside[1], outside[0]
		p0 := intersect(d[i0], in[i0], d[o0], in[o0])
		p1 := intersect(d[i1], in[i1], d[o0], in[o0])
		out[0] = ClipTriangle{in[i0], in[i1], p0}
		out[1] = ClipTriangle{in[i1], p0, p1}
		return 2
	default:
		out[0] = *in
		return 1
	}
}

// intersect returns the point where the edge from vi (inside) to vo (outside) crosses the plane
// Position and uv are interpolated together
func intersect(di float32, vi ClipVertex, do float32, vo ClipVertex) ClipVertex {
	t := di / (di - do)
	return ClipVertex{
		Pos: vmath.V4Lerp(vi.Pos, vo.Pos, t),
		U:   lerpUV(vi.U, vo.U, t),
		V:   lerpUV(vi.V, vo.V, t),
	}
}

func lerpUV(a, b uint8, t float32) uint8 {
	return uint8(float32(a)*(1-t) + float32(b)*t)
}
