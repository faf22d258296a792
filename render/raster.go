// @lixen: #focus{render[raster]}
package render

// Vertex is a screen-space vertex for the 2D primitives
// U and V are handed to the pixel shader after interpolation
type Vertex struct {
	X, Y int
	Z    float32
	U, V uint8
}

// Point shades a single pixel at the clamped vertex position
func (g *Grid) Point(v Vertex, shader PixelShader) {
	x, y := g.Clamp(v.X, v.Y)
	g.shade(x, y, v.Z, v.U, v.V, shader)
}

// Line draws a Bresenham line, interpolating z, u and v along the dominant axis
// Endpoints are clamped independently before stepping, so a line leaving the grid is shortened
func (g *Grid) Line(v0, v1 Vertex, shader PixelShader) {
	v0.X, v0.Y = g.Clamp(v0.X, v0.Y)
	v1.X, v1.Y = g.Clamp(v1.X, v1.Y)

	if abs(v1.Y-v0.Y) < abs(v1.X-v0.X) {
		// x-major: dx > 0 after ordering
		if v0.X > v1.X {
			v0, v1 = v1, v0
		}
		dx := v1.X - v0.X
		dy := v1.Y - v0.Y
		yi := 1
		if dy < 0 {
			yi = -1
			dy = -dy
		}
		d := 2*dy - dx
		y := v0.Y
		for x := v0.X; x <= v1.X; x++ {
			a, b := x-v0.X, v1.X-x
			g.shade(x, y, lerpZ(v0.Z, v1.Z, a, b, dx), lerpU8(v0.U, v1.U, a, b, dx), lerpU8(v0.V, v1.V, a, b, dx), shader)
			if d > 0 {
				y += yi
				d += 2 * (dy - dx)
			} else {
				d += 2 * dy
			}
		}
		return
	}

	// y-major
	if v0.Y > v1.Y {
		v0, v1 = v1, v0
	}
	dy := v1.Y - v0.Y
	if dy == 0 {
		// Both endpoints on the same cell
		g.shade(v0.X, v0.Y, v0.Z, v0.U, v0.V, shader)
		return
	}
	dx := v1.X - v0.X
	xi := 1
	if dx < 0 {
		xi = -1
		dx = -dx
	}
	d := 2*dx - dy
	x := v0.X
	for y := v0.Y; y <= v1.Y; y++ {
		a, b := y-v0.Y, v1.Y-y
		g.shade(x, y, lerpZ(v0.Z, v1.Z, a, b, dy), lerpU8(v0.U, v1.U, a, b, dy), lerpU8(v0.V, v1.V, a, b, dy), shader)
		if d > 0 {
			x += xi
			d += 2 * (dx - dy)
		} else {
			d += 2 * dx
		}
	}
}

// Triangle draws the three edges of a triangle
func (g *Grid) Triangle(v0, v1, v2 Vertex, shader PixelShader) {
	g.Line(v0, v1, shader)
	g.Line(v0, v2, shader)
	g.Line(v1, v2, shader)
}

// TriangleFill fills a triangle row by row
// The long edge (top to bottom vertex) and the two short edges are walked with Bresenham trackers;
// each row's span covers every pixel the edges touch on that row, so filled and outlined
// triangles share their border pixels
func (g *Grid) TriangleFill(v0, v1, v2 Vertex, shader PixelShader) {
	v0.X, v0.Y = g.Clamp(v0.X, v0.Y)
	v1.X, v1.Y = g.Clamp(v1.X, v1.Y)
	v2.X, v2.Y = g.Clamp(v2.X, v2.Y)

	// Sort by y ascending
	if v1.Y < v0.Y {
		v0, v1 = v1, v0
	}
	if v2.Y < v0.Y {
		v0, v2 = v2, v0
	}
	if v2.Y < v1.Y {
		v1, v2 = v2, v1
	}

	if v0.Y == v2.Y {
		// Zero height: one span between the horizontal extremes
		left, right := v0, v0
		for _, v := range [2]Vertex{v1, v2} {
			if v.X < left.X {
				left = v
			}
			if v.X > right.X {
				right = v
			}
		}
		g.hline(left, right, v0.Y, shader)
		return
	}

	long := newEdge(v0, v2)
	upper := newEdge(v0, v1)
	lower := newEdge(v1, v2)

	for y := v0.Y; y <= v2.Y; y++ {
		longLo, longHi := long.span()

		var shortLo, shortHi int
		switch {
		case y < v1.Y:
			shortLo, shortHi = upper.span()
		case y == v1.Y:
			// Both short edges touch the middle row
			aLo, aHi := upper.span()
			bLo, bHi := lower.span()
			shortLo, shortHi = min(aLo, bLo), max(aHi, bHi)
		default:
			shortLo, shortHi = lower.span()
		}

		// Attributes at both span ends
		longAttr := edgeAttr(v0, v2, y)
		var shortAttr Vertex
		switch {
		case y < v1.Y:
			shortAttr = edgeAttr(v0, v1, y)
		case y > v1.Y:
			shortAttr = edgeAttr(v1, v2, y)
		default:
			shortAttr = v1
		}

		lo, hi := min(longLo, shortLo), max(longHi, shortHi)
		longAttr.X, shortAttr.X = lo, hi
		if longLo+longHi > shortLo+shortHi {
			// Long edge is on the right
			longAttr.X, shortAttr.X = hi, lo
			g.hline(shortAttr, longAttr, y, shader)
		} else {
			g.hline(longAttr, shortAttr, y, shader)
		}
	}
}

// hline shades the span [l.X, r.X] on row y, interpolating z, u and v along x
// A zero-length span is a single point
func (g *Grid) hline(l, r Vertex, y int, shader PixelShader) {
	if l.X == r.X {
		g.shade(l.X, y, l.Z, l.U, l.V, shader)
		return
	}
	dx := r.X - l.X
	for x := l.X; x <= r.X; x++ {
		a, b := x-l.X, r.X-x
		g.shade(x, y, lerpZ(l.Z, r.Z, a, b, dx), lerpU8(l.U, r.U, a, b, dx), lerpU8(l.V, r.V, a, b, dx), shader)
	}
}

// edgeAttr interpolates z, u, v of the edge from a to b (a.Y < b.Y) at row y
func edgeAttr(a, b Vertex, y int) Vertex {
	n := b.Y - a.Y
	if n == 0 {
		return a
	}
	s, t := y-a.Y, b.Y-y
	return Vertex{
		Y: y,
		Z: lerpZ(a.Z, b.Z, s, t, n),
		U: lerpU8(a.U, b.U, s, t, n),
		V: lerpU8(a.V, b.V, s, t, n),
	}
}

// lerpU8 returns (a*from_end + b*to_start)/n with integer truncation
// a is the distance from the start, b the distance to the end, a+b == n
func lerpU8(start, end uint8, a, b, n int) uint8 {
	return uint8((a*int(end) + b*int(start)) / n)
}

// lerpZ is the float counterpart of lerpU8
func lerpZ(start, end float32, a, b, n int) float32 {
	return (float32(a)*end + float32(b)*start) / float32(n)
}

// edge is a Bresenham tracker walking one triangle edge a row at a time
type edge struct {
	x, y   int
	x1, y1 int
	dx, dy int
	sx     int
	err    int
}

// newEdge creates a tracker from a to b, a.Y <= b.Y
func newEdge(a, b Vertex) edge {
	dx := b.X - a.X
	sx := 1
	if dx < 0 {
		sx = -1
		dx = -dx
	}
	dy := b.Y - a.Y
	return edge{
		x: a.X, y: a.Y,
		x1: b.X, y1: b.Y,
		dx: dx, dy: dy,
		sx:  sx,
		err: dx - dy,
	}
}

// span returns the x extent covered on the current row and advances to the next row
// Once the end point is reached every call returns it
func (e *edge) span() (lo, hi int) {
	lo, hi = e.x, e.x
	for e.x != e.x1 || e.y != e.y1 {
		e2 := 2 * e.err
		if e2 > -e.dy {
			e.err -= e.dy
			e.x += e.sx
		}
		if e2 < e.dx {
			e.err += e.dx
			e.y++
			return lo, hi
		}
		lo, hi = min(lo, e.x), max(hi, e.x)
	}
	return lo, hi
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
