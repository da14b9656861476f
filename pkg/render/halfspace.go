package render

// topLeftEpsilon biases a shared triangle edge's constant term so that a
// pixel on the edge belongs to exactly one of the two triangles sharing it
// (the top-left fill rule), applied as a small floating offset since these
// coefficients are not rounded to integers.
const topLeftEpsilon = 1e-9

type edge struct {
	dx, dy, c float64
}

// newEdge builds the edge function E(x,y) = dx*x + dy*y + c for the
// directed edge (ax,ay)->(bx,by), with the top-left fill bias applied in
// the triangle's orientation: sign is +1 for a front-facing triangle and
// -1 for a back-facing one, so sign*E >= 0 inside and (sign*dx, sign*dy)
// is the edge's inward normal. A "left" edge has the interior to its right
// (normal points +x); a "top" edge is horizontal with the interior below
// it (normal points +y on the y-down screen). Every other edge has
// topLeftEpsilon taken off, so a pixel center lying exactly on it tests as
// outside, while one lying on a top or left edge tests as inside.
func newEdge(ax, ay, bx, by, sign float64) edge {
	dx := ay - by
	dy := bx - ax
	c := -(dx*ax + dy*ay)
	nx, ny := sign*dx, sign*dy
	if !(nx > 0 || (nx == 0 && ny > 0)) {
		c -= sign * topLeftEpsilon
	}
	return edge{dx, dy, c}
}

func (e edge) eval(x, y float64) float64 {
	return e.dx*x + e.dy*y + e.c
}

// triEdges holds the precomputed per-edge data used to evaluate
// barycentric coordinates at any screen point for one triangle.
type triEdges struct {
	v0, v1, v2 Vertex
	e0, e1, e2 edge
	sign       float64
	invArea    float64
}

func prepareTriEdges(tri [3]Vertex, cull CullMode) (triEdges, bool) {
	v0, v1, v2 := tri[0], tri[1], tri[2]
	area := edgeSign(v0.Position.X, v0.Position.Y, v1.Position.X, v1.Position.Y, v2.Position.X, v2.Position.Y)
	if area == 0 {
		return triEdges{}, false
	}
	backFacing := area < 0
	switch cull {
	case CullBack:
		if backFacing {
			return triEdges{}, false
		}
	case CullFront:
		if !backFacing {
			return triEdges{}, false
		}
	}
	sign := 1.0
	if backFacing {
		sign = -1.0
	}
	te := triEdges{
		v0: v0, v1: v1, v2: v2,
		e0:      newEdge(v1.Position.X, v1.Position.Y, v2.Position.X, v2.Position.Y, sign),
		e1:      newEdge(v2.Position.X, v2.Position.Y, v0.Position.X, v0.Position.Y, sign),
		e2:      newEdge(v0.Position.X, v0.Position.Y, v1.Position.X, v1.Position.Y, sign),
		sign:    sign,
		invArea: 1.0 / (area * sign),
	}
	return te, true
}

// barycentric returns the barycentric weights of screen point (px,py), and
// whether the point lies inside (or on, per the top-left rule) the
// triangle.
func (te triEdges) barycentric(px, py float64) (l0, l1, l2 float64, inside bool) {
	w0 := te.e0.eval(px, py) * te.sign
	w1 := te.e1.eval(px, py) * te.sign
	w2 := te.e2.eval(px, py) * te.sign
	if w0 < 0 || w1 < 0 || w2 < 0 {
		return 0, 0, 0, false
	}
	return w0 * te.invArea, w1 * te.invArea, w2 * te.invArea, true
}

func (te triEdges) interpolate(l0, l1, l2 float64) Vertex {
	return te.v0.Scale(l0).Add(te.v1.Scale(l1)).Add(te.v2.Scale(l2))
}

// fragment evaluates the full perspective-corrected fragment at (px,py),
// along with its UV screen-space derivatives for mip selection.
func (te triEdges) fragment(px, py float64, texW, texH int) (frag Vertex, oneOverW, mipLevel float64, ok bool) {
	l0, l1, l2, in := te.barycentric(px, py)
	if !in {
		return Vertex{}, 0, 0, false
	}
	interp := te.interpolate(l0, l1, l2)
	oneOverW = interp.Position.W
	frag = interp.UndoPerspective()

	if texW > 0 && texH > 0 {
		centerUV := frag.UV
		var dx0, dx1, dy0, dy1 float64
		if rl0, rl1, rl2, rok := te.barycentric(px+1, py); rok {
			rightUV := te.interpolate(rl0, rl1, rl2).UndoPerspective().UV
			dx0, dx1 = rightUV.X-centerUV.X, rightUV.Y-centerUV.Y
		}
		if dl0, dl1, dl2, dok := te.barycentric(px, py+1); dok {
			downUV := te.interpolate(dl0, dl1, dl2).UndoPerspective().UV
			dy0, dy1 = downUV.X-centerUV.X, downUV.Y-centerUV.Y
		}
		mipLevel = CalcMipLevel([2]float64{dx0, dx1}, [2]float64{dy0, dy1}, texW, texH)
	}
	return frag, oneOverW, mipLevel, true
}

// RasterizeHalfspace rasterizes one post-clip, screen-space triangle using
// the edge-function (half-space) algorithm, restricted to the given strip,
// into single-sample color/depth buffers (Samples == 1): this covers both
// AAOff and SSAA (an SSAA buffer is simply a render-resolution buffer from
// this function's point of view). For MSAA 4x, use RasterizeHalfspaceMSAA.
func RasterizeHalfspace(color *RenderBuffer[ColorF], depth *RenderBuffer[float64], strip Rect, cull CullMode, tri [3]Vertex, texW, texH int, shade FragmentFunc) {
	te, ok := prepareTriEdges(tri, cull)
	if !ok {
		return
	}
	minX, minY, maxX, maxY := triBBox(tri)
	minX, minY, maxX, maxY = clampRectToStrip(minX, minY, maxX, maxY, strip)

	for y := minY; y < maxY; y++ {
		py := float64(y) + 0.5
		for x := minX; x < maxX; x++ {
			px := float64(x) + 0.5
			frag, oneOverW, mip, in := te.fragment(px, py, texW, texH)
			if !in {
				continue
			}
			if oneOverW <= *depth.Sample(x, y, 0) {
				continue
			}
			c, discard := shade(frag, mip)
			if discard {
				continue
			}
			*depth.Sample(x, y, 0) = oneOverW
			*color.Sample(x, y, 0) = c
		}
	}
}

// RasterizeHalfspaceMSAA implements 4x multisampling: 4 samples per pixel
// at fixed rotated-grid sub-pixel offsets, shaded once per pixel at the
// pixel center, with per-sample coverage+depth test/write. color and depth
// must both have Samples == 4. There is no early-out on the right once a
// row has been entered (every column in the bounding box is evaluated,
// unlike a tighter scanline walk) — the bbox scan here already has that
// property for every mode.
func RasterizeHalfspaceMSAA(color *RenderBuffer[ColorF], depth *RenderBuffer[float64], strip Rect, cull CullMode, tri [3]Vertex, texW, texH int, shade func(Vertex, float64) (ColorF, bool)) {
	te, ok := prepareTriEdges(tri, cull)
	if !ok {
		return
	}
	minX, minY, maxX, maxY := triBBox(tri)
	minX, minY, maxX, maxY = clampRectToStrip(minX, minY, maxX, maxY, strip)

	for y := minY; y < maxY; y++ {
		for x := minX; x < maxX; x++ {
			cx, cy := float64(x)+0.5, float64(y)+0.5

			var covered [4]bool
			var sampleDepth [4]float64
			anyCovered := false
			for s, off := range msaaOffsets {
				sx, sy := cx+off[0], cy+off[1]
				l0, l1, l2, in := te.barycentric(sx, sy)
				if !in {
					continue
				}
				oneOverW := te.interpolate(l0, l1, l2).Position.W
				if oneOverW <= *depth.Sample(x, y, s) {
					continue
				}
				covered[s] = true
				sampleDepth[s] = oneOverW
				anyCovered = true
			}
			if !anyCovered {
				continue
			}

			frag, _, mip, in := te.fragment(cx, cy, texW, texH)
			if !in {
				// Center missed the triangle even though a rotated sample
				// hit it (can happen right at a vertex); shade using the
				// first covered sample's (in msaaOffsets order) fragment instead.
				for s, off := range msaaOffsets {
					if !covered[s] {
						continue
					}
					frag, _, mip, in = te.fragment(cx+off[0], cy+off[1], texW, texH)
					break
				}
				if !in {
					continue
				}
			}
			c, discard := shade(frag, mip)
			if discard {
				continue
			}
			for s := range 4 {
				if !covered[s] {
					continue
				}
				*depth.Sample(x, y, s) = sampleDepth[s]
				*color.Sample(x, y, s) = c
			}
		}
	}
}
