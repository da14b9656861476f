package render

import "math"

// RasterizeScanline rasterizes one post-clip, screen-space triangle using
// the scanline algorithm: sort by y, split at the middle vertex into
// flat-bottom/flat-top halves, step edges by dy and span interiors by dx.
// Fills [ceil(yTop), ceil(yBottom)) x [ceil(xLeft), ceil(xRight)) per the
// top-left convention. Only single-sample buffers are supported (MSAA is
// half-space-only; SSAA works transparently via a render-resolution
// buffer).
func RasterizeScanline(color *RenderBuffer[ColorF], depth *RenderBuffer[float64], strip Rect, cull CullMode, tri [3]Vertex, texW, texH int, shade FragmentFunc) {
	te, ok := prepareTriEdges(tri, cull)
	if !ok {
		return
	}

	v := tri
	// Sort ascending by screen Y.
	if v[0].Position.Y > v[1].Position.Y {
		v[0], v[1] = v[1], v[0]
	}
	if v[1].Position.Y > v[2].Position.Y {
		v[1], v[2] = v[2], v[1]
	}
	if v[0].Position.Y > v[1].Position.Y {
		v[0], v[1] = v[1], v[0]
	}

	y0, y1, y2 := v[0].Position.Y, v[1].Position.Y, v[2].Position.Y
	if y0 == y2 {
		return // zero-height triangle: silent drop
	}

	// The vertex splitting the long edge (v0-v2) at v1's height.
	t := (y1 - y0) / (y2 - y0)
	vSplit := v[0].Lerp(v[2], t)

	fillHalf := func(top, botLeft, botRight Vertex, topIsFlat bool) {
		fillFlatHalf(color, depth, strip, te, top, botLeft, botRight, texW, texH, shade)
	}

	if v[1].Position.X < vSplit.Position.X {
		fillHalf(v[0], v[1], vSplit, true)
		fillHalf(v[2], v[1], vSplit, false)
	} else {
		fillHalf(v[0], vSplit, v[1], true)
		fillHalf(v[2], vSplit, v[1], false)
	}
}

// fillFlatHalf fills one flat-topped or flat-bottomed half-triangle
// (apex, left-base, right-base), stepping left/right x per scanline via
// linear interpolation along the two non-horizontal edges, and evaluating
// the true fragment (including depth/UV) through the shared triEdges
// barycentric machinery for exactness.
func fillFlatHalf(color *RenderBuffer[ColorF], depth *RenderBuffer[float64], strip Rect, te triEdges, apex, left, right Vertex, texW, texH int, shade FragmentFunc) {
	yApex := apex.Position.Y
	yBase := left.Position.Y // left.Y == right.Y

	yStart, yEnd := yApex, yBase
	ascending := yBase > yApex
	if !ascending {
		yStart, yEnd = yBase, yApex
	}

	minY := int(math.Ceil(yStart))
	maxY := int(math.Ceil(yEnd))
	if minY < strip.MinY {
		minY = strip.MinY
	}
	if maxY > strip.MaxY {
		maxY = strip.MaxY
	}

	for y := minY; y < maxY; y++ {
		py := float64(y) + 0.5
		var t float64
		if yBase != yApex {
			t = (py - yApex) / (yBase - yApex)
		}
		if t < 0 {
			t = 0
		}
		if t > 1 {
			t = 1
		}
		xLeft := apex.Position.X + (left.Position.X-apex.Position.X)*t
		xRight := apex.Position.X + (right.Position.X-apex.Position.X)*t
		if xLeft > xRight {
			xLeft, xRight = xRight, xLeft
		}

		minX := int(math.Ceil(xLeft))
		maxX := int(math.Ceil(xRight))
		if minX < strip.MinX {
			minX = strip.MinX
		}
		if maxX > strip.MaxX {
			maxX = strip.MaxX
		}

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
