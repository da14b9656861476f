package render

import "math"

// RasterMode selects between the two interchangeable triangle rasterizer
// algorithms.
type RasterMode int

const (
	RasterScanline RasterMode = iota
	RasterHalfspace
)

// AAMode selects the anti-aliasing strategy. MSAA is valid only with
// RasterHalfspace; any other pairing silently falls back to AAOff,
// enforced by the engine façade, not here.
type AAMode int

const (
	AAOff AAMode = iota
	AAMSAA4x
	AASSAA2x
	AASSAA4x
)

// CullMode selects which winding is discarded as back-facing.
type CullMode int

const (
	CullNone CullMode = iota
	CullBack
	CullFront
)

// Rect is an inclusive-exclusive pixel rectangle: [MinX,MaxX) x [MinY,MaxY).
type Rect struct {
	MinX, MinY, MaxX, MaxY int
}

// FragmentFunc is the per-triangle-resolved shading callback: given a
// perspective-corrected fragment vertex and an analytic mip level, it
// returns the shaded color and whether the fragment should be discarded
// (e.g. a cutout shader's alpha test). Looked up once per triangle by the
// caller and passed down so the hot pixel loop never does virtual dispatch
// per pixel.
type FragmentFunc func(v Vertex, mipLevel float64) (color ColorF, discard bool)

// msaaOffsets is the rotated-grid 4x MSAA sub-pixel sample pattern.
var msaaOffsets = [4][2]float64{
	{0.375, -0.125},
	{-0.125, -0.375},
	{-0.375, 0.125},
	{0.125, 0.375},
}

func edgeSign(x0, y0, x1, y1, x2, y2 float64) float64 {
	return (x1-x0)*(y2-y0) - (y1-y0)*(x2-x0)
}

func clampRectToStrip(minX, minY, maxX, maxY int, strip Rect) (int, int, int, int) {
	if minX < strip.MinX {
		minX = strip.MinX
	}
	if minY < strip.MinY {
		minY = strip.MinY
	}
	if maxX > strip.MaxX {
		maxX = strip.MaxX
	}
	if maxY > strip.MaxY {
		maxY = strip.MaxY
	}
	return minX, minY, maxX, maxY
}

func triBBox(v [3]Vertex) (minX, minY, maxX, maxY int) {
	x0, y0 := v[0].Position.X, v[0].Position.Y
	x1, y1 := v[1].Position.X, v[1].Position.Y
	x2, y2 := v[2].Position.X, v[2].Position.Y
	minX = int(math.Floor(math.Min(x0, math.Min(x1, x2))))
	maxX = int(math.Ceil(math.Max(x0, math.Max(x1, x2))))
	minY = int(math.Floor(math.Min(y0, math.Min(y1, y2))))
	maxY = int(math.Ceil(math.Max(y0, math.Max(y1, y2))))
	return
}
