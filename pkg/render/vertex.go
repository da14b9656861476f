package render

import "github.com/taigrr/trophy/pkg/math3d"

// Vertex is the clip-space-aware vertex carried through the geometry and
// rasterization pipeline: a 4-wide position, a 3-wide normal, a 2-wide
// texture coordinate, and a 3-wide world position. Vertex is treated as a
// linear vector space so that clipping and attribute interpolation can
// blend every channel by the same scalar t.
//
// Before the perspective divide, Position holds clip-space (x, y, z, w)
// with w carrying eye-Z. After PerspectiveDivideAndViewport, Position holds
// (screenX, screenY, ndcZ, 1/w_clip): the w channel becomes the reciprocal
// so attribute/w stays linearly interpolable in screen space.
type Vertex struct {
	Position math3d.Vec4
	Normal   math3d.Vec3
	UV       math3d.Vec2
	WorldPos math3d.Vec3
}

// Add returns the component-wise sum of two vertices.
func (v Vertex) Add(o Vertex) Vertex {
	return Vertex{
		Position: v.Position.Add(o.Position),
		Normal:   v.Normal.Add(o.Normal),
		UV:       v.UV.Add(o.UV),
		WorldPos: v.WorldPos.Add(o.WorldPos),
	}
}

// Sub returns the component-wise difference of two vertices.
func (v Vertex) Sub(o Vertex) Vertex {
	return Vertex{
		Position: v.Position.Sub(o.Position),
		Normal:   v.Normal.Sub(o.Normal),
		UV:       v.UV.Sub(o.UV),
		WorldPos: v.WorldPos.Sub(o.WorldPos),
	}
}

// Scale returns every channel scaled by s.
func (v Vertex) Scale(s float64) Vertex {
	return Vertex{
		Position: v.Position.Scale(s),
		Normal:   v.Normal.Scale(s),
		UV:       v.UV.Scale(s),
		WorldPos: v.WorldPos.Scale(s),
	}
}

// Lerp linearly blends v toward o by t, component-wise across every channel.
// This is the operation clipping relies on: a clipped edge's new vertex is
// v.Lerp(o, t) for the crossing parameter t.
func (v Vertex) Lerp(o Vertex, t float64) Vertex {
	return v.Add(o.Sub(v).Scale(t))
}

// DivideByW divides every non-position channel by w, then stores 1/w back
// into Position.W: attribute/w is carried separately and divided at the
// fragment for perspective correction. Called once during
// PerspectiveDivideAndViewport.
func (v Vertex) DivideByW(w float64) Vertex {
	invW := 0.0
	if w != 0 {
		invW = 1.0 / w
	}
	out := v
	out.Normal = v.Normal.Scale(invW)
	out.UV = v.UV.Scale(invW)
	out.WorldPos = v.WorldPos.Scale(invW)
	out.Position.W = invW
	return out
}

// UndoPerspective divides every attribute channel back by the carried 1/w,
// recovering true (non-perspective-weighted) attribute values at a
// fragment. Call after interpolating DivideByW'd vertices across a
// triangle.
func (v Vertex) UndoPerspective() Vertex {
	invW := v.Position.W
	if invW == 0 {
		return v
	}
	w := 1.0 / invW
	out := v
	out.Normal = v.Normal.Scale(w)
	out.UV = v.UV.Scale(w)
	out.WorldPos = v.WorldPos.Scale(w)
	return out
}
