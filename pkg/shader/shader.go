// Package shader implements the fragment-program contract used by the
// rasterizer: prepare once per draw call, transform each vertex, shade each
// fragment.
package shader

import (
	"github.com/taigrr/trophy/pkg/math3d"
	"github.com/taigrr/trophy/pkg/render"
)

// PrepareContext carries everything a shader needs to prepare for one draw
// call. It is built by the caller (the scene/engine layer) from its own
// Scene/SceneObject types rather than shader importing them directly, which
// would create an import cycle (scene needs to hold Shader values).
type PrepareContext struct {
	ModelMatrix    math3d.Mat4
	ViewProjMatrix math3d.Mat4
	NormalMatrix   math3d.Mat4
	EyePos         math3d.Vec3
	EyeDir         math3d.Vec3
	Texture        *render.Texture
	Lights         []render.Light
}

// Shader is the fragment-program contract: Prepare runs once per draw
// call, Vertex and Fragment run per vertex/pixel. CloneInto copies the
// shader's per-draw-call state into arena and returns the clone, so the
// render loop can snapshot shader state once per draw call without a
// fresh heap allocation per triangle.
type Shader interface {
	Prepare(ctx PrepareContext)
	Vertex(in render.Vertex) render.Vertex
	Fragment(in render.Vertex, mipLevel float64) (render.ColorF, bool)
	CloneInto(arena *Arena) Shader
}

// Arena is a per-frame, slice-backed store of cloned shader instances, one
// slice per concrete shader type. Go has no placement new, so the
// equivalent here is appending a value copy to a preallocated typed slice
// and handing back a pointer into it, which keeps every clone for a frame
// contiguous and avoids one allocation per clone.
type Arena struct {
	lit    []LitShader
	unlit  []UnlitShader
	cutout []CutoutShader
}

// Reset truncates every backing slice to zero length, keeping the
// underlying capacity so next frame's clones reuse the same memory.
func (a *Arena) Reset() {
	a.lit = a.lit[:0]
	a.unlit = a.unlit[:0]
	a.cutout = a.cutout[:0]
}
