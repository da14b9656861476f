package shader

import (
	"github.com/taigrr/trophy/pkg/math3d"
	"github.com/taigrr/trophy/pkg/render"
)

// UnlitShader renders a self-illuminated textured surface, unaffected by
// any scene light — used for skyboxes and emissive surfaces.
type UnlitShader struct {
	texture *render.Texture
	mtxMVP  math3d.Mat4
}

func (s *UnlitShader) Prepare(ctx PrepareContext) {
	s.texture = ctx.Texture
	s.mtxMVP = ctx.ViewProjMatrix.Mul(ctx.ModelMatrix)
}

func (s *UnlitShader) Vertex(in render.Vertex) render.Vertex {
	out := in
	out.Position = s.mtxMVP.MulVec4(math3d.V4FromV3(in.Position.Vec3(), 1))
	return out
}

func (s *UnlitShader) Fragment(in render.Vertex, mipLevel float64) (render.ColorF, bool) {
	return render.ToColorF(s.texture.SampleMip(in.UV.X, in.UV.Y, mipLevel)), false
}

func (s *UnlitShader) CloneInto(arena *Arena) Shader {
	arena.unlit = append(arena.unlit, *s)
	return &arena.unlit[len(arena.unlit)-1]
}
