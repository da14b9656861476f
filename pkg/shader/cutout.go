package shader

import (
	"github.com/taigrr/trophy/pkg/math3d"
	"github.com/taigrr/trophy/pkg/render"
)

// CutoutShader is a lit, alpha-tested shader: fragments whose texel alpha
// falls below AlphaCutoff are discarded outright (foliage, fences, chain
// link), surviving fragments are lit exactly as LitShader lights them.
type CutoutShader struct {
	AlphaCutoff float64

	texture        *render.Texture
	mtxMVP         math3d.Mat4
	mtxModel       math3d.Mat4
	mtxNormal      math3d.Mat4
	eyePos, eyeDir math3d.Vec3
	lights         []render.Light
}

func (s *CutoutShader) Prepare(ctx PrepareContext) {
	s.texture = ctx.Texture
	s.mtxModel = ctx.ModelMatrix
	s.mtxMVP = ctx.ViewProjMatrix.Mul(ctx.ModelMatrix)
	s.mtxNormal = ctx.NormalMatrix
	s.eyePos = ctx.EyePos
	s.eyeDir = ctx.EyeDir
	s.lights = ctx.Lights
	if s.AlphaCutoff == 0 {
		s.AlphaCutoff = 0.5
	}
}

func (s *CutoutShader) Vertex(in render.Vertex) render.Vertex {
	out := in
	out.Position = s.mtxMVP.MulVec4(math3d.V4FromV3(in.Position.Vec3(), 1))
	out.Normal = s.mtxNormal.MulVec3Dir(in.Normal).Normalize()
	out.WorldPos = s.mtxModel.MulVec3(in.WorldPos)
	return out
}

func (s *CutoutShader) Fragment(in render.Vertex, mipLevel float64) (render.ColorF, bool) {
	texel := render.ToColorF(s.texture.SampleMip(in.UV.X, in.UV.Y, mipLevel))
	if texel.A < s.AlphaCutoff {
		return render.ColorF{}, true
	}

	var lum render.ColorF
	for _, l := range s.lights {
		lum = lum.Add(l.Apply(in.WorldPos, in.Normal, s.eyePos, s.eyeDir))
	}
	out := texel.Mul(lum)
	out.A = texel.A
	return out, false
}

func (s *CutoutShader) CloneInto(arena *Arena) Shader {
	arena.cutout = append(arena.cutout, *s)
	return &arena.cutout[len(arena.cutout)-1]
}
