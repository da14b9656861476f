package render

import (
	"math"

	"github.com/taigrr/trophy/pkg/math3d"
)

// Light is the common interface every light variant satisfies. Lives in
// package render (rather than a higher-level scene package) so that
// package shader can depend on render alone without importing scene — see
// DESIGN.md's package layout note.
type Light interface {
	// Apply returns this light's additive contribution at a surface point
	// with the given (unit) normal. eyePos/eyeDir are accepted so a future
	// specular term has what it needs, though the stock falloff formulas
	// here don't use them.
	Apply(surfPos, normal, eyePos, eyeDir math3d.Vec3) ColorF

	// CanAffect is a coarse visibility test: false means this light could
	// not possibly illuminate a sphere at the given center/radius, so the
	// caller may skip calling Apply for every fragment against it.
	CanAffect(center math3d.Vec3, radius float64) bool
}

func normalizedClamp(v, lo, hi float64) float64 {
	if hi <= lo {
		return 0
	}
	c := (v - lo) / (hi - lo)
	if c < 0 {
		return 0
	}
	if c > 1 {
		return 1
	}
	return c
}

// AmbientLight contributes color*multiplier uniformly, regardless of
// surface position or normal.
type AmbientLight struct {
	Name       string
	Color      ColorF
	Multiplier float64
}

func (l AmbientLight) Apply(_, _, _, _ math3d.Vec3) ColorF {
	return l.Color.Scale(l.Multiplier)
}

func (l AmbientLight) CanAffect(math3d.Vec3, float64) bool { return true }
func (l AmbientLight) LightName() string                   { return l.Name }

// DirectionalLight contributes color*multiplier*max(0, dot(N,-dir)).
type DirectionalLight struct {
	Name       string
	Color      ColorF
	Multiplier float64
	Dir        math3d.Vec3 // direction the light travels, normalized
}

func (l DirectionalLight) Apply(_, normal, _, _ math3d.Vec3) ColorF {
	cn := normal.Dot(l.Dir.Negate())
	if cn < 0 {
		return ColorF{}
	}
	return l.Color.Scale(cn * l.Multiplier)
}

func (l DirectionalLight) CanAffect(math3d.Vec3, float64) bool { return true }
func (l DirectionalLight) LightName() string                   { return l.Name }

// PointLight falls off with squared inverse attenuation between
// DistAttenMin and DistAttenMax, contributing nothing beyond the max.
type PointLight struct {
	Name                       string
	Color                      ColorF
	Multiplier                 float64
	Pos                        math3d.Vec3
	DistAttenMin, DistAttenMax float64
}

func (l PointLight) Apply(surfPos, normal, _, _ math3d.Vec3) ColorF {
	toLight := l.Pos.Sub(surfPos)
	dist := toLight.Len()
	if dist >= l.DistAttenMax {
		return ColorF{}
	}
	cn := normal.Dot(toLight.Scale(1 / math.Max(dist, 1e-9)))
	if cn < 0 {
		return ColorF{}
	}
	cd := normalizedClamp(dist, l.DistAttenMin, l.DistAttenMax)
	cd = 1 - cd*cd
	return l.Color.Scale(cd * cn * l.Multiplier)
}

func (l PointLight) CanAffect(center math3d.Vec3, radius float64) bool {
	return l.Pos.Distance(center) <= l.DistAttenMax+radius
}

func (l PointLight) LightName() string { return l.Name }

// SpotLight combines PointLight's distance falloff with an angular
// falloff between AngAttenMin and AngAttenMax (both half-angles in
// radians), and precomputes a 6-plane frustum so the caller can cull
// whole objects against the cone cheaply.
type SpotLight struct {
	Name                       string
	Color                      ColorF
	Multiplier                 float64
	Pos, Dir                   math3d.Vec3
	AngAttenMin, AngAttenMax   float64
	DistAttenMin, DistAttenMax float64

	Frustum Frustum // populated by Prepare
}

// Prepare derives the spot light's bounding frustum from its position,
// direction, half-angle, and distance range, reusing the camera's own
// Frustum/Plane machinery rather than inventing a parallel one.
func (l *SpotLight) Prepare() {
	proj := math3d.Perspective(l.AngAttenMax*2, 1, 0.01, l.DistAttenMax)
	view := math3d.LookAt(l.Pos, l.Pos.Add(l.Dir), math3d.Up())
	l.Frustum = ExtractFrustum(proj.Mul(view))
}

func (l SpotLight) Apply(surfPos, normal, eyePos, eyeDir math3d.Vec3) ColorF {
	toLight := l.Pos.Sub(surfPos)
	dist := toLight.Len()
	if dist >= l.DistAttenMax {
		return ColorF{}
	}
	lightDir := toLight.Scale(1 / math.Max(dist, 1e-9))
	angle := math.Acos(clamp01or(l.Dir.Negate().Dot(lightDir)))
	if angle >= l.AngAttenMax {
		return ColorF{}
	}
	cn := normal.Dot(lightDir)
	if cn < 0 {
		return ColorF{}
	}
	cd := normalizedClamp(dist, l.DistAttenMin, l.DistAttenMax)
	cd = 1 - cd*cd
	ca := normalizedClamp(angle, l.AngAttenMin, l.AngAttenMax)
	ca = 1 - ca*ca
	return l.Color.Scale(ca * cd * cn * l.Multiplier)
}

func (l SpotLight) CanAffect(center math3d.Vec3, radius float64) bool {
	return l.Frustum.IntersectsSphere(center, radius)
}

func (l SpotLight) LightName() string { return l.Name }

func clamp01or(v float64) float64 {
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}
	return v
}
