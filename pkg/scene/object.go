package scene

import (
	"github.com/taigrr/trophy/pkg/math3d"
	"github.com/taigrr/trophy/pkg/models"
	"github.com/taigrr/trophy/pkg/render"
	"github.com/taigrr/trophy/pkg/shader"
)

// Sphere is a bounding sphere in world space.
type Sphere struct {
	Center math3d.Vec3
	Radius float64
}

// SceneObject is one renderable instance in a Scene: a mesh, a texture, the
// shader that renders it, and the transform placing it in the world.
type SceneObject struct {
	Name                   string
	Transform              Transform
	Mesh                   *models.Mesh
	Texture                *render.Texture
	Shader                 shader.Shader
	BackfaceCullingEnabled bool

	boundsVersion uint64
	localSphere   Sphere
}

// NewSceneObject constructs a SceneObject with backface culling enabled by
// default, matching SceneObject::SceneObject's constructor.
func NewSceneObject(name string, mesh *models.Mesh, tex *render.Texture, sh shader.Shader) *SceneObject {
	return &SceneObject{
		Name:                   name,
		Transform:              NewTransform(),
		Mesh:                   mesh,
		Texture:                tex,
		Shader:                 sh,
		BackfaceCullingEnabled: true,
	}
}

// localBoundingSphere derives an object-space bounding sphere from the
// mesh's AABB (center of the box, radius to the farthest corner). The
// original Model carries a precomputed bsphere; models.Mesh has no such
// field, so it is computed lazily on first call and cached on the object
// (boundsVersion marks it computed). It is not recomputed if Mesh or its
// bounds change afterwards.
func (o *SceneObject) localBoundingSphere() Sphere {
	if o.Mesh == nil {
		return Sphere{}
	}
	if o.boundsVersion == 0 {
		center := o.Mesh.Center()
		radius := o.Mesh.BoundsMax.Sub(center).Len()
		o.localSphere = Sphere{Center: center, Radius: radius}
		o.boundsVersion = 1
	}
	return o.localSphere
}

// WorldBoundingSphere transforms the object's local bounding sphere into
// world space: the center follows the full transform, and the radius
// scales by the largest of the transform's three axis scales — a uniform
// bound even under non-uniform scale.
func (o *SceneObject) WorldBoundingSphere() Sphere {
	local := o.localBoundingSphere()
	m := o.Transform.Matrix()
	s := o.Transform.Scale
	maxScale := s.X
	if s.Y > maxScale {
		maxScale = s.Y
	}
	if s.Z > maxScale {
		maxScale = s.Z
	}
	return Sphere{
		Center: m.MulVec3(local.Center),
		Radius: maxScale * local.Radius,
	}
}
