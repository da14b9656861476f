package scene

import "github.com/taigrr/trophy/pkg/math3d"

// Transform is a position/rotation/scale triple with a lazily recomputed,
// cached world matrix, guarded behind a dirty flag so dependents (e.g. a
// bounding-sphere cache) can invalidate themselves.
//
// Go has no convenient equivalent of a live observer list without either a
// callback slice (allocation and indirection on every SetPosition) or a
// weak-reference scheme the language doesn't offer. Instead this type
// exposes a monotonically increasing Version, bumped on every mutation: a
// dependent caches the version it last saw and compares rather than
// subscribing.
type Transform struct {
	Position math3d.Vec3
	Rotation math3d.Vec3 // Euler angles (pitch, yaw, roll), radians
	Scale    math3d.Vec3

	version uint64
	dirty   bool
	matrix  math3d.Mat4
}

// NewTransform returns an identity transform (zero position/rotation, unit scale).
func NewTransform() Transform {
	return Transform{Scale: math3d.V3(1, 1, 1), dirty: true}
}

// Version returns the current mutation counter. A caller can remember this
// value and compare it on a later frame to detect "nothing changed since".
func (t *Transform) Version() uint64 { return t.version }

func (t *Transform) touch() {
	t.dirty = true
	t.version++
}

func (t *Transform) SetPosition(p math3d.Vec3) { t.Position = p; t.touch() }
func (t *Transform) SetRotation(r math3d.Vec3) { t.Rotation = r; t.touch() }
func (t *Transform) SetScale(s math3d.Vec3)    { t.Scale = s; t.touch() }

// Matrix returns the cached world matrix, recomputing it only if the
// transform has changed since the last call.
func (t *Transform) Matrix() math3d.Mat4 {
	if t.dirty {
		rot := math3d.RotateZ(t.Rotation.Z).Mul(
			math3d.RotateX(t.Rotation.X)).Mul(
			math3d.RotateY(t.Rotation.Y))
		scale := math3d.Scale(t.Scale)
		t.matrix = math3d.Translate(t.Position).Mul(rot).Mul(scale)
		t.dirty = false
	}
	return t.matrix
}

// InverseMatrix returns Matrix's inverse, recomputed from the same cache.
func (t *Transform) InverseMatrix() math3d.Mat4 {
	return t.Matrix().Inverse()
}
