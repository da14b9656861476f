// Package scene holds the renderable world: objects, lights, and the
// camera viewing them.
package scene

import (
	"github.com/taigrr/trophy/pkg/render"
)

// Scene is the top-level container the engine draws each frame.
type Scene struct {
	Objects []*SceneObject
	Lights  []render.Light
	Camera  *render.Camera
}

// NewScene returns an empty scene with a default camera.
func NewScene() *Scene {
	return &Scene{Camera: render.NewCamera()}
}

// FindObject returns the first object with the given name, or nil.
func (s *Scene) FindObject(name string) *SceneObject {
	for _, o := range s.Objects {
		if o.Name == name {
			return o
		}
	}
	return nil
}

// namedLight is implemented by every light type that settings.go can
// address by name; render.Light itself carries no Name field (it is a
// leaf-package rendering type), so named lookup wraps it here instead.
type namedLight interface {
	render.Light
	LightName() string
}

// FindLight returns the first light whose LightName matches, or nil.
// Lights that don't implement namedLight (none of the stock four omit it)
// are skipped rather than panicking.
func (s *Scene) FindLight(name string) render.Light {
	for _, l := range s.Lights {
		if nl, ok := l.(namedLight); ok && nl.LightName() == name {
			return l
		}
	}
	return nil
}
