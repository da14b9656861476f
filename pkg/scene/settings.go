package scene

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/taigrr/trophy/pkg/math3d"
	"github.com/taigrr/trophy/pkg/render"
)

// objectSettings is the shape of one keyed entry that addresses a
// SceneObject in a scene-settings file.
type objectSettings struct {
	Pos *[3]float64 `json:"pos"`
	Rot *[3]float64 `json:"rot"`
}

// lightSettings is the shape of one keyed entry that addresses a light.
// Every field is optional; which ones apply depends on the light's actual
// type: ambient {color,multiplier}, directional {color,multiplier,dir},
// point {color,multiplier,pos,distAttenMin,distAttenMax}, spot
// {color,multiplier,pos,dir,angAttenMin,angAttenMax,distAttenMin,
// distAttenMax}.
type lightSettings struct {
	Color        *[4]float64 `json:"color"`
	Multiplier   *float64    `json:"multiplier"`
	Pos          *[3]float64 `json:"pos"`
	Dir          *[3]float64 `json:"dir"`
	AngAttenMin  *float64    `json:"angAttenMin"`
	AngAttenMax  *float64    `json:"angAttenMax"`
	DistAttenMin *float64    `json:"distAttenMin"`
	DistAttenMax *float64    `json:"distAttenMax"`
}

// entry is the union of objectSettings and lightSettings fields: a single
// keyed JSON object can describe either kind, distinguished at apply time
// by whether the name resolves to a SceneObject or a Light rather than an
// up-front type tag.
type entry struct {
	objectSettings
	lightSettings
}

// ApplySettings loads a JSON settings file and applies each keyed entry to
// the scene object or light whose name matches the key. Unknown keys are
// skipped rather than treated as an error (FindObject/FindLight both
// return nil; the loop logs the name at debug level and moves on). File
// read and JSON decode errors are returned, not logged.
func (s *Scene) ApplySettings(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading scene settings: %w", err)
	}

	var raw map[string]entry
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("parsing scene settings %s: %w", path, err)
	}

	for name, e := range raw {
		applied := false

		if obj := s.FindObject(name); obj != nil {
			if e.Pos != nil {
				obj.Transform.SetPosition(vec3From(*e.Pos))
			}
			if e.Rot != nil {
				obj.Transform.SetRotation(vec3From(*e.Rot))
			}
			applied = true
		}

		if light := s.FindLight(name); light != nil {
			if !applyLightSettings(light, e.lightSettings) {
				log.Warn("scene settings: light entry did not match any known light shape", "name", name)
			}
			applied = true
		}

		if !applied {
			log.Debug("scene settings: no object or light named", "name", name)
		}
	}

	return nil
}

// applyLightSettings mutates a render.Light in place according to its
// dynamic type, mirroring ApplySettings's switch on LightType. Returns
// false if l's type didn't match any of the four known shapes (so the
// caller can warn rather than silently drop fields).
func applyLightSettings(l render.Light, e lightSettings) bool {
	switch lt := l.(type) {
	case *render.AmbientLight:
		if e.Color != nil {
			lt.Color = colorFFrom(*e.Color)
		}
		if e.Multiplier != nil {
			lt.Multiplier = *e.Multiplier
		}
	case *render.DirectionalLight:
		if e.Color != nil {
			lt.Color = colorFFrom(*e.Color)
		}
		if e.Multiplier != nil {
			lt.Multiplier = *e.Multiplier
		}
		if e.Dir != nil {
			lt.Dir = vec3From(*e.Dir)
		}
	case *render.PointLight:
		if e.Color != nil {
			lt.Color = colorFFrom(*e.Color)
		}
		if e.Multiplier != nil {
			lt.Multiplier = *e.Multiplier
		}
		if e.Pos != nil {
			lt.Pos = vec3From(*e.Pos)
		}
		if e.DistAttenMin != nil {
			lt.DistAttenMin = *e.DistAttenMin
		}
		if e.DistAttenMax != nil {
			lt.DistAttenMax = *e.DistAttenMax
		}
	case *render.SpotLight:
		if e.Color != nil {
			lt.Color = colorFFrom(*e.Color)
		}
		if e.Multiplier != nil {
			lt.Multiplier = *e.Multiplier
		}
		if e.Pos != nil {
			lt.Pos = vec3From(*e.Pos)
		}
		if e.Dir != nil {
			lt.Dir = vec3From(*e.Dir)
		}
		if e.AngAttenMin != nil {
			lt.AngAttenMin = *e.AngAttenMin
		}
		if e.AngAttenMax != nil {
			lt.AngAttenMax = *e.AngAttenMax
		}
		if e.DistAttenMin != nil {
			lt.DistAttenMin = *e.DistAttenMin
		}
		if e.DistAttenMax != nil {
			lt.DistAttenMax = *e.DistAttenMax
		}
		lt.Prepare()
	default:
		return false
	}
	return true
}

func vec3From(v [3]float64) math3d.Vec3 { return math3d.V3(v[0], v[1], v[2]) }

func colorFFrom(v [4]float64) render.ColorF {
	return render.ColorF{R: v[0], G: v[1], B: v[2], A: v[3]}
}
