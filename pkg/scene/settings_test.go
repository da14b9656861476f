package scene

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/taigrr/trophy/pkg/math3d"
	"github.com/taigrr/trophy/pkg/render"
	"github.com/taigrr/trophy/pkg/shader"
)

func writeSettings(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.json")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("writing settings fixture: %v", err)
	}
	return path
}

func TestApplySettingsMovesNamedObject(t *testing.T) {
	s := NewScene()
	obj := NewSceneObject("player", nil, nil, &shader.UnlitShader{})
	s.Objects = []*SceneObject{obj}

	path := writeSettings(t, `{"player": {"pos": [1, 2, 3], "rot": [0, 1.5, 0]}}`)
	if err := s.ApplySettings(path); err != nil {
		t.Fatalf("ApplySettings: %v", err)
	}

	if obj.Transform.Position != math3d.V3(1, 2, 3) {
		t.Errorf("Position = %+v, want (1,2,3)", obj.Transform.Position)
	}
	if obj.Transform.Rotation != math3d.V3(0, 1.5, 0) {
		t.Errorf("Rotation = %+v, want (0,1.5,0)", obj.Transform.Rotation)
	}
}

func TestApplySettingsUpdatesNamedLightByDynamicType(t *testing.T) {
	s := NewScene()
	sun := &render.DirectionalLight{Name: "sun", Multiplier: 1}
	s.Lights = []render.Light{sun}

	path := writeSettings(t, `{"sun": {"multiplier": 0.25, "dir": [0, -1, 0]}}`)
	if err := s.ApplySettings(path); err != nil {
		t.Fatalf("ApplySettings: %v", err)
	}

	if sun.Multiplier != 0.25 {
		t.Errorf("Multiplier = %v, want 0.25", sun.Multiplier)
	}
	if sun.Dir != math3d.V3(0, -1, 0) {
		t.Errorf("Dir = %+v, want (0,-1,0)", sun.Dir)
	}
}

func TestApplySettingsIgnoresUnknownKeys(t *testing.T) {
	s := NewScene()
	path := writeSettings(t, `{"nonexistent": {"pos": [1, 1, 1]}}`)
	if err := s.ApplySettings(path); err != nil {
		t.Errorf("an unknown key should be skipped, not errored: %v", err)
	}
}

func TestApplySettingsMissingFileReturnsError(t *testing.T) {
	s := NewScene()
	if err := s.ApplySettings(filepath.Join(t.TempDir(), "does-not-exist.json")); err == nil {
		t.Error("ApplySettings on a missing file should return an error")
	}
}

func TestApplySettingsInvalidJSONReturnsError(t *testing.T) {
	s := NewScene()
	path := writeSettings(t, `{not valid json`)
	if err := s.ApplySettings(path); err == nil {
		t.Error("ApplySettings on malformed JSON should return an error")
	}
}

func TestApplySettingsSpotLightRebuildsFrustum(t *testing.T) {
	s := NewScene()
	spot := &render.SpotLight{Name: "flashlight", Dir: math3d.V3(0, 0, -1), AngAttenMax: 0.1, DistAttenMax: 5}
	spot.Prepare()
	s.Lights = []render.Light{spot}

	path := writeSettings(t, `{"flashlight": {"angAttenMax": 1.0, "distAttenMax": 50}}`)
	if err := s.ApplySettings(path); err != nil {
		t.Fatalf("ApplySettings: %v", err)
	}

	// After widening the cone and range, a point previously out of range
	// should now be affectable, proving Prepare() re-ran on update.
	if !spot.CanAffect(math3d.V3(0, 0, -40), 1) {
		t.Error("widening a spot light's cone/range via settings should take effect immediately")
	}
}
