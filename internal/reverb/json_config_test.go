package reverb

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

const validConfig = `{
	"sampleRate": 44100,
	"duration": 0.025,
	"scene": {
		"room": {"X": 3, "Y": 2.4, "Z": 5.5},
		"attenuation": 0.9,
		"speaker": {"X": 1, "Y": 2, "Z": 1},
		"listener": {"X": 1.5, "Y": 1.8, "Z": 3},
		"headWidth": 0.3,
		"facing": {"X": 0, "Y": 0, "Z": -1}
	}
}`

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig(writeConfig(t, validConfig))
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}
	if cfg.Rays != AcousticRays {
		t.Fatalf("default rays = %d", cfg.Rays)
	}
	if cfg.Mode != ModeTrace {
		t.Fatalf("default mode = %q", cfg.Mode)
	}
	scene, err := cfg.Scene.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if scene.SpeakerType != Directing {
		t.Fatalf("default speaker type = %v", scene.SpeakerType)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"bad json", `{`},
		{"zero sample rate", `{"duration": 1, "scene": {}}`},
		{"zero duration", `{"sampleRate": 44100, "scene": {}}`},
		{"negative rays", `{"sampleRate": 44100, "duration": 1, "rays": -5, "scene": {}}`},
		{"unknown mode", `{"sampleRate": 44100, "duration": 1, "mode": "psychic", "scene": {}}`},
	}
	for _, tc := range cases {
		if _, err := loadConfig(writeConfig(t, tc.body)); err == nil {
			t.Errorf("%s: expected error", tc.name)
		}
	}
	if _, err := loadConfig(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("missing file: expected error")
	}
}

func TestSceneCfgBuildRejectsBadSpeakerType(t *testing.T) {
	cfg := SceneCfg{
		Room:        Vector3{3, 2.4, 5.5},
		Attenuation: 0.9,
		Speaker:     Vector3{1, 2, 1},
		SpeakerType: "shouting",
		Listener:    Vector3{1.5, 1.8, 3},
		HeadWidth:   0.3,
		Facing:      Vector3{0, 0, -1},
	}
	if _, err := cfg.Build(); err == nil {
		t.Fatal("expected error for unknown speaker type")
	}
}
