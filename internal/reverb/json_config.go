package reverb

import (
	"encoding/json"
	"fmt"
	"os"
)

// SceneCfg is the JSON shape of a scene block.
type SceneCfg struct {
	Room        Vector3 `json:"room"`
	Attenuation Real    `json:"attenuation"`
	Speaker     Vector3 `json:"speaker"`
	SpeakerType string  `json:"speakerType,omitempty"` // directing (default), diffuse, omni
	Listener    Vector3 `json:"listener"`
	HeadWidth   Real    `json:"headWidth"`
	Facing      Vector3 `json:"facing"`
}

// Build validates the block and constructs the Scene.
func (c SceneCfg) Build() (*Scene, error) {
	st, err := ParseSpeakerType(c.SpeakerType)
	if err != nil {
		return nil, err
	}
	return NewScene(c.Room, c.Attenuation, c.Speaker, st, c.Listener, c.HeadWidth, c.Facing)
}

// Run modes.
const (
	ModeTrace       = "trace"
	ModeImageSource = "imagesource"
	ModeBoth        = "both"
)

// Config is a full run configuration.
type Config struct {
	SampleRate Real     `json:"sampleRate"`
	Duration   Real     `json:"duration"`
	Rays       int      `json:"rays,omitempty"`    // 0 = AcousticRays
	Seed       int64    `json:"seed,omitempty"`    // 0 = time-derived
	Mode       string   `json:"mode,omitempty"`    // trace (default), imagesource or both
	WaveOut    string   `json:"waveOut,omitempty"` // optional waveform PNG path
	Metrics    bool     `json:"metrics,omitempty"` // print impulse response metrics
	Scene      SceneCfg `json:"scene"`
}

func loadConfig(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.SampleRate <= 0 {
		return nil, fmt.Errorf("sampleRate must be positive; got %g", cfg.SampleRate)
	}
	if cfg.Duration <= 0 {
		return nil, fmt.Errorf("duration must be positive; got %g", cfg.Duration)
	}
	if cfg.Rays < 0 {
		return nil, fmt.Errorf("rays must not be negative; got %d", cfg.Rays)
	}
	if cfg.Rays == 0 {
		cfg.Rays = AcousticRays
	}
	switch cfg.Mode {
	case "":
		cfg.Mode = ModeTrace
	case ModeTrace, ModeImageSource, ModeBoth:
	default:
		return nil, fmt.Errorf("unknown mode %q", cfg.Mode)
	}
	return &cfg, nil
}
