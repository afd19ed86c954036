package reverb

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"kinetic/internal/iranalysis"
)

// Run loads a configuration file, runs the configured simulators and
// writes the resulting buffers as "index left right" lines to stdout,
// starting from the first nonzero frame.
func Run(cfgPath string) error {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return err
	}
	scene, err := cfg.Scene.Build()
	if err != nil {
		return err
	}

	fmt.Printf("# Room dimensions: %+v, attenuation: %g\n", scene.Room, scene.Attenuation)
	fmt.Printf("# Speaker at: %+v (%s), pointing towards %+v\n", scene.Speaker, scene.SpeakerType, scene.SpeakerAxis)
	fmt.Printf("# Listener at: %+v, left ear relative %+v, right ear relative %+v\n", scene.Listener, scene.ToLeftEar, scene.ToRightEar)

	if cfg.Mode == ModeTrace || cfg.Mode == ModeBoth {
		if err := runOne(cfg, scene, ModeTrace); err != nil {
			return err
		}
	}
	if cfg.Mode == ModeImageSource || cfg.Mode == ModeBoth {
		if err := runOne(cfg, scene, ModeImageSource); err != nil {
			return err
		}
	}
	return nil
}

func runOne(cfg *Config, scene *Scene, mode string) error {
	start := time.Now()
	var buf StereoBuffer
	if mode == ModeTrace {
		buf = scene.TraceSeeded(cfg.SampleRate, cfg.Duration, cfg.Rays, cfg.Seed)
	} else {
		buf = scene.ImageSource(cfg.SampleRate, cfg.Duration)
	}
	DebugLog("%s finished in %s", mode, time.Since(start))

	fmt.Printf("# %s\n", mode)
	Dump(os.Stdout, buf)
	if cfg.Metrics {
		printMetrics(cfg.SampleRate, buf)
	}
	if cfg.WaveOut != "" {
		name := waveName(cfg, mode)
		if err := SaveWaveformPNG(buf, name); err != nil {
			return err
		}
		DebugLog("Saved waveform PNG: %s", name)
	}
	return nil
}

// waveName derives a per-mode output name when both simulators run.
func waveName(cfg *Config, mode string) string {
	if cfg.Mode != ModeBoth {
		return cfg.WaveOut
	}
	ext := filepath.Ext(cfg.WaveOut)
	return strings.TrimSuffix(cfg.WaveOut, ext) + "_" + mode + ext
}

// Dump writes the buffer as "index left right" lines from the first
// nonzero frame onward. A silent buffer writes nothing.
func Dump(w io.Writer, buf StereoBuffer) {
	first := buf.FirstNonZero()
	if first < 0 {
		return
	}
	for i := first; i < buf.Frames(); i++ {
		l, r := buf.At(i)
		fmt.Fprintf(w, "%d %.6f %.6f\n", i, l, r)
	}
}

func printMetrics(sampleRate Real, buf StereoBuffer) {
	a := iranalysis.NewAnalyzer(sampleRate)
	for _, ch := range []struct {
		name   string
		offset int
	}{{"left", ChLeft}, {"right", ChRight}} {
		ir := make([]float64, buf.Frames())
		for i := range ir {
			ir[i] = buf[2*i+ch.offset]
		}
		m, err := a.Analyze(ir)
		if err != nil {
			fmt.Printf("# %s: metrics unavailable: %v\n", ch.name, err)
			continue
		}
		fmt.Printf("# %s: RT60=%.3fs EDT=%.3fs C50=%.1fdB D50=%.2f peak=%d\n",
			ch.name, m.RT60, m.EDT, m.C50, m.D50, m.PeakIndex)
	}
}
