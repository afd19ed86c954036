package reverb

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestSaveWaveformPNG(t *testing.T) {
	buf := make(StereoBuffer, 2*32)
	buf[10] = 0.5
	buf[21] = -1

	path := filepath.Join(t.TempDir(), "wave.png")
	if err := SaveWaveformPNG(buf, path); err != nil {
		t.Fatalf("SaveWaveformPNG failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	b := img.Bounds()
	if b.Dx() != 32 || b.Dy() != 2*waveChannelHeight {
		t.Fatalf("bounds = %v", b)
	}
	// Column 5 is the left channel peak: the strip midline up to the top
	// edge of the excursion must be lit.
	if _, _, _, a := img.At(5, waveChannelHeight/2).RGBA(); a != 0xFFFF {
		t.Fatal("midline pixel not opaque")
	}
	r, g, bl, _ := img.At(5, waveChannelHeight/4).RGBA()
	if r != 0xFFFF || g != 0xFFFF || bl != 0xFFFF {
		t.Fatalf("peak column not lit: %d %d %d", r, g, bl)
	}
}

func TestSaveWaveformPNGEmpty(t *testing.T) {
	if err := SaveWaveformPNG(nil, "unused.png"); err == nil {
		t.Fatal("expected error for empty buffer")
	}
}
