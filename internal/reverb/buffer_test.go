package reverb

import (
	"math"
	"testing"
)

func TestStereoBufferShape(t *testing.T) {
	buf := NewStereoBuffer(44100, 0.025)
	if buf.Frames() != 1103 { // round(44100 * 0.025)
		t.Fatalf("frames = %d", buf.Frames())
	}
	if len(buf) != 2*1103 {
		t.Fatalf("len = %d", len(buf))
	}
}

func TestStereoBufferAddBounds(t *testing.T) {
	buf := make(StereoBuffer, 4)
	buf.add(-2, 1)
	buf.add(4, 1)
	buf.add(2, 0.5)
	buf.add(2, 0.25)
	if buf[2] != 0.75 {
		t.Fatalf("accumulate failed: %+v", buf)
	}
	if buf[0] != 0 || buf[1] != 0 || buf[3] != 0 {
		t.Fatalf("out-of-range add leaked: %+v", buf)
	}
}

func TestNormalize(t *testing.T) {
	buf := StereoBuffer{0.5, -2, 0.25, 1}
	buf.Normalize()
	want := StereoBuffer{0.25, -1, 0.125, 0.5}
	for i := range want {
		if math.Abs(buf[i]-want[i]) > 1e-15 {
			t.Fatalf("normalize: %+v", buf)
		}
	}
	if buf.Peak() != 1 {
		t.Fatalf("peak after normalize: %g", buf.Peak())
	}
}

func TestNormalizeAllZero(t *testing.T) {
	buf := make(StereoBuffer, 8)
	buf.Normalize()
	for _, v := range buf {
		if v != 0 || math.IsNaN(v) {
			t.Fatalf("silent buffer mutated: %+v", buf)
		}
	}
	if buf.FirstNonZero() != -1 {
		t.Fatalf("FirstNonZero on silence: %d", buf.FirstNonZero())
	}
}

func TestFirstNonZero(t *testing.T) {
	buf := make(StereoBuffer, 10)
	buf[5] = 0.1 // frame 2, right channel
	if got := buf.FirstNonZero(); got != 2 {
		t.Fatalf("FirstNonZero = %d", got)
	}
	l, r := buf.At(2)
	if l != 0 || r != 0.1 {
		t.Fatalf("At(2) = %g, %g", l, r)
	}
}

func TestMonoBufferNormalize(t *testing.T) {
	buf := MonoBuffer{0, 4, 2, 0}
	buf.Normalize()
	if buf[1] != 1 || buf[2] != 0.5 {
		t.Fatalf("mono normalize: %+v", buf)
	}
	if buf.FirstNonZero() != 1 {
		t.Fatalf("mono FirstNonZero: %d", buf.FirstNonZero())
	}
}
