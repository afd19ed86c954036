package reverb

import (
	"math"
	"testing"
)

func TestFindReflectionMatchesMirrorImage(t *testing.T) {
	speaker := Vector3{1, 2, 1}
	listener := Vector3{1.5, 1.8, 3}
	plane := Plane{Vector3{}, Vector3{0, 1, 0}, Vector3{0, 0, 1}} // wall x=0

	got, err := FindReflection(speaker, listener, plane)
	if err != nil {
		t.Fatalf("FindReflection failed: %v", err)
	}

	// Mirror the speaker across x=0 and intersect the straight line to
	// the listener with the plane: the exact specular point.
	mirror := Vector3{-speaker.X, speaker.Y, speaker.Z}
	f := mirror.X / (mirror.X - listener.X)
	want := mirror.Add(listener.Sub(mirror).Mul(f))
	if d := got.Sub(want).Len(); d > 0.02 {
		t.Fatalf("reflection point %+v, want %+v (off by %g)", got, want, d)
	}
}

func TestFindReflectionLawOfReflection(t *testing.T) {
	speaker := Vector3{1, 2, 1}
	listener := Vector3{2.5, 0.8, 4}
	plane := Plane{Vector3{}, Vector3{0, 1, 0}, Vector3{0, 0, 1}}
	normal := Vector3{1, 0, 0}

	pos, err := FindReflection(speaker, listener, plane)
	if err != nil {
		t.Fatalf("FindReflection failed: %v", err)
	}
	in := pos.Sub(speaker).Norm()
	out := listener.Sub(pos).Norm()

	// Normal component flips, tangential component is preserved.
	if d := math.Abs(in.Dot(normal) + out.Dot(normal)); d > 0.01 {
		t.Fatalf("normal components do not mirror: %g", d)
	}
	inT := in.Sub(normal.Mul(in.Dot(normal)))
	outT := out.Sub(normal.Mul(out.Dot(normal)))
	if d := inT.Sub(outT).Len(); d > 0.01 {
		t.Fatalf("tangential component not preserved: %g", d)
	}
}

func TestFindReflectionAllWalls(t *testing.T) {
	s := refScene(t, Directing)
	for i, p := range s.WallPlanes() {
		for _, ear := range []Vector3{s.LeftEar, s.RightEar} {
			if _, err := FindReflection(s.Speaker, ear, p); err != nil {
				t.Fatalf("wall %d: %v", i, err)
			}
		}
	}
}

func TestImageSourceReferenceScene(t *testing.T) {
	s := refScene(t, Directing)
	const rate = 44100.0
	buf := s.ImageSource(rate, 0.025)

	// Direct markers arrive first, at the straight-line flight time.
	leftDir := s.LeftEar.Sub(s.Speaker)
	leftFrame := int(math.Round(leftDir.Len() / SpeedOfSound * rate))
	rightDir := s.RightEar.Sub(s.Speaker)
	rightFrame := int(math.Round(rightDir.Len() / SpeedOfSound * rate))
	first := leftFrame
	if rightFrame < first {
		first = rightFrame
	}
	if got := buf.FirstNonZero(); got != first {
		t.Fatalf("first nonzero frame = %d, want %d", got, first)
	}

	// The direct marker's amplitude is the bare orientation factor.
	dot := leftDir.Norm().Dot(s.ToLeftEar.Norm())
	wantAmp := 1 - (dot+1)/2*0.9
	l, _ := buf.At(leftFrame)
	if math.Abs(l-wantAmp) > 1e-12 {
		t.Fatalf("direct amplitude = %g, want %g", l, wantAmp)
	}

	// Wall reflections are deposited with inverted polarity.
	sawNegative := false
	for i := first + 1; i < buf.Frames(); i++ {
		lv, rv := buf.At(i)
		if lv < 0 || rv < 0 {
			sawNegative = true
			break
		}
	}
	if !sawNegative {
		t.Fatal("no phase-inverted reflection found")
	}

	for i, v := range buf {
		if math.IsNaN(v) || math.Abs(v) > 1 {
			t.Fatalf("sample %d out of range: %g", i, v)
		}
	}
}

func TestImageSourceEmptyDuration(t *testing.T) {
	s := refScene(t, Directing)
	if buf := s.ImageSource(44100, 0); len(buf) != 0 {
		t.Fatalf("zero duration produced %d samples", len(buf))
	}
}
