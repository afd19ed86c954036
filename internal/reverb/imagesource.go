package reverb

import (
	"fmt"
	"math"
)

// Plane is a reflecting plane parameterized as Point + x*X + y*Y.
type Plane struct {
	Point, X, Y Vector3
}

// pathLength sums the speaker->plane(x,y) and plane(x,y)->listener
// distances.
func pathLength(speaker, listener Vector3, p Plane, x, y Real) Real {
	at := p.Point.Add(p.X.Mul(x)).Add(p.Y.Mul(y))
	return speaker.Sub(at).Len() + listener.Sub(at).Len()
}

// FindReflection locates the point on p that minimizes the total
// speaker->plane->listener path length. That minimizer is exactly the
// specular reflection point (law of reflection). Plain gradient descent
// on forward-difference partials; an error is returned when the stopping
// tolerance is not reached within the iteration cap.
func FindReflection(speaker, listener Vector3, p Plane) (Vector3, error) {
	var x, y Real
	for i := 0; i < gradMaxIter; i++ {
		d := pathLength(speaker, listener, p, x, y)
		dx := (pathLength(speaker, listener, p, x+gradStep, y) - d) / gradStep
		dy := (pathLength(speaker, listener, p, x, y+gradStep) - d) / gradStep

		x -= dx * gradRate
		y -= dy * gradRate
		if math.Abs(dx) < gradTol && math.Abs(dy) < gradTol {
			return p.Point.Add(p.X.Mul(x)).Add(p.Y.Mul(y)), nil
		}
	}
	return Vector3{}, fmt.Errorf("reflection search did not converge within %d iterations on plane %+v", gradMaxIter, p)
}

// addDirect deposits the direct speaker->ear marker: unit amplitude
// scaled only by the head orientation factor, no distance attenuation.
func addDirect(src, dst, earAxis Vector3, sampleRate Real, buf StereoBuffer, offset int) {
	dir := dst.Sub(src)
	t := dir.Len() / SpeedOfSound
	idx := int(math.Round(t*sampleRate))*2 + offset
	dot := dir.Norm().Dot(earAxis.Norm())
	buf.add(idx, 1-(dot+1)/2*0.9)
}

// addReflection deposits one wall's specular contribution toward ear: a
// run of samples starting at the reflected arrival, decaying by
// reflectionDecay per frame. The run is subtracted, not added: the
// simplified reflection arrives phase-inverted relative to the direct
// marker.
func (s *Scene) addReflection(ear, earAxis Vector3, p Plane, sampleRate Real, buf StereoBuffer, offset int) error {
	pos, err := FindReflection(s.Speaker, ear, p)
	if err != nil {
		return err
	}
	length := s.Speaker.Sub(pos).Len() + pos.Sub(ear).Len()
	idx := int(math.Round(length/SpeedOfSound*sampleRate))*2 + offset

	energy := math.Max(s.SpeakerAxis.Dot(pos.Sub(s.Speaker).Norm()), 0)
	energy /= length * length
	energy *= reflectionGain
	// 1.0 facing the ear, 0.1 (-20 dB) from the far side of the head
	dot := ear.Sub(pos).Norm().Dot(earAxis.Norm())
	energy *= 1 - (dot+1)/2*0.9

	for ; idx < len(buf); idx += 2 {
		if idx >= 0 {
			buf[idx] -= energy
		}
		energy *= reflectionDecay
		if energy < Precision {
			break
		}
	}
	return nil
}

// WallPlanes returns the six reflecting planes of the room: three through
// the origin corner and three through the far corner.
func (s *Scene) WallPlanes() []Plane {
	var (
		o  Vector3
		ex = Vector3{1, 0, 0}
		ey = Vector3{0, 1, 0}
		ez = Vector3{0, 0, 1}
	)
	return []Plane{
		{o, ey, ez}, {o, ex, ez}, {o, ey, ex},
		{s.Room, ey, ez}, {s.Room, ex, ez}, {s.Room, ey, ex},
	}
}

// ImageSource computes the deterministic low-order estimate: one direct
// contribution plus one decaying reflection per wall, for both ears. The
// buffer is returned raw (not normalized); callers compare it against
// Trace output rather than blending the two. A wall whose reflection
// search does not converge is logged and skipped.
func (s *Scene) ImageSource(sampleRate, duration Real) StereoBuffer {
	buf := NewStereoBuffer(sampleRate, duration)
	if len(buf) == 0 {
		return buf
	}

	addDirect(s.Speaker, s.LeftEar, s.ToLeftEar, sampleRate, buf, ChLeft)
	addDirect(s.Speaker, s.RightEar, s.ToRightEar, sampleRate, buf, ChRight)

	for _, p := range s.WallPlanes() {
		if err := s.addReflection(s.LeftEar, s.ToLeftEar, p, sampleRate, buf, ChLeft); err != nil {
			DebugLog("skipping wall: %v", err)
			continue
		}
		if err := s.addReflection(s.RightEar, s.ToRightEar, p, sampleRate, buf, ChRight); err != nil {
			DebugLog("skipping wall: %v", err)
		}
	}
	return buf
}
