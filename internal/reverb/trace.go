package reverb

import (
	"fmt"
	"math"
	"math/rand"
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

// project adds the contribution of a hemispherical wavefront at src into
// the buffer slot where it reaches the ear at dst. earAxis is the
// head-center-to-ear vector, rayTime the time the ray already traveled.
func project(src, dst, earAxis Vector3, energy, rayTime, sampleRate Real, buf StereoBuffer, offset int) {
	dir := dst.Sub(src)
	dist := dir.Len()
	arrival := rayTime + dist/SpeedOfSound
	// ignoring linear interpolation for now
	idx := int(math.Round(arrival*sampleRate))*2 + offset
	if idx >= len(buf) {
		return
	}
	// dot is -1 when the sound arrives straight into the ear
	dot := dir.Norm().Dot(earAxis.Norm())
	// 1.0 facing the ear, 0.1 (-20 dB) from the far side of the head
	orientation := 1 - (dot+1)/2*0.9
	// assume diffuse (half-spherical) re-radiation from the current point
	buf[idx] += energy * orientation / (dist * dist)
}

// traceRay propagates a single ray from the speaker through repeated wall
// reflections, depositing into buf at every visited point, until its
// energy or the time budget runs out. A ray that lands off every wall or
// measures a negative flight distance is abandoned.
func (s *Scene) traceRay(rng *rand.Rand, buf StereoBuffer, sampleRate, duration Real) {
	energy := Real(1.0)
	rayTime := Real(0.0)
	pos := s.Speaker
	reflector := s.SpeakerAxis
	atSpeaker := true

	for math.Abs(energy) > Precision && rayTime < duration {
		// An omni speaker radiates into twice the solid angle of a diffuse
		// one, so its deposits while still at the speaker count half.
		correction := Real(1.0)
		if atSpeaker && s.SpeakerType == Omni {
			correction = 0.5
		}
		project(pos, s.LeftEar, s.ToLeftEar, energy*correction, rayTime, sampleRate, buf, ChLeft)
		project(pos, s.RightEar, s.ToRightEar, energy*correction, rayTime, sampleRate, buf, ChRight)

		// Pick a random propagation direction the current reflector allows.
		var dir Vector3
	DIRECTION:
		for {
			dir = RandomDir(rng)
			dot := dir.Dot(reflector)
			if atSpeaker {
				switch s.SpeakerType {
				case Directing:
					if dot > 0 {
						energy *= dot
						break DIRECTION
					}
				case Diffuse:
					if dot > 0 {
						break DIRECTION
					}
				case Omni:
					break DIRECTION
				}
			} else if dot > 0 {
				break
			}
		}

		dist := s.wallDistance(pos, dir)
		if dist < 0 {
			DebugLog("negative flight distance from %+v towards %+v", pos, dir)
			return
		}

		pos = pos.Add(dir.Mul(dist))
		energy *= -s.Attenuation // phase inverts on every reflection
		rayTime += dist / SpeedOfSound
		atSpeaker = false

		normal, ok := s.wallNormal(pos)
		if !ok {
			DebugLog("ray got lost at %+v, was projected towards %+v", pos, dir)
			return
		}
		reflector = normal
	}
}

// wallDistance returns the distance along dir from pos, which must lie
// inside the room, to the nearest of the six bounding planes. Exact for
// an axis-aligned box: per axis take the near or far plane depending on
// the direction sign, then the minimum across axes.
func (s *Scene) wallDistance(pos, dir Vector3) Real {
	xlen := math.Inf(1)
	if dir.X > 0 {
		xlen = (s.Room.X - pos.X) / dir.X
	}
	if dir.X < 0 {
		xlen = pos.X / -dir.X
	}
	ylen := math.Inf(1)
	if dir.Y > 0 {
		ylen = (s.Room.Y - pos.Y) / dir.Y
	}
	if dir.Y < 0 {
		ylen = pos.Y / -dir.Y
	}
	zlen := math.Inf(1)
	if dir.Z > 0 {
		zlen = (s.Room.Z - pos.Z) / dir.Z
	}
	if dir.Z < 0 {
		zlen = pos.Z / -dir.Z
	}
	return math.Min(xlen, math.Min(ylen, zlen))
}

// wallNormal classifies which wall pos landed on and returns the wall's
// inward unit normal. ok is false when pos matches no wall within
// tolerance (numerical drift).
func (s *Scene) wallNormal(pos Vector3) (normal Vector3, ok bool) {
	switch {
	case pos.X < Precision:
		return Vector3{1, 0, 0}, true
	case pos.Y < Precision:
		return Vector3{0, 1, 0}, true
	case pos.Z < Precision:
		return Vector3{0, 0, 1}, true
	case pos.X > s.Room.X-Precision:
		return Vector3{-1, 0, 0}, true
	case pos.Y > s.Room.Y-Precision:
		return Vector3{0, -1, 0}, true
	case pos.Z > s.Room.Z-Precision:
		return Vector3{0, 0, -1}, true
	}
	return Vector3{}, false
}

// Trace runs the stochastic simulation with the default ray budget and a
// time-derived seed, returning the peak-normalized stereo buffer.
func (s *Scene) Trace(sampleRate, duration Real) StereoBuffer {
	return s.TraceSeeded(sampleRate, duration, AcousticRays, 0)
}

// TraceSeeded traces the given number of independent rays, partitioned
// across a worker pool. Each worker deposits into a private buffer with
// its own RNG stream derived from seed (0 picks a time-derived seed);
// worker buffers are summed after the join and the total is normalized.
func (s *Scene) TraceSeeded(sampleRate, duration Real, rays int, seed int64) StereoBuffer {
	buf := NewStereoBuffer(sampleRate, duration)
	if rays <= 0 || len(buf) == 0 {
		return buf
	}
	workers := Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > rays {
		workers = rays
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	per, rem := rays/workers, rays%workers
	parts := make([]StereoBuffer, workers)

	var counter int64
	nextPrint := int64(1)
	if rays >= 100 {
		nextPrint = int64(rays / 100) // ~1%
	}

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		n := per
		if w < rem {
			n++
		}
		if n == 0 {
			continue
		}
		parts[w] = NewStereoBuffer(sampleRate, duration)
		wg.Add(1)
		go func(wid, n int, part StereoBuffer) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed ^ int64(uint64(wid)*0x9e3779b97f4a7c15)))
			for i := 0; i < n; i++ {
				s.traceRay(rng, part, sampleRate, duration)
				if Debug {
					fired := atomic.AddInt64(&counter, 1)
					if fired%nextPrint == 0 {
						fmt.Printf("[PROGRESS] %.2f%%\n", Real(fired)*100/Real(rays))
					}
				}
			}
		}(w, n, parts[w])
	}
	wg.Wait()

	for _, part := range parts {
		if part != nil {
			buf.addFrom(part)
		}
	}
	buf.Normalize()
	return buf
}
