package reverb

import (
	"fmt"
	"math"
	"math/rand"
	"runtime"
	"sync"
	"time"
)

// InfiniteWall estimates the response of a speaker and listener standing
// next to a single infinite wall: the plane x=0 with inward normal +X.
// Each ray deposits once directly from the speaker and, when it heads
// toward the wall, once more from the reflection point; deposits
// attenuate by 1/time^2. The result is a mono, peak-normalized buffer.
type InfiniteWall struct {
	Speaker  Vector3
	Listener Vector3
}

// NewInfiniteWall validates that both endpoints are on the reflective
// side of the wall.
func NewInfiniteWall(speaker, listener Vector3) (*InfiniteWall, error) {
	if speaker.X <= 0 {
		return nil, fmt.Errorf("speaker %+v must have x > 0", speaker)
	}
	if listener.X <= 0 {
		return nil, fmt.Errorf("listener %+v must have x > 0", listener)
	}
	if speaker == listener {
		return nil, fmt.Errorf("speaker and listener must not coincide")
	}
	return &InfiniteWall{Speaker: speaker, Listener: listener}, nil
}

// projectMono adds a deposit into the slot where the wavefront from src
// reaches dst, attenuated by the square of the total travel time.
func projectMono(src, dst Vector3, rayTime, sampleRate Real, buf MonoBuffer) {
	rayTime += dst.Sub(src).Len() / SpeedOfSound
	idx := int(math.Round(rayTime * sampleRate))
	if idx < len(buf) {
		buf[idx] += 1 / (rayTime * rayTime)
	}
}

// Calculate runs the estimator with the default ray budget and a
// time-derived seed.
func (w *InfiniteWall) Calculate(sampleRate, duration Real) MonoBuffer {
	return w.CalculateSeeded(sampleRate, duration, InfiniteWallRays, 0)
}

// CalculateSeeded traces the given number of rays across a worker pool,
// each worker with a private buffer and RNG stream, then sums and
// normalizes. Rays pointing away from the wall contribute only their
// direct deposit.
func (w *InfiniteWall) CalculateSeeded(sampleRate, duration Real, rays int, seed int64) MonoBuffer {
	buf := NewMonoBuffer(sampleRate, duration)
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
	parts := make([]MonoBuffer, workers)
	var wg sync.WaitGroup
	for wid := 0; wid < workers; wid++ {
		n := per
		if wid < rem {
			n++
		}
		if n == 0 {
			continue
		}
		parts[wid] = NewMonoBuffer(sampleRate, duration)
		wg.Add(1)
		go func(wid, n int, part MonoBuffer) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed ^ int64(uint64(wid)*0x9e3779b97f4a7c15)))
			for i := 0; i < n; i++ {
				w.castRay(rng, part, sampleRate)
			}
		}(wid, n, parts[wid])
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

func (w *InfiniteWall) castRay(rng *rand.Rand, buf MonoBuffer, sampleRate Real) {
	pos := w.Speaker
	rayTime := Real(0.0)

	projectMono(pos, w.Listener, rayTime, sampleRate, buf)

	dir := RandomDir(rng)
	// Rays not heading toward the wall never reflect.
	if dir.X >= 0 {
		return
	}
	dist := pos.X / -dir.X
	pos = pos.Add(dir.Mul(dist))
	rayTime += dist / SpeedOfSound

	projectMono(pos, w.Listener, rayTime, sampleRate, buf)
}
