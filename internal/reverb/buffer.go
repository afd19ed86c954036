package reverb

import "math"

// StereoBuffer accumulates energy contributions as interleaved stereo
// samples. Frame i covers time i/sampleRate; channel offsets within a
// frame are ChLeft and ChRight.
type StereoBuffer []Real

// NewStereoBuffer allocates a silent buffer of round(sampleRate*duration)
// frames per channel.
func NewStereoBuffer(sampleRate, duration Real) StereoBuffer {
	return make(StereoBuffer, 2*int(math.Round(sampleRate*duration)))
}

// Frames returns the per-channel sample count.
func (b StereoBuffer) Frames() int { return len(b) / 2 }

// At returns the left and right samples of frame i.
func (b StereoBuffer) At(i int) (left, right Real) {
	return b[2*i+ChLeft], b[2*i+ChRight]
}

// add accumulates v at interleaved index idx, dropping out-of-range hits.
func (b StereoBuffer) add(idx int, v Real) {
	if idx >= 0 && idx < len(b) {
		b[idx] += v
	}
}

// addFrom sums another buffer of the same shape into b.
func (b StereoBuffer) addFrom(other StereoBuffer) {
	for i, v := range other {
		b[i] += v
	}
}

// Peak returns the maximum absolute sample value.
func (b StereoBuffer) Peak() Real { return peak(b) }

// Normalize scales the buffer so the peak absolute sample becomes 1.
// An all-zero buffer is a valid (silent) outcome and is left untouched.
func (b StereoBuffer) Normalize() { normalize(b) }

// FirstNonZero returns the first frame with a nonzero sample on either
// channel, or -1 for a silent buffer.
func (b StereoBuffer) FirstNonZero() int {
	for i := 0; i < b.Frames(); i++ {
		if b[2*i+ChLeft] != 0 || b[2*i+ChRight] != 0 {
			return i
		}
	}
	return -1
}

// MonoBuffer is the single-channel variant used by the infinite-wall
// estimator, one sample per time step.
type MonoBuffer []Real

// NewMonoBuffer allocates a silent buffer of round(sampleRate*duration)
// samples.
func NewMonoBuffer(sampleRate, duration Real) MonoBuffer {
	return make(MonoBuffer, int(math.Round(sampleRate*duration)))
}

// Peak returns the maximum absolute sample value.
func (b MonoBuffer) Peak() Real { return peak(b) }

// Normalize scales the buffer so the peak absolute sample becomes 1,
// leaving an all-zero buffer untouched.
func (b MonoBuffer) Normalize() { normalize(b) }

// FirstNonZero returns the first nonzero sample index, or -1.
func (b MonoBuffer) FirstNonZero() int {
	for i, v := range b {
		if v != 0 {
			return i
		}
	}
	return -1
}

func (b MonoBuffer) addFrom(other MonoBuffer) {
	for i, v := range other {
		b[i] += v
	}
}

func peak(b []Real) Real {
	max := 0.0
	for _, v := range b {
		if a := math.Abs(v); a > max {
			max = a
		}
	}
	return max
}

func normalize(b []Real) {
	max := peak(b)
	if max == 0 {
		return
	}
	inv := 1 / max
	for i := range b {
		b[i] *= inv
	}
}
