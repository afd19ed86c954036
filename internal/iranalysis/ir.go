// Package iranalysis derives room-acoustic metrics from a sampled
// impulse response: reverberation times from Schroeder backward
// integration, clarity/definition ratios and the energy centroid.
package iranalysis

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/stat"
)

// Errors returned by impulse response analysis.
var (
	ErrEmptyIR           = errors.New("iranalysis: impulse response is empty")
	ErrInvalidSampleRate = errors.New("iranalysis: sample rate must be positive")
	ErrNoDecay           = errors.New("iranalysis: insufficient decay for RT calculation")
)

// Metrics holds impulse response analysis results.
type Metrics struct {
	RT60       float64 // reverberation time in seconds (from T30, or T20)
	EDT        float64 // early decay time, fitted over 0 to -10 dB
	T20        float64 // RT from the -5..-25 dB slope
	T30        float64 // RT from the -5..-35 dB slope
	C50        float64 // clarity at 50 ms in dB
	C80        float64 // clarity at 80 ms in dB
	D50        float64 // definition at 50 ms (ratio 0..1)
	D80        float64 // definition at 80 ms
	CenterTime float64 // energy centroid in seconds
	PeakIndex  int     // sample index of the absolute IR peak
}

// Analyzer computes IR metrics from impulse response data.
type Analyzer struct {
	SampleRate float64
}

// NewAnalyzer creates an IR analyzer with the given sample rate.
func NewAnalyzer(sampleRate float64) *Analyzer {
	return &Analyzer{SampleRate: sampleRate}
}

// Analyze computes all metrics for a mono impulse response. ErrNoDecay
// is returned when the response never decays far enough for any RT
// estimate.
func (a *Analyzer) Analyze(ir []float64) (*Metrics, error) {
	if a.SampleRate <= 0 {
		return nil, ErrInvalidSampleRate
	}
	if len(ir) == 0 {
		return nil, ErrEmptyIR
	}

	n := len(ir)
	energy := make([]float64, n)
	total := 0.0
	peakIdx, peakVal := 0, 0.0
	for i, v := range ir {
		e := v * v
		energy[i] = e
		total += e
		if av := math.Abs(v); av > peakVal {
			peakVal, peakIdx = av, i
		}
	}
	if total == 0 {
		return nil, ErrEmptyIR
	}

	// Schroeder backward integration, in dB relative to the curve start.
	db := make([]float64, n)
	sum := 0.0
	for i := n - 1; i >= 0; i-- {
		sum += energy[i]
		db[i] = sum
	}
	ref := db[0]
	for i, v := range db {
		if v <= 0 {
			db[i] = math.Inf(-1)
		} else {
			db[i] = 10 * math.Log10(v/ref)
		}
	}

	m := &Metrics{PeakIndex: peakIdx}

	ct := 0.0
	for i, e := range energy {
		ct += float64(i) / a.SampleRate * e
	}
	m.CenterTime = ct / total

	m.C50, m.D50 = a.clarity(energy, total, 0.050)
	m.C80, m.D80 = a.clarity(energy, total, 0.080)

	m.EDT = a.fitRT(db, 0, -10)
	m.T20 = a.fitRT(db, -5, -25)
	m.T30 = a.fitRT(db, -5, -35)
	switch {
	case m.T30 > 0:
		m.RT60 = m.T30
	case m.T20 > 0:
		m.RT60 = m.T20
	default:
		return nil, ErrNoDecay
	}
	return m, nil
}

// clarity returns the early/late energy ratio in dB and the early/total
// ratio, split at the given time.
func (a *Analyzer) clarity(energy []float64, total, split float64) (c, d float64) {
	k := int(split * a.SampleRate)
	if k >= len(energy) {
		return math.Inf(1), 1
	}
	early := 0.0
	for i := 0; i < k; i++ {
		early += energy[i]
	}
	late := total - early
	if late <= 0 {
		return math.Inf(1), 1
	}
	return 10 * math.Log10(early / late), early / total
}

// fitRT fits a line to the Schroeder curve between two dB levels and
// extrapolates to the 60 dB decay time. Returns 0 when the curve never
// reaches the range or the fitted slope is not a decay.
func (a *Analyzer) fitRT(db []float64, from, to float64) float64 {
	i0 := firstBelow(db, from)
	i1 := firstBelow(db, to)
	if i0 < 0 || i1 < 0 || i1 <= i0+1 {
		return 0
	}
	xs := make([]float64, 0, i1-i0+1)
	ys := make([]float64, 0, i1-i0+1)
	for i := i0; i <= i1; i++ {
		if math.IsInf(db[i], -1) {
			continue
		}
		xs = append(xs, float64(i)/a.SampleRate)
		ys = append(ys, db[i])
	}
	if len(xs) < 2 {
		return 0
	}
	_, slope := stat.LinearRegression(xs, ys, nil, false)
	if slope >= 0 {
		return 0
	}
	return -60 / slope
}

func firstBelow(db []float64, level float64) int {
	for i, v := range db {
		if v <= level {
			return i
		}
	}
	return -1
}
