package reverb

// Real is the scalar type used throughout the simulator.
type Real = float64

// Stereo channel offsets within an interleaved frame.
const (
	ChLeft  = 0
	ChRight = 1
)

const (
	SpeedOfSound = 330 // m/s in air

	// AcousticRays is the default stochastic ray budget; accuracy scales
	// with sqrt of the count.
	AcousticRays = 1_000_000

	// InfiniteWallRays is the default budget for the single-wall estimator.
	InfiniteWallRays = 10_000_000

	// Precision is both the per-ray energy cutoff and the tolerance used
	// when classifying which wall a ray landed on.
	Precision = 1e-6

	// Reflection-point search (image-source method).
	gradStep    = 1e-3 // forward-difference step
	gradRate    = 0.5  // descent rate
	gradTol     = 1e-3 // stop when both partials are below this
	gradMaxIter = 10_000

	// Specular deposits: empirical first-reflection gain and the per-sample
	// decay approximating an infinite-wall reflection (keeps 97% of energy).
	reflectionGain  = 0.08
	reflectionDecay = 0.97
)
