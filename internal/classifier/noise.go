package classifier

import "math/rand"

// Noise supplies the bounded randomness used for confidence jitter, the
// degenerate-case label pick, and alternative-prediction sampling. Injecting
// it keeps the decision path deterministic under test.
type Noise interface {
	// Jitter returns a value uniformly distributed in [-amplitude, amplitude].
	Jitter(amplitude float64) float64
	// Float64 returns a value uniformly distributed in [0,1).
	Float64() float64
	// Intn returns a value uniformly distributed in [0,n).
	Intn(n int) int
}

// randomNoise uses the top-level math/rand functions, which are safe for
// concurrent use without additional locking.
type randomNoise struct{}

// NewRandomNoise returns the production noise source.
func NewRandomNoise() Noise {
	return randomNoise{}
}

func (randomNoise) Jitter(amplitude float64) float64 {
	return (rand.Float64()*2 - 1) * amplitude
}

func (randomNoise) Float64() float64 {
	return rand.Float64()
}

func (randomNoise) Intn(n int) int {
	return rand.Intn(n)
}

// seededNoise wraps a seeded generator for reproducible runs. Not safe for
// concurrent use; intended for tests and offline evaluation.
type seededNoise struct {
	rng *rand.Rand
}

// NewSeededNoise returns a reproducible noise source.
func NewSeededNoise(seed int64) Noise {
	return &seededNoise{rng: rand.New(rand.NewSource(seed))}
}

func (s *seededNoise) Jitter(amplitude float64) float64 {
	return (s.rng.Float64()*2 - 1) * amplitude
}

func (s *seededNoise) Float64() float64 {
	return s.rng.Float64()
}

func (s *seededNoise) Intn(n int) int {
	return s.rng.Intn(n)
}

// zeroNoise eliminates randomness entirely: jitter is zero, draws sit at the
// middle of their range, and index picks always select the first element.
// Tests use it to assert exact confidence values.
type zeroNoise struct{}

// NewZeroNoise returns the no-jitter noise source.
func NewZeroNoise() Noise {
	return zeroNoise{}
}

func (zeroNoise) Jitter(amplitude float64) float64 { return 0 }

func (zeroNoise) Float64() float64 { return 0.5 }

func (zeroNoise) Intn(n int) int { return 0 }
