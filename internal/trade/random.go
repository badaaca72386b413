package trade

import "math/rand/v2"

// Random is the only source of chance in the engine. Implementations must
// replay the same sequence for the same seed.
type Random interface {
	// Float returns a uniform value in [min, max).
	Float(min, max float64) float64
	// Int returns a uniform value in [min, max].
	Int(min, max int) int
	// Bool returns true with probability p.
	Bool(p float64) bool
	// Pick returns a uniform index in [0, n).
	Pick(n int) int
}

// SeededRandom is a PCG-backed Random.
type SeededRandom struct {
	r *rand.Rand
}

// NewSeededRandom returns a Random whose sequence is fixed by seed.
func NewSeededRandom(seed uint64) *SeededRandom {
	return &SeededRandom{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (s *SeededRandom) Float(min, max float64) float64 {
	if max <= min {
		return min
	}
	return min + s.r.Float64()*(max-min)
}

func (s *SeededRandom) Int(min, max int) int {
	if max <= min {
		return min
	}
	return min + s.r.IntN(max-min+1)
}

func (s *SeededRandom) Bool(p float64) bool {
	return s.r.Float64() < p
}

func (s *SeededRandom) Pick(n int) int {
	if n <= 1 {
		return 0
	}
	return s.r.IntN(n)
}
