package branch

import (
	"math/rand/v2"
)

// A RandomSource supplies the jitter multiplier for each non-root branch.
//
// Draw returns an integer uniformly distributed in [1, bound]. Callers never pass
// a bound of zero. Implementations need not be safe for concurrent use.
type RandomSource interface {
	Draw(bound uint32) uint32
}

type pcgSource struct {
	r *rand.Rand
}

// NewRandomSource returns a RandomSource which produces the same draws for the same seed.
func NewRandomSource(seed uint64) RandomSource {
	return &pcgSource{r: rand.New(rand.NewPCG(seed, 0))}
}

func (s *pcgSource) Draw(bound uint32) uint32 {
	return s.r.Uint32N(bound) + 1
}

// Constant always draws v, clamped into [1, bound].
type Constant uint32

func (c Constant) Draw(bound uint32) uint32 {
	return clamp(uint32(c), bound)
}

// SequenceSource draws a fixed list of values in order, starting over once exhausted.
type SequenceSource struct {
	values []uint32
	draws  int
}

// Sequence returns a SequenceSource cycling through values. With no values it
// always draws 1.
func Sequence(values ...uint32) *SequenceSource {
	return &SequenceSource{values: values}
}

func (s *SequenceSource) Draw(bound uint32) uint32 {
	v := uint32(1)
	if len(s.values) > 0 {
		v = s.values[s.draws%len(s.values)]
	}
	s.draws++

	return clamp(v, bound)
}

// Draws is how many times Draw has been called.
func (s *SequenceSource) Draws() int {
	return s.draws
}

func clamp(v, bound uint32) uint32 {
	return max(1, min(v, bound))
}

var (
	_ RandomSource = &pcgSource{}
	_ RandomSource = Constant(1)
	_ RandomSource = &SequenceSource{}
)
