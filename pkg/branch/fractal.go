package branch

import (
	"math"
	"time"

	"github.com/willbeason/fractal-trees/pkg/geometry"
)

// Count is the number of segments in a tree whose root has maxSegments levels
// of children below it. From 63 levels on the count no longer fits and Count
// returns math.MaxUint64.
func Count(maxSegments uint32) uint64 {
	if maxSegments >= 63 {
		return math.MaxUint64
	}

	return 1<<(uint64(maxSegments)+1) - 1
}

type options struct {
	lengthDecay float64
	widthDecay  float64
	rnd         RandomSource
	rndSet      bool
}

// An Option changes how GenerateFractal builds a tree.
type Option func(*options)

// WithLengthDecay overrides DefaultLengthDecay.
func WithLengthDecay(decay float64) Option {
	return func(o *options) {
		o.lengthDecay = decay
	}
}

// WithWidthDecay overrides DefaultWidthDecay.
func WithWidthDecay(decay float64) Option {
	return func(o *options) {
		o.widthDecay = decay
	}
}

// WithRandomSource sets where jitter comes from. Passing nil is an error.
func WithRandomSource(rnd RandomSource) Option {
	return func(o *options) {
		o.rnd = rnd
		o.rndSet = true
	}
}

// WithSeed makes jitter reproducible.
func WithSeed(seed uint64) Option {
	return WithRandomSource(NewRandomSource(seed))
}

// GenerateFractal grows a tree upward from origin.
//
// The result holds Count(maxSegments) segments, so callers should cap
// maxSegments. Without WithRandomSource or WithSeed the jitter is seeded from
// the clock.
func GenerateFractal(
	origin geometry.XY,
	initialLength float64,
	maxSegments uint32,
	angleStep float64,
	jitterBound uint32,
	baseWidth float64,
	opts ...Option,
) ([]Segment, error) {
	o := options{
		lengthDecay: DefaultLengthDecay,
		widthDecay:  DefaultWidthDecay,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if !o.rndSet {
		o.rnd = NewRandomSource(uint64(time.Now().UnixNano()))
	}

	root := State{
		Origin:    origin,
		Heading:   0.0,
		Length:    initialLength,
		Remaining: maxSegments,
		Width:     baseWidth,
	}

	cfg := Config{
		LengthDecay: o.lengthDecay,
		WidthDecay:  o.widthDecay,
		AngleStep:   angleStep,
		JitterBound: jitterBound,
	}

	return Generate(root, true, cfg, o.rnd)
}
