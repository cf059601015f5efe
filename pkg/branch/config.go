package branch

import (
	"fmt"
	"math"
)

const (
	// DefaultLengthDecay is how much shorter each level of branches is than its parent.
	DefaultLengthDecay = 0.8
	// DefaultWidthDecay is how much thinner each level of branches is than its parent.
	DefaultWidthDecay = 0.8

	DefaultAngleStep   = 5.0
	DefaultJitterBound = 10
)

// Config holds the shape parameters shared by every branch of one tree.
type Config struct {
	// LengthDecay multiplies the length of a branch to get the length of its children.
	// Must be in (0, 1].
	LengthDecay float64

	// WidthDecay is the same as above, but for stroke width.
	WidthDecay float64

	// AngleStep is the structural turn between a branch and each of its children,
	// in degrees. Children turn by -AngleStep and +AngleStep before jitter.
	AngleStep float64

	// JitterBound is the largest multiplier a RandomSource may apply to AngleStep.
	// A bound of 1 disables jitter.
	JitterBound uint32
}

// DefaultConfig returns the parameters the trees were first drawn with.
func DefaultConfig() Config {
	return Config{
		LengthDecay: DefaultLengthDecay,
		WidthDecay:  DefaultWidthDecay,
		AngleStep:   DefaultAngleStep,
		JitterBound: DefaultJitterBound,
	}
}

// Validate returns an error wrapping ErrInvalidConfig if cfg cannot generate a tree.
func (cfg Config) Validate() error {
	if !inUnitInterval(cfg.LengthDecay) {
		return fmt.Errorf("%w: length decay must be in (0, 1], got %v", ErrInvalidConfig, cfg.LengthDecay)
	}
	if !inUnitInterval(cfg.WidthDecay) {
		return fmt.Errorf("%w: width decay must be in (0, 1], got %v", ErrInvalidConfig, cfg.WidthDecay)
	}
	if math.IsNaN(cfg.AngleStep) || math.IsInf(cfg.AngleStep, 0) {
		return fmt.Errorf("%w: angle step must be finite, got %v", ErrInvalidConfig, cfg.AngleStep)
	}
	if cfg.JitterBound < 1 {
		return fmt.Errorf("%w: jitter bound must be at least 1, got %d", ErrInvalidConfig, cfg.JitterBound)
	}

	return nil
}

// inUnitInterval is false for NaN.
func inUnitInterval(f float64) bool {
	return f > 0.0 && f <= 1.0
}
