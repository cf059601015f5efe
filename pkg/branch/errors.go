package branch

import (
	"errors"
)

var (
	// ErrInvalidParameter is returned when a geometry input, such as a length or
	// width, is non-positive or not finite.
	ErrInvalidParameter = errors.New("branch: invalid parameter")

	// ErrInvalidConfig is returned when a decay factor is outside (0, 1], the jitter
	// bound is zero, or no RandomSource was supplied.
	ErrInvalidConfig = errors.New("branch: invalid config")
)
