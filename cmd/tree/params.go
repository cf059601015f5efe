package main

import (
	"fmt"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/willbeason/fractal-trees/pkg/branch"
	"github.com/willbeason/fractal-trees/pkg/render"
)

const (
	// DefaultMaxSegments is the deepest tree the CLI grows unless told otherwise.
	DefaultMaxSegments = 15

	// MaxSegmentsLimit bounds --max-segments. The number of segments doubles
	// with each level; a tree this deep already has about four million of them.
	MaxSegmentsLimit = 21

	// rootMargin is how far above the bottom of the canvas the trunk starts by default.
	rootMargin = 70.0
)

// Params is everything needed to grow and draw one tree.
type Params struct {
	Length      float64
	Segments    uint32
	Angle       float64
	Jitter      uint32
	BaseWidth   float64
	LengthDecay float64
	WidthDecay  float64

	// Seed makes the jitter reproducible. Zero seeds from the clock.
	Seed uint64

	Width  int
	Height int

	// OriginX and OriginY default to the bottom center of the canvas.
	OriginX float64
	OriginY float64

	MaxSegments uint32
}

func DefaultParams() Params {
	return Params{
		Length:      120.0,
		Segments:    14,
		Angle:       branch.DefaultAngleStep,
		Jitter:      branch.DefaultJitterBound,
		BaseWidth:   8.0,
		LengthDecay: branch.DefaultLengthDecay,
		WidthDecay:  branch.DefaultWidthDecay,
		Width:       render.DefaultWidth,
		Height:      render.DefaultHeight,
		MaxSegments: DefaultMaxSegments,
	}
}

// paramKeys maps each flag to its key in a parameter file.
var paramKeys = map[string]string{
	"length":       "length",
	"segments":     "segments",
	"angle":        "angle",
	"jitter":       "jitter",
	"base-width":   "baseWidth",
	"length-decay": "lengthDecay",
	"width-decay":  "widthDecay",
	"seed":         "seed",
	"width":        "width",
	"height":       "height",
	"origin-x":     "originX",
	"origin-y":     "originY",
	"max-segments": "maxSegments",
}

func bindParams(flags *pflag.FlagSet) {
	p := DefaultParams()

	flags.Float64("length", p.Length, "length of the trunk")
	flags.Uint32("segments", p.Segments, "levels of branches above the trunk")
	flags.Float64("angle", p.Angle, "degrees each branch turns from its parent, before jitter")
	flags.Uint32("jitter", p.Jitter, "largest multiplier applied to each turn; 1 disables jitter")
	flags.Float64("base-width", p.BaseWidth, "stroke width of the trunk")
	flags.Float64("length-decay", p.LengthDecay, "length of each branch relative to its parent, in (0, 1]")
	flags.Float64("width-decay", p.WidthDecay, "width of each branch relative to its parent, in (0, 1]")
	flags.Uint64("seed", p.Seed, "seed for the jitter; 0 seeds from the clock")
	flags.Int("width", p.Width, "canvas width in pixels")
	flags.Int("height", p.Height, "canvas height in pixels")
	flags.Float64("origin-x", 0.0, "x of the base of the trunk (default: center of the canvas)")
	flags.Float64("origin-y", 0.0, fmt.Sprintf("y of the base of the trunk (default: %.0f above the bottom)", rootMargin))
	flags.Uint32("max-segments", p.MaxSegments, fmt.Sprintf("refuse to grow trees with more levels than this, at most %d", MaxSegmentsLimit))
}

// loadParams merges flags set on the command line, then the parameter file at
// configPath if there is one, then flag defaults.
func loadParams(flags *pflag.FlagSet, configPath string) (Params, error) {
	v := viper.New()

	for name, key := range paramKeys {
		err := v.BindPFlag(key, flags.Lookup(name))
		if err != nil {
			return Params{}, err
		}
	}

	if configPath != "" {
		v.SetConfigFile(configPath)

		err := v.ReadInConfig()
		if err != nil {
			return Params{}, fmt.Errorf("parsing %s: %w", configPath, err)
		}
	}

	p := Params{
		Length:      v.GetFloat64("length"),
		Segments:    v.GetUint32("segments"),
		Angle:       v.GetFloat64("angle"),
		Jitter:      v.GetUint32("jitter"),
		BaseWidth:   v.GetFloat64("baseWidth"),
		LengthDecay: v.GetFloat64("lengthDecay"),
		WidthDecay:  v.GetFloat64("widthDecay"),
		Seed:        v.GetUint64("seed"),
		Width:       v.GetInt("width"),
		Height:      v.GetInt("height"),
		MaxSegments: v.GetUint32("maxSegments"),
	}

	// The origin follows the canvas unless something sets it.
	p.OriginX = float64(p.Width) / 2.0
	if v.IsSet("originX") {
		p.OriginX = v.GetFloat64("originX")
	}
	p.OriginY = float64(p.Height) - rootMargin
	if v.IsSet("originY") {
		p.OriginY = v.GetFloat64("originY")
	}

	return p, nil
}

// Validate checks what GenerateFractal does not: the CLI's depth caps.
func (p Params) Validate() error {
	if p.MaxSegments > MaxSegmentsLimit {
		return fmt.Errorf("%w: --max-segments must be at most %d, got %d",
			branch.ErrInvalidParameter, MaxSegmentsLimit, p.MaxSegments)
	}
	if p.Segments > p.MaxSegments {
		return fmt.Errorf("%w: %d segments exceeds --max-segments %d",
			branch.ErrInvalidParameter, p.Segments, p.MaxSegments)
	}

	return nil
}
