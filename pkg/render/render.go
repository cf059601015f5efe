// Package render strokes generated branches onto a raster image.
package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"

	"github.com/gogpu/gg"
	"github.com/willbeason/fractal-trees/pkg/branch"
	"github.com/willbeason/fractal-trees/pkg/geometry"
	"golang.org/x/image/draw"
)

const (
	DefaultWidth  = 900
	DefaultHeight = 670

	// MaxSupersample bounds how much larger than the output the working canvas may be.
	MaxSupersample = 8
)

// ErrInvalidSize is returned for empty canvases, out of range supersampling,
// and empty segment lists.
var ErrInvalidSize = errors.New("render: invalid size")

type Options struct {
	Width, Height int

	Background color.Color
	Stroke     color.Color

	// Supersample draws at this many times the output resolution and then
	// downsamples. Values of 0 and 1 draw directly.
	Supersample int

	// RoundCaps rounds the ends of each branch, hiding the seams where
	// children meet their parent at wide angles.
	RoundCaps bool
}

// DefaultOptions matches the canvas the trees were first drawn on.
func DefaultOptions() Options {
	return Options{
		Width:       DefaultWidth,
		Height:      DefaultHeight,
		Background:  color.White,
		Stroke:      color.Black,
		Supersample: 1,
	}
}

func (o Options) Validate() error {
	if o.Width <= 0 || o.Height <= 0 {
		return fmt.Errorf("%w: canvas must be positive, got %dx%d", ErrInvalidSize, o.Width, o.Height)
	}
	if o.Supersample < 0 || o.Supersample > MaxSupersample {
		return fmt.Errorf("%w: supersample must be in [0, %d], got %d", ErrInvalidSize, MaxSupersample, o.Supersample)
	}

	return nil
}

func (o Options) scale() int {
	return max(1, o.Supersample)
}

// Draw strokes each segment, in order, with its own width.
func Draw(segments []branch.Segment, opts Options) (image.Image, error) {
	if len(segments) == 0 {
		return nil, fmt.Errorf("%w: no segments to draw", ErrInvalidSize)
	}
	err := opts.Validate()
	if err != nil {
		return nil, err
	}

	k := opts.scale()
	fk := float64(k)

	Logger().Debug("drawing tree",
		"segments", len(segments),
		"width", opts.Width,
		"height", opts.Height,
		"supersample", k)

	dc := gg.NewContext(opts.Width*k, opts.Height*k)
	defer dc.Close()

	background := opts.Background
	if background == nil {
		background = color.Transparent
	}
	dc.ClearWithColor(gg.FromColor(background))

	stroke := opts.Stroke
	if stroke == nil {
		stroke = color.Black
	}
	dc.SetColor(stroke)

	if opts.RoundCaps {
		dc.SetLineCap(gg.LineCapRound)
	}

	for i, s := range segments {
		dc.SetLineWidth(s.Width * fk)
		dc.DrawLine(s.From.X*fk, s.From.Y*fk, s.To.X*fk, s.To.Y*fk)

		err = dc.Stroke()
		if err != nil {
			return nil, fmt.Errorf("stroking segment %d: %w", i, err)
		}
	}

	img := dc.Image()
	if k == 1 {
		return img, nil
	}

	dst := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)

	return dst, nil
}

// WritePNG draws segments and encodes the result to w.
func WritePNG(w io.Writer, segments []branch.Segment, opts Options) error {
	img, err := Draw(segments, opts)
	if err != nil {
		return err
	}

	return png.Encode(w, img)
}

// SavePNG draws segments to a new PNG file at path.
func SavePNG(path string, segments []branch.Segment, opts Options) (err error) {
	img, err := Draw(segments, opts)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()

	err = png.Encode(f, img)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}

	Logger().Info("wrote tree", "path", path, "segments", len(segments))

	return nil
}

// Bounds is the smallest box containing every segment endpoint. Stroke width is ignored.
func Bounds(segments []branch.Segment) (geometry.XY, geometry.XY, error) {
	if len(segments) == 0 {
		return geometry.XY{}, geometry.XY{}, fmt.Errorf("%w: no segments", ErrInvalidSize)
	}

	lo, hi := segments[0].From, segments[0].From
	for _, s := range segments {
		for _, p := range []geometry.XY{s.From, s.To} {
			lo.X = min(lo.X, p.X)
			lo.Y = min(lo.Y, p.Y)
			hi.X = max(hi.X, p.X)
			hi.Y = max(hi.Y, p.Y)
		}
	}

	return lo, hi, nil
}

// Contains is whether every segment endpoint lies on a width by height canvas.
func Contains(segments []branch.Segment, width, height int) bool {
	lo, hi, err := Bounds(segments)
	if err != nil {
		return true
	}

	return lo.X >= 0 && lo.Y >= 0 && hi.X <= float64(width) && hi.Y <= float64(height)
}
