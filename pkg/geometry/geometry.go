package geometry

import (
	"math"
)

// XY is a point in screen space. Y grows downward.
type XY struct {
	X, Y float64
}

// Up is the unit vector pointing toward the top of the screen.
var Up = XY{X: 0.0, Y: -1.0}

func (xy XY) Add(other XY) XY {
	return XY{X: xy.X + other.X, Y: xy.Y + other.Y}
}

func (xy XY) Sub(other XY) XY {
	return XY{X: xy.X - other.X, Y: xy.Y - other.Y}
}

func (xy XY) Scale(s float64) XY {
	return XY{X: xy.X * s, Y: xy.Y * s}
}

func (xy XY) Length() float64 {
	return math.Hypot(xy.X, xy.Y)
}

// Distance is the Euclidean distance between two points.
func (xy XY) Distance(other XY) float64 {
	return xy.Sub(other).Length()
}

// IsFinite is false if either coordinate is NaN or infinite.
func (xy XY) IsFinite() bool {
	return isFinite(xy.X) && isFinite(xy.Y)
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Radians converts an angle measured in degrees.
func Radians(degrees float64) float64 {
	return degrees * math.Pi / 180.0
}

// Degrees converts an angle measured in radians.
func Degrees(radians float64) float64 {
	return radians * 180.0 / math.Pi
}

// Rotate turns xy about the origin by angle radians.
//
// With Y growing downward, positive angles turn clockwise on screen.
func Rotate(xy XY, angle float64) XY {
	sin, cos := math.Sincos(angle)

	return XY{
		X: xy.X*cos - xy.Y*sin,
		Y: xy.X*sin + xy.Y*cos,
	}
}

// Rescale scales xy, rotates it by angle radians, and then translates it by offset.
func Rescale(xy XY, scale float64, angle float64, offset XY) XY {
	return Rotate(xy.Scale(scale), angle).Add(offset)
}
