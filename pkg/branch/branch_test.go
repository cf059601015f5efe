package branch_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/willbeason/fractal-trees/pkg/branch"
	"github.com/willbeason/fractal-trees/pkg/geometry"
)

const epsilon = 1e-9

var origin = geometry.XY{X: 450.0, Y: 600.0}

type GenerateFractalSuite struct {
	suite.Suite
}

func TestGenerateFractal(t *testing.T) {
	suite.Run(t, new(GenerateFractalSuite))
}

func (s *GenerateFractalSuite) TestCount() {
	for n := uint32(0); n <= 10; n++ {
		segments, err := branch.GenerateFractal(origin, 120.0, n, 25.0, 10, 8.0, branch.WithSeed(uint64(n)))
		require.NoError(s.T(), err)
		require.Len(s.T(), segments, int(branch.Count(n)), "n = %d", n)
		require.Equal(s.T(), uint64(1)<<(n+1)-1, branch.Count(n))
	}
}

func (s *GenerateFractalSuite) TestCountSaturates() {
	require.Equal(s.T(), uint64(math.MaxUint64>>1), branch.Count(62))
	require.Equal(s.T(), uint64(math.MaxUint64), branch.Count(63))
	require.Equal(s.T(), uint64(math.MaxUint64), branch.Count(math.MaxUint32))
}

func (s *GenerateFractalSuite) TestSingleSegment() {
	// The root never draws jitter, so even a wildly jittering source cannot move it.
	segments, err := branch.GenerateFractal(origin, 75.0, 0, 30.0, 10, 8.0,
		branch.WithRandomSource(branch.Constant(10)))
	require.NoError(s.T(), err)
	require.Len(s.T(), segments, 1)

	root := segments[0]
	require.Equal(s.T(), origin, root.From)
	require.InDelta(s.T(), 450.0, root.To.X, epsilon)
	require.InDelta(s.T(), 525.0, root.To.Y, epsilon)
	require.Equal(s.T(), 8.0, root.Width)
	require.Equal(s.T(), 0, root.Depth)
}

func (s *GenerateFractalSuite) TestThreeLevels() {
	segments, err := branch.GenerateFractal(origin, 120.0, 2, 5.0, 1, 8.0,
		branch.WithRandomSource(branch.Constant(1)))
	require.NoError(s.T(), err)
	require.Len(s.T(), segments, 7)

	root := segments[0]
	require.Equal(s.T(), origin, root.From)
	require.InDelta(s.T(), 450.0, root.To.X, epsilon)
	require.InDelta(s.T(), 480.0, root.To.Y, epsilon)

	// Pre-order: root, first child, its two children, second child, its two children.
	first, second := segments[1], segments[4]
	for _, child := range []branch.Segment{first, second} {
		require.Equal(s.T(), root.To, child.From)
		require.InDelta(s.T(), 96.0, child.Length(), epsilon)
		require.InDelta(s.T(), 6.4, child.Width, epsilon)
		require.Equal(s.T(), 1, child.Depth)
	}

	for _, i := range []int{2, 3} {
		require.Equal(s.T(), first.To, segments[i].From)
		require.Equal(s.T(), 2, segments[i].Depth)
	}
	for _, i := range []int{5, 6} {
		require.Equal(s.T(), second.To, segments[i].From)
		require.Equal(s.T(), 2, segments[i].Depth)
	}
}

func (s *GenerateFractalSuite) TestLengthAndWidthDecay() {
	segments, err := branch.GenerateFractal(origin, 100.0, 8, 17.0, 7, 10.0,
		branch.WithSeed(42),
		branch.WithLengthDecay(0.7),
		branch.WithWidthDecay(0.9),
	)
	require.NoError(s.T(), err)

	for _, seg := range segments {
		depth := float64(seg.Depth)
		assert.InDelta(s.T(), 100.0*math.Pow(0.7, depth), seg.Length(), 1e-6)
		assert.InDelta(s.T(), 10.0*math.Pow(0.9, depth), seg.Width, 1e-9)
	}
}

func (s *GenerateFractalSuite) TestDecayOfOne() {
	// Decay of exactly 1 is legal; the depth counter alone ends the tree.
	segments, err := branch.GenerateFractal(origin, 10.0, 6, 45.0, 3, 2.0,
		branch.WithSeed(7),
		branch.WithLengthDecay(1.0),
		branch.WithWidthDecay(1.0),
	)
	require.NoError(s.T(), err)
	require.Len(s.T(), segments, int(branch.Count(6)))

	for _, seg := range segments {
		assert.InDelta(s.T(), 10.0, seg.Length(), 1e-9)
		assert.Equal(s.T(), 2.0, seg.Width)
	}
}

func (s *GenerateFractalSuite) TestMirroredChildren() {
	segments, err := branch.GenerateFractal(origin, 120.0, 1, 20.0, 10,
		8.0, branch.WithRandomSource(branch.Constant(1)))
	require.NoError(s.T(), err)
	require.Len(s.T(), segments, 3)

	root, first, second := segments[0], segments[1], segments[2]

	// The root points straight up, so mirroring across its axis negates X offsets.
	dFirst := first.To.Sub(root.To)
	dSecond := second.To.Sub(root.To)
	require.InDelta(s.T(), -dFirst.X, dSecond.X, epsilon)
	require.InDelta(s.T(), dFirst.Y, dSecond.Y, epsilon)
	require.InDelta(s.T(), first.Length(), second.Length(), epsilon)

	// The first child turns counter-clockwise on screen, toward smaller X.
	require.Less(s.T(), first.To.X, root.To.X)
	require.Greater(s.T(), second.To.X, root.To.X)

	wantX := 96.0 * math.Sin(geometry.Radians(20.0))
	require.InDelta(s.T(), wantX, dSecond.X, epsilon)
}

func (s *GenerateFractalSuite) TestReproducibleWithSeed() {
	a, err := branch.GenerateFractal(origin, 120.0, 9, 5.0, 10, 8.0, branch.WithSeed(2024))
	require.NoError(s.T(), err)
	b, err := branch.GenerateFractal(origin, 120.0, 9, 5.0, 10, 8.0, branch.WithSeed(2024))
	require.NoError(s.T(), err)

	require.Equal(s.T(), a, b)
}

func (s *GenerateFractalSuite) TestInvalidParameters() {
	tcs := []struct {
		name          string
		initialLength float64
		maxSegments   uint32
		baseWidth     float64
	}{
		{name: "zero length", initialLength: 0.0, maxSegments: 3, baseWidth: 8.0},
		{name: "negative length", initialLength: -5.0, maxSegments: 3, baseWidth: 8.0},
		{name: "NaN length", initialLength: math.NaN(), maxSegments: 3, baseWidth: 8.0},
		{name: "zero width", initialLength: 120.0, maxSegments: 3, baseWidth: 0.0},
		{name: "negative width", initialLength: 120.0, maxSegments: 3, baseWidth: -1.0},
	}

	for _, tc := range tcs {
		s.Run(tc.name, func() {
			segments, err := branch.GenerateFractal(origin, tc.initialLength, tc.maxSegments, 5.0, 10, tc.baseWidth,
				branch.WithSeed(1))
			require.ErrorIs(s.T(), err, branch.ErrInvalidParameter)
			require.False(s.T(), errors.Is(err, branch.ErrInvalidConfig))
			require.Nil(s.T(), segments)
		})
	}
}

func (s *GenerateFractalSuite) TestInvalidConfig() {
	tcs := []struct {
		name        string
		jitterBound uint32
		angleStep   float64
		opts        []branch.Option
	}{
		{name: "length decay above one", jitterBound: 10, angleStep: 5.0, opts: []branch.Option{branch.WithLengthDecay(1.5)}},
		{name: "zero length decay", jitterBound: 10, angleStep: 5.0, opts: []branch.Option{branch.WithLengthDecay(0.0)}},
		{name: "negative width decay", jitterBound: 10, angleStep: 5.0, opts: []branch.Option{branch.WithWidthDecay(-0.2)}},
		{name: "zero jitter bound", jitterBound: 0, angleStep: 5.0},
		{name: "infinite angle", jitterBound: 10, angleStep: math.Inf(1)},
		{name: "nil random source", jitterBound: 10, angleStep: 5.0, opts: []branch.Option{branch.WithRandomSource(nil)}},
	}

	for _, tc := range tcs {
		s.Run(tc.name, func() {
			segments, err := branch.GenerateFractal(origin, 120.0, 4, tc.angleStep, tc.jitterBound, 8.0, tc.opts...)
			require.ErrorIs(s.T(), err, branch.ErrInvalidConfig)
			require.Nil(s.T(), segments)
		})
	}
}

func TestGenerate_DrawsOncePerNonRootBranch(t *testing.T) {
	rnd := branch.Sequence(3, 1, 4, 1, 5, 9, 2, 6)

	segments, err := branch.Generate(branch.State{
		Origin:    origin,
		Length:    50.0,
		Remaining: 5,
		Width:     4.0,
	}, true, branch.DefaultConfig(), rnd)
	require.NoError(t, err)

	require.Len(t, segments, int(branch.Count(5)))
	require.Equal(t, len(segments)-1, rnd.Draws())
}

func TestGenerate_NonRootDrawsForItself(t *testing.T) {
	rnd := branch.Sequence(2)
	cfg := branch.Config{LengthDecay: 0.5, WidthDecay: 0.5, AngleStep: 30.0, JitterBound: 4}

	segments, err := branch.Generate(branch.State{
		Origin:    geometry.XY{},
		Length:    10.0,
		Remaining: 0,
		Width:     1.0,
	}, false, cfg, rnd)
	require.NoError(t, err)
	require.Len(t, segments, 1)
	require.Equal(t, 1, rnd.Draws())

	// 30 degrees times a jitter of 2.
	want := geometry.Rotate(geometry.Up, geometry.Radians(60.0)).Scale(10.0)
	assert.InDelta(t, want.X, segments[0].To.X, epsilon)
	assert.InDelta(t, want.Y, segments[0].To.Y, epsilon)
}

func TestGenerate_AlternatesTurnOrder(t *testing.T) {
	cfg := branch.Config{LengthDecay: 0.8, WidthDecay: 0.8, AngleStep: 10.0, JitterBound: 1}

	segments, err := branch.Generate(branch.State{
		Origin:    origin,
		Length:    100.0,
		Remaining: 2,
		Width:     8.0,
	}, true, cfg, branch.Constant(1))
	require.NoError(t, err)
	require.Len(t, segments, 7)

	heading := func(s branch.Segment) float64 {
		d := s.To.Sub(s.From)
		return geometry.Degrees(math.Atan2(d.X, -d.Y))
	}

	// The first child turns left; its own first child turns back right.
	want := []float64{0.0, -10.0, 0.0, -20.0, 10.0, 0.0, 20.0}
	for i, seg := range segments {
		assert.InDelta(t, want[i], heading(seg), 1e-6, "segment %d", i)
	}
}

func TestSegments_StopsEarly(t *testing.T) {
	rnd := branch.Sequence()
	seq, err := branch.Segments(branch.State{
		Origin:    origin,
		Length:    10.0,
		Remaining: 10,
		Width:     1.0,
	}, true, branch.DefaultConfig(), rnd)
	require.NoError(t, err)

	n := 0
	for range seq {
		n++
		if n == 3 {
			break
		}
	}

	require.Equal(t, 3, n)
	require.Equal(t, 2, rnd.Draws())
}

func TestSegments_ValidatesEagerly(t *testing.T) {
	seq, err := branch.Segments(branch.State{Length: 1.0, Width: 1.0}, true, branch.Config{}, branch.Constant(1))
	require.ErrorIs(t, err, branch.ErrInvalidConfig)
	require.Nil(t, seq)
}

func TestSegments_DepthIsBoundedOnlyByState(t *testing.T) {
	// Far deeper than any tree could be collected; the walk itself imposes no cap.
	rnd := branch.Sequence()
	seq, err := branch.Segments(branch.State{
		Origin:    origin,
		Length:    10.0,
		Remaining: 40,
		Width:     1.0,
	}, true, branch.DefaultConfig(), rnd)
	require.NoError(t, err)

	// Pre-order visits the first child at every level before any second child.
	depth := 0
	for seg := range seq {
		require.Equal(t, depth, seg.Depth)
		depth++
		if depth > 40 {
			break
		}
	}

	require.Equal(t, 41, depth)
}
