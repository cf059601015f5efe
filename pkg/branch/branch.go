package branch

import (
	"fmt"
	"iter"
	"math"

	"github.com/willbeason/fractal-trees/pkg/geometry"
)

// State is where a single branch starts and how much of the tree remains below it.
type State struct {
	Origin geometry.XY

	// Heading is the direction the branch grows, in degrees clockwise from Up.
	Heading float64

	Length float64

	// Remaining is how many more levels of children follow this branch.
	// A branch with Remaining == 0 is still drawn but has no children.
	Remaining uint32

	// Width is the stroke width of the branch.
	Width float64
}

// Validate returns an error wrapping ErrInvalidParameter if s cannot start a tree.
func (s State) Validate() error {
	if !s.Origin.IsFinite() {
		return fmt.Errorf("%w: origin must be finite, got %v", ErrInvalidParameter, s.Origin)
	}
	if math.IsNaN(s.Heading) || math.IsInf(s.Heading, 0) {
		return fmt.Errorf("%w: heading must be finite, got %v", ErrInvalidParameter, s.Heading)
	}
	if !(s.Length > 0.0) || math.IsInf(s.Length, 0) {
		return fmt.Errorf("%w: length must be positive, got %v", ErrInvalidParameter, s.Length)
	}
	if !(s.Width > 0.0) || math.IsInf(s.Width, 0) {
		return fmt.Errorf("%w: width must be positive, got %v", ErrInvalidParameter, s.Width)
	}

	return nil
}

// A Segment is one drawn branch: stroke a line From To with Width.
type Segment struct {
	From, To geometry.XY
	Width    float64

	// Depth is the number of branchings between the root and this segment.
	Depth int
}

func (s Segment) Length() float64 {
	return s.From.Distance(s.To)
}

// preallocDepth is the deepest tree Generate sizes its result for up front.
const preallocDepth = 20

// frame is a branch waiting to be drawn.
type frame struct {
	State

	// angle is the structural turn from the parent's heading, before jitter.
	angle float64
	root  bool
	depth int
}

// Segments validates its inputs and returns the tree below state in pre-order,
// first child before second.
//
// The root draws along state.Heading. Any other branch first turns from its
// parent's heading by its own signed step times one draw from rnd. A branch
// given a step of a hands -a to its first child and +a to its second, starting
// from cfg.AngleStep at the top. Iterating the sequence again builds a new
// tree, consuming fresh draws.
func Segments(state State, isRoot bool, cfg Config, rnd RandomSource) (iter.Seq[Segment], error) {
	err := validate(state, cfg, rnd)
	if err != nil {
		return nil, err
	}

	start := frame{State: state, angle: cfg.AngleStep, root: isRoot}

	return func(yield func(Segment) bool) {
		walk(start, cfg, rnd, yield)
	}, nil
}

// Generate is Segments, collected into a slice.
func Generate(state State, isRoot bool, cfg Config, rnd RandomSource) ([]Segment, error) {
	seq, err := Segments(state, isRoot, cfg, rnd)
	if err != nil {
		return nil, err
	}

	var result []Segment
	if state.Remaining <= preallocDepth {
		result = make([]Segment, 0, Count(state.Remaining))
	}
	for s := range seq {
		result = append(result, s)
	}

	return result, nil
}

func validate(state State, cfg Config, rnd RandomSource) error {
	err := state.Validate()
	if err != nil {
		return err
	}

	err = cfg.Validate()
	if err != nil {
		return err
	}

	if rnd == nil {
		return fmt.Errorf("%w: a RandomSource is required", ErrInvalidConfig)
	}

	return nil
}

// walk expands the tree with an explicit stack rather than recursion, so deep
// trees cannot exhaust the goroutine stack.
func walk(start frame, cfg Config, rnd RandomSource, yield func(Segment) bool) {
	stack := []frame{start}

	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		heading := cur.Heading
		if !cur.root {
			// Jitter only ever widens the turn.
			heading += cur.angle * float64(rnd.Draw(cfg.JitterBound))
		}

		end := geometry.Rescale(geometry.Up, cur.Length, geometry.Radians(heading), cur.Origin)

		if !yield(Segment{From: cur.Origin, To: end, Width: cur.Width, Depth: cur.depth}) {
			return
		}

		if cur.Remaining == 0 {
			continue
		}

		child := State{
			Origin:    end,
			Heading:   heading,
			Length:    cur.Length * cfg.LengthDecay,
			Remaining: cur.Remaining - 1,
			Width:     cur.Width * cfg.WidthDecay,
		}

		// Each level negates the turn it was given, so which side is drawn first
		// alternates between levels. The second child is pushed first so the
		// first child's subtree is drawn before it.
		stack = append(stack,
			frame{State: child, angle: cur.angle, depth: cur.depth + 1},
			frame{State: child, angle: -cur.angle, depth: cur.depth + 1},
		)
	}
}
