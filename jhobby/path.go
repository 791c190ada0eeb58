package jhobby

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/npillmayer/lfdtrade"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'jhobby'
func tracer() tracing.Trace {
	return tracing.Select("jhobby")
}

const _epsilon = 0.0000001

var (
	// ErrNilPath indicates a nil path pointer.
	ErrNilPath = errors.New("path must not be nil")
	// ErrTooFewKnots indicates path knot count is insufficient for solving.
	ErrTooFewKnots = errors.New("path has too few knots")
	// ErrInvalidKnot indicates a knot coordinate contains NaN/Inf.
	ErrInvalidKnot = errors.New("path has invalid knot coordinate")
	// ErrDegenerateSegment indicates two consecutive knots collapse to one point.
	ErrDegenerateSegment = errors.New("path has degenerate segment")
	// ErrCycleHasDuplicateTerminalKnot indicates cyclic path redundantly repeats first knot as last knot.
	ErrCycleHasDuplicateTerminalKnot = errors.New("cycle path must not repeat first knot as terminal knot")
	// ErrTension indicates a tension below MetaFont's minimum of 3/4.
	ErrTension = errors.New("tension must be at least 3/4")
)

// Path is a skeleton path of knots. To construct a path, start with
// Nullpath(), which creates an empty path, and then extend it.
type Path struct {
	points  []lfdtrade.Pair
	cycle   bool
	tension float64
}

// Nullpath creates an empty open path with tension 1.
func Nullpath() *Path {
	return &Path{tension: 1}
}

// Through creates an open path through the given points.
func Through(points ...lfdtrade.Pair) *Path {
	path := Nullpath()
	path.points = append(path.points, points...)
	return path
}

// Knot appends a knot to the path.
func (path *Path) Knot(z lfdtrade.Pair) *Path {
	path.points = append(path.points, z)
	return path
}

// Tension sets the tension of all joins of the path.
func (path *Path) Tension(t float64) *Path {
	path.tension = t
	return path
}

// End finishes an open path.
func (path *Path) End() *Path {
	path.cycle = false
	return path
}

// Cycle closes the path. The last knot connects to the first one; it must
// not repeat it.
func (path *Path) Cycle() *Path {
	path.cycle = true
	return path
}

// N returns the number of knots.
func (path *Path) N() int {
	if path == nil {
		return 0
	}
	return len(path.points)
}

// IsCycle is true for closed paths.
func (path *Path) IsCycle() bool {
	return path.cycle
}

// Z returns knot i. For cyclic paths the index wraps around.
func (path *Path) Z(i int) lfdtrade.Pair {
	n := len(path.points)
	if path.cycle {
		i = ((i % n) + n) % n
	}
	return path.points[i]
}

// segments is the number of joins between knots.
func (path *Path) segments() int {
	if path.cycle {
		return path.N()
	}
	return path.N() - 1
}

func (path *Path) delta(i int) lfdtrade.Pair {
	return path.Z(i+1) - path.Z(i)
}

func (path *Path) d(i int) float64 {
	return path.Z(i).Dist(path.Z(i + 1))
}

// Turning angle at z.i. It is 0 at the end points of an open path.
func (path *Path) psi(i int) float64 {
	if !path.cycle && (i <= 0 || i >= path.N()-1) {
		return 0
	}
	return reduceAngle(angle(path.delta(i)) - angle(path.delta(i-1)))
}

// Validate checks if a path is solvable by Hobby interpolation.
func (path *Path) Validate() error {
	if path == nil {
		return ErrNilPath
	}
	n := path.N()
	if path.cycle {
		if n < 3 {
			return fmt.Errorf("%w: cycle needs at least 3 knots, got %d", ErrTooFewKnots, n)
		}
		if path.points[0].Dist(path.points[n-1]) <= _epsilon {
			return ErrCycleHasDuplicateTerminalKnot
		}
	} else if n < 2 {
		return fmt.Errorf("%w: open path needs at least 2 knots, got %d", ErrTooFewKnots, n)
	}
	for i, z := range path.points {
		if !z.IsValid() {
			return fmt.Errorf("%w at knot %d", ErrInvalidKnot, i)
		}
	}
	for i := 0; i < path.segments(); i++ {
		if path.d(i) <= _epsilon {
			return fmt.Errorf("%w between knots %d and %d", ErrDegenerateSegment, i, (i+1)%n)
		}
	}
	if math.IsNaN(path.tension) || path.tension < 0.75 {
		return fmt.Errorf("%w, got %g", ErrTension, path.tension)
	}
	return nil
}

// AsString returns a path as a (debugging) string, with the knot
// coordinates in one line.
func AsString(path *Path) string {
	var b strings.Builder
	for i := 0; i < path.N(); i++ {
		if i > 0 {
			b.WriteString(" .. ")
		}
		b.WriteString(ptstring(path.Z(i), false))
	}
	if path.IsCycle() {
		b.WriteString(" .. cycle")
	}
	return b.String()
}

func ptstring(p lfdtrade.Pair, iscontrol bool) string {
	if !p.IsValid() {
		return "(<unknown>)"
	}
	if iscontrol {
		return fmt.Sprintf("(%.4f,%.4f)", round(p.X()), round(p.Y()))
	}
	return fmt.Sprintf("(%.4g,%.4g)", round(p.X()), round(p.Y()))
}

func round(x float64) float64 {
	return lfdtrade.Zap(math.Round(x*10000.0) / 10000.0)
}
