package jhobby

import (
	"fmt"
	"math"
	"math/cmplx"
	"strings"

	"github.com/npillmayer/lfdtrade"
)

// Bezier is a cubic Bézier segment from P0 to P1 with control points C0
// and C1.
type Bezier struct {
	P0, C0, C1, P1 lfdtrade.Pair
}

// At evaluates the segment at time t in [0,1].
func (b Bezier) At(t float64) lfdtrade.Pair {
	s := 1 - t
	return b.P0.Scaled(s*s*s) + b.C0.Scaled(3*s*s*t) + b.C1.Scaled(3*s*t*t) + b.P1.Scaled(t*t*t)
}

// Spline is a path together with its calculated control points.
type Spline struct {
	path  *Path
	prec  []lfdtrade.Pair // control point i-
	postc []lfdtrade.Pair // control point i+
}

// Path returns the skeleton path of the spline.
func (sp *Spline) Path() *Path {
	return sp.path
}

// PreControl returns the control point before knot i.
func (sp *Spline) PreControl(i int) lfdtrade.Pair {
	return sp.prec[sp.index(i)]
}

// PostControl returns the control point after knot i.
func (sp *Spline) PostControl(i int) lfdtrade.Pair {
	return sp.postc[sp.index(i)]
}

func (sp *Spline) index(i int) int {
	n := sp.path.N()
	return ((i % n) + n) % n
}

// Segments returns the Bézier segments of the spline, in path order.
func (sp *Spline) Segments() []Bezier {
	segs := make([]Bezier, sp.path.segments())
	for i := range segs {
		segs[i] = Bezier{
			P0: sp.path.Z(i),
			C0: sp.PostControl(i),
			C1: sp.PreControl(i + 1),
			P1: sp.path.Z(i + 1),
		}
	}
	return segs
}

// String returns the spline in MetaFont-like notation, including control
// points. Example, a circle of diameter 1 around (2,1):
//
//	(1,1) .. controls (1.0000,1.5523) and (1.4477,2.0000)
//	  .. (2,2) .. controls (2.5523,2.0000) and (3.0000,1.5523)
//	  .. (3,1) .. controls (3.0000,0.4477) and (2.5523,0.0000)
//	  .. (2,0) .. controls (1.4477,0.0000) and (1.0000,0.4477)
//	  .. cycle
func (sp *Spline) String() string {
	var b strings.Builder
	path := sp.path
	for i := 0; i < path.N(); i++ {
		if i > 0 {
			fmt.Fprintf(&b, " and %s\n  .. ", ptstring(sp.PreControl(i), true))
		}
		b.WriteString(ptstring(path.Z(i), false))
		if i < path.N()-1 || path.IsCycle() {
			fmt.Fprintf(&b, " .. controls %s", ptstring(sp.PostControl(i), true))
		}
	}
	if path.IsCycle() {
		fmt.Fprintf(&b, " and %s\n  .. cycle", ptstring(sp.PreControl(0), true))
	}
	return b.String()
}

// FindHobbyControls finds the Hobby-spline control points for a given
// skeleton path. It validates the path and returns an error for
// empty or invalid geometry.
func FindHobbyControls(path *Path) (*Spline, error) {
	if err := path.Validate(); err != nil {
		return nil, err
	}
	n := path.segments()
	theta := make([]float64, n+2)
	u := make([]float64, n+2)
	v := make([]float64, n+2)
	if path.IsCycle() {
		solveCyclePath(path, theta, u, v, make([]float64, n+2))
	} else {
		solveOpenPath(path, theta, u, v)
	}
	sp := &Spline{
		path:  path,
		prec:  make([]lfdtrade.Pair, path.N()),
		postc: make([]lfdtrade.Pair, path.N()),
	}
	setControls(sp, theta)
	tracer().Debugf("smooth path = %s", sp)
	return sp, nil
}

// Open paths have curl 1 at both ends. The first and last rows of the
// equation system are MetaFont's curl equations.
func solveOpenPath(path *Path, theta, u, v []float64) {
	n := path.segments()
	if n == 1 {
		// two knots with curl ends: a straight line
		return
	}
	a, b := recip(path.tension), recip(path.tension)
	c := square(a) / square(b)
	u[0] = ((3-a)*c + b) / (a*c + 3 - b)
	v[0] = -u[0] * path.psi(1)
	for i := 1; i < n; i++ {
		buildEq(path, i, u, v, nil)
	}
	c = square(b) / square(a)
	un := (b*c + 3 - a) / ((3-b)*c + a)
	theta[n] = v[n-1] / (u[n-1] - un)
	for i := n - 1; i >= 0; i-- {
		theta[i] = v[i] - u[i]*theta[i+1]
	}
}

// For cycles, row i expresses theta.i in terms of theta.(i+1) and theta.0.
func solveCyclePath(path *Path, theta, u, v, w []float64) {
	n := path.segments()
	u[0], v[0], w[0] = 0, 0, 1
	for i := 1; i <= n; i++ {
		buildEq(path, i, u, v, w)
	}
	var aa, bb float64 = 0, 1 // theta.n = aa + bb * theta.0
	for i := n - 1; i > 0; i-- {
		aa = v[i] - aa*u[i]
		bb = w[i] - bb*u[i]
	}
	aa = v[n] - aa*u[n]
	bb = w[n] - bb*u[n]
	t0 := aa / (1 - bb)
	theta[0], theta[n] = t0, t0
	for i := 1; i < n; i++ {
		v[i] += w[i] * t0
	}
	for i := n - 1; i > 0; i-- {
		theta[i] = v[i] - u[i]*theta[i+1]
	}
}

// buildEq sets up row i of the tridiagonal system for the angles theta.
func buildEq(path *Path, i int, u, v, w []float64) {
	a0, a1 := recip(path.tension), recip(path.tension)
	b1, b2 := recip(path.tension), recip(path.tension)
	A := a0 / (square(b1) * path.d(i-1))
	B := (3 - a0) / (square(b1) * path.d(i-1))
	C := (3 - b2) / (square(a1) * path.d(i))
	D := b2 / (square(a1) * path.d(i))
	t := B - u[i-1]*A + C
	u[i] = D / t
	v[i] = (-B*path.psi(i) - D*path.psi(i+1) - A*v[i-1]) / t
	if w != nil {
		w[i] = -A * w[i-1] / t
	}
}

func setControls(sp *Spline, theta []float64) {
	path := sp.path
	a, b := recip(path.tension), recip(path.tension)
	for i := 0; i < path.segments(); i++ {
		phi := -path.psi(i+1) - theta[i+1]
		p2, p3 := controlPoints(phi, theta[i], a, b, path.delta(i))
		sp.postc[sp.index(i)] = path.Z(i) + p2
		sp.prec[sp.index(i+1)] = path.Z(i+1) - p3
	}
}

func hobbyParamsAlphaBeta(theta, phi float64) (float64, float64) {
	constA := 1.41421356     // sqrt(2) -- empiric constants, as explained by J.Hobby
	constB := 0.0625         // 1/16
	constC := 0.38196601125  // (3 - sqrt(5)) / 2
	constCC := 0.61803398875 // 1 - c
	st, ct := math.Sincos(theta) // out-angle
	sf, cf := math.Sincos(phi)   // in-angle
	alpha := constA * (st - constB*sf) * (sf - constB*st) * (ct - cf)
	beta := 1 + constCC*ct + constC*cf
	return alpha, beta
}

// Calculate offsets of the control points between z.i and z.(i+1) from
// their knots.
func controlPoints(phi, theta, a, b float64, dvec lfdtrade.Pair) (lfdtrade.Pair, lfdtrade.Pair) {
	alpha, beta := hobbyParamsAlphaBeta(theta, phi)
	rho := (2 + alpha) / beta
	sigma := (2 - alpha) / beta
	uv1 := dvec * lfdtrade.Pair(cmplx.Rect(1, theta))
	uv2 := dvec * lfdtrade.Pair(cmplx.Rect(1, -phi))
	return uv1.Scaled(a / 3 * rho), uv2.Scaled(b / 3 * sigma)
}

func angle(pr lfdtrade.Pair) float64 {
	if !pr.IsValid() {
		return 0.0
	}
	return cmplx.Phase(pr.C())
}

// Reduce an angle to fit into -pi .. pi.
func reduceAngle(a float64) float64 {
	if math.Abs(a) > math.Pi {
		if a > 0 {
			a -= 2 * math.Pi
		} else {
			a += 2 * math.Pi
		}
	}
	return a
}

// Return 1/a for a.
func recip(a float64) float64 {
	if math.IsNaN(a) {
		return 1.0
	}
	return 1.0 / a
}

func square(a float64) float64 {
	return a * a
}

func rad2deg(a float64) float64 {
	return a * 180 / math.Pi
}
