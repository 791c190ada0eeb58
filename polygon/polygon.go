/*
Package polygon provides closed polygons and boolean operations on them.

Polygons consist of one or more closed contours. Boolean operations are
delegated to github.com/akavel/polyclip-go. The raster renderer uses them
to turn circle outlines into ring shaped areas clipped to the view box.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package polygon

import (
	"fmt"
	"math"
	"strings"

	polyclip "github.com/akavel/polyclip-go"
	"github.com/npillmayer/lfdtrade"
	"github.com/npillmayer/schuko/tracing"
)

// L writes to trace with key 'polygon'
func L() tracing.Trace {
	return tracing.Select("polygon")
}

// MinCircleSegments is the fewest number of edges used to approximate a
// circle.
const MinCircleSegments = 8

// Polygon is a set of closed contours. To construct a polygon, start with
// NullPolygon() and add knots. Cycle() closes the current contour.
type Polygon struct {
	contours polyclip.Polygon
	open     polyclip.Contour // contour under construction
}

// NullPolygon creates an empty polygon.
func NullPolygon() *Polygon {
	return &Polygon{}
}

// Knot appends a vertex to the contour under construction.
func (pg *Polygon) Knot(p lfdtrade.Pair) *Polygon {
	pg.open.Add(polyclip.Point{X: p.X(), Y: p.Y()})
	return pg
}

// Cycle closes the contour under construction. Contours with fewer than 3
// vertices are dropped.
func (pg *Polygon) Cycle() *Polygon {
	if len(pg.open) >= 3 {
		pg.contours.Add(pg.open)
	} else if len(pg.open) > 0 {
		L().Debugf("dropping degenerate contour with %d vertices", len(pg.open))
	}
	pg.open = nil
	return pg
}

// N returns the total number of vertices of all closed contours.
func (pg *Polygon) N() int {
	n := 0
	for _, c := range pg.contours {
		n += len(c)
	}
	return n
}

// IsEmpty is true if the polygon has no closed contour.
func (pg *Polygon) IsEmpty() bool {
	return len(pg.contours) == 0
}

// Contours returns the vertices of each contour.
func (pg *Polygon) Contours() [][]lfdtrade.Pair {
	cs := make([][]lfdtrade.Pair, len(pg.contours))
	for i, c := range pg.contours {
		cs[i] = make([]lfdtrade.Pair, len(c))
		for j, p := range c {
			cs[i][j] = lfdtrade.P(p.X, p.Y)
		}
	}
	return cs
}

// Bounds returns the lower left and upper right corner of the bounding box.
func (pg *Polygon) Bounds() (lfdtrade.Pair, lfdtrade.Pair) {
	if pg.IsEmpty() {
		return lfdtrade.Origin, lfdtrade.Origin
	}
	r := pg.contours.BoundingBox()
	return lfdtrade.P(r.Min.X, r.Min.Y), lfdtrade.P(r.Max.X, r.Max.Y)
}

// Box creates a rectangle from two opposite corners.
func Box(p1, p2 lfdtrade.Pair) *Polygon {
	x0, x1 := math.Min(p1.X(), p2.X()), math.Max(p1.X(), p2.X())
	y0, y1 := math.Min(p1.Y(), p2.Y()), math.Max(p1.Y(), p2.Y())
	return NullPolygon().Knot(lfdtrade.P(x0, y0)).Knot(lfdtrade.P(x1, y0)).
		Knot(lfdtrade.P(x1, y1)).Knot(lfdtrade.P(x0, y1)).Cycle()
}

// Circle approximates a circle by a regular polygon with n vertices, in
// counter-clockwise order.
func Circle(center lfdtrade.Pair, r float64, n int) *Polygon {
	if n < MinCircleSegments {
		n = MinCircleSegments
	}
	pg := NullPolygon()
	for i := 0; i < n; i++ {
		phi := 2 * math.Pi * float64(i) / float64(n)
		sin, cos := math.Sincos(phi)
		pg.Knot(center + lfdtrade.P(r*cos, r*sin))
	}
	return pg.Cycle()
}

// Ring is the area between two concentric circles of radius r ± width/2.
func Ring(center lfdtrade.Pair, r, width float64, n int) *Polygon {
	outer := Circle(center, r+width/2, n)
	if r-width/2 <= 0 {
		return outer
	}
	return outer.Difference(Circle(center, r-width/2, n))
}

// Intersect returns the intersection of pg and clip.
func (pg *Polygon) Intersect(clip *Polygon) *Polygon {
	return pg.construct(polyclip.INTERSECTION, clip)
}

// Difference returns pg with other cut out.
func (pg *Polygon) Difference(other *Polygon) *Polygon {
	return pg.construct(polyclip.DIFFERENCE, other)
}

func (pg *Polygon) construct(op polyclip.Op, other *Polygon) *Polygon {
	result := &Polygon{contours: pg.contours.Construct(op, other.contours)}
	L().Debugf("boolean op %d: %d x %d vertices -> %d", op, pg.N(), other.N(), result.N())
	return result
}

// Oriented returns the contours with outer contours in counter-clockwise
// and holes in clockwise order, as needed for non-zero winding fills.
// A contour is a hole if it lies inside an odd number of other contours.
func (pg *Polygon) Oriented() [][]lfdtrade.Pair {
	cs := pg.Contours()
	for i, c := range cs {
		depth := 0
		for j, other := range pg.contours {
			if i != j && other.Contains(pg.contours[i][0]) {
				depth++
			}
		}
		ccw := SignedArea(c) > 0
		if ccw == (depth%2 == 1) {
			reverse(c)
		}
	}
	return cs
}

// SignedArea returns the area enclosed by a contour, positive for
// counter-clockwise order.
func SignedArea(c []lfdtrade.Pair) float64 {
	var a float64
	for i := range c {
		p, q := c[i], c[(i+1)%len(c)]
		a += p.X()*q.Y() - q.X()*p.Y()
	}
	return a / 2
}

func reverse(c []lfdtrade.Pair) {
	for i, j := 0, len(c)-1; i < j; i, j = i+1, j-1 {
		c[i], c[j] = c[j], c[i]
	}
}

// AsString returns a polygon as a debugging string, one contour per line.
func AsString(pg *Polygon) string {
	var b strings.Builder
	for i, c := range pg.contours {
		if i > 0 {
			b.WriteString("\n")
		}
		for _, p := range c {
			fmt.Fprintf(&b, "(%.4g,%.4g) -- ", p.X, p.Y)
		}
		b.WriteString("cycle")
	}
	return b.String()
}
