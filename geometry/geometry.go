/*
Package geometry derives the secondary quantities of a display preset which
the diagrams are built from: the size of the illustrative hogel circle, the
spacing of the pixel grid drawn inside it, the extent of the view box, and
the samples of the viewing-angle arc.

Derivation is a pure function of a preset. Deriving twice from the same
preset yields identical results.

All formulas are chosen for visual parity of the diagrams, not for physical
scale: the hogel circle's diameter is 3/4 of the view distance, and the
pixel grid spacing is chosen so that the number of grid lines inside the
circle equals the number of pixels across a real hogel.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package geometry

import (
	"errors"
	"fmt"
	"math"

	"github.com/npillmayer/lfdtrade"
	"github.com/npillmayer/lfdtrade/preset"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'geometry'
func tracer() tracing.Trace {
	return tracing.Select("geometry")
}

// ErrUndefinedGeometry is returned if a preset lacks an input needed for a
// drawing, or if its inputs lead out of the domain of a formula.
var ErrUndefinedGeometry = errors.New("undefined geometry")

// Fixed parameters of the construction.
const (
	HogelCircleRatio = 0.75 // diameter of the hogel circle per view distance
	AxisExtentRatio  = 1.5  // view box half extent per view distance
	ArcSamples       = 50   // number of samples along the viewing-angle arc
	ArcLabelDivisor  = 16   // the arc label sits view distance/16 outside the arc
)

// Samples of the Cinema arc which are drawn, as a half-open index range.
// Cinema's view angle is wider than the arc's half circle; outside this range
// the samples leave the circle.
const (
	cinemaArcFrom = 18
	cinemaArcTo   = 33
)

// Segment is a straight line between two points.
type Segment [2]lfdtrade.Pair

// Geometry holds the derived quantities of a preset.
//
// The arc is sampled in the right half-plane, on a circle of radius
// ViewDistance/2 around ScreenMid. Builders mirror it to the viewer's side.
type Geometry struct {
	Key                 preset.Key
	HogelCircleDiameter float64
	HogelCircleRadius   float64
	PixelRadiusRatio    float64 // spacing of pixel grid lines
	PixelGridLines      int     // number of grid lines per direction
	AxisHalfExtent      float64
	Head                lfdtrade.Pair // center of the viewer's head
	Hogel               lfdtrade.Pair // center of the hogel circle
	ScreenMid           lfdtrade.Pair
	Arc                 []lfdtrade.Pair // all samples, in order of increasing y
	ArcFrom, ArcTo      int             // drawn samples: Arc[ArcFrom:ArcTo]
	ArcLabel            lfdtrade.Pair   // anchor for the angle glyph
	VerticalChords      []Segment       // pixel grid, bottom to top
	HorizontalChords    []Segment       // pixel grid, left to right
}

// DrawnArc returns the slice of arc samples which make up the drawn arc.
func (g Geometry) DrawnArc() []lfdtrade.Pair {
	return g.Arc[g.ArcFrom:g.ArcTo]
}

// Derive computes the geometry for preset p.
// It fails with ErrUndefinedGeometry if p's view distance, display width or
// half view angle is NA, or if the pixel parameters cannot produce a grid.
func Derive(p preset.Preset) (Geometry, error) {
	if err := checkInputs(p); err != nil {
		tracer().Errorf("cannot derive geometry for %s: %v", p.Key, err)
		return Geometry{}, err
	}
	d, w := p.ViewDistance, p.DisplayWidth
	g := Geometry{
		Key:                 p.Key,
		HogelCircleDiameter: d * HogelCircleRatio,
		AxisHalfExtent:      AxisHalfExtent(p),
		Head:                lfdtrade.P(-d, w/2),
		Hogel:               lfdtrade.P(d, w/2),
		ScreenMid:           lfdtrade.P(0, w/2),
	}
	g.HogelCircleRadius = g.HogelCircleDiameter / 2
	g.PixelRadiusRatio = g.HogelCircleDiameter * p.PixelPitch / p.HogelDiameter
	g.PixelGridLines = int(math.Floor(g.HogelCircleDiameter / g.PixelRadiusRatio))
	var err error
	if g.Arc, err = sampleArc(p); err != nil {
		return Geometry{}, err
	}
	g.ArcFrom, g.ArcTo = 1, len(g.Arc)
	if p.Key == preset.Cinema {
		g.ArcFrom, g.ArcTo = cinemaArcFrom, cinemaArcTo
	}
	mid := g.Arc[len(g.Arc)/2]
	g.ArcLabel = lfdtrade.P(mid.X()+d/ArcLabelDivisor, mid.Y())
	if err = g.layoutPixelGrid(); err != nil {
		return Geometry{}, err
	}
	tracer().Debugf("%s: hogel circle r=%g, %d grid lines %g apart, axis ±%g",
		p.Key, g.HogelCircleRadius, g.PixelGridLines, g.PixelRadiusRatio, g.AxisHalfExtent)
	return g, nil
}

// AxisHalfExtent returns the half edge length of the square view box for
// preset p. Cinema's view box is fitted to its display height, all others
// are 1.5 view distances wide to each side.
func AxisHalfExtent(p preset.Preset) float64 {
	if p.Key == preset.Cinema {
		return p.DisplayHeight
	}
	return p.ViewDistance * AxisExtentRatio
}

func checkInputs(p preset.Preset) error {
	required := []struct {
		name string
		v    float64
	}{
		{"view distance", p.ViewDistance},
		{"display width", p.DisplayWidth},
		{"half view angle", p.HalfViewAngle},
		{"pixel pitch", p.PixelPitch},
		{"hogel diameter", p.HogelDiameter},
	}
	for _, r := range required {
		if !preset.Available(r.v) {
			return fmt.Errorf("%w: %s of %s not available", ErrUndefinedGeometry, r.name, p.Key)
		}
	}
	if p.Key == preset.Cinema && !preset.Available(p.DisplayHeight) {
		return fmt.Errorf("%w: display height of %s not available", ErrUndefinedGeometry, p.Key)
	}
	if p.ViewDistance <= 0 || p.PixelPitch <= 0 || p.HogelDiameter <= 0 {
		return fmt.Errorf("%w: %s has non-positive view distance or pixel dimensions",
			ErrUndefinedGeometry, p.Key)
	}
	return nil
}

// layoutPixelGrid places PixelGridLines vertical and horizontal chords of the
// hogel circle. The first chord lies one grid spacing inside the circle's
// left (bottom) edge.
func (g *Geometry) layoutPixelGrid() error {
	n, r, step := g.PixelGridLines, g.HogelCircleRadius, g.PixelRadiusRatio
	cx, cy := g.Hogel.F()
	g.VerticalChords = make([]Segment, 0, n)
	g.HorizontalChords = make([]Segment, 0, n)
	x := step + (cx - r)
	for i := 0; i < n; i++ {
		h, err := Chord(r, math.Abs(cx-x))
		if err != nil {
			return fmt.Errorf("vertical grid line %d of %s: %w", i, g.Key, err)
		}
		g.VerticalChords = append(g.VerticalChords,
			Segment{lfdtrade.P(x, cy-h), lfdtrade.P(x, cy+h)})
		x += step
	}
	y := step + (cy - r)
	for i := 0; i < n; i++ {
		h, err := Chord(r, math.Abs(cy-y))
		if err != nil {
			return fmt.Errorf("horizontal grid line %d of %s: %w", i, g.Key, err)
		}
		g.HorizontalChords = append(g.HorizontalChords,
			Segment{lfdtrade.P(cx-h, y), lfdtrade.P(cx+h, y)})
		y += step
	}
	return nil
}

// Chord returns half the length of a chord at distance dist from the center
// of a circle with radius r, i.e. sqrt(r² − dist²).
// Operands slightly below zero, within ε relative to r², count as zero.
// Larger negative operands are an ErrUndefinedGeometry.
func Chord(r, dist float64) (float64, error) {
	return sqrtChecked(r*r - dist*dist, r*r)
}

func sqrtChecked(v, scale float64) (float64, error) {
	if v < 0 {
		if scale > 0 && lfdtrade.Is0(v/scale) {
			return 0, nil
		}
		return 0, fmt.Errorf("%w: square root of negative value %g", ErrUndefinedGeometry, v)
	}
	return math.Sqrt(v), nil
}
