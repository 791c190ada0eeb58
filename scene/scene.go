/*
Package scene builds the drawable top view and side view diagrams of a display
preset.

A Scene is an ordered list of primitives (circles, line segments, polyline
arcs and text labels) together with a square view box and a title. The order
of primitives is the drawing order. Scenes are values: builders return a new
scene for every call and a scene's primitives cannot be altered afterwards.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package scene

import (
	"fmt"
	"strings"

	"github.com/npillmayer/lfdtrade"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'scene'
func tracer() tracing.Trace {
	return tracing.Select("scene")
}

// Primitive is one of Circle, LineSegment, PolylineArc or TextLabel.
type Primitive interface {
	Bounds() (min, max lfdtrade.Pair)
	String() string
	isPrimitive()
}

// Primitive classes, for styling and for inspection by clients.
const (
	ClassHead        = "head"
	ClassHogel       = "hogel"
	ClassScreen      = "screen"
	ClassRay         = "ray"
	ClassAngle       = "angle"
	ClassCallout     = "callout"
	ClassGridV       = "grid-v"
	ClassGridH       = "grid-h"
	ClassBody        = "body"
	ClassDisplay     = "display"
	ClassMeasurement = "measurement"
)

// Circle is a circle outline.
type Circle struct {
	Center lfdtrade.Pair
	Radius float64
	Class  string
}

// LineSegment is a straight line. Weight is the stroke width in canvas pixels.
type LineSegment struct {
	P0, P1 lfdtrade.Pair
	Weight float64
	Class  string
}

// PolylineArc is a sequence of points to be connected in order.
type PolylineArc struct {
	Points []lfdtrade.Pair
	Closed bool
	Class  string
}

// TextLabel is a text, centered at Anchor.
type TextLabel struct {
	Anchor lfdtrade.Pair
	Text   string
	Class  string
}

func (Circle) isPrimitive()      {}
func (LineSegment) isPrimitive() {}
func (PolylineArc) isPrimitive() {}
func (TextLabel) isPrimitive()   {}

// Bounds returns the bounding box of c.
func (c Circle) Bounds() (lfdtrade.Pair, lfdtrade.Pair) {
	r := lfdtrade.P(c.Radius, c.Radius)
	return c.Center - r, c.Center + r
}

// Bounds returns the bounding box of l.
func (l LineSegment) Bounds() (lfdtrade.Pair, lfdtrade.Pair) {
	return bbox([]lfdtrade.Pair{l.P0, l.P1})
}

// Bounds returns the bounding box of the arc's points.
func (a PolylineArc) Bounds() (lfdtrade.Pair, lfdtrade.Pair) {
	return bbox(a.Points)
}

// Bounds returns the anchor of t; text extent depends on the renderer.
func (t TextLabel) Bounds() (lfdtrade.Pair, lfdtrade.Pair) {
	return t.Anchor, t.Anchor
}

func (c Circle) String() string {
	return fmt.Sprintf("circle %s r=%g", c.Center, c.Radius)
}

func (l LineSegment) String() string {
	return fmt.Sprintf("line %s -- %s", l.P0, l.P1)
}

func (a PolylineArc) String() string {
	if len(a.Points) == 0 {
		return "arc <empty>"
	}
	return fmt.Sprintf("arc %s .. %s (%d points)", a.Points[0], a.Points[len(a.Points)-1], len(a.Points))
}

func (t TextLabel) String() string {
	return fmt.Sprintf("label %q at %s", t.Text, t.Anchor)
}

func bbox(pts []lfdtrade.Pair) (lfdtrade.Pair, lfdtrade.Pair) {
	if len(pts) == 0 {
		return lfdtrade.Origin, lfdtrade.Origin
	}
	minx, miny := pts[0].F()
	maxx, maxy := minx, miny
	for _, p := range pts[1:] {
		x, y := p.F()
		minx, maxx = min(minx, x), max(maxx, x)
		miny, maxy = min(miny, y), max(maxy, y)
	}
	return lfdtrade.P(minx, miny), lfdtrade.P(maxx, maxy)
}

// Scene is an immutable diagram.
type Scene struct {
	Title      string
	XRange     [2]float64 // view box, diagram units
	YRange     [2]float64
	Width      int // suggested canvas size in pixels
	Height     int
	primitives []Primitive
}

// CanvasSize is the suggested edge length of a rendered diagram, in pixels.
const CanvasSize = 600

// Primitives returns the scene's primitives in drawing order.
// The returned slice is a copy. Arc points are shared and must not be
// modified.
func (s Scene) Primitives() []Primitive {
	prims := make([]Primitive, len(s.primitives))
	copy(prims, s.primitives)
	return prims
}

// Len is the number of primitives.
func (s Scene) Len() int {
	return len(s.primitives)
}

// IsEmpty is true for a scene without primitives, such as a placeholder.
func (s Scene) IsEmpty() bool {
	return len(s.primitives) == 0
}

// Count returns the number of primitives of a given class.
func (s Scene) Count(class string) int {
	n := 0
	for _, p := range s.primitives {
		if ClassOf(p) == class {
			n++
		}
	}
	return n
}

// Lines returns all line segments of a given class, in drawing order.
func (s Scene) Lines(class string) []LineSegment {
	var lines []LineSegment
	for _, p := range s.primitives {
		if l, ok := p.(LineSegment); ok && l.Class == class {
			lines = append(lines, l)
		}
	}
	return lines
}

// Labels returns the texts of all labels.
func (s Scene) Labels() []string {
	var texts []string
	for _, p := range s.primitives {
		if t, ok := p.(TextLabel); ok {
			texts = append(texts, t.Text)
		}
	}
	return texts
}

// ClassOf returns the style class of a primitive.
func ClassOf(p Primitive) string {
	switch prim := p.(type) {
	case Circle:
		return prim.Class
	case LineSegment:
		return prim.Class
	case PolylineArc:
		return prim.Class
	case TextLabel:
		return prim.Class
	}
	return ""
}

// AsString returns a scene as a (debugging) string, one primitive per line.
func AsString(s Scene) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%q [%g,%g]x[%g,%g]\n", s.Title, s.XRange[0], s.XRange[1], s.YRange[0], s.YRange[1])
	for i, p := range s.primitives {
		fmt.Fprintf(&b, "%3d %s\n", i, p)
	}
	return b.String()
}

// --- Builder ---------------------------------------------------------------

type builder struct {
	title string
	half  float64
	prims []Primitive
}

func newBuilder(title string, halfExtent float64) *builder {
	return &builder{title: title, half: halfExtent}
}

func (b *builder) circle(center lfdtrade.Pair, r float64, class string) *builder {
	b.prims = append(b.prims, Circle{Center: center, Radius: r, Class: class})
	return b
}

func (b *builder) line(p0, p1 lfdtrade.Pair, weight float64, class string) *builder {
	b.prims = append(b.prims, LineSegment{P0: p0, P1: p1, Weight: weight, Class: class})
	return b
}

func (b *builder) thin(p0, p1 lfdtrade.Pair, class string) *builder {
	return b.line(p0, p1, 1, class)
}

func (b *builder) arc(pts []lfdtrade.Pair, class string) *builder {
	pts = append([]lfdtrade.Pair(nil), pts...)
	b.prims = append(b.prims, PolylineArc{Points: pts, Class: class})
	return b
}

func (b *builder) label(at lfdtrade.Pair, text, class string) *builder {
	b.prims = append(b.prims, TextLabel{Anchor: at, Text: text, Class: class})
	return b
}

func (b *builder) scene() Scene {
	s := Scene{
		Title:      b.title,
		XRange:     [2]float64{-b.half, b.half},
		YRange:     [2]float64{-b.half, b.half},
		Width:      CanvasSize,
		Height:     CanvasSize,
		primitives: b.prims,
	}
	tracer().Infof("built scene %q with %d primitives", s.Title, len(s.primitives))
	return s
}
