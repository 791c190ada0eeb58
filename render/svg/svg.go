/*
Package svg writes scenes as SVG documents.

Diagram coordinates have their y axis pointing up, SVG's y axis points
down; the renderer flips every y coordinate and sets the view box to the
scene's ranges. Strokes do not scale with the view box, so line weights
are in canvas pixels. Arcs are written as smooth cubic Bézier paths through
their sample points.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package svg

import (
	"bufio"
	"fmt"
	"html"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/npillmayer/lfdtrade"
	"github.com/npillmayer/lfdtrade/jhobby"
	"github.com/npillmayer/lfdtrade/scene"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'render'
func tracer() tracing.Trace {
	return tracing.Select("render")
}

// Font sizes in canvas pixels.
const (
	TitleFontSize = 16
	LabelFontSize = 13
)

// ContentType is the MIME type of the rendered documents.
const ContentType = "image/svg+xml"

// Render writes scene s as a standalone SVG document to w.
func Render(w io.Writer, s scene.Scene) error {
	bw := bufio.NewWriter(w)
	vb := viewBoxOf(s)
	fmt.Fprintf(bw, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="%s %s %s %s">`+"\n",
		vb.width, vb.height, num(vb.x), num(vb.y), num(vb.w), num(vb.h))
	fmt.Fprintf(bw, `<rect x="%s" y="%s" width="%s" height="%s" fill="white"/>`+"\n",
		num(vb.x), num(vb.y), num(vb.w), num(vb.h))
	if s.Title != "" {
		fmt.Fprintf(bw, `<text class="title" x="%s" y="%s" font-family="sans-serif" font-size="%s" text-anchor="middle">%s</text>`+"\n",
			num(vb.x+vb.w/2), num(vb.y+1.5*TitleFontSize*vb.unit), num(TitleFontSize*vb.unit), html.EscapeString(s.Title))
	}
	bw.WriteString(`<g fill="none" stroke="black" vector-effect="non-scaling-stroke">` + "\n")
	var labels []scene.TextLabel
	for _, p := range s.Primitives() {
		switch prim := p.(type) {
		case scene.Circle:
			fmt.Fprintf(bw, `<circle class="%s" cx="%s" cy="%s" r="%s" stroke-width="1" vector-effect="non-scaling-stroke"/>`+"\n",
				prim.Class, num(prim.Center.X()), num(-prim.Center.Y()), num(prim.Radius))
		case scene.LineSegment:
			fmt.Fprintf(bw, `<line class="%s" x1="%s" y1="%s" x2="%s" y2="%s" stroke-width="%s" vector-effect="non-scaling-stroke"/>`+"\n",
				prim.Class, num(prim.P0.X()), num(-prim.P0.Y()), num(prim.P1.X()), num(-prim.P1.Y()),
				num(prim.Weight))
		case scene.PolylineArc:
			if len(prim.Points) == 0 {
				continue
			}
			fmt.Fprintf(bw, `<path class="%s" d="%s" stroke-width="1" vector-effect="non-scaling-stroke"/>`+"\n",
				prim.Class, arcPath(prim.Points, prim.Closed))
		case scene.TextLabel:
			labels = append(labels, prim)
		}
	}
	bw.WriteString("</g>\n")
	if len(labels) > 0 {
		fmt.Fprintf(bw, `<g font-family="sans-serif" font-size="%s" text-anchor="middle" dominant-baseline="middle">`+"\n",
			num(LabelFontSize*vb.unit))
		for _, l := range labels {
			fmt.Fprintf(bw, `<text class="%s" x="%s" y="%s">%s</text>`+"\n",
				l.Class, num(l.Anchor.X()), num(-l.Anchor.Y()), html.EscapeString(l.Text))
		}
		bw.WriteString("</g>\n")
	}
	bw.WriteString("</svg>\n")
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing svg for %q: %w", s.Title, err)
	}
	tracer().Debugf("rendered svg %q with %d primitives", s.Title, s.Len())
	return nil
}

type viewBox struct {
	x, y, w, h    float64
	width, height int
	unit          float64 // diagram units per canvas pixel
}

// viewBoxOf flips the scene's y range. A scene with an empty view box, such
// as a placeholder, is drawn in canvas pixels.
func viewBoxOf(s scene.Scene) viewBox {
	width, height := s.Width, s.Height
	if width <= 0 || height <= 0 {
		width, height = scene.CanvasSize, scene.CanvasSize
	}
	vb := viewBox{
		x: s.XRange[0], y: -s.YRange[1],
		w: s.XRange[1] - s.XRange[0], h: s.YRange[1] - s.YRange[0],
		width: width, height: height,
	}
	if vb.w <= 0 || vb.h <= 0 {
		vb.x, vb.y, vb.w, vb.h = 0, 0, float64(width), float64(height)
	}
	vb.unit = vb.w / float64(width)
	return vb
}

// arcPath returns SVG path data for a smooth curve through pts. If the
// points do not make a solvable spline it falls back to straight segments.
func arcPath(pts []lfdtrade.Pair, closed bool) string {
	path := jhobby.Through(pts...)
	if closed {
		path.Cycle()
	}
	spline, err := jhobby.FindHobbyControls(path)
	var b strings.Builder
	if err != nil {
		tracer().Debugf("arc of %d points drawn as polyline: %v", len(pts), err)
		for i, p := range pts {
			if i == 0 {
				b.WriteString("M")
			} else {
				b.WriteString(" L")
			}
			fmt.Fprintf(&b, "%s %s", num(p.X()), num(-p.Y()))
		}
	} else {
		fmt.Fprintf(&b, "M%s %s", num(pts[0].X()), num(-pts[0].Y()))
		for _, seg := range spline.Segments() {
			fmt.Fprintf(&b, " C%s %s %s %s %s %s",
				num(seg.C0.X()), num(-seg.C0.Y()),
				num(seg.C1.X()), num(-seg.C1.Y()),
				num(seg.P1.X()), num(-seg.P1.Y()))
		}
	}
	if closed {
		b.WriteString(" Z")
	}
	return b.String()
}

// num formats a coordinate with at most 3 decimals.
func num(f float64) string {
	v := math.Round(f*1000) / 1000
	if v == 0 {
		v = 0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
