package scene

import (
	"math"

	"github.com/npillmayer/lfdtrade"
	"github.com/npillmayer/lfdtrade/geometry"
	"github.com/npillmayer/lfdtrade/preset"
)

// Dimensions of the viewer figure, in millimeters.
const (
	HeadRadius = 90   // average human head
	BodyHeight = 1646 // average human body height
)

// Stroke weights.
const (
	thinWeight   = 1
	screenWeight = 3
)

// Label texts.
const (
	Theta              = "θ"
	PixelPitchLabel    = "Pixel Pitch"
	HogelDiameterLabel = "Diameter of Hogel"
	ViewDistanceLabel  = "View Distance"
)

// BuildTop builds the top view of preset p from its derived geometry g:
// the viewer's head looking at the screen, the viewing-angle rays and arc,
// and one hogel circle magnified to the right of the screen, with a raster of
// pixels inside and call-outs for pixel pitch and hogel diameter.
//
// The viewer sits on the left at x = −view distance, the hogel circle on the
// right at x = +view distance. The screen runs along the y-axis from 0 to the
// display width.
func BuildTop(p preset.Preset, g geometry.Geometry) Scene {
	d, w := p.ViewDistance, p.DisplayWidth
	r := g.HogelCircleRadius
	hx, hy := g.Hogel.F()
	b := newBuilder("Top View", g.AxisHalfExtent)

	b.circle(g.Head, HeadRadius, ClassHead)
	b.circle(g.Hogel, r, ClassHogel)
	b.line(lfdtrade.P(0, 0), lfdtrade.P(0, w), screenWeight, ClassScreen)

	// viewing angle
	theta := p.HalfViewAngle
	b.thin(g.ScreenMid, lfdtrade.P(-d, d*math.Tan(theta)+w/2), ClassRay)
	b.thin(g.ScreenMid, lfdtrade.P(-d, d*math.Tan(-theta)+w/2), ClassRay)
	drawn := g.DrawnArc()
	arc := make([]lfdtrade.Pair, len(drawn))
	for i, s := range drawn {
		arc[i] = s.XMirrored()
	}
	b.arc(arc, ClassAngle)
	b.label(g.ArcLabel.XMirrored(), Theta, ClassAngle)

	// lines from the screen to the magnified hogel
	origin := lfdtrade.P(0, 0.75*w)
	b.thin(origin, lfdtrade.P(hx-r/2, hy+math.Sqrt(3)*r/2), ClassCallout)
	b.thin(origin, lfdtrade.P(hx-r/2, hy-math.Sqrt(3)*r/2), ClassCallout)

	buildPixelPitchCallout(b, g)
	buildHogelDiameterCallout(b, g)

	// pixel raster
	for _, c := range g.VerticalChords {
		b.thin(c[0], c[1], ClassGridV)
	}
	for _, c := range g.HorizontalChords {
		b.thin(c[0], c[1], ClassGridH)
	}
	tracer().Debugf("top view of %s: %d grid lines per direction", p.Key, g.PixelGridLines)
	return b.scene()
}

// The pixel pitch bracket spans the first grid cell, above the hogel circle.
func buildPixelPitchCallout(b *builder, g geometry.Geometry) {
	r, step := g.HogelCircleRadius, g.PixelRadiusRatio
	left := g.Hogel.X() - r
	top := g.Hogel.Y() + r
	x1, x2, xm := left+step, left+2*step, left+1.5*step
	y0, y1, y2 := top+r/16, top+r/8, top+r/4
	b.thin(lfdtrade.P(x1, y0), lfdtrade.P(x1, y1), ClassMeasurement)
	b.thin(lfdtrade.P(x2, y0), lfdtrade.P(x2, y1), ClassMeasurement)
	b.thin(lfdtrade.P(x1, y1), lfdtrade.P(x2, y1), ClassMeasurement)
	b.thin(lfdtrade.P(xm, y1), lfdtrade.P(xm, y2), ClassMeasurement)
	b.label(lfdtrade.P(xm, g.Hogel.Y()+1.35*r), PixelPitchLabel, ClassMeasurement)
}

// The hogel diameter bracket spans the circle, below it.
func buildHogelDiameterCallout(b *builder, g geometry.Geometry) {
	r := g.HogelCircleRadius
	cx, cy := g.Hogel.F()
	bottom := cy - r
	y1, y2 := bottom-r/4, bottom-r/4-r/4
	b.thin(lfdtrade.P(cx-r, bottom), lfdtrade.P(cx-r, y1), ClassMeasurement)
	b.thin(lfdtrade.P(cx+r, bottom), lfdtrade.P(cx+r, y1), ClassMeasurement)
	b.thin(lfdtrade.P(cx-r, y1), lfdtrade.P(cx+r, y1), ClassMeasurement)
	b.thin(lfdtrade.P(cx, y1), lfdtrade.P(cx, y2), ClassMeasurement)
	b.label(lfdtrade.P(cx, cy-r-0.6*r), HogelDiameterLabel, ClassMeasurement)
}
