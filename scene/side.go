package scene

import (
	"fmt"

	"github.com/npillmayer/lfdtrade"
	"github.com/npillmayer/lfdtrade/geometry"
	"github.com/npillmayer/lfdtrade/preset"
)

// Heights of the view distance call-out above the display, as multiples of
// the head radius: tick start, bracket, stub end, label.
var sideOffsets = [4]float64{1.25, 1.5, 1.75, 2}

// For Cinema the head radius is negligible; the call-out is placed at
// fractions of half the display height instead.
var cinemaSideOffsets = [4]float64{0.2, 0.3, 0.4, 0.5}

// BuildSide builds the side view of preset p: the viewer's head and body
// facing the display, and a bracket measuring the view distance.
//
// It fails with geometry.ErrUndefinedGeometry if view distance, display
// width or display height of p is NA.
func BuildSide(p preset.Preset) (Scene, error) {
	for _, v := range []float64{p.ViewDistance, p.DisplayWidth, p.DisplayHeight} {
		if !preset.Available(v) {
			err := fmt.Errorf("%w: side view of %s needs view distance and display size",
				geometry.ErrUndefinedGeometry, p.Key)
			tracer().Errorf("%v", err)
			return Scene{}, err
		}
	}
	d, h := p.ViewDistance, p.DisplayHeight
	head := lfdtrade.P(-d, p.DisplayWidth/2)
	hx, hy := head.F()
	b := newBuilder("Side View", geometry.AxisHalfExtent(p))

	b.circle(head, HeadRadius, ClassHead)
	b.thin(lfdtrade.P(hx, hy-HeadRadius), lfdtrade.P(hx, hy-HeadRadius-BodyHeight), ClassBody)
	b.line(lfdtrade.P(0, -h/2), lfdtrade.P(0, h/2), screenWeight, ClassDisplay)

	unit, offsets := float64(HeadRadius), sideOffsets
	if p.Key == preset.Cinema {
		unit, offsets = h/2, cinemaSideOffsets
	}
	base := h / 2
	y0, y1, y2 := base+offsets[0]*unit, base+offsets[1]*unit, base+offsets[2]*unit
	b.thin(lfdtrade.P(hx, y0), lfdtrade.P(hx, y1), ClassMeasurement)
	b.thin(lfdtrade.P(0, y0), lfdtrade.P(0, y1), ClassMeasurement)
	b.thin(lfdtrade.P(hx, y1), lfdtrade.P(0, y1), ClassMeasurement)
	b.thin(lfdtrade.P(hx/2, y1), lfdtrade.P(hx/2, y2), ClassMeasurement)
	b.label(lfdtrade.P(hx/2, base+offsets[3]*unit), ViewDistanceLabel, ClassMeasurement)
	return b.scene(), nil
}

// ComingSoon returns the placeholder scenes shown for presets whose
// geometry is undefined: an empty top view titled "Coming Soon!" and an
// empty, untitled side view, both with a zero view box.
func ComingSoon() (top, side Scene) {
	top = Scene{Title: "Coming Soon!", Width: CanvasSize, Height: CanvasSize}
	side = Scene{Width: CanvasSize, Height: CanvasSize}
	return
}
