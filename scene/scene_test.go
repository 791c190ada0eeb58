package scene

import (
	"errors"
	"math"
	"testing"

	"github.com/npillmayer/lfdtrade"
	"github.com/npillmayer/lfdtrade/geometry"
	"github.com/npillmayer/lfdtrade/preset"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func topView(t *testing.T, k preset.Key) (preset.Preset, geometry.Geometry, Scene) {
	t.Helper()
	p, err := preset.Lookup(k)
	require.NoError(t, err)
	g, err := geometry.Derive(p)
	require.NoError(t, err)
	return p, g, BuildTop(p, g)
}

// topFixedPrimitives counts the top view primitives drawn before the pixel
// grid: head and hogel circles, screen, 2 rays, arc, θ label, 2 call-out
// lines and the two measurement brackets with 4 lines and a label each.
const topFixedPrimitives = 2 + 1 + 2 + 1 + 1 + 2 + 5 + 5

func TestTopViewLayout(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	p, g, s := topView(t, preset.Tablet)
	t.Logf("\n%s", AsString(s))
	assert.Equal(t, "Top View", s.Title)
	assert.Equal(t, [2]float64{-675, 675}, s.XRange)
	assert.Equal(t, s.XRange, s.YRange)
	assert.Equal(t, 19, topFixedPrimitives)
	assert.Equal(t, topFixedPrimitives+2*g.PixelGridLines, s.Len())
	assert.Len(t, s.Lines(ClassMeasurement), 8)
	assert.Len(t, s.Lines(ClassCallout), 2)
	prims := s.Primitives()
	assert.Equal(t, Circle{Center: lfdtrade.P(-450, 106.7/2), Radius: HeadRadius, Class: ClassHead}, prims[0])
	assert.Equal(t, Circle{Center: lfdtrade.P(450, 106.7/2), Radius: 168.75, Class: ClassHogel}, prims[1])
	screen := prims[2].(LineSegment)
	assert.Equal(t, lfdtrade.P(0, 0), screen.P0)
	assert.Equal(t, lfdtrade.P(0, p.DisplayWidth), screen.P1)
	assert.Equal(t, 3.0, screen.Weight)
	assert.Equal(t, []string{Theta, PixelPitchLabel, HogelDiameterLabel}, s.Labels())
}

func TestTopViewRays(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	p, _, s := topView(t, preset.Desktop)
	rays := s.Lines(ClassRay)
	require.Len(t, rays, 2)
	d, w, theta := p.ViewDistance, p.DisplayWidth, p.HalfViewAngle
	assert.Equal(t, lfdtrade.P(0, w/2), rays[0].P0)
	assert.Equal(t, lfdtrade.P(-d, d*math.Tan(theta)+w/2), rays[0].P1)
	assert.Equal(t, lfdtrade.P(-d, d*math.Tan(-theta)+w/2), rays[1].P1)
}

func TestTopViewArcIsMirrored(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	for _, k := range []preset.Key{preset.Tablet, preset.Cinema} {
		_, g, s := topView(t, k)
		var arc PolylineArc
		for _, p := range s.Primitives() {
			if a, ok := p.(PolylineArc); ok {
				arc = a
			}
		}
		drawn := g.DrawnArc()
		require.Len(t, arc.Points, len(drawn), k.String())
		for i, pt := range arc.Points {
			assert.Equal(t, -drawn[i].X(), pt.X())
			assert.Equal(t, drawn[i].Y(), pt.Y())
		}
	}
}

func TestTopViewCallouts(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	p, g, s := topView(t, preset.HomeCinema)
	r := g.HogelCircleRadius
	callouts := s.Lines(ClassCallout)
	require.Len(t, callouts, 2)
	assert.Equal(t, lfdtrade.P(0, 0.75*p.DisplayWidth), callouts[0].P0)
	assert.Equal(t, lfdtrade.P(g.Hogel.X()-r/2, g.Hogel.Y()+math.Sqrt(3)*r/2), callouts[0].P1)
	assert.Equal(t, lfdtrade.P(g.Hogel.X()-r/2, g.Hogel.Y()-math.Sqrt(3)*r/2), callouts[1].P1)
	// both call-out targets lie on the circle, at ±60° from the left
	for _, c := range callouts {
		assert.InDelta(t, r, c.P1.Dist(g.Hogel), 1e-9*r)
	}
	m := s.Lines(ClassMeasurement)
	require.Len(t, m, 8)
	left := g.Hogel.X() - r
	assert.Equal(t, left+g.PixelRadiusRatio, m[0].P0.X())
	assert.Equal(t, left+2*g.PixelRadiusRatio, m[1].P0.X())
	assert.Equal(t, g.Hogel.X()-r, m[4].P0.X())
	assert.Equal(t, g.Hogel.X()+r, m[5].P0.X())
}

func TestPixelGridChordCount(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	for _, k := range []preset.Key{preset.Tablet, preset.Desktop, preset.HomeCinema, preset.Cinema} {
		_, g, s := topView(t, k)
		assert.Equal(t, g.PixelGridLines, s.Count(ClassGridV), k.String())
		assert.Equal(t, g.PixelGridLines, s.Count(ClassGridH), k.String())
		for _, l := range s.Lines(ClassGridV) {
			assert.Equal(t, l.P0.X(), l.P1.X())
		}
		for _, l := range s.Lines(ClassGridH) {
			assert.Equal(t, l.P0.Y(), l.P1.Y())
		}
	}
}

func TestBuildTopIsIdempotent(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	_, _, s1 := topView(t, preset.Desktop)
	_, _, s2 := topView(t, preset.Desktop)
	assert.Equal(t, s1.Primitives(), s2.Primitives())
}

func TestPrimitivesAreCopied(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	_, _, s := topView(t, preset.Tablet)
	prims := s.Primitives()
	prims[0] = TextLabel{Text: "x"}
	assert.Equal(t, ClassHead, s.Primitives()[0].(Circle).Class)
}

func TestSideView(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	p, _ := preset.Lookup(preset.Tablet)
	s, err := BuildSide(p)
	require.NoError(t, err)
	t.Logf("\n%s", AsString(s))
	assert.Equal(t, "Side View", s.Title)
	assert.Equal(t, [2]float64{-675, 675}, s.XRange)
	require.Equal(t, 8, s.Len())
	prims := s.Primitives()
	head := prims[0].(Circle)
	assert.Equal(t, lfdtrade.P(-450, 106.7/2), head.Center)
	body := prims[1].(LineSegment)
	assert.Equal(t, head.Center.Y()-HeadRadius-BodyHeight, body.P1.Y())
	display := prims[2].(LineSegment)
	assert.Equal(t, lfdtrade.P(0, -30), display.P0)
	assert.Equal(t, lfdtrade.P(0, 30), display.P1)
	m := s.Lines(ClassMeasurement)
	require.Len(t, m, 4)
	assert.Equal(t, 30+1.25*HeadRadius, m[0].P0.Y())
	assert.Equal(t, 30+1.5*HeadRadius, m[2].P0.Y())
	assert.Equal(t, -225.0, m[3].P0.X())
	label := prims[7].(TextLabel)
	assert.Equal(t, lfdtrade.P(-225, 30+2*HeadRadius), label.Anchor)
	assert.Equal(t, ViewDistanceLabel, label.Text)
}

func TestCinemaSideView(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	p, _ := preset.Lookup(preset.Cinema)
	s, err := BuildSide(p)
	require.NoError(t, err)
	assert.Equal(t, [2]float64{-12192, 12192}, s.XRange)
	half := p.DisplayHeight / 2
	m := s.Lines(ClassMeasurement)
	require.Len(t, m, 4)
	assert.Equal(t, half+0.2*half, m[0].P0.Y())
	assert.Equal(t, half+0.3*half, m[0].P1.Y())
	assert.Equal(t, half+0.4*half, m[3].P1.Y())
}

func TestTableTopSideViewIsUndefined(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	p, _ := preset.Lookup(preset.TableTop)
	_, err := BuildSide(p)
	assert.True(t, errors.Is(err, geometry.ErrUndefinedGeometry))
}

func TestComingSoon(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	top, side := ComingSoon()
	assert.Equal(t, "Coming Soon!", top.Title)
	assert.True(t, top.IsEmpty())
	assert.True(t, side.IsEmpty())
	assert.Equal(t, "", side.Title)
	assert.Equal(t, [2]float64{0, 0}, top.XRange)
}

func TestBounds(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	lo, hi := Circle{Center: lfdtrade.P(1, 1), Radius: 1}.Bounds()
	assert.Equal(t, lfdtrade.P(0, 0), lo)
	assert.Equal(t, lfdtrade.P(2, 2), hi)
	lo, hi = PolylineArc{Points: []lfdtrade.Pair{lfdtrade.P(3, -1), lfdtrade.P(-2, 4)}}.Bounds()
	assert.Equal(t, lfdtrade.P(-2, -1), lo)
	assert.Equal(t, lfdtrade.P(3, 4), hi)
}
