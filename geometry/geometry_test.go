package geometry

import (
	"errors"
	"math"
	"testing"

	"github.com/npillmayer/lfdtrade"
	"github.com/npillmayer/lfdtrade/preset"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var drawable = []preset.Key{preset.Tablet, preset.Desktop, preset.HomeCinema, preset.Cinema}

func mustDerive(t *testing.T, k preset.Key) (preset.Preset, Geometry) {
	t.Helper()
	p, err := preset.Lookup(k)
	require.NoError(t, err)
	g, err := Derive(p)
	require.NoError(t, err, k.String())
	return p, g
}

func TestHogelCircleRadius(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	for _, k := range drawable {
		p, g := mustDerive(t, k)
		assert.Equal(t, 0.375*p.ViewDistance, g.HogelCircleRadius, k.String())
		assert.Equal(t, 0.75*p.ViewDistance, g.HogelCircleDiameter, k.String())
	}
}

func TestPixelGridLines(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	want := map[preset.Key]int{
		preset.Tablet:     2,
		preset.Desktop:    12,
		preset.HomeCinema: 17,
		preset.Cinema:     21,
	}
	for _, k := range drawable {
		p, g := mustDerive(t, k)
		ratio := g.HogelCircleDiameter * p.PixelPitch / p.HogelDiameter
		assert.Equal(t, ratio, g.PixelRadiusRatio, k.String())
		assert.Equal(t, int(math.Floor(g.HogelCircleDiameter/ratio)), g.PixelGridLines, k.String())
		assert.Equal(t, want[k], g.PixelGridLines, k.String())
		assert.Len(t, g.VerticalChords, g.PixelGridLines)
		assert.Len(t, g.HorizontalChords, g.PixelGridLines)
	}
}

func TestChordsStayOnCircle(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	for _, k := range drawable {
		_, g := mustDerive(t, k)
		r := g.HogelCircleRadius
		for _, c := range append(g.VerticalChords, g.HorizontalChords...) {
			assert.InDelta(t, r, c[0].Dist(g.Hogel), 1e-6*r, k.String())
			assert.InDelta(t, r, c[1].Dist(g.Hogel), 1e-6*r, k.String())
		}
		first := g.VerticalChords[0][0]
		assert.InDelta(t, g.Hogel.X()-r+g.PixelRadiusRatio, first.X(), 1e-9)
	}
}

func TestAxisHalfExtent(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	for _, k := range drawable {
		p, g := mustDerive(t, k)
		if k == preset.Cinema {
			assert.Equal(t, p.DisplayHeight, g.AxisHalfExtent)
		} else {
			assert.Equal(t, 1.5*p.ViewDistance, g.AxisHalfExtent, k.String())
		}
	}
}

func TestAnchors(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	p, g := mustDerive(t, preset.Desktop)
	assert.Equal(t, lfdtrade.P(-800, 586.7/2), g.Head)
	assert.Equal(t, lfdtrade.P(800, 586.7/2), g.Hogel)
	assert.Equal(t, lfdtrade.P(0, p.DisplayWidth/2), g.ScreenMid)
}

func TestArcSampling(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	for _, k := range drawable {
		p, g := mustDerive(t, k)
		lo, hi := ArcBounds(p)
		assert.Equal(t, p.ViewDistance/2*math.Tan(-p.HalfViewAngle)+p.DisplayWidth/2, lo)
		require.Len(t, g.Arc, ArcSamples)
		assert.Equal(t, lo, g.Arc[0].Y(), k.String())
		for i := 1; i < len(g.Arc); i++ {
			assert.Greater(t, g.Arc[i].Y(), g.Arc[i-1].Y(), "%s sample %d", k, i)
		}
		assert.Less(t, g.Arc[ArcSamples-1].Y(), hi, k.String())
		step := (hi - lo) / ArcSamples
		assert.InDelta(t, hi-step, g.Arc[ArcSamples-1].Y(), 1e-9*math.Abs(hi))
	}
}

func TestArcOnCircle(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	for _, k := range []preset.Key{preset.Tablet, preset.Desktop, preset.HomeCinema} {
		p, g := mustDerive(t, k)
		for _, s := range g.Arc {
			assert.InDelta(t, p.ViewDistance/2, s.Dist(g.ScreenMid), 1e-6, k.String())
		}
		assert.Equal(t, 1, g.ArcFrom)
		assert.Equal(t, ArcSamples, g.ArcTo)
		assert.Len(t, g.DrawnArc(), ArcSamples-1)
	}
}

func TestArcLabel(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	p, g := mustDerive(t, preset.Tablet)
	mid := g.Arc[25]
	assert.Equal(t, lfdtrade.P(mid.X()+p.ViewDistance/16, mid.Y()), g.ArcLabel)
}

func TestCinemaArcOverride(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	p, g := mustDerive(t, preset.Cinema)
	for _, s := range g.Arc {
		assert.False(t, math.IsNaN(s.X()))
	}
	assert.Equal(t, 18, g.ArcFrom)
	assert.Equal(t, 33, g.ArcTo)
	drawn := g.DrawnArc()
	require.Len(t, drawn, 15)
	half := p.ViewDistance / 2
	for i, s := range drawn {
		dy := s.Y() - g.ScreenMid.Y()
		assert.GreaterOrEqual(t, half*half-dy*dy, 0.0, "drawn sample %d", i+18)
	}
	// the samples next to the drawn range leave the circle
	dy := g.Arc[17].Y() - g.ScreenMid.Y()
	assert.Less(t, half*half-dy*dy, 0.0)
}

func TestTableTopIsUndefined(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	p, err := preset.Lookup(preset.TableTop)
	require.NoError(t, err)
	_, err = Derive(p)
	assert.True(t, errors.Is(err, ErrUndefinedGeometry))
}

func TestNegativeRadicandIsUndefined(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	p, _ := preset.Lookup(preset.Desktop)
	p.HalfViewAngle = lfdtrade.Radians(60) // beyond the half circle
	_, err := Derive(p)
	assert.True(t, errors.Is(err, ErrUndefinedGeometry))
	_, err = Chord(1, 2)
	assert.True(t, errors.Is(err, ErrUndefinedGeometry))
	h, err := Chord(1, 1+1e-12)
	assert.NoError(t, err)
	assert.Equal(t, 0.0, h)
}

func TestDeriveIsDeterministic(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	for _, k := range drawable {
		_, g1 := mustDerive(t, k)
		_, g2 := mustDerive(t, k)
		assert.Equal(t, g1, g2, k.String())
	}
}
