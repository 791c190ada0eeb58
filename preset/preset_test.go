package preset

import (
	"errors"
	"math"
	"testing"

	"github.com/npillmayer/lfdtrade"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogOrder(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	assert.Equal(t, []Key{Tablet, Desktop, TableTop, HomeCinema, Cinema}, Keys())
	all := All()
	require.Len(t, all, 5)
	for i, p := range all {
		assert.Equal(t, Keys()[i], p.Key)
	}
}

func TestLookup(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	p, err := Lookup(Tablet)
	require.NoError(t, err)
	assert.Equal(t, 450.0, p.ViewDistance)
	assert.Equal(t, 106.7, p.DisplayWidth)
	_, err = Lookup(Key(42))
	assert.True(t, errors.Is(err, ErrUnknownPreset))
}

func TestHalfViewAngle(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	for _, p := range All() {
		if p.Key == TableTop {
			assert.False(t, Available(p.HalfViewAngle))
			continue
		}
		assert.InDelta(t, lfdtrade.Radians(p.ViewAngle/2), p.HalfViewAngle, 1e-12, p.Key.String())
		assert.NoError(t, p.Validate())
	}
}

func TestCatalogMarksMissingHalfViewAngle(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	m := newCatalog(Preset{
		Key:           Desktop,
		DisplayHeight: 100,
		DisplayWidth:  200,
		ViewDistance:  500,
		PixelPitch:    0.02,
		HogelDiameter: 0.1,
		ViewAngle:     NA,
	})
	v, found := m.Get(Desktop)
	require.True(t, found)
	p := v.(Preset)
	assert.False(t, Available(p.HalfViewAngle))
	assert.False(t, p.IsComplete())
}

func TestTableTopIsIncomplete(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	p, err := Lookup(TableTop)
	require.NoError(t, err)
	assert.False(t, p.IsComplete())
	assert.False(t, Available(p.ViewDistance))
	assert.Equal(t, 0.5, p.HogelDiameter)
	for _, k := range []Key{Tablet, Desktop, HomeCinema, Cinema} {
		p, _ := Lookup(k)
		assert.True(t, p.IsComplete(), k.String())
	}
}

func TestPixelPitchMicrons(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	want := map[Key]float64{Tablet: 27, Desktop: 19, TableTop: 50, HomeCinema: 47, Cinema: 50}
	for k, um := range want {
		p, _ := Lookup(k)
		assert.Equal(t, um, p.PixelPitchMicrons(), k.String())
	}
	assert.True(t, math.IsNaN(Preset{PixelPitch: NA}.PixelPitchMicrons()))
}

func TestValidateRejectsNegativeLength(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	p := Preset{Key: Tablet, DisplayWidth: -1, ViewAngle: NA, HalfViewAngle: NA}
	assert.Error(t, p.Validate())
	p = Preset{Key: Tablet, ViewAngle: 30, HalfViewAngle: 1}
	assert.Error(t, p.Validate())
}

func TestParseKey(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	cases := map[string]Key{
		"T": Tablet, "d": Desktop, "SF": TableTop, "HC": HomeCinema, "C": Cinema,
		"tablet": Tablet, "HomeCinema": HomeCinema, " cinema ": Cinema, "TableTop": TableTop,
	}
	for s, k := range cases {
		got, err := ParseKey(s)
		if assert.NoError(t, err, s) {
			assert.Equal(t, k, got, s)
		}
	}
	_, err := ParseKey("phone")
	assert.True(t, errors.Is(err, ErrUnknownPreset))
	assert.Equal(t, "HC", HomeCinema.Code())
	assert.Equal(t, "Key(9)", Key(9).String())
	assert.False(t, Key(0).IsValid())
}
