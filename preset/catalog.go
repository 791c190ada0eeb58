package preset

import (
	"fmt"

	"github.com/emirpasic/gods/maps/treemap"
	"github.com/npillmayer/lfdtrade"
)

// The catalog is filled once during package initialization and never
// written to afterwards, so concurrent reads need no locking.
var catalog = newCatalog(
	Preset{
		Key:               Tablet,
		DisplayHeight:     60,
		DisplayWidth:      106.7,
		ViewDistance:      450,
		PixelPitch:        27e-3,
		HogelDiameter:     0.07,
		LosslessDepth:     0.51,
		ViewAngle:         32,
		AngularResolution: 0.06,
	},
	Preset{
		Key:               Desktop,
		DisplayHeight:     330,
		DisplayWidth:      586.7,
		ViewDistance:      800,
		PixelPitch:        19e-3,
		HogelDiameter:     0.23,
		LosslessDepth:     5.70,
		ViewAngle:         57.2,
		AngularResolution: 0.21,
	},
	Preset{
		Key:               TableTop,
		DisplayHeight:     NA,
		DisplayWidth:      NA,
		ViewDistance:      NA,
		PixelPitch:        50e-3,
		HogelDiameter:     0.5,
		LosslessDepth:     6.4,
		ViewAngle:         90,
		HalfViewAngle:     NA,
		AngularResolution: 0.111,
	},
	Preset{
		Key:               HomeCinema,
		DisplayHeight:     810,
		DisplayWidth:      1440,
		ViewDistance:      2743.2,
		PixelPitch:        47e-3,
		HogelDiameter:     0.8,
		LosslessDepth:     25.06,
		ViewAngle:         61.9,
		AngularResolution: 0.27,
	},
	Preset{
		Key:               Cinema,
		DisplayHeight:     12192,
		DisplayWidth:      5151,
		ViewDistance:      3658,
		PixelPitch:        50e-3,
		HogelDiameter:     1.06,
		LosslessDepth:     17.53,
		ViewAngle:         147.9,
		AngularResolution: 0.14,
	},
)

// newCatalog sorts presets by key. Presets which do not mark their half view
// angle as NA get it computed from the full view angle, or NA if the view
// angle is not available either.
func newCatalog(presets ...Preset) *treemap.Map {
	m := treemap.NewWith(func(a, b interface{}) int {
		return int(a.(Key)) - int(b.(Key))
	})
	for _, p := range presets {
		if p.HalfViewAngle == 0 {
			if Available(p.ViewAngle) {
				p.HalfViewAngle = lfdtrade.Radians(p.ViewAngle / 2)
			} else {
				p.HalfViewAngle = NA
			}
		}
		if err := p.Validate(); err != nil {
			panic(err)
		}
		m.Put(p.Key, p)
	}
	return m
}

// Lookup returns the preset for key k.
func Lookup(k Key) (Preset, error) {
	v, found := catalog.Get(k)
	if !found {
		tracer().Errorf("lookup of unknown preset key %d", int(k))
		return Preset{}, fmt.Errorf("%w: %s", ErrUnknownPreset, k)
	}
	return v.(Preset), nil
}

// Keys returns all catalog keys in ascending order.
func Keys() []Key {
	keys := make([]Key, 0, catalog.Size())
	for _, k := range catalog.Keys() {
		keys = append(keys, k.(Key))
	}
	return keys
}

// All returns all presets in key order.
func All() []Preset {
	presets := make([]Preset, 0, catalog.Size())
	it := catalog.Iterator()
	for it.Next() {
		presets = append(presets, it.Value().(Preset))
	}
	return presets
}
