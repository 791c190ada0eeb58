// Package preset holds the catalog of named light-field display configurations.
//
// Presets are values. They are created once, when the package is
// initialized, and are read-only from then on.
package preset

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/npillmayer/lfdtrade"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'preset'
func tracer() tracing.Trace {
	return tracing.Select("preset")
}

// ErrUnknownPreset is returned for a key or key code not in the catalog.
var ErrUnknownPreset = errors.New("unknown preset")

// NA marks a physical parameter which is not available for a preset.
// Clients test for it with Available.
var NA = math.NaN()

// Available is false for NA values.
func Available(v float64) bool {
	return !math.IsNaN(v)
}

// Key identifies a preset.
type Key int

// The five display classes, in catalog order.
const (
	Tablet Key = iota + 1
	Desktop
	TableTop
	HomeCinema
	Cinema
)

var keyNames = map[Key]string{
	Tablet:     "Tablet",
	Desktop:    "Desktop",
	TableTop:   "TableTop",
	HomeCinema: "HomeCinema",
	Cinema:     "Cinema",
}

// Key codes as used by the radio buttons of the selection form.
var keyCodes = map[Key]string{
	Tablet:     "T",
	Desktop:    "D",
	TableTop:   "SF",
	HomeCinema: "HC",
	Cinema:     "C",
}

func (k Key) String() string {
	if s, ok := keyNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Key(%d)", int(k))
}

// Code returns the short form code of k, e.g. "HC" for HomeCinema.
func (k Key) Code() string {
	return keyCodes[k]
}

// IsValid checks if k is one of the catalog keys.
func (k Key) IsValid() bool {
	_, ok := keyNames[k]
	return ok
}

// ParseKey accepts either a form code ("T", "SF", …) or a preset name
// ("Tablet", "homecinema", …). Matching is case-insensitive.
func ParseKey(s string) (Key, error) {
	s = strings.TrimSpace(s)
	for k, code := range keyCodes {
		if strings.EqualFold(s, code) || strings.EqualFold(s, keyNames[k]) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownPreset, s)
}

// Preset holds the physical parameters of a display class.
// Lengths are in millimeters. Any field may be NA.
type Preset struct {
	Key               Key
	DisplayHeight     float64 // mm
	DisplayWidth      float64 // mm
	ViewDistance      float64 // mm
	PixelPitch        float64 // mm
	HogelDiameter     float64 // mm
	LosslessDepth     float64 // mm
	ViewAngle         float64 // degrees, full field
	HalfViewAngle     float64 // radians
	AngularResolution float64
}

// IsComplete is true if every parameter needed for a drawing is available.
func (p Preset) IsComplete() bool {
	return Available(p.ViewDistance) && Available(p.DisplayWidth) &&
		Available(p.DisplayHeight) && Available(p.HalfViewAngle)
}

// PixelPitchMicrons returns the pixel pitch in µm, or NA.
// The value is rounded to nano-meters to suppress binary noise from the
// mm → µm conversion.
func (p Preset) PixelPitchMicrons() float64 {
	if !Available(p.PixelPitch) {
		return NA
	}
	return math.Round(p.PixelPitch*1e6) / 1e3
}

// Validate checks that all available lengths are non-negative and that the
// half view angle matches the full view angle.
func (p Preset) Validate() error {
	lengths := []struct {
		name string
		v    float64
	}{
		{"display height", p.DisplayHeight},
		{"display width", p.DisplayWidth},
		{"view distance", p.ViewDistance},
		{"pixel pitch", p.PixelPitch},
		{"hogel diameter", p.HogelDiameter},
		{"lossless depth", p.LosslessDepth},
	}
	for _, l := range lengths {
		if Available(l.v) && l.v < 0 {
			return fmt.Errorf("preset %s: negative %s %g", p.Key, l.name, l.v)
		}
	}
	if Available(p.ViewAngle) && Available(p.HalfViewAngle) {
		if !lfdtrade.Is0(p.HalfViewAngle - lfdtrade.Radians(p.ViewAngle/2)) {
			return fmt.Errorf("preset %s: half view angle %g does not match view angle %g°",
				p.Key, p.HalfViewAngle, p.ViewAngle)
		}
	}
	return nil
}
