// Package selector is the entry point for presentation layers: it maps a
// preset key to the two diagrams and the table of reference values.
//
// Every call computes its result afresh from the immutable preset catalog.
// Calls keep no state and may run concurrently.
package selector

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/npillmayer/lfdtrade/geometry"
	"github.com/npillmayer/lfdtrade/preset"
	"github.com/npillmayer/lfdtrade/scene"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'selector'
func tracer() tracing.Trace {
	return tracing.Select("selector")
}

// Errors of Select, re-exported for clients which need not import the
// lower level packages.
var (
	ErrUnknownPreset     = preset.ErrUnknownPreset
	ErrUndefinedGeometry = geometry.ErrUndefinedGeometry
)

// Selection is the result of selecting a preset.
type Selection struct {
	Key   preset.Key
	Top   scene.Scene
	Side  scene.Scene
	Table ValueTable
}

// Select builds the top view, side view and value table for key k.
//
// It fails with ErrUnknownPreset for keys outside the catalog and with
// ErrUndefinedGeometry for presets with incomplete data (TableTop).
// The value table of such a preset is still available through Table.
func Select(k preset.Key) (*Selection, error) {
	p, err := preset.Lookup(k)
	if err != nil {
		return nil, err
	}
	g, err := geometry.Derive(p)
	if err != nil {
		return nil, fmt.Errorf("top view of %s: %w", k, err)
	}
	side, err := scene.BuildSide(p)
	if err != nil {
		return nil, err
	}
	sel := &Selection{
		Key:   k,
		Top:   scene.BuildTop(p, g),
		Side:  side,
		Table: tableOf(p),
	}
	tracer().Infof("selected %s: %d + %d primitives", k, sel.Top.Len(), sel.Side.Len())
	return sel, nil
}

// SelectOrPlaceholder is Select, but for presets with undefined geometry it
// returns the "coming soon" placeholder scenes together with the preset's
// value table. Unknown keys are still an error.
func SelectOrPlaceholder(k preset.Key) (*Selection, error) {
	sel, err := Select(k)
	if err == nil || !errors.Is(err, ErrUndefinedGeometry) {
		return sel, err
	}
	table, terr := Table(k)
	if terr != nil {
		return nil, terr
	}
	tracer().Infof("%s has no geometry, using placeholder", k)
	top, side := scene.ComingSoon()
	return &Selection{Key: k, Top: top, Side: side, Table: table}, nil
}

// --- Value table -----------------------------------------------------------

// Row labels of the value table.
const (
	LabelViewAngle         = "θ"
	LabelPixelPitch        = "Pixel Pitch (um)"
	LabelHogelDiameter     = "Diameter of Hogel (mm)"
	LabelViewDistance      = "View Distance (mm)"
	LabelLosslessDepth     = "Lossless Projection Depth (mm)"
	LabelAngularResolution = "Angular Resolution"
)

// Placeholder is displayed for values which are not available.
const Placeholder = "N/A"

// Row is one entry of a value table. Value is preset.NA if not available.
type Row struct {
	Label string
	Value float64
}

// Available is false if the row shows a placeholder.
func (r Row) Available() bool {
	return preset.Available(r.Value)
}

// Text formats the row's value for display.
func (r Row) Text() string {
	if !r.Available() {
		return Placeholder
	}
	return strconv.FormatFloat(r.Value, 'g', -1, 64)
}

// ValueTable is the list of reference values shown next to the diagrams.
type ValueTable []Row

// Lookup returns the value for a row label, and false if there is no such
// row or the value is not available.
func (t ValueTable) Lookup(label string) (float64, bool) {
	for _, r := range t {
		if r.Label == label {
			return r.Value, r.Available()
		}
	}
	return math.NaN(), false
}

// Table returns the value table for key k. Pixel pitch is shown in µm.
func Table(k preset.Key) (ValueTable, error) {
	p, err := preset.Lookup(k)
	if err != nil {
		return nil, err
	}
	return tableOf(p), nil
}

func tableOf(p preset.Preset) ValueTable {
	return ValueTable{
		{LabelViewAngle, p.ViewAngle},
		{LabelPixelPitch, p.PixelPitchMicrons()},
		{LabelHogelDiameter, p.HogelDiameter},
		{LabelViewDistance, p.ViewDistance},
		{LabelLosslessDepth, p.LosslessDepth},
		{LabelAngularResolution, p.AngularResolution},
	}
}
