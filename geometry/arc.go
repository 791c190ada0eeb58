package geometry

import (
	"fmt"
	"math"

	"github.com/npillmayer/lfdtrade"
	"github.com/npillmayer/lfdtrade/preset"
)

// ArcBounds returns the y-interval spanned by the viewing-angle arc of
// preset p: [d/2·tan(−θ)+W/2, d/2·tan(θ)+W/2). The upper bound is excluded
// from sampling.
func ArcBounds(p preset.Preset) (lo, hi float64) {
	half := p.ViewDistance / 2
	mid := p.DisplayWidth / 2
	lo = half*math.Tan(-p.HalfViewAngle) + mid
	hi = half*math.Tan(p.HalfViewAngle) + mid
	return
}

// ArcYs returns ArcSamples evenly spaced y-values from ArcBounds, excluding
// the upper bound.
func ArcYs(p preset.Preset) []float64 {
	lo, hi := ArcBounds(p)
	step := (hi - lo) / ArcSamples
	ys := make([]float64, ArcSamples)
	for i := range ys {
		ys[i] = float64(i)*step + lo
	}
	return ys
}

// sampleArc maps each arc y-value onto the circle of radius d/2 around the
// screen mid point. For Cinema the radicand is taken by absolute value,
// as its view angle exceeds the half circle.
func sampleArc(p preset.Preset) ([]lfdtrade.Pair, error) {
	half := p.ViewDistance / 2
	mid := p.DisplayWidth / 2
	ys := ArcYs(p)
	arc := make([]lfdtrade.Pair, len(ys))
	for i, y := range ys {
		v := half*half - (y-mid)*(y-mid)
		var x float64
		if p.Key == preset.Cinema {
			x = math.Sqrt(math.Abs(v))
		} else {
			var err error
			if x, err = sqrtChecked(v, half*half); err != nil {
				return nil, fmt.Errorf("arc sample %d of %s: %w", i, p.Key, err)
			}
		}
		arc[i] = lfdtrade.P(x, y)
	}
	return arc, nil
}
