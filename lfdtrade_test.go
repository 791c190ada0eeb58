package lfdtrade

import (
	"math"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestNumericBasic(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	a := 0.000000008
	if !Is0(a) {
		t.Errorf("Expected a to be zero, is not")
	}
	if Zap(a) != 0 {
		t.Errorf("Expected a to be zapped to zero, is %g", Zap(a))
	}
}

func TestPairBasic(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	p := P(3, 2)
	q := P(-3, -2)
	r := p + q
	if !r.Equal(Origin) {
		t.Errorf("Expected p + q to be (0,0), is %v", r)
	}
	if p.XMirrored() != P(-3, 2) {
		t.Errorf("Expected mirrored p to be (-3,2), is %v", p.XMirrored())
	}
	if d := P(0, 0).Dist(P(3, 4)); d != 5 {
		t.Errorf("Expected distance 5, is %g", d)
	}
}

func TestInvalidPair(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	if P(math.NaN(), 1).IsValid() {
		t.Errorf("Expected NaN pair to be invalid")
	}
	if P(math.Inf(1), 0).IsValid() {
		t.Errorf("Expected infinite pair to be invalid")
	}
}

func TestTranslation(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	if !Translation(P(-1, -1)).Transform(P(1, 1)).Equal(Origin) {
		t.Errorf("Expected (1,1) shifted (-1,-1) to be origin, is not")
	}
	mirrored := Scaling(-1, 1).Transform(P(1, 0))
	if !(mirrored + P(1, 0)).Equal(Origin) {
		t.Errorf("Expected result to be origin, is %v", mirrored)
	}
}

func TestCombine(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	// scale first, then move
	m := Scaling(2, -1).Combine(Translation(P(10, 5)))
	if q := m.Transform(P(1, 1)); !q.Equal(P(12, 4)) {
		t.Errorf("Expected (12,4), is %v", q)
	}
	if u := m.Unit(); u != 2 {
		t.Errorf("Expected unit 2, is %g", u)
	}
}
