// core/tract/binom_test.go
package tract

import (
	"math"
	"testing"
)

func almost(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestBinomialTailExactValues(t *testing.T) {
	tests := []struct {
		p0         float64
		matches, n int
		want       float64
	}{
		{0.5, 1, 1, 0.5},
		{0.5, 2, 2, 0.25},
		{0.5, 1, 2, 0.75},       // 1 - 0.25
		{0.25, 3, 3, 0.015625},  // 0.25^3
		{0.75, 3, 3, 0.421875},  // 0.75^3
		{7.0 / 10, 3, 3, 0.343}, // acceptor-identity null rate
		{0.5, 0, 3, 1},          // zero matches is uninformative
		{0.5, 5, 0, 1},          // no comparable positions
	}
	for _, tc := range tests {
		got := BinomialTest{P0: tc.p0}.PValue(tc.matches, tc.n)
		if !almost(got, tc.want) {
			t.Errorf("PValue(%d,%d; p0=%g) = %g, want %g", tc.matches, tc.n, tc.p0, got, tc.want)
		}
	}
}

func TestBinomialTailMonotoneInMatches(t *testing.T) {
	b := BinomialTest{P0: 0.3}
	prev := 2.0
	for k := 0; k <= 20; k++ {
		p := b.PValue(k, 20)
		if p > prev {
			t.Fatalf("tail not monotone at k=%d: %g > %g", k, p, prev)
		}
		prev = p
	}
}

func TestBinomialLongTractStable(t *testing.T) {
	// log-space summation must not overflow or go negative on long tracts
	p := BinomialTest{P0: 0.7}.PValue(290, 300)
	if p < 0 || p > 1 || math.IsNaN(p) {
		t.Fatalf("p = %g out of range", p)
	}
	if p > 1e-10 {
		t.Errorf("p = %g, expected a very small tail", p)
	}
}

func TestLogChoose(t *testing.T) {
	if got := math.Exp(logChoose(5, 2)); !almost(got, 10) {
		t.Errorf("C(5,2) = %g, want 10", got)
	}
	if got := math.Exp(logChoose(10, 0)); !almost(got, 1) {
		t.Errorf("C(10,0) = %g, want 1", got)
	}
}
