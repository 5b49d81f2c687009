// core/tract/binom.go
package tract

import "math"

// Significance turns tract evidence (matches out of comparable positions)
// into a p-value against the null of random agreement. Pluggable so the
// test can be swapped without touching the caller.
type Significance interface {
	PValue(matches, comparable int) float64
}

// BinomialTest is the default: exact binomial upper tail
// P[X >= matches], X ~ Binomial(comparable, P0).
type BinomialTest struct {
	P0 float64 // per-position null match probability, in (0,1)
}

// PValue computes the exact upper tail. Degenerate evidence (comparable
// <= 0) is uninformative and returns 1.
func (b BinomialTest) PValue(matches, comparable int) float64 {
	if comparable <= 0 || matches <= 0 {
		return 1
	}
	if matches > comparable {
		matches = comparable
	}
	p := b.P0
	if p <= 0 {
		return 0
	}
	if p >= 1 {
		return 1
	}
	// Sum exact terms in log space for stability on long tracts.
	logP := math.Log(p)
	logQ := math.Log1p(-p)
	sum := 0.0
	for k := matches; k <= comparable; k++ {
		sum += math.Exp(logChoose(comparable, k) + float64(k)*logP + float64(comparable-k)*logQ)
	}
	if sum > 1 {
		sum = 1
	}
	return sum
}

func logChoose(n, k int) float64 {
	a, _ := math.Lgamma(float64(n + 1))
	b, _ := math.Lgamma(float64(k + 1))
	c, _ := math.Lgamma(float64(n - k + 1))
	return a - b - c
}
