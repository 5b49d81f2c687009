// core/window/score.go
package window

import "gcvscan-core/seqset"

// Track is the per-position score profile of the query against one
// reference. Frac[i] is the match fraction over the window centered at i,
// valid only where Defined[i]; Comparable counts positions with any data.
type Track struct {
	ID         string
	Frac       []float64
	Defined    []bool
	Comparable int
}

// Profile holds the acceptor track plus one track per donor, donors in
// the set's sorted id order.
type Profile struct {
	Acceptor Track
	Donors   []Track
}

// Score computes windowed match fractions for every reference in set.
// The window at position i is [max(0,i-w), min(L,i+w+1)); positions where
// either symbol is gap/unknown are excluded from both numerator and
// denominator, and an all-gap window leaves the score undefined.
// Pure function of its inputs.
func Score(set *seqset.Set, w int) Profile {
	p := Profile{Acceptor: scoreTrack(set, set.Acceptor, w)}
	for _, id := range set.DonorIDs() {
		d, _ := set.Donor(id)
		p.Donors = append(p.Donors, scoreTrack(set, d, w))
	}
	return p
}

func scoreTrack(set *seqset.Set, ref seqset.Sequence, w int) Track {
	l := set.Len()
	q := set.Query.Sym
	r := ref.Sym
	ab := set.Alphabet

	t := Track{
		ID:      ref.ID,
		Frac:    make([]float64, l),
		Defined: make([]bool, l),
	}
	for i := 0; i < l; i++ {
		lo := i - w
		if lo < 0 {
			lo = 0
		}
		hi := i + w + 1
		if hi > l {
			hi = l
		}
		match, comp := 0, 0
		for j := lo; j < hi; j++ {
			if ab.IsGap(q[j]) || ab.IsGap(r[j]) {
				continue
			}
			comp++
			if q[j] == r[j] {
				match++
			}
		}
		if comp == 0 {
			continue // no-data; Defined stays false
		}
		t.Frac[i] = float64(match) / float64(comp)
		t.Defined[i] = true
		t.Comparable++
	}
	return t
}

// Identity counts per-position matches between the query and ref over
// [start,end), skipping gap/unknown columns. The tract caller uses it for
// evidence at window width 0.
func Identity(set *seqset.Set, ref seqset.Sequence, start, end int) (matches, comparable int) {
	q := set.Query.Sym
	r := ref.Sym
	ab := set.Alphabet
	for j := start; j < end; j++ {
		if ab.IsGap(q[j]) || ab.IsGap(r[j]) {
			continue
		}
		comparable++
		if q[j] == r[j] {
			matches++
		}
	}
	return matches, comparable
}
