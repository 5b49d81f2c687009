// core/assemble/assemble.go
package assemble

import (
	"sort"

	"gcvscan-core/attrib"
	"gcvscan-core/seqset"
	"gcvscan-core/tract"
	"gcvscan-core/window"
)

// Correction method names, as exposed on the CLI.
const (
	CorrectionNone       = "none"
	CorrectionBonferroni = "bonferroni"
	CorrectionFDR        = "fdr"
)

// Warning records a per-donor condition that did not abort the analysis,
// e.g. a donor excluded for having no comparable positions at all.
type Warning struct {
	DonorID string `json:"donor_id"`
	Reason  string `json:"reason"`
}

// Meta describes how a CallResult was produced.
type Meta struct {
	Alpha          float64   `json:"alpha"`
	Correction     string    `json:"correction"`
	WindowHalf     int       `json:"window_half_width"`
	Positions      int       `json:"positions"`
	Candidates     int       `json:"candidates"`
	Warnings       []Warning `json:"warnings,omitempty"`
	TemplatedFrac  float64   `json:"templated_fraction"`
	MutatedColumns int       `json:"mutated_columns"`
}

// CallResult is the final, ordered set of retained tracts plus metadata.
type CallResult struct {
	Tracts []tract.Tract
	Meta   Meta
}

// Assemble applies the multiple-testing correction across all candidates
// of one analysis, keeps tracts with adjusted p <= alpha, merges retained
// same-donor tracts separated only by unresolved gaps of length <=
// mergeGap, and returns the result sorted by start (then donor id).
// Merged tracts get their evidence recombined and p recomputed via sig;
// merging never removes an already-retained tract.
func Assemble(
	set *seqset.Set,
	attrs []attrib.Attribution,
	candidates []tract.Tract,
	alpha float64,
	correction string,
	mergeGap int,
	sig tract.Significance,
	meta Meta,
) CallResult {
	adjusted := adjust(candidates, correction)

	kept := make([]tract.Tract, 0, len(adjusted))
	for _, t := range adjusted {
		if t.PAdj <= alpha {
			kept = append(kept, t)
		}
	}

	sort.Slice(kept, func(i, j int) bool {
		if kept[i].Start != kept[j].Start {
			return kept[i].Start < kept[j].Start
		}
		return kept[i].DonorID < kept[j].DonorID
	})

	kept = merge(set, attrs, kept, mergeGap, sig)

	meta.Correction = correction
	meta.Alpha = alpha
	meta.Candidates = len(candidates)
	meta.Positions = set.Len()
	meta.MutatedColumns, meta.TemplatedFrac = templatedFraction(set, kept)

	return CallResult{Tracts: kept, Meta: meta}
}

// adjust fills PAdj for every candidate without reordering the input.
func adjust(candidates []tract.Tract, correction string) []tract.Tract {
	out := append([]tract.Tract(nil), candidates...)
	m := len(out)
	switch correction {
	case CorrectionBonferroni:
		for i := range out {
			p := out[i].P * float64(m)
			if p > 1 {
				p = 1
			}
			out[i].PAdj = p
		}
	case CorrectionFDR:
		// Benjamini-Hochberg step-up: padj_(i) = min_{j>=i} m*p_(j)/j.
		idx := make([]int, m)
		for i := range idx {
			idx[i] = i
		}
		sort.Slice(idx, func(a, b int) bool { return out[idx[a]].P < out[idx[b]].P })
		adj := make([]float64, m)
		minSoFar := 1.0
		for rank := m; rank >= 1; rank-- {
			i := idx[rank-1]
			v := out[i].P * float64(m) / float64(rank)
			if v < minSoFar {
				minSoFar = v
			}
			adj[i] = minSoFar
		}
		for i := range out {
			out[i].PAdj = adj[i]
		}
	default: // CorrectionNone
		for i := range out {
			out[i].PAdj = out[i].P
		}
	}
	return out
}

// merge joins adjacent retained tracts of the same donor whose separating
// positions are all unresolved and number at most mergeGap. Input and
// output are sorted by start.
func merge(set *seqset.Set, attrs []attrib.Attribution, kept []tract.Tract, mergeGap int, sig tract.Significance) []tract.Tract {
	if len(kept) < 2 {
		return kept
	}
	out := make([]tract.Tract, 0, len(kept))
	cur := kept[0]
	for _, next := range kept[1:] {
		if next.DonorID == cur.DonorID && next.Start >= cur.End &&
			next.Start-cur.End <= mergeGap && allUnresolved(attrs, cur.End, next.Start) {
			d, _ := set.Donor(cur.DonorID)
			cur.End = next.End
			cur.Matches, cur.Comparable = window.Identity(set, d, cur.Start, cur.End)
			cur.P = sig.PValue(cur.Matches, cur.Comparable)
			if next.PAdj > cur.PAdj {
				cur.PAdj = next.PAdj
			}
			continue
		}
		out = append(out, cur)
		cur = next
	}
	return append(out, cur)
}

func allUnresolved(attrs []attrib.Attribution, lo, hi int) bool {
	for i := lo; i < hi; i++ {
		if attrs[i].Kind != attrib.Unresolved {
			return false
		}
	}
	return true
}

// templatedFraction reports how many alignment columns differ between
// query and acceptor (both informative) and what fraction of those fall
// inside a retained tract: the headline "templated" number.
func templatedFraction(set *seqset.Set, kept []tract.Tract) (mutated int, frac float64) {
	ab := set.Alphabet
	q := set.Query.Sym
	a := set.Acceptor.Sym
	covered := 0
	for i := 0; i < set.Len(); i++ {
		if ab.IsGap(q[i]) || ab.IsGap(a[i]) || q[i] == a[i] {
			continue
		}
		mutated++
		for _, t := range kept {
			if i >= t.Start && i < t.End {
				covered++
				break
			}
		}
	}
	if mutated == 0 {
		return 0, 0
	}
	return mutated, float64(covered) / float64(mutated)
}
