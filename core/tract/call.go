// core/tract/call.go
package tract

import (
	"gcvscan-core/attrib"
	"gcvscan-core/seqset"
	"gcvscan-core/window"
)

// Tract is a half-open interval [Start,End) of the query attributed to a
// single donor, with its per-position identity evidence and p-value.
type Tract struct {
	DonorID    string
	Start      int
	End        int
	Matches    int
	Comparable int
	P          float64
	PAdj       float64 // filled by the assembler
}

func (t Tract) Length() int { return t.End - t.Start }

// NullP0 derives the per-position null match probability from the
// acceptor-only model: the Laplace-smoothed identity between query and
// acceptor, (m+1)/(n+2). Smoothing keeps the null away from 0 and 1 for
// degenerate inputs (fully identical or fully diverged pairs).
func NullP0(set *seqset.Set) float64 {
	m, n := window.Identity(set, set.Acceptor, 0, set.Len())
	return float64(m+1) / float64(n+2)
}

// UniformP0 is the theoretical alternative: one over the informative
// alphabet size.
func UniformP0(ab seqset.Alphabet) float64 {
	return 1 / float64(ab.Informative())
}

// Call scans the attribution sequence and emits candidate tracts,
// unfiltered except for the minimum-length cut. A candidate opens on a
// concrete donor attribution, absorbs unresolved positions (they carry no
// evidence against the running call), and closes on the acceptor, a
// different donor, or sequence end; a trailing unresolved run is trimmed
// back to the last concrete donor position. Candidates shorter than
// minLen are dropped before testing to bound the hypothesis space.
func Call(set *seqset.Set, attrs []attrib.Attribution, minLen int, sig Significance) []Tract {
	var out []Tract

	flush := func(donor string, start, lastDonor int) {
		end := lastDonor + 1
		if end-start < minLen {
			return
		}
		d, ok := set.Donor(donor)
		if !ok {
			return
		}
		m, n := window.Identity(set, d, start, end)
		out = append(out, Tract{
			DonorID:    donor,
			Start:      start,
			End:        end,
			Matches:    m,
			Comparable: n,
			P:          sig.PValue(m, n),
		})
	}

	cur := ""  // donor of the open candidate, "" = none
	start := 0 // first position of the open candidate
	last := -1 // last concrete donor-attributed position
	for i, a := range attrs {
		switch a.Kind {
		case attrib.Donor:
			if cur == a.DonorID {
				last = i
				continue
			}
			if cur != "" {
				flush(cur, start, last)
			}
			cur, start, last = a.DonorID, i, i
		case attrib.Unresolved:
			// absorbed; evidence neither for nor against
		case attrib.Acceptor:
			if cur != "" {
				flush(cur, start, last)
				cur = ""
			}
		}
	}
	if cur != "" {
		flush(cur, start, last)
	}
	return out
}
