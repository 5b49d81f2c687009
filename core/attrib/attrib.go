// core/attrib/attrib.go
package attrib

import (
	"gcvscan-core/seqset"
	"gcvscan-core/window"
)

// Kind classifies one position of the query.
type Kind uint8

const (
	Acceptor Kind = iota
	Donor
	Unresolved
)

func (k Kind) String() string {
	switch k {
	case Donor:
		return "donor"
	case Unresolved:
		return "unresolved"
	}
	return "acceptor"
}

// Attribution is the call for a single position; DonorID is set only for
// Kind == Donor. Read-only after Attribute returns.
type Attribution struct {
	Kind    Kind
	DonorID string
}

// Attribute decides, per position, which reference best explains the
// query. A donor wins only when its windowed score exceeds the acceptor's
// by more than margin; ties among donors at the max go to the smallest
// donor id (the profile carries donors in sorted order, so the first
// strict maximum is the tie-break winner). A query gap/unknown is
// Unresolved regardless of reference content; a position with no defined
// donor score falls back to the acceptor baseline.
func Attribute(set *seqset.Set, p window.Profile, margin float64) []Attribution {
	l := set.Len()
	ab := set.Alphabet
	out := make([]Attribution, l)

	for i := 0; i < l; i++ {
		if ab.IsGap(set.Query.Sym[i]) {
			out[i] = Attribution{Kind: Unresolved}
			continue
		}
		bestID := ""
		best := 0.0
		for _, d := range p.Donors {
			if !d.Defined[i] {
				continue
			}
			if bestID == "" || d.Frac[i] > best {
				bestID = d.ID
				best = d.Frac[i]
			}
		}
		if bestID == "" {
			out[i] = Attribution{Kind: Acceptor}
			continue
		}
		// An undefined acceptor score counts as 0: a donor with data still
		// has to clear the margin.
		a := 0.0
		if p.Acceptor.Defined[i] {
			a = p.Acceptor.Frac[i]
		}
		if best > a+margin {
			out[i] = Attribution{Kind: Donor, DonorID: bestID}
		} else {
			out[i] = Attribution{Kind: Acceptor}
		}
	}
	return out
}
