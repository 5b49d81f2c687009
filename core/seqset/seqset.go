// core/seqset/seqset.go
package seqset

import (
	"bytes"
	"errors"
	"fmt"
	"sort"
)

// ErrShape marks violations of the pre-alignment invariants (unequal
// lengths, empty set, colliding ids). Matched with errors.Is.
var ErrShape = errors.New("input shape")

// Sequence is one named, aligned sequence. Sym is upper-cased on
// construction and never mutated afterwards.
type Sequence struct {
	ID  string
	Sym []byte
}

// NewSequence copies and upper-cases sym.
func NewSequence(id string, sym []byte) Sequence {
	return Sequence{ID: id, Sym: bytes.ToUpper(append([]byte(nil), sym...))}
}

func (s Sequence) Len() int { return len(s.Sym) }

// Set holds one query, one acceptor (germline baseline) and at least one
// donor, all aligned to a common coordinate frame of length L.
// Immutable for the duration of one analysis.
type Set struct {
	Query    Sequence
	Acceptor Sequence
	Alphabet Alphabet

	donors   map[string]Sequence
	donorIDs []string // sorted; fixes iteration and tie-break order
}

// New validates the pre-alignment invariants and builds a Set.
func New(query, acceptor Sequence, donors []Sequence, ab Alphabet) (*Set, error) {
	if query.Len() == 0 {
		return nil, fmt.Errorf("%w: empty query sequence", ErrShape)
	}
	if len(donors) == 0 {
		return nil, fmt.Errorf("%w: no donor sequences", ErrShape)
	}
	l := query.Len()
	if acceptor.Len() != l {
		return nil, fmt.Errorf("%w: acceptor %q length %d != query %q length %d",
			ErrShape, acceptor.ID, acceptor.Len(), query.ID, l)
	}
	m := make(map[string]Sequence, len(donors))
	ids := make([]string, 0, len(donors))
	for _, d := range donors {
		if d.Len() != l {
			return nil, fmt.Errorf("%w: donor %q length %d != query %q length %d",
				ErrShape, d.ID, d.Len(), query.ID, l)
		}
		if d.ID == acceptor.ID {
			return nil, fmt.Errorf("%w: donor id %q collides with acceptor id", ErrShape, d.ID)
		}
		if _, dup := m[d.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate donor id %q", ErrShape, d.ID)
		}
		m[d.ID] = d
		ids = append(ids, d.ID)
	}
	sort.Strings(ids)
	return &Set{Query: query, Acceptor: acceptor, Alphabet: ab, donors: m, donorIDs: ids}, nil
}

// Len is the shared alignment length L.
func (s *Set) Len() int { return s.Query.Len() }

// DonorIDs returns the donor ids in sorted order.
func (s *Set) DonorIDs() []string { return s.donorIDs }

// Donor returns the donor sequence for id.
func (s *Set) Donor(id string) (Sequence, bool) {
	d, ok := s.donors[id]
	return d, ok
}
