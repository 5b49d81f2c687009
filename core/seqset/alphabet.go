// core/seqset/alphabet.go
package seqset

// Alphabet identifies the symbol set of an analysis and knows which
// symbols carry no information (gaps / unknowns).
type Alphabet int

const (
	Nucleotide Alphabet = iota
	AminoAcid
)

func (a Alphabet) String() string {
	if a == AminoAcid {
		return "aa"
	}
	return "nt"
}

// ParseAlphabet maps a CLI token to an Alphabet.
func ParseAlphabet(s string) (Alphabet, bool) {
	switch s {
	case "nt", "dna", "nucleotide":
		return Nucleotide, true
	case "aa", "protein", "amino-acid":
		return AminoAcid, true
	}
	return Nucleotide, false
}

// IsGap reports whether b is a gap or unknown symbol under a.
// Alignment gaps are '-' and '.' in both alphabets; 'N' (nt) and 'X' (aa)
// are unknowns and carry no evidence either way.
func (a Alphabet) IsGap(b byte) bool {
	if b == '-' || b == '.' {
		return true
	}
	if a == AminoAcid {
		return b == 'X'
	}
	return b == 'N'
}

// Informative is the number of distinct non-gap symbols, used by the
// uniform null model.
func (a Alphabet) Informative() int {
	if a == AminoAcid {
		return 20
	}
	return 4
}
