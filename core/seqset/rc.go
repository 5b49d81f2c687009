// core/seqset/rc.go
package seqset

var complement [256]byte

func init() {
	complement['A'] = 'T'
	complement['C'] = 'G'
	complement['G'] = 'C'
	complement['T'] = 'A'
	complement['U'] = 'A'
	complement['N'] = 'N'
	complement['-'] = '-'
	complement['.'] = '.'
}

// RevComp returns the reverse complement of a nucleotide sequence.
// Symbols without a defined complement come back as 'N'.
func RevComp(sym []byte) []byte {
	n := len(sym)
	if n == 0 {
		return nil
	}
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		c := complement[sym[n-1-i]]
		if c == 0 {
			c = 'N'
		}
		out[i] = c
	}
	return out
}

// WithRevCompDonors returns the donor list extended with the reverse
// complement of every donor, ids suffixed "_rc". Used by the --rc option.
func WithRevCompDonors(donors []Sequence) []Sequence {
	out := make([]Sequence, 0, 2*len(donors))
	out = append(out, donors...)
	for _, d := range donors {
		out = append(out, Sequence{ID: d.ID + "_rc", Sym: RevComp(d.Sym)})
	}
	return out
}
