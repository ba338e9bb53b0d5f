package barcode

import "fmt"

var complement [256]byte

func init() {
	complement['A'] = 'T'
	complement['C'] = 'G'
	complement['G'] = 'C'
	complement['T'] = 'A'
}

// InvalidBaseError reports a byte outside the A/C/G/T alphabet.
type InvalidBaseError struct {
	Base byte
	Pos  int // 0-based offset in the offending sequence
}

func (e *InvalidBaseError) Error() string {
	return fmt.Sprintf("invalid base %q at position %d; allowed: A C G T", e.Base, e.Pos+1)
}

// RevComp returns the reverse complement of seq. Ambiguous bases are out of
// scope for synthetic barcodes: anything outside A/C/G/T is an error.
func RevComp(seq []byte) ([]byte, error) {
	n := len(seq)
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		b := seq[n-1-i]
		c := complement[b]
		if c == 0 {
			return nil, &InvalidBaseError{Base: b, Pos: n - 1 - i}
		}
		out[i] = c
	}
	return out, nil
}

// ValidateSeq checks that s contains only A/C/G/T.
func ValidateSeq(s string) error {
	for i := 0; i < len(s); i++ {
		if complement[s[i]] == 0 {
			return &InvalidBaseError{Base: s[i], Pos: i}
		}
	}
	return nil
}
