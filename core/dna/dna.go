// core/dna/dna.go
//
// Package dna holds the nucleotide helpers shared by the loaders and the
// strand logic: normalization, validation and reverse complement.
package dna

import (
	"fmt"
	"unicode"

	"github.com/grailbio/bio/biosimd"
)

// Normalize removes spaces/quotes and uppercases bases.
func Normalize(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if unicode.IsSpace(r) || r == '\'' || r == '"' {
			continue
		}
		out = append(out, unicode.ToUpper(r))
	}
	return string(out)
}

// Validate returns a normalized sequence or an error if any char is outside
// A C G T N.
func Validate(raw string) (string, error) {
	s := Normalize(raw)
	if s == "" {
		return s, fmt.Errorf("empty sequence")
	}
	if biosimd.IsNonACGTNPresent([]byte(s)) {
		for i := 0; i < len(s); i++ {
			switch s[i] {
			case 'A', 'C', 'G', 'T', 'N':
			default:
				return "", fmt.Errorf("invalid base %q at %d; allowed: A C G T N", s[i], i+1)
			}
		}
	}
	return s, nil
}

// Clean capitalizes acgt and replaces every other byte with N, in place.
func Clean(seq []byte) []byte {
	biosimd.CleanASCIISeqInplace(seq)
	return seq
}

// HasAmbiguous reports whether seq holds anything but capital A C G T.
func HasAmbiguous(seq []byte) bool {
	return biosimd.IsNonACGTPresent(seq)
}

// RevComp returns the reverse complement of seq in a new slice. Anything
// outside ACGTacgt comes back as N.
func RevComp(seq []byte) []byte {
	if len(seq) == 0 {
		return nil
	}
	out := append([]byte(nil), seq...)
	biosimd.ReverseComp8Inplace(out)
	return out
}

// Equal reports whether two stretches spell the same bases, ignoring case.
func Equal(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i]|0x20 != b[i]|0x20 {
			return false
		}
	}
	return true
}
