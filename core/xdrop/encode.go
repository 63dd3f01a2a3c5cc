package xdrop

import (
	"github.com/grailbio/base/simd"
	"github.com/grailbio/bio/biosimd"
)

// Base codes. biosimd.ASCIIToSeq8 yields A=1 C=2 G=4 T=8 and 15 for anything
// else; the non-ACGT code is then made axis-specific so it never matches,
// not even against another non-ACGT base. The pad codes fill lanes that lie
// beyond the end of a sequence.
const (
	seq8Other byte = 15
	otherH    byte = 16
	otherV    byte = 32
	padH      byte = 64
	padV      byte = 96
)

// encode converts an ASCII sequence to base codes in a buffer owned by the
// call, reversed when the extension runs leftward.
func encode(src []byte, reverse bool, other byte) []byte {
	buf := make([]byte, len(src))
	biosimd.ASCIIToSeq8(buf, src)
	if reverse {
		simd.Reverse8Inplace(buf)
	}
	for i, c := range buf {
		if c == seq8Other {
			buf[i] = other
		}
	}
	return buf
}
