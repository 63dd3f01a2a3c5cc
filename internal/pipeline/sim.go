// internal/pipeline/sim.go
package pipeline

import (
	"logan/internal/candidates"
	"logan/internal/overlap"
)

// Aligner is the minimal capability the pipeline needs.
// Any engine (including fakes in tests) can satisfy this.
type Aligner interface {
	Align(a, b []byte, c candidates.Candidate) (overlap.Result, error)
}

// PairAligner aligns a candidate with overlap.AlignPair.
type PairAligner struct {
	Eng overlap.Extender
}

func (p PairAligner) Align(a, b []byte, c candidates.Candidate) (overlap.Result, error) {
	return overlap.AlignPair(p.Eng, a, b, c.PosA, c.PosB, c.K)
}
