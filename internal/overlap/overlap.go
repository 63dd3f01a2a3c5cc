// internal/overlap/overlap.go
//
// Package overlap turns a shared k-mer between two reads into an alignment
// and decides whether it is a true overlap.
package overlap

import (
	"fmt"

	"logan-core/dna"
	"logan-core/xdrop"
)

// Strand tells whether read A was aligned as given or reverse-complemented.
type Strand byte

const (
	Same              Strand = 'n'
	ReverseComplement Strand = 'c'
)

func (s Strand) String() string { return string(rune(s)) }

// PAF returns the PAF relative-strand character.
func (s Strand) PAF() string {
	if s == ReverseComplement {
		return "-"
	}
	return "+"
}

// Extender is the part of the engine AlignPair needs.
type Extender interface {
	Extend(seed *xdrop.Seed, dir xdrop.Direction, h, v []byte) (xdrop.Score, error)
}

// Result is the outcome of one seed extension. Seed coordinates on A refer
// to the strand A was aligned on.
type Result struct {
	xdrop.Score
	Seed   xdrop.Seed
	Strand Strand
}

// AlignPair extends the k-mer at posA on a and posB on b in both
// directions. When the two k-mers differ, a is reverse-complemented and the
// seed moved to the matching position on that strand.
func AlignPair(eng Extender, a, b []byte, posA, posB, k int) (Result, error) {
	if k <= 0 || posA < 0 || posB < 0 || posA+k > len(a) || posB+k > len(b) {
		return Result{}, fmt.Errorf("%w: k-mer (%d,%d,k=%d) outside reads of length %d/%d",
			xdrop.ErrInvalidSeed, posA, posB, k, len(a), len(b))
	}
	res := Result{Strand: Same}
	h := a
	if !dna.Equal(a[posA:posA+k], b[posB:posB+k]) {
		res.Strand = ReverseComplement
		h = dna.RevComp(a)
		posA = len(a) - posA - k
	}
	res.Seed = xdrop.NewSeed(posA, posB, k)
	score, err := eng.Extend(&res.Seed, xdrop.Both, h, b)
	if err != nil {
		return Result{}, err
	}
	res.Score = score
	return res, nil
}

// EstimateOverlap is the overlap length implied by an alignment: the
// aligned span plus the shorter overhang on each side.
func EstimateOverlap(s xdrop.Seed, lenA, lenB int) int {
	minLeft := min(s.BeginH, s.BeginV)
	minRight := min(lenA-s.EndH, lenB-s.EndV)
	return minLeft + minRight + (s.LenH()+s.LenV())/2
}

// ReachesEnd reports whether the alignment gets within margin bases of a
// read end on the left or on the right.
func ReachesEnd(s xdrop.Seed, lenA, lenB, margin int) bool {
	minLeft := min(s.BeginH, s.BeginV)
	minRight := min(lenA-s.EndH, lenB-s.EndV)
	return minLeft <= margin || minRight <= margin
}

// AdaptiveSlope is the expected score per aligned base of two reads that
// each carry errorRate errors, with unit match reward and unit penalties.
func AdaptiveSlope(errorRate float64) float64 {
	pMatch := (1 - errorRate) * (1 - errorRate)
	return pMatch - (1 - pMatch)
}

// Threshold decides whether an alignment score is high enough to call an
// overlap.
type Threshold struct {
	// Adaptive scales the bar with the estimated overlap length; otherwise
	// Fixed is the minimum score.
	Adaptive  bool
	Fixed     int
	ErrorRate float64
	Delta     float64
}

// Accept applies the threshold to a score over an overlap estimate.
func (t Threshold) Accept(score, overlap int) bool {
	if !t.Adaptive {
		return score >= t.Fixed
	}
	return float64(score) >= (1-t.Delta)*AdaptiveSlope(t.ErrorRate)*float64(overlap)
}

// Filter bundles the acceptance rules applied after alignment.
type Filter struct {
	Threshold
	// AlignEnd additionally requires the alignment to reach a read end.
	AlignEnd    bool
	RelaxMargin int
}

// Alignment is a scored overlap between two named reads.
type Alignment struct {
	// Index is the position of the candidate in its input, when known.
	Index      int
	A, B       string
	LenA, LenB int
	Result
	Overlap    int
	ReachesEnd bool
	Pass       bool
}

// Evaluate fills the overlap fields of an alignment and applies f.
func (f Filter) Evaluate(a, b string, lenA, lenB int, r Result) Alignment {
	al := Alignment{A: a, B: b, LenA: lenA, LenB: lenB, Result: r}
	al.Overlap = EstimateOverlap(r.Seed, lenA, lenB)
	al.ReachesEnd = ReachesEnd(r.Seed, lenA, lenB, f.RelaxMargin)
	al.Pass = f.Accept(r.Best, al.Overlap) && (!f.AlignEnd || al.ReachesEnd)
	return al
}

// ForwardA maps the A coordinates of al back onto A's forward strand as a
// half-open interval.
func (al Alignment) ForwardA() (begin, end int) {
	if al.Strand == ReverseComplement {
		return al.LenA - al.Seed.EndH, al.LenA - al.Seed.BeginH
	}
	return al.Seed.BeginH, al.Seed.EndH
}
