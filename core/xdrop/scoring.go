package xdrop

import "fmt"

// Scheme holds the per-base costs of one alignment call.
//
// Gap is charged for every gapped base. GapOpen is charged on top of Gap for
// the first base of a gap; zero gives linear gaps.
type Scheme struct {
	Match    int
	Mismatch int
	Gap      int
	GapOpen  int
}

// Linear returns a linear-gap scheme.
func Linear(match, mismatch, gap int) Scheme {
	return Scheme{Match: match, Mismatch: mismatch, Gap: gap}
}

// Affine returns a scheme where a gap of length n costs gapOpen + n*gapExtend.
func Affine(match, mismatch, gapOpen, gapExtend int) Scheme {
	return Scheme{Match: match, Mismatch: mismatch, Gap: gapExtend, GapOpen: gapOpen}
}

// IsAffine reports whether gap opening carries an extra cost.
func (s Scheme) IsAffine() bool { return s.GapOpen != 0 }

// Validate checks the sign conventions.
func (s Scheme) Validate() error {
	switch {
	case s.Match < 0:
		return fmt.Errorf("%w: match %d must be >= 0", ErrScheme, s.Match)
	case s.Mismatch > 0:
		return fmt.Errorf("%w: mismatch %d must be <= 0", ErrScheme, s.Mismatch)
	case s.Gap > 0:
		return fmt.Errorf("%w: gap %d must be <= 0", ErrScheme, s.Gap)
	case s.GapOpen > 0:
		return fmt.Errorf("%w: gap open %d must be <= 0", ErrScheme, s.GapOpen)
	}
	return nil
}

// step is the largest magnitude a single DP transition can add to a cell.
func (s Scheme) step() int {
	return max(s.Match, -s.Mismatch, -(s.Gap + s.GapOpen))
}

// pair scores two encoded bases.
func (s Scheme) pair(h, v byte) int {
	if h == v {
		return s.Match
	}
	return s.Mismatch
}

func (s Scheme) String() string {
	if s.IsAffine() {
		return fmt.Sprintf("match=%d mismatch=%d gap-open=%d gap-extend=%d", s.Match, s.Mismatch, s.GapOpen, s.Gap)
	}
	return fmt.Sprintf("match=%d mismatch=%d gap=%d", s.Match, s.Mismatch, s.Gap)
}
