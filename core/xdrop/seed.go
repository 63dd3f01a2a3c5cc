package xdrop

import "fmt"

// Seed is an anchor on two sequences, as half-open [Begin, End) offsets into
// H (horizontal/target) and V (vertical/query).
type Seed struct {
	BeginH, EndH int
	BeginV, EndV int
}

// NewSeed builds the seed of a k-mer match starting at posH on H and posV on V.
func NewSeed(posH, posV, k int) Seed {
	return Seed{BeginH: posH, EndH: posH + k, BeginV: posV, EndV: posV + k}
}

// LenH is the span of the seed on H.
func (s Seed) LenH() int { return s.EndH - s.BeginH }

// LenV is the span of the seed on V.
func (s Seed) LenV() int { return s.EndV - s.BeginV }

// check validates the seed against sequences of length n (H) and m (V).
func (s Seed) check(n, m int) error {
	if s.BeginH < 0 || s.BeginH > s.EndH || s.EndH > n ||
		s.BeginV < 0 || s.BeginV > s.EndV || s.EndV > m {
		return fmt.Errorf("%w: %v outside %dx%d", ErrInvalidSeed, s, n, m)
	}
	if s.LenH() != s.LenV() {
		return fmt.Errorf("%w: anchor spans differ (%d on H, %d on V)", ErrInvalidSeed, s.LenH(), s.LenV())
	}
	return nil
}

func (s Seed) String() string {
	return fmt.Sprintf("H[%d,%d) V[%d,%d)", s.BeginH, s.EndH, s.BeginV, s.EndV)
}

// Direction selects which side(s) of the seed get extended.
type Direction int

const (
	None Direction = iota
	Left
	Right
	Both
)

func (d Direction) String() string {
	switch d {
	case None:
		return "none"
	case Left:
		return "left"
	case Right:
		return "right"
	case Both:
		return "both"
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// ParseDirection maps "none", "left", "right" and "both" to a Direction.
func ParseDirection(s string) (Direction, error) {
	for d := None; d <= Both; d++ {
		if d.String() == s {
			return d, nil
		}
	}
	return None, fmt.Errorf("unknown direction %q (want none|left|right|both)", s)
}

// Advance is the axis the band moves along on one step.
type Advance uint8

const (
	AdvanceH Advance = iota // "right": consume one more character of H
	AdvanceV                // "down": consume one more character of V
)

func (a Advance) flip() Advance { return a ^ 1 }
