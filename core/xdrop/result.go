package xdrop

import (
	"errors"
	"math"
)

var (
	ErrInvalidSeed = errors.New("xdrop: invalid seed")
	ErrScheme      = errors.New("xdrop: invalid scoring scheme")
	ErrLaneRange   = errors.New("xdrop: scheme does not fit lane width")
)

// negInf marks cells outside the matrix or anti-diagonals without cells.
const negInf = math.MinInt32

// Score is the (best, termination) pair of an extension. Exit is the score
// of the last anti-diagonals computed when the extension stopped.
type Score struct {
	Best int
	Exit int
}

// Add sums two scores pairwise.
func (s Score) Add(o Score) Score {
	return Score{Best: s.Best + o.Best, Exit: s.Exit + o.Exit}
}

// Reason tells why a one-direction extension stopped.
type Reason uint8

const (
	// Exhausted: the band ran off the end of the input, or the tail ran out.
	Exhausted Reason = iota
	// XDrop: the last two anti-diagonals fell below best - dropOff.
	XDrop
)

func (r Reason) String() string {
	if r == XDrop {
		return "xdrop"
	}
	return "exhausted"
}

// Half is the outcome of one One-Direction Extension.
type Half struct {
	Score
	// H and V count the characters of each input the extension took in
	// before it stopped. A tail gives back nothing beyond where it started.
	H, V int
	// BestH and BestV locate the best-scoring cell.
	BestH, BestV  int
	Reason        Reason
	AntiDiagonals int
}

// tracker holds the running extremes shared by the scalar and vector phases.
type tracker struct {
	drop int

	best         int
	bestH, bestV int

	// maxima of the two most recently observed anti-diagonals
	prev, prev2 int
	// most recent maximum that was not negInf
	last  int
	steps int
}

func newTracker(drop int) tracker {
	// The origin cell (0,0) scores 0 and acts as anti-diagonal zero.
	return tracker{drop: drop, prev: 0, prev2: negInf}
}

// observe records the maximum of the next anti-diagonal, reached at cell
// (atH, atV), and reports whether the extension must stop.
func (t *tracker) observe(top, atH, atV int) bool {
	t.steps++
	if top > t.best {
		t.best, t.bestH, t.bestV = top, atH, atV
	}
	if top != negInf {
		t.last = top
	}
	t.prev2, t.prev = t.prev, top
	return max(t.prev, t.prev2) < t.best-t.drop
}

func (t *tracker) exit() int {
	if e := max(t.prev, t.prev2); e != negInf {
		return e
	}
	return t.last
}

func (t *tracker) half(r Reason, h, v int) Half {
	return Half{
		Score:         Score{Best: t.best, Exit: t.exit()},
		H:             h,
		V:             v,
		BestH:         t.bestH,
		BestV:         t.bestV,
		Reason:        r,
		AntiDiagonals: t.steps,
	}
}
