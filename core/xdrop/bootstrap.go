package xdrop

// table is a scalar DP block anchored at cell (0,0), filled one
// anti-diagonal at a time. Phase I uses a (logical+2)-square block to seed
// the vector loop; sized to the whole matrix it is a plain X-drop aligner.
type table struct {
	s    Scheme
	h, v []byte
	n, m int
	size int

	score []int
	// extra cost charged when a gap leaves the cell along H (openH) or
	// along V (openV): GapOpen, or 0 when that gap is already open
	openH, openV []int
}

func newTable(s Scheme, h, v []byte, size int) *table {
	t := &table{
		s:     s,
		h:     h,
		v:     v,
		n:     len(h),
		m:     len(v),
		size:  size,
		score: make([]int, size*size),
		openH: make([]int, size*size),
		openV: make([]int, size*size),
	}
	for k := range t.score {
		t.score[k] = negInf
	}
	t.score[0] = 0
	t.openH[0], t.openV[0] = s.GapOpen, s.GapOpen
	return t
}

func (t *table) index(i, j int) int { return i*t.size + j }

func (t *table) at(i, j int) int {
	if i < 0 || j < 0 || i >= t.size || j >= t.size {
		return negInf
	}
	return t.score[t.index(i, j)]
}

// fill computes anti-diagonals 1..last, reporting every one to tr. It
// returns the outcome and true when the extension finished inside the block.
// A drop at anti-diagonal d has taken in d-1 characters of each input, or
// all of a shorter one.
func (t *table) fill(tr *tracker, last int) (Half, bool) {
	for d := 1; d <= last; d++ {
		if d > t.n+t.m {
			return tr.half(Exhausted, t.n, t.m), true
		}
		top, atH, atV := negInf, 0, 0
		for i := max(0, d-t.size+1); i <= min(d, t.size-1); i++ {
			j := d - i
			if i > t.n || j > t.m {
				continue
			}
			val := t.cell(i, j)
			if i > 0 && j > 0 && val > top {
				top, atH, atV = val, i, j
			}
		}
		if tr.observe(top, atH, atV) {
			return tr.half(XDrop, min(d-1, t.n), min(d-1, t.m)), true
		}
	}
	if last >= t.n+t.m {
		return tr.half(Exhausted, t.n, t.m), true
	}
	return Half{}, false
}

func (t *table) cell(i, j int) int {
	s := t.s
	var val, oh, ov int
	switch {
	case i == 0:
		val, oh, ov = s.GapOpen+j*s.Gap, s.GapOpen, 0
	case j == 0:
		val, oh, ov = s.GapOpen+i*s.Gap, 0, s.GapOpen
	default:
		up, left := t.index(i-1, j), t.index(i, j-1)
		diag := plus(t.at(i-1, j-1), s.pair(t.h[i-1], t.v[j-1]))
		fromH := plus(t.score[up], s.Gap+t.openH[up])
		fromV := plus(t.score[left], s.Gap+t.openV[left])
		val = max(diag, fromH, fromV)
		oh, ov = s.GapOpen, s.GapOpen
		if val != diag {
			// a gap tied in both directions may be extended either way
			if val == fromH {
				oh = 0
			}
			if val == fromV {
				ov = 0
			}
		}
	}
	k := t.index(i, j)
	t.score[k], t.openH[k], t.openV[k] = val, oh, ov
	return val
}

func plus(a, b int) int {
	if a == negInf {
		return negInf
	}
	return a + b
}
