package xdrop

import "logan-core/lane"

const (
	// logical is the number of lanes that carry cells; the top lane is the
	// sentinel.
	logical = lane.Width - 1
	middle  = logical / 2
	// tailSteps is the number of steps taken after one sequence runs out.
	tailSteps = logical - 3
	// rescaleMargin is kept free below the lane maximum so a single step
	// cannot saturate before the overflow guard runs.
	rescaleMargin = 25
)

type phase uint8

const (
	withinBand phase = iota
	tail
)

// wavefront is the banded anti-diagonal loop over one pair of encoded
// sequences. d3 is computed from d1 and d2; lane k of d3 is cell
// (lo+k, diag-lo-k), d1 and d2 are aligned one row lower (base lo-1).
type wavefront[T lane.Int] struct {
	h, v   []byte
	n, m   int
	affine bool

	ninf  T
	limit int

	match, mismatch, gap, open, zero, inf lane.Vec[T]
	padH, padV                            lane.Vec[T]

	d1, d2, d3 lane.Vec[T]
	// gap-open history aligned with d2 and d3
	oh2, ov2, oh3, ov3 lane.Vec[T]
	// characters of H and V under each lane of d3
	vh, vv lane.Vec[T]

	diag, lo int
	offset   int
	track    tracker
	// reach when the tail began
	endH, endV int
}

func newWavefront[T lane.Int](s Scheme, h, v []byte, boot *table, tr tracker) *wavefront[T] {
	w := &wavefront[T]{
		h:        h,
		v:        v,
		n:        len(h),
		m:        len(v),
		affine:   s.IsAffine(),
		ninf:     lane.NegInf[T](),
		limit:    int(lane.MaxValue[T]()) - rescaleMargin,
		match:    lane.Broadcast(T(s.Match)),
		mismatch: lane.Broadcast(T(s.Mismatch)),
		gap:      lane.Broadcast(T(s.Gap)),
		open:     lane.Broadcast(T(s.GapOpen)),
		inf:      lane.Broadcast(lane.NegInf[T]()),
		padH:     lane.Broadcast(T(padH)),
		padV:     lane.Broadcast(T(padV)),
		diag:     logical + 3,
		lo:       2,
		track:    tr,
	}
	w.d3 = w.inf
	w.load(boot)
	return w
}

// load copies anti-diagonals logical+1 (d1) and logical+2 (d2) out of the
// bootstrap block, choosing an initial offset when their scores would not
// fit the lane type.
func (w *wavefront[T]) load(boot *table) {
	var d1, d2 [lane.Width]int
	for k := 0; k < lane.Width; k++ {
		d1[k], d2[k] = negInf, negInf
	}
	for k := 0; k < logical; k++ {
		d1[k] = boot.at(1+k, logical-k)
	}
	for k := 0; k <= logical; k++ {
		d2[k] = boot.at(1+k, logical+1-k)
	}

	top, low := negInf, 0
	for _, d := range [][lane.Width]int{d1, d2} {
		for _, x := range d {
			if x == negInf {
				continue
			}
			if top == negInf || x < low {
				low = x
			}
			top = max(top, x)
		}
	}
	if top != negInf {
		w.offset = w.rebase(top, low, top)
	}

	for k := 0; k < lane.Width; k++ {
		w.d1.Set(k, w.raw(d1[k]))
		w.d2.Set(k, w.raw(d2[k]))
		if w.affine && d2[k] != negInf {
			at := boot.index(1+k, logical+1-k)
			w.oh2.Set(k, T(boot.openH[at]))
			w.ov2.Set(k, T(boot.openV[at]))
		}
	}

	for k := 0; k < logical; k++ {
		w.vh.Set(k, w.hcode(w.lo+k-1))
		w.vv.Set(k, w.vcode(w.diag-w.lo-k-1))
	}
	w.vh.Set(logical, T(padH))
	w.vv.Set(logical, T(padV))
}

// raw converts a true score to a lane value relative to offset.
func (w *wavefront[T]) raw(x int) T {
	if x == negInf {
		return w.ninf
	}
	x -= w.offset
	if x <= int(w.ninf) {
		return w.ninf
	}
	return T(x)
}

// score converts a lane value back to a true score.
func (w *wavefront[T]) score(x T) int {
	if x == w.ninf {
		return negInf
	}
	return int(x) + w.offset
}

func (w *wavefront[T]) hcode(i int) T {
	if i >= w.n {
		return T(padH)
	}
	return T(w.h[i])
}

func (w *wavefront[T]) vcode(j int) T {
	if j >= w.m {
		return T(padV)
	}
	return T(w.v[j])
}

// canAdvance reports whether moving along a would load a real character.
func (w *wavefront[T]) canAdvance(a Advance) bool {
	if a == AdvanceH {
		return w.lo+logical-1 < w.n
	}
	return w.diag-w.lo < w.m
}

// inMatrix reports whether the band still covers at least one cell.
func (w *wavefront[T]) inMatrix() bool {
	first := max(w.lo, w.diag-w.m, 1)
	last := min(w.lo+logical-1, w.n, w.diag-1)
	return first <= last
}

// run drives both phases through one step body and returns the outcome.
func (w *wavefront[T]) run() Half {
	var (
		ph    = withinBand
		left  = tailSteps
		dir   = AdvanceV
		moved bool
	)
	for {
		if ph == withinBand && !(w.canAdvance(AdvanceH) && w.canAdvance(AdvanceV)) {
			ph = tail
			w.endH, w.endV = w.reach()
			if !moved {
				// the tail alternates starting with the reverse of dir
				dir = w.opening().flip()
			}
		}
		if ph == tail {
			if left == 0 {
				return w.stop(Exhausted, ph)
			}
			left--
		}
		if !w.inMatrix() {
			return w.stop(Exhausted, ph)
		}
		if w.step() {
			return w.stop(XDrop, ph)
		}
		switch {
		case ph == tail:
			dir = dir.flip()
		case moved:
			dir = w.steer(dir)
		default:
			dir = w.opening()
		}
		moved = true
		w.advance(dir)
	}
}

// reach is the number of characters of each input loaded into the band.
func (w *wavefront[T]) reach() (int, int) {
	return min(w.lo+logical-1, w.n), min(w.diag-w.lo, w.m)
}

// stop reports the outcome with the characters loaded on each axis, except
// that an X-drop in the tail falls back to the extents saved when the tail
// began.
func (w *wavefront[T]) stop(r Reason, ph phase) Half {
	h, v := w.reach()
	if ph == tail && r == XDrop {
		h, v = w.endH, w.endV
	}
	return w.track.half(r, h, v)
}

// step computes d3 from d1 and d2, reports its maximum to the tracker and
// rescales when needed. It returns true when the X-drop rule fires.
func (w *wavefront[T]) step() bool {
	s := lane.Select(lane.Eq(w.vh, w.vv), w.match, w.mismatch)
	diag := lane.AddSat(w.d1, s)

	fromH := lane.AddSat(w.d2, w.gap)
	fromV := lane.AddSat(lane.ShiftLeft(w.d2), w.gap)
	if w.affine {
		fromH = lane.AddSat(fromH, w.oh2)
		fromV = lane.AddSat(fromV, lane.ShiftLeft(w.ov2))
	}
	w.d3 = lane.Max(diag, lane.Max(fromH, fromV))

	if w.affine {
		// a gap tied in both directions may be extended either way
		isDiag := lane.Eq(w.d3, diag)
		isH := lane.Eq(w.d3, fromH)
		isV := lane.Eq(w.d3, fromV)
		w.oh3 = lane.Select(isDiag, w.open, lane.Select(isH, w.zero, w.open))
		w.ov3 = lane.Select(isDiag, w.open, lane.Select(isV, w.zero, w.open))
	}

	outside := lane.Eq(w.vh, w.padH).Or(lane.Eq(w.vv, w.padV))
	w.d3 = lane.Select(outside, w.inf, w.d3)
	w.d3.Set(logical, w.ninf)

	top, at, _ := w.peaks()
	if w.track.observe(w.score(top), w.lo+at, w.diag-w.lo-at) {
		return true
	}
	w.rescale(top)
	return false
}

// peaks returns the largest logical lane of d3 with the first and last lanes
// holding it.
func (w *wavefront[T]) peaks() (top T, first, last int) {
	lanes := w.d3.Lanes()
	top = lanes[0]
	for k := 1; k < logical; k++ {
		switch {
		case lanes[k] > top:
			top, first, last = lanes[k], k, k
		case lanes[k] == top:
			last = k
		}
	}
	return top, first, last
}

// rebase returns the amount to subtract from every live lane so that a
// maximum of top fits the lane type again, or 0 when it already does. low is
// the smallest live lane and high the largest live lane still in use, which
// can exceed top near the end of the matrix.
func (w *wavefront[T]) rebase(top, low, high int) int {
	switch {
	case top > w.limit:
		return max(low, top-w.limit)
	case top < -w.limit:
		return high - w.limit
	}
	return 0
}

// rescale moves d2 and d3 back into range when the maximum of d3 got close
// to either end of the lane type, keeping the true scores in offset.
func (w *wavefront[T]) rescale(top T) {
	if top == w.ninf {
		return
	}
	t := int(top)
	if t <= w.limit && t >= -w.limit {
		return
	}
	low, high := t, t
	for _, x := range w.d3.Lanes()[:logical] {
		if x != w.ninf {
			low = min(low, int(x))
		}
	}
	for _, x := range w.d2.Lanes() {
		if x != w.ninf {
			high = max(high, int(x))
		}
	}
	// a single subtraction has to fit in T
	sub := max(w.rebase(t, low, high), int(w.ninf)+1)
	by := lane.Broadcast(T(sub))
	w.d2 = lane.SubSat(w.d2, by)
	w.d3 = lane.SubSat(w.d3, by)
	w.offset += sub
}

// steer picks the next move from where the best lanes of d3 sit: along H
// when they lean past the middle of the band, along V when they lean before
// it. A centred maximum reverses the previous move, so swapping the inputs
// swaps every move.
func (w *wavefront[T]) steer(prev Advance) Advance {
	_, first, last := w.peaks()
	switch s := first + last; {
	case s > 2*middle:
		return AdvanceH
	case s < 2*middle:
		return AdvanceV
	}
	return prev.flip()
}

// opening picks the first move, which has no previous move to reverse. A
// band that can only grow one way takes it; otherwise a centred maximum is
// settled by the band's asymmetry and then by the input still to load.
func (w *wavefront[T]) opening() Advance {
	switch h, v := w.canAdvance(AdvanceH), w.canAdvance(AdvanceV); {
	case h && !v:
		return AdvanceH
	case v && !h:
		return AdvanceV
	}
	_, first, last := w.peaks()
	c := first + last - 2*middle
	if c == 0 {
		c = w.lean()
	}
	if c > 0 {
		return AdvanceH
	}
	return AdvanceV
}

// lean compares the band with its mirror image, in which lane k of d1 and d3
// trades places with lane logical-1-k and lane k of d2 with lane logical-k.
// It is positive when the H side wins the first difference, negative when
// the V side does, and falls back to the characters left on each axis.
func (w *wavefront[T]) lean() int {
	if c := mirrored(w.d3.Lanes()[:logical]); c != 0 {
		return c
	}
	if c := mirrored(w.d2.Lanes()[:]); c != 0 {
		return c
	}
	if c := mirrored(w.d1.Lanes()[:logical]); c != 0 {
		return c
	}
	if w.affine {
		if c := crossed(w.d2.Lanes()[:], w.oh2.Lanes()[:], w.ov2.Lanes()[:], w.ninf); c != 0 {
			return c
		}
	}
	return w.ahead()
}

// ahead compares the input not yet loaded: the first differing character,
// then the longer remainder, wins.
func (w *wavefront[T]) ahead() int {
	i, j := w.lo+logical-1, w.diag-w.lo
	for ; i < w.n && j < w.m; i, j = i+1, j+1 {
		a, b := base(w.h[i]), base(w.v[j])
		switch {
		case a > b:
			return 1
		case a < b:
			return -1
		}
	}
	switch {
	case w.n-i > w.m-j:
		return 1
	case w.n-i < w.m-j:
		return -1
	}
	return 0
}

// base drops the axis an unknown character was encoded for.
func base(c byte) byte {
	if c == otherV {
		return otherH
	}
	return c
}

// mirrored compares lanes from both ends inwards and returns the sign of
// the first difference, positive when the upper lane is larger.
func mirrored[T lane.Int](lanes []T) int {
	for k, j := 0, len(lanes)-1; k < j; k, j = k+1, j-1 {
		switch {
		case lanes[j] > lanes[k]:
			return 1
		case lanes[j] < lanes[k]:
			return -1
		}
	}
	return 0
}

// crossed compares the H gap history of each live lane with the V history
// of its mirror lane.
func crossed[T lane.Int](d, oh, ov []T, ninf T) int {
	for k, j := 0, len(d)-1; j >= 0; k, j = k+1, j-1 {
		if d[k] == ninf {
			continue
		}
		switch {
		case ov[k] > oh[j]:
			return 1
		case ov[k] < oh[j]:
			return -1
		}
	}
	return 0
}

// advance moves the band one step and retires d1.
func (w *wavefront[T]) advance(a Advance) {
	w.diag++
	if a == AdvanceH {
		w.lo++
		w.vh = lane.ShiftLeft(w.vh)
		w.vh.Set(logical-1, w.hcode(w.lo+logical-2))
		w.vh.Set(logical, T(padH))
		w.d1 = lane.ShiftLeft(w.d2)
		w.d2 = w.d3
		if w.affine {
			w.oh2, w.ov2 = w.oh3, w.ov3
		}
		return
	}
	w.vv = lane.ShiftRight(w.vv)
	w.vv.Set(0, w.vcode(w.diag-w.lo-1))
	w.d1 = w.d2
	w.d2 = lane.ShiftRight(w.d3)
	if w.affine {
		w.oh2 = lane.ShiftRight(w.oh3)
		w.ov2 = lane.ShiftRight(w.ov3)
	}
}
