// core/lane/lane.go
//
// Package lane is a fixed-width register of signed integer lanes with
// saturating arithmetic. One register holds one anti-diagonal of a
// dynamic-programming matrix; the top lane is reserved as a sentinel.
package lane

import "math"

// Int is the set of lane element types.
type Int interface {
	int8 | int16 | int32
}

// Vec is a register of Width lanes. Whole-register arithmetic goes through
// the package functions; Lane, Set and Lanes give the indexed view of the
// same buffer.
type Vec[T Int] struct {
	lanes [Width]T
}

// Mask is a lane-wise boolean produced by comparisons.
type Mask [Width]bool

func bounds[T Int]() (lo, hi int64) {
	var z T
	switch any(z).(type) {
	case int8:
		return math.MinInt8, math.MaxInt8
	case int16:
		return math.MinInt16, math.MaxInt16
	default:
		return math.MinInt32, math.MaxInt32
	}
}

// NegInf is the "negative infinity" of T: the smallest representable value.
func NegInf[T Int]() T {
	lo, _ := bounds[T]()
	return T(lo)
}

// MaxValue is the largest representable value of T.
func MaxValue[T Int]() T {
	_, hi := bounds[T]()
	return T(hi)
}

// Lane returns lane k.
func (v *Vec[T]) Lane(k int) T { return v.lanes[k] }

// Set stores x into lane k.
func (v *Vec[T]) Set(k int, x T) { v.lanes[k] = x }

// Lanes is the indexed view of the register.
func (v *Vec[T]) Lanes() *[Width]T { return &v.lanes }

// Broadcast returns a register with every lane set to x.
func Broadcast[T Int](x T) (r Vec[T]) {
	for k := range r.lanes {
		r.lanes[k] = x
	}
	return r
}

// AddSat adds lane-wise, clamping to the range of T. NegInf is absorbing.
func AddSat[T Int](a, b Vec[T]) (r Vec[T]) {
	lo, hi := bounds[T]()
	for k := range r.lanes {
		x, y := int64(a.lanes[k]), int64(b.lanes[k])
		if x == lo || y == lo {
			r.lanes[k] = T(lo)
			continue
		}
		r.lanes[k] = T(clamp(x+y, lo, hi))
	}
	return r
}

// SubSat subtracts b from a lane-wise, clamping to the range of T.
// NegInf in a stays NegInf.
func SubSat[T Int](a, b Vec[T]) (r Vec[T]) {
	lo, hi := bounds[T]()
	for k := range r.lanes {
		x := int64(a.lanes[k])
		if x == lo {
			r.lanes[k] = T(lo)
			continue
		}
		r.lanes[k] = T(clamp(x-int64(b.lanes[k]), lo, hi))
	}
	return r
}

// Max returns the lane-wise maximum.
func Max[T Int](a, b Vec[T]) (r Vec[T]) {
	for k := range r.lanes {
		r.lanes[k] = max(a.lanes[k], b.lanes[k])
	}
	return r
}

// Eq compares lane-wise for equality.
func Eq[T Int](a, b Vec[T]) (m Mask) {
	for k := range m {
		m[k] = a.lanes[k] == b.lanes[k]
	}
	return m
}

// Select picks a where m is set and b elsewhere.
func Select[T Int](m Mask, a, b Vec[T]) (r Vec[T]) {
	for k := range r.lanes {
		if m[k] {
			r.lanes[k] = a.lanes[k]
		} else {
			r.lanes[k] = b.lanes[k]
		}
	}
	return r
}

// ShiftLeft moves lane k+1 into lane k, drops lane 0 and fills the top
// lane with NegInf.
func ShiftLeft[T Int](a Vec[T]) (r Vec[T]) {
	copy(r.lanes[:Width-1], a.lanes[1:])
	r.lanes[Width-1] = NegInf[T]()
	return r
}

// ShiftRight moves lane k-1 into lane k, drops the top lane and fills lane 0
// with NegInf.
func ShiftRight[T Int](a Vec[T]) (r Vec[T]) {
	copy(r.lanes[1:], a.lanes[:Width-1])
	r.lanes[0] = NegInf[T]()
	return r
}

// Or combines two masks.
func (m Mask) Or(o Mask) (r Mask) {
	for k := range r {
		r[k] = m[k] || o[k]
	}
	return r
}

func clamp(x, lo, hi int64) int64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
