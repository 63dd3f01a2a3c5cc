package xdrop

// Extension is the full outcome of one seed extension.
type Extension struct {
	Score
	// Seed is the reconciled seed: begins moved back by the left extent, ends
	// moved forward by the right extent.
	Seed Seed
	// Anchor is the score of the seed itself, included in Score.
	Anchor      int
	Left, Right Half
}

// ExtendOneDirection aligns h against v starting from their first
// characters. Both are ASCII bases; the caller orients them (reversed
// prefixes for a leftward extension).
func (e *Engine) ExtendOneDirection(h, v []byte) Half {
	return e.one(encode(h, false, otherH), encode(v, false, otherV))
}

// Extend extends seed along dir and updates it in place. The score is the sum
// of the left half, the anchor and the right half.
//
// Empty sequences give a zero score and leave seed untouched.
func (e *Engine) Extend(seed *Seed, dir Direction, h, v []byte) (Score, error) {
	x, err := e.ExtendSeed(*seed, dir, h, v)
	if err != nil {
		return Score{}, err
	}
	*seed = x.Seed
	return x.Score, nil
}

// ExtendSeed is Extend without the in-place update, reporting both halves.
func (e *Engine) ExtendSeed(seed Seed, dir Direction, h, v []byte) (Extension, error) {
	x := Extension{Seed: seed}
	if len(h) == 0 || len(v) == 0 {
		return x, nil
	}
	if err := seed.check(len(h), len(v)); err != nil {
		return x, err
	}

	x.Anchor = e.anchor(seed, h, v)
	x.Score = Score{Best: x.Anchor, Exit: x.Anchor}

	if dir == Left || dir == Both {
		left := seed
		x.Left = e.left(&left, h, v)
		x.Seed.BeginH, x.Seed.BeginV = left.BeginH, left.BeginV
		x.Score = x.Score.Add(x.Left.Score)
	}
	if dir == Right || dir == Both {
		right := seed
		x.Right = e.right(&right, h, v)
		x.Seed.EndH, x.Seed.EndV = right.EndH, right.EndV
		x.Score = x.Score.Add(x.Right.Score)
	}
	return x, nil
}

func (e *Engine) left(seed *Seed, h, v []byte) Half {
	half := e.one(
		encode(h[:seed.BeginH], true, otherH),
		encode(v[:seed.BeginV], true, otherV),
	)
	seed.BeginH -= half.H
	seed.BeginV -= half.V
	return half
}

func (e *Engine) right(seed *Seed, h, v []byte) Half {
	half := e.one(
		encode(h[seed.EndH:], false, otherH),
		encode(v[seed.EndV:], false, otherV),
	)
	seed.EndH += half.H
	seed.EndV += half.V
	return half
}

// anchor scores the seed ungapped, base against base.
func (e *Engine) anchor(seed Seed, h, v []byte) int {
	hs := encode(h[seed.BeginH:seed.EndH], false, otherH)
	vs := encode(v[seed.BeginV:seed.EndV], false, otherV)
	total := 0
	for i := range hs {
		total += e.scheme.pair(hs[i], vs[i])
	}
	return total
}

// Extend is the one-shot form of (*Engine).Extend with automatic lanes.
func Extend(seed *Seed, dir Direction, h, v []byte, s Scheme, dropOff int) (Score, error) {
	e, err := New(Config{Scheme: s, DropOff: dropOff})
	if err != nil {
		return Score{}, err
	}
	return e.Extend(seed, dir, h, v)
}
