package xdrop

import (
	"errors"
	"math/rand"
	"strings"
	"testing"
)

const scenarioH = "AAAACCCCGGGGTTTT"

// scenarioB differs from scenarioH at position 8 only.
const scenarioB = "AAAACCCCAGGGTTTT"

func mustEngine(t *testing.T, cfg Config) *Engine {
	t.Helper()
	e, err := New(cfg)
	if err != nil {
		t.Fatalf("New(%+v): %v", cfg, err)
	}
	return e
}

// mutate copies src with the given substitution and indel rates.
func mutate(r *rand.Rand, src string, sub, indel float64) string {
	const bases = "ACGT"
	var b strings.Builder
	for i := 0; i < len(src); i++ {
		x := r.Float64()
		switch {
		case x < indel/2:
			// deletion
		case x < indel:
			b.WriteByte(bases[r.Intn(4)])
			b.WriteByte(src[i])
		case x < indel+sub:
			c := bases[r.Intn(4)]
			for c == src[i] {
				c = bases[r.Intn(4)]
			}
			b.WriteByte(c)
		default:
			b.WriteByte(src[i])
		}
	}
	return b.String()
}

func randomDNA(r *rand.Rand, n int) string {
	const bases = "ACGT"
	b := make([]byte, n)
	for i := range b {
		b[i] = bases[r.Intn(4)]
	}
	return string(b)
}

func TestExtendScenarios(t *testing.T) {
	tests := []struct {
		name     string
		v        string
		drop     int
		want     Score
		wantSeed Seed
	}{
		{"perfect", scenarioH, 100, Score{16, 16}, Seed{0, 16, 0, 16}},
		{"one substitution", scenarioB, 100, Score{14, 14}, Seed{0, 16, 0, 16}},
		// the seed end follows the band, which had read 9 more bases when it dropped
		{"stop at substitution", scenarioB, 0, Score{8, 7}, Seed{0, 13, 0, 13}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			seed := NewSeed(0, 0, 4)
			got, err := Extend(&seed, Both, []byte(scenarioH), []byte(tc.v), Linear(1, -1, -1), tc.drop)
			if err != nil {
				t.Fatalf("Extend: %v", err)
			}
			if got != tc.want {
				t.Fatalf("score got %+v, want %+v", got, tc.want)
			}
			if seed != tc.wantSeed {
				t.Fatalf("seed got %v, want %v", seed, tc.wantSeed)
			}
		})
	}
}

func TestStopReason(t *testing.T) {
	e := mustEngine(t, Config{Scheme: Linear(1, -1, -1), DropOff: 0})
	x, err := e.ExtendSeed(NewSeed(0, 0, 4), Right, []byte(scenarioH), []byte(scenarioB))
	if err != nil {
		t.Fatal(err)
	}
	if x.Right.Reason != XDrop {
		t.Fatalf("reason got %v, want %v", x.Right.Reason, XDrop)
	}
	if x.Right.H != 9 || x.Right.V != 9 {
		t.Fatalf("extent got (%d,%d), want (9,9)", x.Right.H, x.Right.V)
	}
	if x.Right.BestH != 4 || x.Right.BestV != 4 {
		t.Fatalf("best cell got (%d,%d), want (4,4)", x.Right.BestH, x.Right.BestV)
	}
	if x.Anchor != 4 {
		t.Fatalf("anchor got %d, want 4", x.Anchor)
	}

	e = mustEngine(t, Config{Scheme: Linear(1, -1, -1), DropOff: 100})
	x, err = e.ExtendSeed(NewSeed(0, 0, 4), Right, []byte(scenarioH), []byte(scenarioB))
	if err != nil {
		t.Fatal(err)
	}
	if x.Right.Reason != Exhausted {
		t.Fatalf("reason got %v, want %v", x.Right.Reason, Exhausted)
	}
}

func TestExtendDirections(t *testing.T) {
	h := []byte("TTTTACGTACGTGGGG")
	v := []byte("TTTTACGTACGTGGGG")
	s := Linear(1, -1, -1)
	tests := []struct {
		dir      Direction
		want     int
		wantSeed Seed
	}{
		{None, 4, Seed{6, 10, 6, 10}},
		{Left, 10, Seed{0, 10, 0, 10}},
		{Right, 10, Seed{6, 16, 6, 16}},
		{Both, 16, Seed{0, 16, 0, 16}},
	}
	for _, tc := range tests {
		t.Run(tc.dir.String(), func(t *testing.T) {
			seed := NewSeed(6, 6, 4)
			got, err := Extend(&seed, tc.dir, h, v, s, 10)
			if err != nil {
				t.Fatal(err)
			}
			if got.Best != tc.want {
				t.Fatalf("best got %d, want %d", got.Best, tc.want)
			}
			if seed != tc.wantSeed {
				t.Fatalf("seed got %v, want %v", seed, tc.wantSeed)
			}
		})
	}
}

func TestExtendEmptyInput(t *testing.T) {
	seed := NewSeed(3, 3, 2)
	for _, pair := range [][2]string{{"", "ACGT"}, {"ACGT", ""}, {"", ""}} {
		got, err := Extend(&seed, Both, []byte(pair[0]), []byte(pair[1]), Linear(1, -1, -1), 5)
		if err != nil {
			t.Fatalf("%q/%q: %v", pair[0], pair[1], err)
		}
		if got != (Score{}) {
			t.Fatalf("%q/%q: score got %+v, want zero", pair[0], pair[1], got)
		}
		if seed != NewSeed(3, 3, 2) {
			t.Fatalf("%q/%q: seed changed to %v", pair[0], pair[1], seed)
		}
	}
}

func TestExtendInvalidSeed(t *testing.T) {
	h, v := []byte("ACGTACGT"), []byte("ACGTAC")
	for _, seed := range []Seed{
		{BeginH: -1, EndH: 3, BeginV: 0, EndV: 4},
		{BeginH: 6, EndH: 9, BeginV: 0, EndV: 3},
		{BeginH: 0, EndH: 3, BeginV: 4, EndV: 7},
		{BeginH: 3, EndH: 2, BeginV: 3, EndV: 2},
		{BeginH: 0, EndH: 4, BeginV: 0, EndV: 3},
	} {
		s := seed
		_, err := Extend(&s, Both, h, v, Linear(1, -1, -1), 5)
		if !errors.Is(err, ErrInvalidSeed) {
			t.Fatalf("%v: error got %v, want ErrInvalidSeed", seed, err)
		}
		if s != seed {
			t.Fatalf("%v: seed changed to %v on error", seed, s)
		}
	}
}

func TestPerfectMatchCeiling(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for _, s := range []Scheme{Linear(1, -1, -1), Linear(2, -3, -2), Affine(3, -4, -3, -1)} {
		for _, n := range []int{1, 10, 40, 250} {
			x := []byte(randomDNA(r, n))
			seed := NewSeed(0, 0, n)
			got, err := Extend(&seed, Both, x, x, s, 10)
			if err != nil {
				t.Fatal(err)
			}
			if got.Best != n*s.Match || got.Exit != n*s.Match {
				t.Fatalf("%v n=%d: score got %+v, want %d", s, n, got, n*s.Match)
			}
		}
	}

	// Short enough that the whole extension happens inside the scalar block.
	x := []byte("GATTACAGATTACA")
	seed := NewSeed(5, 5, 3)
	got, err := Extend(&seed, Both, x, x, Linear(1, -1, -1), 3)
	if err != nil {
		t.Fatal(err)
	}
	if got.Best != len(x) {
		t.Fatalf("best got %d, want %d", got.Best, len(x))
	}
	if seed != NewSeed(0, 0, len(x)) {
		t.Fatalf("seed got %v, want full span", seed)
	}
}

// The tail runs out two cells short of the corner on every side longer than
// the scalar block, but the extents still cover the whole input.
func TestPerfectMatchFromShortSeed(t *testing.T) {
	r := rand.New(rand.NewSource(17))
	x := []byte(randomDNA(r, 300))
	for _, s := range []Scheme{Linear(1, -1, -1), Linear(2, -3, -2), Affine(3, -4, -3, -1)} {
		for _, lanes := range []Lanes{LanesAuto, Lanes32} {
			e := mustEngine(t, Config{Scheme: s, DropOff: 10, Lanes: lanes})
			got, err := e.ExtendSeed(NewSeed(120, 120, 12), Both, x, x)
			if err != nil {
				t.Fatal(err)
			}
			want := (len(x) - 4) * s.Match
			if got.Best != want || got.Exit != want {
				t.Fatalf("%v lanes=%v: score got %+v, want %d", s, lanes, got.Score, want)
			}
			if got.Seed != NewSeed(0, 0, len(x)) {
				t.Fatalf("%v lanes=%v: seed got %v, want full span", s, lanes, got.Seed)
			}
			if got.Left.BestH != 118 || got.Left.BestV != 118 || got.Right.BestH != 166 || got.Right.BestV != 166 {
				t.Fatalf("%v lanes=%v: best cells got left %+v right %+v", s, lanes, got.Left, got.Right)
			}
			if got.Left.Reason != Exhausted || got.Right.Reason != Exhausted {
				t.Fatalf("%v lanes=%v: reasons got %v/%v, want exhausted", s, lanes, got.Left.Reason, got.Right.Reason)
			}
		}
	}
}

func TestExtendSymmetry(t *testing.T) {
	r := rand.New(rand.NewSource(11))
	s := Linear(1, -1, -1)
	for trial := 0; trial < 300; trial++ {
		const k = 3
		// Both halves stay inside the scalar block, where every cell is exact.
		h := randomDNA(r, 4+r.Intn(5))
		v := mutate(r, h, 0.15, 0.1)
		if len(v) < k || len(v) > 8 {
			continue
		}
		posH := r.Intn(len(h) - k + 1)
		posV := r.Intn(len(v) - k + 1)
		drop := r.Intn(6)

		a := NewSeed(posH, posV, k)
		got, err := Extend(&a, Both, []byte(h), []byte(v), s, drop)
		if err != nil {
			t.Fatal(err)
		}
		b := NewSeed(posV, posH, k)
		mirror, err := Extend(&b, Both, []byte(v), []byte(h), s, drop)
		if err != nil {
			t.Fatal(err)
		}
		if got != mirror {
			t.Fatalf("h=%s v=%s seed=(%d,%d) drop=%d: got %+v, mirrored %+v", h, v, posH, posV, drop, got, mirror)
		}
	}
}

// Swapping the inputs must mirror every move of the band, so the scores and
// the reconciled seed come out transposed.
func TestExtendSymmetryLongReads(t *testing.T) {
	r := rand.New(rand.NewSource(13))
	schemes := []Scheme{Linear(1, -1, -1), Affine(3, -4, -3, -1), Linear(2, -3, -2), Affine(1, -2, -2, -1)}
	for trial := 0; trial < 60; trial++ {
		const k = 12
		h := randomDNA(r, 60+r.Intn(140))
		indel := 0.0
		if trial%2 == 1 {
			indel = 0.03
		}
		v := mutate(r, h, 0.1, indel)
		if len(v) < k {
			continue
		}
		posH := r.Intn(len(h) - k + 1)
		posV := min(posH, len(v)-k)
		drop := []int{5, 20, 50}[r.Intn(3)]
		s := schemes[trial%len(schemes)]
		for _, lanes := range []Lanes{LanesAuto, Lanes32} {
			e := mustEngine(t, Config{Scheme: s, DropOff: drop, Lanes: lanes})
			got, err := e.ExtendSeed(NewSeed(posH, posV, k), Both, []byte(h), []byte(v))
			if err != nil {
				t.Fatal(err)
			}
			mirror, err := e.ExtendSeed(NewSeed(posV, posH, k), Both, []byte(v), []byte(h))
			if err != nil {
				t.Fatal(err)
			}
			if got.Score != mirror.Score {
				t.Fatalf("trial %d %v drop=%d lanes=%v: score got %+v, mirrored %+v", trial, s, drop, lanes, got.Score, mirror.Score)
			}
			m := mirror.Seed
			if want := (Seed{BeginH: m.BeginV, EndH: m.EndV, BeginV: m.BeginH, EndV: m.EndH}); got.Seed != want {
				t.Fatalf("trial %d %v drop=%d lanes=%v: seed got %v, mirrored %v", trial, s, drop, lanes, got.Seed, m)
			}
		}
	}
}

func TestScoreMonotoneInDropOff(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	schemes := []Scheme{Linear(1, -1, -1), Affine(3, -4, -3, -1)}
	for trial := 0; trial < 20; trial++ {
		h := randomDNA(r, 300)
		v := mutate(r, h, 0.1, 0.04)
		posH := 100 + r.Intn(50)
		posV := min(posH, len(v)-20)
		for _, s := range schemes {
			for _, lanes := range []Lanes{LanesAuto, Lanes32} {
				prev := negInf
				for drop := 0; drop <= 30; drop += 2 {
					e := mustEngine(t, Config{Scheme: s, DropOff: drop, Lanes: lanes})
					seed := NewSeed(posH, posV, 12)
					got, err := e.Extend(&seed, Both, []byte(h), []byte(v))
					if err != nil {
						t.Fatal(err)
					}
					if got.Best < prev {
						t.Fatalf("trial %d %v lanes=%v: best %d at drop %d below %d at drop %d", trial, s, lanes, got.Best, drop, prev, drop-2)
					}
					prev = got.Best
				}
			}
		}
	}
}

func TestReconciledSeedBounds(t *testing.T) {
	r := rand.New(rand.NewSource(5))
	pairs := [][2]string{
		{strings.Repeat("A", 80), strings.Repeat("C", 70)},
		{strings.Repeat("ACGT", 30), strings.Repeat("TGCA", 25)},
	}
	for i := 0; i < 40; i++ {
		h := randomDNA(r, 20+r.Intn(200))
		pairs = append(pairs, [2]string{h, mutate(r, h, 0.2, 0.1)}, [2]string{h, randomDNA(r, 20+r.Intn(200))})
	}
	for _, pair := range pairs {
		h, v := []byte(pair[0]), []byte(pair[1])
		for _, drop := range []int{0, 1, 5, 50} {
			for _, dir := range []Direction{None, Left, Right, Both} {
				k := 1 + r.Intn(min(8, len(h), len(v)))
				orig := NewSeed(r.Intn(len(h)-k+1), r.Intn(len(v)-k+1), k)
				seed := orig
				if _, err := Extend(&seed, dir, h, v, Affine(2, -3, -2, -1), drop); err != nil {
					t.Fatal(err)
				}
				if seed.BeginH < 0 || seed.BeginH > orig.BeginH || seed.EndH < orig.EndH || seed.EndH > len(h) ||
					seed.BeginV < 0 || seed.BeginV > orig.BeginV || seed.EndV < orig.EndV || seed.EndV > len(v) {
					t.Fatalf("dir=%v drop=%d: seed %v from %v outside %dx%d", dir, drop, seed, orig, len(h), len(v))
				}
			}
		}
	}
}

func TestNonACGTNeverMatches(t *testing.T) {
	e := mustEngine(t, Config{Scheme: Linear(1, -1, -1), DropOff: 100})
	half := e.ExtendOneDirection([]byte("NNNN"), []byte("NNNN"))
	if half.Best != 0 {
		t.Fatalf("N against N: best got %d, want 0", half.Best)
	}
	half = e.ExtendOneDirection([]byte("acgt"), []byte("ACGT"))
	if half.Best != 4 {
		t.Fatalf("lower case: best got %d, want 4", half.Best)
	}
}
