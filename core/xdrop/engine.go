// core/xdrop/engine.go
//
// Package xdrop extends seed matches between two DNA sequences with an
// adaptive-banded X-drop alignment. The band is one lane register wide and
// follows the best-scoring cells; an extension stops once its recent scores
// fall more than a drop-off below the best seen.
package xdrop

import (
	"fmt"
	"strconv"

	"logan-core/lane"
)

// Lanes selects the integer type of the band registers.
type Lanes uint8

const (
	// LanesAuto uses 16-bit lanes for linear schemes and 8-bit lanes for
	// affine ones, widening when the scheme or the drop-off does not fit.
	LanesAuto Lanes = iota
	Lanes8
	Lanes16
	Lanes32
)

func (l Lanes) String() string {
	switch l {
	case Lanes8:
		return "8"
	case Lanes16:
		return "16"
	case Lanes32:
		return "32"
	}
	return "auto"
}

// ParseLanes accepts "auto", "8", "16" and "32".
func ParseLanes(s string) (Lanes, error) {
	if s == "" || s == "auto" {
		return LanesAuto, nil
	}
	bits, err := strconv.Atoi(s)
	if err == nil {
		switch bits {
		case 8:
			return Lanes8, nil
		case 16:
			return Lanes16, nil
		case 32:
			return Lanes32, nil
		}
	}
	return LanesAuto, fmt.Errorf("unknown lane width %q (want auto|8|16|32)", s)
}

// Config is the set of parameters shared by every call of an Engine.
type Config struct {
	Scheme  Scheme
	DropOff int
	Lanes   Lanes
}

// Engine runs extensions with a fixed scheme and drop-off. It holds no
// mutable state and is safe for concurrent use.
type Engine struct {
	scheme Scheme
	drop   int
	lanes  Lanes
}

// New validates cfg and resolves LanesAuto.
func New(cfg Config) (*Engine, error) {
	if err := cfg.Scheme.Validate(); err != nil {
		return nil, err
	}
	if cfg.DropOff < 0 {
		return nil, fmt.Errorf("%w: drop-off %d must be >= 0", ErrScheme, cfg.DropOff)
	}
	fits := cfg.Scheme.step() <= rescaleMargin
	l := cfg.Lanes
	switch l {
	case LanesAuto:
		switch {
		case !fits:
			l = Lanes32
		case cfg.Scheme.IsAffine() && cfg.DropOff <= dropLimit[int8](cfg.Scheme):
			l = Lanes8
		case cfg.DropOff <= dropLimit[int16](cfg.Scheme):
			l = Lanes16
		default:
			l = Lanes32
		}
	case Lanes8, Lanes16:
		if !fits {
			return nil, fmt.Errorf("%w: a single step of %v can exceed %d", ErrLaneRange, cfg.Scheme, rescaleMargin)
		}
		limit := dropLimit[int16](cfg.Scheme)
		if l == Lanes8 {
			limit = dropLimit[int8](cfg.Scheme)
		}
		if cfg.DropOff > limit {
			return nil, fmt.Errorf("%w: drop-off %d is above %d for %v-bit lanes", ErrLaneRange, cfg.DropOff, limit, l)
		}
	case Lanes32:
	default:
		return nil, fmt.Errorf("%w: unknown lane setting %d", ErrLaneRange, l)
	}
	return &Engine{scheme: cfg.Scheme, drop: cfg.DropOff, lanes: l}, nil
}

// dropLimit is the largest drop-off that lanes of type T follow exactly:
// scores within the drop-off of the best, plus one step, have to fit between
// the rescale threshold and the lowest live value.
func dropLimit[T lane.Int](s Scheme) int {
	return int(lane.MaxValue[T]()) - rescaleMargin - (int(lane.NegInf[T]()) + 1) - s.step()
}

// Scheme returns the scoring scheme.
func (e *Engine) Scheme() Scheme { return e.scheme }

// DropOff returns the X-drop threshold.
func (e *Engine) DropOff() int { return e.drop }

// Lanes returns the resolved lane type.
func (e *Engine) Lanes() Lanes { return e.lanes }

func (e *Engine) one(h, v []byte) Half {
	switch e.lanes {
	case Lanes8:
		return extendOne[int8](e.scheme, e.drop, h, v)
	case Lanes16:
		return extendOne[int16](e.scheme, e.drop, h, v)
	default:
		return extendOne[int32](e.scheme, e.drop, h, v)
	}
}

// extendOne aligns two encoded sequences from their first characters: the
// scalar block seeds the band, which then runs until the X-drop rule fires or
// the input is used up.
func extendOne[T lane.Int](s Scheme, drop int, h, v []byte) Half {
	if len(h) == 0 || len(v) == 0 {
		return Half{}
	}
	tr := newTracker(drop)
	boot := newTable(s, h, v, logical+2)
	if half, done := boot.fill(&tr, logical+2); done {
		return half
	}
	return newWavefront[T](s, h, v, boot, tr).run()
}
