// internal/runutil/runutil.go
package runutil

import (
	"fmt"
	"runtime"

	"logan/internal/overlap"
)

// EffectiveThreads returns the worker count to use: n when positive,
// otherwise one per available CPU.
func EffectiveThreads(n int) int {
	if n > 0 {
		return n
	}
	return runtime.GOMAXPROCS(0)
}

// DedupeCapacity sizes the duplicate-candidate set. An explicit request wins;
// otherwise the set holds every candidate up to a cap of 1<<20.
func DedupeCapacity(candidates, requested int) int {
	if requested > 0 {
		return requested
	}
	return max(1, min(candidates, 1<<20))
}

// ResolveThreshold builds the acceptance threshold and returns warnings for
// settings it had to adjust. Rules:
//   - adaptive mode ignores a non-default minScore
//   - errorRate must lie in [0, 0.5); otherwise adaptive mode falls back to fixed
//   - delta is clamped into [0, 1)
func ResolveThreshold(adaptive bool, minScore int, minScoreSet bool, errorRate, delta float64) (overlap.Threshold, []string) {
	var warns []string
	t := overlap.Threshold{Adaptive: adaptive, Fixed: minScore, ErrorRate: errorRate, Delta: delta}
	if !adaptive {
		return t, nil
	}
	if minScoreSet {
		warns = append(warns, "warning: --adaptive ignores --min-score")
	}
	if errorRate < 0 || errorRate >= 0.5 {
		warns = append(warns, fmt.Sprintf("warning: --error-rate %.3g outside [0, 0.5); using --min-score %d", errorRate, minScore))
		t.Adaptive = false
		return t, warns
	}
	if delta < 0 || delta >= 1 {
		t.Delta = min(max(delta, 0), 0.99)
		warns = append(warns, fmt.Sprintf("warning: --delta %.3g clamped to %.3g", delta, t.Delta))
	}
	return t, warns
}
