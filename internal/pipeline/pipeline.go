// internal/pipeline/pipeline.go
package pipeline

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/zeebo/wyhash"

	"logan/internal/candidates"
	"logan/internal/overlap"
	"logan/internal/reads"
	"logan/internal/runutil"
)

// Config controls the alignment pipeline.
type Config struct {
	Threads   int  // number of worker goroutines (>=1)
	DedupeCap int  // capacity of the duplicate-candidate set; 0 picks a default
	KeepAll   bool // visit alignments that fail the filter too
	// OnDone, when set, is called once per processed candidate with the time
	// spent aligning it. It runs on the collector goroutine.
	OnDone func(time.Duration)
	// OnSkip, when set, is called once per duplicate or missing-read
	// candidate on the goroutine that feeds the workers.
	OnSkip func()
}

// Stats counts what happened to the candidates.
type Stats struct {
	Candidates int // candidates seen
	Duplicates int // dropped as repeats of an earlier candidate
	Missing    int // skipped because a read is not in the index
	Aligned    int
	Passed     int
}

// Key identifies a candidate regardless of the order of its two reads.
func Key(c candidates.Candidate) uint64 {
	a, b, pa, pb := c.A, c.B, c.PosA, c.PosB
	if b < a || (a == b && pb < pa) {
		a, b, pa, pb = b, a, pb, pa
	}
	return wyhash.HashString(fmt.Sprintf("%s\x00%s\x00%d\x00%d\x00%d", a, b, pa, pb, c.K), 0)
}

// ForEachAlignment aligns every distinct candidate whose reads are both in
// idx, applies filter, and calls visit for each passing alignment (every
// alignment with KeepAll). Visits happen on a single goroutine in completion
// order. It returns the first error encountered (including context
// cancellation).
func ForEachAlignment(
	ctx context.Context,
	cfg Config,
	idx *reads.Index,
	cands []candidates.Candidate,
	aln Aligner,
	filter overlap.Filter,
	visit func(overlap.Alignment) error,
) (Stats, error) {
	if cfg.Threads < 1 {
		cfg.Threads = 1
	}

	type job struct {
		i    int
		c    candidates.Candidate
		a, b []byte
	}
	type result struct {
		al   overlap.Alignment
		took time.Duration
		err  error
	}
	jobs := make(chan job, cfg.Threads*2)
	results := make(chan result, cfg.Threads*2)

	// Workers
	var wg sync.WaitGroup
	wg.Add(cfg.Threads)
	for w := 0; w < cfg.Threads; w++ {
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case j, ok := <-jobs:
					if !ok {
						return
					}
					start := time.Now()
					r, err := aln.Align(j.a, j.b, j.c)
					out := result{took: time.Since(start)}
					if err != nil {
						out.err = errors.Wrapf(err, "%s vs %s (line %d)", j.c.A, j.c.B, j.c.Line)
					} else {
						out.al = filter.Evaluate(j.c.A, j.c.B, len(j.a), len(j.b), r)
						out.al.Index = j.i
					}
					select {
					case results <- out:
					case <-ctx.Done():
						return
					}
				}
			}
		}()
	}

	// Collector
	var (
		st   Stats
		cerr error
		cwg  sync.WaitGroup
	)
	cwg.Add(1)
	go func() {
		defer cwg.Done()
		for r := range results {
			if cfg.OnDone != nil {
				cfg.OnDone(r.took)
			}
			if cerr != nil {
				continue
			}
			if r.err != nil {
				cerr = r.err
				continue
			}
			st.Aligned++
			if r.al.Pass {
				st.Passed++
			}
			if !r.al.Pass && !cfg.KeepAll {
				continue
			}
			if err := visit(r.al); err != nil {
				cerr = err
			}
		}
	}()

	// Feed work; duplicates and missing reads never reach a worker.
	var (
		seen                      = runutil.NewSeen[uint64](cfg.DedupeCap)
		total, dups, missing int
	)
feed:
	for i, c := range cands {
		total++
		if seen.Met(Key(c)) {
			dups++
			skip(cfg)
			continue
		}
		a, okA := idx.Get(c.A)
		b, okB := idx.Get(c.B)
		if !okA || !okB {
			missing++
			skip(cfg)
			continue
		}
		select {
		case <-ctx.Done():
			break feed
		case jobs <- job{i: i, c: c, a: a, b: b}:
		}
	}

	close(jobs)
	wg.Wait()
	close(results)
	cwg.Wait()

	st.Candidates, st.Duplicates, st.Missing = total, dups, missing
	if ctx.Err() != nil {
		return st, ctx.Err()
	}
	return st, cerr
}

func skip(cfg Config) {
	if cfg.OnSkip != nil {
		cfg.OnSkip()
	}
}
