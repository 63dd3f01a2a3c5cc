package cmdutil

import (
	"context"

	"logan/internal/candidates"
	"logan/internal/overlap"
	"logan/internal/pipeline"
	"logan/internal/reads"
)

// RunStream runs the shared pipeline and streams every visited alignment
// via send. It returns the pipeline counters and the first error encountered.
func RunStream(
	ctx context.Context,
	cfg pipeline.Config,
	idx *reads.Index,
	cands []candidates.Candidate,
	aln pipeline.Aligner,
	filter overlap.Filter,
	send func(overlap.Alignment) error,
) (pipeline.Stats, error) {
	return pipeline.ForEachAlignment(ctx, cfg, idx, cands, aln, filter, func(al overlap.Alignment) error {
		return send(al)
	})
}
