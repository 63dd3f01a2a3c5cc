// internal/output/rows.go
package output

import (
	"fmt"
	"sort"

	"logan/internal/overlap"
)

// FormatRowTSV returns one TSV row (no trailing newline). A coordinates are
// on the forward strand of read A.
func FormatRowTSV(al overlap.Alignment) string {
	beginA, endA := al.ForwardA()
	return fmt.Sprintf("%s\t%s\t%d\t%d\t%d\t%s\t%d\t%d\t%d\t%d\t%d\t%d",
		al.A, al.B, al.Best, al.Exit, al.Overlap, al.Strand,
		beginA, endA, al.LenA,
		al.Seed.BeginV, al.Seed.EndV, al.LenB,
	)
}

// FormatRowPAF returns one PAF-style row: read B is the query, read A the
// target. Columns 10 and 11 carry the score and the overlap estimate.
func FormatRowPAF(al overlap.Alignment) string {
	beginA, endA := al.ForwardA()
	return fmt.Sprintf("%s\t%d\t%d\t%d\t%s\t%s\t%d\t%d\t%d\t%d\t%d\t%d",
		al.B, al.LenB, al.Seed.BeginV, al.Seed.EndV,
		al.Strand.PAF(),
		al.A, al.LenA, beginA, endA,
		al.Best, al.Overlap, pafMapQ,
	)
}

// SortAlignments orders alignments by the position of their candidate in
// the input, which makes output independent of the number of workers.
func SortAlignments(list []overlap.Alignment) {
	sort.SliceStable(list, func(i, j int) bool { return list[i].Index < list[j].Index })
}
