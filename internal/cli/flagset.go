package cli

import (
	"strings"

	"github.com/spf13/pflag"

	"logan-core/xdrop"

	"logan/internal/config"
	"logan/internal/output"
)

// addScoringFlags registers the scoring scheme and engine flags.
func addScoringFlags(fs *pflag.FlagSet) {
	fs.IntP("kmer", "k", config.DefaultKmer, "seed (k-mer) length")
	fs.Int("match", 1, "match reward (>= 0)")
	fs.Int("mismatch", -1, "mismatch penalty (<= 0)")
	fs.Int("gap", -1, "gap (extension) penalty (<= 0)")
	fs.Int("gap-open", 0, "extra gap-open penalty (<= 0); 0 selects linear gaps")
	fs.IntP("xdrop", "x", config.DefaultXDrop, "X-drop threshold (>= 0)")
	fs.String("lanes", xdrop.LanesAuto.String(), "lane width: auto|8|16|32")
}

// addAlignFlags registers the flags of the align command.
func addAlignFlags(fs *pflag.FlagSet) {
	fs.StringSliceP("reads", "r", nil, "FASTA/FASTQ read file(s), gzip allowed, '-' for stdin [*]")
	fs.StringP("candidates", "c", "", "candidate pairs: readA readB posA posB [k] [*]")
	addScoringFlags(fs)

	fs.Bool("adaptive", false, "scale the score threshold with the estimated overlap")
	fs.Float64("error-rate", config.DefaultErrorRate, "per-read error rate for --adaptive")
	fs.Float64("delta", config.DefaultDelta, "tolerance below the adaptive threshold")
	fs.Int("min-score", config.DefaultMinScore, "fixed score threshold")
	fs.Bool("align-end", false, "require alignments to reach a read end")
	fs.Int("relax-margin", config.DefaultRelaxMargin, "distance from a read end that still counts as reaching it")

	fs.StringP("output", "o", output.FormatTSV, "output format: "+strings.Join(output.Formats, "|"))
	fs.Bool("sort", false, "order output by candidate position")
	fs.Bool("no-header", false, "suppress the TSV header")
	fs.Bool("keep-all", false, "also write alignments that fail the filter")
	fs.Bool("fail-on-empty", false, "exit with 1 when no alignment passes")

	fs.IntP("threads", "t", 0, "worker goroutines (0 = all CPUs)")
	fs.Int("dedupe-cap", 0, "size of the duplicate-candidate set (0 = fit the input)")
	fs.Bool("progress", false, "show a progress bar on stderr")
}
