package output

// Output formats.
const (
	FormatTSV   = "tsv"
	FormatPAF   = "paf"
	FormatJSON  = "json"
	FormatJSONL = "jsonl"
)

// Formats lists every supported format, in help-text order.
var Formats = []string{FormatTSV, FormatPAF, FormatJSON, FormatJSONL}

// TSVHeader is the canonical header row for TSV output.
// Keep this as the single source of truth; all writers should use it.
const TSVHeader = "read_a\tread_b\tscore\texit_score\toverlap\tstrand\tbegin_a\tend_a\tlen_a\tbegin_b\tend_b\tlen_b"

// pafMapQ is written in the mapping-quality column; alignments carry no
// mapping quality.
const pafMapQ = 255
