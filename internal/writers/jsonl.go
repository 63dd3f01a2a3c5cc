// internal/writers/jsonl.go
package writers

import (
	"io"

	"logan/internal/jsonlutil"
	"logan/internal/output"
	"logan/internal/overlap"
)

func init() { Register(output.FormatJSONL, StartJSONLWriter) }

// StartJSONLWriter streams each alignment as one JSON line (v1). Sorting
// does not apply: lines leave in completion order.
func StartJSONLWriter(out io.Writer, _ Options, bufSize int) (chan<- overlap.Alignment, <-chan error) {
	return jsonlutil.Start[overlap.Alignment](out, bufSize,
		func(al overlap.Alignment) any { return output.ToAPIAlignment(al) },
		Closed,
	)
}
