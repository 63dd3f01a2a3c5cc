// internal/output/text.go
package output

import (
	"fmt"
	"io"

	"logan/internal/overlap"
)

// WriteTSV writes alignments as a tab-delimited table.
func WriteTSV(w io.Writer, list []overlap.Alignment, header bool) error {
	return writeRows(w, list, header, TSVHeader, FormatRowTSV)
}

// StreamTSV writes alignments from a channel as they arrive.
func StreamTSV(w io.Writer, in <-chan overlap.Alignment, header bool) error {
	return streamRows(w, in, header, TSVHeader, FormatRowTSV)
}

// WritePAF writes alignments as PAF rows. PAF has no header.
func WritePAF(w io.Writer, list []overlap.Alignment) error {
	return writeRows(w, list, false, "", FormatRowPAF)
}

// StreamPAF writes PAF rows from a channel as they arrive.
func StreamPAF(w io.Writer, in <-chan overlap.Alignment) error {
	return streamRows(w, in, false, "", FormatRowPAF)
}

func writeRows(w io.Writer, list []overlap.Alignment, header bool, head string, row func(overlap.Alignment) string) error {
	if header {
		if _, err := fmt.Fprintln(w, head); err != nil {
			return err
		}
	}
	for _, al := range list {
		if _, err := fmt.Fprintln(w, row(al)); err != nil {
			return err
		}
	}
	return nil
}

// streamRows consumes in to the end even after a write fails, so the
// producer never blocks on a dead writer. The first error is returned.
func streamRows(w io.Writer, in <-chan overlap.Alignment, header bool, head string, row func(overlap.Alignment) string) error {
	var err error
	if header {
		_, err = fmt.Fprintln(w, head)
	}
	for al := range in {
		if err == nil {
			_, err = fmt.Fprintln(w, row(al))
		}
	}
	return err
}
