// internal/writers/alignment.go
package writers

import (
	"io"

	"logan/internal/output"
	"logan/internal/overlap"
)

func init() {
	Register(output.FormatTSV, func(out io.Writer, opt Options, bufSize int) (chan<- overlap.Alignment, <-chan error) {
		return startText(out, opt, bufSize,
			func(w io.Writer, list []overlap.Alignment) error { return output.WriteTSV(w, list, opt.Header) },
			func(w io.Writer, in <-chan overlap.Alignment) error { return output.StreamTSV(w, in, opt.Header) },
		)
	})
	Register(output.FormatPAF, func(out io.Writer, opt Options, bufSize int) (chan<- overlap.Alignment, <-chan error) {
		return startText(out, opt, bufSize, output.WritePAF, output.StreamPAF)
	})
	Register(output.FormatJSON, startJSON)
}

// startText streams rows unless sorting is requested, in which case it
// buffers everything first.
func startText(
	out io.Writer, opt Options, bufSize int,
	write func(io.Writer, []overlap.Alignment) error,
	stream func(io.Writer, <-chan overlap.Alignment) error,
) (chan<- overlap.Alignment, <-chan error) {
	in := make(chan overlap.Alignment, bufSize)
	errCh := make(chan error, 1)
	go func() {
		if !opt.Sort {
			errCh <- stream(out, in)
			return
		}
		buf := collect(in)
		output.SortAlignments(buf)
		errCh <- write(out, buf)
	}()
	return in, errCh
}

// startJSON always buffers: the array is written in one piece.
func startJSON(out io.Writer, opt Options, bufSize int) (chan<- overlap.Alignment, <-chan error) {
	in := make(chan overlap.Alignment, bufSize)
	errCh := make(chan error, 1)
	go func() {
		buf := collect(in)
		if opt.Sort {
			output.SortAlignments(buf)
		}
		errCh <- output.WriteJSON(out, buf)
	}()
	return in, errCh
}

func collect(in <-chan overlap.Alignment) []overlap.Alignment {
	var buf []overlap.Alignment
	for al := range in {
		buf = append(buf, al)
	}
	return buf
}
