package appcore

import (
	"io"

	"logan/internal/output"
	"logan/internal/overlap"
	"logan/internal/writers"
)

// WriterFactory starts the output side of a run.
type WriterFactory interface {
	// Streaming reports whether rows leave as they are produced.
	Streaming() bool
	Start(out io.Writer, bufSize int) (chan<- overlap.Alignment, <-chan error)
}

// AlignmentWriterFactory starts the registered writer for Format.
type AlignmentWriterFactory struct {
	Format string
	Sort   bool
	Header bool
}

func NewAlignmentWriterFactory(format string, sort, header bool) AlignmentWriterFactory {
	return AlignmentWriterFactory{Format: format, Sort: sort, Header: header}
}

func (w AlignmentWriterFactory) Streaming() bool {
	switch w.Format {
	case output.FormatJSON:
		return false
	case output.FormatJSONL:
		return true
	}
	return !w.Sort
}

func (w AlignmentWriterFactory) Start(out io.Writer, bufSize int) (chan<- overlap.Alignment, <-chan error) {
	return writers.StartAlignmentWriter(out, w.Format, writers.Options{Sort: w.Sort, Header: w.Header}, bufSize)
}
