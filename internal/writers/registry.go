// internal/writers/registry.go
package writers

import (
	"fmt"
	"io"
	"sort"

	"logan/internal/overlap"
)

// Options shape every alignment writer.
type Options struct {
	Sort   bool // buffer and order by candidate position before writing
	Header bool // TSV only
}

// StartFunc starts a writer goroutine: alignments go in on the returned
// channel, and the error channel yields once after it is closed.
type StartFunc func(out io.Writer, opt Options, bufSize int) (chan<- overlap.Alignment, <-chan error)

// AlignmentWriters is the format → writer registry. Entries are registered
// in init() blocks of the writer files.
var AlignmentWriters = map[string]StartFunc{}

// Register adds or replaces (last wins) the writer for format.
func Register(format string, fn StartFunc) { AlignmentWriters[format] = fn }

// Registered returns the registered formats, sorted.
func Registered() []string {
	out := make([]string, 0, len(AlignmentWriters))
	for f := range AlignmentWriters {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// StartAlignmentWriter dispatches to the writer registered for format. An
// unknown format yields a writer that drains its input and reports an error.
func StartAlignmentWriter(out io.Writer, format string, opt Options, bufSize int) (chan<- overlap.Alignment, <-chan error) {
	if bufSize <= 0 {
		bufSize = 64
	}
	if fn, ok := AlignmentWriters[format]; ok {
		return fn(out, opt, bufSize)
	}
	in := make(chan overlap.Alignment, bufSize)
	errCh := make(chan error, 1)
	go func() {
		for range in {
		}
		errCh <- fmt.Errorf("unknown output format %q (no writer registered)", format)
	}()
	return in, errCh
}
