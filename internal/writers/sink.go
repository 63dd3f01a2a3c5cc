package writers

import (
	"errors"
	"io"
	"os"
	"syscall"
)

// ErrDownstreamClosed is reported once the process reading the output has
// gone away, as with `logan run ... | head`. Runs treat it as success.
var ErrDownstreamClosed = errors.New("output reader closed the stream")

// Sink is the final output stream of a run. The first write that fails
// because the reader hung up turns into ErrDownstreamClosed, and every later
// write fails the same way without reaching the underlying writer.
// A Sink is not safe for concurrent use.
type Sink struct {
	w    io.Writer
	gone bool
}

func NewSink(w io.Writer) *Sink { return &Sink{w: w} }

func (s *Sink) Write(p []byte) (int, error) {
	if s.gone {
		return 0, ErrDownstreamClosed
	}
	n, err := s.w.Write(p)
	if err != nil && hungUp(err) {
		s.gone = true
		return n, ErrDownstreamClosed
	}
	return n, err
}

// Closed reports whether err means the output reader went away, either as
// seen through a Sink or as a raw pipe error.
func Closed(err error) bool {
	return err != nil && (errors.Is(err, ErrDownstreamClosed) || hungUp(err))
}

func hungUp(err error) bool {
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return errno == syscall.EPIPE
	}
	return errors.Is(err, io.ErrClosedPipe) || errors.Is(err, os.ErrClosed)
}
