// internal/jsonlutil/jsonlutil.go
package jsonlutil

import (
	"bufio"
	"encoding/json"
	"io"
	"sync"
)

// Reuse a 64 KiB buffered writer across JSONL writers to avoid per-writer mallocs.
var bwPool = sync.Pool{
	New: func() any {
		return bufio.NewWriterSize(io.Discard, 64<<10)
	},
}

// Start spins up a JSONL encoder goroutine for values of type T.
//   - conv: maps one value to its wire type
//   - isBroken: recognizer for broken/closed pipe errors to suppress them
//
// After a write error the goroutine keeps draining the channel so senders
// never block; the error is reported once the channel is closed.
func Start[T any](out io.Writer, bufSize int, conv func(T) any, isBroken func(error) bool) (chan<- T, <-chan error) {
	if bufSize <= 0 {
		bufSize = 64
	}
	in := make(chan T, bufSize)
	done := make(chan error, 1)

	go func() {
		bw := bwPool.Get().(*bufio.Writer)
		// Rebind to the actual output while keeping the pooled buffer.
		bw.Reset(out)
		defer func() {
			bw.Reset(io.Discard)
			bwPool.Put(bw)
		}()

		enc := json.NewEncoder(bw)
		enc.SetEscapeHTML(false)

		var err error
		for v := range in {
			if err != nil {
				continue
			}
			err = enc.Encode(conv(v))
		}
		if err == nil {
			err = bw.Flush()
		}
		if isBroken(err) {
			err = nil
		}
		done <- err
	}()

	return in, done
}
