// core/fasta/open.go
package fasta

import (
	"bufio"
	"bytes"
	"io"
	"os"

	"github.com/klauspost/pgzip"
)

// gzipMagic opens every gzip member.
var gzipMagic = []byte{0x1f, 0x8b}

const bufSize = 1 << 16

// source is an opened reads file, decompressed when it holds gzip data.
// Closers run in reverse order of opening.
type source struct {
	*bufio.Reader
	closers []func() error
}

func (s *source) Close() error {
	var first error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// open returns a buffered reader over path ("-" is stdin). Gzip is
// recognised by content, so compressed stdin works as well as a .gz file.
func open(path string) (*source, error) {
	src := &source{}
	var r io.Reader = os.Stdin
	if path != "-" {
		fh, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		r = fh
		src.closers = append(src.closers, fh.Close)
	}
	br := bufio.NewReaderSize(r, bufSize)
	if magic, _ := br.Peek(len(gzipMagic)); bytes.Equal(magic, gzipMagic) {
		zr, err := pgzip.NewReader(br)
		if err != nil {
			_ = src.Close()
			return nil, err
		}
		src.closers = append(src.closers, zr.Close)
		br = bufio.NewReaderSize(zr, bufSize)
	}
	src.Reader = br
	return src, nil
}
