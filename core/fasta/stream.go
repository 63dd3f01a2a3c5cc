package fasta

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/grailbio/bio/encoding/fastq"
)

// StreamCtx parses FASTA or FASTQ from r and emits one Record per sequence.
// The format is picked from the first non-blank byte ('>' or '@'). FASTA
// sequences may wrap over several lines; FASTQ records are the plain
// four-line form and their qualities are dropped.
//
// It is cancelable: it returns promptly when ctx is Done, even mid-file.
func StreamCtx(ctx context.Context, r io.Reader, emit func(Record) error) error {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReaderSize(r, bufSize)
	}
	first, err := firstByte(br)
	if err == io.EOF {
		return nil
	}
	if err != nil {
		return err
	}
	switch first {
	case '>':
		return streamFASTA(ctx, br, emit)
	case '@':
		return streamFASTQ(ctx, br, emit)
	}
	return fmt.Errorf("expected '>' or '@' to open the first record, got %q", first)
}

// firstByte skips leading white space and peeks at what follows.
func firstByte(br *bufio.Reader) (byte, error) {
	for {
		c, err := br.ReadByte()
		if err != nil {
			return 0, err
		}
		switch c {
		case ' ', '\t', '\r', '\n':
			continue
		}
		return c, br.UnreadByte()
	}
}

func streamFASTA(ctx context.Context, r io.Reader, emit func(Record) error) error {
	sc := bufio.NewScanner(r)
	const maxLine = 64 * 1024 * 1024 // allow very long single-line sequences (64 MiB)
	sc.Buffer(make([]byte, bufSize), maxLine)

	var (
		id     string
		seq    = make([]byte, 0, bufSize)
		lineNo int
	)
	flush := func() error {
		if id == "" {
			return nil
		}
		return emit(Record{ID: id, Seq: append([]byte(nil), seq...)})
	}
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		lineNo++
		line := bytes.TrimSpace(sc.Bytes())
		switch {
		case len(line) == 0:
		case line[0] == '>':
			if err := flush(); err != nil {
				return err
			}
			id, seq = headerID(string(line[1:])), seq[:0]
			if id == "" {
				return fmt.Errorf("line %d: record without a name", lineNo)
			}
		default:
			seq = append(seq, line...)
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("fasta scan: %w", err)
	}
	return flush()
}

func streamFASTQ(ctx context.Context, r io.Reader, emit func(Record) error) error {
	sc := fastq.NewScanner(r, fastq.All)
	var read fastq.Read
	for n := 1; sc.Scan(&read); n++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		id := headerID(strings.TrimPrefix(read.ID, "@"))
		switch {
		case !strings.HasPrefix(read.Unk, "+"):
			return fmt.Errorf("record %d (%s): expected '+' separator", n, id)
		case len(read.Qual) != len(read.Seq):
			return fmt.Errorf("record %d (%s): quality length %d != sequence length %d", n, id, len(read.Qual), len(read.Seq))
		}
		if err := emit(Record{ID: id, Seq: []byte(read.Seq)}); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("fastq scan: %w", err)
	}
	return nil
}

// headerID is the first word of a header line.
func headerID(hdr string) string {
	if f := strings.Fields(hdr); len(f) > 0 {
		return f[0]
	}
	return ""
}
