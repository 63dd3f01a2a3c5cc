// core/fasta/reader.go
package fasta

import (
	"context"
	"fmt"
)

// Record is one parsed read.
type Record struct {
	ID  string
	Seq []byte
}

// StreamPathCtx opens path ("-" is stdin, gzip is detected) and streams its
// records to emit. Return a non-nil error from emit to stop early.
func StreamPathCtx(ctx context.Context, path string, emit func(Record) error) error {
	src, err := open(path)
	if err != nil {
		return err
	}
	defer src.Close()
	if err := StreamCtx(ctx, src.Reader, emit); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// ReadAll loads every record of path into memory. Nothing is returned for a
// file that fails to parse.
func ReadAll(ctx context.Context, path string) ([]Record, error) {
	var recs []Record
	err := StreamPathCtx(ctx, path, func(r Record) error {
		recs = append(recs, r)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return recs, nil
}
