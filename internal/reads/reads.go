// internal/reads/reads.go
//
// Package reads keeps the input reads in memory, addressable by name.
package reads

import (
	"context"

	"github.com/pkg/errors"

	"logan-core/dna"
	"logan-core/fasta"
)

// Index maps read names to cleaned sequences.
type Index struct {
	names  []string
	seqs   [][]byte
	byName map[string]int
	bases  int64
	// reads holding N after cleaning
	ambiguous int
}

// New returns an empty index.
func New() *Index {
	return &Index{byName: make(map[string]int)}
}

// Load reads every file in paths ("-" for stdin, gzip allowed) into one
// index. Read names must be unique across files.
func Load(ctx context.Context, paths []string) (*Index, error) {
	ix := New()
	for _, p := range paths {
		recs, err := fasta.ReadAll(ctx, p)
		if err != nil {
			return nil, errors.Wrapf(err, "load reads %s", p)
		}
		for _, r := range recs {
			if err := ix.Add(r.ID, r.Seq); err != nil {
				return nil, errors.Wrapf(err, "load reads %s", p)
			}
		}
	}
	return ix, nil
}

// Add stores seq under name after upper-casing it and turning everything
// outside ACGT into N.
func (ix *Index) Add(name string, seq []byte) error {
	if name == "" {
		return errors.New("read without a name")
	}
	if _, dup := ix.byName[name]; dup {
		return errors.Errorf("duplicate read name %q", name)
	}
	seq = dna.Clean(seq)
	if dna.HasAmbiguous(seq) {
		ix.ambiguous++
	}
	ix.byName[name] = len(ix.seqs)
	ix.names = append(ix.names, name)
	ix.seqs = append(ix.seqs, seq)
	ix.bases += int64(len(seq))
	return nil
}

// Get returns the sequence stored under name.
func (ix *Index) Get(name string) ([]byte, bool) {
	i, ok := ix.byName[name]
	if !ok {
		return nil, false
	}
	return ix.seqs[i], true
}

// Len is the number of reads.
func (ix *Index) Len() int { return len(ix.seqs) }

// Bases is the total number of bases.
func (ix *Index) Bases() int64 { return ix.bases }

// Ambiguous counts reads that carried characters other than acgtACGT.
func (ix *Index) Ambiguous() int { return ix.ambiguous }

// Names lists read names in load order.
func (ix *Index) Names() []string { return ix.names }
