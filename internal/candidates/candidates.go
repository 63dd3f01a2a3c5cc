// internal/candidates/candidates.go
//
// Package candidates loads the work list of read pairs that share a seed.
package candidates

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Candidate is one seed shared by two reads: the k-mer starting at PosA on
// read A equals (possibly reverse-complemented) the one at PosB on read B.
type Candidate struct {
	A, B       string
	PosA, PosB int
	K          int
	// Line is the 1-based source line, for diagnostics.
	Line int
}

// Load reads a candidate file. Each non-comment line holds
// "readA readB posA posB [k]"; k falls back to defaultK.
func Load(path string, defaultK int) ([]Candidate, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open candidates")
	}
	defer func() { _ = fh.Close() }()
	return Parse(fh, path, defaultK)
}

// Parse is Load over an open reader; name prefixes error messages.
func Parse(r io.Reader, name string, defaultK int) ([]Candidate, error) {
	var list []Candidate
	sc := bufio.NewScanner(r)
	ln := 0
	for sc.Scan() {
		ln++
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		f := strings.Fields(line)
		if len(f) < 4 || len(f) > 5 {
			return nil, errors.Errorf("%s:%d: want 4 or 5 fields, got %d", name, ln, len(f))
		}
		c := Candidate{A: f[0], B: f[1], K: defaultK, Line: ln}
		var err error
		if c.PosA, err = atoi(f[2]); err != nil {
			return nil, errors.Wrapf(err, "%s:%d: bad posA", name, ln)
		}
		if c.PosB, err = atoi(f[3]); err != nil {
			return nil, errors.Wrapf(err, "%s:%d: bad posB", name, ln)
		}
		if len(f) == 5 {
			if c.K, err = atoi(f[4]); err != nil {
				return nil, errors.Wrapf(err, "%s:%d: bad k", name, ln)
			}
		}
		if c.K <= 0 {
			return nil, errors.Errorf("%s:%d: k must be > 0", name, ln)
		}
		list = append(list, c)
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrapf(err, "%s: scan", name)
	}
	return list, nil
}

func atoi(s string) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if v < 0 {
		return 0, errors.Errorf("negative value %d", v)
	}
	return v, nil
}
