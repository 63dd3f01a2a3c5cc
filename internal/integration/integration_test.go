// internal/integration/integration_test.go
package integration

import (
	"bytes"
	"compress/gzip"
	"context"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"logan/internal/cli"
	"logan/internal/output"
)

func write(t *testing.T, fn string, data []byte) string {
	t.Helper()
	if err := os.WriteFile(fn, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", fn, err)
	}
	return fn
}

func revcomp(s string) string {
	comp := map[byte]byte{'A': 'T', 'C': 'G', 'G': 'C', 'T': 'A'}
	b := make([]byte, len(s))
	for i := range s {
		b[len(s)-1-i] = comp[s[i]]
	}
	return string(b)
}

// dataset tiles a random genome with overlapping reads, every third one
// reverse-complemented, and lists the shared k-mer of each adjacent pair.
func dataset(t *testing.T) (reads, cands string) {
	t.Helper()
	r := rand.New(rand.NewSource(42))
	g := make([]byte, 6000)
	for i := range g {
		g[i] = "ACGT"[r.Intn(4)]
	}
	const readLen, step, k = 1500, 500, 17

	var fa, tsv bytes.Buffer
	n := (len(g) - readLen) / step
	for i := 0; i <= n; i++ {
		s := string(g[i*step : i*step+readLen])
		if i%3 == 2 {
			s = revcomp(s)
		}
		fmt.Fprintf(&fa, ">read%d\n%s\n", i, s)
	}
	for i := 0; i < n; i++ {
		// forward offsets of the shared k-mer: read i at step+o, read i+1 at o
		o := 100 + r.Intn(800)
		posA, posB := step+o, o
		if i%3 == 2 {
			posA = readLen - posA - k
		}
		if (i+1)%3 == 2 {
			posB = readLen - posB - k
		}
		fmt.Fprintf(&tsv, "read%d\tread%d\t%d\t%d\n", i, i+1, posA, posB)
	}

	dir := t.TempDir()
	var gz bytes.Buffer
	zw := gzip.NewWriter(&gz)
	if _, err := zw.Write(fa.Bytes()); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	reads = write(t, filepath.Join(dir, "reads.fa.gz"), gz.Bytes())
	cands = write(t, filepath.Join(dir, "pairs.tsv"), tsv.Bytes())
	return reads, cands
}

func TestEndToEnd(t *testing.T) {
	reads, cands := dataset(t)
	var out, errBuf bytes.Buffer
	code := cli.Execute(context.Background(), []string{
		"align", "-r", reads, "-c", cands, "--adaptive", "--align-end", "--sort",
	}, &out, &errBuf)
	if code != 0 {
		t.Fatalf("run exit %d, err=%s", code, errBuf.String())
	}
	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	if lines[0] != output.TSVHeader {
		t.Fatalf("missing header:\n%s", out.String())
	}
	rows := lines[1:]
	if len(rows) != 9 {
		t.Fatalf("want 9 overlaps, got %d:\n%s", len(rows), out.String())
	}
	var rc int
	for _, row := range rows {
		if strings.Split(row, "\t")[5] == "c" {
			rc++
		}
	}
	if rc == 0 {
		t.Fatalf("expected reverse-complement overlaps:\n%s", out.String())
	}
}

func TestParallelMatchesEqualSerial(t *testing.T) {
	reads, cands := dataset(t)
	run := func(threads int) string {
		var out, errB bytes.Buffer
		code := cli.Execute(context.Background(), []string{
			"align", "-r", reads, "-c", cands,
			"--threads", fmt.Sprint(threads),
			"--output", "json", "--sort", "--keep-all",
		}, &out, &errB)
		if code != 0 {
			t.Fatalf("exit %d err %s", code, errB.String())
		}
		return out.String()
	}

	serial := run(1)
	parallel := run(4)

	if serial != parallel {
		t.Fatalf("parallel output differs from serial\nserial: %s\nparallel:%s", serial, parallel)
	}
}

func TestNarrowLanesMatchWide(t *testing.T) {
	reads, cands := dataset(t)
	run := func(lanes string) string {
		var out, errB bytes.Buffer
		code := cli.Execute(context.Background(), []string{
			"align", "-r", reads, "-c", cands, "--lanes", lanes, "--sort", "--keep-all",
			"--gap-open", "-1", "--xdrop", "20",
		}, &out, &errB)
		if code != 0 {
			t.Fatalf("lanes %s: exit %d err %s", lanes, code, errB.String())
		}
		return out.String()
	}
	if wide, narrow := run("32"), run("8"); wide != narrow {
		t.Fatalf("8-bit lanes differ from 32-bit lanes\n32: %s\n8: %s", wide, narrow)
	}
}
