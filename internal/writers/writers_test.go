package writers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"syscall"
	"testing"

	"logan-core/xdrop"

	"logan/internal/output"
	"logan/internal/overlap"
	"logan/pkg/api"
)

func alignments(n int) []overlap.Alignment {
	out := make([]overlap.Alignment, n)
	for i := range out {
		out[i] = overlap.Alignment{
			Index: n - 1 - i, A: fmt.Sprintf("a%d", n-1-i), B: "b", LenA: 20, LenB: 20,
			Result: overlap.Result{
				Score:  xdrop.Score{Best: 10, Exit: 9},
				Seed:   xdrop.NewSeed(0, 0, 10),
				Strand: overlap.Same,
			},
			Pass: true,
		}
	}
	return out
}

func run(t *testing.T, format string, opt Options, list []overlap.Alignment) string {
	t.Helper()
	var b bytes.Buffer
	in, done := StartAlignmentWriter(&b, format, opt, 1)
	for _, al := range list {
		in <- al
	}
	close(in)
	if err := <-done; err != nil {
		t.Fatalf("%s: %v", format, err)
	}
	return b.String()
}

func TestRegistered(t *testing.T) {
	got := strings.Join(Registered(), ",")
	if got != "json,jsonl,paf,tsv" {
		t.Fatalf("registered formats got %q", got)
	}
}

func TestUnknownFormatError(t *testing.T) {
	var b bytes.Buffer
	in, done := StartAlignmentWriter(&b, "nope-format", Options{}, 1)
	in <- overlap.Alignment{}
	close(in)
	err := <-done
	if err == nil || !strings.Contains(err.Error(), "unknown output format") {
		t.Fatalf("want 'unknown output format' error, got: %v", err)
	}
}

func TestTSVSortedWithHeader(t *testing.T) {
	out := run(t, output.FormatTSV, Options{Sort: true, Header: true}, alignments(3))
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	if len(lines) != 4 || lines[0] != output.TSVHeader {
		t.Fatalf("got:\n%s", out)
	}
	for i, l := range lines[1:] {
		if !strings.HasPrefix(l, fmt.Sprintf("a%d\t", i)) {
			t.Fatalf("row %d out of order: %q", i, l)
		}
	}
}

func TestTSVStreamingKeepsArrivalOrder(t *testing.T) {
	out := run(t, output.FormatTSV, Options{}, alignments(3))
	if !strings.HasPrefix(out, "a2\t") {
		t.Fatalf("streaming output reordered:\n%s", out)
	}
}

func TestJSONAndJSONL(t *testing.T) {
	var arr []api.AlignmentV1
	if err := json.Unmarshal([]byte(run(t, output.FormatJSON, Options{Sort: true}, alignments(2))), &arr); err != nil {
		t.Fatal(err)
	}
	if len(arr) != 2 || arr[0].ReadA != "a0" {
		t.Fatalf("json got %+v", arr)
	}

	lines := strings.Split(strings.TrimSuffix(run(t, output.FormatJSONL, Options{}, alignments(2)), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("jsonl got %d lines", len(lines))
	}
	var one api.AlignmentV1
	if err := json.Unmarshal([]byte(lines[0]), &one); err != nil || one.ReadA != "a1" {
		t.Fatalf("jsonl line got %+v, %v", one, err)
	}
}

type hungUpWriter struct{ calls int }

func (w *hungUpWriter) Write(p []byte) (int, error) {
	w.calls++
	return 0, &os.PathError{Op: "write", Path: "/dev/stdout", Err: syscall.EPIPE}
}

func TestSinkStopsAfterHangup(t *testing.T) {
	w := &hungUpWriter{}
	s := NewSink(w)
	for i := 0; i < 3; i++ {
		if _, err := s.Write([]byte("x")); !errors.Is(err, ErrDownstreamClosed) {
			t.Fatalf("write %d: got %v, want %v", i, err, ErrDownstreamClosed)
		}
	}
	if w.calls != 1 {
		t.Fatalf("got %d underlying writes, want 1", w.calls)
	}
}

func TestSinkPassesOtherErrors(t *testing.T) {
	var buf bytes.Buffer
	if n, err := NewSink(&buf).Write([]byte("ok")); n != 2 || err != nil || buf.String() != "ok" {
		t.Fatalf("got %d, %v, %q", n, err, buf.String())
	}
	s := NewSink(failWriter{io.ErrShortWrite})
	if _, err := s.Write([]byte("x")); err != io.ErrShortWrite || Closed(err) {
		t.Fatalf("got %v, want %v", err, io.ErrShortWrite)
	}
}

type failWriter struct{ err error }

func (f failWriter) Write([]byte) (int, error) { return 0, f.err }

func TestClosed(t *testing.T) {
	for _, err := range []error{
		syscall.EPIPE, io.ErrClosedPipe, ErrDownstreamClosed,
		fmt.Errorf("write: %w", os.ErrClosed),
		fmt.Errorf("flush: %w", ErrDownstreamClosed),
	} {
		if !Closed(err) {
			t.Fatalf("%v should mean the reader went away", err)
		}
	}
	for _, err := range []error{nil, io.EOF, syscall.EIO} {
		if Closed(err) {
			t.Fatalf("%v: false positive", err)
		}
	}
}
