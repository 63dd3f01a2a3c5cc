package integration

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"logan/internal/cli"
)

func TestCtrlC_MidRun_Exit130(t *testing.T) {
	// Many long candidates so aligning is underway when the cancel lands.
	dir := t.TempDir()
	seq := strings.Repeat("ACGT", 5000)
	fa := write(t, filepath.Join(dir, "cancel.fa"), []byte(">a\n"+seq+"\n>b\n"+seq+"\n"))
	var sb strings.Builder
	for i := 0; i < 20000; i++ {
		fmt.Fprintf(&sb, "a\tb\t%d\t%d\t8\n", i%19000, i%19000)
	}
	cands := write(t, filepath.Join(dir, "cancel.tsv"), []byte(sb.String()))

	ctx, cancel := context.WithCancel(context.Background())
	// Cancel shortly after start.
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	code := cli.Execute(ctx, []string{"align", "-r", fa, "-c", cands, "-x", "1000"}, io.Discard, io.Discard)
	if code != 130 {
		t.Fatalf("expected exit 130 on cancel, got %d", code)
	}
}
