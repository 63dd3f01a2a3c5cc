// internal/appcore/core.go
package appcore

import (
	"bufio"
	"context"
	"errors"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	log "github.com/sirupsen/logrus"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"

	"logan-core/xdrop"

	"logan/internal/candidates"
	"logan/internal/cmdutil"
	"logan/internal/config"
	"logan/internal/overlap"
	"logan/internal/pipeline"
	"logan/internal/reads"
	"logan/internal/runutil"
	"logan/internal/writers"
)

// Exit codes.
const (
	ExitOK        = 0
	ExitNoMatch   = 1
	ExitUsage     = 2
	ExitRuntime   = 3
	ExitCancelled = 130
)

// Run aligns every candidate of c and writes the passing alignments to
// stdout. It returns the process exit code.
func Run(parent context.Context, stdout, stderr io.Writer, logger *log.Logger, c config.Config) int {
	if err := c.ValidateInputs(); err != nil {
		logger.Error(err)
		return ExitUsage
	}
	ecfg, err := c.Engine()
	if err != nil {
		logger.Error(err)
		return ExitUsage
	}
	eng, err := xdrop.New(ecfg)
	if err != nil {
		logger.Error(err)
		return ExitUsage
	}
	thr, warns := runutil.ResolveThreshold(c.Filter.Adaptive, c.Filter.MinScore, c.MinScoreSet, c.Filter.ErrorRate, c.Filter.Delta)
	cmdutil.Warnings(logger, warns)
	filter := overlap.Filter{Threshold: thr, AlignEnd: c.Filter.AlignEnd, RelaxMargin: c.Filter.RelaxMargin}
	logger.Debugf("scheme %v, x-drop %d, %s-bit lanes", eng.Scheme(), eng.DropOff(), eng.Lanes())

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	start := time.Now()
	idx, err := reads.Load(ctx, c.Reads)
	if err != nil {
		return failure(logger, err)
	}
	logger.Infof("loaded %s reads (%s bases, %s with N) in %s",
		humanize.Comma(int64(idx.Len())), humanize.Comma(idx.Bases()),
		humanize.Comma(int64(idx.Ambiguous())), time.Since(start).Round(time.Millisecond))

	cands, err := candidates.Load(c.Candidates, c.Kmer)
	if err != nil {
		return failure(logger, err)
	}

	threads := runutil.EffectiveThreads(c.Run.Threads)
	outw := bufio.NewWriter(writers.NewSink(stdout))
	wf := NewAlignmentWriterFactory(c.Output.Format, c.Output.Sort, !c.Output.NoHeader)
	inCh, writeErr := wf.Start(outw, threads*4)

	pcfg := pipeline.Config{
		Threads:   threads,
		DedupeCap: runutil.DedupeCapacity(len(cands), c.Run.DedupeCap),
		KeepAll:   c.Output.KeepAll,
	}
	var pbs *mpb.Progress
	var bar *mpb.Bar
	if c.Run.Progress {
		pbs, bar = newProgress(stderr, len(cands))
		pcfg.OnDone = func(d time.Duration) { bar.EwmaIncrBy(1, d) }
		pcfg.OnSkip = bar.Increment
	}

	start = time.Now()
	st, perr := cmdutil.RunStream(ctx, pcfg, idx, cands, pipeline.PairAligner{Eng: eng}, filter,
		func(al overlap.Alignment) error {
			select {
			case inCh <- al:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		},
	)
	close(inCh)

	if bar != nil {
		if perr != nil {
			bar.Abort(false)
		} else {
			// every candidate has been counted; a bar built with a zero
			// total only completes on request
			bar.SetTotal(-1, true)
		}
		pbs.Wait()
	}

	if werr := <-writeErr; writers.Closed(werr) {
		return ExitOK
	} else if werr != nil {
		logger.Error(werr)
		return ExitRuntime
	}
	if e := outw.Flush(); writers.Closed(e) {
		return ExitOK
	} else if e != nil {
		logger.Error(e)
		return ExitRuntime
	}

	if perr != nil {
		return failure(logger, perr)
	}
	logger.Infof("aligned %s of %s candidates in %s: %s passed, %s duplicates, %s with missing reads",
		humanize.Comma(int64(st.Aligned)), humanize.Comma(int64(st.Candidates)),
		time.Since(start).Round(time.Millisecond), humanize.Comma(int64(st.Passed)),
		humanize.Comma(int64(st.Duplicates)), humanize.Comma(int64(st.Missing)))
	if st.Passed == 0 && c.Output.FailOnEmpty {
		return ExitNoMatch
	}
	return ExitOK
}

func failure(logger *log.Logger, err error) int {
	if errors.Is(err, context.Canceled) {
		return ExitCancelled
	}
	logger.Error(err)
	return ExitRuntime
}

func newProgress(stderr io.Writer, total int) (*mpb.Progress, *mpb.Bar) {
	pbs := mpb.New(mpb.WithWidth(40), mpb.WithOutput(stderr))
	bar := pbs.AddBar(int64(total),
		mpb.PrependDecorators(
			decor.Name("aligned candidates: ", decor.WC{W: len("aligned candidates: "), C: decor.DindentRight}),
			decor.Name("", decor.WCSyncSpaceR),
			decor.CountersNoUnit("%d / %d", decor.WCSyncWidth),
		),
		mpb.AppendDecorators(
			decor.Name("ETA: ", decor.WC{W: len("ETA: ")}),
			decor.EwmaETA(decor.ET_STYLE_GO, 1024),
			decor.OnComplete(decor.Name(""), ". done"),
		),
	)
	return pbs, bar
}
