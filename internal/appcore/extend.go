package appcore

import (
	"bufio"
	"io"

	log "github.com/sirupsen/logrus"

	"logan-core/dna"
	"logan-core/xdrop"

	"logan/internal/config"
	"logan/internal/output"
	"logan/internal/writers"
)

// ExtendRequest is a single seed extension given on the command line.
type ExtendRequest struct {
	H, V         string
	SeedH, SeedV int
	Direction    string
}

// RunExtend extends one seed between two sequences and prints the result as
// JSON. The seed length is c.Kmer.
func RunExtend(stdout io.Writer, logger *log.Logger, c config.Config, req ExtendRequest) int {
	h, err := dna.Validate(req.H)
	if err != nil {
		logger.Errorf("--h: %v", err)
		return ExitUsage
	}
	v, err := dna.Validate(req.V)
	if err != nil {
		logger.Errorf("--v: %v", err)
		return ExitUsage
	}
	dir, err := xdrop.ParseDirection(req.Direction)
	if err != nil {
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

	x, err := eng.ExtendSeed(xdrop.NewSeed(req.SeedH, req.SeedV, c.Kmer), dir, []byte(h), []byte(v))
	if err != nil {
		logger.Error(err)
		return ExitUsage
	}
	logger.Debugf("left %+v right %+v", x.Left, x.Right)

	outw := bufio.NewWriter(writers.NewSink(stdout))
	if err := output.WriteExtension(outw, x, dir, eng.Lanes()); err != nil && !writers.Closed(err) {
		logger.Error(err)
		return ExitRuntime
	}
	if err := outw.Flush(); err != nil && !writers.Closed(err) {
		logger.Error(err)
		return ExitRuntime
	}
	return ExitOK
}
