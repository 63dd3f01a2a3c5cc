// internal/cmdutil/log.go
package cmdutil

import (
	"io"

	log "github.com/sirupsen/logrus"
)

// NewLogger returns a logger writing plain text to dst. quiet keeps warnings
// and errors only, verbose adds debug messages; quiet wins when both are set.
func NewLogger(dst io.Writer, verbose, quiet bool) *log.Logger {
	l := log.New()
	l.SetOutput(dst)
	l.SetFormatter(&log.TextFormatter{
		DisableTimestamp:       true,
		DisableLevelTruncation: true,
		PadLevelText:           true,
	})
	switch {
	case quiet:
		l.SetLevel(log.WarnLevel)
	case verbose:
		l.SetLevel(log.DebugLevel)
	default:
		l.SetLevel(log.InfoLevel)
	}
	return l
}

// Warnings logs each message at warn level.
func Warnings(l log.FieldLogger, msgs []string) {
	for _, m := range msgs {
		l.Warn(m)
	}
}
