// internal/cli/root.go
//
// Package cli is the logan command tree.
package cli

import (
	"context"
	"fmt"
	"io"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"logan/internal/appcore"
	"logan/internal/cmdutil"
	"logan/internal/config"
	"logan/internal/version"
)

// globals are the persistent flags of the root command.
type globals struct {
	configFile     string
	verbose, quiet bool
}

// Execute runs the command line in argv and returns the exit code.
func Execute(ctx context.Context, argv []string, stdout, stderr io.Writer) int {
	code := appcore.ExitOK
	root := NewRootCmd(stdout, stderr, &code)
	root.SetArgs(argv)
	if err := root.ExecuteContext(ctx); err != nil {
		_, _ = fmt.Fprintf(stderr, "error: %v\n", err)
		_, _ = fmt.Fprintf(stderr, "run '%s --help' for usage\n", root.CommandPath())
		return appcore.ExitUsage
	}
	return code
}

// NewRootCmd builds the command tree. Subcommands store their exit code in
// code.
func NewRootCmd(stdout, stderr io.Writer, code *int) *cobra.Command {
	var g globals
	root := &cobra.Command{
		Use:   "logan",
		Short: "X-drop seed extension for long-read overlap detection",
		Long: `Extend shared k-mers between reads with an adaptive-banded X-drop
aligner and report the read pairs that overlap.`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetVersionTemplate("logan version {{.Version}}\n")

	pf := root.PersistentFlags()
	pf.StringVar(&g.configFile, "config", "", "YAML config file")
	pf.BoolVarP(&g.verbose, "verbose", "v", false, "debug logging")
	pf.BoolVarP(&g.quiet, "quiet", "q", false, "warnings and errors only")

	root.AddCommand(
		newAlignCmd(&g, stdout, stderr, code),
		newExtendCmd(&g, stdout, stderr, code),
		newVersionCmd(stdout),
	)
	return root
}

// load builds the configuration of one command invocation.
func load(cmd *cobra.Command, g *globals) (config.Config, error) {
	v := config.New()
	if err := config.BindFlags(v, cmd.Flags()); err != nil {
		return config.Config{}, err
	}
	if err := config.ReadFile(v, g.configFile); err != nil {
		return config.Config{}, err
	}
	return config.Load(v)
}

func newLogger(g *globals, stderr io.Writer) *log.Logger {
	return cmdutil.NewLogger(stderr, g.verbose, g.quiet)
}

func newAlignCmd(g *globals, stdout, stderr io.Writer, code *int) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "align",
		Short: "Align candidate read pairs and report overlaps",
		Example: `  logan align -r reads.fa.gz -c pairs.tsv -x 7 --adaptive
  logan align -r reads.fq -c pairs.tsv -o paf --sort > overlaps.paf`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := newLogger(g, stderr)
			c, err := load(cmd, g)
			if err != nil {
				logger.Error(err)
				*code = appcore.ExitUsage
				return nil
			}
			*code = appcore.Run(cmd.Context(), stdout, stderr, logger, c)
			return nil
		},
	}
	addAlignFlags(cmd.Flags())
	return cmd
}

func newExtendCmd(g *globals, stdout, stderr io.Writer, code *int) *cobra.Command {
	var req appcore.ExtendRequest
	cmd := &cobra.Command{
		Use:     "extend",
		Short:   "Extend one seed between two sequences",
		Example: `  logan extend --h ACGTACGT --v ACGTTCGT --seed-h 0 --seed-v 0 -k 3 -x 10`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := newLogger(g, stderr)
			c, err := load(cmd, g)
			if err != nil {
				logger.Error(err)
				*code = appcore.ExitUsage
				return nil
			}
			*code = appcore.RunExtend(stdout, logger, c, req)
			return nil
		},
	}
	fs := cmd.Flags()
	fs.StringVar(&req.H, "h", "", "horizontal (target) sequence [*]")
	fs.StringVar(&req.V, "v", "", "vertical (query) sequence [*]")
	fs.IntVar(&req.SeedH, "seed-h", 0, "seed start on --h")
	fs.IntVar(&req.SeedV, "seed-v", 0, "seed start on --v")
	fs.StringVarP(&req.Direction, "direction", "d", "both", "none|left|right|both")
	addScoringFlags(fs)
	_ = cmd.MarkFlagRequired("h")
	_ = cmd.MarkFlagRequired("v")
	return cmd
}

func newVersionCmd(stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(*cobra.Command, []string) {
			_, _ = fmt.Fprintf(stdout, "logan version %s\n", version.Version)
		},
	}
}
