// Package config holds the settings of an alignment run. Values come from
// defaults, an optional YAML file, LOGAN_* environment variables and
// command-line flags, in increasing order of precedence, and are decoded
// from Viper into Config.
package config

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"logan-core/xdrop"

	"logan/internal/output"
)

// Defaults of the engine and the overlap filter.
const (
	DefaultXDrop       = 7
	DefaultKmer        = 17
	DefaultMinScore    = 50
	DefaultErrorRate   = 0.15
	DefaultDelta       = 0.2
	DefaultRelaxMargin = 300
)

// ScoringConfig is the scoring scheme and the engine settings.
type ScoringConfig struct {
	Match    int `mapstructure:"match"`
	Mismatch int `mapstructure:"mismatch"`
	Gap      int `mapstructure:"gap"`
	// GapOpen of 0 selects the linear model
	GapOpen int    `mapstructure:"gap-open"`
	XDrop   int    `mapstructure:"xdrop"`
	Lanes   string `mapstructure:"lanes"`
}

// FilterConfig decides which alignments count as overlaps.
type FilterConfig struct {
	Adaptive    bool    `mapstructure:"adaptive"`
	ErrorRate   float64 `mapstructure:"error-rate"`
	Delta       float64 `mapstructure:"delta"`
	MinScore    int     `mapstructure:"min-score"`
	AlignEnd    bool    `mapstructure:"align-end"`
	RelaxMargin int     `mapstructure:"relax-margin"`
}

// OutputConfig is about what gets written and how.
type OutputConfig struct {
	Format   string `mapstructure:"format"`
	Sort     bool   `mapstructure:"sort"`
	NoHeader bool   `mapstructure:"no-header"`
	// KeepAll writes alignments that fail the filter too
	KeepAll bool `mapstructure:"keep-all"`
	// FailOnEmpty exits with 1 when nothing passed the filter
	FailOnEmpty bool `mapstructure:"fail-on-empty"`
}

// RunConfig tunes the worker pool.
type RunConfig struct {
	Threads   int  `mapstructure:"threads"`
	DedupeCap int  `mapstructure:"dedupe-cap"`
	Progress  bool `mapstructure:"progress"`
}

// Config is the root-level settings struct.
type Config struct {
	Reads      []string      `mapstructure:"reads"`
	Candidates string        `mapstructure:"candidates"`
	Kmer       int           `mapstructure:"kmer"`
	Scoring    ScoringConfig `mapstructure:"scoring"`
	Filter     FilterConfig  `mapstructure:"filter"`
	Output     OutputConfig  `mapstructure:"output"`
	Run        RunConfig     `mapstructure:"run"`

	// MinScoreSet reports whether min-score was given explicitly.
	MinScoreSet bool `mapstructure:"-"`
}

// FlagKeys maps command-line flag names to their Viper keys.
var FlagKeys = map[string]string{
	"reads":         "reads",
	"candidates":    "candidates",
	"kmer":          "kmer",
	"match":         "scoring.match",
	"mismatch":      "scoring.mismatch",
	"gap":           "scoring.gap",
	"gap-open":      "scoring.gap-open",
	"xdrop":         "scoring.xdrop",
	"lanes":         "scoring.lanes",
	"adaptive":      "filter.adaptive",
	"error-rate":    "filter.error-rate",
	"delta":         "filter.delta",
	"min-score":     "filter.min-score",
	"align-end":     "filter.align-end",
	"relax-margin":  "filter.relax-margin",
	"output":        "output.format",
	"sort":          "output.sort",
	"no-header":     "output.no-header",
	"keep-all":      "output.keep-all",
	"fail-on-empty": "output.fail-on-empty",
	"threads":       "run.threads",
	"dedupe-cap":    "run.dedupe-cap",
	"progress":      "run.progress",
}

// SetDefaults registers every default on v. filter.min-score is left out
// on purpose so IsSet can tell an explicit value apart; Load fills it in.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("kmer", DefaultKmer)
	v.SetDefault("scoring.match", 1)
	v.SetDefault("scoring.mismatch", -1)
	v.SetDefault("scoring.gap", -1)
	v.SetDefault("scoring.gap-open", 0)
	v.SetDefault("scoring.xdrop", DefaultXDrop)
	v.SetDefault("scoring.lanes", xdrop.LanesAuto.String())
	v.SetDefault("filter.error-rate", DefaultErrorRate)
	v.SetDefault("filter.delta", DefaultDelta)
	v.SetDefault("filter.relax-margin", DefaultRelaxMargin)
	v.SetDefault("output.format", output.FormatTSV)
}

// New returns a Viper instance with defaults and LOGAN_* environment
// lookups (LOGAN_SCORING_XDROP for scoring.xdrop).
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("LOGAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	SetDefaults(v)
	return v
}

// BindFlags binds every known flag present in fs to its key.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for name, key := range FlagKeys {
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return errors.Wrapf(err, "bind --%s", name)
		}
	}
	return nil
}

// ReadFile merges a YAML (or any Viper-supported) config file into v.
func ReadFile(v *viper.Viper, path string) error {
	if path == "" {
		return nil
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return errors.Wrapf(err, "read config %s", path)
	}
	return nil
}

// Load decodes v into a Config and validates it.
func Load(v *viper.Viper) (Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return c, errors.Wrap(err, "decode config")
	}
	c.MinScoreSet = v.IsSet("filter.min-score")
	if !c.MinScoreSet {
		c.Filter.MinScore = DefaultMinScore
	}
	if err := c.Validate(); err != nil {
		return c, err
	}
	return c, nil
}

// Scheme returns the scoring scheme.
func (c Config) Scheme() xdrop.Scheme {
	s := c.Scoring
	if s.GapOpen != 0 {
		return xdrop.Affine(s.Match, s.Mismatch, s.GapOpen, s.Gap)
	}
	return xdrop.Linear(s.Match, s.Mismatch, s.Gap)
}

// Engine returns the engine configuration.
func (c Config) Engine() (xdrop.Config, error) {
	lanes, err := xdrop.ParseLanes(c.Scoring.Lanes)
	if err != nil {
		return xdrop.Config{}, err
	}
	return xdrop.Config{Scheme: c.Scheme(), DropOff: c.Scoring.XDrop, Lanes: lanes}, nil
}

// Validate checks settings shared by every command.
func (c Config) Validate() error {
	if c.Kmer <= 0 {
		return errors.Errorf("kmer must be > 0, got %d", c.Kmer)
	}
	if c.Scoring.XDrop < 0 {
		return errors.Errorf("xdrop must be >= 0, got %d", c.Scoring.XDrop)
	}
	if c.Filter.RelaxMargin < 0 {
		return errors.Errorf("relax-margin must be >= 0, got %d", c.Filter.RelaxMargin)
	}
	if _, err := c.Engine(); err != nil {
		return err
	}
	if err := c.Scheme().Validate(); err != nil {
		return err
	}
	for _, f := range output.Formats {
		if f == c.Output.Format {
			return nil
		}
	}
	return errors.Errorf("unsupported output %q (want one of %s)", c.Output.Format, strings.Join(output.Formats, ", "))
}

// ValidateInputs checks the inputs of an alignment run.
func (c Config) ValidateInputs() error {
	if len(c.Reads) == 0 {
		return errors.New("no reads given (--reads)")
	}
	if c.Candidates == "" {
		return errors.New("no candidates given (--candidates)")
	}
	return nil
}
