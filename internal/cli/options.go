// internal/cli/options.go
package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"github.com/swemeshy/counts-to-csv/internal/cliutil"
	"github.com/swemeshy/counts-to-csv/internal/config"
	"github.com/swemeshy/counts-to-csv/internal/output"
	"github.com/swemeshy/counts-to-csv/internal/progress"
)

// Options holds all CLI flags and arguments. Fields that also live in the
// config file only take effect when set on the command line (see Apply).
type Options struct {
	// Input
	H5File string
	Matrix string
	Obs    string
	Var    string

	// Output
	Outfile      string
	Delimiter    string
	ColumnOrient string
	IndexLabel   string
	Compression  string

	// Run
	ConfigFile  string
	Summary     string
	MetricsFile string
	Progress    string

	// Misc
	Quiet    bool
	Verbose  bool
	LogJSON  bool
	LogLevel string
	Examples bool
}

// Register wires every flag onto fs. Defaults come from config.Default so
// the help text shows what an empty config file yields.
func Register(fs *pflag.FlagSet, o *Options) {
	def := config.Default()

	// Input
	fs.StringVarP(&o.H5File, "h5-file", "f", "", "H5/H5AD file to read (or one positional path)")
	fs.StringVar(&o.Matrix, "matrix", def.Layout.Matrix, "CSR matrix group, e.g. raw/X or layers/counts")
	fs.StringVar(&o.Obs, "obs", def.Layout.Obs, "group holding row (cell) names")
	fs.StringVar(&o.Var, "var", def.Layout.Var, "group holding column (gene) names")

	// Output
	fs.StringVarP(&o.Outfile, "outfile", "o", def.Outfile, "output path, '-' for stdout")
	fs.StringVarP(&o.Delimiter, "delimiter", "d", def.Delimiter, strings.Join(output.DelimiterNames, " | "))
	fs.StringVarP(&o.ColumnOrient, "column-orient", "c", def.ColumnOrient, "header names: var-names | obs-names")
	fs.StringVar(&o.IndexLabel, "index-label", def.IndexLabel, "first header field, e.g. cell or gene")
	fs.StringVar(&o.Compression, "compression", def.Compression, compressionChoices()+" (auto goes by extension)")

	// Run
	fs.StringVar(&o.ConfigFile, "config", "", "YAML config file; flags override it")
	fs.StringVar(&o.Summary, "summary", "", "write a JSON run summary to this path")
	fs.StringVar(&o.MetricsFile, "metrics-file", "", "write Prometheus textfile metrics to this path")
	fs.StringVar(&o.Progress, "progress", progress.ModeAuto, "progress bar on stderr: auto | always | never")

	// Misc
	fs.BoolVarP(&o.Quiet, "quiet", "q", false, "only log warnings and errors, no progress bar")
	fs.BoolVarP(&o.Verbose, "verbose", "v", false, "log debug details")
	fs.BoolVar(&o.LogJSON, "log-json", false, "log JSON records instead of text")
	fs.StringVar(&o.LogLevel, "log-level", def.Log.Level, "debug | info | warn | error")
	fs.BoolVar(&o.Examples, "examples", false, "print usage examples and exit")
}

// AfterParse resolves the input file from -f or the positionals, then
// validates.
func AfterParse(o *Options, posArgs []string) error {
	in, err := cliutil.SingleInput(o.H5File, "h5-file", posArgs)
	if err != nil {
		return err
	}
	o.H5File = in
	return Validate(o)
}

// Validate checks the flags that never reach the config file. The rest is
// validated with the merged config.
func Validate(o *Options) error {
	if o.H5File == "" {
		return errors.New("provide --h5-file or a positional input file")
	}
	if o.Quiet && o.Verbose {
		return errors.New("--quiet conflicts with --verbose")
	}
	switch o.Progress {
	case progress.ModeAuto, progress.ModeAlways, progress.ModeNever:
	default:
		return fmt.Errorf("invalid --progress %q", o.Progress)
	}
	return nil
}

// Apply copies every flag the user set onto cfg, so explicit flags win over
// the config file and the file wins over defaults.
func (o Options) Apply(fs *pflag.FlagSet, cfg *config.Config) {
	set := func(name string, dst *string, v string) {
		if fs.Changed(name) {
			*dst = v
		}
	}
	set("outfile", &cfg.Outfile, o.Outfile)
	set("delimiter", &cfg.Delimiter, o.Delimiter)
	set("column-orient", &cfg.ColumnOrient, o.ColumnOrient)
	set("index-label", &cfg.IndexLabel, o.IndexLabel)
	set("compression", &cfg.Compression, o.Compression)
	set("obs", &cfg.Layout.Obs, o.Obs)
	set("var", &cfg.Layout.Var, o.Var)
	set("log-level", &cfg.Log.Level, o.LogLevel)
	if fs.Changed("matrix") {
		cfg.SetMatrix(o.Matrix, fs.Changed("var"))
	}
	if o.LogJSON {
		cfg.Log.JSON = true
	}
}
