// internal/appcore/core.go
package appcore

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/swemeshy/counts-to-csv/internal/config"
	"github.com/swemeshy/counts-to-csv/internal/convert"
	"github.com/swemeshy/counts-to-csv/internal/csr"
	"github.com/swemeshy/counts-to-csv/internal/h5ad"
	"github.com/swemeshy/counts-to-csv/internal/jsonutil"
	"github.com/swemeshy/counts-to-csv/internal/labels"
	"github.com/swemeshy/counts-to-csv/internal/logging"
	"github.com/swemeshy/counts-to-csv/internal/metrics"
	"github.com/swemeshy/counts-to-csv/internal/output"
	"github.com/swemeshy/counts-to-csv/internal/progress"
	"github.com/swemeshy/counts-to-csv/internal/version"
	"github.com/swemeshy/counts-to-csv/internal/writers"
	"github.com/swemeshy/counts-to-csv/pkg/api"
)

// Exit codes. Each input failure class has its own code.
const (
	ExitOK             = 0
	ExitUsage          = 2
	ExitIO             = 3
	ExitMissingDataset = 4
	ExitMalformed      = 5
	ExitUnsupported    = 6
	ExitLabelMismatch  = 7
	ExitCancelled      = 130
)

// Opener opens the input container.
type Opener func(path string) (h5ad.Source, error)

type Options struct {
	Input  string
	Config config.Config
	RunID  string
	Open   Opener

	Summary     string
	MetricsFile string
	Progress    string

	Quiet   bool
	Verbose bool
}

// ExitCode maps an error to the process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return ExitCancelled
	case errors.Is(err, config.ErrInvalid):
		return ExitUsage
	case errors.Is(err, h5ad.ErrMissingDataset):
		return ExitMissingDataset
	case errors.Is(err, csr.ErrMalformedMatrix):
		return ExitMalformed
	case errors.Is(err, h5ad.ErrUnsupportedEncoding):
		return ExitUnsupported
	case errors.Is(err, labels.ErrLabelCountMismatch):
		return ExitLabelMismatch
	}
	return ExitIO
}

// Run converts o.Input according to o.Config. Nothing is created at the
// output path unless the input loads and validates.
func Run(ctx context.Context, stdout, stderr io.Writer, o Options) int {
	cfg := o.Config
	if err := cfg.Validate(); err != nil {
		return fail(stderr, err)
	}
	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return fail(stderr, fmt.Errorf("%w: %w", config.ErrInvalid, err))
	}
	log := logging.New(stderr, logging.Config{
		Level: logging.Adjust(level, o.Verbose, o.Quiet),
		JSON:  cfg.Log.JSON,
	}).With("run_id", o.RunID)

	delim, err := output.ParseDelimiter(cfg.Delimiter)
	if err != nil {
		return fail(stderr, fmt.Errorf("%w: %w", config.ErrInvalid, err))
	}
	orient, err := labels.ParseOrientation(cfg.ColumnOrient)
	if err != nil {
		return fail(stderr, fmt.Errorf("%w: %w", config.ErrInvalid, err))
	}
	codec, err := writers.ResolveCodec(cfg.Compression, cfg.Outfile)
	if err != nil {
		return fail(stderr, fmt.Errorf("%w: %w", config.ErrInvalid, err))
	}

	var mc *metrics.Collector
	if o.MetricsFile != "" {
		mc = metrics.New(prometheus.Labels{"orientation": orient.String()})
	}
	var bar progress.Reporter = progress.Nop{}
	if !o.Quiet && progress.Enabled(o.Progress, stderr) {
		bar = progress.NewBar(stderr)
	}

	log.Info("reading H5 file", "path", o.Input)
	src, err := o.Open(o.Input)
	if err != nil {
		return fail(stderr, err)
	}
	defer src.Close()

	layout := cfg.Layout.H5()
	conv, err := convert.Prepare(src, convert.Options{
		Layout:      layout,
		Orientation: orient,
		Delimiter:   delim,
		IndexLabel:  cfg.IndexLabel,
		Logger:      log,
		Progress:    bar,
		Metrics:     mc,
	})
	if err != nil {
		return fail(stderr, err)
	}

	sink, err := writers.Create(cfg.Outfile, codec, stdout)
	if err != nil {
		return fail(stderr, err)
	}
	log.Info("writing "+cfg.Outfile, "lines", conv.Lines(), "orientation", orient, "compression", codec)
	stats, err := conv.WriteTo(ctx, sink)
	err = errors.Join(err, sink.Close())
	mc.AddBytes(sink.Bytes())
	if err != nil {
		if writers.IsBrokenPipe(err) {
			log.Debug("output pipe closed early", "lines", stats.Lines)
			return ExitOK
		}
		return fail(stderr, err)
	}
	log.Info("done writing "+cfg.Outfile, "lines", stats.Lines, "bytes", sink.Bytes(), "duration", stats.Duration)

	if o.MetricsFile != "" {
		if err := mc.WriteTextfile(o.MetricsFile); err != nil {
			return fail(stderr, fmt.Errorf("%w: %w", output.ErrWrite, err))
		}
		log.Debug("wrote metrics", "path", o.MetricsFile)
	}
	if o.Summary != "" {
		m := conv.Matrix()
		s := api.SummaryV1{
			RunID:           o.RunID,
			Version:         version.Version,
			Input:           o.Input,
			Matrix:          layout.Matrix,
			Rows:            m.Rows,
			Cols:            m.Cols,
			Nonzeros:        m.NNZ(),
			ValueBits:       m.BitSize,
			ShapeInferred:   m.ShapeInferred,
			Output:          cfg.Outfile,
			Orientation:     orient.String(),
			Delimiter:       delim.Name(),
			Compression:     codec,
			Lines:           stats.Lines,
			Bytes:           sink.Bytes(),
			DurationSeconds: stats.Duration.Seconds(),
		}
		if err := jsonutil.WriteFile(o.Summary, s); err != nil {
			return fail(stderr, fmt.Errorf("%w: summary: %w", output.ErrWrite, err))
		}
		log.Debug("wrote summary", "path", o.Summary)
	}
	return ExitOK
}

func fail(stderr io.Writer, err error) int {
	code := ExitCode(err)
	if code != ExitCancelled {
		_, _ = fmt.Fprintln(stderr, "error:", err)
	}
	return code
}

