// Package convert drives one matrix-to-text conversion: everything that can
// fail on the input happens in Prepare, before any output exists.
package convert

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/swemeshy/counts-to-csv/internal/csr"
	"github.com/swemeshy/counts-to-csv/internal/h5ad"
	"github.com/swemeshy/counts-to-csv/internal/labels"
	"github.com/swemeshy/counts-to-csv/internal/logging"
	"github.com/swemeshy/counts-to-csv/internal/metrics"
	"github.com/swemeshy/counts-to-csv/internal/output"
	"github.com/swemeshy/counts-to-csv/internal/progress"
)

type Options struct {
	Layout      h5ad.Layout
	Orientation labels.Orientation
	Delimiter   output.Delimiter
	// IndexLabel fills the header's first field.
	IndexLabel string

	Logger   *slog.Logger
	Progress progress.Reporter
	Metrics  *metrics.Collector
}

// Conversion owns the loaded matrix, its labels and, for obs-names output,
// the column index. It is read-only once Prepare returns.
type Conversion struct {
	opts    Options
	matrix  *csr.Matrix
	labels  labels.Resolved
	columns *csr.ColumnIndex
}

type Stats struct {
	// Lines counts data lines, header excluded.
	Lines    int
	Columns  int
	Duration time.Duration
}

// Prepare loads and validates the matrix, resolves labels and builds the
// column index when lines are matrix columns.
func Prepare(acc h5ad.Accessor, o Options) (*Conversion, error) {
	if o.Logger == nil {
		o.Logger = logging.Discard()
	}
	if o.Progress == nil {
		o.Progress = progress.Nop{}
	}

	m, err := csr.Load(acc, o.Layout)
	if err != nil {
		return nil, err
	}
	res, err := labels.Resolve(acc, o.Layout, o.Orientation, m)
	if err != nil {
		return nil, err
	}
	o.Logger.Debug("loaded matrix",
		"matrix", o.Layout.Matrix, "rows", m.Rows, "cols", m.Cols,
		"nnz", m.NNZ(), "bits", m.BitSize, "shape_inferred", m.ShapeInferred)

	c := &Conversion{opts: o, matrix: m, labels: res}
	if res.Transposed() {
		c.columns = csr.NewColumnIndex(m)
		o.Logger.Debug("built column index", "cols", c.columns.Columns())
	}
	o.Metrics.ObserveMatrix(m.Rows, m.Cols, m.NNZ())
	return c, nil
}

func (c *Conversion) Matrix() *csr.Matrix      { return c.matrix }
func (c *Conversion) Labels() labels.Resolved { return c.labels }

// Lines is the number of data lines WriteTo emits.
func (c *Conversion) Lines() int { return len(c.labels.Leading) }

// WriteTo writes the header and every line to w, checking ctx between lines.
// On error the output written so far is left as is.
func (c *Conversion) WriteTo(ctx context.Context, w io.Writer) (Stats, error) {
	start := time.Now()
	out := output.NewWriter(w, c.opts.Delimiter)
	out.BitSize = c.matrix.BitSize

	stats := Stats{Columns: len(c.labels.Header)}
	if err := out.WriteHeader(c.opts.IndexLabel, c.labels.Header); err != nil {
		return stats, err
	}
	c.opts.Metrics.LineWritten()

	c.opts.Progress.Start(c.Lines())
	defer c.opts.Progress.Finish()
	for i, label := range c.labels.Leading {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		if err := out.WriteLine(label, c.line(i)); err != nil {
			return stats, err
		}
		stats.Lines++
		c.opts.Metrics.LineWritten()
		c.opts.Progress.Add(1)
	}
	if err := out.Flush(); err != nil {
		return stats, err
	}
	stats.Duration = time.Since(start)
	c.opts.Metrics.ObserveDuration(stats.Duration)
	return stats, nil
}

func (c *Conversion) line(i int) []float64 {
	if c.columns != nil {
		return c.columns.Column(i)
	}
	return c.matrix.Row(i)
}
