// Package metrics collects per-run counters and exports them in the
// Prometheus text format for node_exporter's textfile collector.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "counts_to_csv"

// Collector owns a private registry. A nil *Collector is valid and records
// nothing, so callers need no guard when metrics are off.
type Collector struct {
	reg *prometheus.Registry

	LinesWritten prometheus.Counter
	BytesWritten prometheus.Counter
	MatrixRows   prometheus.Gauge
	MatrixCols   prometheus.Gauge
	Nonzeros     prometheus.Gauge
	Duration     prometheus.Gauge
}

// New registers the run metrics. Labels are attached to every series.
func New(labels prometheus.Labels) *Collector {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	gauge := func(name, help string) prometheus.Gauge {
		return f.NewGauge(prometheus.GaugeOpts{Namespace: namespace, Name: name, Help: help, ConstLabels: labels})
	}
	counter := func(name, help string) prometheus.Counter {
		return f.NewCounter(prometheus.CounterOpts{Namespace: namespace, Name: name, Help: help, ConstLabels: labels})
	}
	return &Collector{
		reg:          reg,
		LinesWritten: counter("lines_written_total", "Output lines written, header included."),
		BytesWritten: counter("bytes_written_total", "Bytes written to the destination after compression."),
		MatrixRows:   gauge("matrix_rows", "Rows of the CSR matrix."),
		MatrixCols:   gauge("matrix_cols", "Columns of the CSR matrix."),
		Nonzeros:     gauge("matrix_nonzeros", "Stored entries of the CSR matrix."),
		Duration:     gauge("duration_seconds", "Wall time of the conversion."),
	}
}

func (c *Collector) ObserveMatrix(rows, cols, nnz int) {
	if c == nil {
		return
	}
	c.MatrixRows.Set(float64(rows))
	c.MatrixCols.Set(float64(cols))
	c.Nonzeros.Set(float64(nnz))
}

func (c *Collector) LineWritten() {
	if c == nil {
		return
	}
	c.LinesWritten.Inc()
}

func (c *Collector) AddBytes(n int64) {
	if c == nil {
		return
	}
	c.BytesWritten.Add(float64(n))
}

func (c *Collector) ObserveDuration(d time.Duration) {
	if c == nil {
		return
	}
	c.Duration.Set(d.Seconds())
}

// WriteTextfile writes every series to path atomically.
func (c *Collector) WriteTextfile(path string) error {
	if c == nil {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, c.reg); err != nil {
		return fmt.Errorf("metrics: %w", err)
	}
	return nil
}
