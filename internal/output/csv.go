// internal/output/csv.go
package output

import (
	"bufio"
	"errors"
	"fmt"
	"io"
)

var ErrWrite = errors.New("output write failed")

// Writer emits a header and then one line per dense vector. Lines go
// through a bufio.Writer; nothing beyond the current line is held.
type Writer struct {
	// BitSize is the float width values are formatted at. Defaults to 64.
	BitSize int

	bw    *bufio.Writer
	delim byte
	line  []byte
	err   error
}

func NewWriter(w io.Writer, d Delimiter) *Writer {
	return &Writer{
		BitSize: 64,
		bw:      bufio.NewWriterSize(w, 64*1024),
		delim:   byte(d),
	}
}

// WriteHeader writes the corner field followed by every label.
func (w *Writer) WriteHeader(corner string, labels []string) error {
	buf := appendField(w.line[:0], corner, w.delim)
	for _, l := range labels {
		buf = append(buf, w.delim)
		buf = appendField(buf, l, w.delim)
	}
	return w.emit(buf)
}

// WriteLine writes label followed by every value.
func (w *Writer) WriteLine(label string, values []float64) error {
	buf := appendField(w.line[:0], label, w.delim)
	for _, v := range values {
		buf = append(buf, w.delim)
		buf = AppendValue(buf, v, w.BitSize)
	}
	return w.emit(buf)
}

func (w *Writer) Flush() error {
	if w.err != nil {
		return w.err
	}
	if err := w.bw.Flush(); err != nil {
		w.err = fmt.Errorf("%w: %w", ErrWrite, err)
	}
	return w.err
}

func (w *Writer) emit(buf []byte) error {
	buf = append(buf, '\n')
	w.line = buf
	if w.err != nil {
		return w.err
	}
	if _, err := w.bw.Write(buf); err != nil {
		w.err = fmt.Errorf("%w: %w", ErrWrite, err)
	}
	return w.err
}
