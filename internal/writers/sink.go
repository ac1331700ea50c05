package writers

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/swemeshy/counts-to-csv/internal/output"
)

// Stdout is the outfile name that selects standard output.
const Stdout = "-"

// Sink is the destination of one conversion: a created file or stdout,
// optionally behind a compression codec.
type Sink struct {
	Path  string
	Codec string

	file  *os.File
	enc   io.WriteCloser
	count *countingWriter
}

// Create opens outfile ("-" for stdout) behind the named codec. The file is
// truncated if it exists.
func Create(outfile, codec string, stdout io.Writer) (*Sink, error) {
	c, ok := Codecs[codec]
	if !ok {
		return nil, fmt.Errorf("unknown compression %q (no codec registered)", codec)
	}
	s := &Sink{Path: outfile, Codec: codec}
	dst := stdout
	if outfile != Stdout {
		f, err := os.Create(outfile)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", output.ErrWrite, err)
		}
		s.file = f
		dst = f
	}
	s.count = &countingWriter{w: dst}
	enc, err := c(s.count)
	if err != nil {
		s.closeFile()
		return nil, fmt.Errorf("%w: %s codec: %w", output.ErrWrite, codec, err)
	}
	s.enc = enc
	return s, nil
}

func (s *Sink) Write(p []byte) (int, error) { return s.enc.Write(p) }

// Bytes is the number of bytes that reached the destination, after compression.
func (s *Sink) Bytes() int64 { return s.count.n }

// Close flushes the codec and closes the file. Stdout is left open.
func (s *Sink) Close() error {
	err := s.enc.Close()
	if err != nil {
		err = fmt.Errorf("%w: %w", output.ErrWrite, err)
	}
	return errors.Join(err, s.closeFile())
}

func (s *Sink) closeFile() error {
	if s.file == nil {
		return nil
	}
	f := s.file
	s.file = nil
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: %w", output.ErrWrite, err)
	}
	return nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
