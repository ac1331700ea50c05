package writers

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

func TestResolveCodecAuto(t *testing.T) {
	cases := map[string]string{
		"out.csv":      CodecNone,
		"out.csv.gz":   CodecGzip,
		"OUT.TSV.GZ":   CodecGzip,
		"out.csv.zst":  CodecZstd,
		"out.csv.zstd": CodecZstd,
		"-":            CodecNone,
	}
	for outfile, want := range cases {
		got, err := ResolveCodec(CodecAuto, outfile)
		if err != nil {
			t.Fatalf("%s: %v", outfile, err)
		}
		if got != want {
			t.Fatalf("%s: got %q want %q", outfile, got, want)
		}
	}
}

func TestResolveCodecExplicit(t *testing.T) {
	got, err := ResolveCodec(CodecGzip, "out.csv")
	if err != nil || got != CodecGzip {
		t.Fatalf("explicit gzip: got %q, %v", got, err)
	}
	_, err = ResolveCodec("brotli", "out.csv")
	if err == nil || !strings.Contains(err.Error(), "unknown compression") {
		t.Fatalf("want 'unknown compression' error, got: %v", err)
	}
}

func TestCodecNames(t *testing.T) {
	got := strings.Join(CodecNames(), ",")
	if got != "gzip,none,zstd" {
		t.Fatalf("codec names changed: %s", got)
	}
}

func TestCodecsRoundTrip(t *testing.T) {
	const payload = ",g1,g2\ncellA,1.0,0.0\n"
	decode := map[string]func(io.Reader) (io.Reader, error){
		CodecNone: func(r io.Reader) (io.Reader, error) { return r, nil },
		CodecGzip: func(r io.Reader) (io.Reader, error) { return gzip.NewReader(r) },
		CodecZstd: func(r io.Reader) (io.Reader, error) { return zstd.NewReader(r) },
	}
	for name, dec := range decode {
		var buf bytes.Buffer
		w, err := Codecs[name](&buf)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if _, err := io.WriteString(w, payload); err != nil {
			t.Fatalf("%s write: %v", name, err)
		}
		if err := w.Close(); err != nil {
			t.Fatalf("%s close: %v", name, err)
		}
		r, err := dec(&buf)
		if err != nil {
			t.Fatalf("%s reader: %v", name, err)
		}
		got, err := io.ReadAll(r)
		if err != nil {
			t.Fatalf("%s read: %v", name, err)
		}
		if string(got) != payload {
			t.Fatalf("%s: got %q", name, got)
		}
	}
}
