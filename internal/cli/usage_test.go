package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

func TestUsageShowsDefaults(t *testing.T) {
	fs := newFS()
	var o Options
	Register(fs, &o)

	var buf bytes.Buffer
	Usage(&buf, fs, "counts-to-csv")
	out := buf.String()
	for _, want := range []string{
		"--delimiter string      comma | tab | colon | pipe | semicolon [comma]",
		"--column-orient string  Header names: var-names | obs-names [var-names]",
		"--outfile string        Output path, '-' for stdout [out.csv]",
		`--index-label string    First header field, e.g. cell or gene [""]`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("usage missing %q", want)
		}
	}
}

func TestUsageListsEveryFlag(t *testing.T) {
	fs := newFS()
	var o Options
	Register(fs, &o)

	var buf bytes.Buffer
	Usage(&buf, fs, "counts-to-csv")
	out := buf.String()
	fs.VisitAll(func(f *pflag.Flag) {
		if !strings.Contains(out, "--"+f.Name) {
			t.Errorf("usage does not mention --%s", f.Name)
		}
	})
}

func TestPrintExamples(t *testing.T) {
	var buf bytes.Buffer
	PrintExamples(&buf, "counts-to-csv")
	if !strings.Contains(buf.String(), "quickstart") || !strings.Contains(buf.String(), "--help") {
		t.Fatalf("unexpected examples: %s", buf.String())
	}
}

func TestUsageListsRegisteredCodecs(t *testing.T) {
	fs := newFS()
	var o Options
	Register(fs, &o)

	var buf bytes.Buffer
	Usage(&buf, fs, "counts-to-csv")
	if want := "--compression string    auto | gzip | none | zstd [auto]"; !strings.Contains(buf.String(), want) {
		t.Errorf("usage missing %q", want)
	}
	if f := fs.Lookup("compression"); !strings.Contains(f.Usage, "auto | gzip | none | zstd") {
		t.Errorf("--compression help: %q", f.Usage)
	}
}
