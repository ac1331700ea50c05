// internal/cli/usage.go
package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/pflag"

	"github.com/swemeshy/counts-to-csv/internal/output"
	"github.com/swemeshy/counts-to-csv/internal/version"
	"github.com/swemeshy/counts-to-csv/internal/writers"
)

// Usage prints the grouped flag reference, defaults taken from fs.
func Usage(out io.Writer, fs *pflag.FlagSet, name string) {
	def := func(flagName string) string {
		if f := fs.Lookup(flagName); f != nil {
			if f.DefValue == "" {
				return `""`
			}
			return f.DefValue
		}
		return ""
	}

	fmt.Fprintf(out, "%s – write the counts matrix of an H5AD file as CSV\n\n", name)
	fmt.Fprintf(out, "Version: %s\n\n", version.Version)
	fmt.Fprintf(out, "Usage:\n  %s [flags] [h5-file]\n", name)

	fmt.Fprintln(out, "\nInput:")
	fmt.Fprintln(out, "  -f, --h5-file string        H5/H5AD file (or one positional path, globs allowed) [*]")
	fmt.Fprintf(out, "      --matrix string         CSR matrix group, e.g. raw/X or layers/counts [%s]\n", def("matrix"))
	fmt.Fprintf(out, "      --obs string            Group holding row (cell) names [%s]\n", def("obs"))
	fmt.Fprintf(out, "      --var string            Group holding column (gene) names [%s]\n", def("var"))

	fmt.Fprintln(out, "\nOutput:")
	fmt.Fprintf(out, "  -o, --outfile string        Output path, '-' for stdout [%s]\n", def("outfile"))
	fmt.Fprintf(out, "  -d, --delimiter string      %s [%s]\n", strings.Join(output.DelimiterNames, " | "), def("delimiter"))
	fmt.Fprintf(out, "  -c, --column-orient string  Header names: var-names | obs-names [%s]\n", def("column-orient"))
	fmt.Fprintf(out, "      --index-label string    First header field, e.g. cell or gene [%s]\n", def("index-label"))
	fmt.Fprintf(out, "      --compression string    %s [%s]\n", compressionChoices(), def("compression"))

	fmt.Fprintln(out, "\nRun:")
	fmt.Fprintln(out, "      --config file           YAML config; flags override it")
	fmt.Fprintln(out, "      --summary file          Write a JSON run summary")
	fmt.Fprintln(out, "      --metrics-file file     Write Prometheus textfile metrics")
	fmt.Fprintf(out, "      --progress string       Progress bar on stderr: auto | always | never [%s]\n", def("progress"))

	fmt.Fprintln(out, "\nMiscellaneous:")
	fmt.Fprintf(out, "  -q, --quiet                 Only log warnings and errors [%s]\n", def("quiet"))
	fmt.Fprintf(out, "  -v, --verbose               Log debug details [%s]\n", def("verbose"))
	fmt.Fprintf(out, "      --log-json              Log JSON records [%s]\n", def("log-json"))
	fmt.Fprintf(out, "      --log-level string      debug | info | warn | error [%s]\n", def("log-level"))
	fmt.Fprintln(out, "      --examples              Print usage examples and exit")
	fmt.Fprintln(out, "      --version               Print version and exit")
	fmt.Fprintln(out, "  -h, --help                  Show this help and exit")
}

// PrintExamples prints a quickstart followed by a pointer to --help.
func PrintExamples(out io.Writer, name string) {
	if out == nil {
		return
	}
	_, _ = fmt.Fprintf(out, "%s — quickstart\n\n", name)
	_, _ = fmt.Fprintf(out, "  # genes as columns, one line per cell\n  %s -f pbmc.h5ad -o pbmc.csv\n\n", name)
	_, _ = fmt.Fprintf(out, "  # cells as columns, tab separated, gzip by extension\n  %s -f pbmc.h5ad -c obs-names -d tab -o pbmc.tsv.gz\n\n", name)
	_, _ = fmt.Fprintf(out, "  # raw counts to stdout\n  %s --matrix raw/X -o - pbmc.h5ad | head\n", name)
	_, _ = fmt.Fprintln(out, "\nTip: run with --help for all flags.")
}

// compressionChoices is auto followed by the registered codecs.
func compressionChoices() string {
	return strings.Join(append([]string{writers.CodecAuto}, writers.CodecNames()...), " | ")
}
