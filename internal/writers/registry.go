// internal/writers/registry.go
package writers

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// Codec wraps the destination stream with a compression layer. Close must
// flush the layer without closing dst.
type Codec func(dst io.Writer) (io.WriteCloser, error)

// Codec registry (name → constructor). "auto" is resolved by ResolveCodec
// and never registered.
var Codecs = map[string]Codec{}

const (
	CodecAuto = "auto"
	CodecNone = "none"
	CodecGzip = "gzip"
	CodecZstd = "zstd"
)

// Same default level as the zstd command line tool.
const zstdLevel = 3

func init() {
	RegisterCodec(CodecNone, func(dst io.Writer) (io.WriteCloser, error) {
		return nopCloser{dst}, nil
	})
	RegisterCodec(CodecGzip, func(dst io.Writer) (io.WriteCloser, error) {
		return gzip.NewWriterLevel(dst, gzip.DefaultCompression)
	})
	RegisterCodec(CodecZstd, func(dst io.Writer) (io.WriteCloser, error) {
		return zstd.NewWriter(dst, zstd.WithEncoderLevel(zstd.EncoderLevelFromZstd(zstdLevel)))
	})
}

// RegisterCodec is idempotent, last wins.
func RegisterCodec(name string, c Codec) { Codecs[name] = c }

// CodecNames lists registered codecs, sorted.
func CodecNames() []string {
	out := make([]string, 0, len(Codecs))
	for name := range Codecs {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// ResolveCodec maps "auto" to a codec by the output file extension and
// checks that any other name is registered.
func ResolveCodec(name, outfile string) (string, error) {
	if name == CodecAuto || name == "" {
		switch strings.ToLower(filepath.Ext(outfile)) {
		case ".gz":
			return CodecGzip, nil
		case ".zst", ".zstd":
			return CodecZstd, nil
		}
		return CodecNone, nil
	}
	if _, ok := Codecs[name]; !ok {
		return "", fmt.Errorf("unknown compression %q (want %s or one of %s)", name, CodecAuto, strings.Join(CodecNames(), ", "))
	}
	return name, nil
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
