package writers

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"syscall"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swemeshy/counts-to-csv/internal/output"
)

func TestSinkStdout(t *testing.T) {
	var stdout bytes.Buffer
	s, err := Create(Stdout, CodecNone, &stdout)
	require.NoError(t, err)
	_, err = io.WriteString(s, "a,b\n")
	require.NoError(t, err)
	require.NoError(t, s.Close())
	assert.Equal(t, "a,b\n", stdout.String())
	assert.EqualValues(t, 4, s.Bytes())
}

func TestSinkGzipFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv.gz")
	s, err := Create(path, CodecGzip, nil)
	require.NoError(t, err)
	_, err = io.WriteString(s, ",g1\ncellA,1.0\n")
	require.NoError(t, err)
	require.NoError(t, s.Close())

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	st, err := f.Stat()
	require.NoError(t, err)
	assert.Equal(t, st.Size(), s.Bytes())

	zr, err := gzip.NewReader(f)
	require.NoError(t, err)
	got, err := io.ReadAll(zr)
	require.NoError(t, err)
	assert.Equal(t, ",g1\ncellA,1.0\n", string(got))
}

func TestSinkCreateFailure(t *testing.T) {
	_, err := Create(filepath.Join(t.TempDir(), "no", "such", "dir.csv"), CodecNone, nil)
	assert.ErrorIs(t, err, output.ErrWrite)
}

func TestSinkUnknownCodec(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	_, err := Create(path, "lz4", nil)
	require.Error(t, err)
	_, statErr := os.Stat(path)
	assert.True(t, errors.Is(statErr, os.ErrNotExist), "no file for a rejected codec")
}

func TestIsBrokenPipe(t *testing.T) {
	assert.True(t, IsBrokenPipe(syscall.EPIPE))
	assert.True(t, IsBrokenPipe(io.ErrClosedPipe))
	assert.True(t, IsBrokenPipe(errors.Join(output.ErrWrite, syscall.EPIPE)))
	assert.False(t, IsBrokenPipe(nil))
	assert.False(t, IsBrokenPipe(io.EOF))
}
