// internal/output/csv_test.go
package output

import (
	"bytes"
	"errors"
	"strings"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriterSmallMatrix(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, Comma)
	require.NoError(t, w.WriteHeader("", []string{"g1", "g2", "g3"}))
	require.NoError(t, w.WriteLine("cellA", []float64{1, 0, 2}))
	require.NoError(t, w.WriteLine("cellB", []float64{0, 5, 0}))
	require.NoError(t, w.Flush())

	want := ",g1,g2,g3\ncellA,1.0,0.0,2.0\ncellB,0.0,5.0,0.0\n"
	assert.Equal(t, want, buf.String())
}

func TestWriterHeaderEveryDelimiter(t *testing.T) {
	for _, name := range DelimiterNames {
		d, err := ParseDelimiter(name)
		require.NoError(t, err)

		var buf bytes.Buffer
		w := NewWriter(&buf, d)
		require.NoError(t, w.WriteHeader("", []string{"g1", "g2", "g3"}))
		require.NoError(t, w.Flush())

		sep := string(rune(d))
		assert.Equal(t, sep+"g1"+sep+"g2"+sep+"g3\n", buf.String(), name)
	}
}

func TestWriterDelimiterFidelity(t *testing.T) {
	render := func(d Delimiter) string {
		var buf bytes.Buffer
		w := NewWriter(&buf, d)
		require.NoError(t, w.WriteHeader("cell", []string{"a", "b"}))
		require.NoError(t, w.WriteLine("c1", []float64{0.25, -3}))
		require.NoError(t, w.Flush())
		return strings.ReplaceAll(buf.String(), string(rune(d)), "\x00")
	}
	base := render(Comma)
	for _, d := range []Delimiter{Tab, Colon, Pipe, Semicolon} {
		assert.Equal(t, base, render(d), d.Name())
	}
}

func TestWriterQuotesLabels(t *testing.T) {
	cases := []struct {
		label string
		delim Delimiter
		want  string
	}{
		{"plain", Comma, "plain"},
		{"a,b", Comma, `"a,b"`},
		{"a,b", Tab, "a,b"},
		{"a\tb", Tab, "\"a\tb\""},
		{`say "hi"`, Comma, `"say ""hi"""`},
		{"two\nlines", Pipe, "\"two\nlines\""},
		{"cr\r", Semicolon, "\"cr\r\""},
	}
	for _, tc := range cases {
		var buf bytes.Buffer
		w := NewWriter(&buf, tc.delim)
		require.NoError(t, w.WriteLine(tc.label, nil))
		require.NoError(t, w.Flush())
		assert.Equal(t, tc.want+"\n", buf.String(), "%q", tc.label)
	}
}

func TestWriterEmptyHeader(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, Comma)
	require.NoError(t, w.WriteHeader("gene", nil))
	require.NoError(t, w.Flush())
	assert.Equal(t, "gene\n", buf.String())
}

type failWriter struct{ err error }

func (f failWriter) Write([]byte) (int, error) { return 0, f.err }

func TestWriterErrorsWrapWrite(t *testing.T) {
	w := NewWriter(failWriter{syscall.EPIPE}, Comma)
	require.NoError(t, w.WriteLine("a", []float64{1}), "buffered")
	err := w.Flush()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrWrite)
	assert.True(t, errors.Is(err, syscall.EPIPE))
	assert.Equal(t, err, w.WriteLine("b", nil), "sticky")
}
