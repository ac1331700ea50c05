// internal/output/format.go
package output

import (
	"math"
	"strconv"
)

// AppendValue appends the shortest decimal that reads back as v at bitSize.
// Integral values keep a trailing ".0" so 3 prints as 3.0 and -0 as -0.0.
func AppendValue(dst []byte, v float64, bitSize int) []byte {
	start := len(dst)
	dst = strconv.AppendFloat(dst, v, 'f', -1, bitSize)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return dst
	}
	for _, c := range dst[start:] {
		if c == '.' {
			return dst
		}
	}
	return append(dst, '.', '0')
}

// appendField appends s, quoting it when it holds the delimiter, a double
// quote, CR or LF. Embedded quotes are doubled.
func appendField(dst []byte, s string, delim byte) []byte {
	if !needsQuote(s, delim) {
		return append(dst, s...)
	}
	dst = append(dst, '"')
	for i := 0; i < len(s); i++ {
		if s[i] == '"' {
			dst = append(dst, '"')
		}
		dst = append(dst, s[i])
	}
	return append(dst, '"')
}

func needsQuote(s string, delim byte) bool {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case delim, '"', '\r', '\n':
			return true
		}
	}
	return false
}
