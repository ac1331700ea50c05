package output

import (
	"fmt"
	"strings"
)

// Delimiter is the single byte placed between fields.
type Delimiter byte

const (
	Comma     Delimiter = ','
	Tab       Delimiter = '\t'
	Colon     Delimiter = ':'
	Pipe      Delimiter = '|'
	Semicolon Delimiter = ';'
)

// DelimiterNames lists the accepted names in help order.
var DelimiterNames = []string{"comma", "tab", "colon", "pipe", "semicolon"}

var delimiters = map[string]Delimiter{
	"comma":     Comma,
	"tab":       Tab,
	"colon":     Colon,
	"pipe":      Pipe,
	"semicolon": Semicolon,
}

func ParseDelimiter(name string) (Delimiter, error) {
	d, ok := delimiters[name]
	if !ok {
		return 0, fmt.Errorf("invalid delimiter %q (want one of %s)", name, strings.Join(DelimiterNames, ", "))
	}
	return d, nil
}

func (d Delimiter) Name() string {
	for name, v := range delimiters {
		if v == d {
			return name
		}
	}
	return fmt.Sprintf("%q", byte(d))
}
