// internal/cliutil/cliutil.go
package cliutil

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

func hasGlobMeta(s string) bool { return strings.ContainsAny(s, "*?[") }

// ExpandPositionals expands any globs among path-like positionals.
func ExpandPositionals(posArgs []string) ([]string, error) {
	var out []string
	for _, a := range posArgs {
		if !hasGlobMeta(a) {
			out = append(out, a)
			continue
		}
		m, err := filepath.Glob(a)
		if err != nil {
			return nil, fmt.Errorf("bad glob %q: %v", a, err)
		}
		if len(m) == 0 {
			return nil, fmt.Errorf("no input matched %q", a)
		}
		out = append(out, m...)
	}
	return out, nil
}

// SingleInput picks the one input file from a flag value and positionals.
// A glob positional must match exactly one file.
func SingleInput(flagVal, flagName string, posArgs []string) (string, error) {
	if len(posArgs) == 0 {
		if flagVal == "" {
			return "", fmt.Errorf("provide --%s or a positional input file", flagName)
		}
		return flagVal, nil
	}
	if flagVal != "" {
		return "", fmt.Errorf("--%s conflicts with positional input %q", flagName, posArgs[0])
	}
	files, err := ExpandPositionals(posArgs)
	if err != nil {
		return "", err
	}
	if len(files) != 1 {
		return "", errors.New("exactly one input file is allowed, got " + strings.Join(files, ", "))
	}
	return files[0], nil
}
