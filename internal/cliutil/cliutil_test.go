package cliutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestExpandPositionals(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.h5ad")
	b := filepath.Join(dir, "b.h5ad")
	_ = os.WriteFile(a, []byte("x"), 0o644)
	_ = os.WriteFile(b, []byte("x"), 0o644)
	got, err := ExpandPositionals([]string{filepath.Join(dir, "*.h5ad")})
	if err != nil || len(got) != 2 {
		t.Fatalf("expand: err=%v got=%v", err, got)
	}
	got, err = ExpandPositionals([]string{"plain.h5"})
	if err != nil || len(got) != 1 || got[0] != "plain.h5" {
		t.Fatalf("plain path changed: %v %v", got, err)
	}
}

func TestExpandNoMatch(t *testing.T) {
	_, err := ExpandPositionals([]string{filepath.Join(t.TempDir(), "*.h5")})
	if err == nil || !strings.Contains(err.Error(), "no input matched") {
		t.Fatalf("want 'no input matched', got %v", err)
	}
}

func TestSingleInput(t *testing.T) {
	dir := t.TempDir()
	one := filepath.Join(dir, "pbmc.h5ad")
	_ = os.WriteFile(one, []byte("x"), 0o644)

	if got, err := SingleInput("in.h5", "h5-file", nil); err != nil || got != "in.h5" {
		t.Fatalf("flag only: %q %v", got, err)
	}
	if got, err := SingleInput("", "h5-file", []string{filepath.Join(dir, "*.h5ad")}); err != nil || got != one {
		t.Fatalf("glob: %q %v", got, err)
	}
	if _, err := SingleInput("", "h5-file", nil); err == nil {
		t.Fatalf("expected error with no input")
	}
	if _, err := SingleInput("in.h5", "h5-file", []string{"other.h5"}); err == nil {
		t.Fatalf("expected conflict error")
	}

	_ = os.WriteFile(filepath.Join(dir, "pbmc2.h5ad"), []byte("x"), 0o644)
	_, err := SingleInput("", "h5-file", []string{filepath.Join(dir, "*.h5ad")})
	if err == nil || !strings.Contains(err.Error(), "exactly one") {
		t.Fatalf("want 'exactly one' error, got %v", err)
	}
}
