// Package appshell wires a run function to the process: signals, argv and
// the exit code.
package appshell

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
)

// Main runs run with a context cancelled on SIGINT or SIGTERM and exits
// with its code. With no arguments it shows help.
func Main(run func(context.Context, []string, io.Writer, io.Writer) int) {
	os.Exit(execute(run, os.Args[1:], os.Stdout, os.Stderr))
}

func execute(run func(context.Context, []string, io.Writer, io.Writer) int, argv []string, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if len(argv) == 0 {
		argv = []string{"-h"}
	}
	code := run(ctx, argv, stdout, stderr)
	// Normalize cancellation exit code.
	if ctx.Err() != nil && code == 0 {
		code = 130
	}
	return code
}
