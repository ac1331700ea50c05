// internal/app/app.go
package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/swemeshy/counts-to-csv/internal/appcore"
	"github.com/swemeshy/counts-to-csv/internal/cli"
	"github.com/swemeshy/counts-to-csv/internal/config"
	"github.com/swemeshy/counts-to-csv/internal/h5ad"
	"github.com/swemeshy/counts-to-csv/internal/version"
	"github.com/swemeshy/counts-to-csv/internal/writers"
)

const name = "counts-to-csv"

func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	return RunWith(parent, argv, stdout, stderr, h5ad.OpenSource)
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

// RunWith is RunContext with the input opener swapped, for tests.
func RunWith(parent context.Context, argv []string, stdout, stderr io.Writer, open appcore.Opener) int {
	var opts cli.Options
	code := appcore.ExitOK

	cmd := &cobra.Command{
		Use:           name + " [flags] [h5-file]",
		Short:         "Write the counts matrix of an H5AD file as CSV",
		Args:          cobra.MaximumNArgs(1),
		Version:       version.Version,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.Examples {
				cli.PrintExamples(cmd.OutOrStdout(), name)
				return nil
			}
			if err := cli.AfterParse(&opts, args); err != nil {
				return err
			}

			cfg := config.Default()
			if opts.ConfigFile != "" {
				var err error
				if cfg, err = config.Load(opts.ConfigFile); err != nil {
					return err
				}
			}
			opts.Apply(cmd.Flags(), &cfg)

			code = appcore.Run(cmd.Context(), stdout, stderr, appcore.Options{
				Input:       opts.H5File,
				Config:      cfg,
				RunID:       uuid.NewString(),
				Open:        open,
				Summary:     opts.Summary,
				MetricsFile: opts.MetricsFile,
				Progress:    opts.Progress,
				Quiet:       opts.Quiet,
				Verbose:     opts.Verbose,
			})
			return nil
		},
	}
	cmd.SetArgs(argv)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetVersionTemplate(name + " version {{.Version}}\n")
	cli.Register(cmd.Flags(), &opts)
	cmd.SetHelpFunc(func(c *cobra.Command, _ []string) {
		cli.Usage(c.OutOrStdout(), c.Flags(), name)
	})

	if err := cmd.ExecuteContext(parent); err != nil {
		if writers.IsBrokenPipe(err) {
			return appcore.ExitOK
		}
		_, _ = fmt.Fprintln(stderr, "error:", err)
		if !errors.Is(err, config.ErrInvalid) {
			_, _ = fmt.Fprintf(stderr, "run '%s --help' for usage\n", name)
		}
		return appcore.ExitUsage
	}
	return code
}
