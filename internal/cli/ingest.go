package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewIngestCommand creates the ingest command.
func NewIngestCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Extract new intake submissions into the intake table",
		Long: `Scan the configured mail folder for intake form threads, extract the
question answers from each new thread's original message, and append one
record per thread to the intake table. Threads already processed are
skipped.

Example:
  runway ingest --config runway.yaml`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIngest(rootOpts, cmd)
		},
	}
	return cmd
}

func runIngest(opts *RootOptions, cmd *cobra.Command) error {
	setupLogging(opts)

	p, closer, err := openPipeline(opts)
	if err != nil {
		return err
	}
	defer closer()

	stats, err := p.Ingest(cmd.Context())
	if err != nil {
		return WrapExitError(ExitCommandError, "ingest failed", err)
	}

	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}
	if formatter.Format == "json" {
		if err := formatter.Success(stats); err != nil {
			return err
		}
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "Appended %d of %d threads (%d already processed, %d without intake message)\n",
			stats.Appended, stats.Threads, stats.Skipped, stats.NoMatch)
	}

	if stats.Errors > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d threads failed", stats.Errors))
	}
	return nil
}
