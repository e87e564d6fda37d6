package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ospworks/runway/internal/pipeline"
)

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the full pipeline: ingest, generate, reconcile",
		Long: `Execute the ingest, generate, and reconcile phases in order. The holiday
set is not re-seeded; use the seed command for that. A phase that fails is
logged and the run continues with the next one, except that an unreadable
intake table aborts the run immediately.

Example:
  runway run --config runway.yaml`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAll(rootOpts, cmd)
		},
	}
	return cmd
}

func runAll(opts *RootOptions, cmd *cobra.Command) error {
	setupLogging(opts)

	p, closer, err := openPipeline(opts)
	if err != nil {
		return err
	}
	defer closer()

	stats, err := p.Run(cmd.Context())
	if err != nil {
		if errors.Is(err, pipeline.ErrIntakeUnavailable) {
			return WrapExitError(ExitCommandError, "intake table unavailable", err)
		}
		return WrapExitError(ExitFailure, "run failed", err)
	}

	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}
	if formatter.Format == "json" {
		if err := formatter.Success(stats); err != nil {
			return err
		}
	} else {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Run %s\n", stats.RunID)
		fmt.Fprintf(out, "  ingest:    %d of %d threads appended\n", stats.Ingest.Appended, stats.Ingest.Threads)
		fmt.Fprintf(out, "  generate:  %d of %d records generated\n", stats.Generate.Generated, stats.Generate.Records)
		fmt.Fprintf(out, "  reconcile: %d of %d documents updated\n", stats.Reconcile.Updated, stats.Reconcile.Checked)
	}

	failed := stats.Ingest.Errors + stats.Generate.Errors + stats.Reconcile.Errors
	if failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d items failed", failed))
	}
	return nil
}
