package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewReconcileCommand creates the reconcile command.
func NewReconcileCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Propagate the current holiday set to all documents",
		Long: `Compare the current holiday set's fingerprint against the copy embedded
in every generated document and rewrite the ones that differ. Documents
already carrying the current set are not touched, so reconciling with an
unchanged holiday set writes nothing.

Example:
  runway reconcile --config runway.yaml`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReconcile(rootOpts, cmd)
		},
	}
	return cmd
}

func runReconcile(opts *RootOptions, cmd *cobra.Command) error {
	setupLogging(opts)

	p, closer, err := openPipeline(opts)
	if err != nil {
		return err
	}
	defer closer()

	stats, err := p.Reconcile(cmd.Context())
	if err != nil {
		return WrapExitError(ExitCommandError, "reconcile failed", err)
	}

	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}
	if formatter.Format == "json" {
		if err := formatter.Success(stats); err != nil {
			return err
		}
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "Updated %d of %d documents (%d already current)\n",
			stats.Updated, stats.Checked, stats.Skipped)
	}

	if stats.Errors > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d documents failed", stats.Errors))
	}
	return nil
}
