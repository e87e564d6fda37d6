package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewGenerateCommand creates the generate command.
func NewGenerateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate checklist documents for eligible records",
		Long: `Build a checklist document for every intake record that has at least
one deadline field and no document yet. Records whose derived document name
is already taken are skipped and left pending.

Example:
  runway generate --config runway.yaml`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(rootOpts, cmd)
		},
	}
	return cmd
}

func runGenerate(opts *RootOptions, cmd *cobra.Command) error {
	setupLogging(opts)

	p, closer, err := openPipeline(opts)
	if err != nil {
		return err
	}
	defer closer()

	stats, err := p.Generate(cmd.Context())
	if err != nil {
		return WrapExitError(ExitCommandError, "generate failed", err)
	}

	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}
	if formatter.Format == "json" {
		if err := formatter.Success(stats); err != nil {
			return err
		}
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "Generated %d of %d records (%d ineligible, %d already done, %d name collisions)\n",
			stats.Generated, stats.Records, stats.Ineligible, stats.Done, stats.Collisions)
	}

	if stats.Errors > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d records failed", stats.Errors))
	}
	return nil
}
