package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// NewSeedCommand creates the seed command.
func NewSeedCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed the holiday set from the configured calendar",
		Long: `Fetch all-day events from the configured calendar over the standard
three-year window, keep the ones matching the federal-holiday rules, and
replace the holiday store's contents.

Example:
  runway seed --config runway.yaml`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(rootOpts, cmd)
		},
	}
	return cmd
}

func runSeed(opts *RootOptions, cmd *cobra.Command) error {
	setupLogging(opts)

	p, closer, err := openPipeline(opts)
	if err != nil {
		return err
	}
	defer closer()

	stats, err := p.Seed(cmd.Context(), time.Now())
	if err != nil {
		return WrapExitError(ExitCommandError, "seed failed", err)
	}

	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}
	if formatter.Format == "json" {
		return formatter.Success(stats)
	}
	if !stats.Saved {
		fmt.Fprintln(cmd.OutOrStdout(), "No calendar event source configured; holiday set unchanged.")
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d holidays from %d events (%s to %s)\n",
		stats.Seeded, stats.Fetched, stats.From, stats.To)
	return nil
}
