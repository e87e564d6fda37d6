package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ospworks/runway/internal/calendar"
	"github.com/ospworks/runway/internal/ledger"
)

// StatusOptions holds flags for the status command.
type StatusOptions struct {
	*RootOptions
	Events int
}

// statusReport is the status command's output payload.
type statusReport struct {
	Threads     int                     `json:"threads"`
	Documents   int                     `json:"documents"`
	Holidays    int                     `json:"holidays"`
	Fingerprint string                  `json:"fingerprint"`
	Recent      []statusEvent           `json:"recent_events,omitempty"`
	Registry    []ledger.DocumentRecord `json:"registry,omitempty"`
}

type statusEvent struct {
	RunID    string `json:"run_id"`
	Phase    string `json:"phase"`
	Level    string `json:"level"`
	Message  string `json:"message"`
	Duration string `json:"duration"`
	At       string `json:"at"`
}

// NewStatusCommand creates the status command.
func NewStatusCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &StatusOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show ledger state and recent run events",
		Long: `Report how many threads have been ingested, which documents have been
generated, and the most recent run events.

Example:
  runway status --config runway.yaml --events 20`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(opts, cmd)
		},
	}

	cmd.Flags().IntVar(&opts.Events, "events", 10, "number of recent events to show")

	return cmd
}

func runStatus(opts *StatusOptions, cmd *cobra.Command) error {
	setupLogging(opts.RootOptions)

	led, cfg, err := openLedger(opts.RootOptions)
	if err != nil {
		return err
	}
	defer led.Close()

	set, err := calendar.NewStore(cfg.Calendar.HolidaysPath).Load()
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read holiday store", err)
	}

	ctx := cmd.Context()
	counts, err := led.Count(ctx)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read ledger", err)
	}
	registry, err := led.Documents(ctx)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read ledger", err)
	}
	events, err := led.RecentEvents(ctx, opts.Events)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read ledger", err)
	}

	report := statusReport{
		Threads:     counts.Threads,
		Documents:   counts.Documents,
		Holidays:    set.Len(),
		Fingerprint: set.Fingerprint(),
		Registry:    registry,
	}
	for _, ev := range events {
		report.Recent = append(report.Recent, statusEvent{
			RunID:    ev.RunID,
			Phase:    ev.Phase,
			Level:    ev.Level,
			Message:  ev.Message,
			Duration: ev.Duration.String(),
			At:       ev.At.Format("2006-01-02 15:04:05"),
		})
	}

	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}
	if formatter.Format == "json" {
		return formatter.Success(report)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Threads ingested:    %d\n", report.Threads)
	fmt.Fprintf(out, "Documents generated: %d\n", report.Documents)
	fmt.Fprintf(out, "Holidays:            %d (fingerprint %s)\n", report.Holidays, report.Fingerprint)
	if len(report.Registry) > 0 {
		fmt.Fprintln(out, "\nDocuments:")
		for _, rec := range report.Registry {
			fmt.Fprintf(out, "  %s\n", rec.Name)
		}
	}
	if len(report.Recent) > 0 {
		fmt.Fprintln(out, "\nRecent events:")
		for _, ev := range report.Recent {
			fmt.Fprintf(out, "  %s [%s] %s: %s\n", ev.At, ev.Level, ev.Phase, ev.Message)
		}
	}
	return nil
}
