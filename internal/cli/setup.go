package cli

import (
	"log/slog"
	"os"

	"github.com/ospworks/runway/internal/calendar"
	"github.com/ospworks/runway/internal/checklist"
	"github.com/ospworks/runway/internal/config"
	"github.com/ospworks/runway/internal/docs"
	"github.com/ospworks/runway/internal/extract"
	"github.com/ospworks/runway/internal/intake"
	"github.com/ospworks/runway/internal/ledger"
	"github.com/ospworks/runway/internal/pipeline"
)

// setupLogging installs the process-wide logger. Verbose mode lowers the
// level to debug; everything goes to stderr so JSON output on stdout stays
// parseable.
func setupLogging(opts *RootOptions) {
	logLevel := slog.LevelInfo
	if opts.Verbose {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})
	slog.SetDefault(slog.New(handler))
}

// openPipeline loads the configuration and assembles a pipeline over the
// configured boundaries. The returned closer releases the ledger database.
func openPipeline(opts *RootOptions) (*pipeline.Pipeline, func(), error) {
	cfg, err := config.Load(opts.Config)
	if err != nil {
		return nil, nil, WrapExitError(ExitCommandError, "failed to load config", err)
	}

	tmpl, err := loadTemplate(cfg)
	if err != nil {
		return nil, nil, WrapExitError(ExitCommandError, "failed to load checklist template", err)
	}

	sink, err := docs.NewDirSink(cfg.Output.Dir)
	if err != nil {
		return nil, nil, WrapExitError(ExitCommandError, "failed to open output dir", err)
	}

	led, err := ledger.Open(cfg.Ledger.Path)
	if err != nil {
		return nil, nil, WrapExitError(ExitCommandError, "failed to open ledger", err)
	}
	closer := func() {
		if err := led.Close(); err != nil {
			slog.Error("error closing ledger", "error", err)
		}
	}

	var events calendar.EventSource
	if cfg.Calendar.EventsPath != "" {
		events = calendar.NewFileEventSource(cfg.Calendar.EventsPath)
	}

	p := pipeline.New(pipeline.Deps{
		Table:     intake.NewFileTable(cfg.Intake.Path),
		Mail:      extract.NewDirMailSource(cfg.Mail.Path),
		Holidays:  calendar.NewStore(cfg.Calendar.HolidaysPath),
		Events:    events,
		Sink:      sink,
		Ledger:    led,
		Template:  tmpl,
		Questions: cfg.Questions,
		Sender:    cfg.Mail.Sender,
		Marker:    cfg.Mail.Marker,
		Log:       slog.Default(),
	})
	return p, closer, nil
}

func loadTemplate(cfg *config.Config) (checklist.Template, error) {
	if cfg.Checklist.Template != "" {
		return checklist.LoadTemplateFile(cfg.Checklist.Template)
	}
	return checklist.LoadTemplate()
}

// openLedger opens just the ledger, for commands that only inspect state.
func openLedger(opts *RootOptions) (*ledger.Ledger, *config.Config, error) {
	cfg, err := config.Load(opts.Config)
	if err != nil {
		return nil, nil, WrapExitError(ExitCommandError, "failed to load config", err)
	}
	led, err := ledger.Open(cfg.Ledger.Path)
	if err != nil {
		return nil, nil, WrapExitError(ExitCommandError, "failed to open ledger", err)
	}
	return led, cfg, nil
}
