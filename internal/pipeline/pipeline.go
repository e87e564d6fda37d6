// Package pipeline wires the intake, extraction, checklist, and
// synchronization components into runnable phases. Each phase is exposed on
// its own for the corresponding CLI command; Run chains all of them.
package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ospworks/runway/internal/calendar"
	"github.com/ospworks/runway/internal/checklist"
	"github.com/ospworks/runway/internal/docs"
	"github.com/ospworks/runway/internal/extract"
	"github.com/ospworks/runway/internal/intake"
	"github.com/ospworks/runway/internal/ledger"
)

// Deps holds the external boundaries of a pipeline. Events may be nil, in
// which case the seed phase is skipped.
type Deps struct {
	Table     intake.Table
	Mail      extract.MailSource
	Holidays  *calendar.Store
	Events    calendar.EventSource
	Sink      docs.Sink
	Ledger    *ledger.Ledger
	Template  checklist.Template
	Questions intake.Questions
	Sender    string
	Marker    string
	Log       *slog.Logger
}

// Pipeline executes the intake-to-checklist phases against a fixed set of
// dependencies. Each Pipeline carries a fresh run ID that tags its log lines
// and ledger events.
type Pipeline struct {
	deps  Deps
	log   *slog.Logger
	runID string
}

// New creates a pipeline with a fresh run ID.
func New(deps Deps) *Pipeline {
	if deps.Log == nil {
		deps.Log = slog.Default()
	}
	runID := uuid.NewString()
	return &Pipeline{
		deps:  deps,
		log:   deps.Log.With("run_id", runID),
		runID: runID,
	}
}

// RunID returns the identifier tagging this pipeline's events.
func (p *Pipeline) RunID() string {
	return p.runID
}

// event records a ledger event, logging but not propagating a write failure.
// The event log is an audit trail; losing an entry must not fail the phase
// it describes.
func (p *Pipeline) event(ctx context.Context, phase, level, message string, start time.Time) {
	if p.deps.Ledger == nil {
		return
	}
	err := p.deps.Ledger.LogEvent(ctx, p.runID, phase, level, message, time.Since(start))
	if err != nil {
		p.log.Warn("event log write failed", "phase", phase, "error", err)
	}
}
