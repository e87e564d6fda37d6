package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ospworks/runway/internal/docs"
)

// Reconcile propagates the current holiday set into every stored document
// and brings the ledger's recorded fingerprints in step.
func (p *Pipeline) Reconcile(ctx context.Context) (docs.ReconcileStats, error) {
	start := time.Now()

	set, err := p.deps.Holidays.Load()
	if err != nil {
		p.event(ctx, "reconcile", "error", err.Error(), start)
		return docs.ReconcileStats{}, fmt.Errorf("load holiday set: %w", err)
	}

	stats, err := docs.Reconcile(set, p.deps.Sink, p.log)
	if err != nil {
		p.event(ctx, "reconcile", "error", err.Error(), start)
		return stats, err
	}

	if stats.Updated > 0 {
		if err := p.syncLedgerFingerprints(ctx, set.Fingerprint()); err != nil {
			p.log.Warn("ledger fingerprint sync failed", "error", err)
		}
	}

	p.event(ctx, "reconcile", "info",
		fmt.Sprintf("updated %d of %d documents", stats.Updated, stats.Checked), start)
	return stats, nil
}

func (p *Pipeline) syncLedgerFingerprints(ctx context.Context, fingerprint string) error {
	recorded, err := p.deps.Ledger.Documents(ctx)
	if err != nil {
		return err
	}
	for _, rec := range recorded {
		if rec.Fingerprint == fingerprint {
			continue
		}
		if err := p.deps.Ledger.UpdateFingerprint(ctx, rec.Name, fingerprint); err != nil {
			return err
		}
	}
	return nil
}

// RunStats aggregates the per-phase stats of a full run.
type RunStats struct {
	RunID     string              `json:"run_id"`
	Ingest    IngestStats         `json:"ingest"`
	Generate  GenerateStats       `json:"generate"`
	Reconcile docs.ReconcileStats `json:"reconcile"`
}

// Run executes ingest, generate, and reconcile in order. Seeding is not part
// of a run: the holiday store may carry hand edits that a re-seed would
// overwrite, so it only changes through the explicit seed command. A failing
// phase is logged and the run continues with the next, with one exception:
// an intake table that cannot be read at the start aborts the whole run,
// since every phase reads or writes it.
func (p *Pipeline) Run(ctx context.Context) (RunStats, error) {
	stats := RunStats{RunID: p.runID}

	if _, err := p.deps.Table.Snapshot(); err != nil {
		p.event(ctx, "run", "error", err.Error(), time.Now())
		return stats, fmt.Errorf("%w: %v", ErrIntakeUnavailable, err)
	}

	var err error
	if stats.Ingest, err = p.Ingest(ctx); err != nil {
		p.log.Error("ingest phase failed", "error", err)
	}
	if stats.Generate, err = p.Generate(ctx); err != nil {
		if errors.Is(err, ErrIntakeUnavailable) {
			return stats, err
		}
		p.log.Error("generate phase failed", "error", err)
	}
	if stats.Reconcile, err = p.Reconcile(ctx); err != nil {
		p.log.Error("reconcile phase failed", "error", err)
	}

	return stats, nil
}
