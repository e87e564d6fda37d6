package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ospworks/runway/internal/calendar"
	"github.com/ospworks/runway/internal/checklist"
	"github.com/ospworks/runway/internal/docs"
	"github.com/ospworks/runway/internal/intake"
)

// ErrIntakeUnavailable wraps a failure to read the intake table. It is the
// one condition that aborts a full run: every phase either reads or writes
// the table, so there is nothing meaningful left to do.
var ErrIntakeUnavailable = errors.New("intake table unavailable")

// GenerateStats summarizes one generate phase.
type GenerateStats struct {
	Records    int `json:"records"`
	Generated  int `json:"generated"`
	Ineligible int `json:"ineligible"`
	Done       int `json:"done"`
	Collisions int `json:"collisions"`
	Errors     int `json:"errors"`
}

// Generate builds a checklist document for every eligible record that does
// not already have one. The intake table snapshot is the only operation
// whose failure aborts the phase; every later failure is scoped to its
// record.
//
// A record whose derived name collides with an existing document is logged
// and skipped without marking it done, so an operator can rename or remove
// the stale document and a later run will retry.
func (p *Pipeline) Generate(ctx context.Context) (GenerateStats, error) {
	start := time.Now()
	var stats GenerateStats

	records, err := p.deps.Table.Snapshot()
	if err != nil {
		p.event(ctx, "generate", "error", err.Error(), start)
		return stats, fmt.Errorf("%w: %v", ErrIntakeUnavailable, err)
	}
	stats.Records = len(records)

	set, err := p.deps.Holidays.Load()
	if err != nil {
		p.event(ctx, "generate", "error", err.Error(), start)
		return stats, fmt.Errorf("load holiday set: %w", err)
	}

	for _, record := range records {
		if err := p.generateRecord(ctx, record, set, &stats); err != nil {
			stats.Errors++
			p.log.Error("record generation failed", "key", record.Key(), "pi", record.PI, "error", err)
		}
	}

	p.log.Info("generate complete",
		"records", stats.Records, "generated", stats.Generated,
		"done", stats.Done, "collisions", stats.Collisions, "errors", stats.Errors)
	p.event(ctx, "generate", "info",
		fmt.Sprintf("generated %d of %d records", stats.Generated, stats.Records), start)
	return stats, nil
}

func (p *Pipeline) generateRecord(ctx context.Context, record intake.Record, set calendar.Set, stats *GenerateStats) error {
	// Eligible is false for generated records too, so the flag has to be
	// counted first or done records would report as ineligible.
	if record.Generated {
		stats.Done++
		return nil
	}
	if !record.Eligible() {
		stats.Ineligible++
		return nil
	}

	key := record.Key()
	done, err := p.deps.Ledger.HasGenerated(ctx, key)
	if err != nil {
		return err
	}
	if done {
		// The ledger is ahead of the table flag; bring the flag up.
		stats.Done++
		return p.deps.Table.MarkGenerated(key)
	}

	deadline, ok := intake.Resolve(record)
	if !ok {
		stats.Ineligible++
		return nil
	}

	doc := checklist.Build(record, deadline, set, p.deps.Template)

	exists, err := p.deps.Sink.Exists(doc.Name)
	if err != nil {
		return err
	}
	if exists {
		stats.Collisions++
		p.log.Info("document name already taken, skipping", "key", key, "name", doc.Name)
		return nil
	}

	if err := p.deps.Sink.Create(doc); err != nil {
		if errors.Is(err, docs.ErrDocumentExists) {
			stats.Collisions++
			p.log.Info("document name already taken, skipping", "key", key, "name", doc.Name)
			return nil
		}
		return fmt.Errorf("create document: %w", err)
	}
	if err := p.deps.Ledger.RecordDocument(ctx, key, doc.Name, doc.Fingerprint); err != nil {
		return fmt.Errorf("record document: %w", err)
	}
	if err := p.deps.Table.MarkGenerated(key); err != nil {
		return fmt.Errorf("mark generated: %w", err)
	}

	stats.Generated++
	p.log.Info("document generated", "key", key, "name", doc.Name)
	return nil
}
