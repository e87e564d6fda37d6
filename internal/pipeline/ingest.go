package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/ospworks/runway/internal/extract"
	"github.com/ospworks/runway/internal/intake"
)

// IngestStats summarizes one ingest phase.
type IngestStats struct {
	Threads  int `json:"threads"`
	Appended int `json:"appended"`
	Skipped  int `json:"skipped"`
	NoMatch  int `json:"no_match"`
	Errors   int `json:"errors"`
}

// Ingest scans the mail source for intake threads and appends one record per
// new thread to the intake table. A thread already in the ledger is skipped;
// a thread with no message from the form sender is marked processed without
// producing a record, since rescanning it can never yield one. A thread that
// fails to append is left unmarked so a later run retries it.
func (p *Pipeline) Ingest(ctx context.Context) (IngestStats, error) {
	start := time.Now()
	var stats IngestStats

	threads, err := p.deps.Mail.Threads()
	if err != nil {
		p.event(ctx, "ingest", "error", err.Error(), start)
		return stats, fmt.Errorf("list mail threads: %w", err)
	}
	stats.Threads = len(threads)

	for _, thread := range threads {
		if err := p.ingestThread(ctx, thread, &stats); err != nil {
			stats.Errors++
			p.log.Error("thread ingest failed", "thread", thread.Key, "error", err)
		}
	}

	p.log.Info("ingest complete",
		"threads", stats.Threads, "appended", stats.Appended,
		"skipped", stats.Skipped, "errors", stats.Errors)
	p.event(ctx, "ingest", "info",
		fmt.Sprintf("appended %d of %d threads", stats.Appended, stats.Threads), start)
	return stats, nil
}

func (p *Pipeline) ingestThread(ctx context.Context, thread extract.Thread, stats *IngestStats) error {
	seen, err := p.deps.Ledger.HasThread(ctx, thread.Key)
	if err != nil {
		return err
	}
	if seen {
		stats.Skipped++
		return nil
	}

	msg, ok := thread.Original(p.deps.Sender, p.deps.Marker)
	if !ok {
		stats.NoMatch++
		p.log.Debug("no intake message in thread", "thread", thread.Key)
		return p.deps.Ledger.MarkThread(ctx, thread.Key)
	}

	answers := extract.Extract(msg.Body, p.deps.Questions.Labels())
	pi := extract.PIFromSubject(msg.Subject)
	record := intake.FromAnswers(pi, answers, p.deps.Questions)

	if err := p.deps.Table.Append(record); err != nil {
		return fmt.Errorf("append record: %w", err)
	}
	if err := p.deps.Ledger.MarkThread(ctx, thread.Key); err != nil {
		return fmt.Errorf("mark thread: %w", err)
	}

	stats.Appended++
	p.log.Info("record appended", "thread", thread.Key, "pi", record.PI)
	return nil
}
