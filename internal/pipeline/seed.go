package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/ospworks/runway/internal/calendar"
)

// SeedStats summarizes one seed phase.
type SeedStats struct {
	Fetched int    `json:"fetched"`
	Seeded  int    `json:"seeded"`
	From    string `json:"from"`
	To      string `json:"to"`
	Saved   bool   `json:"saved"`
}

// Seed fetches calendar events over the standard window anchored at now,
// filters them through the federal-holiday rules, and replaces the holiday
// store's contents. A calendar with zero qualifying events still saves: the
// cascade then skips weekends only.
func (p *Pipeline) Seed(ctx context.Context, now time.Time) (SeedStats, error) {
	start := time.Now()
	from, to := calendar.SeedWindow(now)
	stats := SeedStats{
		From: from.Format(calendar.DateFormat),
		To:   to.Format(calendar.DateFormat),
	}

	if p.deps.Events == nil {
		p.log.Info("no event source configured, seed skipped")
		return stats, nil
	}

	events, err := p.deps.Events.Events(from, to)
	if err != nil {
		p.event(ctx, "seed", "error", err.Error(), start)
		return stats, fmt.Errorf("fetch calendar events: %w", err)
	}
	stats.Fetched = len(events)

	set := calendar.Seed(events)
	stats.Seeded = set.Len()

	if err := p.deps.Holidays.Save(set); err != nil {
		p.event(ctx, "seed", "error", err.Error(), start)
		return stats, fmt.Errorf("save holiday set: %w", err)
	}
	stats.Saved = true

	p.log.Info("holiday set seeded",
		"fetched", stats.Fetched, "seeded", stats.Seeded,
		"from", stats.From, "to", stats.To)
	p.event(ctx, "seed", "info",
		fmt.Sprintf("seeded %d of %d events", stats.Seeded, stats.Fetched), start)
	return stats, nil
}
