package docs

import (
	"fmt"
	"log/slog"

	"github.com/ospworks/runway/internal/calendar"
)

// ReconcileStats summarizes one reconcile pass.
type ReconcileStats struct {
	Checked int `json:"checked"`
	Updated int `json:"updated"`
	Skipped int `json:"skipped"`
	Errors  int `json:"errors"`
}

// Reconcile propagates the current holiday set to every stored document.
// A document is rewritten only when the fingerprint of its embedded holiday
// copy differs from the current set's; matching documents are skipped
// without a write, so re-running with an unchanged set touches nothing.
// The fingerprint is recomputed from the embedded entries rather than
// trusted from the stored field, so a hand-edited copy is still caught.
//
// A document that fails to read or write is logged and counted; the pass
// continues with the rest.
func Reconcile(set calendar.Set, sink Sink, log *slog.Logger) (ReconcileStats, error) {
	var stats ReconcileStats

	names, err := sink.List()
	if err != nil {
		return stats, fmt.Errorf("reconcile: %w", err)
	}

	current := set.Fingerprint()
	for _, name := range names {
		stats.Checked++

		doc, err := sink.Read(name)
		if err != nil {
			stats.Errors++
			log.Error("reconcile: read failed", "document", name, "error", err)
			continue
		}
		if doc.Holidays.Fingerprint() == current {
			stats.Skipped++
			continue
		}
		if err := sink.WriteHolidays(name, set); err != nil {
			stats.Errors++
			log.Error("reconcile: write failed", "document", name, "error", err)
			continue
		}
		stats.Updated++
		log.Info("reconcile: holidays updated", "document", name)
	}

	return stats, nil
}
