package ledger

import (
	"context"
	"fmt"
	"time"
)

// Event is one entry of the run event log.
type Event struct {
	ID       int64
	RunID    string
	Phase    string
	Level    string
	Message  string
	Duration time.Duration
	At       time.Time
}

// LogEvent appends an entry to the run event log.
func (l *Ledger) LogEvent(ctx context.Context, runID, phase, level, message string, duration time.Duration) error {
	_, err := l.db.ExecContext(ctx, `
		INSERT INTO events (run_id, phase, level, message, duration_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, runID, phase, level, message, duration.Milliseconds(), now())
	if err != nil {
		return fmt.Errorf("log event: %w", err)
	}
	return nil
}

// RecentEvents returns up to limit events, newest first.
func (l *Ledger) RecentEvents(ctx context.Context, limit int) ([]Event, error) {
	rows, err := l.db.QueryContext(ctx, `
		SELECT id, run_id, phase, level, message, duration_ms, created_at
		FROM events ORDER BY id DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("recent events: %w", err)
	}
	defer rows.Close()

	var out []Event
	for rows.Next() {
		var ev Event
		var durMS int64
		var created string
		if err := rows.Scan(&ev.ID, &ev.RunID, &ev.Phase, &ev.Level, &ev.Message, &durMS, &created); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		ev.Duration = time.Duration(durMS) * time.Millisecond
		ev.At, _ = time.Parse(time.RFC3339, created)
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("recent events: %w", err)
	}
	return out, nil
}

// Counts summarizes ledger state for status reporting.
type Counts struct {
	Threads   int
	Documents int
	Events    int
}

// Count returns row counts for each ledger table.
func (l *Ledger) Count(ctx context.Context) (Counts, error) {
	var c Counts
	queries := []struct {
		sql  string
		dest *int
	}{
		{"SELECT COUNT(*) FROM threads", &c.Threads},
		{"SELECT COUNT(*) FROM documents", &c.Documents},
		{"SELECT COUNT(*) FROM events", &c.Events},
	}
	for _, q := range queries {
		if err := l.db.QueryRowContext(ctx, q.sql).Scan(q.dest); err != nil {
			return Counts{}, fmt.Errorf("count: %w", err)
		}
	}
	return c, nil
}
