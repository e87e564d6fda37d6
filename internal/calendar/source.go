package calendar

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// EventSource yields all-day events from an external calendar over the
// seeding window. Implementations stand in for the real calendar service.
type EventSource interface {
	Events(from, to time.Time) ([]Event, error)
}

// SeedWindow returns the fixed seeding window: January 1 of the year
// containing now through January 1 three years later.
func SeedWindow(now time.Time) (from, to time.Time) {
	from = time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	to = from.AddDate(3, 0, 0)
	return from, to
}

// FileEventSource reads events from a JSON file: an array of objects with
// "title" and "date" (DateFormat) fields.
type FileEventSource struct {
	path string
}

// NewFileEventSource creates a source backed by the JSON file at path.
func NewFileEventSource(path string) *FileEventSource {
	return &FileEventSource{path: path}
}

type fileEvent struct {
	Title string `json:"title"`
	Date  string `json:"date"`
}

// Events returns events whose date falls in [from, to).
func (s *FileEventSource) Events(from, to time.Time) ([]Event, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read calendar events: %w", err)
	}
	var raw []fileEvent
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse calendar events: %w", err)
	}
	var events []Event
	for _, fe := range raw {
		d, err := ParseDate(fe.Date)
		if err != nil {
			return nil, fmt.Errorf("calendar event %q: bad date %q: %w", fe.Title, fe.Date, err)
		}
		if d.Before(from) || !d.Before(to) {
			continue
		}
		events = append(events, Event{Title: fe.Title, Date: d})
	}
	return events, nil
}
