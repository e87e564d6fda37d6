package calendar

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedWindow(t *testing.T) {
	now := time.Date(2025, time.August, 14, 9, 30, 0, 0, time.UTC)
	from, to := SeedWindow(now)

	assert.Equal(t, date("2025-01-01"), from)
	assert.Equal(t, date("2028-01-01"), to)
}

func TestFileEventSource_WindowFilter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.json")
	content := `[
		{"title": "Christmas Day", "date": "2024-12-25"},
		{"title": "Christmas Day", "date": "2025-12-25"},
		{"title": "New Year's Day", "date": "2028-01-01"}
	]`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	events, err := NewFileEventSource(path).Events(date("2025-01-01"), date("2028-01-01"))
	require.NoError(t, err)

	// Before-window and at-upper-bound events are dropped.
	require.Len(t, events, 1)
	assert.Equal(t, date("2025-12-25"), events[0].Date)
}

func TestFileEventSource_BadDate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"title": "X", "date": "soon"}]`), 0o644))

	_, err := NewFileEventSource(path).Events(date("2025-01-01"), date("2028-01-01"))
	assert.Error(t, err)
}
