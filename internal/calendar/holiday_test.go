package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewSet_DeduplicatesByDate(t *testing.T) {
	set := NewSet([]Holiday{
		{Date: date("2025-12-25"), Label: "Christmas Day"},
		{Date: date("2025-12-25"), Label: "Christmas Day (duplicate import)"},
	})

	assert.Equal(t, 1, set.Len())
	assert.Equal(t, "Christmas Day", set.Entries()[0].Label, "first occurrence wins")
}

func TestNewSet_SortsAscending(t *testing.T) {
	set := NewSet([]Holiday{
		{Date: date("2025-12-25"), Label: "Christmas Day"},
		{Date: date("2025-01-01"), Label: "New Year's Day"},
		{Date: date("2025-07-04"), Label: "Independence Day"},
	})

	entries := set.Entries()
	assert.Equal(t, date("2025-01-01"), entries[0].Date)
	assert.Equal(t, date("2025-07-04"), entries[1].Date)
	assert.Equal(t, date("2025-12-25"), entries[2].Date)
}

func TestNewSet_TruncatesTimeComponent(t *testing.T) {
	noon := time.Date(2025, 12, 25, 12, 30, 0, 0, time.UTC)
	set := NewSet([]Holiday{{Date: noon, Label: "Christmas Day"}})

	assert.Equal(t, date("2025-12-25"), set.Entries()[0].Date)
	assert.True(t, set.Contains(noon), "Contains ignores time component")
}

func TestSet_Contains(t *testing.T) {
	set := NewSet([]Holiday{{Date: date("2025-12-25"), Label: "Christmas Day"}})

	assert.True(t, set.Contains(date("2025-12-25")))
	assert.False(t, set.Contains(date("2025-12-26")))
}

func TestSet_ZeroValue(t *testing.T) {
	var set Set
	assert.Equal(t, 0, set.Len())
	assert.False(t, set.Contains(date("2025-12-25")))
}
