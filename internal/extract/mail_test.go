package extract

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThread_Original(t *testing.T) {
	thread := Thread{
		Key: "t-1",
		Messages: []Message{
			{From: "jsmith@example.edu", Subject: "Re: New proposal intake from Jane Smith", Body: "thanks"},
			{From: "Intake Forms <forms@example.edu>", Subject: "Weekly digest", Body: "digest"},
			{From: "Intake Forms <forms@example.edu>", Subject: "New proposal intake from Jane Smith", Body: "the form"},
			{From: "forms@example.edu", Subject: "New proposal intake from Bob Lee", Body: "later form"},
		},
	}

	msg, ok := thread.Original("forms@example.edu", "proposal intake")
	require.True(t, ok)
	assert.Equal(t, "the form", msg.Body, "first matching message wins; replies and digests skipped")
}

func TestThread_Original_NoMatch(t *testing.T) {
	thread := Thread{Messages: []Message{
		{From: "someone@else.org", Subject: "New proposal intake from X", Body: "b"},
	}}

	_, ok := thread.Original("forms@example.edu", "proposal intake")
	assert.False(t, ok)
}

func TestDirMailSource_ReadsThreads(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	write("b-thread.json", `{"messages": [{"from": "forms@example.edu", "subject": "s", "body": "b", "date": "2025-08-01"}]}`)
	write("a-thread.json", `{"key": "custom-key", "messages": []}`)
	write("notes.txt", "ignored")

	threads, err := NewDirMailSource(dir).Threads()
	require.NoError(t, err)
	require.Len(t, threads, 2)

	// Sorted by file name for deterministic processing order.
	assert.Equal(t, "custom-key", threads[0].Key)
	assert.Equal(t, "b-thread", threads[1].Key, "key defaults to file name")
	require.Len(t, threads[1].Messages, 1)
	assert.Equal(t, "forms@example.edu", threads[1].Messages[0].From)
}

func TestDirMailSource_MissingDir(t *testing.T) {
	threads, err := NewDirMailSource(filepath.Join(t.TempDir(), "absent")).Threads()
	require.NoError(t, err)
	assert.Empty(t, threads)
}
