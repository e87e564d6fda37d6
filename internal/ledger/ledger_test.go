package ledger

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTest(t *testing.T) *Ledger {
	t.Helper()
	l, err := Open(filepath.Join(t.TempDir(), "ledger.db"))
	require.NoError(t, err)
	t.Cleanup(func() { l.Close() })
	return l
}

func TestOpenIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.db")

	l, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, l.MarkThread(context.Background(), "thread-1"))
	require.NoError(t, l.Close())

	l, err = Open(path)
	require.NoError(t, err)
	defer l.Close()

	seen, err := l.HasThread(context.Background(), "thread-1")
	require.NoError(t, err)
	assert.True(t, seen)
}

func TestThreadAtMostOnce(t *testing.T) {
	l := openTest(t)
	ctx := context.Background()

	seen, err := l.HasThread(ctx, "t1")
	require.NoError(t, err)
	assert.False(t, seen)

	require.NoError(t, l.MarkThread(ctx, "t1"))
	require.NoError(t, l.MarkThread(ctx, "t1"))

	seen, err = l.HasThread(ctx, "t1")
	require.NoError(t, err)
	assert.True(t, seen)

	counts, err := l.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, counts.Threads)
}

func TestDocumentRegistry(t *testing.T) {
	l := openTest(t)
	ctx := context.Background()

	done, err := l.HasGenerated(ctx, "key-a")
	require.NoError(t, err)
	assert.False(t, done)

	require.NoError(t, l.RecordDocument(ctx, "key-a", "Smith - NSF - 10-30-2025", "fp1"))

	done, err = l.HasGenerated(ctx, "key-a")
	require.NoError(t, err)
	assert.True(t, done)

	// A retried run must not double-register.
	require.NoError(t, l.RecordDocument(ctx, "key-a", "Smith - NSF - 10-30-2025", "fp1"))

	require.NoError(t, l.RecordDocument(ctx, "key-b", "Jones - NIH - 11-15-2025", "fp1"))

	docs, err := l.Documents(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "key-a", docs[0].RecordKey)
	assert.Equal(t, "Smith - NSF - 10-30-2025", docs[0].Name)
	assert.Equal(t, "fp1", docs[0].Fingerprint)
	assert.False(t, docs[0].CreatedAt.IsZero())
}

func TestUpdateFingerprint(t *testing.T) {
	l := openTest(t)
	ctx := context.Background()

	require.NoError(t, l.RecordDocument(ctx, "key-a", "Smith - NSF - 10-30-2025", "old"))
	require.NoError(t, l.UpdateFingerprint(ctx, "Smith - NSF - 10-30-2025", "new"))

	docs, err := l.Documents(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "new", docs[0].Fingerprint)
}

func TestEventLog(t *testing.T) {
	l := openTest(t)
	ctx := context.Background()

	require.NoError(t, l.LogEvent(ctx, "run-1", "ingest", "info", "processed 3 threads", 120*time.Millisecond))
	require.NoError(t, l.LogEvent(ctx, "run-1", "generate", "error", "record skipped", 0))

	events, err := l.RecentEvents(ctx, 10)
	require.NoError(t, err)
	require.Len(t, events, 2)

	// Newest first.
	assert.Equal(t, "generate", events[0].Phase)
	assert.Equal(t, "error", events[0].Level)
	assert.Equal(t, "ingest", events[1].Phase)
	assert.Equal(t, "run-1", events[1].RunID)
	assert.Equal(t, "processed 3 threads", events[1].Message)
	assert.Equal(t, 120*time.Millisecond, events[1].Duration)
	assert.False(t, events[0].At.IsZero())
}

func TestRecentEventsLimit(t *testing.T) {
	l := openTest(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, l.LogEvent(ctx, "run-1", "ingest", "info", "msg", 0))
	}

	events, err := l.RecentEvents(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, events, 3)
}

func TestCount(t *testing.T) {
	l := openTest(t)
	ctx := context.Background()

	require.NoError(t, l.MarkThread(ctx, "t1"))
	require.NoError(t, l.MarkThread(ctx, "t2"))
	require.NoError(t, l.RecordDocument(ctx, "k1", "n1", "fp"))
	require.NoError(t, l.LogEvent(ctx, "r1", "run", "info", "done", 0))

	counts, err := l.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, Counts{Threads: 2, Documents: 1, Events: 1}, counts)
}
