// Package ledger provides durable at-most-once processing state: which mail
// threads have been ingested, which records have documents, and a run event
// log. Uses SQLite with WAL mode.
package ledger

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// Schema version tracking:
// 1 - Initial schema
const currentSchemaVersion = 1

// Ledger is the durable processing state store.
type Ledger struct {
	db *sql.DB
}

// Open creates or opens the ledger database at the given path, applying
// pragmas and schema migrations. Idempotent - safe to call on an existing
// database.
//
// The database is configured with:
//   - WAL mode for concurrent read access
//   - NORMAL synchronous mode
//   - 5-second busy timeout
//   - Foreign key enforcement
func Open(path string) (*Ledger, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to ledger: %w", err)
	}

	// SQLite supports one writer at a time; a single connection avoids
	// SQLITE_BUSY under the batch-sequential access pattern.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}
	if err := applySchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &Ledger{db: db}, nil
}

// Close closes the database connection.
func (l *Ledger) Close() error {
	if l.db == nil {
		return nil
	}
	return l.db.Close()
}

func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}
	return nil
}

func applySchema(db *sql.DB) error {
	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}

	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("get user_version: %w", err)
	}
	if version < currentSchemaVersion {
		if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentSchemaVersion)); err != nil {
			return fmt.Errorf("set user_version: %w", err)
		}
	}
	return nil
}

// HasThread reports whether the thread key has already been ingested.
func (l *Ledger) HasThread(ctx context.Context, key string) (bool, error) {
	var n int
	err := l.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM threads WHERE key = ?`, key).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("has thread: %w", err)
	}
	return n > 0, nil
}

// MarkThread records the thread key as ingested. Re-marking an existing key
// is a no-op.
func (l *Ledger) MarkThread(ctx context.Context, key string) error {
	_, err := l.db.ExecContext(ctx, `
		INSERT INTO threads (key, ingested_at) VALUES (?, ?)
		ON CONFLICT(key) DO NOTHING
	`, key, now())
	if err != nil {
		return fmt.Errorf("mark thread: %w", err)
	}
	return nil
}

// HasGenerated reports whether a document has been recorded for the record
// key.
func (l *Ledger) HasGenerated(ctx context.Context, recordKey string) (bool, error) {
	var n int
	err := l.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM documents WHERE record_key = ?`, recordKey).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("has generated: %w", err)
	}
	return n > 0, nil
}

// DocumentRecord is one row of the generated-document registry.
type DocumentRecord struct {
	RecordKey   string    `json:"record_key"`
	Name        string    `json:"name"`
	Fingerprint string    `json:"fingerprint"`
	CreatedAt   time.Time `json:"created_at"`
}

// RecordDocument registers a generated document for a record. Duplicate
// record keys are silently ignored so a retried run cannot double-register.
func (l *Ledger) RecordDocument(ctx context.Context, recordKey, name, fingerprint string) error {
	_, err := l.db.ExecContext(ctx, `
		INSERT INTO documents (record_key, name, fingerprint, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(record_key) DO NOTHING
	`, recordKey, name, fingerprint, now())
	if err != nil {
		return fmt.Errorf("record document: %w", err)
	}
	return nil
}

// Documents returns the registry in creation order.
func (l *Ledger) Documents(ctx context.Context) ([]DocumentRecord, error) {
	rows, err := l.db.QueryContext(ctx, `
		SELECT record_key, name, fingerprint, created_at
		FROM documents ORDER BY created_at, name
	`)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var out []DocumentRecord
	for rows.Next() {
		var rec DocumentRecord
		var created string
		if err := rows.Scan(&rec.RecordKey, &rec.Name, &rec.Fingerprint, &created); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		rec.CreatedAt, _ = time.Parse(time.RFC3339, created)
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	return out, nil
}

// UpdateFingerprint stores the fingerprint now embedded in a document,
// keeping the registry in step with reconciliation.
func (l *Ledger) UpdateFingerprint(ctx context.Context, name, fingerprint string) error {
	_, err := l.db.ExecContext(ctx, `
		UPDATE documents SET fingerprint = ? WHERE name = ?
	`, fingerprint, name)
	if err != nil {
		return fmt.Errorf("update fingerprint: %w", err)
	}
	return nil
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}
