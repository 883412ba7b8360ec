// Package archive provides a volatile, process-wide SQLite mirror of saved
// facts. It backs the store's Refresh extension point: per-session views of
// the archive implement store.Source. The database lives entirely in memory,
// so nothing here survives the process — sessions within one run can
// reconcile against it, but there is no cross-run persistence.
package archive

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/hpungsan/jot/internal/fact"
	"github.com/hpungsan/jot/internal/store"

	_ "modernc.org/sqlite"
)

// CurrentSchemaVersion is the latest schema version.
// Bump this when adding migrations.
const CurrentSchemaVersion = 1

// Archive wraps the in-memory database handle.
type Archive struct {
	db *sql.DB
}

// Open creates the in-memory archive and applies migrations.
func Open() (*Archive, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}

	// A second :memory: connection would open a different, empty database.
	// Pin the pool to one connection so every query sees the same data.
	db.SetMaxOpenConns(1)

	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Archive{db: db}, nil
}

// Close releases the database handle, discarding all archived facts.
func (a *Archive) Close() error {
	return a.db.Close()
}

// migrate applies schema migrations based on user_version.
func migrate(db *sql.DB) error {
	version, err := GetUserVersion(db)
	if err != nil {
		return err
	}

	// Migration 0 -> 1: Initial schema (v1)
	if version < 1 {
		schema := `
		CREATE TABLE IF NOT EXISTS facts (
		  seq        INTEGER PRIMARY KEY AUTOINCREMENT,
		  session    TEXT NOT NULL,
		  id         TEXT NOT NULL,
		  text       TEXT NOT NULL,
		  status     TEXT NOT NULL,
		  created_at TEXT NOT NULL
		);

		CREATE UNIQUE INDEX IF NOT EXISTS idx_facts_session_id
		ON facts(session, id);

		CREATE INDEX IF NOT EXISTS idx_facts_session_seq
		ON facts(session, seq);
		`
		if _, err := db.Exec(schema); err != nil {
			return fmt.Errorf("migration 1 failed: %w", err)
		}
		if err := SetUserVersion(db, 1); err != nil {
			return err
		}
	}

	// Future migrations go here:
	// if version < 2 { ... }

	return nil
}

// GetUserVersion returns the current schema version (user_version pragma).
func GetUserVersion(db *sql.DB) (int, error) {
	var version int
	if err := db.QueryRow("PRAGMA user_version;").Scan(&version); err != nil {
		return 0, fmt.Errorf("failed to get user_version: %w", err)
	}
	return version, nil
}

// SetUserVersion sets the schema version (user_version pragma).
func SetUserVersion(db *sql.DB, version int) error {
	if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d;", version)); err != nil {
		return fmt.Errorf("failed to set user_version: %w", err)
	}
	return nil
}

// ForSession returns a store.Source view over one session's rows.
func (a *Archive) ForSession(session string) store.Source {
	return &sessionSource{archive: a, session: session}
}

// DropSession deletes all archived facts for one session.
// Returns the number of rows removed.
func (a *Archive) DropSession(ctx context.Context, session string) (int, error) {
	res, err := a.db.ExecContext(ctx, `DELETE FROM facts WHERE session = ?`, session)
	if err != nil {
		return 0, fmt.Errorf("failed to drop session %q: %w", session, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

// sessionSource implements store.Source for a single session.
type sessionSource struct {
	archive *Archive
	session string
}

// Snapshot returns the session's facts in insertion (seq) order.
func (s *sessionSource) Snapshot(ctx context.Context) ([]fact.Fact, error) {
	rows, err := s.archive.db.QueryContext(ctx,
		`SELECT id, text, status, created_at FROM facts WHERE session = ? ORDER BY seq`,
		s.session)
	if err != nil {
		return nil, fmt.Errorf("failed to snapshot session %q: %w", s.session, err)
	}
	defer rows.Close()

	facts := make([]fact.Fact, 0)
	for rows.Next() {
		var f fact.Fact
		var createdAt string
		if err := rows.Scan(&f.ID, &f.Text, &f.Status, &createdAt); err != nil {
			return nil, err
		}
		ts, err := time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, fmt.Errorf("bad created_at for fact %q: %w", f.ID, err)
		}
		f.CreatedAt = ts
		facts = append(facts, f)
	}
	return facts, rows.Err()
}

// Record mirrors a newly saved fact.
func (s *sessionSource) Record(ctx context.Context, f fact.Fact) error {
	_, err := s.archive.db.ExecContext(ctx,
		`INSERT INTO facts (session, id, text, status, created_at) VALUES (?, ?, ?, ?, ?)`,
		s.session, f.ID, f.Text, string(f.Status), f.CreatedAt.Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("failed to record fact %q: %w", f.ID, err)
	}
	return nil
}

// Remove mirrors a discard.
func (s *sessionSource) Remove(ctx context.Context, id string) error {
	_, err := s.archive.db.ExecContext(ctx,
		`DELETE FROM facts WHERE session = ? AND id = ?`,
		s.session, id)
	if err != nil {
		return fmt.Errorf("failed to remove fact %q: %w", id, err)
	}
	return nil
}
