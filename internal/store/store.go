// Package store handles SQLite persistence.
package store

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/kotobadev/kotoba/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for ledger, session history, and streak state.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS ledger (
			key TEXT PRIMARY KEY,
			correct INTEGER NOT NULL,
			incorrect INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS session_history (
			id INTEGER PRIMARY KEY,
			at TEXT NOT NULL,
			correct INTEGER NOT NULL,
			incorrect INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS streak (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			last_practice TEXT NOT NULL,
			current INTEGER NOT NULL
		);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// LoadLedger reads the entire ledger mapping.
func (s *Store) LoadLedger(ctx context.Context) (map[string]model.PerformanceRecord, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key, correct, incorrect FROM ledger`)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	ledger := map[string]model.PerformanceRecord{}
	for rows.Next() {
		var key string
		var rec model.PerformanceRecord
		if err := rows.Scan(&key, &rec.Correct, &rec.Incorrect); err != nil {
			return nil, err
		}
		ledger[key] = rec
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ledger, nil
}

// SaveLedger replaces the stored ledger with the given mapping in one
// transaction. The whole structure is written on every mutation; there is
// no partial persistence.
func (s *Store) SaveLedger(ctx context.Context, ledger map[string]model.PerformanceRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM ledger`); err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO ledger (key, correct, incorrect) VALUES (?, ?, ?)`)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := stmt.Close(); cerr != nil {
			// Best-effort statement close.
			_ = cerr
		}
	}()
	for key, rec := range ledger {
		if _, err = stmt.ExecContext(ctx, key, rec.Correct, rec.Incorrect); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// AppendSession stores one session event and prunes the history to the most
// recent limit entries.
func (s *Store) AppendSession(ctx context.Context, event model.SessionEvent, limit int) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO session_history (at, correct, incorrect) VALUES (?, ?, ?)`,
		event.At.UTC().Format(time.RFC3339Nano), event.Correct, event.Incorrect)
	if err != nil {
		return err
	}
	if limit > 0 {
		_, err = tx.ExecContext(ctx,
			`DELETE FROM session_history WHERE id NOT IN (
				SELECT id FROM session_history ORDER BY id DESC LIMIT ?
			)`, limit)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

// ListSessions returns all stored session events, oldest first.
func (s *Store) ListSessions(ctx context.Context) ([]model.SessionEvent, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT at, correct, incorrect FROM session_history ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var events []model.SessionEvent
	for rows.Next() {
		var at string
		var event model.SessionEvent
		if err := rows.Scan(&at, &event.Correct, &event.Incorrect); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, at)
		if err != nil {
			return nil, err
		}
		event.At = parsed
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

// LoadStreak reads the streak state, zero-valued when never practiced.
func (s *Store) LoadStreak(ctx context.Context) (model.StreakState, error) {
	var state model.StreakState
	err := s.db.QueryRowContext(ctx,
		`SELECT last_practice, current FROM streak WHERE id = 1`).
		Scan(&state.LastPractice, &state.Current)
	if err == sql.ErrNoRows {
		return model.StreakState{}, nil
	}
	if err != nil {
		return model.StreakState{}, err
	}
	return state, nil
}

// SaveStreak upserts the single streak row.
func (s *Store) SaveStreak(ctx context.Context, state model.StreakState) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO streak (id, last_practice, current) VALUES (1, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET last_practice = excluded.last_practice, current = excluded.current`,
		state.LastPractice, state.Current)
	return err
}

// ResetAll clears ledger, session history, and streak state together. This
// is the only deletion path.
func (s *Store) ResetAll(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	for _, stmt := range []string{
		`DELETE FROM ledger`,
		`DELETE FROM session_history`,
		`DELETE FROM streak`,
	} {
		if _, err = tx.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return tx.Commit()
}
