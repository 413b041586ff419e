package state

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"stockcli/internal/errors"
)

const schema = `
CREATE TABLE IF NOT EXISTS gate_state (
	key TEXT PRIMARY KEY,
	signature TEXT NOT NULL,
	run_id TEXT,
	updated_at DATETIME NOT NULL
);
CREATE TABLE IF NOT EXISTS run_history (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	key TEXT NOT NULL,
	signature TEXT NOT NULL,
	run_id TEXT,
	recorded_at DATETIME NOT NULL
);
`

// SQLiteStore keeps gate entries in SQLite and appends every Put to a run
// history table.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the database at path.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, errors.NewStorageError(fmt.Sprintf("failed to create directory %s", dir), err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.NewStorageError(fmt.Sprintf("failed to open state database %s", path), err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, errors.NewStorageError("failed to create state tables", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Get(ctx context.Context, key string) (Entry, bool, error) {
	var (
		e     Entry
		runID sql.NullString
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT signature, run_id, updated_at FROM gate_state WHERE key = ?`, key).
		Scan(&e.Signature, &runID, &e.UpdatedAt)
	if stderrors.Is(err, sql.ErrNoRows) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, errors.NewStorageError("failed to read state", err).WithContext("key", key)
	}
	e.RunID = runID.String
	return e, true, nil
}

func (s *SQLiteStore) Put(ctx context.Context, key string, entry Entry) error {
	at := entry.UpdatedAt.UTC()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.NewStorageError("failed to begin state transaction", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO gate_state (key, signature, run_id, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET signature = excluded.signature, run_id = excluded.run_id, updated_at = excluded.updated_at`,
		key, entry.Signature, entry.RunID, at); err != nil {
		return errors.NewStorageError("failed to write state", err).WithContext("key", key)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO run_history (key, signature, run_id, recorded_at) VALUES (?, ?, ?, ?)`,
		key, entry.Signature, entry.RunID, at); err != nil {
		return errors.NewStorageError("failed to append run history", err).WithContext("key", key)
	}

	if err := tx.Commit(); err != nil {
		return errors.NewStorageError("failed to commit state", err)
	}
	return nil
}

// History returns the recorded runs for key, newest first. limit <= 0
// returns all of them.
func (s *SQLiteStore) History(ctx context.Context, key string, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT signature, run_id, recorded_at FROM run_history WHERE key = ? ORDER BY id DESC LIMIT ?`, key, limit)
	if err != nil {
		return nil, errors.NewStorageError("failed to query run history", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var (
			e     Entry
			runID sql.NullString
		)
		if err := rows.Scan(&e.Signature, &runID, &e.UpdatedAt); err != nil {
			return nil, errors.NewStorageError("failed to scan run history", err)
		}
		e.RunID = runID.String
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) Close() error { return s.db.Close() }
