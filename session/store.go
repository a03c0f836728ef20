// Copyright © 2026 Texelvim contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: session/store.go
// Summary: SQLite-backed record of recent editing sessions: working
// directory, last window geometry and last opened file.

package session

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Session is one remembered editing context.
type Session struct {
	WorkDir   string
	Cols      int
	Rows      int
	LastFile  string
	UpdatedAt time.Time
}

// Store wraps the on-disk database.
type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS sessions (
	workdir    TEXT PRIMARY KEY,
	cols       INTEGER NOT NULL,
	rows       INTEGER NOT NULL,
	last_file  TEXT NOT NULL DEFAULT '',
	updated_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS sessions_updated_at ON sessions(updated_at DESC);
`

// Open creates or opens the store at path, creating parent directories
// as needed.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("session: create store dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("session: open database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("session: apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Touch upserts a session record, stamping it with the current time.
func (s *Store) Touch(sess Session) error {
	if sess.WorkDir == "" {
		return fmt.Errorf("session: empty workdir")
	}
	_, err := s.db.Exec(`
		INSERT INTO sessions (workdir, cols, rows, last_file, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(workdir) DO UPDATE SET
			cols = excluded.cols,
			rows = excluded.rows,
			last_file = excluded.last_file,
			updated_at = excluded.updated_at`,
		sess.WorkDir, sess.Cols, sess.Rows, sess.LastFile, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("session: touch %s: %w", sess.WorkDir, err)
	}
	return nil
}

// Recent returns up to limit sessions, newest first.
func (s *Store) Recent(limit int) ([]Session, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.Query(`
		SELECT workdir, cols, rows, last_file, updated_at
		FROM sessions ORDER BY updated_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("session: query recent: %w", err)
	}
	defer rows.Close()

	var out []Session
	for rows.Next() {
		var sess Session
		var updated int64
		if err := rows.Scan(&sess.WorkDir, &sess.Cols, &sess.Rows, &sess.LastFile, &updated); err != nil {
			return nil, fmt.Errorf("session: scan row: %w", err)
		}
		sess.UpdatedAt = time.Unix(updated, 0)
		out = append(out, sess)
	}
	return out, rows.Err()
}

// Lookup finds the remembered session for a working directory.
func (s *Store) Lookup(workdir string) (Session, bool, error) {
	var sess Session
	var updated int64
	err := s.db.QueryRow(`
		SELECT workdir, cols, rows, last_file, updated_at
		FROM sessions WHERE workdir = ?`, workdir).
		Scan(&sess.WorkDir, &sess.Cols, &sess.Rows, &sess.LastFile, &updated)
	if err == sql.ErrNoRows {
		return Session{}, false, nil
	}
	if err != nil {
		return Session{}, false, fmt.Errorf("session: lookup %s: %w", workdir, err)
	}
	sess.UpdatedAt = time.Unix(updated, 0)
	return sess, true, nil
}

// Forget removes a session record.
func (s *Store) Forget(workdir string) error {
	_, err := s.db.Exec(`DELETE FROM sessions WHERE workdir = ?`, workdir)
	if err != nil {
		return fmt.Errorf("session: forget %s: %w", workdir, err)
	}
	return nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}
