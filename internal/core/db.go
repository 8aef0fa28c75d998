package core

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Journal is an append-only SQLite log of repair runs.
// Runs never read it back; it exists for auditing via the history command.
type Journal struct {
	db *sql.DB
}

// RunRecord is one journaled run.
type RunRecord struct {
	ID         int64
	StartedAt  time.Time
	Mode       string // "repair" or "check"
	Documents  int
	Counts     Counts
	Rewrites   int
	Unresolved int
}

func openDBAt(path string) (*sql.DB, error) {
	return sql.Open("sqlite", fmt.Sprintf("file:%s", path))
}

func openDBReadOnlyAt(path string) (*sql.DB, error) {
	return sql.Open("sqlite", fmt.Sprintf("file:%s?mode=ro", path))
}

// OpenJournal opens (creating if needed) the journal database at path.
func OpenJournal(path string) (*Journal, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	db, err := openDBAt(path)
	if err != nil {
		return nil, err
	}
	if err := initSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("journal %s: %w", path, err)
	}
	return &Journal{db: db}, nil
}

// OpenJournalReadOnly opens an existing journal without creating or
// migrating anything; it is an error if none exists.
func OpenJournalReadOnly(path string) (*Journal, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("journal not found: %s", path)
	}
	db, err := openDBReadOnlyAt(path)
	if err != nil {
		return nil, err
	}
	return &Journal{db: db}, nil
}

// Close closes the underlying database.
func (j *Journal) Close() error {
	return j.db.Close()
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id         INTEGER PRIMARY KEY,
			started_at INTEGER NOT NULL,
			mode       TEXT NOT NULL,
			documents  INTEGER NOT NULL,
			refs       INTEGER NOT NULL,
			paths      INTEGER NOT NULL,
			missing    INTEGER NOT NULL,
			matches    INTEGER NOT NULL,
			ambiguous  INTEGER NOT NULL,
			ties       INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS rewrites (
			id         INTEGER PRIMARY KEY,
			run_id     INTEGER NOT NULL,
			file       TEXT NOT NULL,
			line       INTEGER NOT NULL,
			old_target TEXT NOT NULL,
			new_target TEXT NOT NULL,
			FOREIGN KEY(run_id) REFERENCES runs(id)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_rewrites_run ON rewrites(run_id);`,
		`CREATE TABLE IF NOT EXISTS unresolved (
			id     INTEGER PRIMARY KEY,
			run_id INTEGER NOT NULL,
			file   TEXT NOT NULL,
			line   INTEGER NOT NULL,
			target TEXT NOT NULL,
			FOREIGN KEY(run_id) REFERENCES runs(id)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_unresolved_run ON unresolved(run_id);`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Record stores one run and its rewrites and unresolved links in a single
// transaction. It returns the new run ID.
func (j *Journal) Record(mode string, startedAt time.Time, res *FixResult) (int64, error) {
	tx, err := j.db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	c := res.Counts
	r, err := tx.Exec(
		`INSERT INTO runs (started_at, mode, documents, refs, paths, missing, matches, ambiguous, ties)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		startedAt.Unix(), mode, res.Documents, c.References, c.Paths, c.Missing, c.Matches, c.Ambiguous, c.Ties,
	)
	if err != nil {
		return 0, err
	}
	runID, err := r.LastInsertId()
	if err != nil {
		return 0, err
	}

	for _, rw := range res.Rewritten {
		if _, err := tx.Exec(
			`INSERT INTO rewrites (run_id, file, line, old_target, new_target) VALUES (?, ?, ?, ?, ?)`,
			runID, rw.File, rw.Line, rw.OldTarget, rw.NewTarget,
		); err != nil {
			return 0, err
		}
	}
	for _, u := range res.Unresolved {
		if _, err := tx.Exec(
			`INSERT INTO unresolved (run_id, file, line, target) VALUES (?, ?, ?, ?)`,
			runID, u.File, u.Line, u.Target,
		); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return runID, nil
}

// Runs returns the most recent runs, newest first. limit <= 0 returns all.
func (j *Journal) Runs(limit int) ([]RunRecord, error) {
	q := `SELECT r.id, r.started_at, r.mode, r.documents,
			r.refs, r.paths, r.missing, r.matches, r.ambiguous, r.ties,
			(SELECT COUNT(*) FROM rewrites w WHERE w.run_id = r.id),
			(SELECT COUNT(*) FROM unresolved u WHERE u.run_id = r.id)
		FROM runs r ORDER BY r.id DESC`
	var args []any
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := j.db.Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RunRecord
	for rows.Next() {
		var rec RunRecord
		var started int64
		c := &rec.Counts
		if err := rows.Scan(&rec.ID, &started, &rec.Mode, &rec.Documents,
			&c.References, &c.Paths, &c.Missing, &c.Matches, &c.Ambiguous, &c.Ties,
			&rec.Rewrites, &rec.Unresolved); err != nil {
			return nil, err
		}
		rec.StartedAt = time.Unix(started, 0)
		out = append(out, rec)
	}
	return out, rows.Err()
}

// RunRewrites returns the rewrites recorded for run id, in insertion order.
func (j *Journal) RunRewrites(id int64) ([]RewrittenLink, error) {
	rows, err := j.db.Query(
		`SELECT file, line, old_target, new_target FROM rewrites WHERE run_id = ? ORDER BY id`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RewrittenLink
	for rows.Next() {
		var rw RewrittenLink
		if err := rows.Scan(&rw.File, &rw.Line, &rw.OldTarget, &rw.NewTarget); err != nil {
			return nil, err
		}
		out = append(out, rw)
	}
	return out, rows.Err()
}
