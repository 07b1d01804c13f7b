package audit

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// SQLiteStore keeps the audit trail in a local sqlite database, which makes
// `hallpass audit tail` queries cheap on long histories.
type SQLiteStore struct {
	db *sql.DB
}

func OpenSQLite(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir db dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	stmts := []string{
		`PRAGMA journal_mode=WAL;`,
		`CREATE TABLE IF NOT EXISTS decisions (
			id TEXT PRIMARY KEY,
			ts TEXT NOT NULL,
			tool TEXT NOT NULL,
			input TEXT NOT NULL,
			decision TEXT NOT NULL,
			reason TEXT,
			layer TEXT
		);`,
		`CREATE INDEX IF NOT EXISTS idx_decisions_ts ON decisions(ts);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

func (s *SQLiteStore) Append(r Record) error {
	_, err := s.db.Exec(
		`INSERT INTO decisions (id, ts, tool, input, decision, reason, layer) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.TS, r.Tool, r.Input, string(r.Decision), r.Reason, r.Layer,
	)
	return err
}

// Tail returns up to n most recent records, oldest first.
func (s *SQLiteStore) Tail(n int) ([]Record, error) {
	rows, err := s.db.Query(
		`SELECT id, ts, tool, input, decision, reason, layer FROM decisions ORDER BY ts DESC LIMIT ?`, n,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var r Record
		var decision string
		if err := rows.Scan(&r.ID, &r.TS, &r.Tool, &r.Input, &decision, &r.Reason, &r.Layer); err != nil {
			return nil, err
		}
		r.Decision = Outcome(decision)
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}
	return records, nil
}

func (s *SQLiteStore) Close() error { return s.db.Close() }
