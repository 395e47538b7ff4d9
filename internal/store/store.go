// Package store persists search attempts to a sqlite file so rejected
// powers can be inspected after a run.
package store

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS attempts (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	scenario   TEXT    NOT NULL,
	power      INTEGER NOT NULL,
	completed  INTEGER NOT NULL,
	rounds     INTEGER NOT NULL,
	hp_left    INTEGER NOT NULL,
	score      INTEGER NOT NULL,
	created_at TEXT    NOT NULL DEFAULT (datetime('now'))
);`

// Store wraps the attempt-log database. Use ":memory:" as the path for
// a throwaway instance.
type Store struct {
	db *sql.DB
}

func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open attempt log %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create attempt schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Attempt is one row of the log.
type Attempt struct {
	Scenario  string
	Power     int
	Completed bool
	Rounds    int
	HPLeft    int
	Score     int
}

// LogAttempt appends one attempt row.
func (s *Store) LogAttempt(a Attempt) error {
	_, err := s.db.Exec(
		`INSERT INTO attempts (scenario, power, completed, rounds, hp_left, score)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		a.Scenario, a.Power, a.Completed, a.Rounds, a.HPLeft, a.Score,
	)
	if err != nil {
		return fmt.Errorf("log attempt (%s power %d): %w", a.Scenario, a.Power, err)
	}
	return nil
}

// Attempts returns the logged attempts for a scenario in insertion
// order.
func (s *Store) Attempts(scenario string) ([]Attempt, error) {
	rows, err := s.db.Query(
		`SELECT scenario, power, completed, rounds, hp_left, score
		 FROM attempts WHERE scenario = ? ORDER BY id`, scenario)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Attempt
	for rows.Next() {
		var a Attempt
		if err := rows.Scan(&a.Scenario, &a.Power, &a.Completed, &a.Rounds, &a.HPLeft, &a.Score); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
