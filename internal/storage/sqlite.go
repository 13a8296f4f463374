// Package storage provides SQLite-based persistence for saved runs and the
// hall of fame. Uses the pure-Go modernc.org/sqlite driver to avoid CGO
// dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/justinbroadbent/inerticorp/internal/sim"
)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// SaveEntry is one named save slot. State is the full serialized value
// model — the lossless save format.
type SaveEntry struct {
	ID         int64
	Slot       string
	Difficulty string
	Seed       int64
	Quarter    int
	State      sim.State
	UpdatedAt  time.Time
}

// RunRecord is one finished run in the hall of fame.
type RunRecord struct {
	ID          int64
	Difficulty  string
	Quarters    int
	TotalProfit int
	EvilScore   int
	Parachute   int
	EndReason   string // "ousted" or "retired"
	CreatedAt   time.Time
}

// Open creates or opens a SQLite database at the given path. It creates
// parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}
	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS saves (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			slot TEXT NOT NULL UNIQUE,
			difficulty TEXT NOT NULL,
			seed INTEGER NOT NULL,
			quarter INTEGER NOT NULL,
			state TEXT NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			difficulty TEXT NOT NULL,
			quarters INTEGER NOT NULL,
			total_profit INTEGER NOT NULL,
			evil_score INTEGER NOT NULL,
			parachute INTEGER NOT NULL,
			end_reason TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(quarters DESC, total_profit DESC);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveSlot writes (or overwrites) a named save slot.
func (s *Store) SaveSlot(slot, difficulty string, seed int64, st sim.State) error {
	data, err := sim.MarshalState(st)
	if err != nil {
		return fmt.Errorf("storage: cannot serialize save: %w", err)
	}
	_, err = s.db.Exec(
		`INSERT INTO saves (slot, difficulty, seed, quarter, state, updated_at)
		 VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(slot) DO UPDATE SET
		   difficulty = excluded.difficulty,
		   seed = excluded.seed,
		   quarter = excluded.quarter,
		   state = excluded.state,
		   updated_at = CURRENT_TIMESTAMP`,
		slot, difficulty, seed, st.Quarter, string(data),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save slot %s: %w", slot, err)
	}
	return nil
}

// LoadSlot reads a save slot. Returns nil if the slot does not exist.
func (s *Store) LoadSlot(slot string) (*SaveEntry, error) {
	var e SaveEntry
	var stateJSON string
	var updatedAt any

	err := s.db.QueryRow(
		`SELECT id, slot, difficulty, seed, quarter, state, updated_at
		 FROM saves WHERE slot = ?`,
		slot,
	).Scan(&e.ID, &e.Slot, &e.Difficulty, &e.Seed, &e.Quarter, &stateJSON, &updatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot load slot %s: %w", slot, err)
	}

	st, err := sim.UnmarshalState([]byte(stateJSON))
	if err != nil {
		return nil, fmt.Errorf("storage: corrupt save in slot %s: %w", slot, err)
	}
	e.State = st
	e.UpdatedAt = parseTimestamp(updatedAt)
	return &e, nil
}

// DeleteSlot removes a save slot.
func (s *Store) DeleteSlot(slot string) error {
	_, err := s.db.Exec("DELETE FROM saves WHERE slot = ?", slot)
	if err != nil {
		return fmt.Errorf("storage: cannot delete slot %s: %w", slot, err)
	}
	return nil
}

// ListSlots returns all save slots, most recently updated first. State is
// not deserialized here; use LoadSlot for that.
func (s *Store) ListSlots() ([]SaveEntry, error) {
	rows, err := s.db.Query(
		`SELECT id, slot, difficulty, seed, quarter, updated_at
		 FROM saves ORDER BY updated_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot list slots: %w", err)
	}
	defer rows.Close()

	var entries []SaveEntry
	for rows.Next() {
		var e SaveEntry
		var updatedAt any
		if err := rows.Scan(&e.ID, &e.Slot, &e.Difficulty, &e.Seed, &e.Quarter, &updatedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan slot row: %w", err)
		}
		e.UpdatedAt = parseTimestamp(updatedAt)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

// RecordRun appends a finished run to the hall of fame.
func (s *Store) RecordRun(r RunRecord) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO runs (difficulty, quarters, total_profit, evil_score, parachute, end_reason)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		r.Difficulty, r.Quarters, r.TotalProfit, r.EvilScore, r.Parachute, r.EndReason,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot record run: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// TopRuns returns the best runs, longest tenure first, profit as the
// tiebreaker.
func (s *Store) TopRuns(limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.Query(
		`SELECT id, difficulty, quarters, total_profit, evil_score, parachute, end_reason, created_at
		 FROM runs
		 ORDER BY quarters DESC, total_profit DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		var r RunRecord
		var createdAt any
		if err := rows.Scan(&r.ID, &r.Difficulty, &r.Quarters, &r.TotalProfit,
			&r.EvilScore, &r.Parachute, &r.EndReason, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan run row: %w", err)
		}
		r.CreatedAt = parseTimestamp(createdAt)
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return records, nil
}

// RunStats contains aggregated hall-of-fame statistics.
type RunStats struct {
	RunsCount    int
	BestQuarters int
	AvgQuarters  float64
	TotalProfit  int64
	Retirements  int
}

// GetRunStats aggregates across all recorded runs.
func (s *Store) GetRunStats() (*RunStats, error) {
	stats := &RunStats{}
	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(MAX(quarters), 0),
		        COALESCE(AVG(quarters), 0),
		        COALESCE(SUM(total_profit), 0),
		        COALESCE(SUM(CASE WHEN end_reason = 'retired' THEN 1 ELSE 0 END), 0)
		 FROM runs`,
	).Scan(&stats.RunsCount, &stats.BestQuarters, &stats.AvgQuarters, &stats.TotalProfit, &stats.Retirements)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get run stats: %w", err)
	}
	return stats, nil
}

// ClearRuns deletes all hall-of-fame records.
func (s *Store) ClearRuns() error {
	if _, err := s.db.Exec("DELETE FROM runs"); err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// parseTimestamp handles both time.Time and string values from the driver.
func parseTimestamp(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
