// Package storage provides persistence for Counter Flow: the JSON player
// record store and an append-only SQLite journal of finished runs.
// The journal uses the pure-Go modernc.org/sqlite driver to avoid CGO.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// History manages the SQLite database connection for run history.
type History struct {
	db *sql.DB
}

// Run is one finished run.
type Run struct {
	ID         int64
	PlayerID   string
	PlayerName string
	Score      int
	Level      int // Zero-based level reached
	Preset     string
	Strategy   string
	Won        bool
	Duration   time.Duration
	CreatedAt  time.Time
}

// RunStats contains aggregated statistics over recorded runs.
type RunStats struct {
	Runs       int
	Wins       int
	HighScore  int
	AvgScore   float64
	MaxLevel   int
	TotalTime  time.Duration
	LastPlayed time.Time
}

// OpenHistory creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func OpenHistory(dbPath string) (*History, error) {
	dbPath, err := expandHome(dbPath)
	if err != nil {
		return nil, err
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	h := &History{db: db}
	if err := h.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return h, nil
}

// migrate creates the database schema if it doesn't exist.
func (h *History) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			player_id TEXT NOT NULL,
			player_name TEXT NOT NULL,
			score INTEGER NOT NULL,
			level INTEGER NOT NULL DEFAULT 0,
			preset TEXT NOT NULL,
			strategy TEXT NOT NULL,
			won INTEGER NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_player ON runs(player_id);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(score DESC);
	`

	_, err := h.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (h *History) Close() error {
	if h.db != nil {
		return h.db.Close()
	}
	return nil
}

// SaveRun records a finished run and returns the ID of the inserted record.
func (h *History) SaveRun(run Run) (int64, error) {
	result, err := h.db.Exec(
		`INSERT INTO runs
		 (player_id, player_name, score, level, preset, strategy, won, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.PlayerID,
		run.PlayerName,
		run.Score,
		run.Level,
		run.Preset,
		run.Strategy,
		run.Won,
		run.Duration.Milliseconds(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// RecordRun satisfies the game's run recorder.
func (h *History) RecordRun(run Run) error {
	_, err := h.SaveRun(run)
	return err
}

const runColumns = `id, player_id, player_name, score, level, preset, strategy, won, duration_ms, created_at`

// TopRuns retrieves the N best runs across all players.
// Results are ordered by score descending, earlier runs first on ties.
func (h *History) TopRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}
	return h.queryRuns(
		`SELECT `+runColumns+`
		 FROM runs
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		limit,
	)
}

// PlayerRuns retrieves the most recent runs of one player.
func (h *History) PlayerRuns(playerID string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	return h.queryRuns(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE player_id = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		playerID, limit,
	)
}

func (h *History) queryRuns(query string, args ...any) ([]Run, error) {
	rows, err := h.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var durationMS int64
		var createdAt any
		if err := rows.Scan(
			&r.ID,
			&r.PlayerID,
			&r.PlayerName,
			&r.Score,
			&r.Level,
			&r.Preset,
			&r.Strategy,
			&r.Won,
			&durationMS,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Duration = time.Duration(durationMS) * time.Millisecond
		r.CreatedAt = parseTimestamp(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// Stats aggregates all runs, or one player's runs when playerID is set.
func (h *History) Stats(playerID string) (*RunStats, error) {
	where, args := "", []any{}
	if playerID != "" {
		where, args = "WHERE player_id = ?", []any{playerID}
	}

	stats := &RunStats{}
	var totalMS int64
	err := h.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(won), 0), COALESCE(MAX(score), 0),
		        COALESCE(AVG(score), 0), COALESCE(MAX(level), 0), COALESCE(SUM(duration_ms), 0)
		 FROM runs `+where,
		args...,
	).Scan(&stats.Runs, &stats.Wins, &stats.HighScore, &stats.AvgScore, &stats.MaxLevel, &totalMS)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get run stats: %w", err)
	}
	stats.TotalTime = time.Duration(totalMS) * time.Millisecond

	var lastPlayed any
	err = h.db.QueryRow(
		`SELECT created_at FROM runs `+where+` ORDER BY id DESC LIMIT 1`,
		args...,
	).Scan(&lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTimestamp(lastPlayed)
	}

	return stats, nil
}

// ClearRuns deletes every recorded run.
func (h *History) ClearRuns() error {
	if _, err := h.db.Exec("DELETE FROM runs"); err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// parseTimestamp handles both time.Time and string datetimes from the driver.
func parseTimestamp(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
		if parsed, err := time.Parse(time.RFC3339, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
