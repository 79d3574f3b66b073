// Package storage provides SQLite-based persistence for simulation runs.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-physics/internal/core"
)

const sqliteTime = "2006-01-02 15:04:05"

// Store manages the SQLite database connection for run persistence.
type Store struct {
	db *sql.DB
}

// Run is one recorded session of a scene.
type Run struct {
	ID            int64
	SceneID       string
	Ticks         int
	Contacts      int
	Top           int
	Bottom        int
	Left          int
	Right         int
	GroundedTicks int
	MaxSpeed      float64 // m/s
	CreatedAt     time.Time
}

// SceneStats contains aggregated statistics for a scene.
type SceneStats struct {
	SceneID       string
	Runs          int
	TotalTicks    int
	TotalContacts int
	AvgContacts   float64
	MaxSpeed      float64
	LastRun       time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
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
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			scene_id TEXT NOT NULL,
			ticks INTEGER NOT NULL DEFAULT 0,
			contacts INTEGER NOT NULL DEFAULT 0,
			top_contacts INTEGER NOT NULL DEFAULT 0,
			bottom_contacts INTEGER NOT NULL DEFAULT 0,
			left_contacts INTEGER NOT NULL DEFAULT 0,
			right_contacts INTEGER NOT NULL DEFAULT 0,
			grounded_ticks INTEGER NOT NULL DEFAULT 0,
			max_speed REAL NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_scene_id ON runs(scene_id);
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

// SaveRun records the final state of a scene session.
// Returns the ID of the inserted record.
func (s *Store) SaveRun(sceneID string, st core.SceneState) (int64, error) {
	if sceneID == "" {
		return 0, errors.New("storage: cannot save run: empty scene id")
	}

	result, err := s.db.Exec(
		`INSERT INTO runs (scene_id, ticks, contacts, top_contacts, bottom_contacts,
		 left_contacts, right_contacts, grounded_ticks, max_speed)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sceneID, st.Ticks, st.Contacts, st.Top, st.Bottom,
		st.Left, st.Right, st.GroundedTicks, st.MaxSpeed,
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

// RecentRuns retrieves the newest runs, newest first. An empty sceneID
// returns runs of every scene.
func (s *Store) RecentRuns(sceneID string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, scene_id, ticks, contacts, top_contacts, bottom_contacts,
		        left_contacts, right_contacts, grounded_ticks, max_speed, created_at
		 FROM runs
		 WHERE ? = '' OR scene_id = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		sceneID, sceneID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var createdAt any
		if err := rows.Scan(&r.ID, &r.SceneID, &r.Ticks, &r.Contacts, &r.Top, &r.Bottom,
			&r.Left, &r.Right, &r.GroundedTicks, &r.MaxSpeed, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// SceneStats retrieves aggregated statistics for one scene. A scene with
// no runs yields zero stats.
func (s *Store) SceneStats(sceneID string) (*SceneStats, error) {
	stats := &SceneStats{SceneID: sceneID}

	var lastRun any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(ticks), 0), COALESCE(SUM(contacts), 0),
		        COALESCE(AVG(contacts), 0), COALESCE(MAX(max_speed), 0), MAX(created_at)
		 FROM runs WHERE scene_id = ?`,
		sceneID,
	).Scan(&stats.Runs, &stats.TotalTicks, &stats.TotalContacts, &stats.AvgContacts, &stats.MaxSpeed, &lastRun)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get scene stats: %w", err)
	}
	stats.LastRun = parseTime(lastRun)

	return stats, nil
}

// AllSceneStats retrieves statistics for every scene that has runs.
func (s *Store) AllSceneStats() (map[string]*SceneStats, error) {
	rows, err := s.db.Query(
		`SELECT scene_id, COUNT(*), SUM(ticks), SUM(contacts), AVG(contacts), MAX(max_speed), MAX(created_at)
		 FROM runs
		 GROUP BY scene_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all scene stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*SceneStats)
	for rows.Next() {
		var st SceneStats
		var lastRun any
		if err := rows.Scan(&st.SceneID, &st.Runs, &st.TotalTicks, &st.TotalContacts,
			&st.AvgContacts, &st.MaxSpeed, &lastRun); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.LastRun = parseTime(lastRun)
		stats[st.SceneID] = &st
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// ClearRuns deletes the runs of one scene, or of every scene when sceneID
// is empty. It returns the number of deleted runs.
func (s *Store) ClearRuns(sceneID string) (int64, error) {
	result, err := s.db.Exec("DELETE FROM runs WHERE ? = '' OR scene_id = ?", sceneID, sceneID)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot count cleared runs: %w", err)
	}
	return n, nil
}

// parseTime handles the driver returning either time.Time or a string.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(sqliteTime, t); err == nil {
			return parsed
		}
		if parsed, err := time.Parse(time.RFC3339, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
