// Package storage provides SQLite-based persistence for puzzle runs and
// scores. Uses the pure-Go modernc.org/sqlite driver to avoid CGO
// dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// LocalPlayer is recorded for runs played from the local terminal.
const LocalPlayer = "local"

// Store manages the SQLite database connection. It is safe for concurrent
// use; the SSH server shares one Store between sessions.
type Store struct {
	db *sql.DB
}

// RunResult is one finished play-through of a level.
type RunResult struct {
	ID        int64
	RunID     string // UUID assigned by SaveRun when empty
	LevelID   string
	Player    string
	Preset    string
	Won       bool
	Score     int
	Moves     int
	Turns     int
	Shapes    int
	Completed int
	MoveLimit int
	CreatedAt time.Time
}

// ScoreEntry represents a single high score record.
type ScoreEntry struct {
	ID        int64
	LevelID   string
	Player    string
	Score     int
	Moves     int
	CreatedAt time.Time
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
			run_id TEXT NOT NULL UNIQUE,
			level_id TEXT NOT NULL,
			player TEXT NOT NULL DEFAULT 'local',
			preset TEXT NOT NULL DEFAULT '',
			won INTEGER NOT NULL DEFAULT 0,
			score INTEGER NOT NULL DEFAULT 0,
			moves INTEGER NOT NULL DEFAULT 0,
			turns INTEGER NOT NULL DEFAULT 0,
			shapes INTEGER NOT NULL DEFAULT 0,
			completed INTEGER NOT NULL DEFAULT 0,
			move_limit INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_level_id ON runs(level_id);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(level_id, won, score DESC);
		CREATE INDEX IF NOT EXISTS idx_runs_player ON runs(player);
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

// SaveRun records a finished run and returns it with ID and RunID set.
func (s *Store) SaveRun(r RunResult) (RunResult, error) {
	if r.RunID == "" {
		r.RunID = uuid.NewString()
	}
	if r.Player == "" {
		r.Player = LocalPlayer
	}

	res, err := s.db.Exec(
		`INSERT INTO runs
		 (run_id, level_id, player, preset, won, score, moves, turns, shapes, completed, move_limit)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, r.LevelID, r.Player, r.Preset, r.Won,
		r.Score, r.Moves, r.Turns, r.Shapes, r.Completed, r.MoveLimit,
	)
	if err != nil {
		return r, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return r, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	r.ID = id
	r.CreatedAt = time.Now().UTC()

	return r, nil
}

const runColumns = `id, run_id, level_id, player, preset, won, score, moves, turns,
	shapes, completed, move_limit, created_at`

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(sc rowScanner) (RunResult, error) {
	var r RunResult
	var createdAt any
	err := sc.Scan(
		&r.ID, &r.RunID, &r.LevelID, &r.Player, &r.Preset, &r.Won,
		&r.Score, &r.Moves, &r.Turns, &r.Shapes, &r.Completed, &r.MoveLimit,
		&createdAt,
	)
	r.CreatedAt = parseTimestamp(createdAt)
	return r, err
}

func (s *Store) queryRuns(query string, args ...any) ([]RunResult, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunResult
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// RunByID retrieves a run by its UUID. Returns nil if it does not exist.
func (s *Store) RunByID(runID string) (*RunResult, error) {
	r, err := scanRun(s.db.QueryRow(
		`SELECT `+runColumns+` FROM runs WHERE run_id = ?`,
		runID,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run: %w", err)
	}
	return &r, nil
}

// RecentRuns retrieves the most recent runs, newest first. An empty
// levelID returns runs of every level.
func (s *Store) RecentRuns(levelID string, limit int) ([]RunResult, error) {
	if limit <= 0 {
		limit = 20
	}
	if levelID == "" {
		return s.queryRuns(
			`SELECT `+runColumns+` FROM runs ORDER BY id DESC LIMIT ?`,
			limit,
		)
	}
	return s.queryRuns(
		`SELECT `+runColumns+` FROM runs WHERE level_id = ? ORDER BY id DESC LIMIT ?`,
		levelID, limit,
	)
}

// PlayerRuns retrieves the run history of one player, newest first.
func (s *Store) PlayerRuns(player string, limit int) ([]RunResult, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryRuns(
		`SELECT `+runColumns+` FROM runs WHERE player = ? ORDER BY id DESC LIMIT ?`,
		player, limit,
	)
}

// BestRun returns the won run with the fewest moves for a level, ties
// broken by score and then by age. Returns nil if the level was never
// solved.
func (s *Store) BestRun(levelID string) (*RunResult, error) {
	r, err := scanRun(s.db.QueryRow(
		`SELECT `+runColumns+` FROM runs
		 WHERE level_id = ? AND won = 1
		 ORDER BY moves ASC, score DESC, id ASC
		 LIMIT 1`,
		levelID,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query best run: %w", err)
	}
	return &r, nil
}

// BestRuns returns the best run of every solved level, keyed by level ID.
func (s *Store) BestRuns() (map[string]RunResult, error) {
	runs, err := s.queryRuns(
		`SELECT ` + runColumns + ` FROM runs
		 WHERE won = 1
		 ORDER BY level_id, moves ASC, score DESC, id ASC`,
	)
	if err != nil {
		return nil, err
	}

	best := make(map[string]RunResult)
	for _, r := range runs {
		if _, ok := best[r.LevelID]; !ok {
			best[r.LevelID] = r
		}
	}
	return best, nil
}

// TopScores retrieves the top N scores of solved runs for a level.
// Results are ordered by score descending.
func (s *Store) TopScores(levelID string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, level_id, player, score, moves, created_at
		 FROM runs
		 WHERE level_id = ? AND won = 1
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		levelID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.LevelID, &e.Player, &e.Score, &e.Moves, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTimestamp(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// HighScore returns the highest score for the given level.
// Returns 0 if the level was never solved.
func (s *Store) HighScore(levelID string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM runs WHERE level_id = ? AND won = 1",
		levelID,
	).Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}
	return int(score.Int64), nil
}

// ClearRuns deletes all runs for the given level.
func (s *Store) ClearRuns(levelID string) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE level_id = ?", levelID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// LevelStats contains aggregated statistics for a level.
type LevelStats struct {
	LevelID    string
	Plays      int
	Wins       int
	HighScore  int
	BestMoves  int // 0 if never solved
	AvgScore   float64
	LastPlayed time.Time
}

// GetLevelStats retrieves aggregated statistics for a specific level.
func (s *Store) GetLevelStats(levelID string) (*LevelStats, error) {
	stats, err := s.levelStats(`WHERE level_id = ?`, levelID)
	if err != nil {
		return nil, err
	}
	if st, ok := stats[levelID]; ok {
		return st, nil
	}
	return &LevelStats{LevelID: levelID}, nil
}

// GetAllLevelStats retrieves statistics for all levels that have been played.
func (s *Store) GetAllLevelStats() (map[string]*LevelStats, error) {
	return s.levelStats("")
}

func (s *Store) levelStats(where string, args ...any) (map[string]*LevelStats, error) {
	rows, err := s.db.Query(
		`SELECT level_id, COUNT(*), COALESCE(SUM(won), 0),
		        COALESCE(MAX(CASE WHEN won = 1 THEN score END), 0),
		        COALESCE(MIN(CASE WHEN won = 1 THEN moves END), 0),
		        COALESCE(AVG(CASE WHEN won = 1 THEN score END), 0),
		        MAX(created_at)
		 FROM runs `+where+`
		 GROUP BY level_id`,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get level stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*LevelStats)
	for rows.Next() {
		var st LevelStats
		var lastPlayed any
		if err := rows.Scan(&st.LevelID, &st.Plays, &st.Wins, &st.HighScore, &st.BestMoves, &st.AvgScore, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.LastPlayed = parseTimestamp(lastPlayed)
		stats[st.LevelID] = &st
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// parseTimestamp handles both time.Time and the string form SQLite uses
// for CURRENT_TIMESTAMP.
func parseTimestamp(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
