// Package store persists prompts, quality scores, optimization history,
// assistant conversations and uploaded documents in SQLite.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("store: not found")

// FileName is the database file created inside the data directory.
const FileName = "promptengine.db"

// MaxHistory caps RecentHistory.
const MaxHistory = 50

type Store struct {
	db *sql.DB
}

// New opens (creating if needed) the database in dataDir and migrates it.
func New(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return nil, fmt.Errorf("store: create data dir: %w", err)
	}

	db, err := sql.Open("sqlite", filepath.Join(dataDir, FileName))
	if err != nil {
		return nil, fmt.Errorf("store: open database: %w", err)
	}
	// One connection keeps the per-connection pragmas in force and
	// serializes writers.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA foreign_keys = ON",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("store: pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("store: migration: %w", err)
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS prompts (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			title      TEXT    NOT NULL,
			text       TEXT    NOT NULL,
			mode       TEXT    NOT NULL DEFAULT 'ai-dev',
			created_at TEXT    NOT NULL DEFAULT (datetime('now')),
			updated_at TEXT    NOT NULL DEFAULT (datetime('now'))
		);

		CREATE TABLE IF NOT EXISTS quality_scores (
			id                   INTEGER PRIMARY KEY AUTOINCREMENT,
			prompt_id            INTEGER NOT NULL,
			clarity              REAL    NOT NULL,
			specificity          REAL    NOT NULL,
			completeness         REAL    NOT NULL,
			technical            REAL    NOT NULL,
			structure            REAL    NOT NULL,
			practicality         REAL    NOT NULL,
			context_richness     REAL    NOT NULL,
			constraint_clarity   REAL    NOT NULL,
			output_specification REAL    NOT NULL,
			overall              REAL    NOT NULL,
			grade                TEXT    NOT NULL,
			created_at           TEXT    NOT NULL DEFAULT (datetime('now')),
			FOREIGN KEY (prompt_id) REFERENCES prompts(id) ON DELETE CASCADE
		);

		CREATE INDEX IF NOT EXISTS idx_scores_prompt ON quality_scores(prompt_id);

		CREATE TABLE IF NOT EXISTS optimization_history (
			id                INTEGER PRIMARY KEY AUTOINCREMENT,
			ref               TEXT    NOT NULL UNIQUE,
			prompt_id         INTEGER,
			mode              TEXT    NOT NULL,
			model             TEXT    NOT NULL,
			original_prompt   TEXT    NOT NULL,
			optimized_prompt  TEXT    NOT NULL,
			original_overall  REAL    NOT NULL,
			optimized_overall REAL    NOT NULL,
			improvement       REAL    NOT NULL,
			tokens_original   INTEGER NOT NULL DEFAULT 0,
			tokens_optimized  INTEGER NOT NULL DEFAULT 0,
			fallback          INTEGER NOT NULL DEFAULT 0,
			created_at        TEXT    NOT NULL DEFAULT (datetime('now')),
			FOREIGN KEY (prompt_id) REFERENCES prompts(id) ON DELETE CASCADE
		);

		CREATE INDEX IF NOT EXISTS idx_history_mode ON optimization_history(mode);

		CREATE TABLE IF NOT EXISTS assistant_messages (
			id              INTEGER PRIMARY KEY AUTOINCREMENT,
			conversation_id TEXT    NOT NULL,
			role            TEXT    NOT NULL,
			content         TEXT    NOT NULL,
			model           TEXT,
			created_at      TEXT    NOT NULL DEFAULT (datetime('now'))
		);

		CREATE INDEX IF NOT EXISTS idx_assistant_conversation ON assistant_messages(conversation_id, id);

		CREATE TABLE IF NOT EXISTS uploaded_documents (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			filename   TEXT    NOT NULL,
			size       INTEGER NOT NULL,
			keywords   TEXT    NOT NULL DEFAULT '[]',
			created_at TEXT    NOT NULL DEFAULT (datetime('now'))
		);
	`)
	return err
}

// Stats holds aggregate counts over the whole database.
type Stats struct {
	Prompts            int            `json:"prompts"`
	QualityScores      int            `json:"quality_scores"`
	Optimizations      int            `json:"optimizations"`
	Fallbacks          int            `json:"fallbacks"`
	AssistantMessages  int            `json:"assistant_messages"`
	Documents          int            `json:"documents"`
	AverageImprovement float64        `json:"average_improvement"`
	ByMode             map[string]int `json:"by_mode"`
}

func (s *Store) Stats() (*Stats, error) {
	stats := &Stats{ByMode: make(map[string]int)}

	counts := []struct {
		query string
		dest  *int
	}{
		{"SELECT COUNT(*) FROM prompts", &stats.Prompts},
		{"SELECT COUNT(*) FROM quality_scores", &stats.QualityScores},
		{"SELECT COUNT(*) FROM optimization_history", &stats.Optimizations},
		{"SELECT COUNT(*) FROM optimization_history WHERE fallback = 1", &stats.Fallbacks},
		{"SELECT COUNT(*) FROM assistant_messages", &stats.AssistantMessages},
		{"SELECT COUNT(*) FROM uploaded_documents", &stats.Documents},
	}
	for _, c := range counts {
		if err := s.db.QueryRow(c.query).Scan(c.dest); err != nil {
			return nil, fmt.Errorf("store: stats: %w", err)
		}
	}
	if err := s.db.QueryRow(
		"SELECT COALESCE(AVG(improvement), 0) FROM optimization_history",
	).Scan(&stats.AverageImprovement); err != nil {
		return nil, fmt.Errorf("store: stats: %w", err)
	}

	rows, err := s.db.Query("SELECT mode, COUNT(*) FROM optimization_history GROUP BY mode")
	if err != nil {
		return nil, fmt.Errorf("store: stats: %w", err)
	}
	defer func() { _ = rows.Close() }()
	for rows.Next() {
		var mode string
		var n int
		if err := rows.Scan(&mode, &n); err != nil {
			return nil, err
		}
		stats.ByMode[mode] = n
	}
	return stats, rows.Err()
}

// notFound maps sql.ErrNoRows onto ErrNotFound.
func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func affected(res sql.Result, err error) error {
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
