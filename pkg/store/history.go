package store

import (
	"fmt"

	"promptengine/pkg/schema"
)

type HistoryEntry struct {
	ID               int64   `json:"id"`
	Ref              string  `json:"ref"`
	PromptID         *int64  `json:"prompt_id,omitempty"`
	Mode             string  `json:"mode"`
	Model            string  `json:"model"`
	OriginalPrompt   string  `json:"original_prompt"`
	OptimizedPrompt  string  `json:"optimized_prompt"`
	OriginalOverall  float64 `json:"original_overall"`
	OptimizedOverall float64 `json:"optimized_overall"`
	Improvement      float64 `json:"improvement"`
	TokensOriginal   int     `json:"tokens_original"`
	TokensOptimized  int     `json:"tokens_optimized"`
	Fallback         bool    `json:"fallback"`
	CreatedAt        string  `json:"created_at"`
}

const historyColumns = `id, ref, prompt_id, mode, model, original_prompt, optimized_prompt,
	original_overall, optimized_overall, improvement, tokens_original, tokens_optimized, fallback, created_at`

func scanHistory(row interface{ Scan(...any) error }) (*HistoryEntry, error) {
	var h HistoryEntry
	if err := row.Scan(
		&h.ID, &h.Ref, &h.PromptID, &h.Mode, &h.Model, &h.OriginalPrompt, &h.OptimizedPrompt,
		&h.OriginalOverall, &h.OptimizedOverall, &h.Improvement, &h.TokensOriginal, &h.TokensOptimized,
		&h.Fallback, &h.CreatedAt,
	); err != nil {
		return nil, notFound(err)
	}
	return &h, nil
}

// RecordOptimization stores the original prompt with its score and the
// history row in one transaction.
func (s *Store) RecordOptimization(r *schema.OptimizeResponse) (*HistoryEntry, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("store: record optimization: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.Exec(
		`INSERT INTO prompts (title, text, mode) VALUES (?, ?, ?)`,
		titleOf(r.OriginalPrompt), r.OriginalPrompt, string(r.Mode),
	)
	if err != nil {
		return nil, fmt.Errorf("store: record optimization: prompt: %w", err)
	}
	promptID, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	if _, err := insertScore(tx, promptID, r.OriginalScores); err != nil {
		return nil, fmt.Errorf("store: record optimization: score: %w", err)
	}

	res, err = tx.Exec(
		`INSERT INTO optimization_history (ref, prompt_id, mode, model, original_prompt, optimized_prompt,
		        original_overall, optimized_overall, improvement, tokens_original, tokens_optimized, fallback)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.Ref, promptID, string(r.Mode), r.Model, r.OriginalPrompt, r.OptimizedPrompt,
		r.OriginalScores.Overall, r.OptimizedScores.Overall, r.Improvement,
		r.Tokens.Original, r.Tokens.Optimized, r.Fallback,
	)
	if err != nil {
		return nil, fmt.Errorf("store: record optimization: history: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("store: record optimization: commit: %w", err)
	}
	return s.GetHistory(id)
}

// RecentHistory returns the newest history entries, at most MaxHistory.
func (s *Store) RecentHistory(limit int) ([]HistoryEntry, error) {
	if limit <= 0 || limit > MaxHistory {
		limit = MaxHistory
	}
	rows, err := s.db.Query(`SELECT `+historyColumns+` FROM optimization_history ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	results := []HistoryEntry{}
	for rows.Next() {
		h, err := scanHistory(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, *h)
	}
	return results, rows.Err()
}

func (s *Store) GetHistory(id int64) (*HistoryEntry, error) {
	return scanHistory(s.db.QueryRow(`SELECT `+historyColumns+` FROM optimization_history WHERE id = ?`, id))
}

func (s *Store) DeleteHistory(id int64) error {
	return affected(s.db.Exec(`DELETE FROM optimization_history WHERE id = ?`, id))
}
