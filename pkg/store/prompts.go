package store

import (
	"cmp"
	"database/sql"
	"fmt"
	"strings"

	"promptengine/pkg/quality"
)

type Prompt struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Text      string `json:"text"`
	Mode      string `json:"mode"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// PromptUpdate holds partial update fields for a prompt.
type PromptUpdate struct {
	Title *string `json:"title,omitempty"`
	Text  *string `json:"text,omitempty"`
	Mode  *string `json:"mode,omitempty"`
}

type QualityScore struct {
	ID       int64 `json:"id"`
	PromptID int64 `json:"prompt_id"`
	quality.Scores
	Overall   float64       `json:"overall"`
	Grade     quality.Grade `json:"grade"`
	CreatedAt string        `json:"created_at"`
}

const promptColumns = `id, title, text, mode, created_at, updated_at`

func scanPrompt(row interface{ Scan(...any) error }) (*Prompt, error) {
	var p Prompt
	if err := row.Scan(&p.ID, &p.Title, &p.Text, &p.Mode, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

// CreatePrompt saves a prompt. An empty title is derived from the text.
func (s *Store) CreatePrompt(title, text, mode string) (*Prompt, error) {
	res, err := s.db.Exec(
		`INSERT INTO prompts (title, text, mode) VALUES (?, ?, ?)`,
		cmp.Or(title, titleOf(text)), text, cmp.Or(mode, "ai-dev"),
	)
	if err != nil {
		return nil, fmt.Errorf("store: create prompt: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return s.GetPrompt(id)
}

func (s *Store) GetPrompt(id int64) (*Prompt, error) {
	return scanPrompt(s.db.QueryRow(`SELECT `+promptColumns+` FROM prompts WHERE id = ?`, id))
}

// ListPrompts returns prompts newest first.
func (s *Store) ListPrompts(limit, offset int) ([]Prompt, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(
		`SELECT `+promptColumns+` FROM prompts ORDER BY id DESC LIMIT ? OFFSET ?`,
		limit, max(offset, 0),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	results := []Prompt{}
	for rows.Next() {
		p, err := scanPrompt(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, *p)
	}
	return results, rows.Err()
}

func (s *Store) UpdatePrompt(id int64, u PromptUpdate) (*Prompt, error) {
	p, err := s.GetPrompt(id)
	if err != nil {
		return nil, err
	}
	if u.Title != nil {
		p.Title = *u.Title
	}
	if u.Text != nil {
		p.Text = *u.Text
	}
	if u.Mode != nil {
		p.Mode = *u.Mode
	}
	if _, err := s.db.Exec(
		`UPDATE prompts SET title = ?, text = ?, mode = ?, updated_at = datetime('now') WHERE id = ?`,
		p.Title, p.Text, p.Mode, id,
	); err != nil {
		return nil, fmt.Errorf("store: update prompt: %w", err)
	}
	return s.GetPrompt(id)
}

// DeletePrompt removes a prompt together with its scores and history.
func (s *Store) DeletePrompt(id int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM quality_scores WHERE prompt_id = ?`, id); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM optimization_history WHERE prompt_id = ?`, id); err != nil {
		return err
	}
	if err := affected(tx.Exec(`DELETE FROM prompts WHERE id = ?`, id)); err != nil {
		return err
	}
	return tx.Commit()
}

// AddQualityScore stores a report against an existing prompt.
func (s *Store) AddQualityScore(promptID int64, r quality.Report) (*QualityScore, error) {
	if _, err := s.GetPrompt(promptID); err != nil {
		return nil, err
	}
	id, err := insertScore(s.db, promptID, r)
	if err != nil {
		return nil, fmt.Errorf("store: add quality score: %w", err)
	}
	return s.getQualityScore(id)
}

type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

func insertScore(db execer, promptID int64, r quality.Report) (int64, error) {
	res, err := db.Exec(
		`INSERT INTO quality_scores (prompt_id, clarity, specificity, completeness, technical, structure,
		        practicality, context_richness, constraint_clarity, output_specification, overall, grade)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		promptID, r.Clarity, r.Specificity, r.Completeness, r.Technical, r.Structure,
		r.Practicality, r.ContextRichness, r.ConstraintClarity, r.OutputSpecification, r.Overall, string(r.Grade),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

const scoreColumns = `id, prompt_id, clarity, specificity, completeness, technical, structure,
	practicality, context_richness, constraint_clarity, output_specification, overall, grade, created_at`

func scanScore(row interface{ Scan(...any) error }) (*QualityScore, error) {
	var q QualityScore
	if err := row.Scan(
		&q.ID, &q.PromptID, &q.Clarity, &q.Specificity, &q.Completeness, &q.Technical, &q.Structure,
		&q.Practicality, &q.ContextRichness, &q.ConstraintClarity, &q.OutputSpecification,
		&q.Overall, &q.Grade, &q.CreatedAt,
	); err != nil {
		return nil, notFound(err)
	}
	return &q, nil
}

func (s *Store) getQualityScore(id int64) (*QualityScore, error) {
	return scanScore(s.db.QueryRow(`SELECT `+scoreColumns+` FROM quality_scores WHERE id = ?`, id))
}

// ListQualityScores returns the scores of a prompt, oldest first.
func (s *Store) ListQualityScores(promptID int64) ([]QualityScore, error) {
	if _, err := s.GetPrompt(promptID); err != nil {
		return nil, err
	}
	rows, err := s.db.Query(`SELECT `+scoreColumns+` FROM quality_scores WHERE prompt_id = ? ORDER BY id`, promptID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	results := []QualityScore{}
	for rows.Next() {
		q, err := scanScore(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, *q)
	}
	return results, rows.Err()
}

// titleOf uses the first line of text, cut to 60 runes.
func titleOf(text string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(text), "\n")
	r := []rune(line)
	if len(r) > 60 {
		return string(r[:60]) + "..."
	}
	if len(r) == 0 {
		return "Untitled"
	}
	return line
}
