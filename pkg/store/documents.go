package store

import (
	"encoding/json"
	"fmt"
)

type Document struct {
	ID        int64    `json:"id"`
	Filename  string   `json:"filename"`
	Size      int64    `json:"size"`
	Keywords  []string `json:"keywords"`
	CreatedAt string   `json:"created_at"`
}

func (s *Store) AddDocument(filename string, size int64, keywords []string) (*Document, error) {
	if keywords == nil {
		keywords = []string{}
	}
	data, err := json.Marshal(keywords)
	if err != nil {
		return nil, err
	}
	res, err := s.db.Exec(
		`INSERT INTO uploaded_documents (filename, size, keywords) VALUES (?, ?, ?)`,
		filename, size, string(data),
	)
	if err != nil {
		return nil, fmt.Errorf("store: add document: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return s.GetDocument(id)
}

func (s *Store) GetDocument(id int64) (*Document, error) {
	var d Document
	var raw string
	err := s.db.QueryRow(
		`SELECT id, filename, size, keywords, created_at FROM uploaded_documents WHERE id = ?`, id,
	).Scan(&d.ID, &d.Filename, &d.Size, &raw, &d.CreatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	if err := json.Unmarshal([]byte(raw), &d.Keywords); err != nil {
		return nil, fmt.Errorf("store: document %d keywords: %w", id, err)
	}
	return &d, nil
}
