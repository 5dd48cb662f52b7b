package store

import (
	"fmt"
)

type AssistantMessage struct {
	ID             int64  `json:"id"`
	ConversationID string `json:"conversation_id"`
	Role           string `json:"role"`
	Content        string `json:"content"`
	Model          string `json:"model,omitempty"`
	CreatedAt      string `json:"created_at"`
}

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

func (s *Store) AddAssistantMessage(conversationID, role, content, model string) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO assistant_messages (conversation_id, role, content, model) VALUES (?, ?, ?, ?)`,
		conversationID, role, content, nullableString(model),
	)
	if err != nil {
		return 0, fmt.Errorf("store: add assistant message: %w", err)
	}
	return res.LastInsertId()
}

// ListAssistantMessages returns the last limit messages of a conversation,
// oldest first.
func (s *Store) ListAssistantMessages(conversationID string, limit int) ([]AssistantMessage, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(
		`SELECT id, conversation_id, role, content, COALESCE(model, ''), created_at FROM (
			SELECT * FROM assistant_messages WHERE conversation_id = ? ORDER BY id DESC LIMIT ?
		 ) ORDER BY id`,
		conversationID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	results := []AssistantMessage{}
	for rows.Next() {
		var m AssistantMessage
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.Role, &m.Content, &m.Model, &m.CreatedAt); err != nil {
			return nil, err
		}
		results = append(results, m)
	}
	return results, rows.Err()
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
