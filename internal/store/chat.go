package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Conversations

func (s *SQLiteStore) CreateConversation() (*Conversation, error) {
	conv := &Conversation{
		ID:        uuid.NewString(),
		CreatedAt: time.Now(),
	}
	_, err := s.db.Exec("INSERT INTO conversations (id, created_at) VALUES (?, ?)", conv.ID, conv.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert conversation: %w", err)
	}
	return conv, nil
}

func (s *SQLiteStore) GetConversation(id string) (*Conversation, error) {
	var conv Conversation
	err := s.db.QueryRow("SELECT id, created_at FROM conversations WHERE id = ?", id).
		Scan(&conv.ID, &conv.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("failed to query conversation: %w", err)
	}
	return &conv, nil
}

// Messages

// CreateMessage assigns the message id and creation time. Messages are
// immutable once inserted; there is no update path.
func (s *SQLiteStore) CreateMessage(msg *Message) error {
	msg.ID = uuid.NewString()
	msg.CreatedAt = time.Now()

	_, err := s.db.Exec(`INSERT INTO messages (id, conversation_id, role, content, created_at)
        VALUES (?, ?, ?, ?, ?)`,
		msg.ID, msg.ConversationID, msg.Role, msg.Content, msg.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert message: %w", err)
	}
	return nil
}

// GetMessages returns the full history of a conversation in creation order.
// The created_at tiebreak on id keeps turns stable when two rows share a
// timestamp.
func (s *SQLiteStore) GetMessages(conversationID string) ([]Message, error) {
	rows, err := s.db.Query(`SELECT id, conversation_id, role, content, created_at
        FROM messages WHERE conversation_id = ? ORDER BY created_at ASC, rowid ASC`, conversationID)
	if err != nil {
		return nil, fmt.Errorf("failed to query messages: %w", err)
	}
	defer rows.Close()

	var messages []Message
	for rows.Next() {
		var msg Message
		if err := rows.Scan(&msg.ID, &msg.ConversationID, &msg.Role, &msg.Content, &msg.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan message row: %w", err)
		}
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}
