package postgres

import (
	"fmt"
	"time"

	"portfolio-api/internal/logger"
	"portfolio-api/internal/repository/db"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// AddChatMessage appends a turn to a chat session
func (p *PostgresDB) AddChatMessage(sessionID string, userID *string, role, content string) (*db.ChatMessage, error) {
	conn := p.conn

	msgID := uuid.New().String()
	var timestamp time.Time

	query := `
	INSERT INTO chat_messages (id, session_id, user_id, role, content)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING id, timestamp
	`

	err := conn.QueryRow(query, msgID, sessionID, userID, role, content).Scan(&msgID, &timestamp)
	if err != nil {
		return nil, fmt.Errorf("error adding chat message: %w", err)
	}

	logger.Log.WithFields(logrus.Fields{"session_id": sessionID, "role": role}).Debug("Added chat message")

	return &db.ChatMessage{
		ID:        msgID,
		SessionID: sessionID,
		UserID:    userID,
		Role:      role,
		Content:   content,
		Timestamp: timestamp,
	}, nil
}

// GetChatMessages retrieves all turns of a session in insertion order
func (p *PostgresDB) GetChatMessages(sessionID string) ([]db.ChatMessage, error) {
	conn := p.conn

	// seq is a monotonic insert counter; ordering by it keeps turns in
	// arrival order even when two inserts share a timestamp
	query := `
	SELECT id, session_id, user_id, role, content, timestamp
	FROM chat_messages
	WHERE session_id = $1
	ORDER BY seq ASC
	`

	rows, err := conn.Query(query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("error querying chat messages: %w", err)
	}
	defer rows.Close()

	messages := make([]db.ChatMessage, 0)
	for rows.Next() {
		var msg db.ChatMessage
		if err := rows.Scan(&msg.ID, &msg.SessionID, &msg.UserID, &msg.Role, &msg.Content, &msg.Timestamp); err != nil {
			return nil, fmt.Errorf("error scanning chat message: %w", err)
		}
		messages = append(messages, msg)
	}

	return messages, nil
}

// ClearChatSession deletes all turns of a session. Deleting an unknown
// session is a no-op.
func (p *PostgresDB) ClearChatSession(sessionID string) error {
	conn := p.conn

	query := `DELETE FROM chat_messages WHERE session_id = $1`
	_, err := conn.Exec(query, sessionID)
	if err != nil {
		return fmt.Errorf("error clearing chat session: %w", err)
	}

	logger.Log.WithField("session_id", sessionID).Info("Cleared chat session")
	return nil
}
