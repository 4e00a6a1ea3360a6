package chat

import (
	"fmt"

	"portfolio-api/internal/logger"
	"portfolio-api/internal/repository/db"
	"portfolio-api/internal/service/llm"
	"portfolio-api/pkg/validation"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// fallbackReply is returned when the provider answers successfully but
// produces no candidate text
const fallbackReply = "I'm sorry, I couldn't process that request."

// SendMessageRequest contains all the parameters needed to send a message
type SendMessageRequest struct {
	Message   string
	SessionID string
	UserID    string
}

// SendMessageResponse contains the assistant reply and the session it
// belongs to. SessionID echoes the request's session or carries the
// newly minted one.
type SendMessageResponse struct {
	Reply     string
	SessionID string
}

// ChatService handles the business logic for chat operations: it turns a
// user-submitted message into a stored, provider-generated reply while
// maintaining conversation continuity per session.
type ChatService struct {
	db           db.Database
	provider     llm.Provider
	systemPrompt string
	validator    *validation.ChatRequestValidator
}

// NewChatService creates a new ChatService
func NewChatService(database db.Database, provider llm.Provider, systemPrompt string) *ChatService {
	return &ChatService{
		db:           database,
		provider:     provider,
		systemPrompt: systemPrompt,
		validator:    validation.NewChatRequestValidator(),
	}
}

// SendMessage processes a chat message and returns the provider's reply.
// The user turn is persisted before the provider call and is kept even
// if that call fails, leaving an unanswered turn in the history.
func (s *ChatService) SendMessage(req SendMessageRequest) (*SendMessageResponse, error) {
	if err := s.validator.ValidateMessage(req.Message); err != nil {
		return nil, err
	}

	// Resolve the session: mint a new one when the client has none yet
	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.New().String()
		logger.Log.WithField("session_id", sessionID).Debug("Minted new chat session")
	}

	var userID *string
	if req.UserID != "" {
		userID = &req.UserID
	}

	// Persist the user turn
	if _, err := s.db.AddChatMessage(sessionID, userID, "user", req.Message); err != nil {
		return nil, fmt.Errorf("failed to save user message: %w", err)
	}

	// Retrieve the full ordered history, including the turn just stored
	history, err := s.db.GetChatMessages(sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve chat history: %w", err)
	}

	// Build the provider prompt: one fixed system turn, then the history
	messages := make([]llm.Message, 0, len(history)+1)
	messages = append(messages, llm.Message{Role: "system", Content: s.systemPrompt})
	for _, msg := range history {
		messages = append(messages, llm.Message{Role: msg.Role, Content: msg.Content})
	}

	logger.Log.WithFields(logrus.Fields{
		"session_id":    sessionID,
		"message_count": len(history),
	}).Debug("Prepared for provider call")

	reply, err := s.provider.ChatCompletion(messages, req.UserID, sessionID)
	if err != nil {
		// No assistant turn is persisted; the user turn stays
		return nil, fmt.Errorf("completion provider error: %w", err)
	}

	if reply == "" {
		reply = fallbackReply
	}

	// Persist the assistant turn
	if _, err := s.db.AddChatMessage(sessionID, userID, "assistant", reply); err != nil {
		return nil, fmt.Errorf("failed to save assistant message: %w", err)
	}

	return &SendMessageResponse{
		Reply:     reply,
		SessionID: sessionID,
	}, nil
}

// GetHistory returns the session's turns in insertion order. An unknown
// session yields an empty history.
func (s *ChatService) GetHistory(sessionID string) ([]db.ChatMessage, error) {
	return s.db.GetChatMessages(sessionID)
}

// ClearSession removes all turns of a session. Clearing an unknown or
// already-empty session succeeds.
func (s *ChatService) ClearSession(sessionID string) error {
	return s.db.ClearChatSession(sessionID)
}
