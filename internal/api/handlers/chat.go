package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"portfolio-api/internal/logger"
	chatService "portfolio-api/internal/service/chat"
	"portfolio-api/internal/service/llm"
	"portfolio-api/pkg/validation"
)

// Request/Response types

type ChatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"sessionId,omitempty"`
	UserID    string `json:"userId,omitempty"`
}

type ChatResponse struct {
	Message   string `json:"message"`
	SessionID string `json:"sessionId"`
}

type MessageData struct {
	ID        string  `json:"id"`
	SessionID string  `json:"sessionId"`
	UserID    *string `json:"userId"`
	Role      string  `json:"role"`
	Content   string  `json:"content"`
	Timestamp string  `json:"timestamp"`
}

type MessagesResponse struct {
	Messages []MessageData `json:"messages"`
}

type ClearResponse struct {
	Success bool `json:"success"`
}

// ChatHandlers maps the chat endpoints onto the chat service
type ChatHandlers struct {
	validator   *validation.ChatRequestValidator
	chatService *chatService.ChatService
}

// NewChatHandlers creates a new ChatHandlers
func NewChatHandlers(service *chatService.ChatService) *ChatHandlers {
	return &ChatHandlers{
		validator:   validation.NewChatRequestValidator(),
		chatService: service,
	}
}

// ChatHandler receives a user message and responds with the assistant reply
func (ch *ChatHandlers) ChatHandler(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if err := ch.validator.ValidateMessage(req.Message); err != nil {
		sendError(w, http.StatusBadRequest, "Validation failed", err)
		return
	}

	response, err := ch.chatService.SendMessage(chatService.SendMessageRequest{
		Message:   req.Message,
		SessionID: req.SessionID,
		UserID:    req.UserID,
	})
	if err != nil {
		logger.Log.WithError(err).Error("Error from chat service")

		var upstreamErr *llm.UpstreamError
		var validationErr *validation.ValidationError
		switch {
		case errors.As(err, &upstreamErr):
			sendError(w, http.StatusBadGateway, "Failed to process chat message", err)
		case errors.As(err, &validationErr):
			sendError(w, http.StatusBadRequest, "Validation failed", err)
		default:
			sendError(w, http.StatusInternalServerError, "Failed to process chat message", err)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ChatResponse{
		Message:   response.Reply,
		SessionID: response.SessionID,
	})
}

// HistoryHandler returns a session's turns in insertion order. An
// unknown session yields an empty list, not an error.
func (ch *ChatHandlers) HistoryHandler(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("sessionId")

	messages, err := ch.chatService.GetHistory(sessionID)
	if err != nil {
		logger.Log.WithError(err).Error("Error fetching chat history")
		sendError(w, http.StatusInternalServerError, "Failed to fetch chat history", err)
		return
	}

	msgData := make([]MessageData, 0, len(messages))
	for _, msg := range messages {
		msgData = append(msgData, MessageData{
			ID:        msg.ID,
			SessionID: msg.SessionID,
			UserID:    msg.UserID,
			Role:      msg.Role,
			Content:   msg.Content,
			Timestamp: msg.Timestamp.Format(time.RFC3339),
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(MessagesResponse{Messages: msgData})
}

// ClearSessionHandler removes all turns of a session
func (ch *ChatHandlers) ClearSessionHandler(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("sessionId")

	if err := ch.chatService.ClearSession(sessionID); err != nil {
		logger.Log.WithError(err).Error("Error clearing chat session")
		sendError(w, http.StatusInternalServerError, "Failed to clear chat session", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ClearResponse{Success: true})
}
