package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"portfolio-api/internal/repository/memory"
	chatService "portfolio-api/internal/service/chat"
	"portfolio-api/internal/service/llm"
	"portfolio-api/internal/testutil"
)

func newChatMux(provider llm.Provider) (*http.ServeMux, *memory.MemoryStore) {
	store := memory.NewMemoryStore()
	service := chatService.NewChatService(store, provider, "test system prompt")
	ch := NewChatHandlers(service)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/chat", ch.ChatHandler)
	mux.HandleFunc("GET /api/chat/{sessionId}", ch.HistoryHandler)
	mux.HandleFunc("DELETE /api/chat/{sessionId}", ch.ClearSessionHandler)
	return mux, store
}

func postJSON(t *testing.T, mux *http.ServeMux, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request body: %v", err)
	}
	req := httptest.NewRequest("POST", path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestChatEndpointRoundTrip(t *testing.T) {
	mux, store := newChatMux(&testutil.MockProvider{
		ChatCompletionFunc: func(messages []llm.Message, userID, sessionID string) (string, error) {
			return "assistant says hi", nil
		},
	})

	rec := postJSON(t, mux, "/api/chat", ChatRequest{Message: "hello"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body: %s", rec.Code, rec.Body.String())
	}

	var resp ChatResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Message != "assistant says hi" {
		t.Errorf("message = %q, want provider reply", resp.Message)
	}
	if resp.SessionID == "" {
		t.Fatal("sessionId missing from response")
	}

	history, _ := store.GetChatMessages(resp.SessionID)
	if len(history) != 2 {
		t.Errorf("stored %d turns, want 2", len(history))
	}
}

func TestChatEndpointEmptyMessage(t *testing.T) {
	mux, store := newChatMux(&testutil.MockProvider{})

	for _, message := range []string{"", "   "} {
		rec := postJSON(t, mux, "/api/chat", ChatRequest{Message: message, SessionID: "s1"})
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status for %q = %d, want 400", message, rec.Code)
		}

		var errResp ErrorResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &errResp); err != nil {
			t.Fatalf("decode error response: %v", err)
		}
		if errResp.Error == "" {
			t.Error("error envelope missing error field")
		}
	}

	history, _ := store.GetChatMessages("s1")
	if len(history) != 0 {
		t.Errorf("rejected requests left %d turns", len(history))
	}
}

func TestChatEndpointInvalidBody(t *testing.T) {
	mux, _ := newChatMux(&testutil.MockProvider{})

	req := httptest.NewRequest("POST", "/api/chat", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestChatEndpointUpstreamFailure(t *testing.T) {
	mux, store := newChatMux(&testutil.MockProvider{
		ChatCompletionFunc: func(messages []llm.Message, userID, sessionID string) (string, error) {
			return "", &llm.UpstreamError{StatusCode: 500, Message: "provider exploded"}
		},
	})

	rec := postJSON(t, mux, "/api/chat", ChatRequest{Message: "hello", SessionID: "s1"})
	if rec.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", rec.Code)
	}

	// The user turn survives the failed exchange
	history, _ := store.GetChatMessages("s1")
	if len(history) != 1 || history[0].Role != "user" {
		t.Errorf("history after failure = %v, want the lone user turn", history)
	}
}

func TestHistoryEndpoint(t *testing.T) {
	mux, store := newChatMux(&testutil.MockProvider{})

	store.AddChatMessage("s1", nil, "user", "question")
	store.AddChatMessage("s1", nil, "assistant", "answer")

	req := httptest.NewRequest("GET", "/api/chat/s1", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp MessagesResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Messages) != 2 {
		t.Fatalf("got %d messages, want 2", len(resp.Messages))
	}
	if resp.Messages[0].Role != "user" || resp.Messages[1].Role != "assistant" {
		t.Error("messages not in insertion order")
	}
}

func TestHistoryEndpointUnknownSession(t *testing.T) {
	mux, _ := newChatMux(&testutil.MockProvider{})

	req := httptest.NewRequest("GET", "/api/chat/never-seen", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 for unknown session", rec.Code)
	}

	var resp MessagesResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Messages == nil || len(resp.Messages) != 0 {
		t.Errorf("messages = %v, want empty list", resp.Messages)
	}
}

func TestClearEndpoint(t *testing.T) {
	mux, store := newChatMux(&testutil.MockProvider{})

	store.AddChatMessage("s1", nil, "user", "question")

	req := httptest.NewRequest("DELETE", "/api/chat/s1", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp ClearResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Success {
		t.Error("success = false, want true")
	}

	history, _ := store.GetChatMessages("s1")
	if len(history) != 0 {
		t.Errorf("session still has %d turns after clear", len(history))
	}
}
