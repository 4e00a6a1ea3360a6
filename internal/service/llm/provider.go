package llm

import "fmt"

// Message is one turn of the prompt sent to the completion provider
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Provider defines the interface for completion providers. Given the
// ordered prompt (system turn plus history), a provider returns the
// generated reply text. An empty reply with a nil error means the
// provider answered successfully but produced no candidate text.
type Provider interface {
	ChatCompletion(messages []Message, userID, sessionID string) (string, error)
}

// UpstreamError reports a failed provider call: a non-success HTTP
// status, a transport error, or an undecodable response body.
// StatusCode is 0 when no HTTP status was received.
type UpstreamError struct {
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("upstream error: %s", e.Message)
	}
	return fmt.Sprintf("upstream returned status %d: %s", e.StatusCode, e.Message)
}
