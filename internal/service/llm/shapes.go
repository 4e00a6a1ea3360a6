package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"portfolio-api/internal/config"
	"portfolio-api/internal/logger"

	"github.com/sirupsen/logrus"
)

// ShapesProvider implements Provider using direct Shapes API calls
type ShapesProvider struct {
	config *config.ShapesConfig
}

// NewShapesProvider creates a new Shapes API provider with config
func NewShapesProvider(shapesConfig *config.ShapesConfig) *ShapesProvider {
	return &ShapesProvider{
		config: shapesConfig,
	}
}

type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature float64   `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
}

// ChatCompletion sends the ordered turn list to the Shapes API and
// returns the first candidate's text. The user and session identifiers
// travel as routing headers alongside the bearer token; the session id
// keys the provider's own channel state.
func (p *ShapesProvider) ChatCompletion(messages []Message, userID, sessionID string) (string, error) {
	apiKey := p.config.APIKey
	if apiKey == "" {
		return "", &UpstreamError{Message: "SHAPESINC_API_KEY not configured"}
	}

	logger.Log.WithFields(logrus.Fields{
		"model":         p.config.Model,
		"session_id":    sessionID,
		"message_count": len(messages),
	}).Info("Calling Shapes API")

	reqBody := chatRequest{
		Model:       p.config.Model,
		Messages:    messages,
		MaxTokens:   p.config.MaxTokens,
		Temperature: p.config.Temperature,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("error marshaling request: %w", err)
	}

	req, err := http.NewRequest("POST", p.config.BaseURL+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("error creating request: %w", err)
	}

	if userID == "" {
		userID = "anonymous"
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)
	req.Header.Set("X-User-Id", userID)
	req.Header.Set("X-Channel-Id", sessionID)

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return "", &UpstreamError{Message: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &UpstreamError{StatusCode: resp.StatusCode, Message: err.Error()}
	}

	if resp.StatusCode != http.StatusOK {
		return "", &UpstreamError{StatusCode: resp.StatusCode, Message: string(body)}
	}

	var chatResp chatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", &UpstreamError{StatusCode: resp.StatusCode, Message: "undecodable response body"}
	}

	if len(chatResp.Choices) == 0 {
		logger.Log.Warn("Shapes API returned no choices")
		return "", nil
	}

	content := chatResp.Choices[0].Message.Content
	logger.Log.WithField("content_length", len(content)).Debug("Extracted content from response")
	return content, nil
}
