package validation

import (
	"fmt"
	"strings"
)

// ValidationError marks malformed client input. The HTTP edge maps it
// to a 400 response instead of a generic server error.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// ChatRequestValidator validates chat-related requests
type ChatRequestValidator struct{}

// NewChatRequestValidator creates a new ChatRequestValidator
func NewChatRequestValidator() *ChatRequestValidator {
	return &ChatRequestValidator{}
}

// ValidateMessage validates a chat message. Whitespace-only messages
// count as empty.
func (v *ChatRequestValidator) ValidateMessage(message string) error {
	if strings.TrimSpace(message) == "" {
		return &ValidationError{Reason: "message cannot be empty"}
	}
	return nil
}

// VisitRequestValidator validates visit tracking requests
type VisitRequestValidator struct{}

// NewVisitRequestValidator creates a new VisitRequestValidator
func NewVisitRequestValidator() *VisitRequestValidator {
	return &VisitRequestValidator{}
}

// ValidateSessionDuration validates the optional session duration in seconds
func (v *VisitRequestValidator) ValidateSessionDuration(seconds *int) error {
	if seconds == nil {
		return nil
	}
	if *seconds < 0 {
		return &ValidationError{Reason: fmt.Sprintf("sessionDuration must be non-negative, got %d", *seconds)}
	}
	return nil
}

// ValidatePageViews validates the optional page view count
func (v *VisitRequestValidator) ValidatePageViews(views *int) error {
	if views == nil {
		return nil
	}
	if *views < 1 {
		return &ValidationError{Reason: fmt.Sprintf("pageViews must be at least 1, got %d", *views)}
	}
	return nil
}

// ValidateVisitRequest validates a complete visit tracking request
func (v *VisitRequestValidator) ValidateVisitRequest(sessionDuration, pageViews *int) error {
	if err := v.ValidateSessionDuration(sessionDuration); err != nil {
		return err
	}
	if err := v.ValidatePageViews(pageViews); err != nil {
		return err
	}
	return nil
}
