package validation

import "testing"

func TestValidateMessage(t *testing.T) {
	validator := NewChatRequestValidator()

	tests := []struct {
		name    string
		message string
		wantErr bool
	}{
		{
			name:    "valid message",
			message: "Hello, tell me about the projects",
			wantErr: false,
		},
		{
			name:    "empty message",
			message: "",
			wantErr: true,
		},
		{
			name:    "whitespace only message",
			message: "   \t\n  ",
			wantErr: true,
		},
		{
			name:    "message with surrounding whitespace",
			message: "  hi  ",
			wantErr: false,
		},
		{
			name:    "single character",
			message: "?",
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateMessage(tt.message)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateMessage(%q) error = %v, wantErr %v", tt.message, err, tt.wantErr)
			}
		})
	}
}

func TestValidateVisitRequest(t *testing.T) {
	validator := NewVisitRequestValidator()

	intPtr := func(v int) *int { return &v }

	tests := []struct {
		name            string
		sessionDuration *int
		pageViews       *int
		wantErr         bool
	}{
		{
			name:    "both absent",
			wantErr: false,
		},
		{
			name:            "valid values",
			sessionDuration: intPtr(120),
			pageViews:       intPtr(3),
			wantErr:         false,
		},
		{
			name:            "zero duration is allowed",
			sessionDuration: intPtr(0),
			wantErr:         false,
		},
		{
			name:            "negative duration",
			sessionDuration: intPtr(-5),
			wantErr:         true,
		},
		{
			name:      "zero page views",
			pageViews: intPtr(0),
			wantErr:   true,
		},
		{
			name:      "negative page views",
			pageViews: intPtr(-1),
			wantErr:   true,
		},
		{
			name:      "single page view",
			pageViews: intPtr(1),
			wantErr:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateVisitRequest(tt.sessionDuration, tt.pageViews)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateVisitRequest() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
