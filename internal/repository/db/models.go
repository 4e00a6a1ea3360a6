package db

import "time"

// User represents an account that can access the admin endpoints
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// ChatMessage represents one turn of a chat session. Turns are never
// mutated after creation; a session is only ever appended to or cleared
// as a whole.
type ChatMessage struct {
	ID        string
	SessionID string
	UserID    *string
	Role      string // "user" or "assistant"
	Content   string
	Timestamp time.Time
}

// Visitor represents one logged page-visit event
type Visitor struct {
	ID              string
	VisitorID       string
	IPAddress       *string
	UserAgent       *string
	Referrer        *string
	SessionDuration *int // seconds
	PageViews       *int
	Timestamp       time.Time
}

// VisitorInput holds the fields of a visit record before the store
// assigns its identifier and timestamp
type VisitorInput struct {
	VisitorID       string
	IPAddress       *string
	UserAgent       *string
	Referrer        *string
	SessionDuration *int
	PageViews       *int
}
