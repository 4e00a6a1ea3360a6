package db

// Database defines the storage operations used by the services. Two
// implementations exist: a volatile in-memory store (the default) and a
// PostgreSQL store; the service contracts are identical for both.
type Database interface {
	// Chat message methods
	AddChatMessage(sessionID string, userID *string, role, content string) (*ChatMessage, error)
	GetChatMessages(sessionID string) ([]ChatMessage, error)
	ClearChatSession(sessionID string) error

	// Analytics methods
	AddVisitor(input VisitorInput) (*Visitor, error)
	GetVisitors() ([]Visitor, error)
	GetVisitorCount() (int, error)
	GetTodayVisitorCount() (int, error)

	// User methods
	GetUserByUsername(username string) (*User, error)
	CreateUser(username, email, password string) (*User, error)

	Close() error
}
