package memory

import (
	"sync"
	"time"

	"portfolio-api/internal/logger"
	"portfolio-api/internal/repository/db"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// Ensure MemoryStore implements db.Database interface
var _ db.Database = (*MemoryStore)(nil)

// MemoryStore is a volatile, process-lifetime implementation of
// db.Database. Go serves requests on concurrent goroutines, so all maps
// are guarded by a single RWMutex; within one session appends still
// observe arrival order at the store.
type MemoryStore struct {
	mu           sync.RWMutex
	chatMessages map[string][]db.ChatMessage
	visitors     []db.Visitor
	users        map[string]db.User // keyed by username
	now          func() time.Time
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		chatMessages: make(map[string][]db.ChatMessage),
		users:        make(map[string]db.User),
		now:          time.Now,
	}
}

// AddChatMessage assigns an id and timestamp and appends the turn to the
// session's sequence, creating the session if it does not exist yet
func (m *MemoryStore) AddChatMessage(sessionID string, userID *string, role, content string) (*db.ChatMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	msg := db.ChatMessage{
		ID:        uuid.New().String(),
		SessionID: sessionID,
		UserID:    userID,
		Role:      role,
		Content:   content,
		Timestamp: m.now(),
	}
	m.chatMessages[sessionID] = append(m.chatMessages[sessionID], msg)

	logger.Log.WithFields(logrus.Fields{
		"session_id": sessionID,
		"role":       role,
		"turns":      len(m.chatMessages[sessionID]),
	}).Debug("Added chat message")

	return &msg, nil
}

// GetChatMessages returns the session's turns in insertion order. An
// unknown session yields an empty slice, not an error.
func (m *MemoryStore) GetChatMessages(sessionID string) ([]db.ChatMessage, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stored := m.chatMessages[sessionID]
	messages := make([]db.ChatMessage, len(stored))
	copy(messages, stored)
	return messages, nil
}

// ClearChatSession removes the session's entire sequence. Clearing an
// unknown session is a no-op.
func (m *MemoryStore) ClearChatSession(sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.chatMessages, sessionID)
	logger.Log.WithField("session_id", sessionID).Debug("Cleared chat session")
	return nil
}

// AddVisitor assigns an id and timestamp and appends the visit record
func (m *MemoryStore) AddVisitor(input db.VisitorInput) (*db.Visitor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	visitor := db.Visitor{
		ID:              uuid.New().String(),
		VisitorID:       input.VisitorID,
		IPAddress:       input.IPAddress,
		UserAgent:       input.UserAgent,
		Referrer:        input.Referrer,
		SessionDuration: input.SessionDuration,
		PageViews:       input.PageViews,
		Timestamp:       m.now(),
	}
	m.visitors = append(m.visitors, visitor)
	return &visitor, nil
}

// GetVisitors returns all visit records, newest first
func (m *MemoryStore) GetVisitors() ([]db.Visitor, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	visitors := make([]db.Visitor, len(m.visitors))
	for i, v := range m.visitors {
		visitors[len(m.visitors)-1-i] = v
	}
	return visitors, nil
}

// GetVisitorCount returns the number of visits recorded since process start
func (m *MemoryStore) GetVisitorCount() (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.visitors), nil
}

// GetTodayVisitorCount counts visits whose calendar date in local time
// equals today's date. This is day-bucket equality, not a rolling window.
func (m *MemoryStore) GetTodayVisitorCount() (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	today := m.now().Format("2006-01-02")
	count := 0
	for _, v := range m.visitors {
		if v.Timestamp.Format("2006-01-02") == today {
			count++
		}
	}
	return count, nil
}

// GetUserByUsername retrieves a user by username
func (m *MemoryStore) GetUserByUsername(username string) (*db.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	user, ok := m.users[username]
	if !ok {
		return nil, db.ErrUserNotFound
	}
	return &user, nil
}

// CreateUser creates a new user with hashed password
func (m *MemoryStore) CreateUser(username, email, password string) (*db.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[username]; ok {
		return nil, db.ErrUsernameTaken
	}

	user := db.User{
		ID:           uuid.New().String(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hashedPassword),
		CreatedAt:    m.now(),
	}
	m.users[username] = user

	logger.Log.WithFields(logrus.Fields{"username": username, "user_id": user.ID}).Info("Created new user")
	return &user, nil
}

// Close is a no-op for the in-memory store
func (m *MemoryStore) Close() error {
	return nil
}
