package testutil

import (
	"portfolio-api/internal/repository/db"
	"portfolio-api/internal/service/llm"

	"github.com/google/uuid"
)

// MockDatabase is a configurable fake store. Tests set only the
// function fields they care about; unset fields fall back to benign
// defaults.
type MockDatabase struct {
	AddChatMessageFunc       func(sessionID string, userID *string, role, content string) (*db.ChatMessage, error)
	GetChatMessagesFunc      func(sessionID string) ([]db.ChatMessage, error)
	ClearChatSessionFunc     func(sessionID string) error
	AddVisitorFunc           func(input db.VisitorInput) (*db.Visitor, error)
	GetVisitorsFunc          func() ([]db.Visitor, error)
	GetVisitorCountFunc      func() (int, error)
	GetTodayVisitorCountFunc func() (int, error)
	GetUserByUsernameFunc    func(username string) (*db.User, error)
	CreateUserFunc           func(username, email, password string) (*db.User, error)
	CloseFunc                func() error
}

var _ db.Database = (*MockDatabase)(nil)

func (m *MockDatabase) AddChatMessage(sessionID string, userID *string, role, content string) (*db.ChatMessage, error) {
	if m.AddChatMessageFunc != nil {
		return m.AddChatMessageFunc(sessionID, userID, role, content)
	}
	return &db.ChatMessage{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		UserID:    userID,
		Role:      role,
		Content:   content,
	}, nil
}

func (m *MockDatabase) GetChatMessages(sessionID string) ([]db.ChatMessage, error) {
	if m.GetChatMessagesFunc != nil {
		return m.GetChatMessagesFunc(sessionID)
	}
	return []db.ChatMessage{}, nil
}

func (m *MockDatabase) ClearChatSession(sessionID string) error {
	if m.ClearChatSessionFunc != nil {
		return m.ClearChatSessionFunc(sessionID)
	}
	return nil
}

func (m *MockDatabase) AddVisitor(input db.VisitorInput) (*db.Visitor, error) {
	if m.AddVisitorFunc != nil {
		return m.AddVisitorFunc(input)
	}
	return &db.Visitor{
		ID:              uuid.NewString(),
		VisitorID:       input.VisitorID,
		IPAddress:       input.IPAddress,
		UserAgent:       input.UserAgent,
		Referrer:        input.Referrer,
		SessionDuration: input.SessionDuration,
		PageViews:       input.PageViews,
	}, nil
}

func (m *MockDatabase) GetVisitors() ([]db.Visitor, error) {
	if m.GetVisitorsFunc != nil {
		return m.GetVisitorsFunc()
	}
	return []db.Visitor{}, nil
}

func (m *MockDatabase) GetVisitorCount() (int, error) {
	if m.GetVisitorCountFunc != nil {
		return m.GetVisitorCountFunc()
	}
	return 0, nil
}

func (m *MockDatabase) GetTodayVisitorCount() (int, error) {
	if m.GetTodayVisitorCountFunc != nil {
		return m.GetTodayVisitorCountFunc()
	}
	return 0, nil
}

func (m *MockDatabase) GetUserByUsername(username string) (*db.User, error) {
	if m.GetUserByUsernameFunc != nil {
		return m.GetUserByUsernameFunc(username)
	}
	return nil, db.ErrUserNotFound
}

func (m *MockDatabase) CreateUser(username, email, password string) (*db.User, error) {
	if m.CreateUserFunc != nil {
		return m.CreateUserFunc(username, email, password)
	}
	return &db.User{ID: uuid.NewString(), Username: username, Email: email}, nil
}

func (m *MockDatabase) Close() error {
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}

// MockProvider is a configurable fake completion provider
type MockProvider struct {
	ChatCompletionFunc func(messages []llm.Message, userID, sessionID string) (string, error)
}

var _ llm.Provider = (*MockProvider)(nil)

func (m *MockProvider) ChatCompletion(messages []llm.Message, userID, sessionID string) (string, error) {
	if m.ChatCompletionFunc != nil {
		return m.ChatCompletionFunc(messages, userID, sessionID)
	}
	return "mock reply", nil
}
