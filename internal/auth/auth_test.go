package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"portfolio-api/internal/config"
	"portfolio-api/internal/repository/memory"
)

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:       []byte("test-secret-key-that-is-long-enough!"),
		TokenExpiration: time.Hour,
		AdminUsername:   "admin",
		AdminPassword:   "correct-horse",
	}
}

func TestGenerateAndValidateToken(t *testing.T) {
	a := New(memory.NewMemoryStore(), testAuthConfig())

	token, err := a.GenerateToken("admin")
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	claims, err := a.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}
	if claims.Username != "admin" {
		t.Errorf("claims username = %q, want admin", claims.Username)
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	a := New(memory.NewMemoryStore(), testAuthConfig())

	otherCfg := testAuthConfig()
	otherCfg.JWTSecret = []byte("a-completely-different-secret-value!")
	other := New(memory.NewMemoryStore(), otherCfg)

	token, _ := other.GenerateToken("admin")
	if _, err := a.ValidateToken(token); err == nil {
		t.Error("ValidateToken() accepted a token signed with another secret")
	}
}

func TestValidateTokenGarbage(t *testing.T) {
	a := New(memory.NewMemoryStore(), testAuthConfig())

	if _, err := a.ValidateToken("not.a.token"); err == nil {
		t.Error("ValidateToken() accepted garbage input")
	}
}

func TestLoginHandler(t *testing.T) {
	store := memory.NewMemoryStore()
	cfg := testAuthConfig()
	if err := SeedAdmin(store, cfg); err != nil {
		t.Fatalf("SeedAdmin() error = %v", err)
	}
	a := New(store, cfg)

	tests := []struct {
		name       string
		username   string
		password   string
		wantStatus int
	}{
		{name: "valid credentials", username: "admin", password: "correct-horse", wantStatus: http.StatusOK},
		{name: "wrong password", username: "admin", password: "battery-staple", wantStatus: http.StatusUnauthorized},
		{name: "unknown user", username: "ghost", password: "correct-horse", wantStatus: http.StatusUnauthorized},
		{name: "missing fields", username: "", password: "", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, _ := json.Marshal(LoginRequest{Username: tt.username, Password: tt.password})
			req := httptest.NewRequest("POST", "/api/auth/login", bytes.NewReader(body))
			rec := httptest.NewRecorder()

			a.LoginHandler(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantStatus == http.StatusOK {
				var resp LoginResponse
				if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
					t.Fatalf("decode response: %v", err)
				}
				if _, err := a.ValidateToken(resp.Token); err != nil {
					t.Errorf("returned token does not validate: %v", err)
				}
			}
		})
	}
}

func TestMiddleware(t *testing.T) {
	a := New(memory.NewMemoryStore(), testAuthConfig())
	token, _ := a.GenerateToken("admin")

	protected := a.Middleware(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{name: "valid token", header: "Bearer " + token, wantStatus: http.StatusOK},
		{name: "missing header", header: "", wantStatus: http.StatusUnauthorized},
		{name: "malformed header", header: "Token abc", wantStatus: http.StatusUnauthorized},
		{name: "invalid token", header: "Bearer not.a.token", wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/api/analytics/visits", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			protected(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestSeedAdminIdempotent(t *testing.T) {
	store := memory.NewMemoryStore()
	cfg := testAuthConfig()

	if err := SeedAdmin(store, cfg); err != nil {
		t.Fatalf("SeedAdmin() error = %v", err)
	}
	if err := SeedAdmin(store, cfg); err != nil {
		t.Fatalf("SeedAdmin() repeat error = %v", err)
	}

	user, err := store.GetUserByUsername("admin")
	if err != nil {
		t.Fatalf("GetUserByUsername() error = %v", err)
	}
	if !user.VerifyPassword("correct-horse") {
		t.Error("seeded admin rejects the configured password")
	}
}
