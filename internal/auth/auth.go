package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"portfolio-api/internal/config"
	"portfolio-api/internal/logger"
	"portfolio-api/internal/repository/db"

	"github.com/golang-jwt/jwt/v5"
)

// Auth issues and validates admin bearer tokens. It is constructed once
// in main and shared by the login handler and the middleware.
type Auth struct {
	db     db.Database
	secret []byte
	expiry time.Duration
}

// New creates an Auth from the loaded configuration
func New(database db.Database, cfg config.AuthConfig) *Auth {
	return &Auth{
		db:     database,
		secret: cfg.JWTSecret,
		expiry: cfg.TokenExpiration,
	}
}

type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func sendError(w http.ResponseWriter, status int, message string, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	errResp := errorResponse{Error: message}
	if err != nil {
		errResp.Details = err.Error()
	}
	json.NewEncoder(w).Encode(errResp)
}

// GenerateToken creates a signed token for the given username
func (a *Auth) GenerateToken(username string) (string, error) {
	claims := Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(a.expiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.secret)
}

// ValidateToken parses and verifies a token string
func (a *Auth) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return a.secret, nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, jwt.ErrSignatureInvalid
}

// LoginHandler authenticates the admin user and returns a JWT token
func (a *Auth) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if req.Username == "" || req.Password == "" {
		sendError(w, http.StatusBadRequest, "Username and password are required", nil)
		return
	}

	user, err := a.db.GetUserByUsername(req.Username)
	if err != nil {
		logger.Log.WithField("username", req.Username).Warn("Login failed: user not found")
		sendError(w, http.StatusUnauthorized, "Invalid credentials", nil)
		return
	}

	if !user.VerifyPassword(req.Password) {
		logger.Log.WithField("username", req.Username).Warn("Login failed: invalid password")
		sendError(w, http.StatusUnauthorized, "Invalid credentials", nil)
		return
	}

	token, err := a.GenerateToken(req.Username)
	if err != nil {
		logger.Log.WithError(err).Error("Error generating token")
		sendError(w, http.StatusInternalServerError, "Error generating token", err)
		return
	}

	logger.Log.WithField("username", req.Username).Info("Admin logged in")

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(LoginResponse{Token: token})
}

// Middleware rejects requests without a valid bearer token
func (a *Auth) Middleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			sendError(w, http.StatusUnauthorized, "Missing authorization header", nil)
			return
		}

		bearerToken := strings.Split(authHeader, " ")
		if len(bearerToken) != 2 || bearerToken[0] != "Bearer" {
			sendError(w, http.StatusUnauthorized, "Invalid authorization header format", nil)
			return
		}

		if _, err := a.ValidateToken(bearerToken[1]); err != nil {
			sendError(w, http.StatusUnauthorized, "Invalid token", err)
			return
		}

		next.ServeHTTP(w, r)
	}
}

// SeedAdmin creates the admin user from the environment if it does not
// exist yet
func SeedAdmin(database db.Database, cfg config.AuthConfig) error {
	if _, err := database.GetUserByUsername(cfg.AdminUsername); err == nil {
		logger.Log.Info("Admin user already exists, skipping seed")
		return nil
	}

	_, err := database.CreateUser(cfg.AdminUsername, "", cfg.AdminPassword)
	if err != nil && !errors.Is(err, db.ErrUsernameTaken) {
		return err
	}

	logger.Log.WithField("username", cfg.AdminUsername).Info("Admin user seeded")
	return nil
}
