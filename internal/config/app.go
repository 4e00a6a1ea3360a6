package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"portfolio-api/internal/logger"

	"github.com/sirupsen/logrus"
)

// AppConfig holds all application configuration
type AppConfig struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Shapes    ShapesConfig
	Analytics AnalyticsConfig
	Auth      AuthConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port      string
	StaticDir string
}

// DatabaseConfig holds database connection configuration.
// Driver selects the backing store: "memory" (default) keeps everything
// in-process and volatile, "postgres" uses the relational schema.
type DatabaseConfig struct {
	Driver   string
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// ShapesConfig holds Shapes API provider configuration
type ShapesConfig struct {
	APIKey       string
	BaseURL      string
	Model        string
	SystemPrompt string
	MaxTokens    int
	Temperature  float64
}

// AnalyticsConfig holds visitor analytics configuration
type AnalyticsConfig struct {
	PresenceWindow time.Duration
}

// AuthConfig holds admin authentication configuration
type AuthConfig struct {
	JWTSecret       []byte
	TokenExpiration time.Duration
	AdminUsername   string
	AdminPassword   string
}

// LoadConfig loads and validates application configuration from environment
func LoadConfig() (*AppConfig, error) {
	config := &AppConfig{}

	// Load Server config
	config.Server = ServerConfig{
		Port:      getEnvOrDefault("SERVER_PORT", "8080"),
		StaticDir: getEnvOrDefault("STATIC_DIR", "public"),
	}

	// Load Database config
	config.Database = DatabaseConfig{
		Driver:   getEnvOrDefault("DB_DRIVER", "memory"),
		Host:     getEnvOrDefault("DB_HOST", "postgres"),
		Port:     getEnvOrDefault("DB_PORT", "5432"),
		User:     getEnvOrDefault("DB_USER", "postgres"),
		Password: getEnvOrDefault("DB_PASSWORD", "postgres"),
		Name:     getEnvOrDefault("DB_NAME", "portfolio"),
		SSLMode:  getEnvOrDefault("DB_SSLMODE", "disable"),
	}
	if config.Database.Driver != "memory" && config.Database.Driver != "postgres" {
		return nil, fmt.Errorf("DB_DRIVER must be 'memory' or 'postgres', got %q", config.Database.Driver)
	}

	// Load Shapes API config
	apiKey := os.Getenv("SHAPESINC_API_KEY")
	if apiKey == "" {
		logger.Log.Warn("SHAPESINC_API_KEY environment variable not set")
	}

	config.Shapes = ShapesConfig{
		APIKey:       apiKey,
		BaseURL:      getEnvOrDefault("SHAPES_BASE_URL", "https://api.shapes.inc/v1"),
		Model:        getEnvOrDefault("SHAPES_MODEL", "shapesinc/zerotwo-darling"),
		SystemPrompt: getEnvOrDefault("SHAPES_SYSTEM_PROMPT", getDefaultSystemPrompt()),
		MaxTokens:    getEnvAsInt("SHAPES_MAX_TOKENS", 500),
		Temperature:  getEnvAsFloat("SHAPES_TEMPERATURE", 0.7),
	}

	// Load Analytics config
	config.Analytics = AnalyticsConfig{
		PresenceWindow: getEnvAsDuration("ANALYTICS_PRESENCE_WINDOW", 5*time.Minute),
	}

	// Load Auth config. The admin endpoints are optional: without a JWT
	// secret the server still runs, it just never registers them.
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret != "" && len(jwtSecret) < 32 {
		return nil, fmt.Errorf("JWT_SECRET must be at least 32 characters (current length: %d)", len(jwtSecret))
	}
	if jwtSecret == "" {
		logger.Log.Warn("JWT_SECRET not set, admin endpoints disabled")
	}

	config.Auth = AuthConfig{
		JWTSecret:       []byte(jwtSecret),
		TokenExpiration: getEnvAsDuration("JWT_TOKEN_EXPIRATION", 24*time.Hour),
		AdminUsername:   getEnvOrDefault("ADMIN_USERNAME", "admin"),
		AdminPassword:   os.Getenv("ADMIN_PASSWORD"),
	}

	return config, nil
}

// AdminEnabled reports whether the admin auth endpoints can be served
func (c *AppConfig) AdminEnabled() bool {
	return len(c.Auth.JWTSecret) > 0 && c.Auth.AdminPassword != ""
}

// GetDSN returns the database connection string
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

// Helper functions for environment variable parsing

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		logger.Log.WithFields(logrus.Fields{"key": key, "default": defaultValue}).Warn("Invalid integer value, using default")
		return defaultValue
	}
	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		logger.Log.WithFields(logrus.Fields{"key": key, "default": defaultValue}).Warn("Invalid float value, using default")
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		logger.Log.WithFields(logrus.Fields{"key": key, "default": defaultValue}).Warn("Invalid duration value, using default")
		return defaultValue
	}
	return value
}

func getDefaultSystemPrompt() string {
	return `You are an AI assistant for Jignesh D. Maru's portfolio website. Jignesh is a passionate web developer from Vadodara, India. He specializes in React, JavaScript, and modern web technologies. He has skills in:

- Web Development: HTML, CSS, JavaScript, React
- Design Tools: Photoshop, Premiere Pro, Canva
- Office Tools: MS Office, Excel, Tally
- Technical Expertise: Windows, PC Assembly, OBS Studio
- AI & Development: AI Tools, Shapes.inc API, Discord Bots
- Creative Skills: Poster Design, Video Editing, Creative Design

Help visitors learn about Jignesh's work, skills, and experience. Be friendly, professional, and informative about his capabilities and projects.`
}
