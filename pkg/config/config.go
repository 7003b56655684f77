package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Knowledge KnowledgeConfig
	Cohere    CohereConfig
	Session   SessionConfig
	JWT       JWTConfig
	Database  DatabaseConfig
	TUI       TUIConfig
	Logger    LoggerConfig
}

type LoggerConfig struct {
	Level string
	// File receives the logs of terminal commands; empty discards them.
	File string
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type KnowledgeConfig struct {
	Path           string
	FallbackSystem string
}

type CohereConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration
}

type SessionConfig struct {
	TTL time.Duration
}

type JWTConfig struct {
	SecretKey  string
	Expiration time.Duration
}

type DatabaseConfig struct {
	Enabled  bool
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type TUIConfig struct {
	ThinkDelay  time.Duration
	TypingDelay time.Duration
}

// DefaultJWTSecret signs session tokens when JWT_SECRET_KEY is unset.
const DefaultJWTSecret = "your-secret-key-change-in-production"

func Load() (*Config, error) {
	// .env is optional; plain environment variables work the same way.
	envFiles := []string{".env", "../.env", "../../.env"}
	for _, envFile := range envFiles {
		if err := godotenv.Load(envFile); err == nil {
			break
		}
	}

	readTimeout := getEnvInt("SERVER_READ_TIMEOUT", 30)
	writeTimeout := getEnvInt("SERVER_WRITE_TIMEOUT", 30)
	jwtExp := getEnvInt("JWT_EXPIRATION_HOURS", 24)
	sessionTTL := getEnvInt("SESSION_TTL_MINUTES", 120)
	cohereTimeout := getEnvInt("COHERE_TIMEOUT_SECONDS", 30)

	return &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			ReadTimeout:  time.Duration(readTimeout) * time.Second,
			WriteTimeout: time.Duration(writeTimeout) * time.Second,
		},
		Knowledge: KnowledgeConfig{
			Path:           getEnv("KNOWLEDGE_PATH", "db_process.json"),
			FallbackSystem: getEnv("FALLBACK_SYSTEM", "Protheus"),
		},
		Cohere: CohereConfig{
			APIKey:      os.Getenv("COHERE_API_KEY"),
			BaseURL:     getEnv("COHERE_BASE_URL", "https://api.cohere.ai"),
			Model:       getEnv("COHERE_MODEL", "command-xlarge-nightly"),
			MaxTokens:   getEnvInt("COHERE_MAX_TOKENS", 40),
			Temperature: getEnvFloat("COHERE_TEMPERATURE", 0.2),
			Timeout:     time.Duration(cohereTimeout) * time.Second,
		},
		Session: SessionConfig{
			TTL: time.Duration(sessionTTL) * time.Minute,
		},
		JWT: JWTConfig{
			SecretKey:  getEnv("JWT_SECRET_KEY", DefaultJWTSecret),
			Expiration: time.Duration(jwtExp) * time.Hour,
		},
		Database: DatabaseConfig{
			Enabled:  getEnvBool("DB_ENABLED", false),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "hiper_bot"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		TUI: TUIConfig{
			ThinkDelay:  time.Duration(getEnvInt("TUI_THINK_DELAY_MS", 1000)) * time.Millisecond,
			TypingDelay: time.Duration(getEnvInt("TUI_TYPING_DELAY_MS", 5)) * time.Millisecond,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
			File:  os.Getenv("LOG_FILE"),
		},
	}, nil
}

// HasCohereKey reports whether the relevance check can be used.
func (c *Config) HasCohereKey() bool {
	return strings.TrimSpace(c.Cohere.APIKey) != ""
}

// UsesDefaultJWTSecret reports whether tokens are signed with DefaultJWTSecret.
func (c *Config) UsesDefaultJWTSecret() bool {
	return c.JWT.SecretKey == DefaultJWTSecret
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(strings.TrimSpace(os.Getenv(key)))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvFloat(key string, defaultValue float64) float64 {
	value, err := strconv.ParseFloat(strings.TrimSpace(os.Getenv(key)), 64)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(strings.TrimSpace(os.Getenv(key)))
	if err != nil {
		return defaultValue
	}
	return value
}
