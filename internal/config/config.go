// Package config reads service configuration from environment variables.
package config

import "os"

// Config holds all configuration values.
type Config struct {
	// HTTP
	Addr string

	// SQLite database path
	DBPath string

	// Completion endpoint (any OpenAI-compatible server)
	OracleBaseURL string
	OracleModel   string
	OracleAPIKey  string

	// Auth
	JWTSecret string

	// Logging
	Debug bool
}

// Load reads configuration from environment variables, falling back to
// development defaults.
func Load() Config {
	return Config{
		Addr:          getEnv("FLORIN_ADDR", ":8100"),
		DBPath:        getEnv("FLORIN_DB_PATH", "florin.db"),
		OracleBaseURL: getEnv("FLORIN_ORACLE_BASE_URL", "http://localhost:11434/v1/"),
		OracleModel:   getEnv("FLORIN_ORACLE_MODEL", "llama3.1:8b"),
		OracleAPIKey:  getEnv("FLORIN_ORACLE_API_KEY", getEnv("OPENAI_API_KEY", "fake")),
		JWTSecret:     getEnv("FLORIN_JWT_SECRET", "dev-secret-change-me"),
		Debug:         getEnv("FLORIN_DEBUG", "false") == "true",
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
