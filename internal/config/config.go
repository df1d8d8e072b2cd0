package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	CORS     CORSConfig
	Market   MarketConfig
	Advisor  AdvisorConfig
	Settings SettingsConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string
	Host string
	Addr string // Combined host:port for convenience
}

// DatabaseConfig holds database-specific configuration
type DatabaseConfig struct {
	Path string
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// MarketConfig holds market-data provider configuration.
// The token is resolved from several environment variable names because the
// frontend and older deployments used different ones.
type MarketConfig struct {
	Token string
}

// AdvisorConfig holds the generative-language API configuration.
type AdvisorConfig struct {
	APIKey string
	Model  string
}

// SettingsConfig holds the secret used to encrypt stored credentials.
type SettingsConfig struct {
	Secret string
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "5001"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/carteira.db"),
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{
				"http://localhost:3000",
				"http://localhost",
			},
		},
		Market: MarketConfig{
			Token: getFirstEnv("BRAPI_TOKEN", "BRAPI_API_KEY", "MARKET_API_TOKEN"),
		},
		Advisor: AdvisorConfig{
			APIKey: getFirstEnv("GEMINI_API_KEY", "GOOGLE_API_KEY"),
			Model:  getEnv("ADVISOR_MODEL", "gemini-2.0-flash"),
		},
		Settings: SettingsConfig{
			Secret: os.Getenv("SETTINGS_SECRET"),
		},
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	return config, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getFirstEnv returns the first non-empty value among the given variable names.
func getFirstEnv(keys ...string) string {
	for _, key := range keys {
		if value := os.Getenv(key); value != "" {
			return value
		}
	}
	return ""
}
